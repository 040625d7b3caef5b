package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pantry/internal/cli"
	"github.com/Veraticus/pantry/internal/model"
	"github.com/Veraticus/pantry/internal/service"
)

// now is the clock used for expiry highlighting.
var now = time.Now

func itemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "items",
		Aliases: []string{"item", "inventory"},
		Short:   "Manage pantry items",
		Long:    `List, add, update, show, delete, and import the food items in your pantry.`,
	}

	cmd.AddCommand(listItemsCmd())
	cmd.AddCommand(addItemCmd())
	cmd.AddCommand(updateItemCmd())
	cmd.AddCommand(showItemCmd())
	cmd.AddCommand(deleteItemCmd())
	cmd.AddCommand(importItemsCmd())

	return cmd
}

// itemFlags holds the values of the item field flags.
type itemFlags struct {
	name     string
	quantity string
	unit     string
	foodType string
	expires  string
}

func (f *itemFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Item name")
	cmd.Flags().StringVar(&f.quantity, "quantity", "", "Quantity (a non-negative number)")
	cmd.Flags().StringVar(&f.unit, "unit", "", "Unit of measure (kg, L, piece, ...)")
	cmd.Flags().StringVar(&f.foodType, "type", "", "Food type name or ID")
	cmd.Flags().StringVar(&f.expires, "expires", "", "Expiration date (YYYY-MM-DD)")
}

func (f *itemFlags) input() model.ItemInput {
	return model.ItemInput{
		Name:           f.name,
		Quantity:       f.quantity,
		Unit:           f.unit,
		ExpirationDate: f.expires,
	}
}

func listItemsCmd() *cobra.Command {
	var expiringOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			store, cfg, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			items, err := store.Inventory().ListAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to get items: %w", err)
			}

			today := now()
			if expiringOnly {
				kept := items[:0]
				for _, item := range items {
					if s := expiryStatus(item, today, cfg.ExpiringDays); s == cli.ExpiryPast || s == cli.ExpirySoon {
						kept = append(kept, item)
					}
				}
				items = kept
			}

			if len(items) == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("No items found. Use 'pantry items add' to add one."))
				return nil
			}

			writeItemsTable(out, items, today, cfg.ExpiringDays)
			return nil
		},
	}

	cmd.Flags().BoolVar(&expiringOnly, "expiring", false, "Only show expired items and items expiring soon")

	return cmd
}

func addItemCmd() *cobra.Command {
	var flags itemFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item",
		Example: `  pantry items add --name Milk --quantity 2 --unit L --type Dairy --expires 2024-06-05
  pantry items add --name "Leftover pasta" --quantity 2.5 --unit servings --type 13 --expires 2024-06-04`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			item, err := service.SaveItem(ctx, store.Categories(), store.Inventory(), 0, flags.foodType, flags.input())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added %q (ID: %d)", item.Name, item.ID)))
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func updateItemCmd() *cobra.Command {
	var flags itemFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an item",
		Long:  `Update an existing item. Fields whose flags are not given keep their current value.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0], "item")
			if err != nil {
				return err
			}

			changed := cmd.Flags().Changed
			if !changed("name") && !changed("quantity") && !changed("unit") && !changed("type") && !changed("expires") {
				return fmt.Errorf("must specify at least one of --name, --quantity, --unit, --type, --expires")
			}

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			current, err := store.Inventory().GetByID(ctx, id)
			if err != nil {
				return err
			}

			if !changed("name") {
				flags.name = current.Name
			}
			if !changed("quantity") {
				flags.quantity = cli.FormatQuantity(current.Quantity)
			}
			if !changed("unit") {
				flags.unit = current.Unit
			}
			if !changed("type") {
				// Names are unique, so the current name resolves back to the
				// same food type even when another one is named like its id.
				flags.foodType = current.FoodTypeName
				if flags.foodType == "" {
					flags.foodType = strconv.FormatInt(current.FoodTypeID, 10)
				}
			}
			if !changed("expires") {
				flags.expires = current.ExpirationDate
			}

			item, err := service.SaveItem(ctx, store.Categories(), store.Inventory(), id, flags.foodType, flags.input())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated %q (ID: %d)", item.Name, item.ID)))
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func showItemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0], "item")
			if err != nil {
				return err
			}

			store, cfg, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			item, err := store.Inventory().GetByID(ctx, id)
			if err != nil {
				return err
			}

			today := now()
			status := expiryStatus(*item, today, cfg.ExpiringDays)
			lines := []string{
				fmt.Sprintf("Quantity:  %s %s", cli.FormatQuantity(item.Quantity), item.Unit),
				fmt.Sprintf("Food type: %s", item.FoodTypeName),
				fmt.Sprintf("Expires:   %s", cli.StyleExpiry(item.ExpirationDate+describeExpiry(*item, today), status)),
				cli.SubtleStyle.Render(fmt.Sprintf("Added %s, updated %s",
					item.CreatedAt.Local().Format(time.DateTime), item.UpdatedAt.Local().Format(time.DateTime))),
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox(fmt.Sprintf("#%d %s", item.ID, item.Name), strings.Join(lines, "\n")))
			return nil
		},
	}
}

func deleteItemCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			id, err := parseID(args[0], "item")
			if err != nil {
				return err
			}

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			item, err := store.Inventory().GetByID(ctx, id)
			if err != nil {
				return err
			}

			if !force {
				ok, err := cli.Confirm(ctx, cli.NewNonBlockingReader(cmd.InOrStdin()), out,
					fmt.Sprintf("Delete %q?", item.Name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Deletion canceled.")
					return nil
				}
			}

			if err := store.Inventory().Delete(ctx, id); err != nil {
				return err
			}

			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deleted %q", item.Name)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

func writeItemsTable(out io.Writer, items []model.FoodItem, today time.Time, expiringDays int) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.FormatHeader("ID"),
		cli.FormatHeader("Name"),
		cli.FormatHeader("Quantity"),
		cli.FormatHeader("Unit"),
		cli.FormatHeader("Food type"),
		cli.FormatHeader("Expires"))

	for _, item := range items {
		expires := cli.StyleExpiry(item.ExpirationDate+describeExpiry(item, today), expiryStatus(item, today, expiringDays))
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			item.ID, item.Name, cli.FormatQuantity(item.Quantity), item.Unit, item.FoodTypeName, expires)
	}
}

func expiryStatus(item model.FoodItem, today time.Time, expiringDays int) cli.ExpiryStatus {
	days, ok := item.DaysUntilExpiry(today)
	return cli.ClassifyExpiry(days, ok, expiringDays)
}

func describeExpiry(item model.FoodItem, today time.Time) string {
	days, ok := item.DaysUntilExpiry(today)
	switch {
	case !ok:
		return ""
	case days < 0:
		return " (expired)"
	case days == 0:
		return " (today)"
	case days == 1:
		return " (tomorrow)"
	default:
		return fmt.Sprintf(" (in %d days)", days)
	}
}
