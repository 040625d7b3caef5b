package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pantry/internal/cli"
)

func typesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "types",
		Aliases: []string{"categories"},
		Short:   "Manage food types",
		Long:    `List, add, rename, and delete the food types items are filed under.`,
	}

	cmd.AddCommand(listTypesCmd())
	cmd.AddCommand(addTypeCmd())
	cmd.AddCommand(renameTypeCmd())
	cmd.AddCommand(deleteTypeCmd())

	return cmd
}

func listTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all food types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			types, err := store.Categories().ListAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to get food types: %w", err)
			}

			if len(types) == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("No food types found. Use 'pantry types add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\n", cli.FormatHeader("ID"), cli.FormatHeader("Name"))
			fmt.Fprintf(w, "%s\t%s\n", strings.Repeat("-", 4), strings.Repeat("-", 20))

			for _, ft := range types {
				name := ft.Name
				if ft.IsSentinel() {
					name += cli.SubtleStyle.Render(" (default)")
				}
				fmt.Fprintf(w, "%d\t%s\n", ft.ID, name)
			}

			return nil
		},
	}
}

func addTypeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new food type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			ft, err := store.Categories().Create(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created food type %q (ID: %d)", ft.Name, ft.ID)))
			return nil
		},
	}
}

func renameTypeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rename <id> <name>",
		Aliases: []string{"update"},
		Short:   "Rename a food type",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0], "food type")
			if err != nil {
				return err
			}

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			ft, err := store.Categories().Update(ctx, id, args[1])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Renamed food type %d to %q", ft.ID, ft.Name)))
			return nil
		},
	}
}

func deleteTypeCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a food type",
		Long: `Delete a food type. Items filed under it move to the default food type
"Other", which itself cannot be deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			id, err := parseID(args[0], "food type")
			if err != nil {
				return err
			}

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			ft, err := store.Categories().GetByID(ctx, id)
			if err != nil {
				return err
			}

			if !force {
				ok, err := cli.Confirm(ctx, cli.NewNonBlockingReader(cmd.InOrStdin()), out,
					fmt.Sprintf("Delete food type %q?", ft.Name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Deletion canceled.")
					return nil
				}
			}

			if err := store.Categories().Delete(ctx, id); err != nil {
				return err
			}

			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deleted food type %q", ft.Name)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}
