package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pantry/internal/cli"
	"github.com/Veraticus/pantry/internal/importer"
)

func importItemsCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import items from a CSV file",
		Long: `Import items from a CSV file with the header

  name,quantity,unit,food_type,expiration_date

The food_type column takes a food type name or ID. Rows that fail validation
are reported and skipped; the rest are imported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			handler := cli.NewInterruptHandler(out, "Rows imported before the interrupt were kept.")
			ctx = handler.HandleInterrupts(ctx)

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			var opts []importer.Option
			if !quiet {
				opts = append(opts, importer.WithProgress(cmd.ErrOrStderr()))
			}

			result, err := importer.New(store.Categories(), store.Inventory(), opts...).Import(ctx, f)
			if result != nil {
				for _, rowErr := range result.Errors {
					fmt.Fprintln(out, cli.FormatWarning(rowErr.Error()))
				}
			}
			if err != nil {
				if handler.WasInterrupted() && errors.Is(err, ctx.Err()) {
					return nil
				}
				return err
			}

			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d of %d rows from %s",
				len(result.Imported), result.Rows, filepath.Base(args[0]))))
			if len(result.Errors) > 0 {
				fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("%d rows skipped", len(result.Errors))))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not draw a progress bar")

	return cmd
}
