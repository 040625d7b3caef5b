package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/pantry/internal/tui"
	"github.com/Veraticus/pantry/internal/tui/themes"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse and edit the inventory interactively",
		Long: `Open a full-screen browser listing every item. Press a to add, e to edit,
d to delete, r to reload, and q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, cfg, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			theme, err := themes.ByName(cfg.Theme)
			if err != nil {
				return err
			}

			return tui.Run(ctx,
				tui.WithStores(store.Categories(), store.Inventory()),
				tui.WithTheme(theme),
				tui.WithExpiringDays(cfg.ExpiringDays),
			)
		},
	}
}
