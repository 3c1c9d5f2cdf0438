package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"galeria-cuadros/app"
	"galeria-cuadros/config"
	"galeria-cuadros/db"
	"galeria-cuadros/repository"
	"galeria-cuadros/service"
)

func newSyncCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Import cards from an HTML page or YAML file into PostgreSQL",
		Example: `  galeria sync --from static/index.html
  galeria sync --from cards.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if from != "" {
				cfg.CardsPath = from
				cfg.CardSource = sourceFromPath(from)
			}
			if cfg.CardSource == config.SourcePostgres {
				return fmt.Errorf("sync needs an html or yaml source, use --from")
			}

			source, err := app.NewCardSource(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			store, err := app.NewCardStore(cmd.Context())
			if err != nil {
				return err
			}
			defer db.CloseDB()

			synced, skipped, total, err := service.NewSyncService(source, store).SyncCards(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d synced, %d skipped, %d total\n", synced, skipped, total)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "HTML or YAML card file (defaults to the configured source)")

	return cmd
}

// sourceFromPath picks the card source kind from a file extension
func sourceFromPath(path string) string {
	if repository.IsYAMLPath(path) {
		return config.SourceYAML
	}
	return config.SourceHTML
}
