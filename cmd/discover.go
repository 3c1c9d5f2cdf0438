package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"galeria-cuadros/app"
	"galeria-cuadros/config"
	"galeria-cuadros/service"
)

func newDiscoverCmd() *cobra.Command {
	var showCandidates bool

	cmd := &cobra.Command{
		Use:   "discover <image> [image...]",
		Short: "Probe the numbered variants of an image list",
		Long: `Discover derives name_1 through name_12 from the first image, probes them
with the configured backend and prints the ones that exist, in order.`,
		Example: `  galeria discover cuadros/cuadro1.jpg
  galeria discover --candidates cuadros/cuadro1.jpg cuadros/cuadro1_3.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			prober, _, err := app.NewImageBackend(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			discovery := service.NewDiscoveryService(prober)

			out := cmd.OutOrStdout()
			if showCandidates {
				for _, c := range discovery.Candidates(args) {
					fmt.Fprintf(out, "candidate %2d  %s\n", c.Ordinal, c.Path)
				}
			}
			for _, found := range discovery.Discover(cmd.Context(), args) {
				fmt.Fprintln(out, found)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showCandidates, "candidates", false, "Print every probed candidate before the results")

	return cmd
}
