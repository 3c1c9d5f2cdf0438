package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"galeria-cuadros/app"
	"galeria-cuadros/config"
	"galeria-cuadros/service"
)

func newWarmCmd() *cobra.Command {
	var skipDiscovery bool

	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Fetch and optimize every card image into the image cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			source, err := app.NewCardSource(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			prober, fetcher, err := app.NewImageBackend(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			images := service.NewImageCache(cfg.CacheDir, fetcher)
			if err := images.EnsureCacheDir(); err != nil {
				return err
			}
			var discovery service.DiscoveryServiceInterface
			if !skipDiscovery {
				discovery = service.NewDiscoveryService(prober)
			}

			total, downloaded, errs, err := service.NewDownloadService(source, discovery, images).DownloadAllImages(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range errs {
				fmt.Fprintf(out, "failed: %s\n", e)
			}
			fmt.Fprintf(out, "%d/%d images cached\n", downloaded, total)
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipDiscovery, "no-discovery", false, "Only cache the images listed on the cards")

	return cmd
}
