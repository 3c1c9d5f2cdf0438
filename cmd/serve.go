package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"galeria-cuadros/app"
	"galeria-cuadros/config"
	"galeria-cuadros/utils"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the catalog web server",
		Example: `  # Start server on PORT or 8080
  galeria serve

  # Start server on a custom port
  galeria serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			defer utils.SetupLogging(cfg.LogFile).Close()

			a, err := app.Initialize(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
			addr := "0.0.0.0:" + cfg.Port
			server := &http.Server{
				Addr:              addr,
				Handler:           a.Handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			serverErr := make(chan error, 1)
			go func() {
				log.Printf("Server starting on %s", addr)
				log.Printf("Catalog page: %s/catalog", cfg.BaseURL)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			select {
			case <-cmd.Context().Done():
				log.Printf("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					log.Printf("❌ Server shutdown failed: %v", err)
					return err
				}
				log.Printf("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides PORT)")

	return cmd
}
