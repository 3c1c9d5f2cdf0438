package cmd

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "galeria",
		Short: "Catalog page server with image carousels and variant discovery",
		Long: `Galeria serves a catalog page of product cards. Every card gets an image
carousel whose list grows with the variants (name_1.jpg, name_2.jpg, ...)
found next to its first image, and a shared lightbox for full-screen viewing.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// In production, variables should be set directly
			if os.Getenv("ENV") == "production" {
				return
			}
			// Overload so .env values win over the shell during development
			if err := godotenv.Overload(".env"); err != nil {
				log.Printf("⚠️  .env file not found, using system environment variables")
			}
		},
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newDiscoverCmd())
	cmd.AddCommand(newSyncCmd())
	cmd.AddCommand(newWarmCmd())

	return cmd
}
