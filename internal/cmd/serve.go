package cmd

import (
	"log"
	"time"

	"github.com/go-via/storefront/internal/config"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the storefront HTTP server",
	Long: `Start the storefront HTTP server.

The server stops gracefully on SIGINT or SIGTERM.

Example:
  storefront serve --config storefront.yaml
  storefront serve --addr :8080`,
	RunE: runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "address to listen on, overrides the config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	ctx := cmd.Context()
	app, err := NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	app.StartMaintenance(time.Hour)
	log.Printf("[info] storefront listening on %s (validator=%s)", cfg.Addr, cfg.Session.Validator)
	return app.V.ListenAndServe(ctx)
}
