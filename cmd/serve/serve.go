// Package serve runs the catalog conversion web server.
package serve

import (
	"github.com/spf13/cobra"

	"catalog-csv/cmd/root"
	"catalog-csv/internal/catalog"
	"catalog-csv/internal/server"
)

var (
	host string
	port int
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the catalog conversion web server",
	Long: `Start an HTTP server that accepts catalog file uploads, converts them,
and serves the converted output for download. A JSON API endpoint is
also exposed for programmatic use.

Example:
  catalog-csv serve -p 8080`,
	Run: serveFunc,
}

func init() {
	Cmd.Flags().StringVar(&host, "host", "", "Host to bind to (overrides configuration)")
	Cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (overrides configuration)")
}

func serveFunc(cmd *cobra.Command, args []string) {
	cfg := root.Config()
	if host != "" {
		cfg.Web.Host = host
	}
	if port != 0 {
		cfg.Web.Port = port
	}

	processor := catalog.NewProcessor(cfg)
	defer func() {
		if err := processor.Close(); err != nil {
			root.Log.Warnf("Failed to save learned mappings: %v", err)
		}
	}()

	srv, err := server.New(cfg, processor)
	if err != nil {
		root.Log.Fatalf("Error creating server: %v", err)
	}
	if err := srv.Start(); err != nil {
		root.Log.Fatalf("Server stopped: %v", err)
	}
}
