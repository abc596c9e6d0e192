package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veldt-labs/cropsight/internal/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive climate dashboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			cfg.ListenAddr = serveAddr
		}
		srv := web.New(cfg)
		fmt.Printf("✓ Dashboard listening on http://%s\n", cfg.ListenAddr)
		return srv.ListenAndServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}
