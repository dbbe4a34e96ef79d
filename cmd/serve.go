package cmd

import (
	"github.com/spf13/cobra"

	"sketchnotes/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve notes to an MCP client over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()
		return app.ServeMCP(cfg, log, Version)
	},
}
