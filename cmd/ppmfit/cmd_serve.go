package main

import (
	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	ppmserver "github.com/HendryAvila/ppmfit/internal/server"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Long: `Start the MCP server on stdin/stdout.

Point your AI assistant's MCP configuration at "ppmfit serve". Decision
spaces are stored in the data directory (default ~/.ppmfit).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := ppmserver.New(a.cfg, a.logger)
			if err != nil {
				return errors.Wrap(err, "creating server")
			}
			defer cleanup()

			a.logger.Info("ppmfit MCP server running on stdio", "version", ppmserver.Version, "data_dir", a.cfg.DataDir)
			return server.ServeStdio(s)
		},
	}
}
