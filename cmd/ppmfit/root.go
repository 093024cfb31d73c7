package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/ppmfit/internal/config"
)

// app carries what PersistentPreRunE resolves for the subcommands.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{cfg: config.Default(), logger: slog.Default()}

	cmd := &cobra.Command{
		Use:   "ppmfit",
		Short: "ppmfit - pick the right project portfolio management tool",
		Long: `ppmfit scores candidate PPM tools against the criteria that matter to
your team, explains the tradeoffs between them, and tracks the decision
from framing to decided.

Run "ppmfit serve" to expose it to an AI assistant over MCP, or score a
YAML decision file directly with "ppmfit score".`,
		SilenceUsage: true,
	}

	configPath := cmd.PersistentFlags().String("config", config.DefaultPath(), "Path to the config file")
	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		level := cfg.Level()
		if *debugLogging {
			level = slog.LevelDebug
		}
		// stdout belongs to the MCP transport; logs go to stderr.
		a.cfg = cfg
		a.logger = newLogger(cmd.ErrOrStderr(), level)
		slog.SetDefault(a.logger)
		return nil
	}

	cmd.AddCommand(newServeCommand(a))
	cmd.AddCommand(newScoreCommand(a))
	cmd.AddCommand(newTradeoffsCommand(a))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func execute() error {
	return newRootCommand().Execute()
}
