package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/ppmfit/internal/scoring"
	"github.com/HendryAvila/ppmfit/internal/spaces"
)

func newTradeoffsCommand(a *app) *cobra.Command {
	var top int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tradeoffs <space.yaml>",
		Short: "Explain the tradeoffs in a decision file",
		Long: `Explain a decision: the most important tradeoffs, where the leader
falls behind, a head-to-head of the top two tools, and which criteria would
flip the result.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sp, err := spaces.LoadFile(args[0])
			if err != nil {
				return err
			}
			if top <= 0 {
				top = a.cfg.TopTradeoffs
			}

			analysis := scoring.Analyze(sp.Tools, sp.Criteria, top)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), analysis)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), scoring.SummarizeTradeoffs(analysis))
			return err
		},
	}

	cmd.Flags().IntVarP(&top, "top", "n", 0, "How many top tradeoffs to show (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full analysis as JSON")
	return cmd
}
