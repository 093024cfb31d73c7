package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/HendryAvila/ppmfit/internal/scoring"
	"github.com/HendryAvila/ppmfit/internal/spaces"
)

func newScoreCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "score <space.yaml>",
		Short: "Rank the tools in a decision file",
		Long: `Rank the tools in a YAML decision file by weighted match score.

The file lists criteria (with optional weights 1-5) and tools (with
ratings 1-5 per criterion). Missing ratings count as 3.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sp, err := spaces.LoadFile(args[0])
			if err != nil {
				return err
			}
			a.logger.Debug("scoring", "file", args[0], "tools", len(sp.Tools), "criteria", len(sp.Criteria))

			ranked := scoring.SortToolsByScore(sp.Tools, sp.Criteria)
			switch format {
			case "json":
				return writeJSON(cmd.OutOrStdout(), ranked)
			case "table":
				return writeRankingTable(cmd.OutOrStdout(), ranked, scoring.CalculateDecisionConfidence(sp.Tools, sp.Criteria))
			default:
				return errors.Newf("unknown format %q: use table or json", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table or json")
	return cmd
}

func writeRankingTable(w io.Writer, ranked []scoring.RankedTool, conf scoring.Confidence) error {
	if len(ranked) == 0 {
		_, err := fmt.Fprintln(w, "No tools to score.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tTOOL\tSCORE")
	for i, r := range ranked {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", i+1, r.Tool.Name, r.Score.Total)
	}
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "writing table")
	}
	_, err := fmt.Fprintf(w, "\nConfidence: %d/100\n", conf.Confidence)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encoding json")
}
