package main

import (
	"fmt"

	"github.com/spf13/cobra"

	ppmserver "github.com/HendryAvila/ppmfit/internal/server"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the ppmfit version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "ppmfit v%s\n", ppmserver.Version)
			return err
		},
	}
}
