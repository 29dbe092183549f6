package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rpgo/savings-calculator/internal/output"
)

func (a *app) newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List report formats and aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(a.out, "Formats: %s\n", strings.Join(output.AvailableFormatterNames(), ", "))
			fmt.Fprintf(a.out, "Aliases: %s\n", strings.Join(output.AvailableFormatAliases(), ", "))
			return nil
		},
	}
}
