package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rpgo/savings-calculator/internal/config"
)

func (a *app) newExampleCmd() *cobra.Command {
	var (
		outPath string
		force   bool
	)
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write an example scenario file (YAML, or TOML for .toml names)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(outPath); err == nil && !force {
				return fmt.Errorf("%s already exists; use --force to overwrite", outPath)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			example := config.NewInputParser().CreateExampleConfiguration()
			if err := config.SaveConfiguration(example, outPath); err != nil {
				return fmt.Errorf("failed to write example: %w", err)
			}
			a.printf("Example scenarios written to %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "scenarios.yaml", "Destination file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
