package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/savings-calculator/internal/config"
)

func (a *app) newScenariosCmd() *cobra.Command {
	var (
		format    string
		outPath   string
		start     string
		maxMonths int
	)
	cmd := &cobra.Command{
		Use:   "scenarios <file.yaml|file.toml>",
		Short: "Run and compare every scenario in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			if maxMonths < 0 {
				return fmt.Errorf("--max-months cannot be negative")
			}
			if maxMonths > 0 {
				cfg.MaxMonths = maxMonths
			}
			if start != "" {
				if cfg.StartDate, err = parseStartFlag(start); err != nil {
					return err
				}
			}

			svc, cleanup := a.newService(cmd.Context(), cfg.MaxMonths)
			defer cleanup()

			a.logger.Debugf("running %d scenarios from %s", len(cfg.Scenarios), args[0])
			cmp, err := svc.RunScenarios(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return a.writeReport(cmp, a.reportFormat(format), outPath)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (see 'savings formats')")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVar(&start, "start", "", "Start month YYYY-MM, overrides the file's start_date")
	cmd.Flags().IntVar(&maxMonths, "max-months", 0, "Iteration ceiling in months, overrides the file")
	return cmd
}
