package main

import (
	"github.com/spf13/cobra"

	"suimei/internal/domain"
)

func chartCmd(a *app) *cobra.Command {
	var flags birthFlags
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Compute the four pillars, strength and luck pillars",
		Example: "  suimei chart -d 1990-01-01 -t 12:00 -g male\n" +
			"  suimei chart -d 1985-06-15 -g female --tz Asia/Shanghai --json",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := flags.birth()
			if err != nil {
				return err
			}
			view, err := a.charts.ComputeChartView(cmd.Context(), b)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), view, domain.FormatChart(view))
		},
	}
	flags.register(cmd, true)
	return cmd
}
