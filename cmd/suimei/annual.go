package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"suimei/internal/domain"
)

func annualCmd(a *app) *cobra.Command {
	var flags birthFlags
	cmd := &cobra.Command{
		Use:   "annual [year]",
		Short: "Show the pillar governing a year, classified against a chart when birth data is given",
		Example: "  suimei annual 2024\n" +
			"  suimei annual 2024 -d 1990-01-01 -g male",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := a.now().Year()
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 || n > 9999 {
					return fmt.Errorf("year must be between 1 and 9999, got %q", args[0])
				}
				year = n
			}

			var birth *domain.BirthData
			if flags.set() {
				b, err := flags.birth()
				if err != nil {
					return err
				}
				birth = &b
			}
			view, err := a.charts.Annual(cmd.Context(), year, birth)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), view, domain.FormatAnnual(view))
		},
	}
	flags.register(cmd, false)
	return cmd
}
