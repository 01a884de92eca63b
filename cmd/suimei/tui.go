package main

import (
	"github.com/spf13/cobra"

	"suimei/internal/advisor"
	"suimei/internal/tui"
	"suimei/pkg/tracing"
)

func tuiCmd(a *app) *cobra.Command {
	var flags birthFlags
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := tui.Services{
				Charts:   a.charts,
				Now:      a.now,
				Timezone: a.cfg.CalendarTimezone,
			}
			if a.cfg.OpenAIAPIKey != "" {
				_, tracer := tracing.Noop()
				svc.Reading = advisor.NewAdvisorService(tracer, advisor.NewOpenAIClient(a.cfg.OpenAIAPIKey), a.charts, a.cfg.OpenAIModel)
			}

			m := tui.NewAppModel(svc)
			if flags.set() {
				m.Prefill(flags.date, flags.clock, flags.gender, flags.timezone)
			}
			return a.runProgram(m)
		},
	}
	flags.register(cmd, false)
	return cmd
}
