package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"suimei/internal/domain"
)

const defaultTimelineSpan = 10

func timelineCmd(a *app) *cobra.Command {
	var (
		flags    birthFlags
		from, to int
		pngPath  string
	)
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Score every year of a window against the birth chart",
		Example: "  suimei timeline -d 1990-01-01 -t 12:00 -g male --from 2020 --to 2030\n" +
			"  suimei timeline -d 1990-01-01 -g male --png fortune.png",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := flags.birth()
			if err != nil {
				return err
			}
			req := domain.TimelineRequest{Birth: b, StartYear: from, EndYear: to}
			if req.StartYear == 0 {
				req.StartYear = a.now().Year() - defaultTimelineSpan/2
			}
			if req.EndYear == 0 {
				req.EndYear = req.StartYear + defaultTimelineSpan
			}

			if pngPath != "" {
				img, err := a.charts.RenderTimeline(cmd.Context(), req)
				if err != nil {
					return err
				}
				if err := os.WriteFile(pngPath, img.Bytes, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", pngPath, err)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", pngPath, img.Width, img.Height)
				return err
			}

			view, err := a.charts.Timeline(cmd.Context(), req)
			if err != nil {
				return err
			}
			lines := make([]string, 0, len(view.Entries))
			for _, e := range view.Entries {
				lines = append(lines, domain.FormatFortune(e))
			}
			if len(lines) == 0 {
				lines = append(lines, "no scored years in this window (before birth or the first luck pillar)")
			}
			return a.print(cmd.OutOrStdout(), view, strings.Join(lines, "\n"))
		},
	}
	flags.register(cmd, true)
	cmd.Flags().IntVar(&from, "from", 0, "first year (default: five years ago)")
	cmd.Flags().IntVar(&to, "to", 0, "last year (default: from+10)")
	cmd.Flags().StringVar(&pngPath, "png", "", "write the timeline as a PNG chart to this path")
	return cmd
}
