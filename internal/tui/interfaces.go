package tui

import (
	"context"
	"time"

	"suimei/internal/domain"
)

// ChartQuerier computes charts and scored timelines for the TUI.
type ChartQuerier interface {
	ComputeChartView(ctx context.Context, b domain.BirthData) (domain.ChartView, error)
	Timeline(ctx context.Context, req domain.TimelineRequest) (domain.TimelineView, error)
}

// ReadingQuerier provides the optional narrative reading.
type ReadingQuerier interface {
	Reading(ctx context.Context, b domain.BirthData, year int) (domain.Reading, error)
}

// Services bundles the dependencies injected into the TUI.
type Services struct {
	Charts   ChartQuerier
	Reading  ReadingQuerier
	Username string
	// Now supplies the current year the luck and timeline tabs centre on.
	Now func() time.Time
	// Timezone is the default zone shown in the birth form.
	Timezone string
}

func (s Services) currentYear() int {
	if s.Now == nil {
		return time.Now().Year()
	}
	return s.Now().Year()
}
