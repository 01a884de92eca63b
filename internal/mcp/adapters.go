package mcp

import (
	"context"

	"suimei/internal/domain"
)

// ChartComputer exposes the chart operations served over MCP.
type ChartComputer interface {
	ComputeChartView(ctx context.Context, b domain.BirthData) (domain.ChartView, error)
	Timeline(ctx context.Context, req domain.TimelineRequest) (domain.TimelineView, error)
	Annual(ctx context.Context, year int, birth *domain.BirthData) (domain.AnnualView, error)
}
