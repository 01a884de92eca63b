package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(server *mcp.Server, charts ChartComputer) {
	// ChartView carries a time.Time, so the tool publishes no output schema and the view
	// is returned as untyped structured content.
	mcp.AddTool(server, &mcp.Tool{
		Name:        "chart_compute",
		Description: "Compute the four-pillar chart, day-master strength and luck pillars for a birth",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in chartComputeInput) (*mcp.CallToolResult, any, error) {
		if charts == nil {
			return nil, nil, fmt.Errorf("chart service unavailable")
		}
		view, err := charts.ComputeChartView(ctx, in.Birth)
		if err != nil {
			return nil, nil, err
		}
		return nil, view, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "timeline_score",
		Description: "Score money, love, work and health for every year in a window against a birth chart",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in timelineScoreInput) (*mcp.CallToolResult, timelineScoreOutput, error) {
		if charts == nil {
			return nil, timelineScoreOutput{}, fmt.Errorf("chart service unavailable")
		}
		req, err := normalizeTimelineInput(in)
		if err != nil {
			return nil, timelineScoreOutput{}, err
		}
		view, err := charts.Timeline(ctx, req)
		if err != nil {
			return nil, timelineScoreOutput{}, err
		}
		return nil, timelineScoreOutput{Timeline: view}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "annual_pillar",
		Description: "Get the pillar governing a year, optionally classified against a birth chart",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in annualPillarInput) (*mcp.CallToolResult, annualPillarOutput, error) {
		if charts == nil {
			return nil, annualPillarOutput{}, fmt.Errorf("chart service unavailable")
		}
		year, err := normalizeYear(in.Year)
		if err != nil {
			return nil, annualPillarOutput{}, err
		}
		view, err := charts.Annual(ctx, year, in.Birth)
		if err != nil {
			return nil, annualPillarOutput{}, err
		}
		return nil, annualPillarOutput{Annual: view}, nil
	})
}
