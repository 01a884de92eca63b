package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/trace"

	"suimei/internal/calendar"
	"suimei/internal/domain"
	"suimei/internal/service"
)

// recordingCharts forwards to a real chart service backed by the lunar calendar
// and remembers the last request it saw.
type recordingCharts struct {
	svc *service.ChartService

	lastBirth    domain.BirthData
	lastTimeline domain.TimelineRequest
	lastYear     int
	lastAnnualBy *domain.BirthData
}

func (r *recordingCharts) ComputeChartView(ctx context.Context, b domain.BirthData) (domain.ChartView, error) {
	r.lastBirth = b
	return r.svc.ComputeChartView(ctx, b)
}

func (r *recordingCharts) Timeline(ctx context.Context, req domain.TimelineRequest) (domain.TimelineView, error) {
	r.lastTimeline = req
	return r.svc.Timeline(ctx, req)
}

func (r *recordingCharts) Annual(ctx context.Context, year int, birth *domain.BirthData) (domain.AnnualView, error) {
	r.lastYear = year
	r.lastAnnualBy = birth
	return r.svc.Annual(ctx, year, birth)
}

func testServer() (*sdkmcp.Server, *recordingCharts) {
	tracer := trace.NewNoopTracerProvider().Tracer("mcp-test")
	charts := &recordingCharts{
		svc: service.NewChartService(tracer, func(tz string) (calendar.Oracle, error) {
			return calendar.NewLunar(tz)
		}, service.WithTimelineMaxYears(30)),
	}
	return NewServer(tracer, charts, ServerConfig{RequestTimeout: 2 * time.Second}), charts
}

func birthArgs() map[string]any {
	return map[string]any{"year": 1990, "month": 1, "day": 1, "hour": 12, "minute": 0, "gender": "male"}
}

func connectInMemory(ctx context.Context, srv *sdkmcp.Server) (*sdkmcp.ClientSession, context.CancelFunc, error) {
	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	runCtx, cancel := context.WithCancel(ctx)
	go func() { _ = srv.Run(runCtx, serverTransport) }()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "mcp-test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	return session, cancel, nil
}

type authRoundTripper struct {
	token string
	base  http.RoundTripper
}

func (t *authRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if t.token != "" {
		clone.Header.Set("Authorization", "Bearer "+t.token)
	}
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(clone)
}

func decodeResourceJSON(result *sdkmcp.ReadResourceResult, out any) error {
	if len(result.Contents) == 0 {
		return nil
	}
	return json.Unmarshal([]byte(result.Contents[0].Text), out)
}

func decodeToolJSON(result *sdkmcp.CallToolResult, out any) error {
	for _, c := range result.Content {
		if text, ok := c.(*sdkmcp.TextContent); ok {
			return json.Unmarshal([]byte(text.Text), out)
		}
	}
	return fmt.Errorf("no text content in tool result")
}
