package mcp

import (
	"context"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestToolsListAndInvoke(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	srv, charts := testServer()
	session, shutdown, err := connectInMemory(ctx, srv)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer shutdown()
	defer session.Close()

	tools, err := session.ListTools(ctx, &sdkmcp.ListToolsParams{})
	if err != nil {
		t.Fatalf("list tools failed: %v", err)
	}
	if len(tools.Tools) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(tools.Tools))
	}

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "chart_compute", Arguments: map[string]any{"birth": birthArgs()}})
	if err != nil {
		t.Fatalf("call tool failed: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %+v", res.Content)
	}
	var chart struct {
		DayMaster string `json:"day_master"`
		Direction string `json:"luck_direction"`
	}
	if err := decodeToolJSON(res, &chart); err != nil {
		t.Fatalf("decode chart failed: %v", err)
	}
	if chart.DayMaster != "丙" || chart.Direction != "backward" {
		t.Fatalf("unexpected chart summary %+v", chart)
	}
	if charts.lastBirth.Year != 1990 || charts.lastBirth.Hour == nil || *charts.lastBirth.Hour != 12 {
		t.Fatalf("unexpected birth forwarded: %+v", charts.lastBirth)
	}

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "timeline_score", Arguments: map[string]any{"birth": birthArgs(), "start_year": 2024}})
	if err != nil {
		t.Fatalf("timeline tool failed: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected timeline tool error: %+v", res.Content)
	}
	if charts.lastTimeline.StartYear != 2024 || charts.lastTimeline.EndYear != 2024 {
		t.Fatalf("expected single-year window, got %d-%d", charts.lastTimeline.StartYear, charts.lastTimeline.EndYear)
	}

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "annual_pillar", Arguments: map[string]any{"year": 2024, "birth": birthArgs()}})
	if err != nil {
		t.Fatalf("annual tool failed: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected annual tool error: %+v", res.Content)
	}
	var annual annualPillarOutput
	if err := decodeToolJSON(res, &annual); err != nil {
		t.Fatalf("decode annual failed: %v", err)
	}
	if annual.Annual.Pillar.Kanji != "甲辰" || annual.Annual.TenGod == nil || annual.Annual.TenGod.Kanji != "偏印" {
		t.Fatalf("unexpected annual output %+v", annual.Annual)
	}
	if charts.lastYear != 2024 || charts.lastAnnualBy == nil {
		t.Fatal("expected birth data to be forwarded to the annual lookup")
	}
}

func TestToolsValidationFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	srv, _ := testServer()
	session, shutdown, err := connectInMemory(ctx, srv)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer shutdown()
	defer session.Close()

	bad := birthArgs()
	bad["month"] = 2
	bad["day"] = 30
	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "chart_compute", Arguments: map[string]any{"birth": bad}})
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected tool-level error for an impossible date")
	}

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "timeline_score", Arguments: map[string]any{"birth": birthArgs(), "start_year": 2000, "end_year": 2100}})
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected tool-level error for an oversized window")
	}

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "annual_pillar", Arguments: map[string]any{"year": 0}})
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected tool-level error for year zero")
	}
}
