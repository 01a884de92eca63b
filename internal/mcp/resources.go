package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerResources(server *mcp.Server, charts ChartComputer) {
	static := []struct {
		uri, name, description string
		payload                func() any
	}{
		{"bazi://stems", "stems", "The ten heavenly stems with element and polarity", func() any { return stemTable() }},
		{"bazi://branches", "branches", "The twelve earthly branches with hour windows and hidden stems", func() any { return branchTable() }},
		{"bazi://ten-gods", "ten-gods", "The ten gods and their categories", func() any { return tenGodTable() }},
		{"bazi://twelve-stages", "twelve-stages", "The twelve life stages with energy and vigor", func() any { return stageTable() }},
	}
	for _, r := range static {
		payload := r.payload
		server.AddResource(&mcp.Resource{
			URI:         r.uri,
			Name:        r.name,
			Description: r.description,
			MIMEType:    "application/json",
		}, func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
			return jsonResource(req.Params.URI, payload())
		})
	}

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "bazi://annual/{year}",
		Name:        "annual-pillar",
		Description: "The sexagenary pillar governing a Gregorian year",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if charts == nil {
			return nil, fmt.Errorf("chart service unavailable")
		}
		parsed, err := url.Parse(req.Params.URI)
		if err != nil || parsed.Scheme != "bazi" || parsed.Host != "annual" {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		year, err := parseYear(parsed.Path)
		if err != nil {
			return nil, err
		}
		view, err := charts.Annual(ctx, year, nil)
		if err != nil {
			return nil, err
		}
		return jsonResource(req.Params.URI, annualPillarOutput{Annual: view})
	})
}

func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(body),
		}},
	}, nil
}
