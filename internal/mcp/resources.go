// ABOUTME: MCP resource implementations for the health dashboard.
// ABOUTME: Provides vitral://dashboard and vitral://records/recent resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	dashboardURI     = "vitral://dashboard"
	recentRecordsURI = "vitral://records/recent"
	recentLimit      = 7
)

func (s *Server) registerResources() {
	// vitral://dashboard - the assembled dashboard for the latest day
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         dashboardURI,
		Name:        "Health Dashboard",
		Description: "Health score, ranked metric cards, and readouts for the latest day",
		MIMEType:    "application/json",
	}, s.handleDashboardResource)

	// vitral://records/recent - last week of raw records
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentRecordsURI,
		Name:        "Recent Daily Records",
		Description: "The last 7 daily records, newest first",
		MIMEType:    "application/json",
	}, s.handleRecentResource)
}

// Resource handlers

func (s *Server) handleDashboardResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(dashboardURI, s.svc.Dashboard(ctx))
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	res := s.svc.Window(ctx)
	records := res.Records
	if len(records) > recentLimit {
		records = records[:recentLimit]
	}

	return jsonResource(recentRecordsURI, map[string]any{
		"failed":  res.Failed,
		"records": records,
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
