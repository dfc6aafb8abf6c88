// ABOUTME: MCP tool implementations for the health dashboard.
// ABOUTME: Exposes the dashboard, the record window, metric evaluation, and the composite score.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/vitral/internal/models"
	"github.com/harperreed/vitral/internal/scoring"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// get_dashboard
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_dashboard",
		Description: "Get today's health dashboard: score, metrics ranked worst first, and readouts",
	}, s.handleGetDashboard)

	// list_records
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_records",
		Description: "List daily records from the trailing window, newest first",
	}, s.handleListRecords)

	// evaluate_metric
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "evaluate_metric",
		Description: "Classify a value for a metric into excellent, good, fair, or poor",
	}, s.handleEvaluateMetric)

	// health_score
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "health_score",
		Description: "Compute the composite health score for a day in the window",
	}, s.handleHealthScore)
}

// Tool input/output types

type getDashboardInput struct{}

type listRecordsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 30)"`
}

type evaluateMetricInput struct {
	Metric string   `json:"metric" jsonschema:"Metric key (sleep_score, sleep_hours, resting_hr, hrv, steps, stress_level, mvpa_minutes)"`
	Value  *float64 `json:"value,omitempty" jsonschema:"The value to classify; omit for no data"`
}

type evaluateOutput struct {
	Metric  string       `json:"metric"`
	Display string       `json:"display"`
	Tier    scoring.Tier `json:"tier"`
	Label   string       `json:"label"`
	Message string       `json:"message"`
}

type healthScoreInput struct {
	Date string `json:"date,omitempty" jsonschema:"Day (YYYY-MM-DD); defaults to the latest record"`
}

type healthScoreOutput struct {
	Date    string       `json:"date"`
	Score   int          `json:"score"`
	Tier    scoring.Tier `json:"tier"`
	Label   string       `json:"label"`
	Stored  *float64     `json:"stored,omitempty"`
	Message string       `json:"message"`
}

// Tool handlers

func (s *Server) handleGetDashboard(ctx context.Context, req *mcp.CallToolRequest, input getDashboardInput) (*mcp.CallToolResult, any, error) {
	d := s.svc.Dashboard(ctx)
	if d.LoadFailed {
		return nil, nil, fmt.Errorf("failed to load records from %s", s.svc.Source.Name())
	}
	if d.Empty {
		return nil, map[string]any{"message": "No records in the window."}, nil
	}
	return nil, d, nil
}

func (s *Server) handleListRecords(ctx context.Context, req *mcp.CallToolRequest, input listRecordsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 30
	}

	res := s.svc.Window(ctx)
	if res.Failed {
		return nil, nil, fmt.Errorf("failed to load records from %s", s.svc.Source.Name())
	}
	if len(res.Records) == 0 {
		return nil, map[string]any{"message": "No records found."}, nil
	}

	records := res.Records
	if len(records) > input.Limit {
		records = records[:input.Limit]
	}
	return nil, map[string]any{
		"count":   len(records),
		"records": records,
	}, nil
}

func (s *Server) handleEvaluateMetric(ctx context.Context, req *mcp.CallToolRequest, input evaluateMetricInput) (*mcp.CallToolResult, evaluateOutput, error) {
	def, ok := scoring.DefinitionFor(models.MetricKey(input.Metric))
	if !ok {
		return nil, evaluateOutput{}, fmt.Errorf("unknown metric: %s", input.Metric)
	}

	eval := scoring.Evaluate(input.Value, def)
	display := scoring.FormatValue(input.Value, def)

	return nil, evaluateOutput{
		Metric:  input.Metric,
		Display: display,
		Tier:    eval.Tier,
		Label:   eval.Label,
		Message: fmt.Sprintf("%s %s: %s (%s)", def.Label, display, eval.Label, eval.Tier),
	}, nil
}

func (s *Server) handleHealthScore(ctx context.Context, req *mcp.CallToolRequest, input healthScoreInput) (*mcp.CallToolResult, healthScoreOutput, error) {
	res := s.svc.Window(ctx)
	if res.Failed {
		return nil, healthScoreOutput{}, fmt.Errorf("failed to load records from %s", s.svc.Source.Name())
	}
	if len(res.Records) == 0 {
		return nil, healthScoreOutput{}, fmt.Errorf("no records in the window")
	}

	record := res.Records[0]
	if input.Date != "" {
		record = nil
		for _, r := range res.Records {
			if r.Date == input.Date {
				record = r
				break
			}
		}
		if record == nil {
			return nil, healthScoreOutput{}, fmt.Errorf("no record for %s", input.Date)
		}
	}

	score := scoring.HealthScore(record)
	f := float64(score)
	return nil, healthScoreOutput{
		Date:    record.Date,
		Score:   score,
		Tier:    scoring.ScoreTier(f),
		Label:   scoring.ScoreLabel(&f),
		Stored:  record.HealthScore,
		Message: fmt.Sprintf("Health score for %s: %d (%s)", record.Date, score, scoring.ScoreLabel(&f)),
	}, nil
}
