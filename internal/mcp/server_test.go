// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Runs handlers against a dashboard Service over a temp SQLite mirror.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/harperreed/vitral/internal/dashboard"
	"github.com/harperreed/vitral/internal/models"
	"github.com/harperreed/vitral/internal/scoring"
	"github.com/harperreed/vitral/internal/source"
	"github.com/harperreed/vitral/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var testNow = time.Date(2025, 6, 30, 9, 0, 0, 0, time.UTC)

// setupTestServer creates a server over a temp database seeded with days records.
func setupTestServer(t *testing.T, days int) *Server {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "vitral.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	user := uuid.New()
	for i := 0; i < days; i++ {
		r := models.NewDailyRecord(user, testNow.AddDate(0, 0, -i))
		r.SleepHours = models.Float(7)
		r.RestingHR = models.Float(58)
		r.Steps = models.Float(9000)
		r.StressLevel = models.Float(30)
		r.BodyBattery = models.Float(70)
		if err := db.UpsertRecord(r); err != nil {
			t.Fatalf("Failed to seed record: %v", err)
		}
	}

	server, err := NewServer(&dashboard.Service{
		Source: source.NewLocal(db),
		UserID: user,
		Days:   30,
		Logger: log.New(&bytes.Buffer{}),
		Now:    func() time.Time { return testNow },
	})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server
}

type failingSource struct{}

func (failingSource) Name() string { return "broken" }
func (failingSource) Fetch(context.Context, source.Query) ([]*models.DailyRecord, error) {
	return nil, errors.New("connection refused")
}
func (failingSource) Close() error { return nil }

func TestNewServer(t *testing.T) {
	server := setupTestServer(t, 0)
	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.svc == nil {
		t.Error("Expected non-nil service")
	}
}

func TestNewServerRequiresSource(t *testing.T) {
	if _, err := NewServer(&dashboard.Service{}); err == nil {
		t.Error("Expected error without a source")
	}
}

func TestHandleGetDashboard(t *testing.T) {
	server := setupTestServer(t, 10)

	_, output, err := server.handleGetDashboard(context.Background(), &mcp.CallToolRequest{}, getDashboardInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	d, ok := output.(*dashboard.Dashboard)
	if !ok {
		t.Fatalf("Expected *dashboard.Dashboard, got %T", output)
	}
	if d.Date != "2025-06-30" {
		t.Errorf("Date = %s, want 2025-06-30", d.Date)
	}
	if len(d.Metrics) != len(scoring.Definitions) {
		t.Errorf("Expected %d metric cards, got %d", len(scoring.Definitions), len(d.Metrics))
	}
	if d.Score.Source != dashboard.ScoreComputed {
		t.Errorf("Expected computed score, got %s", d.Score.Source)
	}
}

func TestHandleGetDashboardEmpty(t *testing.T) {
	server := setupTestServer(t, 0)

	_, output, err := server.handleGetDashboard(context.Background(), &mcp.CallToolRequest{}, getDashboardInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	m, ok := output.(map[string]any)
	if !ok || !strings.Contains(m["message"].(string), "No records") {
		t.Errorf("Expected empty message, got %v", output)
	}
}

func TestHandleGetDashboardFailed(t *testing.T) {
	server, err := NewServer(&dashboard.Service{Source: failingSource{}, Logger: log.New(&bytes.Buffer{})})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}

	_, _, err = server.handleGetDashboard(context.Background(), &mcp.CallToolRequest{}, getDashboardInput{})
	if err == nil || !strings.Contains(err.Error(), "broken") {
		t.Errorf("Expected load failure naming the source, got %v", err)
	}
}

func TestHandleListRecords(t *testing.T) {
	server := setupTestServer(t, 10)

	tests := []struct {
		name      string
		limit     int
		wantCount int
	}{
		{"default limit", 0, 10},
		{"limited", 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleListRecords(context.Background(), &mcp.CallToolRequest{}, listRecordsInput{Limit: tt.limit})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			m := output.(map[string]any)
			if m["count"] != tt.wantCount {
				t.Errorf("count = %v, want %d", m["count"], tt.wantCount)
			}
		})
	}
}

func TestHandleEvaluateMetric(t *testing.T) {
	server := setupTestServer(t, 0)
	ctx := context.Background()

	tests := []struct {
		name     string
		input    evaluateMetricInput
		wantTier scoring.Tier
		wantErr  bool
	}{
		{"excellent sleep", evaluateMetricInput{Metric: "sleep_hours", Value: models.Float(8.2)}, scoring.TierExcellent, false},
		{"poor resting hr", evaluateMetricInput{Metric: "resting_hr", Value: models.Float(80)}, scoring.TierPoor, false},
		{"absent value", evaluateMetricInput{Metric: "hrv"}, scoring.TierFair, false},
		{"unknown metric", evaluateMetricInput{Metric: "weight", Value: models.Float(80)}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleEvaluateMetric(ctx, &mcp.CallToolRequest{}, tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if output.Tier != tt.wantTier {
				t.Errorf("Tier = %s, want %s", output.Tier, tt.wantTier)
			}
		})
	}
}

func TestHandleHealthScore(t *testing.T) {
	server := setupTestServer(t, 5)
	ctx := context.Background()

	_, output, err := server.handleHealthScore(ctx, &mcp.CallToolRequest{}, healthScoreInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output.Date != "2025-06-30" {
		t.Errorf("Date = %s, want latest", output.Date)
	}
	if output.Score < 0 || output.Score > 100 {
		t.Errorf("Score out of range: %d", output.Score)
	}

	_, output, err = server.handleHealthScore(ctx, &mcp.CallToolRequest{}, healthScoreInput{Date: "2025-06-28"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output.Date != "2025-06-28" {
		t.Errorf("Date = %s, want 2025-06-28", output.Date)
	}

	if _, _, err := server.handleHealthScore(ctx, &mcp.CallToolRequest{}, healthScoreInput{Date: "2024-01-01"}); err == nil {
		t.Error("Expected error for a day outside the window")
	}
}

func TestHandleDashboardResource(t *testing.T) {
	server := setupTestServer(t, 3)

	result, err := server.handleDashboardResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("Expected 1 content, got %d", len(result.Contents))
	}

	var d dashboard.Dashboard
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &d); err != nil {
		t.Fatalf("Resource is not a dashboard: %v", err)
	}
	if d.Days != 3 {
		t.Errorf("Days = %d, want 3", d.Days)
	}
}

func TestHandleRecentResource(t *testing.T) {
	server := setupTestServer(t, 10)

	result, err := server.handleRecentResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Contents[0].URI != recentRecordsURI {
		t.Errorf("URI = %s", result.Contents[0].URI)
	}

	var payload struct {
		Failed  bool                  `json:"failed"`
		Records []*models.DailyRecord `json:"records"`
	}
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &payload); err != nil {
		t.Fatalf("Failed to decode resource: %v", err)
	}
	if len(payload.Records) != recentLimit {
		t.Errorf("Expected %d records, got %d", recentLimit, len(payload.Records))
	}
}
