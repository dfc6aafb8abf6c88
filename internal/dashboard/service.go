// ABOUTME: Service ties a record source to dashboard assembly for one user.
// ABOUTME: Shared by the CLI, the HTTP API, and the MCP server.
package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/harperreed/vitral/internal/source"
)

// Service loads a user's trailing window and builds dashboards from it.
type Service struct {
	Source source.Source
	UserID uuid.UUID
	Days   int
	Logger *log.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Window fetches the trailing window. Failures are logged and reported
// through Result.Failed.
func (s *Service) Window(ctx context.Context) source.Result {
	q := source.WindowQuery(s.UserID, s.now(), s.Days)
	return source.FetchWindow(ctx, s.Source, q, s.Logger)
}

// Dashboard fetches the window and builds the dashboard. A failed fetch
// yields an empty dashboard with LoadFailed set.
func (s *Service) Dashboard(ctx context.Context) *Dashboard {
	res := s.Window(ctx)
	d := Build(res.Records, s.now())
	d.LoadFailed = res.Failed
	return d
}
