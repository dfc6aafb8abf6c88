// ABOUTME: REST source for the hosted store's PostgREST endpoint.
// ABOUTME: Sends apikey/bearer headers and eq./gte./order filters.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/vitral/internal/models"
)

const (
	restTable       = "daily_metrics"
	restPath        = "/rest/v1/"
	defaultTimeout  = 15 * time.Second
	maxErrorPreview = 512
)

// REST reads records through the store's HTTP API.
type REST struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewREST creates a REST source rooted at baseURL (the project URL).
func NewREST(baseURL, apiKey string) (*REST, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("rest source: base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("rest source: invalid base URL: %w", err)
	}
	return &REST{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultTimeout},
	}, nil
}

// WithHTTPClient replaces the HTTP client.
func (s *REST) WithHTTPClient(c *http.Client) *REST {
	s.client = c
	return s
}

// Name identifies the source in logs.
func (s *REST) Name() string {
	return "rest"
}

// Fetch requests the window for q.UserID.
func (s *REST) Fetch(ctx context.Context, q Query) ([]*models.DailyRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.requestURL(q), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("apikey", s.apiKey)
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", restTable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorPreview))
		return nil, fmt.Errorf("request %s: status %d: %s", restTable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var records []*models.DailyRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", restTable, err)
	}
	return records, nil
}

// Close is a no-op.
func (s *REST) Close() error {
	return nil
}

func (s *REST) requestURL(q Query) string {
	v := url.Values{}
	v.Set("select", "*")
	v.Set("user_id", "eq."+q.UserID.String())
	v.Set("date", "gte."+q.SinceDate())
	v.Set("order", "date.desc")
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return s.baseURL + restPath + restTable + "?" + v.Encode()
}
