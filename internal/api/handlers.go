// ABOUTME: HTTP handlers for the dashboard API.
// ABOUTME: Encodes JSON responses and maps load failures to 502.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/harperreed/vitral/internal/models"
	"github.com/harperreed/vitral/internal/scoring"
)

type errorResponse struct {
	Error string `json:"error"`
}

type recordsResponse struct {
	Count   int                   `json:"count"`
	Records []*models.DailyRecord `json:"records"`
}

type evaluateResponse struct {
	Metric     models.MetricKey   `json:"metric"`
	Value      *float64           `json:"value"`
	Display    string             `json:"display"`
	Evaluation scoring.Evaluation `json:"evaluation"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d := s.svc.Dashboard(r.Context())
	status := http.StatusOK
	if d.LoadFailed {
		status = http.StatusBadGateway
	}
	s.writeJSON(w, status, d)
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	res := s.svc.Window(r.Context())
	if res.Failed {
		s.writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to load records"})
		return
	}

	records := res.Records
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	s.writeJSON(w, http.StatusOK, recordsResponse{Count: len(records), Records: records})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	key := models.MetricKey(mux.Vars(r)["key"])
	def, ok := scoring.DefinitionFor(key)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown metric: " + string(key)})
		return
	}

	var value *float64
	if v := r.URL.Query().Get("value"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "value must be a number"})
			return
		}
		value = &f
	}

	s.writeJSON(w, http.StatusOK, evaluateResponse{
		Metric:     key,
		Value:      value,
		Display:    scoring.FormatValue(value, def),
		Evaluation: scoring.Evaluate(value, def),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}
