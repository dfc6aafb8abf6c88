// ABOUTME: Export and import functionality for mirrored records.
// ABOUTME: Supports JSON, YAML, and Markdown export formats for any Repository.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/vitral/internal/models"
	"github.com/harperreed/vitral/internal/scoring"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for mirrored records.
type ExportData struct {
	Version    string                `json:"version" yaml:"version"`
	ExportedAt time.Time             `json:"exported_at" yaml:"exported_at"`
	Tool       string                `json:"tool" yaml:"tool"`
	Records    []*models.DailyRecord `json:"records" yaml:"records"`
}

func newExportData(records []*models.DailyRecord) *ExportData {
	if records == nil {
		records = []*models.DailyRecord{}
	}
	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "vitral",
		Records:    records,
	}
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	records, err := d.listAllRecords()
	if err != nil {
		return nil, err
	}
	return newExportData(records), nil
}

// ImportData imports data from an export file. Existing days are replaced.
func (d *DB) ImportData(data *ExportData) error {
	for _, r := range data.Records {
		if err := d.UpsertRecord(r); err != nil {
			return fmt.Errorf("import record: %w", err)
		}
	}
	return nil
}

// ExportJSON exports all data as JSON.
func ExportJSON(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML, with records grouped by user.
func ExportYAML(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string                  `yaml:"version"`
		ExportedAt string                  `yaml:"exported_at"`
		Tool       string                  `yaml:"tool"`
		Users      map[string][]yamlRecord `yaml:"users"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Users:      make(map[string][]yamlRecord),
	}

	for _, r := range data.Records {
		yr := yamlRecord{Date: r.Date, Values: make(map[string]float64)}
		for _, k := range models.AllMetricKeys {
			if v := r.Value(k); v != nil {
				yr.Values[string(k)] = *v
			}
		}
		user := r.UserID.String()
		yamlData.Users[user] = append(yamlData.Users[user], yr)
	}

	return yaml.Marshal(yamlData)
}

type yamlRecord struct {
	Date   string             `yaml:"date"`
	Values map[string]float64 `yaml:"values,omitempty"`
}

// ExportMarkdown renders records since the given day as a Markdown table,
// with each evaluated metric annotated by its quality tier.
func ExportMarkdown(repo Repository, since *time.Time) (string, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return "", err
	}

	records := data.Records
	if since != nil {
		cutoff := since.Format(models.DateLayout)
		var filtered []*models.DailyRecord
		for _, r := range records {
			if r.Date >= cutoff {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Vitral Export - %s\n\n", now.Format(models.DateLayout)))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	sb.WriteString("| Date | Score |")
	for _, def := range scoring.Definitions {
		sb.WriteString(" " + def.Label + " |")
	}
	sb.WriteString("\n|------|-------|")
	for range scoring.Definitions {
		sb.WriteString("------|")
	}
	sb.WriteString("\n")

	for _, r := range records {
		sb.WriteString(fmt.Sprintf("| %s | %s |", r.Date, scoring.FormatNumber(r.HealthScore, 0)))
		for _, def := range scoring.Definitions {
			v := r.Value(def.Key)
			cell := scoring.FormatValue(v, def)
			if v != nil {
				cell += " (" + string(scoring.Evaluate(v, def).Tier) + ")"
			}
			sb.WriteString(" " + cell + " |")
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(repo Repository, data []byte) error {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return repo.ImportData(&exportData)
}
