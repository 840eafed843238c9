package helpers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spektr-org/crashlens/engine"
	"github.com/spektr-org/crashlens/internal/monitoring"
)

// ============================================================================
// JSON HELPER — Parses the accident dataset into []engine.AccidentRecord
// ============================================================================
// Input is one JSON array as published by the TfL accident-stats API.
// Ids may be numbers or strings, dates may be RFC 3339 or a bare date.
// Records are returned raw; engine.NewDataset normalizes them.
// ============================================================================

type rawRecord struct {
	ID         flexID            `json:"id"`
	Severity   string            `json:"severity"`
	Borough    string            `json:"borough"`
	Location   string            `json:"location"`
	Date       string            `json:"date"`
	Lat        float64           `json:"lat"`
	Lon        float64           `json:"lon"`
	Vehicles   []engine.Vehicle  `json:"vehicles"`
	Casualties []engine.Casualty `json:"casualties"`
}

// flexID accepts a JSON string or number.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseRecords decodes a JSON array of accidents. A record with an
// unparseable date keeps the zero time rather than failing the load.
func ParseRecords(data []byte) ([]engine.AccidentRecord, error) {
	var raws []rawRecord
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("failed to decode accidents: %w", err)
	}

	records := make([]engine.AccidentRecord, 0, len(raws))
	badDates := 0
	for i, raw := range raws {
		id := strings.TrimSpace(string(raw.ID))
		if id == "" {
			id = fmt.Sprintf("#%d", i)
		}
		date, ok := parseDate(raw.Date)
		if !ok && raw.Date != "" {
			badDates++
		}
		records = append(records, engine.AccidentRecord{
			ID:         id,
			Severity:   engine.Severity(raw.Severity),
			Borough:    raw.Borough,
			Location:   raw.Location,
			Date:       date,
			Lat:        raw.Lat,
			Lon:        raw.Lon,
			Vehicles:   raw.Vehicles,
			Casualties: raw.Casualties,
		})
	}
	if badDates > 0 {
		monitoring.Logf("⚠️ %d accidents with unreadable dates", badDates)
	}
	return records, nil
}

// LoadFile reads and parses a dataset file.
func LoadFile(path string) ([]engine.AccidentRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	records, err := ParseRecords(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	monitoring.Logf("📊 Loaded %d accidents from %s", len(records), path)
	return records, nil
}

// LoadDataset reads a dataset file and builds the normalized engine.Dataset.
func LoadDataset(path string) (*engine.Dataset, error) {
	records, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return engine.NewDataset(records), nil
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
