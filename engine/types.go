package engine

import (
	"strings"
	"time"
)

// ============================================================================
// CRASHLENS ENGINE TYPES — Accident records, facets, render-ready output
// ============================================================================
// Records are loaded once and only touched again by the normalization pass.
// Everything downstream (filters, aggregates, builders) reads through
// RecordSet and never mutates a record.
//
// Dependency: engine has no external dependencies beyond internal/monitoring.
// ============================================================================

// ============================================================================
// SEVERITY
// ============================================================================

// Severity is the outcome class of an accident or of a single casualty.
type Severity string

const (
	SeveritySlight Severity = "Slight"
	SeveritySevere Severity = "Severe"
	SeverityFatal  Severity = "Fatal"
)

// AllSeverities lists the three severities in escalation order.
var AllSeverities = []Severity{SeveritySlight, SeveritySevere, SeverityFatal}

// ParseSeverity maps a raw severity string onto the canonical enum.
// The source data spells the middle class "Serious"; it is accepted as Severe.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "slight":
		return SeveritySlight, true
	case "severe", "serious":
		return SeveritySevere, true
	case "fatal":
		return SeverityFatal, true
	}
	return Severity(s), false
}

// Valid reports whether s is one of the three canonical severities.
func (s Severity) Valid() bool {
	return s == SeveritySlight || s == SeveritySevere || s == SeverityFatal
}

// ============================================================================
// RECORD — one accident with its vehicles and casualties
// ============================================================================

// Vehicle is one vehicle involved in an accident.
// After normalization Type holds the coarse category and FullType the raw value.
type Vehicle struct {
	Type     string `json:"type"`
	FullType string `json:"fullType,omitempty"`
}

// Casualty is one person hurt in an accident.
// Mode is the raw casualty mode as loaded; Type/FullType are filled by
// normalization the same way as for vehicles.
type Casualty struct {
	Mode     string   `json:"mode"`
	Type     string   `json:"type,omitempty"`
	FullType string   `json:"fullType,omitempty"`
	Class    string   `json:"class"`
	Age      *int     `json:"age,omitempty"`
	AgeBand  string   `json:"ageBand"`
	Severity Severity `json:"severity"`
}

// HasAge reports whether the casualty's age is known.
func (c Casualty) HasAge() bool { return c.Age != nil }

// AccidentRecord is a single accident.
type AccidentRecord struct {
	ID         string     `json:"id"`
	Severity   Severity   `json:"severity"`
	Borough    string     `json:"borough"`
	Location   string     `json:"location"`
	Date       time.Time  `json:"date"`
	Lat        float64    `json:"lat"`
	Lon        float64    `json:"lon"`
	Vehicles   []Vehicle  `json:"vehicles"`
	Casualties []Casualty `json:"casualties"`
}

// ============================================================================
// SUMMARY ROW — Aggregator output, one per facet category
// ============================================================================

// SummaryRow holds per-severity counts for one facet category.
type SummaryRow struct {
	Category string `json:"category"`
	Slight   int    `json:"Slight"`
	Severe   int    `json:"Severe"`
	Fatal    int    `json:"Fatal"`
	Total    int    `json:"total"`
}

// add credits n to the column for sev. Out-of-domain severities are dropped.
func (r *SummaryRow) add(sev Severity, n int) bool {
	switch sev {
	case SeveritySlight:
		r.Slight += n
	case SeveritySevere:
		r.Severe += n
	case SeverityFatal:
		r.Fatal += n
	default:
		return false
	}
	r.Total += n
	return true
}

// Count returns the column for sev.
func (r SummaryRow) Count(sev Severity) int {
	switch sev {
	case SeveritySlight:
		return r.Slight
	case SeveritySevere:
		return r.Severe
	case SeverityFatal:
		return r.Fatal
	}
	return 0
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render a stacked bar chart for one view.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Categories []string      `json:"categories"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	Selected   string        `json:"selected,omitempty"` // active single-select value, "" when the facet is "all"
	ShowLegend bool          `json:"showLegend"`
}

// ChartSeries is one severity layer of a stacked chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint represents a single data point.
type ChartPoint struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a summary table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// ============================================================================
// DETAIL TYPES — per-accident radial view
// ============================================================================

// DetailData is the render-ready content of the accident-detail view.
type DetailData struct {
	ID         string    `json:"id"`
	Severity   Severity  `json:"severity"`
	Borough    string    `json:"borough"`
	Location   string    `json:"location"`
	Date       time.Time `json:"date"`
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	Vehicles   int       `json:"vehicles"`
	Casualties int       `json:"casualties"`
	Spokes     []Spoke   `json:"spokes"`
}

// Spoke is one participant around the accident centre.
type Spoke struct {
	Kind     string   `json:"kind"` // "vehicle" or "casualty"
	Type     string   `json:"type"`
	FullType string   `json:"fullType"`
	Class    string   `json:"class,omitempty"`
	Age      *int     `json:"age,omitempty"`
	AgeBand  string   `json:"ageBand,omitempty"`
	Severity Severity `json:"severity,omitempty"`
	Angle    float64  `json:"angle"` // degrees, clockwise from north
}

// ============================================================================
// MAP TYPES
// ============================================================================

// MapPoint is one accident position for the map view.
type MapPoint struct {
	ID         string   `json:"id"`
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
	Severity   Severity `json:"severity"`
	Casualties int      `json:"casualties"`
}
