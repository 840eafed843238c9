package helpers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/spektr-org/crashlens/engine"
)

// ============================================================================
// CSV HELPER — SummaryRows → Sheets-ready CSV
// ============================================================================
// One line per facet category, one column per severity plus the total.
// Snapshots prepend a facet column so all views fit in one sheet.
// ============================================================================

// WriteRowsCSV writes one facet's rows with a header line.
func WriteRowsCSV(w io.Writer, facet engine.Facet, rows []engine.SummaryRow) error {
	cw := csv.NewWriter(w)
	cw.Write(rowsHeader(engine.LabelForFacet(facet), engine.LabelForCount(facet)))
	for _, r := range rows {
		cw.Write(rowRecord(r))
	}
	cw.Flush()
	return cw.Error()
}

// WriteSnapshotCSV writes every facet of a snapshot into one table:
// facet, category, Slight, Severe, Fatal, total.
func WriteSnapshotCSV(w io.Writer, snap engine.Snapshot) error {
	cw := csv.NewWriter(w)
	cw.Write(append([]string{"Facet"}, rowsHeader("Category", "Total")...))

	sections := []struct {
		facet engine.Facet
		rows  []engine.SummaryRow
	}{
		{engine.FacetSeverity, snap.Severities},
		{engine.FacetAge, snap.Ages},
		{engine.FacetMode, snap.Modes},
		{engine.FacetBorough, snap.Boroughs},
	}
	for _, s := range sections {
		for _, r := range s.rows {
			cw.Write(append([]string{s.facet.String()}, rowRecord(r)...))
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteChartCSV writes a chart as label + one column per series.
func WriteChartCSV(w io.Writer, chart *engine.ChartConfig) error {
	if chart == nil || len(chart.Series) == 0 {
		return fmt.Errorf("chart has no series")
	}
	cw := csv.NewWriter(w)

	xLabel := chart.XAxis
	if xLabel == "" {
		xLabel = "Label"
	}
	headers := []string{xLabel}
	for _, s := range chart.Series {
		headers = append(headers, s.Name)
	}
	cw.Write(headers)

	for i, d := range chart.Series[0].Data {
		row := []string{d.Label}
		for _, s := range chart.Series {
			if i < len(s.Data) {
				row = append(row, strconv.Itoa(s.Data[i].Value))
			} else {
				row = append(row, "")
			}
		}
		cw.Write(row)
	}
	cw.Flush()
	return cw.Error()
}

// WriteTableCSV writes a table's column labels and rows.
func WriteTableCSV(w io.Writer, table *engine.TableData) error {
	if table == nil {
		return fmt.Errorf("no table")
	}
	cw := csv.NewWriter(w)
	headers := make([]string, 0, len(table.Columns))
	for _, c := range table.Columns {
		headers = append(headers, c.Label)
	}
	cw.Write(headers)
	for _, row := range table.Rows {
		cw.Write(row)
	}
	cw.Flush()
	return cw.Error()
}

func rowsHeader(category, total string) []string {
	return []string{
		category,
		string(engine.SeveritySlight),
		string(engine.SeveritySevere),
		string(engine.SeverityFatal),
		total,
	}
}

func rowRecord(r engine.SummaryRow) []string {
	return []string{
		r.Category,
		strconv.Itoa(r.Slight),
		strconv.Itoa(r.Severe),
		strconv.Itoa(r.Fatal),
		strconv.Itoa(r.Total),
	}
}
