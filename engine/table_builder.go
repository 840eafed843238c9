package engine

import (
	"fmt"
)

// ============================================================================
// TABLE BUILDER — Produces TableData from SummaryRows
// ============================================================================

// BuildTable produces a TableData with one row per category, a column per
// severity and the row total.
func BuildTable(title string, facet Facet, rows []SummaryRow) *TableData {
	columns := []Column{
		{Key: "category", Label: LabelForFacet(facet), Type: "text", Align: "left"},
		{Key: string(SeveritySlight), Label: string(SeveritySlight), Type: "number", Align: "right"},
		{Key: string(SeveritySevere), Label: string(SeveritySevere), Type: "number", Align: "right"},
		{Key: string(SeverityFatal), Label: string(SeverityFatal), Type: "number", Align: "right"},
		{Key: "total", Label: LabelForCount(facet), Type: "number", Align: "right"},
	}

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Category,
			FormatInt(r.Slight),
			FormatInt(r.Severe),
			FormatInt(r.Fatal),
			FormatInt(r.Total),
		})
	}

	total := SumRows(rows)
	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    out,
		Summary: &Summary{
			Label: fmt.Sprintf("Total (%d categories)", len(rows)),
			Values: map[string]string{
				string(SeveritySlight): FormatInt(total.Slight),
				string(SeveritySevere): FormatInt(total.Severe),
				string(SeverityFatal):  FormatInt(total.Fatal),
				"total":                FormatInt(total.Total),
			},
		},
	}
}
