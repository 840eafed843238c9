package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/spektr-org/crashlens/engine"
	"github.com/spektr-org/crashlens/helpers"
	"github.com/spektr-org/crashlens/internal/monitoring"
)

// ============================================================================
// OUTPUT
// ============================================================================

// openOutput returns the command's stdout, or path when set.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() {
		f.Close()
		monitoring.Logf("📄 Written to %s", path)
	}, nil
}

func writeJSON(w io.Writer, v interface{}, format string) error {
	var out []byte
	var err error

	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func writeSnapshotCSV(w io.Writer, snap engine.Snapshot) error {
	return helpers.WriteSnapshotCSV(w, snap)
}

func writeRowsCSV(w io.Writer, facet engine.Facet, rows []engine.SummaryRow) error {
	return helpers.WriteRowsCSV(w, facet, rows)
}

// writeTableCSV writes one facet as the table view: formatted counts with a
// totals line at the end.
func writeTableCSV(w io.Writer, facet engine.Facet, rows []engine.SummaryRow) error {
	table := engine.BuildTable(engine.TitleForFacet(facet), facet, rows)
	total := []string{table.Summary.Label}
	for _, c := range table.Columns[1:] {
		total = append(total, table.Summary.Values[c.Key])
	}
	table.Rows = append(table.Rows, total)
	return helpers.WriteTableCSV(w, table)
}

// writeChartCSV writes one facet as chart series, one column per severity.
func writeChartCSV(w io.Writer, facet engine.Facet, rows []engine.SummaryRow, state engine.FilterState) error {
	return helpers.WriteChartCSV(w, engine.BuildChart(engine.TitleForFacet(facet), facet, rows, state))
}

// writeText prints the one-line summary and every non-empty category.
func writeText(w io.Writer, snap engine.Snapshot) error {
	fmt.Fprintln(w, snap.Summary)

	sections := []struct {
		title string
		rows  []engine.SummaryRow
	}{
		{"Severity", snap.Severities},
		{"Age band", snap.Ages},
		{"Mode", snap.Modes},
		{"Borough", snap.Boroughs},
	}
	for _, s := range sections {
		fmt.Fprintf(w, "\n%s\n", s.title)
		shown := 0
		for _, r := range s.rows {
			if r.Total == 0 {
				continue
			}
			fmt.Fprintf(w, "  %-24s %8s  (%s slight, %s severe, %s fatal)\n", r.Category,
				engine.FormatInt(r.Total), engine.FormatInt(r.Slight), engine.FormatInt(r.Severe), engine.FormatInt(r.Fatal))
			shown++
		}
		if shown == 0 {
			fmt.Fprintln(w, "  (none)")
		}
	}
	return nil
}
