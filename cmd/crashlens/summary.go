package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spektr-org/crashlens/engine"
)

func newSummaryCmd(g *globalOptions) *cobra.Command {
	var (
		filters   filterOptions
		format    string
		outFile   string
		facetName string
		sortBy    string
	)
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print every view's rows for one filter state",
		Example: `  crashlens summary --format pretty
  crashlens summary --severity Slight,Severe,Fatal --borough Camden --format csv --out camden.csv
  crashlens summary --mode Pedestrian --age 5-11 --format text
  crashlens summary --facet borough --sort total --format table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := engine.ParseSortOrder(sortBy)
			if err != nil {
				return err
			}
			var facet engine.Facet
			hasFacet := facetName != ""
			if hasFacet {
				if facet, err = engine.ParseFacet(facetName); err != nil {
					return err
				}
			}
			if (format == "table" || format == "chart") && !hasFacet {
				return fmt.Errorf("--format %s needs --facet", format)
			}

			_, d, err := g.openDashboard()
			if err != nil {
				return err
			}
			if err := filters.apply(d); err != nil {
				return err
			}

			snap := d.Snapshot()
			for _, f := range engine.Facets {
				engine.SortRows(snap.Rows(f), order)
			}

			w, closeOut, err := openOutput(cmd, outFile)
			if err != nil {
				return err
			}
			defer closeOut()

			switch format {
			case "json", "pretty":
				if hasFacet {
					return writeJSON(w, snap.Rows(facet), format)
				}
				return writeJSON(w, snap, format)
			case "csv":
				if hasFacet {
					return writeRowsCSV(w, facet, snap.Rows(facet))
				}
				return writeSnapshotCSV(w, snap)
			case "table":
				return writeTableCSV(w, facet, snap.Rows(facet))
			case "chart":
				return writeChartCSV(w, facet, snap.Rows(facet), snap.State)
			case "text":
				return writeText(w, snap)
			}
			return fmt.Errorf("unknown format %q: want json, pretty, csv, table, chart or text", format)
		},
	}
	filters.register(cmd)
	cmd.Flags().StringVar(&format, "format", "json", "output format: json, pretty, csv, table, chart, text")
	cmd.Flags().StringVar(&outFile, "out", "", "write output to file instead of stdout")
	cmd.Flags().StringVar(&facetName, "facet", "", "only this facet: severity, age, mode, borough")
	cmd.Flags().StringVar(&sortBy, "sort", "", "row order: domain, total, total_asc, category")
	return cmd
}
