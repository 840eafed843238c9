package engine

// ============================================================================
// CHART BUILDER — Produces ChartConfig from SummaryRows
// ============================================================================
// One stacked series per severity; categories keep row order. The borough
// facet is drawn as a tile grid by renderers, the others as stacked bars.
// ============================================================================

// SeverityColors is the palette of the severity layers.
var SeverityColors = map[Severity]string{
	SeverityFatal:  "#98abc5",
	SeveritySevere: "#7b6888",
	SeveritySlight: "#ff8c00",
}

// BuildChart produces a ChartConfig for one facet's rows.
func BuildChart(title string, facet Facet, rows []SummaryRow, state FilterState) *ChartConfig {
	chartType := "stacked_bar"
	if facet == FacetBorough {
		chartType = "grid"
	}

	config := &ChartConfig{
		ChartType:  chartType,
		Title:      title,
		XAxis:      LabelForFacet(facet),
		YAxis:      LabelForCount(facet),
		Categories: make([]string, 0, len(rows)),
		Selected:   selectedValue(facet, state),
		ShowLegend: true,
	}
	for _, r := range rows {
		config.Categories = append(config.Categories, r.Category)
	}

	config.Series = buildSeverityLayers(rows)
	config.Colors = make([]string, 0, len(config.Series))
	for _, s := range config.Series {
		config.Colors = append(config.Colors, s.Color)
	}
	return config
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

func buildSeverityLayers(rows []SummaryRow) []ChartSeries {
	series := make([]ChartSeries, 0, len(AllSeverities))
	for _, sev := range AllSeverities {
		points := make([]ChartPoint, 0, len(rows))
		for _, r := range rows {
			points = append(points, ChartPoint{Label: r.Category, Value: r.Count(sev)})
		}
		series = append(series, ChartSeries{
			Name:  string(sev),
			Data:  points,
			Color: SeverityColors[sev],
		})
	}
	return series
}

func selectedValue(facet Facet, state FilterState) string {
	switch facet {
	case FacetAge:
		if band, ok := state.Age.Get(); ok {
			return band.String()
		}
	case FacetMode:
		if mode, ok := state.Mode.Get(); ok {
			return mode
		}
	case FacetBorough:
		if b, ok := state.Borough.Get(); ok {
			return b
		}
	}
	return ""
}

// TitleForFacet returns the heading of a facet's chart or table.
func TitleForFacet(facet Facet) string {
	switch facet {
	case FacetSeverity:
		return "Accidents by severity"
	case FacetAge:
		return "Casualties by age band"
	case FacetMode:
		return "Vehicles by mode"
	case FacetBorough:
		return "Casualties by borough"
	}
	return LabelForCount(facet)
}

// LabelForFacet returns the axis label for a facet's categories.
func LabelForFacet(facet Facet) string {
	switch facet {
	case FacetSeverity:
		return "Severity"
	case FacetAge:
		return "Age band"
	case FacetMode:
		return "Vehicle / casualty mode"
	case FacetBorough:
		return "Borough"
	}
	return "Category"
}

// LabelForCount returns what a facet's totals count.
func LabelForCount(facet Facet) string {
	switch facet {
	case FacetSeverity:
		return "Accidents"
	case FacetMode:
		return "Vehicles"
	default:
		return "Casualties"
	}
}
