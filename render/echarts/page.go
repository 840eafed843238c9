// Package echarts is a renderer collaborator that draws every dashboard
// view into a single go-echarts HTML page.
package echarts

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/spektr-org/crashlens/engine"
)

// ============================================================================
// PAGE — latest output of every view, rendered on demand
// ============================================================================
// The dashboard pushes rows, points and details as the filter changes; the
// page only keeps the most recent push per view. Render draws the whole
// page from that retained state.
// ============================================================================

// Option configures a Page.
type Option func(*Page)

// WithTitle sets the HTML page title.
func WithTitle(title string) Option {
	return func(p *Page) { p.title = title }
}

// WithAssetsHost serves the echarts scripts from host instead of the CDN.
func WithAssetsHost(host string) Option {
	return func(p *Page) { p.assetsHost = host }
}

// Page implements the views renderer contracts.
type Page struct {
	title      string
	assetsHost string

	mu     sync.Mutex
	rows   map[engine.Facet][]engine.SummaryRow
	state  engine.FilterState
	points []engine.MapPoint
	detail *engine.DetailData
}

// NewPage creates an empty page.
func NewPage(options ...Option) *Page {
	p := &Page{
		title: "London road accidents",
		rows:  make(map[engine.Facet][]engine.SummaryRow),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// RenderRows stores the rows of one facet view.
func (p *Page) RenderRows(facet engine.Facet, rows []engine.SummaryRow, state engine.FilterState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rows[facet] = rows
	p.state = state
}

// HighlightRows updates the active selection only.
func (p *Page) HighlightRows(_ engine.Facet, state engine.FilterState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = state
}

// RenderPoints stores the map markers.
func (p *Page) RenderPoints(points []engine.MapPoint, state engine.FilterState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.points = points
	p.state = state
}

// RenderDetail stores the accident shown in the detail view.
func (p *Page) RenderDetail(detail *engine.DetailData) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.detail = detail
}

// Render writes the full HTML page to w.
func (p *Page) Render(w io.Writer) error {
	p.mu.Lock()
	state := p.state
	rows := make(map[engine.Facet][]engine.SummaryRow, len(p.rows))
	for f, r := range p.rows {
		rows[f] = r
	}
	points := p.points
	detail := p.detail
	p.mu.Unlock()

	page := components.NewPage()
	page.PageTitle = p.title
	if p.assetsHost != "" {
		page.SetAssetsHost(p.assetsHost)
	}

	page.AddCharts(
		boroughGrid(rows[engine.FacetBorough], state),
		stackedBar(engine.TitleForFacet(engine.FacetAge), engine.FacetAge, rows[engine.FacetAge], state, p.assetsHost),
		stackedBar(engine.TitleForFacet(engine.FacetMode), engine.FacetMode, rows[engine.FacetMode], state, p.assetsHost),
		stackedBar(engine.TitleForFacet(engine.FacetSeverity), engine.FacetSeverity, rows[engine.FacetSeverity], state, p.assetsHost),
		accidentMap(points, state),
	)
	if detail != nil {
		page.AddCharts(detailRadial(detail))
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// ============================================================================
// CHARTS
// ============================================================================

func stackedBar(title string, facet engine.Facet, rows []engine.SummaryRow, state engine.FilterState, assetsHost string) *charts.Bar {
	config := engine.BuildChart(title, facet, rows, state)

	subtitle := engine.LabelForCount(facet)
	if config.Selected != "" {
		subtitle += " · selected " + config.Selected
	} else if facet == engine.FacetSeverity {
		subtitle += " · showing " + state.Severity.String()
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "360px", AssetsHost: assetsHost}),
		charts.WithTitleOpts(opts.Title{Title: config.Title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(config.ShowLegend), Right: "0"}),
		charts.WithXAxisOpts(opts.XAxis{Name: config.XAxis, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: config.YAxis}),
	)

	bar.SetXAxis(config.Categories)
	for _, s := range config.Series {
		data := make([]opts.BarData, 0, len(s.Data))
		for _, pt := range s.Data {
			data = append(data, opts.BarData{Name: pt.Label, Value: pt.Value})
		}
		bar.AddSeries(s.Name, data,
			charts.WithBarChartOpts(opts.BarChart{Stack: "severity"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
		)
	}
	return bar
}

// boroughGrid draws the choropleth as one tile per borough at its grid
// position, coloured by casualty total.
func boroughGrid(rows []engine.SummaryRow, state engine.FilterState) *charts.Scatter {
	totals := make(map[string]int, len(rows))
	for _, r := range rows {
		totals[r.Category] = r.Total
	}
	peak := engine.MaxTotal(rows)

	selected, _ := state.Borough.Get()
	data := make([]opts.ScatterData, 0, len(engine.LondonBoroughs))
	for _, b := range engine.LondonBoroughs {
		pt := opts.ScatterData{
			Name:       b.Name,
			Value:      []interface{}{b.Col, -b.Row, totals[b.Name]},
			SymbolSize: 40,
			Symbol:     "rect",
		}
		if b.Name == selected {
			pt.SymbolSize = 48
		}
		data = append(data, pt)
	}

	subtitle := "Casualties"
	if selected != "" {
		subtitle += " · selected " + selected
	}

	grid := charts.NewScatter()
	grid.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: engine.TitleForFacet(engine.FacetBorough), Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Show: opts.Bool(false), Min: -1, Max: 8}),
		charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(false), Min: -7, Max: 1}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(peak),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#f2f0f7", "#cbc9e2", "#9e9ac8", "#756bb1", "#54278f"}},
		}),
	)
	grid.AddSeries("boroughs", data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}"}),
	)
	return grid
}

// accidentMap plots every filtered accident by lon/lat, one series per severity.
func accidentMap(points []engine.MapPoint, state engine.FilterState) *charts.Scatter {
	bySeverity := make(map[engine.Severity][]opts.ScatterData, len(engine.AllSeverities))
	for _, pt := range points {
		bySeverity[pt.Severity] = append(bySeverity[pt.Severity], opts.ScatterData{
			Name:       pt.ID,
			Value:      []interface{}{pt.Lon, pt.Lat, pt.Casualties},
			SymbolSize: 4 + 2*pt.Casualties,
		})
	}

	m := charts.NewScatter()
	m.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: "Accidents", Subtitle: fmt.Sprintf("%s shown", engine.FormatInt(len(points)))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "0"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Longitude", Min: "dataMin", Max: "dataMax"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Latitude", Min: "dataMin", Max: "dataMax"}),
	)
	for _, sev := range engine.AllSeverities {
		if !state.Severity.Has(sev) {
			continue
		}
		m.AddSeries(string(sev), bySeverity[sev],
			charts.WithItemStyleOpts(opts.ItemStyle{Color: engine.SeverityColors[sev]}),
		)
	}
	return m
}

// detailRadial places the accident's vehicles and casualties on a circle
// around the accident.
func detailRadial(d *engine.DetailData) *charts.Scatter {
	vehicles := make([]opts.ScatterData, 0, d.Vehicles)
	casualties := make([]opts.ScatterData, 0, d.Casualties)
	for _, s := range d.Spokes {
		rad := s.Angle * math.Pi / 180
		pt := opts.ScatterData{
			Name:       spokeLabel(s),
			Value:      []interface{}{math.Round(math.Sin(rad)*100) / 100, math.Round(math.Cos(rad)*100) / 100},
			SymbolSize: 18,
		}
		if s.Kind == "vehicle" {
			vehicles = append(vehicles, pt)
		} else {
			casualties = append(casualties, pt)
		}
	}

	r := charts.NewScatter()
	r.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "480px", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Accident " + d.ID,
			Subtitle: fmt.Sprintf("%s · %s · %s", d.Severity, d.Borough, d.Location),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Show: opts.Bool(false), Min: -1.5, Max: 1.5}),
		charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(false), Min: -1.5, Max: 1.5}),
	)
	r.AddSeries("vehicles", vehicles, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}"}))
	r.AddSeries("casualties", casualties,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}"}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: engine.SeverityColors[d.Severity]}),
	)
	return r
}

func spokeLabel(s engine.Spoke) string {
	if s.Kind == "vehicle" {
		return s.FullType
	}
	label := s.Class + " " + s.FullType
	if s.Age != nil {
		label += fmt.Sprintf(" (%d)", *s.Age)
	}
	return label
}
