// Package views adapts the dashboard's dependent views onto renderer
// collaborators. Each view owns one aggregation and one renderer; clicks
// are turned into facet changes with toggle semantics and sent back to the
// dashboard.
package views

import (
	"fmt"
	"sync"

	"github.com/spektr-org/crashlens/engine"
)

// ============================================================================
// RENDERER CONTRACTS — what a drawing backend must provide
// ============================================================================

// RowsRenderer draws one facet's summary rows.
type RowsRenderer interface {
	RenderRows(facet engine.Facet, rows []engine.SummaryRow, state engine.FilterState)
	// HighlightRows redraws only the active selection, rows unchanged.
	HighlightRows(facet engine.Facet, state engine.FilterState)
}

// PointsRenderer draws the filtered accidents on the map.
type PointsRenderer interface {
	RenderPoints(points []engine.MapPoint, state engine.FilterState)
}

// DetailRenderer draws the radial detail of one accident.
type DetailRenderer interface {
	RenderDetail(detail *engine.DetailData)
}

// Emitter is the dashboard as seen from a view. *engine.Dashboard satisfies it.
type Emitter interface {
	Apply(change engine.FacetChange) engine.FilterState
	State() engine.FilterState
	ShowDetail(id string) (*engine.DetailData, error)
}

// ============================================================================
// FACET VIEW — borough, age, mode, severity
// ============================================================================

// FacetView aggregates the filtered records along its own facet.
type FacetView struct {
	facet    engine.Facet
	domain   engine.Domain
	renderer RowsRenderer
	emitter  Emitter

	mu   sync.Mutex
	rows []engine.SummaryRow
}

func newFacetView(facet engine.Facet, domain engine.Domain, r RowsRenderer, e Emitter) *FacetView {
	return &FacetView{facet: facet, domain: domain, renderer: r, emitter: e}
}

// NewBoroughView creates the borough choropleth view.
func NewBoroughView(domain engine.Domain, r RowsRenderer, e Emitter) *FacetView {
	return newFacetView(engine.FacetBorough, domain, r, e)
}

// NewAgeView creates the age-band bar view.
func NewAgeView(domain engine.Domain, r RowsRenderer, e Emitter) *FacetView {
	return newFacetView(engine.FacetAge, domain, r, e)
}

// NewModeView creates the vehicle/casualty mode bar view.
func NewModeView(domain engine.Domain, r RowsRenderer, e Emitter) *FacetView {
	return newFacetView(engine.FacetMode, domain, r, e)
}

// NewSeverityView creates the severity toggle view.
func NewSeverityView(domain engine.Domain, r RowsRenderer, e Emitter) *FacetView {
	return newFacetView(engine.FacetSeverity, domain, r, e)
}

// OwnFacet returns the facet this view changes when clicked.
func (v *FacetView) OwnFacet() engine.Facet { return v.facet }

// Update recomputes the rows and pushes them to the renderer.
func (v *FacetView) Update(filtered engine.RecordSet, state engine.FilterState) {
	rows := engine.Aggregate(filtered, v.facet, v.domain, state.Severity)
	v.mu.Lock()
	v.rows = rows
	v.mu.Unlock()
	v.renderer.RenderRows(v.facet, rows, state)
}

// Highlight refreshes the selection without recomputing rows.
func (v *FacetView) Highlight(state engine.FilterState) {
	v.renderer.HighlightRows(v.facet, state)
}

// Rows returns the rows last pushed to the renderer.
func (v *FacetView) Rows() []engine.SummaryRow {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rows
}

// Click toggles category on this view's facet. For severity it flips one
// checkbox; otherwise it selects category or clears the facet when category
// is already selected.
func (v *FacetView) Click(category string) (engine.FilterState, error) {
	change, err := engine.ParseToggle(v.emitter.State(), v.domain, v.facet.String(), category)
	if err != nil {
		return v.emitter.State(), fmt.Errorf("%s view: %w", v.facet, err)
	}
	return v.emitter.Apply(change), nil
}

// ============================================================================
// MAP VIEW
// ============================================================================

// MapView shows every filtered accident as a point. It owns no facet.
type MapView struct {
	renderer PointsRenderer
	emitter  Emitter
}

// NewMapView creates the map view.
func NewMapView(r PointsRenderer, e Emitter) *MapView {
	return &MapView{renderer: r, emitter: e}
}

// Update pushes the filtered accidents to the renderer.
func (v *MapView) Update(filtered engine.RecordSet, state engine.FilterState) {
	v.renderer.RenderPoints(engine.MapPoints(filtered), state)
}

// Highlight is a no-op: the map has no selection of its own.
func (v *MapView) Highlight(engine.FilterState) {}

// Click opens the detail view for the accident id.
func (v *MapView) Click(id string) error {
	_, err := v.emitter.ShowDetail(id)
	return err
}

// ============================================================================
// DETAIL VIEW
// ============================================================================

// DetailView forwards single-accident details to its renderer.
type DetailView struct {
	renderer DetailRenderer
}

// NewDetailView creates the accident-detail view.
func NewDetailView(r DetailRenderer) *DetailView {
	return &DetailView{renderer: r}
}

// ShowDetail implements engine.DetailView.
func (v *DetailView) ShowDetail(detail *engine.DetailData) {
	v.renderer.RenderDetail(detail)
}

// ============================================================================
// WIRING
// ============================================================================

// Renderer draws every view. render/echarts.Page implements it.
type Renderer interface {
	RowsRenderer
	PointsRenderer
	DetailRenderer
}

// Set holds the standard views of one dashboard.
type Set struct {
	Borough  *FacetView
	Age      *FacetView
	Mode     *FacetView
	Severity *FacetView
	Map      *MapView
	Detail   *DetailView
}

// Attach creates the standard views over r, registers them on d and draws
// them once.
func Attach(d *engine.Dashboard, r Renderer) *Set {
	domain := d.Domain()
	s := &Set{
		Borough:  NewBoroughView(domain, r, d),
		Age:      NewAgeView(domain, r, d),
		Mode:     NewModeView(domain, r, d),
		Severity: NewSeverityView(domain, r, d),
		Map:      NewMapView(r, d),
		Detail:   NewDetailView(r),
	}
	d.Register(s.Severity, s.Borough, s.Age, s.Mode, s.Map)
	d.RegisterDetail(s.Detail)
	d.Refresh()
	return s
}

// Facet returns the view owning f, or nil.
func (s *Set) Facet(f engine.Facet) *FacetView {
	switch f {
	case engine.FacetBorough:
		return s.Borough
	case engine.FacetAge:
		return s.Age
	case engine.FacetMode:
		return s.Mode
	case engine.FacetSeverity:
		return s.Severity
	}
	return nil
}
