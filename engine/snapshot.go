package engine

import (
	"encoding/json"
)

// ============================================================================
// SNAPSHOT — Render-ready state of every view at once
// ============================================================================
// For stateless renderers (HTTP, CLI) that redraw everything per request.
// Borough rows are computed over the set filtered by every facet except
// borough, so the choropleth always shows the per-borough context.
// ============================================================================

// StateView is the JSON form of a FilterState: "all" or the selected value.
type StateView struct {
	Severity []Severity `json:"severity"`
	Age      string     `json:"age"`
	Mode     string     `json:"mode"`
	Borough  string     `json:"borough"`
}

// Export converts s into its JSON form.
func (s FilterState) Export() StateView {
	return StateView{
		Severity: s.Severity.Slice(),
		Age:      s.Age.String(),
		Mode:     s.Mode.String(),
		Borough:  s.Borough.String(),
	}
}

// MarshalJSON encodes the state as a StateView.
func (s FilterState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Export())
}

// Snapshot holds every view's output for one FilterState.
type Snapshot struct {
	State      FilterState  `json:"state"`
	Summary    string       `json:"summary"`
	Accidents  int          `json:"accidents"`
	Casualties int          `json:"casualties"`
	Boroughs   []SummaryRow `json:"boroughs"`
	Ages       []SummaryRow `json:"ages"`
	Modes      []SummaryRow `json:"modes"`
	Severities []SummaryRow `json:"severities"`
	Points     []MapPoint   `json:"points"`
}

// BuildSnapshot filters ds by state and aggregates every facet.
func BuildSnapshot(ds *Dataset, state FilterState) Snapshot {
	filtered := FilterRecords(ds.All(), state)
	return buildSnapshot(ds, state, filtered, FilterRecordsExcept(ds.All(), state, FacetBorough))
}

// Snapshot returns every view's output for the current state.
func (d *Dashboard) Snapshot() Snapshot {
	state := d.State()
	return buildSnapshot(d.ds, state, d.filtered(state), d.filteredExcept(state, FacetBorough))
}

func buildSnapshot(ds *Dataset, state FilterState, filtered, boroughContext RecordSet) Snapshot {
	domain := ds.Domain()
	return Snapshot{
		State:      state,
		Summary:    Summarize(filtered, state),
		Accidents:  filtered.Len(),
		Casualties: CountCasualties(filtered),
		Boroughs:   AggregateBoroughs(boroughContext, domain.Boroughs),
		Ages:       AggregateAges(filtered, domain.AgeBands, state.Severity),
		Modes:      AggregateModes(filtered, domain.ModeTypes),
		Severities: AggregateSeverities(filtered),
		Points:     MapPoints(filtered),
	}
}

// Rows returns the snapshot's rows for facet. The slice is shared with the
// snapshot, so sorting it reorders the snapshot too.
func (s Snapshot) Rows(facet Facet) []SummaryRow {
	switch facet {
	case FacetSeverity:
		return s.Severities
	case FacetAge:
		return s.Ages
	case FacetMode:
		return s.Modes
	case FacetBorough:
		return s.Boroughs
	}
	return nil
}
