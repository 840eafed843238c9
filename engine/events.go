package engine

import (
	"fmt"
	"strings"
)

// ============================================================================
// EVENTS — Renderer → Engine messages
// ============================================================================
// Closed set: FacetChanged, ResetRequested, DetailRequested. Renderers that
// only have a free-form (facet name, value) pair go through ParseToggle.
// ============================================================================

// Event is an inbound renderer message.
type Event interface {
	isEvent()
}

// FacetChanged carries one facet change.
type FacetChanged struct{ Change FacetChange }

// ResetRequested asks for the default filter.
type ResetRequested struct{}

// DetailRequested asks for the detail view of one record.
type DetailRequested struct{ ID string }

func (FacetChanged) isEvent()    {}
func (ResetRequested) isEvent()  {}
func (DetailRequested) isEvent() {}

// Dispatch routes ev to Apply, Reset or ShowDetail.
func (d *Dashboard) Dispatch(ev Event) error {
	switch e := ev.(type) {
	case FacetChanged:
		if e.Change == nil {
			return fmt.Errorf("%w: empty facet change", ErrInvalidValue)
		}
		d.Apply(e.Change)
		return nil
	case ResetRequested:
		d.Reset()
		return nil
	case DetailRequested:
		_, err := d.ShowDetail(e.ID)
		return err
	case nil:
		return fmt.Errorf("nil event")
	}
	return fmt.Errorf("unsupported event %T", ev)
}

// ParseToggle turns a (facet, value) pair from an external renderer into a
// typed change with click semantics: severity toggles one checkbox; the other
// facets select value, or clear back to "all" when value is already selected.
// An empty value or "all" clears a single-select facet.
func ParseToggle(state FilterState, domain Domain, facetName, value string) (FacetChange, error) {
	facet, err := ParseFacet(facetName)
	if err != nil {
		return nil, err
	}
	value = strings.TrimSpace(value)
	toAll := value == "" || strings.EqualFold(value, "all")

	switch facet {
	case FacetSeverity:
		sev, ok := ParseSeverity(value)
		if !ok {
			return nil, fmt.Errorf("%w: severity %q", ErrInvalidValue, value)
		}
		return ToggleSeverity(state, sev), nil

	case FacetAge:
		if toAll {
			return AgeChange{Selection: All[AgeRange]()}, nil
		}
		band, err := ParseAgeRange(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		if !domain.HasAgeBand(band) {
			return nil, fmt.Errorf("%w: age band %s", ErrInvalidValue, band)
		}
		return ToggleAge(state, band), nil

	case FacetMode:
		if toAll {
			return ModeChange{Selection: All[string]()}, nil
		}
		if !domain.HasMode(value) {
			return nil, fmt.Errorf("%w: mode %q", ErrInvalidValue, value)
		}
		return ToggleMode(state, value), nil

	case FacetBorough:
		if toAll {
			return BoroughChange{Selection: All[string]()}, nil
		}
		b, ok := domain.LookupBorough(value)
		if !ok {
			return nil, fmt.Errorf("%w: borough %q", ErrInvalidValue, value)
		}
		return ToggleBorough(state, b.Name), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFacet, facet)
}

// ParseSeverityList parses comma-separated severities ("Severe,Fatal").
// An empty string yields an empty set.
func ParseSeverityList(s string) (SeveritySet, error) {
	var set SeveritySet
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sev, ok := ParseSeverity(part)
		if !ok {
			return 0, fmt.Errorf("%w: severity %q", ErrInvalidValue, part)
		}
		set = set.With(sev)
	}
	return set, nil
}
