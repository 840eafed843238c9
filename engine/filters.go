package engine

import (
	"fmt"
	"strings"
)

// ============================================================================
// FILTER STATE — four facets, each "all" or one concrete value
// ============================================================================
// Severity is multi-select (any subset of the three severities). Age, mode
// and borough are single-select: Selection[T] is either All or Only(v).
// FilterState is a comparable value; changes produce a new state.
// ============================================================================

// Facet names one of the four filter dimensions.
type Facet int

const (
	FacetSeverity Facet = iota
	FacetAge
	FacetMode
	FacetBorough
)

// noFacet is passed as the skipped facet when every facet applies.
const noFacet Facet = -1

// Facets lists the facets in pipeline evaluation order.
var Facets = []Facet{FacetSeverity, FacetAge, FacetMode, FacetBorough}

func (f Facet) String() string {
	switch f {
	case FacetSeverity:
		return "severity"
	case FacetAge:
		return "age"
	case FacetMode:
		return "mode"
	case FacetBorough:
		return "borough"
	}
	return fmt.Sprintf("facet(%d)", int(f))
}

// ParseFacet maps a facet name onto a Facet.
func ParseFacet(name string) (Facet, error) {
	for _, f := range Facets {
		if strings.EqualFold(name, f.String()) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFacet, name)
}

// ============================================================================
// SEVERITY SET
// ============================================================================

// SeveritySet is a subset of the three severities.
type SeveritySet uint8

func severityBit(s Severity) SeveritySet {
	switch s {
	case SeveritySlight:
		return 1
	case SeveritySevere:
		return 2
	case SeverityFatal:
		return 4
	}
	return 0
}

// NewSeveritySet builds a set from severities. Out-of-domain values are ignored.
func NewSeveritySet(severities ...Severity) SeveritySet {
	var s SeveritySet
	for _, sev := range severities {
		s |= severityBit(sev)
	}
	return s
}

// AllSeveritySet contains every severity.
var AllSeveritySet = NewSeveritySet(AllSeverities...)

// DefaultSeveritySet is the startup selection: Slight excluded.
var DefaultSeveritySet = NewSeveritySet(SeveritySevere, SeverityFatal)

// Has reports whether sev is in the set.
func (s SeveritySet) Has(sev Severity) bool {
	b := severityBit(sev)
	return b != 0 && s&b != 0
}

// With returns the set plus sev.
func (s SeveritySet) With(sev Severity) SeveritySet { return s | severityBit(sev) }

// Without returns the set minus sev.
func (s SeveritySet) Without(sev Severity) SeveritySet { return s &^ severityBit(sev) }

// Toggle flips membership of sev.
func (s SeveritySet) Toggle(sev Severity) SeveritySet { return s ^ severityBit(sev) }

// Slice lists the members in escalation order.
func (s SeveritySet) Slice() []Severity {
	out := make([]Severity, 0, 3)
	for _, sev := range AllSeverities {
		if s.Has(sev) {
			out = append(out, sev)
		}
	}
	return out
}

func (s SeveritySet) String() string {
	names := make([]string, 0, 3)
	for _, sev := range s.Slice() {
		names = append(names, string(sev))
	}
	return "{" + strings.Join(names, ",") + "}"
}

// ============================================================================
// SELECTION — explicit "all" vs single value
// ============================================================================

// Selection is either All (no restriction) or Only one value.
type Selection[T comparable] struct {
	value T
	set   bool
}

// All returns the unrestricted selection.
func All[T comparable]() Selection[T] { return Selection[T]{} }

// Only returns a selection restricted to v.
func Only[T comparable](v T) Selection[T] { return Selection[T]{value: v, set: true} }

// IsAll reports whether the selection is unrestricted.
func (s Selection[T]) IsAll() bool { return !s.set }

// Get returns the selected value, ok=false for All.
func (s Selection[T]) Get() (T, bool) { return s.value, s.set }

// Is reports whether the selection is restricted to exactly v.
func (s Selection[T]) Is(v T) bool { return s.set && s.value == v }

// Toggle returns Only(v), or All when v is already the selected value.
func (s Selection[T]) Toggle(v T) Selection[T] {
	if s.Is(v) {
		return All[T]()
	}
	return Only(v)
}

func (s Selection[T]) String() string {
	if !s.set {
		return "all"
	}
	return fmt.Sprint(s.value)
}

// ============================================================================
// FILTER STATE
// ============================================================================

// FilterState is the shared selection across the four facets.
type FilterState struct {
	Severity SeveritySet
	Age      Selection[AgeRange]
	Mode     Selection[string]
	Borough  Selection[string]
}

// NewFilterState returns severities plus "all" on every other facet.
func NewFilterState(severities SeveritySet) FilterState {
	return FilterState{Severity: severities}
}

// DefaultFilterState is the startup state: {Severe, Fatal}, everything else "all".
func DefaultFilterState() FilterState { return NewFilterState(DefaultSeveritySet) }

// ResetFilter restores the default severity subset and clears the other facets.
func ResetFilter() FilterState { return DefaultFilterState() }

// IsAll reports whether facet f is unrestricted. Severity counts as
// unrestricted only when all three severities are selected.
func (s FilterState) IsAll(f Facet) bool {
	switch f {
	case FacetSeverity:
		return s.Severity == AllSeveritySet
	case FacetAge:
		return s.Age.IsAll()
	case FacetMode:
		return s.Mode.IsAll()
	case FacetBorough:
		return s.Borough.IsAll()
	}
	return true
}

// Without returns the state with facet f lifted to its full domain.
func (s FilterState) Without(f Facet) FilterState {
	switch f {
	case FacetSeverity:
		s.Severity = AllSeveritySet
	case FacetAge:
		s.Age = All[AgeRange]()
	case FacetMode:
		s.Mode = All[string]()
	case FacetBorough:
		s.Borough = All[string]()
	}
	return s
}

func (s FilterState) String() string {
	return fmt.Sprintf("severity=%s age=%s mode=%s borough=%s", s.Severity, s.Age, s.Mode, s.Borough)
}

// ============================================================================
// FACET CHANGES — closed sum type over the four facets
// ============================================================================

// FacetChange replaces exactly one facet of a FilterState.
type FacetChange interface {
	Facet() Facet
	apply(FilterState) FilterState
}

// SeverityChange replaces the severity subset.
type SeverityChange struct{ Severities SeveritySet }

// AgeChange replaces the age selection.
type AgeChange struct{ Selection Selection[AgeRange] }

// ModeChange replaces the mode selection.
type ModeChange struct{ Selection Selection[string] }

// BoroughChange replaces the borough selection.
type BoroughChange struct{ Selection Selection[string] }

func (SeverityChange) Facet() Facet { return FacetSeverity }
func (AgeChange) Facet() Facet      { return FacetAge }
func (ModeChange) Facet() Facet     { return FacetMode }
func (BoroughChange) Facet() Facet  { return FacetBorough }

func (c SeverityChange) apply(s FilterState) FilterState { s.Severity = c.Severities; return s }
func (c AgeChange) apply(s FilterState) FilterState      { s.Age = c.Selection; return s }
func (c ModeChange) apply(s FilterState) FilterState     { s.Mode = c.Selection; return s }
func (c BoroughChange) apply(s FilterState) FilterState  { s.Borough = c.Selection; return s }

// ApplyFacet returns a new state with the one facet named by c replaced.
func ApplyFacet(s FilterState, c FacetChange) FilterState {
	if c == nil {
		return s
	}
	return c.apply(s)
}

// ToggleSeverity flips one severity checkbox.
func ToggleSeverity(s FilterState, sev Severity) SeverityChange {
	return SeverityChange{Severities: s.Severity.Toggle(sev)}
}

// ToggleAge selects band, or clears the age facet if band is already selected.
func ToggleAge(s FilterState, band AgeRange) AgeChange {
	return AgeChange{Selection: s.Age.Toggle(band)}
}

// ToggleMode selects mode, or clears the mode facet if it is already selected.
func ToggleMode(s FilterState, mode string) ModeChange {
	return ModeChange{Selection: s.Mode.Toggle(mode)}
}

// ToggleBorough selects borough, or clears the borough facet if it is
// already selected. At most one borough is ever active.
func ToggleBorough(s FilterState, borough string) BoroughChange {
	return BoroughChange{Selection: s.Borough.Toggle(borough)}
}

// ============================================================================
// PIPELINE — single pass, fixed predicate order
// ============================================================================
// Every predicate tests the record's own, unfiltered vehicle and casualty
// lists, so the predicates commute; the order only decides which cheap
// test rejects a record first.
// ============================================================================

// Matches reports whether r passes every facet of s.
func (s FilterState) Matches(r *AccidentRecord) bool {
	return s.matchesExcept(r, noFacet)
}

func (s FilterState) matchesExcept(r *AccidentRecord, skip Facet) bool {
	if skip != FacetSeverity && !s.Severity.Has(r.Severity) {
		return false
	}
	if skip != FacetAge {
		if band, ok := s.Age.Get(); ok && !hasCasualtyAged(r, band) {
			return false
		}
	}
	if skip != FacetMode {
		if mode, ok := s.Mode.Get(); ok && !hasMode(r, mode) {
			return false
		}
	}
	if skip != FacetBorough {
		if borough, ok := s.Borough.Get(); ok && r.Borough != borough {
			return false
		}
	}
	return true
}

// FilterRecords returns the subset of set matching every facet of state.
func FilterRecords(set RecordSet, state FilterState) RecordSet {
	return filter(set, state, noFacet)
}

// FilterRecordsExcept returns the subset of set matching every facet of
// state other than skip.
func FilterRecordsExcept(set RecordSet, state FilterState, skip Facet) RecordSet {
	return filter(set, state, skip)
}

func filter(set RecordSet, state FilterState, skip Facet) RecordSet {
	n := set.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if state.matchesExcept(set.At(i), skip) {
			indices = append(indices, i)
		}
	}
	return newSubSet(set, indices)
}

func hasCasualtyAged(r *AccidentRecord, band AgeRange) bool {
	for _, c := range r.Casualties {
		if c.Age != nil && band.Contains(*c.Age) {
			return true
		}
	}
	return false
}

func hasMode(r *AccidentRecord, mode string) bool {
	// Pedestrian matches casualties only, as AggregateModes counts it
	if mode != ModePedestrian {
		for _, v := range r.Vehicles {
			if v.Type == mode {
				return true
			}
		}
		return false
	}
	for _, c := range r.Casualties {
		if c.Type == ModePedestrian {
			return true
		}
	}
	return false
}
