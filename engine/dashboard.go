package engine

import (
	"fmt"
	"sync"
)

// ============================================================================
// DASHBOARD — Shared FilterState + Dependent View Updates
// ============================================================================
// Entry points: Apply(change), Reset(), ShowDetail(id), Dispatch(event)
//
// Pipeline per change:
//   1. Replace one facet of the FilterState (last write wins)
//   2. Filter the dataset once → SubSet (cached per FilterState value)
//   3. Push the filtered set to every dependent view
//      - the view owning the changed facet only re-highlights
//      - except borough: the choropleth always recomputes over the set
//        filtered by every facet but borough, so its rows depend on the
//        state alone and match Snapshot().Boroughs
//
// Changes raised by a view while updates are being pushed are queued and
// drained afterwards, always against the latest state.
// ============================================================================

// View is a dependent dashboard view.
type View interface {
	// Update recomputes the view from the filtered records and pushes it to
	// the view's renderer.
	Update(filtered RecordSet, state FilterState)
	// Highlight refreshes only the selection highlight.
	Highlight(state FilterState)
}

// FacetView is a view that owns one facet (clicking it changes that facet).
type FacetView interface {
	View
	OwnFacet() Facet
}

// DetailView receives single records for the accident-detail view.
type DetailView interface {
	ShowDetail(detail *DetailData)
}

// Dashboard coordinates one FilterState across its registered views.
type Dashboard struct {
	ds  *Dataset
	cfg *config

	mu      sync.Mutex
	state   FilterState
	views   []View
	details []DetailView

	running bool
	dirty   []Facet
	full    bool

	cache       filterCache
	exceptCache filterCache
}

type filterCache struct {
	valid bool
	state FilterState
	set   RecordSet
}

// NewDashboard creates a dashboard over ds in its startup state.
func NewDashboard(ds *Dataset, opts ...Option) *Dashboard {
	cfg := applyOptions(opts)
	return &Dashboard{
		ds:    ds,
		cfg:   cfg,
		state: NewFilterState(cfg.DefaultSeverities),
	}
}

// Register adds views. Call Refresh afterwards to draw them.
func (d *Dashboard) Register(views ...View) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.views = append(d.views, views...)
}

// RegisterDetail adds a receiver for ShowDetail.
func (d *Dashboard) RegisterDetail(v DetailView) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.details = append(d.details, v)
}

// Dataset returns the dashboard's dataset.
func (d *Dashboard) Dataset() *Dataset { return d.ds }

// Domain returns the facet domains.
func (d *Dashboard) Domain() Domain { return d.ds.Domain() }

// State returns the current FilterState.
func (d *Dashboard) State() FilterState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// DefaultState returns the state Reset restores.
func (d *Dashboard) DefaultState() FilterState {
	return NewFilterState(d.cfg.DefaultSeverities)
}

// Filtered returns the dataset filtered by the current state.
func (d *Dashboard) Filtered() RecordSet {
	return d.filtered(d.State())
}

// Apply replaces one facet and updates the dependent views. It returns the
// state after the change. A change that leaves the state unchanged does not
// re-run the pipeline.
func (d *Dashboard) Apply(change FacetChange) FilterState {
	if change == nil {
		return d.State()
	}
	d.mu.Lock()
	next := ApplyFacet(d.state, change)
	if next == d.state {
		d.mu.Unlock()
		return next
	}
	d.state = next
	d.dirty = append(d.dirty, change.Facet())
	return d.schedule()
}

// Reset restores the default severity subset and clears every other facet.
func (d *Dashboard) Reset() FilterState {
	d.mu.Lock()
	next := d.DefaultState()
	if next == d.state {
		d.mu.Unlock()
		return next
	}
	d.state = next
	d.full = true
	return d.schedule()
}

// Refresh pushes the current state to every view.
func (d *Dashboard) Refresh() {
	d.mu.Lock()
	d.full = true
	d.schedule()
}

// ShowDetail looks id up in the unfiltered dataset and hands the detail to
// every registered detail view.
func (d *Dashboard) ShowDetail(id string) (*DetailData, error) {
	rec, ok := d.ds.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRecordNotFound, id)
	}
	detail := BuildDetail(rec)

	d.mu.Lock()
	receivers := append([]DetailView(nil), d.details...)
	d.mu.Unlock()

	for _, v := range receivers {
		v.ShowDetail(detail)
	}
	return detail, nil
}

// schedule must be called with d.mu held; it releases it. If a drain is
// already running (a view raised an event while being updated) the pending
// work is left for that drain.
func (d *Dashboard) schedule() FilterState {
	if d.running {
		s := d.state
		d.mu.Unlock()
		return s
	}
	d.running = true
	d.mu.Unlock()

	d.drain()
	return d.State()
}

func (d *Dashboard) drain() {
	for {
		d.mu.Lock()
		if len(d.dirty) == 0 && !d.full {
			d.running = false
			d.mu.Unlock()
			return
		}
		state := d.state
		origin, single := singleFacet(d.dirty)
		full := d.full || !single
		d.dirty = nil
		d.full = false
		views := append([]View(nil), d.views...)
		d.mu.Unlock()

		d.publish(state, origin, full, views)
	}
}

func (d *Dashboard) publish(state FilterState, origin Facet, full bool, views []View) {
	filtered := d.filtered(state)

	if full {
		d.cfg.Logf("🔧 crashlens: refresh → %d of %d records (%s)", filtered.Len(), d.ds.Len(), state)
	} else {
		d.cfg.Logf("🔧 crashlens: %s changed → %d of %d records (%s)", origin, filtered.Len(), d.ds.Len(), state)
	}

	for _, v := range views {
		fv, owns := v.(FacetView)
		switch {
		case owns && fv.OwnFacet() == FacetBorough:
			v.Update(d.filteredExcept(state, FacetBorough), state)
		case full || !owns || fv.OwnFacet() != origin:
			v.Update(filtered, state)
		default:
			v.Highlight(state)
		}
	}
}

// singleFacet reports the facet if every queued change touched the same one.
func singleFacet(dirty []Facet) (Facet, bool) {
	if len(dirty) == 0 {
		return noFacet, false
	}
	for _, f := range dirty[1:] {
		if f != dirty[0] {
			return noFacet, false
		}
	}
	return dirty[0], true
}

func (d *Dashboard) filtered(state FilterState) RecordSet {
	d.mu.Lock()
	if d.cache.valid && d.cache.state == state {
		set := d.cache.set
		d.mu.Unlock()
		return set
	}
	d.mu.Unlock()

	set := FilterRecords(d.ds.All(), state)

	d.mu.Lock()
	d.cache = filterCache{valid: true, state: state, set: set}
	d.mu.Unlock()
	return set
}

func (d *Dashboard) filteredExcept(state FilterState, skip Facet) RecordSet {
	key := state.Without(skip)
	d.mu.Lock()
	if d.exceptCache.valid && d.exceptCache.state == key {
		set := d.exceptCache.set
		d.mu.Unlock()
		return set
	}
	d.mu.Unlock()

	set := FilterRecordsExcept(d.ds.All(), state, skip)

	d.mu.Lock()
	d.exceptCache = filterCache{valid: true, state: key, set: set}
	d.mu.Unlock()
	return set
}
