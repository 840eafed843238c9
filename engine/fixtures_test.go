package engine

import "time"

// ============================================================================
// TEST FIXTURES
// ============================================================================

func age(n int) *int { return &n }

// scenarioRecords is the three-accident dataset used across the engine tests.
func scenarioRecords() []AccidentRecord {
	return []AccidentRecord{
		{
			ID: "R1", Severity: SeverityFatal, Borough: "Camden",
			Date:       time.Date(2016, 3, 1, 8, 30, 0, 0, time.UTC),
			Casualties: []Casualty{{Mode: "Car", Class: "Driver", Age: age(10), Severity: SeverityFatal}},
			Vehicles:   []Vehicle{{Type: "Car"}},
		},
		{
			ID: "R2", Severity: SeveritySlight, Borough: "Camden",
			Casualties: []Casualty{{Mode: "Car", Class: "Driver", Age: age(40), Severity: SeveritySlight}},
			Vehicles:   []Vehicle{{Type: "Car"}},
		},
		{
			ID: "R3", Severity: SeveritySevere, Borough: "Enfield",
			Casualties: []Casualty{{Mode: "PoweredTwoWheeler", Class: "Driver", Age: age(70), Severity: SeveritySevere}},
			Vehicles:   []Vehicle{{Type: "Motorcycle_50_125cc"}},
		},
	}
}

// mixedRecords exercises pedestrians, multi-casualty accidents, unknown
// boroughs, missing ages and out-of-domain severities.
func mixedRecords() []AccidentRecord {
	return []AccidentRecord{
		{
			ID: "M1", Severity: "Serious", Borough: "Hackney",
			Lat: 51.545, Lon: -0.055,
			Vehicles: []Vehicle{{Type: "Car"}, {Type: "HeavyGoodsVehicle"}},
			Casualties: []Casualty{
				{Mode: "Pedestrian", Class: "Pedestrian", Age: age(8), Severity: "Serious"},
				{Mode: "Car", Class: "Driver", Age: age(33), Severity: SeveritySlight},
			},
		},
		{
			ID: "M2", Severity: SeverityFatal, Borough: "Hackney",
			Vehicles: []Vehicle{{Type: "Motorcycle_500cc_Plus"}},
			Casualties: []Casualty{
				{Mode: "PoweredTwoWheeler", Class: "Driver", Age: age(24), Severity: SeverityFatal},
				{Mode: "PoweredTwoWheeler", Class: "Passenger", Severity: SeveritySevere},
			},
		},
		{
			ID: "M3", Severity: SeveritySlight, Borough: "Atlantis",
			Vehicles:   []Vehicle{{Type: "Minibus"}},
			Casualties: []Casualty{{Mode: "BusOrCoach", Class: "Passenger", Age: age(77), Severity: SeveritySlight}},
		},
		{
			ID: "M4", Severity: "Catastrophic", Borough: "Camden",
			Vehicles:   []Vehicle{{Type: "Taxi"}},
			Casualties: []Casualty{{Mode: "Taxi", Class: "Driver", Age: age(50), Severity: "Catastrophic"}},
		},
		{
			ID: "M5", Severity: SeveritySevere, Borough: "Camden",
			Vehicles: []Vehicle{{Type: "PedalCycle"}},
		},
	}
}

// recordingView captures every call the dashboard makes.
type recordingView struct {
	facet      Facet
	updates    [][]string
	states     []FilterState
	highlights []FilterState
	onUpdate   func(RecordSet, FilterState)
}

func (v *recordingView) Update(filtered RecordSet, state FilterState) {
	v.updates = append(v.updates, IDs(filtered))
	v.states = append(v.states, state)
	if v.onUpdate != nil {
		v.onUpdate(filtered, state)
	}
}

func (v *recordingView) Highlight(state FilterState) {
	v.highlights = append(v.highlights, state)
}

func (v *recordingView) lastUpdate() []string {
	if len(v.updates) == 0 {
		return nil
	}
	return v.updates[len(v.updates)-1]
}

// facetView wraps recordingView with OwnFacet.
type facetView struct {
	*recordingView
}

func (v facetView) OwnFacet() Facet { return v.facet }

func newFacetView(f Facet) facetView {
	return facetView{&recordingView{facet: f}}
}

type recordingDetail struct {
	shown []*DetailData
}

func (r *recordingDetail) ShowDetail(d *DetailData) { r.shown = append(r.shown, d) }
