package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// BUILDER TESTS
// ============================================================================

func TestBuildChart(t *testing.T) {
	rows := []SummaryRow{
		{Category: "Car", Fatal: 1, Total: 1},
		{Category: "Motorcycle", Severe: 2, Slight: 1, Total: 3},
	}
	state := ApplyFacet(DefaultFilterState(), ModeChange{Only("Car")})

	c := BuildChart("Modes", FacetMode, rows, state)
	assert.Equal(t, "stacked_bar", c.ChartType)
	assert.Equal(t, []string{"Car", "Motorcycle"}, c.Categories)
	assert.Equal(t, "Car", c.Selected)
	assert.Equal(t, "Vehicles", c.YAxis)
	require.Len(t, c.Series, 3)

	assert.Equal(t, "Slight", c.Series[0].Name)
	assert.Equal(t, []ChartPoint{{"Car", 0}, {"Motorcycle", 1}}, c.Series[0].Data)
	assert.Equal(t, "Fatal", c.Series[2].Name)
	assert.Equal(t, []ChartPoint{{"Car", 1}, {"Motorcycle", 0}}, c.Series[2].Data)
	assert.Equal(t, []string{"#ff8c00", "#7b6888", "#98abc5"}, c.Colors)

	grid := BuildChart("Boroughs", FacetBorough, nil, DefaultFilterState())
	assert.Equal(t, "grid", grid.ChartType)
	assert.Empty(t, grid.Selected)
	assert.Empty(t, grid.Categories)
}

func TestBuildTable(t *testing.T) {
	rows := []SummaryRow{
		{Category: "Camden", Slight: 1200, Fatal: 3, Total: 1203},
		{Category: "Enfield", Severe: 4, Total: 4},
	}
	tbl := BuildTable("Boroughs", FacetBorough, rows)

	require.Len(t, tbl.Columns, 5)
	assert.Equal(t, "Borough", tbl.Columns[0].Label)
	assert.Equal(t, "Casualties", tbl.Columns[4].Label)
	assert.Equal(t, [][]string{
		{"Camden", "1,200", "0", "3", "1,203"},
		{"Enfield", "0", "4", "0", "4"},
	}, tbl.Rows)
	assert.Equal(t, "Total (2 categories)", tbl.Summary.Label)
	assert.Equal(t, "1,207", tbl.Summary.Values["total"])
	assert.Equal(t, "4", tbl.Summary.Values["Severe"])
}

func TestBuildDetail(t *testing.T) {
	ds := NewDataset(mixedRecords())
	rec, ok := ds.Lookup("M1")
	require.True(t, ok)

	d := BuildDetail(rec)
	assert.Equal(t, "M1", d.ID)
	assert.Equal(t, SeveritySevere, d.Severity)
	assert.Equal(t, 2, d.Vehicles)
	assert.Equal(t, 2, d.Casualties)
	require.Len(t, d.Spokes, 4)

	assert.Equal(t, "vehicle", d.Spokes[0].Kind)
	assert.Equal(t, 0.0, d.Spokes[0].Angle)
	assert.Equal(t, "GoodsVehicle", d.Spokes[1].Type)
	assert.Equal(t, "HeavyGoodsVehicle", d.Spokes[1].FullType)
	assert.Equal(t, 90.0, d.Spokes[1].Angle)
	assert.Equal(t, "casualty", d.Spokes[2].Kind)
	assert.Equal(t, ModePedestrian, d.Spokes[2].Type)
	assert.Equal(t, 8, *d.Spokes[2].Age)
	assert.Equal(t, 270.0, d.Spokes[3].Angle)

	empty := BuildDetail(&AccidentRecord{ID: "X"})
	assert.NotNil(t, empty.Spokes)
	assert.Empty(t, empty.Spokes)
}

func TestSummarize(t *testing.T) {
	ds := NewDataset(scenarioRecords())
	all := NewFilterState(AllSeveritySet)
	assert.Equal(t, "3 accidents, 3 casualties · severity Slight/Severe/Fatal", Summarize(ds.All(), all))

	state := ApplyFacet(NewFilterState(0), AgeChange{Only(AgeRange{0, 4})})
	state = ApplyFacet(state, ModeChange{Only("Car")})
	assert.Equal(t, "0 accidents, 0 casualties · no severity selected · age 0-4 · mode Car",
		Summarize(FilterRecords(ds.All(), state), state))
}

func TestDatasetLookupFirstWins(t *testing.T) {
	records := scenarioRecords()
	records[2].ID = "R1"
	ds := NewDataset(records)

	rec, ok := ds.Lookup("R1")
	require.True(t, ok)
	assert.Equal(t, SeverityFatal, rec.Severity)
	assert.Equal(t, 3, ds.Len())

	_, ok = ds.Lookup("R3")
	assert.False(t, ok)
}

func TestMaterializeCopies(t *testing.T) {
	ds := NewDataset(scenarioRecords())
	sub := FilterRecords(ds.All(), DefaultFilterState())
	out := Materialize(sub)
	require.Len(t, out, 2)

	out[0].Borough = "Elsewhere"
	rec, _ := ds.Lookup("R1")
	assert.Equal(t, "Camden", rec.Borough)
	assert.Nil(t, sub.At(5))
}

func TestTitleForFacet(t *testing.T) {
	assert.Equal(t, "Accidents by severity", TitleForFacet(FacetSeverity))
	assert.Equal(t, "Casualties by age band", TitleForFacet(FacetAge))
	assert.Equal(t, "Vehicles by mode", TitleForFacet(FacetMode))
	assert.Equal(t, "Casualties by borough", TitleForFacet(FacetBorough))
}

func TestSnapshotRowsShareStorage(t *testing.T) {
	snap := BuildSnapshot(NewDataset(scenarioRecords()), DefaultFilterState())
	assert.Len(t, snap.Rows(FacetBorough), 33)
	assert.Equal(t, snap.Ages, snap.Rows(FacetAge))
	assert.Nil(t, snap.Rows(noFacet))

	SortRows(snap.Rows(FacetBorough), SortTotalDesc)
	assert.Equal(t, 1, snap.Boroughs[0].Total, "sorting the returned rows reorders the snapshot")
}
