package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// AGGREGATOR TESTS
// ============================================================================

func rowByCategory(rows []SummaryRow, category string) (SummaryRow, bool) {
	for _, r := range rows {
		if r.Category == category {
			return r, true
		}
	}
	return SummaryRow{}, false
}

func TestAggregateBoroughsScenario(t *testing.T) {
	ds := NewDataset(scenarioRecords())
	filtered := FilterRecords(ds.All(), DefaultFilterState())
	rows := AggregateBoroughs(filtered, ds.Domain().Boroughs)

	require.Len(t, rows, 33)
	camden, _ := rowByCategory(rows, "Camden")
	enfield, _ := rowByCategory(rows, "Enfield")
	assert.Equal(t, SummaryRow{Category: "Camden", Fatal: 1, Total: 1}, camden)
	assert.Equal(t, SummaryRow{Category: "Enfield", Severe: 1, Total: 1}, enfield)

	total := SumRows(rows)
	assert.Equal(t, 2, total.Total, "every other borough is zero")
}

func TestAggregateModesScenario(t *testing.T) {
	records := scenarioRecords()
	ds := NewDataset(records)
	filtered := FilterRecords(ds.All(), DefaultFilterState())

	rows := AggregateModes(filtered, []string{"Car", "Motorcycle", ModePedestrian})
	want := []SummaryRow{
		{Category: "Car", Fatal: 1, Total: 1},
		{Category: "Motorcycle", Severe: 1, Total: 1},
		{Category: ModePedestrian},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("mode rows (-want +got):\n%s", diff)
	}
}

func TestAggregateModesCountsPedestrianCasualties(t *testing.T) {
	ds := NewDataset(mixedRecords())
	rows := AggregateModes(ds.All(), ds.Domain().ModeTypes)

	ped, ok := rowByCategory(rows, ModePedestrian)
	require.True(t, ok)
	assert.Equal(t, SummaryRow{Category: ModePedestrian, Severe: 1, Total: 1}, ped, "counted with the record's severity")

	taxi, _ := rowByCategory(rows, "Taxi")
	assert.Equal(t, 0, taxi.Total, "M4 has an out-of-domain severity")

	goods, _ := rowByCategory(rows, "GoodsVehicle")
	assert.Equal(t, SummaryRow{Category: "GoodsVehicle", Severe: 1, Total: 1}, goods)

	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].Total, rows[i].Total, "rows sorted by descending total")
	}
}

func TestAggregateModesStableTies(t *testing.T) {
	ds := NewDataset(mixedRecords())
	domain := ds.Domain().ModeTypes
	rows := AggregateModes(ds.All(), domain)

	// every non-Taxi mode has exactly one vehicle or pedestrian; ties keep domain order
	var ones []string
	for _, r := range rows {
		if r.Total == 1 {
			ones = append(ones, r.Category)
		}
	}
	assert.Equal(t, []string{"BusOrCoach", "Car", "GoodsVehicle", "Motorcycle", "PedalCycle", "Pedestrian"}, ones)
	assert.Equal(t, "Taxi", rows[len(rows)-1].Category)
}

func TestAggregateAgesRestrictedBySeverity(t *testing.T) {
	ds := NewDataset(mixedRecords())
	all := ds.All()
	bands := ds.Domain().AgeBands

	rows := AggregateAges(all, bands, DefaultSeveritySet)
	want := []SummaryRow{
		{Category: "0-4"},
		{Category: "5-11", Severe: 1, Total: 1},
		{Category: "12-17"},
		{Category: "18-24", Fatal: 1, Total: 1},
		{Category: "25-34"},
		{Category: "35-49"},
		{Category: "50-74"},
		{Category: "75-100"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("age rows (-want +got):\n%s", diff)
	}

	withSlight := AggregateAges(all, bands, AllSeveritySet)
	assert.Equal(t, 4, SumRows(withSlight).Total, "ages 8, 33, 24 and 77; M2's ageless passenger and M4 are skipped")
}

func TestAggregateSeverities(t *testing.T) {
	ds := NewDataset(mixedRecords())
	rows := AggregateSeverities(ds.All())
	want := []SummaryRow{
		{Category: "Slight", Slight: 1, Total: 1},
		{Category: "Severe", Severe: 2, Total: 2},
		{Category: "Fatal", Fatal: 1, Total: 1},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("severity rows (-want +got):\n%s", diff)
	}
}

func TestAggregateEmptySet(t *testing.T) {
	domain := ExtractDomains(nil)
	empty := NewSliceSet(nil)

	for _, f := range Facets {
		rows := Aggregate(empty, f, domain, AllSeveritySet)
		require.NotEmpty(t, rows, f.String())
		for _, r := range rows {
			assert.Equal(t, 0, r.Total, "%s/%s", f, r.Category)
		}
	}
}

func TestAggregateUnknownBoroughExcluded(t *testing.T) {
	ds := NewDataset(mixedRecords())
	rows := AggregateBoroughs(ds.All(), ds.Domain().Boroughs)

	_, ok := rowByCategory(rows, "Atlantis")
	assert.False(t, ok)
	hackney, _ := rowByCategory(rows, "Hackney")
	assert.Equal(t, SummaryRow{Category: "Hackney", Severe: 2, Fatal: 2, Total: 4}, hackney)
	camden, _ := rowByCategory(rows, "Camden")
	assert.Equal(t, 0, camden.Total, "M4 is out of domain and M5 has no casualties")
}

func TestAggregateConservation(t *testing.T) {
	ds := NewDataset(mixedRecords())
	for _, sev := range []SeveritySet{DefaultSeveritySet, AllSeveritySet} {
		filtered := FilterRecords(ds.All(), NewFilterState(sev))
		rows := AggregateBoroughs(filtered, ds.Domain().Boroughs)

		want := 0
		for i := 0; i < filtered.Len(); i++ {
			r := filtered.At(i)
			if _, ok := ds.Domain().LookupBorough(r.Borough); ok {
				want += len(r.Casualties)
			}
		}
		assert.Equal(t, want, SumRows(rows).Total)
		for _, r := range rows {
			assert.Equal(t, r.Total, r.Slight+r.Severe+r.Fatal)
		}
	}
}

func TestSortRows(t *testing.T) {
	rows := []SummaryRow{
		{Category: "b", Total: 1},
		{Category: "a", Total: 3},
		{Category: "c", Total: 1},
	}

	byTotal := append([]SummaryRow(nil), rows...)
	SortRows(byTotal, SortTotalAsc)
	assert.Equal(t, []string{"b", "c", "a"}, categories(byTotal))

	byName := append([]SummaryRow(nil), rows...)
	SortRows(byName, SortCategory)
	assert.Equal(t, []string{"a", "b", "c"}, categories(byName))

	kept := append([]SummaryRow(nil), rows...)
	SortRows(kept, SortDomain)
	assert.Equal(t, []string{"b", "a", "c"}, categories(kept))

	assert.Equal(t, 3, MaxTotal(rows))
	assert.Equal(t, 0, MaxTotal(nil))
}

func TestParseSortOrder(t *testing.T) {
	for in, want := range map[string]string{
		"":             SortDomain,
		"domain":       SortDomain,
		"Total":        SortTotalDesc,
		"total_desc":   SortTotalDesc,
		"total_asc":    SortTotalAsc,
		"category":     SortCategory,
		"category_asc": SortCategory,
	} {
		got, err := ParseSortOrder(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseSortOrder("random")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "0", FormatInt(0))
	assert.Equal(t, "999", FormatInt(999))
	assert.Equal(t, "1,000", FormatInt(1000))
	assert.Equal(t, "1,234,567", FormatInt(1234567))
	assert.Equal(t, "-12,005", FormatInt(-12005))
}

func categories(rows []SummaryRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Category
	}
	return out
}
