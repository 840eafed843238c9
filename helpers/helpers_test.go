package helpers

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/crashlens/engine"
)

const sampleJSON = `[
  {"id": 345979, "lat": 51.54, "lon": -0.14, "location": "Camden Road", "date": "2016-03-01T08:30:00Z",
   "severity": "Fatal", "borough": "Camden",
   "casualties": [{"age": 10, "class": "Pedestrian", "severity": "Fatal", "mode": "Pedestrian", "ageBand": "Child"}],
   "vehicles": [{"type": "Car"}]},
  {"id": "R2", "date": "2016-03-02", "severity": "Slight", "borough": "Camden",
   "casualties": [{"class": "Driver", "severity": "Slight", "mode": "Car", "ageBand": "Adult"}],
   "vehicles": [{"type": "Car"}]},
  {"id": null, "date": "yesterday", "severity": "Serious", "borough": "Enfield",
   "casualties": [{"age": 70, "class": "Driver", "severity": "Serious", "mode": "PoweredTwoWheeler"}],
   "vehicles": [{"type": "Motorcycle_50_125cc"}]}
]`

func TestParseRecords(t *testing.T) {
	records, err := ParseRecords([]byte(sampleJSON))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "345979", records[0].ID)
	assert.Equal(t, "R2", records[1].ID)
	assert.Equal(t, "#2", records[2].ID)

	assert.Equal(t, time.Date(2016, 3, 1, 8, 30, 0, 0, time.UTC), records[0].Date)
	assert.Equal(t, time.Date(2016, 3, 2, 0, 0, 0, 0, time.UTC), records[1].Date)
	assert.True(t, records[2].Date.IsZero())

	require.NotNil(t, records[0].Casualties[0].Age)
	assert.Equal(t, 10, *records[0].Casualties[0].Age)
	assert.Nil(t, records[1].Casualties[0].Age)
	assert.Equal(t, engine.Severity("Serious"), records[2].Severity, "raw values are left for normalization")
}

func TestParseRecordsRejectsNonArray(t *testing.T) {
	_, err := ParseRecords([]byte(`{"id": 1}`))
	assert.Error(t, err)
	_, err = ParseRecords([]byte(`[{"id": true}]`))
	assert.Error(t, err)
}

func TestLoadDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o644))

	ds, err := LoadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())

	rec, ok := ds.Lookup("#2")
	require.True(t, ok)
	assert.Equal(t, engine.SeveritySevere, rec.Severity)
	assert.Equal(t, "Motorcycle", rec.Vehicles[0].Type)

	_, err = LoadDataset(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestWriteRowsCSV(t *testing.T) {
	rows := []engine.SummaryRow{
		{Category: "Car", Fatal: 1, Total: 1},
		{Category: "Motorcycle, large", Severe: 2, Total: 2},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteRowsCSV(&buf, engine.FacetMode, rows))
	assert.Equal(t,
		"Vehicle / casualty mode,Slight,Severe,Fatal,Vehicles\n"+
			"Car,0,0,1,1\n"+
			"\"Motorcycle, large\",0,2,0,2\n",
		buf.String())
}

func TestWriteSnapshotCSV(t *testing.T) {
	records, err := ParseRecords([]byte(sampleJSON))
	require.NoError(t, err)
	ds := engine.NewDataset(records)
	snap := engine.BuildSnapshot(ds, engine.DefaultFilterState())

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshotCSV(&buf, snap))
	out := buf.String()
	assert.Contains(t, out, "Facet,Category,Slight,Severe,Fatal,Total\n")
	assert.Contains(t, out, "severity,Fatal,0,0,1,1\n")
	assert.Contains(t, out, "borough,Camden,0,0,1,1\n")
	assert.Contains(t, out, "borough,Enfield,0,1,0,1\n")
	assert.Contains(t, out, "age,5-11,0,0,1,1\n")
}

func TestWriteChartAndTableCSV(t *testing.T) {
	rows := []engine.SummaryRow{{Category: "0-4", Slight: 2, Total: 2}}
	chart := engine.BuildChart("Ages", engine.FacetAge, rows, engine.DefaultFilterState())

	var buf bytes.Buffer
	require.NoError(t, WriteChartCSV(&buf, chart))
	assert.Equal(t, "Age band,Slight,Severe,Fatal\n0-4,2,0,0\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteTableCSV(&buf, engine.BuildTable("Ages", engine.FacetAge, rows)))
	assert.Equal(t, "Age band,Slight,Severe,Fatal,Casualties\n0-4,2,0,0,2\n", buf.String())

	assert.Error(t, WriteChartCSV(&buf, nil))
	assert.Error(t, WriteTableCSV(&buf, nil))
}
