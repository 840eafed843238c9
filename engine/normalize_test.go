package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// ============================================================================
// NORMALIZER TESTS
// ============================================================================

func TestNormalizeVehicleMapping(t *testing.T) {
	tests := []struct {
		raw, want string
	}{
		{"Motorcycle_0_50cc", "Motorcycle"},
		{"Motorcycle_50_125cc", "Motorcycle"},
		{"Motorcycle_125_500cc", "Motorcycle"},
		{"Motorcycle_500cc_Plus", "Motorcycle"},
		{"LightGoodsVehicle", "GoodsVehicle"},
		{"MediumGoodsVehicle", "GoodsVehicle"},
		{"HeavyGoodsVehicle", "GoodsVehicle"},
		{"Minibus", "BusOrCoach"},
		{"Car", "Car"},
		{"Taxi", "Taxi"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := NormalizeVehicle(Vehicle{Type: tt.raw})
			assert.Equal(t, tt.want, got.Type)
			assert.Equal(t, tt.raw, got.FullType, "fullType keeps the raw value")
		})
	}
}

func TestNormalizeCasualtyMapping(t *testing.T) {
	tests := []struct {
		raw, want string
	}{
		{"PoweredTwoWheeler", "Motorcycle"},
		{"OtherVehicle", "OtherMotorVehicle"},
		{"Pedestrian", ModePedestrian},
		{"PedalCycle", "PedalCycle"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := NormalizeCasualty(Casualty{Mode: tt.raw, Severity: SeveritySlight, AgeBand: "Adult"})
			assert.Equal(t, tt.want, got.Type)
			assert.Equal(t, tt.raw, got.FullType)
			assert.Equal(t, tt.raw, got.Mode, "raw mode is never rewritten")
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raws := []string{"Motorcycle_0_50cc", "HeavyGoodsVehicle", "Minibus", "Car", "Tram", ""}
	for _, raw := range raws {
		once := NormalizeVehicle(Vehicle{Type: raw})
		twice := NormalizeVehicle(once)
		assert.Equal(t, once, twice, "vehicle %q", raw)
	}

	modes := []string{"PoweredTwoWheeler", "OtherVehicle", "Pedestrian", "Car"}
	for _, mode := range modes {
		once := NormalizeCasualty(Casualty{Mode: mode, Severity: "Serious", Age: age(30)})
		twice := NormalizeCasualty(once)
		assert.Equal(t, once, twice, "casualty %q", mode)
	}
}

func TestNormalizeCasualtyCanonicalizes(t *testing.T) {
	got := NormalizeCasualty(Casualty{Mode: "Car", Severity: "Serious"})
	assert.Equal(t, SeveritySevere, got.Severity)
	assert.Equal(t, AgeBandUnknown, got.AgeBand)

	odd := NormalizeCasualty(Casualty{Mode: "Car", Severity: "Catastrophic", AgeBand: "Child"})
	assert.Equal(t, Severity("Catastrophic"), odd.Severity, "unknown severities pass through")
	assert.Equal(t, "Child", odd.AgeBand)
}

func TestNormalizeRecordsTwiceIsNoop(t *testing.T) {
	records := mixedRecords()
	NormalizeRecords(records)
	snapshot := make([]AccidentRecord, len(records))
	for i, r := range records {
		snapshot[i] = r
		snapshot[i].Vehicles = append([]Vehicle(nil), r.Vehicles...)
		snapshot[i].Casualties = append([]Casualty(nil), r.Casualties...)
	}

	NormalizeRecords(records)
	if diff := cmp.Diff(snapshot, records); diff != "" {
		t.Errorf("second normalization changed records (-want +got):\n%s", diff)
	}
	assert.Equal(t, SeveritySevere, records[0].Severity)
	assert.Equal(t, "GoodsVehicle", records[0].Vehicles[1].Type)
	assert.Equal(t, "HeavyGoodsVehicle", records[0].Vehicles[1].FullType)
}

func TestParseSeverity(t *testing.T) {
	for in, want := range map[string]Severity{
		"Slight": SeveritySlight, "severe": SeveritySevere, "Serious": SeveritySevere, " FATAL ": SeverityFatal,
	} {
		got, ok := ParseSeverity(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseSeverity("Minor")
	assert.False(t, ok)
}
