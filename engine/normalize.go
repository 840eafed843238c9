package engine

// ============================================================================
// NORMALIZER — fine-grained vehicle / casualty modes → coarse taxonomy
// ============================================================================
// Pure, total and idempotent. FullType is authoritative once set, so running
// a value through twice maps the same raw string to the same category.
// ============================================================================

// ModePedestrian is the synthetic mode category for pedestrian casualties.
const ModePedestrian = "Pedestrian"

// AgeBandUnknown labels casualties whose age band was not recorded.
const AgeBandUnknown = "Unknown"

var vehicleCategories = map[string]string{
	"Motorcycle_0_50cc":     "Motorcycle",
	"Motorcycle_50_125cc":   "Motorcycle",
	"Motorcycle_125_500cc":  "Motorcycle",
	"Motorcycle_500cc_Plus": "Motorcycle",
	"LightGoodsVehicle":     "GoodsVehicle",
	"MediumGoodsVehicle":    "GoodsVehicle",
	"HeavyGoodsVehicle":     "GoodsVehicle",
	"Minibus":               "BusOrCoach",
}

var casualtyCategories = map[string]string{
	"PoweredTwoWheeler": "Motorcycle",
	"OtherVehicle":      "OtherMotorVehicle",
}

// VehicleCategory returns the coarse category for a raw vehicle type.
// Unmapped types pass through unchanged.
func VehicleCategory(raw string) string {
	if c, ok := vehicleCategories[raw]; ok {
		return c
	}
	return raw
}

// CasualtyCategory returns the coarse category for a raw casualty mode.
func CasualtyCategory(raw string) string {
	if c, ok := casualtyCategories[raw]; ok {
		return c
	}
	return raw
}

// NormalizeVehicle returns v with Type set to its coarse category and
// FullType holding the raw value.
func NormalizeVehicle(v Vehicle) Vehicle {
	if v.FullType == "" {
		v.FullType = v.Type
	}
	v.Type = VehicleCategory(v.FullType)
	return v
}

// NormalizeCasualty returns c with Type/FullType derived from its raw mode.
// Severity is rewritten to its canonical spelling and an empty age band
// becomes Unknown. Mode itself is never modified.
func NormalizeCasualty(c Casualty) Casualty {
	if c.FullType == "" {
		c.FullType = c.Mode
	}
	c.Type = CasualtyCategory(c.FullType)
	if sev, ok := ParseSeverity(string(c.Severity)); ok {
		c.Severity = sev
	}
	if c.AgeBand == "" {
		c.AgeBand = AgeBandUnknown
	}
	return c
}

// NormalizeRecord normalizes every vehicle and casualty of r in place and
// canonicalizes its severity. Idempotent.
func NormalizeRecord(r *AccidentRecord) {
	if sev, ok := ParseSeverity(string(r.Severity)); ok {
		r.Severity = sev
	}
	for i := range r.Vehicles {
		r.Vehicles[i] = NormalizeVehicle(r.Vehicles[i])
	}
	for i := range r.Casualties {
		r.Casualties[i] = NormalizeCasualty(r.Casualties[i])
	}
}

// NormalizeRecords runs NormalizeRecord over the whole slice.
func NormalizeRecords(records []AccidentRecord) {
	for i := range records {
		NormalizeRecord(&records[i])
	}
}
