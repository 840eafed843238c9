package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ============================================================================
// DOMAIN — fixed value sets every view and filter depends on
// ============================================================================
// Computed once per dataset. Age bands and boroughs are hardcoded; mode types
// are the union of normalized vehicle types plus the synthetic Pedestrian.
// ============================================================================

// AgeRange is an inclusive age interval.
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether age lies in [Min, Max].
func (r AgeRange) Contains(age int) bool { return age >= r.Min && age <= r.Max }

// String renders the range as "Min-Max".
func (r AgeRange) String() string { return fmt.Sprintf("%d-%d", r.Min, r.Max) }

// ParseAgeRange parses "Min-Max" as produced by String.
func ParseAgeRange(s string) (AgeRange, error) {
	lo, hi, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return AgeRange{}, fmt.Errorf("age range %q: want min-max", s)
	}
	from, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return AgeRange{}, fmt.Errorf("age range %q: %w", s, err)
	}
	to, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return AgeRange{}, fmt.Errorf("age range %q: %w", s, err)
	}
	if from > to {
		return AgeRange{}, fmt.Errorf("age range %q: min exceeds max", s)
	}
	return AgeRange{Min: from, Max: to}, nil
}

// AgeBands are the eight disjoint bands of the age view.
var AgeBands = []AgeRange{
	{0, 4}, {5, 11}, {12, 17}, {18, 24}, {25, 34}, {35, 49}, {50, 74}, {75, 100},
}

// Borough is one London borough with its tile position on the grid map.
type Borough struct {
	Name  string `json:"name"`
	Short string `json:"short"`
	Col   int    `json:"col"`
	Row   int    `json:"row"`
}

// LondonBoroughs is the authoritative borough list. Records naming any other
// borough never contribute to borough aggregation.
var LondonBoroughs = []Borough{
	{"City of London", "cty", 4, 3},
	{"Barking and Dagenham", "bar", 7, 3},
	{"Barnet", "brn", 3, 1},
	{"Bexley", "bxl", 7, 4},
	{"Brent", "brt", 2, 2},
	{"Bromley", "brm", 5, 5},
	{"Camden", "cmd", 3, 2},
	{"Croydon", "crd", 4, 5},
	{"Ealing", "elg", 1, 2},
	{"Enfield", "enf", 4, 0},
	{"Greenwich", "grn", 6, 4},
	{"Hackney", "hck", 5, 2},
	{"Hammersmith and Fulham", "hms", 1, 3},
	{"Haringey", "hgy", 4, 1},
	{"Harrow", "hrw", 2, 1},
	{"Havering", "hvg", 7, 2},
	{"Hillingdon", "hdn", 0, 2},
	{"Hounslow", "hns", 0, 3},
	{"Islington", "isl", 4, 2},
	{"Kensington and Chelsea", "kns", 2, 3},
	{"Kingston", "kng", 2, 5},
	{"Lambeth", "lam", 3, 4},
	{"Lewisham", "lsh", 5, 4},
	{"Merton", "mrt", 3, 5},
	{"Newham", "nwm", 6, 3},
	{"Redbridge", "rdb", 6, 2},
	{"Richmond upon Thames", "rch", 1, 4},
	{"Southwark", "swr", 4, 4},
	{"Sutton", "stn", 3, 6},
	{"Tower Hamlets", "tow", 5, 3},
	{"Waltham Forest", "wth", 5, 1},
	{"Wandsworth", "wns", 2, 4},
	{"City of Westminster", "wst", 3, 3},
}

// DatasetStats are whole-dataset extents reported alongside the domain.
type DatasetStats struct {
	Records               int `json:"records"`
	Vehicles              int `json:"vehicles"`
	Casualties            int `json:"casualties"`
	AgeMin                int `json:"ageMin"`
	AgeMax                int `json:"ageMax"`
	MinCasualtiesPerCrash int `json:"minCasualtiesPerCrash"`
	MaxCasualtiesPerCrash int `json:"maxCasualtiesPerCrash"`
	MinVehiclesPerCrash   int `json:"minVehiclesPerCrash"`
	MaxVehiclesPerCrash   int `json:"maxVehiclesPerCrash"`
}

// Domain holds the legal values of every facet.
type Domain struct {
	SeverityTypes   []Severity   `json:"severityTypes"`
	AgeBands        []AgeRange   `json:"ageBands"`
	ModeTypes       []string     `json:"modeTypes"`
	Boroughs        []Borough    `json:"boroughs"`
	CasualtyClasses []string     `json:"casualtyClasses"`
	Stats           DatasetStats `json:"stats"`
}

// ExtractDomains normalizes records in place and derives the facet domains
// in a single pass over records and their vehicles and casualties.
func ExtractDomains(records []AccidentRecord) Domain {
	modes := map[string]bool{ModePedestrian: true}
	classes := make(map[string]bool)
	stats := DatasetStats{Records: len(records)}
	ageSeen := false

	for i := range records {
		r := &records[i]
		NormalizeRecord(r)

		nv, nc := len(r.Vehicles), len(r.Casualties)
		stats.Vehicles += nv
		stats.Casualties += nc
		if i == 0 || nv < stats.MinVehiclesPerCrash {
			stats.MinVehiclesPerCrash = nv
		}
		if nv > stats.MaxVehiclesPerCrash {
			stats.MaxVehiclesPerCrash = nv
		}
		if i == 0 || nc < stats.MinCasualtiesPerCrash {
			stats.MinCasualtiesPerCrash = nc
		}
		if nc > stats.MaxCasualtiesPerCrash {
			stats.MaxCasualtiesPerCrash = nc
		}

		for _, v := range r.Vehicles {
			if v.Type != "" {
				modes[v.Type] = true
			}
		}
		for _, c := range r.Casualties {
			if c.Class != "" {
				classes[c.Class] = true
			}
			if c.Age == nil {
				continue
			}
			if !ageSeen || *c.Age < stats.AgeMin {
				stats.AgeMin = *c.Age
			}
			if !ageSeen || *c.Age > stats.AgeMax {
				stats.AgeMax = *c.Age
			}
			ageSeen = true
		}
	}

	severities := make([]Severity, len(AllSeverities))
	copy(severities, AllSeverities)
	sort.Slice(severities, func(i, j int) bool { return severities[i] < severities[j] })

	bands := make([]AgeRange, len(AgeBands))
	copy(bands, AgeBands)
	boroughs := make([]Borough, len(LondonBoroughs))
	copy(boroughs, LondonBoroughs)

	return Domain{
		SeverityTypes:   severities,
		AgeBands:        bands,
		ModeTypes:       sortedKeys(modes),
		Boroughs:        boroughs,
		CasualtyClasses: sortedKeys(classes),
		Stats:           stats,
	}
}

// HasMode reports whether mode is part of the mode domain.
func (d Domain) HasMode(mode string) bool {
	for _, m := range d.ModeTypes {
		if m == mode {
			return true
		}
	}
	return false
}

// HasAgeBand reports whether r is one of the domain's age bands.
func (d Domain) HasAgeBand(r AgeRange) bool {
	for _, b := range d.AgeBands {
		if b == r {
			return true
		}
	}
	return false
}

// LookupBorough finds a borough by name, case-insensitively.
func (d Domain) LookupBorough(name string) (Borough, bool) {
	for _, b := range d.Boroughs {
		if strings.EqualFold(b.Name, name) {
			return b, true
		}
	}
	return Borough{}, false
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
