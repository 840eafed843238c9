package engine

import (
	"fmt"
	"sort"
	"strings"
)

// ============================================================================
// AGGREGATORS — per-category counts split by severity
// ============================================================================
// All functions read through RecordSet and return freshly built rows; rows
// are never updated in place once handed to a view. An empty set yields
// all-zero rows. Records, vehicles and casualties with an out-of-domain
// severity are skipped for the affected facet.
// ============================================================================

// Aggregate dispatches to the aggregator for facet. severities restricts the
// casualties counted by the age facet and is ignored by the others.
func Aggregate(set RecordSet, facet Facet, domain Domain, severities SeveritySet) []SummaryRow {
	switch facet {
	case FacetBorough:
		return AggregateBoroughs(set, domain.Boroughs)
	case FacetAge:
		return AggregateAges(set, domain.AgeBands, severities)
	case FacetMode:
		return AggregateModes(set, domain.ModeTypes)
	case FacetSeverity:
		return AggregateSeverities(set)
	}
	return nil
}

// AggregateBoroughs sums casualty-list lengths per borough, split by record
// severity. Rows follow the borough list order.
func AggregateBoroughs(set RecordSet, boroughs []Borough) []SummaryRow {
	rows := make([]SummaryRow, len(boroughs))
	index := make(map[string]int, len(boroughs))
	for i, b := range boroughs {
		rows[i].Category = b.Name
		index[b.Name] = i
	}

	for i := 0; i < set.Len(); i++ {
		r := set.At(i)
		bi, ok := index[r.Borough]
		if !ok {
			continue
		}
		rows[bi].add(r.Severity, len(r.Casualties))
	}
	return rows
}

// AggregateAges counts casualties per age band, split by casualty severity.
// Only casualties whose severity is in severities are counted. Rows follow
// the band order.
func AggregateAges(set RecordSet, bands []AgeRange, severities SeveritySet) []SummaryRow {
	rows := make([]SummaryRow, len(bands))
	for i, b := range bands {
		rows[i].Category = b.String()
	}

	for i := 0; i < set.Len(); i++ {
		for _, c := range set.At(i).Casualties {
			if c.Age == nil || !severities.Has(c.Severity) {
				continue
			}
			for bi, b := range bands {
				if b.Contains(*c.Age) {
					rows[bi].add(c.Severity, 1)
					break
				}
			}
		}
	}
	return rows
}

// AggregateModes counts vehicles per mode type (pedestrian casualties for
// the Pedestrian mode), split by the owning record's severity. Rows are sorted
// by descending total; ties keep domain order.
func AggregateModes(set RecordSet, modeTypes []string) []SummaryRow {
	rows := make([]SummaryRow, len(modeTypes))
	index := make(map[string]int, len(modeTypes))
	for i, m := range modeTypes {
		rows[i].Category = m
		index[m] = i
	}
	pedestrian, hasPedestrian := index[ModePedestrian]

	for i := 0; i < set.Len(); i++ {
		r := set.At(i)
		if !r.Severity.Valid() {
			continue
		}
		for _, v := range r.Vehicles {
			if v.Type == ModePedestrian {
				continue
			}
			if mi, ok := index[v.Type]; ok {
				rows[mi].add(r.Severity, 1)
			}
		}
		if !hasPedestrian {
			continue
		}
		for _, c := range r.Casualties {
			if c.Type == ModePedestrian {
				rows[pedestrian].add(r.Severity, 1)
			}
		}
	}

	SortRows(rows, SortTotalDesc)
	return rows
}

// AggregateSeverities counts accidents per severity. Rows follow
// AllSeverities order and each row only fills its own column.
func AggregateSeverities(set RecordSet) []SummaryRow {
	rows := make([]SummaryRow, len(AllSeverities))
	for i, sev := range AllSeverities {
		rows[i].Category = string(sev)
	}
	for i := 0; i < set.Len(); i++ {
		sev := set.At(i).Severity
		for ri, s := range AllSeverities {
			if s == sev {
				rows[ri].add(sev, 1)
				break
			}
		}
	}
	return rows
}

// ============================================================================
// SORTING
// ============================================================================

// Row sort modes.
const (
	SortDomain    = ""           // keep aggregation order
	SortTotalDesc = "total_desc" // descending total, stable
	SortTotalAsc  = "total_asc"
	SortCategory  = "category_asc"
)

// SortRows sorts rows in place. All modes are stable.
func SortRows(rows []SummaryRow, sortBy string) {
	switch sortBy {
	case SortTotalDesc:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Total > rows[j].Total })
	case SortTotalAsc:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Total < rows[j].Total })
	case SortCategory:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	default:
		// preserve domain order
	}
}

// ParseSortOrder reads a sort mode name as given on a command line or in a
// query string. "domain" and "" keep aggregation order; "total" and
// "category" are short for total_desc and category_asc.
func ParseSortOrder(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "domain":
		return SortDomain, nil
	case "total", SortTotalDesc:
		return SortTotalDesc, nil
	case SortTotalAsc:
		return SortTotalAsc, nil
	case "category", SortCategory:
		return SortCategory, nil
	}
	return "", fmt.Errorf("%w: sort order %q", ErrInvalidValue, s)
}

// ============================================================================
// TOTALS & FORMATTING
// ============================================================================

// SumRows adds rows column-wise into a single "Total" row.
func SumRows(rows []SummaryRow) SummaryRow {
	total := SummaryRow{Category: "Total"}
	for _, r := range rows {
		total.Slight += r.Slight
		total.Severe += r.Severe
		total.Fatal += r.Fatal
		total.Total += r.Total
	}
	return total
}

// MaxTotal returns the largest row total, 0 for no rows.
func MaxTotal(rows []SummaryRow) int {
	m := 0
	for _, r := range rows {
		if r.Total > m {
			m = r.Total
		}
	}
	return m
}

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}
