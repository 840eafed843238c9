package engine

// ============================================================================
// RECORD SET — Zero-Copy Access to the Normalized Dataset
// ============================================================================
// The engine never copies records on the hot path. A filter run produces a
// SubSet (index list into its parent); aggregators read through RecordSet.
//
// Implementations:
//   SliceSet — wraps the normalized []AccidentRecord
//   SubSet   — filtered subset (indices into parent, zero-copy)
// ============================================================================

// RecordSet provides indexed, read-only access to accident records.
// Callers must not mutate the returned record.
type RecordSet interface {
	Len() int
	At(index int) *AccidentRecord
}

// ============================================================================
// SLICE SET
// ============================================================================

// SliceSet wraps a []AccidentRecord as a RecordSet.
type SliceSet struct {
	records []AccidentRecord
}

// NewSliceSet creates a RecordSet over records. Zero-copy — holds a reference.
func NewSliceSet(records []AccidentRecord) RecordSet {
	return &SliceSet{records: records}
}

func (s *SliceSet) Len() int { return len(s.records) }

func (s *SliceSet) At(i int) *AccidentRecord {
	if i < 0 || i >= len(s.records) {
		return nil
	}
	return &s.records[i]
}

// ============================================================================
// SUB SET — filtered subset (zero-copy)
// ============================================================================

// SubSet is a filtered subset of a parent RecordSet.
type SubSet struct {
	parent  RecordSet
	indices []int
}

func newSubSet(parent RecordSet, indices []int) RecordSet {
	return &SubSet{parent: parent, indices: indices}
}

func (s *SubSet) Len() int { return len(s.indices) }

func (s *SubSet) At(i int) *AccidentRecord {
	if i < 0 || i >= len(s.indices) {
		return nil
	}
	return s.parent.At(s.indices[i])
}

// ============================================================================
// HELPERS
// ============================================================================

// Materialize copies the records of a set into a new slice.
// The nested vehicle and casualty slices are shared with the dataset.
func Materialize(set RecordSet) []AccidentRecord {
	out := make([]AccidentRecord, 0, set.Len())
	for i := 0; i < set.Len(); i++ {
		out = append(out, *set.At(i))
	}
	return out
}

// IDs returns the record ids of a set in order.
func IDs(set RecordSet) []string {
	ids := make([]string, 0, set.Len())
	for i := 0; i < set.Len(); i++ {
		ids = append(ids, set.At(i).ID)
	}
	return ids
}

// CountCasualties sums the casualty-list lengths of a set.
func CountCasualties(set RecordSet) int {
	n := 0
	for i := 0; i < set.Len(); i++ {
		n += len(set.At(i).Casualties)
	}
	return n
}

// MapPoints projects a set onto map markers.
func MapPoints(set RecordSet) []MapPoint {
	points := make([]MapPoint, 0, set.Len())
	for i := 0; i < set.Len(); i++ {
		r := set.At(i)
		points = append(points, MapPoint{
			ID:         r.ID,
			Lat:        r.Lat,
			Lon:        r.Lon,
			Severity:   r.Severity,
			Casualties: len(r.Casualties),
		})
	}
	return points
}

// ============================================================================
// DATASET — normalized records + domain + id index, built once
// ============================================================================

// Dataset is the immutable, normalized input shared by every dashboard.
type Dataset struct {
	records []AccidentRecord
	all     RecordSet
	domain  Domain
	byID    map[string]int
}

// NewDataset normalizes records in place, extracts the domains and indexes
// records by id. records must not be modified afterwards.
func NewDataset(records []AccidentRecord) *Dataset {
	domain := ExtractDomains(records)
	byID := make(map[string]int, len(records))
	for i, r := range records {
		if _, dup := byID[r.ID]; !dup {
			byID[r.ID] = i
		}
	}
	return &Dataset{
		records: records,
		all:     NewSliceSet(records),
		domain:  domain,
		byID:    byID,
	}
}

// All returns the unfiltered record set.
func (d *Dataset) All() RecordSet { return d.all }

// Domain returns the facet domains.
func (d *Dataset) Domain() Domain { return d.domain }

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Lookup finds a record by id in the unfiltered dataset. When ids repeat the
// first record wins.
func (d *Dataset) Lookup(id string) (*AccidentRecord, bool) {
	i, ok := d.byID[id]
	if !ok {
		return nil, false
	}
	return &d.records[i], true
}
