package engine

import (
	"fmt"
	"strings"
)

// ============================================================================
// TEXT BUILDER — Accident detail and one-line summaries
// ============================================================================

// BuildDetail lays out one accident for the radial detail view: a spoke per
// vehicle followed by a spoke per casualty, evenly spaced around the circle.
func BuildDetail(r *AccidentRecord) *DetailData {
	detail := &DetailData{
		ID:         r.ID,
		Severity:   r.Severity,
		Borough:    r.Borough,
		Location:   r.Location,
		Date:       r.Date,
		Lat:        r.Lat,
		Lon:        r.Lon,
		Vehicles:   len(r.Vehicles),
		Casualties: len(r.Casualties),
	}

	n := len(r.Vehicles) + len(r.Casualties)
	if n == 0 {
		detail.Spokes = []Spoke{}
		return detail
	}
	step := 360.0 / float64(n)

	spokes := make([]Spoke, 0, n)
	for _, v := range r.Vehicles {
		spokes = append(spokes, Spoke{
			Kind:     "vehicle",
			Type:     v.Type,
			FullType: v.FullType,
			Angle:    step * float64(len(spokes)),
		})
	}
	for _, c := range r.Casualties {
		spokes = append(spokes, Spoke{
			Kind:     "casualty",
			Type:     c.Type,
			FullType: c.FullType,
			Class:    c.Class,
			Age:      c.Age,
			AgeBand:  c.AgeBand,
			Severity: c.Severity,
			Angle:    step * float64(len(spokes)),
		})
	}
	detail.Spokes = spokes
	return detail
}

// Summarize describes a filtered set and the active restrictions in one line.
func Summarize(set RecordSet, state FilterState) string {
	accidents := set.Len()
	casualties := CountCasualties(set)

	parts := []string{fmt.Sprintf("%s %s, %s %s",
		FormatInt(accidents), plural(accidents, "accident", "accidents"),
		FormatInt(casualties), plural(casualties, "casualty", "casualties"))}

	sevs := state.Severity.Slice()
	names := make([]string, len(sevs))
	for i, s := range sevs {
		names[i] = string(s)
	}
	if len(names) == 0 {
		parts = append(parts, "no severity selected")
	} else {
		parts = append(parts, "severity "+strings.Join(names, "/"))
	}
	if band, ok := state.Age.Get(); ok {
		parts = append(parts, "age "+band.String())
	}
	if mode, ok := state.Mode.Get(); ok {
		parts = append(parts, "mode "+mode)
	}
	if b, ok := state.Borough.Get(); ok {
		parts = append(parts, "in "+b)
	}
	return strings.Join(parts, " · ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
