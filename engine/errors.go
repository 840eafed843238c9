package engine

import "errors"

var (
	// ErrUnknownFacet is returned for a facet name outside severity/age/mode/borough.
	ErrUnknownFacet = errors.New("unknown facet")
	// ErrInvalidValue is returned for a facet value outside the facet's domain.
	ErrInvalidValue = errors.New("invalid facet value")
	// ErrRecordNotFound is returned when a detail lookup names no record.
	ErrRecordNotFound = errors.New("record not found")
)
