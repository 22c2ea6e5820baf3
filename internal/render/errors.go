package render

import errors "gopkg.in/src-d/go-errors.v1"

var (
	// ErrMalformedReference is returned when a placeholder path has more than one dot.
	ErrMalformedReference = errors.NewKind("malformed reference ${%s} in table %q: expected TABLE, name or table.name")

	// ErrUnresolvedReference is returned when a placeholder names a table or
	// dimension the explore does not have.
	ErrUnresolvedReference = errors.NewKind("%s %q referenced by ${%s} in table %q not found")

	// ErrCyclicReference is returned when a dimension reaches itself through
	// its own references.
	ErrCyclicReference = errors.NewKind("cyclic reference ${%s} in table %q: %s")

	// ErrMissingMeasureType is returned for a measure without a type.
	ErrMissingMeasureType = errors.NewKind("measure %q in table %q has no type")

	// ErrUnknownTable is returned when the base table or a joined table is
	// missing from the explore.
	ErrUnknownTable = errors.NewKind("table %q not found in explore %q")

	// ErrUnknownField is returned when a metric query names a dimension or
	// measure the explore does not have.
	ErrUnknownField = errors.NewKind("%s %q not found in explore %q")

	// ErrInvalidQuery is returned when a metric query is structurally invalid.
	ErrInvalidQuery = errors.NewKind("invalid metric query: %s")
)
