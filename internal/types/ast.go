package types

import "fmt"

// SortField orders the result by a selected field id.
type SortField struct {
	Field     FieldRef
	Direction Direction
}

// MetricQuery is a compilation request against an explore.
// This is exported from the internal package so the base package can use it,
// but external users cannot import this package.
//
//nolint:govet // fieldalignment: Logical grouping is preferred over memory optimization
type MetricQuery struct {
	Explore    *Explore
	Dimensions []FieldRef
	Measures   []FieldRef
	Filters    []FilterGroup
	Sorts      []SortField
	Limit      int
}

// Validate performs structural validation on the query.
// Field references are checked against the explore at compile time.
func (q *MetricQuery) Validate() error {
	if q.Explore == nil {
		return fmt.Errorf("explore is required")
	}
	if q.Explore.BaseTable == "" {
		return fmt.Errorf("explore base table is required")
	}
	if q.Limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", q.Limit)
	}

	for i, g := range q.Filters {
		if IsNilGroup(g) {
			return fmt.Errorf("filter group %d is nil", i)
		}
		if err := g.Validate(); err != nil {
			return err
		}
	}

	for _, s := range q.Sorts {
		if !s.Direction.Valid() {
			return fmt.Errorf("sort on %s: unsupported direction: %q", s.Field, s.Direction)
		}
	}

	if len(q.Dimensions) == 0 && len(q.Measures) == 0 {
		return fmt.Errorf("at least one dimension or measure is required")
	}

	return nil
}
