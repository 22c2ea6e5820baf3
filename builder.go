package metricsql

import (
	"fmt"

	"github.com/zoobzio/metricsql/internal/types"
)

// Builder provides a fluent API for constructing metric queries.
// The first error is kept and returned by Build; later calls are no-ops.
type Builder struct {
	query *types.MetricQuery
	err   error
}

// Query creates a new builder against an explore.
func Query(explore *types.Explore) *Builder {
	b := &Builder{
		query: &types.MetricQuery{Explore: explore},
	}
	if explore == nil {
		b.err = fmt.Errorf("explore is required")
	}
	return b
}

// GetQuery returns the query being built.
func (b *Builder) GetQuery() *types.MetricQuery {
	return b.query
}

// GetError returns the deferred builder error.
func (b *Builder) GetError() error {
	return b.err
}

// Dimensions appends dimensions to select.
func (b *Builder) Dimensions(refs ...types.FieldRef) *Builder {
	if b.err != nil {
		return b
	}
	for _, ref := range refs {
		if _, ok := b.query.Explore.Dimension(ref); !ok {
			b.err = fmt.Errorf("dimension %s not found in explore %q", ref, b.query.Explore.Name)
			return b
		}
	}
	b.query.Dimensions = append(b.query.Dimensions, refs...)
	return b
}

// Measures appends measures to select.
func (b *Builder) Measures(refs ...types.FieldRef) *Builder {
	if b.err != nil {
		return b
	}
	for _, ref := range refs {
		if _, ok := b.query.Explore.Measure(ref); !ok {
			b.err = fmt.Errorf("measure %s not found in explore %q", ref, b.query.Explore.Name)
			return b
		}
	}
	b.query.Measures = append(b.query.Measures, refs...)
	return b
}

// Filter adds a filter group. Groups are combined with AND.
func (b *Builder) Filter(group types.FilterGroup) *Builder {
	if b.err != nil {
		return b
	}
	if types.IsNilGroup(group) {
		b.err = fmt.Errorf("filter group cannot be nil")
		return b
	}
	if err := group.Validate(); err != nil {
		b.err = err
		return b
	}
	b.query.Filters = append(b.query.Filters, group)
	return b
}

// OrderBy adds ordering.
func (b *Builder) OrderBy(f types.FieldRef, direction types.Direction) *Builder {
	if b.err != nil {
		return b
	}
	if !b.query.Explore.HasField(f) {
		b.err = fmt.Errorf("field %s not found in explore %q", f, b.query.Explore.Name)
		return b
	}
	b.query.Sorts = append(b.query.Sorts, types.SortField{
		Field:     f,
		Direction: direction,
	})
	return b
}

// Limit sets the limit.
func (b *Builder) Limit(limit int) *Builder {
	if b.err != nil {
		return b
	}
	b.query.Limit = limit
	return b
}

// Build returns the constructed query or an error.
func (b *Builder) Build() (*types.MetricQuery, error) {
	if b.err != nil {
		return nil, b.err
	}

	if err := b.query.Validate(); err != nil {
		return nil, err
	}

	return b.query, nil
}

// MustBuild returns the query or panics on error.
func (b *Builder) MustBuild() *types.MetricQuery {
	q, err := b.Build()
	if err != nil {
		panic(err)
	}
	return q
}

// Render builds the query and compiles it.
func (b *Builder) Render() (*QueryResult, error) {
	q, err := b.Build()
	if err != nil {
		return nil, err
	}
	return Render(q)
}

// MustRender builds and compiles the query or panics on error.
func (b *Builder) MustRender() *QueryResult {
	result, err := b.Render()
	if err != nil {
		panic(err)
	}
	return result
}
