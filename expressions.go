package metricsql

import (
	"github.com/zoobzio/metricsql/internal/types"
)

// Helper functions for creating filter groups.

// TryStringGroup creates a string filter group, returning an error if invalid.
func TryStringGroup(field types.FieldRef, op types.LogicOperator, filters ...types.StringFilter) (types.StringFilterGroup, error) {
	g := types.StringFilterGroup{
		Field:    field,
		Operator: op,
		Filters:  filters,
	}
	if err := g.Validate(); err != nil {
		return types.StringFilterGroup{}, err
	}
	return g, nil
}

// StringGroup creates a string filter group.
func StringGroup(field types.FieldRef, op types.LogicOperator, filters ...types.StringFilter) types.StringFilterGroup {
	g, err := TryStringGroup(field, op, filters...)
	if err != nil {
		panic(err)
	}
	return g
}

// TryNumberGroup creates a number filter group, returning an error if invalid.
func TryNumberGroup(field types.FieldRef, op types.LogicOperator, filters ...types.NumberFilter) (types.NumberFilterGroup, error) {
	g := types.NumberFilterGroup{
		Field:    field,
		Operator: op,
		Filters:  filters,
	}
	if err := g.Validate(); err != nil {
		return types.NumberFilterGroup{}, err
	}
	return g, nil
}

// NumberGroup creates a number filter group.
func NumberGroup(field types.FieldRef, op types.LogicOperator, filters ...types.NumberFilter) types.NumberFilterGroup {
	g, err := TryNumberGroup(field, op, filters...)
	if err != nil {
		panic(err)
	}
	return g
}
