package types

import (
	"fmt"
	"math"
)

// StringFilter is a predicate on a string dimension.
// Literal values are inlined as written, without escaping.
type StringFilter interface {
	AcceptStringFilter(v StringFilterVisitor) string
	isStringFilter()
}

// StringFilterVisitor has one method per string filter operator.
type StringFilterVisitor interface {
	VisitStringEquals(f StringEquals) string
	VisitStringNotEquals(f StringNotEquals) string
	VisitStringIsNull(f StringIsNull) string
	VisitStringNotNull(f StringNotNull) string
	VisitStringStartsWith(f StringStartsWith) string
}

// StringEquals matches any of Values. No values matches nothing.
type StringEquals struct {
	Values []string
}

// StringNotEquals matches none of Values. No values matches everything.
type StringNotEquals struct {
	Values []string
}

// StringIsNull matches NULL.
type StringIsNull struct{}

// StringNotNull matches anything but NULL.
type StringNotNull struct{}

// StringStartsWith matches values with the given prefix.
type StringStartsWith struct {
	Value string
}

func (f StringEquals) AcceptStringFilter(v StringFilterVisitor) string {
	return v.VisitStringEquals(f)
}
func (f StringNotEquals) AcceptStringFilter(v StringFilterVisitor) string {
	return v.VisitStringNotEquals(f)
}
func (f StringIsNull) AcceptStringFilter(v StringFilterVisitor) string {
	return v.VisitStringIsNull(f)
}
func (f StringNotNull) AcceptStringFilter(v StringFilterVisitor) string {
	return v.VisitStringNotNull(f)
}
func (f StringStartsWith) AcceptStringFilter(v StringFilterVisitor) string {
	return v.VisitStringStartsWith(f)
}

func (StringEquals) isStringFilter()     {}
func (StringNotEquals) isStringFilter()  {}
func (StringIsNull) isStringFilter()     {}
func (StringNotNull) isStringFilter()    {}
func (StringStartsWith) isStringFilter() {}

// NumberFilter is a predicate on a number dimension.
type NumberFilter interface {
	AcceptNumberFilter(v NumberFilterVisitor) string
	isNumberFilter()
}

// NumberFilterVisitor has one method per number filter operator.
type NumberFilterVisitor interface {
	VisitNumberEquals(f NumberEquals) string
	VisitNumberNotEquals(f NumberNotEquals) string
	VisitNumberIsNull(f NumberIsNull) string
	VisitNumberNotNull(f NumberNotNull) string
	VisitNumberGreaterThan(f NumberGreaterThan) string
	VisitNumberLessThan(f NumberLessThan) string
}

// NumberEquals matches any of Values. No values matches nothing.
type NumberEquals struct {
	Values []float64
}

// NumberNotEquals matches none of Values. No values matches everything.
type NumberNotEquals struct {
	Values []float64
}

// NumberIsNull matches NULL.
type NumberIsNull struct{}

// NumberNotNull matches anything but NULL.
type NumberNotNull struct{}

// NumberGreaterThan matches values strictly above Value.
type NumberGreaterThan struct {
	Value float64
}

// NumberLessThan matches values strictly below Value.
type NumberLessThan struct {
	Value float64
}

func (f NumberEquals) AcceptNumberFilter(v NumberFilterVisitor) string {
	return v.VisitNumberEquals(f)
}
func (f NumberNotEquals) AcceptNumberFilter(v NumberFilterVisitor) string {
	return v.VisitNumberNotEquals(f)
}
func (f NumberIsNull) AcceptNumberFilter(v NumberFilterVisitor) string {
	return v.VisitNumberIsNull(f)
}
func (f NumberNotNull) AcceptNumberFilter(v NumberFilterVisitor) string {
	return v.VisitNumberNotNull(f)
}
func (f NumberGreaterThan) AcceptNumberFilter(v NumberFilterVisitor) string {
	return v.VisitNumberGreaterThan(f)
}
func (f NumberLessThan) AcceptNumberFilter(v NumberFilterVisitor) string {
	return v.VisitNumberLessThan(f)
}

func (NumberEquals) isNumberFilter()      {}
func (NumberNotEquals) isNumberFilter()   {}
func (NumberIsNull) isNumberFilter()      {}
func (NumberNotNull) isNumberFilter()     {}
func (NumberGreaterThan) isNumberFilter() {}
func (NumberLessThan) isNumberFilter()    {}

// FilterGroupType tags the value type of a filter group.
type FilterGroupType string

const (
	StringGroupType FilterGroupType = "string"
	NumberGroupType FilterGroupType = "number"
)

// FilterGroup combines filters of one value type on one dimension.
type FilterGroup interface {
	GroupType() FilterGroupType
	GroupField() FieldRef
	Validate() error
	AcceptFilterGroup(v FilterGroupVisitor) (string, error)
	isFilterGroup()
}

// FilterGroupVisitor has one method per filter group type.
type FilterGroupVisitor interface {
	VisitStringGroup(g StringFilterGroup) (string, error)
	VisitNumberGroup(g NumberFilterGroup) (string, error)
}

// StringFilterGroup applies string filters to a string dimension.
type StringFilterGroup struct {
	Field    FieldRef
	Operator LogicOperator
	Filters  []StringFilter
}

// NumberFilterGroup applies number filters to a number dimension.
type NumberFilterGroup struct {
	Field    FieldRef
	Operator LogicOperator
	Filters  []NumberFilter
}

func (StringFilterGroup) GroupType() FilterGroupType { return StringGroupType }
func (NumberFilterGroup) GroupType() FilterGroupType { return NumberGroupType }

func (g StringFilterGroup) GroupField() FieldRef { return g.Field }
func (g NumberFilterGroup) GroupField() FieldRef { return g.Field }

func (g StringFilterGroup) AcceptFilterGroup(v FilterGroupVisitor) (string, error) {
	return v.VisitStringGroup(g)
}
func (g NumberFilterGroup) AcceptFilterGroup(v FilterGroupVisitor) (string, error) {
	return v.VisitNumberGroup(g)
}

func (StringFilterGroup) isFilterGroup() {}
func (NumberFilterGroup) isFilterGroup() {}

// Validate checks the group is non-empty and well formed.
func (g StringFilterGroup) Validate() error {
	if err := validateGroup(g.Field, g.Operator, len(g.Filters)); err != nil {
		return err
	}
	for i, f := range g.Filters {
		if isNilStringFilter(f) {
			return fmt.Errorf("filter group on %s: filter %d is nil", g.Field, i)
		}
	}
	return nil
}

// Validate checks the group is non-empty and well formed, and that every
// value is a finite number.
func (g NumberFilterGroup) Validate() error {
	if err := validateGroup(g.Field, g.Operator, len(g.Filters)); err != nil {
		return err
	}
	for i, f := range g.Filters {
		if isNilNumberFilter(f) {
			return fmt.Errorf("filter group on %s: filter %d is nil", g.Field, i)
		}
		for _, v := range numberFilterValues(f) {
			if !IsFinite(v) {
				return fmt.Errorf("filter group on %s: filter %d: value %v is not a finite number", g.Field, i, v)
			}
		}
	}
	return nil
}

// IsFinite reports whether v can be written as a SQL number literal.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// IsNilGroup reports whether g is nil or a nil group pointer.
func IsNilGroup(g FilterGroup) bool {
	switch g := g.(type) {
	case nil:
		return true
	case *StringFilterGroup:
		return g == nil
	case *NumberFilterGroup:
		return g == nil
	}
	return false
}

func isNilStringFilter(f StringFilter) bool {
	switch f := f.(type) {
	case nil:
		return true
	case *StringEquals:
		return f == nil
	case *StringNotEquals:
		return f == nil
	case *StringIsNull:
		return f == nil
	case *StringNotNull:
		return f == nil
	case *StringStartsWith:
		return f == nil
	}
	return false
}

func isNilNumberFilter(f NumberFilter) bool {
	switch f := f.(type) {
	case nil:
		return true
	case *NumberEquals:
		return f == nil
	case *NumberNotEquals:
		return f == nil
	case *NumberIsNull:
		return f == nil
	case *NumberNotNull:
		return f == nil
	case *NumberGreaterThan:
		return f == nil
	case *NumberLessThan:
		return f == nil
	}
	return false
}

// numberFilterValues returns the literal values a non-nil filter carries.
func numberFilterValues(f NumberFilter) []float64 {
	switch f := f.(type) {
	case NumberEquals:
		return f.Values
	case *NumberEquals:
		return f.Values
	case NumberNotEquals:
		return f.Values
	case *NumberNotEquals:
		return f.Values
	case NumberGreaterThan:
		return []float64{f.Value}
	case *NumberGreaterThan:
		return []float64{f.Value}
	case NumberLessThan:
		return []float64{f.Value}
	case *NumberLessThan:
		return []float64{f.Value}
	}
	return nil
}

func validateGroup(field FieldRef, op LogicOperator, n int) error {
	if field.Table == "" || field.Name == "" {
		return fmt.Errorf("filter group requires a dimension")
	}
	if !op.Valid() {
		return fmt.Errorf("filter group on %s: unsupported operator: %q", field, op)
	}
	if n == 0 {
		return fmt.Errorf("filter group on %s requires at least one filter", field)
	}
	return nil
}
