// Package metricsql compiles metric queries against a semantic model into SQL.
//
// A semantic model, the Explore, names tables, the dimensions and measures
// they expose, and the joins between them. A MetricQuery selects dimensions
// and measures by reference, filters on dimensions, sorts and limits; the
// compiler turns it into a single SELECT statement.
//
// # Basic Usage
//
//	q := &metricsql.MetricQuery{
//		Explore:    explore,
//		Dimensions: []metricsql.FieldRef{metricsql.F("orders", "status")},
//		Measures:   []metricsql.FieldRef{metricsql.F("orders", "count")},
//		Limit:      10,
//	}
//
//	sql, err := metricsql.Compile(q)
//	// SELECT
//	//   orders.status AS `orders_status`,
//	//   COUNT(orders.id) AS `orders_count`
//	// FROM public.orders AS orders
//	// GROUP BY 1
//	// LIMIT 10
//
// # Templates
//
// Dimension, measure and join SQL may embed placeholders. ${TABLE} is the
// alias of the table being rendered, ${name} is another dimension of the same
// table and ${table.name} a dimension of another table. Referenced dimensions
// are rendered recursively and substituted in parentheses.
//
// # Output Format
//
// Output columns are aliased with backtick-quoted field ids (table_name).
// Filter values are inlined as literals; strings are single-quoted and not
// escaped, so untrusted values must be validated before they reach a query.
package metricsql

import (
	"github.com/zoobzio/metricsql/internal/render"
	"github.com/zoobzio/metricsql/internal/types"
)

// Explore is the semantic model a query is compiled against.
type Explore = types.Explore

// Table is one logical table of an explore.
type Table = types.Table

// Join attaches a table to the explore's base table.
type Join = types.Join

// Dimension is a selectable, non-aggregated expression.
type Dimension = types.Dimension

// DimensionType is the value type of a dimension.
type DimensionType = types.DimensionType

// Re-export dimension type constants for public API.
const (
	DimensionString    = types.DimensionString
	DimensionNumber    = types.DimensionNumber
	DimensionTimestamp = types.DimensionTimestamp
	DimensionDate      = types.DimensionDate
	DimensionBoolean   = types.DimensionBoolean
)

// Measure is an aggregated expression.
type Measure = types.Measure

// MeasureType selects the aggregate a measure is wrapped in.
type MeasureType = types.MeasureType

// Measure type variants.
type (
	MeasureAverage       = types.MeasureAverage
	MeasureCount         = types.MeasureCount
	MeasureCountDistinct = types.MeasureCountDistinct
	MeasureMax           = types.MeasureMax
	MeasureMin           = types.MeasureMin
	MeasureSum           = types.MeasureSum
)

// Measure type values.
var (
	Average       MeasureType = types.MeasureAverage{}
	Count         MeasureType = types.MeasureCount{}
	CountDistinct MeasureType = types.MeasureCountDistinct{}
	Max           MeasureType = types.MeasureMax{}
	Min           MeasureType = types.MeasureMin{}
	Sum           MeasureType = types.MeasureSum{}
)

// ParseMeasureType maps a measure type name such as "count_distinct" to its variant.
func ParseMeasureType(name string) (MeasureType, error) {
	return types.ParseMeasureType(name)
}

// FieldRef identifies a dimension or measure.
type FieldRef = types.FieldRef

// F creates a field reference.
func F(table, name string) FieldRef {
	return FieldRef{Table: table, Name: name}
}

// FilterGroup combines filters of one value type on one dimension.
type FilterGroup = types.FilterGroup

// FilterGroupType tags the value type of a filter group.
type FilterGroupType = types.FilterGroupType

// Re-export filter group type constants for public API.
const (
	StringGroupType = types.StringGroupType
	NumberGroupType = types.NumberGroupType
)

// Filter groups.
type (
	StringFilterGroup = types.StringFilterGroup
	NumberFilterGroup = types.NumberFilterGroup
)

// StringFilter is a predicate on a string dimension.
type StringFilter = types.StringFilter

// String filters.
type (
	StringEquals     = types.StringEquals
	StringNotEquals  = types.StringNotEquals
	StringIsNull     = types.StringIsNull
	StringNotNull    = types.StringNotNull
	StringStartsWith = types.StringStartsWith
)

// NumberFilter is a predicate on a number dimension.
type NumberFilter = types.NumberFilter

// Number filters.
type (
	NumberEquals      = types.NumberEquals
	NumberNotEquals   = types.NumberNotEquals
	NumberIsNull      = types.NumberIsNull
	NumberNotNull     = types.NumberNotNull
	NumberGreaterThan = types.NumberGreaterThan
	NumberLessThan    = types.NumberLessThan
)

// LogicOperator combines filters inside a group.
type LogicOperator = types.LogicOperator

// Re-export logic operator constants for public API.
const (
	AND = types.AND
	OR  = types.OR
)

// Direction represents sort direction.
type Direction = types.Direction

// Re-export direction constants for public API.
const (
	ASC  = types.ASC
	DESC = types.DESC
)

// SortField orders the result by a field id.
type SortField = types.SortField

// MetricQuery is a compilation request.
type MetricQuery = types.MetricQuery

// QueryResult contains the compiled SQL and its output columns.
type QueryResult = types.QueryResult

// Error kinds returned by compilation. Match them with Kind.Is.
var (
	ErrMalformedReference  = render.ErrMalformedReference
	ErrUnresolvedReference = render.ErrUnresolvedReference
	ErrCyclicReference     = render.ErrCyclicReference
	ErrMissingMeasureType  = render.ErrMissingMeasureType
	ErrUnknownTable        = render.ErrUnknownTable
	ErrUnknownField        = render.ErrUnknownField
	ErrInvalidQuery        = render.ErrInvalidQuery
)
