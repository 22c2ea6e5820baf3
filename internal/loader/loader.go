// Package loader reads explores and metric queries from YAML documents.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/zoobzio/metricsql/internal/types"
)

// LoadExplore reads an explore from a YAML file.
func LoadExplore(path string) (*types.Explore, error) {
	data, err := os.ReadFile(path) //nolint:gosec // reading a user-specified model file
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	explore, err := ParseExplore(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return explore, nil
}

// LoadQuery reads a metric query from a YAML file and binds it to explore.
func LoadQuery(path string, explore *types.Explore) (*types.MetricQuery, error) {
	data, err := os.ReadFile(path) //nolint:gosec // reading a user-specified query file
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	q, err := ParseQuery(data, explore)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return q, nil
}

// decode unmarshals a single YAML document, rejecting unknown keys.
func decode(data []byte, target interface{}) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("parse: empty document")
		}
		return fmt.Errorf("parse: %w", err)
	}
	return nil
}

// ParseExplore builds an explore from YAML. Table, dimension and measure names
// come from map keys; a table without sqlTable uses its name.
func ParseExplore(data []byte) (*types.Explore, error) {
	var doc exploreDocument
	if err := decode(data, &doc); err != nil {
		return nil, err
	}

	if doc.BaseTable == "" {
		return nil, fmt.Errorf("explore: baseTable is required")
	}
	name := doc.Name
	if name == "" {
		name = doc.BaseTable
	}

	explore := &types.Explore{
		Name:         name,
		BaseTable:    doc.BaseTable,
		Tables:       make(map[string]types.Table, len(doc.Tables)),
		JoinedTables: make([]types.Join, 0, len(doc.Joins)),
	}

	// Sorted so the first reported error does not depend on map order.
	for _, tableName := range sortedKeys(doc.Tables) {
		t, err := convertTable(tableName, doc.Tables[tableName])
		if err != nil {
			return nil, err
		}
		explore.Tables[tableName] = t
	}

	if _, ok := explore.Tables[doc.BaseTable]; !ok {
		return nil, fmt.Errorf("explore %q: base table %q is not defined", name, doc.BaseTable)
	}

	for i, j := range doc.Joins {
		if j.Table == "" {
			return nil, fmt.Errorf("explore %q: join %d: table is required", name, i)
		}
		if _, ok := explore.Tables[j.Table]; !ok {
			return nil, fmt.Errorf("explore %q: join %d: table %q is not defined", name, i, j.Table)
		}
		if j.SQLOn == "" {
			return nil, fmt.Errorf("explore %q: join %d: sqlOn is required", name, i)
		}
		explore.JoinedTables = append(explore.JoinedTables, types.Join{Table: j.Table, SQLOn: j.SQLOn})
	}

	return explore, nil
}

func convertTable(name string, doc tableDocument) (types.Table, error) {
	t := types.Table{
		Name:       name,
		SQLTable:   doc.SQLTable,
		Dimensions: make(map[string]types.Dimension, len(doc.Dimensions)),
		Measures:   make(map[string]types.Measure, len(doc.Measures)),
	}
	if t.SQLTable == "" {
		t.SQLTable = name
	}

	for _, dimName := range sortedKeys(doc.Dimensions) {
		f := doc.Dimensions[dimName]
		dt := types.DimensionType(strings.ToLower(f.Type))
		if f.Type == "" {
			dt = types.DimensionString
		}
		if !dt.Valid() {
			return types.Table{}, fmt.Errorf("dimension %s.%s: unsupported type %q", name, dimName, f.Type)
		}
		if f.SQL == "" {
			return types.Table{}, fmt.Errorf("dimension %s.%s: sql is required", name, dimName)
		}
		t.Dimensions[dimName] = types.Dimension{
			Name:        dimName,
			Table:       name,
			Type:        dt,
			SQL:         f.SQL,
			Description: f.Description,
		}
	}

	for _, measureName := range sortedKeys(doc.Measures) {
		f := doc.Measures[measureName]
		mt, err := types.ParseMeasureType(strings.ToLower(f.Type))
		if err != nil {
			return types.Table{}, fmt.Errorf("measure %s.%s: %w", name, measureName, err)
		}
		if f.SQL == "" {
			return types.Table{}, fmt.Errorf("measure %s.%s: sql is required", name, measureName)
		}
		t.Measures[measureName] = types.Measure{
			Name:        measureName,
			Table:       name,
			Type:        mt,
			SQL:         f.SQL,
			Description: f.Description,
		}
	}

	return t, nil
}

// ParseQuery builds a metric query from YAML. Field names are not checked
// against explore here; compilation reports unknown fields.
func ParseQuery(data []byte, explore *types.Explore) (*types.MetricQuery, error) {
	var doc queryDocument
	if err := decode(data, &doc); err != nil {
		return nil, err
	}

	q := &types.MetricQuery{Explore: explore}

	if doc.Limit == nil {
		return nil, fmt.Errorf("query: limit is required")
	}
	q.Limit = *doc.Limit

	for _, s := range doc.Dimensions {
		ref, err := ParseFieldRef(s)
		if err != nil {
			return nil, fmt.Errorf("dimensions: %w", err)
		}
		q.Dimensions = append(q.Dimensions, ref)
	}

	for _, s := range doc.Measures {
		ref, err := ParseFieldRef(s)
		if err != nil {
			return nil, fmt.Errorf("measures: %w", err)
		}
		q.Measures = append(q.Measures, ref)
	}

	for i, g := range doc.Filters {
		group, err := convertGroup(g)
		if err != nil {
			return nil, fmt.Errorf("filters[%d]: %w", i, err)
		}
		q.Filters = append(q.Filters, group)
	}

	for i, s := range doc.Sorts {
		ref, err := ParseFieldRef(s.Field)
		if err != nil {
			return nil, fmt.Errorf("sorts[%d]: %w", i, err)
		}
		dir, err := parseDirection(s.Direction)
		if err != nil {
			return nil, fmt.Errorf("sorts[%d]: %w", i, err)
		}
		q.Sorts = append(q.Sorts, types.SortField{Field: ref, Direction: dir})
	}

	return q, nil
}

// ParseFieldRef parses "table.name".
func ParseFieldRef(s string) (types.FieldRef, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return types.FieldRef{}, fmt.Errorf("invalid field %q: expected table.name", s)
	}
	return types.FieldRef{Table: parts[0], Name: parts[1]}, nil
}

func parseLogicOperator(s string) (types.LogicOperator, error) {
	op := types.LogicOperator(strings.ToUpper(s))
	if !op.Valid() {
		return "", fmt.Errorf("unsupported operator %q: use and or or", s)
	}
	return op, nil
}

func parseDirection(s string) (types.Direction, error) {
	if s == "" {
		return types.ASC, nil
	}
	dir := types.Direction(strings.ToUpper(s))
	if !dir.Valid() {
		return "", fmt.Errorf("unsupported direction %q: use asc or desc", s)
	}
	return dir, nil
}

func convertGroup(doc filterGroupDocument) (types.FilterGroup, error) {
	field, err := ParseFieldRef(doc.Field)
	if err != nil {
		return nil, err
	}
	op, err := parseLogicOperator(doc.Operator)
	if err != nil {
		return nil, err
	}

	var group types.FilterGroup
	switch types.FilterGroupType(strings.ToLower(doc.Type)) {
	case types.StringGroupType:
		g := types.StringFilterGroup{Field: field, Operator: op}
		for i, f := range doc.Filters {
			sf, err := convertStringFilter(f)
			if err != nil {
				return nil, fmt.Errorf("filter %d: %w", i, err)
			}
			g.Filters = append(g.Filters, sf)
		}
		group = g
	case types.NumberGroupType:
		g := types.NumberFilterGroup{Field: field, Operator: op}
		for i, f := range doc.Filters {
			nf, err := convertNumberFilter(f)
			if err != nil {
				return nil, fmt.Errorf("filter %d: %w", i, err)
			}
			g.Filters = append(g.Filters, nf)
		}
		group = g
	default:
		return nil, fmt.Errorf("unsupported filter group type %q: use string or number", doc.Type)
	}

	if err := group.Validate(); err != nil {
		return nil, err
	}
	return group, nil
}

func convertStringFilter(doc filterDocument) (types.StringFilter, error) {
	switch doc.Operator {
	case "equals":
		values, err := stringValues(doc.Values)
		if err != nil {
			return nil, err
		}
		return types.StringEquals{Values: values}, nil
	case "notEquals":
		values, err := stringValues(doc.Values)
		if err != nil {
			return nil, err
		}
		return types.StringNotEquals{Values: values}, nil
	case "isNull":
		return types.StringIsNull{}, nil
	case "notNull":
		return types.StringNotNull{}, nil
	case "startsWith":
		if doc.Value == nil {
			return nil, fmt.Errorf("startsWith requires a value")
		}
		v, err := cast.ToStringE(doc.Value)
		if err != nil {
			return nil, fmt.Errorf("startsWith: %w", err)
		}
		return types.StringStartsWith{Value: v}, nil
	default:
		return nil, fmt.Errorf("unsupported string operator %q", doc.Operator)
	}
}

func convertNumberFilter(doc filterDocument) (types.NumberFilter, error) {
	switch doc.Operator {
	case "equals":
		values, err := numberValues(doc.Values)
		if err != nil {
			return nil, err
		}
		return types.NumberEquals{Values: values}, nil
	case "notEquals":
		values, err := numberValues(doc.Values)
		if err != nil {
			return nil, err
		}
		return types.NumberNotEquals{Values: values}, nil
	case "isNull":
		return types.NumberIsNull{}, nil
	case "notNull":
		return types.NumberNotNull{}, nil
	case "greaterThan", "lessThan":
		if doc.Value == nil {
			return nil, fmt.Errorf("%s requires a value", doc.Operator)
		}
		v, err := toNumber(doc.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", doc.Operator, err)
		}
		if doc.Operator == "greaterThan" {
			return types.NumberGreaterThan{Value: v}, nil
		}
		return types.NumberLessThan{Value: v}, nil
	default:
		return nil, fmt.Errorf("unsupported number operator %q", doc.Operator)
	}
}

func stringValues(raw []interface{}) ([]string, error) {
	values := make([]string, len(raw))
	for i, v := range raw {
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		values[i] = s
	}
	return values, nil
}

func numberValues(raw []interface{}) ([]float64, error) {
	values := make([]float64, len(raw))
	for i, v := range raw {
		f, err := toNumber(v)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		values[i] = f
	}
	return values, nil
}

// maxExactInt bounds the integers a float64 holds without rounding.
const maxExactInt = 1 << 53

// toNumber converts a YAML scalar to a finite float64. Integers beyond
// maxExactInt are rejected rather than rounded.
func toNumber(v interface{}) (float64, error) {
	switch n := v.(type) {
	case uint64:
		if n > maxExactInt {
			return 0, fmt.Errorf("%d cannot be represented exactly", n)
		}
	case int, int64, string:
		if i, err := cast.ToInt64E(n); err == nil && (i > maxExactInt || i < -maxExactInt) {
			return 0, fmt.Errorf("%d cannot be represented exactly", i)
		}
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, err
	}
	if !types.IsFinite(f) {
		return 0, fmt.Errorf("%v is not a finite number", v)
	}
	return f, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
