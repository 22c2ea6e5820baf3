package types

import "sort"

// Table is one logical table of an explore.
// Name doubles as the SQL alias of the table; SQLTable is the physical
// relation it reads from.
type Table struct {
	Dimensions map[string]Dimension
	Measures   map[string]Measure
	Name       string
	SQLTable   string
}

// Join attaches a table to the explore's base table.
// SQLOn is a template producing the ON predicate.
type Join struct {
	Table string
	SQLOn string
}

// Explore is the semantic model a metric query is compiled against.
// This is exported from the internal package so the base package can use it,
// but external users cannot import this package.
type Explore struct {
	Tables       map[string]Table
	Name         string
	BaseTable    string
	JoinedTables []Join
}

// Table returns the named table.
func (e *Explore) Table(name string) (Table, bool) {
	t, ok := e.Tables[name]
	return t, ok
}

// Dimension looks up the dimension a field reference points at.
func (e *Explore) Dimension(ref FieldRef) (Dimension, bool) {
	t, ok := e.Tables[ref.Table]
	if !ok {
		return Dimension{}, false
	}
	d, ok := t.Dimensions[ref.Name]
	return d, ok
}

// Measure looks up the measure a field reference points at.
func (e *Explore) Measure(ref FieldRef) (Measure, bool) {
	t, ok := e.Tables[ref.Table]
	if !ok {
		return Measure{}, false
	}
	m, ok := t.Measures[ref.Name]
	return m, ok
}

// HasField reports whether ref names a dimension or a measure.
func (e *Explore) HasField(ref FieldRef) bool {
	if _, ok := e.Dimension(ref); ok {
		return true
	}
	_, ok := e.Measure(ref)
	return ok
}

// FieldIDs returns the id of every dimension and measure in the explore, sorted.
func (e *Explore) FieldIDs() []string {
	var ids []string
	for tableName, t := range e.Tables {
		for name := range t.Dimensions {
			ids = append(ids, FieldRef{Table: tableName, Name: name}.ID())
		}
		for name := range t.Measures {
			ids = append(ids, FieldRef{Table: tableName, Name: name}.ID())
		}
	}
	sort.Strings(ids)
	return ids
}
