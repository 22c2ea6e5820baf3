package types

// DimensionType is the value type of a dimension.
type DimensionType string

const (
	DimensionString    DimensionType = "string"
	DimensionNumber    DimensionType = "number"
	DimensionTimestamp DimensionType = "timestamp"
	DimensionDate      DimensionType = "date"
	DimensionBoolean   DimensionType = "boolean"
)

// Valid reports whether t is one of the known dimension types.
func (t DimensionType) Valid() bool {
	switch t {
	case DimensionString, DimensionNumber, DimensionTimestamp, DimensionDate, DimensionBoolean:
		return true
	}
	return false
}

// Dimension is a selectable, non-aggregated expression.
// SQL may embed ${...} placeholders.
type Dimension struct {
	Name        string
	Table       string
	Type        DimensionType
	SQL         string
	Description string
}

// Ref returns the field reference of the dimension.
func (d Dimension) Ref() FieldRef {
	return FieldRef{Table: d.Table, Name: d.Name}
}

// Measure is a selectable expression wrapped in an aggregate picked by Type.
type Measure struct {
	Type        MeasureType
	Name        string
	Table       string
	SQL         string
	Description string
}

// Ref returns the field reference of the measure.
func (m Measure) Ref() FieldRef {
	return FieldRef{Table: m.Table, Name: m.Name}
}

// FieldRef identifies a dimension or measure by table and name.
type FieldRef struct {
	Table string
	Name  string
}

// ID returns the unique field id, used as output column alias and sort key.
func (f FieldRef) ID() string {
	return f.Table + "_" + f.Name
}

// String returns the dotted form table.name.
func (f FieldRef) String() string {
	return f.Table + "." + f.Name
}
