package types

import "fmt"

// MeasureType selects the aggregate a measure is wrapped in.
//
// The set is closed. Every variant dispatches through MeasureTypeVisitor, so a
// new variant needs a new visitor method and nothing that renders measures
// builds until it handles it.
type MeasureType interface {
	String() string
	AcceptMeasureType(v MeasureTypeVisitor) string
	isMeasureType()
}

// MeasureTypeVisitor has one method per measure type.
type MeasureTypeVisitor interface {
	VisitAverage() string
	VisitCount() string
	VisitCountDistinct() string
	VisitMax() string
	VisitMin() string
	VisitSum() string
}

type (
	MeasureAverage       struct{}
	MeasureCount         struct{}
	MeasureCountDistinct struct{}
	MeasureMax           struct{}
	MeasureMin           struct{}
	MeasureSum           struct{}
)

func (MeasureAverage) String() string       { return "average" }
func (MeasureCount) String() string         { return "count" }
func (MeasureCountDistinct) String() string { return "count_distinct" }
func (MeasureMax) String() string           { return "max" }
func (MeasureMin) String() string           { return "min" }
func (MeasureSum) String() string           { return "sum" }

func (MeasureAverage) AcceptMeasureType(v MeasureTypeVisitor) string { return v.VisitAverage() }
func (MeasureCount) AcceptMeasureType(v MeasureTypeVisitor) string   { return v.VisitCount() }
func (MeasureCountDistinct) AcceptMeasureType(v MeasureTypeVisitor) string {
	return v.VisitCountDistinct()
}
func (MeasureMax) AcceptMeasureType(v MeasureTypeVisitor) string { return v.VisitMax() }
func (MeasureMin) AcceptMeasureType(v MeasureTypeVisitor) string { return v.VisitMin() }
func (MeasureSum) AcceptMeasureType(v MeasureTypeVisitor) string { return v.VisitSum() }

func (MeasureAverage) isMeasureType()       {}
func (MeasureCount) isMeasureType()         {}
func (MeasureCountDistinct) isMeasureType() {}
func (MeasureMax) isMeasureType()           {}
func (MeasureMin) isMeasureType()           {}
func (MeasureSum) isMeasureType()           {}

// MeasureTypes returns every measure type.
func MeasureTypes() []MeasureType {
	return []MeasureType{
		MeasureAverage{},
		MeasureCount{},
		MeasureCountDistinct{},
		MeasureMax{},
		MeasureMin{},
		MeasureSum{},
	}
}

// ParseMeasureType maps a measure type name to its variant.
func ParseMeasureType(name string) (MeasureType, error) {
	for _, t := range MeasureTypes() {
		if t.String() == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("unknown measure type: %q", name)
}
