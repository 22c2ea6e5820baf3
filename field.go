package metricsql

import (
	"github.com/zoobzio/metricsql/internal/render"
	"github.com/zoobzio/metricsql/internal/types"
)

// RenderDimension returns the SQL expression of a dimension, with every
// placeholder in its template resolved against the explore.
func RenderDimension(explore *types.Explore, d types.Dimension) (string, error) {
	return newResolver(explore).dimension(d.Ref(), d)
}

// RenderMeasure returns the aggregate SQL expression of a measure.
func RenderMeasure(explore *types.Explore, m types.Measure) (string, error) {
	return newResolver(explore).measure(m)
}

func (r *resolver) measure(m types.Measure) (string, error) {
	if m.Type == nil {
		return "", render.ErrMissingMeasureType.New(m.Name, m.Table)
	}
	sql, err := r.resolve(m.SQL, m.Table)
	if err != nil {
		return "", err
	}
	return m.Type.AcceptMeasureType(aggregate{sql: sql}), nil
}

// aggregate wraps resolved measure SQL in the function its type selects.
type aggregate struct {
	sql string
}

var _ types.MeasureTypeVisitor = aggregate{}

func (a aggregate) VisitAverage() string       { return "AVG(" + a.sql + ")" }
func (a aggregate) VisitCount() string         { return "COUNT(" + a.sql + ")" }
func (a aggregate) VisitCountDistinct() string { return "COUNT(DISTINCT " + a.sql + ")" }
func (a aggregate) VisitMax() string           { return "MAX(" + a.sql + ")" }
func (a aggregate) VisitMin() string           { return "MIN(" + a.sql + ")" }
func (a aggregate) VisitSum() string           { return "SUM(" + a.sql + ")" }
