package metricsql

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/zoobzio/dbml"

	"github.com/zoobzio/metricsql/internal/types"
)

// Compiler compiles metric queries. It holds no per-query state and is safe
// for concurrent use.
type Compiler struct {
	log *logrus.Entry
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger compilation events are written to.
func WithLogger(log *logrus.Entry) Option {
	return func(c *Compiler) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a Compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		log: logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCompiler = New()

// Compile converts a metric query into a single SELECT statement.
func (c *Compiler) Compile(q *types.MetricQuery) (string, error) {
	result, err := c.Render(q)
	if err != nil {
		return "", err
	}
	return result.SQL, nil
}

// Render converts a metric query into a QueryResult.
// Errors are returned exactly as raised so callers can match their kind.
func (c *Compiler) Render(q *types.MetricQuery) (*QueryResult, error) {
	log := c.log
	if q != nil {
		log = log.WithFields(logrus.Fields{
			"explore":    exploreName(q.Explore),
			"dimensions": len(q.Dimensions),
			"measures":   len(q.Measures),
			"filters":    len(q.Filters),
			"sorts":      len(q.Sorts),
			"limit":      q.Limit,
		})
	}

	result, err := compile(q)
	if err != nil {
		log.WithError(err).Debug("metric query failed to compile")
		return nil, err
	}

	log.WithField("columns", strings.Join(result.Columns, ",")).Debug("metric query compiled")
	return result, nil
}

func exploreName(e *types.Explore) string {
	if e == nil {
		return ""
	}
	return e.Name
}

// ExploreFromDBML scaffolds an explore from a DBML project.
//
// Every table gets one dimension per column (${TABLE}.column) and a count
// measure over all rows. joins are attached in the given order; the base
// table and every joined table must exist in the project.
func ExploreFromDBML(project *dbml.Project, baseTable string, joins ...types.Join) (*types.Explore, error) {
	if project == nil {
		return nil, fmt.Errorf("project cannot be nil")
	}

	explore := &types.Explore{
		Name:         baseTable,
		BaseTable:    baseTable,
		Tables:       make(map[string]types.Table),
		JoinedTables: joins,
	}

	for _, table := range project.Tables {
		t := types.Table{
			Name:       table.Name,
			SQLTable:   table.Name,
			Dimensions: make(map[string]types.Dimension),
			Measures: map[string]types.Measure{
				"count": {
					Name:  "count",
					Table: table.Name,
					Type:  types.MeasureCount{},
					SQL:   "*",
				},
			},
		}
		for _, col := range table.Columns {
			t.Dimensions[col.Name] = types.Dimension{
				Name:  col.Name,
				Table: table.Name,
				Type:  dimensionType(col.Type),
				SQL:   "${TABLE}." + col.Name,
			}
		}
		explore.Tables[table.Name] = t
	}

	if _, ok := explore.Tables[baseTable]; !ok {
		return nil, fmt.Errorf("table '%s' not found in schema", baseTable)
	}
	for _, join := range joins {
		if _, ok := explore.Tables[join.Table]; !ok {
			return nil, fmt.Errorf("table '%s' not found in schema", join.Table)
		}
	}

	return explore, nil
}

// dimensionType maps a DBML column type onto a dimension type.
func dimensionType(columnType string) types.DimensionType {
	t := strings.ToLower(columnType)
	if i := strings.IndexByte(t, '('); i != -1 {
		t = t[:i]
	}
	switch strings.TrimSpace(t) {
	case "int", "integer", "smallint", "bigint", "tinyint", "serial", "bigserial",
		"numeric", "decimal", "real", "float", "double", "double precision", "money":
		return types.DimensionNumber
	case "bool", "boolean":
		return types.DimensionBoolean
	case "date":
		return types.DimensionDate
	case "timestamp", "timestamptz", "datetime", "time":
		return types.DimensionTimestamp
	default:
		return types.DimensionString
	}
}
