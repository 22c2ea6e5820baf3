package metricsql

import (
	"strconv"
	"strings"

	"github.com/zoobzio/metricsql/internal/render"
	"github.com/zoobzio/metricsql/internal/types"
)

// Compile converts a metric query into a single SELECT statement.
func Compile(q *types.MetricQuery) (string, error) {
	result, err := Render(q)
	if err != nil {
		return "", err
	}
	return result.SQL, nil
}

// Render converts a metric query into a QueryResult with the SQL and its
// output columns.
func Render(q *types.MetricQuery) (*QueryResult, error) {
	return defaultCompiler.Render(q)
}

// compile assembles the statement. Clauses are emitted in the fixed order
// SELECT, FROM, JOINs, WHERE, GROUP BY, ORDER BY, LIMIT; empty ones are skipped.
func compile(q *types.MetricQuery) (*QueryResult, error) {
	if q == nil {
		return nil, render.ErrInvalidQuery.New("query is nil")
	}
	if err := q.Validate(); err != nil {
		return nil, render.ErrInvalidQuery.New(err.Error())
	}
	if err := validateFields(q); err != nil {
		return nil, err
	}

	r := newResolver(q.Explore)

	selections := make([]string, 0, len(q.Dimensions)+len(q.Measures))
	columns := make([]string, 0, len(q.Dimensions)+len(q.Measures))

	for _, ref := range q.Dimensions {
		d, _ := q.Explore.Dimension(ref)
		sql, err := r.dimension(ref, d)
		if err != nil {
			return nil, err
		}
		selections = append(selections, renderSelection(sql, ref))
		columns = append(columns, ref.ID())
	}

	for _, ref := range q.Measures {
		m, _ := q.Explore.Measure(ref)
		sql, err := r.measure(m)
		if err != nil {
			return nil, err
		}
		selections = append(selections, renderSelection(sql, ref))
		columns = append(columns, ref.ID())
	}

	from, err := r.from()
	if err != nil {
		return nil, err
	}

	joins, err := r.joins()
	if err != nil {
		return nil, err
	}

	where, err := r.where(q.Filters)
	if err != nil {
		return nil, err
	}

	clauses := []string{"SELECT\n" + strings.Join(selections, ",\n"), from}
	clauses = append(clauses, joins...)
	clauses = append(clauses,
		where,
		renderGroupBy(len(q.Dimensions)),
		renderOrderBy(q.Sorts),
		"LIMIT "+strconv.Itoa(q.Limit),
	)

	var sql strings.Builder
	for _, clause := range clauses {
		if clause == "" {
			continue
		}
		if sql.Len() > 0 {
			sql.WriteString("\n")
		}
		sql.WriteString(clause)
	}

	return &QueryResult{
		SQL:     sql.String(),
		Columns: columns,
	}, nil
}

// validateFields checks every field the query names exists in the explore.
func validateFields(q *types.MetricQuery) error {
	explore := q.Explore
	for _, ref := range q.Dimensions {
		if _, ok := explore.Dimension(ref); !ok {
			return render.ErrUnknownField.New("dimension", ref.String(), explore.Name)
		}
	}
	for _, ref := range q.Measures {
		if _, ok := explore.Measure(ref); !ok {
			return render.ErrUnknownField.New("measure", ref.String(), explore.Name)
		}
	}
	for _, g := range q.Filters {
		if _, ok := explore.Dimension(g.GroupField()); !ok {
			return render.ErrUnknownField.New("dimension", g.GroupField().String(), explore.Name)
		}
	}
	for _, s := range q.Sorts {
		if !explore.HasField(s.Field) {
			return render.ErrUnknownField.New("field", s.Field.String(), explore.Name)
		}
	}
	return nil
}

func renderSelection(sql string, ref types.FieldRef) string {
	return "  " + sql + " AS " + render.QuoteIdent(ref.ID())
}

// where wraps each rendered group in parentheses and joins groups with AND.
func (r *resolver) where(groups []types.FilterGroup) (string, error) {
	if len(groups) == 0 {
		return "", nil
	}
	parts := make([]string, len(groups))
	for i, g := range groups {
		sql, err := r.filterGroup(g)
		if err != nil {
			return "", err
		}
		parts[i] = "(\n  " + sql + "\n)"
	}
	return "WHERE " + strings.Join(parts, " AND "), nil
}

// renderGroupBy groups by the ordinal positions of the dimension selections.
func renderGroupBy(dimensions int) string {
	if dimensions == 0 {
		return ""
	}
	positions := make([]string, dimensions)
	for i := range positions {
		positions[i] = strconv.Itoa(i + 1)
	}
	return "GROUP BY " + strings.Join(positions, ",")
}

func renderOrderBy(sorts []types.SortField) string {
	if len(sorts) == 0 {
		return ""
	}
	parts := make([]string, len(sorts))
	for i, s := range sorts {
		parts[i] = s.Field.ID()
		if s.Direction == types.DESC {
			parts[i] += " DESC"
		}
	}
	return "ORDER BY " + strings.Join(parts, ", ")
}
