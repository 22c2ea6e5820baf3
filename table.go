package metricsql

import (
	"github.com/zoobzio/metricsql/internal/render"
	"github.com/zoobzio/metricsql/internal/types"
)

// RenderJoin returns the ON predicate of a join, resolved with the joined
// table as context.
func RenderJoin(explore *types.Explore, join types.Join) (string, error) {
	return newResolver(explore).resolve(join.SQLOn, join.Table)
}

// from renders the FROM clause for the explore's base table.
func (r *resolver) from() (string, error) {
	base, ok := r.explore.Tables[r.explore.BaseTable]
	if !ok {
		return "", render.ErrUnknownTable.New(r.explore.BaseTable, r.explore.Name)
	}
	return "FROM " + base.SQLTable + " AS " + r.explore.BaseTable, nil
}

// joins renders one LEFT JOIN per joined table, in declaration order.
func (r *resolver) joins() ([]string, error) {
	joins := make([]string, 0, len(r.explore.JoinedTables))
	for _, join := range r.explore.JoinedTables {
		t, ok := r.explore.Tables[join.Table]
		if !ok {
			return nil, render.ErrUnknownTable.New(join.Table, r.explore.Name)
		}
		on, err := r.resolve(join.SQLOn, join.Table)
		if err != nil {
			return nil, err
		}
		joins = append(joins, "LEFT JOIN "+t.SQLTable+" AS "+join.Table+"\n  ON "+on)
	}
	return joins, nil
}
