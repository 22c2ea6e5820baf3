package metricsql_test

import (
	"testing"

	"github.com/zoobzio/metricsql"
)

// newTestExplore returns an orders explore with customers joined on customer_id.
func newTestExplore(t *testing.T) *metricsql.Explore {
	t.Helper()

	return &metricsql.Explore{
		Name:      "orders",
		BaseTable: "orders",
		Tables: map[string]metricsql.Table{
			"orders": {
				Name:     "orders",
				SQLTable: "public.orders",
				Dimensions: map[string]metricsql.Dimension{
					"id":            {Name: "id", Table: "orders", Type: metricsql.DimensionNumber, SQL: "${TABLE}.id"},
					"status":        {Name: "status", Table: "orders", Type: metricsql.DimensionString, SQL: "${TABLE}.status"},
					"customer_id":   {Name: "customer_id", Table: "orders", Type: metricsql.DimensionNumber, SQL: "${TABLE}.customer_id"},
					"amount":        {Name: "amount", Table: "orders", Type: metricsql.DimensionNumber, SQL: "${TABLE}.amount"},
					"is_large":      {Name: "is_large", Table: "orders", Type: metricsql.DimensionBoolean, SQL: "${amount} > 100"},
					"customer_name": {Name: "customer_name", Table: "orders", Type: metricsql.DimensionString, SQL: "${customers.name}"},
				},
				Measures: map[string]metricsql.Measure{
					"count":            {Name: "count", Table: "orders", Type: metricsql.Count, SQL: "${TABLE}.id"},
					"total":            {Name: "total", Table: "orders", Type: metricsql.Sum, SQL: "${TABLE}.amount"},
					"avg_amount":       {Name: "avg_amount", Table: "orders", Type: metricsql.Average, SQL: "${amount}"},
					"max_amount":       {Name: "max_amount", Table: "orders", Type: metricsql.Max, SQL: "${TABLE}.amount"},
					"min_amount":       {Name: "min_amount", Table: "orders", Type: metricsql.Min, SQL: "${TABLE}.amount"},
					"unique_customers": {Name: "unique_customers", Table: "orders", Type: metricsql.CountDistinct, SQL: "${customer_id}"},
				},
			},
			"customers": {
				Name:     "customers",
				SQLTable: "public.customers",
				Dimensions: map[string]metricsql.Dimension{
					"id":     {Name: "id", Table: "customers", Type: metricsql.DimensionNumber, SQL: "${TABLE}.id"},
					"name":   {Name: "name", Table: "customers", Type: metricsql.DimensionString, SQL: "${TABLE}.name"},
					"region": {Name: "region", Table: "customers", Type: metricsql.DimensionString, SQL: "${TABLE}.region"},
				},
				Measures: map[string]metricsql.Measure{
					"count": {Name: "count", Table: "customers", Type: metricsql.Count, SQL: "*"},
				},
			},
		},
		JoinedTables: []metricsql.Join{
			{Table: "customers", SQLOn: "${orders.customer_id} = ${customers.id}"},
		},
	}
}

// newOrdersOnlyExplore returns a single-table explore with no joins.
func newOrdersOnlyExplore(t *testing.T) *metricsql.Explore {
	t.Helper()

	e := newTestExplore(t)
	e.JoinedTables = nil
	delete(e.Tables, "customers")
	orders := e.Tables["orders"]
	delete(orders.Dimensions, "customer_name")
	return e
}

// addDimension registers an extra dimension on a table of the explore.
func addDimension(e *metricsql.Explore, d metricsql.Dimension) {
	e.Tables[d.Table].Dimensions[d.Name] = d
}
