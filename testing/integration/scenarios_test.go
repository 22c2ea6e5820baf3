package integration

import (
	"context"
	"database/sql"
	"reflect"
	"strconv"
	"testing"

	"github.com/zoobzio/metricsql"
	mtesting "github.com/zoobzio/metricsql/testing"
)

// seedStatements insert the same rows into every backend.
var seedStatements = []string{
	`INSERT INTO public.users (id, username, country, age, active) VALUES
		(1, 'alice', 'US', 30, 1),
		(2, 'bob', 'DE', 25, 1),
		(3, 'carol', 'US', 41, 0),
		(4, 'dave', 'FR', 19, 1)`,
	`INSERT INTO public.products (id, name, price, category) VALUES
		(1, 'widget', 10.00, 'tools'),
		(2, 'gadget', 25.00, 'toys'),
		(3, 'gizmo', 99.50, 'tools')`,
	`INSERT INTO public.orders (id, user_id, product_id, total, status) VALUES
		(1, 1, 1, 120.00, 'paid'),
		(2, 1, 2, 30.00, 'shipped'),
		(3, 2, 1, 15.00, 'paid'),
		(4, 3, 3, 250.00, 'refunded'),
		(5, 4, 2, 60.00, NULL),
		(6, 3, 1, 80.00, 'paid')`,
}

// scenario is a metric query and the rows it must return.
// Values are normalized to strings; numbers in shortest form, NULL as "NULL".
type scenario struct {
	name  string
	query func(e *metricsql.Explore) *metricsql.MetricQuery
	want  [][]string
}

func f(table, name string) metricsql.FieldRef { return metricsql.F(table, name) }

func refs(fields ...metricsql.FieldRef) []metricsql.FieldRef { return fields }

var scenarios = []scenario{
	{
		name: "count by status",
		query: func(e *metricsql.Explore) *metricsql.MetricQuery {
			return &metricsql.MetricQuery{
				Explore:    e,
				Dimensions: refs(f("orders", "status")),
				Measures:   refs(f("orders", "count")),
				Filters: []metricsql.FilterGroup{
					metricsql.StringGroup(f("orders", "status"), metricsql.AND, metricsql.StringNotNull{}),
				},
				Sorts: []metricsql.SortField{
					{Field: f("orders", "count"), Direction: metricsql.DESC},
					{Field: f("orders", "status"), Direction: metricsql.ASC},
				},
				Limit: 10,
			}
		},
		want: [][]string{{"paid", "3"}, {"refunded", "1"}, {"shipped", "1"}},
	},
	{
		name: "revenue by joined dimension",
		query: func(e *metricsql.Explore) *metricsql.MetricQuery {
			return &metricsql.MetricQuery{
				Explore:    e,
				Dimensions: refs(f("orders", "buyer_country")),
				Measures:   refs(f("orders", "revenue")),
				Sorts:      []metricsql.SortField{{Field: f("orders", "revenue"), Direction: metricsql.DESC}},
				Limit:      10,
			}
		},
		want: [][]string{{"US", "480"}, {"FR", "60"}, {"DE", "15"}},
	},
	{
		name: "limit truncates",
		query: func(e *metricsql.Explore) *metricsql.MetricQuery {
			return &metricsql.MetricQuery{
				Explore:    e,
				Dimensions: refs(f("users", "country")),
				Measures:   refs(f("orders", "count")),
				Sorts:      []metricsql.SortField{{Field: f("users", "country"), Direction: metricsql.ASC}},
				Limit:      2,
			}
		},
		want: [][]string{{"DE", "1"}, {"FR", "1"}},
	},
	{
		name: "every aggregate without grouping",
		query: func(e *metricsql.Explore) *metricsql.MetricQuery {
			return &metricsql.MetricQuery{
				Explore: e,
				Measures: refs(
					f("orders", "count"),
					f("orders", "revenue"),
					f("orders", "avg_total"),
					f("orders", "max_total"),
					f("orders", "min_total"),
					f("orders", "buyers"),
				),
				Limit: 1,
			}
		},
		want: [][]string{{"6", "555", "92.5", "250", "15", "4"}},
	},
	{
		name: "number range filter",
		query: func(e *metricsql.Explore) *metricsql.MetricQuery {
			return &metricsql.MetricQuery{
				Explore:  e,
				Measures: refs(f("orders", "count"), f("orders", "revenue")),
				Filters: []metricsql.FilterGroup{
					metricsql.NumberGroup(f("orders", "total"), metricsql.AND,
						metricsql.NumberGreaterThan{Value: 50},
						metricsql.NumberLessThan{Value: 200},
					),
				},
				Limit: 1,
			}
		},
		want: [][]string{{"3", "260"}},
	},
	{
		name: "starts with or null",
		query: func(e *metricsql.Explore) *metricsql.MetricQuery {
			return &metricsql.MetricQuery{
				Explore:  e,
				Measures: refs(f("orders", "count")),
				Filters: []metricsql.FilterGroup{
					metricsql.StringGroup(f("orders", "status"), metricsql.OR,
						metricsql.StringStartsWith{Value: "sh"},
						metricsql.StringIsNull{},
					),
				},
				Limit: 1,
			}
		},
		want: [][]string{{"2"}},
	},
	{
		name: "number equals and not equals",
		query: func(e *metricsql.Explore) *metricsql.MetricQuery {
			return &metricsql.MetricQuery{
				Explore:  e,
				Measures: refs(f("orders", "count")),
				Filters: []metricsql.FilterGroup{
					metricsql.NumberGroup(f("orders", "total"), metricsql.OR,
						metricsql.NumberEquals{Values: []float64{15, 60}},
					),
					metricsql.NumberGroup(f("orders", "user_id"), metricsql.AND,
						metricsql.NumberNotEquals{Values: []float64{2}},
						metricsql.NumberNotNull{},
					),
				},
				Limit: 1,
			}
		},
		want: [][]string{{"1"}},
	},
	{
		name: "string equals and not equals",
		query: func(e *metricsql.Explore) *metricsql.MetricQuery {
			return &metricsql.MetricQuery{
				Explore:  e,
				Measures: refs(f("orders", "count")),
				Filters: []metricsql.FilterGroup{
					metricsql.StringGroup(f("orders", "status"), metricsql.AND,
						metricsql.StringEquals{Values: []string{"paid", "refunded"}},
						metricsql.StringNotEquals{Values: []string{"refunded"}},
					),
				},
				Limit: 1,
			}
		},
		want: [][]string{{"3"}},
	},
	{
		name: "empty value lists",
		query: func(e *metricsql.Explore) *metricsql.MetricQuery {
			return &metricsql.MetricQuery{
				Explore:  e,
				Measures: refs(f("orders", "count")),
				Filters: []metricsql.FilterGroup{
					metricsql.NumberGroup(f("orders", "total"), metricsql.OR,
						metricsql.NumberEquals{},
						metricsql.NumberNotEquals{},
					),
					metricsql.StringGroup(f("orders", "status"), metricsql.AND,
						metricsql.StringEquals{},
					),
				},
				Limit: 1,
			}
		},
		want: [][]string{{"0"}},
	},
	{
		name: "computed dimensions",
		query: func(e *metricsql.Explore) *metricsql.MetricQuery {
			return &metricsql.MetricQuery{
				Explore:    e,
				Dimensions: refs(f("users", "age_group"), f("orders", "is_large")),
				Measures:   refs(f("orders", "count")),
				Sorts: []metricsql.SortField{
					{Field: f("users", "age_group"), Direction: metricsql.ASC},
					{Field: f("orders", "is_large"), Direction: metricsql.DESC},
				},
				Limit: 10,
			}
		},
		want: [][]string{{"adult", "1", "2"}, {"adult", "0", "2"}, {"young", "0", "2"}},
	},
	{
		name: "second join",
		query: func(e *metricsql.Explore) *metricsql.MetricQuery {
			return &metricsql.MetricQuery{
				Explore:    e,
				Dimensions: refs(f("products", "category")),
				Measures:   refs(f("orders", "count"), f("orders", "buyers")),
				Sorts:      []metricsql.SortField{{Field: f("products", "category"), Direction: metricsql.ASC}},
				Limit:      10,
			}
		},
		want: [][]string{{"tools", "4", "3"}, {"toys", "2", "2"}},
	},
}

// runScenarios compiles every scenario against the shared test explore and
// checks the rows db returns.
func runScenarios(ctx context.Context, t *testing.T, db *sql.DB) {
	t.Helper()

	explore := mtesting.TestExplore(t)
	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			result, err := metricsql.Render(sc.query(explore))
			mtesting.AssertNoError(t, err)

			got := queryRows(ctx, t, db, result.SQL, len(result.Columns))
			if !reflect.DeepEqual(got, sc.want) {
				t.Errorf("rows = %v, want %v\nSQL:\n%s", got, sc.want, result.SQL)
			}
		})
	}
}

func queryRows(ctx context.Context, t *testing.T, db *sql.DB, query string, width int) [][]string {
	t.Helper()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		t.Fatalf("Failed to execute query: %v\nSQL: %s", err, query)
	}
	defer func() { _ = rows.Close() }()

	var out [][]string
	for rows.Next() {
		values := make([]sql.NullString, width)
		dest := make([]any, width)
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			t.Fatalf("Failed to scan row: %v", err)
		}
		row := make([]string, width)
		for i, v := range values {
			row[i] = normalize(v)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Row iteration failed: %v", err)
	}
	return out
}

// normalize strips backend differences such as DECIMAL scale.
func normalize(v sql.NullString) string {
	if !v.Valid {
		return "NULL"
	}
	if n, err := strconv.ParseFloat(v.String, 64); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return v.String
}
