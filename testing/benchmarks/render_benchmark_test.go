// Package benchmarks provides performance benchmarks for metricsql.
package benchmarks

import (
	"testing"

	"github.com/zoobzio/metricsql"
	mtesting "github.com/zoobzio/metricsql/testing"
)

func compileOrFail(b *testing.B, q *metricsql.MetricQuery) {
	b.Helper()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := metricsql.Compile(q); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSingleMeasure measures a query with one measure and no grouping.
func BenchmarkSingleMeasure(b *testing.B) {
	compileOrFail(b, &metricsql.MetricQuery{
		Explore:  mtesting.TestExplore(b),
		Measures: []metricsql.FieldRef{metricsql.F("orders", "count")},
		Limit:    1,
	})
}

// BenchmarkGroupedMeasures measures dimensions plus several aggregates.
func BenchmarkGroupedMeasures(b *testing.B) {
	compileOrFail(b, &metricsql.MetricQuery{
		Explore:    mtesting.TestExplore(b),
		Dimensions: []metricsql.FieldRef{metricsql.F("orders", "status"), metricsql.F("products", "category")},
		Measures: []metricsql.FieldRef{
			metricsql.F("orders", "revenue"),
			metricsql.F("orders", "avg_total"),
			metricsql.F("orders", "max_total"),
			metricsql.F("orders", "min_total"),
			metricsql.F("orders", "buyers"),
		},
		Limit: 100,
	})
}

// BenchmarkNestedReferences measures dimensions that expand other dimensions.
func BenchmarkNestedReferences(b *testing.B) {
	explore := mtesting.TestExplore(b)
	orders := explore.Tables["orders"]
	orders.Dimensions["size"] = metricsql.Dimension{
		Name: "size", Table: "orders", Type: metricsql.DimensionString,
		SQL: "CASE WHEN ${is_large} AND ${users.age_group} = 'adult' THEN 'big' ELSE 'small' END",
	}

	compileOrFail(b, &metricsql.MetricQuery{
		Explore:    explore,
		Dimensions: []metricsql.FieldRef{metricsql.F("orders", "size"), metricsql.F("orders", "buyer_country")},
		Measures:   []metricsql.FieldRef{metricsql.F("orders", "count")},
		Limit:      10,
	})
}

// BenchmarkFilters measures string and number filter groups.
func BenchmarkFilters(b *testing.B) {
	compileOrFail(b, &metricsql.MetricQuery{
		Explore:    mtesting.TestExplore(b),
		Dimensions: []metricsql.FieldRef{metricsql.F("orders", "status")},
		Measures:   []metricsql.FieldRef{metricsql.F("orders", "revenue")},
		Filters: []metricsql.FilterGroup{
			metricsql.StringGroup(metricsql.F("orders", "status"), metricsql.OR,
				metricsql.StringEquals{Values: []string{"paid", "shipped", "delivered"}},
				metricsql.StringStartsWith{Value: "ret"},
				metricsql.StringIsNull{},
			),
			metricsql.NumberGroup(metricsql.F("orders", "total"), metricsql.AND,
				metricsql.NumberGreaterThan{Value: 10},
				metricsql.NumberLessThan{Value: 1000},
				metricsql.NumberNotEquals{Values: []float64{13, 666}},
			),
			metricsql.StringGroup(metricsql.F("users", "country"), metricsql.AND,
				metricsql.StringNotEquals{Values: []string{"XX"}},
			),
		},
		Limit: 50,
	})
}

// BenchmarkComplexQuery measures every clause together.
func BenchmarkComplexQuery(b *testing.B) {
	compileOrFail(b, &metricsql.MetricQuery{
		Explore: mtesting.TestExplore(b),
		Dimensions: []metricsql.FieldRef{
			metricsql.F("orders", "buyer_country"),
			metricsql.F("users", "age_group"),
			metricsql.F("products", "category"),
		},
		Measures: []metricsql.FieldRef{
			metricsql.F("orders", "revenue"),
			metricsql.F("orders", "buyers"),
		},
		Filters: []metricsql.FilterGroup{
			metricsql.NumberGroup(metricsql.F("orders", "total"), metricsql.AND, metricsql.NumberGreaterThan{Value: 5}),
			metricsql.StringGroup(metricsql.F("orders", "status"), metricsql.OR, metricsql.StringNotNull{}),
		},
		Sorts: []metricsql.SortField{
			{Field: metricsql.F("orders", "revenue"), Direction: metricsql.DESC},
			{Field: metricsql.F("users", "age_group"), Direction: metricsql.ASC},
		},
		Limit: 25,
	})
}

// BenchmarkBuilder measures fluent construction plus compilation.
func BenchmarkBuilder(b *testing.B) {
	explore := mtesting.TestExplore(b)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := metricsql.Query(explore).
			Dimensions(metricsql.F("orders", "status")).
			Measures(metricsql.F("orders", "count")).
			OrderBy(metricsql.F("orders", "count"), metricsql.DESC).
			Limit(10).
			Render()
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRenderDimension measures placeholder resolution alone.
func BenchmarkRenderDimension(b *testing.B) {
	explore := mtesting.TestExplore(b)
	d, _ := explore.Dimension(metricsql.F("users", "age_group"))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := metricsql.RenderDimension(explore, d); err != nil {
			b.Fatal(err)
		}
	}
}
