// Package testing provides test utilities for metricsql.
package testing

import (
	"strings"
	"testing"

	"github.com/zoobzio/dbml"
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/zoobzio/metricsql"
)

// TestProject returns the DBML schema behind TestExplore.
// Includes users, orders and products tables.
func TestProject() *dbml.Project {
	project := dbml.NewProject("test")

	// Users table
	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "bigint"))
	users.AddColumn(dbml.NewColumn("username", "varchar"))
	users.AddColumn(dbml.NewColumn("country", "varchar"))
	users.AddColumn(dbml.NewColumn("age", "int"))
	users.AddColumn(dbml.NewColumn("active", "boolean"))
	users.AddColumn(dbml.NewColumn("created_at", "timestamp"))
	project.AddTable(users)

	// Orders table
	orders := dbml.NewTable("orders")
	orders.AddColumn(dbml.NewColumn("id", "bigint"))
	orders.AddColumn(dbml.NewColumn("user_id", "bigint"))
	orders.AddColumn(dbml.NewColumn("product_id", "bigint"))
	orders.AddColumn(dbml.NewColumn("total", "numeric"))
	orders.AddColumn(dbml.NewColumn("status", "varchar"))
	orders.AddColumn(dbml.NewColumn("created_at", "timestamp"))
	project.AddTable(orders)

	// Products table
	products := dbml.NewTable("products")
	products.AddColumn(dbml.NewColumn("id", "bigint"))
	products.AddColumn(dbml.NewColumn("name", "varchar"))
	products.AddColumn(dbml.NewColumn("price", "numeric"))
	products.AddColumn(dbml.NewColumn("category", "varchar"))
	project.AddTable(products)

	return project
}

// TestExplore creates an orders explore for testing, with users and products
// joined and a set of computed dimensions and typed measures on top of the
// scaffolded columns. Physical tables live in the public schema.
func TestExplore(t testing.TB) *metricsql.Explore {
	t.Helper()

	explore, err := metricsql.ExploreFromDBML(TestProject(), "orders",
		metricsql.Join{Table: "users", SQLOn: "${orders.user_id} = ${users.id}"},
		metricsql.Join{Table: "products", SQLOn: "${orders.product_id} = ${products.id}"},
	)
	if err != nil {
		t.Fatalf("Failed to create test explore: %v", err)
	}

	for name, table := range explore.Tables {
		table.SQLTable = "public." + name
		explore.Tables[name] = table
	}

	orders := explore.Tables["orders"]
	orders.Dimensions["is_large"] = metricsql.Dimension{
		Name: "is_large", Table: "orders", Type: metricsql.DimensionBoolean, SQL: "${total} >= 100",
	}
	orders.Dimensions["buyer_country"] = metricsql.Dimension{
		Name: "buyer_country", Table: "orders", Type: metricsql.DimensionString, SQL: "${users.country}",
	}
	orders.Measures["revenue"] = metricsql.Measure{
		Name: "revenue", Table: "orders", Type: metricsql.Sum, SQL: "${total}",
	}
	orders.Measures["avg_total"] = metricsql.Measure{
		Name: "avg_total", Table: "orders", Type: metricsql.Average, SQL: "${TABLE}.total",
	}
	orders.Measures["max_total"] = metricsql.Measure{
		Name: "max_total", Table: "orders", Type: metricsql.Max, SQL: "${TABLE}.total",
	}
	orders.Measures["min_total"] = metricsql.Measure{
		Name: "min_total", Table: "orders", Type: metricsql.Min, SQL: "${TABLE}.total",
	}
	orders.Measures["buyers"] = metricsql.Measure{
		Name: "buyers", Table: "orders", Type: metricsql.CountDistinct, SQL: "${user_id}",
	}

	users := explore.Tables["users"]
	users.Dimensions["age_group"] = metricsql.Dimension{
		Name: "age_group", Table: "users", Type: metricsql.DimensionString,
		SQL: "CASE WHEN ${age} < 30 THEN 'young' ELSE 'adult' END",
	}

	return explore
}

// AssertSQL compares expected and actual SQL, reporting detailed differences.
func AssertSQL(t testing.TB, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Errorf("SQL mismatch:\nExpected:\n%s\nActual:\n%s", expected, actual)
	}
}

// AssertColumns checks the output columns match in order.
func AssertColumns(t testing.TB, expected, actual []string) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Errorf("Column count mismatch: expected %d, got %d\nExpected: %v\nActual: %v",
			len(expected), len(actual), expected, actual)
		return
	}
	for i := range expected {
		if expected[i] != actual[i] {
			t.Errorf("Column %d mismatch: expected %q, got %q\nExpected: %v\nActual: %v",
				i, expected[i], actual[i], expected, actual)
		}
	}
}

// AssertContainsColumn checks that a specific column is in the list.
func AssertContainsColumn(t testing.TB, columns []string, column string) {
	t.Helper()
	for _, c := range columns {
		if c == column {
			return
		}
	}
	t.Errorf("Expected column %q not found in %v", column, columns)
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertErrorKind checks that err was created by kind.
func AssertErrorKind(t testing.TB, err error, kind *errors.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected %q error but got nil", kind.Message)
	}
	if !kind.Is(err) {
		t.Errorf("Expected %q error, got: %v", kind.Message, err)
	}
}

// AssertErrorContains checks that error message contains substring.
func AssertErrorContains(t testing.TB, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error containing %q but got nil", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("Expected error containing %q, got: %v", substr, err)
	}
}

// AssertPanics verifies that a function panics.
func AssertPanics(t testing.TB, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic but function completed normally")
		}
	}()
	fn()
}

// AssertPanicsWithMessage verifies that a function panics with a specific message.
func AssertPanicsWithMessage(t testing.TB, fn func(), substr string) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("Expected panic containing %q but function completed normally", substr)
			return
		}
		var msg string
		switch v := r.(type) {
		case error:
			msg = v.Error()
		case string:
			msg = v
		default:
			t.Errorf("Panic value is not string or error: %T", r)
			return
		}
		if !strings.Contains(msg, substr) {
			t.Errorf("Expected panic containing %q, got: %s", substr, msg)
		}
	}()
	fn()
}
