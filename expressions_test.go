package metricsql_test

import (
	"testing"

	"github.com/zoobzio/metricsql"
)

func TestTryStringGroup(t *testing.T) {
	status := metricsql.F("orders", "status")

	g, err := metricsql.TryStringGroup(status, metricsql.OR, metricsql.StringIsNull{}, metricsql.StringNotNull{})
	if err != nil {
		t.Fatalf("TryStringGroup() error = %v", err)
	}
	if g.GroupType() != metricsql.StringGroupType {
		t.Errorf("GroupType() = %q", g.GroupType())
	}
	if g.GroupField() != status || g.Operator != metricsql.OR || len(g.Filters) != 2 {
		t.Errorf("group = %+v", g)
	}

	if _, err := metricsql.TryStringGroup(status, metricsql.OR); err == nil {
		t.Error("expected error for empty group")
	}
	if _, err := metricsql.TryStringGroup(status, "XOR", metricsql.StringIsNull{}); err == nil {
		t.Error("expected error for unsupported operator")
	}
	if _, err := metricsql.TryStringGroup(metricsql.FieldRef{}, metricsql.AND, metricsql.StringIsNull{}); err == nil {
		t.Error("expected error for missing dimension")
	}
}

func TestTryNumberGroup(t *testing.T) {
	amount := metricsql.F("orders", "amount")

	g, err := metricsql.TryNumberGroup(amount, metricsql.AND, metricsql.NumberGreaterThan{Value: 1}, metricsql.NumberLessThan{Value: 9})
	if err != nil {
		t.Fatalf("TryNumberGroup() error = %v", err)
	}
	if g.GroupType() != metricsql.NumberGroupType {
		t.Errorf("GroupType() = %q", g.GroupType())
	}

	if _, err := metricsql.TryNumberGroup(amount, metricsql.AND, nil); err == nil {
		t.Error("expected error for nil filter")
	}
}

func TestStringGroup_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("StringGroup() did not panic")
		}
	}()
	metricsql.StringGroup(metricsql.F("orders", "status"), metricsql.AND)
}

func TestNumberGroup_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("NumberGroup() did not panic")
		}
	}()
	metricsql.NumberGroup(metricsql.F("orders", "amount"), "", metricsql.NumberIsNull{})
}
