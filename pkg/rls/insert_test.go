package rls

import (
	"context"
	"errors"
	"testing"

	"github.com/sqlgate-io/sqlgate/pkg/query"
	"github.com/sqlgate-io/sqlgate/pkg/tokentree"
)

// ordersOnly restricts the orders table to user_id = 5.
func ordersOnly() PredicateSource {
	return PredicateSourceFunc(func(_ context.Context, _ int, _ string, t query.Table) (*Restriction, error) {
		if t.Name == "orders" {
			return &Restriction{Predicate: "user_id = 5", Table: "orders"}, nil
		}
		return nil, nil
	})
}

func rewrite(t *testing.T, sql string, src PredicateSource) string {
	t.Helper()
	stmt := tokentree.ParseOne(sql)
	if stmt == nil {
		t.Fatalf("no statement in %q", sql)
	}
	out, err := InsertRLS(context.Background(), stmt, 1, "public", src)
	if err != nil {
		t.Fatalf("InsertRLS(%q): %v", sql, err)
	}
	return out.String()
}

func TestInsertRLSWhere(t *testing.T) {
	got := rewrite(t, "SELECT * FROM orders WHERE status = 'open'", ordersOnly())
	want := "SELECT * FROM orders WHERE ( status = 'open') AND orders.user_id = 5"
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestInsertRLSNoWhere(t *testing.T) {
	got := rewrite(t, "SELECT * FROM orders", ordersOnly())
	want := "SELECT * FROM orders WHERE orders.user_id = 5"
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestInsertRLSAlias(t *testing.T) {
	got := rewrite(t, "SELECT * FROM orders o", ordersOnly())
	want := "SELECT * FROM orders o WHERE orders.user_id = 5"
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestInsertRLSUnrestricted(t *testing.T) {
	sql := "SELECT * FROM free_table WHERE a = 1"
	got := rewrite(t, sql, ordersOnly())
	if got != sql {
		t.Errorf("unrestricted table rewritten: %q", got)
	}
}

func TestInsertRLSJoinOn(t *testing.T) {
	got := rewrite(t, "SELECT * FROM t JOIN orders ON t.id = orders.id", ordersOnly())
	want := "SELECT * FROM t JOIN orders ON orders.user_id = 5 AND ( t.id = orders.id ) "
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestInsertRLSJoinOnWithWhere(t *testing.T) {
	got := rewrite(t, "SELECT * FROM t JOIN orders ON t.id = orders.id WHERE t.x = 1", ordersOnly())
	want := "SELECT * FROM t JOIN orders ON orders.user_id = 5 AND ( t.id = orders.id  ) WHERE t.x = 1"
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestInsertRLSSubquery(t *testing.T) {
	got := rewrite(t, "SELECT * FROM (SELECT * FROM orders) sub", ordersOnly())
	want := "SELECT * FROM (SELECT * FROM orders WHERE orders.user_id = 5 ) sub"
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestInsertRLSSchemaQualified(t *testing.T) {
	src := PredicateSourceFunc(func(_ context.Context, _ int, schema string, t query.Table) (*Restriction, error) {
		if t.Schema == "sales" && t.Name == "orders" {
			return &Restriction{Predicate: "region = 'emea'", Table: "sales.orders"}, nil
		}
		return nil, nil
	})
	got := rewrite(t, "SELECT * FROM sales.orders", src)
	want := "SELECT * FROM sales.orders WHERE sales.orders.region = 'emea'"
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestInsertRLSLookupErrorFailsClosed(t *testing.T) {
	boom := errors.New("policy backend down")
	src := PredicateSourceFunc(func(context.Context, int, string, query.Table) (*Restriction, error) {
		return nil, boom
	})
	stmt := tokentree.ParseOne("SELECT * FROM orders")
	if _, err := InsertRLS(context.Background(), stmt, 1, "", src); !errors.Is(err, boom) {
		t.Errorf("expected lookup error, got %v", err)
	}
}

func TestQualifyColumns(t *testing.T) {
	tests := []struct{ pred, want string }{
		{"id = 42", "orders.id = 42"},
		{"orders.id = 42", "orders.id = 42"},
		{"a.id = 42 AND x = 1", "a.id = 42 AND orders.x = 1"},
		{"lower(region) = 'us'", "lower(orders.region) = 'us'"},
		{"status IN ('a', 'b')", "orders.status IN ('a', 'b')"},
	}
	for _, tt := range tests {
		node := tokentree.ParseOne(tt.pred)
		QualifyColumns(node, "orders")
		if got := node.String(); got != tt.want {
			t.Errorf("QualifyColumns(%q) = %q, want %q", tt.pred, got, tt.want)
		}
	}
}

func TestHasTableQuery(t *testing.T) {
	tests := []struct {
		sql  string
		want bool
	}{
		{"COUNT(*)", false},
		{"SELECT * FROM some_table", true},
		{"SELECT * FROM (SELECT 1) x", false},
		{"SELECT * FROM (SELECT * FROM inner_t) x", true},
		{"SELECT 1", false},
	}
	for _, tt := range tests {
		stmt := tokentree.ParseOne(tt.sql)
		if stmt == nil {
			t.Fatalf("no statement in %q", tt.sql)
		}
		if got := HasTableQuery(stmt); got != tt.want {
			t.Errorf("HasTableQuery(%q) = %v, want %v", tt.sql, got, tt.want)
		}
	}
}
