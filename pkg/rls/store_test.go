package rls

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/sqlgate-io/sqlgate/internal/testutil"
	"github.com/sqlgate-io/sqlgate/pkg/query"
)

func TestStoreLookup(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"predicate"}).
		AddRow("user_id = 5").
		AddRow("region = 'emea'")
	mock.ExpectQuery("SELECT predicate FROM rls_policies").
		WithArgs(1, "public", "orders").
		WillReturnRows(rows)

	store := NewStore(db, testutil.NewTestLogger(t))
	r, err := store.Lookup(context.Background(), 1, "public", query.Table{Name: "orders"})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if r == nil {
		t.Fatal("expected a restriction")
	}
	if r.Predicate != "user_id = 5 AND region = 'emea'" {
		t.Errorf("predicate = %q", r.Predicate)
	}
	if r.Table != "public.orders" {
		t.Errorf("table = %q", r.Table)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestStoreLookupExplicitSchemaWins(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT predicate FROM rls_policies").
		WithArgs(7, "sales", "orders").
		WillReturnRows(sqlmock.NewRows([]string{"predicate"}).AddRow("1 = 1"))

	store := NewStore(db, testutil.NewTestLogger(t))
	r, err := store.Lookup(context.Background(), 7, "public",
		query.Table{Name: "orders", Schema: "sales"})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if r == nil || r.Table != "sales.orders" {
		t.Errorf("restriction = %+v", r)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestStoreLookupNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT predicate FROM rls_policies").
		WillReturnRows(sqlmock.NewRows([]string{"predicate"}))

	store := NewStore(db, testutil.NewTestLogger(t))
	r, err := store.Lookup(context.Background(), 1, "", query.Table{Name: "free"})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if r != nil {
		t.Errorf("expected no restriction, got %+v", r)
	}
}

func TestStoreLookupQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery("SELECT predicate FROM rls_policies").WillReturnError(boom)

	store := NewStore(db, testutil.NewTestLogger(t))
	if _, err := store.Lookup(context.Background(), 1, "", query.Table{Name: "orders"}); !errors.Is(err, boom) {
		t.Errorf("expected wrapped query error, got %v", err)
	}
}
