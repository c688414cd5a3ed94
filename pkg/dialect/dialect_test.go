package dialect

import (
	"testing"

	"github.com/sqlgate-io/sqlgate/pkg/token"
)

func TestFromEngine(t *testing.T) {
	tests := []struct {
		engine string
		want   string
	}{
		{"postgres", "postgres"},
		{"postgresql", "postgres"},
		{"Redshift", "redshift"},
		{"trinonative", "trino"},
		{"gsheets", "sqlite"},
		{"hana", "postgres"},
		{"no-such-engine", "ansi"},
		{"", "ansi"},
	}
	for _, tt := range tests {
		if got := FromEngine(tt.engine); got.Name != tt.want {
			t.Errorf("FromEngine(%q) = %q, want %q", tt.engine, got.Name, tt.want)
		}
	}
}

func TestBucketForEngine(t *testing.T) {
	tests := []struct {
		engine string
		want   Bucket
	}{
		{"postgres", BucketPostgres},
		{"vertica", BucketPostgres},
		{"awsathena", BucketANSI},
		{"databricks", BucketHive},
		{"mssql", BucketMS},
		{"starrocks", BucketMySQL},
		{"superset", BucketSQLite},
		{"clickhousedb", BucketClickHouse},
		{"unknown", BucketGeneric},
	}
	for _, tt := range tests {
		if got := BucketForEngine(tt.engine); got != tt.want {
			t.Errorf("BucketForEngine(%q) = %q, want %q", tt.engine, got, tt.want)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	if got := MustGet("snowflake").NormalizeName("Orders"); got != "ORDERS" {
		t.Errorf("snowflake NormalizeName = %q", got)
	}
	if got := MustGet("mysql").NormalizeName("Orders"); got != "Orders" {
		t.Errorf("mysql NormalizeName = %q", got)
	}
	if got := MustGet("postgres").NormalizeName("Orders"); got != "orders" {
		t.Errorf("postgres NormalizeName = %q", got)
	}
}

func TestRegisterAndGet(t *testing.T) {
	Register(&Dialect{Name: "TestOnly", QuoteStart: '"', QuoteEnd: '"'})
	d, ok := Get("testonly")
	if !ok {
		t.Fatal("registered dialect not found")
	}
	if d.Name != "TestOnly" {
		t.Errorf("Get returned %q", d.Name)
	}

	found := false
	for _, name := range List() {
		if name == "testonly" {
			found = true
		}
	}
	if !found {
		t.Error("List() missing registered dialect")
	}
}

func TestDialectKeywordsRegistered(t *testing.T) {
	// Builtin dialects register their extension keywords at init.
	if typ := token.LookupIdent("ilike"); !token.IsDynamic(typ) {
		t.Errorf("LookupIdent(ilike) = %v, want a dynamic keyword", typ)
	}
	Register(&Dialect{Name: "TestKw", QuoteStart: '"', QuoteEnd: '"', Keywords: []string{"PIVOTX"}})
	if typ := token.LookupIdent("PIVOTX"); !token.IsDynamic(typ) {
		t.Errorf("LookupIdent(PIVOTX) = %v, want a dynamic keyword", typ)
	}
}

func TestKnownEngine(t *testing.T) {
	if !KnownEngine("postgres") {
		t.Error("postgres should be known")
	}
	if KnownEngine("dbase") {
		t.Error("dbase should not be known")
	}
}
