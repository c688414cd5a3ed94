package lineage

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/sqlgate-io/sqlgate/internal/testutil"
	"github.com/sqlgate-io/sqlgate/pkg/dialect"
	"github.com/sqlgate-io/sqlgate/pkg/query"
)

func names(tables []query.Table) string {
	var out []string
	for _, t := range tables {
		out = append(out, t.String())
	}
	sort.Strings(out)
	return strings.Join(out, "|")
}

func TestScrubTemplates(t *testing.T) {
	tests := []struct{ in, want string }{
		{"SELECT {{ var }} FROM t", "SELECT abc FROM t"},
		{"SELECT * FROM t {% if x %}WHERE a = 1{% endif %}", "SELECT * FROM t  WHERE a = 1 "},
		{"{# comment #}SELECT 1", " SELECT 1"},
		{"SELECT 1", "SELECT 1"},
	}
	for _, tt := range tests {
		if got := ScrubTemplates(tt.in); got != tt.want {
			t.Errorf("ScrubTemplates(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTableReferencesTreeParser(t *testing.T) {
	e := NewExtractor(DefaultTreeParser(), testutil.NewTestLogger(t))
	got := names(e.TableReferences("SELECT * FROM a JOIN b ON a.id = b.id", "postgres"))
	if got != "a|b" {
		t.Errorf("TableReferences = %q", got)
	}
}

func TestTableReferencesIncludesCTENames(t *testing.T) {
	// Lineage reports every relation mentioned, CTE references included.
	e := NewExtractor(DefaultTreeParser(), testutil.NewTestLogger(t))
	got := names(e.TableReferences("WITH x AS (SELECT * FROM t) SELECT * FROM x", "postgres"))
	if got != "t|x" {
		t.Errorf("TableReferences = %q", got)
	}
}

func TestTableReferencesTemplated(t *testing.T) {
	e := NewExtractor(DefaultTreeParser(), testutil.NewTestLogger(t))
	sql := "SELECT * FROM orders WHERE user_id = {{ current_user_id() }}"
	got := names(e.TableReferences(sql, "postgres"))
	if got != "orders" {
		t.Errorf("TableReferences = %q", got)
	}
}

func TestTableReferencesFallback(t *testing.T) {
	failing := TreeParserFunc(func(string, dialect.Bucket) ([]query.Table, error) {
		return nil, errors.New("tree parser unavailable")
	})
	e := NewExtractor(failing, testutil.NewTestLogger(t))
	got := names(e.TableReferences("SELECT * FROM t", "mysql"))
	if got != "t" {
		t.Errorf("fallback TableReferences = %q", got)
	}
}

func TestTableReferencesNilTreeParser(t *testing.T) {
	e := NewExtractor(nil, testutil.NewTestLogger(t))
	got := names(e.TableReferences("SELECT * FROM sch.tbl", "unknown-engine"))
	if got != "sch.tbl" {
		t.Errorf("nil parser TableReferences = %q", got)
	}
}
