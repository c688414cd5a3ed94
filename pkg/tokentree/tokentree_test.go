package tokentree

import (
	"strings"
	"testing"

	"github.com/sqlgate-io/sqlgate/pkg/token"
)

func TestTokenizeRoundTrip(t *testing.T) {
	inputs := []string{
		"SELECT * FROM t",
		"select  a ,\tb\nfrom s.t -- trailing\n",
		"/* block */ SELECT 1;",
		"SELECT 'O''Brien', 'a\\'b' FROM people",
		"SELECT \"weird name\", `tick`, [bracketed] FROM x",
		"SELECT 1e10, 1.5, .x FROM t WHERE a <> b AND c != d",
		"SELECT a || b FROM t LIMIT 100, 200",
		"SELECT * FROM t WHERE s = 'unterminated",
		"/* unterminated comment",
		"SELECT {fn now()} FROM dual",
	}
	for _, in := range inputs {
		var sb strings.Builder
		for _, tok := range Tokenize(in) {
			sb.WriteString(tok.Literal)
		}
		if sb.String() != in {
			t.Errorf("round trip mismatch:\n in: %q\nout: %q", in, sb.String())
		}
	}
}

func TestTokenizeStrings(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`'plain'`, `'plain'`},
		{`'O''Brien' rest`, `'O''Brien'`},
		{`'a\'b' rest`, `'a\'b'`},
		{`'a\\' rest`, `'a\\'`},
	}
	for _, tt := range tests {
		toks := Tokenize(tt.input)
		if len(toks) == 0 || toks[0].Type != token.STRING {
			t.Fatalf("Tokenize(%q): expected leading string token, got %v", tt.input, toks)
		}
		if toks[0].Literal != tt.want {
			t.Errorf("Tokenize(%q): string literal = %q, want %q", tt.input, toks[0].Literal, tt.want)
		}
	}
}

func TestParseStatementSplit(t *testing.T) {
	tests := []struct {
		input string
		count int
	}{
		{"SELECT 1", 1},
		{"SELECT 1;", 1},
		{"SELECT 1; SELECT 2", 2},
		{"SELECT 1; ; SELECT 2;", 2},
		{"  ;  ", 0},
		{"", 0},
		{"SELECT ';' ; SELECT 2", 2},
	}
	for _, tt := range tests {
		stmts := Parse(tt.input)
		if len(stmts) != tt.count {
			t.Errorf("Parse(%q): %d statements, want %d", tt.input, len(stmts), tt.count)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	in := "SELECT a.b, count(*) FROM s.t a JOIN u ON a.id = u.id WHERE a.x > 1 GROUP BY a.b LIMIT 10;"
	stmts := Parse(in)
	if len(stmts) != 1 {
		t.Fatalf("expected one statement, got %d", len(stmts))
	}
	if got := stmts[0].String(); got != in {
		t.Errorf("String() = %q, want %q", got, in)
	}
}

func TestGroupWhere(t *testing.T) {
	stmt := ParseOne("SELECT * FROM t WHERE a = 1 AND b = 2 ORDER BY a")
	var where *Node
	stmt.Walk(func(n *Node) bool {
		if n.Kind == KindWhere {
			where = n
			return false
		}
		return true
	})
	if where == nil {
		t.Fatal("no WHERE group found")
	}
	body := where.String()
	if !strings.HasPrefix(body, "WHERE") {
		t.Errorf("WHERE group starts with %q", body)
	}
	if strings.Contains(body, "ORDER") {
		t.Errorf("WHERE group swallowed ORDER BY: %q", body)
	}
}

func TestGroupWhereInSubquery(t *testing.T) {
	stmt := ParseOne("SELECT * FROM (SELECT * FROM t WHERE x = 1) sub")
	found := false
	stmt.Walk(func(n *Node) bool {
		if n.Kind == KindWhere {
			found = true
		}
		return true
	})
	if !found {
		t.Error("WHERE inside subquery was not grouped")
	}
}

func TestStatementType(t *testing.T) {
	tests := []struct {
		sql  string
		want StatementType
	}{
		{"SELECT 1", StatementSelect},
		{"select * from t", StatementSelect},
		{"WITH c AS (SELECT 1) SELECT * FROM c", StatementSelect},
		{"WITH c AS (SELECT 1) INSERT INTO t SELECT * FROM c", StatementInsert},
		{"INSERT INTO t VALUES (1)", StatementInsert},
		{"UPDATE t SET a = 1", StatementUpdate},
		{"DELETE FROM t", StatementDelete},
		{"CREATE TABLE t (a int)", StatementCreate},
		{"DROP TABLE t", StatementDrop},
		{"ALTER TABLE t ADD COLUMN b int", StatementAlter},
		{"GRANT SELECT ON t TO role", StatementGrant},
		{"EXPLAIN SELECT 1", StatementUnknown},
		{"SHOW TABLES", StatementUnknown},
		{"SET search_path = public", StatementUnknown},
		{"a = 1", StatementUnknown},
	}
	for _, tt := range tests {
		stmt := ParseOne(tt.sql)
		if stmt == nil {
			t.Fatalf("ParseOne(%q) returned nil", tt.sql)
		}
		if got := stmt.StatementType(); got != tt.want {
			t.Errorf("Type(%q) = %s, want %s", tt.sql, got, tt.want)
		}
	}
}

func findIdentifierAfterFrom(stmt *Node) *Node {
	var out *Node
	var scan func(n *Node)
	scan = func(n *Node) {
		seen := false
		for _, c := range n.Children {
			if c.IsGroup() && c.Kind != KindIdentifier {
				scan(c)
			}
			if c.MatchKeyword("FROM") {
				seen = true
				continue
			}
			if seen && !c.IsTrivia() {
				if out == nil {
					out = c
				}
				seen = false
			}
		}
	}
	scan(stmt)
	return out
}

func TestTableParts(t *testing.T) {
	tests := []struct {
		sql   string
		parts []string
	}{
		{"SELECT * FROM tbl", []string{"tbl"}},
		{"SELECT * FROM sch.tbl", []string{"sch", "tbl"}},
		{"SELECT * FROM cat.sch.tbl", []string{"cat", "sch", "tbl"}},
		{"SELECT * FROM sch.tbl alias", []string{"sch", "tbl"}},
		{"SELECT * FROM sch.tbl AS alias", []string{"sch", "tbl"}},
		{`SELECT * FROM "quoted sch"."quoted tbl"`, []string{"quoted sch", "quoted tbl"}},
		{"SELECT * FROM `tick`.`tock`", []string{"tick", "tock"}},
	}
	for _, tt := range tests {
		stmt := ParseOne(tt.sql)
		ident := findIdentifierAfterFrom(stmt)
		if ident == nil {
			t.Fatalf("no identifier after FROM in %q", tt.sql)
		}
		parts, ok := TableParts(ident)
		if !ok {
			t.Fatalf("TableParts failed for %q (node %s %q)", tt.sql, ident.Kind, ident.String())
		}
		if len(parts) != len(tt.parts) {
			t.Fatalf("TableParts(%q) = %v, want %v", tt.sql, parts, tt.parts)
		}
		for i := range parts {
			if parts[i] != tt.parts[i] {
				t.Errorf("TableParts(%q)[%d] = %q, want %q", tt.sql, i, parts[i], tt.parts[i])
			}
		}
	}
}

func TestTablePartsRejectsSubquery(t *testing.T) {
	stmt := ParseOne("SELECT * FROM (SELECT 1) sub")
	ident := findIdentifierAfterFrom(stmt)
	if ident == nil {
		t.Fatal("no node after FROM")
	}
	if _, ok := TableParts(ident); ok {
		t.Error("TableParts accepted a subquery")
	}
}

func TestRemoveQuotes(t *testing.T) {
	tests := []struct{ in, want string }{
		{`plain`, `plain`},
		{`"quoted"`, `quoted`},
		{"`tick`", "tick"},
		{`[bracket]`, `bracket`},
		{`"do""uble"`, `do"uble`},
		{`"mismatch`, `"mismatch`},
		{`""`, ``},
	}
	for _, tt := range tests {
		if got := RemoveQuotes(tt.in); got != tt.want {
			t.Errorf("RemoveQuotes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripComments(t *testing.T) {
	tests := []struct{ in, want string }{
		{"SELECT 1 -- comment", "SELECT 1"},
		{"SELECT 1 /* c */ + 2", "SELECT 1 + 2"},
		{"SELECT 1/* fused */+ 2", "SELECT 1 + 2"},
		{"-- leading\nSELECT 1", "SELECT 1"},
		{"SELECT 1", "SELECT 1"},
	}
	for _, tt := range tests {
		if got := StripComments(tt.in); got != tt.want {
			t.Errorf("StripComments(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBindingBodyNotListed(t *testing.T) {
	// A parens group bound by AS is a definition body. Folding it into an
	// identifier list with the following name would hide the boundary
	// between one binding and the next.
	stmt := ParseOne("WITH a AS (SELECT 1), b AS (SELECT 2) SELECT 3")
	var parens, lists int
	for _, c := range stmt.Children {
		switch c.Kind {
		case KindParens:
			parens++
		case KindIdentifierList:
			lists++
		}
	}
	if parens != 2 || lists != 0 {
		t.Errorf("got %d parens groups and %d identifier lists, want 2 and 0", parens, lists)
	}
}

func TestRegisteredKeywordStopsAliasFolding(t *testing.T) {
	// Unregistered, RLIKE would lex as an identifier and get folded into
	// "a RLIKE" as an aliased identifier.
	token.Register("RLIKE")
	stmt := ParseOne("SELECT * FROM t WHERE a RLIKE 'x%'")
	var found bool
	stmt.Walk(func(n *Node) bool {
		if n.MatchKeyword("RLIKE") {
			found = true
			return false
		}
		return true
	})
	if !found {
		t.Error("registered keyword still lexed as an identifier")
	}
}

func TestInsertChildren(t *testing.T) {
	stmt := ParseOne("SELECT * FROM t")
	n := len(stmt.Children)
	stmt.AppendChildren(Whitespace(), Keyword("LIMIT"), Whitespace(), NewLeaf(token.NUMBER, "10"))
	if got := stmt.String(); got != "SELECT * FROM t LIMIT 10" {
		t.Errorf("after append: %q", got)
	}
	stmt.InsertChildren(n, NewLeaf(token.WHITESPACE, " "))
	if got := stmt.String(); got != "SELECT * FROM t  LIMIT 10" {
		t.Errorf("after insert: %q", got)
	}
}
