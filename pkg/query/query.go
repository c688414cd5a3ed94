// Package query provides ParsedQuery, the entry point for SQL analysis:
// statement classification, table extraction, limit handling and CTAS
// rewriting.
//
// Two parsing backends cooperate here. The permissive token tree
// (pkg/tokentree) answers classification questions and powers rewrites
// that must preserve the original text byte-for-byte. The strict parser
// (pkg/parser) resolves table references with scope awareness, so CTE
// aliases are never reported as real tables.
package query

import (
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/sqlgate-io/sqlgate/pkg/dialect"
	"github.com/sqlgate-io/sqlgate/pkg/parser"
	"github.com/sqlgate-io/sqlgate/pkg/token"
	"github.com/sqlgate-io/sqlgate/pkg/tokentree"
)

// ParsedQuery holds a SQL script and its parsed statement sequence. The
// value is immutable after construction; rewriting methods return new SQL
// strings and leave the receiver untouched.
type ParsedQuery struct {
	sql      string
	engine   string
	dialect  *dialect.Dialect
	stmts    []*tokentree.Node
	limit    int
	hasLimit bool
	log      *slog.Logger

	// tables caches the extraction result. Concurrent callers may race to
	// compute it; the result is identical so the redundant work is
	// harmless and no lock is needed.
	tables atomic.Pointer[[]Table]
}

// Option configures query construction.
type Option func(*config)

type config struct {
	stripComments bool
	engine        string
	log           *slog.Logger
}

// WithStripComments removes comments from the SQL before parsing.
func WithStripComments() Option {
	return func(c *config) { c.stripComments = true }
}

// WithEngine selects the dialect used by the strict parser via the engine
// name registry. Unknown engines fall back to ANSI.
func WithEngine(engine string) Option {
	return func(c *config) { c.engine = engine }
}

// WithLogger sets the logger used to report analysis degradations, such as
// a statement the strict parser rejects. A nil logger discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) { c.log = log }
}

// New parses sql into a ParsedQuery. Construction never fails: text the
// permissive tokenizer cannot make sense of simply yields statements
// classified as unknown.
func New(sql string, opts ...Option) *ParsedQuery {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.stripComments {
		sql = tokentree.StripComments(sql)
	}
	if cfg.log == nil {
		cfg.log = slog.New(slog.DiscardHandler)
	}
	p := &ParsedQuery{
		sql:     sql,
		engine:  cfg.engine,
		dialect: dialect.FromEngine(cfg.engine),
		log:     cfg.log,
	}
	p.stmts = tokentree.Parse(p.Stripped())
	for _, stmt := range p.stmts {
		p.limit, p.hasLimit = extractLimit(stmt)
	}
	return p
}

// SQL returns the query text as constructed.
func (p *ParsedQuery) SQL() string {
	return p.sql
}

// Stripped returns the query text with surrounding whitespace and
// semicolons removed.
func (p *ParsedQuery) Stripped() string {
	return strings.Trim(p.sql, " \t\r\n;")
}

// StripComments returns the stripped query text without comments.
func (p *ParsedQuery) StripComments() string {
	return tokentree.StripComments(p.Stripped())
}

// Statements returns each parsed statement as trimmed SQL text.
func (p *ParsedQuery) Statements() []string {
	var out []string
	for _, stmt := range p.stmts {
		s := strings.Trim(stmt.String(), " \n;\t")
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Limit returns the value of the last top-level LIMIT clause across the
// statement sequence. A later statement without a LIMIT clears the value.
func (p *ParsedQuery) Limit() (int, bool) {
	return p.limit, p.hasLimit
}

// Tables returns every external table referenced by the query. The result
// excludes CTE aliases; a query the strict parser cannot handle yields no
// tables rather than an error, so callers treating this as an access list
// must reject queries they cannot otherwise classify.
func (p *ParsedQuery) Tables() []Table {
	if cached := p.tables.Load(); cached != nil {
		return *cached
	}
	tables := p.extractTables()
	p.tables.Store(&tables)
	return tables
}

func (p *ParsedQuery) extractTables() []Table {
	refs, err := parser.ExtractTableRefs(p.Stripped(), p.dialect)
	if err != nil {
		p.log.Warn("table extraction failed, reporting no tables",
			slog.String("engine", p.engine), slog.Any("error", err))
		return nil
	}
	tables := make([]Table, 0, len(refs))
	for _, ref := range refs {
		tables = append(tables, Table{Name: ref.Name, Schema: ref.Schema, Catalog: ref.Catalog})
	}
	return tables
}

// IsSelect reports whether every statement in the query only reads data.
// CTE bodies are verified separately since a write statement can hide
// behind a WITH prelude.
func (p *ParsedQuery) IsSelect() bool {
	stmts := tokentree.Parse(p.StripComments())
	for _, stmt := range stmts {
		first := stmt.FirstMeaningful()
		if first != nil && first.Kind == tokentree.KindToken && first.Type == token.WITH {
			if !p.cteIsSelect(stmt) {
				return false
			}
		}

		switch stmt.StatementType() {
		case tokentree.StatementSelect:
			continue
		case tokentree.StatementUnknown:
		default:
			return false
		}

		// Unknown statements get explicit checks: no DDL, no DML other
		// than SELECT, and the statement must not open with a bare
		// keyword (EXPLAIN, SET, SHOW and friends).
		hasSelect := false
		for _, c := range stmt.Children {
			if c.Kind != tokentree.KindToken {
				continue
			}
			if token.IsDDL(c.Type) {
				return false
			}
			if token.IsDML(c.Type) {
				if c.Type != token.SELECT {
					return false
				}
				hasSelect = true
			}
		}
		if first != nil && first.IsKeyword() {
			return false
		}
		if !hasSelect {
			return false
		}
	}
	return true
}

// cteIsSelect verifies that a WITH prelude binds only SELECT bodies. The
// strict parser proves this when it accepts the statement, since its CTE
// grammar only admits selects. When it cannot parse the statement at all,
// fall back to inspecting the tokens of the first CTE body.
func (p *ParsedQuery) cteIsSelect(stmt *tokentree.Node) bool {
	if _, err := parser.ParseStatements(stmt.String(), p.dialect); err == nil {
		return true
	}
	inner := firstParens(stmt)
	if inner == nil {
		return true
	}
	for _, c := range inner.Children {
		if c.Kind != tokentree.KindToken {
			continue
		}
		if token.IsDDL(c.Type) {
			return false
		}
		if token.IsDML(c.Type) && c.Type != token.SELECT {
			return false
		}
	}
	return true
}

func firstParens(n *tokentree.Node) *tokentree.Node {
	var found *tokentree.Node
	n.Walk(func(c *tokentree.Node) bool {
		if c.Kind == tokentree.KindParens {
			found = c
			return false
		}
		return true
	})
	return found
}

// IsValidCtas reports whether the query can feed CREATE TABLE AS: the
// last statement must be a SELECT. Earlier statements are unconstrained
// setup.
func (p *ParsedQuery) IsValidCtas() bool {
	stmts := tokentree.Parse(p.StripComments())
	if len(stmts) == 0 {
		return false
	}
	return stmts[len(stmts)-1].StatementType() == tokentree.StatementSelect
}

// IsValidCvas reports whether the query can feed CREATE VIEW AS: exactly
// one statement, and it must be a SELECT.
func (p *ParsedQuery) IsValidCvas() bool {
	stmts := tokentree.Parse(p.StripComments())
	return len(stmts) == 1 && stmts[0].StatementType() == tokentree.StatementSelect
}

// IsExplain reports whether the query opens with EXPLAIN.
func (p *ParsedQuery) IsExplain() bool {
	return strings.HasPrefix(strings.ToUpper(p.StripComments()), "EXPLAIN")
}

// IsShow reports whether the query opens with SHOW.
func (p *ParsedQuery) IsShow() bool {
	return strings.HasPrefix(strings.ToUpper(p.StripComments()), "SHOW")
}

// IsSet reports whether the query opens with SET.
func (p *ParsedQuery) IsSet() bool {
	return strings.HasPrefix(strings.ToUpper(p.StripComments()), "SET")
}

// IsUnknown reports whether the first statement has no recognized type.
func (p *ParsedQuery) IsUnknown() bool {
	if len(p.stmts) == 0 {
		return true
	}
	return p.stmts[0].StatementType() == tokentree.StatementUnknown
}

func isInteger(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
