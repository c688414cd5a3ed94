// Package rls injects row-level security predicates into SQL statements.
//
// The rewrite works on the permissive token tree: a state machine scans
// each statement for table sources (FROM/JOIN), looks up the predicates
// registered for each table, and grafts them onto the nearest WHERE or ON
// clause, synthesizing a WHERE clause when none exists. Lookup failures
// fail closed; a query is never passed through with restrictions unknown.
package rls

import (
	"context"

	"github.com/sqlgate-io/sqlgate/pkg/query"
	"github.com/sqlgate-io/sqlgate/pkg/token"
	"github.com/sqlgate-io/sqlgate/pkg/tokentree"
)

// Restriction is the combined predicate restricting one table.
type Restriction struct {
	// Predicate is a boolean SQL expression. Multiple policies are
	// already AND-joined.
	Predicate string
	// Table is the fully qualified name used to qualify bare column
	// references in the predicate.
	Table string
}

// PredicateSource resolves the restriction for a table. A nil Restriction
// with nil error means the table is unrestricted. Any error means the
// restrictions could not be determined and the query must be rejected.
type PredicateSource interface {
	Lookup(ctx context.Context, databaseID int, defaultSchema string, table query.Table) (*Restriction, error)
}

// PredicateSourceFunc adapts a function to PredicateSource.
type PredicateSourceFunc func(ctx context.Context, databaseID int, defaultSchema string, table query.Table) (*Restriction, error)

func (f PredicateSourceFunc) Lookup(ctx context.Context, databaseID int, defaultSchema string, table query.Table) (*Restriction, error) {
	return f(ctx, databaseID, defaultSchema, table)
}

// candidateTable interprets a node found after FROM/JOIN as a table
// reference. ok is false for subqueries and anything else that is not a
// plain [[catalog.]schema.]table name.
func candidateTable(n *tokentree.Node) (query.Table, bool) {
	parts, ok := tokentree.TableParts(n)
	if !ok {
		return query.Table{}, false
	}
	return query.NewTable(parts...), true
}

// predicateTree parses a restriction into an insertable subtree with its
// bare columns qualified by the restriction's table name.
func predicateTree(r *Restriction) *tokentree.Node {
	node := tokentree.ParseOne(r.Predicate)
	if node == nil {
		return nil
	}
	QualifyColumns(node, r.Table)
	return node
}

// QualifyColumns rewrites bare column references in a predicate tree to
// table.column form. Already qualified references, function names,
// keywords and literals are left alone.
func QualifyColumns(n *tokentree.Node, table string) {
	for _, c := range n.Children {
		switch c.Kind {
		case tokentree.KindToken:
			if c.Type == token.IDENT || c.Type == token.QUOTED_IDENT {
				c.Value = table + "." + c.Value
			}
		case tokentree.KindIdentifier:
			if !hasDot(c) {
				qualifyFirstName(c, table)
			}
		case tokentree.KindFunction:
			// Skip the function name, qualify inside the arguments.
			if len(c.Children) > 1 {
				QualifyColumns(c.Children[1], table)
			}
		default:
			QualifyColumns(c, table)
		}
	}
}

func hasDot(n *tokentree.Node) bool {
	for _, c := range n.Children {
		if c.Kind == tokentree.KindToken && c.Type == token.DOT {
			return true
		}
	}
	return false
}

func qualifyFirstName(n *tokentree.Node, table string) {
	for _, c := range n.Children {
		if c.Kind == tokentree.KindToken &&
			(c.Type == token.IDENT || c.Type == token.QUOTED_IDENT) {
			c.Value = table + "." + c.Value
			return
		}
	}
}

// HasTableQuery reports whether a statement reads from at least one named
// table. Selects from constant values only return false.
func HasTableQuery(n *tokentree.Node) bool {
	const (
		scanning = iota
		seenSource
	)
	state := scanning
	for _, c := range n.Children {
		if c.IsComment() {
			continue
		}
		if c.IsGroup() && HasTableQuery(c) {
			return true
		}
		switch {
		case c.MatchKeyword("FROM") || c.MatchKeyword("JOIN"):
			state = seenSource
		case state == seenSource && (c.Kind == tokentree.KindIdentifier || c.IsKeyword() ||
			(c.Kind == tokentree.KindToken && (c.Type == token.IDENT || c.Type == token.QUOTED_IDENT))):
			return true
		case state == seenSource && !c.IsWhitespace():
			state = scanning
		}
	}
	return false
}
