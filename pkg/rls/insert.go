package rls

import (
	"context"

	"github.com/sqlgate-io/sqlgate/pkg/token"
	"github.com/sqlgate-io/sqlgate/pkg/tokentree"
)

// scan states for the source detector.
type scanState int

const (
	// stateScanning means no source keyword has been seen.
	stateScanning scanState = iota
	// stateSeenSource means the previous meaningful token was FROM/JOIN.
	stateSeenSource
	// stateFoundTable means a restricted table was identified and its
	// predicate awaits a WHERE or ON clause to attach to.
	stateFoundTable
)

// InsertRLS applies row-level restrictions to a statement in place and
// returns it. The statement comes from tokentree.Parse; reassembling it
// with String() yields the rewritten SQL.
//
// Any lookup error aborts the rewrite so the caller rejects the query
// rather than running it unrestricted.
func InsertRLS(ctx context.Context, stmt *tokentree.Node, databaseID int, defaultSchema string, src PredicateSource) (*tokentree.Node, error) {
	if err := insertInto(ctx, stmt, databaseID, defaultSchema, src); err != nil {
		return nil, err
	}
	return stmt, nil
}

func insertInto(ctx context.Context, n *tokentree.Node, databaseID int, defaultSchema string, src PredicateSource) error {
	state := stateScanning
	var pred *tokentree.Node

	for i := 0; i < len(n.Children); i++ {
		tok := n.Children[i]

		// Depth first: rewrite subqueries before inspecting this level.
		if tok.IsGroup() {
			if err := insertInto(ctx, tok, databaseID, defaultSchema, src); err != nil {
				return err
			}
		}

		switch {
		case tok.MatchKeyword("FROM") || tok.MatchKeyword("JOIN"):
			state = stateSeenSource

		case state == stateSeenSource && sourceCandidate(tok):
			table, ok := candidateTable(tok)
			if !ok {
				break
			}
			restriction, err := src.Lookup(ctx, databaseID, defaultSchema, table)
			if err != nil {
				return err
			}
			if restriction != nil {
				if pred = predicateTree(restriction); pred != nil {
					state = stateFoundTable
				}
			}

		// A WHERE clause after a restricted table: parenthesize the
		// existing condition and AND the predicate on. The predicate is
		// added even when already present, since `1=1 OR pred` would
		// otherwise defeat it.
		case state == stateFoundTable && tok.Kind == tokentree.KindWhere:
			tok.InsertChildren(1, tokentree.Whitespace(), tokentree.Punct(token.LPAREN, "("))
			tok.AppendChildren(tokentree.Punct(token.RPAREN, ")"), tokentree.Whitespace(),
				tokentree.Keyword("AND"), tokentree.Whitespace())
			tok.AppendChildren(pred.Children...)
			state = stateScanning

		// An ON clause: the predicate and the existing comparisons are
		// siblings, so insert "pred AND (" after ON and close the
		// parenthesis after the last comparison token.
		case state == stateFoundTable && tok.MatchKeyword("ON"):
			insert := []*tokentree.Node{
				tokentree.Whitespace(), pred, tokentree.Whitespace(),
				tokentree.Keyword("AND"), tokentree.Whitespace(),
				tokentree.Punct(token.LPAREN, "("),
			}
			n.InsertChildren(i+1, insert...)
			start := i + len(insert) + 2
			closeAt := len(n.Children)
			for k := start; k < len(n.Children); k++ {
				sib := n.Children[k]
				if sib.Kind == tokentree.KindWhere || endsOnClause(sib) {
					closeAt = k
					break
				}
			}
			n.InsertChildren(closeAt, tokentree.Whitespace(),
				tokentree.Punct(token.RPAREN, ")"), tokentree.Whitespace())
			i += len(insert)
			state = stateScanning

		// A restricted table with no WHERE clause before the next
		// meaningful token: synthesize one in front of it.
		case state == stateFoundTable && !tok.IsWhitespace():
			where := tokentree.NewGroup(tokentree.KindWhere,
				tokentree.Keyword("WHERE"), tokentree.Whitespace(), pred)
			n.InsertChildren(i, tokentree.Whitespace(), where, tokentree.Whitespace())
			i += 3
			state = stateScanning

		case state == stateSeenSource && !tok.IsWhitespace():
			state = stateScanning
		}
	}

	// Statement ended while still holding a predicate: append a WHERE.
	if state == stateFoundTable {
		where := tokentree.NewGroup(tokentree.KindWhere,
			tokentree.Keyword("WHERE"), tokentree.Whitespace(), pred)
		n.AppendChildren(tokentree.Whitespace(), where)
	}
	return nil
}

// sourceCandidate reports whether a node after FROM/JOIN can name a table.
func sourceCandidate(n *tokentree.Node) bool {
	if n.Kind == tokentree.KindIdentifier {
		return true
	}
	if n.Kind != tokentree.KindToken {
		return false
	}
	return n.Type == token.IDENT || n.Type == token.QUOTED_IDENT || n.IsKeyword()
}

// endsOnClause reports whether a sibling terminates the ON condition run:
// any keyword other than the boolean connectives.
func endsOnClause(n *tokentree.Node) bool {
	if !n.IsKeyword() {
		return false
	}
	switch n.Normalized() {
	case "AND", "OR", "NOT":
		return false
	}
	return true
}
