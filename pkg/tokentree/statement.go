package tokentree

import (
	"strings"

	"github.com/sqlgate-io/sqlgate/pkg/token"
)

// StatementType is the coarse class of a statement, derived from its
// leading verb.
type StatementType int

const (
	StatementUnknown StatementType = iota
	StatementSelect
	StatementInsert
	StatementUpdate
	StatementDelete
	StatementMerge
	StatementCreate
	StatementAlter
	StatementDrop
	StatementTruncate
	StatementGrant
	StatementRevoke
)

var statementNames = map[StatementType]string{
	StatementUnknown:  "UNKNOWN",
	StatementSelect:   "SELECT",
	StatementInsert:   "INSERT",
	StatementUpdate:   "UPDATE",
	StatementDelete:   "DELETE",
	StatementMerge:    "MERGE",
	StatementCreate:   "CREATE",
	StatementAlter:    "ALTER",
	StatementDrop:     "DROP",
	StatementTruncate: "TRUNCATE",
	StatementGrant:    "GRANT",
	StatementRevoke:   "REVOKE",
}

func (s StatementType) String() string {
	if name, ok := statementNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

var verbTypes = map[token.TokenType]StatementType{
	token.SELECT:   StatementSelect,
	token.INSERT:   StatementInsert,
	token.UPDATE:   StatementUpdate,
	token.DELETE:   StatementDelete,
	token.MERGE:    StatementMerge,
	token.CREATE:   StatementCreate,
	token.ALTER:    StatementAlter,
	token.DROP:     StatementDrop,
	token.TRUNCATE: StatementTruncate,
	token.GRANT:    StatementGrant,
	token.REVOKE:   StatementRevoke,
}

// StatementType classifies a statement by its first meaningful token. A
// statement opening with WITH is classified by the first DML verb following
// its CTE list; anything else (EXPLAIN, SHOW, SET, expressions) is unknown.
func (n *Node) StatementType() StatementType {
	first := n.FirstMeaningful()
	if first == nil {
		return StatementUnknown
	}
	if first.Kind == KindToken {
		if t, ok := verbTypes[first.Type]; ok {
			return t
		}
		if first.Type == token.WITH {
			for _, c := range n.Children {
				if c.Kind != KindToken {
					continue
				}
				if t, ok := verbTypes[c.Type]; ok && token.IsDML(c.Type) {
					return t
				}
			}
		}
	}
	return StatementUnknown
}

// TableParts returns the dotted name parts of a table reference in written
// order, excluding any trailing alias. It accepts a KindIdentifier group
// or a bare name leaf and reports ok=false for anything that does not look
// like a plain reference of 1, 3 or 5 alternating name/dot tokens.
func TableParts(n *Node) ([]string, bool) {
	if n.Kind == KindToken {
		if nameLeaf(n) {
			return []string{RemoveQuotes(n.Value)}, true
		}
		return nil, false
	}
	if n.Kind != KindIdentifier {
		return nil, false
	}
	var toks []*Node
	for _, c := range n.Children {
		if c.IsWhitespace() {
			break
		}
		toks = append(toks, c)
	}
	switch len(toks) {
	case 1, 3, 5:
	default:
		return nil, false
	}
	var parts []string
	for i, c := range toks {
		if i%2 == 1 {
			if c.Kind != KindToken || c.Type != token.DOT {
				return nil, false
			}
			continue
		}
		if !nameLeaf(c) {
			return nil, false
		}
		parts = append(parts, RemoveQuotes(c.Value))
	}
	return parts, true
}

func nameLeaf(c *Node) bool {
	if c.Kind != KindToken {
		return false
	}
	switch c.Type {
	case token.IDENT, token.QUOTED_IDENT, token.STRING:
		return true
	}
	return token.IsKeyword(c.Type)
}

// RemoveQuotes strips one layer of surrounding quotes from an identifier
// or string literal, collapsing the doubled-delimiter escape.
func RemoveQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	var closer byte
	switch s[0] {
	case '"', '`', '\'':
		closer = s[0]
	case '[':
		closer = ']'
	default:
		return s
	}
	if s[len(s)-1] != closer {
		return s
	}
	inner := s[1 : len(s)-1]
	return strings.ReplaceAll(inner, string([]byte{closer, closer}), string(closer))
}
