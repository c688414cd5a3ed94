// Package tokentree implements the permissive token-tree backend: a
// whitespace-preserving SQL tokenizer plus a lightweight grouping pass that
// turns each statement into a mutable tree of tokens.
//
// The tree is deliberately forgiving: malformed or exotic SQL never fails
// to tokenize, it just produces a flatter tree. Rewrites (limit capping,
// predicate injection) splice child slices in place, always walking
// top-down with explicit indices, so nodes carry no parent pointers.
package tokentree

import (
	"strings"

	"github.com/sqlgate-io/sqlgate/pkg/token"
)

// NodeKind classifies tree nodes. Leaves are KindToken; everything else is
// a group owning an ordered child sequence.
type NodeKind int

const (
	// KindToken is a leaf carrying a single lexical token.
	KindToken NodeKind = iota
	// KindStatement is a top-level statement.
	KindStatement
	// KindParens is a parenthesized group, including both paren tokens.
	KindParens
	// KindFunction is a name directly followed by a parenthesized group.
	KindFunction
	// KindWhere is a WHERE keyword plus its clause body.
	KindWhere
	// KindIdentifier is a possibly qualified name with an optional alias.
	KindIdentifier
	// KindIdentifierList is a comma-separated sequence of identifiers or
	// literals at one nesting level.
	KindIdentifierList
)

// String returns the kind name.
func (k NodeKind) String() string {
	switch k {
	case KindToken:
		return "token"
	case KindStatement:
		return "statement"
	case KindParens:
		return "parens"
	case KindFunction:
		return "function"
	case KindWhere:
		return "where"
	case KindIdentifier:
		return "identifier"
	case KindIdentifierList:
		return "identifier_list"
	default:
		return "unknown"
	}
}

// Node is a token-tree node. For leaves, Type and Value describe the token
// and Children is nil. For groups, Children holds the ordered parts and
// Value is empty.
type Node struct {
	Kind     NodeKind
	Type     token.TokenType
	Value    string
	Children []*Node
}

// NewLeaf creates a leaf node.
func NewLeaf(t token.TokenType, value string) *Node {
	return &Node{Kind: KindToken, Type: t, Value: value}
}

// NewGroup creates a group node owning the given children.
func NewGroup(kind NodeKind, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

// Whitespace returns a single-space whitespace leaf.
func Whitespace() *Node {
	return NewLeaf(token.WHITESPACE, " ")
}

// Keyword returns a keyword leaf for the given upper-case word.
func Keyword(word string) *Node {
	return NewLeaf(token.LookupIdent(word), word)
}

// Punct returns a punctuation leaf.
func Punct(t token.TokenType, value string) *Node {
	return NewLeaf(t, value)
}

// IsGroup returns true for interior nodes.
func (n *Node) IsGroup() bool {
	return n.Kind != KindToken
}

// IsTrivia returns true for whitespace and comment leaves.
func (n *Node) IsTrivia() bool {
	return n.Kind == KindToken && token.IsTrivia(n.Type)
}

// IsWhitespace returns true for whitespace leaves.
func (n *Node) IsWhitespace() bool {
	return n.Kind == KindToken && n.Type == token.WHITESPACE
}

// IsComment returns true for comment leaves.
func (n *Node) IsComment() bool {
	return n.Kind == KindToken && token.IsComment(n.Type)
}

// IsKeyword returns true for builtin and registered dynamic keyword leaves.
func (n *Node) IsKeyword() bool {
	return n.Kind == KindToken && (token.IsKeyword(n.Type) || token.IsDynamic(n.Type))
}

// Normalized returns the upper-cased value for leaves, "" for groups.
func (n *Node) Normalized() string {
	if n.IsGroup() {
		return ""
	}
	return strings.ToUpper(n.Value)
}

// MatchKeyword returns true if the node is a keyword leaf whose normalized
// value equals word (which must be upper case).
func (n *Node) MatchKeyword(word string) bool {
	return n.IsKeyword() && n.Normalized() == word
}

// String reassembles the raw source text for this subtree, byte-for-byte.
func (n *Node) String() string {
	if !n.IsGroup() {
		return n.Value
	}
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	if !n.IsGroup() {
		sb.WriteString(n.Value)
		return
	}
	for _, c := range n.Children {
		c.write(sb)
	}
}

// InsertChildren splices nodes into the child slice before index i.
func (n *Node) InsertChildren(i int, nodes ...*Node) {
	n.Children = append(n.Children[:i], append(append([]*Node{}, nodes...), n.Children[i:]...)...)
}

// AppendChildren appends nodes to the child slice.
func (n *Node) AppendChildren(nodes ...*Node) {
	n.Children = append(n.Children, nodes...)
}

// NextNonTrivia returns the index and node of the first non-trivia child at
// or after index from, or (-1, nil).
func (n *Node) NextNonTrivia(from int) (int, *Node) {
	for i := from; i < len(n.Children); i++ {
		if !n.Children[i].IsTrivia() {
			return i, n.Children[i]
		}
	}
	return -1, nil
}

// FirstMeaningful returns the first non-trivia child, or nil.
func (n *Node) FirstMeaningful() *Node {
	_, c := n.NextNonTrivia(0)
	return c
}

// Walk visits every node in the subtree depth-first, including n itself.
// Returning false from fn stops the walk.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if c.IsGroup() {
			if !c.Walk(fn) {
				return false
			}
		} else if !fn(c) {
			return false
		}
	}
	return true
}

// Flatten returns all leaves of the subtree in source order.
func (n *Node) Flatten() []*Node {
	var out []*Node
	var rec func(*Node)
	rec = func(m *Node) {
		if !m.IsGroup() {
			out = append(out, m)
			return
		}
		for _, c := range m.Children {
			rec(c)
		}
	}
	rec(n)
	return out
}
