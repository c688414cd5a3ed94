package tokentree

import (
	"strings"

	"github.com/sqlgate-io/sqlgate/pkg/token"
)

// Parse tokenizes sql, splits it into statements on top-level semicolons,
// and runs the grouping passes over each statement. Statements consisting
// only of whitespace and comments are dropped.
func Parse(sql string) []*Node {
	toks := Tokenize(sql)

	var stmts []*Node
	cur := &Node{Kind: KindStatement}
	flush := func() {
		if hasContent(cur) {
			group(cur)
			stmts = append(stmts, cur)
		}
		cur = &Node{Kind: KindStatement}
	}
	for _, t := range toks {
		cur.Children = append(cur.Children, NewLeaf(t.Type, t.Literal))
		if t.Type == token.SEMICOLON {
			flush()
		}
	}
	flush()
	return stmts
}

// ParseOne parses sql and returns the first statement, or nil when the
// input holds no content.
func ParseOne(sql string) *Node {
	stmts := Parse(sql)
	if len(stmts) == 0 {
		return nil
	}
	return stmts[0]
}

func hasContent(n *Node) bool {
	for _, c := range n.Children {
		if !c.IsTrivia() && c.Type != token.SEMICOLON {
			return true
		}
	}
	return false
}

// group runs the structural passes over a statement in order. Parens come
// first so every later pass sees nesting; each pass recurses into groups
// built by the previous ones.
func group(n *Node) {
	groupParens(n)
	groupFunctions(n)
	groupWhere(n)
	groupIdentifiers(n)
	groupIdentifierLists(n)
}

// groupParens folds balanced ( ... ) pairs into KindParens groups.
// Unmatched parens stay bare leaves so later passes can see them.
func groupParens(n *Node) {
	n.Children = groupParensSlice(n.Children)
}

func groupParensSlice(toks []*Node) []*Node {
	var out []*Node
	for i := 0; i < len(toks); i++ {
		c := toks[i]
		if c.Kind == KindToken && c.Type == token.LPAREN {
			if j := matchParen(toks, i); j != -1 {
				inner := groupParensSlice(toks[i+1 : j])
				children := make([]*Node, 0, len(inner)+2)
				children = append(children, c)
				children = append(children, inner...)
				children = append(children, toks[j])
				out = append(out, NewGroup(KindParens, children...))
				i = j
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func matchParen(toks []*Node, open int) int {
	depth := 0
	for j := open; j < len(toks); j++ {
		if toks[j].Kind != KindToken {
			continue
		}
		switch toks[j].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// groupFunctions folds NAME(...) into KindFunction groups. The parens must
// directly follow the name with no intervening trivia.
func groupFunctions(n *Node) {
	var out []*Node
	for i := 0; i < len(n.Children); i++ {
		c := n.Children[i]
		if c.Kind == KindParens {
			groupFunctions(c)
		}
		if c.Kind == KindToken && c.Type == token.IDENT &&
			i+1 < len(n.Children) && n.Children[i+1].Kind == KindParens {
			parens := n.Children[i+1]
			groupFunctions(parens)
			out = append(out, NewGroup(KindFunction, c, parens))
			i++
			continue
		}
		out = append(out, c)
	}
	n.Children = out
}

// clause keywords that terminate a WHERE body at the same nesting level.
var whereStoppers = map[string]bool{
	"GROUP": true, "ORDER": true, "HAVING": true, "LIMIT": true,
	"OFFSET": true, "FETCH": true, "WINDOW": true, "UNION": true,
	"EXCEPT": true, "INTERSECT": true, "RETURNING": true,
}

// groupWhere folds WHERE and its body into a KindWhere group, stopping at
// the next clause keyword, semicolon, or end of level.
func groupWhere(n *Node) {
	var out []*Node
	for i := 0; i < len(n.Children); i++ {
		c := n.Children[i]
		if c.IsGroup() {
			groupWhere(c)
		}
		if !c.MatchKeyword("WHERE") {
			out = append(out, c)
			continue
		}
		w := &Node{Kind: KindWhere, Children: []*Node{c}}
		j := i + 1
		for ; j < len(n.Children); j++ {
			s := n.Children[j]
			if s.Kind == KindToken && s.Type == token.SEMICOLON {
				break
			}
			if s.IsKeyword() && whereStoppers[s.Normalized()] {
				break
			}
			if s.IsGroup() {
				groupWhere(s)
			}
			w.Children = append(w.Children, s)
		}
		out = append(out, w)
		i = j - 1
	}
	n.Children = out
}

// aliasable reports whether a leaf can start or extend a dotted name.
func namePart(c *Node) bool {
	return c.Kind == KindToken && (c.Type == token.IDENT || c.Type == token.QUOTED_IDENT)
}

// groupIdentifiers folds dotted names with optional aliases into
// KindIdentifier groups: name, name.name.name, name alias, name AS alias.
func groupIdentifiers(n *Node) {
	var out []*Node
	for i := 0; i < len(n.Children); i++ {
		c := n.Children[i]
		if c.IsGroup() {
			groupIdentifiers(c)
			out = append(out, c)
			continue
		}
		if !namePart(c) {
			out = append(out, c)
			continue
		}
		parts := []*Node{c}
		j := i + 1
		for j+1 < len(n.Children) &&
			n.Children[j].Kind == KindToken && n.Children[j].Type == token.DOT &&
			namePart(n.Children[j+1]) {
			parts = append(parts, n.Children[j], n.Children[j+1])
			j += 2
		}
		// Dotted star: schema.* keeps the star inside the identifier.
		if j+1 < len(n.Children) &&
			n.Children[j].Kind == KindToken && n.Children[j].Type == token.DOT &&
			n.Children[j+1].Kind == KindToken && n.Children[j+1].Type == token.STAR {
			parts = append(parts, n.Children[j], n.Children[j+1])
			j += 2
		}
		j = appendAlias(n, j, &parts)
		if len(parts) == 1 {
			out = append(out, c)
			i = j - 1
			continue
		}
		out = append(out, NewGroup(KindIdentifier, parts...))
		i = j - 1
	}
	n.Children = out
}

// appendAlias extends parts with "ws alias" or "ws AS ws alias" when one
// follows at index j, returning the index after the consumed run.
func appendAlias(n *Node, j int, parts *[]*Node) int {
	k := j
	var ws []*Node
	for k < len(n.Children) && n.Children[k].IsWhitespace() {
		ws = append(ws, n.Children[k])
		k++
	}
	if k >= len(n.Children) || len(ws) == 0 {
		return j
	}
	c := n.Children[k]
	if c.MatchKeyword("AS") {
		k2 := k + 1
		var ws2 []*Node
		for k2 < len(n.Children) && n.Children[k2].IsWhitespace() {
			ws2 = append(ws2, n.Children[k2])
			k2++
		}
		if k2 < len(n.Children) && isAliasName(n.Children[k2]) && len(ws2) > 0 {
			*parts = append(*parts, ws...)
			*parts = append(*parts, c)
			*parts = append(*parts, ws2...)
			*parts = append(*parts, n.Children[k2])
			return k2 + 1
		}
		return j
	}
	if isAliasName(c) {
		*parts = append(*parts, ws...)
		*parts = append(*parts, c)
		return k + 1
	}
	return j
}

func isAliasName(c *Node) bool {
	return c.Kind == KindToken && (c.Type == token.IDENT || c.Type == token.QUOTED_IDENT)
}

// groupIdentifierLists folds comma-separated identifier or literal runs at
// one level into KindIdentifierList groups.
func groupIdentifierLists(n *Node) {
	var out []*Node
	for i := 0; i < len(n.Children); i++ {
		c := n.Children[i]
		if c.IsGroup() && c.Kind != KindIdentifier {
			groupIdentifierLists(c)
		}
		if !listItem(c) || bindingBody(out, c) {
			out = append(out, c)
			continue
		}
		items := []*Node{c}
		j := i + 1
		for {
			k := j
			var run []*Node
			for k < len(n.Children) && n.Children[k].IsWhitespace() {
				run = append(run, n.Children[k])
				k++
			}
			if k >= len(n.Children) || n.Children[k].Type != token.COMMA || n.Children[k].Kind != KindToken {
				break
			}
			run = append(run, n.Children[k])
			k++
			for k < len(n.Children) && n.Children[k].IsWhitespace() {
				run = append(run, n.Children[k])
				k++
			}
			if k >= len(n.Children) || !listItem(n.Children[k]) {
				break
			}
			if n.Children[k].IsGroup() {
				groupIdentifierLists(n.Children[k])
			}
			items = append(items, run...)
			items = append(items, n.Children[k])
			j = k + 1
		}
		if j == i+1 {
			out = append(out, c)
			continue
		}
		out = append(out, NewGroup(KindIdentifierList, items...))
		i = j - 1
	}
	n.Children = out
}

// bindingBody reports whether a parens group directly follows an AS
// keyword. Such a group is a binding body (a CTE definition), and folding
// it into a list would hide the binding boundary from later passes.
func bindingBody(out []*Node, c *Node) bool {
	if c.Kind != KindParens {
		return false
	}
	for i := len(out) - 1; i >= 0; i-- {
		if out[i].IsTrivia() {
			continue
		}
		return out[i].MatchKeyword("AS")
	}
	return false
}

func listItem(c *Node) bool {
	switch c.Kind {
	case KindIdentifier, KindFunction, KindParens:
		return true
	case KindToken:
		switch c.Type {
		case token.IDENT, token.QUOTED_IDENT, token.NUMBER, token.STRING, token.STAR:
			return true
		}
	}
	return false
}

// StripComments removes comment tokens from sql, inserting a single space
// where removal would otherwise fuse two adjacent tokens and collapsing
// whitespace flanking a removed comment to one run, then trims the result.
func StripComments(sql string) string {
	toks := Tokenize(sql)
	var sb strings.Builder
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if !token.IsComment(t.Type) {
			sb.WriteString(t.Literal)
			continue
		}
		prevTrivia := i == 0 || token.IsTrivia(toks[i-1].Type)
		nextWS := i+1 < len(toks) && toks[i+1].Type == token.WHITESPACE
		if !prevTrivia && !nextWS && i+1 < len(toks) {
			sb.WriteByte(' ')
		}
		if prevTrivia && nextWS {
			i++
		}
	}
	return strings.TrimSpace(sb.String())
}
