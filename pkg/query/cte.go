package query

import (
	"strings"

	"github.com/sqlgate-io/sqlgate/pkg/token"
	"github.com/sqlgate-io/sqlgate/pkg/tokentree"
)

// CTESplit splits sql into its WITH prelude and the remaining query.
// When the first statement carries no prelude, ok is false and remainder
// is the input unchanged.
func CTESplit(sql string) (cte string, remainder string, ok bool) {
	stmt := tokentree.ParseOne(sql)
	if stmt == nil {
		return "", sql, false
	}
	i, first := stmt.NextNonTrivia(0)
	if first == nil || first.Kind != tokentree.KindToken || first.Type != token.WITH {
		return "", sql, false
	}

	end := cteListEnd(stmt, i+1)
	if end == -1 {
		return "", sql, false
	}
	var prelude, rest strings.Builder
	for _, c := range stmt.Children[i+1 : end] {
		prelude.WriteString(c.String())
	}
	for _, c := range stmt.Children[end:] {
		rest.WriteString(c.String())
	}
	return "WITH " + strings.TrimSpace(prelude.String()), strings.TrimSpace(rest.String()), true
}

// cteListEnd returns the child index just past the WITH binding list:
// name [(columns)] AS (body), repeated over commas.
func cteListEnd(stmt *tokentree.Node, from int) int {
	i := from
	for {
		i = skipTrivia(stmt, i)
		// Binding name, possibly folded into an identifier or function
		// group (the latter when a column list follows with no space).
		if i >= len(stmt.Children) || !bindingName(stmt.Children[i]) {
			return -1
		}
		i = skipTrivia(stmt, i+1)
		// Optional column list.
		if i < len(stmt.Children) && stmt.Children[i].Kind == tokentree.KindParens {
			i = skipTrivia(stmt, i+1)
		}
		if i >= len(stmt.Children) || !stmt.Children[i].MatchKeyword("AS") {
			return -1
		}
		i = skipTrivia(stmt, i+1)
		if i >= len(stmt.Children) || stmt.Children[i].Kind != tokentree.KindParens {
			return -1
		}
		i++
		j := skipTrivia(stmt, i)
		if j >= len(stmt.Children) || stmt.Children[j].Kind != tokentree.KindToken ||
			stmt.Children[j].Type != token.COMMA {
			return i
		}
		i = j + 1
	}
}

func skipTrivia(stmt *tokentree.Node, i int) int {
	for i < len(stmt.Children) && stmt.Children[i].IsTrivia() {
		i++
	}
	return i
}

func bindingName(c *tokentree.Node) bool {
	switch c.Kind {
	case tokentree.KindIdentifier, tokentree.KindFunction:
		return true
	case tokentree.KindToken:
		return c.Type == token.IDENT || c.Type == token.QUOTED_IDENT
	}
	return false
}

// StripCommentsFromStatement removes comments from a statement only when
// a comment marker is present, avoiding the parse cost on the common
// path. Useful for engines that reject comments outright.
func StripCommentsFromStatement(statement, engine string) string {
	if !strings.Contains(statement, "--") && !strings.Contains(statement, "/*") {
		return statement
	}
	return New(statement, WithEngine(engine)).StripComments()
}
