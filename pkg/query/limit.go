package query

import (
	"fmt"
	"strings"

	"github.com/sqlgate-io/sqlgate/pkg/token"
	"github.com/sqlgate-io/sqlgate/pkg/tokentree"
)

// extractLimit finds a statement's LIMIT value. Only the statement's own
// clause counts; a LIMIT buried in a subquery caps that subquery, not the
// result. For the compound "LIMIT offset, count" form the count is the
// part after the comma.
func extractLimit(stmt *tokentree.Node) (int, bool) {
	idx := -1
	for i, c := range stmt.Children {
		if c.MatchKeyword("LIMIT") {
			idx = i
			break
		}
	}
	if idx == -1 {
		return 0, false
	}
	_, next := stmt.NextNonTrivia(idx + 1)
	if next == nil {
		return 0, false
	}
	if next.Kind == tokentree.KindIdentifierList {
		next = afterComma(next)
	}
	if next != nil && next.Kind == tokentree.KindToken &&
		next.Type == token.NUMBER && isInteger(next.Value) {
		return atoi(next.Value), true
	}
	return 0, false
}

func afterComma(list *tokentree.Node) *tokentree.Node {
	for i, c := range list.Children {
		if c.Kind == tokentree.KindToken && c.Type == token.COMMA {
			_, next := list.NextNonTrivia(i + 1)
			return next
		}
	}
	return nil
}

// SetOrUpdateLimit returns the first statement with newLimit applied.
//
// Without an existing limit the clause is appended. An existing plain
// limit is replaced only when force is set or newLimit is lower, so a
// cap can never silently widen a query the user already restricted. The
// compound "offset, count" form keeps its offset and takes newLimit as
// the count.
func (p *ParsedQuery) SetOrUpdateLimit(newLimit int, force bool) string {
	if !p.hasLimit || p.limit == 0 {
		return fmt.Sprintf("%s\nLIMIT %d", p.Stripped(), newLimit)
	}
	if len(p.stmts) == 0 {
		return p.Stripped()
	}
	// Work on a private reparse so the receiver stays immutable.
	stmt := tokentree.ParseOne(p.stmts[0].String())
	if stmt == nil {
		return p.Stripped()
	}

	idx := -1
	for i, c := range stmt.Children {
		if c.MatchKeyword("LIMIT") {
			idx = i
			break
		}
	}
	if idx == -1 {
		return strings.Trim(stmt.String(), " \n;\t")
	}
	vi, value := stmt.NextNonTrivia(idx + 1)
	switch {
	case value == nil:
	case value.Kind == tokentree.KindToken && value.Type == token.NUMBER && isInteger(value.Value):
		if force || newLimit < atoi(value.Value) {
			value.Value = fmt.Sprintf("%d", newLimit)
		}
	case value.Kind == tokentree.KindIdentifierList:
		if first := value.FirstMeaningful(); first != nil {
			stmt.Children[vi] = tokentree.NewLeaf(token.NUMBER,
				fmt.Sprintf("%s, %d", first.String(), newLimit))
		}
	}
	return stmt.String()
}

// ExtractTop scans sql textually for a TOP-style clause: any of the given
// keywords followed by an integer. Used for engines that cap result sets
// with TOP instead of LIMIT.
func ExtractTop(sql string, topKeywords []string) (int, bool) {
	upper := make(map[string]bool, len(topKeywords))
	for _, kw := range topKeywords {
		upper[strings.ToUpper(kw)] = true
	}
	flat := strings.ReplaceAll(strings.ReplaceAll(sql, "\n", " "), "\r", "")
	fields := strings.Fields(strings.TrimRight(flat, " "))
	for i, f := range fields {
		if upper[strings.ToUpper(f)] && i+1 < len(fields) {
			if isInteger(fields[i+1]) {
				return atoi(fields[i+1]), true
			}
			return 0, false
		}
	}
	return 0, false
}
