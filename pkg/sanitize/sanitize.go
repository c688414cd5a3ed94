// Package sanitize validates SQL clause fragments before they are
// embedded into a larger statement. A fragment that smuggles in a second
// statement, breaks out of its parentheses, or toys with comment markers
// could change the meaning of the surrounding query, so these are
// rejected outright.
package sanitize

import (
	"fmt"
	"strings"

	"github.com/sqlgate-io/sqlgate/pkg/token"
	"github.com/sqlgate-io/sqlgate/pkg/tokentree"
)

// Kind identifies the validation failure.
type Kind int

const (
	// KindMultipleStatements means the clause parsed into more than one
	// statement.
	KindMultipleStatements Kind = iota
	// KindCommentOpen means the clause opens a multiline comment it never
	// closes.
	KindCommentOpen
	// KindCommentClose means the clause closes a multiline comment it
	// never opened.
	KindCommentClose
	// KindOpenParen means the clause leaves a parenthesis unclosed.
	KindOpenParen
	// KindCloseParen means the clause closes a parenthesis it never
	// opened.
	KindCloseParen
)

func (k Kind) String() string {
	switch k {
	case KindMultipleStatements:
		return "multiple statements"
	case KindCommentOpen:
		return "unclosed multiline comment"
	case KindCommentClose:
		return "closing unopened multiline comment"
	case KindOpenParen:
		return "unclosed parenthesis"
	case KindCloseParen:
		return "closing unopened parenthesis"
	default:
		return "invalid clause"
	}
}

// Error is a clause validation failure.
type Error struct {
	Kind   Kind
	Clause string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid filter clause: %s", e.Kind)
}

// Clause validates a SQL clause fragment and returns it, with a newline
// appended when the fragment ends in a comment lacking one so that any
// SQL appended later does not get swallowed by the comment.
func Clause(clause string) (string, error) {
	fail := func(k Kind) (string, error) {
		return "", &Error{Kind: k, Clause: clause}
	}

	stmts := tokentree.Parse(clause)
	if len(stmts) > 1 {
		return fail(KindMultipleStatements)
	}

	openParens := 0
	var prev, last *tokentree.Node
	if len(stmts) == 1 {
		for _, tok := range stmts[0].Children {
			v := tok.String()
			if v == "/" && prev != nil && prev.String() == "*" {
				return fail(KindCommentClose)
			}
			if v == "*" && prev != nil && prev.String() == "/" {
				return fail(KindCommentOpen)
			}
			// The lexer folds an unterminated /* into one comment token
			// running to end of input; it must not validate, or any SQL
			// appended after the clause is swallowed by the open comment.
			if tok.Kind == tokentree.KindToken && tok.Type == token.BLOCK_COMMENT &&
				!strings.HasSuffix(tok.Value, "*/") {
				return fail(KindCommentOpen)
			}
			switch v {
			case "(":
				openParens++
			case ")":
				openParens--
				if openParens < 0 {
					return fail(KindCloseParen)
				}
			}
			prev = tok
			last = tok
		}
	}
	if openParens > 0 {
		return fail(KindOpenParen)
	}

	if last != nil && last.IsComment() && !strings.HasSuffix(last.Value, "\n") {
		clause += "\n"
	}
	return clause, nil
}
