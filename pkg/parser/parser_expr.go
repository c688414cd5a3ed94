package parser

import (
	"github.com/sqlgate-io/sqlgate/pkg/token"
)

// Expression clauses are not interpreted; they are consumed as opaque
// token spans with two exceptions: parentheses must balance, and any
// embedded (SELECT ...) parses as a full subquery so its sources are
// visible to scope traversal.

type exprStop int

const (
	// exprStopFrom ends a span at FROM or any trailing clause keyword.
	exprStopFrom exprStop = iota
	// exprStopClause ends a span at trailing clause keywords only.
	exprStopClause
	// exprStopJoin ends a span at join keywords, commas and clause
	// keywords (for ON conditions).
	exprStopJoin
	// exprStopNone ends a span only at a balancing RPAREN.
	exprStopNone
)

func (p *Parser) exprStops(mode exprStop, t token.TokenType) bool {
	switch mode {
	case exprStopFrom:
		return t == token.FROM || isClauseKeyword(t)
	case exprStopClause:
		return isClauseKeyword(t)
	case exprStopJoin:
		return t == token.COMMA || t == token.USING || isJoinKeyword(t) ||
			t == token.WHERE || isClauseKeyword(t)
	default:
		return false
	}
}

// consumeExprSpan advances over one expression span, collecting embedded
// subqueries into core.Subqueries. It leaves the stopping token current.
func (p *Parser) consumeExprSpan(core *SelectCore, mode exprStop) {
	for {
		switch {
		case p.check(token.EOF), p.check(token.SEMICOLON), p.check(token.RPAREN):
			return
		case p.check(token.LPAREN):
			p.nextToken()
			if p.check(token.SELECT) || p.check(token.WITH) {
				core.Subqueries = append(core.Subqueries, p.parseSelectStmt())
			} else {
				p.consumeExprSpan(core, exprStopNone)
			}
			p.expect(token.RPAREN)
		case p.exprStops(mode, p.token.Type):
			return
		default:
			p.nextToken()
		}
	}
}
