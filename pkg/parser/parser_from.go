package parser

import (
	"strings"

	"github.com/sqlgate-io/sqlgate/pkg/token"
	"github.com/sqlgate-io/sqlgate/pkg/tokentree"
)

// parseFromClause parses table_expr (, table_expr | join table_expr)*.
// Join conditions are consumed as expression spans whose subqueries land
// on core.
func (p *Parser) parseFromClause(core *SelectCore) []TableExpr {
	var items []TableExpr
	for {
		expr := p.parseJoinChain(core)
		if expr != nil {
			items = append(items, expr)
		}
		if !p.match(token.COMMA) {
			return items
		}
	}
}

// parseJoinChain parses one table expression and any joins hanging off it.
func (p *Parser) parseJoinChain(core *SelectCore) TableExpr {
	left := p.parseTableExpr(core)
	if left == nil {
		return nil
	}
	for p.atJoin() {
		p.consumeJoinKeywords()
		right := p.parseTableExpr(core)
		if right == nil {
			return left
		}
		join := &Join{Left: left, Right: right}
		if p.match(token.ON) {
			sub := &SelectCore{}
			p.consumeExprSpan(sub, exprStopJoin)
			join.Subqueries = sub.Subqueries
		} else if p.match(token.USING) {
			if p.match(token.LPAREN) {
				p.consumeExprSpan(&SelectCore{}, exprStopNone)
				p.expect(token.RPAREN)
			}
		}
		left = join
	}
	return left
}

// atJoin reports whether the current token starts a join.
func (p *Parser) atJoin() bool {
	switch p.token.Type {
	case token.JOIN, token.CROSS, token.NATURAL:
		return true
	case token.LEFT, token.RIGHT, token.FULL, token.INNER, token.OUTER:
		return true
	}
	return false
}

// consumeJoinKeywords consumes the modifier run up to and including JOIN.
func (p *Parser) consumeJoinKeywords() {
	for {
		switch p.token.Type {
		case token.JOIN:
			p.nextToken()
			return
		case token.LEFT, token.RIGHT, token.FULL, token.INNER,
			token.OUTER, token.CROSS, token.NATURAL:
			p.nextToken()
		default:
			return
		}
	}
}

// parseTableExpr parses a single FROM item: a derived table, a LATERAL
// item, a table-valued function, or a plain table name.
func (p *Parser) parseTableExpr(core *SelectCore) TableExpr {
	switch {
	case p.check(token.LPAREN):
		return p.parseParenTableExpr(core, false)
	case p.check(token.LATERAL):
		p.nextToken()
		if p.check(token.LPAREN) {
			return p.parseParenTableExpr(core, true)
		}
		if nameToken(p.token.Type) && p.checkPeek(token.LPAREN) {
			return p.parseTableFunc(core)
		}
		p.addError("expected subquery or function after LATERAL")
		return nil
	case nameToken(p.token.Type) && p.checkPeek(token.LPAREN):
		return p.parseTableFunc(core)
	case nameToken(p.token.Type):
		name := p.parseQualifiedName()
		name.Alias = p.parseAlias()
		return name
	default:
		p.addError("expected table expression")
		return nil
	}
}

// parseParenTableExpr parses ( select | join_chain ) [alias].
func (p *Parser) parseParenTableExpr(core *SelectCore, lateral bool) TableExpr {
	p.expect(token.LPAREN)
	if p.check(token.SELECT) || p.check(token.WITH) || p.check(token.VALUES) {
		sel := p.parseSelectStmt()
		p.expect(token.RPAREN)
		return &Derived{Lateral: lateral, Select: sel, Alias: p.parseAlias()}
	}
	// Parenthesized join chain.
	inner := p.parseJoinChain(core)
	p.expect(token.RPAREN)
	return inner
}

// parseTableFunc parses name(args) [alias], capturing subqueries in args.
func (p *Parser) parseTableFunc(core *SelectCore) TableExpr {
	fn := &TableFunc{Name: p.nameValue()}
	p.nextToken()
	p.expect(token.LPAREN)
	sub := &SelectCore{}
	p.consumeExprSpan(sub, exprStopNone)
	p.expect(token.RPAREN)
	fn.Subqueries = sub.Subqueries
	fn.Alias = p.parseAlias()
	return fn
}

// parseAlias parses [AS] name, returning "" when no alias is present.
func (p *Parser) parseAlias() string {
	if p.match(token.AS) {
		if nameToken(p.token.Type) {
			alias := p.nameValue()
			p.nextToken()
			return alias
		}
		p.addError("expected alias after AS")
		return ""
	}
	if nameToken(p.token.Type) {
		alias := p.nameValue()
		p.nextToken()
		return alias
	}
	return ""
}

// unquote strips identifier quoting from a token's literal. The dialect's
// own quote pair also unescapes a doubled closing quote; foreign quote
// styles fall back to the generic rules.
func (p *Parser) unquote(t token.Token) string {
	if t.Type != token.QUOTED_IDENT {
		return t.Literal
	}
	lit := t.Literal
	d := p.dialect
	if len(lit) >= 2 && lit[0] == d.QuoteStart && lit[len(lit)-1] == d.QuoteEnd {
		inner := lit[1 : len(lit)-1]
		esc := string([]byte{d.QuoteEnd, d.QuoteEnd})
		return strings.ReplaceAll(inner, esc, string(d.QuoteEnd))
	}
	return tokentree.RemoveQuotes(lit)
}
