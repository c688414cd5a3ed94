package parser

import (
	"github.com/sqlgate-io/sqlgate/pkg/token"
)

// parseSelectStmt parses [WITH [RECURSIVE] cte_list] select_body.
func (p *Parser) parseSelectStmt() *SelectStmt {
	stmt := &SelectStmt{}
	if p.match(token.WITH) {
		stmt.Recursive = p.match(token.RECURSIVE)
		for {
			cte := p.parseCTE()
			if cte == nil {
				break
			}
			stmt.With = append(stmt.With, cte)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	stmt.Body = p.parseSelectBody()
	p.match(token.SEMICOLON)
	return stmt
}

// parseCTE parses name [(column_list)] AS (select_stmt). CTE bodies are
// limited to selects; DML or DDL inside a CTE is a parse error.
func (p *Parser) parseCTE() *CTE {
	if !nameToken(p.token.Type) {
		p.addError("expected common table expression name")
		return nil
	}
	cte := &CTE{Name: p.nameValue()}
	p.nextToken()
	if p.match(token.LPAREN) {
		// Column alias list.
		for nameToken(p.token.Type) {
			p.nextToken()
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN)
	}
	if !p.expect(token.AS) {
		return nil
	}
	if !p.expect(token.LPAREN) {
		return nil
	}
	cte.Select = p.parseSelectStmt()
	p.expect(token.RPAREN)
	return cte
}

// parseSelectBody parses select_core ((UNION|INTERSECT|EXCEPT) ...)* into
// a left-leaning set operation tree.
func (p *Parser) parseSelectBody() SelectBody {
	left := p.parseSelectCore()
	for {
		var op string
		switch p.token.Type {
		case token.UNION:
			op = "UNION"
		case token.INTERSECT:
			op = "INTERSECT"
		case token.EXCEPT:
			op = "EXCEPT"
		default:
			return left
		}
		p.nextToken()
		all := p.match(token.ALL)
		if !all {
			p.match(token.DISTINCT)
		}
		right := p.parseSelectCore()
		left = &SetOp{Op: op, All: all, Left: left, Right: right}
	}
}

// parseSelectCore parses one SELECT block, a VALUES list, or a
// parenthesized body.
func (p *Parser) parseSelectCore() SelectBody {
	core := &SelectCore{}

	if p.check(token.LPAREN) {
		p.nextToken()
		inner := p.parseSelectBody()
		p.expect(token.RPAREN)
		return inner
	}

	if p.check(token.VALUES) {
		p.nextToken()
		p.consumeExprSpan(core, exprStopClause)
		return core
	}

	if !p.expect(token.SELECT) {
		return core
	}
	if p.match(token.DISTINCT) {
		p.match(token.ON) // DISTINCT ON (...) handled by the expression span
	} else {
		p.match(token.ALL)
	}

	// Select list: consumed permissively up to FROM or a trailing clause.
	p.consumeExprSpan(core, exprStopFrom)

	if p.match(token.FROM) {
		core.From = p.parseFromClause(core)
	}

	// WHERE, GROUP BY, HAVING, QUALIFY, WINDOW, ORDER BY, LIMIT, OFFSET,
	// FETCH. Clause keywords delimit spans; subqueries are captured.
	for isClauseKeyword(p.token.Type) && !isSetOp(p.token.Type) {
		p.nextToken()
		p.consumeExprSpan(core, exprStopClause)
	}
	return core
}

func isSetOp(t token.TokenType) bool {
	return t == token.UNION || t == token.INTERSECT || t == token.EXCEPT
}
