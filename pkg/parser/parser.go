// Package parser provides strict, scope-aware SQL parsing for table
// reference extraction.
//
// # Usage
//
//	stmts, err := parser.ParseStatements(sql, d)
//	if err != nil {
//	    // handle error
//	}
//
// The parser models SELECT statements fully (CTEs, set operations, joins,
// derived tables, lateral and table-valued functions) and treats
// expression clauses permissively, capturing embedded subqueries without
// interpreting scalar expressions. DESCRIBE and SHOW get dedicated
// statement shapes; all other verbs parse opaquely.
//
// # Grammar Overview
//
//	statement     → explain | describe | command | select_stmt | raw
//	select_stmt   → [WITH [RECURSIVE] cte_list] select_body
//	select_body   → select_core ((UNION|INTERSECT|EXCEPT) [ALL|DISTINCT] select_core)*
//	select_core   → SELECT [DISTINCT] expr_list [FROM from_clause] trailing_clauses
//	              | ( select_body )
//	from_clause   → table_expr (join table_expr)*
package parser

import (
	"fmt"

	"github.com/sqlgate-io/sqlgate/pkg/dialect"
	"github.com/sqlgate-io/sqlgate/pkg/token"
)

// Parser parses SQL into statement ASTs.
type Parser struct {
	lexer   *Lexer
	token   token.Token // current token
	peek    token.Token // lookahead token
	peek2   token.Token // second lookahead token
	errors  []error
	dialect *dialect.Dialect
}

// NewParser creates a parser over sql using the given dialect for name
// normalization. A nil dialect falls back to ANSI.
func NewParser(sql string, d *dialect.Dialect) *Parser {
	if d == nil {
		d = dialect.ANSI
	}
	p := &Parser{
		lexer:   NewLexer(sql),
		dialect: d,
	}
	// Read three tokens to initialize current, peek, and peek2.
	p.nextToken()
	p.nextToken()
	p.nextToken()
	return p
}

// ParseStatements parses all statements in sql. Any statement failing the
// grammar fails the whole parse.
func ParseStatements(sql string, d *dialect.Dialect) ([]Statement, error) {
	p := NewParser(sql, d)
	var stmts []Statement
	for {
		for p.check(token.SEMICOLON) {
			p.nextToken()
		}
		if p.check(token.EOF) {
			break
		}
		stmt := p.parseStatement()
		if len(p.errors) > 0 {
			return nil, p.errors[0]
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// ParseOne parses a single statement.
func ParseOne(sql string, d *dialect.Dialect) (Statement, error) {
	stmts, err := ParseStatements(sql, d)
	if err != nil {
		return nil, err
	}
	if len(stmts) == 0 {
		return nil, &ParseError{Message: "empty statement"}
	}
	return stmts[0], nil
}

// Dialect returns the parser's dialect.
func (p *Parser) Dialect() *dialect.Dialect {
	return p.dialect
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.peek2
	p.peek2 = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t token.TokenType) bool {
	return p.peek.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	if p.check(token.EOF) {
		p.addError(fmt.Sprintf(ErrUnexpectedEOF, t))
	} else {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token.Literal, t))
	}
	return false
}

// addError adds a parse error spanning the current token.
func (p *Parser) addError(msg string) {
	start := p.token.Pos
	end := start
	end.Offset += len(p.token.Literal)
	p.errors = append(p.errors, &ParseError{
		Span:    token.Span{Start: start, End: end},
		Message: msg,
	})
}

// ---------- Keyword Helpers ----------

// isJoinKeyword returns true if t opens or continues a join.
func isJoinKeyword(t token.TokenType) bool {
	switch t {
	case token.JOIN, token.LEFT, token.RIGHT, token.INNER, token.OUTER,
		token.FULL, token.CROSS, token.NATURAL, token.LATERAL:
		return true
	}
	return false
}

// isClauseKeyword returns true if t starts a select clause after FROM.
func isClauseKeyword(t token.TokenType) bool {
	switch t {
	case token.WHERE, token.GROUP, token.HAVING, token.ORDER, token.LIMIT,
		token.OFFSET, token.WINDOW, token.QUALIFY, token.FETCH,
		token.UNION, token.INTERSECT, token.EXCEPT:
		return true
	}
	return false
}

// nameToken returns true if t can appear as a name part.
func nameToken(t token.TokenType) bool {
	return t == token.IDENT || t == token.QUOTED_IDENT
}
