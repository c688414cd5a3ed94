package parser

import (
	"strings"

	"github.com/sqlgate-io/sqlgate/pkg/token"
)

// parseStatement dispatches on the leading verb.
func (p *Parser) parseStatement() Statement {
	switch p.token.Type {
	case token.EXPLAIN:
		p.nextToken()
		return &ExplainStmt{Target: p.parseStatement()}
	case token.DESCRIBE, token.DESC:
		return p.parseDescribe()
	case token.SHOW:
		return p.parseCommand()
	case token.SELECT, token.WITH, token.LPAREN, token.VALUES:
		return p.parseSelectStmt()
	default:
		return p.parseRaw()
	}
}

// parseDescribe consumes DESCRIBE/DESC and collects every table-shaped
// name in the remainder of the statement, with no scope filtering.
func (p *Parser) parseDescribe() Statement {
	p.nextToken()
	stmt := &DescribeStmt{}
	for !p.check(token.EOF) && !p.check(token.SEMICOLON) {
		if nameToken(p.token.Type) {
			stmt.Tables = append(stmt.Tables, p.parseQualifiedName())
			continue
		}
		p.nextToken()
	}
	p.match(token.SEMICOLON)
	return stmt
}

// parseCommand consumes an opaque SHOW-style command, keeping the raw
// remainder of the statement as a literal argument.
func (p *Parser) parseCommand() Statement {
	keyword := p.token.Upper()
	p.nextToken()
	var parts []string
	for !p.check(token.EOF) && !p.check(token.SEMICOLON) {
		parts = append(parts, p.token.Literal)
		p.nextToken()
	}
	p.match(token.SEMICOLON)
	return &CommandStmt{Keyword: keyword, Literal: strings.Join(parts, " ")}
}

// parseRaw consumes any other statement opaquely, requiring only balanced
// parentheses.
func (p *Parser) parseRaw() Statement {
	depth := 0
	for !p.check(token.EOF) {
		switch p.token.Type {
		case token.SEMICOLON:
			if depth == 0 {
				p.nextToken()
				return &RawStmt{}
			}
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth < 0 {
				p.addError(ErrStrayCloser)
				return &RawStmt{}
			}
		}
		p.nextToken()
	}
	if depth != 0 {
		p.addError("unbalanced parenthesis")
	}
	return &RawStmt{}
}

// parseQualifiedName parses name (DOT name)* into a TableName, assigning
// parts right-to-left.
func (p *Parser) parseQualifiedName() *TableName {
	parts := []string{p.nameValue()}
	p.nextToken()
	for p.check(token.DOT) && nameToken(p.peek.Type) {
		p.nextToken()
		parts = append(parts, p.nameValue())
		p.nextToken()
	}
	t := &TableName{}
	switch len(parts) {
	case 1:
		t.Name = parts[0]
	case 2:
		t.Schema, t.Name = parts[0], parts[1]
	default:
		t.Catalog, t.Schema = parts[0], parts[1]
		t.Name = strings.Join(parts[2:], ".")
	}
	return t
}

// nameValue returns the current token's identifier value with any quoting
// removed.
func (p *Parser) nameValue() string {
	return p.unquote(p.token)
}
