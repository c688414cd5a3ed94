package parser

import (
	"github.com/sqlgate-io/sqlgate/pkg/token"
	"github.com/sqlgate-io/sqlgate/pkg/tokentree"
)

// Lexer feeds the parser a trivia-free token stream. It reuses the
// permissive tokenizer and drops whitespace and comments, so the strict
// grammar only ever sees meaningful tokens.
type Lexer struct {
	toks []token.Token
	pos  int
	end  int // offset just past the last byte of input
}

// NewLexer tokenizes sql for strict parsing.
func NewLexer(sql string) *Lexer {
	raw := tokentree.Tokenize(sql)
	toks := make([]token.Token, 0, len(raw))
	end := 0
	for _, t := range raw {
		end = t.Pos.Offset + len(t.Literal)
		if token.IsTrivia(t.Type) {
			continue
		}
		toks = append(toks, t)
	}
	return &Lexer{toks: toks, end: end}
}

// NextToken returns the next meaningful token, or an EOF token once the
// input is exhausted.
func (l *Lexer) NextToken() token.Token {
	if l.pos >= len(l.toks) {
		return token.Token{Type: token.EOF, Pos: token.Position{Offset: l.end}}
	}
	t := l.toks[l.pos]
	l.pos++
	return t
}
