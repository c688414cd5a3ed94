package tokentree

import (
	"github.com/sqlgate-io/sqlgate/pkg/token"
)

// lexer is a permissive byte-oriented SQL tokenizer. Unlike a strict lexer
// it never fails: unknown bytes become ILLEGAL leaves, unterminated strings
// and comments run to end of input, and every byte of the source appears in
// exactly one token so concatenating token literals reproduces the input.
type lexer struct {
	input string
	pos   int // current position
	ch    byte
}

func newLexer(input string) *lexer {
	l := &lexer{input: input}
	l.readByte()
	return l
}

func (l *lexer) readByte() {
	if l.pos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.pos]
	}
	l.pos++
}

func (l *lexer) peekByte() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// Tokenize splits sql into a raw token stream with whitespace and comments
// preserved as tokens.
func Tokenize(sql string) []token.Token {
	l := newLexer(sql)
	var toks []token.Token
	for {
		tok := l.next()
		if tok.Type == token.EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func (l *lexer) next() token.Token {
	start := l.pos - 1
	pos := token.Position{Offset: start}

	switch {
	case l.ch == 0:
		return token.Token{Type: token.EOF, Pos: pos}
	case isSpace(l.ch):
		for isSpace(l.ch) {
			l.readByte()
		}
		return l.emit(token.WHITESPACE, start, pos)
	case l.ch == '-' && l.peekByte() == '-':
		for l.ch != '\n' && l.ch != 0 {
			l.readByte()
		}
		return l.emit(token.LINE_COMMENT, start, pos)
	case l.ch == '/' && l.peekByte() == '*':
		l.readByte()
		l.readByte()
		for l.ch != 0 && !(l.ch == '*' && l.peekByte() == '/') {
			l.readByte()
		}
		if l.ch != 0 {
			l.readByte()
			l.readByte()
		}
		return l.emit(token.BLOCK_COMMENT, start, pos)
	case l.ch == '\'':
		l.readString()
		return l.emit(token.STRING, start, pos)
	case l.ch == '"':
		l.readQuoted('"')
		return l.emit(token.QUOTED_IDENT, start, pos)
	case l.ch == '`':
		l.readQuoted('`')
		return l.emit(token.QUOTED_IDENT, start, pos)
	case l.ch == '[':
		// Either a T-SQL quoted identifier or a bare bracket. Treat as a
		// quoted identifier when a closing bracket exists on this line.
		if l.hasClosingBracket() {
			l.readQuoted(']')
			return l.emit(token.QUOTED_IDENT, start, pos)
		}
		l.readByte()
		return l.emit(token.LBRACKET, start, pos)
	case isDigit(l.ch):
		l.readNumber()
		return l.emit(token.NUMBER, start, pos)
	case isIdentStart(l.ch):
		for isIdentPart(l.ch) {
			l.readByte()
		}
		lit := l.input[start : l.pos-1]
		return token.Token{Type: token.LookupIdent(lit), Literal: lit, Pos: pos}
	default:
		return l.operator(start, pos)
	}
}

// readString consumes a single-quoted string. A doubled quote ('') and any
// backslash-escaped byte stay inside the literal, so e.g. 'O''Brien' and
// 'a\'b' each lex as one token. Unterminated strings run to end of input.
func (l *lexer) readString() {
	l.readByte()
	for {
		switch {
		case l.ch == 0:
			return
		case l.ch == '\\':
			l.readByte()
			if l.ch != 0 {
				l.readByte()
			}
		case l.ch == '\'':
			if l.peekByte() == '\'' {
				l.readByte()
				l.readByte()
				continue
			}
			l.readByte()
			return
		default:
			l.readByte()
		}
	}
}

// readQuoted consumes a quoted identifier closed by end, honoring the
// doubled-delimiter escape.
func (l *lexer) readQuoted(end byte) {
	l.readByte()
	for {
		switch {
		case l.ch == 0:
			return
		case l.ch == end:
			if l.peekByte() == end {
				l.readByte()
				l.readByte()
				continue
			}
			l.readByte()
			return
		default:
			l.readByte()
		}
	}
}

func (l *lexer) hasClosingBracket() bool {
	for i := l.pos; i < len(l.input); i++ {
		switch l.input[i] {
		case ']':
			return true
		case '\n':
			return false
		}
	}
	return false
}

func (l *lexer) readNumber() {
	for isDigit(l.ch) {
		l.readByte()
	}
	if l.ch == '.' && isDigit(l.peekByte()) {
		l.readByte()
		for isDigit(l.ch) {
			l.readByte()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		peek := l.peekByte()
		if isDigit(peek) || ((peek == '+' || peek == '-') && l.pos+1 < len(l.input) && isDigit(l.input[l.pos+1])) {
			l.readByte()
			if l.ch == '+' || l.ch == '-' {
				l.readByte()
			}
			for isDigit(l.ch) {
				l.readByte()
			}
		}
	}
}

func (l *lexer) operator(start int, pos token.Position) token.Token {
	ch := l.ch
	var t token.TokenType
	switch ch {
	case '(':
		t = token.LPAREN
	case ')':
		t = token.RPAREN
	case ']':
		t = token.RBRACKET
	case ',':
		t = token.COMMA
	case ';':
		t = token.SEMICOLON
	case '.':
		t = token.DOT
	case '+':
		t = token.PLUS
	case '-':
		t = token.MINUS
	case '*':
		t = token.STAR
	case '/':
		t = token.SLASH
	case '%':
		t = token.PERCENT
	case '=':
		t = token.EQ
	case '<':
		switch l.peekByte() {
		case '=':
			l.readByte()
			t = token.LE
		case '>':
			l.readByte()
			t = token.NE
		default:
			t = token.LT
		}
	case '>':
		if l.peekByte() == '=' {
			l.readByte()
			t = token.GE
		} else {
			t = token.GT
		}
	case '!':
		if l.peekByte() == '=' {
			l.readByte()
			t = token.NE
		} else {
			t = token.ILLEGAL
		}
	case '|':
		if l.peekByte() == '|' {
			l.readByte()
			t = token.DPIPE
		} else {
			t = token.ILLEGAL
		}
	default:
		t = token.ILLEGAL
	}
	l.readByte()
	return l.emit(t, start, pos)
}

func (l *lexer) emit(t token.TokenType, start int, pos token.Position) token.Token {
	return token.Token{Type: t, Literal: l.input[start : l.pos-1], Pos: pos}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ch == '$' || ch == '@' || ch == '#' ||
		('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch >= 0x80
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
