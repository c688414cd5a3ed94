// Package token defines the lexical vocabulary shared by the SQL parsing
// backends.
//
// ANSI core tokens are defined as constants (IDs 0-999) for switch
// performance. Dialect-specific tokens are registered dynamically via
// Register().
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

//nolint:revive // ALL_CAPS names follow SQL token conventions
const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Trivia (preserved by the permissive tokenizer, skipped by the
	// strict parser)
	WHITESPACE
	LINE_COMMENT  // -- comment
	BLOCK_COMMENT // /* comment */

	// Literals
	IDENT        // unquoted identifier
	QUOTED_IDENT // "ident", `ident`, [ident]
	NUMBER       // 123, 45.67, 1e10
	STRING       // 'hello'

	// Operators and punctuation
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	DPIPE     // ||
	EQ        // =
	NE        // != or <>
	LT        // <
	GT        // >
	LE        // <=
	GE        // >=
	DOT       // .
	COMMA     // ,
	SEMICOLON // ;
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]

	keywordBeg // marker: keywords start here

	// Keywords (alphabetical)
	ALL
	ALTER
	AND
	AS
	ASC
	BETWEEN
	BY
	CASE
	CAST
	CREATE
	CROSS
	CURRENT
	DELETE
	DESC
	DESCRIBE
	DISTINCT
	DROP
	ELSE
	END
	EXCEPT
	EXISTS
	EXPLAIN
	FALSE
	FETCH
	FILTER
	FIRST
	FOLLOWING
	FROM
	FULL
	GRANT
	GROUP
	HAVING
	IF
	IN
	INNER
	INSERT
	INTERSECT
	INTO
	IS
	JOIN
	LAST
	LATERAL
	LEFT
	LIKE
	LIMIT
	MERGE
	NATURAL
	NOT
	NULL
	NULLS
	OFFSET
	ON
	OR
	ORDER
	OUTER
	OVER
	PARTITION
	PRECEDING
	QUALIFY
	RANGE
	RECURSIVE
	REPLACE
	RETURNING
	REVOKE
	RIGHT
	ROW
	ROWS
	SELECT
	SET
	SHOW
	TABLE
	THEN
	TRUE
	TRUNCATE
	UNBOUNDED
	UNION
	UPDATE
	USE
	USING
	VALUES
	VIEW
	WHEN
	WHERE
	WINDOW
	WITH
	WITHIN

	keywordEnd // marker: keywords end here

	// Sentinel - dynamic tokens start after this
	maxBuiltin TokenType = 999
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	// Check dynamic tokens first
	if name, ok := getDynamicName(t); ok {
		return name
	}
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps builtin token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF:           "EOF",
	ILLEGAL:       "ILLEGAL",
	WHITESPACE:    "WHITESPACE",
	LINE_COMMENT:  "LINE_COMMENT",
	BLOCK_COMMENT: "BLOCK_COMMENT",

	IDENT:        "IDENT",
	QUOTED_IDENT: "QUOTED_IDENT",
	NUMBER:       "NUMBER",
	STRING:       "STRING",

	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	PERCENT:   "%",
	DPIPE:     "||",
	EQ:        "=",
	NE:        "!=",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	DOT:       ".",
	COMMA:     ",",
	SEMICOLON: ";",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACKET:  "[",
	RBRACKET:  "]",

	ALL:       "ALL",
	ALTER:     "ALTER",
	AND:       "AND",
	AS:        "AS",
	ASC:       "ASC",
	BETWEEN:   "BETWEEN",
	BY:        "BY",
	CASE:      "CASE",
	CAST:      "CAST",
	CREATE:    "CREATE",
	CROSS:     "CROSS",
	CURRENT:   "CURRENT",
	DELETE:    "DELETE",
	DESC:      "DESC",
	DESCRIBE:  "DESCRIBE",
	DISTINCT:  "DISTINCT",
	DROP:      "DROP",
	ELSE:      "ELSE",
	END:       "END",
	EXCEPT:    "EXCEPT",
	EXISTS:    "EXISTS",
	EXPLAIN:   "EXPLAIN",
	FALSE:     "FALSE",
	FETCH:     "FETCH",
	FILTER:    "FILTER",
	FIRST:     "FIRST",
	FOLLOWING: "FOLLOWING",
	FROM:      "FROM",
	FULL:      "FULL",
	GRANT:     "GRANT",
	GROUP:     "GROUP",
	HAVING:    "HAVING",
	IF:        "IF",
	IN:        "IN",
	INNER:     "INNER",
	INSERT:    "INSERT",
	INTERSECT: "INTERSECT",
	INTO:      "INTO",
	IS:        "IS",
	JOIN:      "JOIN",
	LAST:      "LAST",
	LATERAL:   "LATERAL",
	LEFT:      "LEFT",
	LIKE:      "LIKE",
	LIMIT:     "LIMIT",
	MERGE:     "MERGE",
	NATURAL:   "NATURAL",
	NOT:       "NOT",
	NULL:      "NULL",
	NULLS:     "NULLS",
	OFFSET:    "OFFSET",
	ON:        "ON",
	OR:        "OR",
	ORDER:     "ORDER",
	OUTER:     "OUTER",
	OVER:      "OVER",
	PARTITION: "PARTITION",
	PRECEDING: "PRECEDING",
	QUALIFY:   "QUALIFY",
	RANGE:     "RANGE",
	RECURSIVE: "RECURSIVE",
	REPLACE:   "REPLACE",
	RETURNING: "RETURNING",
	REVOKE:    "REVOKE",
	RIGHT:     "RIGHT",
	ROW:       "ROW",
	ROWS:      "ROWS",
	SELECT:    "SELECT",
	SET:       "SET",
	SHOW:      "SHOW",
	TABLE:     "TABLE",
	THEN:      "THEN",
	TRUE:      "TRUE",
	TRUNCATE:  "TRUNCATE",
	UNBOUNDED: "UNBOUNDED",
	UNION:     "UNION",
	UPDATE:    "UPDATE",
	USE:       "USE",
	USING:     "USING",
	VALUES:    "VALUES",
	VIEW:      "VIEW",
	WHEN:      "WHEN",
	WHERE:     "WHERE",
	WINDOW:    "WINDOW",
	WITH:      "WITH",
	WITHIN:    "WITHIN",
}

// keywords maps lowercase keyword strings to their token types.
// Built once from tokenNames at init; immutable afterwards.
var keywords = func() map[string]TokenType {
	m := make(map[string]TokenType, int(keywordEnd-keywordBeg))
	for t := keywordBeg + 1; t < keywordEnd; t++ {
		m[lowerASCII(tokenNames[t])] = t
	}
	return m
}()

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// LookupIdent returns the token type for the given identifier.
// If the identifier is a builtin or registered dynamic keyword (any case),
// the keyword token type is returned. Otherwise, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[lowerASCII(ident)]; ok {
		return tok
	}
	if tok, ok := LookupDynamicKeyword(ident); ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a builtin keyword.
func IsKeyword(t TokenType) bool {
	return t > keywordBeg && t < keywordEnd
}

// IsDML returns true for data-manipulation leading keywords.
func IsDML(t TokenType) bool {
	switch t {
	case SELECT, INSERT, UPDATE, DELETE, MERGE, REPLACE:
		return true
	}
	return false
}

// IsDDL returns true for data-definition leading keywords.
func IsDDL(t TokenType) bool {
	switch t {
	case CREATE, ALTER, DROP, TRUNCATE, GRANT, REVOKE:
		return true
	}
	return false
}

// IsTrivia returns true for whitespace and comment tokens.
func IsTrivia(t TokenType) bool {
	switch t {
	case WHITESPACE, LINE_COMMENT, BLOCK_COMMENT:
		return true
	}
	return false
}

// IsComment returns true for comment tokens.
func IsComment(t TokenType) bool {
	return t == LINE_COMMENT || t == BLOCK_COMMENT
}

// Token represents a lexical token with its raw source text and position.
// Literal always holds the text exactly as written, so concatenating the
// literals of a token sequence reproduces the input byte-for-byte.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// Upper returns the token literal folded to ASCII upper case. Used for
// keyword normalization without losing the raw text.
func (t Token) Upper() string {
	b := []byte(t.Literal)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
