package parser

import (
	"fmt"

	"github.com/sqlgate-io/sqlgate/pkg/token"
)

// ParseError is a parsing error. Span covers the offending token when one
// is known; errors about the input as a whole carry a zero span.
type ParseError struct {
	Span    token.Span
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Span.Start.Offset, e.Message)
}

// Common error messages.
const (
	ErrUnexpectedToken = "unexpected token %q, expected %s"
	ErrUnexpectedEOF   = "unexpected end of input, expected %s"
	ErrStrayCloser     = "unbalanced closing parenthesis"
)
