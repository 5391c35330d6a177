package query

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes parse errors.
type ErrorCode string

const (
	// ErrCodeSyntax indicates a malformed query, such as an empty query or
	// a dangling AND/OR.
	ErrCodeSyntax ErrorCode = "syntax"

	// ErrCodeUnknownField indicates a field name that is not in the registry.
	ErrCodeUnknownField ErrorCode = "unknown_field"

	// ErrCodeUnsupportedOperator indicates an operator the field does not accept.
	ErrCodeUnsupportedOperator ErrorCode = "unsupported_operator"

	// ErrCodeUnterminatedQuote indicates a quoted phrase with no closing quote.
	ErrCodeUnterminatedQuote ErrorCode = "unterminated_quote"

	// ErrCodeUnbalancedParen indicates a missing or stray parenthesis.
	ErrCodeUnbalancedParen ErrorCode = "unbalanced_paren"

	// ErrCodeInvalidValue indicates a value the field cannot parse.
	ErrCodeInvalidValue ErrorCode = "invalid_value"

	// ErrCodeAmbiguousReference indicates a block or time reference that
	// resolved to more than one target. The wrapped error is a
	// *catalog.AmbiguousReferenceError.
	ErrCodeAmbiguousReference ErrorCode = "ambiguous_reference"
)

// ParseError reports why a query could not be parsed. Pos is the byte
// offset of Fragment in the query text.
type ParseError struct {
	Code     ErrorCode
	Message  string
	Fragment string
	Pos      int
	Err      error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("%s at %d: %s", e.Code, e.Pos, e.Message)
	}
	return fmt.Sprintf("%s at %d (%q): %s", e.Code, e.Pos, e.Fragment, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError returns true if err is a ParseError.
// Uses errors.As to handle wrapped errors.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// ErrorCodeOf returns the code of a ParseError in err's chain, or "".
func ErrorCodeOf(err error) ErrorCode {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}
