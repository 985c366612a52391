package types

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a compilation failure.
// The first letter names the stage that raised it.
type ErrorCode string

// Error codes.
const (
	// L0xxx: Lexer errors
	ErrUnrecognizedChar ErrorCode = "L0101"
	ErrStringNotClosed  ErrorCode = "L0102"

	// P0xxx: Parser errors
	ErrUnexpectedToken ErrorCode = "P0201"
	ErrUnexpectedEnd   ErrorCode = "P0202"
	ErrMissingName     ErrorCode = "P0203"
	ErrMaxDepth        ErrorCode = "P0204"

	// V0xxx: Traversal errors
	ErrUnknownSourceNode ErrorCode = "V0301"

	// X0xxx: Transform errors
	ErrMissingBuildPointer ErrorCode = "X0302"
	ErrArgumentCount       ErrorCode = "X0303"
	ErrUnknownCallee       ErrorCode = "X0304"

	// G0xxx: Code generation errors
	ErrUnknownTargetNode ErrorCode = "G0401"
)

// Sentinel errors for each stage. Every *Error matches exactly one of them
// through errors.Is.
var (
	ErrLex       = errors.New("lex error")
	ErrParse     = errors.New("parse error")
	ErrTraversal = errors.New("traversal error")
	ErrTransform = errors.New("transform error")
	ErrCodegen   = errors.New("codegen error")
)

// Error represents a structured compilation error.
type Error struct {
	Code     ErrorCode
	Message  string
	Position int    // Byte offset in the source, or -1 when unknown
	Token    string // Offending character or token text
	Err      error
}

// NewError creates a new compilation error.
func NewError(code ErrorCode, message string, position int) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Position: position,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("%s at position %d: %s", e.Code, e.Position, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Kind returns the stage sentinel matching the error code.
func (e *Error) Kind() error {
	if len(e.Code) == 0 {
		return nil
	}
	switch e.Code[0] {
	case 'L':
		return ErrLex
	case 'P':
		return ErrParse
	case 'V':
		return ErrTraversal
	case 'X':
		return ErrTransform
	case 'G':
		return ErrCodegen
	default:
		return nil
	}
}

// Is reports whether target is the stage sentinel for this error.
func (e *Error) Is(target error) bool {
	k := e.Kind()
	return k != nil && k == target
}

// WithToken adds token information to the error.
func (e *Error) WithToken(token string) *Error {
	e.Token = token
	return e
}

// WithCause wraps another error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}
