package compiler

import (
	"errors"
	"fmt"

	"github.com/xirelogy/go-pratt/internal/bytecode"
)

var (
	ErrExpectedExpression = errors.New("expected expression")
	ErrUnclosedGroup      = errors.New("expected ')' after expression")
	ErrTrailingInput      = errors.New("expected end of expression")
	ErrInvalidNumber      = errors.New("invalid number literal")
	ErrTooManyConstants   = bytecode.ErrConstantPoolFull
)

// CompileError reports the first structural problem found in the token stream.
type CompileError struct {
	Line    int
	Lexeme  string // offending token text; empty at end of input
	Message string
	Err     error
}

func (e *CompileError) Error() string {
	where := "at end"
	if e.Lexeme != "" {
		where = fmt.Sprintf("at '%s'", e.Lexeme)
	}
	return fmt.Sprintf("line %d %s: %s", e.Line, where, e.Message)
}

// Unwrap exposes the sentinel cause for errors.Is.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// AtEnd reports whether the error was found at the end of the input, which
// means more tokens could still complete the expression.
func (e *CompileError) AtEnd() bool {
	return e.Lexeme == ""
}
