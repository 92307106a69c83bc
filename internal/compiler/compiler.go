package compiler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tliron/commonlog"

	"github.com/xirelogy/go-pratt/internal/bytecode"
	"github.com/xirelogy/go-pratt/internal/token"
	"github.com/xirelogy/go-pratt/internal/value"
)

var log = commonlog.GetLogger("pratt.compiler")

// ErrCompilerUsed is returned when Compile is called twice on one Compiler.
var ErrCompilerUsed = errors.New("compiler already used")

// Compiler turns a token stream into a chunk in a single pass. It is
// single-use: the chunk it builds is handed to the caller by Compile.
type Compiler struct {
	tokens   []token.Token
	next     int
	previous token.Token
	current  token.Token
	chunk    *bytecode.Chunk
	used     bool
}

// Compile is shorthand for New(tokens).Compile().
func Compile(tokens []token.Token) (*bytecode.Chunk, error) {
	return New(tokens).Compile()
}

// New creates a compiler reading from tokens. The stream should end with an
// EOF token; one is synthesized if it does not.
func New(tokens []token.Token) *Compiler {
	return &Compiler{
		tokens: tokens,
		chunk:  &bytecode.Chunk{},
	}
}

// Compile parses exactly one expression and returns its bytecode. No Return
// is appended; callers add their own terminator. The first error ends the pass.
func (c *Compiler) Compile() (*bytecode.Chunk, error) {
	if c.used {
		return nil, ErrCompilerUsed
	}
	c.used = true

	c.advance()
	if err := c.expression(); err != nil {
		return nil, err
	}
	if c.current.Type != token.EOF {
		return nil, c.errorAtCurrent(ErrTrailingInput)
	}

	chunk := c.chunk
	c.chunk = nil
	log.Debugf("compiled %d bytes, %d constants", len(chunk.Code), len(chunk.Consts))
	return chunk, nil
}

func (c *Compiler) advance() {
	c.previous = c.current
	if c.next < len(c.tokens) {
		c.current = c.tokens[c.next]
		c.next++
		return
	}
	if c.current.Type != token.EOF {
		c.current = token.Token{Type: token.EOF, Pos: c.previous.Pos}
	}
}

func (c *Compiler) expression() error {
	return c.parsePrecedence(PrecAssignment)
}

// parsePrecedence parses a prefix construct, then folds in infix operators
// for as long as they bind at least as tightly as prec.
func (c *Compiler) parsePrecedence(prec Precedence) error {
	c.advance()
	prefix := ruleFor(c.previous.Type).prefix
	if prefix == fnNone {
		err := c.errorAt(c.previous, ErrExpectedExpression)
		err.Line = c.current.Pos.Line
		return err
	}
	if err := c.dispatch(prefix); err != nil {
		return err
	}

	for prec <= ruleFor(c.current.Type).precedence {
		c.advance()
		if err := c.dispatch(ruleFor(c.previous.Type).infix); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) dispatch(fn parseFn) error {
	switch fn {
	case fnGrouping:
		return c.grouping()
	case fnNumber:
		return c.number()
	case fnString:
		return c.string()
	case fnLiteral:
		return c.literal()
	case fnUnary:
		return c.unary()
	case fnBinary:
		return c.binary()
	case fnNone:
		return c.errorAtCurrent(ErrExpectedExpression)
	default:
		return fmt.Errorf("unknown parse handler %d", fn)
	}
}

func (c *Compiler) grouping() error {
	if err := c.expression(); err != nil {
		return err
	}
	return c.consume(token.RParen, ErrUnclosedGroup)
}

// number accepts literals beyond float64 range; ParseFloat rounds them to ±Inf.
func (c *Compiler) number() error {
	num, err := strconv.ParseFloat(c.previous.Literal, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return c.errorAt(c.previous, ErrInvalidNumber)
	}
	return c.emitConstant(value.Number(num))
}

func (c *Compiler) string() error {
	lit := c.previous.Literal
	if len(lit) >= 2 && lit[0] == '"' && lit[len(lit)-1] == '"' {
		lit = lit[1 : len(lit)-1]
	}
	return c.emitConstant(value.String(lit))
}

func (c *Compiler) literal() error {
	switch c.previous.Type {
	case token.True:
		c.emitByte(bytecode.OP_TRUE)
	case token.False:
		c.emitByte(bytecode.OP_FALSE)
	case token.Nil:
		c.emitByte(bytecode.OP_NIL)
	default:
		return c.errorAt(c.previous, ErrExpectedExpression)
	}
	return nil
}

func (c *Compiler) unary() error {
	op := c.previous
	if err := c.parsePrecedence(PrecUnary); err != nil {
		return err
	}
	switch op.Type {
	case token.Minus:
		c.emitByteAt(bytecode.OP_NEGATE, op)
	case token.Bang:
		c.emitByteAt(bytecode.OP_NOT, op)
	default:
		return c.errorAt(op, ErrExpectedExpression)
	}
	return nil
}

// binary compiles the right operand one level tighter than the operator,
// which makes operators of equal precedence associate to the left.
// != >= <= are emitted as the opposite comparison followed by OP_NOT.
func (c *Compiler) binary() error {
	op := c.previous
	if err := c.parsePrecedence(ruleFor(op.Type).precedence + 1); err != nil {
		return err
	}
	switch op.Type {
	case token.Plus:
		c.emitByteAt(bytecode.OP_ADD, op)
	case token.Minus:
		c.emitByteAt(bytecode.OP_SUBTRACT, op)
	case token.Star:
		c.emitByteAt(bytecode.OP_MULTIPLY, op)
	case token.Slash:
		c.emitByteAt(bytecode.OP_DIVIDE, op)
	case token.Equal:
		c.emitByteAt(bytecode.OP_EQUAL, op)
	case token.NotEqual:
		c.emitByteAt(bytecode.OP_EQUAL, op)
		c.emitByteAt(bytecode.OP_NOT, op)
	case token.Greater:
		c.emitByteAt(bytecode.OP_GREATER, op)
	case token.GreaterEqual:
		c.emitByteAt(bytecode.OP_LESS, op)
		c.emitByteAt(bytecode.OP_NOT, op)
	case token.Less:
		c.emitByteAt(bytecode.OP_LESS, op)
	case token.LessEqual:
		c.emitByteAt(bytecode.OP_GREATER, op)
		c.emitByteAt(bytecode.OP_NOT, op)
	default:
		return c.errorAt(op, ErrExpectedExpression)
	}
	return nil
}

func (c *Compiler) consume(t token.Type, cause error) error {
	if c.current.Type == t {
		c.advance()
		return nil
	}
	return c.errorAtCurrent(cause)
}

func (c *Compiler) emitConstant(v value.Value) error {
	idx, err := c.chunk.AddConstant(v)
	if err != nil {
		return c.errorAt(c.previous, err)
	}
	c.emitByte(bytecode.OP_CONSTANT)
	c.emitByte(idx)
	return nil
}

func (c *Compiler) emitByte(b byte) {
	c.chunk.Write(b, c.previous.Pos.Line)
}

func (c *Compiler) emitByteAt(b byte, tok token.Token) {
	c.chunk.Write(b, tok.Pos.Line)
}

func (c *Compiler) errorAtCurrent(cause error) *CompileError {
	return c.errorAt(c.current, cause)
}

func (c *Compiler) errorAt(tok token.Token, cause error) *CompileError {
	lexeme := tok.Literal
	if tok.Type == token.EOF {
		lexeme = ""
	}
	return &CompileError{
		Line:    tok.Pos.Line,
		Lexeme:  lexeme,
		Message: cause.Error(),
		Err:     cause,
	}
}
