// Package pratt compiles single expressions to bytecode and runs them on a
// small stack machine.
package pratt

import (
	"fmt"
	"io"

	"github.com/xirelogy/go-pratt/internal/bytecode"
	"github.com/xirelogy/go-pratt/internal/compiler"
	"github.com/xirelogy/go-pratt/internal/lexer"
	"github.com/xirelogy/go-pratt/internal/token"
	"github.com/xirelogy/go-pratt/internal/value"
	"github.com/xirelogy/go-pratt/internal/vm"
)

// Value is the result of evaluating an expression.
type Value = value.Value

// Error types surfaced by Compile, LoadImage and Run. Each unwraps to a
// sentinel in the owning package.
type (
	LexError     = lexer.Error
	CompileError = compiler.CompileError
	RuntimeError = vm.RuntimeError
)

// TraceInfo and TraceHook observe instruction dispatch.
type (
	TraceInfo = vm.TraceInfo
	TraceHook = vm.TraceHook
)

// LogTrace is a TraceHook that writes to the debug log.
var LogTrace TraceHook = vm.LogTrace

// Program is a compiled expression ready to run.
type Program struct {
	Name  string
	chunk *bytecode.Chunk
}

// Options tune a single Run.
type Options struct {
	Output io.Writer // receives the printed result; nil discards it
	Trace  TraceHook
}

// Compile lexes and compiles src, then terminates the code with OP_RETURN so
// running it prints the value.
func Compile(name, src string) (*Program, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	chunk, err := compiler.Compile(toks)
	if err != nil {
		return nil, err
	}
	chunk.Write(bytecode.OP_RETURN, lastLine(toks))
	return &Program{Name: name, chunk: chunk}, nil
}

func lastLine(toks []token.Token) int {
	if len(toks) == 0 {
		return 0
	}
	return toks[len(toks)-1].Pos.Line
}

// LoadImage restores a program written by Image. The image is fully
// validated before it is returned.
func LoadImage(name string, data []byte) (*Program, error) {
	chunk, err := bytecode.DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", name, err)
	}
	return &Program{Name: name, chunk: chunk}, nil
}

// Image serializes the program to its binary image form.
func (p *Program) Image() ([]byte, error) {
	return bytecode.EncodeImage(p.chunk)
}

// Disassemble writes a listing of the program's bytecode to w.
func (p *Program) Disassemble(w io.Writer) error {
	return bytecode.NewDisassembler(w).DisassembleChunk(p.Name, p.chunk)
}

// Code returns a copy of the program's instruction bytes.
func (p *Program) Code() []byte {
	return append([]byte(nil), p.chunk.Code...)
}

// Run executes the program on a fresh VM. A program may be run any number
// of times; each run gets its own stack.
func (p *Program) Run(opts Options) (Value, error) {
	machine := vm.New()
	machine.SetOutput(opts.Output)
	if opts.Trace != nil {
		machine.SetTraceHook(opts.Trace)
	}
	return machine.Interpret(p.chunk)
}

// Eval compiles and runs src, discarding the printed output.
func Eval(src string) (Value, error) {
	prog, err := Compile("eval", src)
	if err != nil {
		return value.Nil(), err
	}
	return prog.Run(Options{})
}
