package vm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xirelogy/go-pratt/internal/bytecode"
)

var (
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrOperandType    = errors.New("invalid operand type")
	ErrBadConstant    = errors.New("bad constant operand")
	ErrUnknownOpcode  = errors.New("unknown opcode")
)

// TraceInfo describes a single instruction dispatch for debugging/tracing.
type TraceInfo struct {
	Op     byte
	Name   string
	Offset int
	Line   int
	Depth  int
}

// TraceHook observes instruction dispatch for debugging/profiling.
type TraceHook func(TraceInfo)

// RuntimeError carries the failing instruction and source line for VM failures.
type RuntimeError struct {
	Message string
	Op      byte
	Offset  int
	Line    int
	Err     error
}

func (e *RuntimeError) Error() string {
	locParts := []string{}
	if e.Line > 0 {
		locParts = append(locParts, fmt.Sprintf("line %d", e.Line))
	}
	locParts = append(locParts, fmt.Sprintf("at %04d %s", e.Offset, bytecode.OpName(e.Op)))
	return fmt.Sprintf("%s: %s", strings.Join(locParts, " "), e.Message)
}

// Unwrap exposes the sentinel cause for errors.Is.
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// fault pairs a sentinel with a more specific message.
type fault struct {
	msg string
	err error
}

func (f *fault) Error() string { return f.msg }
func (f *fault) Unwrap() error { return f.err }

func operandError(msg string) error {
	return &fault{msg: msg, err: ErrOperandType}
}

func (vm *VM) runtimeError(offset int, op byte, err error) *RuntimeError {
	cause := err
	var f *fault
	if errors.As(err, &f) {
		cause = f.err
	}
	return &RuntimeError{
		Message: err.Error(),
		Op:      op,
		Offset:  offset,
		Line:    vm.chunk.LineAt(offset),
		Err:     cause,
	}
}

func (vm *VM) trace(offset int, op byte) {
	if vm.traceHook == nil {
		return
	}
	vm.traceHook(TraceInfo{
		Op:     op,
		Name:   bytecode.OpName(op),
		Offset: offset,
		Line:   vm.chunk.LineAt(offset),
		Depth:  vm.top,
	})
}

// LogTrace is a TraceHook that writes each dispatch to the package logger at
// debug level.
func LogTrace(info TraceInfo) {
	log.Debugf("%04d line=%d depth=%d %s", info.Offset, info.Line, info.Depth, info.Name)
}
