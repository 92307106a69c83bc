package vm

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"

	"github.com/xirelogy/go-pratt/internal/bytecode"
	"github.com/xirelogy/go-pratt/internal/value"
)

var log = commonlog.GetLogger("pratt.vm")

// StackMax is the operand stack capacity in values.
const StackMax = 256

// ErrVMUsed is returned when Interpret is called twice on one VM.
var ErrVMUsed = errors.New("vm already used")

// VM is a stack-based bytecode interpreter. A VM runs exactly one chunk.
type VM struct {
	chunk     *bytecode.Chunk
	pc        int
	stack     [StackMax]value.Value
	top       int
	out       io.Writer
	traceHook TraceHook
	used      bool
}

// New constructs a VM that prints returned values to os.Stdout.
func New() *VM {
	return &VM{out: os.Stdout}
}

// SetOutput redirects the text printed by OP_RETURN.
func (vm *VM) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	vm.out = w
}

// SetTraceHook registers a callback for instruction-level tracing.
func (vm *VM) SetTraceHook(h TraceHook) {
	vm.traceHook = h
}

// Interpret executes chunk until OP_RETURN or the end of the code. The value
// popped and printed by OP_RETURN is returned; a chunk without one yields nil.
func Interpret(chunk *bytecode.Chunk, out io.Writer) (value.Value, error) {
	machine := New()
	machine.SetOutput(out)
	return machine.Interpret(chunk)
}

// Interpret runs chunk on this VM. The first runtime error stops execution.
func (vm *VM) Interpret(chunk *bytecode.Chunk) (value.Value, error) {
	if vm.used {
		return value.Nil(), ErrVMUsed
	}
	vm.used = true
	if chunk == nil {
		return value.Nil(), fmt.Errorf("nil chunk")
	}
	vm.chunk = chunk
	log.Debugf("interpreting %d bytes, %d constants", len(chunk.Code), len(chunk.Consts))

	res, err := vm.run()
	if err != nil {
		log.Debugf("runtime error: %s", err)
	}
	return res, err
}

// Stack returns a copy of the live operand stack, bottom first.
func (vm *VM) Stack() []value.Value {
	out := make([]value.Value, vm.top)
	copy(out, vm.stack[:vm.top])
	return out
}

func (vm *VM) run() (value.Value, error) {
	code := vm.chunk.Code
	for vm.pc < len(code) {
		offset := vm.pc
		op := code[vm.pc]
		vm.pc++
		vm.trace(offset, op)

		if op == bytecode.OP_RETURN {
			v, err := vm.pop()
			if err != nil {
				return value.Nil(), vm.runtimeError(offset, op, err)
			}
			fmt.Fprintln(vm.out, v.String())
			return v, nil
		}
		if err := vm.step(op); err != nil {
			return value.Nil(), vm.runtimeError(offset, op, err)
		}
	}
	return value.Nil(), nil
}

func (vm *VM) step(op byte) error {
	switch op {
	case bytecode.OP_CONSTANT:
		v, err := vm.readConstant()
		if err != nil {
			return err
		}
		return vm.push(v)
	case bytecode.OP_TRUE:
		return vm.push(value.Bool(true))
	case bytecode.OP_FALSE:
		return vm.push(value.Bool(false))
	case bytecode.OP_NIL:
		return vm.push(value.Nil())
	case bytecode.OP_NEGATE:
		if vm.top == 0 {
			return ErrStackUnderflow
		}
		top := &vm.stack[vm.top-1]
		if top.Kind != value.KindNumber {
			return operandError("operand must be a number")
		}
		top.Num = -top.Num
		return nil
	case bytecode.OP_NOT:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		return vm.push(value.Bool(value.IsFalsy(v)))
	case bytecode.OP_ADD, bytecode.OP_SUBTRACT, bytecode.OP_MULTIPLY, bytecode.OP_DIVIDE,
		bytecode.OP_EQUAL, bytecode.OP_GREATER, bytecode.OP_LESS:
		b, err := vm.pop()
		if err != nil {
			return err
		}
		a, err := vm.pop()
		if err != nil {
			return err
		}
		res, err := binaryOp(op, a, b)
		if err != nil {
			return err
		}
		return vm.push(res)
	default:
		return &fault{msg: fmt.Sprintf("unknown opcode 0x%02X", op), err: ErrUnknownOpcode}
	}
}

func (vm *VM) readConstant() (value.Value, error) {
	code := vm.chunk.Code
	if vm.pc >= len(code) {
		return value.Nil(), &fault{msg: "missing constant operand", err: ErrBadConstant}
	}
	idx := int(code[vm.pc])
	vm.pc++
	if idx >= len(vm.chunk.Consts) {
		return value.Nil(), &fault{msg: fmt.Sprintf("constant index %d out of range", idx), err: ErrBadConstant}
	}
	return vm.chunk.Consts[idx], nil
}

func (vm *VM) push(v value.Value) error {
	if vm.top >= StackMax {
		return ErrStackOverflow
	}
	vm.stack[vm.top] = v
	vm.top++
	return nil
}

func (vm *VM) pop() (value.Value, error) {
	if vm.top == 0 {
		return value.Nil(), ErrStackUnderflow
	}
	vm.top--
	v := vm.stack[vm.top]
	vm.stack[vm.top] = value.Value{}
	return v, nil
}

func binaryOp(op byte, a, b value.Value) (value.Value, error) {
	switch op {
	case bytecode.OP_ADD:
		if a.Kind == value.KindString || b.Kind == value.KindString {
			return value.String(a.String() + b.String()), nil
		}
		if a.Kind == value.KindNumber && b.Kind == value.KindNumber {
			return value.Number(a.Num + b.Num), nil
		}
		return value.Nil(), operandError("operands must be two numbers or at least one string")
	case bytecode.OP_EQUAL:
		return value.Bool(value.Equal(a, b)), nil
	}

	if a.Kind != value.KindNumber || b.Kind != value.KindNumber {
		return value.Nil(), operandError("operands must be numbers")
	}
	switch op {
	case bytecode.OP_SUBTRACT:
		return value.Number(a.Num - b.Num), nil
	case bytecode.OP_MULTIPLY:
		return value.Number(a.Num * b.Num), nil
	case bytecode.OP_DIVIDE:
		return value.Number(a.Num / b.Num), nil
	case bytecode.OP_GREATER:
		return value.Bool(a.Num > b.Num), nil
	case bytecode.OP_LESS:
		return value.Bool(a.Num < b.Num), nil
	}
	return value.Nil(), &fault{msg: fmt.Sprintf("unsupported op 0x%02X", op), err: ErrUnknownOpcode}
}
