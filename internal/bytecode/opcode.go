package bytecode

import "fmt"

// OpCode enumerates bytecode operations. Only OP_CONSTANT carries an operand:
// one byte indexing the constant pool.
const (
	OP_CONSTANT byte = iota
	OP_TRUE
	OP_FALSE
	OP_NIL
	OP_RETURN
	OP_ADD
	OP_SUBTRACT
	OP_MULTIPLY
	OP_DIVIDE
	OP_NEGATE
	OP_NOT
	OP_EQUAL
	OP_GREATER
	OP_LESS
)

// OpInfo describes an opcode for the disassembler and for stack-effect checks.
type OpInfo struct {
	Name     string
	Operands int
	Pops     int
	Pushes   int
}

var opInfo = map[byte]OpInfo{
	OP_CONSTANT: {Name: "OP_CONSTANT", Operands: 1, Pushes: 1},
	OP_TRUE:     {Name: "OP_TRUE", Pushes: 1},
	OP_FALSE:    {Name: "OP_FALSE", Pushes: 1},
	OP_NIL:      {Name: "OP_NIL", Pushes: 1},
	OP_RETURN:   {Name: "OP_RETURN", Pops: 1},
	OP_ADD:      {Name: "OP_ADD", Pops: 2, Pushes: 1},
	OP_SUBTRACT: {Name: "OP_SUBTRACT", Pops: 2, Pushes: 1},
	OP_MULTIPLY: {Name: "OP_MULTIPLY", Pops: 2, Pushes: 1},
	OP_DIVIDE:   {Name: "OP_DIVIDE", Pops: 2, Pushes: 1},
	OP_NEGATE:   {Name: "OP_NEGATE", Pops: 1, Pushes: 1},
	OP_NOT:      {Name: "OP_NOT", Pops: 1, Pushes: 1},
	OP_EQUAL:    {Name: "OP_EQUAL", Pops: 2, Pushes: 1},
	OP_GREATER:  {Name: "OP_GREATER", Pops: 2, Pushes: 1},
	OP_LESS:     {Name: "OP_LESS", Pops: 2, Pushes: 1},
}

// LookupOp returns opcode metadata if op is part of the instruction set.
func LookupOp(op byte) (OpInfo, bool) {
	info, ok := opInfo[op]
	return info, ok
}

// OpName returns the mnemonic for op, or a hex placeholder for unknown bytes.
func OpName(op byte) string {
	if info, ok := opInfo[op]; ok {
		return info.Name
	}
	return fmt.Sprintf("OP_0x%02X", op)
}

// StackEffect reports the net change to stack depth caused by op.
func StackEffect(op byte) int {
	info := opInfo[op]
	return info.Pushes - info.Pops
}
