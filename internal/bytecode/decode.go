package bytecode

import "fmt"

// Instruction is one decoded opcode with its operand, if any.
type Instruction struct {
	Offset  int
	Op      byte
	Operand int // constant index for OP_CONSTANT, -1 otherwise
	Line    int
}

// Decode walks the chunk and returns its instructions. It fails on unknown
// opcodes, truncated operands and constant indexes outside the pool.
func Decode(c *Chunk) ([]Instruction, error) {
	if c == nil {
		return nil, fmt.Errorf("nil chunk")
	}
	code := c.Code
	out := make([]Instruction, 0, len(code))
	for ip := 0; ip < len(code); {
		offset := ip
		op := code[ip]
		ip++
		info, ok := LookupOp(op)
		if !ok {
			return out, fmt.Errorf("offset %04d: unknown opcode 0x%02X", offset, op)
		}
		ins := Instruction{Offset: offset, Op: op, Operand: -1, Line: c.LineAt(offset)}
		if info.Operands > 0 {
			idx, err := readU8(code, &ip)
			if err != nil {
				return out, fmt.Errorf("offset %04d: %w", offset, err)
			}
			if int(idx) >= len(c.Consts) {
				return out, fmt.Errorf("offset %04d: const index out of range: %d", offset, idx)
			}
			ins.Operand = int(idx)
		}
		out = append(out, ins)
	}
	return out, nil
}

func readU8(code []byte, ip *int) (byte, error) {
	if *ip >= len(code) {
		return 0, fmt.Errorf("unexpected end of bytecode")
	}
	val := code[*ip]
	*ip = *ip + 1
	return val, nil
}
