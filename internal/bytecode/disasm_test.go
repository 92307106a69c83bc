package bytecode

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/xirelogy/go-pratt/internal/value"
)

func sampleChunk(t *testing.T) *Chunk {
	t.Helper()
	c := &Chunk{}
	one, err := c.AddConstant(value.Number(1.5))
	if err != nil {
		t.Fatalf("add constant: %v", err)
	}
	str, err := c.AddConstant(value.String("hi"))
	if err != nil {
		t.Fatalf("add constant: %v", err)
	}
	c.Write(OP_CONSTANT, 1)
	c.Write(one, 1)
	c.Write(OP_NEGATE, 1)
	c.Write(OP_CONSTANT, 2)
	c.Write(str, 2)
	c.Write(OP_ADD, 2)
	c.Write(OP_NIL, 2)
	c.Write(OP_EQUAL, 2)
	c.Write(OP_NOT, 2)
	c.Write(OP_RETURN, 2)
	return c
}

func TestDisassembleFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := NewDisassembler(&buf).DisassembleChunk("test", sampleChunk(t)); err != nil {
		t.Fatalf("disassemble: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "== test ==" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "0000    1 OP_CONSTANT") || !strings.HasSuffix(lines[1], "0 '1.5'") {
		t.Fatalf("unexpected constant line %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "0002    | OP_NEGATE") {
		t.Fatalf("unexpected negate line %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "0003    2 OP_CONSTANT") || !strings.HasSuffix(lines[3], "1 'hi'") {
		t.Fatalf("unexpected string constant line %q", lines[3])
	}
	if len(lines) != 9 {
		t.Fatalf("expected 9 lines, got %d:\n%s", len(lines), buf.String())
	}
}

// Every OP_CONSTANT line in the listing names the same opcode and operand
// that Decode reports for that offset.
func TestDisassembleRoundTrip(t *testing.T) {
	c := sampleChunk(t)
	instrs, err := Decode(c)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var buf bytes.Buffer
	if err := NewDisassembler(&buf).DisassembleChunk("", c); err != nil {
		t.Fatalf("disassemble: %v", err)
	}
	listing := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")[1:]
	if len(listing) != len(instrs) {
		t.Fatalf("expected %d listing lines, got %d", len(instrs), len(listing))
	}
	for i, ins := range instrs {
		fields := strings.Fields(listing[i])
		offset, err := strconv.Atoi(fields[0])
		if err != nil || offset != ins.Offset {
			t.Fatalf("line %d: offset %q does not match %d", i, fields[0], ins.Offset)
		}
		if fields[2] != OpName(ins.Op) {
			t.Fatalf("line %d: expected %s, got %s", i, OpName(ins.Op), fields[2])
		}
		if ins.Op != OP_CONSTANT {
			continue
		}
		idx, err := strconv.Atoi(fields[3])
		if err != nil || idx != ins.Operand {
			t.Fatalf("line %d: operand %q does not match %d", i, fields[3], ins.Operand)
		}
	}
}

func TestDisassembleRejectsBadChunk(t *testing.T) {
	var buf bytes.Buffer
	dis := NewDisassembler(&buf)
	if err := dis.DisassembleChunk("bad", &Chunk{Code: []byte{OP_CONSTANT, 0}}); err == nil {
		t.Fatalf("expected error for out-of-range constant")
	}
	if err := dis.DisassembleChunk("bad", &Chunk{Code: []byte{0x7F}}); err == nil {
		t.Fatalf("expected error for unknown opcode")
	}
	if err := dis.DisassembleChunk("bad", &Chunk{Code: []byte{OP_CONSTANT}}); err == nil {
		t.Fatalf("expected error for truncated operand")
	}
}
