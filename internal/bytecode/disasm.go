package bytecode

import (
	"fmt"
	"io"
	"strconv"
)

// Disassembler formats bytecode as a readable assembly-style dump.
type Disassembler struct {
	w       io.Writer
	printed bool
}

// NewDisassembler constructs a disassembler that writes to w.
func NewDisassembler(w io.Writer) *Disassembler {
	return &Disassembler{w: w}
}

// DisassembleChunk emits a header followed by one line per instruction:
// offset, source line ("|" when unchanged), mnemonic and, for constants, the
// pool index and the constant's display text.
func (d *Disassembler) DisassembleChunk(label string, chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("nil chunk")
	}
	instrs, err := Decode(chunk)
	if err != nil {
		return err
	}
	d.startSection()
	if label == "" {
		label = "<chunk>"
	}
	fmt.Fprintf(d.w, "== %s ==\n", label)
	prevLine := -1
	for _, ins := range instrs {
		lineStr := "-"
		switch {
		case ins.Line > 0 && ins.Line == prevLine:
			lineStr = "|"
		case ins.Line > 0:
			lineStr = strconv.Itoa(ins.Line)
		}
		prevLine = ins.Line
		fmt.Fprintf(d.w, "%04d %4s %-16s", ins.Offset, lineStr, OpName(ins.Op))
		if ins.Operand >= 0 {
			fmt.Fprintf(d.w, " %4d '%s'", ins.Operand, chunk.Consts[ins.Operand].String())
		}
		fmt.Fprintln(d.w)
	}
	return nil
}

func (d *Disassembler) startSection() {
	if d.printed {
		fmt.Fprintln(d.w)
	}
	d.printed = true
}
