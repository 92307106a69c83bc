package bytecode

import (
	"errors"

	"github.com/xirelogy/go-pratt/internal/value"
)

// MaxConstants bounds the constant pool; indexes must fit the one-byte operand.
const MaxConstants = 256

// ErrConstantPoolFull is returned by AddConstant once MaxConstants entries exist.
var ErrConstantPoolFull = errors.New("too many constants in one chunk")

// Chunk is a compiled bytecode sequence with its constant pool.
type Chunk struct {
	Code   []byte
	Consts []value.Value
	Lines  []LineInfo
}

// LineInfo maps bytecode offsets to source lines (start-inclusive).
type LineInfo struct {
	Offset int
	Line   int
}

// Write appends a byte produced by source line line.
func (c *Chunk) Write(b byte, line int) {
	c.recordLine(line)
	c.Code = append(c.Code, b)
}

// AddConstant appends v to the pool and returns its index.
func (c *Chunk) AddConstant(v value.Value) (byte, error) {
	if len(c.Consts) >= MaxConstants {
		return 0, ErrConstantPoolFull
	}
	c.Consts = append(c.Consts, v)
	return byte(len(c.Consts) - 1), nil
}

// LineAt returns the source line for the instruction at offset, or 0.
func (c *Chunk) LineAt(offset int) int {
	if offset < 0 {
		return 0
	}
	line := 0
	for _, info := range c.Lines {
		if offset < info.Offset {
			break
		}
		line = info.Line
	}
	return line
}

func (c *Chunk) recordLine(line int) {
	if line <= 0 {
		return
	}
	if n := len(c.Lines); n > 0 && c.Lines[n-1].Line == line {
		return
	}
	c.Lines = append(c.Lines, LineInfo{Offset: len(c.Code), Line: line})
}
