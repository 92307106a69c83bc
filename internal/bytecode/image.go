package bytecode

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/xirelogy/go-pratt/internal/value"
)

const (
	imageMagic   = "pratt"
	ImageVersion = 1
)

// image is the on-disk form of a compiled chunk.
type image struct {
	Magic   string       `cbor:"1,keyasint"`
	Version int          `cbor:"2,keyasint"`
	Code    []byte       `cbor:"3,keyasint"`
	Consts  []imageConst `cbor:"4,keyasint"`
	Lines   []imageLine  `cbor:"5,keyasint,omitempty"`
}

type imageConst struct {
	Kind value.Kind `cbor:"1,keyasint"`
	Num  float64    `cbor:"2,keyasint,omitempty"`
	Str  string     `cbor:"3,keyasint,omitempty"`
	B    bool       `cbor:"4,keyasint,omitempty"`
}

type imageLine struct {
	Offset int `cbor:"1,keyasint"`
	Line   int `cbor:"2,keyasint"`
}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("bytecode: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// EncodeImage serializes a chunk to canonical CBOR.
func EncodeImage(c *Chunk) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("nil chunk")
	}
	img := image{
		Magic:   imageMagic,
		Version: ImageVersion,
		Code:    c.Code,
		Consts:  make([]imageConst, len(c.Consts)),
		Lines:   make([]imageLine, len(c.Lines)),
	}
	for i, v := range c.Consts {
		img.Consts[i] = imageConst{Kind: v.Kind, Num: v.Num, Str: v.Str, B: v.B}
	}
	for i, l := range c.Lines {
		img.Lines[i] = imageLine{Offset: l.Offset, Line: l.Line}
	}
	return cborEncMode.Marshal(img)
}

// DecodeImage deserializes a chunk and validates every instruction, so the
// result is safe to hand to the VM.
func DecodeImage(data []byte) (*Chunk, error) {
	var img image
	if err := cbor.Unmarshal(data, &img); err != nil {
		return nil, fmt.Errorf("bytecode: unmarshal image: %w", err)
	}
	if img.Magic != imageMagic {
		return nil, fmt.Errorf("bytecode: not a compiled image")
	}
	if img.Version != ImageVersion {
		return nil, fmt.Errorf("bytecode: unsupported image version %d", img.Version)
	}
	if len(img.Consts) > MaxConstants {
		return nil, fmt.Errorf("bytecode: %w", ErrConstantPoolFull)
	}
	c := &Chunk{
		Code:   img.Code,
		Consts: make([]value.Value, len(img.Consts)),
	}
	for i, ic := range img.Consts {
		switch ic.Kind {
		case value.KindNil, value.KindBool, value.KindNumber, value.KindString:
		default:
			return nil, fmt.Errorf("bytecode: constant %d has unknown kind %d", i, ic.Kind)
		}
		c.Consts[i] = value.Value{Kind: ic.Kind, Num: ic.Num, Str: ic.Str, B: ic.B}
	}
	for _, l := range img.Lines {
		c.Lines = append(c.Lines, LineInfo{Offset: l.Offset, Line: l.Line})
	}
	if _, err := Decode(c); err != nil {
		return nil, fmt.Errorf("bytecode: invalid image: %w", err)
	}
	return c, nil
}
