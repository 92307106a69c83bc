package bytecode

import (
	"bytes"
	"testing"

	"github.com/fxamacker/cbor/v2"

	"github.com/xirelogy/go-pratt/internal/value"
)

func TestImageRoundTrip(t *testing.T) {
	c := sampleChunk(t)
	data, err := EncodeImage(c)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	again, err := EncodeImage(c)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Fatalf("canonical encoding should be deterministic")
	}
	got, err := DecodeImage(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(got.Code, c.Code) {
		t.Fatalf("code mismatch: %v vs %v", got.Code, c.Code)
	}
	if len(got.Consts) != len(c.Consts) {
		t.Fatalf("expected %d constants, got %d", len(c.Consts), len(got.Consts))
	}
	for i := range c.Consts {
		if !value.Equal(got.Consts[i], c.Consts[i]) {
			t.Fatalf("constant %d: expected %v, got %v", i, c.Consts[i], got.Consts[i])
		}
	}
	if got.LineAt(3) != 2 {
		t.Fatalf("line table not preserved: %v", got.Lines)
	}
}

func TestDecodeImageRejectsInvalid(t *testing.T) {
	if _, err := DecodeImage([]byte("not cbor")); err == nil {
		t.Fatalf("expected error for garbage input")
	}

	wrongMagic, err := cbor.Marshal(image{Magic: "other", Version: ImageVersion})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := DecodeImage(wrongMagic); err == nil {
		t.Fatalf("expected error for wrong magic")
	}

	badOperand, err := cbor.Marshal(image{
		Magic:   imageMagic,
		Version: ImageVersion,
		Code:    []byte{OP_CONSTANT, 3, OP_RETURN},
		Consts:  []imageConst{{Kind: value.KindNumber, Num: 1}},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := DecodeImage(badOperand); err == nil {
		t.Fatalf("expected error for out-of-range constant operand")
	}
}
