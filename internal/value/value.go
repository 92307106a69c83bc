package value

import (
	"math"
	"strconv"
)

type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
)

// Value is the tagged union the VM computes with. Only the field matching
// Kind is meaningful.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
	B    bool
}

func Nil() Value { return Value{Kind: KindNil} }
func Bool(b bool) Value {
	return Value{Kind: KindBool, B: b}
}
func Number(n float64) Value {
	return Value{Kind: KindNumber, Num: n}
}
func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// IsFalsy reports whether v counts as false. Only nil and false do; 0 and ""
// are truthy.
func IsFalsy(v Value) bool {
	switch v.Kind {
	case KindNil:
		return true
	case KindBool:
		return !v.B
	default:
		return false
	}
}

// Equal compares by content. Values of different kinds are never equal.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNil:
		return true
	case KindBool:
		return a.B == b.B
	case KindNumber:
		return a.Num == b.Num
	case KindString:
		return a.Str == b.Str
	default:
		return false
	}
}

// String returns the display text used by Return and string concatenation.
func (v Value) String() string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.B {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.Num)
	case KindString:
		return v.Str
	default:
		return "<invalid>"
	}
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
