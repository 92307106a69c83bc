package value

import (
	"math"
	"testing"
)

func TestIsFalsy(t *testing.T) {
	tests := []struct {
		v     Value
		falsy bool
	}{
		{Nil(), true},
		{Bool(false), true},
		{Bool(true), false},
		{Number(0), false},
		{Number(-1), false},
		{String(""), false},
		{String("x"), false},
	}
	for _, tt := range tests {
		if got := IsFalsy(tt.v); got != tt.falsy {
			t.Fatalf("IsFalsy(%#v): expected %v, got %v", tt.v, tt.falsy, got)
		}
	}
}

func TestEqualIsTagStrict(t *testing.T) {
	if Equal(Number(1), String("1")) {
		t.Fatalf("number and string must not be equal")
	}
	if Equal(Nil(), Bool(false)) {
		t.Fatalf("nil and false must not be equal")
	}
	if Equal(Number(0), Bool(false)) {
		t.Fatalf("0 and false must not be equal")
	}
	if !Equal(String("ab"), String("a"+"b")) {
		t.Fatalf("strings compare by content")
	}
	if !Equal(Nil(), Nil()) {
		t.Fatalf("nil equals nil")
	}
	if Equal(Number(math.NaN()), Number(math.NaN())) {
		t.Fatalf("NaN follows float comparison")
	}
}

func TestDisplayText(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Nil(), "nil"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Number(3), "3"},
		{Number(-2.5), "-2.5"},
		{Number(0.1), "0.1"},
		{Number(1e21), "1000000000000000000000"},
		{Number(math.Inf(1)), "inf"},
		{Number(math.Inf(-1)), "-inf"},
		{Number(math.NaN()), "NaN"},
		{String("hi"), "hi"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Fatalf("display %#v: expected %q, got %q", tt.v, tt.want, got)
		}
	}
}
