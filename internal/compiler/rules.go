package compiler

import "github.com/xirelogy/go-pratt/internal/token"

// Precedence orders operator binding strength, loosest first.
type Precedence int

const (
	PrecNone       Precedence = iota
	PrecAssignment            // =
	PrecOr                    // or
	PrecAnd                   // and
	PrecEquality              // == !=
	PrecComparison            // < > <= >=
	PrecTerm                  // + -
	PrecFactor                // * /
	PrecUnary                 // ! -
	PrecCall                  // . ()
	PrecPrimary
)

// parseFn tags a parse handler. fnNone marks the absence of a handler.
type parseFn int

const (
	fnNone parseFn = iota
	fnGrouping
	fnNumber
	fnString
	fnLiteral
	fnUnary
	fnBinary
)

type rule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

var rules = map[token.Type]rule{
	token.LParen:       {prefix: fnGrouping},
	token.Minus:        {prefix: fnUnary, infix: fnBinary, precedence: PrecTerm},
	token.Plus:         {infix: fnBinary, precedence: PrecTerm},
	token.Slash:        {infix: fnBinary, precedence: PrecFactor},
	token.Star:         {infix: fnBinary, precedence: PrecFactor},
	token.Bang:         {prefix: fnUnary},
	token.NotEqual:     {infix: fnBinary, precedence: PrecEquality},
	token.Equal:        {infix: fnBinary, precedence: PrecEquality},
	token.Greater:      {infix: fnBinary, precedence: PrecComparison},
	token.GreaterEqual: {infix: fnBinary, precedence: PrecComparison},
	token.Less:         {infix: fnBinary, precedence: PrecComparison},
	token.LessEqual:    {infix: fnBinary, precedence: PrecComparison},
	token.Number:       {prefix: fnNumber},
	token.String:       {prefix: fnString},
	token.True:         {prefix: fnLiteral},
	token.False:        {prefix: fnLiteral},
	token.Nil:          {prefix: fnLiteral},
}

// ruleFor is total: kinds without an entry get no handlers and PrecNone.
func ruleFor(t token.Type) rule {
	return rules[t]
}
