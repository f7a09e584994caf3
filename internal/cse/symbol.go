// Package cse implements the Control-Stack-Environment machine that
// evaluates a standardized RPAL syntax tree to a final value.
//
// The machine operates on a closed set of tagged symbols. Operand
// symbols (integers, strings, booleans, tuples) use value semantics:
// primitives construct fresh symbols instead of mutating their
// operands, so a value shared between stack positions or tuples can
// never be corrupted by an operator.
package cse

import "strconv"

// Symbol is a value the CSE machine manipulates. Every symbol carries
// a textual data tag; operands additionally carry their payload.
// Dispatch in the machine is a single type switch over the concrete
// variants defined in this file.
type Symbol interface {
	// Data returns the textual tag of the symbol. For operands this
	// is the payload text (integer digits, string content, "true").
	Data() string
}

// Int is an integer operand. The value is kept as literal text; the
// machine's operator helpers own the boundary with machine integers.
type Int struct {
	Value string
}

// Data returns the integer text.
func (i *Int) Data() string { return i.Value }

// IntFromInt64 builds an Int operand from a machine integer.
func IntFromInt64(v int64) *Int {
	return &Int{Value: strconv.FormatInt(v, 10)}
}

// Str is a string operand.
type Str struct {
	Value string
}

// Data returns the string content.
func (s *Str) Data() string { return s.Value }

// Bool is a truth-value operand, stored as the literal text "true" or
// "false".
type Bool struct {
	Value string
}

// Data returns "true" or "false".
func (b *Bool) Data() string { return b.Value }

// True reports whether the boolean holds "true".
func (b *Bool) True() bool { return b.Value == "true" }

// BoolFrom builds a Bool operand from a machine boolean.
func BoolFrom(v bool) *Bool {
	if v {
		return &Bool{Value: "true"}
	}
	return &Bool{Value: "false"}
}

// Dummy is the placeholder operand.
type Dummy struct{}

// Data returns "dummy".
func (d *Dummy) Data() string { return "dummy" }

// Tuple is an ordered n-tuple operand. Elements may themselves be
// tuples; the sequence is finite and flat.
type Tuple struct {
	Elems []Symbol
}

// Data returns "tup".
func (t *Tuple) Data() string { return "tup" }

// Identifier is a variable reference or binder. An Identifier on the
// stack is an unresolved name: environment lookup falls back to one,
// which is how primitive names such as Print or Stem reach
// gamma-application.
type Identifier struct {
	Name string
}

// Data returns the identifier text.
func (id *Identifier) Data() string { return id.Name }

// UnaryOp is one of the unary operators neg and not.
type UnaryOp struct {
	Op string
}

// Data returns the opcode.
func (u *UnaryOp) Data() string { return u.Op }

// BinaryOp is one of the binary operators
// + - * / ** & or eq ne ls le gr ge aug.
type BinaryOp struct {
	Op string
}

// Data returns the opcode.
func (b *BinaryOp) Data() string { return b.Op }

// Gamma is the application marker.
type Gamma struct{}

// Data returns "gamma".
func (g *Gamma) Data() string { return "gamma" }

// Lambda is a closure descriptor. Index is unique within a program and
// assigned at control-build time. Env is the index of the environment
// captured when the lambda is pushed onto the stack; it is set on a
// copy so closures over different frames never alias.
type Lambda struct {
	Index  int
	Env    int
	Params []string
	Body   *Delta
}

// Data returns "lambda".
func (l *Lambda) Data() string { return "lambda" }

// Delta is a deferred block of control symbols with a unique index.
type Delta struct {
	Index int
	Body  []Symbol
}

// Data returns "delta".
func (d *Delta) Data() string { return "delta" }

// Beta is the conditional branch marker. It chooses between the two
// delta branches built ahead of it on the control.
type Beta struct{}

// Data returns "beta".
func (b *Beta) Data() string { return "beta" }

// Tau is the tuple constructor marker taking the next N stack items.
type Tau struct {
	N int
}

// Data returns "tau".
func (t *Tau) Data() string { return "tau" }

// Cond is the inline condition block of a conditional (the B symbol):
// its body evaluates the condition before Beta branches.
type Cond struct {
	Body []Symbol
}

// Data returns "b".
func (c *Cond) Data() string { return "b" }

// Eta is the recursion knot created by applying Ystar to a lambda. It
// copies the lambda's index, captured environment and sole bound
// identifier, and keeps a back-pointer to the lambda so each
// gamma-application against it can unfold into two applications.
type Eta struct {
	Index int
	Env   int
	Ident string
	Fn    *Lambda
}

// Data returns "eta".
func (e *Eta) Data() string { return "eta" }

// Ystar is the fixed-point operator.
type Ystar struct{}

// Data returns "<Y*>".
func (y *Ystar) Data() string { return "<Y*>" }

// Err is the evaluation-error symbol. It appears as the result of a
// failed operation or application, and the builder also emits it in
// place of an unknown node tag. The formatter renders it as the empty
// string.
type Err struct{}

// Data returns the empty string.
func (e *Err) Data() string { return "" }
