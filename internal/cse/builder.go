package cse

import (
	"fmt"
	"strings"

	"github.com/dilanka-heshan/go-rpal/internal/ast"
)

// binaryOps is the closed set of binary opcodes the machine executes.
var binaryOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "**": true,
	"&": true, "or": true, "eq": true, "ne": true,
	"ls": true, "le": true, "gr": true, "ge": true, "aug": true,
}

// Builder flattens a standardized syntax tree into the initial control
// of a Machine. Lambda and delta indices come from two monotonic
// counters held here, so index assignment is reproducible: indices are
// handed out in the order nodes are first materialized during the
// pre-order flattening.
type Builder struct {
	e0          *Frame
	lambdaIndex int
	deltaIndex  int
	errs        []error
}

// NewBuilder creates a Builder with a fresh root environment e0.
func NewBuilder() *Builder {
	return &Builder{
		e0:          NewFrame(0, nil),
		lambdaIndex: 1,
	}
}

// Errors returns the diagnostics recorded while flattening (unknown
// node tags, malformed binders).
func (b *Builder) Errors() []error {
	return b.errs
}

// Build flattens the standardized tree and returns a machine seeded
// with control [e0, delta_root], stack [e0] and environment list [e0].
func (b *Builder) Build(root *ast.Node, opts ...MachineOption) *Machine {
	rootDelta := b.buildDelta(root)
	return newMachine(
		[]Symbol{b.e0, rootDelta},
		[]Symbol{b.e0},
		[]*Frame{b.e0},
		opts...,
	)
}

// buildDelta wraps the pre-order flattening of a node in a Delta with
// a fresh index.
func (b *Builder) buildDelta(node *ast.Node) *Delta {
	d := &Delta{Index: b.deltaIndex}
	b.deltaIndex++
	d.Body = b.flatten(node)
	return d
}

// buildCond wraps the flattening of a condition expression in an
// inline B block.
func (b *Builder) buildCond(node *ast.Node) *Cond {
	return &Cond{Body: b.flatten(node)}
}

// buildLambda materializes a closure descriptor: a fresh lambda index,
// the bound-identifier list parsed from the binder child, and a delta
// around the body. The environment field stays unset until the machine
// captures a frame at closure time.
func (b *Builder) buildLambda(node *ast.Node) *Lambda {
	lam := &Lambda{Index: b.lambdaIndex, Env: -1}
	b.lambdaIndex++

	binder, body := node.Children[0], node.Children[1]
	switch {
	case binder.Label == ",":
		for _, child := range binder.Children {
			name, ok := ast.IdentifierName(child.Label)
			if !ok {
				b.errs = append(b.errs, fmt.Errorf("malformed binder %q in lambda", child.Label))
				continue
			}
			lam.Params = append(lam.Params, name)
		}
	case binder.Label == "()":
		// Zero-parameter lambda: applied to nil, binds nothing.
	default:
		name, ok := ast.IdentifierName(binder.Label)
		if !ok {
			b.errs = append(b.errs, fmt.Errorf("malformed binder %q in lambda", binder.Label))
		} else {
			lam.Params = []string{name}
		}
	}

	lam.Body = b.buildDelta(body)
	return lam
}

// flatten produces the pre-order symbol sequence of a node. Spliced
// onto a control (top at the end), operands therefore evaluate before
// the operator that consumes them.
func (b *Builder) flatten(node *ast.Node) []Symbol {
	switch node.Label {
	case "lambda":
		return []Symbol{b.buildLambda(node)}

	case "->":
		// Emit then-delta, else-delta, beta, condition block, in that
		// order: the condition block lands on top of the control and
		// runs first, then beta chooses which delta survives.
		cond, then, els := node.Children[0], node.Children[1], node.Children[2]
		return []Symbol{
			b.buildDelta(then),
			b.buildDelta(els),
			&Beta{},
			b.buildCond(cond),
		}

	default:
		symbols := []Symbol{b.symbolFor(node)}
		for _, child := range node.Children {
			symbols = append(symbols, b.flatten(child)...)
		}
		return symbols
	}
}

// symbolFor maps a standardized node label to its machine symbol.
func (b *Builder) symbolFor(node *ast.Node) Symbol {
	label := node.Label

	switch {
	case label == "neg" || label == "not":
		return &UnaryOp{Op: label}
	case binaryOps[label]:
		return &BinaryOp{Op: label}
	case label == "gamma":
		return &Gamma{}
	case label == "tau":
		return &Tau{N: len(node.Children)}
	case label == "<Y*>":
		return &Ystar{}
	case label == "<NIL>":
		return &Tuple{}
	case label == "<dummy>":
		return &Dummy{}
	case label == "<TRUE_VALUE:true>":
		return &Bool{Value: "true"}
	case label == "<TRUE_VALUE:false>":
		return &Bool{Value: "false"}
	}

	if name, ok := ast.IdentifierName(label); ok {
		return &Identifier{Name: name}
	}
	if strings.HasPrefix(label, "<INTEGER:") && strings.HasSuffix(label, ">") {
		return &Int{Value: label[len("<INTEGER:") : len(label)-1]}
	}
	if strings.HasPrefix(label, "<STRING:'") && strings.HasSuffix(label, "'>") {
		return &Str{Value: label[len("<STRING:'") : len(label)-2]}
	}

	b.errs = append(b.errs, fmt.Errorf("unknown node tag %q", label))
	return &Err{}
}
