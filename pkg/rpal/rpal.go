// Package rpal is the embedding API for the RPAL interpreter. It wires
// the internal pipeline (lexer, parser, standardizer, CSE machine)
// into a small surface for host programs:
//
//	answer, err := rpal.Run("let f x = x + 1 in f 41")
//
// or, keeping the compiled program around:
//
//	prog, err := rpal.Compile(source)
//	answer, err := prog.Run()
package rpal

import (
	goerrors "errors"
	"io"

	"github.com/dilanka-heshan/go-rpal/internal/ast"
	"github.com/dilanka-heshan/go-rpal/internal/cse"
	"github.com/dilanka-heshan/go-rpal/internal/lexer"
	"github.com/dilanka-heshan/go-rpal/internal/parser"
)

// Program is a parsed and standardized RPAL program, ready to
// evaluate. A Program may be run any number of times; each run builds
// a fresh machine.
type Program struct {
	tree *ast.Node
}

// parse runs the lexer and parser over source, returning the raw tree.
func parse(source string) (*ast.Node, error) {
	l := lexer.New(source)
	p := parser.New(l)
	tree := p.Parse()

	var errs []error
	for _, e := range l.Errors() {
		errs = append(errs, e)
	}
	for _, e := range p.Errors() {
		errs = append(errs, e)
	}
	if len(errs) > 0 {
		return nil, goerrors.Join(errs...)
	}
	return tree, nil
}

// Compile parses and standardizes source.
func Compile(source string) (*Program, error) {
	tree, err := parse(source)
	if err != nil {
		return nil, err
	}
	return &Program{tree: ast.Standardize(tree)}, nil
}

// SAST returns the standardized tree in dotted-prefix form.
func (p *Program) SAST() string {
	return p.tree.String()
}

// Run builds a CSE machine for the program and evaluates it to its
// final answer. Print output is discarded; use RunWithOutput to
// capture it.
func (p *Program) Run() (string, error) {
	return p.RunWithOutput(io.Discard)
}

// RunWithOutput evaluates the program, routing Print output to w.
func (p *Program) RunWithOutput(w io.Writer) (string, error) {
	b := cse.NewBuilder()
	machine := b.Build(p.tree, cse.WithOutput(w))
	if errs := b.Errors(); len(errs) > 0 {
		return "", goerrors.Join(errs...)
	}
	return machine.Answer()
}

// Run compiles and evaluates source in one step.
func Run(source string) (string, error) {
	prog, err := Compile(source)
	if err != nil {
		return "", err
	}
	return prog.Run()
}

// AST parses source and returns the raw tree in dotted-prefix form,
// before standardization.
func AST(source string) (string, error) {
	tree, err := parse(source)
	if err != nil {
		return "", err
	}
	return tree.String(), nil
}

// SAST parses and standardizes source and returns the standardized
// tree in dotted-prefix form.
func SAST(source string) (string, error) {
	prog, err := Compile(source)
	if err != nil {
		return "", err
	}
	return prog.SAST(), nil
}
