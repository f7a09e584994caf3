package cse

import (
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestProgramFixtures evaluates a set of representative RPAL programs
// and snapshots their answers. The fixtures cover every surface form
// the standardizer rewrites and the primitives Stem, Stern, Conc,
// Order, Istuple, Isinteger, Isstring, Null and Itos.
func TestProgramFixtures(t *testing.T) {
	fixtures := []struct {
		name   string
		source string
	}{
		{"identity_arithmetic", "let f x = x + 1 in f 41"},
		{"conditional_abs", "let abs n = n ls 0 -> neg n | n in abs (neg 7)"},
		{"tuple_index_order", "let t = 1,2,3 in (t 2) + (Order t)"},
		{"factorial", "let rec fact n = n eq 0 -> 1 | n * fact(n-1) in fact 5"},
		{"string_primitives", "Conc (Stem 'Hello') (Stern 'World')"},
		{"type_predicates", "Istuple (1,2), Istuple 3, Isinteger 5, Isstring 'x'"},
		{"fibonacci", "let rec fib n = n ls 2 -> n | fib(n-1) + fib(n-2) in fib 12"},
		{"nested_lets", "let x = 1 in let y = x + 1 in let z = y + 1 in x, y, z"},
		{"curried_add", "let add x y = x + y in let inc = add 1 in inc 41"},
		{"tuple_param", "(fn (x,y) . x * y) (6,7)"},
		{"where_form", "(x ** y where y = 5) where x = 2"},
		{"within_form", "let x = 2 within y = x * 3 in y"},
		{"simultaneous_defs", "let x = 1 and y = 2 and z = 3 in x + y + z"},
		{"at_operator", "let Add x y = x + y in 2 @ Add 3"},
		{"aug_chain", "nil aug 1 aug 'two' aug true"},
		{"nested_tuples", "(1,2), (3,(4,5))"},
		{"boolean_logic", "not (true & false) or false"},
		{"string_null_itos", "Null nil, Null (1,2), Itos 42"},
	}

	for _, fixture := range fixtures {
		t.Run(fixture.name, func(t *testing.T) {
			answer := eval(t, fixture.source)
			snaps.MatchSnapshot(t, answer)
		})
	}
}

func TestMain(m *testing.M) {
	v := m.Run()

	// Clean obsolete snapshots when running the full suite.
	snaps.Clean(m)

	os.Exit(v)
}
