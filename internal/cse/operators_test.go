package cse

import "testing"

func TestApplyUnary(t *testing.T) {
	tests := []struct {
		op       string
		rand     Symbol
		expected string
	}{
		{"neg", &Int{Value: "7"}, "-7"},
		{"neg", &Int{Value: "-7"}, "7"},
		{"not", &Bool{Value: "true"}, "false"},
		{"not", &Bool{Value: "false"}, "true"},
		{"neg", &Str{Value: "x"}, ""},
		{"not", &Int{Value: "1"}, ""},
		{"bogus", &Int{Value: "1"}, ""},
	}

	for _, tt := range tests {
		if got := applyUnary(tt.op, tt.rand).Data(); got != tt.expected {
			t.Errorf("%s %s: expected %q, got %q", tt.op, tt.rand.Data(), tt.expected, got)
		}
	}
}

func TestApplyBinary(t *testing.T) {
	i := func(v string) Symbol { return &Int{Value: v} }
	b := func(v string) Symbol { return &Bool{Value: v} }

	tests := []struct {
		op       string
		rand1    Symbol
		rand2    Symbol
		expected string
	}{
		{"+", i("1"), i("2"), "3"},
		{"-", i("5"), i("3"), "2"},
		{"*", i("6"), i("7"), "42"},
		{"/", i("7"), i("2"), "3"},
		{"/", i("-7"), i("2"), "-3"}, // truncation toward zero
		{"/", i("7"), i("-2"), "-3"},
		{"/", i("1"), i("0"), ""},
		{"**", i("2"), i("10"), "1024"},
		{"**", i("3"), i("0"), "1"},
		{"**", i("2"), i("-1"), ""},
		{"&", b("true"), b("true"), "true"},
		{"&", b("true"), b("false"), "false"},
		{"or", b("false"), b("true"), "true"},
		{"or", b("false"), b("false"), "false"},
		{"eq", i("1"), i("1"), "true"},
		{"eq", &Str{Value: "a"}, &Str{Value: "b"}, "false"},
		{"ne", i("1"), i("2"), "true"},
		{"ls", i("1"), i("2"), "true"},
		{"le", i("2"), i("2"), "true"},
		{"gr", i("3"), i("2"), "true"},
		{"ge", i("1"), i("2"), "false"},
		{"+", i("1"), &Str{Value: "x"}, ""},
		{"&", b("true"), i("1"), ""},
		{"ls", &Str{Value: "a"}, i("1"), ""},
		{"bogus", i("1"), i("2"), ""},
	}

	for _, tt := range tests {
		got := applyBinary(tt.op, tt.rand1, tt.rand2).Data()
		if got != tt.expected {
			t.Errorf("%s %s %s: expected %q, got %q",
				tt.rand1.Data(), tt.op, tt.rand2.Data(), tt.expected, got)
		}
	}
}

func TestAugmentValueSemantics(t *testing.T) {
	base := &Tuple{Elems: []Symbol{&Int{Value: "1"}}}

	one := augment(base, &Int{Value: "2"})
	two := augment(base, &Int{Value: "3"})

	if len(base.Elems) != 1 {
		t.Errorf("augment must not mutate its operand; base now has %d elems", len(base.Elems))
	}
	if Format(one) != "(1, 2)" {
		t.Errorf("expected (1, 2), got %q", Format(one))
	}
	if Format(two) != "(1, 3)" {
		t.Errorf("expected (1, 3), got %q", Format(two))
	}
}

func TestAugmentExtendsTuples(t *testing.T) {
	base := &Tuple{Elems: []Symbol{&Int{Value: "1"}}}
	addend := &Tuple{Elems: []Symbol{&Int{Value: "2"}, &Int{Value: "3"}}}

	got := augment(base, addend)
	if Format(got) != "(1, 2, 3)" {
		t.Errorf("expected (1, 2, 3), got %q", Format(got))
	}

	if _, ok := augment(&Int{Value: "1"}, base).(*Err); !ok {
		t.Errorf("aug with non-tuple rand1 should be Err")
	}
}

func TestIntPow(t *testing.T) {
	tests := []struct {
		base, exp, expected int64
	}{
		{2, 0, 1},
		{2, 1, 2},
		{2, 10, 1024},
		{3, 4, 81},
		{-2, 3, -8},
		{10, 5, 100000},
	}

	for _, tt := range tests {
		if got := intPow(tt.base, tt.exp); got != tt.expected {
			t.Errorf("intPow(%d, %d): expected %d, got %d", tt.base, tt.exp, tt.expected, got)
		}
	}
}
