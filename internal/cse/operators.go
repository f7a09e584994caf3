package cse

import "strconv"

// applyUnary evaluates a unary operator. Type mismatches and
// unrecognized opcodes yield Err.
func applyUnary(op string, rand Symbol) Symbol {
	switch op {
	case "neg":
		v, ok := intOperand(rand)
		if !ok {
			return &Err{}
		}
		return IntFromInt64(-v)
	case "not":
		b, ok := rand.(*Bool)
		if !ok {
			return &Err{}
		}
		return BoolFrom(!b.True())
	default:
		return &Err{}
	}
}

// applyBinary evaluates a binary operator. rand1 was the top of stack
// at operator time, rand2 the item below it, so rand1 is the left
// operand of the source expression.
func applyBinary(op string, rand1, rand2 Symbol) Symbol {
	switch op {
	case "+", "-", "*", "/", "**":
		v1, ok1 := intOperand(rand1)
		v2, ok2 := intOperand(rand2)
		if !ok1 || !ok2 {
			return &Err{}
		}
		return arith(op, v1, v2)

	case "&", "or":
		b1, ok1 := rand1.(*Bool)
		b2, ok2 := rand2.(*Bool)
		if !ok1 || !ok2 {
			return &Err{}
		}
		if op == "&" {
			return BoolFrom(b1.True() && b2.True())
		}
		return BoolFrom(b1.True() || b2.True())

	case "eq":
		return BoolFrom(rand1.Data() == rand2.Data())
	case "ne":
		return BoolFrom(rand1.Data() != rand2.Data())

	case "ls", "le", "gr", "ge":
		v1, ok1 := intOperand(rand1)
		v2, ok2 := intOperand(rand2)
		if !ok1 || !ok2 {
			return &Err{}
		}
		switch op {
		case "ls":
			return BoolFrom(v1 < v2)
		case "le":
			return BoolFrom(v1 <= v2)
		case "gr":
			return BoolFrom(v1 > v2)
		default:
			return BoolFrom(v1 >= v2)
		}

	case "aug":
		return augment(rand1, rand2)

	default:
		return &Err{}
	}
}

// arith evaluates integer arithmetic. Division truncates toward zero,
// which Go's integer division does natively. Division by zero and
// negative exponents yield Err.
func arith(op string, v1, v2 int64) Symbol {
	switch op {
	case "+":
		return IntFromInt64(v1 + v2)
	case "-":
		return IntFromInt64(v1 - v2)
	case "*":
		return IntFromInt64(v1 * v2)
	case "/":
		if v2 == 0 {
			return &Err{}
		}
		return IntFromInt64(v1 / v2)
	default: // **
		if v2 < 0 {
			return &Err{}
		}
		return IntFromInt64(intPow(v1, v2))
	}
}

// intPow computes base**exp by iterated squaring on int64.
func intPow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

// augment appends to a tuple, building a fresh tuple so shared values
// are never mutated. A tuple rand2 has its elements extended in;
// anything else is appended as a single element.
func augment(rand1, rand2 Symbol) Symbol {
	tup, ok := rand1.(*Tuple)
	if !ok {
		return &Err{}
	}
	elems := make([]Symbol, len(tup.Elems), len(tup.Elems)+1)
	copy(elems, tup.Elems)
	if t2, ok := rand2.(*Tuple); ok {
		elems = append(elems, t2.Elems...)
	} else {
		elems = append(elems, rand2)
	}
	return &Tuple{Elems: elems}
}

// intOperand reads an Int operand's machine value.
func intOperand(s Symbol) (int64, bool) {
	i, ok := s.(*Int)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(i.Value, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
