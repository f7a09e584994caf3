package cse

import "strings"

// Format renders a final machine value as text. Tuples render
// recursively as "(e1, e2, ..., en)"; every other symbol renders as
// its data tag. Err renders as the empty string.
func Format(s Symbol) string {
	if tup, ok := s.(*Tuple); ok {
		parts := make([]string, len(tup.Elems))
		for i, elem := range tup.Elems {
			parts[i] = Format(elem)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
	return s.Data()
}
