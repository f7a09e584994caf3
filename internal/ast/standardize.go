package ast

// Standardize rewrites the raw syntax tree into the canonical subset
// the CSE machine's control builder understands: lambda, gamma, ->,
// tau, <Y*>, operators and leaf tags. Surface forms (let, where, fn
// with multiple parameters, function_form, within, and, rec, @) are
// eliminated.
//
// The rewrite is bottom-up: children are standardized first, so by the
// time a let or within node is visited its definition child has
// already been reduced to an '=' node. The returned node may be a new
// node or the receiver with rewritten children.
func Standardize(n *Node) *Node {
	for i, child := range n.Children {
		n.Children[i] = Standardize(child)
	}

	switch n.Label {
	case "let":
		// let (= X E) P  =>  gamma (lambda X P) E
		def, body := n.Children[0], n.Children[1]
		x, e := def.Children[0], def.Children[1]
		return New("gamma", New("lambda", x, body), e)

	case "where":
		// where P (= X E)  =>  gamma (lambda X P) E
		body, def := n.Children[0], n.Children[1]
		x, e := def.Children[0], def.Children[1]
		return New("gamma", New("lambda", x, body), e)

	case "lambda":
		// fn V1 ... Vn . E  =>  lambda V1 (... (lambda Vn E))
		// A ','-node binder counts as a single parameter; the machine
		// binds its identifiers positionally from a tuple argument.
		return curry(n.Children)

	case "function_form":
		// P V1 ... Vn = E  =>  = P (lambda V1 (... (lambda Vn E)))
		name := n.Children[0]
		return New("=", name, curry(n.Children[1:]))

	case "within":
		// (= X1 E1) within (= X2 E2)  =>  = X2 (gamma (lambda X1 E2) E1)
		d1, d2 := n.Children[0], n.Children[1]
		x1, e1 := d1.Children[0], d1.Children[1]
		x2, e2 := d2.Children[0], d2.Children[1]
		return New("=", x2, New("gamma", New("lambda", x1, e2), e1))

	case "and":
		// and (= X1 E1) ... (= Xn En)  =>  = (, X1...Xn) (tau E1...En)
		binder := New(",")
		exprs := New("tau")
		for _, def := range n.Children {
			binder.Add(def.Children[0])
			exprs.Add(def.Children[1])
		}
		return New("=", binder, exprs)

	case "rec":
		// rec (= X E)  =>  = X (gamma <Y*> (lambda X E))
		def := n.Children[0]
		x, e := def.Children[0], def.Children[1]
		return New("=", x, New("gamma", Ystar(), New("lambda", cloneLeaf(x), e)))

	case "@":
		// E1 @ N E2  =>  gamma (gamma N E1) E2
		e1, name, e2 := n.Children[0], n.Children[1], n.Children[2]
		return New("gamma", New("gamma", name, e1), e2)

	default:
		return n
	}
}

// curry folds a parameter list plus body into nested unary lambdas.
// params is V1...Vn followed by the body expression.
func curry(params []*Node) *Node {
	body := params[len(params)-1]
	for i := len(params) - 2; i >= 0; i-- {
		body = New("lambda", params[i], body)
	}
	return body
}

// cloneLeaf copies a leaf node so the same identifier can appear in two
// places of the standardized tree without sharing.
func cloneLeaf(n *Node) *Node {
	return New(n.Label)
}
