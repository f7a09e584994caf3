package cse

// Frame is an environment frame (the E symbol): a lookup scope with an
// index, a parent link to its lexical enclosing frame, and a bindings
// map keyed on identifier text. Frames double as markers: the same
// Frame is pushed onto the control and the stack at activation, and
// popping the control marker deactivates it.
//
// The environment list of a machine is append-only. Deactivation sets
// Removed; a frame is never deleted and its bindings never change
// after activation.
type Frame struct {
	Index    int
	Parent   *Frame
	Bindings map[string]Symbol
	Removed  bool
}

// Data returns "e".
func (f *Frame) Data() string { return "e" }

// NewFrame creates an empty frame with the given index and parent.
func NewFrame(index int, parent *Frame) *Frame {
	return &Frame{
		Index:    index,
		Parent:   parent,
		Bindings: make(map[string]Symbol),
	}
}

// Bind adds a name binding. Only the machine calls this, and only
// between frame creation and activation.
func (f *Frame) Bind(name string, value Symbol) {
	f.Bindings[name] = value
}

// Lookup resolves a name by walking the parent chain and returning the
// first binding whose key equals the name. An unbound name resolves to
// an opaque Identifier carrying the name itself; primitive names
// (Print, Stem, Order, ...) reach gamma-application this way and are
// recognized there.
func (f *Frame) Lookup(name string) Symbol {
	for e := f; e != nil; e = e.Parent {
		if v, ok := e.Bindings[name]; ok {
			return v
		}
	}
	return &Identifier{Name: name}
}
