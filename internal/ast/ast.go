// Package ast defines the RPAL abstract syntax tree and the
// standardization pass that rewrites surface constructs into the
// canonical lambda/gamma/->/tau form consumed by the CSE machine.
package ast

import (
	"fmt"
	"strings"
)

// Node is a node of the RPAL syntax tree. Nodes are label-based: the
// control builder and the standardizer dispatch on the textual label,
// so leaves carry tagged labels such as <IDENTIFIER:x> or <INTEGER:42>.
type Node struct {
	Label    string
	Children []*Node
}

// New creates a node with the given label and children.
func New(label string, children ...*Node) *Node {
	return &Node{Label: label, Children: children}
}

// Add appends a child node.
func (n *Node) Add(child *Node) {
	n.Children = append(n.Children, child)
}

// String returns the tree in the classic dotted-prefix form: each node
// on its own line, indented with one '.' per depth level.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb, 0)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat(".", depth))
	sb.WriteString(n.Label)
	sb.WriteString("\n")
	for _, child := range n.Children {
		child.write(sb, depth+1)
	}
}

// Leaf label constructors. These produce the tag forms the control
// builder recognizes.

// Identifier returns an <IDENTIFIER:name> leaf.
func Identifier(name string) *Node {
	return New(fmt.Sprintf("<IDENTIFIER:%s>", name))
}

// Integer returns an <INTEGER:text> leaf.
func Integer(text string) *Node {
	return New(fmt.Sprintf("<INTEGER:%s>", text))
}

// Str returns a <STRING:'text'> leaf.
func Str(text string) *Node {
	return New(fmt.Sprintf("<STRING:'%s'>", text))
}

// True returns a <TRUE_VALUE:true> leaf.
func True() *Node {
	return New("<TRUE_VALUE:true>")
}

// False returns a <TRUE_VALUE:false> leaf.
func False() *Node {
	return New("<TRUE_VALUE:false>")
}

// Nil returns a <NIL> leaf (the empty tuple).
func Nil() *Node {
	return New("<NIL>")
}

// Dummy returns a <dummy> leaf.
func Dummy() *Node {
	return New("<dummy>")
}

// Ystar returns a <Y*> leaf (the fixed-point operator).
func Ystar() *Node {
	return New("<Y*>")
}

// IdentifierName extracts the identifier text from an <IDENTIFIER:x>
// label. The second result reports whether the label has that form.
func IdentifierName(label string) (string, bool) {
	if strings.HasPrefix(label, "<IDENTIFIER:") && strings.HasSuffix(label, ">") {
		return label[len("<IDENTIFIER:") : len(label)-1], true
	}
	return "", false
}

// IsIdentifier reports whether the node is an <IDENTIFIER:x> leaf.
func (n *Node) IsIdentifier() bool {
	_, ok := IdentifierName(n.Label)
	return ok
}
