package cst

// Green is an immutable syntax tree node holding only kind, text, and
// children — no absolute offsets, no parent pointer. Because it carries no
// position, two subtrees with identical kind/text/children are
// interchangeable, which is what lets the Builder intern them: a repeated
// "," token or a repeated empty ParameterList only ever exists once in
// memory across an entire tree.
type Green struct {
	kind     SyntaxKind
	text     string // set only on terminal (leaf) nodes
	children []*Green
	length   int // total source bytes covered
}

// Kind returns the node's syntax kind.
func (g *Green) Kind() SyntaxKind { return g.kind }

// Len returns the number of source bytes this node (and its descendants)
// covers.
func (g *Green) Len() int { return g.length }

// IsTerminal reports whether this is a leaf (token) node.
func (g *Green) IsTerminal() bool { return g.children == nil }

// Text returns the verbatim source text of a leaf node, or "" for an
// interior node (callers needing an interior node's text should use the
// Red node's Text method, which concatenates descendant leaf text instead).
func (g *Green) Text() string { return g.text }

// Children returns the node's direct children, nil for a leaf.
func (g *Green) Children() []*Green { return g.children }

func newLeaf(kind SyntaxKind, text string) *Green {
	return &Green{kind: kind, text: text, length: len(text)}
}

func newInterior(kind SyntaxKind, children []*Green) *Green {
	n := 0
	for _, c := range children {
		n += c.length
	}
	return &Green{kind: kind, children: children, length: n}
}
