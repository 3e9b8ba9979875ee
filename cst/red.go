package cst

// Red is a view over a Green node at a particular absolute position in a
// particular tree: unlike Green, it knows its byte offset and its parent,
// constructed lazily on first visit so that navigating a small corner of a
// huge tree never materializes the whole thing.
type Red struct {
	green    *Green
	parent   *Red
	offset   int
	childIdx int
}

// NewRoot wraps a Green tree's root for navigation, starting at offset 0.
func NewRoot(g *Green) *Red {
	return &Red{green: g, offset: 0, childIdx: -1}
}

// Kind returns the underlying node's syntax kind.
func (r *Red) Kind() SyntaxKind { return r.green.Kind() }

// Green returns the underlying (position-free) Green node.
func (r *Red) Green() *Green { return r.green }

// Start returns the absolute byte offset this node begins at.
func (r *Red) Start() int { return r.offset }

// End returns the absolute byte offset this node ends at (exclusive).
func (r *Red) End() int { return r.offset + r.green.length }

// IsTerminal reports whether this node wraps a leaf (token) Green node.
func (r *Red) IsTerminal() bool { return r.green.IsTerminal() }

// Text returns a terminal node's verbatim source text, or "" for an
// interior node.
func (r *Red) Text() string { return r.green.Text() }

// Parent returns the enclosing node, or nil at the root.
func (r *Red) Parent() *Red { return r.parent }

// ChildCount returns the number of direct children (0 for a terminal).
func (r *Red) ChildCount() int { return len(r.green.children) }

// Child lazily constructs the i'th direct child as a Red node, computing
// its absolute offset from the accumulated length of its earlier siblings.
// Returns nil if i is out of range.
func (r *Red) Child(i int) *Red {
	if i < 0 || i >= len(r.green.children) {
		return nil
	}
	offset := r.offset
	for j := 0; j < i; j++ {
		offset += r.green.children[j].length
	}
	return &Red{green: r.green.children[i], parent: r, offset: offset, childIdx: i}
}

// Children materializes every direct child as a Red node, in order.
func (r *Red) Children() []*Red {
	out := make([]*Red, r.ChildCount())
	for i := range out {
		out[i] = r.Child(i)
	}
	return out
}

// ChildIndex returns this node's index among its parent's children, or -1
// at the root.
func (r *Red) ChildIndex() int { return r.childIdx }

// Descendants walks the subtree depth-first (pre-order), including r
// itself, calling visit on each node until visit returns false.
func (r *Red) Descendants(visit func(*Red) bool) {
	if !visit(r) {
		return
	}
	for _, c := range r.Children() {
		c.Descendants(visit)
	}
}

// FirstByKind returns the first node (pre-order, including r) with the
// given kind, or nil if none match.
func (r *Red) FirstByKind(kind SyntaxKind) *Red {
	var found *Red
	r.Descendants(func(n *Red) bool {
		if found != nil {
			return false
		}
		if n.Kind() == kind {
			found = n
			return false
		}
		return true
	})
	return found
}

// AllByKind returns every node (pre-order, including r) with the given
// kind.
func (r *Red) AllByKind(kind SyntaxKind) []*Red {
	var out []*Red
	r.Descendants(func(n *Red) bool {
		if n.Kind() == kind {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Filter returns every node (pre-order, including r) for which pred
// returns true.
func (r *Red) Filter(pred func(*Red) bool) []*Red {
	var out []*Red
	r.Descendants(func(n *Red) bool {
		if pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// NodeAtOffset returns the deepest node whose [Start,End) span contains
// offset, descending from r. Returns nil if offset falls outside r's span.
func (r *Red) NodeAtOffset(offset int) *Red {
	if offset < r.Start() || offset >= r.End() {
		if offset == r.Start() && r.Start() == r.End() {
			return r
		}
		return nil
	}
	for _, c := range r.Children() {
		if offset >= c.Start() && offset < c.End() {
			return c.NodeAtOffset(offset)
		}
	}
	return r
}
