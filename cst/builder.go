package cst

import (
	"fmt"
	"strings"

	"github.com/scriptandcompile/vb6parse/token"
)

// Builder assembles a Green tree from a flat sequence of Start/Token/Finish
// events and interns every node it produces, so two structurally identical
// subtrees (a repeated ", " separator, a repeated empty ArgumentList)
// collapse to one shared *Green.
type Builder struct {
	stack  []frame
	intern map[string]*Green
}

type frame struct {
	kind     SyntaxKind
	children []*Green
}

// NewBuilder returns a Builder ready to accept Start/Token/Finish calls.
func NewBuilder() *Builder {
	return &Builder{intern: make(map[string]*Green)}
}

// Start opens a new interior node of the given kind; subsequent Token and
// Start calls become its children until the matching Finish.
func (b *Builder) Start(kind SyntaxKind) {
	b.stack = append(b.stack, frame{kind: kind})
}

// StartError is a convenience for Start(SynErrorNode), used by the parser's
// error-recovery path to wrap skipped tokens in an identifiable node rather
// than dropping them.
func (b *Builder) StartError() { b.Start(SynErrorNode) }

// Token appends a leaf node for tok to the node currently being built.
func (b *Builder) Token(tok token.Token) {
	leaf := b.intern2(newLeaf(TokenKind(tok.Kind), tok.Text))
	b.Push(leaf)
}

// Finish closes the most recently Start-ed node, interns it, appends it to
// its parent (if any), and returns it. The final Finish call of a tree
// (when the stack becomes empty) returns the root.
func (b *Builder) Finish() *Green {
	node := b.FinishDetached()
	if len(b.stack) > 0 {
		b.Push(node)
	}
	return node
}

// FinishDetached closes the most recently Start-ed node and interns it,
// like Finish, but does not append it anywhere — the caller decides where
// it belongs, via Push. This is what lets expression parsing build a
// left-associative operator chain: the left operand is parsed (and
// detached) before the parser knows whether an operator follows, so it can
// only be wrapped in a BinaryExpr node after the fact.
func (b *Builder) FinishDetached() *Green {
	top := len(b.stack) - 1
	f := b.stack[top]
	b.stack = b.stack[:top]
	return b.intern2(newInterior(f.kind, f.children))
}

// Push appends an already-built (possibly detached) Green node as a child
// of the node currently being built.
func (b *Builder) Push(g *Green) {
	top := len(b.stack) - 1
	b.stack[top].children = append(b.stack[top].children, g)
}

// intern2 returns a previously built node structurally equal to g, or
// registers and returns g itself.
func (b *Builder) intern2(g *Green) *Green {
	key := fingerprint(g)
	if existing, ok := b.intern[key]; ok {
		return existing
	}
	b.intern[key] = g
	return g
}

func fingerprint(g *Green) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d|%q|", g.kind, g.text)
	for _, c := range g.children {
		fmt.Fprintf(&sb, "%p,", c)
	}
	return sb.String()
}
