package cst

import (
	"testing"

	"github.com/scriptandcompile/vb6parse/token"
)

func tok(kind token.Kind, text string) token.Token {
	return token.Token{Kind: kind, Text: text}
}

func TestBuilderRoundTripsText(t *testing.T) {
	b := NewBuilder()
	b.Start(SynLetStatement)
	b.Token(tok(token.Ident, "x"))
	b.Token(tok(token.Whitespace, " "))
	b.Token(tok(token.Assign, "="))
	b.Token(tok(token.Whitespace, " "))
	b.Token(tok(token.IntLiteral, "1"))
	root := b.Finish()

	var collect func(g *Green, into *[]byte)
	collect = func(g *Green, into *[]byte) {
		if g.IsTerminal() {
			*into = append(*into, g.Text()...)
			return
		}
		for _, c := range g.Children() {
			collect(c, into)
		}
	}
	var buf []byte
	collect(root, &buf)
	if string(buf) != "x = 1" {
		t.Fatalf("want %q, got %q", "x = 1", string(buf))
	}
}

func TestRedOffsetsAreAbsolute(t *testing.T) {
	b := NewBuilder()
	b.Start(SynLetStatement)
	b.Token(tok(token.Ident, "abc"))
	b.Token(tok(token.Assign, "="))
	b.Token(tok(token.IntLiteral, "42"))
	root := NewRoot(b.Finish())

	if root.Start() != 0 || root.End() != 6 {
		t.Fatalf("want root span [0,6), got [%d,%d)", root.Start(), root.End())
	}
	kids := root.Children()
	if len(kids) != 3 {
		t.Fatalf("want 3 children, got %d", len(kids))
	}
	if kids[1].Start() != 3 || kids[1].End() != 4 {
		t.Fatalf("want '=' at [3,4), got [%d,%d)", kids[1].Start(), kids[1].End())
	}
	if kids[2].Start() != 4 || kids[2].End() != 6 {
		t.Fatalf("want '42' at [4,6), got [%d,%d)", kids[2].Start(), kids[2].End())
	}
}

func TestInterningSharesIdenticalSubtrees(t *testing.T) {
	b := NewBuilder()
	b.Start(SynArgumentList)
	b.Start(SynArgument)
	b.Token(tok(token.IntLiteral, "1"))
	first := b.Finish()
	b.Start(SynArgument)
	b.Token(tok(token.IntLiteral, "1"))
	second := b.Finish()
	b.Finish()

	if first != second {
		t.Fatal("two structurally identical Argument nodes should be the same *Green instance")
	}
}

func TestFirstByKindAndAllByKind(t *testing.T) {
	b := NewBuilder()
	b.Start(SynArgumentList)
	b.Start(SynArgument)
	b.Token(tok(token.IntLiteral, "1"))
	b.Finish()
	b.Token(tok(token.Comma, ","))
	b.Start(SynArgument)
	b.Token(tok(token.IntLiteral, "2"))
	b.Finish()
	root := NewRoot(b.Finish())

	args := root.AllByKind(SynArgument)
	if len(args) != 2 {
		t.Fatalf("want 2 Argument nodes, got %d", len(args))
	}
	if args[0].Start() != 0 || args[1].Start() != 2 {
		t.Fatalf("want arguments at offsets 0 and 2, got %d and %d", args[0].Start(), args[1].Start())
	}
	if first := root.FirstByKind(SynArgument); first == nil || first.Start() != 0 {
		t.Fatalf("want FirstByKind to find the argument at offset 0, got %+v", first)
	}
}

func TestNodeAtOffsetDescendsToDeepestMatch(t *testing.T) {
	b := NewBuilder()
	b.Start(SynLetStatement)
	b.Token(tok(token.Ident, "x"))
	b.Token(tok(token.Assign, "="))
	b.Token(tok(token.IntLiteral, "7"))
	root := NewRoot(b.Finish())

	n := root.NodeAtOffset(2)
	if n == nil || !n.IsTerminal() || n.Text() != "7" {
		t.Fatalf("want terminal '7' at offset 2, got %+v", n)
	}
}

func TestErrorNodeKindIsNonTerminal(t *testing.T) {
	if SynErrorNode.IsTerminal() {
		t.Fatal("SynErrorNode must be a non-terminal kind")
	}
	b := NewBuilder()
	b.StartError()
	b.Token(tok(token.Error, "?"))
	node := b.Finish()
	if node.Kind() != SynErrorNode {
		t.Fatalf("want SynErrorNode, got %v", node.Kind())
	}
}
