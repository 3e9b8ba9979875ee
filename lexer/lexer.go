// Package lexer turns a decoded source.File into a token.Stream with a
// single forward pass: at each position it dispatches on the next scalar to
// the longest applicable of comment, identifier/keyword, numeric, date,
// string, line-continuation, or operator scanning, over a scalar-safe
// source.Stream rather than indexing a []byte directly.
package lexer

import (
	"github.com/scriptandcompile/vb6parse/diag"
	"github.com/scriptandcompile/vb6parse/source"
	"github.com/scriptandcompile/vb6parse/token"
)

// Lexer scans one source.File into a sequence of token.Token.
type Lexer struct {
	file   *source.File
	stream *source.Stream
	// atLineStart tracks whether the next token would begin a new logical
	// line, which is what makes a bare "Rem" at that position a comment
	// instead of an identifier.
	atLineStart bool
}

// New creates a Lexer over f.
func New(f *source.File) *Lexer {
	return &Lexer{file: f, stream: source.NewStream(f), atLineStart: true}
}

// Tokenize scans the whole file and returns every token plus a trailing
// EOF, together with any diagnostics. The concatenation of every token's
// text covers the input exactly once; tokenize never panics, regardless of
// input.
func Tokenize(f *source.File) diag.Result[*token.Stream] {
	l := New(f)
	var toks []token.Token
	var diags []diag.Diagnostic
	for {
		tok, d := l.next()
		if d != nil {
			diags = append(diags, *d)
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return diag.Result[*token.Stream]{
		Value:       token.NewStream(f.Name(), toks),
		Diagnostics: diags,
	}
}

func (l *Lexer) pos() source.Position { return l.stream.Position() }

func (l *Lexer) span(start, end source.Position) token.Span {
	return token.FromPositions(l.file.Name(), start, end)
}

func (l *Lexer) sliceFrom(start source.Position) string {
	return l.stream.Slice(start, l.pos())
}

// next scans and returns exactly one token, plus a diagnostic if the token
// is malformed but still produced (error recovery is local to the token).
func (l *Lexer) next() (token.Token, *diag.Diagnostic) {
	start := l.pos()

	if l.stream.AtEnd() {
		return token.Token{Kind: token.EOF, Span: l.span(start, start)}, nil
	}

	r := l.stream.PeekRune()

	tok, d := l.scanOne(r, start)

	switch tok.Kind {
	case token.Newline, token.Colon:
		// A colon separates statements, so "Rem" right after one is back at
		// statement position.
		l.atLineStart = true
	case token.Whitespace, token.CommentApostrophe, token.CommentRem, token.LineContinuation:
		// trivia never changes logical-line-start status
	default:
		l.atLineStart = false
	}
	return tok, d
}

func (l *Lexer) scanOne(r rune, start source.Position) (token.Token, *diag.Diagnostic) {
	switch {
	case r == '\'':
		return l.scanApostropheComment(start), nil
	case isNewlineRune(r):
		return l.scanNewline(start), nil
	case r == ' ' || r == '\t':
		return l.scanWhitespace(start), nil
	case r == '&' && (l.stream.PeekAt(1) == 'h' || l.stream.PeekAt(1) == 'H' ||
		l.stream.PeekAt(1) == 'o' || l.stream.PeekAt(1) == 'O'):
		return l.scanRadixLiteral(start)
	case isDigit(r) || (r == '.' && isDigit(l.stream.PeekAt(1))):
		return l.scanNumber(start)
	case r == '#':
		return l.scanDateOrHash(start)
	case r == '"':
		return l.scanString(start)
	case r == '_' && l.isLineContinuation():
		return l.scanLineContinuation(start), nil
	case isIdentStart(r):
		return l.scanIdentOrKeyword(start)
	default:
		return l.scanOperator(start)
	}
}

func isNewlineRune(r rune) bool { return r == '\n' || r == '\r' }

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r >= 0x80
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

func (l *Lexer) scanWhitespace(start source.Position) token.Token {
	for {
		r := l.stream.PeekRune()
		if r != ' ' && r != '\t' {
			break
		}
		l.stream.Advance(1)
	}
	return token.Token{Kind: token.Whitespace, Span: l.span(start, l.pos()), Text: l.sliceFrom(start)}
}

func (l *Lexer) scanNewline(start source.Position) token.Token {
	r := l.stream.PeekRune()
	l.stream.Advance(1)
	if r == '\r' && l.stream.PeekRune() == '\n' {
		l.stream.Advance(1)
	}
	l.atLineStart = true
	return token.Token{Kind: token.Newline, Span: l.span(start, l.pos()), Text: l.sliceFrom(start)}
}

func (l *Lexer) scanApostropheComment(start source.Position) token.Token {
	for !l.stream.AtEnd() && !isNewlineRune(l.stream.PeekRune()) {
		l.stream.Advance(1)
	}
	return token.Token{Kind: token.CommentApostrophe, Span: l.span(start, l.pos()), Text: l.sliceFrom(start)}
}

// isLineContinuation reports whether the "_" at the cursor is a VB6 line
// continuation: immediately preceded by a space or tab and followed,
// possibly after trailing spaces, by a newline.
func (l *Lexer) isLineContinuation() bool {
	text := l.stream.File().Text()
	if off := l.stream.Position().Offset; off == 0 || (text[off-1] != ' ' && text[off-1] != '\t') {
		return false
	}
	cp := l.stream.Save()
	defer l.stream.Restore(cp)
	l.stream.Advance(1) // the "_"
	for {
		r := l.stream.PeekRune()
		if r == ' ' || r == '\t' {
			l.stream.Advance(1)
			continue
		}
		break
	}
	r := l.stream.PeekRune()
	return isNewlineRune(r) || l.stream.AtEnd()
}

func (l *Lexer) scanLineContinuation(start source.Position) token.Token {
	l.stream.Advance(1)
	for {
		r := l.stream.PeekRune()
		if r == ' ' || r == '\t' {
			l.stream.Advance(1)
			continue
		}
		break
	}
	if isNewlineRune(l.stream.PeekRune()) {
		r := l.stream.PeekRune()
		l.stream.Advance(1)
		if r == '\r' && l.stream.PeekRune() == '\n' {
			l.stream.Advance(1)
		}
	}
	return token.Token{Kind: token.LineContinuation, Span: l.span(start, l.pos()), Text: l.sliceFrom(start)}
}
