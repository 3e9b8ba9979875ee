package lexer

import (
	"strings"

	"github.com/scriptandcompile/vb6parse/diag"
	"github.com/scriptandcompile/vb6parse/source"
	"github.com/scriptandcompile/vb6parse/token"
)

func (l *Lexer) scanIdentOrKeyword(start source.Position) (token.Token, *diag.Diagnostic) {
	for !l.stream.AtEnd() && isIdentCont(l.stream.PeekRune()) {
		l.stream.Advance(1)
	}
	text := l.sliceFrom(start)

	// "Rem" at statement position is a to-end-of-line comment, not a
	// keyword.
	if l.atLineStart && strings.EqualFold(text, "rem") {
		for !l.stream.AtEnd() && !isNewlineRune(l.stream.PeekRune()) {
			l.stream.Advance(1)
		}
		full := l.sliceFrom(start)
		return token.Token{Kind: token.CommentRem, Span: l.span(start, l.pos()), Text: full}, nil
	}

	if kw := token.LookupKeyword(text); kw != token.KwNone {
		return token.Token{Kind: token.Keyword, Keyword: kw, Span: l.span(start, l.pos()), Text: text}, nil
	}
	return token.Token{Kind: token.Ident, Span: l.span(start, l.pos()), Text: text}, nil
}

// scanRadixLiteral handles "&H..." (hex) and "&O..." (octal) literals.
func (l *Lexer) scanRadixLiteral(start source.Position) (token.Token, *diag.Diagnostic) {
	l.stream.Advance(1) // '&'
	radixRune := l.stream.PeekRune()
	l.stream.Advance(1) // 'H' or 'O'

	isHex := radixRune == 'h' || radixRune == 'H'
	digits := 0
	for {
		r := l.stream.PeekRune()
		if isHex && isHexDigit(r) {
			l.stream.Advance(1)
			digits++
			continue
		}
		if !isHex && r >= '0' && r <= '7' {
			l.stream.Advance(1)
			digits++
			continue
		}
		break
	}

	var d *diag.Diagnostic
	if digits == 0 {
		d = &diag.Diagnostic{
			Kind:    diag.LexBadRadixDigits,
			Message: "expected at least one digit after &H/&O prefix",
			Span:    l.span(start, l.pos()),
		}
	}

	// A radix literal with no explicit suffix defaults to Integer/Long
	// sized by magnitude; that conversion is the consumer's job, the
	// token just carries the raw source text.
	kind, _ := l.consumeNumericSuffix()
	return token.Token{Kind: kind, Span: l.span(start, l.pos()), Text: l.sliceFrom(start)}, d
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// scanNumber handles decimal integer/float literals with optional
// fractional part, exponent, and type suffix.
func (l *Lexer) scanNumber(start source.Position) (token.Token, *diag.Diagnostic) {
	isFloat := false

	for isDigit(l.stream.PeekRune()) {
		l.stream.Advance(1)
	}
	if l.stream.PeekRune() == '.' && isDigit(l.stream.PeekAt(1)) {
		isFloat = true
		l.stream.Advance(1)
		for isDigit(l.stream.PeekRune()) {
			l.stream.Advance(1)
		}
	}
	if r := l.stream.PeekRune(); r == 'e' || r == 'E' || r == 'd' || r == 'D' {
		cp := l.stream.Save()
		l.stream.Advance(1)
		if n := l.stream.PeekRune(); n == '+' || n == '-' {
			l.stream.Advance(1)
		}
		if isDigit(l.stream.PeekRune()) {
			isFloat = true
			for isDigit(l.stream.PeekRune()) {
				l.stream.Advance(1)
			}
		} else {
			l.stream.Restore(cp)
		}
	}

	kind, hadSuffix := l.consumeNumericSuffix()
	if !hadSuffix {
		if isFloat {
			kind = token.DoubleLiteral
		} else {
			kind = token.IntLiteral
		}
	}
	return token.Token{Kind: kind, Span: l.span(start, l.pos()), Text: l.sliceFrom(start)}, nil
}

// consumeNumericSuffix consumes one of %, &, !, #, @, $ if present and
// returns the Kind it selects, plus whether a suffix was actually present.
// Absent a suffix the caller decides Integer vs. Double from the literal
// shape.
func (l *Lexer) consumeNumericSuffix() (token.Kind, bool) {
	switch l.stream.PeekRune() {
	case '%':
		l.stream.Advance(1)
		return token.IntLiteral, true
	case '&':
		l.stream.Advance(1)
		return token.LongLiteral, true
	case '!':
		l.stream.Advance(1)
		return token.SingleLiteral, true
	case '#':
		l.stream.Advance(1)
		return token.DoubleLiteral, true
	case '@':
		l.stream.Advance(1)
		return token.CurrencyLiteral, true
	case '$':
		l.stream.Advance(1)
		return token.StringLiteral, true
	}
	return token.IntLiteral, false
}

// scanDateOrHash attempts a "#...#" date/time literal; on failure it backs
// off to a lone "#" punctuation token plus a diagnostic.
func (l *Lexer) scanDateOrHash(start source.Position) (token.Token, *diag.Diagnostic) {
	cp := l.stream.Save()
	l.stream.Advance(1) // opening '#'
	for {
		if l.stream.AtEnd() || isNewlineRune(l.stream.PeekRune()) {
			l.stream.Restore(cp)
			l.stream.Advance(1)
			return token.Token{Kind: token.Hash, Span: l.span(start, l.pos()), Text: l.sliceFrom(start)},
				&diag.Diagnostic{Kind: diag.LexUnterminatedDate, Message: "unterminated date literal", Span: l.span(start, l.pos())}
		}
		if l.stream.PeekRune() == '#' {
			l.stream.Advance(1)
			return token.Token{Kind: token.DateLiteral, Span: l.span(start, l.pos()), Text: l.sliceFrom(start)}, nil
		}
		l.stream.Advance(1)
	}
}

// scanString handles a double-quoted string literal with "" as an escaped
// quote.
func (l *Lexer) scanString(start source.Position) (token.Token, *diag.Diagnostic) {
	l.stream.Advance(1) // opening quote
	for {
		if l.stream.AtEnd() || isNewlineRune(l.stream.PeekRune()) {
			return token.Token{Kind: token.StringLiteral, Span: l.span(start, l.pos()), Text: l.sliceFrom(start)},
				&diag.Diagnostic{Kind: diag.LexUnterminatedString, Message: "unterminated string literal", Span: l.span(start, l.pos())}
		}
		if l.stream.PeekRune() == '"' {
			if l.stream.PeekAt(1) == '"' {
				l.stream.Advance(2)
				continue
			}
			l.stream.Advance(1)
			return token.Token{Kind: token.StringLiteral, Span: l.span(start, l.pos()), Text: l.sliceFrom(start)}, nil
		}
		l.stream.Advance(1)
	}
}

// scanOperator handles multi-character operators (longest match first) and
// single-character punctuation.
func (l *Lexer) scanOperator(start source.Position) (token.Token, *diag.Diagnostic) {
	two := string(l.stream.Peek(2))
	switch two {
	case "<=":
		l.stream.Advance(2)
		return token.Token{Kind: token.Le, Span: l.span(start, l.pos()), Text: two}, nil
	case ">=":
		l.stream.Advance(2)
		return token.Token{Kind: token.Ge, Span: l.span(start, l.pos()), Text: two}, nil
	case "<>":
		l.stream.Advance(2)
		return token.Token{Kind: token.Ne, Span: l.span(start, l.pos()), Text: two}, nil
	case ":=":
		l.stream.Advance(2)
		return token.Token{Kind: token.ColonEquals, Span: l.span(start, l.pos()), Text: two}, nil
	}

	r := l.stream.PeekRune()
	kind, ok := singleCharKind(r)
	if !ok {
		l.stream.Advance(1)
		return token.Token{Kind: token.Error, Span: l.span(start, l.pos()), Text: l.sliceFrom(start)},
			&diag.Diagnostic{Kind: diag.LexUnexpectedChar, Message: "unexpected character", Span: l.span(start, l.pos())}
	}
	l.stream.Advance(1)
	return token.Token{Kind: kind, Span: l.span(start, l.pos()), Text: l.sliceFrom(start)}, nil
}

func singleCharKind(r rune) (token.Kind, bool) {
	switch r {
	case '(':
		return token.LParen, true
	case ')':
		return token.RParen, true
	case ',':
		return token.Comma, true
	case '.':
		return token.Dot, true
	case '!':
		return token.Bang, true
	case ':':
		return token.Colon, true
	case ';':
		return token.Semicolon, true
	case '@':
		return token.At, true
	case '$':
		return token.Dollar, true
	case '=':
		return token.Assign, true
	case '+':
		return token.Plus, true
	case '-':
		return token.Minus, true
	case '*':
		return token.Star, true
	case '/':
		return token.Slash, true
	case '\\':
		return token.Backslash, true
	case '^':
		return token.Caret, true
	case '&':
		return token.Amp, true
	case '<':
		return token.Lt, true
	case '>':
		return token.Gt, true
	case '_':
		return token.Underscore, true
	}
	return token.Error, false
}
