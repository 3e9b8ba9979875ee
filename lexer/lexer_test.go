package lexer

import (
	"testing"

	"github.com/scriptandcompile/vb6parse/source"
	"github.com/scriptandcompile/vb6parse/token"
)

func tokenize(t *testing.T, text string) []token.Token {
	t.Helper()
	f := source.New("t.bas", text)
	res := Tokenize(f)
	return res.Value.Tokens
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func TestTokenizeConcatenationRoundTrips(t *testing.T) {
	text := "Dim x As Integer ' a comment\r\nx = 1 + 2.5\r\n"
	f := source.New("t.bas", text)
	res := Tokenize(f)
	if got := token.Text(res.Value.Tokens); got != text {
		t.Fatalf("token concatenation must equal source text exactly\nwant: %q\ngot:  %q", text, got)
	}
}

func TestTokenizeKeywordsCaseInsensitive(t *testing.T) {
	toks := tokenize(t, "dIm X As inTEGER")
	if toks[0].Kind != token.Keyword || toks[0].Keyword != token.KwDim {
		t.Fatalf("want Dim keyword, got %+v", toks[0])
	}
}

func TestTokenizeRemAtStatementPosition(t *testing.T) {
	toks := tokenize(t, "Rem this is a comment\nx = 1")
	if toks[0].Kind != token.CommentRem {
		t.Fatalf("want Rem comment at line start, got %v", toks[0].Kind)
	}
}

func TestTokenizeRemNotAtStatementPosition(t *testing.T) {
	toks := tokenize(t, "x = Rem")
	// "Rem" after "=" is not at a statement-starting position; the
	// identifier-vs-keyword table has no "Rem" keyword id, so it lexes as
	// a plain identifier rather than swallowing the rest of the line.
	var sawIdentRem bool
	for _, tk := range toks {
		if tk.Kind == token.Ident && tk.Text == "Rem" {
			sawIdentRem = true
		}
	}
	if !sawIdentRem {
		t.Fatalf("expected 'Rem' mid-statement to lex as an identifier: %+v", toks)
	}
}

func TestTokenizeNumericSuffixes(t *testing.T) {
	cases := map[string]token.Kind{
		"1":     token.IntLiteral,
		"1%":    token.IntLiteral,
		"1&":    token.LongLiteral,
		"1!":    token.SingleLiteral,
		"1#":    token.DoubleLiteral,
		"1@":    token.CurrencyLiteral,
		"1.5":   token.DoubleLiteral,
		"1.5!":  token.SingleLiteral,
		"1E10":  token.DoubleLiteral,
		"1D10":  token.DoubleLiteral,
	}
	for input, want := range cases {
		toks := tokenize(t, input)
		if toks[0].Kind != want {
			t.Errorf("%q: want %v, got %v", input, want, toks[0].Kind)
		}
	}
}

func TestTokenizeHexOctalLiterals(t *testing.T) {
	toks := tokenize(t, "&HFF")
	if toks[0].Text != "&HFF" {
		t.Fatalf("want &HFF literal text, got %q", toks[0].Text)
	}
	res := Tokenize(source.New("t", "&H"))
	if len(res.Diagnostics) == 0 {
		t.Fatal("want a diagnostic for &H with no digits")
	}
}

func TestTokenizeDateLiteral(t *testing.T) {
	toks := tokenize(t, "#1/1/2000#")
	if toks[0].Kind != token.DateLiteral {
		t.Fatalf("want DateLiteral, got %v", toks[0].Kind)
	}
}

func TestTokenizeUnterminatedDateFallsBackToHash(t *testing.T) {
	res := Tokenize(source.New("t", "#1/1/2000\nx = 1"))
	if res.Value.Tokens[0].Kind != token.Hash {
		t.Fatalf("want Hash fallback, got %v", res.Value.Tokens[0].Kind)
	}
	if len(res.Diagnostics) == 0 {
		t.Fatal("want a diagnostic for the unterminated date literal")
	}
}

func TestTokenizeEscapedQuoteInString(t *testing.T) {
	toks := tokenize(t, `"he said ""hi"""`)
	if toks[0].Kind != token.StringLiteral {
		t.Fatalf("want StringLiteral, got %v", toks[0].Kind)
	}
	if toks[0].Text != `"he said ""hi"""` {
		t.Fatalf("want full literal text preserved, got %q", toks[0].Text)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	res := Tokenize(source.New("t", "\"abc\nx"))
	if len(res.Diagnostics) == 0 {
		t.Fatal("want a diagnostic for an unterminated string")
	}
}

func TestTokenizeMultiCharOperators(t *testing.T) {
	toks := tokenize(t, "<= >= <> :=")
	want := []token.Kind{token.Le, token.Ge, token.Ne, token.ColonEquals}
	i := 0
	for _, tk := range toks {
		if tk.Kind.IsTrivia() || tk.Kind == token.EOF {
			continue
		}
		if i >= len(want) {
			t.Fatalf("unexpected extra token %v", tk)
		}
		if tk.Kind != want[i] {
			t.Fatalf("token %d: want %v, got %v", i, want[i], tk.Kind)
		}
		i++
	}
}

func TestTokenizeLineContinuation(t *testing.T) {
	toks := tokenize(t, "Dim x _\n As Integer")
	var sawContinuation bool
	for _, tk := range toks {
		if tk.Kind == token.LineContinuation {
			sawContinuation = true
		}
		if tk.Kind == token.Newline {
			t.Fatalf("a line continuation should not also produce a Newline token: %+v", toks)
		}
	}
	if !sawContinuation {
		t.Fatal("want a LineContinuation token")
	}
}

func TestTokenizeEmptyInput(t *testing.T) {
	toks := tokenize(t, "")
	if len(toks) != 1 || toks[0].Kind != token.EOF {
		t.Fatalf("empty input should yield exactly one EOF token, got %+v", toks)
	}
}

func TestTokenizeNeverPanicsOnBinaryNoise(t *testing.T) {
	noise := make([]byte, 256)
	for i := range noise {
		noise[i] = byte(i)
	}
	f := source.Decode(noise, "noise")
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("tokenizer panicked on binary noise: %v", r)
		}
	}()
	Tokenize(f)
}

func TestTokenizeCoversEveryByteExactlyOnce(t *testing.T) {
	text := "Public Sub F()\r\n  x = &H1F + 2.5e3 ' cmt\r\nEnd Sub\r\n"
	f := source.New("t", text)
	res := Tokenize(f)
	if got := token.Text(res.Value.Tokens); got != text {
		t.Fatalf("coverage mismatch:\nwant: %q\ngot:  %q", text, got)
	}
}
