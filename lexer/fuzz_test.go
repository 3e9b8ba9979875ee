package lexer

import (
	"testing"

	"github.com/scriptandcompile/vb6parse/source"
	"github.com/scriptandcompile/vb6parse/token"
)

// FuzzTokenize exercises spec.md §9's fuzzing mandate against arbitrary
// Windows-1252 bytes, including pure binary noise: Tokenize must never
// panic, and the concatenation of every token's text must equal the source
// text byte-for-byte (spec.md §8 invariant 2), even for malformed input.
func FuzzTokenize(f *testing.F) {
	f.Add([]byte("Dim x As Integer ' comment\r\nx = &HFF\n"))
	f.Add([]byte{0xD4, '"', 'a', 0x00, '#'})
	f.Add([]byte{})
	f.Fuzz(func(t *testing.T, data []byte) {
		sf := source.Decode(data, "fuzz.bas")
		res := Tokenize(sf)
		if res.Value == nil {
			return
		}
		if got := token.Text(res.Value.Tokens); got != sf.Text() {
			t.Fatalf("token concatenation does not equal source text\nwant: %q\ngot:  %q", sf.Text(), got)
		}
	})
}
