package project

import (
	"testing"

	"github.com/scriptandcompile/vb6parse/source"
)

// FuzzParse exercises the line-oriented .vbp reader against arbitrary
// Windows-1252 bytes; Parse must never panic regardless of how malformed
// the Key=Value structure is (spec.md §8 invariant 5).
func FuzzParse(f *testing.F) {
	f.Add([]byte("Type=Exe\r\nForm=F1.frm\r\nModule=M1; M1.bas\r\n"))
	f.Add([]byte("="))
	f.Add([]byte{0x00, '=', 0xFF})
	f.Fuzz(func(t *testing.T, data []byte) {
		sf := source.Decode(data, "fuzz.vbp")
		Parse(sf)
	})
}
