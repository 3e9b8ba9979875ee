package form

import (
	"testing"

	"github.com/scriptandcompile/vb6parse/source"
)

// FuzzParseForm exercises the hybrid header/CST parser against arbitrary
// Windows-1252 bytes. Both the direct Begin/End line walk and the CST code
// body must never panic, regardless of how malformed the control tree or
// trailing code is (spec.md §8 invariant 5).
func FuzzParseForm(f *testing.F) {
	f.Add([]byte("VERSION 5.00\r\nBegin VB.Form F\r\n  Caption = \"Hi\"\r\nEnd\r\nAttribute VB_Name = \"F\"\r\n"))
	f.Add([]byte("Begin\r\n"))
	f.Add([]byte{0x00, 'B', 'e', 'g', 'i', 'n', 0xFF})
	f.Fuzz(func(t *testing.T, data []byte) {
		sf := source.Decode(data, "fuzz.frm")
		ParseForm(sf)
		ParseFormHeaderOnly(sf)
	})
}
