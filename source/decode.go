// Package source owns the text that every other package in vb6parse reads
// from: decoding raw Windows-1252 bytes into UTF-8, and a scalar-safe cursor
// over the result.
package source

import (
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Decode converts Windows-1252 bytes into a SourceFile. Every input byte
// produces exactly one Unicode scalar; the five code points undefined in
// Windows-1252 (0x81, 0x8D, 0x8F, 0x90, 0x9D) decode to U+FFFD. Decoding
// never fails.
func Decode(input []byte, name string) *File {
	text, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), input)
	if err != nil {
		// charmap.Windows1252's decode table already maps every byte to a
		// scalar (the five undefined code points to U+FFFD), so this path
		// should be unreachable; fall back rather than lose input if it ever
		// isn't.
		text = decodeBytewise(input)
	}
	return &File{
		name: name,
		text: string(text),
		size: len(input),
	}
}

// decodeBytewise is the guaranteed-total fallback: the Windows-1252 table by
// hand, used only if the x/text transform ever returns an error (it
// shouldn't, since charmap.Windows1252 already maps every byte to a scalar).
func decodeBytewise(input []byte) []byte {
	out := make([]rune, len(input))
	for i, b := range input {
		if r, ok := win1252Table[b]; ok {
			out[i] = r
		} else {
			out[i] = rune(b) // ASCII range and the table's identity entries
		}
	}
	return []byte(string(out))
}

// win1252Table lists the bytes whose Windows-1252 mapping is not the
// identity (0x80-0x9F) or is undefined (replaced with U+FFFD).
var win1252Table = map[byte]rune{
	0x80: 0x20AC, 0x81: 0xFFFD, 0x82: 0x201A, 0x83: 0x0192,
	0x84: 0x201E, 0x85: 0x2026, 0x86: 0x2020, 0x87: 0x2021,
	0x88: 0x02C6, 0x89: 0x2030, 0x8A: 0x0160, 0x8B: 0x2039,
	0x8C: 0x0152, 0x8D: 0xFFFD, 0x8E: 0x017D, 0x8F: 0xFFFD,
	0x90: 0xFFFD, 0x91: 0x2018, 0x92: 0x2019, 0x93: 0x201C,
	0x94: 0x201D, 0x95: 0x2022, 0x96: 0x2013, 0x97: 0x2014,
	0x98: 0x02DC, 0x99: 0x2122, 0x9A: 0x0161, 0x9B: 0x203A,
	0x9C: 0x0153, 0x9D: 0xFFFD, 0x9E: 0x017E, 0x9F: 0x0178,
}
