package token

import "testing"

func TestLookupKeywordCaseInsensitive(t *testing.T) {
	for _, spelling := range []string{"Dim", "DIM", "dim", "dIm"} {
		if LookupKeyword(spelling) != KwDim {
			t.Errorf("%q: want KwDim", spelling)
		}
	}
}

func TestLookupKeywordHighBitNeverFolds(t *testing.T) {
	if LookupKeyword("Dîm") != KwNone {
		t.Fatal("an identifier containing a high-bit scalar must never match a keyword")
	}
}

func TestLookupKeywordUnknown(t *testing.T) {
	if LookupKeyword("Frobnicate") != KwNone {
		t.Fatal("want KwNone for a non-keyword identifier")
	}
}

func TestTextConcatenation(t *testing.T) {
	toks := []Token{{Text: "Dim"}, {Text: " "}, {Text: "x"}}
	if Text(toks) != "Dim x" {
		t.Fatalf("want %q, got %q", "Dim x", Text(toks))
	}
}
