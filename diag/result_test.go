package diag

import (
	"strings"
	"testing"

	"github.com/scriptandcompile/vb6parse/token"
)

func TestResultOK(t *testing.T) {
	var r Result[int]
	if !r.OK() {
		t.Fatal("zero-value Result should be OK (no diagnostics)")
	}
	r.Add(Diagnostic{Kind: LexUnexpectedChar, Message: "x"})
	if r.OK() {
		t.Fatal("Result with a diagnostic should not be OK")
	}
}

func TestRenderIncludesSourceLine(t *testing.T) {
	text := "Dim x As Integer\nSet y = 1\n"
	d := Diagnostic{
		Kind:    CSTExpectedToken,
		Message: "expected identifier",
		Span:    token.Span{File: "m.bas", Start: 4, End: 5, Line: 1, Column: 5},
	}
	out := Render(d, text)
	if !strings.Contains(out, "Dim x As Integer") {
		t.Fatalf("expected rendered output to include the offending line, got:\n%s", out)
	}
	if !strings.Contains(out, "m.bas:1:5") {
		t.Fatalf("expected file:line:col prefix, got:\n%s", out)
	}
}
