package classmodule

import (
	"testing"

	"github.com/scriptandcompile/vb6parse/cst"
	"github.com/scriptandcompile/vb6parse/source"
)

// leafText reconstructs a Red subtree's full source text by concatenating
// every leaf's Text in order (spec.md §8 invariant 3).
func leafText(r *cst.Red) string {
	if r.IsTerminal() {
		return r.Text()
	}
	var s string
	for _, c := range r.Children() {
		s += leafText(c)
	}
	return s
}

func TestParseModule(t *testing.T) {
	t.Run("literal end-to-end scenario (spec.md §8.2)", func(t *testing.T) {
		text := "Attribute VB_Name = \"M\"\nPublic Sub F()\nEnd Sub\n"
		res := ParseModule(source.New("M.bas", text))
		if len(res.Diagnostics) != 1 || res.Diagnostics[0].Kind.String() != "missing VERSION line" {
			t.Fatalf("diagnostics = %v, want only a missing-VERSION diagnostic", res.Diagnostics)
		}
		if v, _ := res.Value.Attributes.Get("VB_Name"); v != "\"M\"" {
			t.Errorf("VB_Name = %q, want \"M\"", v)
		}
		wantCode := text[len("Attribute VB_Name = \"M\"\n"):]
		if got := leafText(res.Value.Code.Root); got != wantCode {
			t.Errorf("code CST text = %q, want %q", got, wantCode)
		}
	})
}

func TestParseClass(t *testing.T) {
	t.Run("VERSION with BEGIN/END attribute block and VB_ attributes", func(t *testing.T) {
		text := "VERSION 1.0 CLASS\n" +
			"BEGIN\n" +
			"  MultiUse = -1  'True\n" +
			"  Persistable = 0  'NotPersistable\n" +
			"END\n" +
			"Attribute VB_Name = \"C1\"\n" +
			"Attribute VB_Exposed = False\n" +
			"Public Sub F()\nEnd Sub\n"
		res := ParseClass(source.New("C1.cls", text))
		if len(res.Diagnostics) != 0 {
			t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
		}
		if res.Value.VersionMajor != "1" || res.Value.VersionMinor != "0" {
			t.Errorf("Version = %s.%s", res.Value.VersionMajor, res.Value.VersionMinor)
		}
		if v, _ := res.Value.Header.Get("MultiUse"); v != "-1" {
			t.Errorf("MultiUse = %q, want -1", v)
		}
		if v, _ := res.Value.Attributes.Get("VB_Name"); v != "\"C1\"" {
			t.Errorf("VB_Name = %q, want \"C1\"", v)
		}
	})

	t.Run("missing VERSION line is a single diagnostic", func(t *testing.T) {
		res := ParseClass(source.New("C1.cls", "Attribute VB_Name = \"C1\"\n"))
		var found bool
		for _, d := range res.Diagnostics {
			if d.Kind.String() == "missing VERSION line" {
				found = true
			}
		}
		if !found {
			t.Errorf("diagnostics = %v, want a missing-VERSION diagnostic", res.Diagnostics)
		}
	})

	t.Run("missing VB_Name is diagnosed", func(t *testing.T) {
		res := ParseClass(source.New("C1.cls", "VERSION 1.0 CLASS\n"))
		var found bool
		for _, d := range res.Diagnostics {
			if d.Kind.String() == "missing required VB_Name attribute" {
				found = true
			}
		}
		if !found {
			t.Errorf("diagnostics = %v, want a missing-VB_Name diagnostic", res.Diagnostics)
		}
	})

	t.Run("empty input yields a single missing-VERSION diagnostic", func(t *testing.T) {
		res := ParseClass(source.New("C1.cls", ""))
		if len(res.Diagnostics) != 1 || res.Diagnostics[0].Kind.String() != "missing VERSION line" {
			// missing VB_Name is not reported for empty input
			t.Fatalf("diagnostics = %v", res.Diagnostics)
		}
	})
}
