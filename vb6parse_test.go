package vb6parse

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseProjectFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Project1.vbp")
	content := "Type=Exe\r\nForm=Form1.frm\r\nStartup=\"Form1\"\r\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := ParseProjectFromPath(path)
	if err != nil {
		t.Fatalf("ParseProjectFromPath: %v", err)
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	if len(res.Value.Forms) != 1 || res.Value.Forms[0] != "Form1.frm" {
		t.Fatalf("Forms = %+v", res.Value.Forms)
	}
}

func TestParseProjectFromPathMissingFile(t *testing.T) {
	if _, err := ParseProjectFromPath(filepath.Join(t.TempDir(), "missing.vbp")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestDecodeTokenizeParseTokensRoundTrip(t *testing.T) {
	f := Decode([]byte("Dim x As Integer\r\n"), "M.bas")
	toks := Tokenize(f)
	if len(toks.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", toks.Diagnostics)
	}
	tree := ParseTokens(toks.Value)
	if len(tree.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", tree.Diagnostics)
	}
	if tree.Value.Root == nil {
		t.Fatal("no root node")
	}
}

func TestLoadResourceFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Form1.frx")
	data := []byte{0x02, 0x00, 0x00, 0x00, 'h', 'i'}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := LoadResourceFromPath(path)
	if err != nil {
		t.Fatalf("LoadResourceFromPath: %v", err)
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	if e := res.Value.At(0); e == nil || string(e.Data) != "hi" {
		t.Fatalf("entry = %+v", e)
	}
}
