package form

import (
	"testing"

	"github.com/scriptandcompile/vb6parse/source"
)

func TestParseForm(t *testing.T) {
	t.Run("literal end-to-end scenario (spec.md §8 scenario 3)", func(t *testing.T) {
		text := "VERSION 5.00\r\n" +
			"Begin VB.Form F \r\n" +
			"   Caption         =   \"F\"\r\n" +
			"   Begin VB.Menu M1 \r\n" +
			"      Caption         =   \"&File\"\r\n" +
			"   End\r\n" +
			"   Begin VB.CommandButton B1 \r\n" +
			"      Caption         =   \"OK\"\r\n" +
			"      Height          =   375\r\n" +
			"   End\r\n" +
			"End\r\n" +
			"Attribute VB_Name = \"F\"\r\n" +
			"Private Sub B1_Click()\r\n" +
			"End Sub\r\n"
		f := source.New("F.frm", text)
		res := ParseForm(f)
		if len(res.Diagnostics) != 0 {
			t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
		}
		root := res.Value.Root
		if root == nil {
			t.Fatal("no root")
		}
		if root.Kind != KindForm || root.Name != "F" {
			t.Fatalf("root = %+v", root.Control)
		}
		if v, ok := root.Properties.Get("Caption"); !ok || v != `"F"` {
			t.Errorf("Caption = %q, %v", v, ok)
		}
		if len(root.Menus) != 1 || root.Menus[0].Name != "M1" {
			t.Fatalf("Menus = %+v", root.Menus)
		}
		if len(root.Controls) != 1 || root.Controls[0].Name != "B1" {
			t.Fatalf("Controls = %+v", root.Controls)
		}
		if v, _ := root.Controls[0].Properties.Get("Height"); v != "375" {
			t.Errorf("Height = %q", v)
		}
		if v, ok := res.Value.Attributes.Get("VB_Name"); !ok || v != `"F"` {
			t.Errorf("VB_Name = %q, %v", v, ok)
		}
	})

	t.Run("Object line with GUID variant and property group", func(t *testing.T) {
		text := "VERSION 5.00\r\n" +
			"Object = \"*\\G{831FDD16-0C5C-11D2-A9FC-0000F8754DA1}#2.0#0\"; \"mscomctl.ocx\"\r\n" +
			"Begin VB.Form F \r\n" +
			"   BeginProperty Font {0BE35203-8F91-11CE-9DE3-00AA004BB851}\r\n" +
			"      Name            =   \"MS Sans Serif\"\r\n" +
			"      Size            =   8.25\r\n" +
			"   EndProperty\r\n" +
			"End\r\n"
		f := source.New("F.frm", text)
		res := ParseForm(f)
		if len(res.Diagnostics) != 0 {
			t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
		}
		if len(res.Value.Objects) != 1 {
			t.Fatalf("Objects = %+v", res.Value.Objects)
		}
		obj := res.Value.Objects[0]
		if !obj.GUIDVariant || obj.GUID != "{831FDD16-0C5C-11D2-A9FC-0000F8754DA1}" {
			t.Errorf("Object = %+v", obj)
		}
		if obj.FilePath != "mscomctl.ocx" {
			t.Errorf("FilePath = %q", obj.FilePath)
		}
		groups := res.Value.Root.PropertyGroups
		if len(groups) != 1 || groups[0].Name != "Font" {
			t.Fatalf("PropertyGroups = %+v", groups)
		}
		if groups[0].GUID != "0BE35203-8F91-11CE-9DE3-00AA004BB851" {
			t.Errorf("group GUID = %q", groups[0].GUID)
		}
		if len(groups[0].Entries) != 2 || groups[0].Entries[0].Key != "Name" {
			t.Fatalf("entries = %+v", groups[0].Entries)
		}
	})

	t.Run("missing top-level Begin is a diagnostic", func(t *testing.T) {
		f := source.New("F.frm", "VERSION 5.00\r\n")
		res := ParseForm(f)
		found := false
		for _, d := range res.Diagnostics {
			if d.Kind.String() == "missing top-level Begin" {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected missing-top-level-begin diagnostic, got %v", res.Diagnostics)
		}
	})

	t.Run("nested VB.Form under a control is a diagnostic but still parsed", func(t *testing.T) {
		text := "Begin VB.Form F \r\n" +
			"   Begin VB.Form Inner \r\n" +
			"   End\r\n" +
			"End\r\n"
		f := source.New("F.frm", text)
		res := ParseForm(f)
		if len(res.Diagnostics) == 0 {
			t.Fatal("expected a diagnostic for the nested form")
		}
		if len(res.Value.Root.Controls) != 1 || res.Value.Root.Controls[0].Name != "Inner" {
			t.Fatalf("Controls = %+v", res.Value.Root.Controls)
		}
	})

	t.Run("unknown control type is retained verbatim", func(t *testing.T) {
		text := "Begin VB.Form F \r\n" +
			"   Begin MSComctlLib.TreeView TV1 \r\n" +
			"   End\r\n" +
			"End\r\n"
		f := source.New("F.frm", text)
		res := ParseForm(f)
		if len(res.Diagnostics) != 0 {
			t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
		}
		if len(res.Value.Root.Controls) != 1 || res.Value.Root.Controls[0].TypeName != "MSComctlLib.TreeView" {
			t.Fatalf("Controls = %+v", res.Value.Root.Controls)
		}
	})

	t.Run("unterminated Begin block yields mismatched Begin/End diagnostic", func(t *testing.T) {
		f := source.New("F.frm", "Begin VB.Form F \r\n   Caption = \"F\"\r\n")
		res := ParseForm(f)
		found := false
		for _, d := range res.Diagnostics {
			if d.Kind.String() == "mismatched Begin/End" {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected mismatched Begin/End diagnostic, got %v", res.Diagnostics)
		}
	})

	t.Run("malformed Object line recovers with a diagnostic", func(t *testing.T) {
		text := "Object = garbage\r\n" +
			"Begin VB.Form F \r\n" +
			"End\r\n"
		f := source.New("F.frm", text)
		res := ParseForm(f)
		if len(res.Value.Objects) != 0 {
			t.Fatalf("Objects = %+v, want none", res.Value.Objects)
		}
		if len(res.Diagnostics) == 0 {
			t.Fatal("expected a diagnostic for the malformed Object line")
		}
		if res.Value.Root == nil || res.Value.Root.Name != "F" {
			t.Fatalf("parsing should still recover the root block: %+v", res.Value.Root)
		}
	})
}

func TestParseResourceRef(t *testing.T) {
	cases := []struct {
		value  string
		file   string
		offset int64
		ok     bool
	}{
		{`$"Form1.frx":0000`, "Form1.frx", 0, true},
		{`$"Form1.frx":1C2`, "Form1.frx", 0x1C2, true},
		{`"Form1.frx":FFAC`, "Form1.frx", 0xFFAC, true},
		{`$"Form1.frx":123456789`, "Form1.frx", 0x123456789, true},
		{`"plain string"`, "", 0, false},
		{`$"Form1.frx":`, "", 0, false},
		{`$"Form1.frx":XYZ`, "", 0, false},
		{`375`, "", 0, false},
	}
	for _, c := range cases {
		ref, ok := ParseResourceRef(c.value)
		if ok != c.ok {
			t.Errorf("%q: ok = %v, want %v", c.value, ok, c.ok)
			continue
		}
		if ok && (ref.File != c.file || ref.Offset != c.offset) {
			t.Errorf("%q: ref = %+v", c.value, ref)
		}
	}
}

func TestMalformedFRXReferenceIsDiagnosed(t *testing.T) {
	text := "Begin VB.Form F \r\n" +
		"   Picture = $\"F.frx\":ZZ\r\n" +
		"   Icon = $\"F.frx\":0442\r\n" +
		"End\r\n"
	res := ParseFormHeaderOnly(source.New("F.frm", text))
	if len(res.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %v, want exactly 1", res.Diagnostics)
	}
	if res.Diagnostics[0].Kind.String() != "malformed FRX reference" {
		t.Fatalf("diagnostic = %v", res.Diagnostics[0])
	}
	// The raw value is still retained.
	if v, _ := res.Value.Properties.Get("Picture"); v != `$"F.frx":ZZ` {
		t.Errorf("Picture = %q", v)
	}
}

func TestParseFormHeaderOnly(t *testing.T) {
	text := "Begin VB.MDIForm MDI \r\n" +
		"   Caption = \"Main\"\r\n" +
		"End\r\n" +
		"Attribute VB_Name = \"MDI\"\r\n" +
		"Private Sub MDIForm_Load()\r\n" +
		"   ThisWouldNotParseAsVB6Code +++ ###\r\n" +
		"End Sub\r\n"
	f := source.New("MDI.frm", text)
	res := ParseFormHeaderOnly(f)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	if res.Value.Kind != KindMDIForm || res.Value.Name != "MDI" {
		t.Fatalf("root = %+v", res.Value.Control)
	}
}
