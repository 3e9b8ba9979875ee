// Package form parses VB6 form files (.frm, .ctl, .dob): a hybrid format
// whose hierarchical Begin/End control tree is extracted directly from
// lines of source text (no CST — the header's value is the structured
// object, not a syntax tree), while the trailing code body is handed to
// package parser for a full CST.
//
// The header is line-oriented recursive descent, the same idiom package
// classmodule and package project use for their own line-shaped headers: a
// Begin/End (and nested BeginProperty/EndProperty) block is just a more
// deeply nested version of the same "Key=Value lines, skip what you don't
// recognize" shape, so it reuses source.LineSpan rather than re-tokenizing
// the header through the lexer. The lexer's token set has no shape for the
// literal "{GUID}" and "*\G" syntax that appears in these headers (VB6 code
// never uses curly braces), so walking tokens there would mean teaching the
// lexer punctuation it has no other use for; walking lines and slicing raw
// value text avoids that entirely.
package form

import "github.com/scriptandcompile/vb6parse/project"

// Kind distinguishes a top-level form root.
type Kind int

const (
	KindForm Kind = iota
	KindMDIForm
)

func (k Kind) String() string {
	if k == KindMDIForm {
		return "MDIForm"
	}
	return "Form"
}

// PropertyGroupEntry is one entry of a PropertyGroup: either a raw value
// or a nested PropertyGroup, never both.
type PropertyGroupEntry struct {
	Key    string
	Value  string
	Nested *PropertyGroup
}

// PropertyGroup is a "BeginProperty Name [{GUID}] … EndProperty" block:
// an optional GUID plus an ordered mapping from property name to either a
// raw value or another nested PropertyGroup.
type PropertyGroup struct {
	Name    string
	GUID    string // empty if absent
	Entries []PropertyGroupEntry
}

// Control is one "Begin <TypeName> <Name>" node: a form, an MDI form, or
// any of VB6's ~50 control kinds, modeled as one struct with a type tag
// rather than a type hierarchy. Unknown control types are retained here
// verbatim under their literal TypeName — there is no separate Custom type,
// since this struct already carries everything a custom control's data
// needs.
type Control struct {
	TypeName string // e.g. "VB.CommandButton", "VB.Menu", "MSComctlLib.TreeView"
	Name     string
	// Index is non-nil for a control-array member ("Begin VB.TextBox
	// Text1(0)").
	Index *int
	// Properties holds this control's "Key = Value" lines, in source order.
	Properties *project.OrderedBag
	// PropertyGroups holds any "BeginProperty … EndProperty" blocks, in
	// source order, after the flat Properties.
	PropertyGroups []*PropertyGroup
	// Controls holds nested non-menu child controls.
	Controls []*Control
	// Menus holds nested "VB.Menu" children, kept apart from Controls: a
	// child whose type is VB.Menu is collected into the enclosing form's
	// menu list rather than its controls list.
	Menus []*Control
}

func newControl(typeName, name string) *Control {
	return &Control{TypeName: typeName, Name: name, Properties: project.NewOrderedBag()}
}

// FormRoot is the top-level Form or MDIForm of a .frm/.ctl/.dob file: the
// same shape as Control, distinguished by Kind.
type FormRoot struct {
	Kind Kind
	*Control
}

// ObjectReference is a parsed "Object = "{GUID}#ver#flags"; "file"" line.
// GUIDVariant records whether the line used the "*\G" prefix syntax.
type ObjectReference struct {
	Raw          string
	GUID         string
	VersionMajor string
	VersionMinor string
	Flags        string
	FilePath     string
	GUIDVariant  bool
}
