package form

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/scriptandcompile/vb6parse/diag"
	"github.com/scriptandcompile/vb6parse/lexer"
	"github.com/scriptandcompile/vb6parse/parser"
	"github.com/scriptandcompile/vb6parse/project"
	"github.com/scriptandcompile/vb6parse/source"
	"github.com/scriptandcompile/vb6parse/token"
)

// File is the fully parsed form of a .frm/.ctl/.dob file: version,
// Object references, the control tree, trailing VB_X attributes, and the
// code body's CST.
type File struct {
	VersionMajor, VersionMinor string
	Objects                    []ObjectReference
	Root                       *FormRoot
	Attributes                 *project.OrderedBag
	Code                       *parser.Tree
}

// ParseForm parses a complete .frm/.ctl/.dob SourceFile: the hybrid header
// (version, Object references, the control tree, VB_X attributes) followed
// by a CST over the remaining code body.
func ParseForm(f *source.File) diag.Result[*File] {
	s := newScanner(f)
	s.run()
	code, codeDiags := parseCodeBody(f, s.codeStart)
	return diag.Result[*File]{
		Value: &File{
			VersionMajor: s.versionMajor,
			VersionMinor: s.versionMinor,
			Objects:      s.objects,
			Root:         s.root,
			Attributes:   s.attributes,
			Code:         code,
		},
		Diagnostics: append(s.diags, codeDiags...),
	}
}

// ParseFormHeaderOnly parses just the control tree, without invoking the
// CST parser on the code body at all — useful when a caller only needs the
// control tree and wants to skip the cost of lexing and parsing code it
// doesn't care about.
func ParseFormHeaderOnly(f *source.File) diag.Result[*FormRoot] {
	s := newScanner(f)
	s.run()
	return diag.Result[*FormRoot]{Value: s.root, Diagnostics: s.diags}
}

func parseCodeBody(f *source.File, codeStart int) (*parser.Tree, []diag.Diagnostic) {
	text := f.Text()
	if codeStart > len(text) {
		codeStart = len(text)
	}
	codeFile := source.New(f.Name(), text[codeStart:])
	lexRes := lexer.Tokenize(codeFile)
	treeRes := parser.ParseTokens(lexRes.Value)
	diags := append(append([]diag.Diagnostic{}, lexRes.Diagnostics...), treeRes.Diagnostics...)
	tree := treeRes.Value
	return &tree, diags
}

// scanner walks the header line by line — see control.go's package doc for
// why lines rather than lexer tokens.
type scanner struct {
	file  *source.File
	lines []source.LineSpan
	idx   int
	diags []diag.Diagnostic

	versionMajor, versionMinor string
	objects                    []ObjectReference
	root                       *FormRoot
	attributes                 *project.OrderedBag
	codeStart                  int
}

func newScanner(f *source.File) *scanner {
	return &scanner{
		file:       f,
		lines:      source.SplitLines(f.Text()),
		attributes: project.NewOrderedBag(),
	}
}

func (s *scanner) run() {
	s.parseVersionLine()
	s.parseObjectLines()
	s.parseRootBlock()
	s.parseAttributeLines()
	if s.idx < len(s.lines) {
		s.codeStart = s.lines[s.idx].Start
	} else {
		s.codeStart = len(s.file.Text())
	}
}

func (s *scanner) peekLine() (source.LineSpan, bool) {
	if s.idx >= len(s.lines) {
		return source.LineSpan{}, false
	}
	return s.lines[s.idx], true
}

func (s *scanner) errorf(kind diag.Kind, format string, args ...any) {
	line := s.idx + 1
	s.diags = append(s.diags, diag.Diagnostic{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Span:    token.Span{File: s.file.Name(), Line: line},
	})
}

func (s *scanner) parseVersionLine() {
	line, ok := s.peekLine()
	if !ok {
		return
	}
	fields := strings.Fields(strings.TrimSpace(line.Text))
	if len(fields) < 2 || !strings.EqualFold(fields[0], "VERSION") {
		return
	}
	parts := strings.SplitN(fields[1], ".", 2)
	s.versionMajor = parts[0]
	if len(parts) > 1 {
		s.versionMinor = parts[1]
	}
	s.idx++
}

func (s *scanner) parseObjectLines() {
	for {
		line, ok := s.peekLine()
		if !ok {
			return
		}
		trimmed := strings.TrimSpace(line.Text)
		const prefix = "object"
		if len(trimmed) < len(prefix) || !strings.EqualFold(trimmed[:len(prefix)], prefix) {
			return
		}
		rest := strings.TrimSpace(trimmed[len(prefix):])
		if !strings.HasPrefix(rest, "=") {
			return
		}
		s.idx++
		value := strings.TrimSpace(rest[1:])
		ref, ok := parseObjectValue(value)
		if !ok {
			s.errorf(diag.FormUnknownPropertySyntax, "malformed Object line %q", value)
			continue
		}
		s.objects = append(s.objects, ref)
	}
}

// objectLinePattern matches both surface syntaxes of an Object line: the
// standard "{GUID}#major.minor#flags"; "file", and the "*\G" variant
// preceding the GUID.
var objectLinePattern = regexp.MustCompile(
	`^"?(\*\\G)?\{([0-9A-Fa-f-]+)\}#(\d+)\.(\d+)#([0-9A-Fa-f]+)"?\s*;\s*"([^"]*)"\s*$`)

func parseObjectValue(value string) (ObjectReference, bool) {
	m := objectLinePattern.FindStringSubmatch(value)
	if m == nil {
		return ObjectReference{}, false
	}
	return ObjectReference{
		Raw:          value,
		GUIDVariant:  m[1] != "",
		GUID:         "{" + m[2] + "}",
		VersionMajor: m[3],
		VersionMinor: m[4],
		Flags:        m[5],
		FilePath:     m[6],
	}, true
}

// parseRootBlock parses the single top-level "Begin <Type> <Name> … End"
// block. Only VB.Form and VB.MDIForm are valid top-level kinds; anything
// else is a diagnostic and the header yields no root.
func (s *scanner) parseRootBlock() {
	line, ok := s.peekLine()
	if !ok {
		s.errorf(diag.FormMissingTopLevelBegin, "missing top-level Begin")
		return
	}
	typeName, name, index, ok := parseBeginLine(line.Text)
	if !ok {
		s.errorf(diag.FormMissingTopLevelBegin, "missing top-level Begin")
		return
	}
	var kind Kind
	switch {
	case strings.EqualFold(typeName, "VB.Form"):
		kind = KindForm
	case strings.EqualFold(typeName, "VB.MDIForm"):
		kind = KindMDIForm
	default:
		s.errorf(diag.FormInvalidTopLevelControl, "invalid top-level control kind %q", typeName)
		return
	}
	s.idx++
	ctl := newControl(typeName, name)
	ctl.Index = index
	s.parseBlockBody(ctl, true)
	s.root = &FormRoot{Kind: kind, Control: ctl}
}

// beginLinePattern matches "Begin <TypeName> <Name>[(index)]".
var beginLinePattern = regexp.MustCompile(`^Begin\s+(\S+)\s+(\S+?)(?:\((\d+)\))?\s*$`)

func parseBeginLine(text string) (typeName, name string, index *int, ok bool) {
	trimmed := strings.TrimSpace(text)
	m := beginLinePattern.FindStringSubmatch(trimmed)
	if m == nil {
		return "", "", nil, false
	}
	typeName, name = m[1], m[2]
	if m[3] != "" {
		n, err := strconv.Atoi(m[3])
		if err == nil {
			index = &n
		}
	}
	return typeName, name, index, true
}

// beginPropertyPattern matches "BeginProperty <Name> [{GUID}]".
var beginPropertyPattern = regexp.MustCompile(`^BeginProperty\s+(\S+)(?:\s+(\{[0-9A-Fa-f-]+\}))?\s*$`)

// parseBlock­Body consumes property lines, nested BeginProperty blocks, and
// nested Begin blocks until a matching End line, appending each into ctl.
// A nested VB.Form/VB.MDIForm control is diagnosed at every depth, whatever
// isRoot says: only the root of a form file may be VB.Form or VB.MDIForm.
func (s *scanner) parseBlockBody(ctl *Control, isRoot bool) {
	for {
		line, ok := s.peekLine()
		if !ok {
			s.errorf(diag.FormMismatchedBeginEnd, "unterminated Begin block for %s %s", ctl.TypeName, ctl.Name)
			return
		}
		trimmed := strings.TrimSpace(line.Text)
		if trimmed == "" {
			s.idx++
			continue
		}
		if strings.EqualFold(trimmed, "End") {
			s.idx++
			return
		}
		if strings.HasPrefix(strings.ToLower(trimmed), "begin ") || strings.EqualFold(trimmed, "begin") {
			typeName, name, index, ok := parseBeginLine(trimmed)
			if !ok {
				s.errorf(diag.FormUnknownPropertySyntax, "malformed Begin line %q", trimmed)
				s.idx++
				continue
			}
			if strings.EqualFold(typeName, "VB.Form") || strings.EqualFold(typeName, "VB.MDIForm") {
				s.errorf(diag.FormInvalidTopLevelControl, "nested %s is not allowed under a control", typeName)
			}
			s.idx++
			child := newControl(typeName, name)
			child.Index = index
			s.parseBlockBody(child, false)
			if strings.EqualFold(typeName, "VB.Menu") {
				ctl.Menus = append(ctl.Menus, child)
			} else {
				ctl.Controls = append(ctl.Controls, child)
			}
			continue
		}
		if m := beginPropertyPattern.FindStringSubmatch(trimmed); m != nil {
			s.idx++
			group := s.parsePropertyGroup(m[1], strings.Trim(m[2], "{}"))
			ctl.PropertyGroups = append(ctl.PropertyGroups, group)
			continue
		}
		key, value, ok := parseKeyValueLine(trimmed)
		if !ok {
			s.errorf(diag.FormUnknownPropertySyntax, "unknown property syntax %q", trimmed)
			s.idx++
			continue
		}
		s.checkResourceRef(value)
		ctl.Properties.Set(key, value)
		s.idx++
	}
}

// parsePropertyGroup consumes a BeginProperty body until its matching
// EndProperty, allowing arbitrary nesting.
func (s *scanner) parsePropertyGroup(name, guid string) *PropertyGroup {
	group := &PropertyGroup{Name: name, GUID: guid}
	for {
		line, ok := s.peekLine()
		if !ok {
			s.errorf(diag.FormMismatchedBeginEnd, "unterminated BeginProperty block for %s", name)
			return group
		}
		trimmed := strings.TrimSpace(line.Text)
		if trimmed == "" {
			s.idx++
			continue
		}
		if strings.EqualFold(trimmed, "EndProperty") {
			s.idx++
			return group
		}
		if m := beginPropertyPattern.FindStringSubmatch(trimmed); m != nil {
			s.idx++
			nested := s.parsePropertyGroup(m[1], strings.Trim(m[2], "{}"))
			group.Entries = append(group.Entries, PropertyGroupEntry{Key: m[1], Nested: nested})
			continue
		}
		key, value, ok := parseKeyValueLine(trimmed)
		if !ok {
			s.errorf(diag.FormUnknownPropertySyntax, "unknown property syntax %q", trimmed)
			s.idx++
			continue
		}
		s.checkResourceRef(value)
		group.Entries = append(group.Entries, PropertyGroupEntry{Key: key, Value: value})
		s.idx++
	}
}

// ResourceRef is a parsed FRX property reference: the resource file's name
// and the hexadecimal byte offset the property's payload starts at.
type ResourceRef struct {
	File   string
	Offset int64
}

// frxRefPattern matches both reference syntaxes: `$"Name.frx":OFFSET` and
// the unprefixed `"Name.frx":OFFSET`, with OFFSET in hex of any width.
var frxRefPattern = regexp.MustCompile(`^\$?"([^"]+)"\s*:\s*([0-9A-Fa-f]+)$`)

// ParseResourceRef parses a property value of the FRX reference form.
// Property values are stored raw in the control tree, so callers that want
// the referenced payload run the value through this and then index the
// companion frx.File by Offset.
func ParseResourceRef(value string) (ResourceRef, bool) {
	m := frxRefPattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return ResourceRef{}, false
	}
	off, err := strconv.ParseInt(m[2], 16, 64)
	if err != nil {
		return ResourceRef{}, false
	}
	return ResourceRef{File: m[1], Offset: off}, true
}

// checkResourceRef diagnoses a property value that commits to the FRX
// reference syntax (the "$" prefix) but doesn't parse as one. Unprefixed
// string values stay unchecked: a plain `"..."` caption is
// indistinguishable from a malformed unprefixed reference.
func (s *scanner) checkResourceRef(value string) {
	if !strings.HasPrefix(value, "$") {
		return
	}
	if _, ok := ParseResourceRef(value); !ok {
		s.errorf(diag.FormMalformedFRXReference, "malformed FRX reference %q", value)
	}
}

// parseKeyValueLine splits a "Key = Value" property line. The value is
// kept as raw source text; converting it to a typed value is left to the
// caller.
func parseKeyValueLine(trimmed string) (key, value string, ok bool) {
	eq := strings.IndexByte(trimmed, '=')
	if eq < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(trimmed[:eq])
	if key == "" {
		return "", "", false
	}
	value = strings.TrimSpace(trimmed[eq+1:])
	return key, value, true
}

func (s *scanner) parseAttributeLines() {
	for {
		line, ok := s.peekLine()
		if !ok {
			return
		}
		trimmed := strings.TrimSpace(line.Text)
		const prefix = "attribute "
		if len(trimmed) < len(prefix) || !strings.EqualFold(trimmed[:len(prefix)], prefix) {
			return
		}
		s.idx++
		rest := strings.TrimSpace(trimmed[len(prefix):])
		eq := strings.IndexByte(rest, '=')
		if eq < 0 {
			s.errorf(diag.FormUnknownPropertySyntax, "malformed attribute line %q", trimmed)
			continue
		}
		key := strings.TrimSpace(rest[:eq])
		value := strings.TrimSpace(rest[eq+1:])
		s.attributes.Set(key, value)
	}
}
