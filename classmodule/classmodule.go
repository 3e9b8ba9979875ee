// Package classmodule parses VB6 class modules (.cls) and standard modules
// (.bas): a three-phase header (VERSION line, an optional BEGIN…END
// attribute block for classes, then Attribute VB_X lines) followed by a
// code body handed to package parser (spec.md §4.6).
//
// The phase-by-phase line scan mirrors package project's Key=Value reader
// (both are "line-oriented text before the real grammar starts"), reusing
// project.OrderedBag for the header's attribute bags rather than
// reinventing an insertion-ordered map.
package classmodule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scriptandcompile/vb6parse/diag"
	"github.com/scriptandcompile/vb6parse/lexer"
	"github.com/scriptandcompile/vb6parse/parser"
	"github.com/scriptandcompile/vb6parse/project"
	"github.com/scriptandcompile/vb6parse/source"
)

// ClassFile is the parsed form of a .cls module.
type ClassFile struct {
	VersionMajor, VersionMinor string
	// Header holds the BEGIN…END attribute block's Key=Value pairs
	// (MultiUse, Persistable, DataBindingBehavior, DataSourceBehavior,
	// MTSTransactionMode).
	Header *project.OrderedBag
	// Attributes holds every "Attribute VB_X = ..." line, keyed by the
	// full attribute name ("VB_Name", "VB_Exposed", ...).
	Attributes *project.OrderedBag
	Code       *parser.Tree
}

// ModuleFile is the parsed form of a .bas module. It has no BEGIN…END
// block (spec.md §4.6: "Modules have no such block").
type ModuleFile struct {
	VersionMajor, VersionMinor string
	Attributes                 *project.OrderedBag
	Code                       *parser.Tree
}

// ParseClass parses a .cls SourceFile.
func ParseClass(f *source.File) diag.Result[*ClassFile] {
	h := newHeaderScanner(f, true)
	h.run()
	code, codeDiags := parseCodeBody(f, h.codeStart)
	return diag.Result[*ClassFile]{
		Value: &ClassFile{
			VersionMajor: h.versionMajor,
			VersionMinor: h.versionMinor,
			Header:       h.header,
			Attributes:   h.attributes,
			Code:         code,
		},
		Diagnostics: append(h.diags, codeDiags...),
	}
}

// ParseModule parses a .bas SourceFile.
func ParseModule(f *source.File) diag.Result[*ModuleFile] {
	h := newHeaderScanner(f, false)
	h.run()
	code, codeDiags := parseCodeBody(f, h.codeStart)
	return diag.Result[*ModuleFile]{
		Value: &ModuleFile{
			VersionMajor: h.versionMajor,
			VersionMinor: h.versionMinor,
			Attributes:   h.attributes,
			Code:         code,
		},
		Diagnostics: append(h.diags, codeDiags...),
	}
}

// parseCodeBody tokenizes and parses the text of f starting at byte offset
// codeStart as a fresh, zero-based source.File — the code body's CST text
// is then a byte-identical slice of f.Text()[codeStart:] (spec.md §8
// scenario 2), even though diagnostic spans within it are relative to the
// slice rather than the whole file.
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

type headerScanner struct {
	file         *source.File
	isClass      bool
	lines        []source.LineSpan
	idx          int
	diags        []diag.Diagnostic
	versionMajor string
	versionMinor string
	header       *project.OrderedBag
	attributes   *project.OrderedBag
	codeStart    int
}

func newHeaderScanner(f *source.File, isClass bool) *headerScanner {
	return &headerScanner{
		file:       f,
		isClass:    isClass,
		lines:      source.SplitLines(f.Text()),
		header:     project.NewOrderedBag(),
		attributes: project.NewOrderedBag(),
	}
}

func (h *headerScanner) run() {
	h.parseVersionLine()
	if h.isClass {
		h.parseBeginEndBlock()
	}
	h.parseAttributeLines()
	if !h.attributes.Has("VB_Name") && h.file.Text() != "" {
		h.errorf(diag.ModuleMissingVBName, "missing required VB_Name attribute")
	}
	if h.idx < len(h.lines) {
		h.codeStart = h.lines[h.idx].Start
	} else {
		h.codeStart = len(h.file.Text())
	}
}

func (h *headerScanner) peekLine() (source.LineSpan, bool) {
	if h.idx >= len(h.lines) {
		return source.LineSpan{}, false
	}
	return h.lines[h.idx], true
}

func (h *headerScanner) parseVersionLine() {
	line, ok := h.peekLine()
	if !ok {
		h.errorf(diag.ModuleMissingVersion, "missing VERSION line")
		return
	}
	fields := strings.Fields(strings.TrimSpace(line.Text))
	if len(fields) < 2 || !strings.EqualFold(fields[0], "VERSION") {
		h.errorf(diag.ModuleMissingVersion, "missing VERSION line")
		return
	}
	major, minor, ok := splitVersionNumber(fields[1])
	if !ok {
		h.errorf(diag.ModuleMalformedAttribute, "malformed VERSION number %q", fields[1])
	}
	h.versionMajor, h.versionMinor = major, minor
	h.idx++
}

func splitVersionNumber(s string) (major, minor string, ok bool) {
	parts := strings.SplitN(s, ".", 2)
	if _, err := strconv.Atoi(parts[0]); err != nil {
		return "", "", false
	}
	major = parts[0]
	if len(parts) > 1 {
		minor = parts[1]
	}
	return major, minor, true
}

// parseBeginEndBlock consumes a "BEGIN\n Key = Value\n ... \nEND" block
// for classes (spec.md §4.6 phase 2). Absence of a BEGIN line is treated
// as the block simply not being present, not an error: some hand-edited
// .cls files omit it.
func (h *headerScanner) parseBeginEndBlock() {
	line, ok := h.peekLine()
	if !ok || !strings.EqualFold(strings.TrimSpace(line.Text), "BEGIN") {
		return
	}
	h.idx++
	for {
		line, ok := h.peekLine()
		if !ok {
			h.errorf(diag.ModuleMalformedAttribute, "unterminated BEGIN block in class header")
			return
		}
		trimmed := strings.TrimSpace(line.Text)
		if strings.EqualFold(trimmed, "END") {
			h.idx++
			return
		}
		h.idx++
		eq := strings.IndexByte(trimmed, '=')
		if eq < 0 {
			h.errorf(diag.ModuleMalformedAttribute, "malformed attribute line %q", trimmed)
			continue
		}
		key := strings.TrimSpace(trimmed[:eq])
		value := strings.TrimSpace(trimmed[eq+1:])
		// A trailing "'comment" on a header attribute (e.g. "MultiUse =
		// -1  'True") documents the value's meaning but isn't part of it.
		if ci := strings.IndexByte(value, '\''); ci >= 0 {
			value = strings.TrimSpace(value[:ci])
		}
		h.header.Set(key, value)
	}
}

// parseAttributeLines consumes "Attribute VB_X = Value" lines (spec.md
// §4.6 phase 3), stopping at the first line that doesn't match the shape —
// that line begins the code body.
func (h *headerScanner) parseAttributeLines() {
	for {
		line, ok := h.peekLine()
		if !ok {
			return
		}
		trimmed := strings.TrimSpace(line.Text)
		const prefix = "attribute "
		if len(trimmed) < len(prefix) || !strings.EqualFold(trimmed[:len(prefix)], prefix) {
			return
		}
		h.idx++
		rest := strings.TrimSpace(trimmed[len(prefix):])
		eq := strings.IndexByte(rest, '=')
		if eq < 0 {
			h.errorf(diag.ModuleMalformedAttribute, "malformed attribute line %q", trimmed)
			continue
		}
		key := strings.TrimSpace(rest[:eq])
		value := strings.TrimSpace(rest[eq+1:])
		h.attributes.Set(key, value)
	}
}

func (h *headerScanner) errorf(kind diag.Kind, format string, args ...any) {
	h.diags = append(h.diags, diag.Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...)})
}
