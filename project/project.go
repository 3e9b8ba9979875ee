// Package project parses VB6 project manifests (.vbp): a flat,
// line-oriented Key=Value format with a handful of keys that accumulate
// into ordered lists instead of being overwritten.
//
// The line-scanning shape — split into lines, skip blank/comment lines,
// split each remaining line on the first "=", dispatch on the key — is a
// single forward scan over a small dispatch table keyed by the lowercased
// key.
package project

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scriptandcompile/vb6parse/diag"
	"github.com/scriptandcompile/vb6parse/source"
	"github.com/scriptandcompile/vb6parse/token"
)

// Type is the project kind selected by the first Type= line.
type Type int

const (
	TypeUnknown Type = iota
	TypeExe
	TypeControl
	TypeOleExe
	TypeOleDll
)

var projectTypes = map[string]Type{
	"exe":     TypeExe,
	"control": TypeControl,
	"oleexe":  TypeOleExe,
	"oledll":  TypeOleDll,
}

func (t Type) String() string {
	switch t {
	case TypeExe:
		return "Exe"
	case TypeControl:
		return "Control"
	case TypeOleExe:
		return "OleExe"
	case TypeOleDll:
		return "OleDll"
	default:
		return "Unknown"
	}
}

// Reference is a parsed "Reference=" line:
// Reference={GUID}#major.minor#lcid#path#description
type Reference struct {
	GUID         string
	VersionMajor string
	VersionMinor string
	LocaleID     string
	Path         string
	Description  string
	Raw          string // always set; the exact Value text, for round-trip
}

// ModuleEntry is a "Module=Name; Path" line: a named standard module.
type ModuleEntry struct {
	Name string
	Path string
}

// File is the parsed form of a .vbp manifest.
type File struct {
	Type Type

	References []Reference
	Forms      []string // Form= values, path only
	Modules    []ModuleEntry
	Classes    []string // Class= values, path only
	UserControls []string
	UserDocuments []string
	Designers  []string
	Objects    []string // Object= values, raw (GUID#version#path;name style)

	// OtherProperties holds every single-valued Key=Value pair not named
	// above, in first-seen insertion order, so a round-trip can still
	// reproduce them.
	OtherProperties *OrderedBag
}

// OrderedBag is an insertion-ordered, case-insensitive string-to-string
// map, used for the unrecognized project keys and reused by classmodule/
// form for property bags.
type OrderedBag struct {
	keys   []string // original-case keys, insertion order
	lookup map[string]string
}

// NewOrderedBag returns an empty bag.
func NewOrderedBag() *OrderedBag {
	return &OrderedBag{lookup: make(map[string]string)}
}

// Set records key=value. If key (case-insensitively) already exists, its
// value is overwritten in place without disturbing iteration order.
func (b *OrderedBag) Set(key, value string) {
	lk := strings.ToLower(key)
	if _, ok := b.lookup[lk]; !ok {
		b.keys = append(b.keys, key)
	}
	b.lookup[lk] = value
}

// Get returns the value for key (case-insensitive) and whether it was
// present.
func (b *OrderedBag) Get(key string) (string, bool) {
	v, ok := b.lookup[strings.ToLower(key)]
	return v, ok
}

// Has reports whether key is present, case-insensitively.
func (b *OrderedBag) Has(key string) bool {
	_, ok := b.lookup[strings.ToLower(key)]
	return ok
}

// Keys returns the bag's keys in insertion order.
func (b *OrderedBag) Keys() []string {
	out := make([]string, len(b.keys))
	copy(out, b.keys)
	return out
}

// Len returns the number of entries in the bag.
func (b *OrderedBag) Len() int { return len(b.keys) }

// Parse parses a .vbp SourceFile into a project File plus diagnostics.
func Parse(f *source.File) diag.Result[*File] {
	p := &parser{file: f, result: &File{OtherProperties: NewOrderedBag()}}
	p.run()
	return diag.Result[*File]{Value: p.result, Diagnostics: p.diags}
}

type parser struct {
	file   *source.File
	result *File
	diags  []diag.Diagnostic
	line   int
	// seenSingle tracks single-valued keys already set, so a repeated
	// single-valued key records its last occurrence plus a diagnostic.
	seenSingle map[string]bool
}

// multiValuedKeys accumulate into ordered lists rather than being
// overwritten.
var multiValuedKeys = map[string]bool{
	"reference": true, "form": true, "module": true, "class": true,
	"usercontrol": true, "userdocument": true, "designer": true, "object": true,
}

func (p *parser) run() {
	p.seenSingle = make(map[string]bool)
	lines := splitLines(p.file.Text())
	for i, raw := range lines {
		p.line = i + 1
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "'") {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			// Not a recognized line shape; ignored rather than treated as
			// fatal.
			continue
		}
		key := strings.TrimSpace(line[:eq])
		value := strings.TrimSpace(line[eq+1:])
		p.dispatch(key, value)
	}
}

// splitLines splits on "\n", tolerating a lone "\r" the way the rest of
// vb6parse's line-oriented readers do: a bare "\r" is still a line
// terminator.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

func (p *parser) dispatch(key, value string) {
	lk := strings.ToLower(key)
	switch {
	case lk == "type":
		p.setType(value)
	case lk == "reference":
		p.result.References = append(p.result.References, p.parseReference(value))
	case lk == "form":
		p.result.Forms = append(p.result.Forms, value)
	case lk == "module":
		p.result.Modules = append(p.result.Modules, p.parseModuleEntry(value))
	case lk == "class":
		p.result.Classes = append(p.result.Classes, value)
	case lk == "usercontrol":
		p.result.UserControls = append(p.result.UserControls, value)
	case lk == "userdocument":
		p.result.UserDocuments = append(p.result.UserDocuments, value)
	case lk == "designer":
		p.result.Designers = append(p.result.Designers, value)
	case lk == "object":
		p.result.Objects = append(p.result.Objects, value)
	default:
		if multiValuedKeys[lk] {
			// unreachable given the cases above, kept for clarity of intent
			return
		}
		if p.seenSingle[lk] {
			p.errorf(diag.ProjectDuplicateKey, "duplicate key %q", key)
		}
		p.seenSingle[lk] = true
		p.result.OtherProperties.Set(key, value)
	}
}

func (p *parser) setType(value string) {
	if p.result.Type != TypeUnknown {
		p.errorf(diag.ProjectDuplicateKey, "duplicate Type= line")
		return
	}
	t, ok := projectTypes[strings.ToLower(value)]
	if !ok {
		p.errorf(diag.ProjectUnknownType, "unknown project type %q", value)
		return
	}
	p.result.Type = t
}

// parseModuleEntry parses "Name; Path" into a ModuleEntry. Module= lines
// that don't contain a semicolon are stored with an empty Name and the
// whole value as Path, a best-effort fallback rather than an abort.
func (p *parser) parseModuleEntry(value string) ModuleEntry {
	if idx := strings.IndexByte(value, ';'); idx >= 0 {
		return ModuleEntry{
			Name: strings.TrimSpace(value[:idx]),
			Path: strings.TrimSpace(value[idx+1:]),
		}
	}
	return ModuleEntry{Path: value}
}

// parseReference parses "{GUID}#major.minor#lcid#path#description" (the
// GUID may carry the IDE's "*\G" prefix). A value that doesn't match this
// shape is retained verbatim in Raw and reported with a diagnostic rather
// than aborting the parse.
func (p *parser) parseReference(value string) Reference {
	ref := Reference{Raw: value}
	rest := strings.TrimPrefix(value, `*\G`)
	parts := strings.Split(rest, "#")
	if len(parts) < 4 || !strings.HasPrefix(parts[0], "{") || !strings.HasSuffix(parts[0], "}") {
		p.errorf(diag.ProjectMalformedReference, "malformed reference line %q", value)
		return ref
	}
	ref.GUID = parts[0]
	verParts := strings.SplitN(parts[1], ".", 2)
	ref.VersionMajor = verParts[0]
	if len(verParts) > 1 {
		ref.VersionMinor = verParts[1]
	}
	if _, err := strconv.ParseUint(parts[2], 16, 64); err != nil {
		p.errorf(diag.ProjectMalformedReference, "malformed locale id in reference %q", value)
	}
	ref.LocaleID = parts[2]
	ref.Path = parts[3]
	if len(parts) > 4 {
		ref.Description = strings.Join(parts[4:], "#")
	}
	return ref
}

func (p *parser) errorf(kind diag.Kind, format string, args ...any) {
	p.diags = append(p.diags, diag.Diagnostic{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Span: token.Span{
			File: p.file.Name(),
			Line: p.line,
		},
	})
}
