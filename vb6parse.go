// Package vb6parse parses VB6 source artifacts: project files (.vbp),
// class/standard modules (.cls/.bas), form files (.frm/.ctl/.dob), and
// their binary resource companions (.frx).
//
// The package is a thin facade over vb6parse's subsystem packages (source,
// token, lexer, cst, parser, project, classmodule, form, frx). Each
// function here is a pure function over its inputs plus a diagnostic list:
// nothing in this module logs, retries, or blocks past what a single parse
// pass needs. The *FromPath convenience wrappers are the only functions
// that perform file I/O; every other entry point works purely over an
// already-decoded source.File or byte slice the caller supplies.
package vb6parse

import (
	"os"

	"github.com/pkg/errors"

	"github.com/scriptandcompile/vb6parse/classmodule"
	"github.com/scriptandcompile/vb6parse/cst"
	"github.com/scriptandcompile/vb6parse/diag"
	"github.com/scriptandcompile/vb6parse/form"
	"github.com/scriptandcompile/vb6parse/frx"
	"github.com/scriptandcompile/vb6parse/lexer"
	"github.com/scriptandcompile/vb6parse/parser"
	"github.com/scriptandcompile/vb6parse/project"
	"github.com/scriptandcompile/vb6parse/source"
	"github.com/scriptandcompile/vb6parse/token"
)

// Decode converts raw bytes (assumed Windows-1252, VB6's native IDE
// encoding) into a SourceFile ready for tokenizing.
func Decode(data []byte, name string) *source.File {
	return source.Decode(data, name)
}

// Tokenize lexes a SourceFile into a flat token stream.
func Tokenize(f *source.File) diag.Result[*token.Stream] {
	return lexer.Tokenize(f)
}

// ParseTokens builds a CST over a token stream.
func ParseTokens(toks *token.Stream) diag.Result[parser.Tree] {
	return parser.ParseTokens(toks)
}

// ParseProject parses a .vbp project file.
func ParseProject(f *source.File) diag.Result[*project.File] {
	return project.Parse(f)
}

// ParseClass parses a .cls class module.
func ParseClass(f *source.File) diag.Result[*classmodule.ClassFile] {
	return classmodule.ParseClass(f)
}

// ParseModule parses a .bas standard module.
func ParseModule(f *source.File) diag.Result[*classmodule.ModuleFile] {
	return classmodule.ParseModule(f)
}

// ParseForm parses a complete .frm/.ctl/.dob form file, including its code
// body's CST.
func ParseForm(f *source.File) diag.Result[*form.File] {
	return form.ParseForm(f)
}

// ParseFormHeader parses only a form file's control tree, without invoking
// the CST parser on its code body.
func ParseFormHeader(f *source.File) diag.Result[*form.FormRoot] {
	return form.ParseFormHeaderOnly(f)
}

// LoadResource resolves a .frx binary resource file.
func LoadResource(data []byte) diag.Result[*frx.File] {
	return frx.Load(data)
}

// SyntaxKind re-exports cst.SyntaxKind so callers inspecting a parsed Tree
// don't need a second import for the CST's node-kind enumeration.
type SyntaxKind = cst.SyntaxKind

// ParseProjectFromPath reads path and parses it as a .vbp project file.
// Like the other *FromPath wrappers it performs file I/O; every other entry
// point works purely over an already-decoded source.File or byte slice the
// caller supplies.
func ParseProjectFromPath(path string) (diag.Result[*project.File], error) {
	f, err := readSourceFile(path)
	if err != nil {
		return diag.Result[*project.File]{}, err
	}
	return ParseProject(f), nil
}

// ParseClassFromPath reads path and parses it as a .cls class module.
func ParseClassFromPath(path string) (diag.Result[*classmodule.ClassFile], error) {
	f, err := readSourceFile(path)
	if err != nil {
		return diag.Result[*classmodule.ClassFile]{}, err
	}
	return ParseClass(f), nil
}

// ParseModuleFromPath reads path and parses it as a .bas standard module.
func ParseModuleFromPath(path string) (diag.Result[*classmodule.ModuleFile], error) {
	f, err := readSourceFile(path)
	if err != nil {
		return diag.Result[*classmodule.ModuleFile]{}, err
	}
	return ParseModule(f), nil
}

// ParseFormFromPath reads path and parses it as a .frm/.ctl/.dob form file.
func ParseFormFromPath(path string) (diag.Result[*form.File], error) {
	f, err := readSourceFile(path)
	if err != nil {
		return diag.Result[*form.File]{}, err
	}
	return ParseForm(f), nil
}

// LoadResourceFromPath reads path and resolves it as a .frx resource file.
func LoadResourceFromPath(path string) (diag.Result[*frx.File], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return diag.Result[*frx.File]{}, errors.Wrapf(err, "read resource file %q", path)
	}
	return LoadResource(data), nil
}

func readSourceFile(path string) (*source.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read source file %q", path)
	}
	return Decode(data, path), nil
}
