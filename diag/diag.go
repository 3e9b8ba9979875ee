// Package diag provides the taxonomy of recoverable errors each vb6parse
// subsystem can raise, and the Result[T] wrapper every entry point returns
// instead of panicking or aborting on the first bad token, statement,
// property, or record.
package diag

import "github.com/scriptandcompile/vb6parse/token"

// Kind is a closed, per-subsystem enumeration of recoverable error
// conditions. Grouped by prefix (Lex*, CST*, Project*, Module*, Form*,
// Resource*) so a single flat type still reads as a per-subsystem taxonomy
// without needing six separate exported types that every caller would
// have to type-switch between.
type Kind int

const (
	// Lex errors
	LexUnterminatedString Kind = iota
	LexUnterminatedDate
	LexBadNumericSuffix
	LexBadRadixDigits
	LexUnexpectedChar

	// CST errors
	CSTExpectedToken
	CSTUnmatchedTerminator
	CSTUnexpectedStatementStarter

	// Project errors
	ProjectMalformedReference
	ProjectDuplicateKey
	ProjectUnknownType

	// Class/module errors
	ModuleMissingVersion
	ModuleMalformedAttribute
	ModuleMissingVBName

	// Form errors
	FormMissingTopLevelBegin
	FormMismatchedBeginEnd
	FormUnknownPropertySyntax
	FormInvalidTopLevelControl
	FormMalformedFRXReference

	// Resource (FRX) errors
	ResourceSizeUnderflow
	ResourceTruncatedRecord
	ResourceUnknownHeaderShape
	ResourceListCountExceedsRemaining
)

var kindNames = map[Kind]string{
	LexUnterminatedString:             "unterminated string literal",
	LexUnterminatedDate:               "unterminated date literal",
	LexBadNumericSuffix:               "invalid numeric suffix",
	LexBadRadixDigits:                 "invalid hex/octal digit sequence",
	LexUnexpectedChar:                 "unexpected character",
	CSTExpectedToken:                  "expected token",
	CSTUnmatchedTerminator:            "unmatched block terminator",
	CSTUnexpectedStatementStarter:     "unexpected statement starter",
	ProjectMalformedReference:         "malformed reference line",
	ProjectDuplicateKey:               "duplicate single-valued key",
	ProjectUnknownType:                "unknown project type",
	ModuleMissingVersion:              "missing VERSION line",
	ModuleMalformedAttribute:          "malformed attribute line",
	ModuleMissingVBName:               "missing required VB_Name attribute",
	FormMissingTopLevelBegin:          "missing top-level Begin",
	FormMismatchedBeginEnd:            "mismatched Begin/End",
	FormUnknownPropertySyntax:         "unknown property syntax",
	FormInvalidTopLevelControl:        "invalid top-level control kind",
	FormMalformedFRXReference:         "malformed FRX reference",
	ResourceSizeUnderflow:             "size underflow",
	ResourceTruncatedRecord:           "truncated record",
	ResourceUnknownHeaderShape:        "unknown header shape",
	ResourceListCountExceedsRemaining: "list-items count exceeds remaining bytes",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown diagnostic kind"
}

// Diagnostic is one recoverable parse error: a machine-readable Kind, a
// human message, the primary Span it occurred at, and optional secondary
// spans (e.g. the opening Begin a mismatched End refers back to).
type Diagnostic struct {
	Kind      Kind
	Message   string
	Span      token.Span
	Secondary []token.Span
}

func (d Diagnostic) String() string {
	return d.Message
}
