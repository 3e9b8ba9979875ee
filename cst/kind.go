// Package cst implements the red-green concrete syntax tree: an immutable,
// structurally-shared Green tree recording kinds and source text, and a
// lazily-constructed Red tree of absolute-offset, parent-linked views over
// it. Splitting the tree into these two layers lets an edit reuse unaffected
// subtrees instead of rebuilding the whole parse.
package cst

import "github.com/scriptandcompile/vb6parse/token"

// SyntaxKind identifies what a tree node represents. Terminal kinds are the
// token.Kind values verbatim (0..nonTerminalBase-1); non-terminal (grammar
// production) kinds start at nonTerminalBase, so the whole space is one flat
// enum rather than separate terminal/non-terminal types.
type SyntaxKind int

const nonTerminalBase SyntaxKind = 1000

// TokenKind lifts a lexical token.Kind into the SyntaxKind space used by
// leaf (terminal) tree nodes.
func TokenKind(k token.Kind) SyntaxKind { return SyntaxKind(k) }

// IsTerminal reports whether a kind denotes a leaf (token) node rather than
// a grammar production.
func (k SyntaxKind) IsTerminal() bool { return k < nonTerminalBase }

const (
	SynCompilationUnit SyntaxKind = nonTerminalBase + iota
	SynStatementList
	SynErrorNode

	// Declarations
	SynSubDecl
	SynFunctionDecl
	SynPropertyDecl
	SynParameterList
	SynParameter
	SynConstDecl
	SynDimStatement
	SynReDimStatement
	SynEraseStatement
	SynOptionStatement
	SynDeclareStatement
	SynEventDecl
	SynTypeDecl
	SynTypeMember
	SynEnumDecl
	SynEnumMember

	// Statements
	SynLetStatement
	SynSetStatement
	SynCallStatement
	SynIfStatement
	SynElseIfClause
	SynElseClause
	SynForStatement
	SynForEachStatement
	SynWhileStatement
	SynDoLoopStatement
	SynSelectCaseStatement
	SynCaseClause
	SynOnErrorStatement
	SynResumeStatement
	SynExitStatement
	SynGotoStatement
	SynLabelStatement
	SynOpenStatement
	SynCloseStatement
	SynPrintStatement
	SynInputStatement
	SynLineInputStatement
	SynWithStatement
	SynRaiseEventStatement
	SynStopStatement
	SynEndStatement
	SynReturnStatement

	// Expressions
	SynBinaryExpr
	SynUnaryExpr
	SynCallExpr
	SynIndexExpr
	SynMemberExpr
	SynParenExpr
	SynNewExpr
	SynArgumentList
	SynArgument
	SynLiteralExpr
	SynNameExpr
)

var syntaxKindNames = map[SyntaxKind]string{
	SynCompilationUnit:     "CompilationUnit",
	SynStatementList:       "StatementList",
	SynErrorNode:           "Error",
	SynSubDecl:             "SubDecl",
	SynFunctionDecl:        "FunctionDecl",
	SynPropertyDecl:        "PropertyDecl",
	SynParameterList:       "ParameterList",
	SynParameter:           "Parameter",
	SynConstDecl:           "ConstDecl",
	SynDimStatement:        "DimStatement",
	SynReDimStatement:      "ReDimStatement",
	SynEraseStatement:      "EraseStatement",
	SynOptionStatement:     "OptionStatement",
	SynDeclareStatement:    "DeclareStatement",
	SynEventDecl:           "EventDecl",
	SynTypeDecl:            "TypeDecl",
	SynTypeMember:          "TypeMember",
	SynEnumDecl:            "EnumDecl",
	SynEnumMember:          "EnumMember",
	SynLetStatement:        "LetStatement",
	SynSetStatement:        "SetStatement",
	SynCallStatement:       "CallStatement",
	SynIfStatement:         "IfStatement",
	SynElseIfClause:        "ElseIfClause",
	SynElseClause:          "ElseClause",
	SynForStatement:        "ForStatement",
	SynForEachStatement:    "ForEachStatement",
	SynWhileStatement:      "WhileStatement",
	SynDoLoopStatement:     "DoLoopStatement",
	SynSelectCaseStatement: "SelectCaseStatement",
	SynCaseClause:          "CaseClause",
	SynOnErrorStatement:    "OnErrorStatement",
	SynResumeStatement:     "ResumeStatement",
	SynExitStatement:       "ExitStatement",
	SynGotoStatement:       "GotoStatement",
	SynLabelStatement:      "LabelStatement",
	SynOpenStatement:       "OpenStatement",
	SynCloseStatement:      "CloseStatement",
	SynPrintStatement:      "PrintStatement",
	SynInputStatement:      "InputStatement",
	SynLineInputStatement:  "LineInputStatement",
	SynWithStatement:       "WithStatement",
	SynRaiseEventStatement: "RaiseEventStatement",
	SynStopStatement:       "StopStatement",
	SynEndStatement:        "EndStatement",
	SynReturnStatement:     "ReturnStatement",
	SynBinaryExpr:          "BinaryExpr",
	SynUnaryExpr:           "UnaryExpr",
	SynCallExpr:            "CallExpr",
	SynIndexExpr:           "IndexExpr",
	SynMemberExpr:          "MemberExpr",
	SynParenExpr:           "ParenExpr",
	SynNewExpr:             "NewExpr",
	SynArgumentList:        "ArgumentList",
	SynArgument:            "Argument",
	SynLiteralExpr:         "LiteralExpr",
	SynNameExpr:            "NameExpr",
}

func (k SyntaxKind) String() string {
	if !k.IsTerminal() {
		if name, ok := syntaxKindNames[k]; ok {
			return name
		}
		return "UnknownNonTerminal"
	}
	return token.Kind(k).String()
}
