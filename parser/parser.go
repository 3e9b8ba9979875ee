// Package parser builds a red-green concrete syntax tree from a token
// stream: a recursive-descent parser over VB6's statement and expression
// grammar, driving a cst.Builder through Start/Token/Finish events and
// recovering from malformed input by synchronizing to the next
// statement-starter or block terminator instead of aborting the parse.
package parser

import (
	"github.com/scriptandcompile/vb6parse/cst"
	"github.com/scriptandcompile/vb6parse/diag"
	"github.com/scriptandcompile/vb6parse/token"
)

// Tree is the result of parsing a token stream: a CST root plus the source
// filename it came from, for diagnostic rendering.
type Tree struct {
	File string
	Root *cst.Red
}

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithMaxErrors caps how many diagnostics a parse will record. Once the cap
// is reached, further errors are not recorded; the parse itself continues
// unchanged. Zero (the default) means unlimited.
func WithMaxErrors(n int) Option {
	return func(p *Parser) { p.maxErrors = n }
}

// Parser holds the mutable state of one parse: the token cursor, the tree
// builder, and the accumulated diagnostics.
type Parser struct {
	toks       *token.Stream
	b          *cst.Builder
	diags      []diag.Diagnostic
	parenDepth int
	maxErrors  int
	// stmtLineStart is true while parsing a statement that begins a fresh
	// logical line, which is the only position a label may appear at.
	stmtLineStart bool
}

// New constructs a Parser over toks.
func New(toks *token.Stream, opts ...Option) *Parser {
	p := &Parser{toks: toks, b: cst.NewBuilder()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseTokens is the package's conceptual entry point: parse(TokenStream) →
// PartialResult<CstTree>.
func ParseTokens(toks *token.Stream) diag.Result[Tree] {
	p := New(toks)
	root := p.ParseCompilationUnit()
	return diag.Result[Tree]{Value: Tree{File: toks.File, Root: root}, Diagnostics: p.diags}
}

// ParseCompilationUnit parses a whole code body (everything after a class,
// module, or form's header) as a flat statement list, returning the red
// tree root.
func (p *Parser) ParseCompilationUnit() *cst.Red {
	p.b.Start(cst.SynCompilationUnit)
	p.parseStatementList(func() bool { return p.toks.Peek().Kind == token.EOF })
	p.leadingTrivia()
	if p.toks.Peek().Kind == token.EOF {
		p.b.Token(p.toks.Next())
	}
	green := p.b.Finish()
	return cst.NewRoot(green)
}

// leadingTrivia drains whitespace, comment, and line-continuation tokens
// sitting before the cursor into the node currently being built, without
// consuming a significant token. This is how trivia becomes leaf nodes
// attached next to the significant token that follows, keeping the tree's
// concatenated text byte-identical to the source. Newline tokens are NOT
// drained: a newline terminates a statement, so the grammar has to see it
// — an expression must not silently continue onto the next line the way it
// does across a line continuation.
func (p *Parser) leadingTrivia() {
	for {
		k := p.toks.Peek().Kind
		if !k.IsTrivia() || k == token.Newline {
			return
		}
		p.b.Token(p.toks.Next())
	}
}

// nextSignificantIdx returns the index of the token peek would return: the
// first token at or after the cursor that leadingTrivia would not flush.
func (p *Parser) nextSignificantIdx() int {
	i := p.toks.Pos()
	for {
		t := p.toks.At(i)
		if t.Kind.IsTrivia() && t.Kind != token.Newline {
			i++
			continue
		}
		return i
	}
}

// peek returns the next significant token without consuming or emitting
// anything. Trivia ahead of it stays pending: it is only flushed into the
// tree by bump, immediately before the token it precedes, so that a
// detached node built and Pushed later can never end up textually after
// trivia that precedes it in the source.
func (p *Parser) peek() token.Token {
	return p.toks.At(p.nextSignificantIdx())
}

// bump flushes trivia, then consumes and emits the next significant token.
func (p *Parser) bump() token.Token {
	p.leadingTrivia()
	tok := p.toks.Next()
	p.b.Token(tok)
	switch tok.Kind {
	case token.LParen:
		p.parenDepth++
	case token.RParen:
		if p.parenDepth > 0 {
			p.parenDepth--
		}
	}
	return tok
}

func (p *Parser) at(kind token.Kind) bool { return p.peek().Kind == kind }

func (p *Parser) atKeyword(kw token.KeywordID) bool {
	t := p.peek()
	return t.Kind == token.Keyword && t.Keyword == kw
}

func (p *Parser) atAnyKeyword(kws ...token.KeywordID) bool {
	t := p.peek()
	if t.Kind != token.Keyword {
		return false
	}
	for _, kw := range kws {
		if t.Keyword == kw {
			return true
		}
	}
	return false
}

// expect bumps and returns the next token if it matches kind, else records
// a diagnostic and returns the zero Token without consuming it.
func (p *Parser) expect(kind token.Kind, what string) (token.Token, bool) {
	if p.at(kind) {
		return p.bump(), true
	}
	p.errorf(diag.CSTExpectedToken, "expected "+what)
	return token.Token{}, false
}

func (p *Parser) expectKeyword(kw token.KeywordID) bool {
	if p.atKeyword(kw) {
		p.bump()
		return true
	}
	p.errorf(diag.CSTExpectedToken, "expected "+kw.String())
	return false
}

func (p *Parser) errorf(kind diag.Kind, msg string) {
	if p.maxErrors > 0 && len(p.diags) >= p.maxErrors {
		return
	}
	tok := p.peek()
	p.diags = append(p.diags, diag.Diagnostic{Kind: kind, Message: msg, Span: tok.Span})
}

// recoverTo wraps tokens in an Error syntax node, advancing past one
// offending token and then anything further that isn't a synchronization
// point: end-of-line outside a parenthesized group, a statement-starter
// keyword, or "End". This bounds how much a single malformed statement can
// swallow.
func (p *Parser) recoverTo(sync func() bool) {
	p.b.StartError()
	if p.peek().Kind != token.EOF {
		p.bump()
	}
	for !sync() && p.peek().Kind != token.EOF {
		p.bump()
	}
	p.b.Finish()
}

// nextNonBlank returns the next token looking past whitespace and comments
// but not newlines, without consuming or emitting anything.
func (p *Parser) nextNonBlank() token.Token {
	for i := p.toks.Pos(); ; i++ {
		t := p.toks.At(i)
		if t.Kind == token.Whitespace || t.Kind.IsComment() {
			continue
		}
		return t
	}
}

func (p *Parser) atStatementSync() bool {
	if p.parenDepth > 0 {
		return false
	}
	t := p.nextNonBlank()
	if t.Kind == token.Newline || t.Kind == token.Colon {
		return true
	}
	return t.Kind == token.Keyword && isStatementStarter(t.Keyword)
}

// atEndOfAnyBlock reports whether the cursor sits at an "End <kw>" block
// terminator ("End Sub", "End If", ...), as opposed to the bare "End"
// statement that terminates the running program.
func (p *Parser) atEndOfAnyBlock() bool {
	if !p.atKeyword(token.KwEnd) {
		return false
	}
	i := p.nextSignificantIdx() + 1
	for p.toks.At(i).Kind == token.Whitespace {
		i++
	}
	t := p.toks.At(i)
	return t.Kind == token.Keyword && isBlockCloseKeyword(t.Keyword)
}

// atEndOf reports whether the cursor sits at "End <kw>" for one specific
// block keyword.
func (p *Parser) atEndOf(kw token.KeywordID) bool {
	if !p.atKeyword(token.KwEnd) {
		return false
	}
	i := p.nextSignificantIdx() + 1
	for p.toks.At(i).Kind == token.Whitespace {
		i++
	}
	t := p.toks.At(i)
	return t.Kind == token.Keyword && t.Keyword == kw
}

func isBlockCloseKeyword(kw token.KeywordID) bool {
	switch kw {
	case token.KwSub, token.KwFunction, token.KwProperty, token.KwIf,
		token.KwSelect, token.KwWith, token.KwEnum, token.KwType:
		return true
	}
	return false
}

// expectMemberName consumes the name after a "." or "!". Reserved words are
// legal member names ("obj.Name", "Text1.Text"), so any keyword is accepted
// here alongside a plain identifier.
func (p *Parser) expectMemberName() {
	t := p.peek()
	if t.Kind == token.Ident || t.Kind == token.Keyword {
		p.bump()
		return
	}
	p.errorf(diag.CSTExpectedToken, "expected member name")
}

// expectName consumes a declared name. Most of the keyword table is truly
// reserved, but the contextual spellings (Text, Binary, Access, ...) are
// only special inside one statement's fixed syntax and remain legal
// identifiers everywhere else.
func (p *Parser) expectName(what string) {
	t := p.peek()
	if t.Kind == token.Ident || (t.Kind == token.Keyword && isContextualKeyword(t.Keyword)) {
		p.bump()
		return
	}
	p.errorf(diag.CSTExpectedToken, "expected "+what)
}

func isContextualKeyword(kw token.KeywordID) bool {
	switch kw {
	case token.KwAccess, token.KwAlias, token.KwAppend, token.KwBase,
		token.KwBinary, token.KwCompare, token.KwDatabase, token.KwExplicit,
		token.KwOutput, token.KwRandom, token.KwRead, token.KwShared,
		token.KwText, token.KwPreserve:
		return true
	}
	return false
}

// isTypeKeyword reports whether kw names a built-in type. These are
// reserved ("Dim Integer" is invalid) but still appear in expression
// position as the conversion/builtin functions of the same spelling
// (Date, String(n, ch)).
func isTypeKeyword(kw token.KeywordID) bool {
	switch kw {
	case token.KwInteger, token.KwLong, token.KwSingle, token.KwDouble,
		token.KwBoolean, token.KwByte, token.KwCurrency, token.KwDate,
		token.KwString, token.KwVariant, token.KwObject, token.KwCollection:
		return true
	}
	return false
}

// expectTypeName consumes the name in type position: a built-in type
// keyword, a user-defined (identifier) type, or a contextual spelling.
func (p *Parser) expectTypeName() {
	t := p.peek()
	if t.Kind == token.Ident ||
		(t.Kind == token.Keyword && (isTypeKeyword(t.Keyword) || isContextualKeyword(t.Keyword))) {
		p.bump()
		return
	}
	p.errorf(diag.CSTExpectedToken, "expected type name")
}

func isStatementStarter(kw token.KeywordID) bool {
	switch kw {
	case token.KwDim, token.KwReDim, token.KwConst, token.KwPublic, token.KwPrivate,
		token.KwFriend, token.KwStatic, token.KwEnum, token.KwType, token.KwDeclare,
		token.KwProperty, token.KwEvent, token.KwRaiseEvent, token.KwImplements,
		token.KwIf, token.KwSelect, token.KwFor, token.KwDo, token.KwWhile,
		token.KwWith, token.KwGoTo, token.KwGoSub, token.KwOn, token.KwResume,
		token.KwExit, token.KwSub, token.KwFunction, token.KwCall, token.KwOption,
		token.KwOpen, token.KwClose, token.KwSeek, token.KwFileCopy, token.KwKill,
		token.KwName, token.KwMkDir, token.KwRmDir, token.KwChDir, token.KwChDrive,
		token.KwLoad, token.KwUnload, token.KwMid, token.KwMidB, token.KwLSet,
		token.KwRSet, token.KwErase, token.KwRandomize, token.KwSet, token.KwLet,
		token.KwPrint, token.KwLineInput, token.KwInput, token.KwPut, token.KwGet,
		token.KwLock, token.KwUnlock, token.KwEnd, token.KwNext, token.KwLoop, token.KwWend,
		token.KwStop, token.KwReturn, token.KwError:
		return true
	}
	return false
}
