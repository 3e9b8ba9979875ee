package parser

import (
	"github.com/scriptandcompile/vb6parse/cst"
	"github.com/scriptandcompile/vb6parse/diag"
	"github.com/scriptandcompile/vb6parse/token"
)

// isModifierKeyword reports whether kw is one of the access-modifier
// keywords that may prefix a Sub/Function/Property/Const/Enum/Type/Declare/
// Event declaration, or a variable declaration with no leading Dim.
func isModifierKeyword(kw token.KeywordID) bool {
	switch kw {
	case token.KwPublic, token.KwPrivate, token.KwFriend, token.KwStatic:
		return true
	}
	return false
}

// consumeModifiers bumps zero or more leading access-modifier keywords
// into the node currently being built.
func (p *Parser) consumeModifiers() {
	for p.peek().Kind == token.Keyword && isModifierKeyword(p.peek().Keyword) {
		p.bump()
	}
}

// keywordAfterModifiers looks past any leading access-modifier keywords,
// without consuming anything, and reports the keyword that follows (or
// KwNone if it isn't a keyword at all) — the parser needs this one token
// of extra lookahead to tell "Public Sub Foo()" from "Public x As Integer"
// before committing to a particular declaration shape.
func (p *Parser) keywordAfterModifiers() token.KeywordID {
	i := p.nextSignificantIdx()
	for {
		t := p.toks.At(i)
		if t.Kind != token.Keyword || !isModifierKeyword(t.Keyword) {
			break
		}
		i++
		for p.toks.At(i).Kind.IsTrivia() {
			i++
		}
	}
	if t := p.toks.At(i); t.Kind == token.Keyword {
		return t.Keyword
	}
	return token.KwNone
}

// parseModifiedStatement dispatches a statement that begins with one or
// more access modifiers: the construct they prefix (Sub, Function,
// Property, Const, Enum, Type, Declare, Event, or a bare variable
// declaration) is only known after looking past the modifiers.
func (p *Parser) parseModifiedStatement() {
	switch p.keywordAfterModifiers() {
	case token.KwSub, token.KwFunction:
		p.parseSubOrFunctionDecl()
	case token.KwProperty:
		p.parsePropertyDecl()
	case token.KwConst:
		p.parseConstDecl()
	case token.KwEnum:
		p.parseEnumDecl()
	case token.KwType:
		p.parseTypeDecl()
	case token.KwDeclare:
		p.parseDeclareStatement()
	case token.KwEvent:
		p.parseEventDecl()
	default:
		p.parseModifiedVarDecl()
	}
}

// parseModifiedVarDecl handles "Public x As Integer" style variable
// declarations that carry an access modifier but no leading Dim/ReDim.
func (p *Parser) parseModifiedVarDecl() {
	p.b.Start(cst.SynDimStatement)
	p.consumeModifiers()
	if p.atKeyword(token.KwWithEvents) {
		p.bump()
	}
	for {
		p.parseDeclarator()
		if p.at(token.Comma) {
			p.bump()
			continue
		}
		break
	}
	p.b.Finish()
}

// parseDeclarationStatement handles Dim/ReDim variable declarations: a
// comma-separated declarator list of name[(bounds)] [As type], with an
// optional WithEvents for Dim and an optional Preserve for ReDim.
func (p *Parser) parseDeclarationStatement() {
	isReDim := p.atKeyword(token.KwReDim)
	kind := cst.SynDimStatement
	if isReDim {
		kind = cst.SynReDimStatement
	}
	p.b.Start(kind)
	p.bump() // Dim | ReDim
	if isReDim && p.atKeyword(token.KwPreserve) {
		p.bump()
	}
	if p.atKeyword(token.KwWithEvents) {
		p.bump()
	}
	for {
		p.parseDeclarator()
		if p.at(token.Comma) {
			p.bump()
			continue
		}
		break
	}
	p.b.Finish()
}

func (p *Parser) parseDeclarator() {
	p.expectName("variable name")
	if p.at(token.LParen) {
		p.parseArrayBounds()
	}
	if p.atKeyword(token.KwAs) {
		p.bump()
		p.parseTypeName()
	}
}

func (p *Parser) parseArrayBounds() {
	p.bump() // (
	for !p.at(token.RParen) && p.peek().Kind != token.EOF && !p.atStatementSync() {
		p.b.Push(p.parseExpression())
		if p.atKeyword(token.KwTo) {
			p.bump()
			p.b.Push(p.parseExpression())
		}
		if p.at(token.Comma) {
			p.bump()
			continue
		}
		break
	}
	p.expect(token.RParen, "')'")
}

func (p *Parser) parseTypeName() {
	if p.atKeyword(token.KwNew) {
		p.bump()
	}
	p.expectTypeName()
	for p.at(token.Dot) {
		p.bump()
		p.expectMemberName()
	}
	if p.at(token.LParen) {
		p.bump()
		p.expect(token.RParen, "')'")
	}
	if p.at(token.Star) {
		// fixed-length string: As String * 40
		p.bump()
		p.b.Push(p.parseExpression())
	}
}

func (p *Parser) parseConstDecl() {
	p.b.Start(cst.SynConstDecl)
	p.consumeModifiers()
	p.expectKeyword(token.KwConst)
	for {
		p.expectName("constant name")
		if p.atKeyword(token.KwAs) {
			p.bump()
			p.parseTypeName()
		}
		p.expect(token.Assign, "'='")
		p.b.Push(p.parseExpression())
		if p.at(token.Comma) {
			p.bump()
			continue
		}
		break
	}
	p.b.Finish()
}

func (p *Parser) parseEnumDecl() {
	p.b.Start(cst.SynEnumDecl)
	p.consumeModifiers()
	p.expectKeyword(token.KwEnum)
	p.expectName("enum name")
	p.parseStatementListOfMembers(cst.SynEnumMember, func() bool {
		return p.atEndOfAnyBlock()
	}, func() {
		p.expectName("enum member name")
		if p.at(token.Assign) {
			p.bump()
			p.b.Push(p.parseExpression())
		}
	})
	p.expectKeyword(token.KwEnd)
	p.expectKeyword(token.KwEnum)
	p.b.Finish()
}

func (p *Parser) parseTypeDecl() {
	p.b.Start(cst.SynTypeDecl)
	p.consumeModifiers()
	p.expectKeyword(token.KwType)
	p.expectName("type name")
	p.parseStatementListOfMembers(cst.SynTypeMember, func() bool {
		return p.atEndOfAnyBlock()
	}, func() {
		p.expectName("member name")
		if p.at(token.LParen) {
			p.parseArrayBounds()
		}
		if p.atKeyword(token.KwAs) {
			p.bump()
			p.parseTypeName()
		}
	})
	p.expectKeyword(token.KwEnd)
	p.expectKeyword(token.KwType)
	p.b.Finish()
}

// parseStatementListOfMembers is the shared shape behind Enum and Type
// bodies: one member production per non-blank line until stop.
func (p *Parser) parseStatementListOfMembers(kind cst.SyntaxKind, stop func() bool, member func()) {
	p.b.Start(cst.SynStatementList)
	for {
		if stop() || p.peek().Kind == token.EOF {
			break
		}
		if p.at(token.Newline) || p.at(token.Colon) {
			p.bump()
			continue
		}
		before := p.toks.Pos()
		p.b.Start(kind)
		member()
		p.b.Finish()
		if p.toks.Pos() == before {
			p.recoverTo(stop)
		}
	}
	p.b.Finish()
}

func (p *Parser) parseDeclareStatement() {
	p.b.Start(cst.SynDeclareStatement)
	p.consumeModifiers()
	p.expectKeyword(token.KwDeclare)
	if p.atAnyKeyword(token.KwSub, token.KwFunction) {
		p.bump()
	} else {
		p.errorf(diag.CSTExpectedToken, "expected Sub or Function")
	}
	p.expectName("declared name")
	p.expectKeyword(token.KwLib)
	p.expect(token.StringLiteral, "library name")
	if p.atKeyword(token.KwAlias) {
		p.bump()
		p.expect(token.StringLiteral, "alias")
	}
	if p.at(token.LParen) {
		p.parseParameterList()
	}
	if p.atKeyword(token.KwAs) {
		p.bump()
		p.parseTypeName()
	}
	p.b.Finish()
}

func (p *Parser) parseEventDecl() {
	p.b.Start(cst.SynEventDecl)
	p.consumeModifiers()
	p.expectKeyword(token.KwEvent)
	p.expectName("event name")
	if p.at(token.LParen) {
		p.parseParameterList()
	}
	p.b.Finish()
}

func (p *Parser) parseParameterList() {
	p.b.Start(cst.SynParameterList)
	p.bump() // (
	for !p.at(token.RParen) && p.peek().Kind != token.EOF {
		p.b.Start(cst.SynParameter)
		for p.atAnyKeyword(token.KwOptional, token.KwByVal, token.KwByRef, token.KwParamArray) {
			p.bump()
		}
		p.expectName("parameter name")
		if p.at(token.LParen) {
			p.bump()
			p.expect(token.RParen, "')'")
		}
		if p.atKeyword(token.KwAs) {
			p.bump()
			p.parseTypeName()
		}
		if p.at(token.Assign) {
			p.bump()
			p.b.Push(p.parseExpression())
		}
		p.b.Finish()
		if p.at(token.Comma) {
			p.bump()
			continue
		}
		break
	}
	p.expect(token.RParen, "')'")
	p.b.Finish()
}

// parseSubOrFunctionDecl parses a Sub/Function, including any leading
// access modifiers, through its matching End.
func (p *Parser) parseSubOrFunctionDecl() {
	isFunc := p.keywordAfterModifiers() == token.KwFunction
	kind := cst.SynSubDecl
	if isFunc {
		kind = cst.SynFunctionDecl
	}
	p.b.Start(kind)
	p.consumeModifiers()
	p.bump() // Sub | Function
	p.expectName("procedure name")
	if p.at(token.LParen) {
		p.parseParameterList()
	}
	if isFunc && p.atKeyword(token.KwAs) {
		p.bump()
		p.parseTypeName()
	}
	endKw := token.KwSub
	if isFunc {
		endKw = token.KwFunction
	}
	p.parseStatementList(func() bool { return p.atEndOfAnyBlock() })
	p.expectKeyword(token.KwEnd)
	p.expectKeyword(endKw)
	p.b.Finish()
}

func (p *Parser) parsePropertyDecl() {
	p.b.Start(cst.SynPropertyDecl)
	p.consumeModifiers()
	p.expectKeyword(token.KwProperty)
	switch {
	case p.atAnyKeyword(token.KwGet, token.KwLet, token.KwSet):
		p.bump()
	default:
		p.errorf(diag.CSTExpectedToken, "expected Get, Let, or Set")
	}
	p.expectName("property name")
	if p.at(token.LParen) {
		p.parseParameterList()
	}
	if p.atKeyword(token.KwAs) {
		p.bump()
		p.parseTypeName()
	}
	p.parseStatementList(func() bool { return p.atEndOfAnyBlock() })
	p.expectKeyword(token.KwEnd)
	p.expectKeyword(token.KwProperty)
	p.b.Finish()
}
