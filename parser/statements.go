package parser

import (
	"github.com/scriptandcompile/vb6parse/cst"
	"github.com/scriptandcompile/vb6parse/diag"
	"github.com/scriptandcompile/vb6parse/token"
)

// parseStatementList consumes statements, separated by newlines or colons,
// until stop reports true or the token stream is exhausted.
func (p *Parser) parseStatementList(stop func() bool) {
	p.b.Start(cst.SynStatementList)
	lineStart := true
	for {
		if stop() || p.peek().Kind == token.EOF {
			break
		}
		if p.at(token.Newline) || p.at(token.Colon) {
			if p.at(token.Newline) {
				lineStart = true
			}
			p.bump()
			continue
		}
		before := p.toks.Pos()
		p.parenDepth = 0
		p.stmtLineStart = lineStart
		p.parseStatement()
		lineStart = false
		if p.toks.Pos() == before {
			// A statement parser that made no progress would loop forever;
			// force advancement past the stuck token.
			p.errorf(diag.CSTUnexpectedStatementStarter, "cannot parse a statement here")
			p.recoverTo(p.atStatementSync)
		}
	}
	p.b.Finish()
}

func (p *Parser) parseStatement() {
	t := p.peek()
	if p.stmtLineStart {
		if t.Kind == token.Ident && p.isLabelAhead() {
			p.parseLabel()
			return
		}
		if t.Kind == token.IntLiteral {
			p.parseLineNumberLabel()
			return
		}
	}
	if t.Kind != token.Keyword {
		p.parseExpressionStatement()
		return
	}
	switch t.Keyword {
	case token.KwDim, token.KwReDim:
		p.parseDeclarationStatement()
	case token.KwPublic, token.KwPrivate, token.KwFriend, token.KwStatic:
		p.parseModifiedStatement()
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
	case token.KwImplements:
		p.parseSimpleKeywordStatement(cst.SynCallStatement, token.KwImplements)
	case token.KwSub, token.KwFunction:
		p.parseSubOrFunctionDecl()
	case token.KwProperty:
		p.parsePropertyDecl()
	case token.KwIf:
		p.parseIfStatement()
	case token.KwSelect:
		p.parseSelectCaseStatement()
	case token.KwFor:
		p.parseForStatement()
	case token.KwDo:
		p.parseDoLoopStatement()
	case token.KwWhile:
		p.parseWhileWendStatement()
	case token.KwWith:
		p.parseWithStatement()
	case token.KwGoTo, token.KwGoSub:
		p.parseGotoGosubStatement()
	case token.KwReturn:
		p.b.Start(cst.SynReturnStatement)
		p.bump()
		p.b.Finish()
	case token.KwOn:
		p.parseOnErrorStatement()
	case token.KwResume:
		p.parseResumeStatement()
	case token.KwExit:
		p.parseExitStatement()
	case token.KwOption:
		p.parseOptionStatement()
	case token.KwCall:
		p.parseCallStatement()
	case token.KwSet:
		p.parseSetOrLetStatement(cst.SynSetStatement)
	case token.KwLet:
		p.parseSetOrLetStatement(cst.SynLetStatement)
	case token.KwLoad, token.KwUnload:
		p.parseSimpleKeywordStatement(cst.SynCallStatement, t.Keyword)
	case token.KwRaiseEvent:
		p.parseRaiseEventStatement()
	case token.KwErase:
		p.parseEraseStatement()
	case token.KwOpen:
		p.parseOpenStatement()
	case token.KwClose:
		p.parseSimpleKeywordStatement(cst.SynCloseStatement, token.KwClose)
	case token.KwPrint:
		p.parsePrintStatement()
	case token.KwLineInput:
		p.parseLineInputStatement()
	case token.KwInput:
		p.parseSimpleKeywordStatement(cst.SynInputStatement, token.KwInput)
	case token.KwMid, token.KwMidB:
		p.parseMidStatement()
	case token.KwStop:
		p.b.Start(cst.SynStopStatement)
		p.bump()
		p.b.Finish()
	case token.KwEnd:
		p.parseEndStatement()
	case token.KwNext, token.KwLoop, token.KwWend:
		p.errorf(diag.CSTUnmatchedTerminator, "unmatched '"+t.Keyword.String()+"'")
		p.b.StartError()
		p.bump()
		if p.at(token.Ident) {
			p.bump()
		}
		p.b.Finish()
	case token.KwError:
		p.parseSimpleKeywordStatement(cst.SynCallStatement, token.KwError)
	case token.KwPut, token.KwGet, token.KwLock, token.KwUnlock, token.KwSeek,
		token.KwFileCopy, token.KwKill, token.KwName, token.KwMkDir, token.KwRmDir,
		token.KwChDir, token.KwChDrive, token.KwLSet, token.KwRSet, token.KwRandomize:
		p.parseSimpleKeywordStatement(cst.SynCallStatement, t.Keyword)
	default:
		p.parseExpressionStatement()
	}
}

// isLabelAhead reports whether the upcoming identifier is immediately
// followed by a colon, the surface syntax of a line label. The lookahead
// must not emit trivia, so it scans token indices directly.
func (p *Parser) isLabelAhead() bool {
	i := p.nextSignificantIdx() + 1
	for p.toks.At(i).Kind == token.Whitespace {
		i++
	}
	return p.toks.At(i).Kind == token.Colon
}

func (p *Parser) parseLabel() {
	p.b.Start(cst.SynLabelStatement)
	p.bump() // identifier
	p.expect(token.Colon, "':'")
	p.b.Finish()
}

// parseLineNumberLabel handles legacy numeric line labels ("100 Print x"),
// with or without a trailing colon. The rest of the line is parsed as an
// ordinary statement by the enclosing list.
func (p *Parser) parseLineNumberLabel() {
	p.b.Start(cst.SynLabelStatement)
	p.bump() // the line number
	if p.at(token.Colon) {
		p.bump()
	}
	p.b.Finish()
}

// parseEndStatement handles the bare "End" statement (terminate the running
// program). "End <kw>" block terminators never reach here from inside a
// block — the enclosing construct's stop condition claims them — so seeing
// one means there is no matching open block.
func (p *Parser) parseEndStatement() {
	if p.atEndOfAnyBlock() {
		p.errorf(diag.CSTUnmatchedTerminator, "'End' does not close an open block here")
		p.b.StartError()
		p.bump() // End
		p.bump() // Sub | Function | ...
		p.b.Finish()
		return
	}
	p.b.Start(cst.SynEndStatement)
	p.bump()
	p.b.Finish()
}

func (p *Parser) parseSimpleKeywordStatement(kind cst.SyntaxKind, kw token.KeywordID) {
	p.b.Start(kind)
	p.expectKeyword(kw)
	p.parseRestOfStatementAsExpressions()
	p.b.Finish()
}

// atLineEnd reports whether the cursor sits at the end of the current
// logical line (outside any parenthesized group): a bare end-of-line/colon
// check, with none of atStatementSync's statement-starter-keyword lookahead.
// Open, Print, and the other fixed-syntax builtins run their own keywords
// (For, Input, Access, Lock, As, ...) that also happen to start statements
// elsewhere, so they can't use atStatementSync as their stopping point
// without truncating on their own syntax.
func (p *Parser) atLineEnd() bool {
	if p.parenDepth > 0 {
		return false
	}
	t := p.peek()
	return t.Kind == token.Newline || t.Kind == token.Colon || t.Kind == token.EOF
}

// parseRestOfStatementAsExpressions consumes comma-separated expressions
// until end-of-line/colon/EOF, for statements whose argument shape (Open,
// Print, FileCopy, Name ... As ..., and similar file/string builtins) is
// better modeled as "some expressions" than as a fully typed grammar.
func (p *Parser) parseRestOfStatementAsExpressions() {
	for !p.atLineEnd() {
		t := p.peek()
		switch {
		case t.Kind == token.Keyword && !isExpressionStarterKeyword(t.Keyword):
			// Tokens like "As", file-mode keywords inside Open, and the
			// separators below are part of the statement's fixed surface
			// syntax; consume them as plain tokens rather than expressions.
			p.bump()
		case t.Kind == token.Semicolon || t.Kind == token.Comma ||
			t.Kind == token.Hash || t.Kind == token.ColonEquals:
			p.bump()
		default:
			p.b.Push(p.parseExpression())
		}
	}
}

func isExpressionStarterKeyword(kw token.KeywordID) bool {
	return isLiteralKeyword(kw) || isTypeKeyword(kw) || kw == token.KwNew || kw == token.KwNot
}

// canStartExpression reports whether the next significant token can begin
// an expression, which is what separates a paren-less call's next argument
// from the fixed syntax that ends the statement.
func (p *Parser) canStartExpression() bool {
	t := p.peek()
	switch t.Kind {
	case token.Ident, token.LParen, token.Minus, token.Plus, token.Dot, token.Bang:
		return true
	case token.Keyword:
		return isExpressionStarterKeyword(t.Keyword)
	default:
		return isLiteralKind(t.Kind)
	}
}

// parseExpressionStatement covers both Let-less assignment ("x = 1",
// "a(1).b = v") and paren-less calls with space-separated arguments
// ("MsgBox "hi", vbOKOnly", "obj.Move Left:=10"). The two are only told
// apart after the leading postfix chain: an "=" next makes it an
// assignment, anything else a call.
func (p *Parser) parseExpressionStatement() {
	t := p.peek()
	if t.Kind == token.Ident || t.Kind == token.Dot || t.Kind == token.Bang || t.Kind == token.LParen ||
		(t.Kind == token.Keyword && isTypeKeyword(t.Keyword)) {
		target := p.parsePostfix()
		if p.at(token.Assign) {
			p.b.Start(cst.SynLetStatement)
			p.b.Push(target)
			p.bump() // =
			p.b.Push(p.parseExpression())
			p.b.Finish()
			return
		}
		p.b.Start(cst.SynCallStatement)
		p.b.Push(target)
		p.parseTrailingCallArguments()
		p.b.Finish()
		return
	}
	start := p.toks.Pos()
	p.b.Start(cst.SynCallStatement)
	p.b.Push(p.parseExpression())
	if p.toks.Pos() == start {
		p.b.Finish()
		p.recoverTo(p.atStatementSync)
		return
	}
	p.parseTrailingCallArguments()
	p.b.Finish()
}

// parseTrailingCallArguments consumes a paren-less call's argument list:
// comma/semicolon-separated expressions, with "name:=value" named-argument
// pairs, until nothing that can start an expression remains on the line.
func (p *Parser) parseTrailingCallArguments() {
	for {
		switch {
		case p.at(token.Comma) || p.at(token.Semicolon):
			p.bump()
		case p.at(token.ColonEquals):
			p.bump()
			p.b.Push(p.parseExpression())
		case p.canStartExpression():
			p.b.Push(p.parseExpression())
		default:
			return
		}
	}
}

func (p *Parser) parseCallStatement() {
	p.b.Start(cst.SynCallStatement)
	p.expectKeyword(token.KwCall)
	p.b.Push(p.parseExpression())
	p.b.Finish()
}

func (p *Parser) parseSetOrLetStatement(kind cst.SyntaxKind) {
	p.b.Start(kind)
	p.bump() // Set | Let
	p.b.Push(p.parsePostfix())
	if p.at(token.Assign) {
		p.bump()
		p.b.Push(p.parseExpression())
	} else {
		p.errorf(diag.CSTExpectedToken, "expected '='")
	}
	p.b.Finish()
}

// parseMidStatement handles the Mid/MidB assignment form:
// Mid(s, start[, length]) = replacement.
func (p *Parser) parseMidStatement() {
	p.b.Start(cst.SynLetStatement)
	p.bump() // Mid | MidB
	if p.at(token.LParen) {
		p.b.Push(p.parseArgumentListCore())
	}
	if p.at(token.Assign) {
		p.bump()
		p.b.Push(p.parseExpression())
	} else {
		p.errorf(diag.CSTExpectedToken, "expected '='")
	}
	p.b.Finish()
}

func (p *Parser) parseRaiseEventStatement() {
	p.b.Start(cst.SynRaiseEventStatement)
	p.expectKeyword(token.KwRaiseEvent)
	p.expectName("event name")
	if p.at(token.LParen) {
		p.parseArgumentList()
	}
	p.b.Finish()
}

func (p *Parser) parseEraseStatement() {
	p.b.Start(cst.SynEraseStatement)
	p.expectKeyword(token.KwErase)
	for {
		p.b.Push(p.parseExpression())
		if p.at(token.Comma) {
			p.bump()
			continue
		}
		break
	}
	p.b.Finish()
}

func (p *Parser) parseOpenStatement() {
	p.b.Start(cst.SynOpenStatement)
	p.expectKeyword(token.KwOpen)
	p.parseRestOfStatementAsExpressions()
	p.b.Finish()
}

func (p *Parser) parsePrintStatement() {
	p.b.Start(cst.SynPrintStatement)
	p.bump() // Print
	p.parseRestOfStatementAsExpressions()
	p.b.Finish()
}

func (p *Parser) parseLineInputStatement() {
	p.b.Start(cst.SynLineInputStatement)
	p.expectKeyword(token.KwLineInput)
	p.expectKeyword(token.KwInput)
	p.parseRestOfStatementAsExpressions()
	p.b.Finish()
}

func (p *Parser) parseOptionStatement() {
	p.b.Start(cst.SynOptionStatement)
	p.expectKeyword(token.KwOption)
	// Explicit, Base, Compare Binary/Text/Database, Private Module — one or
	// two bare words, optionally followed by a literal (Option Base 1).
	for {
		t := p.peek()
		if t.Kind == token.Keyword || t.Kind == token.Ident {
			p.bump()
			continue
		}
		break
	}
	if !p.atLineEnd() {
		p.b.Push(p.parseExpression())
	}
	p.b.Finish()
}

func (p *Parser) parseGotoGosubStatement() {
	p.b.Start(cst.SynGotoStatement)
	p.bump() // GoTo | GoSub
	p.expectLabelRef()
	p.b.Finish()
}

// expectLabelRef consumes a label reference: a name or a legacy numeric
// line number.
func (p *Parser) expectLabelRef() {
	if p.at(token.Ident) || p.at(token.IntLiteral) {
		p.bump()
		return
	}
	p.errorf(diag.CSTExpectedToken, "expected label")
}

func (p *Parser) parseOnErrorStatement() {
	p.b.Start(cst.SynOnErrorStatement)
	p.expectKeyword(token.KwOn)
	if p.atKeyword(token.KwError) {
		p.bump()
		switch {
		case p.atKeyword(token.KwResume):
			p.bump()
			p.expectKeyword(token.KwNext)
		case p.atKeyword(token.KwGoTo):
			p.bump()
			p.expectLabelRef()
		default:
			p.errorf(diag.CSTExpectedToken, "expected Resume Next or GoTo")
		}
	} else {
		// "On <expr> GoSub ..." computed-goto form.
		p.b.Push(p.parseExpression())
		if p.atKeyword(token.KwGoSub) || p.atKeyword(token.KwGoTo) {
			p.bump()
			for {
				p.expectLabelRef()
				if p.at(token.Comma) {
					p.bump()
					continue
				}
				break
			}
		}
	}
	p.b.Finish()
}

func (p *Parser) parseResumeStatement() {
	p.b.Start(cst.SynResumeStatement)
	p.expectKeyword(token.KwResume)
	if p.atKeyword(token.KwNext) {
		p.bump()
	} else if p.at(token.Ident) || p.at(token.IntLiteral) {
		p.bump()
	}
	p.b.Finish()
}

func (p *Parser) parseExitStatement() {
	p.b.Start(cst.SynExitStatement)
	p.expectKeyword(token.KwExit)
	switch {
	case p.atKeyword(token.KwSub), p.atKeyword(token.KwFunction), p.atKeyword(token.KwProperty),
		p.atKeyword(token.KwFor), p.atKeyword(token.KwDo):
		p.bump()
	default:
		p.errorf(diag.CSTExpectedToken, "expected Sub, Function, Property, For, or Do")
	}
	p.b.Finish()
}

func (p *Parser) parseIfStatement() {
	p.b.Start(cst.SynIfStatement)
	p.expectKeyword(token.KwIf)
	p.b.Push(p.parseExpression())
	p.expectKeyword(token.KwThen)

	if !p.at(token.Newline) && p.peek().Kind != token.EOF {
		// Single-line form: If <cond> Then <stmts> [Else <stmts>]
		p.parseStatementList(func() bool {
			return p.at(token.Newline) || p.atKeyword(token.KwElse) || p.atEndOfAnyBlock()
		})
		if p.atKeyword(token.KwElse) {
			p.bump()
			p.parseStatementList(func() bool {
				return p.at(token.Newline) || p.atEndOfAnyBlock()
			})
		}
		if p.atEndOf(token.KwIf) {
			// colon-chained "If cond Then: ...: End If" on one line
			p.expectKeyword(token.KwEnd)
			p.expectKeyword(token.KwIf)
		}
		p.b.Finish()
		return
	}

	blockStop := func() bool {
		return p.atAnyKeyword(token.KwElseIf, token.KwElse) || p.atEndOfAnyBlock()
	}
	p.parseStatementList(blockStop)
	for p.atKeyword(token.KwElseIf) {
		p.b.Start(cst.SynElseIfClause)
		p.bump()
		p.b.Push(p.parseExpression())
		p.expectKeyword(token.KwThen)
		p.parseStatementList(blockStop)
		p.b.Finish()
	}
	if p.atKeyword(token.KwElse) {
		p.b.Start(cst.SynElseClause)
		p.bump()
		p.parseStatementList(func() bool { return p.atEndOfAnyBlock() })
		p.b.Finish()
	}
	p.expectKeyword(token.KwEnd)
	p.expectKeyword(token.KwIf)
	p.b.Finish()
}

func (p *Parser) parseSelectCaseStatement() {
	p.b.Start(cst.SynSelectCaseStatement)
	p.expectKeyword(token.KwSelect)
	p.expectKeyword(token.KwCase)
	p.b.Push(p.parseExpression())
	for p.at(token.Newline) || p.at(token.Colon) {
		p.bump()
	}
	for p.atKeyword(token.KwCase) {
		p.b.Start(cst.SynCaseClause)
		p.bump()
		if p.atKeyword(token.KwElse) {
			p.bump()
		} else {
			for {
				if p.atKeyword(token.KwIs) {
					p.bump()
					if p.atRelationalOp() {
						p.bump()
					}
				}
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
		}
		p.parseStatementList(func() bool {
			return p.atKeyword(token.KwCase) || p.atEndOfAnyBlock()
		})
		p.b.Finish()
	}
	p.expectKeyword(token.KwEnd)
	p.expectKeyword(token.KwSelect)
	p.b.Finish()
}

func (p *Parser) parseForStatement() {
	p.expectKeyword(token.KwFor)
	if p.atKeyword(token.KwEach) {
		p.b.Start(cst.SynForEachStatement)
		p.bump()
		p.expectName("loop variable")
		p.expectKeyword(token.KwIn)
		p.b.Push(p.parseExpression())
		p.parseStatementList(func() bool { return p.atKeyword(token.KwNext) })
		p.expectKeyword(token.KwNext)
		if p.at(token.Ident) {
			p.bump()
		}
		p.b.Finish()
		return
	}
	p.b.Start(cst.SynForStatement)
	p.b.Push(p.parsePostfix()) // loop variable, possibly already-declared
	p.expect(token.Assign, "'='")
	p.b.Push(p.parseExpression())
	p.expectKeyword(token.KwTo)
	p.b.Push(p.parseExpression())
	if p.atKeyword(token.KwStep) {
		p.bump()
		p.b.Push(p.parseExpression())
	}
	p.parseStatementList(func() bool { return p.atKeyword(token.KwNext) })
	p.expectKeyword(token.KwNext)
	if p.at(token.Ident) {
		p.bump()
	}
	p.b.Finish()
}

func (p *Parser) parseDoLoopStatement() {
	p.b.Start(cst.SynDoLoopStatement)
	p.expectKeyword(token.KwDo)
	if p.atAnyKeyword(token.KwWhile, token.KwUntil) {
		p.bump()
		p.b.Push(p.parseExpression())
	}
	p.parseStatementList(func() bool { return p.atKeyword(token.KwLoop) })
	p.expectKeyword(token.KwLoop)
	if p.atAnyKeyword(token.KwWhile, token.KwUntil) {
		p.bump()
		p.b.Push(p.parseExpression())
	}
	p.b.Finish()
}

func (p *Parser) parseWhileWendStatement() {
	p.b.Start(cst.SynWhileStatement)
	p.expectKeyword(token.KwWhile)
	p.b.Push(p.parseExpression())
	p.parseStatementList(func() bool { return p.atKeyword(token.KwWend) })
	p.expectKeyword(token.KwWend)
	p.b.Finish()
}

func (p *Parser) parseWithStatement() {
	p.b.Start(cst.SynWithStatement)
	p.expectKeyword(token.KwWith)
	p.b.Push(p.parseExpression())
	p.parseStatementList(func() bool { return p.atEndOfAnyBlock() })
	p.expectKeyword(token.KwEnd)
	p.expectKeyword(token.KwWith)
	p.b.Finish()
}
