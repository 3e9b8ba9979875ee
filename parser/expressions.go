package parser

import (
	"github.com/scriptandcompile/vb6parse/cst"
	"github.com/scriptandcompile/vb6parse/diag"
	"github.com/scriptandcompile/vb6parse/token"
)

// Expression parsing is precedence-climbing recursive descent, from VB6's
// weakest operator to its strongest: Imp, Eqv, Xor, Or, And, Not,
// relational (including Like/Is), concatenation (&), additive,
// modulo, integer division (\), multiplicative, unary +/-, exponent (^),
// then postfix member/index access.
//
// Every level returns the Green node it built rather than appending it to
// the builder directly: a left-associative chain ("a + b + c") only turns
// out to need a BinaryExpr wrapper once the first operator is actually
// seen, so the left operand is parsed and held detached until then.

func (p *Parser) parseExpression() *cst.Green { return p.parseImp() }

func (p *Parser) parseImp() *cst.Green {
	return p.parseKeywordBinary(p.parseEqv, token.KwImp)
}

func (p *Parser) parseEqv() *cst.Green {
	return p.parseKeywordBinary(p.parseXor, token.KwEqv)
}

func (p *Parser) parseXor() *cst.Green {
	return p.parseKeywordBinary(p.parseOr, token.KwXor)
}

func (p *Parser) parseOr() *cst.Green {
	return p.parseKeywordBinary(p.parseAnd, token.KwOr)
}

func (p *Parser) parseAnd() *cst.Green {
	return p.parseKeywordBinary(p.parseNot, token.KwAnd)
}

func (p *Parser) parseNot() *cst.Green {
	if p.atKeyword(token.KwNot) {
		p.b.Start(cst.SynUnaryExpr)
		p.bump()
		p.b.Push(p.parseNot())
		return p.b.FinishDetached()
	}
	return p.parseRelational()
}

func (p *Parser) parseRelational() *cst.Green {
	left := p.parseConcat()
	for p.atRelationalOp() {
		p.b.Start(cst.SynBinaryExpr)
		p.b.Push(left)
		p.bump()
		// The right operand re-enters at the Not level so "a = Not b"
		// parses; Not has lower precedence than comparison, but as a prefix
		// it can still begin a comparison's right-hand side.
		p.b.Push(p.parseNot())
		left = p.b.FinishDetached()
	}
	return left
}

func (p *Parser) atRelationalOp() bool {
	return p.at(token.Lt) || p.at(token.Gt) || p.at(token.Le) || p.at(token.Ge) ||
		p.at(token.Ne) || p.at(token.Assign) || p.atKeyword(token.KwIs) || p.atKeyword(token.KwLike)
}

func (p *Parser) parseConcat() *cst.Green {
	return p.parseTokenBinary(p.parseAdditive, token.Amp)
}

func (p *Parser) parseAdditive() *cst.Green {
	left := p.parseModulo()
	for p.at(token.Plus) || p.at(token.Minus) {
		p.b.Start(cst.SynBinaryExpr)
		p.b.Push(left)
		p.bump()
		p.b.Push(p.parseModulo())
		left = p.b.FinishDetached()
	}
	return left
}

func (p *Parser) parseModulo() *cst.Green {
	return p.parseKeywordBinary(p.parseIntDiv, token.KwMod)
}

func (p *Parser) parseIntDiv() *cst.Green {
	return p.parseTokenBinary(p.parseMultiplicative, token.Backslash)
}

func (p *Parser) parseMultiplicative() *cst.Green {
	left := p.parseUnary()
	for p.at(token.Star) || p.at(token.Slash) {
		p.b.Start(cst.SynBinaryExpr)
		p.b.Push(left)
		p.bump()
		p.b.Push(p.parseUnary())
		left = p.b.FinishDetached()
	}
	return left
}

func (p *Parser) parseUnary() *cst.Green {
	if p.at(token.Minus) || p.at(token.Plus) {
		p.b.Start(cst.SynUnaryExpr)
		p.bump()
		p.b.Push(p.parseUnary())
		return p.b.FinishDetached()
	}
	return p.parseExponent()
}

// parseExponent is right-associative, so its right-hand side recurses back
// into itself rather than into the next-weaker level.
func (p *Parser) parseExponent() *cst.Green {
	left := p.parsePostfix()
	if p.at(token.Caret) {
		p.b.Start(cst.SynBinaryExpr)
		p.b.Push(left)
		p.bump()
		p.b.Push(p.parseExponent())
		return p.b.FinishDetached()
	}
	return left
}

// parseKeywordBinary and parseTokenBinary implement one left-associative
// precedence level whose operator is, respectively, a reserved word (And,
// Or, Mod, ...) or a punctuation token (&, \).
func (p *Parser) parseKeywordBinary(next func() *cst.Green, op token.KeywordID) *cst.Green {
	left := next()
	for p.atKeyword(op) {
		p.b.Start(cst.SynBinaryExpr)
		p.b.Push(left)
		p.bump()
		p.b.Push(next())
		left = p.b.FinishDetached()
	}
	return left
}

func (p *Parser) parseTokenBinary(next func() *cst.Green, op token.Kind) *cst.Green {
	left := next()
	for p.at(op) {
		p.b.Start(cst.SynBinaryExpr)
		p.b.Push(left)
		p.bump()
		p.b.Push(next())
		left = p.b.FinishDetached()
	}
	return left
}

func (p *Parser) parsePostfix() *cst.Green {
	left := p.parsePrimary()
	for {
		switch {
		case p.at(token.Dot) || p.at(token.Bang):
			p.b.Start(cst.SynMemberExpr)
			p.b.Push(left)
			p.bump()
			p.expectMemberName()
			left = p.b.FinishDetached()
		case p.at(token.LParen):
			p.b.Start(cst.SynIndexExpr)
			p.b.Push(left)
			p.b.Push(p.parseArgumentListCore())
			left = p.b.FinishDetached()
		default:
			return left
		}
	}
}

func (p *Parser) parsePrimary() *cst.Green {
	t := p.peek()
	switch {
	case t.Kind == token.LParen:
		p.b.Start(cst.SynParenExpr)
		p.bump()
		p.b.Push(p.parseExpression())
		p.expect(token.RParen, "')'")
		return p.b.FinishDetached()
	case t.Kind == token.Ident:
		p.b.Start(cst.SynNameExpr)
		p.bump()
		return p.b.FinishDetached()
	case t.Kind == token.Dot || t.Kind == token.Bang:
		// Leading ".Member" or "!Key" inside a With block.
		p.b.Start(cst.SynMemberExpr)
		p.bump()
		p.expectMemberName()
		return p.b.FinishDetached()
	case t.Kind == token.Keyword && t.Keyword == token.KwNew:
		p.b.Start(cst.SynNewExpr)
		p.bump()
		p.parseTypeName()
		return p.b.FinishDetached()
	case t.Kind == token.Keyword && isLiteralKeyword(t.Keyword):
		p.b.Start(cst.SynLiteralExpr)
		p.bump()
		return p.b.FinishDetached()
	case t.Kind == token.Keyword && isTypeKeyword(t.Keyword):
		// Date, String(n, ch), ... — the builtin function spelled like the
		// type.
		p.b.Start(cst.SynNameExpr)
		p.bump()
		return p.b.FinishDetached()
	case isLiteralKind(t.Kind):
		p.b.Start(cst.SynLiteralExpr)
		p.bump()
		return p.b.FinishDetached()
	default:
		p.errorf(diag.CSTExpectedToken, "expected expression")
		return p.consumeErrorDetached()
	}
}

// consumeErrorDetached wraps one offending token plus anything up to the
// next synchronization point in a detached Error node, the expression-level
// analog of recoverTo (which auto-attaches and so cannot be used where the
// caller needs the node handed back via Push). If the cursor already sits
// at a synchronization point (say, end-of-line right after "x ="), nothing
// is consumed and the Error node is empty — the diagnostic has been
// recorded and the next statement must not be swallowed. A closing paren
// also stops the scan so an enclosing argument list can still see it.
func (p *Parser) consumeErrorDetached() *cst.Green {
	p.b.StartError()
	if p.peek().Kind != token.EOF && !p.atStatementSync() {
		p.bump()
		for !p.atStatementSync() && p.peek().Kind != token.EOF &&
			p.nextNonBlank().Kind != token.RParen {
			p.bump()
		}
	}
	return p.b.FinishDetached()
}

func isLiteralKeyword(kw token.KeywordID) bool {
	switch kw {
	case token.KwTrue, token.KwFalse, token.KwNothing, token.KwNull, token.KwEmpty, token.KwMe:
		return true
	}
	return false
}

func isLiteralKind(k token.Kind) bool {
	switch k {
	case token.IntLiteral, token.LongLiteral, token.SingleLiteral, token.DoubleLiteral,
		token.DecimalLiteral, token.CurrencyLiteral, token.StringLiteral, token.DateLiteral:
		return true
	}
	return false
}

// parseArgumentListCore parses a parenthesized, comma-separated argument
// list — tolerating empty positions ("f(,2)") the way VB6's
// omitted-optional-argument call syntax requires — and returns it detached
// for the caller to Push (as a postfix IndexExpr's second child).
func (p *Parser) parseArgumentListCore() *cst.Green {
	p.b.Start(cst.SynArgumentList)
	p.bump() // (
	for !p.at(token.RParen) && p.peek().Kind != token.EOF {
		p.b.Start(cst.SynArgument)
		if !p.at(token.Comma) && !p.at(token.RParen) {
			p.b.Push(p.parseExpression())
			if p.at(token.ColonEquals) {
				// named argument: name := value
				p.bump()
				p.b.Push(p.parseExpression())
			}
		}
		p.b.Finish()
		if p.at(token.Comma) {
			p.bump()
			continue
		}
		break
	}
	p.expect(token.RParen, "')'")
	return p.b.FinishDetached()
}

// parseArgumentList is the statement-level convenience that attaches the
// argument list directly to the node currently being built (RaiseEvent's
// argument list, for instance, which isn't wrapped in a postfix IndexExpr).
func (p *Parser) parseArgumentList() {
	p.b.Push(p.parseArgumentListCore())
}
