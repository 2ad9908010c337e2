package parser

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/wudi/php-parser/ast"
	"github.com/wudi/php-parser/lexer"
)

// maxExpressionDepth bounds recursive descent so pathological nesting fails
// with a parse error instead of exhausting the goroutine stack.
const maxExpressionDepth = 512

// Binding powers, low to high. Left-associative operators use (bp, bp+1);
// right-associative ones use (bp, bp-1).
type bindingPower int

const (
	bpLowest   bindingPower = 0
	bpWordOr   bindingPower = 3  // or
	bpWordXor  bindingPower = 5  // xor
	bpWordAnd  bindingPower = 7  // and
	bpAssign   bindingPower = 10 // = += ... (right)
	bpTernary  bindingPower = 14 // ?: (right)
	bpCoalesce bindingPower = 18 // ?? (right)
	bpBoolOr   bindingPower = 22 // ||
	bpBoolAnd  bindingPower = 26 // &&
	bpBitOr    bindingPower = 30 // |
	bpBitXor   bindingPower = 34 // ^
	bpBitAnd   bindingPower = 38 // &
	bpEquality bindingPower = 42 // == != === !==
	bpCompare  bindingPower = 46 // < <= > >= <=> instanceof
	bpShift    bindingPower = 50 // << >>
	bpAdditive bindingPower = 54 // + - .
	bpProduct  bindingPower = 58 // * / %
	bpUnary    bindingPower = 62 // ! ~ - + ++x --x casts @
	bpPow      bindingPower = 66 // ** (right)
	bpIncDec   bindingPower = 70 // x++ x--
	bpCall     bindingPower = 74 // () []
	bpNew      bindingPower = 76 // new class-reference boundary
	bpAccess   bindingPower = 78 // -> ?-> ::
)

// infixBindingPower returns the (left, right) powers of an infix operator.
func infixBindingPower(t lexer.TokenType) (bindingPower, bindingPower, bool) {
	switch t {
	case lexer.TOKEN_PLUS, lexer.TOKEN_MINUS, lexer.TOKEN_DOT:
		return bpAdditive, bpAdditive + 1, true
	case lexer.TOKEN_MULTIPLY, lexer.TOKEN_DIVIDE, lexer.TOKEN_MODULO:
		return bpProduct, bpProduct + 1, true
	case lexer.T_POW:
		return bpPow, bpPow - 1, true
	case lexer.T_SL, lexer.T_SR:
		return bpShift, bpShift + 1, true
	case lexer.TOKEN_LT, lexer.TOKEN_GT, lexer.T_IS_SMALLER_OR_EQUAL,
		lexer.T_IS_GREATER_OR_EQUAL, lexer.T_SPACESHIP, lexer.T_INSTANCEOF:
		return bpCompare, bpCompare + 1, true
	case lexer.T_IS_EQUAL, lexer.T_IS_NOT_EQUAL,
		lexer.T_IS_IDENTICAL, lexer.T_IS_NOT_IDENTICAL:
		return bpEquality, bpEquality + 1, true
	case lexer.TOKEN_AMPERSAND:
		return bpBitAnd, bpBitAnd + 1, true
	case lexer.TOKEN_CARET:
		return bpBitXor, bpBitXor + 1, true
	case lexer.TOKEN_PIPE:
		return bpBitOr, bpBitOr + 1, true
	case lexer.T_BOOLEAN_AND:
		return bpBoolAnd, bpBoolAnd + 1, true
	case lexer.T_BOOLEAN_OR:
		return bpBoolOr, bpBoolOr + 1, true
	case lexer.T_COALESCE:
		return bpCoalesce, bpCoalesce - 1, true
	case lexer.TOKEN_EQUAL, lexer.T_PLUS_EQUAL, lexer.T_MINUS_EQUAL,
		lexer.T_MUL_EQUAL, lexer.T_DIV_EQUAL, lexer.T_CONCAT_EQUAL,
		lexer.T_MOD_EQUAL, lexer.T_AND_EQUAL, lexer.T_OR_EQUAL,
		lexer.T_XOR_EQUAL, lexer.T_SL_EQUAL, lexer.T_SR_EQUAL,
		lexer.T_POW_EQUAL, lexer.T_COALESCE_EQUAL:
		return bpAssign, bpAssign - 1, true
	case lexer.T_LOGICAL_AND:
		return bpWordAnd, bpWordAnd + 1, true
	case lexer.T_LOGICAL_XOR:
		return bpWordXor, bpWordXor + 1, true
	case lexer.T_LOGICAL_OR:
		return bpWordOr, bpWordOr + 1, true
	}
	return 0, 0, false
}

// postfixBindingPower returns the power of a postfix form.
func postfixBindingPower(t lexer.TokenType) (bindingPower, bool) {
	switch t {
	case lexer.T_OBJECT_OPERATOR, lexer.T_NULLSAFE_OBJECT_OPERATOR,
		lexer.T_PAAMAYIM_NEKUDOTAYIM:
		return bpAccess, true
	case lexer.TOKEN_LPAREN, lexer.TOKEN_LBRACKET:
		return bpCall, true
	case lexer.T_INC, lexer.T_DEC:
		return bpIncDec, true
	case lexer.TOKEN_QUESTION:
		return bpTernary, true
	}
	return 0, false
}

func isAssignmentOp(t lexer.TokenType) bool {
	switch t {
	case lexer.TOKEN_EQUAL, lexer.T_PLUS_EQUAL, lexer.T_MINUS_EQUAL,
		lexer.T_MUL_EQUAL, lexer.T_DIV_EQUAL, lexer.T_CONCAT_EQUAL,
		lexer.T_MOD_EQUAL, lexer.T_AND_EQUAL, lexer.T_OR_EQUAL,
		lexer.T_XOR_EQUAL, lexer.T_SL_EQUAL, lexer.T_SR_EQUAL,
		lexer.T_POW_EQUAL, lexer.T_COALESCE_EQUAL:
		return true
	}
	return false
}

// parseExpression is the Pratt core: a prefix form followed by a loop that
// extends the left-hand side with postfix and infix forms while their
// binding power clears minBP.
func (p *Parser) parseExpression(minBP bindingPower) (ast.Expression, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxExpressionDepth {
		err := p.errUnexpected(p.cur(), "expression")
		return nil, err.WithContext("expression nesting too deep")
	}

	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.cur()

		if pbp, ok := postfixBindingPower(tok.Type); ok && pbp >= minBP {
			left, err = p.parsePostfix(left)
			if err != nil {
				return nil, err
			}
			continue
		}

		if l, r, ok := infixBindingPower(tok.Type); ok && l >= minBP {
			p.next()
			right, err := p.parseExpression(r)
			if err != nil {
				return nil, err
			}
			left = combineInfix(left, tok, right)
			continue
		}

		break
	}

	return left, nil
}

func combineInfix(left ast.Expression, op lexer.Token, right ast.Expression) ast.Expression {
	span := left.Span().Union(right.Span())
	switch {
	case isAssignmentOp(op.Type):
		node := &ast.AssignmentExpression{Target: left, Op: op.Value, Value: right}
		node.Loc = span
		return node
	case op.Type == lexer.T_COALESCE:
		node := &ast.CoalesceExpression{Left: left, Right: right}
		node.Loc = span
		return node
	default:
		node := &ast.BinaryExpression{Left: left, Op: op.Value, Right: right}
		node.Loc = span
		return node
	}
}

// ============= PREFIX FORMS =============

func (p *Parser) parsePrefix() (ast.Expression, error) {
	tok := p.cur()

	switch tok.Type {
	case lexer.T_LNUMBER:
		return p.parseIntegerLiteral()
	case lexer.T_DNUMBER:
		return p.parseFloatLiteral()
	case lexer.T_CONSTANT_ENCAPSED_STRING:
		return p.parseStringLiteral()
	case lexer.TOKEN_QUOTE:
		return p.parseInterpolatedString()
	case lexer.T_START_HEREDOC:
		return p.parseHeredoc()

	case lexer.T_VARIABLE, lexer.TOKEN_DOLLAR, lexer.T_DOLLAR_OPEN_CURLY_BRACES:
		return p.parseVariableExpr()

	case lexer.T_STRING, lexer.T_NAME_QUALIFIED,
		lexer.T_NAME_FULLY_QUALIFIED, lexer.T_NAME_RELATIVE:
		p.next()
		return nameFromToken(tok), nil

	// soft-reserved keywords in expression position are plain names:
	// `readonly(1)` is a call, `enum::CONST` a static access
	case lexer.T_READONLY, lexer.T_ENUM:
		p.next()
		name := &ast.Name{Kind: ast.NameUnqualified, Value: tok.Value}
		name.Loc = tok.Span
		return name, nil

	case lexer.T_LINE, lexer.T_FILE, lexer.T_DIR, lexer.T_CLASS_C,
		lexer.T_TRAIT_C, lexer.T_METHOD_C, lexer.T_FUNC_C, lexer.T_NS_C:
		p.next()
		node := &ast.MagicConstant{Name: tok.Value}
		node.Loc = tok.Span
		return node, nil

	case lexer.TOKEN_EXCLAMATION, lexer.TOKEN_MINUS, lexer.TOKEN_PLUS,
		lexer.TOKEN_TILDE, lexer.T_INC, lexer.T_DEC, lexer.TOKEN_AMPERSAND:
		p.next()
		operand, err := p.parseExpression(bpUnary)
		if err != nil {
			return nil, err
		}
		node := &ast.PrefixExpression{Op: tok.Value, Operand: operand}
		node.Loc = tok.Span.Union(operand.Span())
		return node, nil

	case lexer.TOKEN_AT:
		p.next()
		operand, err := p.parseExpression(bpUnary)
		if err != nil {
			return nil, err
		}
		node := &ast.ErrorSuppressExpression{Operand: operand}
		node.Loc = tok.Span.Union(operand.Span())
		return node, nil

	case lexer.T_INT_CAST, lexer.T_DOUBLE_CAST, lexer.T_STRING_CAST,
		lexer.T_ARRAY_CAST, lexer.T_OBJECT_CAST, lexer.T_BOOL_CAST,
		lexer.T_UNSET_CAST:
		p.next()
		operand, err := p.parseExpression(bpUnary)
		if err != nil {
			return nil, err
		}
		node := &ast.CastExpression{Kind: castKind(tok.Type), Operand: operand}
		node.Loc = tok.Span.Union(operand.Span())
		return node, nil

	case lexer.TOKEN_LPAREN:
		p.next()
		inner, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
		end, err := p.skipRightParenthesis()
		if err != nil {
			return nil, err
		}
		// re-anchor the span to include the parentheses
		reanchor(inner, tok.Span.Union(end))
		return inner, nil

	case lexer.TOKEN_LBRACKET:
		return p.parseShortArray()
	case lexer.T_ARRAY:
		return p.parseLongArray()
	case lexer.T_LIST:
		return p.parseListExpression()

	case lexer.T_NEW:
		return p.parseNew()
	case lexer.T_CLONE:
		p.next()
		operand, err := p.parseExpression(bpUnary)
		if err != nil {
			return nil, err
		}
		node := &ast.CloneExpression{Operand: operand}
		node.Loc = tok.Span.Union(operand.Span())
		return node, nil

	case lexer.T_THROW:
		p.next()
		operand, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
		node := &ast.ThrowExpression{Operand: operand}
		node.Loc = tok.Span.Union(operand.Span())
		return node, nil

	case lexer.T_PRINT:
		p.next()
		operand, err := p.parseExpression(bpWordAnd + 1)
		if err != nil {
			return nil, err
		}
		node := &ast.PrintExpression{Operand: operand}
		node.Loc = tok.Span.Union(operand.Span())
		return node, nil

	case lexer.T_YIELD:
		return p.parseYield()
	case lexer.T_YIELD_FROM:
		p.next()
		operand, err := p.parseExpression(bpAssign - 1)
		if err != nil {
			return nil, err
		}
		node := &ast.YieldFromExpression{Operand: operand}
		node.Loc = tok.Span.Union(operand.Span())
		return node, nil

	case lexer.T_MATCH:
		return p.parseMatch()

	case lexer.T_FUNCTION:
		return p.parseClosure(false)
	case lexer.T_FN:
		return p.parseArrowFunction(false)
	case lexer.T_STATIC:
		switch p.peek().Type {
		case lexer.T_FUNCTION:
			p.next()
			return p.parseClosure(true)
		case lexer.T_FN:
			p.next()
			return p.parseArrowFunction(true)
		default:
			p.next()
			name := &ast.Name{Kind: ast.NameUnqualified, Value: tok.Value}
			name.Loc = tok.Span
			return name, nil
		}

	case lexer.T_ISSET:
		return p.parseIsset()
	case lexer.T_EMPTY:
		return p.parseParenWrapped(tok, func(operand ast.Expression, span lexer.Span) ast.Expression {
			node := &ast.EmptyExpression{Operand: operand}
			node.Loc = span
			return node
		})
	case lexer.T_EVAL:
		return p.parseParenWrapped(tok, func(operand ast.Expression, span lexer.Span) ast.Expression {
			node := &ast.EvalExpression{Operand: operand}
			node.Loc = span
			return node
		})

	case lexer.T_EXIT:
		return p.parseExit()

	case lexer.T_INCLUDE, lexer.T_INCLUDE_ONCE, lexer.T_REQUIRE, lexer.T_REQUIRE_ONCE:
		p.next()
		operand, err := p.parseExpression(bpWordOr + 1)
		if err != nil {
			return nil, err
		}
		node := &ast.IncludeExpression{Kind: includeKind(tok.Type), Operand: operand}
		node.Loc = tok.Span.Union(operand.Span())
		return node, nil

	default:
		return nil, p.errUnexpected(tok, "expression")
	}
}

// reanchor widens the span of an operator, assignment, coalesce, ternary or
// call node; used when grouping parens wrap an inner expression. Other node
// kinds keep their own span.
func reanchor(expr ast.Expression, span lexer.Span) {
	switch n := expr.(type) {
	case *ast.BinaryExpression:
		n.Loc = span
	case *ast.AssignmentExpression:
		n.Loc = span
	case *ast.CoalesceExpression:
		n.Loc = span
	case *ast.TernaryExpression:
		n.Loc = span
	case *ast.PrefixExpression:
		n.Loc = span
	case *ast.PostfixExpression:
		n.Loc = span
	case *ast.CallExpression:
		n.Loc = span
	}
}

func castKind(t lexer.TokenType) string {
	switch t {
	case lexer.T_INT_CAST:
		return "int"
	case lexer.T_DOUBLE_CAST:
		return "float"
	case lexer.T_STRING_CAST:
		return "string"
	case lexer.T_ARRAY_CAST:
		return "array"
	case lexer.T_OBJECT_CAST:
		return "object"
	case lexer.T_BOOL_CAST:
		return "bool"
	default:
		return "unset"
	}
}

func includeKind(t lexer.TokenType) ast.IncludeKind {
	switch t {
	case lexer.T_INCLUDE:
		return ast.Include
	case lexer.T_INCLUDE_ONCE:
		return ast.IncludeOnce
	case lexer.T_REQUIRE:
		return ast.Require
	default:
		return ast.RequireOnce
	}
}

// ============= POSTFIX FORMS =============

func (p *Parser) parsePostfix(left ast.Expression) (ast.Expression, error) {
	tok := p.cur()

	switch tok.Type {
	case lexer.TOKEN_LPAREN:
		args, span, err := p.parseArgumentList()
		if err != nil {
			return nil, err
		}
		node := &ast.CallExpression{Callee: left, Args: args}
		node.Loc = left.Span().Union(span)
		return node, nil

	case lexer.TOKEN_LBRACKET:
		p.next()
		var index ast.Expression
		if !p.at(lexer.TOKEN_RBRACKET) {
			var err error
			index, err = p.parseExpression(bpLowest)
			if err != nil {
				return nil, err
			}
		}
		end, err := p.skip(lexer.TOKEN_RBRACKET)
		if err != nil {
			return nil, err
		}
		node := &ast.ArrayAccess{Target: left, Index: index}
		node.Loc = left.Span().Union(end)
		return node, nil

	case lexer.T_OBJECT_OPERATOR, lexer.T_NULLSAFE_OBJECT_OPERATOR:
		p.next()
		property, err := p.parseMemberName()
		if err != nil {
			return nil, err
		}
		node := &ast.PropertyFetch{
			Target:   left,
			NullSafe: tok.Type == lexer.T_NULLSAFE_OBJECT_OPERATOR,
			Property: property,
		}
		node.Loc = left.Span().Union(property.Span())
		return node, nil

	case lexer.T_PAAMAYIM_NEKUDOTAYIM:
		p.next()
		member, err := p.parseMemberName()
		if err != nil {
			return nil, err
		}
		node := &ast.StaticAccess{Class: left, Member: member}
		node.Loc = left.Span().Union(member.Span())
		return node, nil

	case lexer.T_INC, lexer.T_DEC:
		p.next()
		node := &ast.PostfixExpression{Operand: left, Op: tok.Value}
		node.Loc = left.Span().Union(tok.Span)
		return node, nil

	case lexer.TOKEN_QUESTION:
		p.next()
		var then ast.Expression
		if !p.at(lexer.TOKEN_COLON) {
			var err error
			then, err = p.parseExpression(bpLowest)
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.skipColon(); err != nil {
			return nil, err
		}
		elseExpr, err := p.parseExpression(bpTernary - 1)
		if err != nil {
			return nil, err
		}
		node := &ast.TernaryExpression{Cond: left, Then: then, Else: elseExpr}
		node.Loc = left.Span().Union(elseExpr.Span())
		return node, nil
	}

	return nil, p.errUnexpected(tok, "operator")
}

// parseMemberName parses the right of `->`, `?->`, or `::`: an identifier
// (reserved words allowed), a variable, or a braced expression.
func (p *Parser) parseMemberName() (ast.Expression, error) {
	tok := p.cur()
	switch {
	case isIdentifierMaybeReserved(tok.Type):
		p.next()
		node := &ast.MemberName{Value: tok.Value}
		node.Loc = tok.Span
		return node, nil
	case tok.Type == lexer.T_VARIABLE, tok.Type == lexer.TOKEN_DOLLAR,
		tok.Type == lexer.T_DOLLAR_OPEN_CURLY_BRACES:
		return p.parseVariableExpr()
	case tok.Type == lexer.TOKEN_LBRACE:
		p.next()
		inner, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.skipRightBrace(); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, p.errUnexpected(tok, "member name")
}

// ============= VARIABLES =============

func (p *Parser) parseSimpleVariable() (*ast.SimpleVariable, error) {
	tok := p.cur()
	if tok.Type != lexer.T_VARIABLE {
		return nil, p.errUnexpected(tok, "variable")
	}
	p.next()
	node := &ast.SimpleVariable{Name: strings.TrimPrefix(tok.Value, "$")}
	node.Loc = tok.Span
	return node, nil
}

// parseVariableExpr parses `$name`, `$$name`, and `${expr}`.
func (p *Parser) parseVariableExpr() (ast.Expression, error) {
	tok := p.cur()
	switch tok.Type {
	case lexer.T_VARIABLE:
		return p.parseSimpleVariable()

	case lexer.TOKEN_DOLLAR:
		p.next()
		inner, err := p.parseVariableExpr()
		if err != nil {
			return nil, err
		}
		node := &ast.VariableVariable{Var: inner}
		node.Loc = tok.Span.Union(inner.Span())
		return node, nil

	case lexer.T_DOLLAR_OPEN_CURLY_BRACES:
		p.next()
		inner, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
		end, err := p.skipRightBrace()
		if err != nil {
			return nil, err
		}
		node := &ast.BracedVariable{Expr: inner}
		node.Loc = tok.Span.Union(end)
		return node, nil
	}
	return nil, p.errUnexpected(tok, "variable")
}

// ============= LITERALS =============

func (p *Parser) parseIntegerLiteral() (ast.Expression, error) {
	tok := p.cur()
	p.next()
	clean := strings.ReplaceAll(tok.Value, "_", "")
	value, err := strconv.ParseInt(clean, 0, 64)
	if err != nil {
		// out-of-range integers degrade to float, as the engine does
		f, _ := strconv.ParseFloat(clean, 64)
		if i, ok := new(big.Int).SetString(clean, 0); ok {
			f, _ = new(big.Float).SetInt(i).Float64()
		}
		node := &ast.FloatLiteral{Value: f, Raw: tok.Value}
		node.Loc = tok.Span
		return node, nil
	}
	node := &ast.IntegerLiteral{Value: value, Raw: tok.Value}
	node.Loc = tok.Span
	return node, nil
}

func (p *Parser) parseFloatLiteral() (ast.Expression, error) {
	tok := p.cur()
	p.next()
	clean := strings.ReplaceAll(tok.Value, "_", "")
	value, _ := strconv.ParseFloat(clean, 64)
	node := &ast.FloatLiteral{Value: value, Raw: tok.Value}
	node.Loc = tok.Span
	return node, nil
}

func (p *Parser) parseStringLiteral() (ast.Expression, error) {
	tok := p.cur()
	p.next()
	node := &ast.StringLiteral{Value: cookString(tok.Value), Raw: tok.Value}
	node.Loc = tok.Span
	return node, nil
}

// cookString strips the surrounding quotes and resolves escapes. Single
// quotes only unescape `\'` and `\\`; double quotes handle the usual set.
func cookString(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	quote := raw[0]
	body := raw[1 : len(raw)-1]
	if quote == '\'' {
		body = strings.ReplaceAll(body, `\\`, "\x00")
		body = strings.ReplaceAll(body, `\'`, "'")
		return strings.ReplaceAll(body, "\x00", `\`)
	}
	return cookDoubleQuoted(body)
}

func cookDoubleQuoted(body string) string {
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if ch != '\\' || i+1 >= len(body) {
			b.WriteByte(ch)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'v':
			b.WriteByte('\v')
		case 'f':
			b.WriteByte('\f')
		case 'e':
			b.WriteByte(0x1b)
		case '\\':
			b.WriteByte('\\')
		case '$':
			b.WriteByte('$')
		case '"':
			b.WriteByte('"')
		default:
			b.WriteByte('\\')
			b.WriteByte(body[i])
		}
	}
	return b.String()
}

func (p *Parser) parseInterpolatedString() (ast.Expression, error) {
	start, err := p.skip(lexer.TOKEN_QUOTE)
	if err != nil {
		return nil, err
	}

	var parts []ast.Expression
	for !p.at(lexer.TOKEN_QUOTE) {
		if p.stream.IsEOF() {
			return nil, p.errExpected(p.cur(), lexer.TOKEN_QUOTE)
		}
		part, err := p.parseInterpolationPart()
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	end, err := p.skip(lexer.TOKEN_QUOTE)
	if err != nil {
		return nil, err
	}
	node := &ast.InterpolatedString{Parts: parts}
	node.Loc = start.Union(end)
	return node, nil
}

func (p *Parser) parseInterpolationPart() (ast.Expression, error) {
	tok := p.cur()
	switch tok.Type {
	case lexer.T_ENCAPSED_AND_WHITESPACE:
		p.next()
		node := &ast.StringLiteral{Value: cookDoubleQuoted(tok.Value), Raw: tok.Value}
		node.Loc = tok.Span
		return node, nil

	case lexer.T_VARIABLE:
		return p.parseSimpleVariable()

	case lexer.T_CURLY_OPEN:
		p.next()
		inner, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.skipRightBrace(); err != nil {
			return nil, err
		}
		return inner, nil

	case lexer.T_DOLLAR_OPEN_CURLY_BRACES:
		p.next()
		if p.at(lexer.T_STRING_VARNAME) {
			nameTok := p.cur()
			p.next()
			end, err := p.skipRightBrace()
			if err != nil {
				return nil, err
			}
			node := &ast.SimpleVariable{Name: nameTok.Value}
			node.Loc = tok.Span.Union(end)
			return node, nil
		}
		inner, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
		end, err := p.skipRightBrace()
		if err != nil {
			return nil, err
		}
		node := &ast.BracedVariable{Expr: inner}
		node.Loc = tok.Span.Union(end)
		return node, nil
	}
	return nil, p.errUnexpected(tok, "string interpolation")
}

func (p *Parser) parseHeredoc() (ast.Expression, error) {
	startTok := p.cur()
	p.next()

	label := strings.TrimSpace(strings.TrimPrefix(startTok.Value, "<<<"))
	nowdoc := strings.HasPrefix(label, "'")
	label = strings.Trim(label, "'\" \t\r\n")

	body := ""
	if p.at(lexer.T_ENCAPSED_AND_WHITESPACE) {
		body = p.cur().Value
		p.next()
	}
	end, err := p.skip(lexer.T_END_HEREDOC)
	if err != nil {
		return nil, err
	}
	node := &ast.HeredocString{Label: label, Value: body, Nowdoc: nowdoc}
	node.Loc = startTok.Span.Union(end)
	return node, nil
}

// ============= BUILTIN CONSTRUCT EXPRESSIONS =============

func (p *Parser) parseParenWrapped(start lexer.Token, build func(ast.Expression, lexer.Span) ast.Expression) (ast.Expression, error) {
	p.next()
	if _, err := p.skipLeftParenthesis(); err != nil {
		return nil, err
	}
	operand, err := p.parseExpression(bpLowest)
	if err != nil {
		return nil, err
	}
	end, err := p.skipRightParenthesis()
	if err != nil {
		return nil, err
	}
	return build(operand, start.Span.Union(end)), nil
}

func (p *Parser) parseIsset() (ast.Expression, error) {
	start := p.cur().Span
	p.next()
	if _, err := p.skipLeftParenthesis(); err != nil {
		return nil, err
	}

	var vars []ast.Expression
	for {
		v, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
		if p.at(lexer.TOKEN_COMMA) {
			p.next()
			if p.at(lexer.TOKEN_RPAREN) {
				break
			}
			continue
		}
		break
	}

	end, err := p.skipRightParenthesis()
	if err != nil {
		return nil, err
	}
	node := &ast.IssetExpression{Vars: vars}
	node.Loc = start.Union(end)
	return node, nil
}

func (p *Parser) parseExit() (ast.Expression, error) {
	tok := p.cur()
	p.next()
	node := &ast.ExitExpression{}
	node.Loc = tok.Span

	if p.at(lexer.TOKEN_LPAREN) {
		p.next()
		if !p.at(lexer.TOKEN_RPAREN) {
			operand, err := p.parseExpression(bpLowest)
			if err != nil {
				return nil, err
			}
			node.Operand = operand
		}
		end, err := p.skipRightParenthesis()
		if err != nil {
			return nil, err
		}
		node.Loc = tok.Span.Union(end)
	}
	return node, nil
}

func (p *Parser) parseYield() (ast.Expression, error) {
	tok := p.cur()
	p.next()
	node := &ast.YieldExpression{}
	node.Loc = tok.Span

	switch p.cur().Type {
	case lexer.TOKEN_SEMICOLON, lexer.TOKEN_RPAREN, lexer.TOKEN_RBRACKET,
		lexer.TOKEN_RBRACE, lexer.TOKEN_COMMA, lexer.T_CLOSE_TAG, lexer.T_EOF:
		return node, nil
	}

	value, err := p.parseExpression(bpAssign)
	if err != nil {
		return nil, err
	}
	if p.at(lexer.T_DOUBLE_ARROW) {
		p.next()
		node.Key = value
		value, err = p.parseExpression(bpAssign)
		if err != nil {
			return nil, err
		}
	}
	node.Value = value
	node.Loc = tok.Span.Union(value.Span())
	return node, nil
}

func (p *Parser) parseNew() (ast.Expression, error) {
	start := p.cur().Span
	p.next()

	class, err := p.parseExpression(bpNew)
	if err != nil {
		return nil, err
	}

	node := &ast.NewExpression{Class: class}
	node.Loc = start.Union(class.Span())
	if p.at(lexer.TOKEN_LPAREN) {
		args, span, err := p.parseArgumentList()
		if err != nil {
			return nil, err
		}
		node.Args = args
		node.Loc = node.Loc.Union(span)
	}
	return node, nil
}

func (p *Parser) parseMatch() (ast.Expression, error) {
	start := p.cur().Span
	p.next()
	defer p.enterScope(Scope{Kind: ScopeMatch})()

	if _, err := p.skipLeftParenthesis(); err != nil {
		return nil, err
	}
	subject, err := p.parseExpression(bpLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.skipRightParenthesis(); err != nil {
		return nil, err
	}
	if _, err := p.skipLeftBrace(); err != nil {
		return nil, err
	}

	var arms []ast.MatchArm
	for !p.at(lexer.TOKEN_RBRACE) && !p.stream.IsEOF() {
		arm, err := p.parseMatchArm()
		if err != nil {
			return nil, err
		}
		arms = append(arms, arm)

		if p.at(lexer.TOKEN_COMMA) {
			p.next()
			continue
		}
		break
	}

	end, err := p.skipRightBrace()
	if err != nil {
		return nil, err
	}
	node := &ast.MatchExpression{Subject: subject, Arms: arms}
	node.Loc = start.Union(end)
	return node, nil
}

func (p *Parser) parseMatchArm() (ast.MatchArm, error) {
	var arm ast.MatchArm
	start := p.cur().Span

	if p.at(lexer.T_DEFAULT) {
		p.next()
	} else {
		for {
			cond, err := p.parseExpression(bpLowest)
			if err != nil {
				return arm, err
			}
			arm.Conditions = append(arm.Conditions, cond)
			if p.at(lexer.TOKEN_COMMA) && !p.peekIs(lexer.T_DOUBLE_ARROW) {
				p.next()
				continue
			}
			if p.at(lexer.TOKEN_COMMA) {
				p.next()
			}
			break
		}
	}

	if _, err := p.skip(lexer.T_DOUBLE_ARROW); err != nil {
		return arm, err
	}
	body, err := p.parseExpression(bpLowest)
	if err != nil {
		return arm, err
	}
	arm.Body = body
	arm.Loc = start.Union(body.Span())
	return arm, nil
}
