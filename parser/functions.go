package parser

import (
	"github.com/wudi/php-parser/ast"
	"github.com/wudi/php-parser/lexer"
)

// parseFunctionDeclaration parses a named function. The dispatcher has
// already verified via lookahead that this is a declaration and not a
// closure expression.
func (p *Parser) parseFunctionDeclaration() (ast.Statement, error) {
	attrs := p.drainAttributes()
	start, err := p.skip(lexer.T_FUNCTION)
	if err != nil {
		return nil, err
	}
	start = attributesStart(attrs, start)

	byRef := false
	if p.at(lexer.TOKEN_AMPERSAND) {
		byRef = true
		p.next()
	}

	name, err := p.name()
	if err != nil {
		return nil, err
	}

	defer p.enterScope(Scope{Kind: ScopeFunction, Name: name.Value})()

	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	returnType, err := p.parseOptionalReturnType()
	if err != nil {
		return nil, err
	}
	body, end, err := p.parseBracedBody()
	if err != nil {
		return nil, err
	}

	fn := &ast.FunctionDeclaration{
		Attributes: attrs,
		ByRef:      byRef,
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
	}
	fn.Loc = start.Union(end)
	return fn, nil
}

// parseClosure parses `function (...) use (...) { ... }`; the `static`
// keyword, when present, has already been consumed by the caller.
func (p *Parser) parseClosure(static bool) (ast.Expression, error) {
	attrs := p.drainAttributes()
	start, err := p.skip(lexer.T_FUNCTION)
	if err != nil {
		return nil, err
	}
	start = attributesStart(attrs, start)

	byRef := false
	if p.at(lexer.TOKEN_AMPERSAND) {
		byRef = true
		p.next()
	}

	defer p.enterScope(Scope{Kind: ScopeClosure})()

	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}

	var uses []ast.ClosureUse
	if p.at(lexer.T_USE) {
		p.next()
		if _, err := p.skipLeftParenthesis(); err != nil {
			return nil, err
		}
		for {
			var use ast.ClosureUse
			useStart := p.cur().Span
			if p.at(lexer.TOKEN_AMPERSAND) {
				use.ByRef = true
				p.next()
			}
			v, err := p.parseSimpleVariable()
			if err != nil {
				return nil, err
			}
			use.Var = v
			use.Loc = useStart.Union(v.Span())
			uses = append(uses, use)

			if p.at(lexer.TOKEN_COMMA) {
				p.next()
				if p.at(lexer.TOKEN_RPAREN) {
					break
				}
				continue
			}
			break
		}
		if _, err := p.skipRightParenthesis(); err != nil {
			return nil, err
		}
	}

	returnType, err := p.parseOptionalReturnType()
	if err != nil {
		return nil, err
	}
	body, end, err := p.parseBracedBody()
	if err != nil {
		return nil, err
	}

	closure := &ast.ClosureExpression{
		Attributes: attrs,
		Static:     static,
		ByRef:      byRef,
		Params:     params,
		Uses:       uses,
		ReturnType: returnType,
		Body:       body,
	}
	closure.Loc = start.Union(end)
	return closure, nil
}

// parseArrowFunction parses `fn (...) => expr`.
func (p *Parser) parseArrowFunction(static bool) (ast.Expression, error) {
	attrs := p.drainAttributes()
	start, err := p.skip(lexer.T_FN)
	if err != nil {
		return nil, err
	}
	start = attributesStart(attrs, start)

	byRef := false
	if p.at(lexer.TOKEN_AMPERSAND) {
		byRef = true
		p.next()
	}

	defer p.enterScope(Scope{Kind: ScopeArrowFn})()

	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	returnType, err := p.parseOptionalReturnType()
	if err != nil {
		return nil, err
	}
	if _, err := p.skip(lexer.T_DOUBLE_ARROW); err != nil {
		return nil, err
	}
	body, err := p.parseExpression(bpLowest)
	if err != nil {
		return nil, err
	}

	fn := &ast.ArrowFunction{
		Attributes: attrs,
		Static:     static,
		ByRef:      byRef,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
	}
	fn.Loc = start.Union(body.Span())
	return fn, nil
}

// attributesStart widens a declaration's start span to cover any attribute
// groups gathered ahead of it.
func attributesStart(attrs []ast.AttributeGroup, start lexer.Span) lexer.Span {
	if len(attrs) > 0 {
		return attrs[0].Span().Union(start)
	}
	return start
}

// parseParameterList parses `(param, ...)` with attributes, promotion
// modifiers, types, by-ref, variadics, and defaults. Trailing commas are
// allowed.
func (p *Parser) parseParameterList() ([]ast.Parameter, error) {
	if _, err := p.skipLeftParenthesis(); err != nil {
		return nil, err
	}

	var params []ast.Parameter
	for !p.at(lexer.TOKEN_RPAREN) && !p.stream.IsEOF() {
		param, err := p.parseParameter()
		if err != nil {
			return nil, err
		}
		params = append(params, param)

		if p.at(lexer.TOKEN_COMMA) {
			p.next()
			continue
		}
		break
	}

	if _, err := p.skipRightParenthesis(); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseParameter() (ast.Parameter, error) {
	var param ast.Parameter
	start := p.cur().Span

	if _, err := p.gatherAttributes(); err != nil {
		return param, err
	}
	param.Attributes = p.drainAttributes()

	if isModifierToken(p.cur().Type) {
		bag, err := p.collectModifiers()
		if err != nil {
			return param, err
		}
		mods, err := propertyGroup(bag)
		if err != nil {
			return param, err
		}
		param.Promoted = &mods
	}

	if isTypeStart(p.cur().Type) {
		t, err := p.parseType()
		if err != nil {
			return param, err
		}
		param.Type = t
	}

	if p.at(lexer.TOKEN_AMPERSAND) {
		param.ByRef = true
		p.next()
	}
	if p.at(lexer.T_ELLIPSIS) {
		param.Variadic = true
		p.next()
	}

	v, err := p.parseSimpleVariable()
	if err != nil {
		return param, err
	}
	param.Var = v
	param.Loc = start.Union(v.Span())

	if p.at(lexer.TOKEN_EQUAL) {
		p.next()
		def, err := p.parseExpression(bpLowest)
		if err != nil {
			return param, err
		}
		param.Default = def
		param.Loc = param.Loc.Union(def.Span())
	}
	return param, nil
}

func (p *Parser) parseOptionalReturnType() (ast.Type, error) {
	if !p.at(lexer.TOKEN_COLON) {
		return nil, nil
	}
	p.next()
	return p.parseType()
}

// parseBracedBody parses `{ statements }` and returns the closing span.
func (p *Parser) parseBracedBody() ([]ast.Statement, lexer.Span, error) {
	if _, err := p.skipLeftBrace(); err != nil {
		return nil, lexer.Span{}, err
	}
	var body []ast.Statement
	for !p.at(lexer.TOKEN_RBRACE) && !p.stream.IsEOF() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, lexer.Span{}, err
		}
		body = append(body, stmt)
	}
	end, err := p.skipRightBrace()
	if err != nil {
		return nil, lexer.Span{}, err
	}
	return body, end, nil
}
