package parser

import (
	"github.com/wudi/php-parser/ast"
	"github.com/wudi/php-parser/errors"
	"github.com/wudi/php-parser/lexer"
)

// parseStatement parses one statement, consumes a transparent close tag
// after it, and enforces the attribute-drain invariant at the boundary.
func (p *Parser) parseStatement() (ast.Statement, error) {
	stmt, err := p.statement()
	if err != nil {
		return nil, err
	}

	if p.at(lexer.T_CLOSE_TAG) {
		p.next()
	}

	if len(p.attributes) > 0 {
		group := p.attributes[0]
		return nil, &errors.ParseError{
			Kind: errors.UnconsumedAttributes,
			Span: group.Span(),
			Pos:  p.cur().Pos,
		}
	}
	return stmt, nil
}

func (p *Parser) statement() (ast.Statement, error) {
	hasAttributes, err := p.gatherAttributes()
	if err != nil {
		return nil, err
	}
	p.skipOpenTag()

	cur := p.cur()
	peek := p.peek()

	if hasAttributes {
		// attributes restrict the match to declaration-shaped productions,
		// falling back to an attribute-annotated expression (closures and
		// arrow functions drain the buffer themselves).
		switch {
		case cur.Type == lexer.T_ABSTRACT, cur.Type == lexer.T_FINAL,
			cur.Type == lexer.T_CLASS:
			return p.parseClassDeclaration()
		case cur.Type == lexer.T_READONLY && peek.Type != lexer.TOKEN_LPAREN:
			return p.parseClassDeclaration()
		case cur.Type == lexer.T_INTERFACE:
			return p.parseInterfaceDeclaration()
		case cur.Type == lexer.T_TRAIT:
			return p.parseTraitDeclaration()
		case cur.Type == lexer.T_ENUM && !isEnumExpressionFollower(peek.Type):
			return p.parseEnumDeclaration()
		case cur.Type == lexer.T_FUNCTION && isFunctionDeclarationAhead(p):
			return p.parseFunctionDeclaration()
		default:
			return p.parseExpressionStatement()
		}
	}

	// a bare identifier (reserved words included) followed by `:` is a
	// label; this outranks keyword dispatch so `enum:` and friends label
	if isIdentifierMaybeReserved(cur.Type) && peek.Type == lexer.TOKEN_COLON {
		return p.parseLabel()
	}

	switch cur.Type {
	case lexer.T_OPEN_TAG_WITH_ECHO:
		return p.parseShortEcho()

	case lexer.T_ABSTRACT, lexer.T_FINAL, lexer.T_CLASS:
		return p.parseClassDeclaration()
	case lexer.T_READONLY:
		if peek.Type != lexer.TOKEN_LPAREN {
			return p.parseClassDeclaration()
		}
		return p.parseExpressionStatement()
	case lexer.T_INTERFACE:
		return p.parseInterfaceDeclaration()
	case lexer.T_TRAIT:
		return p.parseTraitDeclaration()
	case lexer.T_ENUM:
		if !isEnumExpressionFollower(peek.Type) {
			return p.parseEnumDeclaration()
		}
		return p.parseExpressionStatement()

	case lexer.T_FUNCTION:
		if isFunctionDeclarationAhead(p) {
			return p.parseFunctionDeclaration()
		}
		return p.parseExpressionStatement()

	case lexer.T_GOTO:
		return p.parseGoto()

	case lexer.T_DECLARE:
		return p.parseDeclare()
	case lexer.T_GLOBAL:
		return p.parseGlobal()
	case lexer.T_STATIC:
		if peek.Type == lexer.T_VARIABLE {
			return p.parseStaticVariables()
		}
		return p.parseExpressionStatement()

	case lexer.T_INLINE_HTML:
		p.next()
		p.skipOpenTag()
		stmt := &ast.InlineHTMLStatement{Value: cur.Value}
		stmt.Loc = cur.Span
		return stmt, nil

	case lexer.T_DO:
		return p.parseDoWhile()
	case lexer.T_WHILE:
		return p.parseWhile()
	case lexer.T_FOR:
		return p.parseFor()
	case lexer.T_FOREACH:
		return p.parseForeach()
	case lexer.T_CONTINUE:
		return p.parseContinue()
	case lexer.T_BREAK:
		return p.parseBreak()
	case lexer.T_SWITCH:
		return p.parseSwitch()
	case lexer.T_IF:
		return p.parseIf()
	case lexer.T_ECHO:
		return p.parseEcho()
	case lexer.T_RETURN:
		return p.parseReturn()
	case lexer.T_TRY:
		return p.parseTry()
	case lexer.T_UNSET:
		return p.parseUnset()

	case lexer.TOKEN_SEMICOLON:
		p.next()
		stmt := &ast.NoopStatement{}
		stmt.Loc = cur.Span
		return stmt, nil

	case lexer.TOKEN_LBRACE:
		body, end, err := p.parseBracedBody()
		if err != nil {
			return nil, err
		}
		stmt := &ast.BlockStatement{Statements: body}
		stmt.Loc = cur.Span.Union(end)
		return stmt, nil
	}

	return p.parseExpressionStatement()
}

// isEnumExpressionFollower reports tokens after `enum` that force an
// expression reading: a call, a static access, or a label colon.
func isEnumExpressionFollower(t lexer.TokenType) bool {
	switch t {
	case lexer.TOKEN_LPAREN, lexer.T_PAAMAYIM_NEKUDOTAYIM, lexer.TOKEN_COLON:
		return true
	}
	return false
}

// isFunctionDeclarationAhead distinguishes `function name` and
// `function &name` declarations from closure expressions (`function (`,
// `function & (`). Needs two tokens of lookahead.
func isFunctionDeclarationAhead(p *Parser) bool {
	peek := p.peek()
	if isIdentifierMaybeSoftReserved(peek.Type) {
		return true
	}
	if peek.Type == lexer.TOKEN_AMPERSAND {
		return isIdentifierMaybeSoftReserved(p.stream.Lookahead(2).Type)
	}
	return false
}

// endStatement accepts either a semicolon or a close tag (the close tag is
// left for the statement epilogue); returns the span extending the
// statement.
func (p *Parser) endStatement(last lexer.Span) (lexer.Span, error) {
	if p.at(lexer.T_CLOSE_TAG) {
		return last, nil
	}
	return p.skipSemicolon()
}

// ============= SIMPLE STATEMENTS =============

func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	expr, span, err := p.semicolonTerminated(func() (ast.Expression, error) {
		return p.parseExpression(bpLowest)
	})
	if err != nil {
		return nil, err
	}
	stmt := &ast.ExpressionStatement{Expr: expr}
	stmt.Loc = span
	return stmt, nil
}

func (p *Parser) parseEcho() (ast.Statement, error) {
	start, err := p.skip(lexer.T_ECHO)
	if err != nil {
		return nil, err
	}
	values, last, err := p.parseEchoValues()
	if err != nil {
		return nil, err
	}
	end, err := p.endStatement(last)
	if err != nil {
		return nil, err
	}
	stmt := &ast.EchoStatement{Values: values}
	stmt.Loc = start.Union(end)
	return stmt, nil
}

func (p *Parser) parseShortEcho() (ast.Statement, error) {
	start, err := p.skip(lexer.T_OPEN_TAG_WITH_ECHO)
	if err != nil {
		return nil, err
	}
	values, last, err := p.parseEchoValues()
	if err != nil {
		return nil, err
	}
	end, err := p.endStatement(last)
	if err != nil {
		return nil, err
	}
	stmt := &ast.ShortEchoStatement{Values: values}
	stmt.Loc = start.Union(end)
	return stmt, nil
}

func (p *Parser) parseEchoValues() ([]ast.Expression, lexer.Span, error) {
	var values []ast.Expression
	var last lexer.Span
	for {
		value, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, lexer.Span{}, err
		}
		values = append(values, value)
		last = value.Span()
		if p.at(lexer.TOKEN_COMMA) {
			p.next()
			continue
		}
		return values, last, nil
	}
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	start, err := p.skip(lexer.T_RETURN)
	if err != nil {
		return nil, err
	}
	stmt := &ast.ReturnStatement{}
	last := start
	if !p.at(lexer.TOKEN_SEMICOLON) && !p.at(lexer.T_CLOSE_TAG) {
		value, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
		stmt.Value = value
		last = value.Span()
	}
	end, err := p.endStatement(last)
	if err != nil {
		return nil, err
	}
	stmt.Loc = start.Union(end)
	return stmt, nil
}

func (p *Parser) parseBreak() (ast.Statement, error) {
	start, err := p.skip(lexer.T_BREAK)
	if err != nil {
		return nil, err
	}
	stmt := &ast.BreakStatement{}
	last := start
	if !p.at(lexer.TOKEN_SEMICOLON) && !p.at(lexer.T_CLOSE_TAG) {
		level, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
		stmt.Level = level
		last = level.Span()
	}
	end, err := p.endStatement(last)
	if err != nil {
		return nil, err
	}
	stmt.Loc = start.Union(end)
	return stmt, nil
}

func (p *Parser) parseContinue() (ast.Statement, error) {
	start, err := p.skip(lexer.T_CONTINUE)
	if err != nil {
		return nil, err
	}
	stmt := &ast.ContinueStatement{}
	last := start
	if !p.at(lexer.TOKEN_SEMICOLON) && !p.at(lexer.T_CLOSE_TAG) {
		level, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
		stmt.Level = level
		last = level.Span()
	}
	end, err := p.endStatement(last)
	if err != nil {
		return nil, err
	}
	stmt.Loc = start.Union(end)
	return stmt, nil
}

func (p *Parser) parseGoto() (ast.Statement, error) {
	start, err := p.skip(lexer.T_GOTO)
	if err != nil {
		return nil, err
	}
	label, err := p.identifier()
	if err != nil {
		return nil, err
	}
	end, err := p.endStatement(label.Span())
	if err != nil {
		return nil, err
	}
	stmt := &ast.GotoStatement{Label: label}
	stmt.Loc = start.Union(end)
	return stmt, nil
}

func (p *Parser) parseLabel() (ast.Statement, error) {
	name, err := p.identifier()
	if err != nil {
		return nil, err
	}
	end, err := p.skipColon()
	if err != nil {
		return nil, err
	}
	stmt := &ast.LabelStatement{Name: name}
	stmt.Loc = name.Span().Union(end)
	return stmt, nil
}

// ============= VARIABLE BINDINGS =============

// parseGlobal parses `global $a, $b;`. A trailing comma is rejected with a
// dedicated error anchored at the comma.
func (p *Parser) parseGlobal() (ast.Statement, error) {
	start, err := p.skip(lexer.T_GLOBAL)
	if err != nil {
		return nil, err
	}

	var vars []ast.Expression
	for {
		v, err := p.parseVariableExpr()
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)

		if p.at(lexer.TOKEN_COMMA) {
			comma := p.cur()
			if !isVariableStart(p.peek().Type) {
				return nil, p.errTrailingSeparator(comma, "global variable list")
			}
			p.next()
			continue
		}
		break
	}

	end, err := p.endStatement(vars[len(vars)-1].Span())
	if err != nil {
		return nil, err
	}
	stmt := &ast.GlobalStatement{Vars: vars}
	stmt.Loc = start.Union(end)
	return stmt, nil
}

func (p *Parser) parseStaticVariables() (ast.Statement, error) {
	start, err := p.skip(lexer.T_STATIC)
	if err != nil {
		return nil, err
	}

	var vars []ast.StaticVar
	for {
		v, err := p.parseSimpleVariable()
		if err != nil {
			return nil, err
		}
		sv := ast.StaticVar{Var: v}
		sv.Loc = v.Span()
		if p.at(lexer.TOKEN_EQUAL) {
			p.next()
			def, err := p.parseExpression(bpLowest)
			if err != nil {
				return nil, err
			}
			sv.Default = def
			sv.Loc = sv.Loc.Union(def.Span())
		}
		vars = append(vars, sv)

		if p.at(lexer.TOKEN_COMMA) {
			comma := p.cur()
			if p.peek().Type != lexer.T_VARIABLE {
				return nil, p.errTrailingSeparator(comma, "static variable list")
			}
			p.next()
			continue
		}
		break
	}

	end, err := p.endStatement(vars[len(vars)-1].Loc)
	if err != nil {
		return nil, err
	}
	stmt := &ast.StaticStatement{Vars: vars}
	stmt.Loc = start.Union(end)
	return stmt, nil
}

func isVariableStart(t lexer.TokenType) bool {
	switch t {
	case lexer.T_VARIABLE, lexer.TOKEN_DOLLAR, lexer.T_DOLLAR_OPEN_CURLY_BRACES:
		return true
	}
	return false
}

// ============= DECLARE =============

func (p *Parser) parseDeclare() (ast.Statement, error) {
	start, err := p.skip(lexer.T_DECLARE)
	if err != nil {
		return nil, err
	}
	if _, err := p.skipLeftParenthesis(); err != nil {
		return nil, err
	}

	var entries []ast.DeclareEntry
	for {
		key, err := p.identifier()
		if err != nil {
			return nil, err
		}
		if _, err := p.skip(lexer.TOKEN_EQUAL); err != nil {
			return nil, err
		}
		value, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
		entry := ast.DeclareEntry{Key: key, Value: value}
		entry.Loc = key.Span().Union(value.Span())
		entries = append(entries, entry)

		if p.at(lexer.TOKEN_COMMA) {
			p.next()
			continue
		}
		break
	}
	if _, err := p.skipRightParenthesis(); err != nil {
		return nil, err
	}

	stmt := &ast.DeclareStatement{Entries: entries}

	switch p.cur().Type {
	case lexer.TOKEN_SEMICOLON:
		end, _ := p.skipSemicolon()
		stmt.Form = ast.DeclareNoop
		stmt.Loc = start.Union(end)

	case lexer.TOKEN_LBRACE:
		body, end, err := p.parseBracedBody()
		if err != nil {
			return nil, err
		}
		stmt.Form = ast.DeclareBraced
		stmt.Statements = body
		stmt.Loc = start.Union(end)

	case lexer.TOKEN_COLON:
		p.next()
		body, err := p.parseStatementsUntil(lexer.T_ENDDECLARE)
		if err != nil {
			return nil, err
		}
		if _, err := p.skip(lexer.T_ENDDECLARE); err != nil {
			return nil, err
		}
		end, err := p.skipSemicolon()
		if err != nil {
			return nil, err
		}
		stmt.Form = ast.DeclareAlternative
		stmt.Statements = body
		stmt.Loc = start.Union(end)

	default:
		expr, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
		end, err := p.endStatement(expr.Span())
		if err != nil {
			return nil, err
		}
		stmt.Form = ast.DeclareExpression
		stmt.Expr = expr
		stmt.Loc = start.Union(end)
	}
	return stmt, nil
}

// ============= LOOPS =============

// parseControlBody parses a loop or branch body: a brace block, an
// alternative-syntax block ending at altEnd, or a single statement.
func (p *Parser) parseControlBody(altEnd lexer.TokenType) ([]ast.Statement, lexer.Span, error) {
	switch p.cur().Type {
	case lexer.TOKEN_LBRACE:
		return p.parseBracedBody()

	case lexer.TOKEN_COLON:
		p.next()
		body, err := p.parseStatementsUntil(altEnd)
		if err != nil {
			return nil, lexer.Span{}, err
		}
		if _, err := p.skip(altEnd); err != nil {
			return nil, lexer.Span{}, err
		}
		end, err := p.skipSemicolon()
		if err != nil {
			return nil, lexer.Span{}, err
		}
		return body, end, nil

	default:
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, lexer.Span{}, err
		}
		return []ast.Statement{stmt}, stmt.Span(), nil
	}
}

func (p *Parser) parseStatementsUntil(enders ...lexer.TokenType) ([]ast.Statement, error) {
	var body []ast.Statement
	for !p.stream.IsEOF() {
		t := p.cur().Type
		for _, e := range enders {
			if t == e {
				return body, nil
			}
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	return body, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	start, err := p.skip(lexer.T_WHILE)
	if err != nil {
		return nil, err
	}
	if _, err := p.skipLeftParenthesis(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(bpLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.skipRightParenthesis(); err != nil {
		return nil, err
	}
	body, end, err := p.parseControlBody(lexer.T_ENDWHILE)
	if err != nil {
		return nil, err
	}
	stmt := &ast.WhileStatement{Cond: cond, Body: body}
	stmt.Loc = start.Union(end)
	return stmt, nil
}

func (p *Parser) parseDoWhile() (ast.Statement, error) {
	start, err := p.skip(lexer.T_DO)
	if err != nil {
		return nil, err
	}

	var body []ast.Statement
	if p.at(lexer.TOKEN_LBRACE) {
		var err error
		body, _, err = p.parseBracedBody()
		if err != nil {
			return nil, err
		}
	} else {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = []ast.Statement{stmt}
	}

	if _, err := p.skip(lexer.T_WHILE); err != nil {
		return nil, err
	}
	if _, err := p.skipLeftParenthesis(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(bpLowest)
	if err != nil {
		return nil, err
	}
	last, err := p.skipRightParenthesis()
	if err != nil {
		return nil, err
	}
	end, err := p.endStatement(last)
	if err != nil {
		return nil, err
	}
	stmt := &ast.DoWhileStatement{Body: body, Cond: cond}
	stmt.Loc = start.Union(end)
	return stmt, nil
}

func (p *Parser) parseFor() (ast.Statement, error) {
	start, err := p.skip(lexer.T_FOR)
	if err != nil {
		return nil, err
	}
	if _, err := p.skipLeftParenthesis(); err != nil {
		return nil, err
	}

	parseSection := func(ender lexer.TokenType) ([]ast.Expression, error) {
		var exprs []ast.Expression
		for !p.at(ender) {
			expr, err := p.parseExpression(bpLowest)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, expr)
			if p.at(lexer.TOKEN_COMMA) {
				p.next()
				continue
			}
			break
		}
		return exprs, nil
	}

	init, err := parseSection(lexer.TOKEN_SEMICOLON)
	if err != nil {
		return nil, err
	}
	if _, err := p.skipSemicolon(); err != nil {
		return nil, err
	}
	cond, err := parseSection(lexer.TOKEN_SEMICOLON)
	if err != nil {
		return nil, err
	}
	if _, err := p.skipSemicolon(); err != nil {
		return nil, err
	}
	loop, err := parseSection(lexer.TOKEN_RPAREN)
	if err != nil {
		return nil, err
	}
	if _, err := p.skipRightParenthesis(); err != nil {
		return nil, err
	}

	body, end, err := p.parseControlBody(lexer.T_ENDFOR)
	if err != nil {
		return nil, err
	}
	stmt := &ast.ForStatement{Init: init, Cond: cond, Loop: loop, Body: body}
	stmt.Loc = start.Union(end)
	return stmt, nil
}

func (p *Parser) parseForeach() (ast.Statement, error) {
	start, err := p.skip(lexer.T_FOREACH)
	if err != nil {
		return nil, err
	}
	if _, err := p.skipLeftParenthesis(); err != nil {
		return nil, err
	}
	subject, err := p.parseExpression(bpLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.skip(lexer.T_AS); err != nil {
		return nil, err
	}

	stmt := &ast.ForeachStatement{Subject: subject}

	if p.at(lexer.TOKEN_AMPERSAND) {
		stmt.ByRef = true
		p.next()
	}
	first, err := p.parseExpression(bpLowest)
	if err != nil {
		return nil, err
	}

	if p.at(lexer.T_DOUBLE_ARROW) {
		p.next()
		stmt.Key = first
		if p.at(lexer.TOKEN_AMPERSAND) {
			stmt.ByRef = true
			p.next()
		}
		stmt.Value, err = p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
	} else {
		stmt.Value = first
	}

	if _, err := p.skipRightParenthesis(); err != nil {
		return nil, err
	}
	body, end, err := p.parseControlBody(lexer.T_ENDFOREACH)
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	stmt.Loc = start.Union(end)
	return stmt, nil
}

// ============= BRANCHES =============

func (p *Parser) parseIf() (ast.Statement, error) {
	start, err := p.skip(lexer.T_IF)
	if err != nil {
		return nil, err
	}
	if _, err := p.skipLeftParenthesis(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(bpLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.skipRightParenthesis(); err != nil {
		return nil, err
	}

	stmt := &ast.IfStatement{Cond: cond}

	if p.at(lexer.TOKEN_COLON) {
		return p.parseIfAlternative(start, stmt)
	}

	then, last, err := p.parseIfBody()
	if err != nil {
		return nil, err
	}
	stmt.Then = then

	for p.at(lexer.T_ELSEIF) {
		clauseStart := p.cur().Span
		p.next()
		if _, err := p.skipLeftParenthesis(); err != nil {
			return nil, err
		}
		clauseCond, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.skipRightParenthesis(); err != nil {
			return nil, err
		}
		body, clauseEnd, err := p.parseIfBody()
		if err != nil {
			return nil, err
		}
		clause := ast.ElseIfClause{Cond: clauseCond, Body: body}
		clause.Loc = clauseStart.Union(clauseEnd)
		stmt.ElseIfs = append(stmt.ElseIfs, clause)
		last = clauseEnd
	}

	if p.at(lexer.T_ELSE) {
		p.next()
		stmt.HasElse = true
		if p.at(lexer.T_IF) {
			// `else if` chains as a nested if in the else branch
			nested, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			stmt.Else = []ast.Statement{nested}
			last = nested.Span()
		} else {
			elseBody, elseEnd, err := p.parseIfBody()
			if err != nil {
				return nil, err
			}
			stmt.Else = elseBody
			last = elseEnd
		}
	}

	stmt.Loc = start.Union(last)
	return stmt, nil
}

func (p *Parser) parseIfBody() ([]ast.Statement, lexer.Span, error) {
	if p.at(lexer.TOKEN_LBRACE) {
		return p.parseBracedBody()
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, lexer.Span{}, err
	}
	return []ast.Statement{stmt}, stmt.Span(), nil
}

// parseIfAlternative handles `if (...): ... elseif (...): ... else: ...
// endif;`.
func (p *Parser) parseIfAlternative(start lexer.Span, stmt *ast.IfStatement) (ast.Statement, error) {
	p.next()
	then, err := p.parseStatementsUntil(lexer.T_ELSEIF, lexer.T_ELSE, lexer.T_ENDIF)
	if err != nil {
		return nil, err
	}
	stmt.Then = then

	for p.at(lexer.T_ELSEIF) {
		clauseStart := p.cur().Span
		p.next()
		if _, err := p.skipLeftParenthesis(); err != nil {
			return nil, err
		}
		clauseCond, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.skipRightParenthesis(); err != nil {
			return nil, err
		}
		if _, err := p.skipColon(); err != nil {
			return nil, err
		}
		body, err := p.parseStatementsUntil(lexer.T_ELSEIF, lexer.T_ELSE, lexer.T_ENDIF)
		if err != nil {
			return nil, err
		}
		clause := ast.ElseIfClause{Cond: clauseCond, Body: body}
		clause.Loc = clauseStart
		if len(body) > 0 {
			clause.Loc = clauseStart.Union(body[len(body)-1].Span())
		}
		stmt.ElseIfs = append(stmt.ElseIfs, clause)
	}

	if p.at(lexer.T_ELSE) {
		p.next()
		if _, err := p.skipColon(); err != nil {
			return nil, err
		}
		elseBody, err := p.parseStatementsUntil(lexer.T_ENDIF)
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBody
		stmt.HasElse = true
	}

	if _, err := p.skip(lexer.T_ENDIF); err != nil {
		return nil, err
	}
	end, err := p.skipSemicolon()
	if err != nil {
		return nil, err
	}
	stmt.Loc = start.Union(end)
	return stmt, nil
}

func (p *Parser) parseSwitch() (ast.Statement, error) {
	start, err := p.skip(lexer.T_SWITCH)
	if err != nil {
		return nil, err
	}
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

	alternative := false
	switch p.cur().Type {
	case lexer.TOKEN_LBRACE:
		p.next()
	case lexer.TOKEN_COLON:
		alternative = true
		p.next()
	default:
		return nil, p.errUnexpected(p.cur(), "{", ":")
	}

	var cases []ast.SwitchCase
	for {
		t := p.cur().Type
		if t == lexer.TOKEN_RBRACE || t == lexer.T_ENDSWITCH || t == lexer.T_EOF {
			break
		}
		c, err := p.parseSwitchCase()
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}

	var end lexer.Span
	if alternative {
		if _, err := p.skip(lexer.T_ENDSWITCH); err != nil {
			return nil, err
		}
		end, err = p.skipSemicolon()
		if err != nil {
			return nil, err
		}
	} else {
		end, err = p.skipRightBrace()
		if err != nil {
			return nil, err
		}
	}

	stmt := &ast.SwitchStatement{Subject: subject, Cases: cases}
	stmt.Loc = start.Union(end)
	return stmt, nil
}

func (p *Parser) parseSwitchCase() (ast.SwitchCase, error) {
	var c ast.SwitchCase
	start := p.cur().Span

	switch p.cur().Type {
	case lexer.T_CASE:
		p.next()
		cond, err := p.parseExpression(bpLowest)
		if err != nil {
			return c, err
		}
		c.Cond = cond
	case lexer.T_DEFAULT:
		p.next()
	default:
		return c, p.errUnexpected(p.cur(), "case", "default")
	}

	// both `:` and `;` may terminate a case label
	switch p.cur().Type {
	case lexer.TOKEN_COLON, lexer.TOKEN_SEMICOLON:
		p.next()
	default:
		return c, p.errExpected(p.cur(), lexer.TOKEN_COLON)
	}

	body, err := p.parseStatementsUntil(lexer.T_CASE, lexer.T_DEFAULT,
		lexer.TOKEN_RBRACE, lexer.T_ENDSWITCH)
	if err != nil {
		return c, err
	}
	c.Body = body
	c.Loc = start
	if len(body) > 0 {
		c.Loc = start.Union(body[len(body)-1].Span())
	}
	return c, nil
}

// ============= TRY =============

func (p *Parser) parseTry() (ast.Statement, error) {
	start, err := p.skip(lexer.T_TRY)
	if err != nil {
		return nil, err
	}
	body, last, err := p.parseBracedBody()
	if err != nil {
		return nil, err
	}

	stmt := &ast.TryStatement{Body: body}

	for p.at(lexer.T_CATCH) {
		clauseStart := p.cur().Span
		p.next()
		if _, err := p.skipLeftParenthesis(); err != nil {
			return nil, err
		}

		var types []*ast.Name
		for {
			name, err := p.fullTypeName()
			if err != nil {
				return nil, err
			}
			types = append(types, name)
			if p.at(lexer.TOKEN_PIPE) {
				p.next()
				continue
			}
			break
		}

		var catchVar *ast.SimpleVariable
		if p.at(lexer.T_VARIABLE) {
			catchVar, err = p.parseSimpleVariable()
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.skipRightParenthesis(); err != nil {
			return nil, err
		}
		catchBody, clauseEnd, err := p.parseBracedBody()
		if err != nil {
			return nil, err
		}

		clause := ast.CatchClause{Types: types, Var: catchVar, Body: catchBody}
		clause.Loc = clauseStart.Union(clauseEnd)
		stmt.Catches = append(stmt.Catches, clause)
		last = clauseEnd
	}

	if p.at(lexer.T_FINALLY) {
		p.next()
		finallyBody, finallyEnd, err := p.parseBracedBody()
		if err != nil {
			return nil, err
		}
		stmt.Finally = finallyBody
		stmt.HasFinally = true
		last = finallyEnd
	}

	stmt.Loc = start.Union(last)
	return stmt, nil
}

// ============= UNSET =============

func (p *Parser) parseUnset() (ast.Statement, error) {
	start, err := p.skip(lexer.T_UNSET)
	if err != nil {
		return nil, err
	}
	if _, err := p.skipLeftParenthesis(); err != nil {
		return nil, err
	}

	var vars []ast.Expression
	for !p.at(lexer.TOKEN_RPAREN) && !p.stream.IsEOF() {
		v, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
		if p.at(lexer.TOKEN_COMMA) {
			p.next()
			continue
		}
		break
	}

	last, err := p.skipRightParenthesis()
	if err != nil {
		return nil, err
	}
	end, err := p.endStatement(last)
	if err != nil {
		return nil, err
	}
	stmt := &ast.UnsetStatement{Vars: vars}
	stmt.Loc = start.Union(end)
	return stmt, nil
}
