package parser

import (
	"github.com/wudi/php-parser/ast"
	"github.com/wudi/php-parser/lexer"
)

// parseShortArray parses `[...]` literals (also used as destructuring
// targets).
func (p *Parser) parseShortArray() (ast.Expression, error) {
	start, err := p.skip(lexer.TOKEN_LBRACKET)
	if err != nil {
		return nil, err
	}
	items, err := p.parseArrayItems(lexer.TOKEN_RBRACKET)
	if err != nil {
		return nil, err
	}
	end, err := p.skip(lexer.TOKEN_RBRACKET)
	if err != nil {
		return nil, err
	}
	node := &ast.ArrayExpression{Items: items, Short: true}
	node.Loc = start.Union(end)
	return node, nil
}

// parseLongArray parses `array(...)`.
func (p *Parser) parseLongArray() (ast.Expression, error) {
	start, err := p.skip(lexer.T_ARRAY)
	if err != nil {
		return nil, err
	}
	if _, err := p.skipLeftParenthesis(); err != nil {
		return nil, err
	}
	items, err := p.parseArrayItems(lexer.TOKEN_RPAREN)
	if err != nil {
		return nil, err
	}
	end, err := p.skipRightParenthesis()
	if err != nil {
		return nil, err
	}
	node := &ast.ArrayExpression{Items: items}
	node.Loc = start.Union(end)
	return node, nil
}

// parseListExpression parses a `list(...)` destructuring target.
func (p *Parser) parseListExpression() (ast.Expression, error) {
	start, err := p.skip(lexer.T_LIST)
	if err != nil {
		return nil, err
	}
	if _, err := p.skipLeftParenthesis(); err != nil {
		return nil, err
	}
	items, err := p.parseArrayItems(lexer.TOKEN_RPAREN)
	if err != nil {
		return nil, err
	}
	end, err := p.skipRightParenthesis()
	if err != nil {
		return nil, err
	}
	node := &ast.ListExpression{Items: items}
	node.Loc = start.Union(end)
	return node, nil
}

// parseArrayItems parses the comma-separated elements up to (not consuming)
// the end token. A trailing comma is allowed.
func (p *Parser) parseArrayItems(end lexer.TokenType) ([]ast.ArrayItem, error) {
	var items []ast.ArrayItem
	for !p.at(end) && !p.stream.IsEOF() {
		item, err := p.parseArrayItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		if p.at(lexer.TOKEN_COMMA) {
			p.next()
			continue
		}
		break
	}
	return items, nil
}

func (p *Parser) parseArrayItem() (ast.ArrayItem, error) {
	var item ast.ArrayItem
	start := p.cur().Span

	if p.at(lexer.T_ELLIPSIS) {
		p.next()
		value, err := p.parseExpression(bpLowest)
		if err != nil {
			return item, err
		}
		item.Spread = true
		item.Value = value
		item.Loc = start.Union(value.Span())
		return item, nil
	}

	if p.at(lexer.TOKEN_AMPERSAND) {
		p.next()
		value, err := p.parseExpression(bpLowest)
		if err != nil {
			return item, err
		}
		item.ByRef = true
		item.Value = value
		item.Loc = start.Union(value.Span())
		return item, nil
	}

	value, err := p.parseExpression(bpLowest)
	if err != nil {
		return item, err
	}

	if p.at(lexer.T_DOUBLE_ARROW) {
		p.next()
		item.Key = value
		if p.at(lexer.TOKEN_AMPERSAND) {
			p.next()
			item.ByRef = true
		}
		value, err = p.parseExpression(bpLowest)
		if err != nil {
			return item, err
		}
	}
	item.Value = value
	item.Loc = start.Union(value.Span())
	return item, nil
}

// parseArgumentList parses `(arg, ...)` including the parentheses; trailing
// commas are allowed.
func (p *Parser) parseArgumentList() ([]ast.Argument, lexer.Span, error) {
	start, err := p.skipLeftParenthesis()
	if err != nil {
		return nil, lexer.Span{}, err
	}

	var args []ast.Argument
	for !p.at(lexer.TOKEN_RPAREN) && !p.stream.IsEOF() {
		var arg ast.Argument
		argStart := p.cur().Span

		if p.at(lexer.T_ELLIPSIS) {
			p.next()
			arg.Spread = true
		}
		value, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, lexer.Span{}, err
		}
		arg.Value = value
		arg.Loc = argStart.Union(value.Span())
		args = append(args, arg)

		if p.at(lexer.TOKEN_COMMA) {
			p.next()
			continue
		}
		break
	}

	end, err := p.skipRightParenthesis()
	if err != nil {
		return nil, lexer.Span{}, err
	}
	return args, start.Union(end), nil
}
