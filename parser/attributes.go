package parser

import (
	"github.com/wudi/php-parser/ast"
	"github.com/wudi/php-parser/lexer"
)

// gatherAttributes consumes every `#[...]` group in front of the cursor into
// the parser's pending buffer, order preserved. Reports whether any were
// gathered; the consumer drains via drainAttributes.
func (p *Parser) gatherAttributes() (bool, error) {
	gathered := false
	for p.at(lexer.T_ATTRIBUTE) {
		group, err := p.parseAttributeGroup()
		if err != nil {
			return gathered, err
		}
		p.pushAttributes([]ast.AttributeGroup{group})
		gathered = true
	}
	return gathered, nil
}

func (p *Parser) parseAttributeGroup() (ast.AttributeGroup, error) {
	var group ast.AttributeGroup
	start, err := p.skip(lexer.T_ATTRIBUTE)
	if err != nil {
		return group, err
	}

	for {
		attr, err := p.parseAttribute()
		if err != nil {
			return group, err
		}
		group.Attrs = append(group.Attrs, attr)

		if p.at(lexer.TOKEN_COMMA) {
			p.next()
			// a trailing comma before the closing bracket is allowed
			if p.at(lexer.TOKEN_RBRACKET) {
				break
			}
			continue
		}
		break
	}

	end, err := p.skip(lexer.TOKEN_RBRACKET)
	if err != nil {
		return group, err
	}
	group.Loc = start.Union(end)
	return group, nil
}

func (p *Parser) parseAttribute() (ast.Attribute, error) {
	var attr ast.Attribute
	name, err := p.fullTypeName()
	if err != nil {
		return attr, err
	}
	attr.Name = name
	attr.Loc = name.Span()

	if p.at(lexer.TOKEN_LPAREN) {
		args, span, err := p.parseArgumentList()
		if err != nil {
			return attr, err
		}
		attr.Args = args
		attr.Loc = attr.Loc.Union(span)
	}
	return attr, nil
}
