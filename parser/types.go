package parser

import (
	"github.com/wudi/php-parser/ast"
	"github.com/wudi/php-parser/lexer"
)

// isTypeStart reports whether the current token can begin a type hint.
func isTypeStart(t lexer.TokenType) bool {
	switch t {
	case lexer.TOKEN_QUESTION, lexer.T_ARRAY, lexer.T_CALLABLE, lexer.T_STATIC:
		return true
	}
	return isNameToken(t)
}

// parseType parses a (possibly nullable, union, or intersection) type hint.
func (p *Parser) parseType() (ast.Type, error) {
	first, err := p.parseAtomicType()
	if err != nil {
		return nil, err
	}

	switch p.cur().Type {
	case lexer.TOKEN_PIPE:
		union := &ast.UnionType{Parts: []ast.Type{first}}
		union.Loc = first.Span()
		for p.at(lexer.TOKEN_PIPE) {
			p.next()
			part, err := p.parseAtomicType()
			if err != nil {
				return nil, err
			}
			union.Parts = append(union.Parts, part)
			union.Loc = union.Loc.Union(part.Span())
		}
		return union, nil

	case lexer.TOKEN_AMPERSAND:
		// `&` only continues an intersection type when a type name follows;
		// otherwise it belongs to a by-ref parameter.
		if !isNameToken(p.peek().Type) {
			return first, nil
		}
		inter := &ast.IntersectionType{Parts: []ast.Type{first}}
		inter.Loc = first.Span()
		for p.at(lexer.TOKEN_AMPERSAND) && isNameToken(p.peek().Type) {
			p.next()
			part, err := p.parseAtomicType()
			if err != nil {
				return nil, err
			}
			inter.Parts = append(inter.Parts, part)
			inter.Loc = inter.Loc.Union(part.Span())
		}
		return inter, nil
	}
	return first, nil
}

func (p *Parser) parseAtomicType() (ast.Type, error) {
	tok := p.cur()

	nullable := false
	start := tok.Span
	if tok.Type == lexer.TOKEN_QUESTION {
		nullable = true
		p.next()
		tok = p.cur()
	}

	switch {
	case isNameToken(tok.Type):
		name, err := p.fullTypeName()
		if err != nil {
			return nil, err
		}
		named := &ast.NamedType{Name: name, Nullable: nullable}
		named.Loc = start.Union(name.Span())
		return named, nil

	case tok.Type == lexer.T_ARRAY, tok.Type == lexer.T_CALLABLE, tok.Type == lexer.T_STATIC:
		p.next()
		name := &ast.Name{Kind: ast.NameUnqualified, Value: tok.Value}
		name.Loc = tok.Span
		named := &ast.NamedType{Name: name, Nullable: nullable}
		named.Loc = start.Union(tok.Span)
		return named, nil

	default:
		return nil, p.errUnexpected(tok, "type")
	}
}
