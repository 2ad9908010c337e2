package parser

import (
	"github.com/wudi/php-parser/ast"
	"github.com/wudi/php-parser/lexer"
)

// Keyword classification. PHP reserves most keywords everywhere, but a
// handful are only keywords in certain positions (soft-reserved), and member
// names may be any keyword at all. Declaration sites are strict; member
// access sites are permissive. These are separate productions, not a flag.

var softReservedKeywords = map[lexer.TokenType]bool{
	lexer.T_ENUM:     true,
	lexer.T_READONLY: true,
	lexer.T_MATCH:    true,
	lexer.T_FN:       true,
}

func isSoftReserved(t lexer.TokenType) bool {
	return softReservedKeywords[t]
}

// isReservedKeyword reports a hard keyword: never usable as a declared name.
func isReservedKeyword(t lexer.TokenType) bool {
	if isSoftReserved(t) {
		return false
	}
	return isKeywordToken(t)
}

// isKeywordToken covers every token the lexer produced from a keyword.
func isKeywordToken(t lexer.TokenType) bool {
	for _, kw := range lexer.Keywords {
		if kw == t {
			return true
		}
	}
	return false
}

// isIdentifierMaybeReserved accepts any identifier-shaped token, keywords
// included: legal as a member name (`$obj->class`).
func isIdentifierMaybeReserved(t lexer.TokenType) bool {
	return t == lexer.T_STRING || isKeywordToken(t)
}

// isIdentifierMaybeSoftReserved accepts plain identifiers and soft-reserved
// keywords: legal as a function or method name at a declaration site.
func isIdentifierMaybeSoftReserved(t lexer.TokenType) bool {
	return t == lexer.T_STRING || isSoftReserved(t)
}

func isNameToken(t lexer.TokenType) bool {
	switch t {
	case lexer.T_STRING, lexer.T_NAME_QUALIFIED,
		lexer.T_NAME_FULLY_QUALIFIED, lexer.T_NAME_RELATIVE:
		return true
	}
	return false
}

// ============= PRODUCTIONS =============

// identifier parses a member-position identifier; reserved words are
// accepted.
func (p *Parser) identifier() (*ast.Identifier, error) {
	tok := p.cur()
	if !isIdentifierMaybeReserved(tok.Type) {
		return nil, p.errUnexpected(tok, "identifier")
	}
	p.next()
	id := &ast.Identifier{Value: tok.Value}
	id.Loc = tok.Span
	return id, nil
}

// name parses a declaration-position name where soft-reserved keywords are
// acceptable (function and method names).
func (p *Parser) name() (*ast.Identifier, error) {
	tok := p.cur()
	if !isIdentifierMaybeSoftReserved(tok.Type) {
		return nil, p.errUnexpected(tok, "identifier")
	}
	p.next()
	id := &ast.Identifier{Value: tok.Value}
	id.Loc = tok.Span
	return id, nil
}

// typeIdentifier parses a strict declaration-site name: classes, interfaces,
// traits, enums. Hard keywords are rejected.
func (p *Parser) typeIdentifier() (*ast.Identifier, error) {
	tok := p.cur()
	if tok.Type != lexer.T_STRING && !isSoftReserved(tok.Type) {
		return nil, p.errUnexpected(tok, "identifier")
	}
	p.next()
	id := &ast.Identifier{Value: tok.Value}
	id.Loc = tok.Span
	return id, nil
}

// fullTypeName parses a possibly qualified name in type or heritage
// position.
func (p *Parser) fullTypeName() (*ast.Name, error) {
	tok := p.cur()
	if !isNameToken(tok.Type) {
		return nil, p.errUnexpected(tok, "name")
	}
	p.next()
	return nameFromToken(tok), nil
}

func nameFromToken(tok lexer.Token) *ast.Name {
	kind := ast.NameUnqualified
	switch tok.Type {
	case lexer.T_NAME_QUALIFIED:
		kind = ast.NameQualified
	case lexer.T_NAME_FULLY_QUALIFIED:
		kind = ast.NameFullyQualified
	case lexer.T_NAME_RELATIVE:
		kind = ast.NameRelative
	}
	name := &ast.Name{Kind: kind, Value: tok.Value}
	name.Loc = tok.Span
	return name
}
