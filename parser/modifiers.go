package parser

import (
	"github.com/wudi/php-parser/ast"
	"github.com/wudi/php-parser/errors"
	"github.com/wudi/php-parser/lexer"
)

func isModifierToken(t lexer.TokenType) bool {
	switch t {
	case lexer.T_PUBLIC, lexer.T_PROTECTED, lexer.T_PRIVATE,
		lexer.T_STATIC, lexer.T_FINAL, lexer.T_ABSTRACT, lexer.T_READONLY:
		return true
	}
	return false
}

// collectModifiers consumes a contiguous run of modifier keywords into a
// bag. Duplicates fail immediately with both occurrences anchored.
func (p *Parser) collectModifiers() ([]lexer.Token, error) {
	var bag []lexer.Token
	for isModifierToken(p.cur().Type) {
		tok := p.cur()
		for _, seen := range bag {
			if seen.Type == tok.Type {
				return nil, &errors.ParseError{
					Kind:     errors.DuplicateModifier,
					Span:     tok.Span,
					Pos:      tok.Pos,
					Found:    tok.Value,
					Conflict: []lexer.Span{seen.Span, tok.Span},
				}
			}
		}
		bag = append(bag, tok)
		p.next()
	}
	return bag, nil
}

func modifierConflict(a, b lexer.Token) *errors.ParseError {
	return &errors.ParseError{
		Kind:     errors.ModifierConflict,
		Span:     b.Span,
		Pos:      b.Pos,
		Found:    b.Value,
		Conflict: []lexer.Span{a.Span, b.Span},
	}
}

func modifierNotAllowed(tok lexer.Token, context string) *errors.ParseError {
	return &errors.ParseError{
		Kind:     errors.ModifierConflict,
		Span:     tok.Span,
		Pos:      tok.Pos,
		Found:    tok.Value,
		Context:  context,
		Conflict: []lexer.Span{tok.Span},
	}
}

// splitVisibility pulls the at-most-one visibility keyword out of the bag.
func splitVisibility(bag []lexer.Token) (*lexer.Token, ast.Visibility, error) {
	var seen *lexer.Token
	visibility := ast.Public
	for i := range bag {
		tok := bag[i]
		var v ast.Visibility
		switch tok.Type {
		case lexer.T_PUBLIC:
			v = ast.Public
		case lexer.T_PROTECTED:
			v = ast.Protected
		case lexer.T_PRIVATE:
			v = ast.Private
		default:
			continue
		}
		if seen != nil {
			return nil, 0, modifierConflict(*seen, tok)
		}
		seen = &bag[i]
		visibility = v
	}
	return seen, visibility, nil
}

// constantGroup projects the bag onto the modifiers legal for a classish
// constant: final plus at most one visibility.
func constantGroup(bag []lexer.Token) (ast.ConstantModifiers, error) {
	var mods ast.ConstantModifiers
	_, visibility, err := splitVisibility(bag)
	if err != nil {
		return mods, err
	}
	mods.Visibility = visibility
	for _, tok := range bag {
		switch tok.Type {
		case lexer.T_FINAL:
			mods.Final = true
		case lexer.T_PUBLIC, lexer.T_PROTECTED, lexer.T_PRIVATE:
		default:
			return mods, modifierNotAllowed(tok, "constant modifiers")
		}
	}
	return mods, nil
}

// propertyGroup projects the bag onto the modifiers legal for a property:
// visibility (defaulting to public), static, readonly.
func propertyGroup(bag []lexer.Token) (ast.PropertyModifiers, error) {
	var mods ast.PropertyModifiers
	_, visibility, err := splitVisibility(bag)
	if err != nil {
		return mods, err
	}
	mods.Visibility = visibility
	for _, tok := range bag {
		switch tok.Type {
		case lexer.T_STATIC:
			mods.Static = true
		case lexer.T_READONLY:
			mods.Readonly = true
		case lexer.T_PUBLIC, lexer.T_PROTECTED, lexer.T_PRIVATE:
		default:
			return mods, modifierNotAllowed(tok, "property modifiers")
		}
	}
	return mods, nil
}

// methodGroup projects the bag onto the modifiers legal for a method.
// abstract excludes both final and private.
func methodGroup(bag []lexer.Token) (ast.MethodModifiers, error) {
	var mods ast.MethodModifiers
	visTok, visibility, err := splitVisibility(bag)
	if err != nil {
		return mods, err
	}
	mods.Visibility = visibility

	var abstractTok, finalTok *lexer.Token
	for i := range bag {
		tok := bag[i]
		switch tok.Type {
		case lexer.T_STATIC:
			mods.Static = true
		case lexer.T_ABSTRACT:
			mods.Abstract = true
			abstractTok = &bag[i]
		case lexer.T_FINAL:
			mods.Final = true
			finalTok = &bag[i]
		case lexer.T_PUBLIC, lexer.T_PROTECTED, lexer.T_PRIVATE:
		default:
			return mods, modifierNotAllowed(tok, "method modifiers")
		}
	}

	if abstractTok != nil && finalTok != nil {
		return mods, modifierConflict(*abstractTok, *finalTok)
	}
	if abstractTok != nil && visTok != nil && visibility == ast.Private {
		return mods, modifierConflict(*abstractTok, *visTok)
	}
	return mods, nil
}
