package parser

import (
	"github.com/wudi/php-parser/ast"
	"github.com/wudi/php-parser/errors"
	"github.com/wudi/php-parser/lexer"
)

type classishKind int

const (
	kindClass classishKind = iota
	kindInterface
	kindTrait
	kindEnum
)

var classishKindNames = map[classishKind]string{
	kindClass:     "class",
	kindInterface: "interface",
	kindTrait:     "trait",
	kindEnum:      "enum",
}

func (k classishKind) admitsTraits() bool {
	return k != kindInterface
}

func (p *Parser) errInvalidMember(tok lexer.Token, kind classishKind, member string) *errors.ParseError {
	context := member + " in " + classishKindNames[kind]
	if scope, ok := p.enclosingClassish(); ok && scope.Name != "" {
		context += " " + scope.Name
	}
	return &errors.ParseError{
		Kind:    errors.InvalidMemberInContext,
		Span:    tok.Span,
		Pos:     tok.Pos,
		Found:   tok.Value,
		Context: context,
	}
}

// ============= CLASS =============

// parseClassDeclaration parses an optionally abstract/final/readonly class.
func (p *Parser) parseClassDeclaration() (ast.Statement, error) {
	start := p.cur().Span

	var mods ast.ClassModifiers
	var seen []lexer.Token
	for {
		tok := p.cur()
		switch tok.Type {
		case lexer.T_ABSTRACT, lexer.T_FINAL, lexer.T_READONLY:
			for _, s := range seen {
				if s.Type == tok.Type {
					return nil, &errors.ParseError{
						Kind:     errors.DuplicateModifier,
						Span:     tok.Span,
						Pos:      tok.Pos,
						Found:    tok.Value,
						Conflict: []lexer.Span{s.Span, tok.Span},
					}
				}
			}
			seen = append(seen, tok)
			switch tok.Type {
			case lexer.T_ABSTRACT:
				mods.Abstract = true
			case lexer.T_FINAL:
				mods.Final = true
			case lexer.T_READONLY:
				mods.Readonly = true
			}
			p.next()
			continue
		}
		break
	}

	if _, err := p.skip(lexer.T_CLASS); err != nil {
		return nil, err
	}
	name, err := p.typeIdentifier()
	if err != nil {
		return nil, err
	}
	attrs := p.drainAttributes()

	var extends *ast.Name
	if p.at(lexer.T_EXTENDS) {
		p.next()
		extends, err = p.fullTypeName()
		if err != nil {
			return nil, err
		}
	}

	var implements []*ast.Name
	if p.at(lexer.T_IMPLEMENTS) {
		p.next()
		implements, err = p.parseNameList()
		if err != nil {
			return nil, err
		}
	}

	members, end, err := p.parseClassishBody(kindClass, Scope{Kind: ScopeClass, Name: name.Value})
	if err != nil {
		return nil, err
	}

	class := &ast.ClassDeclaration{
		Attributes: attrs,
		Modifiers:  mods,
		Name:       name,
		Extends:    extends,
		Implements: implements,
		Members:    members,
	}
	class.Loc = attributesStart(attrs, start).Union(end)
	return class, nil
}

// ============= INTERFACE =============

func (p *Parser) parseInterfaceDeclaration() (ast.Statement, error) {
	start, err := p.skip(lexer.T_INTERFACE)
	if err != nil {
		return nil, err
	}
	name, err := p.typeIdentifier()
	if err != nil {
		return nil, err
	}
	attrs := p.drainAttributes()

	var extends []*ast.Name
	if p.at(lexer.T_EXTENDS) {
		p.next()
		extends, err = p.parseNameList()
		if err != nil {
			return nil, err
		}
	}

	members, end, err := p.parseClassishBody(kindInterface, Scope{Kind: ScopeInterface, Name: name.Value})
	if err != nil {
		return nil, err
	}

	iface := &ast.InterfaceDeclaration{
		Attributes: attrs,
		Name:       name,
		Extends:    extends,
		Members:    members,
	}
	iface.Loc = attributesStart(attrs, start).Union(end)
	return iface, nil
}

// ============= TRAIT =============

func (p *Parser) parseTraitDeclaration() (ast.Statement, error) {
	start, err := p.skip(lexer.T_TRAIT)
	if err != nil {
		return nil, err
	}
	name, err := p.typeIdentifier()
	if err != nil {
		return nil, err
	}
	attrs := p.drainAttributes()

	members, end, err := p.parseClassishBody(kindTrait, Scope{Kind: ScopeTrait, Name: name.Value})
	if err != nil {
		return nil, err
	}

	trait := &ast.TraitDeclaration{
		Attributes: attrs,
		Name:       name,
		Members:    members,
	}
	trait.Loc = attributesStart(attrs, start).Union(end)
	return trait, nil
}

// ============= ENUM =============

func (p *Parser) parseEnumDeclaration() (ast.Statement, error) {
	start, err := p.skip(lexer.T_ENUM)
	if err != nil {
		return nil, err
	}
	name, err := p.typeIdentifier()
	if err != nil {
		return nil, err
	}
	attrs := p.drainAttributes()

	var backing ast.Type
	if p.at(lexer.TOKEN_COLON) {
		p.next()
		backing, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}

	var implements []*ast.Name
	if p.at(lexer.T_IMPLEMENTS) {
		p.next()
		implements, err = p.parseNameList()
		if err != nil {
			return nil, err
		}
	}

	members, end, err := p.parseClassishBody(kindEnum, Scope{Kind: ScopeEnum, Name: name.Value})
	if err != nil {
		return nil, err
	}

	enum := &ast.EnumDeclaration{
		Attributes: attrs,
		Name:       name,
		Backing:    backing,
		Implements: implements,
		Members:    members,
	}
	enum.Loc = attributesStart(attrs, start).Union(end)
	return enum, nil
}

// parseNameList parses one or more comma-separated names (heritage lists).
func (p *Parser) parseNameList() ([]*ast.Name, error) {
	var names []*ast.Name
	for {
		name, err := p.fullTypeName()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		if p.at(lexer.TOKEN_COMMA) {
			p.next()
			continue
		}
		return names, nil
	}
}

// ============= MEMBER LOOP =============

func (p *Parser) parseClassishBody(kind classishKind, scope Scope) ([]ast.ClassishMember, lexer.Span, error) {
	defer p.enterScope(scope)()

	if _, err := p.skipLeftBrace(); err != nil {
		return nil, lexer.Span{}, err
	}

	var members []ast.ClassishMember
	for !p.at(lexer.TOKEN_RBRACE) && !p.stream.IsEOF() {
		member, err := p.parseClassishMember(kind)
		if err != nil {
			return nil, lexer.Span{}, err
		}
		members = append(members, member)
	}

	end, err := p.skipRightBrace()
	if err != nil {
		return nil, lexer.Span{}, err
	}
	return members, end, nil
}

func (p *Parser) parseClassishMember(kind classishKind) (ast.ClassishMember, error) {
	hasAttributes, err := p.gatherAttributes()
	if err != nil {
		return nil, err
	}

	if !hasAttributes && p.at(lexer.T_USE) {
		if !kind.admitsTraits() {
			return nil, p.errInvalidMember(p.cur(), kind, "trait use")
		}
		return p.parseTraitUse()
	}

	if kind == kindEnum && p.at(lexer.T_CASE) {
		return p.parseEnumCase()
	}

	if p.at(lexer.T_VAR) {
		return p.parseVarProperty(kind)
	}

	bag, err := p.collectModifiers()
	if err != nil {
		return nil, err
	}

	switch p.cur().Type {
	case lexer.T_CONST:
		mods, err := constantGroup(bag)
		if err != nil {
			return nil, err
		}
		return p.parseClassishConstant(bag, mods)

	case lexer.T_FUNCTION:
		mods, err := methodGroup(bag)
		if err != nil {
			return nil, err
		}
		return p.parseMethod(kind, bag, mods)

	default:
		if kind == kindInterface {
			return nil, p.errInvalidMember(p.cur(), kind, "property")
		}
		if kind == kindEnum {
			return nil, p.errInvalidMember(p.cur(), kind, "property")
		}
		mods, err := propertyGroup(bag)
		if err != nil {
			return nil, err
		}
		return p.parseProperty(bag, mods)
	}
}

// ============= CONSTANTS =============

func (p *Parser) parseClassishConstant(bag []lexer.Token, mods ast.ConstantModifiers) (ast.ClassishMember, error) {
	attrs := p.drainAttributes()
	start := p.cur().Span
	if len(bag) > 0 {
		start = bag[0].Span
	}
	if _, err := p.skip(lexer.T_CONST); err != nil {
		return nil, err
	}

	entries, err := p.parseConstEntries()
	if err != nil {
		return nil, err
	}
	end, err := p.skipSemicolon()
	if err != nil {
		return nil, err
	}

	member := &ast.ConstantMember{Attributes: attrs, Modifiers: mods, Entries: entries}
	member.Loc = attributesStart(attrs, start).Union(end)
	return member, nil
}

func (p *Parser) parseConstEntries() ([]ast.ConstEntry, error) {
	var entries []ast.ConstEntry
	for {
		name, err := p.identifier()
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
		entry := ast.ConstEntry{Name: name, Value: value}
		entry.Loc = name.Span().Union(value.Span())
		entries = append(entries, entry)

		if p.at(lexer.TOKEN_COMMA) {
			p.next()
			continue
		}
		return entries, nil
	}
}

// ============= PROPERTIES =============

func (p *Parser) parseVarProperty(kind classishKind) (ast.ClassishMember, error) {
	if kind == kindInterface || kind == kindEnum {
		return nil, p.errInvalidMember(p.cur(), kind, "property")
	}
	attrs := p.drainAttributes()
	start, err := p.skip(lexer.T_VAR)
	if err != nil {
		return nil, err
	}
	member, err := p.parsePropertyRest(attrs, ast.PropertyModifiers{Visibility: ast.Public})
	if err != nil {
		return nil, err
	}
	member.Loc = attributesStart(attrs, start).Union(member.Loc)
	return member, nil
}

func (p *Parser) parseProperty(bag []lexer.Token, mods ast.PropertyModifiers) (ast.ClassishMember, error) {
	attrs := p.drainAttributes()
	start := p.cur().Span
	if len(bag) > 0 {
		start = bag[0].Span
	}
	member, err := p.parsePropertyRest(attrs, mods)
	if err != nil {
		return nil, err
	}
	member.Loc = attributesStart(attrs, start).Union(member.Loc)
	return member, nil
}

// parsePropertyRest requires either a type hint or a `$`-variable
// declarator; multiple declarators are comma-separated.
func (p *Parser) parsePropertyRest(attrs []ast.AttributeGroup, mods ast.PropertyModifiers) (*ast.PropertyMember, error) {
	var propType ast.Type
	if !p.at(lexer.T_VARIABLE) {
		if !isTypeStart(p.cur().Type) {
			return nil, p.errUnexpected(p.cur(), "type", "variable")
		}
		var err error
		propType, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}

	var entries []ast.PropertyEntry
	for {
		v, err := p.parseSimpleVariable()
		if err != nil {
			return nil, err
		}
		entry := ast.PropertyEntry{Var: v}
		entry.Loc = v.Span()

		if p.at(lexer.TOKEN_EQUAL) {
			p.next()
			def, err := p.parseExpression(bpLowest)
			if err != nil {
				return nil, err
			}
			entry.Default = def
			entry.Loc = entry.Loc.Union(def.Span())
		}
		entries = append(entries, entry)

		if p.at(lexer.TOKEN_COMMA) {
			p.next()
			continue
		}
		break
	}

	end, err := p.skipSemicolon()
	if err != nil {
		return nil, err
	}

	member := &ast.PropertyMember{
		Attributes: attrs,
		Modifiers:  mods,
		Type:       propType,
		Entries:    entries,
	}
	span := entries[0].Loc.Union(end)
	if propType != nil {
		span = propType.Span().Union(span)
	}
	member.Loc = span
	return member, nil
}

// ============= METHODS =============

func (p *Parser) parseMethod(kind classishKind, bag []lexer.Token, mods ast.MethodModifiers) (ast.ClassishMember, error) {
	attrs := p.drainAttributes()
	start := p.cur().Span
	if len(bag) > 0 {
		start = bag[0].Span
	}

	if mods.Abstract && kind == kindEnum {
		return nil, p.errInvalidMember(p.cur(), kind, "abstract method")
	}

	start = attributesStart(attrs, start)
	if _, err := p.skip(lexer.T_FUNCTION); err != nil {
		return nil, err
	}

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

	member := &ast.MethodMember{
		Attributes: attrs,
		Modifiers:  mods,
		ByRef:      byRef,
		Name:       name,
		Params:     params,
		ReturnType: returnType,
	}

	switch {
	case kind == kindInterface || mods.Abstract:
		if p.at(lexer.TOKEN_LBRACE) {
			return nil, p.errInvalidMember(p.cur(), kind, "method body")
		}
		end, err := p.skipSemicolon()
		if err != nil {
			return nil, err
		}
		member.Loc = start.Union(end)
	default:
		body, end, err := p.parseBracedBody()
		if err != nil {
			return nil, err
		}
		member.HasBody = true
		member.Body = body
		member.Loc = start.Union(end)
	}
	return member, nil
}

// ============= ENUM CASES =============

func (p *Parser) parseEnumCase() (ast.ClassishMember, error) {
	attrs := p.drainAttributes()
	start, err := p.skip(lexer.T_CASE)
	if err != nil {
		return nil, err
	}
	name, err := p.identifier()
	if err != nil {
		return nil, err
	}

	member := &ast.EnumCaseMember{Attributes: attrs, Name: name}
	if p.at(lexer.TOKEN_EQUAL) {
		p.next()
		value, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
		member.Value = value
	}
	end, err := p.skipSemicolon()
	if err != nil {
		return nil, err
	}
	member.Loc = attributesStart(attrs, start).Union(end)
	return member, nil
}

// ============= TRAIT USE =============

// parseTraitUse parses `use A, B;` or `use A, B { adaptations }`. Trailing
// commas are rejected with a dedicated error anchored at the comma.
func (p *Parser) parseTraitUse() (ast.ClassishMember, error) {
	start, err := p.skip(lexer.T_USE)
	if err != nil {
		return nil, err
	}

	var traits []*ast.Name
	for {
		name, err := p.fullTypeName()
		if err != nil {
			return nil, err
		}
		traits = append(traits, name)

		if p.at(lexer.TOKEN_COMMA) {
			comma := p.cur()
			if p.peekIs(lexer.TOKEN_SEMICOLON) || p.peekIs(lexer.TOKEN_LBRACE) {
				return nil, p.errTrailingSeparator(comma, "trait use list")
			}
			p.next()
			continue
		}
		break
	}

	member := &ast.TraitUseMember{Traits: traits}

	if p.at(lexer.TOKEN_LBRACE) {
		p.next()
		for !p.at(lexer.TOKEN_RBRACE) && !p.stream.IsEOF() {
			adaptation, err := p.parseTraitAdaptation()
			if err != nil {
				return nil, err
			}
			member.Adaptations = append(member.Adaptations, adaptation)
		}
		end, err := p.skipRightBrace()
		if err != nil {
			return nil, err
		}
		member.Loc = start.Union(end)
		return member, nil
	}

	end, err := p.skipSemicolon()
	if err != nil {
		return nil, err
	}
	member.Loc = start.Union(end)
	return member, nil
}

func (p *Parser) parseTraitAdaptation() (ast.TraitAdaptation, error) {
	start := p.cur().Span

	// Method selector: `Trait::method` or a bare `method`, decided by
	// peeking for `::` after the first name.
	var trait *ast.Name
	var method *ast.Identifier
	var err error
	if p.peekIs(lexer.T_PAAMAYIM_NEKUDOTAYIM) {
		trait, err = p.fullTypeName()
		if err != nil {
			return nil, err
		}
		p.next()
		method, err = p.identifier()
		if err != nil {
			return nil, err
		}
	} else {
		method, err = p.identifier()
		if err != nil {
			return nil, err
		}
	}

	switch p.cur().Type {
	case lexer.T_AS:
		p.next()
		return p.parseTraitAliasTail(start, trait, method)

	case lexer.T_INSTEADOF:
		insteadofTok := p.cur()
		if trait == nil {
			return nil, &errors.ParseError{
				Kind:    errors.MalformedTraitAdaptation,
				Span:    insteadofTok.Span,
				Pos:     insteadofTok.Pos,
				Found:   insteadofTok.Value,
				Context: "insteadof requires a qualified method",
			}
		}
		p.next()
		return p.parseTraitPrecedenceTail(start, trait, method)

	default:
		return nil, p.errUnexpected(p.cur(), "as", "insteadof")
	}
}

func (p *Parser) parseTraitAliasTail(start lexer.Span, trait *ast.Name, method *ast.Identifier) (ast.TraitAdaptation, error) {
	var visibility *ast.Visibility
	switch p.cur().Type {
	case lexer.T_PUBLIC, lexer.T_PROTECTED, lexer.T_PRIVATE:
		v := ast.Public
		switch p.cur().Type {
		case lexer.T_PROTECTED:
			v = ast.Protected
		case lexer.T_PRIVATE:
			v = ast.Private
		}
		visibility = &v
		p.next()
	}

	if p.at(lexer.TOKEN_SEMICOLON) {
		if visibility == nil {
			tok := p.cur()
			return nil, &errors.ParseError{
				Kind:    errors.MalformedTraitAdaptation,
				Span:    tok.Span,
				Pos:     tok.Pos,
				Found:   tok.Value,
				Context: "as requires an alias or a visibility",
			}
		}
		end, err := p.skipSemicolon()
		if err != nil {
			return nil, err
		}
		adaptation := &ast.TraitVisibility{Trait: trait, Method: method, Visibility: *visibility}
		adaptation.Loc = start.Union(end)
		return adaptation, nil
	}

	alias, err := p.name()
	if err != nil {
		return nil, err
	}
	end, err := p.skipSemicolon()
	if err != nil {
		return nil, err
	}
	adaptation := &ast.TraitAlias{Trait: trait, Method: method, Visibility: visibility, Alias: alias}
	adaptation.Loc = start.Union(end)
	return adaptation, nil
}

func (p *Parser) parseTraitPrecedenceTail(start lexer.Span, trait *ast.Name, method *ast.Identifier) (ast.TraitAdaptation, error) {
	var insteadof []*ast.Name
	for {
		name, err := p.fullTypeName()
		if err != nil {
			return nil, err
		}
		insteadof = append(insteadof, name)

		if p.at(lexer.TOKEN_COMMA) {
			comma := p.cur()
			if p.peekIs(lexer.TOKEN_SEMICOLON) {
				return nil, p.errTrailingSeparator(comma, "insteadof list")
			}
			p.next()
			continue
		}
		break
	}

	end, err := p.skipSemicolon()
	if err != nil {
		return nil, err
	}
	adaptation := &ast.TraitPrecedence{Trait: trait, Method: method, Insteadof: insteadof}
	adaptation.Loc = start.Union(end)
	return adaptation, nil
}
