// Package parser implements a recursive-descent PHP parser with
// Pratt-style expression parsing over a flat token stream.
package parser

import (
	"github.com/wudi/php-parser/ast"
	"github.com/wudi/php-parser/lexer"
)

// Parser bundles the token stream with the mutable parse state: the scope
// stack, the pending attribute buffer, and the current namespace. A Parser
// is single-use and not safe for concurrent use; distinct invocations with
// distinct states are independent.
type Parser struct {
	stream     *TokenStream
	scopes     []Scope
	attributes []ast.AttributeGroup
	namespace  string
	depth      int
}

// Parse consumes a lexed token slice and produces a Program, or the first
// structured error encountered. The token slice is borrowed for the
// duration of the call only.
func Parse(tokens []lexer.Token) (*ast.Program, error) {
	p := &Parser{stream: NewTokenStream(tokens)}
	return p.parseProgram()
}

// ParseString lexes and parses PHP source text.
func ParseString(source string) (*ast.Program, error) {
	return Parse(lexer.Tokenize(source))
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	program := &ast.Program{}
	first := p.cur().Span

	for !p.stream.IsEOF() {
		if p.at(lexer.T_OPEN_TAG) || p.at(lexer.T_CLOSE_TAG) {
			p.next()
			continue
		}

		stmt, err := p.parseTopLevelStatement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
	}

	program.Loc = first.Union(p.cur().Span)
	return program, nil
}

// parseTopLevelStatement recognizes the top-level-only productions
// (namespace, use, const, __halt_compiler) and otherwise defers to the
// statement dispatcher. A close tag after any of them is consumed
// transparently.
func (p *Parser) parseTopLevelStatement() (ast.Statement, error) {
	var stmt ast.Statement
	var err error

	switch p.cur().Type {
	case lexer.T_NAMESPACE:
		stmt, err = p.parseNamespace()
	case lexer.T_USE:
		stmt, err = p.parseUse()
	case lexer.T_CONST:
		stmt, err = p.parseConst()
	case lexer.T_HALT_COMPILER:
		stmt, err = p.parseHaltCompiler()
	default:
		return p.parseStatement()
	}
	if err != nil {
		return nil, err
	}

	if p.at(lexer.T_CLOSE_TAG) {
		p.next()
	}
	return stmt, nil
}

// ============= NAMESPACE =============

func (p *Parser) parseNamespace() (ast.Statement, error) {
	start, err := p.skip(lexer.T_NAMESPACE)
	if err != nil {
		return nil, err
	}

	stmt := &ast.NamespaceStatement{}
	if isNameToken(p.cur().Type) {
		name, err := p.fullTypeName()
		if err != nil {
			return nil, err
		}
		stmt.Name = name
	}

	if p.at(lexer.TOKEN_LBRACE) {
		scopeName := ""
		if stmt.Name != nil {
			scopeName = stmt.Name.Value
		}
		release := p.enterScope(Scope{Kind: ScopeNamespace, Name: scopeName})
		defer release()

		p.next()
		var body []ast.Statement
		for !p.at(lexer.TOKEN_RBRACE) && !p.stream.IsEOF() {
			if p.at(lexer.T_OPEN_TAG) || p.at(lexer.T_CLOSE_TAG) {
				p.next()
				continue
			}
			inner, err := p.parseTopLevelStatement()
			if err != nil {
				return nil, err
			}
			body = append(body, inner)
		}
		end, err := p.skipRightBrace()
		if err != nil {
			return nil, err
		}
		stmt.Braced = true
		stmt.Statements = body
		stmt.Loc = start.Union(end)
		return stmt, nil
	}

	last := start
	if stmt.Name != nil {
		last = stmt.Name.Span()
		p.namespace = stmt.Name.Value
	}
	end, err := p.endStatement(last)
	if err != nil {
		return nil, err
	}
	stmt.Loc = start.Union(end)
	return stmt, nil
}

// ============= USE IMPORTS =============

func (p *Parser) parseUse() (ast.Statement, error) {
	start, err := p.skip(lexer.T_USE)
	if err != nil {
		return nil, err
	}

	stmt := &ast.UseStatement{Kind: ast.UseNormal}
	switch p.cur().Type {
	case lexer.T_FUNCTION:
		stmt.Kind = ast.UseFunction
		p.next()
	case lexer.T_CONST:
		stmt.Kind = ast.UseConst
		p.next()
	}

	first, err := p.fullTypeName()
	if err != nil {
		return nil, err
	}

	// group use: `use A\B\{C, D as E};`
	if p.at(lexer.TOKEN_BACKSLASH) && p.peekIs(lexer.TOKEN_LBRACE) {
		p.next()
		p.next()
		stmt.Prefix = first
		for !p.at(lexer.TOKEN_RBRACE) && !p.stream.IsEOF() {
			item, err := p.parseUseItem()
			if err != nil {
				return nil, err
			}
			stmt.Uses = append(stmt.Uses, item)
			if p.at(lexer.TOKEN_COMMA) {
				p.next()
				continue
			}
			break
		}
		if _, err := p.skipRightBrace(); err != nil {
			return nil, err
		}
		end, err := p.skipSemicolon()
		if err != nil {
			return nil, err
		}
		stmt.Loc = start.Union(end)
		return stmt, nil
	}

	item := ast.UseItem{Name: first}
	item.Loc = first.Span()
	if p.at(lexer.T_AS) {
		p.next()
		alias, err := p.name()
		if err != nil {
			return nil, err
		}
		item.Alias = alias
		item.Loc = item.Loc.Union(alias.Span())
	}
	stmt.Uses = append(stmt.Uses, item)

	for p.at(lexer.TOKEN_COMMA) {
		p.next()
		item, err := p.parseUseItem()
		if err != nil {
			return nil, err
		}
		stmt.Uses = append(stmt.Uses, item)
	}

	end, err := p.endStatement(stmt.Uses[len(stmt.Uses)-1].Loc)
	if err != nil {
		return nil, err
	}
	stmt.Loc = start.Union(end)
	return stmt, nil
}

func (p *Parser) parseUseItem() (ast.UseItem, error) {
	var item ast.UseItem
	name, err := p.fullTypeName()
	if err != nil {
		return item, err
	}
	item.Name = name
	item.Loc = name.Span()

	if p.at(lexer.T_AS) {
		p.next()
		alias, err := p.name()
		if err != nil {
			return item, err
		}
		item.Alias = alias
		item.Loc = item.Loc.Union(alias.Span())
	}
	return item, nil
}

// ============= CONST =============

func (p *Parser) parseConst() (ast.Statement, error) {
	start, err := p.skip(lexer.T_CONST)
	if err != nil {
		return nil, err
	}
	entries, err := p.parseConstEntries()
	if err != nil {
		return nil, err
	}
	end, err := p.endStatement(entries[len(entries)-1].Loc)
	if err != nil {
		return nil, err
	}
	stmt := &ast.ConstStatement{Entries: entries}
	stmt.Loc = start.Union(end)
	return stmt, nil
}

// ============= HALT COMPILER =============

// parseHaltCompiler consumes `__halt_compiler();` and every token after it
// without parsing them. Content collects only the text of T_INLINE_HTML
// tokens (data after a close tag); tokens the lexer read in PHP mode are
// not kept.
func (p *Parser) parseHaltCompiler() (ast.Statement, error) {
	start, err := p.skip(lexer.T_HALT_COMPILER)
	if err != nil {
		return nil, err
	}
	if _, err := p.skipLeftParenthesis(); err != nil {
		return nil, err
	}
	if _, err := p.skipRightParenthesis(); err != nil {
		return nil, err
	}
	end, err := p.endStatement(start)
	if err != nil {
		return nil, err
	}

	stmt := &ast.HaltCompilerStatement{}
	for !p.stream.IsEOF() {
		tok := p.cur()
		if tok.Type == lexer.T_INLINE_HTML {
			stmt.Content += tok.Value
		}
		end = tok.Span
		p.next()
	}
	stmt.Loc = start.Union(end)
	return stmt, nil
}
