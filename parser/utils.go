package parser

import (
	"github.com/wudi/php-parser/ast"
	"github.com/wudi/php-parser/errors"
	"github.com/wudi/php-parser/lexer"
)

// ============= TOKEN HELPERS =============

func (p *Parser) cur() lexer.Token {
	return p.stream.Current()
}

func (p *Parser) peek() lexer.Token {
	return p.stream.Peek()
}

func (p *Parser) at(t lexer.TokenType) bool {
	return p.stream.Current().Type == t
}

func (p *Parser) peekIs(t lexer.TokenType) bool {
	return p.stream.Peek().Type == t
}

func (p *Parser) next() {
	p.stream.Next()
}

// ============= ERROR CONSTRUCTORS =============

func (p *Parser) errUnexpected(tok lexer.Token, expected ...string) *errors.ParseError {
	kind := errors.UnexpectedToken
	if tok.Type == lexer.T_EOF {
		kind = errors.UnexpectedEndOfInput
	}
	return &errors.ParseError{
		Kind:     kind,
		Span:     tok.Span,
		Pos:      tok.Pos,
		Found:    tok.Value,
		Expected: expected,
	}
}

func (p *Parser) errExpected(tok lexer.Token, want lexer.TokenType) *errors.ParseError {
	kind := errors.ExpectedToken
	if tok.Type == lexer.T_EOF {
		kind = errors.UnexpectedEndOfInput
	}
	return &errors.ParseError{
		Kind:     kind,
		Span:     tok.Span,
		Pos:      tok.Pos,
		Found:    tok.Value,
		Expected: []string{lexer.TokenNames[want]},
	}
}

func (p *Parser) errTrailingSeparator(tok lexer.Token, context string) *errors.ParseError {
	return &errors.ParseError{
		Kind:    errors.TrailingSeparator,
		Span:    tok.Span,
		Pos:     tok.Pos,
		Found:   tok.Value,
		Context: context,
	}
}

// ============= SKIP PRODUCTIONS =============

// skip requires the current token to be of the given kind, consumes it, and
// returns its span.
func (p *Parser) skip(t lexer.TokenType) (lexer.Span, error) {
	tok := p.cur()
	if tok.Type != t {
		return lexer.Span{}, p.errExpected(tok, t)
	}
	p.next()
	return tok.Span, nil
}

func (p *Parser) skipSemicolon() (lexer.Span, error) {
	return p.skip(lexer.TOKEN_SEMICOLON)
}

func (p *Parser) skipLeftBrace() (lexer.Span, error) {
	return p.skip(lexer.TOKEN_LBRACE)
}

func (p *Parser) skipRightBrace() (lexer.Span, error) {
	return p.skip(lexer.TOKEN_RBRACE)
}

func (p *Parser) skipLeftParenthesis() (lexer.Span, error) {
	return p.skip(lexer.TOKEN_LPAREN)
}

func (p *Parser) skipRightParenthesis() (lexer.Span, error) {
	return p.skip(lexer.TOKEN_RPAREN)
}

func (p *Parser) skipColon() (lexer.Span, error) {
	return p.skip(lexer.TOKEN_COLON)
}

// skipOpenTag consumes a full open tag if one is current.
func (p *Parser) skipOpenTag() {
	if p.at(lexer.T_OPEN_TAG) {
		p.next()
	}
}

// semicolonTerminated invokes inner and then requires a semicolon, returning
// the inner value and the total span. A close tag also terminates the
// statement, standing in for the semicolon at the end of a script block.
func (p *Parser) semicolonTerminated(inner func() (ast.Expression, error)) (ast.Expression, lexer.Span, error) {
	start := p.cur().Span
	value, err := inner()
	if err != nil {
		return nil, lexer.Span{}, err
	}
	if p.at(lexer.T_CLOSE_TAG) {
		return value, start.Union(value.Span()), nil
	}
	end, err := p.skipSemicolon()
	if err != nil {
		return nil, lexer.Span{}, err
	}
	return value, start.Union(end), nil
}
