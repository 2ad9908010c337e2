package parser

import (
	"github.com/wudi/php-parser/lexer"
)

// TokenStream is a cursor over a borrowed, flat token slice. All operations
// are O(1); peeking never advances. Reads past the end return a stable EOF
// sentinel.
type TokenStream struct {
	tokens []lexer.Token
	pos    int
	eof    lexer.Token
}

// NewTokenStream wraps tokens. The slice is borrowed, not copied; if it does
// not end with T_EOF a sentinel anchored past the last token is synthesized.
func NewTokenStream(tokens []lexer.Token) *TokenStream {
	eof := lexer.Token{Type: lexer.T_EOF}
	if n := len(tokens); n > 0 {
		last := tokens[n-1]
		if last.Type == lexer.T_EOF {
			eof = last
		} else {
			eof.Span = lexer.Span{Start: last.Span.End, End: last.Span.End}
			eof.Pos = last.Pos
		}
	}
	return &TokenStream{tokens: tokens, eof: eof}
}

// Current returns the token at the cursor.
func (s *TokenStream) Current() lexer.Token {
	return s.Lookahead(0)
}

// Peek returns the token one past the cursor.
func (s *TokenStream) Peek() lexer.Token {
	return s.Lookahead(1)
}

// Lookahead returns the token k positions past the cursor, k >= 0.
func (s *TokenStream) Lookahead(k int) lexer.Token {
	i := s.pos + k
	if i >= len(s.tokens) {
		return s.eof
	}
	tok := s.tokens[i]
	if tok.Type == lexer.T_EOF {
		return s.eof
	}
	return tok
}

// Next advances the cursor by one; advancing at EOF is a no-op.
func (s *TokenStream) Next() {
	if s.pos < len(s.tokens) {
		s.pos++
	}
}

// IsEOF reports whether the cursor is at the end of input.
func (s *TokenStream) IsEOF() bool {
	return s.Current().Type == lexer.T_EOF
}
