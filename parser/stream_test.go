package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/php-parser/lexer"
)

func TestTokenStream_Basics(t *testing.T) {
	tokens := lexer.Tokenize(`<?php echo 1;`)
	stream := NewTokenStream(tokens)

	assert.Equal(t, lexer.T_OPEN_TAG, stream.Current().Type)
	assert.Equal(t, lexer.T_ECHO, stream.Peek().Type)
	assert.Equal(t, lexer.T_LNUMBER, stream.Lookahead(2).Type)
	assert.Equal(t, lexer.TOKEN_SEMICOLON, stream.Lookahead(3).Type)

	// peeking never advances
	assert.Equal(t, lexer.T_OPEN_TAG, stream.Current().Type)

	stream.Next()
	assert.Equal(t, lexer.T_ECHO, stream.Current().Type)
}

func TestTokenStream_EOFStability(t *testing.T) {
	tokens := lexer.Tokenize(`<?php ;`)
	stream := NewTokenStream(tokens)

	// lookahead past the end returns the EOF sentinel, never panics
	assert.Equal(t, lexer.T_EOF, stream.Lookahead(100).Type)

	for i := 0; i < 10; i++ {
		stream.Next()
	}
	assert.True(t, stream.IsEOF())
	assert.Equal(t, lexer.T_EOF, stream.Current().Type)

	// advancing at EOF is a no-op
	stream.Next()
	assert.True(t, stream.IsEOF())
}

func TestTokenStream_EmptyInput(t *testing.T) {
	stream := NewTokenStream(nil)
	assert.True(t, stream.IsEOF())
	assert.Equal(t, lexer.T_EOF, stream.Peek().Type)
}

func TestTokenStream_SynthesizedEOF(t *testing.T) {
	tokens := []lexer.Token{{
		Type:  lexer.T_ECHO,
		Value: "echo",
		Span:  lexer.Span{Start: 0, End: 4},
	}}
	stream := NewTokenStream(tokens)
	require.False(t, stream.IsEOF())
	stream.Next()
	assert.True(t, stream.IsEOF())
	assert.Equal(t, 4, stream.Current().Span.Start)
}
