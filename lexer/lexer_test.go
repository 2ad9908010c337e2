package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, 0, len(tokens))
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	return types
}

func TestLexer_BasicScript(t *testing.T) {
	tokens := Tokenize(`<?php echo 1;`)
	assert.Equal(t, []TokenType{
		T_OPEN_TAG, T_ECHO, T_LNUMBER, TOKEN_SEMICOLON, T_EOF,
	}, tokenTypes(tokens))
}

func TestLexer_SpanSliceFidelity(t *testing.T) {
	source := `<?php
function f(?int $x = 0x1F): array {
    return [$x => "v", 'w'];
}
`
	for _, tok := range Tokenize(source) {
		if tok.Type == T_EOF {
			continue
		}
		assert.Equal(t, source[tok.Span.Start:tok.Span.End], tok.Value,
			"token %s does not slice back to its source", tok.Type)
	}
}

func TestLexer_InlineHTMLAndTags(t *testing.T) {
	tokens := Tokenize("<h1>title</h1><?php echo 1; ?>\n<p>tail</p>")
	assert.Equal(t, []TokenType{
		T_INLINE_HTML, T_OPEN_TAG, T_ECHO, T_LNUMBER, TOKEN_SEMICOLON,
		T_CLOSE_TAG, T_INLINE_HTML, T_EOF,
	}, tokenTypes(tokens))
	assert.Equal(t, "<h1>title</h1>", tokens[0].Value)
}

func TestLexer_ShortEchoTag(t *testing.T) {
	tokens := Tokenize(`<?= $x ?>`)
	assert.Equal(t, []TokenType{
		T_OPEN_TAG_WITH_ECHO, T_VARIABLE, T_CLOSE_TAG, T_EOF,
	}, tokenTypes(tokens))
}

func TestLexer_KeywordsAreCaseInsensitive(t *testing.T) {
	tokens := Tokenize(`<?php ECHO 1; Echo 2;`)
	assert.Equal(t, T_ECHO, tokens[1].Type)
	assert.Equal(t, T_ECHO, tokens[4].Type)
}

func TestLexer_QualifiedNames(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenType
		value    string
	}{
		{`<?php Foo;`, T_STRING, "Foo"},
		{`<?php Foo\Bar;`, T_NAME_QUALIFIED, `Foo\Bar`},
		{`<?php \Foo\Bar;`, T_NAME_FULLY_QUALIFIED, `\Foo\Bar`},
		{`<?php namespace\Foo;`, T_NAME_RELATIVE, `namespace\Foo`},
	}
	for _, tt := range tests {
		tokens := Tokenize(tt.input)
		require.GreaterOrEqual(t, len(tokens), 3, tt.input)
		assert.Equal(t, tt.expected, tokens[1].Type, tt.input)
		assert.Equal(t, tt.value, tokens[1].Value, tt.input)
	}
}

func TestLexer_Numbers(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenType
	}{
		{`<?php 42;`, T_LNUMBER},
		{`<?php 1_000;`, T_LNUMBER},
		{`<?php 0xFF;`, T_LNUMBER},
		{`<?php 0b1010;`, T_LNUMBER},
		{`<?php 1.5;`, T_DNUMBER},
		{`<?php .5;`, T_DNUMBER},
		{`<?php 2e10;`, T_DNUMBER},
	}
	for _, tt := range tests {
		tokens := Tokenize(tt.input)
		assert.Equal(t, tt.expected, tokens[1].Type, tt.input)
	}
}

func TestLexer_Operators(t *testing.T) {
	tokens := Tokenize(`<?php $a === $b <=> $c ?? $d ?-> e ... ** ??= <<= >>;`)
	assert.Equal(t, []TokenType{
		T_OPEN_TAG, T_VARIABLE, T_IS_IDENTICAL, T_VARIABLE, T_SPACESHIP,
		T_VARIABLE, T_COALESCE, T_VARIABLE, T_NULLSAFE_OBJECT_OPERATOR,
		T_STRING, T_ELLIPSIS, T_POW, T_COALESCE_EQUAL, T_SL_EQUAL, T_SR,
		TOKEN_SEMICOLON, T_EOF,
	}, tokenTypes(tokens))
}

func TestLexer_CommentsAreSkipped(t *testing.T) {
	tokens := Tokenize(`<?php
// line comment
# hash comment
/* block
   comment */
/** doc comment */
echo 1;`)
	assert.Equal(t, []TokenType{
		T_OPEN_TAG, T_ECHO, T_LNUMBER, TOKEN_SEMICOLON, T_EOF,
	}, tokenTypes(tokens))
}

func TestLexer_AttributeVersusComment(t *testing.T) {
	tokens := Tokenize(`<?php #[Attr] # comment
$x;`)
	assert.Equal(t, []TokenType{
		T_OPEN_TAG, T_ATTRIBUTE, T_STRING, TOKEN_RBRACKET,
		T_VARIABLE, TOKEN_SEMICOLON, T_EOF,
	}, tokenTypes(tokens))
}

func TestLexer_Strings(t *testing.T) {
	t.Run("single quoted", func(t *testing.T) {
		tokens := Tokenize(`<?php 'a\'b';`)
		assert.Equal(t, T_CONSTANT_ENCAPSED_STRING, tokens[1].Type)
		assert.Equal(t, `'a\'b'`, tokens[1].Value)
	})

	t.Run("double quoted without interpolation", func(t *testing.T) {
		tokens := Tokenize(`<?php "plain \$x";`)
		assert.Equal(t, T_CONSTANT_ENCAPSED_STRING, tokens[1].Type)
	})

	t.Run("double quoted with simple interpolation", func(t *testing.T) {
		tokens := Tokenize(`<?php "a $x b";`)
		assert.Equal(t, []TokenType{
			T_OPEN_TAG, TOKEN_QUOTE, T_ENCAPSED_AND_WHITESPACE, T_VARIABLE,
			T_ENCAPSED_AND_WHITESPACE, TOKEN_QUOTE, TOKEN_SEMICOLON, T_EOF,
		}, tokenTypes(tokens))
	})

	t.Run("curly interpolation", func(t *testing.T) {
		tokens := Tokenize(`<?php "{$a[0]}";`)
		assert.Equal(t, []TokenType{
			T_OPEN_TAG, TOKEN_QUOTE, T_CURLY_OPEN, T_VARIABLE,
			TOKEN_LBRACKET, T_LNUMBER, TOKEN_RBRACKET, TOKEN_RBRACE,
			TOKEN_QUOTE, TOKEN_SEMICOLON, T_EOF,
		}, tokenTypes(tokens))
	})

	t.Run("dollar braced varname", func(t *testing.T) {
		tokens := Tokenize(`<?php "${name}";`)
		assert.Equal(t, []TokenType{
			T_OPEN_TAG, TOKEN_QUOTE, T_DOLLAR_OPEN_CURLY_BRACES,
			T_STRING_VARNAME, TOKEN_RBRACE, TOKEN_QUOTE, TOKEN_SEMICOLON,
			T_EOF,
		}, tokenTypes(tokens))
	})
}

func TestLexer_Heredoc(t *testing.T) {
	tokens := Tokenize("<?php $s = <<<EOT\nbody line\nEOT;")
	assert.Equal(t, []TokenType{
		T_OPEN_TAG, T_VARIABLE, TOKEN_EQUAL, T_START_HEREDOC,
		T_ENCAPSED_AND_WHITESPACE, T_END_HEREDOC, TOKEN_SEMICOLON, T_EOF,
	}, tokenTypes(tokens))
	assert.Equal(t, "body line\n", tokens[4].Value)
}

func TestLexer_Casts(t *testing.T) {
	tokens := Tokenize(`<?php (int) $a; ( string ) $b; (unknown) $c;`)
	assert.Equal(t, T_INT_CAST, tokens[1].Type)
	assert.Equal(t, T_STRING_CAST, tokens[4].Type)
	// not a cast word: plain parenthesized name
	assert.Equal(t, TOKEN_LPAREN, tokens[7].Type)
}

func TestLexer_YieldFrom(t *testing.T) {
	tokens := Tokenize(`<?php yield from gen();`)
	assert.Equal(t, T_YIELD_FROM, tokens[1].Type)

	tokens = Tokenize(`<?php yield $x;`)
	assert.Equal(t, T_YIELD, tokens[1].Type)
}

func TestLexer_VariableVariables(t *testing.T) {
	tokens := Tokenize(`<?php $$x; ${$y};`)
	assert.Equal(t, []TokenType{
		T_OPEN_TAG, TOKEN_DOLLAR, T_VARIABLE, TOKEN_SEMICOLON,
		T_DOLLAR_OPEN_CURLY_BRACES, T_VARIABLE, TOKEN_RBRACE,
		TOKEN_SEMICOLON, T_EOF,
	}, tokenTypes(tokens))
}

func TestLexer_Positions(t *testing.T) {
	tokens := Tokenize("<?php\necho 1;")
	echo := tokens[1]
	assert.Equal(t, 2, echo.Pos.Line)
	assert.Equal(t, 1, echo.Pos.Column)
}

func TestLexer_Shebang(t *testing.T) {
	tokens := Tokenize("#!/usr/bin/env php\n<?php echo 1;")
	assert.Equal(t, T_OPEN_TAG, tokens[0].Type)
}
