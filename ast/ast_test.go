package ast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/php-parser/lexer"
)

func TestSpanUnion(t *testing.T) {
	a := lexer.Span{Start: 4, End: 10}
	b := lexer.Span{Start: 7, End: 20}
	assert.Equal(t, lexer.Span{Start: 4, End: 20}, a.Union(b))
	assert.Equal(t, lexer.Span{Start: 4, End: 20}, b.Union(a))
}

func TestNodeSpanAccessor(t *testing.T) {
	name := &Name{Kind: NameQualified, Value: `Foo\Bar`}
	name.Loc = lexer.Span{Start: 6, End: 13}
	assert.Equal(t, lexer.Span{Start: 6, End: 13}, name.Span())
}

func TestToJSON_Discriminators(t *testing.T) {
	echo := &EchoStatement{Values: []Expression{
		func() Expression {
			lit := &IntegerLiteral{Value: 1, Raw: "1"}
			lit.Loc = lexer.Span{Start: 11, End: 12}
			return lit
		}(),
	}}
	echo.Loc = lexer.Span{Start: 6, End: 13}

	program := &Program{Statements: []Statement{echo}}
	program.Loc = lexer.Span{Start: 0, End: 13}

	out, err := ToJSON(program)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "Program", decoded["node"])

	statements, ok := decoded["statements"].([]any)
	require.True(t, ok)
	require.Len(t, statements, 1)

	first, ok := statements[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "EchoStatement", first["node"])
}

func TestToJSON_EnumsRenderAsStrings(t *testing.T) {
	use := &UseStatement{Kind: UseFunction}
	out, err := ToJSON(use)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"kind": "function"`)

	name := &Name{Kind: NameFullyQualified, Value: `\X`}
	out, err = ToJSON(name)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"kind": "fully-qualified"`)
}

func TestVisibilityStrings(t *testing.T) {
	assert.Equal(t, "public", Public.String())
	assert.Equal(t, "protected", Protected.String())
	assert.Equal(t, "private", Private.String())
}
