package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	phperrors "github.com/wudi/php-parser/errors"
)

func parseError(t *testing.T, source string) *phperrors.ParseError {
	t.Helper()
	_, err := ParseString(source)
	require.Error(t, err)
	parseErr, ok := err.(*phperrors.ParseError)
	require.True(t, ok, "expected *errors.ParseError, got %T: %v", err, err)
	return parseErr
}

func TestErrors_Kinds(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		kind   phperrors.Kind
		anchor string
	}{
		{
			name:  "expected token",
			input: `<?php if (true { }`,
			kind:  phperrors.ExpectedToken,
		},
		{
			name:  "missing semicolon",
			input: `<?php echo 1 echo 2;`,
			kind:  phperrors.ExpectedToken,
		},
		{
			name:  "unexpected token in expression",
			input: `<?php 1 + ;`,
			kind:  phperrors.UnexpectedToken,
		},
		{
			name:  "unexpected end of input",
			input: `<?php $a = `,
			kind:  phperrors.UnexpectedEndOfInput,
		},
		{
			name:   "duplicate modifier",
			input:  `<?php class C { public public $x; }`,
			kind:   phperrors.DuplicateModifier,
			anchor: "public",
		},
		{
			name:  "duplicate class modifier",
			input: `<?php final final class C {}`,
			kind:  phperrors.DuplicateModifier,
		},
		{
			name:   "abstract private method",
			input:  `<?php class C { abstract private function f(); }`,
			kind:   phperrors.ModifierConflict,
			anchor: "private",
		},
		{
			name:  "abstract final method",
			input: `<?php class C { abstract final function f(); }`,
			kind:  phperrors.ModifierConflict,
		},
		{
			name:  "two visibilities",
			input: `<?php class C { public protected $x; }`,
			kind:  phperrors.ModifierConflict,
		},
		{
			name:  "abstract constant",
			input: `<?php class C { abstract const X = 1; }`,
			kind:  phperrors.ModifierConflict,
		},
		{
			name:  "final property",
			input: `<?php class C { final $x; }`,
			kind:  phperrors.ModifierConflict,
		},
		{
			name:  "property in interface",
			input: `<?php interface I { public $x; }`,
			kind:  phperrors.InvalidMemberInContext,
		},
		{
			name:  "property in enum",
			input: `<?php enum E { public $x; }`,
			kind:  phperrors.InvalidMemberInContext,
		},
		{
			name:  "trait use in interface",
			input: `<?php interface I { use T; }`,
			kind:  phperrors.InvalidMemberInContext,
		},
		{
			name:  "interface method with body",
			input: `<?php interface I { function f() {} }`,
			kind:  phperrors.InvalidMemberInContext,
		},
		{
			name:  "abstract method in enum",
			input: `<?php enum E { abstract function f(); }`,
			kind:  phperrors.InvalidMemberInContext,
		},
		{
			name:   "trailing comma in trait use",
			input:  `<?php class C { use A,; }`,
			kind:   phperrors.TrailingSeparator,
			anchor: ",",
		},
		{
			name:   "trailing comma before adaptation block",
			input:  `<?php class C { use A, { } }`,
			kind:   phperrors.TrailingSeparator,
			anchor: ",",
		},
		{
			name:  "trailing comma in insteadof list",
			input: `<?php class C { use A, B { A::m insteadof B,; } }`,
			kind:  phperrors.TrailingSeparator,
		},
		{
			name:  "trailing comma in global list",
			input: `<?php global $a,;`,
			kind:  phperrors.TrailingSeparator,
		},
		{
			name:  "trailing comma in static list",
			input: `<?php static $a,;`,
			kind:  phperrors.TrailingSeparator,
		},
		{
			name:  "unconsumed attributes",
			input: `<?php #[A] 1 + 2;`,
			kind:  phperrors.UnconsumedAttributes,
		},
		{
			name:  "as without alias or visibility",
			input: `<?php class C { use A { m as; } }`,
			kind:  phperrors.MalformedTraitAdaptation,
		},
		{
			name:  "insteadof without qualifying trait",
			input: `<?php class C { use A, B { m insteadof B; } }`,
			kind:  phperrors.MalformedTraitAdaptation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parseErr := parseError(t, tt.input)
			assert.Equal(t, tt.kind, parseErr.Kind, "got %v", parseErr)
			if tt.anchor != "" {
				assert.Equal(t, tt.anchor, parseErr.Found)
			}
		})
	}
}

func TestErrors_ExpectedSet(t *testing.T) {
	parseErr := parseError(t, `<?php if (true { }`)
	require.NotEmpty(t, parseErr.Expected)
	assert.Equal(t, ")", parseErr.Expected[0])
}

func TestErrors_ConflictSpans(t *testing.T) {
	parseErr := parseError(t, `<?php class C { public public $x; }`)
	require.Len(t, parseErr.Conflict, 2)
	assert.Less(t, parseErr.Conflict[0].Start, parseErr.Conflict[1].Start)
}

func TestErrors_InvalidMemberContextNamesDeclaration(t *testing.T) {
	parseErr := parseError(t, `<?php interface I { public $x; }`)
	assert.Equal(t, phperrors.InvalidMemberInContext, parseErr.Kind)
	assert.Equal(t, "property in interface I", parseErr.Context)

	parseErr = parseError(t, `<?php enum Suit { public $x; }`)
	assert.Equal(t, "property in enum Suit", parseErr.Context)
}

func TestErrors_MessageRendering(t *testing.T) {
	parseErr := parseError(t, `<?php if (true { }`)
	msg := parseErr.Error()
	assert.Contains(t, msg, "expected token")
	assert.Contains(t, msg, "line 1")
}

func TestErrors_FirstErrorAborts(t *testing.T) {
	// both statements are malformed; only the first is reported
	parseErr := parseError(t, "<?php 1 + ;\n2 * ;")
	assert.Equal(t, 1, parseErr.Pos.Line)
}
