package errors

import (
	"fmt"
	"strings"

	"github.com/wudi/php-parser/lexer"
)

// Kind is the machine-readable category of a parse error.
type Kind int

const (
	// UnexpectedToken: the token matches no alternative of the current
	// production.
	UnexpectedToken Kind = iota
	// ExpectedToken: a specific token kind was required but absent.
	ExpectedToken
	// UnexpectedEndOfInput: the stream ran out mid-production.
	UnexpectedEndOfInput
	// DuplicateModifier: the same modifier keyword appeared twice.
	DuplicateModifier
	// ModifierConflict: two modifiers that cannot be combined.
	ModifierConflict
	// InvalidMemberInContext: a member kind the enclosing declaration does
	// not admit.
	InvalidMemberInContext
	// TrailingSeparator: a disallowed trailing comma in a list.
	TrailingSeparator
	// UnconsumedAttributes: attribute groups with no admissible declaration
	// following them.
	UnconsumedAttributes
	// MalformedTraitAdaptation: an `as`/`insteadof` clause that cannot be
	// completed.
	MalformedTraitAdaptation
)

var kindNames = map[Kind]string{
	UnexpectedToken:          "unexpected token",
	ExpectedToken:            "expected token",
	UnexpectedEndOfInput:     "unexpected end of input",
	DuplicateModifier:        "duplicate modifier",
	ModifierConflict:         "modifier conflict",
	InvalidMemberInContext:   "invalid member in context",
	TrailingSeparator:        "trailing separator",
	UnconsumedAttributes:     "unconsumed attributes",
	MalformedTraitAdaptation: "malformed trait adaptation",
}

func (k Kind) String() string { return kindNames[k] }

// ParseError is the single error shape every production fails with. The
// first error aborts the parse; there is no recovery.
type ParseError struct {
	Kind     Kind           `json:"kind"`
	Span     lexer.Span     `json:"span"`
	Pos      lexer.Position `json:"pos"`
	Found    string         `json:"found,omitempty"`
	Expected []string       `json:"expected,omitempty"`
	Context  string         `json:"context,omitempty"`
	// Conflict carries the spans of the two offending modifier tokens for
	// DuplicateModifier and for a conflicting pair under ModifierConflict; a
	// modifier the member kind does not allow carries only its own span.
	Conflict []lexer.Span `json:"conflict,omitempty"`
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", e.Kind)
	if e.Found != "" {
		fmt.Fprintf(&b, " `%s`", e.Found)
	}
	if len(e.Expected) > 0 {
		fmt.Fprintf(&b, ", expecting %s", joinExpected(e.Expected))
	}
	if e.Context != "" {
		fmt.Fprintf(&b, " while parsing %s", e.Context)
	}
	fmt.Fprintf(&b, " on line %d, column %d", e.Pos.Line, e.Pos.Column)
	return b.String()
}

func joinExpected(expected []string) string {
	quoted := make([]string, len(expected))
	for i, e := range expected {
		quoted[i] = "`" + e + "`"
	}
	switch len(quoted) {
	case 1:
		return quoted[0]
	case 2:
		return quoted[0] + " or " + quoted[1]
	default:
		return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
	}
}

// WithContext annotates the error with the production being parsed, keeping
// the innermost context if one is already set.
func (e *ParseError) WithContext(context string) *ParseError {
	if e.Context == "" {
		e.Context = context
	}
	return e
}

// Format renders the error with a source excerpt and a caret anchored at
// the error's position.
func (e *ParseError) Format(source string) string {
	lines := strings.Split(source, "\n")
	if e.Pos.Line <= 0 || e.Pos.Line > len(lines) {
		return e.Error()
	}

	var b strings.Builder
	b.WriteString(e.Error())
	b.WriteString("\n")
	errorLine := lines[e.Pos.Line-1]
	prefix := fmt.Sprintf("  %d | ", e.Pos.Line)
	fmt.Fprintf(&b, "%s%s\n", prefix, errorLine)
	b.WriteString(strings.Repeat(" ", len(prefix)))
	for i := 1; i < e.Pos.Column; i++ {
		b.WriteString(" ")
	}
	b.WriteString("^")
	return b.String()
}
