package parser

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/php-parser/ast"
	"github.com/wudi/php-parser/lexer"
)

// collectChildren walks a node's exported fields and gathers every directly
// nested node.
func collectChildren(n ast.Node) []ast.Node {
	var children []ast.Node
	var visit func(v reflect.Value)
	visit = func(v reflect.Value) {
		switch v.Kind() {
		case reflect.Interface, reflect.Ptr:
			if v.IsNil() {
				return
			}
			if child, ok := v.Interface().(ast.Node); ok {
				children = append(children, child)
				return
			}
			visit(v.Elem())
		case reflect.Slice:
			for i := 0; i < v.Len(); i++ {
				visit(v.Index(i))
			}
		case reflect.Struct:
			if v.CanInterface() {
				if child, ok := v.Interface().(ast.Node); ok && v.Type().Name() != "" {
					// nested value nodes (ArrayItem, Parameter, ...)
					children = append(children, child)
					return
				}
			}
			for i := 0; i < v.NumField(); i++ {
				if v.Type().Field(i).PkgPath != "" {
					continue
				}
				visit(v.Field(i))
			}
		}
	}

	v := reflect.ValueOf(n)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		if v.Type().Field(i).PkgPath != "" {
			continue
		}
		visit(v.Field(i))
	}
	return children
}

func assertSpanInvariants(t *testing.T, source string, n ast.Node) {
	t.Helper()
	span := n.Span()
	assert.LessOrEqual(t, span.Start, span.End, "span start after end on %T", n)
	assert.GreaterOrEqual(t, span.Start, 0)
	assert.LessOrEqual(t, span.End, len(source))

	for _, child := range collectChildren(n) {
		childSpan := child.Span()
		assert.GreaterOrEqual(t, childSpan.Start, span.Start,
			"%T starts before its parent %T", child, n)
		assert.LessOrEqual(t, childSpan.End, span.End,
			"%T ends after its parent %T", child, n)
		assertSpanInvariants(t, source, child)
	}
}

func TestSpans_Invariants(t *testing.T) {
	sources := []string{
		`<?php echo 1;`,
		`<?php $a = 1 + 2 * 3;`,
		`<?php function fib($n) { if ($n < 2) { return $n; } return fib($n - 1) + fib($n - 2); }`,
		`<?php class Foo extends Bar implements Baz { public const X = 1; private ?int $v = 2; public function m(int $p = 0): static { return $this; } }`,
		`<?php trait T { use A, B { A::m insteadof B; B::m as private n; } }`,
		`<?php enum Suit: string { case Hearts = 'H'; }`,
		`<?php foreach ($xs as $k => $v) { echo $k, $v; }`,
		`<?php try { f(); } catch (A | B $e) { g(); } finally { h(); }`,
		`<?php $r = match($x) { 1, 2 => 'a', default => 'b' };`,
		`<?php #[Route('/home')] function home() {}`,
	}

	for _, source := range sources {
		t.Run(source, func(t *testing.T) {
			program := parseSource(t, source)
			assertSpanInvariants(t, source, program)
		})
	}
}

func TestSpans_SliceBackToSource(t *testing.T) {
	source := `<?php echo 1;`
	program := parseSource(t, source)

	require.Len(t, program.Statements, 1)
	echo := program.Statements[0].(*ast.EchoStatement)
	span := echo.Span()
	assert.Equal(t, "echo 1;", source[span.Start:span.End])

	value := echo.Values[0].Span()
	assert.Equal(t, "1", source[value.Start:value.End])
}

func TestSpans_DeclarationCoversWholeText(t *testing.T) {
	source := `<?php class Foo { public function bar() {} }`
	program := parseSource(t, source)

	class := program.Statements[0].(*ast.ClassDeclaration)
	span := class.Span()
	assert.Equal(t, `class Foo { public function bar() {} }`, source[span.Start:span.End])

	method := class.Members[0].(*ast.MethodMember)
	ms := method.Span()
	assert.Equal(t, `public function bar() {}`, source[ms.Start:ms.End])
}

func TestSpans_ScopeBalanceAfterParse(t *testing.T) {
	p := &Parser{stream: NewTokenStream(nil)}
	release := p.enterScope(Scope{Kind: ScopeClass, Name: "C"})
	require.Len(t, p.scopes, 1)
	release()
	assert.Empty(t, p.scopes)

	p = &Parser{stream: NewTokenStream(lexer.Tokenize(`<?php class C { public function m() { return fn($x) => $x; } }`))}
	_, err := p.parseProgram()
	require.NoError(t, err)
	assert.Empty(t, p.scopes)
}
