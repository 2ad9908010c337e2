package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/php-parser/ast"
)

func TestParsing_IfStatement(t *testing.T) {
	t.Run("if elseif else", func(t *testing.T) {
		program := parseSource(t, `<?php
if ($a) { echo 1; }
elseif ($b) { echo 2; }
else { echo 3; }`)

		require.Len(t, program.Statements, 1)
		stmt, ok := program.Statements[0].(*ast.IfStatement)
		require.True(t, ok)
		require.Len(t, stmt.Then, 1)
		require.Len(t, stmt.ElseIfs, 1)
		assert.Equal(t, "$b", exprString(stmt.ElseIfs[0].Cond))
		assert.True(t, stmt.HasElse)
		require.Len(t, stmt.Else, 1)
	})

	t.Run("else if chains as nested if", func(t *testing.T) {
		program := parseSource(t, `<?php if ($a) {} else if ($b) {}`)
		stmt := program.Statements[0].(*ast.IfStatement)
		assert.True(t, stmt.HasElse)
		require.Len(t, stmt.Else, 1)
		_, ok := stmt.Else[0].(*ast.IfStatement)
		require.True(t, ok)
	})

	t.Run("alternative syntax", func(t *testing.T) {
		program := parseSource(t, `<?php
if ($a):
    echo 1;
elseif ($b):
    echo 2;
else:
    echo 3;
endif;`)
		stmt := program.Statements[0].(*ast.IfStatement)
		require.Len(t, stmt.Then, 1)
		require.Len(t, stmt.ElseIfs, 1)
		require.Len(t, stmt.Else, 1)
	})

	t.Run("single statement body", func(t *testing.T) {
		program := parseSource(t, `<?php if ($a) echo 1;`)
		stmt := program.Statements[0].(*ast.IfStatement)
		require.Len(t, stmt.Then, 1)
		_, ok := stmt.Then[0].(*ast.EchoStatement)
		require.True(t, ok)
	})
}

func TestParsing_Loops(t *testing.T) {
	t.Run("while", func(t *testing.T) {
		program := parseSource(t, `<?php while ($a) { echo 1; }`)
		stmt, ok := program.Statements[0].(*ast.WhileStatement)
		require.True(t, ok)
		require.Len(t, stmt.Body, 1)
	})

	t.Run("while alternative", func(t *testing.T) {
		program := parseSource(t, `<?php while ($a): echo 1; endwhile;`)
		stmt, ok := program.Statements[0].(*ast.WhileStatement)
		require.True(t, ok)
		require.Len(t, stmt.Body, 1)
	})

	t.Run("do while", func(t *testing.T) {
		program := parseSource(t, `<?php do { echo 1; } while ($a);`)
		stmt, ok := program.Statements[0].(*ast.DoWhileStatement)
		require.True(t, ok)
		require.Len(t, stmt.Body, 1)
		assert.Equal(t, "$a", exprString(stmt.Cond))
	})

	t.Run("for with all sections", func(t *testing.T) {
		program := parseSource(t, `<?php for ($i = 0, $j = 1; $i < 10; $i++, $j--) { echo $i; }`)
		stmt, ok := program.Statements[0].(*ast.ForStatement)
		require.True(t, ok)
		assert.Len(t, stmt.Init, 2)
		assert.Len(t, stmt.Cond, 1)
		assert.Len(t, stmt.Loop, 2)
		require.Len(t, stmt.Body, 1)
	})

	t.Run("infinite for", func(t *testing.T) {
		program := parseSource(t, `<?php for (;;) { break; }`)
		stmt, ok := program.Statements[0].(*ast.ForStatement)
		require.True(t, ok)
		assert.Empty(t, stmt.Init)
		assert.Empty(t, stmt.Cond)
		assert.Empty(t, stmt.Loop)
	})

	t.Run("foreach value only", func(t *testing.T) {
		program := parseSource(t, `<?php foreach ($items as $item) { echo $item; }`)
		stmt, ok := program.Statements[0].(*ast.ForeachStatement)
		require.True(t, ok)
		assert.Nil(t, stmt.Key)
		assert.False(t, stmt.ByRef)
		assert.Equal(t, "$item", exprString(stmt.Value))
	})

	t.Run("foreach key and by-ref value", func(t *testing.T) {
		program := parseSource(t, `<?php foreach ($items as $k => &$v) { echo $k; }`)
		stmt, ok := program.Statements[0].(*ast.ForeachStatement)
		require.True(t, ok)
		assert.Equal(t, "$k", exprString(stmt.Key))
		assert.True(t, stmt.ByRef)
		assert.Equal(t, "$v", exprString(stmt.Value))
	})

	t.Run("break and continue with levels", func(t *testing.T) {
		program := parseSource(t, `<?php while ($a) { continue 2; break; }`)
		loop := program.Statements[0].(*ast.WhileStatement)
		require.Len(t, loop.Body, 2)

		cont, ok := loop.Body[0].(*ast.ContinueStatement)
		require.True(t, ok)
		require.NotNil(t, cont.Level)

		brk, ok := loop.Body[1].(*ast.BreakStatement)
		require.True(t, ok)
		assert.Nil(t, brk.Level)
	})
}

func TestParsing_Switch(t *testing.T) {
	t.Run("brace form", func(t *testing.T) {
		program := parseSource(t, `<?php
switch ($x) {
    case 1:
        echo 1;
        break;
    case 2:
    case 3:
        echo 2;
        break;
    default:
        echo 3;
}`)
		stmt, ok := program.Statements[0].(*ast.SwitchStatement)
		require.True(t, ok)
		require.Len(t, stmt.Cases, 4)
		assert.NotNil(t, stmt.Cases[0].Cond)
		assert.Empty(t, stmt.Cases[1].Body)
		assert.Nil(t, stmt.Cases[3].Cond)
	})

	t.Run("alternative form", func(t *testing.T) {
		program := parseSource(t, `<?php switch ($x): case 1: echo 1; endswitch;`)
		stmt, ok := program.Statements[0].(*ast.SwitchStatement)
		require.True(t, ok)
		require.Len(t, stmt.Cases, 1)
	})

	t.Run("semicolon case separator", func(t *testing.T) {
		program := parseSource(t, `<?php switch ($x) { case 1; echo 1; }`)
		stmt := program.Statements[0].(*ast.SwitchStatement)
		require.Len(t, stmt.Cases, 1)
		require.Len(t, stmt.Cases[0].Body, 1)
	})
}

func TestParsing_TryCatchFinally(t *testing.T) {
	program := parseSource(t, `<?php
try {
    risky();
} catch (TypeError | ValueError $e) {
    handle($e);
} catch (Throwable) {
    rethrow();
} finally {
    cleanup();
}`)

	stmt, ok := program.Statements[0].(*ast.TryStatement)
	require.True(t, ok)
	require.Len(t, stmt.Body, 1)
	require.Len(t, stmt.Catches, 2)

	first := stmt.Catches[0]
	require.Len(t, first.Types, 2)
	assert.Equal(t, "TypeError", first.Types[0].Value)
	assert.Equal(t, "ValueError", first.Types[1].Value)
	require.NotNil(t, first.Var)
	assert.Equal(t, "e", first.Var.Name)

	second := stmt.Catches[1]
	require.Len(t, second.Types, 1)
	assert.Nil(t, second.Var)

	assert.True(t, stmt.HasFinally)
	require.Len(t, stmt.Finally, 1)
}

func TestParsing_Declare(t *testing.T) {
	t.Run("noop form", func(t *testing.T) {
		program := parseSource(t, `<?php declare(strict_types=1);`)
		stmt, ok := program.Statements[0].(*ast.DeclareStatement)
		require.True(t, ok)
		assert.Equal(t, ast.DeclareNoop, stmt.Form)
		require.Len(t, stmt.Entries, 1)
		assert.Equal(t, "strict_types", stmt.Entries[0].Key.Value)
	})

	t.Run("braced form", func(t *testing.T) {
		program := parseSource(t, `<?php declare(ticks=1) { echo 1; }`)
		stmt := program.Statements[0].(*ast.DeclareStatement)
		assert.Equal(t, ast.DeclareBraced, stmt.Form)
		require.Len(t, stmt.Statements, 1)
	})

	t.Run("alternative form", func(t *testing.T) {
		program := parseSource(t, `<?php declare(ticks=1): echo 1; enddeclare;`)
		stmt := program.Statements[0].(*ast.DeclareStatement)
		assert.Equal(t, ast.DeclareAlternative, stmt.Form)
		require.Len(t, stmt.Statements, 1)
	})

	t.Run("expression form", func(t *testing.T) {
		program := parseSource(t, `<?php declare(ticks=1) f();`)
		stmt := program.Statements[0].(*ast.DeclareStatement)
		assert.Equal(t, ast.DeclareExpression, stmt.Form)
		require.NotNil(t, stmt.Expr)
	})
}

func TestParsing_GlobalAndStatic(t *testing.T) {
	t.Run("global list", func(t *testing.T) {
		program := parseSource(t, `<?php global $a, $b;`)
		stmt, ok := program.Statements[0].(*ast.GlobalStatement)
		require.True(t, ok)
		require.Len(t, stmt.Vars, 2)
	})

	t.Run("static with defaults", func(t *testing.T) {
		program := parseSource(t, `<?php static $count = 0, $name;`)
		stmt, ok := program.Statements[0].(*ast.StaticStatement)
		require.True(t, ok)
		require.Len(t, stmt.Vars, 2)
		assert.NotNil(t, stmt.Vars[0].Default)
		assert.Nil(t, stmt.Vars[1].Default)
	})

	t.Run("static access is not a binding", func(t *testing.T) {
		program := parseSource(t, `<?php static::create();`)
		_, ok := program.Statements[0].(*ast.ExpressionStatement)
		require.True(t, ok)
	})
}

func TestParsing_GotoAndLabels(t *testing.T) {
	program := parseSource(t, `<?php
start:
echo 1;
goto start;`)

	require.Len(t, program.Statements, 3)
	label, ok := program.Statements[0].(*ast.LabelStatement)
	require.True(t, ok)
	assert.Equal(t, "start", label.Name.Value)

	g, ok := program.Statements[2].(*ast.GotoStatement)
	require.True(t, ok)
	assert.Equal(t, "start", g.Label.Value)
}

func TestParsing_BlocksAndNoops(t *testing.T) {
	program := parseSource(t, `<?php { echo 1; } ;`)
	require.Len(t, program.Statements, 2)

	block, ok := program.Statements[0].(*ast.BlockStatement)
	require.True(t, ok)
	require.Len(t, block.Statements, 1)

	_, ok = program.Statements[1].(*ast.NoopStatement)
	require.True(t, ok)
}

func TestParsing_Unset(t *testing.T) {
	program := parseSource(t, `<?php unset($a, $b[0]);`)
	stmt, ok := program.Statements[0].(*ast.UnsetStatement)
	require.True(t, ok)
	require.Len(t, stmt.Vars, 2)
}

func TestParsing_Namespaces(t *testing.T) {
	t.Run("unbraced", func(t *testing.T) {
		program := parseSource(t, `<?php namespace App\Core; echo 1;`)
		require.Len(t, program.Statements, 2)
		ns, ok := program.Statements[0].(*ast.NamespaceStatement)
		require.True(t, ok)
		require.NotNil(t, ns.Name)
		assert.Equal(t, `App\Core`, ns.Name.Value)
		assert.False(t, ns.Braced)
	})

	t.Run("braced", func(t *testing.T) {
		program := parseSource(t, `<?php namespace App { const X = 1; } namespace { echo 1; }`)
		require.Len(t, program.Statements, 2)

		first := program.Statements[0].(*ast.NamespaceStatement)
		assert.True(t, first.Braced)
		require.Len(t, first.Statements, 1)

		second := program.Statements[1].(*ast.NamespaceStatement)
		assert.Nil(t, second.Name)
		require.Len(t, second.Statements, 1)
	})
}

func TestParsing_UseImports(t *testing.T) {
	t.Run("plain with alias", func(t *testing.T) {
		program := parseSource(t, `<?php use App\Service as Svc, App\Other;`)
		stmt, ok := program.Statements[0].(*ast.UseStatement)
		require.True(t, ok)
		assert.Equal(t, ast.UseNormal, stmt.Kind)
		require.Len(t, stmt.Uses, 2)
		require.NotNil(t, stmt.Uses[0].Alias)
		assert.Equal(t, "Svc", stmt.Uses[0].Alias.Value)
		assert.Nil(t, stmt.Uses[1].Alias)
	})

	t.Run("function and const imports", func(t *testing.T) {
		program := parseSource(t, `<?php use function App\helper; use const App\VERSION;`)
		require.Len(t, program.Statements, 2)
		assert.Equal(t, ast.UseFunction, program.Statements[0].(*ast.UseStatement).Kind)
		assert.Equal(t, ast.UseConst, program.Statements[1].(*ast.UseStatement).Kind)
	})

	t.Run("group use", func(t *testing.T) {
		program := parseSource(t, `<?php use App\{Service, Repo as R};`)
		stmt := program.Statements[0].(*ast.UseStatement)
		require.NotNil(t, stmt.Prefix)
		assert.Equal(t, "App", stmt.Prefix.Value)
		require.Len(t, stmt.Uses, 2)
		assert.Equal(t, "R", stmt.Uses[1].Alias.Value)
	})
}

func TestParsing_TopLevelConst(t *testing.T) {
	program := parseSource(t, `<?php const A = 1, B = 2;`)
	stmt, ok := program.Statements[0].(*ast.ConstStatement)
	require.True(t, ok)
	require.Len(t, stmt.Entries, 2)
	assert.Equal(t, "A", stmt.Entries[0].Name.Value)
}

func TestParsing_HaltCompiler(t *testing.T) {
	program := parseSource(t, "<?php echo 1; __halt_compiler(); ?>raw data")
	require.Len(t, program.Statements, 2)
	halt, ok := program.Statements[1].(*ast.HaltCompilerStatement)
	require.True(t, ok)
	assert.Equal(t, "raw data", halt.Content)
}
