package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/deepnoodle-ai/optchain/ast"
	"github.com/stretchr/testify/require"
)

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`5`, `5`},
		{`2.5`, `2.5`},
		{`"hi"`, `"hi"`},
		{`'hi'`, `"hi"`},
		{"\"tab\\tsep\"", "\"tab\\tsep\""},
		{`true`, `true`},
		{`false`, `false`},
		{`null`, `null`},
		{`foo`, `foo`},
		{`!ok`, `(!ok)`},
		{`-x`, `(-x)`},
		{`1 + 2 * 3`, `(1 + (2 * 3))`},
		{`(1 + 2) * 3`, `((1 + 2) * 3)`},
		{`a + b - c`, `((a + b) - c)`},
		{`-x * y`, `((-x) * y)`},
		{`a / b`, `(a / b)`},
		{`a < b`, `(a < b)`},
		{`a <= b`, `(a <= b)`},
		{`a > b`, `(a > b)`},
		{`a >= b`, `(a >= b)`},
		{`a == b`, `(a == b)`},
		{`x != null`, `(x != null)`},
		{`a && b || c`, `((a && b) || c)`},
		{`x != null && y != null`, `((x != null) && (y != null))`},
		{`foo.bar.baz`, `foo.bar.baz`},
		{`items[0]`, `items[0]`},
		{`m["k"]`, `m["k"]`},
		{`rows[i + 1]`, `rows[(i + 1)]`},
		{`f()`, `f()`},
		{`f(1, 2.5, "s")`, `f(1, 2.5, "s")`},
		{`f(x)(y)`, `f(x)(y)`},
		{`oc(x).a.b[0].c("d")`, `oc(x).a.b[0].c("d")`},
		{`a ? b : c`, `(a ? b : c)`},
		{`a ? b : c ? d : e`, `(a ? b : (c ? d : e))`},
		{`a && b ? c : d`, `((a && b) ? c : d)`},
		{`x => x + 1`, `(x) => (x + 1)`},
		{`(a, b) => a + b`, `(a, b) => (a + b)`},
		{`() => null`, `() => null`},
		{`u => oc(u).name()`, `(u) => oc(u).name()`},
		{`[]`, `[]`},
		{`[1, [2, 3], x]`, `[1, [2, 3], x]`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			prog, err := Parse(context.Background(), tt.input)
			require.NoError(t, err)
			require.Len(t, prog.Stmts, 1)
			require.Equal(t, tt.want, prog.String())
		})
	}
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`let x = 5`, `let x = 5`},
		{`const y = x * 2`, `const y = (x * 2)`},
		{"1\n2;3", "1\n2\n3"},
		{"1 // trailing comment\n2", "1\n2"},
		{"/* leading\n   comment */ 1", "1"},
		{"f(1,\n  2)", "f(1, 2)"},
		{"a &&\n  b", "(a && b)"},
		{"cond ?\n  x :\n  y", "(cond ? x : y)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			prog, err := Parse(context.Background(), tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, prog.String())
		})
	}
}

func TestParseVar(t *testing.T) {
	prog, err := Parse(context.Background(), `let answer = 42`)
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 1)

	decl, ok := prog.Stmts[0].(*ast.Var)
	require.True(t, ok)
	require.Equal(t, "let", decl.Keyword)
	require.Equal(t, "answer", decl.Name.Name)

	value, ok := decl.Value.(*ast.Int)
	require.True(t, ok)
	require.Equal(t, int64(42), value.Value)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"dangling operator", `1 +`, "invalid expression"},
		{"unclosed paren", `(1 + 2`, "grouped expression"},
		{"dangling period", `x.`, "expected an identifier"},
		{"period before number", `x.1`, "expected an identifier"},
		{"let without name", `let = 5`, "variable declaration"},
		{"let without assign", `let x 5`, "variable declaration"},
		{"ternary without colon", `a ? b`, "ternary"},
		{"empty parens", `()`, "empty parentheses require arrow function syntax"},
		{"comma without arrow", `(1, 2)`, "comma-separated expressions require arrow function syntax"},
		{"non-ident arrow param", `(a, 1) => x`, "invalid arrow function parameter"},
		{"arrow without body", `x =>`, "invalid arrow function body"},
		{"unexpected token after statement", `1 2`, "unexpected token"},
		{"illegal character", `@`, "unexpected character"},
		{"unterminated string", `"abc`, "unterminated string literal"},
		{"bad escape", `"a\qb"`, "invalid escape sequence"},
		{"unterminated comment", `/* nope`, "unterminated comment"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(context.Background(), tt.input)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParseCollectsMultipleErrors(t *testing.T) {
	_, err := Parse(context.Background(), "let = 1\nlet = 2\nlet ok = 3")
	require.Error(t, err)

	var errs *Errors
	require.ErrorAs(t, err, &errs)
	require.Equal(t, 2, errs.Count())
	for _, e := range errs.Errors() {
		require.Contains(t, e.Message(), "variable declaration")
	}
}

func TestParseErrorLimit(t *testing.T) {
	input := strings.Repeat("let = 1\n", MaxErrors+5)
	_, err := Parse(context.Background(), input)
	require.Error(t, err)

	var errs *Errors
	require.ErrorAs(t, err, &errs)
	require.Equal(t, MaxErrors, errs.Count())
}

func TestParseErrorLocations(t *testing.T) {
	_, err := Parse(context.Background(), "let x = 1\nlet = 2",
		WithFilename("example.js"))
	require.Error(t, err)

	var errs *Errors
	require.ErrorAs(t, err, &errs)
	first := errs.First()
	require.NotNil(t, first)
	require.Equal(t, "example.js", first.File())
	require.Equal(t, 2, first.StartPosition().LineNumber())
	require.Equal(t, "let = 2", first.SourceCode())
}

func TestWithFilenamePositions(t *testing.T) {
	prog, err := Parse(context.Background(), `x + y`, WithFilename("main.js"))
	require.NoError(t, err)
	require.Equal(t, "main.js", prog.Stmts[0].Pos().File)
}

func TestWithMaxDepth(t *testing.T) {
	input := strings.Repeat("(", 40) + "x" + strings.Repeat(")", 40)

	_, err := Parse(context.Background(), input)
	require.NoError(t, err)

	_, err = Parse(context.Background(), input, WithMaxDepth(10))
	require.Error(t, err)
	require.Contains(t, err.Error(), "maximum nesting depth exceeded")
}

func TestParseContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Parse(ctx, "x\ny")
	require.ErrorIs(t, err, context.Canceled)
}

func TestParsePositions(t *testing.T) {
	prog, err := Parse(context.Background(), `foo + bar`)
	require.NoError(t, err)

	infix, ok := prog.Stmts[0].(*ast.Infix)
	require.True(t, ok)
	require.Equal(t, 1, infix.Pos().LineNumber())
	require.Equal(t, 1, infix.Pos().ColumnNumber())
	require.Equal(t, 7, infix.Y.Pos().ColumnNumber())
	require.Equal(t, 5, infix.OpPos.ColumnNumber())
}

func TestParsePartialProgramOnError(t *testing.T) {
	prog, err := Parse(context.Background(), "let a = 1\nlet = 2\nlet c = 3")
	require.Error(t, err)
	require.NotNil(t, prog)
	require.Len(t, prog.Stmts, 2)
	require.Equal(t, "let a = 1\nlet c = 3", prog.String())
}
