package ast

import (
	"testing"

	"github.com/deepnoodle-ai/optchain/internal/token"
	"github.com/stretchr/testify/require"
)

func ident(name string) *Ident { return &Ident{Name: name} }

func TestString(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			name: "ident",
			node: ident("foo"),
			want: "foo",
		},
		{
			name: "prefix",
			node: &Prefix{Op: "!", X: ident("ok")},
			want: "(!ok)",
		},
		{
			name: "infix",
			node: &Infix{X: ident("x"), Op: "!=", Y: &Null{}},
			want: "(x != null)",
		},
		{
			name: "ternary",
			node: &Ternary{Cond: ident("c"), IfTrue: ident("a"), IfFalse: ident("b")},
			want: "(c ? a : b)",
		},
		{
			name: "call",
			node: &Call{Fun: ident("f"), Args: []Expr{ident("a"), ident("b")}},
			want: "f(a, b)",
		},
		{
			name: "call with no args",
			node: &Call{Fun: &GetAttr{X: ident("x"), Attr: ident("a")}},
			want: "x.a()",
		},
		{
			name: "get attr",
			node: &GetAttr{X: &GetAttr{X: ident("a"), Attr: ident("b")}, Attr: ident("c")},
			want: "a.b.c",
		},
		{
			name: "index",
			node: &Index{X: ident("items"), Index: &Int{Literal: "0", Value: 0}},
			want: "items[0]",
		},
		{
			name: "arrow",
			node: &Arrow{
				Params: []*Ident{ident("a"), ident("b")},
				Body:   &Infix{X: ident("a"), Op: "+", Y: ident("b")},
			},
			want: "(a, b) => (a + b)",
		},
		{
			name: "string is quoted",
			node: &String{Value: "say \"hi\""},
			want: `"say \"hi\""`,
		},
		{
			name: "list",
			node: &List{Items: []Expr{&Int{Literal: "1"}, &Bool{Literal: "true"}}},
			want: "[1, true]",
		},
		{
			name: "var",
			node: &Var{Keyword: "let", Name: ident("x"), Value: &Int{Literal: "5"}},
			want: "let x = 5",
		},
		{
			name: "program",
			node: &Program{Stmts: []Node{ident("a"), ident("b")}},
			want: "a\nb",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.node.String())
		})
	}
}

func TestPositions(t *testing.T) {
	name := &Ident{
		NamePos: token.Position{Char: 4, Line: 0, Column: 4},
		Name:    "total",
	}
	require.Equal(t, 4, name.Pos().Column)
	require.Equal(t, 9, name.End().Column)

	attr := &GetAttr{X: name, Attr: &Ident{
		NamePos: token.Position{Char: 10, Line: 0, Column: 10},
		Name:    "sum",
	}}
	require.Equal(t, name.Pos(), attr.Pos())
	require.Equal(t, 13, attr.End().Column)
}

func TestInspect(t *testing.T) {
	// f(x.a, [1, y])
	tree := &Call{
		Fun: ident("f"),
		Args: []Expr{
			&GetAttr{X: ident("x"), Attr: ident("a")},
			&List{Items: []Expr{&Int{Literal: "1"}, ident("y")}},
		},
	}

	var names []string
	Inspect(tree, func(n Node) bool {
		if id, ok := n.(*Ident); ok {
			names = append(names, id.Name)
		}
		return true
	})
	// GetAttr's Attr is not a child expression; only values are visited
	require.Equal(t, []string{"f", "x", "y"}, names)

	// Returning false prunes a subtree
	var count int
	Inspect(tree, func(n Node) bool {
		count++
		_, isList := n.(*List)
		return !isList
	})
	// call, f, get attr, x, list
	require.Equal(t, 5, count)
}
