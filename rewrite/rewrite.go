// Package rewrite lowers marker-based optional chain expressions into
// equivalent null-safe conditional expressions that require no runtime
// library support.
//
// A chain is a marker invocation followed by any number of property or
// index accesses and a terminating invocation that optionally supplies a
// default value:
//
//	oc(x).a.b(fallback)
//
// becomes
//
//	(x != null && x.a != null && x.a.b != null) ? x.a.b : fallback
//
// The transformation is purely syntactic: it receives a parsed tree and
// returns a rewritten tree, leaving every non-matching subtree untouched.
// Subtrees that contain no chains keep their node identity, so an input
// with no marker invocations is returned as-is.
package rewrite

import "github.com/deepnoodle-ai/optchain/ast"

// DefaultMarker is the name of the function that begins a chain unless
// WithMarker is used to configure a different one.
const DefaultMarker = "oc"

// Option is a configuration function for a Rewriter.
type Option func(*Rewriter)

// WithMarker sets the name of the marker function that begins a chain.
func WithMarker(name string) Option {
	return func(r *Rewriter) {
		r.marker = name
	}
}

// Rewriter lowers optional chains in syntax trees. A single Rewriter holds
// configuration only and may be reused across trees, including concurrently.
type Rewriter struct {
	marker string
}

// New returns a Rewriter with the given options applied.
func New(opts ...Option) *Rewriter {
	r := &Rewriter{marker: DefaultMarker}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Marker returns the name of the configured marker function.
func (r *Rewriter) Marker() string {
	return r.marker
}

// Rewrite returns a tree in which every recognized chain under node has
// been replaced by its lowered conditional expression. The input tree is
// not modified; unchanged subtrees are shared between input and output.
func Rewrite(node ast.Node, opts ...Option) ast.Node {
	return New(opts...).Rewrite(node)
}

// Rewrite returns a tree in which every recognized chain under node has
// been replaced by its lowered conditional expression.
func (r *Rewriter) Rewrite(node ast.Node) ast.Node {
	return r.rewriteNode(node)
}

// rewriteNode visits a node post-order: children are rewritten first, so a
// chain nested inside another chain's root or default value is lowered
// before the outer chain is inspected. Replacement nodes are not revisited.
func (r *Rewriter) rewriteNode(node ast.Node) ast.Node {
	switch n := node.(type) {
	case *ast.Program:
		stmts, changed := r.rewriteStmts(n.Stmts)
		if !changed {
			return n
		}
		return &ast.Program{Stmts: stmts}
	case *ast.Var:
		value := r.rewriteExpr(n.Value)
		if value == n.Value {
			return n
		}
		out := *n
		out.Value = value
		return &out
	case ast.Expr:
		return r.rewriteExpr(n)
	}
	return node
}

func (r *Rewriter) rewriteStmts(stmts []ast.Node) ([]ast.Node, bool) {
	var out []ast.Node
	for i, stmt := range stmts {
		rewritten := r.rewriteNode(stmt)
		if rewritten != stmt && out == nil {
			out = make([]ast.Node, len(stmts))
			copy(out, stmts[:i])
		}
		if out != nil {
			out[i] = rewritten
		}
	}
	if out == nil {
		return stmts, false
	}
	return out, true
}

func (r *Rewriter) rewriteExprs(exprs []ast.Expr) ([]ast.Expr, bool) {
	var out []ast.Expr
	for i, expr := range exprs {
		rewritten := r.rewriteExpr(expr)
		if rewritten != expr && out == nil {
			out = make([]ast.Expr, len(exprs))
			copy(out, exprs[:i])
		}
		if out != nil {
			out[i] = rewritten
		}
	}
	if out == nil {
		return exprs, false
	}
	return out, true
}

func (r *Rewriter) rewriteExpr(expr ast.Expr) ast.Expr {
	switch n := expr.(type) {
	case *ast.Prefix:
		x := r.rewriteExpr(n.X)
		if x == n.X {
			return n
		}
		out := *n
		out.X = x
		return &out
	case *ast.Infix:
		x := r.rewriteExpr(n.X)
		y := r.rewriteExpr(n.Y)
		if x == n.X && y == n.Y {
			return n
		}
		out := *n
		out.X = x
		out.Y = y
		return &out
	case *ast.Ternary:
		cond := r.rewriteExpr(n.Cond)
		ifTrue := r.rewriteExpr(n.IfTrue)
		ifFalse := r.rewriteExpr(n.IfFalse)
		if cond == n.Cond && ifTrue == n.IfTrue && ifFalse == n.IfFalse {
			return n
		}
		out := *n
		out.Cond = cond
		out.IfTrue = ifTrue
		out.IfFalse = ifFalse
		return &out
	case *ast.GetAttr:
		x := r.rewriteExpr(n.X)
		if x == n.X {
			return n
		}
		out := *n
		out.X = x
		return &out
	case *ast.Index:
		x := r.rewriteExpr(n.X)
		index := r.rewriteExpr(n.Index)
		if x == n.X && index == n.Index {
			return n
		}
		out := *n
		out.X = x
		out.Index = index
		return &out
	case *ast.Arrow:
		body := r.rewriteExpr(n.Body)
		if body == n.Body {
			return n
		}
		out := *n
		out.Body = body
		return &out
	case *ast.List:
		items, changed := r.rewriteExprs(n.Items)
		if !changed {
			return n
		}
		out := *n
		out.Items = items
		return &out
	case *ast.Call:
		fun := r.rewriteExpr(n.Fun)
		args, argsChanged := r.rewriteExprs(n.Args)
		call := n
		if fun != n.Fun || argsChanged {
			out := *n
			out.Fun = fun
			out.Args = args
			call = &out
		}
		if c, ok := r.match(call); ok {
			return r.synthesize(c)
		}
		return call
	}
	// Identifiers and literals have no children and are never chain roots
	return expr
}

// Count returns the number of marker invocations under node. After a
// rewrite of the same tree it reports how many chains were left
// unrecognized (normally zero).
func Count(node ast.Node, marker string) int {
	count := 0
	ast.Inspect(node, func(n ast.Node) bool {
		if call, ok := n.(*ast.Call); ok && len(call.Args) == 1 {
			if ident, ok := call.Fun.(*ast.Ident); ok && ident.Name == marker {
				count++
			}
		}
		return true
	})
	return count
}
