package rewrite

import "github.com/deepnoodle-ai/optchain/ast"

// segment is one step in a chain's access path: either a property access
// by name or an index access by expression.
type segment struct {
	attr  *ast.Ident // property step; nil for index steps
	index ast.Expr   // index step; nil for property steps
}

// chain describes one matched optional chain. It is built by match,
// consumed immediately by synthesize, and never outlives the rewrite of
// the call expression it was extracted from.
type chain struct {
	// root is the single argument of the marker invocation: the object
	// being traversed.
	root ast.Expr

	// segments is the access path in root-to-leaf order.
	segments []segment

	// deflt is the terminating call's argument; nil when the chain has no
	// default (the lowered expression then falls back to undefined).
	deflt ast.Expr

	// nullDefault records that deflt is syntactically the null literal,
	// which relaxes the guard so that a null result counts as present.
	nullDefault bool
}

// match reports whether call is the terminating invocation of a chain and,
// if so, returns its descriptor. The callee is walked backward: every
// property or index access contributes one segment, and the walk must end
// at an invocation of the marker function with exactly one argument. Any
// other node kind along the way means this is not a chain, which is never
// an error; the caller simply leaves the subtree alone.
func (r *Rewriter) match(call *ast.Call) (*chain, bool) {
	if len(call.Args) > 1 {
		return nil, false
	}
	var segments []segment
	cur := call.Fun
	for {
		switch n := cur.(type) {
		case *ast.GetAttr:
			segments = append(segments, segment{attr: n.Attr})
			cur = n.X
		case *ast.Index:
			segments = append(segments, segment{index: n.Index})
			cur = n.X
		case *ast.Call:
			ident, ok := n.Fun.(*ast.Ident)
			if !ok || ident.Name != r.marker || len(n.Args) != 1 {
				return nil, false
			}
			// The backward walk collected segments leaf-to-root; restore
			// root-to-leaf order.
			for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
				segments[i], segments[j] = segments[j], segments[i]
			}
			c := &chain{root: n.Args[0], segments: segments}
			if len(call.Args) == 1 {
				c.deflt = call.Args[0]
				_, c.nullDefault = call.Args[0].(*ast.Null)
			}
			return c, true
		default:
			return nil, false
		}
	}
}
