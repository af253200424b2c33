package rewrite

import "github.com/deepnoodle-ai/optchain/ast"

// synthesize builds the conditional expression that replaces a matched
// chain:
//
//	(root != null && root.a != null && root.a.b != null) ? root.a.b : default
//
// Every prefix of the access path is checked, root first, so the lowered
// expression can never dereference a null intermediate. When the chain
// carries an explicit null default, the final conjunct is omitted: a null
// value at the end of the path is then a present result rather than a miss.
// A chain with no default falls back to the identifier "undefined".
//
// Synthesized nodes borrow the root's position so diagnostics on the output
// tree still point at the original chain. Nodes taken from the input (the
// root, attribute names, index expressions, the default) keep their own
// positions, and the default is spliced in without copying.
func (r *Rewriter) synthesize(c *chain) ast.Expr {
	pos := c.root.Pos()

	// Build every prefix of the access path, from the bare root through the
	// full path. Each prefix extends the previous one, so the prefixes share
	// structure with each other and with the final access expression.
	prefixes := make([]ast.Expr, 0, len(c.segments)+1)
	cur := c.root
	prefixes = append(prefixes, cur)
	for _, seg := range c.segments {
		if seg.attr != nil {
			cur = &ast.GetAttr{X: cur, Period: pos, Attr: seg.attr}
		} else {
			cur = &ast.Index{X: cur, Lbrack: pos, Index: seg.index, Rbrack: pos}
		}
		prefixes = append(prefixes, cur)
	}
	access := cur

	checked := prefixes
	if c.nullDefault && len(prefixes) > 1 {
		checked = prefixes[:len(prefixes)-1]
	}

	var guard ast.Expr
	for _, prefix := range checked {
		conjunct := &ast.Infix{
			X:     prefix,
			OpPos: pos,
			Op:    "!=",
			Y:     &ast.Null{NullPos: pos},
		}
		if guard == nil {
			guard = conjunct
		} else {
			guard = &ast.Infix{X: guard, OpPos: pos, Op: "&&", Y: conjunct}
		}
	}

	deflt := c.deflt
	if deflt == nil {
		deflt = &ast.Ident{NamePos: pos, Name: "undefined"}
	}

	return &ast.Ternary{
		Cond:     guard,
		Question: pos,
		IfTrue:   access,
		Colon:    pos,
		IfFalse:  deflt,
	}
}
