package ast

// Visitor defines the interface for AST traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil children of node.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	// Walk children based on node type
	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Stmts {
			Walk(v, stmt)
		}
	case *Var:
		if n.Name != nil {
			Walk(v, n.Name)
		}
		if n.Value != nil {
			Walk(v, n.Value)
		}

	// Expressions
	case *Ident:
		// No children
	case *Int:
		// No children
	case *Float:
		// No children
	case *Bool:
		// No children
	case *Null:
		// No children
	case *String:
		// No children
	case *Prefix:
		if n.X != nil {
			Walk(v, n.X)
		}
	case *Infix:
		if n.X != nil {
			Walk(v, n.X)
		}
		if n.Y != nil {
			Walk(v, n.Y)
		}
	case *Ternary:
		if n.Cond != nil {
			Walk(v, n.Cond)
		}
		if n.IfTrue != nil {
			Walk(v, n.IfTrue)
		}
		if n.IfFalse != nil {
			Walk(v, n.IfFalse)
		}
	case *Call:
		if n.Fun != nil {
			Walk(v, n.Fun)
		}
		for _, arg := range n.Args {
			Walk(v, arg)
		}
	case *GetAttr:
		if n.X != nil {
			Walk(v, n.X)
		}
	case *Index:
		if n.X != nil {
			Walk(v, n.X)
		}
		if n.Index != nil {
			Walk(v, n.Index)
		}
	case *Arrow:
		for _, param := range n.Params {
			Walk(v, param)
		}
		if n.Body != nil {
			Walk(v, n.Body)
		}
	case *List:
		for _, item := range n.Items {
			Walk(v, item)
		}
	}
}

// Inspect traverses an AST in depth-first order. It calls f(node) for each
// node; if f returns true, Inspect invokes f recursively for each of the
// non-nil children of node.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}
