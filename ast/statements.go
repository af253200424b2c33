package ast

import (
	"bytes"
	"strings"

	"github.com/deepnoodle-ai/optchain/internal/token"
)

// Program is the root node of a parsed source file. Its statements are
// either Var declarations or bare expressions.
type Program struct {
	Stmts []Node
}

func (p *Program) Pos() token.Position {
	if len(p.Stmts) > 0 {
		return p.Stmts[0].Pos()
	}
	return token.Position{}
}

func (p *Program) End() token.Position {
	if len(p.Stmts) > 0 {
		return p.Stmts[len(p.Stmts)-1].End()
	}
	return token.Position{}
}

func (p *Program) String() string {
	stmts := make([]string, 0, len(p.Stmts))
	for _, s := range p.Stmts {
		stmts = append(stmts, s.String())
	}
	return strings.Join(stmts, "\n")
}

// Var is a statement that declares a new variable with an initial value.
// This is used for "let x = value" and "const x = value" statements.
type Var struct {
	DeclPos token.Position // position of "let" or "const" keyword
	Keyword string         // "let" or "const"
	Name    *Ident         // name of the variable being declared
	Value   Expr           // initial value of the variable
}

func (s *Var) Pos() token.Position { return s.DeclPos }
func (s *Var) End() token.Position { return s.Value.End() }

func (s *Var) String() string {
	var out bytes.Buffer
	out.WriteString(s.Keyword)
	out.WriteString(" ")
	out.WriteString(s.Name.Name)
	out.WriteString(" = ")
	out.WriteString(s.Value.String())
	return out.String()
}
