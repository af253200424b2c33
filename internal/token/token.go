// Package token defines language keywords and tokens used when lexing source code.
package token

// Type describes the type of a token as a string.
type Type string

// Position points to a particular location in an input string.
type Position struct {
	Char   int
	Line   int
	Column int
	File   string
}

// Advance returns the position n characters after this one, on the same line.
func (p Position) Advance(n int) Position {
	p.Char += n
	p.Column += n
	return p
}

// LineNumber returns the 1-indexed line number for this position in the input.
func (p Position) LineNumber() int {
	return p.Line + 1
}

// ColumnNumber returns the 1-indexed column number for this position in the input.
func (p Position) ColumnNumber() int {
	return p.Column + 1
}

// Token represents one token lexed from the input source code.
type Token struct {
	Type          Type
	Literal       string
	StartPosition Position
	EndPosition   Position
}

// Token types
const (
	AND       = "&&"
	ARROW     = "=>"
	ASSIGN    = "="
	ASTERISK  = "*"
	BANG      = "!"
	COLON     = ":"
	COMMA     = ","
	CONST     = "CONST"
	EOF       = "EOF"
	EQ        = "=="
	FALSE     = "FALSE"
	FLOAT     = "FLOAT"
	GT        = ">"
	GT_EQUALS = ">="
	IDENT     = "IDENT"
	ILLEGAL   = "ILLEGAL"
	INT       = "INT"
	LBRACKET  = "["
	LET       = "LET"
	LPAREN    = "("
	LT        = "<"
	LT_EQUALS = "<="
	MINUS     = "-"
	NEWLINE   = "EOL"
	NOT_EQ    = "!="
	NULL      = "null"
	OR        = "||"
	PERIOD    = "."
	PLUS      = "+"
	QUESTION  = "?"
	RBRACKET  = "]"
	RPAREN    = ")"
	SEMICOLON = ";"
	SLASH     = "/"
	STRING    = "STRING"
	TRUE      = "TRUE"
)

// Reserved keywords
var keywords = map[string]Type{
	"const": CONST,
	"false": FALSE,
	"let":   LET,
	"null":  NULL,
	"true":  TRUE,
}

// LookupIdentifier used to determinate whether identifier is keyword nor not
func LookupIdentifier(identifier string) Type {
	if tok, ok := keywords[identifier]; ok {
		return tok
	}
	return IDENT
}
