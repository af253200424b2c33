package lexer

import (
	"testing"

	"github.com/deepnoodle-ai/optchain/internal/token"
	"github.com/stretchr/testify/require"
)

func tokenize(t *testing.T, input string) []token.Token {
	t.Helper()
	l := New(input)
	var tokens []token.Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

func TestNext(t *testing.T) {
	input := `let total = oc(cart).items[0].price(9.99)`
	want := []struct {
		typ     token.Type
		literal string
	}{
		{token.LET, "let"},
		{token.IDENT, "total"},
		{token.ASSIGN, "="},
		{token.IDENT, "oc"},
		{token.LPAREN, "("},
		{token.IDENT, "cart"},
		{token.RPAREN, ")"},
		{token.PERIOD, "."},
		{token.IDENT, "items"},
		{token.LBRACKET, "["},
		{token.INT, "0"},
		{token.RBRACKET, "]"},
		{token.PERIOD, "."},
		{token.IDENT, "price"},
		{token.LPAREN, "("},
		{token.FLOAT, "9.99"},
		{token.RPAREN, ")"},
		{token.EOF, ""},
	}
	tokens := tokenize(t, input)
	require.Len(t, tokens, len(want))
	for i, w := range want {
		require.Equal(t, w.typ, tokens[i].Type, "token %d", i)
		require.Equal(t, w.literal, tokens[i].Literal, "token %d", i)
	}
}

func TestOperators(t *testing.T) {
	input := `== != <= >= && || => = ! < > + - * / ? : , ;`
	want := []token.Type{
		token.EQ, token.NOT_EQ, token.LT_EQUALS, token.GT_EQUALS,
		token.AND, token.OR, token.ARROW, token.ASSIGN, token.BANG,
		token.LT, token.GT, token.PLUS, token.MINUS, token.ASTERISK,
		token.SLASH, token.QUESTION, token.COLON, token.COMMA,
		token.SEMICOLON, token.EOF,
	}
	tokens := tokenize(t, input)
	require.Len(t, tokens, len(want))
	for i, typ := range want {
		require.Equal(t, typ, tokens[i].Type, "token %d", i)
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		input string
		typ   token.Type
	}{
		{"let", token.LET},
		{"const", token.CONST},
		{"true", token.TRUE},
		{"false", token.FALSE},
		{"null", token.NULL},
		{"letter", token.IDENT},
		{"nullable", token.IDENT},
		{"_private", token.IDENT},
		{"$el", token.IDENT},
	}
	for _, tt := range tests {
		tokens := tokenize(t, tt.input)
		require.Len(t, tokens, 2)
		require.Equal(t, tt.typ, tokens[0].Type)
		require.Equal(t, tt.input, tokens[0].Literal)
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		input string
		value string
	}{
		{`"hello"`, "hello"},
		{`'hello'`, "hello"},
		{`""`, ""},
		{`"it's"`, "it's"},
		{`'say "hi"'`, `say "hi"`},
		{`"a\nb"`, "a\nb"},
		{`"a\tb"`, "a\tb"},
		{`"a\\b"`, `a\b`},
		{`"a\"b"`, `a"b`},
		{`'a\'b'`, "a'b"},
	}
	for _, tt := range tests {
		tokens := tokenize(t, tt.input)
		require.Len(t, tokens, 2)
		require.Equal(t, token.Type(token.STRING), tokens[0].Type)
		require.Equal(t, tt.value, tokens[0].Literal)
	}
}

func TestStringErrors(t *testing.T) {
	tests := []struct {
		input   string
		wantMsg string
	}{
		{`"abc`, "unterminated string literal"},
		{`'abc`, "unterminated string literal"},
		{"\"abc\ndef\"", "unterminated string literal"},
		{`"a\qb"`, "invalid escape sequence"},
		{`"abc\`, "unterminated string literal"},
	}
	for _, tt := range tests {
		l := New(tt.input)
		_, err := l.Next()
		require.Error(t, err)
		require.Contains(t, err.Error(), tt.wantMsg)
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input   string
		typ     token.Type
		literal string
	}{
		{"0", token.INT, "0"},
		{"12345", token.INT, "12345"},
		{"3.14", token.FLOAT, "3.14"},
		{"0.5", token.FLOAT, "0.5"},
	}
	for _, tt := range tests {
		tokens := tokenize(t, tt.input)
		require.Equal(t, tt.typ, tokens[0].Type)
		require.Equal(t, tt.literal, tokens[0].Literal)
	}

	// A trailing period is an access, not part of the number
	tokens := tokenize(t, "1.x")
	require.Equal(t, token.Type(token.INT), tokens[0].Type)
	require.Equal(t, token.Type(token.PERIOD), tokens[1].Type)
	require.Equal(t, token.Type(token.IDENT), tokens[2].Type)
}

func TestComments(t *testing.T) {
	tokens := tokenize(t, "1 // one\n2")
	want := []token.Type{token.INT, token.NEWLINE, token.INT, token.EOF}
	require.Len(t, tokens, len(want))
	for i, typ := range want {
		require.Equal(t, typ, tokens[i].Type)
	}

	tokens = tokenize(t, "1 /* mid */ + 2")
	want = []token.Type{token.INT, token.PLUS, token.INT, token.EOF}
	require.Len(t, tokens, len(want))
	for i, typ := range want {
		require.Equal(t, typ, tokens[i].Type)
	}

	l := New("/* never closed")
	_, err := l.Next()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unterminated comment")
}

func TestIllegalCharacter(t *testing.T) {
	l := New("@")
	tok, err := l.Next()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected character")
	require.Equal(t, token.Type(token.ILLEGAL), tok.Type)
}

func TestNewlines(t *testing.T) {
	tokens := tokenize(t, "a\nb")
	want := []token.Type{token.IDENT, token.NEWLINE, token.IDENT, token.EOF}
	require.Len(t, tokens, len(want))
	for i, typ := range want {
		require.Equal(t, typ, tokens[i].Type)
	}
}

func TestPositions(t *testing.T) {
	tokens := tokenize(t, "ab\ncd == e")

	ab := tokens[0]
	require.Equal(t, 1, ab.StartPosition.LineNumber())
	require.Equal(t, 1, ab.StartPosition.ColumnNumber())

	newline := tokens[1]
	require.Equal(t, 1, newline.StartPosition.LineNumber())
	require.Equal(t, 3, newline.StartPosition.ColumnNumber())

	cd := tokens[2]
	require.Equal(t, 2, cd.StartPosition.LineNumber())
	require.Equal(t, 1, cd.StartPosition.ColumnNumber())

	eq := tokens[3]
	require.Equal(t, 2, eq.StartPosition.LineNumber())
	require.Equal(t, 4, eq.StartPosition.ColumnNumber())
	require.Equal(t, 5, eq.EndPosition.ColumnNumber())
}

func TestGetLineText(t *testing.T) {
	l := New("first line\nsecond line")
	var tokens []token.Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		if tok.Type == token.EOF {
			break
		}
		tokens = append(tokens, tok)
	}
	// first, line, NEWLINE, second, line
	require.Len(t, tokens, 5)
	require.Equal(t, "first line", l.GetLineText(tokens[0]))
	require.Equal(t, "second line", l.GetLineText(tokens[3]))
}

func TestFilename(t *testing.T) {
	l := New("x")
	l.SetFilename("main.js")
	require.Equal(t, "main.js", l.Filename())

	tok, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, "main.js", tok.StartPosition.File)
}
