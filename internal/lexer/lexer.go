// Package lexer converts source code text into a stream of tokens.
package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/deepnoodle-ai/optchain/internal/token"
)

// Lexer produces tokens from an input string. Create one with New and then
// call Next repeatedly until an EOF token or an error is returned.
type Lexer struct {
	// input being lexed, as runes
	input []rune

	// index of the next unread rune
	pos int

	// the rune under examination
	ch rune

	// 0-indexed line of the current rune
	line int

	// 0-indexed column of the current rune
	column int

	// optional name of the input file
	filename string
}

// New returns a Lexer for the given input string.
func New(input string) *Lexer {
	l := &Lexer{input: []rune(input), column: -1}
	l.readChar()
	return l
}

// SetFilename sets the name of the file being lexed, which is used in
// token positions and error messages.
func (l *Lexer) SetFilename(filename string) {
	l.filename = filename
}

// Filename returns the name of the file being lexed, if one was set.
func (l *Lexer) Filename() string {
	return l.filename
}

// GetLineText returns the full line of text containing the given token.
func (l *Lexer) GetLineText(tok token.Token) string {
	lines := strings.Split(string(l.input), "\n")
	if n := tok.StartPosition.Line; n >= 0 && n < len(lines) {
		return lines[n]
	}
	return ""
}

// Next returns the next token in the input. After the input is exhausted,
// every subsequent call returns an EOF token.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()

	// Comments are discarded here rather than surfaced as tokens
	for l.ch == '/' && (l.peekChar() == '/' || l.peekChar() == '*') {
		if err := l.skipComment(); err != nil {
			return l.newToken(token.ILLEGAL, ""), err
		}
		l.skipWhitespace()
	}

	start := l.position()
	switch l.ch {
	case 0:
		return token.Token{Type: token.EOF, StartPosition: start, EndPosition: start}, nil
	case '\n':
		tok := l.newToken(token.NEWLINE, "\n")
		l.readChar()
		return tok, nil
	case '=':
		if l.peekChar() == '=' {
			return l.newTwoCharToken(token.EQ), nil
		}
		if l.peekChar() == '>' {
			return l.newTwoCharToken(token.ARROW), nil
		}
		return l.newSingleCharToken(token.ASSIGN), nil
	case '!':
		if l.peekChar() == '=' {
			return l.newTwoCharToken(token.NOT_EQ), nil
		}
		return l.newSingleCharToken(token.BANG), nil
	case '<':
		if l.peekChar() == '=' {
			return l.newTwoCharToken(token.LT_EQUALS), nil
		}
		return l.newSingleCharToken(token.LT), nil
	case '>':
		if l.peekChar() == '=' {
			return l.newTwoCharToken(token.GT_EQUALS), nil
		}
		return l.newSingleCharToken(token.GT), nil
	case '&':
		if l.peekChar() == '&' {
			return l.newTwoCharToken(token.AND), nil
		}
		return l.illegalToken(start)
	case '|':
		if l.peekChar() == '|' {
			return l.newTwoCharToken(token.OR), nil
		}
		return l.illegalToken(start)
	case '+':
		return l.newSingleCharToken(token.PLUS), nil
	case '-':
		return l.newSingleCharToken(token.MINUS), nil
	case '*':
		return l.newSingleCharToken(token.ASTERISK), nil
	case '/':
		return l.newSingleCharToken(token.SLASH), nil
	case ',':
		return l.newSingleCharToken(token.COMMA), nil
	case ';':
		return l.newSingleCharToken(token.SEMICOLON), nil
	case ':':
		return l.newSingleCharToken(token.COLON), nil
	case '?':
		return l.newSingleCharToken(token.QUESTION), nil
	case '.':
		return l.newSingleCharToken(token.PERIOD), nil
	case '(':
		return l.newSingleCharToken(token.LPAREN), nil
	case ')':
		return l.newSingleCharToken(token.RPAREN), nil
	case '[':
		return l.newSingleCharToken(token.LBRACKET), nil
	case ']':
		return l.newSingleCharToken(token.RBRACKET), nil
	case '"', '\'':
		return l.readString(l.ch)
	}
	if isLetter(l.ch) {
		literal := l.readIdentifier()
		end := l.position()
		return token.Token{
			Type:          token.LookupIdentifier(literal),
			Literal:       literal,
			StartPosition: start,
			EndPosition:   end,
		}, nil
	}
	if isDigit(l.ch) {
		return l.readNumber()
	}
	return l.illegalToken(start)
}

func (l *Lexer) illegalToken(start token.Position) (token.Token, error) {
	literal := string(l.ch)
	l.readChar()
	return token.Token{
			Type:          token.ILLEGAL,
			Literal:       literal,
			StartPosition: start,
			EndPosition:   start,
		}, fmt.Errorf("unexpected character %q on line %d",
			literal, start.LineNumber())
}

// position returns the position of the rune under examination.
func (l *Lexer) position() token.Position {
	return token.Position{
		Char:   l.pos - 1,
		Line:   l.line,
		Column: l.column,
		File:   l.filename,
	}
}

func (l *Lexer) newToken(typ token.Type, literal string) token.Token {
	start := l.position()
	end := start
	if len(literal) > 1 {
		end = start.Advance(len(literal) - 1)
	}
	return token.Token{Type: typ, Literal: literal, StartPosition: start, EndPosition: end}
}

func (l *Lexer) newSingleCharToken(typ token.Type) token.Token {
	tok := l.newToken(typ, string(l.ch))
	l.readChar()
	return tok
}

func (l *Lexer) newTwoCharToken(typ token.Type) token.Token {
	start := l.position()
	literal := string(l.ch)
	l.readChar()
	literal += string(l.ch)
	end := l.position()
	l.readChar()
	return token.Token{Type: typ, Literal: literal, StartPosition: start, EndPosition: end}
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
	if l.pos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.pos]
	}
	l.pos++
}

func (l *Lexer) peekChar() rune {
	if l.pos < len(l.input) {
		return l.input[l.pos]
	}
	return 0
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

// skipComment consumes a // or /* */ comment. The trailing newline of a
// line comment is left in place so it still terminates the statement.
func (l *Lexer) skipComment() error {
	l.readChar() // move past '/'
	if l.ch == '/' {
		for l.ch != '\n' && l.ch != 0 {
			l.readChar()
		}
		return nil
	}
	line := l.line
	l.readChar() // move past '*'
	for {
		if l.ch == 0 {
			return fmt.Errorf("unterminated comment starting on line %d", line+1)
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return nil
		}
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	var sb strings.Builder
	for isLetter(l.ch) || isDigit(l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return sb.String()
}

func (l *Lexer) readNumber() (token.Token, error) {
	start := l.position()
	var sb strings.Builder
	typ := token.Type(token.INT)
	for isDigit(l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		typ = token.FLOAT
		sb.WriteRune(l.ch)
		l.readChar()
		for isDigit(l.ch) {
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}
	literal := sb.String()
	return token.Token{
		Type:          typ,
		Literal:       literal,
		StartPosition: start,
		EndPosition:   start.Advance(len(literal) - 1),
	}, nil
}

// readString lexes a string literal delimited by the given quote character.
// The token literal holds the unquoted, unescaped string value.
func (l *Lexer) readString(quote rune) (token.Token, error) {
	start := l.position()
	l.readChar() // move past the opening quote
	var sb strings.Builder
	for l.ch != quote {
		if l.ch == 0 || l.ch == '\n' {
			return token.Token{Type: token.ILLEGAL, StartPosition: start, EndPosition: start},
				fmt.Errorf("unterminated string literal on line %d", start.LineNumber())
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case '\\', '\'', '"':
				sb.WriteRune(l.ch)
			case 0:
				return token.Token{Type: token.ILLEGAL, StartPosition: start, EndPosition: start},
					fmt.Errorf("unterminated string literal on line %d", start.LineNumber())
			default:
				return token.Token{Type: token.ILLEGAL, StartPosition: start, EndPosition: start},
					fmt.Errorf("invalid escape sequence %q in string literal on line %d",
						"\\"+string(l.ch), start.LineNumber())
			}
			l.readChar()
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	end := l.position()
	l.readChar() // move past the closing quote
	return token.Token{
		Type:          token.STRING,
		Literal:       sb.String(),
		StartPosition: start,
		EndPosition:   end,
	}, nil
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_' || ch == '$'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
