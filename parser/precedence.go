package parser

import "github.com/deepnoodle-ai/optchain/internal/token"

// Precedence order for operators
const (
	_ int = iota
	LOWEST
	TERNARY     // ? :
	COND        // || or &&
	EQUALS      // == or !=
	LESSGREATER // > or <
	SUM         // + or -
	PRODUCT     // * or /
	PREFIX      // -x or !x
	CALL        // myFunction(x)
	INDEX       // array[index], obj.attr
)

// Precedences for each token type
var precedences = map[token.Type]int{
	token.QUESTION:  TERNARY,
	token.OR:        COND,
	token.AND:       COND,
	token.EQ:        EQUALS,
	token.NOT_EQ:    EQUALS,
	token.LT:        LESSGREATER,
	token.LT_EQUALS: LESSGREATER,
	token.GT:        LESSGREATER,
	token.GT_EQUALS: LESSGREATER,
	token.PLUS:      SUM,
	token.MINUS:     SUM,
	token.ASTERISK:  PRODUCT,
	token.SLASH:     PRODUCT,
	token.LPAREN:    CALL,
	token.PERIOD:    INDEX,
	token.LBRACKET:  INDEX,
}
