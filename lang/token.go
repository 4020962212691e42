// Package lang is the bundled front end: a lexer and recursive-descent
// parser for the concrete surface language, producing the class/statement/
// expression graphs the cesk package's stepper consumes.
package lang

// TokenType classifies a lexical token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIllegal

	// Literals and names.
	TokenIdent    // bare identifier: class/method/field/label name
	TokenRegister // $-prefixed register name
	TokenInt      // decimal integer literal

	// Keywords.
	TokenClass
	TokenExtends
	TokenVar
	TokenDef
	TokenSkip
	TokenLabel
	TokenGoto
	TokenIf
	TokenReturn
	TokenPushHandler
	TokenPopHandler
	TokenThrow
	TokenMoveException
	TokenPrint
	TokenNew
	TokenInvoke
	TokenSuper
	TokenThis
	TokenTrue
	TokenFalse
	TokenNull
	TokenVoid
	TokenInstanceof

	// Operators and delimiters.
	TokenPlus     // +
	TokenMinus    // -
	TokenStar     // *
	TokenEquals   // = (the binary EQ atomic op)
	TokenAssign   // :=
	TokenLParen   // (
	TokenRParen   // )
	TokenLBrace   // {
	TokenRBrace   // }
	TokenColon    // :
	TokenSemi     // ;
	TokenComma    // ,
	TokenDot      // .
)

var tokenNames = map[TokenType]string{
	TokenEOF:           "EOF",
	TokenIllegal:       "ILLEGAL",
	TokenIdent:         "IDENT",
	TokenRegister:      "REGISTER",
	TokenInt:           "INT",
	TokenClass:         "class",
	TokenExtends:       "extends",
	TokenVar:           "var",
	TokenDef:           "def",
	TokenSkip:          "skip",
	TokenLabel:         "label",
	TokenGoto:          "goto",
	TokenIf:            "if",
	TokenReturn:        "return",
	TokenPushHandler:   "pushHandler",
	TokenPopHandler:    "popHandler",
	TokenThrow:         "throw",
	TokenMoveException: "moveException",
	TokenPrint:         "print",
	TokenNew:           "new",
	TokenInvoke:        "invoke",
	TokenSuper:         "super",
	TokenThis:          "this",
	TokenTrue:          "true",
	TokenFalse:         "false",
	TokenNull:          "null",
	TokenVoid:          "void",
	TokenInstanceof:    "instanceof",
	TokenPlus:          "+",
	TokenMinus:         "-",
	TokenStar:          "*",
	TokenEquals:        "=",
	TokenAssign:        ":=",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenColon:         ":",
	TokenSemi:          ";",
	TokenComma:         ",",
	TokenDot:           ".",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token is one lexical unit: its type, the source text it was scanned from,
// and its source position for error messages.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

var keywords = map[string]TokenType{
	"class":         TokenClass,
	"extends":       TokenExtends,
	"var":           TokenVar,
	"def":           TokenDef,
	"skip":          TokenSkip,
	"label":         TokenLabel,
	"goto":          TokenGoto,
	"if":            TokenIf,
	"return":        TokenReturn,
	"pushHandler":   TokenPushHandler,
	"popHandler":    TokenPopHandler,
	"throw":         TokenThrow,
	"moveException": TokenMoveException,
	"print":         TokenPrint,
	"new":           TokenNew,
	"invoke":        TokenInvoke,
	"super":         TokenSuper,
	"this":          TokenThis,
	"true":          TokenTrue,
	"false":         TokenFalse,
	"null":          TokenNull,
	"void":          TokenVoid,
	"instanceof":    TokenInstanceof,
}

// LookupIdent returns the keyword token type for ident, or TokenIdent if it
// names nothing reserved.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdent
}
