// Package dsl implements the declarative transition-table language: a
// textual grammar of clauses like
//
//	name: Door,
//	transitions {
//	    *Closed + Open = Opened,
//	    Opened + Close = Closed,
//	    _ + Lock = Locked,
//	}
//
// parsed into an AST and compiled into a machine.Spec. A fluent Builder
// produces the same AST programmatically.
package dsl

import "fmt"

// TokenType represents the type of a lexer token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenColon      // :
	TokenComma      // ,
	TokenLBracket   // [
	TokenRBracket   // ]
	TokenLBrace     // {
	TokenRBrace     // }
	TokenPlus       // +
	TokenEq         // =
	TokenPipe       // |
	TokenStar       // *
	TokenUnderscore // _
	TokenIllegal
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return "identifier"
	case TokenColon:
		return "':'"
	case TokenComma:
		return "','"
	case TokenLBracket:
		return "'['"
	case TokenRBracket:
		return "']'"
	case TokenLBrace:
		return "'{'"
	case TokenRBrace:
		return "'}'"
	case TokenPlus:
		return "'+'"
	case TokenEq:
		return "'='"
	case TokenPipe:
		return "'|'"
	case TokenStar:
		return "'*'"
	case TokenUnderscore:
		return "'_'"
	}
	return "illegal token"
}

// Token represents a single token from the lexer.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int
}

func (t Token) String() string {
	return fmt.Sprintf("Token{%v, %q, %d}", t.Type, t.Literal, t.Pos)
}

// Lexer tokenizes machine definition input.
type Lexer struct {
	input   string
	pos     int
	readPos int
	ch      byte
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipComment() {
	for l.ch != 0 && l.ch != '\n' {
		l.readChar()
	}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()
		if l.ch == '/' && l.peekChar() == '/' {
			l.skipComment()
			continue
		}
		break
	}

	pos := l.pos

	switch l.ch {
	case 0:
		return Token{Type: TokenEOF, Pos: pos}
	case ':':
		l.readChar()
		return Token{Type: TokenColon, Literal: ":", Pos: pos}
	case ',':
		l.readChar()
		return Token{Type: TokenComma, Literal: ",", Pos: pos}
	case '[':
		l.readChar()
		return Token{Type: TokenLBracket, Literal: "[", Pos: pos}
	case ']':
		l.readChar()
		return Token{Type: TokenRBracket, Literal: "]", Pos: pos}
	case '{':
		l.readChar()
		return Token{Type: TokenLBrace, Literal: "{", Pos: pos}
	case '}':
		l.readChar()
		return Token{Type: TokenRBrace, Literal: "}", Pos: pos}
	case '+':
		l.readChar()
		return Token{Type: TokenPlus, Literal: "+", Pos: pos}
	case '=':
		l.readChar()
		return Token{Type: TokenEq, Literal: "=", Pos: pos}
	case '|':
		l.readChar()
		return Token{Type: TokenPipe, Literal: "|", Pos: pos}
	case '*':
		l.readChar()
		return Token{Type: TokenStar, Literal: "*", Pos: pos}
	}

	if isIdentStart(l.ch) {
		lit := l.readIdent()
		if lit == "_" {
			return Token{Type: TokenUnderscore, Literal: "_", Pos: pos}
		}
		return Token{Type: TokenIdent, Literal: lit, Pos: pos}
	}

	tok := Token{Type: TokenIllegal, Literal: string(l.ch), Pos: pos}
	l.readChar()
	return tok
}

func (l *Lexer) readIdent() string {
	start := l.pos
	for isIdentChar(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}

// Tokenize returns all tokens from the input.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return tokens
}
