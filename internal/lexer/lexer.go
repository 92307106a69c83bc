package lexer

import (
	"errors"
	"fmt"

	"github.com/xirelogy/go-pratt/internal/token"
)

// Lexer converts source text into a stream of tokens.
type Lexer struct {
	input   string
	pos     int  // current position in bytes
	readPos int  // next read position
	ch      byte // current char
	line    int
	column  int
}

var (
	ErrUnterminatedString = errors.New("unterminated string")
	ErrUnexpectedChar     = errors.New("unexpected character")
)

// Error reports a lexical failure (unterminated string or unexpected character).
type Error struct {
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d:%d: %s", e.Line, e.Column, e.Message)
}

// Unwrap exposes the sentinel cause for errors.Is.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a lexer for the provided source text.
func New(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
	}
	l.readChar()
	return l
}

// Tokenize scans the whole input. The returned slice always ends with an EOF
// token; scanning stops at the first illegal token.
func Tokenize(input string) ([]token.Token, error) {
	l := New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.Illegal {
			return nil, illegalError(tok)
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

func illegalError(tok token.Token) *Error {
	err := &Error{
		Line:    tok.Pos.Line,
		Column:  tok.Pos.Column,
		Message: fmt.Sprintf("unexpected character %q", tok.Literal),
		Err:     ErrUnexpectedChar,
	}
	if len(tok.Literal) > 0 && tok.Literal[0] == '"' {
		err.Message = ErrUnterminatedString.Error()
		err.Err = ErrUnterminatedString
	}
	return err
}

// NextToken returns the next token from the input. Once the input is
// exhausted it keeps returning EOF.
func (l *Lexer) NextToken() token.Token {
	for {
		l.skipWhitespace()

		if l.ch == 0 && l.pos >= len(l.input) {
			return l.makeToken(token.EOF, l.pos)
		}

		if l.ch == '/' && l.peekChar() == '/' {
			l.skipLineComment()
			continue
		}

		start := l.pos
		tok := l.makeToken(token.Illegal, start)
		switch l.ch {
		case '(':
			tok.Type = token.LParen
		case ')':
			tok.Type = token.RParen
		case '{':
			tok.Type = token.LBrace
		case '}':
			tok.Type = token.RBrace
		case ',':
			tok.Type = token.Comma
		case '.':
			tok.Type = token.Dot
		case ';':
			tok.Type = token.Semicolon
		case '+':
			tok.Type = token.Plus
		case '-':
			tok.Type = token.Minus
		case '*':
			tok.Type = token.Star
		case '/':
			tok.Type = token.Slash
		case '=':
			tok.Type = l.either('=', token.Equal, token.Assign)
		case '!':
			tok.Type = l.either('=', token.NotEqual, token.Bang)
		case '<':
			tok.Type = l.either('=', token.LessEqual, token.Less)
		case '>':
			tok.Type = l.either('=', token.GreaterEqual, token.Greater)
		case '"':
			return l.readString(tok)
		default:
			if isLetter(l.ch) {
				return l.readIdentifier(tok)
			}
			if isDigit(l.ch) {
				return l.readNumber(tok)
			}
		}
		l.readChar()
		tok.Literal = l.input[start:l.pos]
		return tok
	}
}

// either consumes the next char when it equals next and reports which type applies.
func (l *Lexer) either(next byte, two, one token.Type) token.Type {
	if l.peekChar() == next {
		l.readChar()
		return two
	}
	return one
}

func (l *Lexer) makeToken(t token.Type, start int) token.Token {
	return token.Token{
		Type: t,
		Pos: token.Position{
			Offset: start,
			Line:   l.line,
			Column: l.column,
		},
	}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readChar()
	}
}

func (l *Lexer) skipLineComment() {
	for l.ch != 0 && l.ch != '\n' {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier(tok token.Token) token.Token {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	tok.Literal = l.input[start:l.pos]
	tok.Type = token.LookupIdent(tok.Literal)
	return tok
}

func (l *Lexer) readNumber(tok token.Token) token.Token {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	tok.Type = token.Number
	tok.Literal = l.input[start:l.pos]
	return tok
}

// readString scans a double-quoted string. Strings may span lines and have
// no escape sequences.
func (l *Lexer) readString(tok token.Token) token.Token {
	start := l.pos
	for {
		l.readChar()
		if l.ch == 0 && l.pos >= len(l.input) {
			tok.Type = token.Illegal
			tok.Literal = l.input[start:]
			return tok
		}
		if l.ch == '"' {
			l.readChar()
			break
		}
	}
	tok.Type = token.String
	tok.Literal = l.input[start:l.pos]
	return tok
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		l.pos = len(l.input)
		l.readPos = len(l.input) + 1
		l.ch = 0
		return
	}

	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.ch = l.input[l.readPos]
	l.pos = l.readPos
	l.readPos++
	l.column++
}
