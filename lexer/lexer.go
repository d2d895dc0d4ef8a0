package lexer

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/lagoon-lang/lagoon/token"
)

// Lexer scans a source buffer one token at a time.
// It keeps no token history; the only state is the cursor position.
type Lexer struct {
	source string

	start   int // start of current lexeme
	current int // current position in source
	line    int // current line number
}

func New(source string) *Lexer {
	return &Lexer{
		source:  source,
		start:   0,
		current: 0,
		line:    1,
	}
}

// Next scans and returns the next token. Once the end of input is
// reached, every further call returns an EOF token.
func (l *Lexer) Next() (token.Token, error) {
	l.skipBlanks()
	l.start = l.current

	if l.isAtEnd() {
		return l.newToken(token.EOF, nil), nil
	}

	char := l.advance()

	if k, ok := getReservedSymbol(char); ok {
		return l.newToken(k, nil), nil
	}
	if isDigit(char) || char == '.' {
		return l.number()
	}
	if isAlpha(char) {
		return l.identifier(), nil
	}

	// Unscannable characters become UNKNOWN tokens carrying the
	// character; rejecting them is the parser's job.
	return l.newToken(token.UNKNOWN, nil), nil
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return '\x00'
	}
	runeValue, _ := utf8.DecodeRuneInString(l.source[l.current:])

	return runeValue
}

func (l *Lexer) advance() rune {
	runeValue, width := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += width

	return runeValue
}

func (l *Lexer) newToken(kind token.Kind, literal any) token.Token {
	text := l.source[l.start:l.current]

	return token.Token{Kind: kind, Lexeme: text, Line: l.line, Literal: literal}
}

// skipBlanks consumes whitespace and comments. Comments run from `#`
// to the end of the line and are invisible to the parser.
func (l *Lexer) skipBlanks() {
	for !l.isAtEnd() {
		switch l.peek() {
		case ' ', '\r', '\t':
			l.advance()
		case '\n':
			l.line++
			l.advance()
		case '#':
			for !l.isAtEnd() && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

type MalformedNumberError struct {
	Line int
	Text string
}

func (e MalformedNumberError) Error() string {
	return fmt.Sprintf("malformed number literal %q at line %d", e.Text, e.Line)
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func (l *Lexer) number() (token.Token, error) {
	for isDigit(l.peek()) || l.peek() == '.' {
		l.advance()
	}

	text := l.source[l.start:l.current]
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token.Token{}, MalformedNumberError{Line: l.line, Text: text}
	}

	return l.newToken(token.NUMBER, value), nil
}

func isAlpha(c rune) bool {
	return unicode.IsLetter(c)
}

func (l *Lexer) identifier() token.Token {
	for isAlpha(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}

	value := l.source[l.start:l.current]

	if k, ok := getKeyword(value); ok {
		return l.newToken(k, nil)
	}

	return l.newToken(token.IDENT, nil)
}

func getKeyword(str string) (token.Kind, bool) {
	keywords := map[string]token.Kind{
		"def":    token.DEF,
		"extern": token.EXTERN,
	}

	if k, ok := keywords[str]; ok {
		return k, true
	}

	return token.IDENT, false
}

func getReservedSymbol(char rune) (token.Kind, bool) {
	reservedSymbols := map[rune]token.Kind{
		'(': token.LEFTPAREN,
		')': token.RIGHTPAREN,
		',': token.COMMA,
		';': token.SEMICOLON,
		'+': token.PLUS,
		'-': token.MINUS,
	}
	if k, ok := reservedSymbols[char]; ok {
		return k, true
	}

	return token.UNKNOWN, false
}
