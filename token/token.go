package token

import "fmt"

//go:generate go run golang.org/x/tools/cmd/stringer@v0.13.0 -type=Kind
type Kind int

const (
	EOF Kind = iota

	// Single-character tokens.
	LEFTPAREN
	RIGHTPAREN
	COMMA
	SEMICOLON
	PLUS
	MINUS

	// Literals and identifiers.
	IDENT
	NUMBER

	// Keywords.
	DEF
	EXTERN

	// Anything the scanner could not classify.
	UNKNOWN
)

type Token struct {
	Kind    Kind
	Lexeme  string
	Line    int
	Literal any
}

// Number returns the numeric payload of a NUMBER token.
func (t Token) Number() float64 {
	v, ok := t.Literal.(float64)
	if !ok {
		panic(fmt.Sprintf("token %v has no numeric payload", t))
	}

	return v
}

func (t Token) String() string {
	return fmt.Sprintf("{%v, %q, %d, %v}", t.Kind, t.Lexeme, t.Line, t.Literal)
}

func (t Token) Base() Token {
	return t
}
