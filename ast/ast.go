package ast

import (
	"fmt"
	"strings"

	"github.com/lagoon-lang/lagoon/token"
)

// Node is the closed set of syntax nodes. Every node is a finite tree:
// a parent exclusively owns its children and no node is reachable from
// two parents.
//
// Nodes carry no lowering logic. The code generator dispatches on the
// concrete type, so adding a variant here breaks compilation at every
// switch that has to learn about it.
type Node interface {
	fmt.Stringer
	Base() token.Token
	// Walk rewrites the tree bottom-up: children first, then the node
	// itself is passed to f.
	Walk(f func(Node) Node) Node
}

// Literal is a numeric literal like "1.0".
type Literal struct {
	token.Token
}

func (l Literal) String() string {
	return parenthesize("literal", word(l.Token.Lexeme)).String()
}

// Value returns the literal's numeric payload.
func (l *Literal) Value() float64 {
	return l.Token.Number()
}

func (l *Literal) Base() token.Token {
	return l.Token
}

func (l *Literal) Walk(f func(Node) Node) Node {
	return f(l)
}

var _ Node = &Literal{}

// Var is a reference to a variable like "a". The name is resolved
// against the symbol table at lowering time, not at parse time.
type Var struct {
	Name token.Token
}

func (v Var) String() string {
	return parenthesize("var", word(v.Name.Lexeme)).String()
}

func (v *Var) Base() token.Token {
	return v.Name
}

func (v *Var) Walk(f func(Node) Node) Node {
	return f(v)
}

var _ Node = &Var{}

// Binary applies an infix operator to two operands.
type Binary struct {
	Op    token.Token
	Left  Node
	Right Node
}

func (b Binary) String() string {
	return parenthesize("binary", b.Left, word(b.Op.Lexeme), b.Right).String()
}

func (b *Binary) Base() token.Token {
	return b.Op
}

func (b *Binary) Walk(f func(Node) Node) Node {
	b.Left = b.Left.Walk(f)
	b.Right = b.Right.Walk(f)

	return f(b)
}

var _ Node = &Binary{}

// Paren is a parenthesized expression.
type Paren struct {
	Expr Node
}

func (p Paren) String() string {
	return parenthesize("paren", p.Expr).String()
}

func (p *Paren) Base() token.Token {
	return p.Expr.Base()
}

func (p *Paren) Walk(f func(Node) Node) Node {
	p.Expr = p.Expr.Walk(f)

	return f(p)
}

var _ Node = &Paren{}

// Call is a function call. Arguments are evaluated left to right.
type Call struct {
	Callee token.Token
	Args   []Node
}

func (c Call) String() string {
	return parenthesize("call", word(c.Callee.Lexeme), concat(c.Args)).String()
}

func (c *Call) Base() token.Token {
	return c.Callee
}

func (c *Call) Walk(f func(Node) Node) Node {
	for i, arg := range c.Args {
		c.Args[i] = arg.Walk(f)
	}

	return f(c)
}

var _ Node = &Call{}

// Prototype declares a function's name and parameter list. It stands
// alone for an extern declaration and heads a FuncDecl for `def`.
type Prototype struct {
	Name   token.Token
	Params []token.Token
}

func (p Prototype) String() string {
	return parenthesize("proto", word(p.Name.Lexeme), concat(words(p.Params))).String()
}

func (p *Prototype) Base() token.Token {
	return p.Name
}

func (p *Prototype) Walk(f func(Node) Node) Node {
	return f(p)
}

var _ Node = &Prototype{}

// FuncDecl is a `def` with a body expression.
type FuncDecl struct {
	Proto *Prototype
	Body  Node
}

func (d FuncDecl) String() string {
	return parenthesize("def", d.Proto, d.Body).String()
}

func (d *FuncDecl) Base() token.Token {
	return d.Proto.Name
}

func (d *FuncDecl) Walk(f func(Node) Node) Node {
	d.Body = d.Body.Walk(f)

	return f(d)
}

var _ Node = &FuncDecl{}

// word renders a token lexeme inside an s-expression dump.
type word string

func (w word) String() string {
	return string(w)
}

func words(tokens []token.Token) []word {
	ws := make([]word, len(tokens))
	for i, t := range tokens {
		ws[i] = word(t.Lexeme)
	}

	return ws
}

func parenthesize(head string, elems ...fmt.Stringer) fmt.Stringer {
	var b strings.Builder
	b.WriteString("(")
	elemsStr := concat(elems).String()
	if head != "" {
		b.WriteString(head)
	}
	if elemsStr != "" {
		if head != "" {
			b.WriteString(" ")
		}
		b.WriteString(elemsStr)
	}
	b.WriteString(")")

	return &b
}

// concat takes a slice of nodes that implement the fmt.Stringer interface.
// It returns a fmt.Stringer that represents a string where each node is separated by a space.
func concat[T fmt.Stringer](elems []T) fmt.Stringer {
	var b strings.Builder
	for i, elem := range elems {
		str := elem.String()
		if str == "" {
			continue
		}
		if i != 0 {
			b.WriteString(" ")
		}
		b.WriteString(str)
	}

	return &b
}
