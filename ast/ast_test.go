package ast_test

import (
	"testing"

	"github.com/lagoon-lang/lagoon/ast"
	"github.com/lagoon-lang/lagoon/token"
)

func num(text string, v float64) *ast.Literal {
	return &ast.Literal{Token: token.Token{Kind: token.NUMBER, Lexeme: text, Line: 1, Literal: v}}
}

func TestString(t *testing.T) {
	t.Parallel()

	minus := token.Token{Kind: token.MINUS, Lexeme: "-", Line: 1}
	node := &ast.Binary{
		Op:    minus,
		Left:  &ast.Binary{Op: minus, Left: num("9", 9), Right: num("3", 3)},
		Right: num("2", 2),
	}

	want := "(binary (binary (literal 9) - (literal 3)) - (literal 2))"
	if got := node.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}

func TestWalkBottomUp(t *testing.T) {
	t.Parallel()

	callee := token.Token{Kind: token.IDENT, Lexeme: "f", Line: 1}
	node := &ast.Call{Callee: callee, Args: []ast.Node{
		&ast.Paren{Expr: num("1", 1)},
	}}

	var visited []string
	node.Walk(func(n ast.Node) ast.Node {
		visited = append(visited, n.String())

		return n
	})

	want := []string{"(literal 1)", "(paren (literal 1))", "(call f (paren (literal 1)))"}
	if len(visited) != len(want) {
		t.Fatalf("Walk visited %d nodes, want %d", len(visited), len(want))
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("Walk visit %d = %s, want %s", i, visited[i], want[i])
		}
	}
}
