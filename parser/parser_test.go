package parser_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lagoon-lang/lagoon/ast"
	"github.com/lagoon-lang/lagoon/diag"
	"github.com/lagoon-lang/lagoon/lexer"
	"github.com/lagoon-lang/lagoon/parser"
	"github.com/lagoon-lang/lagoon/token"
)

func TestParseFromTestData(t *testing.T) {
	t.Parallel()
	s, err := os.ReadFile("../testdata/testcase.yaml")
	if err != nil {
		panic(err)
	}
	testcases := diag.ReadTestData(s)
	for _, testcase := range testcases {
		expected, ok := testcase.Expected["parser"]
		if !ok {
			continue
		}

		nodes, err := parseAll(testcase.Input)
		if err != nil {
			t.Errorf("Parse %s returned error: %v", testcase.Label, err)
			continue
		}

		var b strings.Builder
		for _, node := range nodes {
			b.WriteString(node.String())
			b.WriteString("\n")
		}

		if diff := cmp.Diff(expected, b.String()); diff != "" {
			t.Errorf("Parse %s mismatch (-want +got):\n%s", testcase.Label, diff)
		}
	}
}

// parseAll reads top-level forms the way the driver does: semicolons
// separate, `def` and `extern` introduce declarations, everything else
// is an expression.
func parseAll(input string) ([]ast.Node, error) {
	p, err := parser.New(lexer.New(input))
	if err != nil {
		return nil, err
	}

	var nodes []ast.Node
	for !p.IsAtEnd() {
		switch p.Peek().Kind {
		case token.SEMICOLON:
			if _, err := p.Advance(); err != nil {
				return nodes, err
			}
		case token.DEF:
			node, err := p.ParseDef()
			if err != nil {
				return nodes, err
			}
			nodes = append(nodes, node)
		case token.EXTERN:
			node, err := p.ParseExtern()
			if err != nil {
				return nodes, err
			}
			nodes = append(nodes, node)
		default:
			node, err := p.ParseExpr()
			if err != nil {
				return nodes, err
			}
			nodes = append(nodes, node)
		}
	}

	return nodes, nil
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		label string
		input string
		want  error
	}{
		{"missing call paren", "f(1, 2", parser.UnterminatedCallError{Callee: "f"}},
		{"missing group paren", "(1 + 2", parser.UnterminatedGroupError{}},
		{"dangling operator", "1 +", parser.UnexpectedTokenError{}},
		{"stray close paren", ")", parser.UnexpectedTokenError{}},
		{"unknown character", "1 @ 2", parser.UnexpectedTokenError{}},
		{"missing argument", "f(,)", parser.UnexpectedTokenError{}},
	}

	for _, testcase := range testcases {
		_, err := parseAll(testcase.input)
		if err == nil {
			t.Errorf("Parse %s succeeded, want error", testcase.label)
			continue
		}

		switch want := testcase.want.(type) {
		case parser.UnterminatedCallError:
			var got parser.UnterminatedCallError
			if !errors.As(err, &got) {
				t.Errorf("Parse %s error = %v, want UnterminatedCallError", testcase.label, err)
			} else if got.Callee != want.Callee {
				t.Errorf("Parse %s callee = %q, want %q", testcase.label, got.Callee, want.Callee)
			}
		case parser.UnterminatedGroupError:
			var got parser.UnterminatedGroupError
			if !errors.As(err, &got) {
				t.Errorf("Parse %s error = %v, want UnterminatedGroupError", testcase.label, err)
			}
		default:
			var got parser.UnexpectedTokenError
			if !errors.As(err, &got) {
				t.Errorf("Parse %s error = %v, want UnexpectedTokenError", testcase.label, err)
			}
		}
	}
}

func TestUnexpectedTokenErrorMessage(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		err  parser.UnexpectedTokenError
		want string
	}{
		{parser.UnexpectedTokenError{}, "unexpected token"},
		{parser.UnexpectedTokenError{Expected: []string{"number"}}, "unexpected token: expected number"},
		{parser.UnexpectedTokenError{Expected: []string{"number", "`(`"}}, "unexpected token: expected number, `(`"},
	}

	for _, testcase := range testcases {
		if got := testcase.err.Error(); got != testcase.want {
			t.Errorf("Error() = %q, want %q", got, testcase.want)
		}
	}
}

func TestParseErrorPosition(t *testing.T) {
	t.Parallel()

	_, err := parseAll("1 +\n+")

	var pos diag.PosError
	if !errors.As(err, &pos) {
		t.Fatalf("Parse error = %v, want PosError", err)
	}
	if pos.Where.Line != 2 {
		t.Errorf("PosError.Where.Line = %d, want 2", pos.Where.Line)
	}
}
