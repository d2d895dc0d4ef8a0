// Package eval is a tree-walking evaluator over the same AST the code
// generator lowers. The driver uses it for verbose output and the
// tests use it as the concrete-evaluation harness.
package eval

import (
	"fmt"

	"github.com/lagoon-lang/lagoon/ast"
	"github.com/lagoon-lang/lagoon/diag"
	"github.com/lagoon-lang/lagoon/token"
)

// Evaluator mirrors the code generator's environment shape: a flat
// variable table and a function index, both scoped to one unit.
type Evaluator struct {
	vars  map[string]float64
	funcs map[string]function
}

type function struct {
	params []string
	body   ast.Node
}

func NewEvaluator() *Evaluator {
	return &Evaluator{
		vars:  map[string]float64{},
		funcs: map[string]function{},
	}
}

// Define binds a variable for the rest of the unit.
func (e *Evaluator) Define(name string, v float64) {
	e.vars[name] = v
}

// Declare registers a function definition.
func (e *Evaluator) Declare(decl *ast.FuncDecl) {
	params := make([]string, len(decl.Proto.Params))
	for i, p := range decl.Proto.Params {
		params[i] = p.Lexeme
	}
	e.funcs[decl.Proto.Name.Lexeme] = function{params: params, body: decl.Body}
}

// Eval evaluates one expression. Its error taxonomy and its
// arguments-before-callee order match the code generator.
func (e *Evaluator) Eval(node ast.Node) (float64, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return n.Value(), nil
	case *ast.Paren:
		return e.Eval(n.Expr)
	case *ast.Var:
		if v, ok := e.vars[n.Name.Lexeme]; ok {
			return v, nil
		}

		return 0, diag.PosError{Where: n.Name, Err: UnknownNameError{Name: n.Name.Lexeme}}
	case *ast.Binary:
		return e.evalBinary(n)
	case *ast.Call:
		return e.evalCall(n)
	default:
		return 0, fmt.Errorf("eval: unsupported node %T", node)
	}
}

func (e *Evaluator) evalBinary(n *ast.Binary) (float64, error) {
	left, err := e.Eval(n.Left)
	if err != nil {
		return 0, err
	}
	right, err := e.Eval(n.Right)
	if err != nil {
		return 0, err
	}

	switch n.Op.Kind {
	case token.PLUS:
		return left + right, nil
	case token.MINUS:
		return left - right, nil
	default:
		return 0, diag.PosError{Where: n.Op, Err: UnknownNameError{Name: n.Op.Lexeme}}
	}
}

func (e *Evaluator) evalCall(n *ast.Call) (float64, error) {
	args := make([]float64, len(n.Args))
	for i, arg := range n.Args {
		v, err := e.Eval(arg)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}

	fn, ok := e.funcs[n.Callee.Lexeme]
	if !ok {
		return 0, diag.PosError{Where: n.Callee, Err: UnknownNameError{Name: n.Callee.Lexeme}}
	}
	if len(fn.params) != len(args) {
		return 0, diag.PosError{Where: n.Callee, Err: fmt.Errorf("function %s takes %d arguments, got %d", n.Callee.Lexeme, len(fn.params), len(args))}
	}

	// No block scoping: parameter bindings stay, like the code
	// generator's symbol table.
	for i, param := range fn.params {
		e.vars[param] = args[i]
	}

	return e.Eval(fn.body)
}

type UnknownNameError struct {
	Name string
}

func (e UnknownNameError) Error() string {
	return fmt.Sprintf("unknown name %s", e.Name)
}
