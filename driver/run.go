package driver

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"

	"github.com/lagoon-lang/lagoon/ast"
	"github.com/lagoon-lang/lagoon/codegen"
	"github.com/lagoon-lang/lagoon/eval"
	"github.com/lagoon-lang/lagoon/lexer"
	"github.com/lagoon-lang/lagoon/parser"
	"github.com/lagoon-lang/lagoon/token"
)

type Pass interface {
	Init([]ast.Node) error
	Run([]ast.Node) ([]ast.Node, error)
}

// Pipeline drives one compilation unit: lex, parse one top-level form
// at a time, run the AST passes over it, and lower it.
type Pipeline struct {
	passes []Pass
}

func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// AddPass adds a pass to the end of the pass list.
func (r *Pipeline) AddPass(pass Pass) {
	r.passes = append(r.passes, pass)
}

func (r *Pipeline) runPasses(program []ast.Node) ([]ast.Node, error) {
	for _, pass := range r.passes {
		err := pass.Init(program)
		if err != nil {
			return program, fmt.Errorf("init: %w", err)
		}
		program, err = pass.Run(program)
		if err != nil {
			return program, fmt.Errorf("run: %w", err)
		}
	}

	return program, nil
}

// Result is the outcome of one compilation unit. On error the module
// may hold instructions emitted before the failure; it is the caller's
// job to discard it.
type Result struct {
	Module *ir.Module
	Values []value.Value
}

// Compile compiles one source buffer: statement separators are
// skipped, definitions and externs become module-level functions, and
// every other form is one expression lowered into the top-level
// function. The first error stops the unit.
func (r *Pipeline) Compile(name, source string) (*Result, error) {
	p, err := parser.New(lexer.New(source))
	if err != nil {
		return nil, err
	}

	ctx := codegen.New(name)
	res := &Result{Module: ctx.Module()}

	for !p.IsAtEnd() {
		if p.Peek().Kind == token.SEMICOLON {
			if _, err := p.Advance(); err != nil {
				return res, err
			}

			continue
		}

		node, err := r.parseForm(p)
		if err != nil {
			return res, fmt.Errorf("parse: %w", err)
		}

		nodes, err := r.runPasses([]ast.Node{node})
		if err != nil {
			return res, err
		}

		for _, n := range nodes {
			if err := r.lowerForm(ctx, res, n); err != nil {
				return res, fmt.Errorf("lower: %w", err)
			}
		}
	}

	ctx.Finish()

	return res, nil
}

func (r *Pipeline) parseForm(p *parser.Parser) (ast.Node, error) {
	switch p.Peek().Kind {
	case token.DEF:
		return p.ParseDef()
	case token.EXTERN:
		return p.ParseExtern()
	default:
		return p.ParseExpr()
	}
}

func (r *Pipeline) lowerForm(ctx *codegen.Context, res *Result, node ast.Node) error {
	switch n := node.(type) {
	case *ast.FuncDecl, *ast.Prototype:
		_, err := ctx.Lower(n)

		return err
	default:
		v, err := ctx.LowerToplevel(n)
		if err != nil {
			return err
		}
		res.Values = append(res.Values, v)

		return nil
	}
}

// Interpret runs the same driver loop through the tree-walking
// evaluator instead of the code generator. Externs have no body to
// run and are skipped.
func (r *Pipeline) Interpret(source string) ([]float64, error) {
	p, err := parser.New(lexer.New(source))
	if err != nil {
		return nil, err
	}

	ev := eval.NewEvaluator()
	var values []float64

	for !p.IsAtEnd() {
		if p.Peek().Kind == token.SEMICOLON {
			if _, err := p.Advance(); err != nil {
				return values, err
			}

			continue
		}

		node, err := r.parseForm(p)
		if err != nil {
			return values, fmt.Errorf("parse: %w", err)
		}

		nodes, err := r.runPasses([]ast.Node{node})
		if err != nil {
			return values, err
		}

		for _, n := range nodes {
			switch n := n.(type) {
			case *ast.FuncDecl:
				ev.Declare(n)
			case *ast.Prototype:
				// nothing to run
			default:
				v, err := ev.Eval(n)
				if err != nil {
					return values, fmt.Errorf("eval: %w", err)
				}
				values = append(values, v)
			}
		}
	}

	return values, nil
}
