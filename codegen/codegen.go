package codegen

import (
	"errors"
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/lagoon-lang/lagoon/ast"
	"github.com/lagoon-lang/lagoon/diag"
	"github.com/lagoon-lang/lagoon/token"
)

// ErrNotInitialized reports a lowering call without a live insertion
// point. That is a programming error in the caller, not a source error.
var ErrNotInitialized = errors.New("codegen: lower called with no insertion block")

// Context owns the IR handles for one compilation unit: the module
// accumulating definitions, the current insertion block, the symbol
// table, and the index of declared functions. It must not be shared
// across concurrent compilations.
type Context struct {
	module *ir.Module
	block  *ir.Block

	// symbols maps variable names to already-materialized IR values.
	// Entries are never removed within a compilation unit.
	symbols map[string]value.Value
	funcs   map[string]*ir.Func

	toplevel *ir.Func
	last     value.Value
}

// New creates the module and positions the insertion point at the
// entry block of a synthetic top-level function. Top-level expressions
// are lowered there.
func New(name string) *Context {
	module := ir.NewModule()
	module.SourceFilename = name

	toplevel := module.NewFunc("__toplevel", types.Double)

	ctx := &Context{
		module:   module,
		symbols:  map[string]value.Value{},
		funcs:    map[string]*ir.Func{},
		toplevel: toplevel,
	}
	ctx.block = toplevel.NewBlock("entry")

	return ctx
}

func (c *Context) Module() *ir.Module {
	return c.module
}

// Block returns the current insertion block.
func (c *Context) Block() *ir.Block {
	return c.block
}

// Define binds a variable name to an IR value for the rest of the
// compilation unit.
func (c *Context) Define(name string, v value.Value) {
	c.symbols[name] = v
}

// Finish terminates the top-level function so the module serializes
// cleanly. Call it once, after the last lowering.
func (c *Context) Finish() {
	if c.block.Term != nil {
		return
	}
	if c.last != nil {
		c.block.NewRet(c.last)

		return
	}
	c.block.NewRet(constant.NewFloat(types.Double, 0))
}

// Lower translates one expression node into IR at the current
// insertion point and returns the resulting value. Lowering is not
// idempotent: lowering the same node twice emits twice. On failure,
// instructions already emitted stay in the module; the caller discards
// the module rather than rolling back.
func (c *Context) Lower(node ast.Node) (value.Value, error) {
	if c.block == nil {
		return nil, ErrNotInitialized
	}

	switch n := node.(type) {
	case *ast.Literal:
		return constant.NewFloat(types.Double, n.Value()), nil
	case *ast.Paren:
		return c.Lower(n.Expr)
	case *ast.Var:
		return c.lowerVar(n)
	case *ast.Binary:
		return c.lowerBinary(n)
	case *ast.Call:
		return c.lowerCall(n)
	case *ast.Prototype:
		return c.LowerProto(n)
	case *ast.FuncDecl:
		return c.LowerFunc(n)
	default:
		return nil, fmt.Errorf("codegen: unsupported node %T", node)
	}
}

// LowerToplevel lowers a top-level expression and remembers its value
// as the eventual result of the synthetic top-level function.
func (c *Context) LowerToplevel(node ast.Node) (value.Value, error) {
	v, err := c.Lower(node)
	if err != nil {
		return nil, err
	}
	c.last = v

	return v, nil
}

func (c *Context) lowerVar(n *ast.Var) (value.Value, error) {
	if v, ok := c.symbols[n.Name.Lexeme]; ok {
		return v, nil
	}

	return nil, diag.PosError{Where: n.Name, Err: UnknownVariableError{Name: n.Name.Lexeme}}
}

func (c *Context) lowerBinary(n *ast.Binary) (value.Value, error) {
	// The left operand is fully lowered before the right one; the
	// order is observable through call side effects.
	left, err := c.Lower(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.Lower(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op.Kind {
	case token.PLUS:
		return c.block.NewFAdd(left, right), nil
	case token.MINUS:
		return c.block.NewFSub(left, right), nil
	default:
		return nil, diag.PosError{Where: n.Op, Err: UnsupportedOperatorError{Op: n.Op.Lexeme}}
	}
}

func (c *Context) lowerCall(n *ast.Call) (value.Value, error) {
	// Arguments are lowered left to right before the callee is
	// resolved, so a bad argument wins over a bad callee.
	args := make([]value.Value, len(n.Args))
	for i, arg := range n.Args {
		v, err := c.Lower(arg)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	callee, ok := c.funcs[n.Callee.Lexeme]
	if !ok {
		return nil, diag.PosError{Where: n.Callee, Err: UnknownFunctionError{Name: n.Callee.Lexeme}}
	}
	if len(callee.Params) != len(args) {
		return nil, diag.PosError{Where: n.Callee, Err: ArityMismatchError{
			Name: n.Callee.Lexeme,
			Want: len(callee.Params),
			Got:  len(args),
		}}
	}

	return c.block.NewCall(callee, args...), nil
}

// LowerProto declares a function taking and returning doubles. A
// previous declaration with the same arity is reused; one with a
// different arity is an error.
func (c *Context) LowerProto(proto *ast.Prototype) (*ir.Func, error) {
	name := proto.Name.Lexeme
	if f, ok := c.funcs[name]; ok {
		if len(f.Params) != len(proto.Params) {
			return nil, diag.PosError{Where: proto.Name, Err: ArityMismatchError{
				Name: name,
				Want: len(f.Params),
				Got:  len(proto.Params),
			}}
		}

		return f, nil
	}

	params := make([]*ir.Param, len(proto.Params))
	for i, p := range proto.Params {
		params[i] = ir.NewParam(p.Lexeme, types.Double)
	}
	f := c.module.NewFunc(name, types.Double, params...)
	c.funcs[name] = f

	return f, nil
}

// LowerFunc lowers a `def`: it declares the prototype, opens a fresh
// entry block, binds the parameters, lowers the body and emits its
// return. The previous insertion point is restored afterwards. A
// function that already has a body cannot be defined again.
func (c *Context) LowerFunc(decl *ast.FuncDecl) (*ir.Func, error) {
	f, err := c.LowerProto(decl.Proto)
	if err != nil {
		return nil, err
	}
	if len(f.Blocks) != 0 {
		return nil, diag.PosError{Where: decl.Proto.Name, Err: RedefinedFunctionError{Name: decl.Proto.Name.Lexeme}}
	}

	prev := c.block
	c.block = f.NewBlock("entry")
	for i, p := range decl.Proto.Params {
		c.symbols[p.Lexeme] = f.Params[i]
	}

	body, err := c.Lower(decl.Body)
	if err != nil {
		c.block = prev

		return nil, err
	}
	c.block.NewRet(body)
	c.block = prev

	return f, nil
}

type RedefinedFunctionError struct {
	Name string
}

func (e RedefinedFunctionError) Error() string {
	return fmt.Sprintf("function %s is already defined", e.Name)
}

type UnknownVariableError struct {
	Name string
}

func (e UnknownVariableError) Error() string {
	return fmt.Sprintf("unknown variable %s", e.Name)
}

type UnknownFunctionError struct {
	Name string
}

func (e UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown function %s", e.Name)
}

type ArityMismatchError struct {
	Name string
	Want int
	Got  int
}

func (e ArityMismatchError) Error() string {
	return fmt.Sprintf("function %s takes %d arguments, got %d", e.Name, e.Want, e.Got)
}

type UnsupportedOperatorError struct {
	Op string
}

func (e UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("unsupported binary operator %s", e.Op)
}
