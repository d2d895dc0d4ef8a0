package parser

import (
	"fmt"

	"github.com/lagoon-lang/lagoon/ast"
	"github.com/lagoon-lang/lagoon/diag"
	"github.com/lagoon-lang/lagoon/lexer"
	"github.com/lagoon-lang/lagoon/token"
)

// Parser reads tokens from the lexer with one token of lookahead and
// builds one AST per top-level form. The first error aborts the parse;
// there is no resynchronization.
type Parser struct {
	lexer   *lexer.Lexer
	current token.Token
}

// New primes the parser with the first token.
func New(l *lexer.Lexer) (*Parser, error) {
	p := &Parser{lexer: l}
	if err := p.prime(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Parser) prime() error {
	tok, err := p.lexer.Next()
	if err != nil {
		return fmt.Errorf("lex: %w", err)
	}
	p.current = tok

	return nil
}

// Peek returns the current token without consuming it.
func (p *Parser) Peek() token.Token {
	return p.current
}

// Advance consumes and returns the current token.
func (p *Parser) Advance() (token.Token, error) {
	tok := p.current
	if tok.Kind == token.EOF {
		return tok, nil
	}
	if err := p.prime(); err != nil {
		return tok, err
	}

	return tok, nil
}

func (p *Parser) IsAtEnd() bool {
	return p.current.Kind == token.EOF
}

func (p *Parser) match(kind token.Kind) bool {
	return p.current.Kind == kind
}

func (p *Parser) consume(kind token.Kind) (token.Token, error) {
	if p.match(kind) {
		return p.Advance()
	}

	return p.current, unexpectedToken(p.current, kind.String())
}

// ParseExpr parses one expression.
//
// expr = primary (binop primary)* ;
func (p *Parser) ParseExpr() (ast.Node, error) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	return p.parseBinaryRHS(0, lhs)
}

// binopPrecedence ranks the binary operators. Higher binds tighter;
// operators on the same level are left-associative.
var binopPrecedence = map[token.Kind]int{
	token.PLUS:  10,
	token.MINUS: 10,
}

func precedence(kind token.Kind) int {
	if prec, ok := binopPrecedence[kind]; ok {
		return prec
	}

	return -1
}

// parseBinaryRHS folds operators of at least minPrec into lhs,
// climbing recursively for anything that binds tighter on the right.
func (p *Parser) parseBinaryRHS(minPrec int, lhs ast.Node) (ast.Node, error) {
	for {
		prec := precedence(p.current.Kind)
		if prec < minPrec {
			return lhs, nil
		}

		op, err := p.Advance()
		if err != nil {
			return nil, err
		}

		rhs, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}

		if prec < precedence(p.current.Kind) {
			rhs, err = p.parseBinaryRHS(prec+1, rhs)
			if err != nil {
				return nil, err
			}
		}

		lhs = &ast.Binary{Op: op, Left: lhs, Right: rhs}
	}
}

// primary = NUMBER | IDENT | IDENT "(" (expr ("," expr)*)? ")" | "(" expr ")" ;
func (p *Parser) parsePrimary() (ast.Node, error) {
	switch p.current.Kind {
	case token.NUMBER:
		tok, err := p.Advance()
		if err != nil {
			return nil, err
		}

		return &ast.Literal{Token: tok}, nil
	case token.IDENT:
		tok, err := p.Advance()
		if err != nil {
			return nil, err
		}
		if p.match(token.LEFTPAREN) {
			return p.parseCallTail(tok)
		}

		return &ast.Var{Name: tok}, nil
	case token.LEFTPAREN:
		return p.parseGroup()
	default:
		return nil, unexpectedToken(p.current, "number", "identifier", "`(`")
	}
}

func (p *Parser) parseGroup() (ast.Node, error) {
	if _, err := p.Advance(); err != nil {
		return nil, err
	}

	expr, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}

	if p.IsAtEnd() {
		return nil, diag.PosError{Where: p.current, Err: UnterminatedGroupError{}}
	}
	if _, err := p.consume(token.RIGHTPAREN); err != nil {
		return nil, err
	}

	return &ast.Paren{Expr: expr}, nil
}

func (p *Parser) parseCallTail(callee token.Token) (ast.Node, error) {
	if _, err := p.Advance(); err != nil {
		return nil, err
	}

	args := []ast.Node{}
	for !p.match(token.RIGHTPAREN) {
		arg, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if p.match(token.RIGHTPAREN) {
			break
		}
		if p.IsAtEnd() {
			return nil, diag.PosError{Where: p.current, Err: UnterminatedCallError{Callee: callee.Lexeme}}
		}
		if _, err := p.consume(token.COMMA); err != nil {
			return nil, err
		}
	}

	if _, err := p.Advance(); err != nil {
		return nil, err
	}

	return &ast.Call{Callee: callee, Args: args}, nil
}

// prototype = IDENT "(" (IDENT ("," IDENT)*)? ")" ;
func (p *Parser) parsePrototype() (*ast.Prototype, error) {
	name, err := p.consume(token.IDENT)
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(token.LEFTPAREN); err != nil {
		return nil, err
	}

	params := []token.Token{}
	if !p.match(token.RIGHTPAREN) {
		param, err := p.consume(token.IDENT)
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		for p.match(token.COMMA) {
			if _, err := p.Advance(); err != nil {
				return nil, err
			}
			param, err := p.consume(token.IDENT)
			if err != nil {
				return nil, err
			}
			params = append(params, param)
		}
	}

	if _, err := p.consume(token.RIGHTPAREN); err != nil {
		return nil, err
	}

	return &ast.Prototype{Name: name, Params: params}, nil
}

// ParseDef parses a function definition.
//
// def = "def" prototype expr ;
func (p *Parser) ParseDef() (*ast.FuncDecl, error) {
	if _, err := p.consume(token.DEF); err != nil {
		return nil, err
	}

	proto, err := p.parsePrototype()
	if err != nil {
		return nil, err
	}

	body, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}

	return &ast.FuncDecl{Proto: proto, Body: body}, nil
}

// ParseExtern parses an external function declaration.
//
// extern = "extern" prototype ;
func (p *Parser) ParseExtern() (*ast.Prototype, error) {
	if _, err := p.consume(token.EXTERN); err != nil {
		return nil, err
	}

	return p.parsePrototype()
}

type UnexpectedTokenError struct {
	Expected []string
}

func (e UnexpectedTokenError) Error() string {
	if len(e.Expected) == 0 {
		return "unexpected token"
	}

	msg := e.Expected[0]
	for _, ex := range e.Expected[1:] {
		msg = msg + ", " + ex
	}

	return "unexpected token: expected " + msg
}

type UnterminatedCallError struct {
	Callee string
}

func (e UnterminatedCallError) Error() string {
	return fmt.Sprintf("unterminated argument list in call to %s", e.Callee)
}

type UnterminatedGroupError struct{}

func (e UnterminatedGroupError) Error() string {
	return "unterminated parenthesized expression"
}

func unexpectedToken(t token.Token, expected ...string) error {
	return diag.PosError{Where: t, Err: UnexpectedTokenError{Expected: expected}}
}
