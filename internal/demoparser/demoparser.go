// Package demoparser is a minimal stand-in for CalcScript's real parser,
// which lives outside this module -- the runtime only defines its
// interface to the core. It exists purely so the example CLI and the
// include tests can exercise host.ScriptParser end-to-end without
// depending on an actual external parser: a tiny line-oriented syntax
// (assign/jump/jumpif/return/expr/label/include) covering every expression
// kind the script model defines, not a faithful rendition of CalcScript's
// real grammar. Function declarations are not recognized: a line declaring
// one fails to parse.
package demoparser

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/craigahobbs/calcscript-go/errs"
	"github.com/craigahobbs/calcscript-go/lang/model"
)

// Parser implements host.ScriptParser (lang/host) over the line-oriented
// syntax this package defines.
type Parser struct{}

// Parse tokenizes and parses src, one statement per non-blank, non-comment
// line. It satisfies the host.ScriptParser interface (lang/host); the ctx
// and url parameters are accepted to match that interface but otherwise
// unused by this in-memory, non-fetching parser.
func (Parser) Parse(_ context.Context, url string, src []byte) (*model.Script, error) {
	lines := strings.Split(string(src), "\n")
	statements := make([]model.Statement, 0, len(lines))
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		stmt, err := parseStatement(line)
		if err != nil {
			return nil, &errs.ParserError{Message: err.Error(), Line: i + 1}
		}
		statements = append(statements, stmt)
	}
	return &model.Script{Statements: statements}, nil
}

func parseStatement(line string) (model.Statement, error) {
	switch {
	case strings.HasPrefix(line, "include "):
		raw := strings.TrimSpace(line[len("include "):])
		url, err := parseStringLiteral(raw)
		if err != nil {
			return nil, err
		}
		return &model.IncludeStmt{URL: url}, nil

	case line == "return":
		return &model.ReturnStmt{}, nil

	case strings.HasPrefix(line, "return "):
		expr, err := parseExpr(strings.TrimSpace(line[len("return "):]))
		if err != nil {
			return nil, err
		}
		return &model.ReturnStmt{Expr: expr}, nil

	case strings.HasPrefix(line, "label "):
		return &model.LabelStmt{Name: strings.TrimSpace(line[len("label "):])}, nil

	case strings.HasPrefix(line, "jumpif "):
		rest := strings.TrimSpace(line[len("jumpif "):])
		label, condSrc, ok := strings.Cut(rest, " ")
		if !ok {
			return nil, fmt.Errorf("malformed jumpif: %q", line)
		}
		expr, err := parseExpr(strings.TrimSpace(condSrc))
		if err != nil {
			return nil, err
		}
		return &model.JumpStmt{Label: label, Expr: expr}, nil

	case strings.HasPrefix(line, "jump "):
		return &model.JumpStmt{Label: strings.TrimSpace(line[len("jump "):])}, nil
	}

	if name, rhs, ok := strings.Cut(line, "="); ok && isIdent(strings.TrimSpace(name)) {
		expr, err := parseExpr(strings.TrimSpace(rhs))
		if err != nil {
			return nil, err
		}
		return &model.AssignStmt{Name: strings.TrimSpace(name), Expr: expr}, nil
	}

	expr, err := parseExpr(line)
	if err != nil {
		return nil, err
	}
	return &model.ExprStmt{Expr: expr}, nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (i > 0 && r >= '0' && r <= '9') {
			continue
		}
		return false
	}
	return true
}

func parseStringLiteral(s string) (string, error) {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1], nil
	}
	return "", fmt.Errorf("expected string literal, got %q", s)
}

// parseExpr parses a full expression via the tokenizer + precedence-climbing
// parser below.
func parseExpr(s string) (model.Expr, error) {
	toks, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	p := &exprParser{toks: toks}
	expr, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("unexpected trailing input at %q", s)
	}
	return expr, nil
}

var precedence = map[model.BinaryOp]int{
	model.OpOr:  1,
	model.OpAnd: 2,
	model.OpEQ:  3, model.OpNE: 3,
	model.OpLT: 4, model.OpLE: 4, model.OpGT: 4, model.OpGE: 4,
	model.OpAdd: 5, model.OpSub: 5,
	model.OpMul: 6, model.OpDiv: 6, model.OpMod: 6,
	model.OpPow: 7,
}

type exprParser struct {
	toks []token
	pos  int
}

func (p *exprParser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *exprParser) parseBinary(minPrec int) (model.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokOp {
			break
		}
		op := model.BinaryOp(t.text)
		prec, known := precedence[op]
		if !known || prec < minPrec {
			break
		}
		p.pos++
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &model.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *exprParser) parseUnary() (model.Expr, error) {
	if t, ok := p.peek(); ok && t.kind == tokOp && (t.text == "!" || t.text == "-") {
		p.pos++
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &model.UnaryExpr{Op: model.UnaryOp(t.text), Expr: inner}, nil
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (model.Expr, error) {
	t, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("unexpected end of expression")
	}
	switch t.kind {
	case tokNumber:
		p.pos++
		n, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, err
		}
		return &model.NumberExpr{Value: n}, nil

	case tokString:
		p.pos++
		return &model.StringExpr{Value: t.text}, nil

	case tokIdent:
		p.pos++
		if next, ok := p.peek(); ok && next.kind == tokLParen {
			return p.parseCall(t.text)
		}
		return &model.VariableExpr{Name: t.text}, nil

	case tokLParen:
		p.pos++
		inner, err := p.parseBinary(0)
		if err != nil {
			return nil, err
		}
		if t2, ok := p.peek(); !ok || t2.kind != tokRParen {
			return nil, fmt.Errorf("expected closing parenthesis")
		}
		p.pos++
		return &model.GroupExpr{Expr: inner}, nil
	}
	return nil, fmt.Errorf("unexpected token %q", t.text)
}

func (p *exprParser) parseCall(name string) (model.Expr, error) {
	p.pos++ // consume '('
	var args []model.Expr
	if t, ok := p.peek(); !ok || t.kind != tokRParen {
		for {
			arg, err := p.parseBinary(0)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			t, ok := p.peek()
			if !ok {
				return nil, fmt.Errorf("unterminated call to %q", name)
			}
			if t.kind == tokComma {
				p.pos++
				continue
			}
			break
		}
	}
	if t, ok := p.peek(); !ok || t.kind != tokRParen {
		return nil, fmt.Errorf("expected closing parenthesis in call to %q", name)
	}
	p.pos++
	return &model.FunctionExpr{Name: name, Args: args}, nil
}
