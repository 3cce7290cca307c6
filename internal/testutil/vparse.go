// Package testutil parses the Verilog emitted by this module back into
// an evaluatable form, so tests can check emitter output against truth
// tables without trusting the code under test.
package testutil

import (
	"fmt"
	"strings"
)

// Module is the parsed shape of one emitted Verilog module.
type Module struct {
	Name   string
	Inputs []string
	expr   node
}

type node func(env map[string]bool) bool

// ParseModule extracts the module name, input list and output assign
// expression from emitted Verilog text.
func ParseModule(text string) (Module, error) {
	var m Module
	lines := strings.Split(text, "\n")

	var assign strings.Builder
	inAssign := false
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "//"):
		case strings.HasPrefix(line, "module "):
			m.Name = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(line, "module "), "("))
		case strings.HasPrefix(line, "input "):
			list := strings.TrimSuffix(strings.TrimPrefix(line, "input "), ",")
			for _, name := range strings.Split(list, ",") {
				m.Inputs = append(m.Inputs, strings.TrimSpace(name))
			}
		case strings.HasPrefix(line, "assign x ="):
			inAssign = true
			assign.WriteString(strings.TrimPrefix(line, "assign x ="))
		case inAssign:
			assign.WriteString(" ")
			assign.WriteString(line)
		}
		if inAssign && strings.Contains(line, ";") {
			break
		}
	}
	if m.Name == "" {
		return m, fmt.Errorf("no module declaration found")
	}
	if assign.Len() == 0 {
		return m, fmt.Errorf("no assign statement found")
	}

	p := &exprParser{toks: tokenize(strings.TrimSuffix(strings.TrimSpace(assign.String()), ";"))}
	expr, err := p.parseOr()
	if err != nil {
		return m, err
	}
	if p.pos != len(p.toks) {
		return m, fmt.Errorf("trailing tokens in assign expression: %v", p.toks[p.pos:])
	}
	m.expr = expr
	return m, nil
}

// Eval evaluates the module's output for an input combination, taking
// input bits from index with the first declared input as the most
// significant bit.
func (m Module) Eval(index int) bool {
	env := make(map[string]bool, len(m.Inputs))
	for i, name := range m.Inputs {
		env[name] = index&(1<<(len(m.Inputs)-1-i)) != 0
	}
	return m.expr(env)
}

func tokenize(s string) []string {
	var toks []string
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '(' || c == ')' || c == '~' || c == '&' || c == '|':
			toks = append(toks, string(c))
			i++
		default:
			j := i
			for j < len(s) && !strings.ContainsRune(" \t()~&|", rune(s[j])) {
				j++
			}
			toks = append(toks, s[i:j])
			i = j
		}
	}
	return toks
}

type exprParser struct {
	toks []string
	pos  int
}

func (p *exprParser) peek() string {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return ""
}

func (p *exprParser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek() == "|" {
		p.pos++
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		l, r := left, right
		left = func(env map[string]bool) bool { return l(env) || r(env) }
	}
	return left, nil
}

func (p *exprParser) parseAnd() (node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.peek() == "&" {
		p.pos++
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		l, r := left, right
		left = func(env map[string]bool) bool { return l(env) && r(env) }
	}
	return left, nil
}

func (p *exprParser) parseFactor() (node, error) {
	switch tok := p.peek(); tok {
	case "":
		return nil, fmt.Errorf("unexpected end of expression")
	case "~":
		p.pos++
		inner, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return func(env map[string]bool) bool { return !inner(env) }, nil
	case "(":
		p.pos++
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.peek() != ")" {
			return nil, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return inner, nil
	case "1'b0":
		p.pos++
		return func(map[string]bool) bool { return false }, nil
	case "1'b1":
		p.pos++
		return func(map[string]bool) bool { return true }, nil
	default:
		p.pos++
		return func(env map[string]bool) bool { return env[tok] }, nil
	}
}
