package core

import (
	"fmt"
	"math"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
)

// evalFunc is one allow-listed function of the expression language.
type evalFunc struct {
	arity int
	apply func(args []float64) float64
}

var evalFuncs = map[string]evalFunc{
	"sqrt":  {1, func(a []float64) float64 { return math.Sqrt(a[0]) }},
	"abs":   {1, func(a []float64) float64 { return math.Abs(a[0]) }},
	"floor": {1, func(a []float64) float64 { return math.Floor(a[0]) }},
	"ceil":  {1, func(a []float64) float64 { return math.Ceil(a[0]) }},
	"round": {1, func(a []float64) float64 { return math.Round(a[0]) }},
	"pow":   {2, func(a []float64) float64 { return math.Pow(a[0], a[1]) }},
	"log":   {1, func(a []float64) float64 { return math.Log(a[0]) }},
	"log2":  {1, func(a []float64) float64 { return math.Log2(a[0]) }},
	"log10": {1, func(a []float64) float64 { return math.Log10(a[0]) }},
	"exp":   {1, func(a []float64) float64 { return math.Exp(a[0]) }},
	"sin":   {1, func(a []float64) float64 { return math.Sin(a[0]) }},
	"cos":   {1, func(a []float64) float64 { return math.Cos(a[0]) }},
	"tan":   {1, func(a []float64) float64 { return math.Tan(a[0]) }},
}

var evalConsts = map[string]float64{
	"pi":  math.Pi,
	"e":   math.E,
	"tau": 2 * math.Pi,
}

// evaluate parses and computes an arithmetic expression. The grammar is
// fixed: binary + - * / % and ^ (power, right-associative, binding
// tighter than unary minus), parentheses, float literals, and the
// allow-listed functions and constants above. Nothing else resolves.
func evaluate(expr string) (float64, error) {
	p := &evalParser{input: []rune(expr)}
	p.skipSpace()
	if p.eof() {
		return 0, goerr.New("expression is empty")
	}

	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if !p.eof() {
		return 0, goerr.New(fmt.Sprintf("unexpected character %q", p.peek()))
	}
	return v, nil
}

// formatNumber renders a result the way the model expects: integer
// values without a trailing ".0", everything else in plain decimal.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type evalParser struct {
	input []rune
	pos   int
}

func (p *evalParser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *evalParser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *evalParser) skipSpace() {
	for !p.eof() && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

// parseExpr handles + and -
func (p *evalParser) parseExpr() (float64, error) {
	v, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		switch p.peek() {
		case '+':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v += rhs
		case '-':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v -= rhs
		default:
			return v, nil
		}
	}
}

// parseTerm handles *, / and %
func (p *evalParser) parseTerm() (float64, error) {
	v, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		switch p.peek() {
		case '*':
			p.pos++
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			v *= rhs
		case '/':
			p.pos++
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, goerr.New("division by zero")
			}
			v /= rhs
		case '%':
			p.pos++
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, goerr.New("division by zero")
			}
			v = math.Mod(v, rhs)
		default:
			return v, nil
		}
	}
}

// parseUnary handles sign prefixes. Power binds tighter, so -2^2 is -4.
func (p *evalParser) parseUnary() (float64, error) {
	p.skipSpace()
	switch p.peek() {
	case '-':
		p.pos++
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return -v, nil
	case '+':
		p.pos++
		return p.parseUnary()
	}
	return p.parsePower()
}

// parsePower handles ^. The exponent recurses through parseUnary, which
// makes the operator right-associative and lets it take a signed operand.
func (p *evalParser) parsePower() (float64, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.peek() != '^' {
		return base, nil
	}
	p.pos++
	exp, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	return math.Pow(base, exp), nil
}

func (p *evalParser) parsePrimary() (float64, error) {
	p.skipSpace()
	switch {
	case p.eof():
		return 0, goerr.New("unexpected end of expression")
	case p.peek() == '(':
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return 0, goerr.New("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	case isDigit(p.peek()) || p.peek() == '.':
		return p.parseNumber()
	case isAlpha(p.peek()):
		return p.parseIdent()
	default:
		return 0, goerr.New(fmt.Sprintf("unexpected character %q", p.peek()))
	}
}

func (p *evalParser) parseNumber() (float64, error) {
	start := p.pos
	for !p.eof() && (isDigit(p.peek()) || p.peek() == '.') {
		p.pos++
	}
	// Scientific notation, e.g. 1e3 or 2.5e-4
	if !p.eof() && (p.peek() == 'e' || p.peek() == 'E') {
		mark := p.pos
		p.pos++
		if !p.eof() && (p.peek() == '+' || p.peek() == '-') {
			p.pos++
		}
		if p.eof() || !isDigit(p.peek()) {
			p.pos = mark
		} else {
			for !p.eof() && isDigit(p.peek()) {
				p.pos++
			}
		}
	}

	text := string(p.input[start:p.pos])
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, goerr.New(fmt.Sprintf("invalid number %q", text))
	}
	return v, nil
}

func (p *evalParser) parseIdent() (float64, error) {
	start := p.pos
	for !p.eof() && (isAlpha(p.peek()) || isDigit(p.peek())) {
		p.pos++
	}
	name := string(p.input[start:p.pos])

	p.skipSpace()
	if p.peek() != '(' {
		if v, ok := evalConsts[name]; ok {
			return v, nil
		}
		return 0, goerr.New(fmt.Sprintf("unknown identifier %q", name))
	}

	fn, ok := evalFuncs[name]
	if !ok {
		return 0, goerr.New(fmt.Sprintf("unknown function %q", name))
	}

	p.pos++ // consume '('
	args := make([]float64, 0, fn.arity)
	for {
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		args = append(args, v)
		p.skipSpace()
		if p.peek() == ',' {
			p.pos++
			continue
		}
		break
	}
	if p.peek() != ')' {
		return 0, goerr.New("missing closing parenthesis")
	}
	p.pos++

	if len(args) != fn.arity {
		return 0, goerr.New(fmt.Sprintf("function %q takes %d argument(s), got %d", name, fn.arity, len(args)))
	}
	return fn.apply(args), nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}
