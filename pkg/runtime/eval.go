package runtime

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// EvalError describes a failure while evaluating a deferred expression. Kind
// names the error class ("SyntaxError", "NameError", "TypeError",
// "ZeroDivisionError", "OverflowError", "ValueError").
type EvalError struct {
	Kind    string
	Message string
}

func (e *EvalError) Error() string {
	return e.Kind + ": " + e.Message
}

func syntaxErrorf(format string, args ...any) *EvalError {
	return &EvalError{Kind: "SyntaxError", Message: fmt.Sprintf(format, args...)}
}

func typeErrorf(format string, args ...any) *EvalError {
	return &EvalError{Kind: "TypeError", Message: fmt.Sprintf(format, args...)}
}

// Evaluate computes the single value of expr against vars.
func Evaluate(expr Expr, vars *Variables) (Value, error) {
	p, err := newExprParser(expr.Text(), vars)
	if err != nil {
		return nil, err
	}
	if p.atEnd() {
		return nil, syntaxErrorf("expected an expression")
	}
	val, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, syntaxErrorf("unexpected %q", p.peek().text)
	}
	return val, nil
}

// EvaluateArgs computes a comma-separated argument list, as accepted by print.
// An empty expression yields no values.
func EvaluateArgs(expr Expr, vars *Variables) ([]Value, error) {
	p, err := newExprParser(expr.Text(), vars)
	if err != nil {
		return nil, err
	}
	var out []Value
	for !p.atEnd() {
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		out = append(out, val)
		if p.atEnd() {
			break
		}
		if p.peek().kind != lexComma {
			return nil, syntaxErrorf("unexpected %q", p.peek().text)
		}
		p.advance()
	}
	return out, nil
}

type lexKind int

const (
	lexNumber lexKind = iota
	lexString
	lexName
	lexOperator
	lexLParen
	lexRParen
	lexComma
)

type lexeme struct {
	kind lexKind
	text string
	str  string
}

func lexExpression(src string, vars *Variables) ([]lexeme, error) {
	var out []lexeme
	i := 0
	for i < len(src) {
		if name := declaredNameAt(src, i, vars); name != "" {
			out = append(out, lexeme{kind: lexName, text: name})
			i += len(name)
			continue
		}
		ch := src[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			i++
		case isDigitByte(ch) || (ch == '.' && i+1 < len(src) && isDigitByte(src[i+1])):
			start := i
			seenDot := false
			for i < len(src) && (isDigitByte(src[i]) || (src[i] == '.' && !seenDot)) {
				if src[i] == '.' {
					seenDot = true
				}
				i++
			}
			out = append(out, lexeme{kind: lexNumber, text: src[start:i]})
		case ch == '"' || ch == '\'':
			text, value, next, err := scanString(src, i)
			if err != nil {
				return nil, err
			}
			out = append(out, lexeme{kind: lexString, text: text, str: value})
			i = next
		case isNameStart(ch):
			start := i
			for i < len(src) && isNameContinue(src[i]) {
				i++
			}
			out = append(out, lexeme{kind: lexName, text: src[start:i]})
		case ch == '(':
			out = append(out, lexeme{kind: lexLParen, text: "("})
			i++
		case ch == ')':
			out = append(out, lexeme{kind: lexRParen, text: ")"})
			i++
		case ch == ',':
			out = append(out, lexeme{kind: lexComma, text: ","})
			i++
		case ch == '*' || ch == '/':
			if i+1 < len(src) && src[i+1] == ch {
				out = append(out, lexeme{kind: lexOperator, text: src[i : i+2]})
				i += 2
				continue
			}
			out = append(out, lexeme{kind: lexOperator, text: string(ch)})
			i++
		case ch == '%' || ch == '+' || ch == '-':
			out = append(out, lexeme{kind: lexOperator, text: string(ch)})
			i++
		default:
			return nil, syntaxErrorf("invalid syntax near %q", src[i:])
		}
	}
	return out, nil
}

func scanString(src string, start int) (string, string, int, error) {
	quote := src[start]
	var sb strings.Builder
	i := start + 1
	for i < len(src) {
		ch := src[i]
		if ch == quote {
			return src[start : i+1], sb.String(), i + 1, nil
		}
		if ch == '\\' && i+1 < len(src) {
			i++
			switch src[i] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '\\', '\'', '"':
				sb.WriteByte(src[i])
			default:
				sb.WriteByte('\\')
				sb.WriteByte(src[i])
			}
			i++
			continue
		}
		sb.WriteByte(ch)
		i++
	}
	return "", "", 0, syntaxErrorf("unterminated string literal %s", src[start:])
}

// declaredNameAt returns the longest declared variable name starting at
// src[i]. Names may hold characters such as '.' or '-' that the expression
// grammar would otherwise split on, so they are matched before lexing.
func declaredNameAt(src string, i int, vars *Variables) string {
	if vars == nil || (!isNameStart(src[i]) && src[i] != '.') {
		return ""
	}
	best := ""
	for name := range vars.values {
		if len(name) <= len(best) || !strings.HasPrefix(src[i:], name) {
			continue
		}
		if end := i + len(name); end < len(src) && isNameContinue(src[end]) {
			continue
		}
		best = name
	}
	return best
}

func isNameContinue(ch byte) bool {
	return isNameStart(ch) || isDigitByte(ch)
}

func isDigitByte(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isNameStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// exprParser is a precedence-climbing parser that evaluates as it goes:
//
//	expression := term (("+" | "-") term)*
//	term       := unary (("*" | "/" | "//" | "%") unary)*
//	unary      := ("+" | "-") unary | power
//	power      := primary ("**" unary)?
//	primary    := NUMBER | STRING+ | NAME | "(" expression ")"
type exprParser struct {
	lexemes []lexeme
	pos     int
	vars    *Variables
}

func newExprParser(src string, vars *Variables) (*exprParser, error) {
	lexemes, err := lexExpression(src, vars)
	if err != nil {
		return nil, err
	}
	return &exprParser{lexemes: lexemes, vars: vars}, nil
}

func (p *exprParser) atEnd() bool {
	return p.pos >= len(p.lexemes)
}

func (p *exprParser) peek() lexeme {
	return p.lexemes[p.pos]
}

func (p *exprParser) advance() lexeme {
	lx := p.lexemes[p.pos]
	p.pos++
	return lx
}

func (p *exprParser) matchOperator(ops ...string) (string, bool) {
	if p.atEnd() || p.peek().kind != lexOperator {
		return "", false
	}
	for _, op := range ops {
		if p.peek().text == op {
			p.pos++
			return op, true
		}
	}
	return "", false
}

func (p *exprParser) parseExpression() (Value, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.matchOperator("+", "-")
		if !ok {
			return left, nil
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if left, err = applyBinary(op, left, right); err != nil {
			return nil, err
		}
	}
}

func (p *exprParser) parseTerm() (Value, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.matchOperator("*", "/", "//", "%")
		if !ok {
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if left, err = applyBinary(op, left, right); err != nil {
			return nil, err
		}
	}
}

func (p *exprParser) parseUnary() (Value, error) {
	if op, ok := p.matchOperator("+", "-"); ok {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return applyUnary(op, operand)
	}
	return p.parsePower()
}

func (p *exprParser) parsePower() (Value, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if _, ok := p.matchOperator("**"); !ok {
		return base, nil
	}
	exponent, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return applyBinary("**", base, exponent)
}

func (p *exprParser) parsePrimary() (Value, error) {
	if p.atEnd() {
		return nil, syntaxErrorf("unexpected end of expression")
	}
	lx := p.advance()
	switch lx.kind {
	case lexNumber:
		return parseNumber(lx.text)
	case lexString:
		// Adjacent string literals concatenate.
		var sb strings.Builder
		sb.WriteString(lx.str)
		for !p.atEnd() && p.peek().kind == lexString {
			sb.WriteString(p.advance().str)
		}
		return StringValue{Val: sb.String()}, nil
	case lexName:
		if p.vars != nil {
			if val, ok := p.vars.Get(lx.text); ok {
				return val, nil
			}
		}
		return nil, &EvalError{Kind: "NameError", Message: fmt.Sprintf("name '%s' is not defined", lx.text)}
	case lexLParen:
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.atEnd() || p.peek().kind != lexRParen {
			return nil, syntaxErrorf("'(' was never closed")
		}
		p.advance()
		return val, nil
	default:
		return nil, syntaxErrorf("unexpected %q", lx.text)
	}
}

func parseNumber(text string) (Value, error) {
	if strings.Contains(text, ".") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, syntaxErrorf("invalid number %q", text)
		}
		return FloatValue{Val: f}, nil
	}
	i, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, syntaxErrorf("invalid number %q", text)
	}
	return IntegerValue{Val: i}, nil
}
