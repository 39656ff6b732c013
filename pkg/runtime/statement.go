package runtime

import "strings"

// Expr is a deferred expression: the raw token texts a statement was built
// from. It is only lexed and evaluated when the statement runs.
type Expr struct {
	Terms []string
}

// NewExpr copies terms into a new expression.
func NewExpr(terms ...string) Expr {
	return Expr{Terms: append([]string(nil), terms...)}
}

// Text joins the terms with single spaces.
func (e Expr) Text() string {
	return strings.Join(e.Terms, " ")
}

// Empty reports whether the expression has no terms.
func (e Expr) Empty() bool {
	return len(e.Terms) == 0
}

// Replace substitutes every occurrence of old inside every term. The match is
// textual, so a name that is a substring of another term is replaced too.
func (e Expr) Replace(old, replacement string) Expr {
	if old == "" {
		return e
	}
	out := make([]string, len(e.Terms))
	for i, term := range e.Terms {
		out[i] = strings.ReplaceAll(term, old, replacement)
	}
	return Expr{Terms: out}
}

// Statement is one synthesized action produced from a source line.
type Statement interface {
	String() string
	// Substitute applies a textual variable substitution to the
	// statement's expression, if it has one.
	Substitute(name, literal string) Statement
}

// Emit prints the values of its expression.
type Emit struct {
	Expr Expr
}

func (s Emit) String() string {
	return "print(" + s.Expr.Text() + ")"
}

func (s Emit) Substitute(name, literal string) Statement {
	return Emit{Expr: s.Expr.Replace(name, literal)}
}

// Declare binds a new variable to the value of its expression.
type Declare struct {
	Name string
	Expr Expr
}

func (s Declare) String() string {
	return "var " + s.Name + " := " + s.Expr.Text()
}

func (s Declare) Substitute(name, literal string) Statement {
	return Declare{Name: s.Name, Expr: s.Expr.Replace(name, literal)}
}

// Assign rebinds an existing variable.
type Assign struct {
	Name string
	Expr Expr
}

func (s Assign) String() string {
	return s.Name + " = " + s.Expr.Text()
}

func (s Assign) Substitute(name, literal string) Statement {
	return Assign{Name: s.Name, Expr: s.Expr.Replace(name, literal)}
}

// Define commits a function body.
type Define struct {
	Name string
	Body Body
}

func (s Define) String() string {
	return "func " + s.Name + " { " + s.Body.String() + " }"
}

func (s Define) Substitute(string, string) Statement {
	return s
}

// Body is an ordered statement sequence, either one line's synthesized output
// or a function body.
type Body []Statement

// Clone returns a copy that can be extended without aliasing.
func (b Body) Clone() Body {
	if b == nil {
		return nil
	}
	return append(Body(nil), b...)
}

// Substitute applies Statement.Substitute to every statement.
func (b Body) Substitute(name, literal string) Body {
	out := make(Body, len(b))
	for i, stmt := range b {
		out[i] = stmt.Substitute(name, literal)
	}
	return out
}

func (b Body) String() string {
	var sb strings.Builder
	for _, stmt := range b {
		sb.WriteString(stmt.String())
		sb.WriteString("; ")
	}
	return strings.TrimSpace(sb.String())
}
