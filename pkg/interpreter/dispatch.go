package interpreter

import (
	"github.com/Firice1269/Firic/pkg/lexer"
	"github.com/Firice1269/Firic/pkg/runtime"
)

// lineBuilder synthesizes the statements of one source line. Only tokens
// tagged as keywords are dispatched; everything else is an operand picked up
// by the statement that precedes it.
type lineBuilder struct {
	in    *Interpreter
	line  lexer.Line
	stmts runtime.Body
	// opened is set when this line started a function definition.
	opened bool
	// printAt is the index of the print keyword, or -1.
	printAt int
}

func newLineBuilder(in *Interpreter, line lexer.Line) *lineBuilder {
	return &lineBuilder{in: in, line: line, printAt: -1}
}

func (b *lineBuilder) build() runtime.Body {
	for idx := 0; idx < len(b.line.Tokens); idx++ {
		tok := b.line.Tokens[idx]
		if !tok.Kinds.Has(lexer.KindKeyword) {
			continue
		}
		if b.printAt >= 0 {
			// Reserved words and "=" after print were already reported.
			if !lexer.IsKeyword(tok.Text) {
				b.resolve(idx, false)
			}
			continue
		}
		switch tok.Text {
		case lexer.KeywordPrint:
			b.print(idx)
		case lexer.KeywordFunc:
			if b.function(idx) {
				idx++
			}
		case lexer.KeywordEnd:
			b.end()
		case lexer.KeywordComment, lexer.KeywordVar:
		default:
			b.resolve(idx, true)
		}
	}
	return b.stmts
}

func (b *lineBuilder) report(kind ErrorKind) {
	b.in.report(kind, b.line.Number, "")
}

func (b *lineBuilder) text(idx int) (string, bool) {
	tok, ok := b.line.At(idx)
	return tok.Text, ok
}

func (b *lineBuilder) isCommentLine() bool {
	first, ok := b.line.First()
	return ok && first.Text == lexer.KeywordComment
}

func (b *lineBuilder) print(idx int) {
	b.printAt = idx
	var terms []string
	for _, tok := range b.line.Tokens[idx+1:] {
		switch {
		case lexer.IsKeyword(tok.Text):
			b.report(IllegalKeywordInPrint)
		case tok.Text == "=":
			b.report(IllegalAssignmentInPrint)
		default:
			terms = append(terms, tok.Text)
		}
	}
	b.stmts = append(b.stmts, runtime.Emit{Expr: runtime.NewExpr(terms...)})
}

// function opens a definition and reports whether the following token was
// consumed as its name.
func (b *lineBuilder) function(idx int) bool {
	name, ok := b.text(idx + 1)
	switch {
	case !ok:
		b.report(UnnamedFunctionDeclaration)
		return false
	case b.in.funcs.Has(name):
		b.report(DuplicateFunctionDeclaration)
	case b.in.definitionOpen:
		b.report(NestedFunctionDefinition)
	default:
		b.in.definitionOpen = true
		b.in.currentName = name
		b.in.currentBody = nil
		b.in.funcs.Register(name)
		b.opened = true
	}
	return true
}

func (b *lineBuilder) end() {
	if !b.in.definitionOpen {
		b.report(UnterminatedFunctionEnd)
		return
	}
	b.stmts = append(b.stmts, runtime.Define{Name: b.in.currentName, Body: b.in.currentBody.Clone()})
	b.in.definitionOpen = false
	b.in.currentName = ""
	b.in.currentBody = nil
}

// resolve applies the identifier rules in priority order: call, declaration,
// assignment, reference, undefined. Declarations and assignments are not
// recognised inside a print statement.
func (b *lineBuilder) resolve(idx int, binding bool) {
	name := b.line.Tokens[idx].Text
	in := b.in

	if body, ok := in.funcs.Get(name); ok {
		b.stmts = append(b.stmts, body...)
		return
	}
	if binding {
		if prev, _ := b.text(idx - 1); prev == lexer.KeywordVar {
			b.declare(idx, name)
			return
		}
		if next, _ := b.text(idx + 1); next == "=" {
			b.assign(idx, name)
			return
		}
	}
	if val, ok := in.vars.Get(name); ok {
		// Inside a definition the name stays in the body and is looked up
		// each time the body runs.
		if !in.definitionOpen {
			b.stmts = b.stmts.Substitute(name, runtime.Literal(val))
		}
		return
	}
	if !b.isCommentLine() {
		b.report(UndefinedSymbol)
	}
}

func (b *lineBuilder) declare(idx int, name string) {
	if b.in.vars.Has(name) {
		b.report(DuplicateVariableDeclaration)
		return
	}
	value, ok := b.text(idx + 1)
	if !ok {
		b.report(MissingInitialValue)
		return
	}
	b.stmts = append(b.stmts, runtime.Declare{Name: name, Expr: runtime.NewExpr(value)})
}

func (b *lineBuilder) assign(idx int, name string) {
	if !b.in.vars.Has(name) {
		b.report(AssignmentToUndeclaredVariable)
		return
	}
	var terms []string
	for _, tok := range b.line.Tokens[idx+2:] {
		terms = append(terms, tok.Text)
	}
	b.stmts = append(b.stmts, runtime.Assign{Name: name, Expr: runtime.NewExpr(terms...)})
}
