package interpreter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Firice1269/Firic/pkg/driver"
	"github.com/Firice1269/Firic/pkg/lexer"
	"github.com/Firice1269/Firic/pkg/runtime"
)

// Status is the outcome of a run.
type Status int

const (
	Completed Status = iota
	Halted
)

func (s Status) String() string {
	if s == Halted {
		return "halted"
	}
	return "completed"
}

// Result summarises a run. HaltLine is the 1-based line at which processing
// stopped and is zero for completed runs.
type Result struct {
	Status      Status
	HaltLine    int
	Diagnostics []driver.Diagnostic
	cause       error
}

// Errors returns the error-severity diagnostics.
func (r Result) Errors() []driver.Diagnostic {
	var out []driver.Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == driver.SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// Err returns a *HaltError for halted runs and nil otherwise.
func (r Result) Err() error {
	if r.Status != Halted {
		return nil
	}
	return &HaltError{Line: r.HaltLine, Diagnostics: r.Errors(), Cause: r.cause}
}

// Config wires an interpreter to its surroundings.
type Config struct {
	// File names the script in diagnostics.
	File   string
	Stdout io.Writer
	Stderr io.Writer
	// Trace receives each line's tokens and synthesized statements. Nil
	// disables tracing.
	Trace io.Writer
	// Color highlights diagnostic labels.
	Color bool
}

// Interpreter holds the symbol tables and the dispatcher state for one script.
type Interpreter struct {
	file   string
	stdout io.Writer
	stderr io.Writer
	trace  io.Writer
	color  bool

	vars  *runtime.Variables
	funcs *runtime.Functions

	definitionOpen bool
	currentName    string
	currentBody    runtime.Body
	failed         bool
	diagnostics    []driver.Diagnostic
}

// New creates an interpreter with empty symbol tables.
func New(cfg Config) *Interpreter {
	i := &Interpreter{
		file:   cfg.File,
		stdout: cfg.Stdout,
		stderr: cfg.Stderr,
		trace:  cfg.Trace,
		color:  cfg.Color,
		vars:   runtime.NewVariables(),
		funcs:  runtime.NewFunctions(),
	}
	if i.stdout == nil {
		i.stdout = io.Discard
	}
	if i.stderr == nil {
		i.stderr = io.Discard
	}
	return i
}

// Variables exposes the variable table.
func (i *Interpreter) Variables() *runtime.Variables { return i.vars }

// Functions exposes the function table.
func (i *Interpreter) Functions() *runtime.Functions { return i.funcs }

// RunSource tokenizes source and runs it.
func (i *Interpreter) RunSource(ctx context.Context, source string) Result {
	return i.Run(ctx, lexer.Tokenize(source))
}

// Run consumes lines in order until they are exhausted, an error halts the
// run or ctx is cancelled. The symbol tables keep their contents across runs;
// the dispatcher state does not.
func (i *Interpreter) Run(ctx context.Context, lines []lexer.Line) Result {
	result := i.run(ctx, lines)
	if i.trace != nil {
		fmt.Fprintf(i.trace, "variables: %s\n", strings.Join(i.vars.Keys(), ", "))
		fmt.Fprintf(i.trace, "functions: %s\n", strings.Join(i.funcs.Keys(), ", "))
	}
	return result
}

func (i *Interpreter) run(ctx context.Context, lines []lexer.Line) Result {
	i.definitionOpen = false
	i.currentName = ""
	i.currentBody = nil
	i.failed = false
	i.diagnostics = nil

	last := 0
	for _, line := range lines {
		last = line.Number
		if err := ctx.Err(); err != nil {
			return i.halt(line.Number, err)
		}
		if !i.processLine(line) {
			return i.halt(line.Number, nil)
		}
	}

	if i.definitionOpen {
		i.report(UnclosedFunctionDefinition, last, fmt.Sprintf("Function %q is never ended.", i.currentName))
	}
	if i.failed {
		return i.halt(last, nil)
	}
	return Result{Status: Completed, Diagnostics: i.diagnostics}
}

func (i *Interpreter) halt(line int, cause error) Result {
	return Result{Status: Halted, HaltLine: line, Diagnostics: i.diagnostics, cause: cause}
}

// processLine reports false once the run must stop.
func (i *Interpreter) processLine(line lexer.Line) bool {
	b := newLineBuilder(i, line)
	stmts := b.build()

	if i.trace != nil {
		fmt.Fprintln(i.trace, line.String())
		fmt.Fprintln(i.trace, stmts.String())
	}

	switch {
	case i.definitionOpen && !b.opened && len(stmts) > 0:
		i.currentBody = append(i.currentBody, stmts...)
		return true
	case i.failed:
		return false
	}
	if err := i.execute(stmts); err != nil {
		i.report(EvaluationError, line.Number, err.Error())
		return false
	}
	return true
}

func (i *Interpreter) report(kind ErrorKind, line int, message string) {
	if message == "" {
		message = kind.Message()
	}
	diag := driver.Diagnostic{
		Severity: kind.Severity(),
		Kind:     string(kind),
		Message:  message,
		Location: driver.DiagnosticLocation{File: i.file, Line: line},
	}
	i.diagnostics = append(i.diagnostics, diag)
	fmt.Fprintln(i.stderr, driver.DescribeDiagnostic(diag, i.color))
	if diag.Severity == driver.SeverityError {
		i.failed = true
	}
}
