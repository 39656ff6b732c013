package interpreter

import (
	"fmt"

	"github.com/Firice1269/Firic/pkg/driver"
)

// ErrorKind identifies a class of reported problem.
type ErrorKind string

const (
	DuplicateFunctionDeclaration   ErrorKind = "DuplicateFunctionDeclaration"
	UnnamedFunctionDeclaration     ErrorKind = "UnnamedFunctionDeclaration"
	UnterminatedFunctionEnd        ErrorKind = "UnterminatedFunctionEnd"
	NestedFunctionDefinition       ErrorKind = "NestedFunctionDefinition"
	IllegalKeywordInPrint          ErrorKind = "IllegalKeywordInPrint"
	IllegalAssignmentInPrint       ErrorKind = "IllegalAssignmentInPrint"
	DuplicateVariableDeclaration   ErrorKind = "DuplicateVariableDeclaration"
	MissingInitialValue            ErrorKind = "MissingInitialValue"
	AssignmentToUndeclaredVariable ErrorKind = "AssignmentToUndeclaredVariable"
	UndefinedSymbol                ErrorKind = "UndefinedSymbol"
	EvaluationError                ErrorKind = "EvaluationError"
	UnclosedFunctionDefinition     ErrorKind = "UnclosedFunctionDefinition"
)

var kindMessages = map[ErrorKind]string{
	DuplicateFunctionDeclaration:   "Cannot define an already existing function.",
	UnnamedFunctionDeclaration:     "Cannot define an unnamed function.",
	UnterminatedFunctionEnd:        "Cannot end a nonexistent function.",
	NestedFunctionDefinition:       "Cannot define a function inside another function.",
	IllegalKeywordInPrint:          "Cannot call keywords in a print statement.",
	IllegalAssignmentInPrint:       "Cannot assign variables in a print statement.",
	DuplicateVariableDeclaration:   "Cannot declare an already existing variable.",
	MissingInitialValue:            "Cannot declare a variable without a value.",
	AssignmentToUndeclaredVariable: "Cannot assign a nonexistent variable.",
	UndefinedSymbol:                "Undefined keyword, function, or variable.",
}

// Message returns the fixed diagnostic text for kinds that have one.
func (k ErrorKind) Message() string {
	return kindMessages[k]
}

// Severity reports whether the kind halts the run.
func (k ErrorKind) Severity() driver.DiagnosticSeverity {
	if k == UnclosedFunctionDefinition {
		return driver.SeverityWarning
	}
	return driver.SeverityError
}

// HaltError describes a run that stopped before consuming all of its input.
type HaltError struct {
	Line        int
	Diagnostics []driver.Diagnostic
	// Cause is set when the run was cancelled rather than halted by an error.
	Cause error
}

func (e *HaltError) Error() string {
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("halted at line %d: %v", e.Line, e.Cause)
	case len(e.Diagnostics) > 0:
		d := e.Diagnostics[0]
		return fmt.Sprintf("halted at line %d: %s (%s)", e.Line, d.Error(), d.Kind)
	default:
		return fmt.Sprintf("halted at line %d", e.Line)
	}
}

func (e *HaltError) Unwrap() error {
	return e.Cause
}
