package driver

import (
	"fmt"
	"strings"
)

// DiagnosticSeverity distinguishes halting errors from advisory warnings.
type DiagnosticSeverity int

const (
	SeverityError DiagnosticSeverity = iota
	SeverityWarning
)

func (s DiagnosticSeverity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	default:
		return "error"
	}
}

// DiagnosticLocation pins a diagnostic to a script and a 1-based line.
type DiagnosticLocation struct {
	File string
	Line int
}

func (l DiagnosticLocation) String() string {
	switch {
	case l.File == "" && l.Line == 0:
		return ""
	case l.File == "":
		return fmt.Sprintf("line %d", l.Line)
	default:
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}
}

// Diagnostic is a single reported problem. Kind is a stable identifier such
// as "UndefinedSymbol"; Message is the human-readable text.
type Diagnostic struct {
	Severity DiagnosticSeverity
	Kind     string
	Message  string
	Location DiagnosticLocation
}

func (d Diagnostic) Error() string {
	return DescribeDiagnostic(d, false)
}

const (
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiReset  = "\033[0m"
)

// DescribeDiagnostic renders d as
//
//	ERROR: File: main.fi, Line: 3, Error Message: ...
//
// with the label highlighted when color is set.
func DescribeDiagnostic(d Diagnostic, color bool) string {
	label, tint := "ERROR:", ansiRed
	if d.Severity == SeverityWarning {
		label, tint = "WARNING:", ansiYellow
	}
	var b strings.Builder
	if color {
		b.WriteString(tint)
		b.WriteString(label)
		b.WriteString(ansiReset)
	} else {
		b.WriteString(label)
	}
	fmt.Fprintf(&b, " File: %s, Line: %d, Error Message: %s", d.Location.File, d.Location.Line, d.Message)
	return b.String()
}
