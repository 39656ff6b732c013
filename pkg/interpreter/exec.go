package interpreter

import (
	"fmt"
	"strings"

	"github.com/Firice1269/Firic/pkg/runtime"
)

// execute runs synthesized statements in order, stopping at the first
// evaluation failure.
func (i *Interpreter) execute(body runtime.Body) error {
	for _, stmt := range body {
		if err := i.executeStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) executeStatement(stmt runtime.Statement) error {
	switch s := stmt.(type) {
	case runtime.Emit:
		if s.Expr.Empty() {
			_, err := fmt.Fprintln(i.stdout)
			return err
		}
		values, err := runtime.EvaluateArgs(s.Expr, i.vars)
		if err != nil {
			return err
		}
		parts := make([]string, len(values))
		for idx, val := range values {
			parts[idx] = runtime.Format(val)
		}
		_, err = fmt.Fprintln(i.stdout, strings.Join(parts, " "))
		return err
	case runtime.Declare:
		val, err := runtime.Evaluate(s.Expr, i.vars)
		if err != nil {
			return err
		}
		i.vars.Define(s.Name, val)
		return nil
	case runtime.Assign:
		val, err := runtime.Evaluate(s.Expr, i.vars)
		if err != nil {
			return err
		}
		return i.vars.Assign(s.Name, val)
	case runtime.Define:
		i.funcs.Commit(s.Name, s.Body)
		return nil
	default:
		return fmt.Errorf("unsupported statement %T", stmt)
	}
}
