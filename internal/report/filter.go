package report

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// RowFilter is a Starlark boolean expression evaluated against each row.
// Available variables: name, calls, total_us, self_us, avg_us, max_us,
// shape. Example: `calls > 100 and total_us > 5000`.
type RowFilter struct {
	expr string
}

// CompileFilter validates the expression syntax up front so bad filters
// fail before any aggregation output is written.
func CompileFilter(expr string) (*RowFilter, error) {
	if _, err := syntax.ParseExpr("where", expr, 0); err != nil {
		return nil, fmt.Errorf("parse filter %q: %w", expr, err)
	}
	return &RowFilter{expr: expr}, nil
}

// Match evaluates the filter against one row.
func (f *RowFilter) Match(row Row) (bool, error) {
	env := starlark.StringDict{
		"name":     starlark.String(row.Name),
		"calls":    starlark.MakeInt64(row.Calls),
		"total_us": starlark.Float(row.TotalUS),
		"self_us":  starlark.Float(row.SelfUS),
		"avg_us":   starlark.Float(row.AvgUS),
		"max_us":   starlark.Float(row.MaxUS),
		"shape":    starlark.String(row.Shape),
	}
	thread := &starlark.Thread{Name: "where"}
	v, err := starlark.Eval(thread, "where", f.expr, env)
	if err != nil {
		return false, fmt.Errorf("eval filter %q: %w", f.expr, err)
	}
	return bool(v.Truth()), nil
}
