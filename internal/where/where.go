// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package where filters change records with an HCL boolean expression such as
//
//	kind == "changed" && contains(changed, "name")
//	row["school"] == "0042" || can(regex("^2024-", previous["start"]))
//
// Variables: kind (string), changed (list of changed column names), row (map of
// column name to value) and previous (map, empty unless kind is "changed").
package where

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/tryfunc"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/staranto/snapdiff/internal/differ"
	"github.com/staranto/snapdiff/internal/log"
	"github.com/staranto/snapdiff/internal/row"
)

// ErrNotBool is returned when an expression does not evaluate to true or false.
var ErrNotBool = errors.New("where expression must evaluate to a bool")

// Filter is a compiled where expression bound to a header.
type Filter struct {
	src    string
	expr   hclsyntax.Expression
	header []string
	funcs  map[string]function.Function
}

// Compile parses expr. An empty expression yields a nil Filter, which matches
// every record.
func Compile(expr string, header []string) (*Filter, error) {
	if expr == "" {
		return nil, nil
	}

	parsed, diags := hclsyntax.ParseExpression([]byte(expr), "where", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("error parsing --where: %s", diags.Error())
	}

	return &Filter{
		src:    expr,
		expr:   parsed,
		header: header,
		funcs:  functions(),
	}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.src
}

// Match evaluates the expression against c.
func (f *Filter) Match(c differ.Change) (bool, error) {
	if f == nil {
		return true, nil
	}

	ctx := &hcl.EvalContext{
		Variables: f.variables(c),
		Functions: f.funcs,
	}

	v, diags := f.expr.Value(ctx)
	if diags.HasErrors() {
		return false, fmt.Errorf("error evaluating --where: %s", diags.Error())
	}
	if v.IsNull() || !v.IsKnown() || v.Type() != cty.Bool {
		return false, fmt.Errorf("%w, got %s", ErrNotBool, v.Type().FriendlyName())
	}
	return v.True(), nil
}

// Apply returns the changes that match, in order.
func (f *Filter) Apply(changes []differ.Change) ([]differ.Change, error) {
	if f == nil {
		return changes, nil
	}

	kept := make([]differ.Change, 0, len(changes))
	for _, c := range changes {
		ok, err := f.Match(c)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, c)
		}
	}
	log.Debugf("where %q kept %d of %d", f.src, len(kept), len(changes))
	return kept, nil
}

func (f *Filter) variables(c differ.Change) map[string]cty.Value {
	changed := make([]cty.Value, 0, len(c.Columns))
	for _, i := range c.Columns {
		changed = append(changed, cty.StringVal(f.header[i]))
	}
	changedVal := cty.ListValEmpty(cty.String)
	if len(changed) > 0 {
		changedVal = cty.ListVal(changed)
	}

	previous := cty.MapValEmpty(cty.String)
	if c.Kind == differ.Changed {
		previous = f.rowValue(c.Previous)
	}

	return map[string]cty.Value{
		"kind":     cty.StringVal(c.Kind.String()),
		"changed":  changedVal,
		"row":      f.rowValue(c.Row),
		"previous": previous,
	}
}

// rowValue maps column names to values. Later duplicate header names win.
func (f *Filter) rowValue(r row.Row) cty.Value {
	if r.Len() == 0 || len(f.header) == 0 {
		return cty.MapValEmpty(cty.String)
	}
	m := make(map[string]cty.Value, len(f.header))
	for i, name := range f.header {
		m[name] = cty.StringVal(r.Value(i))
	}
	return cty.MapVal(m)
}

func functions() map[string]function.Function {
	return map[string]function.Function{
		"can":       tryfunc.CanFunc,
		"coalesce":  stdlib.CoalesceFunc,
		"contains":  stdlib.ContainsFunc,
		"format":    stdlib.FormatFunc,
		"length":    stdlib.LengthFunc,
		"lower":     stdlib.LowerFunc,
		"parseint":  stdlib.ParseIntFunc,
		"regex":     stdlib.RegexFunc,
		"regexall":  stdlib.RegexAllFunc,
		"substr":    stdlib.SubstrFunc,
		"trimspace": stdlib.TrimSpaceFunc,
		"try":       tryfunc.TryFunc,
		"upper":     stdlib.UpperFunc,
	}
}
