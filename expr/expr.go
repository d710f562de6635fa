// Package expr provides expression-backed callables: small anonymous
// computation units with a reproducible textual form.
//
// The expression language is HCL expression syntax evaluated over cty values.
// The host controls the evaluation context, so a loaded expression can reach
// only its own parameters and a fixed table of pure functions; there is no
// process escape. Each callable retains its verbatim source so the codec can
// re-emit the identical text.
package expr

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Func is a callable produced by parsing a literal source expression. Its
// parameters are the free variables of the expression, sorted and unique.
type Func struct {
	name   string
	source string
	expr   hcl.Expression
	params []string
}

// New parses source and returns the callable under the given display name.
func New(name, source string) (*Func, error) {
	parsed, diags := hclsyntax.ParseExpression([]byte(source), name, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("expr: parsing %q: %w", name, diags)
	}
	return &Func{
		name:   name,
		source: source,
		expr:   parsed,
		params: freeVariables(parsed),
	}, nil
}

// FuncName returns the display name given at load time.
func (f *Func) FuncName() string { return f.name }

// Doc returns the documentation string, which defaults to the source.
func (f *Func) Doc() string { return f.source }

// Source returns the verbatim source expression.
func (f *Func) Source() string { return f.source }

// Params returns the free variables of the expression, sorted and unique.
func (f *Func) Params() []string {
	params := make([]string, len(f.params))
	copy(params, f.params)
	return params
}

// Call evaluates the expression with the given named arguments. Every
// parameter must be supplied. Evaluation errors propagate as-is.
func (f *Func) Call(args map[string]any) (any, error) {
	vars := make(map[string]cty.Value, len(args))
	for name, v := range args {
		val, err := toCty(v)
		if err != nil {
			return nil, fmt.Errorf("expr: argument %q: %w", name, err)
		}
		vars[name] = val
	}
	for _, p := range f.params {
		if _, ok := vars[p]; !ok {
			return nil, fmt.Errorf("expr: %s: missing argument %q", f.name, p)
		}
	}
	result, diags := f.expr.Value(&hcl.EvalContext{
		Variables: vars,
		Functions: evalFunctions,
	})
	if diags.HasErrors() {
		return nil, diags
	}
	return fromCty(result)
}

// Invoke evaluates the expression with positional arguments bound to the
// parameters in sorted order.
func (f *Func) Invoke(args ...any) (any, error) {
	if len(args) != len(f.params) {
		return nil, fmt.Errorf("expr: %s takes %d arguments, got %d", f.name, len(f.params), len(args))
	}
	named := make(map[string]any, len(args))
	for i, p := range f.params {
		named[p] = args[i]
	}
	return f.Call(named)
}

// freeVariables extracts the unique root names referenced by an expression.
func freeVariables(e hcl.Expression) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, traversal := range e.Variables() {
		root := traversal.RootName()
		if _, ok := seen[root]; ok {
			continue
		}
		seen[root] = struct{}{}
		names = append(names, root)
	}
	sort.Strings(names)
	return names
}

// evalFunctions is the fixed function table available to every expression.
var evalFunctions = map[string]function.Function{
	"abs":    stdlib.AbsoluteFunc,
	"ceil":   stdlib.CeilFunc,
	"floor":  stdlib.FloorFunc,
	"log":    stdlib.LogFunc,
	"pow":    stdlib.PowFunc,
	"signum": stdlib.SignumFunc,
	"min":    stdlib.MinFunc,
	"max":    stdlib.MaxFunc,
	"int":    stdlib.IntFunc,
	"strlen": stdlib.StrlenFunc,
	"substr": stdlib.SubstrFunc,
	"upper":  stdlib.UpperFunc,
	"lower":  stdlib.LowerFunc,
	"format": stdlib.FormatFunc,
}
