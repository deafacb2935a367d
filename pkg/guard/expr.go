package guard

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/waymark/pkg/domain"
	"github.com/hashicorp/hil"
	"github.com/hashicorp/hil/ast"
)

// Expression is a guard written in HIL syntax. Variables are the top-level
// fields of the resource representation.
type Expression struct {
	source string
	tree   ast.Node
}

// Expr parses src once. Both `state == "draft"` and the interpolated form
// `${state == "draft"}` are accepted.
func Expr(src string) (*Expression, error) {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return nil, fmt.Errorf("empty guard expression")
	}
	if !strings.Contains(trimmed, "${") {
		trimmed = "${" + trimmed + "}"
	}
	tree, err := hil.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid guard expression %q: %w", src, err)
	}
	return &Expression{source: src, tree: tree}, nil
}

// MustExpr is like Expr but panics on a syntax error.
func MustExpr(src string) *Expression {
	e, err := Expr(src)
	if err != nil {
		panic(err)
	}
	return e
}

// String returns the expression as written.
func (e *Expression) String() string {
	return e.source
}

// Allow implements domain.Guard.
func (e *Expression) Allow(r domain.Resource) (bool, error) {
	fields, err := domain.FieldsOf(r)
	if err != nil {
		return false, err
	}

	vars := make(map[string]ast.Variable, fields.Len())
	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
		v, err := toVariable(normalize(pair.Value))
		if err != nil {
			return false, fmt.Errorf("field %q: %w", pair.Key, err)
		}
		vars[pair.Key] = v
	}

	result, err := hil.Eval(e.tree, &hil.EvalConfig{
		GlobalScope: &ast.BasicScope{VarMap: vars},
	})
	if err != nil {
		return false, fmt.Errorf("evaluating %q: %w", e.source, err)
	}

	switch result.Type {
	case hil.TypeBool:
		return result.Value.(bool), nil
	case hil.TypeString:
		b, err := strconv.ParseBool(result.Value.(string))
		if err != nil {
			return false, fmt.Errorf("expression %q did not yield a boolean: %q", e.source, result.Value)
		}
		return b, nil
	default:
		return false, fmt.Errorf("expression %q did not yield a boolean (got %s)", e.source, result.Type)
	}
}

// toVariable keeps scalar types intact; hil.InterfaceToVariable would
// weakly decode them to strings.
func toVariable(v any) (ast.Variable, error) {
	switch val := v.(type) {
	case string:
		return ast.Variable{Type: ast.TypeString, Value: val}, nil
	case int:
		return ast.Variable{Type: ast.TypeInt, Value: val}, nil
	case float64:
		return ast.Variable{Type: ast.TypeFloat, Value: val}, nil
	case bool:
		return ast.Variable{Type: ast.TypeBool, Value: val}, nil
	default:
		return hil.InterfaceToVariable(v)
	}
}

// normalize maps decoded JSON values onto types HIL compares naturally:
// integral numbers become ints, other numbers floats, and nulls empty strings.
func normalize(v any) any {
	switch val := v.(type) {
	case nil:
		return ""
	case json.Number:
		if i, err := val.Int64(); err == nil && i >= math.MinInt && i <= math.MaxInt {
			return int(i)
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	default:
		return v
	}
}
