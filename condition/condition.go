/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package condition

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/spf13/cast"

	"github.com/rulego/sqlfront/ast"
)

// Condition is a compiled boolean predicate.
type Condition interface {
	Evaluate(env interface{}) bool
}

// ExprCondition is a predicate compiled to an expr-lang program.
type ExprCondition struct {
	source  string
	program *vm.Program
}

// NewExprCondition translates a boolean AST expression and compiles it.
func NewExprCondition(node ast.Node) (*ExprCondition, error) {
	source, err := Translate(node)
	if err != nil {
		return nil, err
	}
	return Compile(source)
}

// Compile compiles expr-lang source that yields a bool.
func Compile(source string) (*ExprCondition, error) {
	program, err := expr.Compile(source, append(functions(), expr.AllowUndefinedVariables(), expr.AsBool())...)
	if err != nil {
		return nil, err
	}
	return &ExprCondition{source: source, program: program}, nil
}

// Source returns the expr-lang text of the condition.
func (ec *ExprCondition) Source() string {
	return ec.source
}

// Evaluate runs the condition against env; a runtime error counts as false.
func (ec *ExprCondition) Evaluate(env interface{}) bool {
	ok, err := ec.EvaluateE(env)
	return err == nil && ok
}

// EvaluateE runs the condition against env and reports runtime errors.
func (ec *ExprCondition) EvaluateE(env interface{}) (bool, error) {
	result, err := expr.Run(ec.program, env)
	if err != nil {
		return false, err
	}
	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("condition %q returned %T, not bool", ec.source, result)
	}
	return b, nil
}

// functions are the helpers translated expressions may call.
func functions() []expr.Option {
	return []expr.Option{
		expr.Function("like_match", func(params ...any) (any, error) {
			if len(params) != 2 {
				return false, fmt.Errorf("like_match function requires 2 parameters")
			}
			text, ok1 := params[0].(string)
			pattern, ok2 := params[1].(string)
			if !ok1 || !ok2 {
				return false, fmt.Errorf("like_match function requires string parameters")
			}
			return MatchLike(text, pattern), nil
		}),
		expr.Function("contains_any", func(params ...any) (any, error) {
			if len(params) < 2 {
				return false, fmt.Errorf("contains_any function requires at least 2 parameters")
			}
			return containsAny(params[0], params[1:]), nil
		}),
		intFunction("bit_or", func(a, b int64) int64 { return a | b }),
		intFunction("bit_xor", func(a, b int64) int64 { return a ^ b }),
		intFunction("bit_and", func(a, b int64) int64 { return a & b }),
		intFunction("shift_left", func(a, b int64) int64 { return a << uint64(b) }),
		intFunction("shift_right", func(a, b int64) int64 { return a >> uint64(b) }),
	}
}

func intFunction(name string, fn func(a, b int64) int64) expr.Option {
	return expr.Function(name, func(params ...any) (any, error) {
		if len(params) != 2 {
			return nil, fmt.Errorf("%s function requires 2 parameters", name)
		}
		a, err := cast.ToInt64E(params[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		b, err := cast.ToInt64E(params[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if (name == "shift_left" || name == "shift_right") && (b < 0 || b > 63) {
			return nil, fmt.Errorf("%s: shift count %d out of range", name, b)
		}
		return fn(a, b), nil
	})
}

// containsAny reports whether container holds any of values. Strings match
// substrings; slices and arrays match elements.
func containsAny(container any, values []any) bool {
	if s, ok := container.(string); ok {
		for _, v := range values {
			if sub, err := cast.ToStringE(v); err == nil && strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
	rv := reflect.ValueOf(container)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		for _, v := range values {
			if equalValues(elem, v) {
				return true
			}
		}
	}
	return false
}

func equalValues(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	fa, errA := cast.ToFloat64E(a)
	fb, errB := cast.ToFloat64E(b)
	if errA == nil && errB == nil {
		return fa == fb
	}
	return false
}
