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
	"math"

	"github.com/expr-lang/expr"
	"github.com/spf13/cast"

	"github.com/rulego/sqlfront/ast"
)

// ConstInt folds an expression built only from literals and operators to an
// integer. It reports false when the expression refers to a field, calls a
// function or does not produce a whole number.
func ConstInt(node ast.Node) (int64, bool) {
	if node == nil || !isConstant(node) {
		return 0, false
	}
	if lit, ok := node.(*ast.IntegerNode); ok {
		v, err := lit.Int64()
		return v, err == nil
	}
	source, err := Translate(node)
	if err != nil {
		return 0, false
	}
	program, err := expr.Compile(source, functions()...)
	if err != nil {
		return 0, false
	}
	out, err := expr.Run(program, nil)
	if err != nil {
		return 0, false
	}
	switch v := out.(type) {
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, false
		}
	case bool, string, nil:
		return 0, false
	}
	n, err := cast.ToInt64E(out)
	return n, err == nil
}

func isConstant(node ast.Node) bool {
	constant := true
	ast.Inspect(node, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.IdentifierNode, *ast.DotNode, *ast.IndexNode, *ast.FunctionNode,
			*ast.StarNode, *ast.SubqueryNode:
			constant = false
		}
		return constant
	})
	return constant
}
