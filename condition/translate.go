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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rulego/sqlfront/ast"
)

// ErrUnsupported is returned for nodes that have no expr-lang form, such as
// sub-queries and window functions.
var ErrUnsupported = errors.New("expression cannot be translated")

// exprReserved are names expr-lang parses as operators or literals.
var exprReserved = map[string]struct{}{
	"and": {}, "or": {}, "not": {}, "in": {}, "matches": {}, "contains": {},
	"startsWith": {}, "endsWith": {}, "nil": {}, "true": {}, "false": {}, "let": {},
}

var binaryOperators = map[ast.BinaryOp]string{
	ast.OpOr:           "||",
	ast.OpAnd:          "&&",
	ast.OpEqual:        "==",
	ast.OpNotEqual:     "!=",
	ast.OpLess:         "<",
	ast.OpGreater:      ">",
	ast.OpLessEqual:    "<=",
	ast.OpGreaterEqual: ">=",
	ast.OpAdd:          "+",
	ast.OpSubtract:     "-",
	ast.OpMultiply:     "*",
	ast.OpDivide:       "/",
	ast.OpModulo:       "%",
}

var binaryFunctions = map[ast.BinaryOp]string{
	ast.OpBitOr:      "bit_or",
	ast.OpBitXor:     "bit_xor",
	ast.OpBitAnd:     "bit_and",
	ast.OpShiftLeft:  "shift_left",
	ast.OpShiftRight: "shift_right",
}

// Translate renders an AST expression as expr-lang source.
//
//	a.b > 0xFF and name like 'x%'   =>   ((a.b > 255) && like_match(name, "x%"))
func Translate(node ast.Node) (string, error) {
	var b strings.Builder
	if err := translate(&b, node); err != nil {
		return "", err
	}
	return b.String(), nil
}

func translate(b *strings.Builder, node ast.Node) error {
	switch n := node.(type) {
	case *ast.IntegerNode:
		v, err := n.Int64()
		if err != nil {
			return err
		}
		b.WriteString(strconv.FormatInt(v, 10))
	case *ast.DecimalNode:
		v, err := n.Value()
		if err != nil {
			return err
		}
		text := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(text, ".") {
			text += ".0"
		}
		b.WriteString(text)
	case *ast.StringNode:
		b.WriteString(strconv.Quote(n.Value))
	case *ast.BooleanNode:
		b.WriteString(strconv.FormatBool(n.Value))
	case *ast.NullNode:
		b.WriteString("nil")
	case *ast.IdentifierNode:
		writeName(b, n.Name)
	case *ast.DotNode:
		if err := translate(b, n.Root); err != nil {
			return err
		}
		b.WriteString("." + n.Name)
	case *ast.IndexNode:
		if err := translate(b, n.Root); err != nil {
			return err
		}
		b.WriteByte('[')
		if err := translate(b, n.Index); err != nil {
			return err
		}
		b.WriteByte(']')
	case *ast.BinaryNode:
		return translateBinary(b, n)
	case *ast.UnaryNode:
		if n.Op == ast.OpNot {
			b.WriteString("!(")
		} else {
			b.WriteString("-(")
		}
		if err := translate(b, n.Operand); err != nil {
			return err
		}
		b.WriteByte(')')
	case *ast.IsNullNode:
		op := " == nil)"
		if n.Not {
			op = " != nil)"
		}
		b.WriteByte('(')
		if err := translate(b, n.Expr); err != nil {
			return err
		}
		b.WriteString(op)
	case *ast.InNode:
		if n.Query != nil {
			return fmt.Errorf("%w: IN with a sub-query", ErrUnsupported)
		}
		if n.Not {
			b.WriteString("!")
		}
		b.WriteByte('(')
		if err := translate(b, n.Expr); err != nil {
			return err
		}
		b.WriteString(" in [")
		if err := translateList(b, n.Values); err != nil {
			return err
		}
		b.WriteString("])")
	case *ast.BetweenNode:
		b.WriteByte('(')
		if err := translate(b, n.Expr); err != nil {
			return err
		}
		b.WriteString(" >= ")
		if err := translate(b, n.Low); err != nil {
			return err
		}
		b.WriteString(" && ")
		if err := translate(b, n.Expr); err != nil {
			return err
		}
		b.WriteString(" <= ")
		if err := translate(b, n.High); err != nil {
			return err
		}
		b.WriteByte(')')
	case *ast.ContainsNode:
		b.WriteString("contains_any(")
		if err := translate(b, n.Expr); err != nil {
			return err
		}
		b.WriteString(", ")
		if err := translateList(b, n.Values); err != nil {
			return err
		}
		b.WriteByte(')')
	case *ast.CaseNode:
		return translateCase(b, n)
	case *ast.FunctionNode:
		if n.Distinct {
			return fmt.Errorf("%w: DISTINCT in %s()", ErrUnsupported, n.Name)
		}
		if n.Receiver != nil {
			if err := translate(b, n.Receiver); err != nil {
				return err
			}
			b.WriteByte('.')
		}
		b.WriteString(n.Name + "(")
		if err := translateList(b, n.Args); err != nil {
			return err
		}
		b.WriteByte(')')
	default:
		return fmt.Errorf("%w: %T", ErrUnsupported, node)
	}
	return nil
}

func translateBinary(b *strings.Builder, n *ast.BinaryNode) error {
	switch n.Op {
	case ast.OpLike, ast.OpNotLike:
		if n.Op == ast.OpNotLike {
			b.WriteString("!")
		}
		return translateCall(b, "like_match", n.Left, n.Right)
	case ast.OpRLike, ast.OpNotRLike:
		if n.Op == ast.OpNotRLike {
			b.WriteString("!")
		}
		return translateInfix(b, "matches", n.Left, n.Right)
	}
	if fn, ok := binaryFunctions[n.Op]; ok {
		return translateCall(b, fn, n.Left, n.Right)
	}
	op, ok := binaryOperators[n.Op]
	if !ok {
		return fmt.Errorf("%w: operator %s", ErrUnsupported, n.Op)
	}
	return translateInfix(b, op, n.Left, n.Right)
}

func translateInfix(b *strings.Builder, op string, left, right ast.Node) error {
	b.WriteByte('(')
	if err := translate(b, left); err != nil {
		return err
	}
	b.WriteString(" " + op + " ")
	if err := translate(b, right); err != nil {
		return err
	}
	b.WriteByte(')')
	return nil
}

func translateCall(b *strings.Builder, name string, args ...ast.Node) error {
	b.WriteString(name + "(")
	if err := translateList(b, args); err != nil {
		return err
	}
	b.WriteByte(')')
	return nil
}

func translateList(b *strings.Builder, nodes []ast.Node) error {
	for i, n := range nodes {
		if i > 0 {
			b.WriteString(", ")
		}
		if err := translate(b, n); err != nil {
			return err
		}
	}
	return nil
}

// translateCase nests the arms as ternaries; a missing ELSE yields nil.
func translateCase(b *strings.Builder, n *ast.CaseNode) error {
	for _, w := range n.Whens {
		b.WriteByte('(')
		if err := translate(b, w.When); err != nil {
			return err
		}
		b.WriteString(" ? ")
		if err := translate(b, w.Then); err != nil {
			return err
		}
		b.WriteString(" : ")
	}
	if n.Else != nil {
		if err := translate(b, n.Else); err != nil {
			return err
		}
	} else {
		b.WriteString("nil")
	}
	b.WriteString(strings.Repeat(")", len(n.Whens)))
	return nil
}

func writeName(b *strings.Builder, name string) {
	if _, reserved := exprReserved[name]; reserved {
		b.WriteString(`$env[` + strconv.Quote(name) + `]`)
		return
	}
	b.WriteString(name)
}
