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

package ast

import (
	"strconv"
	"strings"
)

// BinaryOp is a binary operator.
type BinaryOp int

const (
	OpOr BinaryOp = iota
	OpAnd
	OpEqual
	OpNotEqual
	OpLess
	OpGreater
	OpLessEqual
	OpGreaterEqual
	OpLike
	OpNotLike
	OpRLike
	OpNotRLike
	OpBitOr
	OpBitXor
	OpBitAnd
	OpShiftLeft
	OpShiftRight
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
)

var binaryOpText = [...]string{
	OpOr:           "or",
	OpAnd:          "and",
	OpEqual:        "=",
	OpNotEqual:     "<>",
	OpLess:         "<",
	OpGreater:      ">",
	OpLessEqual:    "<=",
	OpGreaterEqual: ">=",
	OpLike:         "like",
	OpNotLike:      "not like",
	OpRLike:        "rlike",
	OpNotRLike:     "not rlike",
	OpBitOr:        "|",
	OpBitXor:       "^",
	OpBitAnd:       "&",
	OpShiftLeft:    "<<",
	OpShiftRight:   ">>",
	OpAdd:          "+",
	OpSubtract:     "-",
	OpMultiply:     "*",
	OpDivide:       "/",
	OpModulo:       "%",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "op(" + strconv.Itoa(int(op)) + ")"
}

// IsComparison reports whether op yields a boolean from two operands.
func (op BinaryOp) IsComparison() bool {
	return op >= OpEqual && op <= OpNotRLike
}

// IsLogical reports whether op is AND or OR.
func (op BinaryOp) IsLogical() bool {
	return op == OpOr || op == OpAnd
}

// UnaryOp is a prefix operator.
type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpNegate
)

func (op UnaryOp) String() string {
	if op == OpNot {
		return "not"
	}
	return "-"
}

// IdentifierNode names a column, alias or CTE.
type IdentifierNode struct {
	Pos
	Name string
}

func (n *IdentifierNode) Id() string            { return identity("ident", strings.ToLower(n.Name)) }
func (n *IdentifierNode) String() string        { return n.Name }
func (n *IdentifierNode) ReturnType() ValueType { return Unresolved }
func (n *IdentifierNode) Children() []Node      { return nil }
func (n *IdentifierNode) Accept(v Visitor) error {
	return v.VisitIdentifier(n)
}

// DotNode is property access on an expression.
type DotNode struct {
	Pos
	Root Node
	Name string
}

func (n *DotNode) Id() string            { return identity("dot", idOf(n.Root), strings.ToLower(n.Name)) }
func (n *DotNode) String() string        { return n.Root.String() + "." + n.Name }
func (n *DotNode) ReturnType() ValueType { return Unresolved }
func (n *DotNode) Children() []Node      { return compact(n.Root) }
func (n *DotNode) Accept(v Visitor) error {
	return v.VisitDot(n)
}

// IndexNode is array access.
type IndexNode struct {
	Pos
	Root  Node
	Index Node
}

func (n *IndexNode) Id() string { return identity("index", idOf(n.Root), idOf(n.Index)) }
func (n *IndexNode) String() string {
	return n.Root.String() + "[" + n.Index.String() + "]"
}
func (n *IndexNode) ReturnType() ValueType { return Unresolved }
func (n *IndexNode) Children() []Node      { return compact(n.Root, n.Index) }
func (n *IndexNode) Accept(v Visitor) error {
	return v.VisitIndex(n)
}

// StarNode selects every column, optionally of one alias.
type StarNode struct {
	Pos
	Alias string
}

func (n *StarNode) Id() string { return identity("star", strings.ToLower(n.Alias)) }
func (n *StarNode) String() string {
	if n.Alias != "" {
		return n.Alias + ".*"
	}
	return "*"
}
func (n *StarNode) ReturnType() ValueType { return Unresolved }
func (n *StarNode) Children() []Node      { return nil }
func (n *StarNode) Accept(v Visitor) error {
	return v.VisitStar(n)
}

// FunctionNode is a function call, or a method call when Receiver is set.
type FunctionNode struct {
	Pos
	Receiver Node
	Name     string
	Args     []Node
	Distinct bool
}

func (n *FunctionNode) Id() string {
	return identity("call", idOf(n.Receiver), strings.ToLower(n.Name), strconv.FormatBool(n.Distinct), idsOf(n.Args))
}

func (n *FunctionNode) String() string {
	var b strings.Builder
	if n.Receiver != nil {
		b.WriteString(n.Receiver.String())
		b.WriteByte('.')
	}
	b.WriteString(n.Name)
	b.WriteByte('(')
	if n.Distinct {
		b.WriteString("distinct ")
	}
	b.WriteString(joinStrings(n.Args, ", "))
	b.WriteByte(')')
	return b.String()
}

func (n *FunctionNode) ReturnType() ValueType { return Unresolved }
func (n *FunctionNode) Children() []Node {
	return append(compact(n.Receiver), asNodes(n.Args)...)
}
func (n *FunctionNode) Accept(v Visitor) error {
	return v.VisitFunction(n)
}

// BinaryNode applies a binary operator.
type BinaryNode struct {
	Pos
	Op          BinaryOp
	Left, Right Node
}

func (n *BinaryNode) Id() string {
	return identity("binary", n.Op.String(), idOf(n.Left), idOf(n.Right))
}

func (n *BinaryNode) String() string {
	return "(" + n.Left.String() + " " + n.Op.String() + " " + n.Right.String() + ")"
}

func (n *BinaryNode) ReturnType() ValueType {
	if n.Op.IsComparison() || n.Op.IsLogical() {
		return TypeBool
	}
	return Unresolved
}

func (n *BinaryNode) Children() []Node { return compact(n.Left, n.Right) }
func (n *BinaryNode) Accept(v Visitor) error {
	return v.VisitBinary(n)
}

// UnaryNode applies NOT or unary minus.
type UnaryNode struct {
	Pos
	Op      UnaryOp
	Operand Node
}

func (n *UnaryNode) Id() string { return identity("unary", n.Op.String(), idOf(n.Operand)) }
func (n *UnaryNode) String() string {
	if n.Op == OpNot {
		return "(not " + n.Operand.String() + ")"
	}
	return "(-" + n.Operand.String() + ")"
}

func (n *UnaryNode) ReturnType() ValueType {
	if n.Op == OpNot {
		return TypeBool
	}
	return n.Operand.ReturnType()
}

func (n *UnaryNode) Children() []Node { return compact(n.Operand) }
func (n *UnaryNode) Accept(v Visitor) error {
	return v.VisitUnary(n)
}

// IsNullNode is expr IS [NOT] NULL.
type IsNullNode struct {
	Pos
	Expr Node
	Not  bool
}

func (n *IsNullNode) Id() string { return identity("isnull", strconv.FormatBool(n.Not), idOf(n.Expr)) }
func (n *IsNullNode) String() string {
	if n.Not {
		return "(" + n.Expr.String() + " is not null)"
	}
	return "(" + n.Expr.String() + " is null)"
}
func (n *IsNullNode) ReturnType() ValueType { return TypeBool }
func (n *IsNullNode) Children() []Node      { return compact(n.Expr) }
func (n *IsNullNode) Accept(v Visitor) error {
	return v.VisitIsNull(n)
}

// InNode is expr [NOT] IN (list) or expr [NOT] IN (subquery).
type InNode struct {
	Pos
	Expr   Node
	Not    bool
	Values []Node
	Query  *SubqueryNode
}

func (n *InNode) Id() string {
	return identity("in", strconv.FormatBool(n.Not), idOf(n.Expr), idsOf(n.Values), idOf(n.Query))
}

func (n *InNode) String() string {
	op := " in "
	if n.Not {
		op = " not in "
	}
	if n.Query != nil {
		return "(" + n.Expr.String() + op + n.Query.String() + ")"
	}
	return "(" + n.Expr.String() + op + "(" + joinStrings(n.Values, ", ") + "))"
}

func (n *InNode) ReturnType() ValueType { return TypeBool }
func (n *InNode) Children() []Node {
	out := append(compact(n.Expr), asNodes(n.Values)...)
	return append(out, compact(n.Query)...)
}
func (n *InNode) Accept(v Visitor) error {
	return v.VisitIn(n)
}

// BetweenNode is expr BETWEEN low AND high, bounds inclusive.
type BetweenNode struct {
	Pos
	Expr, Low, High Node
}

func (n *BetweenNode) Id() string {
	return identity("between", idOf(n.Expr), idOf(n.Low), idOf(n.High))
}
func (n *BetweenNode) String() string {
	return "(" + n.Expr.String() + " between " + n.Low.String() + " and " + n.High.String() + ")"
}
func (n *BetweenNode) ReturnType() ValueType { return TypeBool }
func (n *BetweenNode) Children() []Node      { return compact(n.Expr, n.Low, n.High) }
func (n *BetweenNode) Accept(v Visitor) error {
	return v.VisitBetween(n)
}

// ContainsNode is expr CONTAINS (values).
type ContainsNode struct {
	Pos
	Expr   Node
	Values []Node
}

func (n *ContainsNode) Id() string { return identity("contains", idOf(n.Expr), idsOf(n.Values)) }
func (n *ContainsNode) String() string {
	return "(" + n.Expr.String() + " contains (" + joinStrings(n.Values, ", ") + "))"
}
func (n *ContainsNode) ReturnType() ValueType { return TypeBool }
func (n *ContainsNode) Children() []Node      { return append(compact(n.Expr), asNodes(n.Values)...) }
func (n *ContainsNode) Accept(v Visitor) error {
	return v.VisitContains(n)
}

// WhenClause is one WHEN ... THEN ... arm of a CASE.
type WhenClause struct {
	When Node
	Then Node
}

// CaseNode is CASE WHEN ... THEN ... [ELSE ...] END.
type CaseNode struct {
	Pos
	Whens []WhenClause
	Else  Node
}

func (n *CaseNode) Id() string {
	parts := make([]string, 0, 2*len(n.Whens)+1)
	for _, w := range n.Whens {
		parts = append(parts, idOf(w.When), idOf(w.Then))
	}
	parts = append(parts, idOf(n.Else))
	return identity("case", parts...)
}

func (n *CaseNode) String() string {
	var b strings.Builder
	b.WriteString("case")
	for _, w := range n.Whens {
		b.WriteString(" when " + w.When.String() + " then " + w.Then.String())
	}
	if n.Else != nil {
		b.WriteString(" else " + n.Else.String())
	}
	b.WriteString(" end")
	return b.String()
}

func (n *CaseNode) ReturnType() ValueType {
	if len(n.Whens) > 0 {
		return n.Whens[0].Then.ReturnType()
	}
	return Unresolved
}

func (n *CaseNode) Children() []Node {
	out := make([]Node, 0, 2*len(n.Whens)+1)
	for _, w := range n.Whens {
		out = append(out, compact(w.When, w.Then)...)
	}
	return append(out, compact(n.Else)...)
}

func (n *CaseNode) Accept(v Visitor) error {
	return v.VisitCase(n)
}

// SubqueryNode is a parenthesized statement used as a value or a list.
type SubqueryNode struct {
	Pos
	Query Node
}

func (n *SubqueryNode) Id() string            { return identity("subquery", idOf(n.Query)) }
func (n *SubqueryNode) String() string        { return "(" + n.Query.String() + ")" }
func (n *SubqueryNode) ReturnType() ValueType { return Unresolved }
func (n *SubqueryNode) Children() []Node      { return compact(n.Query) }
func (n *SubqueryNode) Accept(v Visitor) error {
	return v.VisitSubquery(n)
}
