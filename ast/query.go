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

// FieldNode is one entry of a SELECT list.
type FieldNode struct {
	Pos
	Expr  Node
	Alias string
}

// Name returns the alias, or the rendered expression when there is none.
func (n *FieldNode) Name() string {
	if n.Alias != "" {
		return n.Alias
	}
	return n.Expr.String()
}

func (n *FieldNode) Id() string { return identity("field", idOf(n.Expr), strings.ToLower(n.Alias)) }
func (n *FieldNode) String() string {
	if n.Alias != "" {
		return n.Expr.String() + " as " + n.Alias
	}
	return n.Expr.String()
}
func (n *FieldNode) ReturnType() ValueType { return n.Expr.ReturnType() }
func (n *FieldNode) Children() []Node      { return compact(n.Expr) }
func (n *FieldNode) Accept(v Visitor) error {
	return v.VisitField(n)
}

// SelectNode is the SELECT list.
type SelectNode struct {
	Pos
	Distinct bool
	Fields   []*FieldNode
}

func (n *SelectNode) Id() string {
	return identity("select", strconv.FormatBool(n.Distinct), idsOf(n.Fields))
}
func (n *SelectNode) String() string {
	if n.Distinct {
		return "select distinct " + joinStrings(n.Fields, ", ")
	}
	return "select " + joinStrings(n.Fields, ", ")
}
func (n *SelectNode) ReturnType() ValueType { return Unresolved }
func (n *SelectNode) Children() []Node      { return asNodes(n.Fields) }
func (n *SelectNode) Accept(v Visitor) error {
	return v.VisitSelect(n)
}

// WhereNode filters source rows.
type WhereNode struct {
	Pos
	Expr Node
}

func (n *WhereNode) Id() string            { return identity("where", idOf(n.Expr)) }
func (n *WhereNode) String() string        { return "where " + n.Expr.String() }
func (n *WhereNode) ReturnType() ValueType { return TypeBool }
func (n *WhereNode) Children() []Node      { return compact(n.Expr) }
func (n *WhereNode) Accept(v Visitor) error {
	return v.VisitWhere(n)
}

// HavingNode filters groups.
type HavingNode struct {
	Pos
	Expr Node
}

func (n *HavingNode) Id() string            { return identity("having", idOf(n.Expr)) }
func (n *HavingNode) String() string        { return "having " + n.Expr.String() }
func (n *HavingNode) ReturnType() ValueType { return TypeBool }
func (n *HavingNode) Children() []Node      { return compact(n.Expr) }
func (n *HavingNode) Accept(v Visitor) error {
	return v.VisitHaving(n)
}

// GroupByNode lists grouping expressions and the optional HAVING filter.
type GroupByNode struct {
	Pos
	Fields []Node
	Having *HavingNode
}

func (n *GroupByNode) Id() string {
	return identity("groupby", idsOf(n.Fields), idOf(n.Having))
}
func (n *GroupByNode) String() string {
	s := "group by " + joinStrings(n.Fields, ", ")
	if n.Having != nil {
		s += " " + n.Having.String()
	}
	return s
}
func (n *GroupByNode) ReturnType() ValueType { return Unresolved }
func (n *GroupByNode) Children() []Node      { return append(asNodes(n.Fields), compact(n.Having)...) }
func (n *GroupByNode) Accept(v Visitor) error {
	return v.VisitGroupBy(n)
}

// OrderItemNode is one ORDER BY expression with its direction.
type OrderItemNode struct {
	Pos
	Expr       Node
	Descending bool
}

func (n *OrderItemNode) Id() string {
	return identity("orderitem", idOf(n.Expr), strconv.FormatBool(n.Descending))
}
func (n *OrderItemNode) String() string {
	if n.Descending {
		return n.Expr.String() + " desc"
	}
	return n.Expr.String() + " asc"
}
func (n *OrderItemNode) ReturnType() ValueType { return Unresolved }
func (n *OrderItemNode) Children() []Node      { return compact(n.Expr) }
func (n *OrderItemNode) Accept(v Visitor) error {
	return v.VisitOrderItem(n)
}

// OrderByNode is the ORDER BY clause.
type OrderByNode struct {
	Pos
	Items []*OrderItemNode
}

func (n *OrderByNode) Id() string            { return identity("orderby", idsOf(n.Items)) }
func (n *OrderByNode) String() string        { return "order by " + joinStrings(n.Items, ", ") }
func (n *OrderByNode) ReturnType() ValueType { return Unresolved }
func (n *OrderByNode) Children() []Node      { return asNodes(n.Items) }
func (n *OrderByNode) Accept(v Visitor) error {
	return v.VisitOrderBy(n)
}

// SkipNode is SKIP <n>.
type SkipNode struct {
	Pos
	Value Node
}

func (n *SkipNode) Id() string            { return identity("skip", idOf(n.Value)) }
func (n *SkipNode) String() string        { return "skip " + n.Value.String() }
func (n *SkipNode) ReturnType() ValueType { return Unresolved }
func (n *SkipNode) Children() []Node      { return compact(n.Value) }
func (n *SkipNode) Accept(v Visitor) error {
	return v.VisitSkip(n)
}

// TakeNode is TAKE <n>.
type TakeNode struct {
	Pos
	Value Node
}

func (n *TakeNode) Id() string            { return identity("take", idOf(n.Value)) }
func (n *TakeNode) String() string        { return "take " + n.Value.String() }
func (n *TakeNode) ReturnType() ValueType { return Unresolved }
func (n *TakeNode) Children() []Node      { return compact(n.Value) }
func (n *TakeNode) Accept(v Visitor) error {
	return v.VisitTake(n)
}

// QueryNode is one SELECT statement. The FROM ... SELECT spelling produces the
// same node as the SELECT ... FROM spelling.
type QueryNode struct {
	Pos
	Select  *SelectNode
	From    Node
	Where   *WhereNode
	GroupBy *GroupByNode
	OrderBy *OrderByNode
	Skip    *SkipNode
	Take    *TakeNode
}

func (n *QueryNode) Id() string {
	return identity("query", idOf(n.Select), idOf(n.From), idOf(n.Where), idOf(n.GroupBy),
		idOf(n.OrderBy), idOf(n.Skip), idOf(n.Take))
}

func (n *QueryNode) String() string {
	parts := make([]string, 0, 7)
	if n.Select != nil {
		parts = append(parts, n.Select.String())
	}
	if n.From != nil {
		parts = append(parts, "from "+n.From.String())
	}
	for _, c := range []Node{n.Where, n.GroupBy, n.OrderBy, n.Skip, n.Take} {
		if !isNil(c) {
			parts = append(parts, c.String())
		}
	}
	return strings.Join(parts, " ")
}

func (n *QueryNode) ReturnType() ValueType { return Unresolved }
func (n *QueryNode) Children() []Node {
	return compact(n.Select, n.From, n.Where, n.GroupBy, n.OrderBy, n.Skip, n.Take)
}
func (n *QueryNode) Accept(v Visitor) error {
	return v.VisitQuery(n)
}

// SetOp is a keyed set operator.
type SetOp int

const (
	Union SetOp = iota
	UnionAll
	Intersect
	Except
)

func (op SetOp) String() string {
	switch op {
	case Union:
		return "union"
	case UnionAll:
		return "union all"
	case Intersect:
		return "intersect"
	default:
		return "except"
	}
}

// SetOperatorNode combines two statements on the key columns in Keys.
type SetOperatorNode struct {
	Pos
	Op          SetOp
	Keys        []string
	Left, Right Node
}

func (n *SetOperatorNode) Id() string {
	keys := make([]string, len(n.Keys))
	for i, k := range n.Keys {
		keys[i] = strings.ToLower(k)
	}
	return identity("setop", n.Op.String(), strings.Join(keys, ","), idOf(n.Left), idOf(n.Right))
}

func (n *SetOperatorNode) String() string {
	return n.Left.String() + " " + n.Op.String() + " (" + strings.Join(n.Keys, ", ") + ") " + n.Right.String()
}

func (n *SetOperatorNode) ReturnType() ValueType { return Unresolved }
func (n *SetOperatorNode) Children() []Node      { return compact(n.Left, n.Right) }
func (n *SetOperatorNode) Accept(v Visitor) error {
	return v.VisitSetOperator(n)
}

// CteNode is one named sub-query of a WITH block.
type CteNode struct {
	Pos
	Name  string
	Query Node
}

func (n *CteNode) Id() string            { return identity("cte", strings.ToLower(n.Name), idOf(n.Query)) }
func (n *CteNode) String() string        { return n.Name + " as (" + n.Query.String() + ")" }
func (n *CteNode) ReturnType() ValueType { return Unresolved }
func (n *CteNode) Children() []Node      { return compact(n.Query) }
func (n *CteNode) Accept(v Visitor) error {
	return v.VisitCte(n)
}

// CteExpressionNode is a WITH block followed by the statement using it.
// Later entries may reference earlier ones.
type CteExpressionNode struct {
	Pos
	Recursive bool
	Ctes      []*CteNode
	Statement Node
}

func (n *CteExpressionNode) Id() string {
	return identity("with", strconv.FormatBool(n.Recursive), idsOf(n.Ctes), idOf(n.Statement))
}

func (n *CteExpressionNode) String() string {
	head := "with "
	if n.Recursive {
		head = "with recursive "
	}
	return head + joinStrings(n.Ctes, ", ") + " " + n.Statement.String()
}

func (n *CteExpressionNode) ReturnType() ValueType { return Unresolved }
func (n *CteExpressionNode) Children() []Node {
	return append(asNodes(n.Ctes), compact(n.Statement)...)
}
func (n *CteExpressionNode) Accept(v Visitor) error {
	return v.VisitCteExpression(n)
}

// SourceCall is a schema.method(args) reference as written in DESC and COUPLE.
// Method is empty for a bare schema; Call records whether parentheses were written.
type SourceCall struct {
	Schema string
	Method string
	Args   []Node
	Call   bool
}

func (c SourceCall) String() string {
	var b strings.Builder
	b.WriteString("#" + c.Schema)
	if c.Method != "" {
		b.WriteString("." + c.Method)
	}
	if c.Call {
		b.WriteString("(" + joinStrings(c.Args, ", ") + ")")
	}
	return b.String()
}

func (c SourceCall) id() string {
	return strings.ToLower(c.Schema) + "." + strings.ToLower(c.Method) + "/" + strconv.FormatBool(c.Call) + idsOf(c.Args)
}

// DescNode is DESC [FUNCTIONS] #schema[.method[(args)]].
type DescNode struct {
	Pos
	Functions bool
	Source    SourceCall
}

func (n *DescNode) Id() string {
	return identity("desc", strconv.FormatBool(n.Functions), n.Source.id())
}
func (n *DescNode) String() string {
	if n.Functions {
		return "desc functions " + n.Source.String()
	}
	return "desc " + n.Source.String()
}
func (n *DescNode) ReturnType() ValueType { return Unresolved }
func (n *DescNode) Children() []Node      { return asNodes(n.Source.Args) }
func (n *DescNode) Accept(v Visitor) error {
	return v.VisitDesc(n)
}

// CoupleNode is COUPLE #schema.method WITH TABLE <name> AS <alias>.
type CoupleNode struct {
	Pos
	Source SourceCall
	Table  string
	Alias  string
}

func (n *CoupleNode) Id() string {
	return identity("couple", n.Source.id(), strings.ToLower(n.Table), strings.ToLower(n.Alias))
}
func (n *CoupleNode) String() string {
	return "couple " + n.Source.String() + " with table " + n.Table + " as " + n.Alias
}
func (n *CoupleNode) ReturnType() ValueType { return Unresolved }
func (n *CoupleNode) Children() []Node      { return asNodes(n.Source.Args) }
func (n *CoupleNode) Accept(v Visitor) error {
	return v.VisitCouple(n)
}

// EmbeddedSchemaNode is a binary or text schema definition appearing among
// query statements.
type EmbeddedSchemaNode struct {
	Pos
	Definition Definition
}

func (n *EmbeddedSchemaNode) Id() string            { return identity("schema", n.Definition.Id()) }
func (n *EmbeddedSchemaNode) String() string        { return n.Definition.String() }
func (n *EmbeddedSchemaNode) ReturnType() ValueType { return Unresolved }
func (n *EmbeddedSchemaNode) Children() []Node      { return nil }
func (n *EmbeddedSchemaNode) Accept(v Visitor) error {
	return v.VisitEmbeddedSchema(n)
}

// StatementsNode is the root: every statement of the input in order.
type StatementsNode struct {
	Pos
	Statements []Node
}

func (n *StatementsNode) Id() string            { return identity("statements", idsOf(n.Statements)) }
func (n *StatementsNode) String() string        { return joinStrings(n.Statements, "\n") }
func (n *StatementsNode) ReturnType() ValueType { return Unresolved }
func (n *StatementsNode) Children() []Node      { return asNodes(n.Statements) }
func (n *StatementsNode) Accept(v Visitor) error {
	return v.VisitStatements(n)
}
