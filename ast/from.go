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
	"strings"
)

func withAlias(s, alias string) string {
	if alias == "" {
		return s
	}
	return s + " as " + alias
}

// SchemaFromNode is a data source call, #schema.method(args). The leading
// hash is optional in the source text and is not recorded.
type SchemaFromNode struct {
	Pos
	Schema string
	Method string
	Args   []Node
	Alias  string
}

func (n *SchemaFromNode) Id() string {
	return identity("fromschema", strings.ToLower(n.Schema), strings.ToLower(n.Method), idsOf(n.Args), strings.ToLower(n.Alias))
}
func (n *SchemaFromNode) String() string {
	return withAlias("#"+n.Schema+"."+n.Method+"("+joinStrings(n.Args, ", ")+")", n.Alias)
}
func (n *SchemaFromNode) ReturnType() ValueType { return Unresolved }
func (n *SchemaFromNode) Children() []Node      { return asNodes(n.Args) }
func (n *SchemaFromNode) Accept(v Visitor) error {
	return v.VisitSchemaFrom(n)
}

// ReferenceFromNode names a CTE or a coupled table.
type ReferenceFromNode struct {
	Pos
	Name  string
	Alias string
}

func (n *ReferenceFromNode) Id() string {
	return identity("fromref", strings.ToLower(n.Name), strings.ToLower(n.Alias))
}
func (n *ReferenceFromNode) String() string        { return withAlias(n.Name, n.Alias) }
func (n *ReferenceFromNode) ReturnType() ValueType { return Unresolved }
func (n *ReferenceFromNode) Children() []Node      { return nil }
func (n *ReferenceFromNode) Accept(v Visitor) error {
	return v.VisitReferenceFrom(n)
}

// SubqueryFromNode is a derived table.
type SubqueryFromNode struct {
	Pos
	Query Node
	Alias string
}

func (n *SubqueryFromNode) Id() string {
	return identity("fromsubquery", idOf(n.Query), strings.ToLower(n.Alias))
}
func (n *SubqueryFromNode) String() string {
	return withAlias("("+n.Query.String()+")", n.Alias)
}
func (n *SubqueryFromNode) ReturnType() ValueType { return Unresolved }
func (n *SubqueryFromNode) Children() []Node      { return compact(n.Query) }
func (n *SubqueryFromNode) Accept(v Visitor) error {
	return v.VisitSubqueryFrom(n)
}

// PropertyFromNode is a property chain of an earlier alias, alias.Prop.Nested.
type PropertyFromNode struct {
	Pos
	Source string
	Path   []string
	Alias  string
}

func (n *PropertyFromNode) Id() string {
	path := make([]string, len(n.Path))
	for i, p := range n.Path {
		path[i] = strings.ToLower(p)
	}
	return identity("fromproperty", strings.ToLower(n.Source), strings.Join(path, "."), strings.ToLower(n.Alias))
}
func (n *PropertyFromNode) String() string {
	return withAlias(n.Source+"."+strings.Join(n.Path, "."), n.Alias)
}
func (n *PropertyFromNode) ReturnType() ValueType { return Unresolved }
func (n *PropertyFromNode) Children() []Node      { return nil }
func (n *PropertyFromNode) Accept(v Visitor) error {
	return v.VisitPropertyFrom(n)
}

// AliasMethodFromNode calls a method of an earlier alias, alias.Method(args).
type AliasMethodFromNode struct {
	Pos
	Source string
	Method string
	Args   []Node
	Alias  string
}

func (n *AliasMethodFromNode) Id() string {
	return identity("frommethod", strings.ToLower(n.Source), strings.ToLower(n.Method), idsOf(n.Args), strings.ToLower(n.Alias))
}
func (n *AliasMethodFromNode) String() string {
	return withAlias(n.Source+"."+n.Method+"("+joinStrings(n.Args, ", ")+")", n.Alias)
}
func (n *AliasMethodFromNode) ReturnType() ValueType { return Unresolved }
func (n *AliasMethodFromNode) Children() []Node      { return asNodes(n.Args) }
func (n *AliasMethodFromNode) Accept(v Visitor) error {
	return v.VisitAliasMethodFrom(n)
}

// JoinKind selects the join variant.
type JoinKind int

const (
	InnerJoin JoinKind = iota
	LeftOuterJoin
	RightOuterJoin
)

func (k JoinKind) String() string {
	switch k {
	case LeftOuterJoin:
		return "left outer join"
	case RightOuterJoin:
		return "right outer join"
	default:
		return "inner join"
	}
}

// JoinFromNode joins two sources on a condition.
type JoinFromNode struct {
	Pos
	Kind        JoinKind
	Left, Right Node
	On          Node
}

func (n *JoinFromNode) Id() string {
	return identity("join", n.Kind.String(), idOf(n.Left), idOf(n.Right), idOf(n.On))
}
func (n *JoinFromNode) String() string {
	return n.Left.String() + " " + n.Kind.String() + " " + n.Right.String() + " on " + n.On.String()
}
func (n *JoinFromNode) ReturnType() ValueType { return Unresolved }
func (n *JoinFromNode) Children() []Node      { return compact(n.Left, n.Right, n.On) }
func (n *JoinFromNode) Accept(v Visitor) error {
	return v.VisitJoinFrom(n)
}

// ApplyKind selects CROSS or OUTER APPLY.
type ApplyKind int

const (
	CrossApply ApplyKind = iota
	OuterApply
)

func (k ApplyKind) String() string {
	if k == OuterApply {
		return "outer apply"
	}
	return "cross apply"
}

// ApplyFromNode evaluates Right once per row of Left.
type ApplyFromNode struct {
	Pos
	Kind        ApplyKind
	Left, Right Node
}

func (n *ApplyFromNode) Id() string {
	return identity("apply", n.Kind.String(), idOf(n.Left), idOf(n.Right))
}
func (n *ApplyFromNode) String() string {
	return n.Left.String() + " " + n.Kind.String() + " " + n.Right.String()
}
func (n *ApplyFromNode) ReturnType() ValueType { return Unresolved }
func (n *ApplyFromNode) Children() []Node      { return compact(n.Left, n.Right) }
func (n *ApplyFromNode) Accept(v Visitor) error {
	return v.VisitApplyFrom(n)
}

// PivotNode is the parenthesized body of PIVOT. Exactly one of In and
// InQuery is set.
type PivotNode struct {
	Pos
	Aggregations []Node
	For          Node
	In           []Node
	InQuery      *SubqueryNode
}

func (n *PivotNode) Id() string {
	return identity("pivot", idsOf(n.Aggregations), idOf(n.For), idsOf(n.In), idOf(n.InQuery))
}

func (n *PivotNode) String() string {
	in := "(" + joinStrings(n.In, ", ") + ")"
	if n.InQuery != nil {
		in = n.InQuery.String()
	}
	return "pivot (" + joinStrings(n.Aggregations, ", ") + " for " + n.For.String() + " in " + in + ")"
}

func (n *PivotNode) ReturnType() ValueType { return Unresolved }
func (n *PivotNode) Children() []Node {
	out := append(asNodes(n.Aggregations), compact(n.For)...)
	out = append(out, asNodes(n.In)...)
	return append(out, compact(n.InQuery)...)
}
func (n *PivotNode) Accept(v Visitor) error {
	return v.VisitPivot(n)
}

// PivotFromNode applies a PIVOT to a source under a mandatory alias.
type PivotFromNode struct {
	Pos
	Source Node
	Pivot  *PivotNode
	Alias  string
}

func (n *PivotFromNode) Id() string {
	return identity("frompivot", idOf(n.Source), idOf(n.Pivot), strings.ToLower(n.Alias))
}
func (n *PivotFromNode) String() string {
	return n.Source.String() + " " + n.Pivot.String() + " as " + n.Alias
}
func (n *PivotFromNode) ReturnType() ValueType { return Unresolved }
func (n *PivotFromNode) Children() []Node      { return compact(n.Source, n.Pivot) }
func (n *PivotFromNode) Accept(v Visitor) error {
	return v.VisitPivotFrom(n)
}
