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

package schema

import (
	"fmt"
	"strings"

	"github.com/rulego/sqlfront/ast"
	"github.com/rulego/sqlfront/condition"
	"github.com/rulego/sqlfront/token"
)

// Node is implemented by every schema AST node.
type Node interface {
	Id() string
	String() string
	Span() token.TextSpan
}

// Definition is a named top-level schema.
type Definition interface {
	Node
	DefinitionName() string
}

// Field is a member of a binary schema.
type Field interface {
	Node
	FieldName() string
}

var (
	_ ast.Definition = (*BinarySchemaNode)(nil)
	_ ast.Definition = (*TextSchemaNode)(nil)
)

// BinarySchemaNode describes a binary record layout.
type BinarySchemaNode struct {
	ast.Pos
	Name       string
	TypeParams []string
	Extends    string
	Fields     []Field
}

func (n *BinarySchemaNode) DefinitionName() string { return n.Name }

func (n *BinarySchemaNode) Id() string {
	return ast.Identity("binaryschema", strings.ToLower(n.Name), strings.ToLower(strings.Join(n.TypeParams, ",")),
		strings.ToLower(n.Extends), idsOf(n.Fields))
}

func (n *BinarySchemaNode) String() string {
	var b strings.Builder
	b.WriteString("binary " + n.Name)
	if len(n.TypeParams) > 0 {
		b.WriteString("<" + strings.Join(n.TypeParams, ", ") + ">")
	}
	if n.Extends != "" {
		b.WriteString(" extends " + n.Extends)
	}
	b.WriteString(" " + fieldBlock(n.Fields))
	return b.String()
}

// Field returns the field called name, searching case-insensitively.
func (n *BinarySchemaNode) Field(name string) (Field, bool) {
	for _, f := range n.Fields {
		if strings.EqualFold(f.FieldName(), name) {
			return f, true
		}
	}
	return nil, false
}

// FieldDefinitionNode is a field backed by bytes.
type FieldDefinitionNode struct {
	ast.Pos
	Name string
	Type TypeNode
	// At overrides the field's offset, in bytes from the record start
	At    ast.Node
	Check ast.Node
}

func (n *FieldDefinitionNode) FieldName() string { return n.Name }

func (n *FieldDefinitionNode) Id() string {
	return ast.Identity("field", strings.ToLower(n.Name), idOf(n.Type), exprId(n.At), exprId(n.Check))
}

func (n *FieldDefinitionNode) String() string {
	s := n.Name + ": " + n.Type.String()
	if n.Check != nil {
		s += " check " + n.Check.String()
	}
	if n.At != nil {
		s += " at " + n.At.String()
	}
	return s
}

// CheckCondition compiles the check constraint. It returns nil when the field
// has none.
func (n *FieldDefinitionNode) CheckCondition() (*condition.ExprCondition, error) {
	if n.Check == nil {
		return nil, nil
	}
	cond, err := condition.NewExprCondition(n.Check)
	if err != nil {
		return nil, fmt.Errorf("field %s: check: %w", n.Name, err)
	}
	return cond, nil
}

// ComputedFieldNode is a field derived from sibling fields. It occupies no bytes.
type ComputedFieldNode struct {
	ast.Pos
	Name string
	Expr ast.Node
}

func (n *ComputedFieldNode) FieldName() string { return n.Name }
func (n *ComputedFieldNode) Id() string {
	return ast.Identity("computed", strings.ToLower(n.Name), exprId(n.Expr))
}
func (n *ComputedFieldNode) String() string { return n.Name + ": " + n.Expr.String() }

// TextSchemaNode describes a text record layout.
type TextSchemaNode struct {
	ast.Pos
	Name    string
	Extends string
	Fields  []*TextFieldNode
}

func (n *TextSchemaNode) DefinitionName() string { return n.Name }

func (n *TextSchemaNode) Id() string {
	return ast.Identity("textschema", strings.ToLower(n.Name), strings.ToLower(n.Extends), idsOf(n.Fields))
}

func (n *TextSchemaNode) String() string {
	var b strings.Builder
	b.WriteString("text " + n.Name)
	if n.Extends != "" {
		b.WriteString(" extends " + n.Extends)
	}
	b.WriteString(" " + fieldBlock(n.Fields))
	return b.String()
}

// TextFieldNode is one field of a text schema.
type TextFieldNode struct {
	ast.Pos
	Name      string
	Kind      TextKind
	Optional  bool
	Modifiers []string
}

func (n *TextFieldNode) FieldName() string { return n.Name }

// Discarded reports whether the field is an anchor whose value is dropped.
func (n *TextFieldNode) Discarded() bool { return n.Name == "_" }

func (n *TextFieldNode) Id() string {
	return ast.Identity("textfield", strings.ToLower(n.Name), idOf(n.Kind),
		fmt.Sprint(n.Optional), strings.Join(n.Modifiers, ","))
}

func (n *TextFieldNode) String() string {
	var b strings.Builder
	b.WriteString(n.Name + ": ")
	if n.Optional {
		b.WriteString("optional ")
	}
	b.WriteString(n.Kind.String())
	for _, m := range n.Modifiers {
		b.WriteString(" " + m)
	}
	return b.String()
}

func fieldBlock[T Node](fields []T) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.String()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func idOf(n Node) string {
	if n == nil {
		return "-"
	}
	return n.Id()
}

func idsOf[T Node](nodes []T) string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.Id()
	}
	return "[" + strings.Join(ids, ",") + "]"
}

func exprId(n ast.Node) string {
	if n == nil {
		return "-"
	}
	return n.Id()
}
