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

// Package ast is the query syntax tree produced by the rsql parser.
//
// Every node reports a structural identity (Id) computed from its own
// discriminant and the identities of its children, a canonical rendering
// (String) that parses back to an equal tree, and its source span. Trees are
// not mutated after the parser returns them.
package ast

import (
	"crypto/sha256"
	"encoding/hex"
	"reflect"
	"strings"

	"github.com/rulego/sqlfront/token"
)

// ValueType names the type an expression evaluates to. The empty value means
// the type is resolved later by a binding phase.
type ValueType string

const (
	Unresolved  ValueType = ""
	TypeBool    ValueType = "bool"
	TypeString  ValueType = "string"
	TypeNull    ValueType = "null"
	TypeDecimal ValueType = "decimal"
)

// Node is implemented by every query AST node.
type Node interface {
	Id() string
	String() string
	Span() token.TextSpan
	ReturnType() ValueType
	Children() []Node
	Accept(v Visitor) error
}

// Definition is an embedded schema definition. The schema package implements
// it; the query tree only carries it.
type Definition interface {
	Id() string
	String() string
	Span() token.TextSpan
	DefinitionName() string
}

// Pos is embedded by nodes to carry their source span.
type Pos struct {
	Location token.TextSpan
}

// Span returns the node's source span.
func (p Pos) Span() token.TextSpan {
	return p.Location
}

// At returns a Pos for span.
func At(span token.TextSpan) Pos {
	return Pos{Location: span}
}

// identity hashes a discriminant and ordered parts into a fixed-width Id.
func identity(kind string, parts ...string) string {
	h := sha256.New()
	h.Write([]byte(kind))
	for _, p := range parts {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	return kind + ":" + hex.EncodeToString(h.Sum(nil)[:12])
}

// Identity is the Id scheme of every tree in the module: the same kind and
// parts always give the same Id.
func Identity(kind string, parts ...string) string {
	return identity(kind, parts...)
}

func idOf(n Node) string {
	if isNil(n) {
		return "-"
	}
	return n.Id()
}

func idsOf[T Node](nodes []T) string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = idOf(n)
	}
	return "[" + strings.Join(ids, ",") + "]"
}

func joinStrings[T Node](nodes []T, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, sep)
}

func asNodes[T Node](list []T) []Node {
	out := make([]Node, 0, len(list))
	for _, n := range list {
		if !isNil(n) {
			out = append(out, n)
		}
	}
	return out
}

// compact drops nil entries, including typed nil pointers.
func compact(list ...Node) []Node {
	out := make([]Node, 0, len(list))
	for _, n := range list {
		if !isNil(n) {
			out = append(out, n)
		}
	}
	return out
}

func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// Inspect walks the tree depth-first, calling fn for each node. Children are
// skipped when fn returns false.
func Inspect(n Node, fn func(Node) bool) {
	if isNil(n) || !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Inspect(c, fn)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n Node) int {
	total := 0
	Inspect(n, func(Node) bool {
		total++
		return true
	})
	return total
}
