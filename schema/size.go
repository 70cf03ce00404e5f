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
)

// Resolver finds definitions by name.
type Resolver interface {
	Lookup(name string) (Definition, bool)
}

// Set is an ordered collection of definitions with unique names.
type Set struct {
	defs  []Definition
	index map[string]Definition
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{index: make(map[string]Definition)}
}

// Add appends def. Names are unique regardless of case.
func (s *Set) Add(def Definition) error {
	key := strings.ToLower(def.DefinitionName())
	if _, ok := s.index[key]; ok {
		return fmt.Errorf("schema %s is already defined", def.DefinitionName())
	}
	s.index[key] = def
	s.defs = append(s.defs, def)
	return nil
}

// Lookup finds a definition case-insensitively.
func (s *Set) Lookup(name string) (Definition, bool) {
	def, ok := s.index[strings.ToLower(name)]
	return def, ok
}

// Definitions returns the definitions in declaration order.
func (s *Set) Definitions() []Definition {
	return append([]Definition(nil), s.defs...)
}

// Len returns the number of definitions.
func (s *Set) Len() int { return len(s.defs) }

// Size returns the width of the record in bits and whether it is fixed.
// When fixed is false, bits is the width of the leading fixed part.
func (n *BinarySchemaNode) Size(r Resolver) (bits int64, fixed bool) {
	s := newSizer(r)
	return s.record(n, nil, 0)
}

// IsFixedSize reports whether every instance of the record has the same width.
func (n *BinarySchemaNode) IsFixedSize(r Resolver) bool {
	_, fixed := n.Size(r)
	return fixed
}

// FixedSize returns the width in bytes, rounded up, of a fixed-size record.
func (n *BinarySchemaNode) FixedSize(r Resolver) (int64, bool) {
	bits, fixed := n.Size(r)
	if !fixed {
		return 0, false
	}
	return (bits + 7) / 8, true
}

// TypeSize returns the width in bits of a type annotation that starts at
// offset bits into its record, and whether it is fixed.
func TypeSize(t TypeNode, r Resolver, offset int64) (int64, bool) {
	return newSizer(r).typeSize(t, offset, nil)
}

// binding is a type argument together with the scope it was written in.
type binding struct {
	typ   TypeNode
	scope scope
}

type scope map[string]binding

type sizer struct {
	resolver Resolver
	visiting map[string]bool
}

func newSizer(r Resolver) *sizer {
	if r == nil {
		r = NewSet()
	}
	return &sizer{resolver: r, visiting: make(map[string]bool)}
}

// record sizes def with its type parameters bound in sc.
func (s *sizer) record(def *BinarySchemaNode, sc scope, offset int64) (int64, bool) {
	key := strings.ToLower(def.Name)
	if s.visiting[key] {
		return 0, false
	}
	s.visiting[key] = true
	defer delete(s.visiting, key)

	total := int64(0)
	if def.Extends != "" {
		base, ok := s.resolver.Lookup(def.Extends)
		parent, binary := base.(*BinarySchemaNode)
		if !ok || !binary {
			return 0, false
		}
		bits, baseFixed := s.record(parent, nil, offset)
		if !baseFixed {
			return bits, false
		}
		total = bits
	}
	bits, fieldsFixed := s.fields(def.Fields, offset+total, sc)
	return total + bits, fieldsFixed
}

func (s *sizer) fields(fields []Field, offset int64, sc scope) (int64, bool) {
	total := int64(0)
	for _, f := range fields {
		fd, ok := f.(*FieldDefinitionNode)
		if !ok {
			// computed fields occupy no bytes
			continue
		}
		if fd.At != nil {
			return total, false
		}
		bits, fixed := s.typeSize(fd.Type, offset+total, sc)
		if !fixed {
			return total, false
		}
		total += bits
	}
	return total, true
}

func (s *sizer) typeSize(t TypeNode, offset int64, sc scope) (int64, bool) {
	switch t := t.(type) {
	case *PrimitiveType:
		return t.Bits(), true
	case *BitsType:
		return int64(t.Width), true
	case *AlignType:
		return t.Padding(offset), true
	case *ByteArrayType:
		return constBytes(t.Size)
	case *StringType:
		return constBytes(t.Size)
	case *ArrayType:
		count, ok := condition.ConstInt(t.Size)
		if !ok || count < 0 {
			return 0, false
		}
		elem, fixed := s.typeSize(t.Element, offset, sc)
		if !fixed {
			return 0, false
		}
		return elem * count, true
	case *InlineSchemaType:
		return s.fields(t.Fields, offset, sc)
	case *ReferenceType:
		return s.reference(t, offset, sc)
	}
	// repeat-until and anything unknown
	return 0, false
}

func (s *sizer) reference(t *ReferenceType, offset int64, sc scope) (int64, bool) {
	if len(t.Args) == 0 {
		if b, ok := sc[strings.ToLower(t.Name)]; ok {
			return s.typeSize(b.typ, offset, b.scope)
		}
	}
	def, ok := s.resolver.Lookup(t.Name)
	if !ok {
		return 0, false
	}
	rec, ok := def.(*BinarySchemaNode)
	if !ok || len(rec.TypeParams) != len(t.Args) {
		return 0, false
	}
	inner := make(scope, len(rec.TypeParams))
	for i, param := range rec.TypeParams {
		inner[strings.ToLower(param)] = binding{typ: t.Args[i], scope: sc}
	}
	return s.record(rec, inner, offset)
}

func constBytes(size ast.Node) (int64, bool) {
	n, ok := condition.ConstInt(size)
	if !ok || n < 0 {
		return 0, false
	}
	return n * 8, true
}
