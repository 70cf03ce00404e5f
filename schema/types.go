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
	"strconv"
	"strings"

	"github.com/rulego/sqlfront/ast"
	"github.com/rulego/sqlfront/condition"
)

// TypeNode is a type annotation of a binary field.
type TypeNode interface {
	Node
	typeNode()
}

// Endianness is the byte order of a multi-byte primitive.
type Endianness int

const (
	NoEndian Endianness = iota
	LittleEndian
	BigEndian
)

func (e Endianness) String() string {
	switch e {
	case LittleEndian:
		return "le"
	case BigEndian:
		return "be"
	}
	return ""
}

// primitiveBits maps primitive type names to their width in bits.
var primitiveBits = map[string]int64{
	"byte": 8, "sbyte": 8,
	"short": 16, "ushort": 16,
	"int": 32, "uint": 32, "float": 32,
	"long": 64, "ulong": 64, "double": 64,
}

// PrimitiveBits returns the width of a primitive type name in bits.
func PrimitiveBits(name string) (int64, bool) {
	bits, ok := primitiveBits[strings.ToLower(name)]
	return bits, ok
}

// PrimitiveType is a numeric type such as "int le".
type PrimitiveType struct {
	ast.Pos
	Name   string
	Endian Endianness
}

func (t *PrimitiveType) typeNode() {}
func (t *PrimitiveType) Id() string {
	return ast.Identity("primitive", strings.ToLower(t.Name), t.Endian.String())
}
func (t *PrimitiveType) String() string {
	if t.Endian == NoEndian {
		return t.Name
	}
	return t.Name + " " + t.Endian.String()
}

// Bits returns the width of the type.
func (t *PrimitiveType) Bits() int64 {
	bits, _ := PrimitiveBits(t.Name)
	return bits
}

// ByteArrayType is byte[size].
type ByteArrayType struct {
	ast.Pos
	Size ast.Node
}

func (t *ByteArrayType) typeNode()      {}
func (t *ByteArrayType) Id() string     { return ast.Identity("bytes", exprId(t.Size)) }
func (t *ByteArrayType) String() string { return "byte[" + t.Size.String() + "]" }

// BitsType is a bit field of 1 to 64 bits.
type BitsType struct {
	ast.Pos
	Width int
}

func (t *BitsType) typeNode()      {}
func (t *BitsType) Id() string     { return ast.Identity("bits", strconv.Itoa(t.Width)) }
func (t *BitsType) String() string { return "bits[" + strconv.Itoa(t.Width) + "]" }

// ValueType is the smallest unsigned primitive holding the field.
func (t *BitsType) ValueType() string {
	switch {
	case t.Width <= 8:
		return "byte"
	case t.Width <= 16:
		return "ushort"
	case t.Width <= 32:
		return "uint"
	}
	return "ulong"
}

// AlignType pads to the next multiple of Bits.
type AlignType struct {
	ast.Pos
	Bits int
}

func (t *AlignType) typeNode()      {}
func (t *AlignType) Id() string     { return ast.Identity("align", strconv.Itoa(t.Bits)) }
func (t *AlignType) String() string { return "align[" + strconv.Itoa(t.Bits) + "]" }

// Padding returns the bits needed to align offset.
func (t *AlignType) Padding(offset int64) int64 {
	if t.Bits <= 0 {
		return 0
	}
	n := int64(t.Bits)
	return (n - offset%n) % n
}

// Encodings are the string encodings accepted by the parser.
var Encodings = []string{
	"ascii", "latin1", "utf8", "utf16", "utf16le", "utf16be", "utf32", "utf32le", "utf32be",
}

// StringType is string[size] with an encoding.
type StringType struct {
	ast.Pos
	Size      ast.Node
	Encoding  string
	Modifiers []string
	// As names a text schema the string is parsed with
	As string
}

func (t *StringType) typeNode() {}
func (t *StringType) Id() string {
	return ast.Identity("string", exprId(t.Size), strings.ToLower(t.Encoding),
		strings.Join(t.Modifiers, ","), strings.ToLower(t.As))
}
func (t *StringType) String() string {
	var b strings.Builder
	b.WriteString("string[" + t.Size.String() + "] " + t.Encoding)
	for _, m := range t.Modifiers {
		b.WriteString(" " + m)
	}
	if t.As != "" {
		b.WriteString(" as " + t.As)
	}
	return b.String()
}

// HasModifier reports whether m was given.
func (t *StringType) HasModifier(m string) bool {
	for _, x := range t.Modifiers {
		if x == m {
			return true
		}
	}
	return false
}

// ArrayType is Element[size].
type ArrayType struct {
	ast.Pos
	Element TypeNode
	Size    ast.Node
}

func (t *ArrayType) typeNode()      {}
func (t *ArrayType) Id() string     { return ast.Identity("array", t.Element.Id(), exprId(t.Size)) }
func (t *ArrayType) String() string { return t.Element.String() + "[" + t.Size.String() + "]" }

// ReferenceType names another schema, or a type parameter.
type ReferenceType struct {
	ast.Pos
	Name string
	Args []TypeNode
}

func (t *ReferenceType) typeNode() {}
func (t *ReferenceType) Id() string {
	return ast.Identity("ref", strings.ToLower(t.Name), idsOf(t.Args))
}
func (t *ReferenceType) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return t.Name + "<" + strings.Join(args, ", ") + ">"
}

// InlineSchemaType is an anonymous record.
type InlineSchemaType struct {
	ast.Pos
	Fields []Field
}

func (t *InlineSchemaType) typeNode()      {}
func (t *InlineSchemaType) Id() string     { return ast.Identity("inline", idsOf(t.Fields)) }
func (t *InlineSchemaType) String() string { return fieldBlock(t.Fields) }

// RepeatUntilType repeats Element until the condition holds for the last
// element read.
type RepeatUntilType struct {
	ast.Pos
	Element TypeNode
	Until   ast.Node
}

func (t *RepeatUntilType) typeNode() {}
func (t *RepeatUntilType) Id() string {
	return ast.Identity("repeat", t.Element.Id(), exprId(t.Until))
}
func (t *RepeatUntilType) String() string {
	return t.Element.String() + " repeat until " + t.Until.String()
}

// UntilCondition compiles the termination predicate.
func (t *RepeatUntilType) UntilCondition() (*condition.ExprCondition, error) {
	cond, err := condition.NewExprCondition(t.Until)
	if err != nil {
		return nil, fmt.Errorf("repeat until: %w", err)
	}
	return cond, nil
}
