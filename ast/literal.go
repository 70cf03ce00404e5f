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
	"fmt"
	"strconv"

	"github.com/rulego/sqlfront/utils/cast"
	"github.com/rulego/sqlfront/utils/escape"
)

// IntegerNode is an integer literal in any radix, with an optional width suffix.
type IntegerNode struct {
	Pos
	Digits string
	Base   int
	Suffix string
	// Raw is the literal as written, prefix and suffix included
	Raw string
}

// Value returns the literal converted to the width its suffix selects.
func (n *IntegerNode) Value() (any, error) {
	return cast.IntegerLiteral(n.Digits, n.Base, n.Suffix)
}

// Int64 returns the literal as int64.
func (n *IntegerNode) Int64() (int64, error) {
	v, err := n.Value()
	if err != nil {
		return 0, err
	}
	return cast.ToInt64(v)
}

func (n *IntegerNode) Id() string {
	v, err := n.Value()
	if err != nil {
		return identity("int", n.Raw)
	}
	return identity("int", fmt.Sprint(v), string(n.ReturnType()))
}

func (n *IntegerNode) String() string {
	if n.Raw != "" {
		return n.Raw
	}
	switch n.Base {
	case 16:
		return "0x" + n.Digits + n.Suffix
	case 2:
		return "0b" + n.Digits + n.Suffix
	case 8:
		return "0o" + n.Digits + n.Suffix
	}
	return n.Digits + n.Suffix
}

func (n *IntegerNode) ReturnType() ValueType {
	v, _ := n.Value()
	return ValueType(cast.TypeName(n.Suffix, v))
}

func (n *IntegerNode) Children() []Node { return nil }

func (n *IntegerNode) Accept(v Visitor) error { return v.VisitInteger(n) }

// DecimalNode is a floating literal, or an integer literal with the d suffix.
type DecimalNode struct {
	Pos
	Text   string
	Suffix string
}

// Value returns the literal as float64.
func (n *DecimalNode) Value() (float64, error) {
	return cast.DecimalLiteral(n.Text)
}

func (n *DecimalNode) Id() string {
	v, err := n.Value()
	if err != nil {
		return identity("decimal", n.Text)
	}
	return identity("decimal", strconv.FormatFloat(v, 'g', -1, 64))
}

func (n *DecimalNode) String() string        { return n.Text + n.Suffix }
func (n *DecimalNode) ReturnType() ValueType { return TypeDecimal }
func (n *DecimalNode) Children() []Node      { return nil }
func (n *DecimalNode) Accept(v Visitor) error {
	return v.VisitDecimal(n)
}

// StringNode is a string literal holding its unescaped value.
type StringNode struct {
	Pos
	Value string
}

func (n *StringNode) Id() string            { return identity("string", n.Value) }
func (n *StringNode) String() string        { return "'" + escape.Escape(n.Value) + "'" }
func (n *StringNode) ReturnType() ValueType { return TypeString }
func (n *StringNode) Children() []Node      { return nil }
func (n *StringNode) Accept(v Visitor) error {
	return v.VisitString(n)
}

// BooleanNode is true or false.
type BooleanNode struct {
	Pos
	Value bool
}

func (n *BooleanNode) Id() string            { return identity("bool", strconv.FormatBool(n.Value)) }
func (n *BooleanNode) String() string        { return strconv.FormatBool(n.Value) }
func (n *BooleanNode) ReturnType() ValueType { return TypeBool }
func (n *BooleanNode) Children() []Node      { return nil }
func (n *BooleanNode) Accept(v Visitor) error {
	return v.VisitBoolean(n)
}

// NullNode is the null literal.
type NullNode struct {
	Pos
}

func (n *NullNode) Id() string            { return identity("null") }
func (n *NullNode) String() string        { return "null" }
func (n *NullNode) ReturnType() ValueType { return TypeNull }
func (n *NullNode) Children() []Node      { return nil }
func (n *NullNode) Accept(v Visitor) error {
	return v.VisitNull(n)
}
