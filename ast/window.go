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

// WindowFunctionNode is func(...) OVER (...).
type WindowFunctionNode struct {
	Pos
	Function *FunctionNode
	Window   *WindowSpecNode
}

func (n *WindowFunctionNode) Id() string {
	return identity("window", idOf(n.Function), idOf(n.Window))
}
func (n *WindowFunctionNode) String() string {
	return n.Function.String() + " over " + n.Window.String()
}
func (n *WindowFunctionNode) ReturnType() ValueType { return Unresolved }
func (n *WindowFunctionNode) Children() []Node      { return compact(n.Function, n.Window) }
func (n *WindowFunctionNode) Accept(v Visitor) error {
	return v.VisitWindowFunction(n)
}

// WindowSpecNode is the parenthesized part after OVER.
type WindowSpecNode struct {
	Pos
	PartitionBy []Node
	OrderBy     []*OrderItemNode
	Frame       *FrameNode
}

func (n *WindowSpecNode) Id() string {
	return identity("windowspec", idsOf(n.PartitionBy), idsOf(n.OrderBy), idOf(n.Frame))
}

func (n *WindowSpecNode) String() string {
	parts := make([]string, 0, 3)
	if len(n.PartitionBy) > 0 {
		parts = append(parts, "partition by "+joinStrings(n.PartitionBy, ", "))
	}
	if len(n.OrderBy) > 0 {
		parts = append(parts, "order by "+joinStrings(n.OrderBy, ", "))
	}
	if n.Frame != nil {
		parts = append(parts, n.Frame.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (n *WindowSpecNode) ReturnType() ValueType { return Unresolved }
func (n *WindowSpecNode) Children() []Node {
	out := append(asNodes(n.PartitionBy), asNodes(n.OrderBy)...)
	return append(out, compact(n.Frame)...)
}
func (n *WindowSpecNode) Accept(v Visitor) error {
	return v.VisitWindowSpec(n)
}

// BoundKind is the anchor of a frame bound.
type BoundKind int

const (
	UnboundedPreceding BoundKind = iota
	Preceding
	CurrentRow
	Following
	UnboundedFollowing
)

// FrameBound is one end of a ROWS frame. Offset is set for Preceding and Following.
type FrameBound struct {
	Kind   BoundKind
	Offset Node
}

func (b FrameBound) String() string {
	switch b.Kind {
	case UnboundedPreceding:
		return "unbounded preceding"
	case Preceding:
		return b.Offset.String() + " preceding"
	case CurrentRow:
		return "current row"
	case Following:
		return b.Offset.String() + " following"
	default:
		return "unbounded following"
	}
}

func (b FrameBound) id() string {
	return strconv.Itoa(int(b.Kind)) + "/" + idOf(b.Offset)
}

// FrameNode is ROWS <bound> or ROWS BETWEEN <bound> AND <bound>.
type FrameNode struct {
	Pos
	Start FrameBound
	// End is nil for the single-bound form
	End *FrameBound
}

func (n *FrameNode) Id() string {
	end := "-"
	if n.End != nil {
		end = n.End.id()
	}
	return identity("frame", n.Start.id(), end)
}

func (n *FrameNode) String() string {
	if n.End == nil {
		return "rows " + n.Start.String()
	}
	return "rows between " + n.Start.String() + " and " + n.End.String()
}

func (n *FrameNode) ReturnType() ValueType { return Unresolved }
func (n *FrameNode) Children() []Node {
	out := compact(n.Start.Offset)
	if n.End != nil {
		out = append(out, compact(n.End.Offset)...)
	}
	return out
}
func (n *FrameNode) Accept(v Visitor) error {
	return v.VisitFrame(n)
}
