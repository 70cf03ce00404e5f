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
	"strings"

	"github.com/rulego/sqlfront/ast"
	"github.com/rulego/sqlfront/utils/escape"
)

// TextKind is what a text field matches.
type TextKind interface {
	Node
	textKind()
}

func quote(s string) string { return "'" + escape.Escape(s) + "'" }

// PatternKind matches a regular expression.
type PatternKind struct {
	ast.Pos
	Pattern  string
	Captures []string
}

func (k *PatternKind) textKind() {}
func (k *PatternKind) Id() string {
	return ast.Identity("pattern", k.Pattern, strings.Join(k.Captures, ","))
}
func (k *PatternKind) String() string {
	s := "pattern " + quote(k.Pattern)
	if len(k.Captures) > 0 {
		s += " capture (" + strings.Join(k.Captures, ", ") + ")"
	}
	return s
}

// LiteralKind matches fixed text.
type LiteralKind struct {
	ast.Pos
	Text string
}

func (k *LiteralKind) textKind()      {}
func (k *LiteralKind) Id() string     { return ast.Identity("literal", k.Text) }
func (k *LiteralKind) String() string { return "literal " + quote(k.Text) }

// UntilKind reads up to a delimiter.
type UntilKind struct {
	ast.Pos
	Delimiter string
}

func (k *UntilKind) textKind()      {}
func (k *UntilKind) Id() string     { return ast.Identity("until", k.Delimiter) }
func (k *UntilKind) String() string { return "until " + quote(k.Delimiter) }

// BetweenKind reads the text enclosed by Open and Close.
type BetweenKind struct {
	ast.Pos
	Open, Close string
}

func (k *BetweenKind) textKind()      {}
func (k *BetweenKind) Id() string     { return ast.Identity("between", k.Open, k.Close) }
func (k *BetweenKind) String() string { return "between " + quote(k.Open) + " " + quote(k.Close) }

// CharsKind reads Count characters.
type CharsKind struct {
	ast.Pos
	Count ast.Node
}

func (k *CharsKind) textKind()      {}
func (k *CharsKind) Id() string     { return ast.Identity("chars", exprId(k.Count)) }
func (k *CharsKind) String() string { return "chars[" + k.Count.String() + "]" }

// TokenFieldKind reads one whitespace-delimited token.
type TokenFieldKind struct {
	ast.Pos
}

func (k *TokenFieldKind) textKind()      {}
func (k *TokenFieldKind) Id() string     { return ast.Identity("token") }
func (k *TokenFieldKind) String() string { return "token" }

// RestKind reads the remaining input.
type RestKind struct {
	ast.Pos
}

func (k *RestKind) textKind()      {}
func (k *RestKind) Id() string     { return ast.Identity("rest") }
func (k *RestKind) String() string { return "rest" }

// WhitespaceKind skips whitespace. Repeat is '+', '*' or '?'.
type WhitespaceKind struct {
	ast.Pos
	Repeat string
}

func (k *WhitespaceKind) textKind()      {}
func (k *WhitespaceKind) Id() string     { return ast.Identity("whitespace", k.Repeat) }
func (k *WhitespaceKind) String() string { return "whitespace" + k.Repeat }

// RepeatKind reads Element records until Until or the end of input.
type RepeatKind struct {
	ast.Pos
	Element  string
	Until    string
	UntilEnd bool
}

func (k *RepeatKind) textKind() {}
func (k *RepeatKind) Id() string {
	if k.UntilEnd {
		return ast.Identity("repeattext", strings.ToLower(k.Element), "end")
	}
	return ast.Identity("repeattext", strings.ToLower(k.Element), "delim", k.Until)
}
func (k *RepeatKind) String() string {
	if k.UntilEnd {
		return "repeat " + k.Element + " until end"
	}
	return "repeat " + k.Element + " until " + quote(k.Until)
}

// SwitchCase dispatches to Type when Pattern matches.
type SwitchCase struct {
	Pattern string
	Type    string
}

// SwitchKind picks the first case whose pattern matches, else Default.
type SwitchKind struct {
	ast.Pos
	Cases   []SwitchCase
	Default string
}

func (k *SwitchKind) textKind() {}

func (k *SwitchKind) Id() string {
	parts := make([]string, 0, 2*len(k.Cases)+1)
	for _, c := range k.Cases {
		parts = append(parts, c.Pattern, strings.ToLower(c.Type))
	}
	return ast.Identity("switch", append(parts, strings.ToLower(k.Default))...)
}

func (k *SwitchKind) String() string {
	arms := make([]string, 0, len(k.Cases)+1)
	for _, c := range k.Cases {
		arms = append(arms, "pattern "+quote(c.Pattern)+" => "+c.Type)
	}
	if k.Default != "" {
		arms = append(arms, "_ => "+k.Default)
	}
	return "switch { " + strings.Join(arms, ", ") + " }"
}
