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

// Package token defines the lexical tokens shared by the query grammar and the
// schema grammar, the source spans that locate them, and the keyword tables.
package token

import (
	"fmt"
	"strconv"
)

// TokenType is the closed set of token kinds.
type TokenType int

const (
	EOF TokenType = iota
	Identifier

	literalBegin
	Integer
	HexInteger
	BinaryInteger
	OctalInteger
	Decimal
	String
	True
	False
	Null
	literalEnd

	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Comma
	Dot
	Colon
	Hash

	Plus
	Minus
	Star
	Slash
	Percent
	Equal
	NotEqual
	Less
	Greater
	LessEqual
	GreaterEqual
	ShiftLeft
	ShiftRight
	Ampersand
	Pipe
	Caret
	FatArrow
	Question

	keywordBegin
	Select
	From
	Where
	GroupBy
	Having
	OrderBy
	Skip
	Take
	As
	And
	Or
	Not
	Like
	NotLike
	RLike
	NotRLike
	Is
	In
	NotIn
	Between
	Contains
	Case
	When
	Then
	Else
	End
	Asc
	Desc
	Distinct
	With
	Recursive
	Couple
	Table
	Union
	UnionAll
	Intersect
	Except
	InnerJoin
	LeftOuterJoin
	RightOuterJoin
	CrossApply
	OuterApply
	On
	Over
	PartitionBy
	Rows
	Unbounded
	Preceding
	Following
	CurrentRow
	Pivot
	For

	// schema DSL keywords
	Binary
	Text
	Extends
	Check
	At
	LittleEndian
	BigEndian
	ByteType
	SByteType
	ShortType
	UShortType
	IntType
	UIntType
	LongType
	ULongType
	FloatType
	DoubleType
	Bits
	Align
	StringType
	Repeat
	Until
	Switch
	Pattern
	Literal
	Chars
	TokenKind
	Rest
	Whitespace
	Optional
	Capture
	Trim
	LTrim
	RTrim
	NullTerm
	keywordEnd
)

var names = map[TokenType]string{
	EOF:           "end of input",
	Identifier:    "identifier",
	Integer:       "integer",
	HexInteger:    "hexadecimal integer",
	BinaryInteger: "binary integer",
	OctalInteger:  "octal integer",
	Decimal:       "decimal",
	String:        "string",
	True:          "true",
	False:         "false",
	Null:          "null",

	LParen:       "(",
	RParen:       ")",
	LBracket:     "[",
	RBracket:     "]",
	LBrace:       "{",
	RBrace:       "}",
	Comma:        ",",
	Dot:          ".",
	Colon:        ":",
	Hash:         "#",
	Plus:         "+",
	Minus:        "-",
	Star:         "*",
	Slash:        "/",
	Percent:      "%",
	Equal:        "=",
	NotEqual:     "<>",
	Less:         "<",
	Greater:      ">",
	LessEqual:    "<=",
	GreaterEqual: ">=",
	ShiftLeft:    "<<",
	ShiftRight:   ">>",
	Ampersand:    "&",
	Pipe:         "|",
	Caret:        "^",
	FatArrow:     "=>",
	Question:     "?",
}

func init() {
	for word, tt := range queryKeywords {
		names[tt] = word
	}
	for word, tt := range schemaKeywords {
		names[tt] = word
	}
	for _, p := range queryPhrases {
		if _, ok := names[p.Type]; !ok {
			names[p.Type] = p.Text()
		}
	}
}

// String returns the surface form of keywords and punctuation and a
// descriptive name for everything else.
func (t TokenType) String() string {
	if s, ok := names[t]; ok {
		return s
	}
	return "token(" + strconv.Itoa(int(t)) + ")"
}

// IsLiteral reports whether t is a literal kind.
func (t TokenType) IsLiteral() bool {
	return t > literalBegin && t < literalEnd
}

// IsKeyword reports whether t is a keyword of either grammar.
func (t TokenType) IsKeyword() bool {
	return t > keywordBegin && t < keywordEnd
}

// IsInteger reports whether t is an integer literal of any radix.
func (t TokenType) IsInteger() bool {
	switch t {
	case Integer, HexInteger, BinaryInteger, OctalInteger:
		return true
	}
	return false
}

// Token is one lexical unit. Tokens are values and are never mutated after
// they leave the lexer.
type Token struct {
	Type TokenType
	// Value is the lexeme with original case; for strings it is the unescaped content
	Value string
	// Raw is the exact source text of the token
	Raw  string
	Span TextSpan
	// Suffix is the type suffix of a numeric literal, lower-cased
	Suffix string
}

// Is reports whether the token is of one of the given types.
func (t Token) Is(types ...TokenType) bool {
	for _, tt := range types {
		if t.Type == tt {
			return true
		}
	}
	return false
}

// IsWord reports whether the token is an identifier or a single-word keyword,
// i.e. something that can be used as a name where the grammar allows it.
func (t Token) IsWord() bool {
	if t.Type == Identifier {
		return true
	}
	if !t.Type.IsKeyword() && t.Type != True && t.Type != False && t.Type != Null {
		return false
	}
	for i := 0; i < len(t.Raw); i++ {
		if !isIdentChar(t.Raw[i]) {
			return false
		}
	}
	return t.Raw != ""
}

// Display returns the text used for the token in diagnostics.
func (t Token) Display() string {
	if t.Type == EOF {
		return t.Type.String()
	}
	if t.Raw != "" {
		return t.Raw
	}
	return t.Value
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Type, t.Display(), t.Span)
}

func isIdentChar(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
