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

package token

import (
	"fmt"
	"strings"

	"github.com/rulego/sqlfront/utils/cast"
	"github.com/rulego/sqlfront/utils/escape"
)

// Class is the coarse category a scanner assigns to a lexeme before the
// factory decides its concrete type.
type Class int

const (
	ClassWord Class = iota
	ClassString
	ClassNumber
	ClassSymbol
)

func (c Class) String() string {
	switch c {
	case ClassWord:
		return "word"
	case ClassString:
		return "string"
	case ClassNumber:
		return "number"
	case ClassSymbol:
		return "symbol"
	default:
		return "unknown"
	}
}

var symbols = map[string]TokenType{
	"(":  LParen,
	")":  RParen,
	"[":  LBracket,
	"]":  RBracket,
	"{":  LBrace,
	"}":  RBrace,
	",":  Comma,
	".":  Dot,
	":":  Colon,
	"#":  Hash,
	"+":  Plus,
	"-":  Minus,
	"*":  Star,
	"/":  Slash,
	"%":  Percent,
	"=":  Equal,
	"<>": NotEqual,
	"!=": NotEqual,
	"<":  Less,
	">":  Greater,
	"<=": LessEqual,
	">=": GreaterEqual,
	"<<": ShiftLeft,
	">>": ShiftRight,
	"&":  Ampersand,
	"|":  Pipe,
	"^":  Caret,
	"=>": FatArrow,
	"?":  Question,
}

// Symbol returns the punctuation or operator type spelled by text.
// Braces and '?' only exist in the schema grammar.
func Symbol(text string, schema bool) (TokenType, bool) {
	tt, ok := symbols[text]
	if !ok {
		return EOF, false
	}
	if !schema && (tt == LBrace || tt == RBrace || tt == Question) {
		return EOF, false
	}
	return tt, true
}

// Base returns the radix of an integer literal type, or 10.
func (t TokenType) Base() int {
	switch t {
	case HexInteger:
		return 16
	case BinaryInteger:
		return 2
	case OctalInteger:
		return 8
	default:
		return 10
	}
}

// Factory turns classified lexemes into typed tokens. Schema selects the
// keyword table used for words.
type Factory struct {
	Schema bool
}

// Make builds the concrete token for lexeme. The returned error carries no
// position; the lexer attaches it.
func (f Factory) Make(class Class, lexeme string, span TextSpan) (Token, error) {
	switch class {
	case ClassWord:
		return f.word(lexeme, span), nil
	case ClassString:
		return stringToken(lexeme, span)
	case ClassNumber:
		return numberToken(lexeme, span)
	case ClassSymbol:
		tt, ok := Symbol(lexeme, f.Schema)
		if !ok {
			return Token{}, fmt.Errorf("unknown symbol %q", lexeme)
		}
		return Token{Type: tt, Value: lexeme, Raw: lexeme, Span: span}, nil
	default:
		return Token{}, fmt.Errorf("unknown token class %d", class)
	}
}

func (f Factory) word(lexeme string, span TextSpan) Token {
	words := strings.Fields(lexeme)
	tt := Identifier
	if len(words) > 1 {
		for _, p := range PhrasesFor(words[0], f.Schema) {
			if phraseEqual(p.Words, words) {
				tt = p.Type
				break
			}
		}
	} else {
		tt = Lookup(lexeme, f.Schema)
	}
	return Token{Type: tt, Value: lexeme, Raw: lexeme, Span: span}
}

func phraseEqual(phrase, words []string) bool {
	if len(phrase) != len(words) {
		return false
	}
	for i := range phrase {
		if !strings.EqualFold(phrase[i], words[i]) {
			return false
		}
	}
	return true
}

func stringToken(lexeme string, span TextSpan) (Token, error) {
	if len(lexeme) < 2 || lexeme[0] != lexeme[len(lexeme)-1] || (lexeme[0] != '\'' && lexeme[0] != '"') {
		return Token{}, fmt.Errorf("malformed string literal %s", lexeme)
	}
	return Token{Type: String, Value: escape.Unescape(lexeme[1 : len(lexeme)-1]), Raw: lexeme, Span: span}, nil
}

// NumberParts is a numeric lexeme split into radix, digits and suffix.
type NumberParts struct {
	Type   TokenType
	Digits string
	Suffix string
}

// SplitNumber classifies a numeric lexeme. Prefixes and suffixes are
// case-insensitive. Hex digits take precedence over the b and d suffixes,
// so 0x1b is 27 and 0xFFub is 255 as byte.
func SplitNumber(lexeme string) (NumberParts, error) {
	lower := strings.ToLower(lexeme)
	if len(lower) > 2 && lower[0] == '0' {
		var isDigit func(byte) bool
		var tt TokenType
		switch lower[1] {
		case 'x':
			isDigit, tt = isHexDigit, HexInteger
		case 'b':
			isDigit, tt = func(c byte) bool { return c == '0' || c == '1' }, BinaryInteger
		case 'o':
			isDigit, tt = func(c byte) bool { return c >= '0' && c <= '7' }, OctalInteger
		}
		if isDigit != nil {
			i := 2
			for i < len(lower) && isDigit(lower[i]) {
				i++
			}
			if i > 2 {
				parts := NumberParts{Type: tt, Digits: lexeme[2:i], Suffix: lower[i:]}
				return parts, checkSuffix(lexeme, parts)
			}
		}
	}

	i := 0
	for i < len(lower) && isDecDigit(lower[i]) {
		i++
	}
	if i == 0 {
		return NumberParts{}, fmt.Errorf("invalid numeric literal %q", lexeme)
	}
	tt := Integer
	if i+1 < len(lower) && lower[i] == '.' && isDecDigit(lower[i+1]) {
		tt = Decimal
		i++
		for i < len(lower) && isDecDigit(lower[i]) {
			i++
		}
	}
	if i < len(lower) && lower[i] == 'e' {
		j := i + 1
		if j < len(lower) && (lower[j] == '+' || lower[j] == '-') {
			j++
		}
		if j < len(lower) && isDecDigit(lower[j]) {
			tt = Decimal
			for j < len(lower) && isDecDigit(lower[j]) {
				j++
			}
			i = j
		}
	}
	parts := NumberParts{Type: tt, Digits: lexeme[:i], Suffix: lower[i:]}
	if parts.Suffix == cast.DecimalSuffix {
		parts.Type = Decimal
	}
	return parts, checkSuffix(lexeme, parts)
}

func checkSuffix(lexeme string, parts NumberParts) error {
	if parts.Suffix == "" {
		return nil
	}
	if !cast.IsSuffix(parts.Suffix) {
		return fmt.Errorf("invalid numeric suffix %q in %q", parts.Suffix, lexeme)
	}
	if parts.Type == Decimal && parts.Suffix != cast.DecimalSuffix && strings.ContainsAny(parts.Digits, ".eE") {
		return fmt.Errorf("integer suffix %q on decimal literal %q", parts.Suffix, lexeme)
	}
	return nil
}

func numberToken(lexeme string, span TextSpan) (Token, error) {
	parts, err := SplitNumber(lexeme)
	if err != nil {
		return Token{}, err
	}
	if parts.Type == Decimal && strings.ContainsAny(parts.Digits, ".eE") {
		if _, err := cast.DecimalLiteral(parts.Digits); err != nil {
			return Token{}, err
		}
	} else if _, err := cast.IntegerLiteral(parts.Digits, parts.Type.Base(), parts.Suffix); err != nil {
		return Token{}, err
	}
	return Token{Type: parts.Type, Value: parts.Digits, Raw: lexeme, Span: span, Suffix: parts.Suffix}, nil
}

func isDecDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDecDigit(c) || c >= 'a' && c <= 'f'
}
