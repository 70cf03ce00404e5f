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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryWords(t *testing.T) {
	f := Factory{}
	tok, err := f.Make(ClassWord, "SeLeCt", NewSpan(0, 6))
	require.NoError(t, err)
	assert.Equal(t, Select, tok.Type)
	assert.Equal(t, "SeLeCt", tok.Value)

	tok, err = f.Make(ClassWord, "Left \n Outer Join", NewSpan(0, 17))
	require.NoError(t, err)
	assert.Equal(t, LeftOuterJoin, tok.Type)
	assert.Equal(t, "Left \n Outer Join", tok.Raw)

	tok, err = f.Make(ClassWord, "repeat", NewSpan(0, 6))
	require.NoError(t, err)
	assert.Equal(t, Identifier, tok.Type)

	tok, err = Factory{Schema: true}.Make(ClassWord, "repeat", NewSpan(0, 6))
	require.NoError(t, err)
	assert.Equal(t, Repeat, tok.Type)
}

func TestFactoryStrings(t *testing.T) {
	f := Factory{}
	tok, err := f.Make(ClassString, `'it\'s\n'`, NewSpan(0, 9))
	require.NoError(t, err)
	assert.Equal(t, String, tok.Type)
	assert.Equal(t, "it's\n", tok.Value)
	assert.Equal(t, `'it\'s\n'`, tok.Raw)

	tok, err = f.Make(ClassString, `"a"`, NewSpan(0, 3))
	require.NoError(t, err)
	assert.Equal(t, "a", tok.Value)

	_, err = f.Make(ClassString, `'abc`, NewSpan(0, 4))
	assert.Error(t, err)
}

func TestFactoryNumbers(t *testing.T) {
	tests := []struct {
		lexeme string
		typ    TokenType
		digits string
		suffix string
	}{
		{"42", Integer, "42", ""},
		{"0xFF", HexInteger, "FF", ""},
		{"0XfF", HexInteger, "fF", ""},
		{"0x1b", HexInteger, "1b", ""},
		{"0xFFub", HexInteger, "FF", "ub"},
		{"0b1010", BinaryInteger, "1010", ""},
		{"0B11s", BinaryInteger, "11", "s"},
		{"0o77", OctalInteger, "77", ""},
		{"0O17L", OctalInteger, "17", "l"},
		{"0b", Integer, "0", "b"},
		{"12ul", Integer, "12", "ul"},
		{"12UL", Integer, "12", "ul"},
		{"12d", Decimal, "12", "d"},
		{"1.5", Decimal, "1.5", ""},
		{"1.5d", Decimal, "1.5", "d"},
		{"2e10", Decimal, "2e10", ""},
	}
	for _, tt := range tests {
		t.Run(tt.lexeme, func(t *testing.T) {
			tok, err := Factory{}.Make(ClassNumber, tt.lexeme, NewSpan(0, len(tt.lexeme)))
			require.NoError(t, err)
			assert.Equal(t, tt.typ, tok.Type)
			assert.Equal(t, tt.digits, tok.Value)
			assert.Equal(t, tt.suffix, tok.Suffix)
			assert.Equal(t, tt.lexeme, tok.Raw)
		})
	}
}

func TestFactoryNumberErrors(t *testing.T) {
	for _, lexeme := range []string{"12abc", "1.5ul", "300ub", "128b", "0xZZ", "0x"} {
		_, err := Factory{}.Make(ClassNumber, lexeme, NewSpan(0, len(lexeme)))
		assert.Error(t, err, lexeme)
	}
}

func TestFactorySymbols(t *testing.T) {
	tok, err := Factory{}.Make(ClassSymbol, "!=", NewSpan(0, 2))
	require.NoError(t, err)
	assert.Equal(t, NotEqual, tok.Type)

	_, err = Factory{}.Make(ClassSymbol, "{", NewSpan(0, 1))
	assert.Error(t, err)

	tok, err = Factory{Schema: true}.Make(ClassSymbol, "{", NewSpan(0, 1))
	require.NoError(t, err)
	assert.Equal(t, LBrace, tok.Type)
}

func TestBase(t *testing.T) {
	assert.Equal(t, 16, HexInteger.Base())
	assert.Equal(t, 2, BinaryInteger.Base())
	assert.Equal(t, 8, OctalInteger.Base())
	assert.Equal(t, 10, Integer.Base())
}
