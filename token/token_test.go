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

func TestLookup(t *testing.T) {
	tests := []struct {
		word   string
		schema bool
		want   TokenType
	}{
		{"SELECT", false, Select},
		{"select", false, Select},
		{"Extends", false, Identifier},
		{"extends", true, Extends},
		{"int", false, Identifier},
		{"INT", true, IntType},
		{"le", true, LittleEndian},
		{"select", true, Identifier},
		{"between", true, Between},
		{"token", true, TokenKind},
		{"functions", false, Identifier},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Lookup(tt.word, tt.schema), "%s schema=%v", tt.word, tt.schema)
	}
}

func TestTypeNames(t *testing.T) {
	assert.Equal(t, "left outer join", LeftOuterJoin.String())
	assert.Equal(t, "right outer join", RightOuterJoin.String())
	assert.Equal(t, "group by", GroupBy.String())
	assert.Equal(t, "select", Select.String())
	assert.Equal(t, "<>", NotEqual.String())
	assert.Equal(t, "end of input", EOF.String())
	assert.True(t, Select.IsKeyword())
	assert.True(t, NullTerm.IsKeyword())
	assert.False(t, Identifier.IsKeyword())
	assert.True(t, HexInteger.IsInteger())
	assert.True(t, String.IsLiteral())
	assert.False(t, Comma.IsLiteral())
}

func TestPhrasesForLongestFirst(t *testing.T) {
	left := PhrasesFor("LEFT", false)
	require.Len(t, left, 2)
	assert.Equal(t, "left outer join", left[0].Text())
	assert.Equal(t, "left join", left[1].Text())
	assert.Nil(t, PhrasesFor("left", true))
	assert.Nil(t, PhrasesFor("select", false))
}

func TestKeywordLists(t *testing.T) {
	q := QueryKeywords()
	assert.Contains(t, q, "select")
	assert.Contains(t, q, "group by")
	assert.NotContains(t, q, "extends")
	s := SchemaKeywords()
	assert.Contains(t, s, "extends")
	assert.Contains(t, s, "nullterm")
	assert.NotContains(t, s, "select")
}

func TestTokenIsWord(t *testing.T) {
	assert.True(t, Token{Type: Identifier, Raw: "Name"}.IsWord())
	assert.True(t, Token{Type: Select, Raw: "Select"}.IsWord())
	assert.True(t, Token{Type: Null, Raw: "null"}.IsWord())
	assert.False(t, Token{Type: GroupBy, Raw: "group by"}.IsWord())
	assert.False(t, Token{Type: Comma, Raw: ","}.IsWord())
	assert.False(t, Token{Type: Integer, Raw: "12"}.IsWord())
}

func TestSpan(t *testing.T) {
	a := NewSpan(2, 5)
	b := NewSpan(10, 12)
	assert.Equal(t, 3, a.Length)
	assert.Equal(t, 5, a.End())
	assert.Equal(t, TextSpan{Start: 2, Length: 10}, a.Cover(b))
	assert.Equal(t, a, a.Cover(EmptySpan))
	assert.Equal(t, b, EmptySpan.Cover(b))
	assert.True(t, EmptySpan.IsEmpty())
	assert.Equal(t, "-", EmptySpan.String())
	assert.Equal(t, "2:3", a.String())
}
