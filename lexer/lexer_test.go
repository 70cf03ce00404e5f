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

package lexer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/sqlfront/token"
	"github.com/rulego/sqlfront/utils/cast"
)

func types(t *testing.T, input string, schema bool) []token.TokenType {
	t.Helper()
	tokens, err := Tokenize(input, schema)
	require.NoError(t, err)
	out := make([]token.TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func TestLexerBasicTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.TokenType
	}{
		{"SELECT", []token.TokenType{token.Select}},
		{"select a, b from #s.m()", []token.TokenType{token.Select, token.Identifier, token.Comma, token.Identifier, token.From, token.Hash, token.Identifier, token.Dot, token.Identifier, token.LParen, token.RParen}},
		{"a <= b >= c <> d != e << f >> g => h", []token.TokenType{
			token.Identifier, token.LessEqual, token.Identifier, token.GreaterEqual, token.Identifier,
			token.NotEqual, token.Identifier, token.NotEqual, token.Identifier, token.ShiftLeft, token.Identifier,
			token.ShiftRight, token.Identifier, token.FatArrow, token.Identifier,
		}},
		{"x[0] & 1 | 2 ^ 3 % 4", []token.TokenType{
			token.Identifier, token.LBracket, token.Integer, token.RBracket, token.Ampersand, token.Integer,
			token.Pipe, token.Integer, token.Caret, token.Integer, token.Percent, token.Integer,
		}},
		{"a -- comment\n b /* block\n comment */ c", []token.TokenType{token.Identifier, token.Identifier, token.Identifier}},
		{"true FALSE Null", []token.TokenType{token.True, token.False, token.Null}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, types(t, tt.input, false))
		})
	}
}

func TestLexerPhrases(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.TokenType
	}{
		{"group by", []token.TokenType{token.GroupBy}},
		{"GROUP\n\tBY x", []token.TokenType{token.GroupBy, token.Identifier}},
		{"order by", []token.TokenType{token.OrderBy}},
		{"partition by", []token.TokenType{token.PartitionBy}},
		{"inner join", []token.TokenType{token.InnerJoin}},
		{"left outer join", []token.TokenType{token.LeftOuterJoin}},
		{"left join", []token.TokenType{token.LeftOuterJoin}},
		{"right outer join", []token.TokenType{token.RightOuterJoin}},
		{"cross apply", []token.TokenType{token.CrossApply}},
		{"outer apply", []token.TokenType{token.OuterApply}},
		{"union all", []token.TokenType{token.UnionAll}},
		{"union", []token.TokenType{token.Union}},
		{"not like", []token.TokenType{token.NotLike}},
		{"not rlike", []token.TokenType{token.NotRLike}},
		{"not in", []token.TokenType{token.NotIn}},
		{"not inner", []token.TokenType{token.Not, token.Identifier}},
		{"not", []token.TokenType{token.Not}},
		{"current row", []token.TokenType{token.CurrentRow}},
		{"group", []token.TokenType{token.Identifier}},
		{"groupby", []token.TokenType{token.Identifier}},
		{"left", []token.TokenType{token.Identifier}},
		{"order byx", []token.TokenType{token.Identifier, token.Identifier}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, types(t, tt.input, false))
		})
	}
}

func TestLexerPhraseKeepsOriginalText(t *testing.T) {
	tokens, err := Tokenize("Left  Outer Join", false)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "Left  Outer Join", tokens[0].Value)
	assert.Equal(t, token.NewSpan(0, 16), tokens[0].Span)
}

func TestLexerSchemaMode(t *testing.T) {
	assert.Equal(t,
		[]token.TokenType{token.Identifier, token.Identifier, token.Identifier, token.Identifier},
		types(t, "extends int le repeat", false))
	assert.Equal(t,
		[]token.TokenType{token.Extends, token.IntType, token.LittleEndian, token.Repeat},
		types(t, "extends int le repeat", true))
	assert.Equal(t,
		[]token.TokenType{token.Identifier, token.LBrace, token.Identifier, token.Colon, token.ByteType, token.RBrace},
		types(t, "select { from: byte }", true))

	_, err := Tokenize("{", false)
	var unknown *UnknownTokenError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, '{', unknown.Char)
}

func TestLexerSchemaToggleDropsLookahead(t *testing.T) {
	l := New("binary T { A: byte }")
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, token.Identifier, tok.Type)

	peeked, err := l.Peek()
	require.NoError(t, err)
	assert.Equal(t, token.Identifier, peeked.Type)

	l.SetSchemaContext(true)
	tok, err = l.Next()
	require.NoError(t, err)
	assert.Equal(t, token.Identifier, tok.Type)
	assert.Equal(t, "T", tok.Value)

	tok, err = l.Next()
	require.NoError(t, err)
	assert.Equal(t, token.LBrace, tok.Type)

	l.SetSchemaContext(false)
	assert.False(t, l.SchemaContext())
}

func TestLexerCurrentAndPeek(t *testing.T) {
	l := New("a b")
	assert.Equal(t, token.EOF, l.Current().Type)

	next, err := l.Peek()
	require.NoError(t, err)
	assert.Equal(t, "a", next.Value)

	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", tok.Value)
	assert.Equal(t, "a", l.Current().Value)
	assert.Equal(t, 1, l.Position())

	tok, _ = l.Next()
	assert.Equal(t, "b", tok.Value)
	tok, _ = l.Next()
	assert.Equal(t, token.EOF, tok.Type)
	tok, _ = l.Next()
	assert.Equal(t, token.EOF, tok.Type, "EOF is sticky")
}

func TestLexerSaveRestore(t *testing.T) {
	l := New("a b c")
	_, _ = l.Next()
	state := l.Save()
	_, _ = l.Next()
	_, _ = l.Peek()
	l.SetSchemaContext(true)

	l.Restore(state)
	assert.Equal(t, "a", l.Current().Value)
	assert.False(t, l.SchemaContext())
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, "b", tok.Value)
}

func TestLexerStrings(t *testing.T) {
	tokens, err := Tokenize(`'it\'s' "say \"hi\"" 'tab\there'`, false)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, "it's", tokens[0].Value)
	assert.Equal(t, `'it\'s'`, tokens[0].Raw)
	assert.Equal(t, `say "hi"`, tokens[1].Value)
	assert.Equal(t, "tab\there", tokens[2].Value)

	_, err = Tokenize("'abc", false)
	var lexErr *LexerError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 0, lexErr.Position)
	assert.Contains(t, lexErr.Message, "unterminated string")
}

func TestLexerNumericFidelity(t *testing.T) {
	tests := []struct {
		input string
		typ   token.TokenType
		want  int64
	}{
		{"0xFF", token.HexInteger, 255},
		{"0Xff", token.HexInteger, 255},
		{"0b1010", token.BinaryInteger, 10},
		{"0B1010", token.BinaryInteger, 10},
		{"0o77", token.OctalInteger, 63},
		{"0O77", token.OctalInteger, 63},
		{"1234", token.Integer, 1234},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize(tt.input, false)
			require.NoError(t, err)
			require.Len(t, tokens, 1)
			tok := tokens[0]
			assert.Equal(t, tt.typ, tok.Type)
			v, err := cast.IntegerLiteral(tok.Value, tok.Type.Base(), tok.Suffix)
			require.NoError(t, err)
			n, err := cast.ToInt64(v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestLexerNumericSuffixes(t *testing.T) {
	tokens, err := Tokenize("1b 2ub 3s 4us 5i 6ui 7l 8ul 9d 1.5 2.5d 0xFFul", false)
	require.NoError(t, err)
	suffixes := make([]string, len(tokens))
	for i, tok := range tokens {
		suffixes[i] = tok.Suffix
	}
	assert.Equal(t, []string{"b", "ub", "s", "us", "i", "ui", "l", "ul", "d", "", "d", "ul"}, suffixes)
	assert.Equal(t, token.Decimal, tokens[8].Type)
	assert.Equal(t, token.Decimal, tokens[9].Type)

	_, err = Tokenize("12xyz", false)
	var lexErr *LexerError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 0, lexErr.Position)

	_, err = Tokenize("a 300ub", false)
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 2, lexErr.Position)
	assert.Contains(t, lexErr.Message, "does not fit")
}

func TestLexerDotAfterNumber(t *testing.T) {
	assert.Equal(t, []token.TokenType{token.Identifier, token.LBracket, token.Integer, token.RBracket, token.Dot, token.Identifier},
		types(t, "a[1].b", false))
	assert.Equal(t, []token.TokenType{token.Integer, token.Dot, token.Identifier}, types(t, "1.x", false))
}

func TestUnknownTokenSuggestions(t *testing.T) {
	tests := []struct {
		input string
		char  rune
		pos   int
	}{
		{"select `a`", '`', 7},
		{"select 1;", ';', 8},
		{"a \\ b", '\\', 2},
		{"where a = ?", '?', 10},
		{"select }", '}', 7},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Tokenize(tt.input, false)
			var unknown *UnknownTokenError
			require.ErrorAs(t, err, &unknown)
			assert.Equal(t, tt.char, unknown.Char)
			assert.Equal(t, tt.pos, unknown.Position)
			assert.Equal(t, tt.input[tt.pos:], unknown.Remaining)
			assert.NotEmpty(t, unknown.Suggestions)
			assert.LessOrEqual(t, len(unknown.Suggestions), 3)

			var lexErr *LexerError
			assert.True(t, errors.As(err, &lexErr), "unknown token is a lexer error")
		})
	}

	_, err := Tokenize("a ~ b", false)
	var unknown *UnknownTokenError
	require.ErrorAs(t, err, &unknown)
	assert.Empty(t, unknown.Suggestions)
	assert.Equal(t, "unknown token '~' at position 2", unknown.Error())
}

func TestLexerUnterminatedComment(t *testing.T) {
	_, err := Tokenize("select /* oops", false)
	var lexErr *LexerError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 7, lexErr.Position)
}

func TestLexerLinearTime(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 5000; i++ {
		if i > 0 {
			b.WriteString(" + ")
		}
		b.WriteString("1")
	}
	b.WriteString(strings.Repeat("(", 2000))
	b.WriteString("x")
	b.WriteString(strings.Repeat(")", 2000))

	start := time.Now()
	tokens, err := Tokenize(b.String(), false)
	require.NoError(t, err)
	assert.Equal(t, 5000*2-1+4001, len(tokens))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestDump(t *testing.T) {
	tokens, err := Tokenize("select 'a\\n' from", false)
	require.NoError(t, err)
	out := Dump(tokens)
	assert.Contains(t, out, "| 0    | select |")
	assert.Contains(t, out, `a\n`)
	assert.Contains(t, out, "(3 rows)")

	var b strings.Builder
	require.NoError(t, WriteDump(&b, tokens))
	assert.Equal(t, out, b.String())
}
