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

package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rulego/sqlfront/token"
)

func word(value string, start int) token.Token {
	return token.Token{Type: token.Identifier, Value: value, Raw: value, Span: token.NewSpan(start, start+len(value))}
}

func TestUnexpectedTokenDidYouMean(t *testing.T) {
	input := "seelct 1 from #system.dual()"
	tok := word("seelct", 0)
	err := UnexpectedToken(QueryPartOf(input, tok.Span), tok, []string{"select", "from"}, token.QueryKeywords())

	assert.Equal(t, KindUnexpectedToken, err.Kind)
	assert.Equal(t, "seelct", err.QueryPart)
	assert.Equal(t, "seelct", err.ActualToken)
	assert.Contains(t, err.Suggestions, "select")
	assert.Contains(t, err.Message, "Did you mean 'select'")
	assert.Contains(t, err.Message, "expected one of 'select', 'from'")
	assert.Equal(t, 0, err.Position)
	assert.Equal(t, 1, err.Line)
	assert.Equal(t, 1, err.Column)
	assert.Contains(t, err.Error(), "[UNEXPECTED_TOKEN]")
}

func TestUnexpectedTokenWithoutNearMiss(t *testing.T) {
	tok := word("zzzzzz", 7)
	err := UnexpectedToken("select zzzzzz", tok, nil, token.QueryKeywords())
	assert.Empty(t, err.Suggestions)
	assert.Equal(t, "Unexpected token 'zzzzzz'", err.Message)
	assert.NotContains(t, err.Message, "Did you mean")

	eof := token.Token{Type: token.EOF, Span: token.NewSpan(6, 6)}
	err = UnexpectedToken("select", eof, []string{"expression"}, token.QueryKeywords())
	assert.Equal(t, "Unexpected end of input, expected 'expression'", err.Message)
	assert.Equal(t, "end of input", err.ActualToken)
}

func TestMissingToken(t *testing.T) {
	tok := word("where", 30)
	err := MissingToken("select * from a inner join b where", "ON", tok)
	assert.Equal(t, KindMissingToken, err.Kind)
	assert.Equal(t, []string{"ON"}, err.ExpectedTokens)
	assert.Equal(t, "Missing 'ON' before 'where'", err.Message)

	err = MissingToken("case when a then b", "END", token.Token{Type: token.EOF, Span: token.NewSpan(18, 18)})
	assert.Equal(t, "Missing 'END' at end of input", err.Message)
}

func TestInvalidStructureAndUnsupported(t *testing.T) {
	err := InvalidStructure("select a group by", "GROUP BY requires at least one column", 9)
	assert.Equal(t, KindInvalidStructure, err.Kind)
	assert.Equal(t, "[INVALID_STRUCTURE] GROUP BY requires at least one column at line 1, column 10\nNear: select a group by", err.Error())

	err = UnsupportedSyntax("select a from b full", "FULL JOIN", 16)
	assert.Equal(t, KindUnsupportedSyntax, err.Kind)
	assert.Equal(t, "FULL JOIN is not supported", err.Message)
}

func TestWithSuggestions(t *testing.T) {
	err := WithSuggestions("PIVOT requires an alias", "pivot (sum(a) for b in (1))", 27, "add AS <alias>", "name the pivoted set")
	assert.Equal(t, "PIVOT requires an alias\nSuggestions:\n- add AS <alias>\n- name the pivoted set", err.Message)
	assert.Equal(t, []string{"add AS <alias>", "name the pivoted set"}, err.Suggestions)

	err = WithSuggestions("plain", "x", 0)
	assert.Equal(t, "plain", err.Message)
}

func TestQueryPartOf(t *testing.T) {
	input := "select a, from b"
	assert.Equal(t, "select a,", QueryPartOf(input, token.NewSpan(8, 9)))
	assert.Equal(t, input, QueryPartOf(input, token.EmptySpan))
	assert.Equal(t, input, QueryPartOf(input, token.NewSpan(16, 40)))
	assert.Equal(t, "s", QueryPartOf(input, token.NewSpan(0, 0)))
}

func TestLineColumn(t *testing.T) {
	line, col := lineColumn("select a\nfrom b", 9)
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, col)
	line, col = lineColumn("abc", 10)
	assert.Equal(t, 0, line)
	assert.Equal(t, 0, col)
}

func TestFormatContext(t *testing.T) {
	assert.Equal(t, "select a,, b\n         ^", FormatContext("select a,, b", 9, 20))
	assert.Equal(t, "from b\n     ^", FormatContext("select a\nfrom b", 14, 20))
	assert.Equal(t, "", FormatContext("abc", -1, 5))
}
