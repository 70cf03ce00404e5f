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
	"sort"
	"strings"
)

// queryKeywords are recognised outside schema blocks.
var queryKeywords = map[string]TokenType{
	"select":    Select,
	"from":      From,
	"where":     Where,
	"having":    Having,
	"skip":      Skip,
	"take":      Take,
	"as":        As,
	"and":       And,
	"or":        Or,
	"not":       Not,
	"like":      Like,
	"rlike":     RLike,
	"is":        Is,
	"in":        In,
	"between":   Between,
	"contains":  Contains,
	"case":      Case,
	"when":      When,
	"then":      Then,
	"else":      Else,
	"end":       End,
	"asc":       Asc,
	"desc":      Desc,
	"distinct":  Distinct,
	"with":      With,
	"recursive": Recursive,
	"couple":    Couple,
	"table":     Table,
	"union":     Union,
	"intersect": Intersect,
	"except":    Except,
	"on":        On,
	"over":      Over,
	"rows":      Rows,
	"unbounded": Unbounded,
	"preceding": Preceding,
	"following": Following,
	"pivot":     Pivot,
	"for":       For,
	"true":      True,
	"false":     False,
	"null":      Null,
}

// schemaKeywords are recognised while the lexer is in schema context.
var schemaKeywords = map[string]TokenType{
	"binary":     Binary,
	"text":       Text,
	"extends":    Extends,
	"check":      Check,
	"at":         At,
	"le":         LittleEndian,
	"be":         BigEndian,
	"byte":       ByteType,
	"sbyte":      SByteType,
	"short":      ShortType,
	"ushort":     UShortType,
	"int":        IntType,
	"uint":       UIntType,
	"long":       LongType,
	"ulong":      ULongType,
	"float":      FloatType,
	"double":     DoubleType,
	"bits":       Bits,
	"align":      Align,
	"string":     StringType,
	"repeat":     Repeat,
	"until":      Until,
	"switch":     Switch,
	"pattern":    Pattern,
	"literal":    Literal,
	"between":    Between,
	"chars":      Chars,
	"token":      TokenKind,
	"rest":       Rest,
	"whitespace": Whitespace,
	"optional":   Optional,
	"capture":    Capture,
	"trim":       Trim,
	"ltrim":      LTrim,
	"rtrim":      RTrim,
	"nullterm":   NullTerm,
	"as":         As,
	"end":        End,
	"and":        And,
	"or":         Or,
	"not":        Not,
	"true":       True,
	"false":      False,
	"null":       Null,
}

// Phrase is a keyword spelled as several words separated by whitespace.
type Phrase struct {
	Words []string
	Type  TokenType
}

// Text returns the canonical spelling of the phrase.
func (p Phrase) Text() string {
	return strings.Join(p.Words, " ")
}

// queryPhrases lists compound keywords; the first spelling of a type is canonical.
var queryPhrases = []Phrase{
	{Words: []string{"group", "by"}, Type: GroupBy},
	{Words: []string{"order", "by"}, Type: OrderBy},
	{Words: []string{"partition", "by"}, Type: PartitionBy},
	{Words: []string{"inner", "join"}, Type: InnerJoin},
	{Words: []string{"left", "outer", "join"}, Type: LeftOuterJoin},
	{Words: []string{"left", "join"}, Type: LeftOuterJoin},
	{Words: []string{"right", "outer", "join"}, Type: RightOuterJoin},
	{Words: []string{"right", "join"}, Type: RightOuterJoin},
	{Words: []string{"cross", "apply"}, Type: CrossApply},
	{Words: []string{"outer", "apply"}, Type: OuterApply},
	{Words: []string{"union", "all"}, Type: UnionAll},
	{Words: []string{"not", "like"}, Type: NotLike},
	{Words: []string{"not", "rlike"}, Type: NotRLike},
	{Words: []string{"not", "in"}, Type: NotIn},
	{Words: []string{"current", "row"}, Type: CurrentRow},
}

// phrasesByFirst indexes queryPhrases by first word, longest phrase first.
var phrasesByFirst = func() map[string][]Phrase {
	m := make(map[string][]Phrase)
	for _, p := range queryPhrases {
		m[p.Words[0]] = append(m[p.Words[0]], p)
	}
	for _, list := range m {
		sort.SliceStable(list, func(i, j int) bool { return len(list[i].Words) > len(list[j].Words) })
	}
	return m
}()

// Lookup maps a word to its keyword type, or Identifier. Matching is
// case-insensitive and depends on whether the lexer is in schema context.
func Lookup(word string, schema bool) TokenType {
	table := queryKeywords
	if schema {
		table = schemaKeywords
	}
	if tt, ok := table[strings.ToLower(word)]; ok {
		return tt
	}
	return Identifier
}

// PhrasesFor returns the compound keywords starting with word, longest first.
// Compound keywords exist only in the query grammar.
func PhrasesFor(word string, schema bool) []Phrase {
	if schema {
		return nil
	}
	return phrasesByFirst[strings.ToLower(word)]
}

// QueryKeywords returns every query keyword spelling, sorted.
func QueryKeywords() []string {
	words := make([]string, 0, len(queryKeywords)+len(queryPhrases))
	for w := range queryKeywords {
		words = append(words, w)
	}
	for _, p := range queryPhrases {
		words = append(words, p.Text())
	}
	sort.Strings(words)
	return words
}

// SchemaKeywords returns every schema keyword spelling, sorted.
func SchemaKeywords() []string {
	words := make([]string, 0, len(schemaKeywords))
	for w := range schemaKeywords {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// StatementKeywords are the words that may open a query statement.
var StatementKeywords = []string{"select", "from", "with", "desc", "couple", "binary", "text"}
