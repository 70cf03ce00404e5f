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
	"io"
	"strconv"

	"github.com/rulego/sqlfront/token"
	"github.com/rulego/sqlfront/utils/escape"
	"github.com/rulego/sqlfront/utils/table"
)

var dumpHeader = []string{"#", "type", "value", "span", "suffix"}

// Dump renders tokens as an ASCII table, one row per token.
func Dump(tokens []token.Token) string {
	return table.Render(dumpHeader, dumpRows(tokens))
}

// WriteDump writes the Dump table to w.
func WriteDump(w io.Writer, tokens []token.Token) error {
	return table.Write(w, dumpHeader, dumpRows(tokens))
}

func dumpRows(tokens []token.Token) [][]string {
	rows := make([][]string, 0, len(tokens))
	for i, tok := range tokens {
		rows = append(rows, []string{
			strconv.Itoa(i),
			tok.Type.String(),
			escape.Escape(tok.Value),
			tok.Span.String(),
			tok.Suffix,
		})
	}
	return rows
}
