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
	"fmt"
	"strings"

	"github.com/rulego/sqlfront/token"
)

// QueryPartOf returns the prefix of input ending with span. An empty span
// yields the whole input.
func QueryPartOf(input string, span token.TextSpan) string {
	if span.IsEmpty() {
		return input
	}
	end := span.End()
	if end <= 0 {
		end = min(len(input), 1)
	}
	return input[:min(end, len(input))]
}

// lineColumn converts a byte offset within text into 1-based line and column.
// It returns zeros when position lies outside text.
func lineColumn(text string, position int) (int, int) {
	if position < 0 || position > len(text) {
		return 0, 0
	}
	line := 1 + strings.Count(text[:position], "\n")
	column := position - strings.LastIndexByte(text[:position], '\n')
	return line, column
}

// FormatContext renders the text around position with a caret under it.
func FormatContext(input string, position int, contextLength int) string {
	if position < 0 || position > len(input) {
		return ""
	}
	start := max(0, position-contextLength)
	end := min(len(input), position+contextLength)
	if nl := strings.LastIndexByte(input[start:position], '\n'); nl >= 0 {
		start += nl + 1
	}
	if nl := strings.IndexByte(input[position:end], '\n'); nl >= 0 {
		end = position + nl
	}
	pointer := strings.Repeat(" ", position-start) + "^"
	return fmt.Sprintf("%s\n%s", input[start:end], pointer)
}
