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
	"fmt"
	"strings"

	"github.com/rulego/sqlfront/utils/similarity"
)

// LexerError reports a malformed token region.
type LexerError struct {
	Message  string
	Position int
}

func (e *LexerError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Message, e.Position)
}

// UnknownTokenError reports a character that starts no token.
type UnknownTokenError struct {
	LexerError
	Char rune
	// Remaining is the unconsumed input starting at Char
	Remaining   string
	Suggestions []string
}

// confusedChars maps characters borrowed from other SQL dialects to what this
// grammar uses instead.
var confusedChars = map[rune][]string{
	'`': {
		"use single quotes for string literals",
		"column names need no quoting",
	},
	'{': {
		"braces are only valid inside binary or text schema definitions",
		"use parentheses ( ) for grouping",
	},
	'}': {
		"braces are only valid inside binary or text schema definitions",
		"use parentheses ( ) for grouping",
	},
	';': {
		"statements are separated by whitespace; remove the ';'",
	},
	'\\': {
		"backslash escapes are only valid inside string literals",
		"use '/' for division",
	},
	'?': {
		"positional parameters are not supported; write the value inline",
		"use CASE WHEN ... THEN ... ELSE ... END for conditional values",
	},
	'!': {
		"use NOT for negation",
		"use <> or != for inequality",
	},
	'@': {
		"use #schema.method() to reference a data source",
	},
	'$': {
		"use #schema.method() to reference a data source",
	},
}

// NewUnknownTokenError builds the error for ch found at position, attaching
// suggestions for commonly confused characters.
func NewUnknownTokenError(ch rune, position int, remaining string) *UnknownTokenError {
	suggestions := confusedChars[ch]
	if len(suggestions) > similarity.MaxSuggestions {
		suggestions = suggestions[:similarity.MaxSuggestions]
	}
	return &UnknownTokenError{
		LexerError: LexerError{
			Message:  fmt.Sprintf("unknown token %q", ch),
			Position: position,
		},
		Char:        ch,
		Remaining:   remaining,
		Suggestions: append([]string(nil), suggestions...),
	}
}

func (e *UnknownTokenError) Error() string {
	msg := e.LexerError.Error()
	if len(e.Suggestions) > 0 {
		msg += " (" + strings.Join(e.Suggestions, "; ") + ")"
	}
	return msg
}

// Unwrap exposes the embedded LexerError to errors.As.
func (e *UnknownTokenError) Unwrap() error {
	return &e.LexerError
}
