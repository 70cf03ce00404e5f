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

// Package diag holds the structured syntax error shared by the query and
// schema parsers.
package diag

import (
	"fmt"
	"strings"

	"github.com/rulego/sqlfront/token"
	"github.com/rulego/sqlfront/utils/similarity"
)

// ErrorKind classifies a SyntaxError.
type ErrorKind int

const (
	KindSyntax ErrorKind = iota
	KindUnexpectedToken
	KindMissingToken
	KindInvalidStructure
	KindUnsupportedSyntax
)

func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "SYNTAX_ERROR"
	case KindUnexpectedToken:
		return "UNEXPECTED_TOKEN"
	case KindMissingToken:
		return "MISSING_TOKEN"
	case KindInvalidStructure:
		return "INVALID_STRUCTURE"
	case KindUnsupportedSyntax:
		return "UNSUPPORTED_SYNTAX"
	default:
		return "UNKNOWN_ERROR"
	}
}

// SyntaxError is the parser's error value. QueryPart is the input consumed up
// to and including the offending token, never the whole remaining input.
type SyntaxError struct {
	Kind      ErrorKind
	Message   string
	QueryPart string
	// Position is the byte offset of the fault, or -1 when unknown
	Position       int
	Line           int
	Column         int
	ExpectedTokens []string
	ActualToken    string
	Suggestions    []string
}

func (e *SyntaxError) Error() string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("[%s] %s", e.Kind, e.Message))
	if e.Line > 0 {
		builder.WriteString(fmt.Sprintf(" at line %d, column %d", e.Line, e.Column))
	} else if e.Position >= 0 {
		builder.WriteString(fmt.Sprintf(" at position %d", e.Position))
	}
	if e.QueryPart != "" {
		builder.WriteString(fmt.Sprintf("\nNear: %s", e.QueryPart))
	}
	return builder.String()
}

// NewSyntaxError builds a generic syntax error.
func NewSyntaxError(message, queryPart string, position int) *SyntaxError {
	line, column := lineColumn(queryPart, position)
	return &SyntaxError{
		Kind:      KindSyntax,
		Message:   message,
		QueryPart: queryPart,
		Position:  position,
		Line:      line,
		Column:    column,
	}
}

// UnexpectedToken reports actual where one of expected was required. When
// actual is a near miss of one of keywords the message gains a
// "Did you mean" clause and the keywords become the suggestions.
func UnexpectedToken(queryPart string, actual token.Token, expected []string, keywords []string) *SyntaxError {
	e := NewSyntaxError("", queryPart, actual.Span.Start)
	e.Kind = KindUnexpectedToken
	e.ActualToken = actual.Display()
	e.ExpectedTokens = expected

	var builder strings.Builder
	if actual.Type == token.EOF {
		builder.WriteString("Unexpected end of input")
	} else {
		builder.WriteString(fmt.Sprintf("Unexpected token '%s'", actual.Display()))
	}
	if len(expected) > 0 {
		builder.WriteString(", expected " + joinAlternatives(expected))
	}
	if actual.IsWord() {
		e.Suggestions = similarity.Suggest(actual.Value, keywords)
		if len(e.Suggestions) > 0 {
			builder.WriteString(". " + similarity.DidYouMean(e.Suggestions))
		}
	}
	e.Message = builder.String()
	return e
}

// MissingToken reports that required was absent where actual was found.
func MissingToken(queryPart, required string, actual token.Token) *SyntaxError {
	e := NewSyntaxError("", queryPart, actual.Span.Start)
	e.Kind = KindMissingToken
	e.ExpectedTokens = []string{required}
	e.ActualToken = actual.Display()
	if actual.Type == token.EOF {
		e.Message = fmt.Sprintf("Missing '%s' at end of input", required)
	} else {
		e.Message = fmt.Sprintf("Missing '%s' before '%s'", required, actual.Display())
	}
	return e
}

// InvalidStructure reports a structural complaint such as an empty list.
func InvalidStructure(queryPart, message string, position int) *SyntaxError {
	e := NewSyntaxError(message, queryPart, position)
	e.Kind = KindInvalidStructure
	return e
}

// UnsupportedSyntax reports a recognised construct that is not implemented.
func UnsupportedSyntax(queryPart, construct string, position int) *SyntaxError {
	e := NewSyntaxError(fmt.Sprintf("%s is not supported", construct), queryPart, position)
	e.Kind = KindUnsupportedSyntax
	return e
}

// WithSuggestions attaches a bulleted remediation list to message.
func WithSuggestions(message, queryPart string, position int, suggestions ...string) *SyntaxError {
	e := NewSyntaxError(message, queryPart, position)
	e.Suggestions = suggestions
	if len(suggestions) > 0 {
		var builder strings.Builder
		builder.WriteString(message)
		builder.WriteString("\nSuggestions:")
		for _, s := range suggestions {
			builder.WriteString("\n- " + s)
		}
		e.Message = builder.String()
	}
	return e
}

func joinAlternatives(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + s + "'"
	}
	if len(quoted) == 1 {
		return quoted[0]
	}
	return "one of " + strings.Join(quoted, ", ")
}
