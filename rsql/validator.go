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

package rsql

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rulego/sqlfront/logger"
	"github.com/rulego/sqlfront/token"
)

// ValidatorConfig holds the limits applied by QueryValidator.
type ValidatorConfig struct {
	// MaxLength is the maximum query length in bytes
	MaxLength int
	// MaxNestingDepth is the maximum parenthesis depth
	MaxNestingDepth int
	// MaxJoins caps JOIN and APPLY clauses together
	MaxJoins int
	// ReadOnly rejects statement-modifying keywords such as DROP or DELETE
	ReadOnly bool
}

// DefaultValidatorConfig returns the default limits.
func DefaultValidatorConfig() ValidatorConfig {
	return ValidatorConfig{
		MaxLength:       100000,
		MaxNestingDepth: 64,
		MaxJoins:        32,
		ReadOnly:        true,
	}
}

// ValidationIssue is one finding of the validator.
type ValidationIssue struct {
	Message string
	// Position is the byte offset the issue refers to, or -1
	Position   int
	Suggestion string
}

func (i ValidationIssue) String() string {
	var b strings.Builder
	b.WriteString(i.Message)
	if i.Position >= 0 {
		b.WriteString(fmt.Sprintf(" at position %d", i.Position))
	}
	if i.Suggestion != "" {
		b.WriteString(" (" + i.Suggestion + ")")
	}
	return b.String()
}

// QueryValidationError is returned by Validate when the query fails any check.
type QueryValidationError struct {
	Query  string
	Issues []ValidationIssue
}

func (e *QueryValidationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return "query validation failed: " + strings.Join(parts, "; ")
}

// deniedChars are characters the dialect never uses outside string literals.
var deniedChars = map[byte]string{
	'`': "use single quotes for strings and plain names for columns",
	';': "statements are separated by whitespace, remove ';'",
	'?': "parameters are not supported, inline the value",
}

var (
	modifyingKeywords = regexp.MustCompile(`(?i)\b(drop|delete|insert|update|alter|truncate|create|grant|revoke|merge|exec|execute)\b`)
	joinKeywords      = regexp.MustCompile(`(?i)\b(join|apply)\b`)
	leadingWord       = regexp.MustCompile(`^[\s(]*([A-Za-z_][A-Za-z0-9_]*)`)
	selectStar        = regexp.MustCompile(`(?i)\bselect\s+(distinct\s+)?\*`)
	bareSchemaCall    = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*\.[A-Za-z_][A-Za-z0-9_]*\s*\(`)
	limitingClause    = regexp.MustCompile(`(?i)\b(where|take)\b`)
	fromClause        = regexp.MustCompile(`(?i)\bfrom\b`)
)

// QueryValidator performs cheap checks on raw query text before parsing.
// It never tokenizes or parses the query.
type QueryValidator struct {
	config ValidatorConfig
	log    logger.Logger
}

// NewQueryValidator returns a validator. A nil log uses the default logger.
func NewQueryValidator(config ValidatorConfig, log logger.Logger) *QueryValidator {
	if log == nil {
		log = logger.GetDefault()
	}
	return &QueryValidator{config: config, log: logger.Named(log, "validator")}
}

// Config returns the limits in use.
func (v *QueryValidator) Config() ValidatorConfig {
	return v.config
}

// Validate returns a *QueryValidationError listing every failed check, or nil.
func (v *QueryValidator) Validate(query string) error {
	if strings.TrimSpace(query) == "" {
		return v.fail(query, []ValidationIssue{{Message: "query is empty", Position: -1}})
	}

	var issues []ValidationIssue
	if v.config.MaxLength > 0 && len(query) > v.config.MaxLength {
		issues = append(issues, ValidationIssue{
			Message:  fmt.Sprintf("query length %d exceeds the limit of %d", len(query), v.config.MaxLength),
			Position: v.config.MaxLength,
		})
	}

	scan := scanQuery(query)
	issues = append(issues, scan.issues...)
	if v.config.MaxNestingDepth > 0 && scan.maxDepth > v.config.MaxNestingDepth {
		issues = append(issues, ValidationIssue{
			Message:  fmt.Sprintf("parenthesis nesting depth %d exceeds the limit of %d", scan.maxDepth, v.config.MaxNestingDepth),
			Position: scan.deepest,
		})
	}

	if v.config.ReadOnly {
		for _, loc := range modifyingKeywords.FindAllStringIndex(scan.code, -1) {
			word := strings.ToUpper(scan.code[loc[0]:loc[1]])
			issues = append(issues, ValidationIssue{
				Message:    fmt.Sprintf("statement-modifying keyword %s is not allowed", word),
				Position:   loc[0],
				Suggestion: "queries are read-only",
			})
		}
	}

	if !startsWithStatement(scan.code) && !scan.hasSchemaRef {
		issues = append(issues, ValidationIssue{
			Message:    "query has neither a statement keyword nor a schema reference",
			Position:   -1,
			Suggestion: "start with SELECT, FROM, WITH, DESC or COUPLE",
		})
	}

	if v.config.MaxJoins > 0 {
		if joins := len(joinKeywords.FindAllStringIndex(scan.code, -1)); joins > v.config.MaxJoins {
			issues = append(issues, ValidationIssue{
				Message:  fmt.Sprintf("query has %d joins, the limit is %d", joins, v.config.MaxJoins),
				Position: -1,
			})
		}
	}

	if len(issues) == 0 {
		return nil
	}
	return v.fail(query, issues)
}

func (v *QueryValidator) fail(query string, issues []ValidationIssue) error {
	for _, issue := range issues {
		v.log.Warn("%s", issue)
	}
	return &QueryValidationError{Query: query, Issues: issues}
}

// GetQuerySuggestions returns non-fatal advice for query. It never fails.
func (v *QueryValidator) GetQuerySuggestions(query string) []string {
	var suggestions []string
	if strings.TrimSpace(query) == "" {
		return suggestions
	}
	code := scanQuery(query).code
	if selectStar.MatchString(code) {
		suggestions = append(suggestions, "Avoid SELECT *, list the columns you need")
	}
	if fromClause.MatchString(code) && !strings.Contains(code, "#") && !bareSchemaCall.MatchString(code) {
		suggestions = append(suggestions, "Add a schema reference such as #schema.method() to the FROM clause")
	}
	if fromClause.MatchString(code) && !limitingClause.MatchString(code) {
		suggestions = append(suggestions, "Add a WHERE or TAKE clause to limit large result sets")
	}
	return suggestions
}

func startsWithStatement(code string) bool {
	m := leadingWord.FindStringSubmatch(code)
	if m == nil {
		return false
	}
	word := strings.ToLower(m[1])
	for _, kw := range token.StatementKeywords {
		if word == kw {
			return true
		}
	}
	return false
}

// queryScan is the result of one pass over the raw query.
type queryScan struct {
	// code is the query with string contents and comments blanked, so
	// keyword searches cannot match inside them; offsets are preserved
	code         string
	maxDepth     int
	deepest      int
	hasSchemaRef bool
	issues       []ValidationIssue
}

func scanQuery(query string) queryScan {
	var s queryScan
	code := []byte(query)
	var open []int
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case c == '\'' || c == '"':
			end := closingQuote(query, i)
			if end < 0 {
				s.issues = append(s.issues, ValidationIssue{Message: "unterminated string literal", Position: i})
				blank(code, i+1, len(code))
				i = len(code)
				continue
			}
			blank(code, i+1, end)
			i = end
		case c == '-' && i+1 < len(code) && code[i+1] == '-':
			end := strings.IndexByte(query[i:], '\n')
			if end < 0 {
				end = len(query) - i
			}
			blank(code, i, i+end)
			i += end
		case c == '/' && i+1 < len(code) && code[i+1] == '*':
			end := strings.Index(query[i+2:], "*/")
			if end < 0 {
				s.issues = append(s.issues, ValidationIssue{Message: "unterminated block comment", Position: i})
				blank(code, i, len(code))
				i = len(code)
				continue
			}
			blank(code, i, i+2+end+2)
			i += 2 + end + 1
		case c == '(':
			open = append(open, i)
			if len(open) > s.maxDepth {
				s.maxDepth = len(open)
				s.deepest = i
			}
		case c == ')':
			if len(open) == 0 {
				s.issues = append(s.issues, ValidationIssue{Message: "unbalanced ')'", Position: i})
				continue
			}
			open = open[:len(open)-1]
		case c == '#':
			s.hasSchemaRef = true
		default:
			if hint, denied := deniedChars[c]; denied {
				s.issues = append(s.issues, ValidationIssue{
					Message:    fmt.Sprintf("character %q is not allowed", c),
					Position:   i,
					Suggestion: hint,
				})
			}
		}
	}
	for _, pos := range open {
		s.issues = append(s.issues, ValidationIssue{Message: "unclosed '('", Position: pos})
	}
	s.code = string(code)
	return s
}

// closingQuote returns the index of the quote closing the literal opened at
// start, or -1. A backslash escapes the following byte.
func closingQuote(query string, start int) int {
	quote := query[start]
	for i := start + 1; i < len(query); i++ {
		switch query[i] {
		case '\\':
			i++
		case quote:
			return i
		}
	}
	return -1
}

func blank(code []byte, from, to int) {
	for i := from; i < to && i < len(code); i++ {
		if code[i] != '\n' {
			code[i] = ' '
		}
	}
}
