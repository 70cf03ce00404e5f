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
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/sqlfront/logger"
)

func newValidator(config ValidatorConfig) *QueryValidator {
	return NewQueryValidator(config, logger.NewDiscardLogger())
}

func validationIssues(t *testing.T, v *QueryValidator, query string) []ValidationIssue {
	t.Helper()
	err := v.Validate(query)
	require.Error(t, err, query)
	var verr *QueryValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, query, verr.Query)
	assert.True(t, strings.HasPrefix(err.Error(), "query validation failed: "))
	return verr.Issues
}

func messages(issues []ValidationIssue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.Message
	}
	return out
}

func TestDefaultValidatorConfig(t *testing.T) {
	cfg := DefaultValidatorConfig()
	assert.Equal(t, 100000, cfg.MaxLength)
	assert.Equal(t, 64, cfg.MaxNestingDepth)
	assert.Equal(t, 32, cfg.MaxJoins)
	assert.True(t, cfg.ReadOnly)
	assert.Equal(t, cfg, newValidator(cfg).Config())
}

func TestValidQueries(t *testing.T) {
	v := newValidator(DefaultValidatorConfig())
	queries := []string{
		"select Name from #os.files('/tmp') where Length > 10",
		"from #os.files('/tmp') f select f.Name",
		"select a from #x.y() where a = 'drop table; `x`'",
		"select a from #x.y() -- delete me",
		"select a /* update */ from #x.y()",
		"  (select a from #x.y())",
		"desc #os.files",
		"#os.files('/')",
	}
	for _, q := range queries {
		assert.NoError(t, v.Validate(q), q)
	}
}

func TestEmptyQuery(t *testing.T) {
	v := newValidator(DefaultValidatorConfig())
	for _, q := range []string{"", "   \n\t"} {
		issues := validationIssues(t, v, q)
		require.Len(t, issues, 1)
		assert.Equal(t, "query is empty", issues[0].Message)
		assert.Equal(t, -1, issues[0].Position)
	}
}

func TestReadOnlyKeywords(t *testing.T) {
	v := newValidator(DefaultValidatorConfig())
	issues := validationIssues(t, v, "select a from #x.y(); drop table t")
	require.Len(t, issues, 2)
	assert.Equal(t, "character ';' is not allowed", issues[0].Message)
	assert.Equal(t, 20, issues[0].Position)
	assert.NotEmpty(t, issues[0].Suggestion)
	assert.Equal(t, "statement-modifying keyword DROP is not allowed", issues[1].Message)
	assert.Equal(t, 22, issues[1].Position)

	issues = validationIssues(t, v, "select a from #x.update()")
	assert.Equal(t, []string{"statement-modifying keyword UPDATE is not allowed"}, messages(issues))

	relaxed := DefaultValidatorConfig()
	relaxed.ReadOnly = false
	assert.NoError(t, newValidator(relaxed).Validate("select a from #x.update()"))
}

func TestLimits(t *testing.T) {
	issues := validationIssues(t, newValidator(ValidatorConfig{MaxLength: 10}), "select a from #x.y()")
	assert.Equal(t, []string{"query length 20 exceeds the limit of 10"}, messages(issues))
	assert.Equal(t, 10, issues[0].Position)

	issues = validationIssues(t, newValidator(ValidatorConfig{MaxNestingDepth: 2}), "select ((((a)))) from #x.y()")
	assert.Equal(t, []string{"parenthesis nesting depth 4 exceeds the limit of 2"}, messages(issues))
	assert.Equal(t, 10, issues[0].Position)

	joins := "select * from #a.b() x inner join #c.d() y on x.i = y.i inner join #e.f() z on x.i = z.i"
	issues = validationIssues(t, newValidator(ValidatorConfig{MaxJoins: 1}), joins)
	assert.Equal(t, []string{"query has 2 joins, the limit is 1"}, messages(issues))
	assert.NoError(t, newValidator(ValidatorConfig{MaxJoins: 2}).Validate(joins))

	// zero disables a limit
	assert.NoError(t, newValidator(ValidatorConfig{}).Validate("select "+strings.Repeat("(", 100)+"a"+strings.Repeat(")", 100)+" from #x.y()"))
}

func TestStructuralIssues(t *testing.T) {
	v := newValidator(DefaultValidatorConfig())
	tests := []struct {
		query    string
		messages []string
	}{
		{"select (a from #x.y()", []string{"unclosed '('"}},
		{"select a) from #x.y()", []string{"unbalanced ')'"}},
		{"select 'abc from #x.y()", []string{"unterminated string literal"}},
		{"select a from #x.y() /* open", []string{"unterminated block comment"}},
		{"select a from #x.y() where a = ?", []string{"character '?' is not allowed"}},
		{"hello world", []string{"query has neither a statement keyword nor a schema reference"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.messages, messages(validationIssues(t, v, tt.query)), tt.query)
	}
}

func TestQuerySuggestions(t *testing.T) {
	v := newValidator(DefaultValidatorConfig())
	assert.Equal(t, []string{
		"Avoid SELECT *, list the columns you need",
		"Add a WHERE or TAKE clause to limit large result sets",
	}, v.GetQuerySuggestions("select * from #x.y()"))
	assert.Equal(t, []string{
		"Add a schema reference such as #schema.method() to the FROM clause",
		"Add a WHERE or TAKE clause to limit large result sets",
	}, v.GetQuerySuggestions("select a from t"))
	assert.Equal(t, []string{
		"Add a WHERE or TAKE clause to limit large result sets",
	}, v.GetQuerySuggestions("select a from os.files('/')"))
	assert.Empty(t, v.GetQuerySuggestions("select a from #x.y() where a > 1"))
	assert.Empty(t, v.GetQuerySuggestions("select a from #x.y() take 5"))
	assert.Empty(t, v.GetQuerySuggestions(""))
	// keywords inside literals do not count
	assert.Contains(t, v.GetQuerySuggestions("select a from #x.y() -- where"), "Add a WHERE or TAKE clause to limit large result sets")
}
