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

package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"select", "select", 0},
		{"select", "selct", 1},
		{"SELECT", "select", 0},
		{"seelct", "select", 2},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"from", "form", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevenshteinDistance(tt.a, tt.b), "%s/%s", tt.a, tt.b)
		assert.Equal(t, tt.want, LevenshteinDistance(tt.b, tt.a), "symmetric %s/%s", tt.b, tt.a)
	}
}

func TestSuggest(t *testing.T) {
	keywords := []string{"select", "from", "where", "having", "order by", "group by", "take", "skip"}

	assert.Equal(t, []string{"select"}, Suggest("seelct", keywords))
	assert.Equal(t, []string{"select"}, Suggest("SELCT", keywords))
	assert.Equal(t, []string{"where"}, Suggest("wher", keywords))
	assert.Empty(t, Suggest("select", keywords), "exact match is not a suggestion")
	assert.Empty(t, Suggest("x", keywords), "short words never match")
	assert.Empty(t, Suggest("completely", keywords))
}

func TestSuggestRankingAndCap(t *testing.T) {
	candidates := []string{"tab", "tac", "tad", "tae", "taf", "ta"}
	got := Suggest("taa", candidates)
	assert.Len(t, got, MaxSuggestions)
	assert.Equal(t, []string{"ta", "tab", "tac"}, got)
}

func TestRank(t *testing.T) {
	matches := Rank("selet", []string{"select", "delete", "selects", "select"}, 2)
	assert.Equal(t, []Match{{"select", 1}, {"delete", 2}, {"selects", 2}}, matches)
	assert.Nil(t, Rank("", []string{"a"}, 2))
}

func TestDidYouMean(t *testing.T) {
	assert.Equal(t, "", DidYouMean(nil))
	assert.Equal(t, "Did you mean 'select'?", DidYouMean([]string{"select"}))
	assert.Equal(t, "Did you mean 'a', 'b' or 'c'?", DidYouMean([]string{"a", "b", "c"}))
}
