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

// Package similarity ranks candidate words by edit distance to suggest the
// keyword a user most likely meant.
package similarity

import (
	"sort"
	"strings"
)

// MaxSuggestions caps the number of suggestions returned by Suggest.
const MaxSuggestions = 3

// LevenshteinDistance returns the case-insensitive edit distance between a and b.
func LevenshteinDistance(a, b string) int {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Threshold returns the largest distance still considered a near miss for a
// word of the given length. Words shorter than three characters never match.
func Threshold(length int) int {
	switch {
	case length < 3:
		return 0
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// Match is a candidate with its distance to the target.
type Match struct {
	Word     string
	Distance int
}

// Rank returns the candidates within maxDistance of target, nearest first.
// Ties are broken alphabetically; exact matches and duplicates are dropped.
func Rank(target string, candidates []string, maxDistance int) []Match {
	if target == "" || maxDistance <= 0 {
		return nil
	}
	seen := make(map[string]bool, len(candidates))
	var matches []Match
	for _, c := range candidates {
		key := strings.ToLower(c)
		if seen[key] {
			continue
		}
		seen[key] = true
		d := LevenshteinDistance(target, c)
		if d == 0 || d > maxDistance {
			continue
		}
		matches = append(matches, Match{Word: c, Distance: d})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Word < matches[j].Word
	})
	return matches
}

// Suggest returns at most MaxSuggestions candidates close to target.
// It never fails: an empty result means there is no plausible alternative.
func Suggest(target string, candidates []string) []string {
	target = strings.TrimSpace(target)
	matches := Rank(target, candidates, Threshold(len([]rune(target))))
	if len(matches) > MaxSuggestions {
		matches = matches[:MaxSuggestions]
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Word)
	}
	return out
}

// DidYouMean renders suggestions as "Did you mean 'a', 'b' or 'c'?".
// It returns an empty string when there are none.
func DidYouMean(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	quoted := make([]string, len(suggestions))
	for i, s := range suggestions {
		quoted[i] = "'" + s + "'"
	}
	if len(quoted) == 1 {
		return "Did you mean " + quoted[0] + "?"
	}
	return "Did you mean " + strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1] + "?"
}
