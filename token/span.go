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

import "strconv"

// TextSpan locates a token or node in the source text by byte offset.
type TextSpan struct {
	Start  int
	Length int
}

// EmptySpan is the canonical "no location" value.
var EmptySpan = TextSpan{Start: -1}

// NewSpan returns the span covering [start, end).
func NewSpan(start, end int) TextSpan {
	if end < start {
		end = start
	}
	return TextSpan{Start: start, Length: end - start}
}

// IsEmpty reports whether the span carries no location.
func (s TextSpan) IsEmpty() bool {
	return s.Start < 0
}

// End returns the offset just past the span.
func (s TextSpan) End() int {
	if s.IsEmpty() {
		return -1
	}
	return s.Start + s.Length
}

// Cover returns the smallest span containing both s and o.
// An empty span is the identity.
func (s TextSpan) Cover(o TextSpan) TextSpan {
	switch {
	case s.IsEmpty():
		return o
	case o.IsEmpty():
		return s
	}
	return NewSpan(min(s.Start, o.Start), max(s.End(), o.End()))
}

func (s TextSpan) String() string {
	if s.IsEmpty() {
		return "-"
	}
	return strconv.Itoa(s.Start) + ":" + strconv.Itoa(s.Length)
}
