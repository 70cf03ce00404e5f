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

// Package cast converts numeric literal text into sized Go values.
package cast

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Width describes the storage selected by a numeric literal suffix.
type Width struct {
	Bits   int
	Signed bool
	// Name is the type name used in diagnostics and return types
	Name string
}

var suffixWidths = map[string]Width{
	"b":  {Bits: 8, Signed: true, Name: "sbyte"},
	"ub": {Bits: 8, Signed: false, Name: "byte"},
	"s":  {Bits: 16, Signed: true, Name: "short"},
	"us": {Bits: 16, Signed: false, Name: "ushort"},
	"i":  {Bits: 32, Signed: true, Name: "int"},
	"ui": {Bits: 32, Signed: false, Name: "uint"},
	"l":  {Bits: 64, Signed: true, Name: "long"},
	"ul": {Bits: 64, Signed: false, Name: "ulong"},
}

// DecimalSuffix marks an integer or floating literal as decimal.
const DecimalSuffix = "d"

// SuffixWidth returns the width selected by an integer suffix (case-insensitive).
func SuffixWidth(suffix string) (Width, bool) {
	w, ok := suffixWidths[strings.ToLower(suffix)]
	return w, ok
}

// IsSuffix reports whether s is a recognised numeric suffix.
func IsSuffix(s string) bool {
	if strings.EqualFold(s, DecimalSuffix) {
		return true
	}
	_, ok := SuffixWidth(s)
	return ok
}

// Max returns the largest magnitude the width can hold.
func (w Width) Max() uint64 {
	if w.Signed {
		return 1<<(w.Bits-1) - 1
	}
	if w.Bits == 64 {
		return math.MaxUint64
	}
	return 1<<w.Bits - 1
}

func (w Width) convert(u uint64) (any, error) {
	switch {
	case w.Signed && w.Bits == 8:
		return cast.ToInt8E(u)
	case w.Signed && w.Bits == 16:
		return cast.ToInt16E(u)
	case w.Signed && w.Bits == 32:
		return cast.ToInt32E(u)
	case w.Signed:
		return cast.ToInt64E(u)
	case w.Bits == 8:
		return cast.ToUint8E(u)
	case w.Bits == 16:
		return cast.ToUint16E(u)
	case w.Bits == 32:
		return cast.ToUint32E(u)
	default:
		return cast.ToUint64E(u)
	}
}

// IntegerLiteral converts digits written in base to the value selected by suffix.
// Without a suffix the narrowest of int32, int64 and uint64 holding the value is used.
// A "d" suffix yields float64.
func IntegerLiteral(digits string, base int, suffix string) (any, error) {
	u, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid integer literal %q", digits)
	}
	if suffix == "" {
		switch {
		case u <= math.MaxInt32:
			return int32(u), nil
		case u <= math.MaxInt64:
			return int64(u), nil
		default:
			return u, nil
		}
	}
	if strings.EqualFold(suffix, DecimalSuffix) {
		return cast.ToFloat64E(u)
	}
	w, ok := SuffixWidth(suffix)
	if !ok {
		return nil, fmt.Errorf("unknown numeric suffix %q", suffix)
	}
	if u > w.Max() {
		return nil, fmt.Errorf("literal %s does not fit in %s", digits, w.Name)
	}
	return w.convert(u)
}

// DecimalLiteral converts a floating literal body to float64.
func DecimalLiteral(text string) (float64, error) {
	f, err := cast.ToFloat64E(text)
	if err != nil {
		return 0, fmt.Errorf("invalid decimal literal %q", text)
	}
	return f, nil
}

// TypeName returns the value type name for an integer literal with the given
// suffix, or for an unsuffixed value v.
func TypeName(suffix string, v any) string {
	if strings.EqualFold(suffix, DecimalSuffix) {
		return "decimal"
	}
	if w, ok := SuffixWidth(suffix); ok {
		return w.Name
	}
	switch v.(type) {
	case int32:
		return "int"
	case int64:
		return "long"
	case uint64:
		return "ulong"
	}
	return ""
}

// ToInt64 coerces an evaluated literal to int64.
func ToInt64(v any) (int64, error) {
	return cast.ToInt64E(v)
}
