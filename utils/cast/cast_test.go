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

package cast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegerLiteral(t *testing.T) {
	tests := []struct {
		name   string
		digits string
		base   int
		suffix string
		expect any
		hasErr bool
	}{
		{"plain", "42", 10, "", int32(42), false},
		{"plain long", "3000000000", 10, "", int64(3000000000), false},
		{"plain ulong", "18446744073709551615", 10, "", uint64(18446744073709551615), false},
		{"hex", "FF", 16, "", int32(255), false},
		{"hex lower", "ff", 16, "", int32(255), false},
		{"binary", "1010", 2, "", int32(10), false},
		{"octal", "77", 8, "", int32(63), false},
		{"sbyte", "127", 10, "b", int8(127), false},
		{"sbyte overflow", "128", 10, "b", nil, true},
		{"byte", "255", 10, "ub", uint8(255), false},
		{"byte upper suffix", "255", 10, "UB", uint8(255), false},
		{"short", "1000", 10, "s", int16(1000), false},
		{"ushort", "65535", 10, "us", uint16(65535), false},
		{"int", "7", 10, "i", int32(7), false},
		{"uint", "7", 10, "ui", uint32(7), false},
		{"long", "7", 10, "l", int64(7), false},
		{"ulong", "7", 10, "ul", uint64(7), false},
		{"decimal", "7", 10, "d", float64(7), false},
		{"bad digits", "12z", 10, "", nil, true},
		{"bad suffix", "1", 10, "q", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := IntegerLiteral(tt.digits, tt.base, tt.suffix)
			if tt.hasErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expect, v)
		})
	}
}

func TestSuffixes(t *testing.T) {
	assert.True(t, IsSuffix("d"))
	assert.True(t, IsSuffix("UL"))
	assert.False(t, IsSuffix("x"))

	w, ok := SuffixWidth("us")
	require.True(t, ok)
	assert.Equal(t, uint64(65535), w.Max())
	w, _ = SuffixWidth("l")
	assert.Equal(t, uint64(1<<63-1), w.Max())
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "sbyte", TypeName("b", nil))
	assert.Equal(t, "decimal", TypeName("d", nil))
	assert.Equal(t, "int", TypeName("", int32(1)))
	assert.Equal(t, "long", TypeName("", int64(1)))
	assert.Equal(t, "", TypeName("", "x"))
}

func TestDecimalLiteral(t *testing.T) {
	f, err := DecimalLiteral("1.25")
	require.NoError(t, err)
	assert.Equal(t, 1.25, f)
	_, err = DecimalLiteral("1.2.3")
	assert.Error(t, err)

	i, err := ToInt64(int8(5))
	require.NoError(t, err)
	assert.Equal(t, int64(5), i)
}
