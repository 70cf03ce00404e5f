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

package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	out := Render([]string{"type", "value"}, [][]string{{"select", "SELECT"}, {"integer", "1"}})
	want := strings.Join([]string{
		"+---------+--------+",
		"| type    | value  |",
		"+---------+--------+",
		"| select  | SELECT |",
		"| integer | 1      |",
		"+---------+--------+",
		"(2 rows)",
		"",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestRenderMinimumWidth(t *testing.T) {
	out := Render([]string{"a"}, [][]string{{"b"}})
	assert.True(t, strings.HasPrefix(out, "+------+\n| a    |\n"))
}

func TestColumns(t *testing.T) {
	data := []map[string]any{
		{"name": "Alice", "age": 30, "city": "New York"},
		{"name": "Bob", "zip": "90001"},
	}
	assert.Equal(t, []string{"age", "city", "name", "zip"}, Columns(data, nil))
	assert.Equal(t, []string{"name", "city", "age", "zip"}, Columns(data, []string{"name", "city", "missing"}))
}

func TestRenderMaps(t *testing.T) {
	assert.Equal(t, "(0 rows)\n", RenderMaps(nil, nil))

	out := RenderMaps([]map[string]any{{"device": "sensor1", "temp": 25.5}}, []string{"device"})
	assert.Contains(t, out, "| device  | temp |")
	assert.Contains(t, out, "| sensor1 | 25.5 |")
	assert.Contains(t, out, "(1 rows)")
}
