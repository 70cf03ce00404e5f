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

// Package table renders rows as a plain ASCII table, used for token dumps and
// schema listings.
package table

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"
)

// minWidth is the narrowest column rendered
const minWidth = 4

// Columns returns the column order for data: fieldOrder first, then any
// remaining keys alphabetically.
func Columns(data []map[string]any, fieldOrder []string) []string {
	columnSet := make(map[string]bool)
	for _, row := range data {
		for col := range row {
			columnSet[col] = true
		}
	}

	columns := make([]string, 0, len(columnSet))
	for _, field := range fieldOrder {
		if columnSet[field] {
			columns = append(columns, field)
			delete(columnSet, field)
		}
	}
	rest := make([]string, 0, len(columnSet))
	for col := range columnSet {
		rest = append(rest, col)
	}
	sort.Strings(rest)
	return append(columns, rest...)
}

// FromMaps converts map rows into string cells following Columns.
func FromMaps(data []map[string]any, fieldOrder []string) ([]string, [][]string) {
	columns := Columns(data, fieldOrder)
	rows := make([][]string, 0, len(data))
	for _, row := range data {
		cells := make([]string, len(columns))
		for i, col := range columns {
			if v, ok := row[col]; ok {
				cells[i] = fmt.Sprintf("%v", v)
			}
		}
		rows = append(rows, cells)
	}
	return columns, rows
}

// Write renders header and rows to w, followed by a row count line.
func Write(w io.Writer, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	for i, col := range header {
		widths[i] = max(minWidth, utf8.RuneCountInString(col))
		for _, row := range rows {
			if i < len(row) {
				widths[i] = max(widths[i], utf8.RuneCountInString(row[i]))
			}
		}
	}

	var b strings.Builder
	writeBorder(&b, widths)
	writeRow(&b, widths, header)
	writeBorder(&b, widths)
	for _, row := range rows {
		writeRow(&b, widths, row)
	}
	writeBorder(&b, widths)
	fmt.Fprintf(&b, "(%d rows)\n", len(rows))

	_, err := io.WriteString(w, b.String())
	return err
}

// Render returns the table as a string.
func Render(header []string, rows [][]string) string {
	var b strings.Builder
	_ = Write(&b, header, rows)
	return b.String()
}

// RenderMaps renders map rows; an empty slice renders "(0 rows)".
func RenderMaps(data []map[string]any, fieldOrder []string) string {
	if len(data) == 0 {
		return "(0 rows)\n"
	}
	header, rows := FromMaps(data, fieldOrder)
	return Render(header, rows)
}

func writeBorder(b *strings.Builder, widths []int) {
	b.WriteByte('+')
	for _, width := range widths {
		b.WriteString(strings.Repeat("-", width+2))
		b.WriteByte('+')
	}
	b.WriteByte('\n')
}

func writeRow(b *strings.Builder, widths []int, cells []string) {
	b.WriteByte('|')
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteByte(' ')
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", width-utf8.RuneCountInString(cell)))
		b.WriteString(" |")
	}
	b.WriteByte('\n')
}
