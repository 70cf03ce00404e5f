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

/*
Package sqlfront is the front end of a SQL-like language for querying data
sources such as file systems, archives and binary files. It turns query text
and schema definitions into syntax trees and reports precise diagnostics when
the text is malformed. It does not execute queries.

# Getting started

	engine := sqlfront.New()

	root, err := engine.ParseQuery(`
		select f.Name, f.Length
		from #os.files('/var/log', true) f
		where f.Length > 0x100000 and f.Name like '%.log'
		order by f.Length desc
		take 10`)
	if err != nil {
		var se *diag.SyntaxError
		if errors.As(err, &se) {
			fmt.Println(se.Message, "near", se.QueryPart)
		}
		return
	}
	fmt.Println(root.Statements[0])

A query may also start with FROM, and the hash before a schema call is
optional: os.files('/') and #os.files('/') name the same source.

# Schemas

Binary and text schemas describe how to decode raw data:

	set, err := engine.ParseSchema(`
		binary Header {
			Magic: int be check Magic = 0x7F454C46,
			Count: ushort le,
			Flags: bits[16]
		}`)

	size, fixed, err := engine.SchemaSize(src, "Header") // 8, true

Schemas may also appear among query statements; the parser switches grammar
for the duration of the definition.

# Validation

ParseQuery runs cheap checks on the raw text first (length, parenthesis depth,
denied characters, read-only keywords, join count). The limits come from
options:

	engine := sqlfront.New(
		sqlfront.WithMaxQueryLength(4096),
		sqlfront.WithMaxJoins(4),
		sqlfront.WithReadOnly(true),
	)

Suggestions returns non-fatal hints such as listing columns instead of
SELECT *.

# Logging

	engine := sqlfront.New(sqlfront.WithLogLevel(logger.DEBUG))
	engine := sqlfront.New(sqlfront.WithLogOutput(os.Stderr, logger.INFO))
	engine := sqlfront.New(sqlfront.WithDiscardLog())

Parsers log at DEBUG. The validator logs each finding at WARN.

# Packages

  - token, lexer: tokens and the two-mode lexer
  - ast: query syntax tree, visitors
  - rsql: query parser and validator
  - schema: schema syntax tree, parser and size computation
  - condition: compiles expressions to expr-lang programs
  - diag: syntax errors and their messages
*/
package sqlfront
