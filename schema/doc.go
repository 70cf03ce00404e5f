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
Package schema parses the binary and text schema definitions that describe how
raw data sources are decoded.

# Binary schemas

A binary schema is a record of typed fields:

	binary Header {
		Magic:   int be check Magic = 0x7F454C46,
		Length:  ushort le,
		Flags:   bits[4],
		_pad:    align[8],
		Payload: byte[Length],
		Name:    string[16] utf8 trim nullterm,
		Words:   int le[4],
		Total:   Length * 2
	}

Multi-byte primitives need an endianness suffix (le or be). Fields may carry a
check constraint and an at offset, in either order. A field whose right-hand
side is an expression rather than a type is computed and occupies no bytes.
Schemas may be generic (binary Pair<T> { A: T, B: T }), may extend another
binary schema, and may nest inline field blocks. A type followed by
repeat until <condition> is read until the condition holds.

Size reports whether a record has a fixed width. Sizes, counts and bit widths
are folded to constants where possible; anything depending on a field value,
an at offset, a repeat or a cycle makes the record variable.

# Text schemas

A text schema reads fields in order from text:

	text Entry {
		Key:   until '=',
		Value: pattern '([0-9]+)' capture (Number) trim,
		_:     literal ';',
		Rest:  rest optional
	}

Field kinds are pattern, literal, until, between, chars[n], token, rest,
whitespace[+*?], repeat and switch. Fields named _ are matched and dropped.

# Parsing

Parse reads a whole document into a Set. Query parsers embed schemas through
NewParser and ParseDefinition, which stop on the closing brace so the caller
can resume its own grammar. Check and repeat conditions are compiled with the
condition package as they are parsed, so a definition that parses is also
evaluable.
*/
package schema
