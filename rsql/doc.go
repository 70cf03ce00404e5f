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
Package rsql parses the query language into the node tree of package ast.

# Statements

An input holds one or more statements separated by whitespace:

	select Name, Length from #os.files('/tmp', false) f where f.Length > 1000l order by Length desc take 10
	from #os.files('/tmp') f where f.Length > 0x400 select f.Name
	with big as (select Name from #os.files('/') where Length > 1000) select Name from big
	desc #os.files
	desc functions #os
	couple #csv.file with table Rows as SourceOfRows
	binary Header { Magic: int be, Size: short le }

SELECT ... FROM and FROM ... SELECT produce the same QueryNode. The leading
hash of a schema call is optional: #os.files() and os.files() are the same
source. Sources may be joined (INNER JOIN, LEFT OUTER JOIN, RIGHT OUTER JOIN),
applied (CROSS APPLY, OUTER APPLY) or pivoted. Set operators take a key list:

	select a from #x.y() union (a) select a from #x.z()

Only UNION ALL may leave the key list empty.

# Expressions

Precedence, loosest first: OR, AND, NOT, comparisons (including LIKE, RLIKE,
IS [NOT] NULL, [NOT] IN, BETWEEN and CONTAINS), |, ^, &, shifts, + -, * / %,
unary minus and postfix access (.name, .method(args), [index]). Function calls
accept DISTINCT and an OVER window.

# Errors

Parsing stops at the first error. Lexer errors are returned unchanged; parser
errors are *diag.SyntaxError values whose QueryPart is the input consumed up to
the offending token. Unknown words close to a keyword carry suggestions:

	_, err := rsql.Parse("seelct 1 from #system.dual()")
	// Unexpected token 'seelct', expected one of ... Did you mean 'select'?

# Validation

QueryValidator runs cheap checks on the raw text before parsing: length,
parenthesis depth and balance, denied characters, read-only keywords and join
count. GetQuerySuggestions returns advisory hints and never fails.
*/
package rsql
