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
Package condition turns parsed expressions into runnable predicates.

Expressions from the query and schema trees are translated to expr-lang
source and compiled once. Schema definitions use this for CHECK and
repeat-until conditions, and for folding constant array sizes.

# Translation

	a = 1 and b <> 'x'          ((a == 1) && (b != "x"))
	name like 'J%'              like_match(name, "J%")
	flags & 0x0F                bit_and(flags, 15)
	x between 1 and 5           (x >= 1 && x <= 5)
	tags contains ('a', 'b')    contains_any(tags, "a", "b")
	x is not null               (x != nil)

Sub-queries, window functions and DISTINCT calls have no translation and
return ErrUnsupported.

# Usage

	cond, err := condition.NewExprCondition(node)
	if err != nil {
		return err
	}
	ok := cond.Evaluate(map[string]any{"a": 1, "b": "y"})

Evaluate treats runtime errors as false; EvaluateE reports them.

ConstInt folds literal-only expressions such as (4 * 8) << 1 and reports
false as soon as the expression names a field.
*/
package condition
