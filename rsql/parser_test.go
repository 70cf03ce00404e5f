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

package rsql

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/sqlfront/ast"
	"github.com/rulego/sqlfront/diag"
	"github.com/rulego/sqlfront/lexer"
	"github.com/rulego/sqlfront/logger"
	"github.com/rulego/sqlfront/schema"
	"github.com/rulego/sqlfront/token"
)

func parse(t *testing.T, src string, opts ...Option) *ast.StatementsNode {
	t.Helper()
	root, err := Parse(src, append([]Option{WithLogger(logger.NewDiscardLogger())}, opts...)...)
	require.NoError(t, err, src)
	return root
}

func parseOne(t *testing.T, src string) ast.Node {
	t.Helper()
	root := parse(t, src)
	require.Len(t, root.Statements, 1, src)
	return root.Statements[0]
}

func query(t *testing.T, src string) *ast.QueryNode {
	t.Helper()
	q, ok := parseOne(t, src).(*ast.QueryNode)
	require.True(t, ok, "%s is not a plain query", src)
	return q
}

func whereOf(t *testing.T, cond string) string {
	t.Helper()
	q := query(t, "select * from #t.s() where "+cond)
	require.NotNil(t, q.Where)
	return q.Where.Expr.String()
}

func parseError(t *testing.T, src string) *diag.SyntaxError {
	t.Helper()
	_, err := Parse(src, WithLogger(logger.NewDiscardLogger()))
	require.Error(t, err, src)
	var se *diag.SyntaxError
	require.True(t, errors.As(err, &se), "expected *diag.SyntaxError for %q, got %T: %v", src, err, err)
	return se
}

func TestParseIsDeterministic(t *testing.T) {
	src := "select Name, count(*) as n from #os.files('/tmp', true) f where f.Length > 0x400 group by Name order by n desc take 10"
	a := parse(t, src)
	b := parse(t, src)
	assert.Equal(t, a.Id(), b.Id())
	assert.Equal(t, a.String(), b.String())

	c := parse(t, "SELECT name, COUNT(*) AS N FROM #OS.Files('/tmp', TRUE) F WHERE F.length > 1024 GROUP BY name ORDER BY N DESC TAKE 10")
	assert.Equal(t, a.Id(), c.Id(), "case and radix do not change identity")

	d := parse(t, strings.Replace(src, "desc", "asc", 1))
	assert.NotEqual(t, a.Id(), d.Id())
}

func TestSchemaHashIsOptional(t *testing.T) {
	pairs := [][2]string{
		{
			"select Name from #os.files('/tmp') f",
			"select Name from os.files('/tmp') f",
		},
		{
			"select a.Name from #os.files('/') a inner join #os.dirs('/') b on a.Dir = b.Path",
			"select a.Name from #os.files('/') a inner join os.dirs('/') b on a.Dir = b.Path",
		},
		{
			"with x as (select Name from #os.files('/')) select Name from x",
			"with x as (select Name from os.files('/')) select Name from x",
		},
		{
			"select a from #x.y() union all () select a from x.z()",
			"select a from x.y() union all () select a from #x.z()",
		},
	}
	for _, pair := range pairs {
		assert.Equal(t, parse(t, pair[0]).Id(), parse(t, pair[1]).Id(), pair[1])
	}

	q := query(t, "select Name from os.files('/tmp') f")
	src, ok := q.From.(*ast.SchemaFromNode)
	require.True(t, ok)
	assert.Equal(t, "os", src.Schema)
	assert.Equal(t, "files", src.Method)
	assert.Equal(t, "f", src.Alias)
}

func TestReorderedQueryIsEquivalent(t *testing.T) {
	canonical := query(t, "select Name from #os.files('/') f where f.Length > 10 group by Name having count(Name) > 1 order by Name take 5")
	reordered := query(t, "from #os.files('/') f where f.Length > 10 group by Name having count(Name) > 1 select Name order by Name take 5")
	assert.Equal(t, canonical.Id(), reordered.Id())
	assert.Equal(t, canonical.String(), reordered.String())
	require.NotNil(t, reordered.GroupBy.Having)
	require.NotNil(t, reordered.Take)
}

func TestQueryClauses(t *testing.T) {
	q := query(t, "select distinct f.*, Name as n, Length l from #os.files('/') f where Length > 0 order by Name desc, Length skip 5 take 10")
	require.True(t, q.Select.Distinct)
	require.Len(t, q.Select.Fields, 3)
	star, ok := q.Select.Fields[0].Expr.(*ast.StarNode)
	require.True(t, ok)
	assert.Equal(t, "f", star.Alias)
	assert.Equal(t, "n", q.Select.Fields[1].Alias)
	assert.Equal(t, "l", q.Select.Fields[2].Alias)
	require.Len(t, q.OrderBy.Items, 2)
	assert.True(t, q.OrderBy.Items[0].Descending)
	assert.False(t, q.OrderBy.Items[1].Descending)
	assert.Equal(t, "5", q.Skip.Value.String())
	assert.Equal(t, "10", q.Take.Value.String())

	q = query(t, "select a from #x.y()")
	assert.Equal(t, token.NewSpan(0, 20), q.Span())
	assert.Nil(t, q.Where)
	assert.Nil(t, q.GroupBy)
}

func TestExpressions(t *testing.T) {
	tests := []struct {
		cond     string
		expected string
	}{
		{"a or b and not c = 1", "(a or (b and (not (c = 1))))"},
		{"1 + 2 * 3 << 1 & 7", "(((1 + (2 * 3)) << 1) & 7)"},
		{"(a | b ^ c & d) = 0", "((a | (b ^ (c & d))) = 0)"},
		{"x is not null and y in (1, 2) and z between 1 and 5", "(((x is not null) and (y in (1, 2))) and (z between 1 and 5))"},
		{"name like 'a%' or name not like 'b%'", "((name like 'a%') or (name not like 'b%'))"},
		{"name rlike '^a' and name not rlike 'z$'", "((name rlike '^a') and (name not rlike 'z$'))"},
		{"tags contains ('a', 'b')", "(tags contains ('a', 'b'))"},
		{"-a.b[0].c(1) < 2", "((-a.b[0].c(1)) < 2)"},
		{"case when a > 1 then 'x' else 'y' end = 'x'", "(case when (a > 1) then 'x' else 'y' end = 'x')"},
		{"id in (select id from #x.y())", "(id in (select id from #x.y()))"},
		{"id not in (3)", "(id not in (3))"},
		{"x = 0xFF", "(x = 0xFF)"},
		{"x = (select max(v) from #x.y())", "(x = (select max(v) from #x.y()))"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, whereOf(t, tt.cond), tt.cond)
	}
}

func TestFunctionsAndWindows(t *testing.T) {
	q := query(t, "select count(distinct x), count(*), sum(x) over (partition by g order by ts rows between 2 preceding and current row) from #t.s()")
	fields := q.Select.Fields
	require.Len(t, fields, 3)
	assert.Equal(t, "count(distinct x)", fields[0].Expr.String())
	assert.True(t, fields[0].Expr.(*ast.FunctionNode).Distinct)
	assert.IsType(t, &ast.StarNode{}, fields[1].Expr.(*ast.FunctionNode).Args[0])

	w, ok := fields[2].Expr.(*ast.WindowFunctionNode)
	require.True(t, ok)
	assert.Equal(t, "sum(x) over (partition by g order by ts asc rows between 2 preceding and current row)", w.String())
	require.NotNil(t, w.Window.Frame.End)
	assert.Equal(t, ast.CurrentRow, w.Window.Frame.End.Kind)

	q = query(t, "select row_number() over (order by a desc rows unbounded preceding) from #t.s()")
	w = q.Select.Fields[0].Expr.(*ast.WindowFunctionNode)
	assert.Equal(t, ast.UnboundedPreceding, w.Window.Frame.Start.Kind)
	assert.Nil(t, w.Window.Frame.End)
}

func TestFromSources(t *testing.T) {
	q := query(t, "select a.Name, b.Size from #os.files('/') a left outer join #os.sizes() b on a.Name = b.Name cross apply a.Lines l outer apply a.Words(3) w")
	outer, ok := q.From.(*ast.ApplyFromNode)
	require.True(t, ok)
	assert.Equal(t, ast.OuterApply, outer.Kind)
	method, ok := outer.Right.(*ast.AliasMethodFromNode)
	require.True(t, ok)
	assert.Equal(t, "a", method.Source)
	assert.Equal(t, "Words", method.Method)
	assert.Equal(t, "w", method.Alias)

	cross := outer.Left.(*ast.ApplyFromNode)
	assert.Equal(t, ast.CrossApply, cross.Kind)
	prop, ok := cross.Right.(*ast.PropertyFromNode)
	require.True(t, ok)
	assert.Equal(t, []string{"Lines"}, prop.Path)
	assert.Equal(t, "l", prop.Alias)

	join, ok := cross.Left.(*ast.JoinFromNode)
	require.True(t, ok)
	assert.Equal(t, ast.LeftOuterJoin, join.Kind)
	assert.Equal(t, "(a.Name = b.Name)", join.On.String())

	q = query(t, "select t.a from (select a from #x.y()) t right outer join t2 on t.a = t2.a")
	join = q.From.(*ast.JoinFromNode)
	assert.Equal(t, ast.RightOuterJoin, join.Kind)
	derived, ok := join.Left.(*ast.SubqueryFromNode)
	require.True(t, ok)
	assert.Equal(t, "t", derived.Alias)
	assert.IsType(t, &ast.ReferenceFromNode{}, join.Right)
}

func TestPivot(t *testing.T) {
	q := query(t, "select * from #sales.all() s pivot (sum(s.Amount), avg(s.Amount) for s.Year in (2020, 2021)) as p")
	pivot, ok := q.From.(*ast.PivotFromNode)
	require.True(t, ok)
	assert.Equal(t, "p", pivot.Alias)
	assert.Len(t, pivot.Pivot.Aggregations, 2)
	assert.Equal(t, "s.Year", pivot.Pivot.For.String())
	assert.Len(t, pivot.Pivot.In, 2)
	assert.Nil(t, pivot.Pivot.InQuery)

	q = query(t, "select * from #sales.all() s pivot (sum(s.Amount) for s.Year in (select y from #years.all())) p")
	pivot = q.From.(*ast.PivotFromNode)
	assert.NotNil(t, pivot.Pivot.InQuery)
	assert.Equal(t, "p", pivot.Alias)

	const base = "select * from #sales.all() s "
	tests := []struct {
		src     string
		message string
	}{
		{base + "pivot (sum(s.Amount) for s.Year in (2020))", "Missing 'alias' at end of input"},
		{base + "pivot (sum(s.Amount) for s.Year in ()) as p", "PIVOT IN list must not be empty"},
		{base + "pivot (s.Amount for s.Year in (1)) as p", "PIVOT aggregation must be a function call, found 's.Amount'"},
		{base + "pivot (for s.Year in (1)) as p", "PIVOT requires at least one aggregation"},
		{base + "pivot (sum(s.Amount) s.Year in (1)) as p", "Missing 'FOR' before 's'"},
	}
	for _, tt := range tests {
		assert.Contains(t, parseError(t, tt.src).Message, tt.message, tt.src)
	}
}

func TestSetOperators(t *testing.T) {
	n := parseOne(t, "select a from #x.y() union (a) select a from #x.z() except (a, b) select a from #x.w()")
	outer, ok := n.(*ast.SetOperatorNode)
	require.True(t, ok)
	assert.Equal(t, ast.Except, outer.Op)
	assert.Equal(t, []string{"a", "b"}, outer.Keys)
	inner, ok := outer.Left.(*ast.SetOperatorNode)
	require.True(t, ok)
	assert.Equal(t, ast.Union, inner.Op)

	all := parseOne(t, "select a from #x.y() union all () select a from #x.z()").(*ast.SetOperatorNode)
	assert.Equal(t, ast.UnionAll, all.Op)
	assert.Empty(t, all.Keys)

	se := parseError(t, "select a from #x.y() union () select a from #x.z()")
	assert.Equal(t, "UNION requires at least one key column", se.Message)
	assert.Equal(t, "select a from #x.y() union (", se.QueryPart)

	se = parseError(t, "select a from #x.y() intersect select a from #x.z()")
	assert.Equal(t, "Missing '(' before 'select'", se.Message)
}

func TestSetChainIsLeftAssociative(t *testing.T) {
	assert.IsType(t, &ast.QueryNode{}, parseOne(t, "select a from #x.y()"))

	src := "select a from #x.y() union (a) select a from #x.z() intersect (a) select a from #x.w() except (a) select a from #x.v()"
	n := parseOne(t, src)
	outer, ok := n.(*ast.SetOperatorNode)
	require.True(t, ok)
	assert.Equal(t, ast.Except, outer.Op)
	assert.IsType(t, &ast.QueryNode{}, outer.Right)

	middle, ok := outer.Left.(*ast.SetOperatorNode)
	require.True(t, ok)
	assert.Equal(t, ast.Intersect, middle.Op)
	inner, ok := middle.Left.(*ast.SetOperatorNode)
	require.True(t, ok)
	assert.Equal(t, ast.Union, inner.Op)
	assert.IsType(t, &ast.QueryNode{}, inner.Left)
	assert.Equal(t, len(src), outer.Span().End())

	again := parseOne(t, n.String())
	assert.Equal(t, n.Id(), again.Id())
}

func TestCommonTableExpressions(t *testing.T) {
	n := parseOne(t, "with a as (select 1 from #x.y()), b as (select 2 from a) select * from b")
	cte, ok := n.(*ast.CteExpressionNode)
	require.True(t, ok)
	assert.False(t, cte.Recursive)
	require.Len(t, cte.Ctes, 2)
	assert.Equal(t, "b", cte.Ctes[1].Name)

	n = parseOne(t, "with recursive r as (select 1 from #x.y() union all () select n from r) select n from r")
	cte = n.(*ast.CteExpressionNode)
	assert.True(t, cte.Recursive)
	assert.IsType(t, &ast.SetOperatorNode{}, cte.Ctes[0].Query)
}

func TestDescAndCouple(t *testing.T) {
	root := parse(t, "desc #os.files(concat('/', lower('TMP')), 1 + 2)\ndesc functions #os\ndesc functions.list()\ndesc #os")
	require.Len(t, root.Statements, 4)

	d := root.Statements[0].(*ast.DescNode)
	assert.Equal(t, "os", d.Source.Schema)
	assert.True(t, d.Source.Call)
	require.Len(t, d.Source.Args, 2)
	call := d.Source.Args[0].(*ast.FunctionNode)
	assert.IsType(t, &ast.FunctionNode{}, call.Args[1])
	assert.Equal(t, "(1 + 2)", d.Source.Args[1].String())

	d = root.Statements[1].(*ast.DescNode)
	assert.True(t, d.Functions)
	assert.Equal(t, "os", d.Source.Schema)

	d = root.Statements[2].(*ast.DescNode)
	assert.False(t, d.Functions)
	assert.Equal(t, "functions", d.Source.Schema)
	assert.Equal(t, "list", d.Source.Method)

	d = root.Statements[3].(*ast.DescNode)
	assert.Equal(t, "", d.Source.Method)
	assert.False(t, d.Source.Call)

	c := parseOne(t, "couple #csv.file with table Rows as SourceOfRows").(*ast.CoupleNode)
	assert.Equal(t, "csv", c.Source.Schema)
	assert.Equal(t, "file", c.Source.Method)
	assert.Equal(t, "Rows", c.Table)
	assert.Equal(t, "SourceOfRows", c.Alias)

	assert.Equal(t, "Missing 'TABLE' before 'Rows'", parseError(t, "couple #csv.file with Rows as r").Message)
	assert.Equal(t, "Missing '.' before 'with'", parseError(t, "couple #csv with table t as r").Message)
}

func TestOrderByDescBeforeDescStatement(t *testing.T) {
	root := parse(t, "select a from #x.y() order by a asc desc #x.y")
	require.Len(t, root.Statements, 2)
	assert.IsType(t, &ast.DescNode{}, root.Statements[1])

	q := query(t, "select a from #x.y() order by a desc")
	assert.True(t, q.OrderBy.Items[0].Descending)
}

func TestEmbeddedSchema(t *testing.T) {
	root := parse(t, "binary Header { Magic: int be, Size: short le }\ntext Line { Key: until '=', Tail: rest }\nselect Size from #file.read('x')")
	require.Len(t, root.Statements, 3)

	emb, ok := root.Statements[0].(*ast.EmbeddedSchemaNode)
	require.True(t, ok)
	header, ok := emb.Definition.(*schema.BinarySchemaNode)
	require.True(t, ok)
	assert.Equal(t, "Header", header.Name)
	assert.Len(t, header.Fields, 2)

	line := root.Statements[1].(*ast.EmbeddedSchemaNode).Definition.(*schema.TextSchemaNode)
	assert.Len(t, line.Fields, 2)
	assert.IsType(t, &ast.QueryNode{}, root.Statements[2])

	// binary and text stay ordinary names inside queries
	q := query(t, "select text, binary from #x.y()")
	assert.Len(t, q.Select.Fields, 2)

	se := parseError(t, "binary T { A: int }")
	assert.Equal(t, diag.KindMissingToken, se.Kind)
	assert.Equal(t, "binary T { A: int }", se.QueryPart)
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		src     string
		message string
		part    string
	}{
		{"select a, from #x.y()", "trailing ',' in SELECT list", "select a,"},
		{"select , a from #x.y()", "unexpected ',' in SELECT list", "select ,"},
		{"select from #x.y()", "SELECT requires at least one field", "select from"},
		{"select a from #x.y() where", "WHERE requires a condition", "select a from #x.y() where"},
		{"select a from #x.y() group by", "GROUP BY requires at least one column", "select a from #x.y() group by"},
		{"select a from #x.y() having a > 1", "HAVING requires a preceding GROUP BY", "select a from #x.y() having"},
		{"select (a from #x.y()", "Missing ')' before 'from'", "select (a from"},
		{"select case when a then 1 from #x.y()", "Missing 'END' before 'from'", "select case when a then 1 from"},
		{"select a in () from #x.y()", "IN list must not be empty", "select a in ()"},
		{"from #x.y() where a > 1", "Missing 'SELECT' at end of input", "from #x.y() where a > 1"},
		{"select a from #x.y", "Missing '(' at end of input", "select a from #x.y"},
		{"select a from #x.y() order by a skip", "SKIP requires a row count", "select a from #x.y() order by a skip"},
		{"select * from #a.b() x inner join #c.d() y where x.i = 1", "Missing 'ON' before 'where'", "select * from #a.b() x inner join #c.d() y where"},
		{"select * from #a.b() x full outer join #c.d() y on x.i = y.i", "FULL OUTER JOIN is not supported", "select * from #a.b() x full"},
		{"select * from #a.b() x join #c.d() y on x.i = y.i", "JOIN without INNER, LEFT OUTER or RIGHT OUTER is not supported", "select * from #a.b() x join"},
		{"select a from (select a from #x.y())", "Missing 'alias' at end of input", "select a from (select a from #x.y())"},
		{"", "Unexpected end of input", ""},
	}
	for _, tt := range tests {
		se := parseError(t, tt.src)
		assert.Contains(t, se.Message, tt.message, tt.src)
		assert.Equal(t, tt.part, se.QueryPart, tt.src)
		assert.True(t, strings.HasPrefix(tt.src, se.QueryPart), tt.src)
	}
}

func TestKeywordTypoSuggestion(t *testing.T) {
	se := parseError(t, "seelct 1 from #system.dual()")
	assert.Equal(t, diag.KindUnexpectedToken, se.Kind)
	assert.Equal(t, "seelct", se.QueryPart)
	assert.Contains(t, se.Suggestions, "select")
	assert.Contains(t, se.Message, "Did you mean")
}

func TestLexerErrorsPassThrough(t *testing.T) {
	_, err := Parse("select a from #x.y() where a = `b`", WithLogger(logger.NewDiscardLogger()))
	require.Error(t, err)
	var unknown *lexer.UnknownTokenError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, '`', unknown.Char)
	var se *diag.SyntaxError
	assert.False(t, errors.As(err, &se))

	_, err = Parse("select 'abc", WithLogger(logger.NewDiscardLogger()))
	var lexErr *lexer.LexerError
	require.True(t, errors.As(err, &lexErr))
	assert.Contains(t, lexErr.Message, "unterminated string literal")
}

func TestNestingLimit(t *testing.T) {
	nested := func(depth int) string {
		return "select " + strings.Repeat("(", depth) + "1" + strings.Repeat(")", depth) + " from #x.y()"
	}
	parse(t, nested(5), WithMaxDepth(10))
	parse(t, nested(1000))

	_, err := Parse(nested(12), WithMaxDepth(10), WithLogger(logger.NewDiscardLogger()))
	var se *diag.SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, diag.KindInvalidStructure, se.Kind)
	assert.Contains(t, se.Message, "expression nesting exceeds 10 levels")

	se = parseError(t, "select * from #t.s() where "+strings.Repeat("not ", 5000)+"a")
	assert.Contains(t, se.Message, fmt.Sprintf("nesting exceeds %d levels", DefaultMaxDepth))
}

func TestLongFlatExpression(t *testing.T) {
	terms := make([]string, 3000)
	for i := range terms {
		terms[i] = fmt.Sprintf("a = %d", i)
	}
	q := query(t, "select * from #t.s() where "+strings.Join(terms, " or "))
	or, ok := q.Where.Expr.(*ast.BinaryNode)
	require.True(t, ok)
	assert.Equal(t, ast.OpOr, or.Op)
}

func TestConcurrentParsers(t *testing.T) {
	const workers = 8
	src := "select Name from #os.files('/') f where f.Length > 10 order by Name"
	want := parse(t, src).Id()

	var wg sync.WaitGroup
	ids := make([]string, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			root, err := Parse(src, WithLogger(logger.NewDiscardLogger()))
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = root.Id()
		}(i)
	}
	wg.Wait()
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, want, ids[i])
	}
}

func BenchmarkParse(b *testing.B) {
	src := "select a.Name, count(*) from #os.files('/') a inner join #os.dirs('/') d on a.Dir = d.Path " +
		"where a.Length > 0x400 and a.Name like '%.go' group by a.Name having count(*) > 1 order by a.Name desc take 100"
	opt := WithLogger(logger.NewDiscardLogger())
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(src, opt); err != nil {
			b.Fatal(err)
		}
	}
}
