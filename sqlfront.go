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

package sqlfront

import (
	"fmt"
	"io"

	"github.com/rulego/sqlfront/ast"
	"github.com/rulego/sqlfront/condition"
	"github.com/rulego/sqlfront/lexer"
	"github.com/rulego/sqlfront/logger"
	"github.com/rulego/sqlfront/rsql"
	"github.com/rulego/sqlfront/schema"
	"github.com/rulego/sqlfront/token"
	"github.com/rulego/sqlfront/utils/table"
)

// Engine is the entry point for parsing queries and schema definitions.
// It holds configuration only; every call creates its own lexer and parser,
// so one Engine may be shared between goroutines.
//
// Example:
//
//	engine := sqlfront.New(sqlfront.WithMaxJoins(4))
//	root, err := engine.ParseQuery("select Name from #os.files('/tmp') f where f.Length > 0x400")
type Engine struct {
	log       logger.Logger
	validate  bool
	validator rsql.ValidatorConfig
	// maxDepth bounds recursion in both parsers, 0 keeps their defaults
	maxDepth int
}

// New returns an Engine. Without options queries are validated with
// rsql.DefaultValidatorConfig before parsing.
func New(options ...Option) *Engine {
	e := &Engine{
		log:       logger.GetDefault(),
		validate:  true,
		validator: rsql.DefaultValidatorConfig(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// ValidatorConfig returns the limits applied by Validate.
func (e *Engine) ValidatorConfig() rsql.ValidatorConfig {
	return e.validator
}

// Validate runs the pre-parse checks on query. The error, if any, is a
// *rsql.QueryValidationError.
func (e *Engine) Validate(query string) error {
	return rsql.NewQueryValidator(e.validator, e.log).Validate(query)
}

// Suggestions returns advisory hints for query. They never block parsing.
func (e *Engine) Suggestions(query string) []string {
	return rsql.NewQueryValidator(e.validator, e.log).GetQuerySuggestions(query)
}

// ParseQuery validates query, unless validation is disabled, and parses it
// into a statement list.
func (e *Engine) ParseQuery(query string) (*ast.StatementsNode, error) {
	if e.validate {
		if err := e.Validate(query); err != nil {
			return nil, err
		}
	}
	root, err := rsql.Parse(query, rsql.WithLogger(e.log), rsql.WithMaxDepth(e.maxDepth))
	if err != nil {
		e.log.Debug("parse failed: %v", err)
		return nil, err
	}
	return root, nil
}

// ParseSchema parses a document of binary and text schema definitions.
func (e *Engine) ParseSchema(src string) (*schema.Set, error) {
	return schema.Parse(src, schema.WithLogger(e.log), schema.WithMaxDepth(e.maxDepth))
}

// SchemaSize parses src and reports the width in bytes of the binary schema
// called name, and whether that width is fixed.
func (e *Engine) SchemaSize(src, name string) (int64, bool, error) {
	set, err := e.ParseSchema(src)
	if err != nil {
		return 0, false, err
	}
	def, ok := set.Lookup(name)
	if !ok {
		return 0, false, fmt.Errorf("schema %s is not defined", name)
	}
	bin, ok := def.(*schema.BinarySchemaNode)
	if !ok {
		return 0, false, fmt.Errorf("schema %s is not a binary schema", name)
	}
	size, fixed := bin.FixedSize(set)
	return size, fixed, nil
}

// CompileWhere parses query and compiles the WHERE clause of its first
// statement into an evaluable condition. It returns nil when the query has no
// WHERE clause.
//
// Example:
//
//	cond, err := engine.CompileWhere("select * from #os.files('/') where Length > 10 and Name like '%.go'")
//	ok := cond.Evaluate(map[string]interface{}{"Length": 20, "Name": "main.go"})
func (e *Engine) CompileWhere(query string) (*condition.ExprCondition, error) {
	root, err := e.ParseQuery(query)
	if err != nil {
		return nil, err
	}
	q, err := firstQuery(root.Statements[0])
	if err != nil {
		return nil, err
	}
	if q.Where == nil {
		return nil, nil
	}
	return condition.NewExprCondition(q.Where.Expr)
}

// firstQuery returns the leading query of a statement.
func firstQuery(stmt ast.Node) (*ast.QueryNode, error) {
	switch n := stmt.(type) {
	case *ast.QueryNode:
		return n, nil
	case *ast.CteExpressionNode:
		return firstQuery(n.Statement)
	case *ast.SetOperatorNode:
		return firstQuery(n.Left)
	}
	return nil, fmt.Errorf("statement %q is not a query", stmt.String())
}

// Tokens returns the query-mode tokens of input, without the final EOF.
func (e *Engine) Tokens(input string) ([]token.Token, error) {
	return lexer.Tokenize(input, false)
}

// PrintTokens writes the tokens of input to w as a table, for debugging.
func (e *Engine) PrintTokens(w io.Writer, input string) error {
	tokens, err := e.Tokens(input)
	if err != nil {
		return err
	}
	return lexer.WriteDump(w, tokens)
}

// PrintSchema writes one table row per field of every definition in src.
func (e *Engine) PrintSchema(w io.Writer, src string) error {
	set, err := e.ParseSchema(src)
	if err != nil {
		return err
	}
	var rows []map[string]any
	add := func(def schema.Definition, f schema.Node, name string) {
		rows = append(rows, map[string]any{"schema": def.DefinitionName(), "field": name, "definition": f.String()})
	}
	for _, def := range set.Definitions() {
		switch d := def.(type) {
		case *schema.BinarySchemaNode:
			for _, f := range d.Fields {
				add(d, f, f.FieldName())
			}
		case *schema.TextSchemaNode:
			for _, f := range d.Fields {
				add(d, f, f.FieldName())
			}
		}
	}
	_, err = io.WriteString(w, table.RenderMaps(rows, []string{"schema", "field", "definition"}))
	return err
}
