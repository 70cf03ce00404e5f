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
	"strings"

	"github.com/rulego/sqlfront/ast"
	"github.com/rulego/sqlfront/schema"
	"github.com/rulego/sqlfront/token"
)

// reservedAliases are words that end an expression rather than alias it.
var reservedAliases = map[string]struct{}{
	"join":      {},
	"inner":     {},
	"left":      {},
	"right":     {},
	"full":      {},
	"cross":     {},
	"outer":     {},
	"group":     {},
	"order":     {},
	"partition": {},
	"current":   {},
}

// parseQuery parses one query in canonical order
//
//	SELECT ... [FROM ...] [WHERE] [GROUP BY [HAVING]] [ORDER BY] [SKIP] [TAKE]
//
// or in reordered form
//
//	FROM ... [WHERE] [GROUP BY [HAVING]] SELECT ... [ORDER BY] [SKIP] [TAKE]
func (p *Parser) parseQuery() (*ast.QueryNode, error) {
	start := p.tok.Span.Start
	p.pushScope()
	defer p.popScope()

	q := &ast.QueryNode{}
	if p.tok.Is(token.From) {
		if err := p.parseFrom(q); err != nil {
			return nil, err
		}
		if err := p.parseFilterClauses(q); err != nil {
			return nil, err
		}
		if !p.tok.Is(token.Select) {
			return nil, p.missing("SELECT")
		}
		if err := p.parseSelect(q); err != nil {
			return nil, err
		}
	} else {
		if err := p.parseSelect(q); err != nil {
			return nil, err
		}
		if p.tok.Is(token.From) {
			if err := p.parseFrom(q); err != nil {
				return nil, err
			}
		}
		if err := p.parseFilterClauses(q); err != nil {
			return nil, err
		}
	}

	if err := p.parseOrderBy(q); err != nil {
		return nil, err
	}
	if err := p.parseSkip(q); err != nil {
		return nil, err
	}
	if err := p.parseTake(q); err != nil {
		return nil, err
	}
	q.Location = p.spanFrom(start)
	return q, nil
}

// parseFilterClauses parses WHERE, GROUP BY and HAVING, the clauses that sit
// between FROM and SELECT in the reordered form.
func (p *Parser) parseFilterClauses(q *ast.QueryNode) error {
	if err := p.parseWhere(q); err != nil {
		return err
	}
	if p.tok.Is(token.Having) {
		return p.invalid(p.tok, "HAVING requires a preceding GROUP BY")
	}
	return p.parseGroupBy(q)
}

func (p *Parser) parseSelect(q *ast.QueryNode) error {
	start := p.tok.Span.Start
	if err := p.next(); err != nil {
		return err
	}
	sel := &ast.SelectNode{}
	if p.tok.Is(token.Distinct) {
		sel.Distinct = true
		if err := p.next(); err != nil {
			return err
		}
	}
	if !startsItem(p.tok) && !p.tok.Is(token.Comma) {
		if p.tok.Is(token.EOF) || p.tok.Type.IsKeyword() {
			return p.invalid(p.tok, "SELECT requires at least one field")
		}
		return p.unexpected("field")
	}
	fields, err := commaList(p, "SELECT", p.parseField)
	if err != nil {
		return err
	}
	sel.Fields = fields
	sel.Location = p.spanFrom(start)
	q.Select = sel
	return nil
}

func (p *Parser) parseField() (*ast.FieldNode, error) {
	start := p.tok.Span.Start
	field := &ast.FieldNode{}
	if p.tok.Is(token.Star) {
		field.Expr = &ast.StarNode{Pos: ast.At(p.tok.Span)}
		if err := p.next(); err != nil {
			return nil, err
		}
	} else {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		field.Expr = expr
	}
	alias, err := p.parseAlias(false)
	if err != nil {
		return nil, err
	}
	field.Alias = alias
	field.Location = p.spanFrom(start)
	return field, nil
}

// parseAlias parses [AS] alias. A bare identifier is taken as an alias
// unless it is one of reservedAliases.
func (p *Parser) parseAlias(required bool) (string, error) {
	if p.tok.Is(token.As) {
		if err := p.next(); err != nil {
			return "", err
		}
		if !p.tok.IsWord() {
			return "", p.missing("alias")
		}
		alias := p.tok.Value
		return alias, p.next()
	}
	if p.tok.Is(token.Identifier) {
		if _, reserved := reservedAliases[strings.ToLower(p.tok.Value)]; !reserved {
			alias := p.tok.Value
			return alias, p.next()
		}
	}
	if required {
		return "", p.missing("alias")
	}
	return "", nil
}

func (p *Parser) parseWhere(q *ast.QueryNode) error {
	if !p.tok.Is(token.Where) {
		return nil
	}
	start := p.tok.Span.Start
	if err := p.next(); err != nil {
		return err
	}
	if err := p.requireExpression("WHERE requires a condition"); err != nil {
		return err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return err
	}
	q.Where = &ast.WhereNode{Pos: ast.At(p.spanFrom(start)), Expr: expr}
	return nil
}

func (p *Parser) parseGroupBy(q *ast.QueryNode) error {
	if !p.tok.Is(token.GroupBy) {
		return nil
	}
	start := p.tok.Span.Start
	if err := p.next(); err != nil {
		return err
	}
	if err := p.requireExpression("GROUP BY requires at least one column"); err != nil {
		return err
	}
	fields, err := commaList(p, "GROUP BY", p.parseExpression)
	if err != nil {
		return err
	}
	group := &ast.GroupByNode{Fields: fields}
	if p.tok.Is(token.Having) {
		havingStart := p.tok.Span.Start
		if err := p.next(); err != nil {
			return err
		}
		if err := p.requireExpression("HAVING requires a condition"); err != nil {
			return err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return err
		}
		group.Having = &ast.HavingNode{Pos: ast.At(p.spanFrom(havingStart)), Expr: expr}
	}
	group.Location = p.spanFrom(start)
	q.GroupBy = group
	return nil
}

func (p *Parser) parseOrderBy(q *ast.QueryNode) error {
	if !p.tok.Is(token.OrderBy) {
		return nil
	}
	start := p.tok.Span.Start
	if err := p.next(); err != nil {
		return err
	}
	if err := p.requireExpression("ORDER BY requires at least one column"); err != nil {
		return err
	}
	items, err := commaList(p, "ORDER BY", p.parseOrderItem)
	if err != nil {
		return err
	}
	q.OrderBy = &ast.OrderByNode{Pos: ast.At(p.spanFrom(start)), Items: items}
	return nil
}

func (p *Parser) parseOrderItem() (*ast.OrderItemNode, error) {
	start := p.tok.Span.Start
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	item := &ast.OrderItemNode{Expr: expr}
	switch p.tok.Type {
	case token.Desc:
		item.Descending = true
		fallthrough
	case token.Asc:
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	item.Location = p.spanFrom(start)
	return item, nil
}

func (p *Parser) parseSkip(q *ast.QueryNode) error {
	if !p.tok.Is(token.Skip) {
		return nil
	}
	start := p.tok.Span.Start
	value, err := p.parseCount("SKIP")
	if err != nil {
		return err
	}
	q.Skip = &ast.SkipNode{Pos: ast.At(p.spanFrom(start)), Value: value}
	return nil
}

func (p *Parser) parseTake(q *ast.QueryNode) error {
	if !p.tok.Is(token.Take) {
		return nil
	}
	start := p.tok.Span.Start
	value, err := p.parseCount("TAKE")
	if err != nil {
		return err
	}
	q.Take = &ast.TakeNode{Pos: ast.At(p.spanFrom(start)), Value: value}
	return nil
}

// parseCount parses the row count after SKIP or TAKE.
func (p *Parser) parseCount(clause string) (ast.Node, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.requireExpression(clause + " requires a row count"); err != nil {
		return nil, err
	}
	return p.parseAdditive()
}

// parseEmbeddedSchema hands the statement to the schema parser with the lexer
// switched to schema context, then switches back.
func (p *Parser) parseEmbeddedSchema() (ast.Node, error) {
	start := p.tok
	p.lexer.RestoreTo(start.Span.Start, start)
	p.lexer.SetSchemaContext(true)
	p.log.Debug("entering schema context at %d", start.Span.Start)

	def, err := schema.NewParser(p.lexer, schema.WithLogger(p.log)).ParseDefinition()
	p.lexer.SetSchemaContext(false)
	p.log.Debug("leaving schema context at %d", p.lexer.Position())
	if err != nil {
		return nil, err
	}
	p.tok = p.lexer.Current()
	if err := p.next(); err != nil {
		return nil, err
	}
	return &ast.EmbeddedSchemaNode{Pos: ast.At(def.Span()), Definition: def}, nil
}
