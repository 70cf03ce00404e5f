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
	"github.com/rulego/sqlfront/token"
)

// unsupportedJoins maps join spellings that are recognised but not part of
// the dialect to the construct named in the error.
var unsupportedJoins = map[string]string{
	"join":  "JOIN without INNER, LEFT OUTER or RIGHT OUTER",
	"full":  "FULL OUTER JOIN",
	"cross": "CROSS JOIN",
}

func (p *Parser) parseFrom(q *ast.QueryNode) error {
	if err := p.next(); err != nil {
		return err
	}
	from, err := p.parseFromChain()
	if err != nil {
		return err
	}
	q.From = from
	return nil
}

// parseFromChain parses a source followed by any number of joins, applies
// and pivots, folding them to the left.
func (p *Parser) parseFromChain() (ast.Node, error) {
	start := p.tok.Span.Start
	left, err := p.parseSource()
	if err != nil {
		return nil, err
	}
	for {
		switch p.tok.Type {
		case token.InnerJoin, token.LeftOuterJoin, token.RightOuterJoin:
			if left, err = p.parseJoin(start, left); err != nil {
				return nil, err
			}
		case token.CrossApply, token.OuterApply:
			kind := ast.CrossApply
			if p.tok.Is(token.OuterApply) {
				kind = ast.OuterApply
			}
			if err := p.next(); err != nil {
				return nil, err
			}
			right, err := p.parseSource()
			if err != nil {
				return nil, err
			}
			left = &ast.ApplyFromNode{Pos: ast.At(p.spanFrom(start)), Kind: kind, Left: left, Right: right}
		case token.Pivot:
			if left, err = p.parsePivot(start, left); err != nil {
				return nil, err
			}
		case token.Identifier:
			if construct, ok := unsupportedJoins[strings.ToLower(p.tok.Value)]; ok {
				return nil, p.unsupported(construct)
			}
			return left, nil
		default:
			return left, nil
		}
	}
}

func (p *Parser) parseJoin(start int, left ast.Node) (ast.Node, error) {
	kind := ast.InnerJoin
	switch p.tok.Type {
	case token.LeftOuterJoin:
		kind = ast.LeftOuterJoin
	case token.RightOuterJoin:
		kind = ast.RightOuterJoin
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	right, err := p.parseSource()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.On, "ON"); err != nil {
		return nil, err
	}
	if err := p.requireExpression("ON requires a join condition"); err != nil {
		return nil, err
	}
	on, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.JoinFromNode{Pos: ast.At(p.spanFrom(start)), Kind: kind, Left: left, Right: right, On: on}, nil
}

// parseSource parses one FROM source:
//
//	#schema.method(args) [alias]    schema call
//	schema.method(args) [alias]     schema call without the hash
//	alias.Method(args) [alias]      method of an earlier alias
//	alias.Prop.Nested [alias]       property chain of an earlier alias
//	(query) alias                   derived table
//	name [alias]                    CTE or coupled table
func (p *Parser) parseSource() (ast.Node, error) {
	start := p.tok.Span.Start
	switch {
	case p.tok.Is(token.LParen):
		return p.parseDerivedTable(start)
	case p.tok.Is(token.Hash):
		if err := p.next(); err != nil {
			return nil, err
		}
		schemaTok, err := p.word("schema name")
		if err != nil {
			return nil, err
		}
		if !p.tok.Is(token.Dot) {
			return nil, p.missing(".")
		}
		return p.parseSchemaCall(start, schemaTok.Value, true)
	case p.tok.Is(token.Identifier):
		nameTok := p.tok
		if err := p.next(); err != nil {
			return nil, err
		}
		if !p.tok.Is(token.Dot) {
			node := &ast.ReferenceFromNode{Name: nameTok.Value}
			p.declare(nameTok.Value)
			return p.finishSource(start, node, &node.Alias)
		}
		if p.isAlias(nameTok.Value) {
			return p.parseAliasAccess(start, nameTok.Value)
		}
		return p.parseSchemaCall(start, nameTok.Value, false)
	}
	return nil, p.unexpected("#schema.method()", "(", "identifier")
}

func (p *Parser) parseDerivedTable(start int) (ast.Node, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	if !p.tok.Is(token.Select, token.From) {
		return nil, p.unexpected("select", "from")
	}
	query, err := p.parseSetChain()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RParen, ")"); err != nil {
		return nil, err
	}
	alias, err := p.parseAlias(true)
	if err != nil {
		return nil, err
	}
	p.declare(alias)
	return &ast.SubqueryFromNode{Pos: ast.At(p.spanFrom(start)), Query: query, Alias: alias}, nil
}

// parseSchemaCall parses .method(args) after a schema name. Without a hash
// and without parentheses the name is the root of a property chain.
func (p *Parser) parseSchemaCall(start int, schemaName string, hashed bool) (ast.Node, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	method, err := p.word("method name")
	if err != nil {
		return nil, err
	}
	if !p.tok.Is(token.LParen) {
		if hashed {
			return nil, p.missing("(")
		}
		return p.parsePropertyChain(start, schemaName, method.Value)
	}
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	node := &ast.SchemaFromNode{Schema: schemaName, Method: method.Value, Args: args}
	return p.finishSource(start, node, &node.Alias)
}

// parseAliasAccess parses .Method(args) or .Prop.Nested after a declared alias.
func (p *Parser) parseAliasAccess(start int, source string) (ast.Node, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	member, err := p.word("property or method name")
	if err != nil {
		return nil, err
	}
	if !p.tok.Is(token.LParen) {
		return p.parsePropertyChain(start, source, member.Value)
	}
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	node := &ast.AliasMethodFromNode{Source: source, Method: member.Value, Args: args}
	return p.finishSource(start, node, &node.Alias)
}

func (p *Parser) parsePropertyChain(start int, source, first string) (ast.Node, error) {
	node := &ast.PropertyFromNode{Source: source, Path: []string{first}}
	for p.tok.Is(token.Dot) {
		if err := p.next(); err != nil {
			return nil, err
		}
		prop, err := p.word("property name")
		if err != nil {
			return nil, err
		}
		node.Path = append(node.Path, prop.Value)
	}
	return p.finishSource(start, node, &node.Alias)
}

// finishSource reads the optional alias into *alias, declares it and sets
// the node span.
func (p *Parser) finishSource(start int, node ast.Node, alias *string) (ast.Node, error) {
	name, err := p.parseAlias(false)
	if err != nil {
		return nil, err
	}
	*alias = name
	p.declare(name)
	span := ast.At(p.spanFrom(start))
	switch n := node.(type) {
	case *ast.SchemaFromNode:
		n.Pos = span
	case *ast.ReferenceFromNode:
		n.Pos = span
	case *ast.AliasMethodFromNode:
		n.Pos = span
	case *ast.PropertyFromNode:
		n.Pos = span
	}
	return node, nil
}

// parsePivot parses
//
//	PIVOT (agg(...) [, agg(...)]* FOR column IN (values | query)) AS alias
//
// Every part is mandatory and the IN list may not be empty.
func (p *Parser) parsePivot(start int, source ast.Node) (ast.Node, error) {
	pivotStart := p.tok.Span.Start
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expect(token.LParen, "("); err != nil {
		return nil, err
	}
	if p.tok.Is(token.For) || p.tok.Is(token.RParen) {
		return nil, p.invalid(p.tok, "PIVOT requires at least one aggregation")
	}
	aggs, err := commaList(p, "PIVOT aggregation", func() (ast.Node, error) {
		aggTok := p.tok
		agg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, ok := agg.(*ast.FunctionNode); !ok {
			return nil, p.invalid(aggTok, "PIVOT aggregation must be a function call, found '%s'", agg.String())
		}
		return agg, nil
	})
	if err != nil {
		return nil, err
	}
	pivot := &ast.PivotNode{Aggregations: aggs}

	if err := p.expect(token.For, "FOR"); err != nil {
		return nil, err
	}
	if !startsExpression(p.tok) {
		return nil, p.unexpected("pivot column")
	}
	// parsed below comparison level so IN is left for the pivot
	if pivot.For, err = p.parseAdditive(); err != nil {
		return nil, err
	}
	if err := p.expect(token.In, "IN"); err != nil {
		return nil, err
	}
	open := p.tok
	if err := p.expect(token.LParen, "("); err != nil {
		return nil, err
	}
	switch {
	case p.tok.Is(token.Select, token.From):
		query, err := p.parseSetChain()
		if err != nil {
			return nil, err
		}
		pivot.InQuery = &ast.SubqueryNode{Pos: ast.At(p.spanFrom(open.Span.Start)), Query: query}
	case p.tok.Is(token.RParen):
		return nil, p.invalid(p.tok, "PIVOT IN list must not be empty")
	default:
		if pivot.In, err = commaList(p, "PIVOT IN", p.parseExpression); err != nil {
			return nil, err
		}
	}
	if err := p.expect(token.RParen, ")"); err != nil {
		return nil, err
	}
	if err := p.expect(token.RParen, ")"); err != nil {
		return nil, err
	}
	pivot.Location = p.spanFrom(pivotStart)

	alias, err := p.parseAlias(true)
	if err != nil {
		return nil, err
	}
	p.declare(alias)
	return &ast.PivotFromNode{Pos: ast.At(p.spanFrom(start)), Source: source, Pivot: pivot, Alias: alias}, nil
}
