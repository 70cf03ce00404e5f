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

package schema

import (
	"github.com/rulego/sqlfront/ast"
	"github.com/rulego/sqlfront/token"
)

// Schema expressions appear in sizes, checks, offsets, computed fields and
// repeat conditions. They share the query AST nodes but not the query
// grammar: there are no sub-queries, CASE, LIKE or IN.

// operator tiers, loosest first
var tiers = []map[token.TokenType]ast.BinaryOp{
	{token.Or: ast.OpOr},
	{token.And: ast.OpAnd},
	nil, // NOT
	{
		token.Equal: ast.OpEqual, token.NotEqual: ast.OpNotEqual,
		token.Less: ast.OpLess, token.Greater: ast.OpGreater,
		token.LessEqual: ast.OpLessEqual, token.GreaterEqual: ast.OpGreaterEqual,
	},
	{token.Pipe: ast.OpBitOr},
	{token.Caret: ast.OpBitXor},
	{token.Ampersand: ast.OpBitAnd},
	{token.ShiftLeft: ast.OpShiftLeft, token.ShiftRight: ast.OpShiftRight},
	{token.Plus: ast.OpAdd, token.Minus: ast.OpSubtract},
	{token.Star: ast.OpMultiply, token.Slash: ast.OpDivide, token.Percent: ast.OpModulo},
}

const notTier = 2

func startsExpression(tok token.Token) bool {
	if tok.Type.IsLiteral() {
		return true
	}
	return tok.Is(token.Identifier, token.LParen, token.Minus, token.Not)
}

func (p *Parser) parseExpression() (ast.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	return p.parseTier(0)
}

// parseTier parses a left-associative chain of the operators of tier i.
func (p *Parser) parseTier(i int) (ast.Node, error) {
	if i == len(tiers) {
		return p.parseUnary()
	}
	if i == notTier {
		return p.parseNot()
	}
	start := p.tok.Span.Start
	left, err := p.parseTier(i + 1)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := tiers[i][p.tok.Type]
		if !ok {
			return left, nil
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseTier(i + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryNode{Pos: ast.At(p.spanFrom(start)), Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseNot() (ast.Node, error) {
	if !p.tok.Is(token.Not) {
		return p.parseTier(notTier + 1)
	}
	start := p.tok.Span.Start
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	operand, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryNode{Pos: ast.At(p.spanFrom(start)), Op: ast.OpNot, Operand: operand}, nil
}

func (p *Parser) parseUnary() (ast.Node, error) {
	if !p.tok.Is(token.Minus) {
		return p.parsePostfix()
	}
	start := p.tok.Span.Start
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryNode{Pos: ast.At(p.spanFrom(start)), Op: ast.OpNegate, Operand: operand}, nil
}

// parsePostfix parses primary (.name | .name(args) | [index])*.
func (p *Parser) parsePostfix() (ast.Node, error) {
	start := p.tok.Span.Start
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.tok.Type {
		case token.Dot:
			if err := p.next(); err != nil {
				return nil, err
			}
			name, err := p.word("member name")
			if err != nil {
				return nil, err
			}
			if p.tok.Is(token.LParen) {
				args, err := p.parseArgs()
				if err != nil {
					return nil, err
				}
				expr = &ast.FunctionNode{Pos: ast.At(p.spanFrom(start)), Receiver: expr, Name: name.Value, Args: args}
				continue
			}
			expr = &ast.DotNode{Pos: ast.At(p.spanFrom(start)), Root: expr, Name: name.Value}
		case token.LBracket:
			if err := p.next(); err != nil {
				return nil, err
			}
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.RBracket, "]"); err != nil {
				return nil, err
			}
			expr = &ast.IndexNode{Pos: ast.At(p.spanFrom(start)), Root: expr, Index: index}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Node, error) {
	tok := p.tok
	span := ast.At(tok.Span)
	switch tok.Type {
	case token.Integer, token.HexInteger, token.BinaryInteger, token.OctalInteger:
		return &ast.IntegerNode{Pos: span, Digits: tok.Value, Base: tok.Type.Base(), Suffix: tok.Suffix, Raw: tok.Raw}, p.next()
	case token.Decimal:
		return &ast.DecimalNode{Pos: span, Text: tok.Value, Suffix: tok.Suffix}, p.next()
	case token.String:
		return &ast.StringNode{Pos: span, Value: tok.Value}, p.next()
	case token.True, token.False:
		return &ast.BooleanNode{Pos: span, Value: tok.Is(token.True)}, p.next()
	case token.Null:
		return &ast.NullNode{Pos: span}, p.next()
	case token.LParen:
		if err := p.next(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return expr, p.expect(token.RParen, ")")
	case token.Identifier:
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.tok.Is(token.LParen) {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			return &ast.FunctionNode{Pos: ast.At(p.spanFrom(tok.Span.Start)), Name: tok.Value, Args: args}, nil
		}
		return &ast.IdentifierNode{Pos: span, Name: tok.Value}, nil
	}
	return nil, p.unexpected("expression")
}

// parseArgs parses (expr, ...), possibly empty.
func (p *Parser) parseArgs() ([]ast.Node, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	var args []ast.Node
	if p.tok.Is(token.RParen) {
		return args, p.next()
	}
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.tok.Is(token.Comma) {
			break
		}
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	return args, p.expect(token.RParen, ")")
}
