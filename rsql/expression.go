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
	"github.com/rulego/sqlfront/ast"
	"github.com/rulego/sqlfront/token"
)

// Precedence, loosest first:
//
//	or
//	and
//	not (prefix)
//	= <> < > <= >= like rlike is in between contains
//	|
//	^
//	&
//	<< >>
//	+ -
//	* / %
//	- (prefix)
//	postfix: .name .method(args) [index]
//	primary
//
// Every binary level is left-associative.

var comparisonOps = map[token.TokenType]ast.BinaryOp{
	token.Equal:        ast.OpEqual,
	token.NotEqual:     ast.OpNotEqual,
	token.Less:         ast.OpLess,
	token.Greater:      ast.OpGreater,
	token.LessEqual:    ast.OpLessEqual,
	token.GreaterEqual: ast.OpGreaterEqual,
	token.Like:         ast.OpLike,
	token.NotLike:      ast.OpNotLike,
	token.RLike:        ast.OpRLike,
	token.NotRLike:     ast.OpNotRLike,
}

// binaryLevel is one left-associative precedence level.
type binaryLevel struct {
	ops map[token.TokenType]ast.BinaryOp
}

var (
	bitOrLevel    = binaryLevel{ops: map[token.TokenType]ast.BinaryOp{token.Pipe: ast.OpBitOr}}
	bitXorLevel   = binaryLevel{ops: map[token.TokenType]ast.BinaryOp{token.Caret: ast.OpBitXor}}
	bitAndLevel   = binaryLevel{ops: map[token.TokenType]ast.BinaryOp{token.Ampersand: ast.OpBitAnd}}
	shiftLevel    = binaryLevel{ops: map[token.TokenType]ast.BinaryOp{token.ShiftLeft: ast.OpShiftLeft, token.ShiftRight: ast.OpShiftRight}}
	additiveLevel = binaryLevel{ops: map[token.TokenType]ast.BinaryOp{token.Plus: ast.OpAdd, token.Minus: ast.OpSubtract}}
	multLevel     = binaryLevel{ops: map[token.TokenType]ast.BinaryOp{token.Star: ast.OpMultiply, token.Slash: ast.OpDivide, token.Percent: ast.OpModulo}}
)

// parseExpression parses a full expression.
func (p *Parser) parseExpression() (ast.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Node, error) {
	start := p.tok.Span.Start
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.tok.Is(token.Or) {
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryNode{Pos: ast.At(p.spanFrom(start)), Op: ast.OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Node, error) {
	start := p.tok.Span.Start
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.tok.Is(token.And) {
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryNode{Pos: ast.At(p.spanFrom(start)), Op: ast.OpAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseNot() (ast.Node, error) {
	if !p.tok.Is(token.Not) {
		return p.parseComparison()
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

func (p *Parser) parseComparison() (ast.Node, error) {
	start := p.tok.Span.Start
	left, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}
	for {
		if op, ok := comparisonOps[p.tok.Type]; ok {
			if err := p.next(); err != nil {
				return nil, err
			}
			right, err := p.parseBitOr()
			if err != nil {
				return nil, err
			}
			left = &ast.BinaryNode{Pos: ast.At(p.spanFrom(start)), Op: op, Left: left, Right: right}
			continue
		}
		switch p.tok.Type {
		case token.Is:
			left, err = p.parseIsNull(start, left)
		case token.In, token.NotIn:
			left, err = p.parseIn(start, left)
		case token.Between:
			left, err = p.parseBetween(start, left)
		case token.Contains:
			left, err = p.parseContains(start, left)
		default:
			return left, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseIsNull(start int, left ast.Node) (ast.Node, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	node := &ast.IsNullNode{Expr: left}
	if p.tok.Is(token.Not) {
		node.Not = true
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	if err := p.expect(token.Null, "NULL"); err != nil {
		return nil, err
	}
	node.Location = p.spanFrom(start)
	return node, nil
}

func (p *Parser) parseIn(start int, left ast.Node) (ast.Node, error) {
	node := &ast.InNode{Expr: left, Not: p.tok.Is(token.NotIn)}
	if err := p.next(); err != nil {
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
		if err := p.expect(token.RParen, ")"); err != nil {
			return nil, err
		}
		node.Query = &ast.SubqueryNode{Pos: ast.At(p.spanFrom(open.Span.Start)), Query: query}
	case p.tok.Is(token.RParen):
		return nil, p.invalid(p.tok, "IN list must not be empty")
	default:
		values, err := commaList(p, "IN", p.parseExpression)
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RParen, ")"); err != nil {
			return nil, err
		}
		node.Values = values
	}
	node.Location = p.spanFrom(start)
	return node, nil
}

func (p *Parser) parseBetween(start int, left ast.Node) (ast.Node, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	low, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.And, "AND"); err != nil {
		return nil, err
	}
	high, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}
	return &ast.BetweenNode{Pos: ast.At(p.spanFrom(start)), Expr: left, Low: low, High: high}, nil
}

func (p *Parser) parseContains(start int, left ast.Node) (ast.Node, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expect(token.LParen, "("); err != nil {
		return nil, err
	}
	if p.tok.Is(token.RParen) {
		return nil, p.invalid(p.tok, "CONTAINS list must not be empty")
	}
	values, err := commaList(p, "CONTAINS", p.parseExpression)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RParen, ")"); err != nil {
		return nil, err
	}
	return &ast.ContainsNode{Pos: ast.At(p.spanFrom(start)), Expr: left, Values: values}, nil
}

// parseLevel parses operand (op operand)* for one binary level.
func (p *Parser) parseLevel(level binaryLevel, operand func() (ast.Node, error)) (ast.Node, error) {
	start := p.tok.Span.Start
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := level.ops[p.tok.Type]
		if !ok {
			return left, nil
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryNode{Pos: ast.At(p.spanFrom(start)), Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseBitOr() (ast.Node, error) {
	return p.parseLevel(bitOrLevel, p.parseBitXor)
}

func (p *Parser) parseBitXor() (ast.Node, error) {
	return p.parseLevel(bitXorLevel, p.parseBitAnd)
}

func (p *Parser) parseBitAnd() (ast.Node, error) {
	return p.parseLevel(bitAndLevel, p.parseShift)
}

func (p *Parser) parseShift() (ast.Node, error) {
	return p.parseLevel(shiftLevel, p.parseAdditive)
}

func (p *Parser) parseAdditive() (ast.Node, error) {
	return p.parseLevel(additiveLevel, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() (ast.Node, error) {
	return p.parseLevel(multLevel, p.parseUnary)
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

// parsePostfix parses property access, method calls, indexing and alias.*
// after a primary expression.
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
			if p.tok.Is(token.Star) {
				ident, ok := expr.(*ast.IdentifierNode)
				if !ok {
					return nil, p.invalid(p.tok, "'.*' must follow an alias")
				}
				if err := p.next(); err != nil {
					return nil, err
				}
				return &ast.StarNode{Pos: ast.At(p.spanFrom(start)), Alias: ident.Name}, nil
			}
			name, err := p.word("property name")
			if err != nil {
				return nil, err
			}
			if p.tok.Is(token.LParen) {
				args, err := p.parseCallArgs()
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
		node := &ast.IntegerNode{Pos: span, Digits: tok.Value, Base: tok.Type.Base(), Suffix: tok.Suffix, Raw: tok.Raw}
		return node, p.next()
	case token.Decimal:
		node := &ast.DecimalNode{Pos: span, Text: tok.Value, Suffix: tok.Suffix}
		return node, p.next()
	case token.String:
		node := &ast.StringNode{Pos: span, Value: tok.Value}
		return node, p.next()
	case token.True, token.False:
		node := &ast.BooleanNode{Pos: span, Value: tok.Is(token.True)}
		return node, p.next()
	case token.Null:
		node := &ast.NullNode{Pos: span}
		return node, p.next()
	case token.LParen:
		return p.parseParenthesized()
	case token.Case:
		return p.parseCase()
	case token.Identifier:
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.tok.Is(token.LParen) {
			return p.parseCall(tok)
		}
		return &ast.IdentifierNode{Pos: span, Name: tok.Value}, nil
	}
	return nil, p.unexpected("expression")
}

// parseParenthesized parses (expression) or a scalar (query).
func (p *Parser) parseParenthesized() (ast.Node, error) {
	start := p.tok.Span.Start
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.tok.Is(token.Select, token.From) {
		query, err := p.parseSetChain()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RParen, ")"); err != nil {
			return nil, err
		}
		return &ast.SubqueryNode{Pos: ast.At(p.spanFrom(start)), Query: query}, nil
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RParen, ")"); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseCase parses CASE WHEN c THEN v [WHEN c THEN v]* [ELSE v] END.
func (p *Parser) parseCase() (ast.Node, error) {
	start := p.tok.Span.Start
	if err := p.next(); err != nil {
		return nil, err
	}
	if !p.tok.Is(token.When) {
		return nil, p.missing("WHEN")
	}
	node := &ast.CaseNode{}
	for p.tok.Is(token.When) {
		if err := p.next(); err != nil {
			return nil, err
		}
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.Then, "THEN"); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.Whens = append(node.Whens, ast.WhenClause{When: cond, Then: value})
	}
	if p.tok.Is(token.Else) {
		if err := p.next(); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.Else = value
	}
	if err := p.expect(token.End, "END"); err != nil {
		return nil, err
	}
	node.Location = p.spanFrom(start)
	return node, nil
}

// parseCall parses name(args) [OVER (...)]; the current token is '('.
func (p *Parser) parseCall(name token.Token) (ast.Node, error) {
	start := name.Span.Start
	fn := &ast.FunctionNode{Name: name.Value}
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.tok.Is(token.Distinct) {
		fn.Distinct = true
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	if !p.tok.Is(token.RParen) {
		args, err := commaList(p, "argument", p.parseArgument)
		if err != nil {
			return nil, err
		}
		fn.Args = args
	}
	if err := p.expect(token.RParen, ")"); err != nil {
		return nil, err
	}
	fn.Location = p.spanFrom(start)
	if !p.tok.Is(token.Over) {
		return fn, nil
	}
	window, err := p.parseWindowSpec()
	if err != nil {
		return nil, err
	}
	return &ast.WindowFunctionNode{Pos: ast.At(p.spanFrom(start)), Function: fn, Window: window}, nil
}

// parseCallArgs parses (args) of a method call; the current token is '('.
func (p *Parser) parseCallArgs() ([]ast.Node, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.tok.Is(token.RParen) {
		return nil, p.next()
	}
	args, err := commaList(p, "argument", p.parseArgument)
	if err != nil {
		return nil, err
	}
	return args, p.expect(token.RParen, ")")
}

// parseArgument accepts '*' in addition to an expression, as in count(*).
func (p *Parser) parseArgument() (ast.Node, error) {
	if p.tok.Is(token.Star) {
		star := &ast.StarNode{Pos: ast.At(p.tok.Span)}
		return star, p.next()
	}
	return p.parseExpression()
}

// parseWindowSpec parses OVER ([PARTITION BY ...] [ORDER BY ...] [frame]).
func (p *Parser) parseWindowSpec() (*ast.WindowSpecNode, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	start := p.tok.Span.Start
	if err := p.expect(token.LParen, "("); err != nil {
		return nil, err
	}
	spec := &ast.WindowSpecNode{}
	if p.tok.Is(token.PartitionBy) {
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.requireExpression("PARTITION BY requires at least one expression"); err != nil {
			return nil, err
		}
		partition, err := commaList(p, "PARTITION BY", p.parseExpression)
		if err != nil {
			return nil, err
		}
		spec.PartitionBy = partition
	}
	if p.tok.Is(token.OrderBy) {
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.requireExpression("ORDER BY requires at least one column"); err != nil {
			return nil, err
		}
		items, err := commaList(p, "ORDER BY", p.parseOrderItem)
		if err != nil {
			return nil, err
		}
		spec.OrderBy = items
	}
	if p.tok.Is(token.Rows) {
		frame, err := p.parseFrame()
		if err != nil {
			return nil, err
		}
		spec.Frame = frame
	}
	if err := p.expect(token.RParen, ")"); err != nil {
		return nil, err
	}
	spec.Location = p.spanFrom(start)
	return spec, nil
}

// parseFrame parses ROWS bound or ROWS BETWEEN bound AND bound.
func (p *Parser) parseFrame() (*ast.FrameNode, error) {
	start := p.tok.Span.Start
	if err := p.next(); err != nil {
		return nil, err
	}
	frame := &ast.FrameNode{}
	between := p.tok.Is(token.Between)
	if between {
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	bound, err := p.parseFrameBound()
	if err != nil {
		return nil, err
	}
	frame.Start = bound
	if between {
		if err := p.expect(token.And, "AND"); err != nil {
			return nil, err
		}
		end, err := p.parseFrameBound()
		if err != nil {
			return nil, err
		}
		frame.End = &end
	}
	frame.Location = p.spanFrom(start)
	return frame, nil
}

func (p *Parser) parseFrameBound() (ast.FrameBound, error) {
	switch p.tok.Type {
	case token.Unbounded:
		if err := p.next(); err != nil {
			return ast.FrameBound{}, err
		}
		switch p.tok.Type {
		case token.Preceding:
			return ast.FrameBound{Kind: ast.UnboundedPreceding}, p.next()
		case token.Following:
			return ast.FrameBound{Kind: ast.UnboundedFollowing}, p.next()
		}
		return ast.FrameBound{}, p.missing("PRECEDING or FOLLOWING")
	case token.CurrentRow:
		return ast.FrameBound{Kind: ast.CurrentRow}, p.next()
	}
	if !startsExpression(p.tok) {
		return ast.FrameBound{}, p.unexpected("unbounded", "current row", "offset")
	}
	offset, err := p.parseAdditive()
	if err != nil {
		return ast.FrameBound{}, err
	}
	switch p.tok.Type {
	case token.Preceding:
		return ast.FrameBound{Kind: ast.Preceding, Offset: offset}, p.next()
	case token.Following:
		return ast.FrameBound{Kind: ast.Following, Offset: offset}, p.next()
	}
	return ast.FrameBound{}, p.missing("PRECEDING or FOLLOWING")
}
