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
	"fmt"
	"strings"

	"github.com/rulego/sqlfront/ast"
	"github.com/rulego/sqlfront/diag"
	"github.com/rulego/sqlfront/lexer"
	"github.com/rulego/sqlfront/logger"
	"github.com/rulego/sqlfront/token"
)

// Parser is a recursive-descent parser for the query language. A Parser
// parses one input once and is not safe for concurrent use.
type Parser struct {
	lexer *lexer.Lexer
	input string
	tok   token.Token
	// prevEnd is the end offset of the last consumed token
	prevEnd int

	log      logger.Logger
	depth    int
	maxDepth int

	// scopes holds the aliases declared by each enclosing query
	scopes []map[string]struct{}
	ctes   map[string]struct{}
}

// NewParser returns a parser over input.
func NewParser(input string, opts ...Option) *Parser {
	p := &Parser{
		lexer:    lexer.New(input),
		input:    input,
		log:      logger.Named(logger.GetDefault(), "rsql"),
		maxDepth: DefaultMaxDepth,
		ctes:     make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses every statement of input.
//
// Example:
//
//	root, err := rsql.Parse("select Name from #os.files('/tmp') f where f.Length > 0x400")
func Parse(input string, opts ...Option) (*ast.StatementsNode, error) {
	return NewParser(input, opts...).ParseStatements()
}

// ParseStatements parses the whole input. It fails at the first error; lexer
// errors are returned as they are, parser errors as *diag.SyntaxError.
func (p *Parser) ParseStatements() (*ast.StatementsNode, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	root := &ast.StatementsNode{}
	start := p.tok.Span.Start
	for !p.tok.Is(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		p.log.Debug("statement %d parsed as %T", len(root.Statements)+1, stmt)
		root.Statements = append(root.Statements, stmt)
	}
	if len(root.Statements) == 0 {
		return nil, p.unexpected(token.StatementKeywords...)
	}
	root.Location = token.NewSpan(start, p.prevEnd)
	return root, nil
}

// next advances to the following token.
func (p *Parser) next() error {
	if !p.tok.Span.IsEmpty() {
		p.prevEnd = p.tok.Span.End()
	}
	tok, err := p.lexer.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) peek() (token.Token, error) {
	return p.lexer.Peek()
}

// expect consumes a token of type tt or reports text as missing.
func (p *Parser) expect(tt token.TokenType, text string) error {
	if !p.tok.Is(tt) {
		return p.missing(text)
	}
	return p.next()
}

// word consumes a name token. Keywords are accepted where the position
// leaves no ambiguity, e.g. after '#' or '.'.
func (p *Parser) word(what string) (token.Token, error) {
	tok := p.tok
	if !tok.IsWord() {
		return tok, p.unexpected(what)
	}
	return tok, p.next()
}

func (p *Parser) spanFrom(start int) token.TextSpan {
	return token.NewSpan(start, max(start, p.prevEnd))
}

// part is the consumed input up to and including tok.
func (p *Parser) part(tok token.Token) string {
	return diag.QueryPartOf(p.input, tok.Span)
}

func (p *Parser) unexpected(expected ...string) error {
	return diag.UnexpectedToken(p.part(p.tok), p.tok, expected, token.QueryKeywords())
}

func (p *Parser) missing(required string) error {
	return diag.MissingToken(p.part(p.tok), required, p.tok)
}

func (p *Parser) invalid(tok token.Token, format string, args ...interface{}) error {
	return diag.InvalidStructure(p.part(tok), fmt.Sprintf(format, args...), tok.Span.Start)
}

func (p *Parser) unsupported(construct string) error {
	return diag.UnsupportedSyntax(p.part(p.tok), construct, p.tok.Span.Start)
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.invalid(p.tok, "expression nesting exceeds %d levels", p.maxDepth)
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) pushScope() {
	p.scopes = append(p.scopes, make(map[string]struct{}))
}

func (p *Parser) popScope() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

func (p *Parser) declare(alias string) {
	if alias == "" || len(p.scopes) == 0 {
		return
	}
	p.scopes[len(p.scopes)-1][strings.ToLower(alias)] = struct{}{}
}

// isAlias reports whether name was declared as an alias by this query or an
// enclosing one.
func (p *Parser) isAlias(name string) bool {
	key := strings.ToLower(name)
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if _, ok := p.scopes[i][key]; ok {
			return true
		}
	}
	return false
}

func (p *Parser) parseStatement() (ast.Node, error) {
	switch p.tok.Type {
	case token.With:
		return p.parseCteExpression()
	case token.Desc:
		return p.parseDesc()
	case token.Couple:
		return p.parseCouple()
	case token.Select, token.From:
		return p.parseSetChain()
	}
	if ok, err := p.atSchemaDefinition(); err != nil {
		return nil, err
	} else if ok {
		return p.parseEmbeddedSchema()
	}
	return nil, p.unexpected(token.StatementKeywords...)
}

// commaList parses item (',' item)*. A leading, doubled or trailing comma is
// reported at the comma itself.
func commaList[T any](p *Parser, clause string, item func() (T, error)) ([]T, error) {
	var items []T
	for {
		if p.tok.Is(token.Comma) {
			return nil, p.invalid(p.tok, "unexpected ',' in %s list", clause)
		}
		it, err := item()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
		if !p.tok.Is(token.Comma) {
			return items, nil
		}
		comma := p.tok
		if err := p.next(); err != nil {
			return nil, err
		}
		if !p.tok.Is(token.Comma) && !startsItem(p.tok) {
			return nil, p.invalid(comma, "trailing ',' in %s list", clause)
		}
	}
}

// startsExpression reports whether tok can begin an expression.
func startsExpression(tok token.Token) bool {
	if tok.Type.IsLiteral() {
		return true
	}
	switch tok.Type {
	case token.Identifier, token.LParen, token.Minus, token.Not, token.Case:
		return true
	}
	return false
}

func startsItem(tok token.Token) bool {
	return startsExpression(tok) || tok.Is(token.Star, token.Hash)
}

// requireExpression rejects a clause keyword that is directly followed by a
// keyword or the end of input.
func (p *Parser) requireExpression(message string) error {
	if startsExpression(p.tok) {
		return nil
	}
	if p.tok.Is(token.EOF) || p.tok.Type.IsKeyword() || p.tok.Is(token.Comma) {
		return p.invalid(p.tok, "%s", message)
	}
	return p.unexpected("expression")
}

// parseSetChain parses query (setop (keys) query)*, left-associative.
func (p *Parser) parseSetChain() (ast.Node, error) {
	start := p.tok.Span.Start
	q, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	var left ast.Node = q
	for {
		var op ast.SetOp
		switch p.tok.Type {
		case token.Union:
			op = ast.Union
		case token.UnionAll:
			op = ast.UnionAll
		case token.Intersect:
			op = ast.Intersect
		case token.Except:
			op = ast.Except
		default:
			return left, nil
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		keys, err := p.parseSetKeys(op)
		if err != nil {
			return nil, err
		}
		if !p.tok.Is(token.Select, token.From) {
			return nil, p.unexpected("select", "from")
		}
		right, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		left = &ast.SetOperatorNode{Pos: ast.At(p.spanFrom(start)), Op: op, Keys: keys, Left: left, Right: right}
	}
}

// parseSetKeys parses the parenthesized key column list of a set operator.
// Only UNION ALL may leave it empty.
func (p *Parser) parseSetKeys(op ast.SetOp) ([]string, error) {
	open := p.tok
	if err := p.expect(token.LParen, "("); err != nil {
		return nil, err
	}
	if p.tok.Is(token.RParen) {
		if op != ast.UnionAll {
			return nil, p.invalid(open, "%s requires at least one key column", strings.ToUpper(op.String()))
		}
		return []string{}, p.next()
	}
	keys, err := commaList(p, "key column", func() (string, error) {
		tok, err := p.word("key column")
		return tok.Value, err
	})
	if err != nil {
		return nil, err
	}
	return keys, p.expect(token.RParen, ")")
}

func (p *Parser) parseCteExpression() (ast.Node, error) {
	start := p.tok.Span.Start
	if err := p.next(); err != nil {
		return nil, err
	}
	node := &ast.CteExpressionNode{}
	if p.tok.Is(token.Recursive) {
		node.Recursive = true
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	ctes, err := commaList(p, "WITH", p.parseCte)
	if err != nil {
		return nil, err
	}
	node.Ctes = ctes
	if !p.tok.Is(token.Select, token.From) {
		return nil, p.unexpected("select", "from")
	}
	if node.Statement, err = p.parseSetChain(); err != nil {
		return nil, err
	}
	node.Location = p.spanFrom(start)
	return node, nil
}

func (p *Parser) parseCte() (*ast.CteNode, error) {
	nameTok := p.tok
	if !nameTok.Is(token.Identifier) {
		return nil, p.unexpected("cte name")
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	// a recursive CTE may name itself in its own body
	p.ctes[strings.ToLower(nameTok.Value)] = struct{}{}
	if err := p.expect(token.As, "AS"); err != nil {
		return nil, err
	}
	if err := p.expect(token.LParen, "("); err != nil {
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
	return &ast.CteNode{Pos: ast.At(p.spanFrom(nameTok.Span.Start)), Name: nameTok.Value, Query: query}, nil
}

// parseDesc parses DESC [FUNCTIONS] #schema[.method[(args)]].
func (p *Parser) parseDesc() (ast.Node, error) {
	start := p.tok.Span.Start
	if err := p.next(); err != nil {
		return nil, err
	}
	node := &ast.DescNode{}
	if p.tok.Is(token.Identifier) && strings.EqualFold(p.tok.Value, "functions") {
		// "functions.m()" is a hash-less schema that happens to be named functions
		following, err := p.peek()
		if err != nil {
			return nil, err
		}
		if !following.Is(token.Dot) {
			node.Functions = true
			if err := p.next(); err != nil {
				return nil, err
			}
		}
	}
	src, err := p.parseSourceCall(false)
	if err != nil {
		return nil, err
	}
	node.Source = src
	node.Location = p.spanFrom(start)
	return node, nil
}

// parseCouple parses COUPLE #schema.method WITH TABLE name AS alias.
func (p *Parser) parseCouple() (ast.Node, error) {
	start := p.tok.Span.Start
	if err := p.next(); err != nil {
		return nil, err
	}
	src, err := p.parseSourceCall(true)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.With, "WITH"); err != nil {
		return nil, err
	}
	if err := p.expect(token.Table, "TABLE"); err != nil {
		return nil, err
	}
	table, err := p.word("table name")
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.As, "AS"); err != nil {
		return nil, err
	}
	alias, err := p.word("alias")
	if err != nil {
		return nil, err
	}
	return &ast.CoupleNode{
		Pos:    ast.At(p.spanFrom(start)),
		Source: src,
		Table:  table.Value,
		Alias:  alias.Value,
	}, nil
}

// parseSourceCall parses [#]schema[.method[(args)]]. The method is
// mandatory when requireMethod is set.
func (p *Parser) parseSourceCall(requireMethod bool) (ast.SourceCall, error) {
	var src ast.SourceCall
	if p.tok.Is(token.Hash) {
		if err := p.next(); err != nil {
			return src, err
		}
	}
	schema, err := p.word("#schema")
	if err != nil {
		return src, err
	}
	src.Schema = schema.Value
	if !p.tok.Is(token.Dot) {
		if requireMethod {
			return src, p.missing(".")
		}
		return src, nil
	}
	if err := p.next(); err != nil {
		return src, err
	}
	method, err := p.word("method name")
	if err != nil {
		return src, err
	}
	src.Method = method.Value
	if p.tok.Is(token.LParen) {
		src.Call = true
		if src.Args, err = p.parseArgs(); err != nil {
			return src, err
		}
	}
	return src, nil
}

// parseArgs parses a parenthesized argument list; the current token is '('.
func (p *Parser) parseArgs() ([]ast.Node, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.tok.Is(token.RParen) {
		return nil, p.next()
	}
	args, err := commaList(p, "argument", p.parseExpression)
	if err != nil {
		return nil, err
	}
	return args, p.expect(token.RParen, ")")
}

// atSchemaDefinition reports whether the current statement is an embedded
// "binary Name" or "text Name" schema. Those words are plain identifiers in
// query context, so the name that follows decides.
func (p *Parser) atSchemaDefinition() (bool, error) {
	if !p.tok.Is(token.Identifier) {
		return false, nil
	}
	if !strings.EqualFold(p.tok.Value, "binary") && !strings.EqualFold(p.tok.Value, "text") {
		return false, nil
	}
	following, err := p.peek()
	if err != nil {
		return false, err
	}
	return following.Is(token.Identifier), nil
}
