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
	"errors"
	"fmt"
	"strings"

	"github.com/rulego/sqlfront/ast"
	"github.com/rulego/sqlfront/condition"
	"github.com/rulego/sqlfront/diag"
	"github.com/rulego/sqlfront/lexer"
	"github.com/rulego/sqlfront/logger"
	"github.com/rulego/sqlfront/token"
)

const defaultMaxDepth = 1024

// Parser parses binary and text schema definitions. It switches the lexer
// into schema context and leaves it there; callers embedding a schema in a
// query switch it back.
type Parser struct {
	lexer   *lexer.Lexer
	input   string
	tok     token.Token
	prevEnd int

	log      logger.Logger
	depth    int
	maxDepth int
}

// NewParser returns a parser reading from l.
func NewParser(l *lexer.Lexer, opts ...Option) *Parser {
	l.SetSchemaContext(true)
	p := &Parser{
		lexer:    l,
		input:    l.Input(),
		log:      logger.Named(logger.GetDefault(), "schema"),
		maxDepth: defaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses every definition in src.
//
//	set, err := schema.Parse(`binary Header { Magic: int be, Length: short le }`)
func Parse(src string, opts ...Option) (*Set, error) {
	return NewParser(lexer.New(src), opts...).ParseAll()
}

// ParseDefinition parses one definition starting at the lexer's next token.
// On success the lexer's current token is the closing '}'.
func (p *Parser) ParseDefinition() (Definition, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	var (
		def Definition
		err error
	)
	switch p.tok.Type {
	case token.Binary:
		def, err = p.parseBinary()
	case token.Text:
		def, err = p.parseText()
	default:
		return nil, p.unexpected("binary", "text")
	}
	if err != nil {
		return nil, err
	}
	p.log.Debug("parsed %s", def.DefinitionName())
	return def, nil
}

// ParseAll parses definitions until the end of input.
func (p *Parser) ParseAll() (*Set, error) {
	set := NewSet()
	for {
		following, err := p.lexer.Peek()
		if err != nil {
			return nil, err
		}
		if following.Is(token.EOF) {
			break
		}
		def, err := p.ParseDefinition()
		if err != nil {
			return nil, err
		}
		if err := set.Add(def); err != nil {
			return nil, p.invalid(p.tok, "schema '%s' is already defined", def.DefinitionName())
		}
	}
	if set.Len() == 0 {
		if err := p.next(); err != nil {
			return nil, err
		}
		return nil, p.unexpected("binary", "text")
	}
	return set, nil
}

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

func (p *Parser) expect(tt token.TokenType, text string) error {
	if !p.tok.Is(tt) {
		return p.missing(text)
	}
	return p.next()
}

func (p *Parser) word(what string) (token.Token, error) {
	tok := p.tok
	if !tok.IsWord() {
		return tok, p.unexpected(what)
	}
	return tok, p.next()
}

func (p *Parser) stringLiteral(what string) (token.Token, error) {
	tok := p.tok
	if !tok.Is(token.String) {
		return tok, p.unexpected(what)
	}
	return tok, p.next()
}

func (p *Parser) spanFrom(start int) token.TextSpan {
	return token.NewSpan(start, max(start, p.prevEnd))
}

func (p *Parser) part(tok token.Token) string {
	return diag.QueryPartOf(p.input, tok.Span)
}

func (p *Parser) unexpected(expected ...string) error {
	return diag.UnexpectedToken(p.part(p.tok), p.tok, expected, token.SchemaKeywords())
}

func (p *Parser) missing(required string) error {
	return diag.MissingToken(p.part(p.tok), required, p.tok)
}

func (p *Parser) invalid(tok token.Token, format string, args ...interface{}) error {
	return diag.InvalidStructure(p.part(tok), fmt.Sprintf(format, args...), tok.Span.Start)
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.invalid(p.tok, "schema nesting exceeds %d levels", p.maxDepth)
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// checkpoint captures the parser and lexer so a failed attempt can be undone.
type checkpoint struct {
	state   lexer.State
	tok     token.Token
	prevEnd int
	depth   int
}

func (p *Parser) save() checkpoint {
	return checkpoint{state: p.lexer.Save(), tok: p.tok, prevEnd: p.prevEnd, depth: p.depth}
}

func (p *Parser) restore(c checkpoint) {
	p.lexer.Restore(c.state)
	p.tok = c.tok
	p.prevEnd = c.prevEnd
	p.depth = c.depth
}

func (p *Parser) parseBinary() (*BinarySchemaNode, error) {
	start := p.tok.Span.Start
	if err := p.next(); err != nil {
		return nil, err
	}
	name, err := p.word("schema name")
	if err != nil {
		return nil, err
	}
	node := &BinarySchemaNode{Name: name.Value}
	if p.tok.Is(token.Less) {
		if node.TypeParams, err = p.parseTypeParams(); err != nil {
			return nil, err
		}
	}
	if node.Extends, err = p.parseExtends(); err != nil {
		return nil, err
	}
	if node.Fields, err = p.parseFieldBlock(); err != nil {
		return nil, err
	}
	node.Location = token.NewSpan(start, p.tok.Span.End())
	return node, nil
}

func (p *Parser) parseExtends() (string, error) {
	if !p.tok.Is(token.Extends) {
		return "", nil
	}
	if err := p.next(); err != nil {
		return "", err
	}
	base, err := p.word("base schema name")
	return base.Value, err
}

// parseTypeParams parses <T, U>.
func (p *Parser) parseTypeParams() ([]string, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	var params []string
	seen := make(map[string]bool)
	for {
		tok, err := p.word("type parameter")
		if err != nil {
			return nil, err
		}
		key := strings.ToLower(tok.Value)
		if seen[key] {
			return nil, p.invalid(tok, "duplicate type parameter '%s'", tok.Value)
		}
		seen[key] = true
		params = append(params, tok.Value)
		if !p.tok.Is(token.Comma) {
			break
		}
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	return params, p.closeAngle()
}

// closeAngle consumes the '>' closing a generic list. A '>>' token closes two
// nested lists, so only its first half is consumed here.
func (p *Parser) closeAngle() error {
	switch p.tok.Type {
	case token.Greater:
		return p.next()
	case token.ShiftRight:
		at := p.tok.Span.Start + 1
		p.prevEnd = at
		p.tok = token.Token{Type: token.Greater, Value: ">", Raw: ">", Span: token.NewSpan(at, at+1)}
		return nil
	}
	return p.missing(">")
}

// parseFieldBlock parses { field [,] ... } and stops on the closing brace
// without consuming it.
func (p *Parser) parseFieldBlock() ([]Field, error) {
	if err := p.expect(token.LBrace, "{"); err != nil {
		return nil, err
	}
	var fields []Field
	seen := make(map[string]bool)
	for !p.tok.Is(token.RBrace) {
		if p.tok.Is(token.EOF) {
			return nil, p.missing("}")
		}
		if p.tok.Is(token.Comma) {
			return nil, p.invalid(p.tok, "unexpected ',' in field list")
		}
		nameTok := p.tok
		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		if key := strings.ToLower(field.FieldName()); key != "_" {
			if seen[key] {
				return nil, p.invalid(nameTok, "duplicate field '%s'", field.FieldName())
			}
			seen[key] = true
		}
		fields = append(fields, field)
		if err := p.fieldSeparator(); err != nil {
			return nil, err
		}
	}
	return fields, nil
}

// fieldSeparator consumes an optional ',' and checks that a field or the
// closing brace follows.
func (p *Parser) fieldSeparator() error {
	switch {
	case p.tok.Is(token.Comma):
		return p.next()
	case p.tok.Is(token.RBrace), p.tok.IsWord():
		return nil
	case p.tok.Is(token.EOF):
		return p.missing("}")
	}
	return p.unexpected(",", "}")
}

func (p *Parser) parseField() (Field, error) {
	start := p.tok.Span.Start
	name, err := p.word("field name")
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.Colon, ":"); err != nil {
		return nil, err
	}

	var typ TypeNode
	switch {
	case startsType(p.tok):
		if typ, err = p.parseType(); err != nil {
			return nil, err
		}
	case p.tok.Is(token.Identifier):
		if typ, err = p.tryType(); err != nil {
			return nil, err
		}
	case !startsExpression(p.tok):
		return nil, p.unexpected("type", "expression")
	}

	if typ == nil {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ComputedFieldNode{Pos: ast.At(p.spanFrom(start)), Name: name.Value, Expr: expr}, nil
	}

	field := &FieldDefinitionNode{Name: name.Value, Type: typ}
	for {
		switch {
		case p.tok.Is(token.Check) && field.Check == nil:
			if field.Check, err = p.clauseExpression("check"); err != nil {
				return nil, err
			}
			if _, err := field.CheckCondition(); err != nil {
				return nil, p.invalid(p.tok, "%v", err)
			}
			continue
		case p.tok.Is(token.At) && field.At == nil:
			if field.At, err = p.clauseExpression("at"); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	field.Location = p.spanFrom(start)
	return field, nil
}

func (p *Parser) clauseExpression(clause string) (ast.Node, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	if !startsExpression(p.tok) {
		return nil, p.invalid(p.tok, "%s requires an expression", strings.ToUpper(clause))
	}
	return p.parseExpression()
}

// tryType parses a type annotation that starts with a name. If the parse
// fails or the annotation is not followed by the end of the field, the
// parser rewinds and the field is read as a computed expression.
func (p *Parser) tryType() (TypeNode, error) {
	c := p.save()
	typ, err := p.parseType()
	if err == nil {
		end, peekErr := p.atFieldEnd()
		if peekErr == nil && end {
			return typ, nil
		}
	} else if isEndiannessError(err) {
		return nil, err
	}
	p.restore(c)
	return nil, nil
}

// isEndiannessError reports whether err is the missing le/be error, which no
// expression reading of the field could avoid.
func isEndiannessError(err error) bool {
	var se *diag.SyntaxError
	if !errors.As(err, &se) || se.Kind != diag.KindMissingToken {
		return false
	}
	return len(se.ExpectedTokens) == 2 && se.ExpectedTokens[0] == "le" && se.ExpectedTokens[1] == "be"
}

func (p *Parser) atFieldEnd() (bool, error) {
	switch p.tok.Type {
	case token.Comma, token.RBrace, token.Check, token.At, token.EOF:
		return true, nil
	}
	if !p.tok.IsWord() {
		return false, nil
	}
	following, err := p.peek()
	if err != nil {
		return false, err
	}
	return following.Is(token.Colon), nil
}

func startsType(tok token.Token) bool {
	switch tok.Type {
	case token.ByteType, token.SByteType, token.ShortType, token.UShortType, token.IntType,
		token.UIntType, token.LongType, token.ULongType, token.FloatType, token.DoubleType,
		token.Bits, token.Align, token.StringType, token.LBrace:
		return true
	}
	return false
}

func (p *Parser) parseType() (TypeNode, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	start := p.tok.Span.Start
	var (
		typ TypeNode
		err error
	)
	switch p.tok.Type {
	case token.ByteType:
		if typ, err = p.parseByte(); err != nil {
			return nil, err
		}
	case token.SByteType, token.ShortType, token.UShortType, token.IntType, token.UIntType,
		token.LongType, token.ULongType, token.FloatType, token.DoubleType:
		if typ, err = p.parsePrimitive(); err != nil {
			return nil, err
		}
	case token.Bits:
		width, err := p.parseWidth("bits", 1, 64)
		if err != nil {
			return nil, err
		}
		typ = &BitsType{Pos: ast.At(p.spanFrom(start)), Width: width}
	case token.Align:
		width, err := p.parseWidth("align", 1, 1<<16)
		if err != nil {
			return nil, err
		}
		typ = &AlignType{Pos: ast.At(p.spanFrom(start)), Bits: width}
	case token.StringType:
		if typ, err = p.parseString(); err != nil {
			return nil, err
		}
	case token.LBrace:
		fields, err := p.parseFieldBlock()
		if err != nil {
			return nil, err
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		typ = &InlineSchemaType{Pos: ast.At(p.spanFrom(start)), Fields: fields}
	case token.Identifier:
		if typ, err = p.parseReference(); err != nil {
			return nil, err
		}
	default:
		return nil, p.unexpected("type")
	}

	for p.tok.Is(token.LBracket) {
		size, err := p.parseSize()
		if err != nil {
			return nil, err
		}
		typ = &ArrayType{Pos: ast.At(p.spanFrom(start)), Element: typ, Size: size}
	}
	if p.tok.Is(token.Repeat) {
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.expect(token.Until, "until"); err != nil {
			return nil, err
		}
		if !startsExpression(p.tok) {
			return nil, p.invalid(p.tok, "repeat until requires a condition")
		}
		until, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		rt := &RepeatUntilType{Pos: ast.At(p.spanFrom(start)), Element: typ, Until: until}
		if _, err := rt.UntilCondition(); err != nil {
			return nil, p.invalid(p.tok, "%v", err)
		}
		typ = rt
	}
	return typ, nil
}

// parseByte parses byte, byte le/be or byte[size].
func (p *Parser) parseByte() (TypeNode, error) {
	start := p.tok.Span.Start
	peeked, err := p.peek()
	if err != nil {
		return nil, err
	}
	if !peeked.Is(token.LBracket) {
		return p.parsePrimitive()
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	size, err := p.parseSize()
	if err != nil {
		return nil, err
	}
	return &ByteArrayType{Pos: ast.At(p.spanFrom(start)), Size: size}, nil
}

func (p *Parser) parsePrimitive() (TypeNode, error) {
	kw := p.tok
	if err := p.next(); err != nil {
		return nil, err
	}
	name := strings.ToLower(kw.Value)
	node := &PrimitiveType{Name: name}
	switch p.tok.Type {
	case token.LittleEndian:
		node.Endian = LittleEndian
	case token.BigEndian:
		node.Endian = BigEndian
	}
	if node.Endian != NoEndian {
		if err := p.next(); err != nil {
			return nil, err
		}
	} else if node.Bits() > 8 {
		e := diag.WithSuggestions(
			fmt.Sprintf("Type '%s' requires an endianness suffix", name),
			p.part(p.tok), p.tok.Span.Start,
			name+" le", name+" be",
		)
		e.Kind = diag.KindMissingToken
		e.ExpectedTokens = []string{"le", "be"}
		e.ActualToken = p.tok.Display()
		return nil, e
	}
	node.Location = p.spanFrom(kw.Span.Start)
	return node, nil
}

// parseSize parses [expression].
func (p *Parser) parseSize() (ast.Node, error) {
	if err := p.expect(token.LBracket, "["); err != nil {
		return nil, err
	}
	if !startsExpression(p.tok) {
		return nil, p.invalid(p.tok, "size expression required")
	}
	size, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return size, p.expect(token.RBracket, "]")
}

// parseWidth parses kw[n] where n folds to a constant in [lo, hi].
func (p *Parser) parseWidth(kw string, lo, hi int64) (int, error) {
	if err := p.next(); err != nil {
		return 0, err
	}
	open := p.tok
	size, err := p.parseSize()
	if err != nil {
		return 0, err
	}
	n, ok := condition.ConstInt(size)
	if !ok || n < lo || n > hi {
		return 0, p.invalid(open, "%s width must be a constant between %d and %d", kw, lo, hi)
	}
	return int(n), nil
}

var stringModifiers = map[token.TokenType]string{
	token.Trim:     "trim",
	token.LTrim:    "ltrim",
	token.RTrim:    "rtrim",
	token.NullTerm: "nullterm",
}

// parseString parses string[size] encoding [modifiers] [as TextSchema].
func (p *Parser) parseString() (TypeNode, error) {
	start := p.tok.Span.Start
	if err := p.next(); err != nil {
		return nil, err
	}
	size, err := p.parseSize()
	if err != nil {
		return nil, err
	}
	enc := p.tok
	if !enc.Is(token.Identifier) || !knownEncoding(enc.Value) {
		return nil, diag.UnexpectedToken(p.part(enc), enc, []string{"encoding"}, Encodings)
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	node := &StringType{Size: size, Encoding: strings.ToLower(enc.Value)}
	for {
		m, ok := stringModifiers[p.tok.Type]
		if !ok {
			break
		}
		if node.HasModifier(m) {
			return nil, p.invalid(p.tok, "duplicate string modifier '%s'", m)
		}
		node.Modifiers = append(node.Modifiers, m)
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	if p.tok.Is(token.As) {
		if err := p.next(); err != nil {
			return nil, err
		}
		as, err := p.word("text schema name")
		if err != nil {
			return nil, err
		}
		node.As = as.Value
	}
	node.Location = p.spanFrom(start)
	return node, nil
}

func knownEncoding(name string) bool {
	for _, e := range Encodings {
		if strings.EqualFold(e, name) {
			return true
		}
	}
	return false
}

// parseReference parses Name or Name<Arg, ...>.
func (p *Parser) parseReference() (TypeNode, error) {
	start := p.tok.Span.Start
	name := p.tok
	if err := p.next(); err != nil {
		return nil, err
	}
	node := &ReferenceType{Name: name.Value}
	if p.tok.Is(token.Less) {
		if err := p.next(); err != nil {
			return nil, err
		}
		for {
			arg, err := p.parseType()
			if err != nil {
				return nil, err
			}
			node.Args = append(node.Args, arg)
			if !p.tok.Is(token.Comma) {
				break
			}
			if err := p.next(); err != nil {
				return nil, err
			}
		}
		if err := p.closeAngle(); err != nil {
			return nil, err
		}
	}
	node.Location = p.spanFrom(start)
	return node, nil
}
