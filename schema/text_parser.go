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
	"regexp"
	"strings"

	"github.com/rulego/sqlfront/ast"
	"github.com/rulego/sqlfront/token"
)

var textModifiers = map[token.TokenType]string{
	token.Trim:  "trim",
	token.LTrim: "ltrim",
	token.RTrim: "rtrim",
}

func (p *Parser) parseText() (*TextSchemaNode, error) {
	start := p.tok.Span.Start
	if err := p.next(); err != nil {
		return nil, err
	}
	name, err := p.word("schema name")
	if err != nil {
		return nil, err
	}
	node := &TextSchemaNode{Name: name.Value}
	if node.Extends, err = p.parseExtends(); err != nil {
		return nil, err
	}
	if err := p.expect(token.LBrace, "{"); err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	for !p.tok.Is(token.RBrace) {
		if p.tok.Is(token.EOF) {
			return nil, p.missing("}")
		}
		if p.tok.Is(token.Comma) {
			return nil, p.invalid(p.tok, "unexpected ',' in field list")
		}
		nameTok := p.tok
		field, err := p.parseTextField()
		if err != nil {
			return nil, err
		}
		if !field.Discarded() {
			key := strings.ToLower(field.Name)
			if seen[key] {
				return nil, p.invalid(nameTok, "duplicate field '%s'", field.Name)
			}
			seen[key] = true
		}
		node.Fields = append(node.Fields, field)
		if err := p.fieldSeparator(); err != nil {
			return nil, err
		}
	}
	node.Location = token.NewSpan(start, p.tok.Span.End())
	return node, nil
}

// parseTextField parses name: [optional] kind [modifiers] [optional].
func (p *Parser) parseTextField() (*TextFieldNode, error) {
	start := p.tok.Span.Start
	name, err := p.word("field name")
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.Colon, ":"); err != nil {
		return nil, err
	}
	field := &TextFieldNode{Name: name.Value}
	if p.tok.Is(token.Optional) {
		field.Optional = true
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	if field.Kind, err = p.parseTextKind(); err != nil {
		return nil, err
	}
	for {
		m, ok := textModifiers[p.tok.Type]
		if !ok {
			break
		}
		for _, x := range field.Modifiers {
			if x == m {
				return nil, p.invalid(p.tok, "duplicate modifier '%s'", m)
			}
		}
		field.Modifiers = append(field.Modifiers, m)
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	if p.tok.Is(token.Optional) {
		field.Optional = true
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	field.Location = p.spanFrom(start)
	return field, nil
}

func (p *Parser) parseTextKind() (TextKind, error) {
	start := p.tok.Span.Start
	kw := p.tok
	switch kw.Type {
	case token.Pattern:
		if err := p.next(); err != nil {
			return nil, err
		}
		return p.parsePattern(start)
	case token.Literal, token.Until:
		if err := p.next(); err != nil {
			return nil, err
		}
		text, err := p.stringLiteral("string")
		if err != nil {
			return nil, err
		}
		if kw.Is(token.Literal) {
			return &LiteralKind{Pos: ast.At(p.spanFrom(start)), Text: text.Value}, nil
		}
		if text.Value == "" {
			return nil, p.invalid(text, "until delimiter must not be empty")
		}
		return &UntilKind{Pos: ast.At(p.spanFrom(start)), Delimiter: text.Value}, nil
	case token.Between:
		if err := p.next(); err != nil {
			return nil, err
		}
		open, err := p.stringLiteral("opening delimiter")
		if err != nil {
			return nil, err
		}
		closing, err := p.stringLiteral("closing delimiter")
		if err != nil {
			return nil, err
		}
		return &BetweenKind{Pos: ast.At(p.spanFrom(start)), Open: open.Value, Close: closing.Value}, nil
	case token.Chars:
		if err := p.next(); err != nil {
			return nil, err
		}
		count, err := p.parseSize()
		if err != nil {
			return nil, err
		}
		return &CharsKind{Pos: ast.At(p.spanFrom(start)), Count: count}, nil
	case token.TokenKind:
		return &TokenFieldKind{Pos: ast.At(kw.Span)}, p.next()
	case token.Rest:
		return &RestKind{Pos: ast.At(kw.Span)}, p.next()
	case token.Whitespace:
		if err := p.next(); err != nil {
			return nil, err
		}
		kind := &WhitespaceKind{Repeat: "+"}
		if p.tok.Is(token.Plus, token.Star, token.Question) {
			kind.Repeat = p.tok.Raw
			if err := p.next(); err != nil {
				return nil, err
			}
		}
		kind.Location = p.spanFrom(start)
		return kind, nil
	case token.Repeat:
		return p.parseRepeat(start)
	case token.Switch:
		return p.parseSwitch(start)
	}
	return nil, p.unexpected("pattern", "literal", "until", "between", "chars", "token", "rest",
		"whitespace", "repeat", "switch")
}

// parsePattern parses '<regex>' [capture (name, ...)] after the keyword.
func (p *Parser) parsePattern(start int) (TextKind, error) {
	tok, re, err := p.regex()
	if err != nil {
		return nil, err
	}
	kind := &PatternKind{Pattern: tok.Value}
	if p.tok.Is(token.Capture) {
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.expect(token.LParen, "("); err != nil {
			return nil, err
		}
		for {
			name, err := p.word("capture name")
			if err != nil {
				return nil, err
			}
			kind.Captures = append(kind.Captures, name.Value)
			if !p.tok.Is(token.Comma) {
				break
			}
			if err := p.next(); err != nil {
				return nil, err
			}
		}
		closing := p.tok
		if err := p.expect(token.RParen, ")"); err != nil {
			return nil, err
		}
		if len(kind.Captures) > re.NumSubexp() {
			return nil, p.invalid(closing, "pattern has %d groups but %d capture names", re.NumSubexp(), len(kind.Captures))
		}
	}
	kind.Location = p.spanFrom(start)
	return kind, nil
}

func (p *Parser) regex() (token.Token, *regexp.Regexp, error) {
	tok, err := p.stringLiteral("pattern string")
	if err != nil {
		return tok, nil, err
	}
	re, err := regexp.Compile(tok.Value)
	if err != nil {
		return tok, nil, p.invalid(tok, "invalid pattern %q: %v", tok.Value, err)
	}
	return tok, re, nil
}

// parseRepeat parses repeat Element [until '<delim>' | until end].
func (p *Parser) parseRepeat(start int) (TextKind, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	elem, err := p.word("element schema name")
	if err != nil {
		return nil, err
	}
	kind := &RepeatKind{Element: elem.Value, UntilEnd: true}
	if p.tok.Is(token.Until) {
		if err := p.next(); err != nil {
			return nil, err
		}
		switch {
		case p.tok.Is(token.End):
			if err := p.next(); err != nil {
				return nil, err
			}
		case p.tok.Is(token.String):
			kind.Until = p.tok.Value
			kind.UntilEnd = false
			if err := p.next(); err != nil {
				return nil, err
			}
		default:
			return nil, p.unexpected("string", "end")
		}
	}
	kind.Location = p.spanFrom(start)
	return kind, nil
}

// parseSwitch parses switch { pattern '<regex>' => Type, ..., _ => Type }.
func (p *Parser) parseSwitch(start int) (TextKind, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expect(token.LBrace, "{"); err != nil {
		return nil, err
	}
	kind := &SwitchKind{}
	for !p.tok.Is(token.RBrace) {
		if kind.Default != "" {
			return nil, p.invalid(p.tok, "'_' must be the last switch case")
		}
		switch {
		case p.tok.Is(token.Pattern):
			if err := p.next(); err != nil {
				return nil, err
			}
			pattern, _, err := p.regex()
			if err != nil {
				return nil, err
			}
			target, err := p.switchTarget()
			if err != nil {
				return nil, err
			}
			kind.Cases = append(kind.Cases, SwitchCase{Pattern: pattern.Value, Type: target})
		case p.tok.Is(token.Identifier) && p.tok.Value == "_":
			if err := p.next(); err != nil {
				return nil, err
			}
			target, err := p.switchTarget()
			if err != nil {
				return nil, err
			}
			kind.Default = target
		case p.tok.Is(token.EOF):
			return nil, p.missing("}")
		default:
			return nil, p.unexpected("pattern", "_", "}")
		}
		if p.tok.Is(token.Comma) {
			if err := p.next(); err != nil {
				return nil, err
			}
		}
	}
	if len(kind.Cases) == 0 && kind.Default == "" {
		return nil, p.invalid(p.tok, "switch requires at least one case")
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	kind.Location = p.spanFrom(start)
	return kind, nil
}

func (p *Parser) switchTarget() (string, error) {
	if err := p.expect(token.FatArrow, "=>"); err != nil {
		return "", err
	}
	target, err := p.word("schema name")
	return target.Value, err
}
