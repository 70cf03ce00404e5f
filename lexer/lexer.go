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

// Package lexer is the pull-based tokenizer shared by the query and schema
// grammars. A schema-context flag selects the keyword table; the caller sets
// it before entering a schema block and clears it on exit.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/rulego/sqlfront/token"
)

// Lexer produces one token per Next call. It is not safe for concurrent use.
type Lexer struct {
	input   string
	pos     int
	readPos int
	ch      byte

	factory token.Factory
	current token.Token

	// peeked is a buffered lookahead token scanned from peekFrom
	peeked   *token.Token
	peekFrom int
}

// State is a snapshot of the lexer cursor used for backtracking.
type State struct {
	offset  int
	current token.Token
	schema  bool
}

// New returns a lexer over input in query context.
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.seek(0)
	l.current = token.Token{Type: token.EOF, Span: token.EmptySpan}
	return l
}

// Input returns the text being tokenized.
func (l *Lexer) Input() string {
	return l.input
}

// Position returns the offset just past the current token.
func (l *Lexer) Position() int {
	if l.peeked != nil {
		return l.peekFrom
	}
	return l.pos
}

// Current returns the last token returned by Next.
func (l *Lexer) Current() token.Token {
	return l.current
}

// Next advances to the next token.
func (l *Lexer) Next() (token.Token, error) {
	if l.peeked != nil {
		l.current = *l.peeked
		l.peeked = nil
		return l.current, nil
	}
	tok, err := l.scan()
	if err != nil {
		return token.Token{}, err
	}
	l.current = tok
	return tok, nil
}

// Peek returns the token after Current without consuming it.
func (l *Lexer) Peek() (token.Token, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	from := l.pos
	tok, err := l.scan()
	if err != nil {
		l.seek(from)
		return token.Token{}, err
	}
	l.peeked = &tok
	l.peekFrom = from
	return tok, nil
}

// SchemaContext reports whether schema keywords are active.
func (l *Lexer) SchemaContext() bool {
	return l.factory.Schema
}

// SetSchemaContext switches keyword recognition. A buffered lookahead token
// was classified under the old mode, so it is dropped and re-scanned.
func (l *Lexer) SetSchemaContext(schema bool) {
	if l.factory.Schema == schema {
		return
	}
	l.dropPeek()
	l.factory.Schema = schema
}

// Save captures the cursor so a parser can try an alternative.
func (l *Lexer) Save() State {
	return State{offset: l.Position(), current: l.current, schema: l.factory.Schema}
}

// Restore rewinds to a state captured by Save.
func (l *Lexer) Restore(s State) {
	l.peeked = nil
	l.factory.Schema = s.schema
	l.current = s.current
	l.seek(s.offset)
}

// RestoreTo rewinds so that the next token scanned starts at offset, and sets
// current to tok. The parser uses it to re-enter a statement in another mode.
func (l *Lexer) RestoreTo(offset int, tok token.Token) {
	l.peeked = nil
	l.current = tok
	l.seek(offset)
}

func (l *Lexer) dropPeek() {
	if l.peeked != nil {
		l.seek(l.peekFrom)
		l.peeked = nil
	}
}

func (l *Lexer) seek(offset int) {
	l.readPos = offset
	l.readChar()
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.pos = len(l.input)
		l.readPos = len(l.input) + 1
		return
	}
	l.ch = l.input[l.readPos]
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) peekChar() byte {
	return l.charAt(l.pos + 1)
}

func (l *Lexer) charAt(i int) byte {
	if i < 0 || i >= len(l.input) {
		return 0
	}
	return l.input[i]
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) scan() (token.Token, error) {
	if err := l.skipTrivia(); err != nil {
		return token.Token{}, err
	}
	start := l.pos
	if l.eof() {
		return token.Token{Type: token.EOF, Span: token.NewSpan(start, start)}, nil
	}

	switch {
	case l.ch == '\'' || l.ch == '"':
		return l.readString(start)
	case isDigit(l.ch):
		return l.readNumber(start)
	case isLetter(l.ch):
		return l.readWord(start)
	}
	return l.readSymbol(start)
}

func (l *Lexer) make(class token.Class, start int) (token.Token, error) {
	tok, err := l.factory.Make(class, l.input[start:l.pos], token.NewSpan(start, l.pos))
	if err != nil {
		return token.Token{}, &LexerError{Message: err.Error(), Position: start}
	}
	return tok, nil
}

func (l *Lexer) skipTrivia() error {
	for !l.eof() {
		switch {
		case isSpace(l.ch):
			l.readChar()
		case l.ch == '-' && l.peekChar() == '-':
			for !l.eof() && l.ch != '\n' {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			start := l.pos
			end := strings.Index(l.input[l.pos+2:], "*/")
			if end < 0 {
				l.seek(len(l.input))
				return &LexerError{Message: "unterminated block comment", Position: start}
			}
			l.seek(l.pos + 2 + end + 2)
		default:
			return nil
		}
	}
	return nil
}

func (l *Lexer) readString(start int) (token.Token, error) {
	quote := l.ch
	l.readChar()
	for !l.eof() && l.ch != quote {
		if l.ch == '\\' {
			l.readChar()
			if l.eof() {
				break
			}
		}
		l.readChar()
	}
	if l.eof() {
		return token.Token{}, &LexerError{Message: "unterminated string literal", Position: start}
	}
	l.readChar()
	return l.make(token.ClassString, start)
}

// readNumber consumes a numeric lexeme including any radix prefix and
// trailing suffix letters; the factory validates the parts.
func (l *Lexer) readNumber(start int) (token.Token, error) {
	if l.ch == '0' && radixDigit(l.peekChar(), l.charAt(l.pos+2)) {
		l.readChar()
		l.readChar()
	} else {
		for isDigit(l.ch) {
			l.readChar()
		}
		if l.ch == '.' && isDigit(l.peekChar()) {
			l.readChar()
			for isDigit(l.ch) {
				l.readChar()
			}
		}
		if l.ch == 'e' || l.ch == 'E' {
			next := l.peekChar()
			if isDigit(next) || (next == '+' || next == '-') && isDigit(l.charAt(l.pos+2)) {
				l.readChar()
				l.readChar()
				for isDigit(l.ch) {
					l.readChar()
				}
			}
		}
	}
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.make(token.ClassNumber, start)
}

// radixDigit reports whether prefix letter p followed by c opens a prefixed literal.
func radixDigit(p, c byte) bool {
	switch p {
	case 'x', 'X':
		return isDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
	case 'b', 'B':
		return c == '0' || c == '1'
	case 'o', 'O':
		return c >= '0' && c <= '7'
	}
	return false
}

func (l *Lexer) readWord(start int) (token.Token, error) {
	l.readIdentifier()
	end := l.pos
	for _, phrase := range token.PhrasesFor(l.input[start:end], l.factory.Schema) {
		if stop, ok := l.matchPhrase(end, phrase.Words[1:]); ok {
			l.seek(stop)
			return l.make(token.ClassWord, start)
		}
	}
	return l.make(token.ClassWord, start)
}

// matchPhrase checks that words follow offset, each preceded by whitespace
// and ending at a word boundary. It does not move the cursor.
func (l *Lexer) matchPhrase(offset int, words []string) (int, bool) {
	i := offset
	for _, w := range words {
		j := i
		for j < len(l.input) && isSpace(l.input[j]) {
			j++
		}
		if j == i || j+len(w) > len(l.input) {
			return 0, false
		}
		if !strings.EqualFold(l.input[j:j+len(w)], w) {
			return 0, false
		}
		i = j + len(w)
		if c := l.charAt(i); isLetter(c) || isDigit(c) {
			return 0, false
		}
	}
	return i, true
}

func (l *Lexer) readIdentifier() {
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
}

func (l *Lexer) readSymbol(start int) (token.Token, error) {
	if two := l.input[start:min(start+2, len(l.input))]; len(two) == 2 {
		if _, ok := token.Symbol(two, l.factory.Schema); ok {
			l.readChar()
			l.readChar()
			return l.make(token.ClassSymbol, start)
		}
	}
	if _, ok := token.Symbol(string(l.ch), l.factory.Schema); ok {
		l.readChar()
		return l.make(token.ClassSymbol, start)
	}
	r, _ := utf8.DecodeRuneInString(l.input[start:])
	return token.Token{}, NewUnknownTokenError(r, start, l.input[start:])
}

func isLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

// Tokenize returns every token of input up to, not including, EOF.
func Tokenize(input string, schema bool) ([]token.Token, error) {
	l := New(input)
	l.SetSchemaContext(schema)
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		if tok.Type == token.EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}
