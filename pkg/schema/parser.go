/*
 * Copyright (c) 2022-2026, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package schema

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/dburkart/lookahead/pkg/common/parse"
	"github.com/dburkart/lookahead/pkg/cursor"
	"github.com/pkg/errors"
)

// Mode selects the cursor a Parser reads its tokens through.
type Mode string

const (
	// ModeStream pulls tokens from the scanner as the parser needs them.
	ModeStream Mode = "stream"
	// ModeList scans the whole input up front.
	ModeList Mode = "list"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeStream, ModeList:
		return Mode(s), nil
	}
	return "", errors.Errorf("unknown cursor mode '%s' (expected stream or list)", s)
}

// errNoMatch rolls back a production that did not apply.
var errNoMatch = errors.New("no match")

// Parse a single schema
func Parse(s string) (Object, error) {
	p, err := NewParser(s, ModeList)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// ParseDocument parses a sequence of declarations and schemas, reading tokens
// through a cursor of the given mode.
func ParseDocument(s string, mode Mode, opts ...cursor.Option) (*Document, error) {
	p, err := NewParser(s, mode, opts...)
	if err != nil {
		return nil, err
	}
	return p.ParseDocument()
}

type Parser struct {
	Input  string
	Cursor cursor.Cursor[parse.Token]

	// Most recently consumed token
	last    parse.Token
	symbols map[string]Object
}

func NewParser(input string, mode Mode, opts ...cursor.Option) (*Parser, error) {
	c, err := NewCursor(input, mode, opts...)
	if err != nil {
		return nil, err
	}

	return &Parser{
		Input:   input,
		Cursor:  c,
		symbols: map[string]Object{},
	}, nil
}

// NewCursor returns a cursor over the tokens of input. Looking past the end
// yields a TOK_EOF token positioned just after the last character.
func NewCursor(input string, mode Mode, opts ...cursor.Option) (cursor.Cursor[parse.Token], error) {
	scanner := &Scanner{Input: input}

	var c cursor.Cursor[parse.Token]
	switch mode {
	case ModeStream:
		c = cursor.NewStream[parse.Token](scanner, opts...)
	case ModeList:
		l, err := cursor.Collect[parse.Token](scanner, opts...)
		if err != nil {
			return nil, errors.Wrap(err, "scanning schema")
		}
		c = l
	default:
		return nil, errors.Errorf("unknown cursor mode '%s'", mode)
	}

	c.SetDefault(eofToken(input))

	return c, nil
}

// eofToken sits just past the last character of the input.
func eofToken(input string) parse.Token {
	lines := parse.Lines(input)
	last := lines[len(lines)-1]

	return parse.Token{
		Type:     TOK_EOF,
		Location: parse.Location{Start: len(input), End: len(input)},
		Span: parse.Span{Start: parse.Position{
			Line:   len(lines),
			Column: utf8.RuneCountInString(last) + 1,
		}},
	}
}

// sourceFailure carries a token producer error out of a production.
type sourceFailure struct {
	err error
}

// recoverSyntaxError turns a parse.SyntaxError or sourceFailure panic into an
// error.
func (p *Parser) recoverSyntaxError(err *error) {
	if e := recover(); e != nil {
		switch e := e.(type) {
		case parse.SyntaxError:
			*err = errors.New(e.FormatError(p.Input))
		case sourceFailure:
			*err = errors.Wrap(e.err, "reading schema tokens")
		default:
			panic(e)
		}
	}
}

// fail reports a syntax error at tok, unless the producer failed first and
// tok is the EOF stand-in.
func (p *Parser) fail(tok parse.Token, format string, args ...any) {
	if err := p.Cursor.Err(); err != nil {
		panic(sourceFailure{err})
	}
	panic(parse.NewSyntaxError(tok, fmt.Sprintf(format, args...)))
}

// Parse a single schema, which must make up the whole input.
func (p *Parser) Parse() (schema Object, err error) {
	defer p.recoverSyntaxError(&err)

	schema = p.schema()
	if schema == nil {
		p.fail(p.Cursor.Peek(), "Error: Unrecognized schema")
	}

	if tok := p.Cursor.Peek(); tok.Type != TOK_EOF {
		p.fail(tok, "Error: Schema not valid, starting here")
	}

	if e := p.Cursor.Err(); e != nil {
		return nil, errors.Wrap(e, "reading schema tokens")
	}

	return
}

// ParseDocument parses every entry in the input.
//
// Grammar:
//
//	document    = *( declaration / schema )
//	declaration = identifier "=" schema
func (p *Parser) ParseDocument() (doc *Document, err error) {
	defer p.recoverSyntaxError(&err)

	doc = &Document{Input: p.Input}

	for p.Cursor.Peek().Type != TOK_EOF {
		doc.Entries = append(doc.Entries, p.entry())
	}

	// A failed producer also reads as TOK_EOF
	if e := p.Cursor.Err(); e != nil {
		return doc, errors.Wrap(e, "reading schema tokens")
	}

	return
}

// next consumes a token. Past the end of the input it returns the EOF
// token rather than failing, so productions can report what they found.
func (p *Parser) next() parse.Token {
	tok, err := p.Cursor.Next()
	if err != nil {
		if !errors.Is(err, cursor.ErrExhausted) {
			panic(sourceFailure{err})
		}
		return p.Cursor.Look(0)
	}

	p.last = tok
	return tok
}

// attempt runs production in a transaction, rewinding the cursor when the
// production returns nil.
func (p *Parser) attempt(production func() Object) Object {
	var obj Object

	err := cursor.Try(p.Cursor, func() error {
		obj = production()
		if obj == nil {
			return errNoMatch
		}
		return nil
	})
	if err != nil {
		return nil
	}

	return obj
}

func (p *Parser) entry() Entry {
	if e, ok := p.declaration(); ok {
		return e
	}

	start := p.Cursor.Peek()

	obj := p.schema()
	if obj == nil {
		p.fail(start, "Error: unexpected token '%s', expected a schema or declaration", start.Lexeme)
	}

	return Entry{Object: obj, Span: start.Span.Join(p.last.Span)}
}

// declaration parses `name = schema`. An identifier that is not followed by
// "=" is left for the schema production to read as a reference.
func (p *Parser) declaration() (Entry, bool) {
	var e Entry

	err := cursor.Try(p.Cursor, func() error {
		name := p.next()
		if name.Type != TOK_IDENTIFIER {
			return errNoMatch
		}

		if p.next().Type != TOK_EQUALS {
			return errNoMatch
		}

		if _, ok := p.symbols[name.Lexeme]; ok {
			p.fail(name, "Error: schema '%s' is already declared", name.Lexeme)
		}

		obj := p.schema()
		if obj == nil {
			tok := p.Cursor.Peek()
			p.fail(tok, "Error: unexpected token '%s', expected a schema after '='", tok.Lexeme)
		}

		e = Entry{
			Name:     name.Lexeme,
			NameSpan: name.Span,
			Object:   obj,
			Span:     name.Span.Join(p.last.Span),
		}
		return nil
	})
	if err != nil {
		return e, false
	}

	p.symbols[e.Name] = e.Object
	return e, true
}

// schema returns the first production that matches
//
// Grammar:
//
//	schema = type / array / composite / reference
func (p *Parser) schema() Object {
	for _, production := range []func() Object{p.dType, p.array, p.composite, p.reference} {
		if obj := p.attempt(production); obj != nil {
			return obj
		}
	}

	return nil
}

func (p *Parser) dType() Object {
	tok := p.next()
	if tok.Type != TOK_TYPE {
		return nil
	}

	return TypeFromString(tok.Lexeme)
}

// array returns an Array
//
// Grammar:
//
//	array = "[" number "]" type
func (p *Parser) array() Object {
	var array Array
	var err error

	tok := p.next()
	if tok.Type != TOK_BRACKET_O {
		return nil
	}

	tok = p.next()
	if tok.Type != TOK_NUMBER {
		p.fail(tok, "Error: unexpected token '%s', expected a number indicating array size", tok.Lexeme)
	}

	array.Length, err = strconv.Atoi(tok.Lexeme)
	if err != nil {
		p.fail(tok, "Error: array size '%s' is out of range", tok.Lexeme)
	}

	tok = p.next()
	if tok.Type != TOK_BRACKET_X {
		p.fail(tok, "Error: unexpected token '%s', expected a ']'", tok.Lexeme)
	}

	tok = p.Cursor.Peek()
	obj := p.attempt(p.dType)
	if obj == nil {
		p.fail(tok, "Error: unexpected token '%s', expected a valid type", tok.Lexeme)
	}

	dType := obj.(*Type)
	if dType.Variable() {
		p.fail(tok, "Error: variable-length type '%s' not valid in array", dType.Name)
	}

	array.Type = *dType

	return &array
}

// composite returns a Composite
//
// Grammar:
//
//	composite = "{" *( key ":" schema "," ) [ key ":" schema ] "}"
func (p *Parser) composite() Object {
	var composite Composite

	tok := p.next()
	if tok.Type != TOK_CURLY_O {
		return nil
	}

	tok = p.next()

	// Iterate over the keys and values of our map
	for tok.Type != TOK_CURLY_X {
		if tok.Type != TOK_KEY {
			p.fail(tok, "Error: unexpected token '%s', expected a map key (\"...\")", tok.Lexeme)
		}

		unquotedKey, err := strconv.Unquote(tok.Lexeme)
		if err != nil {
			unquotedKey = tok.Lexeme[1 : len(tok.Lexeme)-1]
		}

		colon := p.next()
		if colon.Type != TOK_COLON {
			p.fail(colon, "Error: unexpected token '%s', expected ':'", colon.Lexeme)
		}

		val := p.schema()
		if val == nil {
			p.fail(p.Cursor.Peek(), "Error: expected a valid type or array as value for key %s", tok.Lexeme)
		}

		composite.Insert(unquotedKey, val)

		// Finally, every line must have a comma
		tok = p.next()

		// Our composite could be over now
		if tok.Type == TOK_CURLY_X {
			break
		}

		if tok.Type != TOK_COMMA {
			p.fail(tok, "Error: unexpected token '%s', expected ','", tok.Lexeme)
		}

		// Pull off token for the next iteration
		tok = p.next()
	}

	return &composite
}

// reference resolves an identifier to an earlier declaration
//
// Grammar:
//
//	reference = identifier
func (p *Parser) reference() Object {
	tok := p.next()
	if tok.Type != TOK_IDENTIFIER {
		return nil
	}

	obj, ok := p.symbols[tok.Lexeme]
	if !ok {
		p.fail(tok, "Error: undefined schema '%s'", tok.Lexeme)
	}

	return obj
}
