/*
 * Copyright (c) 2022-2026, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package schema

import (
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/dburkart/lookahead/pkg/common/parse"
)

// Scanner splits schema source into tokens. It is a one-shot producer: each
// call to Next returns the following token until the input runs out.
type Scanner struct {
	Input string
	Start int
	Pos   int

	// 1-based line and rune column of Pos
	Line   int
	Column int
}

// MatchKey returns the length of the schema key
//
// Grammar:
//
//	key = DQUOTE 1*( ALPHA / DIGIT / "_" / "-" ) DQUOTE
func (s *Scanner) MatchKey() int {
	pos := s.Pos
	r, width := utf8.DecodeRuneInString(s.Input[pos:])

	if r != '"' && r != '\'' {
		return 0
	}

	matchRune := r

	pos += width
	r, width = utf8.DecodeRuneInString(s.Input[pos:])

	for r != matchRune {
		if pos >= len(s.Input) {
			return 0
		}

		if !unicode.IsLetter(r) && !unicode.IsDigit(r) &&
			r != '_' && r != '-' {
			return 0
		}

		pos += width
		r, width = utf8.DecodeRuneInString(s.Input[pos:])
	}

	// Empty keys are not allowed
	if pos == s.Pos+1 {
		return 0
	}

	pos += width

	return pos - s.Pos
}

// MatchWord returns the length of a type name or identifier
//
// Grammar:
//
//	word = ( ALPHA / "_" ) *( ALPHA / DIGIT / "_" )
func (s *Scanner) MatchWord() int {
	r, width := utf8.DecodeRuneInString(s.Input[s.Pos:])
	if !unicode.IsLetter(r) && r != '_' {
		return 0
	}

	size := 0
	for unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
		size += width
		r, width = utf8.DecodeRuneInString(s.Input[s.Pos+size:])
	}

	return size
}

func (s *Scanner) MatchNumber() int {
	r, width := utf8.DecodeRuneInString(s.Input[s.Pos:])
	size := 0

	for i := s.Pos; unicode.IsDigit(r); {
		size += width
		i += width
		r, width = utf8.DecodeRuneInString(s.Input[i:])
	}

	return size
}

// advance moves Pos forward by n bytes, keeping Line and Column in step.
func (s *Scanner) advance(n int) {
	for _, r := range s.Input[s.Pos : s.Pos+n] {
		if r == '\n' {
			s.Line++
			s.Column = 1
		} else {
			s.Column++
		}
	}
	s.Pos += n
}

// skipBlank moves past whitespace and '#' comments.
func (s *Scanner) skipBlank() {
	for s.Pos < len(s.Input) {
		r, width := utf8.DecodeRuneInString(s.Input[s.Pos:])

		switch {
		case r == '#':
			for s.Pos < len(s.Input) && s.Input[s.Pos] != '\n' {
				_, width = utf8.DecodeRuneInString(s.Input[s.Pos:])
				s.advance(width)
			}
		case unicode.IsSpace(r):
			s.advance(width)
		default:
			return
		}
	}
}

// Emit the next Token found on Scanner.Input. Once the input is exhausted
// every call returns a TOK_EOF token.
func (s *Scanner) Emit() parse.Token {
	var t parse.Token

	if s.Line == 0 {
		s.Line, s.Column = 1, 1
	}

	s.skipBlank()
	s.Start = s.Pos
	start := parse.Position{Line: s.Line, Column: s.Column}

	if s.Pos >= len(s.Input) {
		t.Type = TOK_EOF
		t.Location = parse.Location{Start: s.Pos, End: s.Pos}
		t.Span = parse.Span{Start: start}
		return t
	}

	r, width := utf8.DecodeRuneInString(s.Input[s.Pos:])
	skip := 0

	switch {
	case r == '{':
		t.Type = TOK_CURLY_O
		skip = width
	case r == '}':
		t.Type = TOK_CURLY_X
		skip = width
	case r == '[':
		t.Type = TOK_BRACKET_O
		skip = width
	case r == ']':
		t.Type = TOK_BRACKET_X
		skip = width
	case r == ':':
		t.Type = TOK_COLON
		skip = width
	case r == ',':
		t.Type = TOK_COMMA
		skip = width
	case r == '=':
		t.Type = TOK_EQUALS
		skip = width
	case unicode.IsDigit(r):
		t.Type = TOK_NUMBER
		skip = s.MatchNumber()
	case r == '"' || r == '\'':
		t.Type = TOK_KEY
		skip = s.MatchKey()
	case unicode.IsLetter(r) || r == '_':
		skip = s.MatchWord()
		if IsTypeName(s.Input[s.Pos : s.Pos+skip]) {
			t.Type = TOK_TYPE
		} else {
			t.Type = TOK_IDENTIFIER
		}
	}

	if skip == 0 {
		t.Type = TOK_INVALID
		skip = s.SkipToBoundary(isDelimiter)
		if skip == 0 {
			skip = width
		}
	}

	s.advance(skip)

	t.Lexeme = s.Input[s.Start:s.Pos]
	t.Location = parse.Location{Start: s.Start, End: s.Pos}

	// Tokens never contain a newline, so the last rune is on the start line.
	t.Span = parse.Span{
		Start: start,
		End:   parse.Position{Line: start.Line, Column: s.Column - 1},
	}
	s.Start = s.Pos

	return t
}

// Next returns the next token, or io.EOF once the input is exhausted.
func (s *Scanner) Next() (parse.Token, error) {
	t := s.Emit()
	if t.Type == TOK_EOF {
		return t, io.EOF
	}
	return t, nil
}

type boundaryFunc func(rune) bool

func isDelimiter(r rune) bool {
	return unicode.IsSpace(r) || r == ':' || r == ',' || r == '"' || r == '}' ||
		r == '=' || r == ']'
}

// SkipToBoundary returns the number of bytes until the next delimiter.
// This is useful for skipping over invalid tokens.
func (s *Scanner) SkipToBoundary(boundary boundaryFunc) int {
	r, width := utf8.DecodeRuneInString(s.Input[s.Pos:])
	size := 0

	for !boundary(r) && s.Pos+size < len(s.Input) {
		size += width
		r, width = utf8.DecodeRuneInString(s.Input[s.Pos+size:])
	}

	return size
}
