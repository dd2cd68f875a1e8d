/*
 * Copyright (c) 2026, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"fmt"
	"strconv"

	"github.com/dburkart/lookahead/pkg/common/parse"
	"github.com/dburkart/lookahead/pkg/cursor"
	"github.com/pkg/errors"
)

// Table is a generic Printable result.
type Table struct {
	Header []string
	Rows   [][]string
}

func (t Table) Headers() []string {
	return t.Header
}

func (t Table) Values() [][]string {
	return t.Rows
}

var tokenHeader = []string{"type", "lexeme", "span", "source"}

// TokenTable renders tokens along with the text their spans select from
// lines.
func TokenTable(lines []string, tokens ...parse.Token) Table {
	t := Table{Header: tokenHeader}
	for _, tok := range tokens {
		t.Rows = append(t.Rows, TokenRow(lines, tok))
	}
	return t
}

func TokenRow(lines []string, tok parse.Token) []string {
	typ := "-"
	if tok.Type != nil {
		typ = tok.Type.ToString()
	}

	source := ""
	if parse.CheckSpan(lines, tok.Span) == nil {
		source = parse.Extract(lines, tok.Span)
	}

	return []string{typ, tok.Lexeme, tok.Span.String(), source}
}

func message(key, value string) Table {
	return Table{Header: []string{key}, Rows: [][]string{{value}}}
}

// Session drives a token cursor interactively.
type Session struct {
	Cursor cursor.Cursor[parse.Token]
	Lines  []string
}

func NewSession(c cursor.Cursor[parse.Token], input string) *Session {
	return &Session{Cursor: c, Lines: parse.Lines(input)}
}

// Execute runs cmd against the cursor. Marker misuse is reported as an
// error rather than taking the session down.
func (s *Session) Execute(cmd Command) (Printable, error) {
	switch cmd.Name {
	case CommandNext:
		var tokens []parse.Token
		for i := 0; i < cmd.Count; i++ {
			tok, err := s.Cursor.Next()
			if errors.Is(err, cursor.ErrExhausted) {
				break
			}
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		}
		if len(tokens) == 0 {
			return nil, cursor.ErrExhausted
		}
		return TokenTable(s.Lines, tokens...), nil
	case CommandLook:
		return TokenTable(s.Lines, s.Cursor.Look(cmd.Count)), nil
	case CommandLast:
		tok, ok := s.Cursor.Last()
		if !ok {
			return message("last", "nothing read yet"), nil
		}
		return TokenTable(s.Lines, tok), nil
	case CommandPush:
		s.Cursor.PushMarker()
		return message("depth", strconv.Itoa(s.Cursor.Depth())), nil
	case CommandPop:
		if s.Cursor.Depth() == 0 {
			return nil, errors.Wrap(cursor.ErrUnbalancedMarker, "pop")
		}
		s.Cursor.PopMarker(cmd.Reset)
		return message("depth", strconv.Itoa(s.Cursor.Depth())), nil
	case CommandDepth:
		return message("depth", strconv.Itoa(s.Cursor.Depth())), nil
	case CommandDefault:
		s.Cursor.SetDefault(parse.Token{Lexeme: cmd.Lexeme})
		return message("default", cmd.Lexeme), nil
	case CommandSpan:
		if err := parse.CheckSpan(s.Lines, cmd.Span); err != nil {
			return nil, err
		}
		return message("source", parse.Extract(s.Lines, cmd.Span)), nil
	}

	return nil, errors.Wrapf(ErrUnknownCommand, "'%s'", cmd.Name)
}

// Run parses and executes one line of input.
func (s *Session) Run(line string) (Printable, error) {
	cmd, err := ParseCommand(line)
	if err != nil {
		return nil, err
	}
	return s.Execute(cmd)
}

func (s *Session) String() string {
	return fmt.Sprintf("session(depth=%d)", s.Cursor.Depth())
}
