/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 * Copyright (c) 2026, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"strconv"
	"strings"

	"github.com/dburkart/lookahead/pkg/common/parse"
	"github.com/pkg/errors"
)

const (
	CommandNext    = "NEXT"
	CommandLook    = "LOOK"
	CommandLast    = "LAST"
	CommandPush    = "PUSH"
	CommandPop     = "POP"
	CommandDepth   = "DEPTH"
	CommandDefault = "DEFAULT"
	CommandSpan    = "SPAN"
)

// Command is one parsed line of REPL input.
type Command struct {
	Name string

	// Count is the repeat count for NEXT and the lookahead distance for LOOK.
	Count int
	// Reset is set by "pop reset"
	Reset bool
	// Lexeme is the text of the default token for DEFAULT
	Lexeme string
	// Span is the range for SPAN
	Span parse.Span
}

var ErrUnknownCommand = errors.New("unknown command")

// ParseCommand parses input from the command line
//
// This function assumes there is no '\n'
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, errors.New("empty command")
	}

	cmd := Command{Name: strings.ToUpper(fields[0])}
	args := fields[1:]

	switch cmd.Name {
	case CommandNext:
		cmd.Count = 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return cmd, errors.Errorf("next: invalid count '%s'", args[0])
			}
			cmd.Count = n
		}
	case CommandLook:
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 {
				return cmd, errors.Errorf("look: invalid distance '%s'", args[0])
			}
			cmd.Count = n
		}
	case CommandPop:
		if len(args) != 1 {
			return cmd, errors.New("pop: expected 'reset' or 'commit'")
		}
		switch strings.ToLower(args[0]) {
		case "reset", "rollback":
			cmd.Reset = true
		case "commit":
		default:
			return cmd, errors.Errorf("pop: expected 'reset' or 'commit', got '%s'", args[0])
		}
	case CommandDefault:
		if len(args) == 0 {
			return cmd, errors.New("default: expected a lexeme")
		}
		cmd.Lexeme = strings.Join(args, " ")
	case CommandSpan:
		if len(args) < 1 || len(args) > 2 {
			return cmd, errors.New("span: expected START [END] as LINE:COLUMN")
		}
		for i, arg := range args {
			p, err := ParsePosition(arg)
			if err != nil {
				return cmd, errors.Wrap(err, "span")
			}
			if i == 0 {
				cmd.Span.Start = p
			} else {
				cmd.Span.End = p
			}
		}
	case CommandLast, CommandPush, CommandDepth:
	default:
		return cmd, errors.Wrapf(ErrUnknownCommand, "'%s'", fields[0])
	}

	return cmd, nil
}

// ParsePosition parses a LINE:COLUMN pair.
func ParsePosition(s string) (parse.Position, error) {
	line, column, ok := strings.Cut(s, ":")
	if !ok {
		return parse.Position{}, errors.Errorf("invalid position '%s', expected LINE:COLUMN", s)
	}

	l, err := strconv.Atoi(line)
	if err != nil || l < 1 {
		return parse.Position{}, errors.Errorf("invalid line in '%s'", s)
	}

	c, err := strconv.Atoi(column)
	if err != nil || c < 1 {
		return parse.Position{}, errors.Errorf("invalid column in '%s'", s)
	}

	return parse.Position{Line: l, Column: c}, nil
}
