/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2022-2026, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package inspect

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dburkart/lookahead/pkg/cursor"
	"github.com/dburkart/lookahead/pkg/repl"
	"github.com/dburkart/lookahead/pkg/schema"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Interactively step a cursor over the tokens of a schema file",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		log := viper.Get("logger").(zerolog.Logger)

		b, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrap(err, "reading schema file")
		}

		mode, err := schema.ParseMode(viper.GetString("lookahead.mode"))
		if err != nil {
			return err
		}

		c, err := schema.NewCursor(string(b), mode, cursor.WithObserver(cursor.LogObserver(log)))
		if err != nil {
			return err
		}

		session := repl.NewSession(c, string(b))
		writer := repl.NewOutputWriter(cmd.OutOrStdout(), viper.GetString("lookahead.output"))

		return readlinePrompt(log, session, writer)
	},
}

func init() {
	Command.Flags().String("history", "", "File to keep command history in")

	viper.BindPFlag("inspect.history", Command.Flags().Lookup("history"))
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func newCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("next"),
		readline.PcItem("look"),
		readline.PcItem("last"),
		readline.PcItem("push"),
		readline.PcItem("pop",
			readline.PcItem("reset"),
			readline.PcItem("commit"),
		),
		readline.PcItem("depth"),
		readline.PcItem("default"),
		readline.PcItem("span"),
		readline.PcItem("exit"),
	)
}

func readlinePrompt(log zerolog.Logger, session *repl.Session, writer repl.OutputWriter) error {
	completer := newCompleter()

	// Setup the readline executor
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          viper.GetString("inspect.prompt"),
		HistoryFile:     viper.GetString("inspect.history"),
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return errors.Wrap(err, "starting prompt")
	}
	defer rl.Close()

	// Handle input
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.ToUpper(line) == "HELP" {
			fmt.Fprintln(rl.Stdout(), "usage:")
			fmt.Fprintln(rl.Stdout(), completer.Tree("    "))
			continue
		}
		if strings.ToUpper(line) == "EXIT" {
			break
		}

		result, err := session.Run(line)
		if err != nil {
			log.Error().Err(err).Send()
			continue
		}

		if err := writer.Write(result); err != nil {
			log.Error().Err(err).Send()
		}
		fmt.Fprintln(rl.Stdout())
	}

	return nil
}
