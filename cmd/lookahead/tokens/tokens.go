/*
 * Copyright (c) 2026, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package tokens

import (
	"os"

	"github.com/dburkart/lookahead/pkg/common/parse"
	"github.com/dburkart/lookahead/pkg/cursor"
	"github.com/dburkart/lookahead/pkg/repl"
	"github.com/dburkart/lookahead/pkg/schema"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Print the tokens of a schema file along with the source each one covers",
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

		input := string(b)
		c, err := schema.NewCursor(input, mode, cursor.WithObserver(cursor.LogObserver(log)))
		if err != nil {
			return err
		}

		table := Table(parse.Lines(input), c)
		if err := c.Err(); err != nil {
			return err
		}

		log.Info().
			Str("file", args[0]).
			Str("mode", string(mode)).
			Msgf("%s tokens in %s", humanize.Comma(int64(len(table.Rows))), humanize.Bytes(uint64(len(b))))

		return repl.NewOutputWriter(cmd.OutOrStdout(), viper.GetString("lookahead.output")).Write(table)
	},
}

// Table drains c into a token table.
func Table(lines []string, c cursor.Cursor[parse.Token]) repl.Table {
	var toks []parse.Token
	for tok := range c.All() {
		toks = append(toks, tok)
	}
	return repl.TokenTable(lines, toks...)
}
