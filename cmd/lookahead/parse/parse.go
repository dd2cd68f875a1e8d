/*
 * Copyright (c) 2026, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parse

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dburkart/lookahead/pkg/cursor"
	"github.com/dburkart/lookahead/pkg/metrics"
	"github.com/dburkart/lookahead/pkg/repl"
	"github.com/dburkart/lookahead/pkg/schema"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parse a schema document and print each entry with the source it came from",
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

		store := metrics.NewMetricsStore()
		observer := cursor.Observers(store.Observer(string(mode)), cursor.LogObserver(log))

		doc, err := schema.ParseDocument(string(b), mode, cursor.WithObserver(observer))
		if err != nil {
			// Syntax errors carry their own formatting
			cmd.PrintErr(err.Error())
			return errors.New("schema document is not valid")
		}

		log.Info().
			Str("file", args[0]).
			Str("mode", string(mode)).
			Msgf("parsed %s entries from %s", humanize.Comma(int64(len(doc.Entries))), humanize.Bytes(uint64(len(b))))

		if path := viper.GetString("parse.metrics"); path != "" {
			store.RegisterCollector(metrics.NewDocumentCollector(filepath.Base(args[0]), doc))
			if err := store.WriteTextfile(path); err != nil {
				return err
			}
			log.Debug().Str("path", path).Msg("wrote metrics")
		}

		writer := repl.NewOutputWriter(cmd.OutOrStdout(), viper.GetString("lookahead.output"))
		if err := writer.Write(Table(doc)); err != nil {
			return err
		}

		values := viper.GetStringSlice("parse.validate")
		if len(values) == 0 {
			return nil
		}

		results, err := Validations(doc, values)
		if err != nil {
			return err
		}
		return writer.Write(results)
	},
}

func init() {
	Command.Flags().String("metrics", "", "Write cursor metrics to this file in the Prometheus text format")
	Command.Flags().StringSlice("validate", nil, "Check a hex encoded value against a declared schema, as NAME=HEX (repeatable)")

	viper.BindPFlag("parse.metrics", Command.Flags().Lookup("metrics"))
	viper.BindPFlag("parse.validate", Command.Flags().Lookup("validate"))
}

// Table lists the entries of doc.
func Table(doc *schema.Document) repl.Table {
	t := repl.Table{Header: []string{"name", "span", "schema", "size", "source"}}
	for _, e := range doc.Entries {
		t.Rows = append(t.Rows, []string{e.Name, e.Span.String(), e.Object.ToSchema(), size(e.Object), doc.Source(e)})
	}
	return t
}

// size renders the encoded size of obj, with a trailing "+" when values may
// be longer.
func size(obj schema.Object) string {
	n, variable := schema.SizeOf(obj)
	s := humanize.Bytes(uint64(n))
	if variable {
		s += "+"
	}
	return s
}

// Validations checks each NAME=HEX value against the schema declared as NAME.
func Validations(doc *schema.Document, values []string) (repl.Table, error) {
	t := repl.Table{Header: []string{"name", "bytes", "valid"}}

	for _, v := range values {
		name, encoded, ok := strings.Cut(v, "=")
		if !ok {
			return t, errors.Errorf("invalid value '%s', expected NAME=HEX", v)
		}

		b, err := hex.DecodeString(encoded)
		if err != nil {
			return t, errors.Wrapf(err, "decoding value for '%s'", name)
		}

		valid, err := doc.Validate(name, b)
		if err != nil {
			return t, err
		}

		t.Rows = append(t.Rows, []string{name, strconv.Itoa(len(b)), strconv.FormatBool(valid)})
	}

	return t, nil
}
