/*
 * Copyright (c) 2026, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parse

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dburkart/lookahead/pkg/schema"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const document = "point = {'x': int32, 'y': int32}\npoint\n"

func TestTable(t *testing.T) {
	doc, err := schema.ParseDocument(document, schema.ModeList)
	require.NoError(t, err)

	table := Table(doc)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"point", "1:1-1:32", "{'x':int32,'y':int32,}", "8 B", "point = {'x': int32, 'y': int32}"}, table.Rows[0])
	assert.Equal(t, []string{"", "2:1-2:5", "{'x':int32,'y':int32,}", "8 B", "point"}, table.Rows[1])

	doc, err = schema.ParseDocument("name = string", schema.ModeList)
	require.NoError(t, err)
	assert.Equal(t, "4 B+", Table(doc).Rows[0][3])
}

func TestValidations(t *testing.T) {
	doc, err := schema.ParseDocument(document, schema.ModeList)
	require.NoError(t, err)

	table, err := Validations(doc, []string{"point=0100000002000000", "point=01"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"point", "8", "true"}, {"point", "1", "false"}}, table.Rows)

	for _, v := range []string{"point", "point=zz", "line=00"} {
		_, err := Validations(doc, []string{v})
		assert.Error(t, err, v)
	}

	_, err = Validations(doc, []string{"line=00"})
	assert.ErrorIs(t, err, schema.ErrUndeclared)
}

func TestCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "points.schema")
	textfile := filepath.Join(dir, "metrics.prom")
	require.NoError(t, os.WriteFile(input, []byte(document), 0644))

	viper.Set("logger", zerolog.Nop())
	viper.Set("lookahead.mode", "stream")
	viper.Set("lookahead.output", "csv")
	viper.Set("parse.metrics", textfile)
	viper.Set("parse.validate", []string{"point=0000000000000000"})
	t.Cleanup(func() {
		viper.Set("parse.metrics", "")
		viper.Set("parse.validate", nil)
	})

	var out bytes.Buffer
	Command.SetOut(&out)
	require.NoError(t, Command.RunE(Command, []string{input}))

	assert.Contains(t, out.String(), "name,span,schema,source\n")
	assert.Contains(t, out.String(), ",2:1-2:5,")
	assert.Contains(t, out.String(), "name,bytes,valid\npoint,8,true\n")

	b, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(b), `lookahead_document_entries{document="points.schema"} 2`)
	assert.Contains(t, string(b), `lookahead_cursor_events_total{event="rollback",mode="stream"}`)
}

func TestCommandInvalidDocument(t *testing.T) {
	input := filepath.Join(t.TempDir(), "bad.schema")
	require.NoError(t, os.WriteFile(input, []byte("a = nope"), 0644))

	viper.Set("logger", zerolog.Nop())
	viper.Set("lookahead.mode", "list")

	var stderr bytes.Buffer
	Command.SetErr(&stderr)
	assert.Error(t, Command.RunE(Command, []string{input}))
	assert.Contains(t, stderr.String(), "Syntax error found on line 1")
}
