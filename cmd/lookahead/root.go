/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package lookahead

import (
	"fmt"
	"os"

	"github.com/dburkart/lookahead/cmd/lookahead/inspect"
	"github.com/dburkart/lookahead/cmd/lookahead/parse"
	"github.com/dburkart/lookahead/cmd/lookahead/tokens"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	Version        = "develop"
	CommitHash     = "n/a"
	BuildTimestamp = "n/a"

	rootCmd = &cobra.Command{
		Use:   "lookahead",
		Short: "Lookahead inspects schema documents through backtracking token cursors",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging()
			initLogLevel()
			initConfig(cmd.Root().PersistentFlags().Lookup("config").Value.String())
			initLogLevel()
			traceConfig()
		},
		SilenceUsage: true,
		Version:      Version,
	}
)

func init() {
	// Configure the root binary options
	rootCmd.PersistentFlags().CountP("verbose", "v", "-v for debug logs (-vv for trace)")
	rootCmd.PersistentFlags().Bool("local", true, "Configures the logger to print readable logs")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the lookahead config file (default ./config.toml)")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format of results [text, csv, json, yaml]")
	rootCmd.PersistentFlags().StringP("mode", "m", "stream", "Cursor used to read tokens [stream, list]")

	// Bind viper config to the root flags
	viper.BindPFlag("lookahead.local", rootCmd.PersistentFlags().Lookup("local"))
	viper.BindPFlag("lookahead.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("lookahead.output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("lookahead.mode", rootCmd.PersistentFlags().Lookup("mode"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.SetVersionTemplate(fmt.Sprintf("lookahead version: %s git_commit: %s build_time: %s\n", Version, CommitHash, BuildTimestamp))

	viper.AutomaticEnv()

	// Register commands on the root binary command
	for _, cmd := range []*cobra.Command{tokens.Command, parse.Command, inspect.Command} {
		cmd.Version = rootCmd.Version
		rootCmd.AddCommand(cmd)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("root command failed")
		os.Exit(1)
	}
}
