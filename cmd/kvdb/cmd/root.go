/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// dbPath is the path to the single log file every subcommand opens an
// Engine against.
var dbPath string

// configPath is an optional YAML config file (see 'kvdb init') that
// serve reads its port/bind/API key/log path defaults from.
var configPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kvdb",
	Short: "kvdb - an embeddable, append-only key-value store",
	Long: `kvdb is a Bitcask-style embeddable key-value store backed by a
single append-only log file.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbPath, "path", "p", "./kvdb.db", "Path to the log file")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file (see 'kvdb init')")
}
