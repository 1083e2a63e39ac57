/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cortexkv/kvdb/pkg/config"
)

var initForce bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Bootstrap a server config file with a generated API key",
	Long: `Create a YAML config file (--config, or the default per-user config
path if --config is not given) holding the log path, listen bind/port,
logging level, and a freshly generated API key, ready for:

  kvdb serve --config=<that file>

Example:
  kvdb init --config=./kvdb.yaml --path=./kvdb.db`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path := configPath
		if path == "" {
			path = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(path) && !initForce {
			fmt.Printf("Config already exists at %s. Use --force to overwrite.\n", path)
			os.Exit(1)
		}

		cfg, err := config.BootstrapConfig(path, dbPath)
		if err != nil {
			fmt.Printf("Error bootstrapping config: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Config written to %s\n", path)
		fmt.Printf("API key: %s\n", cfg.APIKey)
		fmt.Printf("\nStart the server with:\n  kvdb serve --config=%s\n", path)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}
