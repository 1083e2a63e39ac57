/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cortexkv/kvdb/pkg/api"
	"github.com/cortexkv/kvdb/pkg/config"
	"github.com/cortexkv/kvdb/pkg/store"
)

var (
	servePort   int
	serveBind   string
	serveAPIKey string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the kvdb REST API server fronting a single log file with
key-value CRUD, health, stats, and Prometheus metrics endpoints.

Settings come from --config's YAML file (see 'kvdb init' to create one),
overridden by any of --path, --bind, --port, or --api-key passed
explicitly on the command line.

Example:
  kvdb serve --config=./kvdb.yaml
  kvdb serve --api-key=mysecretkey --port=8080`,
	Run: func(cmd *cobra.Command, args []string) {
		path, bind, port, apiKey := dbPath, serveBind, servePort, serveAPIKey

		if configPath != "" {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Error loading config: %v\n", err)
				os.Exit(1)
			}
			if !cmd.Flags().Changed("path") {
				path = cfg.Path
			}
			if !cmd.Flags().Changed("bind") {
				bind = cfg.Bind
			}
			if !cmd.Flags().Changed("port") {
				port = cfg.Port
			}
			if !cmd.Flags().Changed("api-key") {
				apiKey = cfg.APIKey
			}
		}

		if apiKey == "" {
			fmt.Println("Error: --api-key is required, either on the command line or via --config")
			os.Exit(1)
		}

		engine := store.New(path)
		serverConfig := api.ServerConfig{Bind: bind, Port: port, APIKey: apiKey}

		if err := api.StartServer(engine, serverConfig); err != nil {
			fmt.Printf("Error starting server: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveBind, "bind", "", "Address to listen on (empty means all interfaces)")
	serveCmd.Flags().IntVarP(&servePort, "port", "P", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "API key required on every authenticated request")
}
