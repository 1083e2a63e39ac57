package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cortexkv/kvdb/pkg/store"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a value for a key",
	Long: `Get a value for a key from the kvdb store.

Example:
  kvdb get mykey`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := []byte(args[0])

		engine := store.New(dbPath)
		if err := engine.Open(); err != nil {
			fmt.Printf("Error opening store: %v\n", err)
			os.Exit(1)
		}
		defer engine.Close()

		value, ok := engine.Get(key)
		if !ok {
			fmt.Printf("key not found\n")
			os.Exit(1)
		}

		fmt.Printf("%s\n", string(value))
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
