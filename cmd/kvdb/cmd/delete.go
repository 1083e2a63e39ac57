package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cortexkv/kvdb/pkg/store"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete a key-value pair",
	Long: `Delete a key-value pair from the kvdb store.

Example:
  kvdb delete mykey`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := []byte(args[0])

		engine := store.New(dbPath)
		if err := engine.Open(); err != nil {
			fmt.Printf("Error opening store: %v\n", err)
			os.Exit(1)
		}
		defer engine.Close()

		existed, err := engine.Del(key)
		if err != nil {
			fmt.Printf("Error deleting key: %v\n", err)
			os.Exit(1)
		}
		if !existed {
			fmt.Printf("key not found\n")
			os.Exit(1)
		}

		fmt.Printf("Successfully deleted key '%s'\n", string(key))
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
