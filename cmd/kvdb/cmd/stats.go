package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cortexkv/kvdb/pkg/store"
)

// statsCmd reports basic liveness information about a log file by
// opening it (which replays it into an index) and printing the key
// count.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Open the store and report the number of live keys",
	Long: `Open the log at --path, replaying it into an in-memory index, and
report how many live keys it holds. This is also a quick way to check
that a log file opens cleanly.

Example:
  kvdb stats`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		engine := store.New(dbPath)
		if err := engine.Open(); err != nil {
			fmt.Printf("Error opening store: %v\n", err)
			os.Exit(1)
		}
		defer engine.Close()

		fmt.Printf("keys: %d\n", engine.Len())
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
