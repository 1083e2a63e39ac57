package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cortexkv/kvdb/pkg/store"
)

var putMode string

// putCmd represents the put command
var putCmd = &cobra.Command{
	Use:   "put <key> <value>",
	Short: "Put a key-value pair",
	Long: `Put a key-value pair into the kvdb store.

The --mode flag selects the write's conflict semantics:
  upsert (default) - write regardless of whether the key exists
  insert            - write only if the key is currently absent
  update            - write only if the key is currently present

Example:
  kvdb put mykey myvalue
  kvdb put mykey myvalue --mode=insert`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key := []byte(args[0])
		value := []byte(args[1])

		mode, err := parseMode(putMode)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		engine := store.New(dbPath)
		if err := engine.Open(); err != nil {
			fmt.Printf("Error opening store: %v\n", err)
			os.Exit(1)
		}
		defer engine.Close()

		changed, err := engine.Set(key, value, mode)
		if err != nil {
			fmt.Printf("Error putting key-value: %v\n", err)
			os.Exit(1)
		}

		if changed {
			fmt.Printf("Successfully put key '%s' with value '%s'\n", string(key), string(value))
		} else {
			fmt.Printf("No change: key '%s' already satisfies mode %q\n", string(key), mode)
		}
	},
}

func parseMode(s string) (store.Mode, error) {
	switch s {
	case "", "upsert":
		return store.Upsert, nil
	case "insert":
		return store.Insert, nil
	case "update":
		return store.Update, nil
	default:
		return store.Upsert, fmt.Errorf("unknown mode %q (want upsert, insert, or update)", s)
	}
}

func init() {
	rootCmd.AddCommand(putCmd)
	putCmd.Flags().StringVar(&putMode, "mode", "upsert", "Write mode: upsert, insert, or update")
}
