package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// keysCmd represents the keys command
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List all keys in the cache",
	Long: `List the names of all records stored in the cache directory.

Example:
  muninn keys`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storeFromContext(cmd)
		if err != nil {
			return err
		}

		for _, key := range store.AllKeys() {
			fmt.Println(key)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
}
