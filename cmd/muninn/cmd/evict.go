package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// evictCmd represents the evict command
var evictCmd = &cobra.Command{
	Use:   "evict [key]",
	Short: "Evict one key, or every key with --all",
	Long: `Evict a record from the cache. Evicting a missing key is a no-op.

Example:
  muninn evict user-42
  muninn evict --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storeFromContext(cmd)
		if err != nil {
			return err
		}

		all, _ := cmd.Flags().GetBool("all")
		if all {
			if err := store.EvictAll(); err != nil {
				return fmt.Errorf("failed to evict all: %w", err)
			}
			fmt.Println("evicted all keys")
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("a key is required unless --all is given")
		}

		if err := store.Evict(args[0]); err != nil {
			return fmt.Errorf("failed to evict %q: %w", args[0], err)
		}
		fmt.Printf("evicted %s\n", args[0])
		return nil
	},
}

func init() {
	evictCmd.Flags().Bool("all", false, "Evict every key in the cache")
	rootCmd.AddCommand(evictCmd)
}
