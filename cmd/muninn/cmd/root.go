package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muninn-cache/muninn/pkg/disk"
	"github.com/muninn-cache/muninn/pkg/shape"
)

type contextKey string

const storeKey contextKey = "store"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "muninn",
	Short: "Muninn - disk persistence for reactive caches",
	Long: `Muninn inspects and manages a Muninn cache directory: list keys,
show records, evict entries, and report stored size.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cacheDir, _ := cmd.Flags().GetString("cache-dir")

		store, err := disk.New(cacheDir, shape.NewResolver(shape.NewRegistry()))
		if err != nil {
			return fmt.Errorf("failed to open cache dir: %w", err)
		}

		cmd.SetContext(context.WithValue(cmd.Context(), storeKey, store))
		return nil
	},
}

// storeFromContext fetches the store placed in the command context by
// the root command.
func storeFromContext(cmd *cobra.Command) (*disk.Disk, error) {
	store, ok := cmd.Context().Value(storeKey).(*disk.Disk)
	if !ok {
		return nil, fmt.Errorf("store not found in context")
	}
	return store, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global cache directory flag
	rootCmd.PersistentFlags().StringP("cache-dir", "d", "./cache", "Cache directory for the store")
}
