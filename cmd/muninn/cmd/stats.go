package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report key count and stored size",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storeFromContext(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("keys:      %d\n", len(store.AllKeys()))
		fmt.Printf("stored MB: %d\n", store.StoredMB())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
