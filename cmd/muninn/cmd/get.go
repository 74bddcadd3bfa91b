package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/muninn-cache/muninn/pkg/codec"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show the record stored under a key",
	Long: `Show the envelope metadata and payload of a stored record.

The record is decoded as an envelope only: the payload is shown as it
appears on disk, without reconstructing its registered Go type.

Example:
  muninn get user-42`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]

		store, err := storeFromContext(cmd)
		if err != nil {
			return err
		}

		raw, err := os.ReadFile(filepath.Join(store.Dir(), key))
		if err != nil {
			return fmt.Errorf("failed to read record %q: %w", key, err)
		}

		var record codec.Record
		if err := json.Unmarshal(raw, &record); err != nil {
			return fmt.Errorf("failed to decode record %q: %w", key, err)
		}

		fmt.Printf("key:       %s\n", key)
		fmt.Printf("type:      %s\n", record.DataTypeName)
		if record.DataContainerTypeName != "" {
			fmt.Printf("container: %s\n", record.DataContainerTypeName)
		}
		if record.DataKeyTypeName != "" {
			fmt.Printf("key type:  %s\n", record.DataKeyTypeName)
		}
		if record.Timestamp > 0 {
			fmt.Printf("saved:     %s\n", time.UnixMilli(record.Timestamp).Format(time.RFC3339))
		}

		payload, err := json.MarshalIndent(record.Data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render payload: %w", err)
		}
		fmt.Printf("data:      %s\n", payload)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
