package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muninn-cache/muninn/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Bootstrap a Muninn configuration file",
	Long: `Create a configuration file with freshly generated API and record
encryption keys. Refuses to overwrite an existing config unless --force
is given.

Example:
  muninn init --config ./muninn.yaml --cache-dir ./cache`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cacheDir, _ := cmd.Flags().GetString("cache-dir")
		force, _ := cmd.Flags().GetBool("force")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(configPath) && !force {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", configPath)
		}

		cfg, err := config.BootstrapConfig(configPath, cacheDir)
		if err != nil {
			return fmt.Errorf("failed to bootstrap config: %w", err)
		}

		fmt.Printf("Wrote config to %s\n", configPath)
		fmt.Printf("Cache directory: %s\n", cfg.CacheDir)
		return nil
	},
}

func init() {
	initCmd.Flags().String("config", "", "Path of the config file to create")
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
