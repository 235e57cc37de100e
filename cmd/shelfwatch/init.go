package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config directory and local rule-set store",
	Long: `Init creates the configuration directory with a default config.yaml
and initializes the local rule-set database in the data directory.
Both steps are idempotent: running init again leaves existing files alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		// PersistentPreRunE already created the config dir and default
		// config.yaml; attaching the store creates the database.
		store, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}
		fmt.Printf("Config directory: %s\n", configDir)
		fmt.Printf("Data directory:   %s\n", dataDir)
		fmt.Println("Edit config.yaml to set your Notion token and database id.")
		return nil
	},
}
