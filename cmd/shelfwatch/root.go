// Root command for the shelfwatch CLI.
package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shelfwatch/shelfwatch/internal/paths"
	"github.com/shelfwatch/shelfwatch/pkg/shelfwatch"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagUser      string
	flagJSON      bool
)

// cfg holds the configuration loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var cfg *viper.Viper

var rootCmd = &cobra.Command{
	Use:   "shelfwatch",
	Short: "Shelfwatch tracks inventory in a Notion database",
	Long: `Shelfwatch connects to a Notion inventory database, shows its records
in flat form, updates fields, and flags the records that need attention
according to saved rule sets.`,
	Version:       shelfwatch.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		loaded, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.shelfwatch-db)")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "user the rule sets belong to (default: config.yaml user)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(attentionCmd)
	rootCmd.AddCommand(criteriaCmd)
	rootCmd.AddCommand(exportCmd)
}

// resolveDataDir returns the data directory path following the precedence:
// --data-dir flag > config.yaml data_dir > SHELFWATCH_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	configured := ""
	if cfg != nil {
		configured = cfg.GetString(cfgKeyDataDir)
	}
	return paths.ResolveDataDir(flagDataDir, configured)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > SHELFWATCH_CONFIG_DIR env > default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
