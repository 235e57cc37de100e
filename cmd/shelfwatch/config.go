// Config loading for the shelfwatch CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyToken      = "notion_token"
	cfgKeyDatabaseID = "database_id"
	cfgKeyUser       = "user"
	cfgKeyDataDir    = "data_dir"

	defaultUser = "default"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Shelfwatch CLI configuration

# Notion integration token (or set the NOTION_TOKEN environment variable)
# notion_token:

# Notion database holding the inventory
# database_id:

# User the saved rule sets belong to
user: default

# Data directory (optional; overridable by --data-dir flag)
# data_dir:
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper. It creates the config directory and a default config.yaml on
// first run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyUser, defaultUser)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.BindEnv(cfgKeyToken, "NOTION_TOKEN"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Missing config.yaml is not an error.
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
