// Package paths resolves configuration and data directory locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative directory names.
const (
	DefaultConfigDirName = ".shelfwatch"
	DefaultDataDirName   = ".shelfwatch-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "SHELFWATCH_CONFIG_DIR"
	EnvDataDir   = "SHELFWATCH_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/shelfwatch (fallback ~/.config/shelfwatch)
// macOS:   ~/Library/Application Support/shelfwatch
// Windows: %APPDATA%/shelfwatch
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "shelfwatch"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "shelfwatch"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "shelfwatch"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > SHELFWATCH_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > config.yaml data_dir > SHELFWATCH_DATA_DIR env > $(CWD)/.shelfwatch-db.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
