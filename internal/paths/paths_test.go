package paths

import (
	"path/filepath"
	"testing"
)

func TestResolveConfigDirPrecedence(t *testing.T) {
	t.Setenv(EnvConfigDir, "/tmp/env-config")

	got, err := ResolveConfigDir("/tmp/flag-config")
	if err != nil {
		t.Fatalf("ResolveConfigDir: %v", err)
	}
	if got != "/tmp/flag-config" {
		t.Errorf("flag should win, got %q", got)
	}

	got, err = ResolveConfigDir("")
	if err != nil {
		t.Fatalf("ResolveConfigDir: %v", err)
	}
	if got != "/tmp/env-config" {
		t.Errorf("env should win over default, got %q", got)
	}
}

func TestResolveDataDirPrecedence(t *testing.T) {
	t.Setenv(EnvDataDir, "/tmp/env-data")

	got, err := ResolveDataDir("/tmp/flag-data", "/tmp/cfg-data")
	if err != nil {
		t.Fatalf("ResolveDataDir: %v", err)
	}
	if got != "/tmp/flag-data" {
		t.Errorf("flag should win, got %q", got)
	}

	got, err = ResolveDataDir("", "/tmp/cfg-data")
	if err != nil {
		t.Fatalf("ResolveDataDir: %v", err)
	}
	if got != "/tmp/cfg-data" {
		t.Errorf("config value should win over env, got %q", got)
	}

	got, err = ResolveDataDir("", "")
	if err != nil {
		t.Fatalf("ResolveDataDir: %v", err)
	}
	if got != "/tmp/env-data" {
		t.Errorf("env should win over CWD default, got %q", got)
	}
}

func TestResolveDataDirDefault(t *testing.T) {
	t.Setenv(EnvDataDir, "")

	got, err := ResolveDataDir("", "")
	if err != nil {
		t.Fatalf("ResolveDataDir: %v", err)
	}
	if filepath.Base(got) != DefaultDataDirName {
		t.Errorf("default should be CWD-relative %s, got %q", DefaultDataDirName, got)
	}
}
