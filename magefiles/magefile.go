//go:build mage

// Package main provides build targets for the shelfwatch project using Mage.
//
// Usage:
//
//	mage build           Compile shelfwatch binary to bin/
//	mage test            Run all tests (unit + integration)
//	mage testUnit        Run only unit tests (exclude integration)
//	mage testIntegration Run only integration tests (builds first)
//	mage lint            Run golangci-lint
//	mage clean           Remove build artifacts
//	mage install         Install shelfwatch to GOPATH/bin
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "shelfwatch"
	binaryDir  = "bin"
	cmdDir     = "./cmd/shelfwatch"
)

// Build compiles the shelfwatch binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests (unit and integration).
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// TestUnit runs only unit tests, excluding the tests/ directory.
func TestUnit() error {
	pkgs, err := sh.Output("go", "list", "./...")
	if err != nil {
		return err
	}
	var unitPkgs []string
	for _, pkg := range strings.Split(pkgs, "\n") {
		if pkg != "" && !strings.Contains(pkg, "/tests/") && !strings.HasSuffix(pkg, "/tests") {
			unitPkgs = append(unitPkgs, pkg)
		}
	}
	if len(unitPkgs) == 0 {
		fmt.Println("No unit test packages found.")
		return nil
	}
	args := append([]string{"test"}, unitPkgs...)
	return sh.RunV("go", args...)
}

// TestIntegration builds first, then runs only integration tests.
func TestIntegration() error {
	mg.Deps(Build)
	return sh.RunV("go", "test", "./tests/...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV("go", "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
