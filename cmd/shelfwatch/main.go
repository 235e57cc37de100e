// Package main provides the shelfwatch CLI: inventory tracking against a
// Notion database, with saved attention rule sets.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}
