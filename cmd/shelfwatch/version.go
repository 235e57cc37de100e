package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shelfwatch/shelfwatch/pkg/shelfwatch"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the shelfwatch version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("shelfwatch %s\n", shelfwatch.Version)
	},
}
