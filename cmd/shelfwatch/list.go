package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every record of the inventory",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newNotionClient()
		if err != nil {
			return err
		}
		schema, err := client.Schema(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch schema: %w", err)
		}
		records, err := client.FetchAllRecords(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch records: %w", err)
		}

		if flagJSON {
			return printJSON(records)
		}
		return printRecords(os.Stdout, fieldNames(schema), records)
	},
}
