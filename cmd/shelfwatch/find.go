package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagFindField string

var findCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Find a record by field value",
	Long: `Find returns the first record whose field matches the query. By default
the title field is searched; --field selects another one. String
comparison is case-insensitive.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newNotionClient()
		if err != nil {
			return err
		}
		schema, err := client.Schema(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch schema: %w", err)
		}

		field := flagFindField
		if field == "" {
			field = titleField(schema)
			if field == "" {
				return fmt.Errorf("database has no title field; use --field")
			}
		}

		rec, err := client.SearchRecord(cmd.Context(), field, args[0])
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("no record found with %s = %q", field, args[0])
		}

		if flagJSON {
			return printJSON(rec)
		}
		return printRecord(os.Stdout, fieldNames(schema), *rec)
	},
}

func init() {
	findCmd.Flags().StringVar(&flagFindField, "field", "", "field to search (default: the title field)")
}
