package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show the Notion database schema",
	Long: `Schema fetches the field definitions of the configured Notion database:
each field's name, type tag, and, for select-like fields, the option
names. Relation fields list their resolved target pages.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newNotionClient()
		if err != nil {
			return err
		}
		schema, err := client.Schema(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch schema: %w", err)
		}

		if flagJSON {
			return printJSON(schema)
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "FIELD\tTYPE\tOPTIONS")
		for _, name := range fieldNames(schema) {
			def := schema[name]
			detail := ""
			switch {
			case len(def.Options) > 0:
				names := make([]string, len(def.Options))
				for i, o := range def.Options {
					names[i] = o.Name
				}
				detail = strings.Join(names, ", ")
			case len(def.Targets) > 0:
				names := make([]string, len(def.Targets))
				for i, t := range def.Targets {
					names[i] = t.Name
				}
				detail = strings.Join(names, ", ")
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", name, def.Type, detail)
		}
		return tw.Flush()
	},
}
