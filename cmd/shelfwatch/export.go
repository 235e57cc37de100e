package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shelfwatch/shelfwatch/internal/export"
	"github.com/shelfwatch/shelfwatch/pkg/attention"
)

var (
	flagExportFormat    string
	flagExportFile      string
	flagExportAttention bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export records to CSV or XLSX",
	Long: `Export writes the inventory to a file, one row per record, one column
per field. With --attention only the records flagged by the active rule
set are exported. CSV goes to stdout unless --out is given; XLSX always
needs --out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagExportFormat != "csv" && flagExportFormat != "xlsx" {
			return fmt.Errorf("unknown format %q: want csv or xlsx", flagExportFormat)
		}
		if flagExportFormat == "xlsx" && flagExportFile == "" {
			return fmt.Errorf("xlsx export needs --out")
		}

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

		if flagExportAttention {
			store, err := attachStore()
			if err != nil {
				return err
			}
			defer store.Detach()
			rs, err := loadRuleSet(store, currentUser(), "")
			if err != nil {
				return err
			}
			records = attention.Select(rs, records)
		}

		fields := fieldNames(schema)
		switch flagExportFormat {
		case "xlsx":
			if err := export.XLSX(flagExportFile, fields, records); err != nil {
				return err
			}
		case "csv":
			out := os.Stdout
			if flagExportFile != "" {
				f, err := os.Create(flagExportFile)
				if err != nil {
					return fmt.Errorf("create %s: %w", flagExportFile, err)
				}
				defer f.Close()
				out = f
			}
			if err := export.CSV(out, fields, records); err != nil {
				return err
			}
		}
		if flagExportFile != "" {
			fmt.Fprintf(os.Stderr, "Wrote %d record(s) to %s\n", len(records), flagExportFile)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&flagExportFormat, "format", "csv", "output format: csv or xlsx")
	exportCmd.Flags().StringVarP(&flagExportFile, "out", "o", "", "output file (stdout for csv when omitted)")
	exportCmd.Flags().BoolVar(&flagExportAttention, "attention", false, "export only records flagged by the active rule set")
}
