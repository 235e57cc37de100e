// Shared helpers for the shelfwatch subcommands.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/shelfwatch/shelfwatch/internal/export"
	"github.com/shelfwatch/shelfwatch/internal/notion"
	"github.com/shelfwatch/shelfwatch/internal/sqlite"
	"github.com/shelfwatch/shelfwatch/pkg/types"
)

// newNotionClient builds a client from the configured token and database
// id. Both come from config.yaml; the token can also come from the
// NOTION_TOKEN environment variable.
func newNotionClient() (*notion.Client, error) {
	token := cfg.GetString(cfgKeyToken)
	if token == "" {
		return nil, fmt.Errorf("no Notion token configured: set %s in config.yaml or the NOTION_TOKEN environment variable", cfgKeyToken)
	}
	databaseID := cfg.GetString(cfgKeyDatabaseID)
	if databaseID == "" {
		return nil, fmt.Errorf("no Notion database configured: set %s in config.yaml", cfgKeyDatabaseID)
	}
	return notion.NewClient(token, databaseID), nil
}

// attachStore attaches the sqlite rule-set store at the resolved data
// directory. The caller must Detach when done.
func attachStore() (types.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, err
	}
	store := sqlite.NewBackend()
	if err := store.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	}); err != nil {
		return nil, fmt.Errorf("attach store: %w", err)
	}
	return store, nil
}

// currentUser returns the user the rule sets belong to:
// --user flag > config.yaml user > "default".
func currentUser() string {
	if flagUser != "" {
		return flagUser
	}
	if user := cfg.GetString(cfgKeyUser); user != "" {
		return user
	}
	return defaultUser
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// titleField returns the name of the schema's title field, or "" when
// the schema has none.
func titleField(schema types.Schema) string {
	for name, def := range schema {
		if def.Type == types.TypeTitle {
			return name
		}
	}
	return ""
}

// fieldNames returns the schema's field names sorted, with the title
// field first when the schema has one.
func fieldNames(schema types.Schema) []string {
	names := make([]string, 0, len(schema))
	title := ""
	for name, def := range schema {
		if def.Type == types.TypeTitle && title == "" {
			title = name
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	if title != "" {
		names = append([]string{title}, names...)
	}
	return names
}

// printRecords renders records as an aligned table, one row per record,
// one column per field plus the page id.
func printRecords(w io.Writer, fields []string, records []types.Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "PAGE ID")
	for _, f := range fields {
		fmt.Fprintf(tw, "\t%s", f)
	}
	fmt.Fprintln(tw)
	for _, rec := range records {
		fmt.Fprint(tw, rec.PageID)
		for _, f := range fields {
			fmt.Fprintf(tw, "\t%s", export.Cell(rec.Field(f)))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// printRecord renders a single record vertically, one field per line.
func printRecord(w io.Writer, fields []string, rec types.Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Page ID\t%s\n", rec.PageID)
	for _, f := range fields {
		fmt.Fprintf(tw, "%s\t%s\n", f, export.Cell(rec.Field(f)))
	}
	return tw.Flush()
}
