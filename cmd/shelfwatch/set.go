package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shelfwatch/shelfwatch/pkg/normalize"
	"github.com/shelfwatch/shelfwatch/pkg/types"
)

var flagSetField string

var setCmd = &cobra.Command{
	Use:   "set <query> <field>=<value> [<field>=<value>...]",
	Short: "Update fields of a record",
	Long: `Set finds a record by its title (or the field named by --field) and
updates the given fields in one write. Values are parsed against the
schema: numbers and checkboxes from literals, multi-select and relation
values from comma-separated lists. If any value cannot be converted the
whole update is aborted and nothing is written.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newNotionClient()
		if err != nil {
			return err
		}
		schema, err := client.Schema(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch schema: %w", err)
		}

		searchField := flagSetField
		if searchField == "" {
			searchField = titleField(schema)
			if searchField == "" {
				return fmt.Errorf("database has no title field; use --field")
			}
		}

		fields, err := parseAssignments(args[1:], schema)
		if err != nil {
			return err
		}

		rec, err := client.SearchRecord(cmd.Context(), searchField, args[0])
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("no record found with %s = %q", searchField, args[0])
		}

		if err := client.UpdateRecord(cmd.Context(), rec.PageID, fields); err != nil {
			return err
		}
		fmt.Printf("Updated %d field(s) of %s\n", len(fields), args[0])
		return nil
	},
}

func init() {
	setCmd.Flags().StringVar(&flagSetField, "field", "", "field to search the record by (default: the title field)")
}

// parseAssignments turns field=value arguments into flat values, using
// the schema to decide how each literal is read.
func parseAssignments(args []string, schema types.Schema) (map[string]any, error) {
	fields := make(map[string]any, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("malformed assignment %q: want field=value", arg)
		}
		fieldType, err := schema.FieldType(name)
		if err != nil {
			return nil, err
		}
		value, err := parseValue(raw, fieldType)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		fields[name] = value
	}
	return fields, nil
}

// parseValue converts a command-line literal into the flat value the
// field type expects. An empty literal clears text and list fields;
// number, date, select, status, and checkbox fields need an explicit
// value.
func parseValue(raw, fieldType string) (any, error) {
	if raw == "" {
		switch fieldType {
		case types.TypeTitle, types.TypeRichText, types.TypeURL, types.TypeEmail, types.TypePhoneNumber:
			return nil, nil
		case types.TypeMultiSelect, types.TypeRelation:
			return []string{}, nil
		case types.TypeFiles:
			return []normalize.FileRef{}, nil
		default:
			return nil, fmt.Errorf("a %s field cannot be cleared; give it a value", fieldType)
		}
	}
	switch fieldType {
	case types.TypeNumber:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n, nil
		}
		return raw, nil
	case types.TypeCheckbox:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b, nil
		}
		return raw, nil
	case types.TypeMultiSelect, types.TypeRelation:
		parts := strings.Split(raw, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	case types.TypeFiles:
		parts := strings.Split(raw, ",")
		refs := make([]normalize.FileRef, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				refs = append(refs, normalize.FileRef{URL: p})
			}
		}
		return refs, nil
	default:
		return raw, nil
	}
}
