package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shelfwatch/shelfwatch/pkg/attention"
	"github.com/shelfwatch/shelfwatch/pkg/types"
)

var flagAttentionRuleSet string

var attentionCmd = &cobra.Command{
	Use:   "attention",
	Short: "Show the records that need attention",
	Long: `Attention evaluates the user's active rule set (or the one named by
--rule-set) against every record and prints the ones that match. A
disabled rule set, or one with no enabled criteria, matches nothing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		rs, err := loadRuleSet(store, currentUser(), flagAttentionRuleSet)
		if err != nil {
			return err
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

		flagged := attention.Select(rs, records)

		if flagJSON {
			return printJSON(flagged)
		}
		if len(flagged) == 0 {
			fmt.Println("No records need attention.")
			return nil
		}
		fmt.Printf("%d of %d record(s) need attention (%s):\n\n", len(flagged), len(records), rs.Name)
		return printRecords(os.Stdout, fieldNames(schema), flagged)
	},
}

func init() {
	attentionCmd.Flags().StringVar(&flagAttentionRuleSet, "rule-set", "", "rule set to evaluate (default: the active one)")
}

// loadRuleSet returns the named rule set, resolving the name against the
// user's saved ones; an empty name means the active rule set.
func loadRuleSet(store types.Store, userID, name string) (*types.RuleSet, error) {
	if name == "" {
		rs, err := store.Active(userID)
		if err != nil {
			if errors.Is(err, types.ErrNoActiveRuleSet) {
				return nil, fmt.Errorf("no active rule set; save one with 'criteria import' and activate it")
			}
			return nil, err
		}
		return rs, nil
	}

	sets, err := store.List(userID)
	if err != nil {
		return nil, err
	}
	for _, rs := range sets {
		if rs.Name == name || rs.RuleSetID == name {
			return rs, nil
		}
	}
	return nil, fmt.Errorf("rule set %q: %w", name, types.ErrNotFound)
}
