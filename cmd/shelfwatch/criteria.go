package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shelfwatch/shelfwatch/internal/export"
	"github.com/shelfwatch/shelfwatch/internal/rules"
	"github.com/shelfwatch/shelfwatch/pkg/types"
)

var (
	flagImportActivate bool
	flagExportOut      string
)

var criteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "Manage saved attention rule sets",
	Long: `Criteria manages the rule sets stored locally per user. Rule sets are
imported from and exported to YAML; at most one per user is active at a
time and only the active one drives the attention command.`,
}

var criteriaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the user's rule sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		user := currentUser()
		sets, err := store.List(user)
		if err != nil {
			return err
		}

		active := ""
		if rs, err := store.Active(user); err == nil {
			active = rs.RuleSetID
		}

		if flagJSON {
			return printJSON(sets)
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tOPERATOR\tENABLED\tCRITERIA\tACTIVE")
		for _, rs := range sets {
			mark := ""
			if rs.RuleSetID == active {
				mark = "*"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%d\t%s\n",
				rs.RuleSetID, rs.Name, rs.Operator, rs.Enabled, len(rs.Criteria), mark)
		}
		return tw.Flush()
	},
}

var criteriaShowCmd = &cobra.Command{
	Use:   "show <rule-set>",
	Short: "Show one rule set with its criteria",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		rs, err := loadRuleSet(store, currentUser(), args[0])
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(rs)
		}

		fmt.Printf("%s (%s, operator %s, enabled %t)\n\n", rs.Name, rs.RuleSetID, rs.Operator, rs.Enabled)
		criteria := append([]types.Criterion(nil), rs.Criteria...)
		sort.SliceStable(criteria, func(i, j int) bool {
			return criteria[i].Priority < criteria[j].Priority
		})
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "PRIORITY\tFIELD\tCONDITION\tVALUE\tENABLED\tDESCRIPTION")
		for _, c := range criteria {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\t%s\n",
				c.Priority, c.FieldName, c.Condition, export.Cell(c.Value), c.Enabled, c.Description)
		}
		return tw.Flush()
	},
}

var criteriaDeleteCmd = &cobra.Command{
	Use:   "delete <rule-set>",
	Short: "Delete a rule set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		user := currentUser()
		rs, err := loadRuleSet(store, user, args[0])
		if err != nil {
			return err
		}
		if err := store.Delete(user, rs.RuleSetID); err != nil {
			return err
		}
		fmt.Printf("Deleted rule set %s\n", rs.Name)
		return nil
	},
}

var criteriaEnableCmd = &cobra.Command{
	Use:   "enable <rule-set>",
	Short: "Enable a rule set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setRuleSetEnabled(args[0], true)
	},
}

var criteriaDisableCmd = &cobra.Command{
	Use:   "disable <rule-set>",
	Short: "Disable a rule set so it flags nothing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setRuleSetEnabled(args[0], false)
	},
}

var criteriaActivateCmd = &cobra.Command{
	Use:   "activate <rule-set>",
	Short: "Make a rule set the user's active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		user := currentUser()
		rs, err := loadRuleSet(store, user, args[0])
		if err != nil {
			return err
		}
		if err := store.SetActive(user, rs.RuleSetID); err != nil {
			return err
		}
		fmt.Printf("Activated rule set %s\n", rs.Name)
		return nil
	},
}

var criteriaImportCmd = &cobra.Command{
	Use:     "import <file.yaml>",
	Aliases: []string{"save"},
	Short:   "Import a rule set from YAML",
	Long: `Import reads a rule set from a YAML file, validates it, and saves it for
the user. A rule set with the same name is replaced. With --activate the
imported rule set also becomes the active one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()

		rs, err := rules.Decode(f)
		if err != nil {
			return fmt.Errorf("decode %s: %w", args[0], err)
		}

		store, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		user := currentUser()

		// Replace an existing rule set of the same name.
		existing, err := store.List(user)
		if err != nil {
			return err
		}
		for _, old := range existing {
			if old.Name == rs.Name {
				rs.RuleSetID = old.RuleSetID
				break
			}
		}

		id, err := store.Save(user, rs)
		if err != nil {
			return err
		}
		if flagImportActivate {
			if err := store.SetActive(user, id); err != nil {
				return err
			}
		}
		fmt.Printf("Imported rule set %s (%s)\n", rs.Name, id)
		return nil
	},
}

var criteriaExportCmd = &cobra.Command{
	Use:   "export <rule-set>",
	Short: "Export a rule set as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		rs, err := loadRuleSet(store, currentUser(), args[0])
		if err != nil {
			return err
		}

		out := os.Stdout
		if flagExportOut != "" {
			f, err := os.Create(flagExportOut)
			if err != nil {
				return fmt.Errorf("create %s: %w", flagExportOut, err)
			}
			defer f.Close()
			out = f
		}
		return rules.Encode(out, rs)
	},
}

// setRuleSetEnabled flips the enabled flag and saves the rule set back.
func setRuleSetEnabled(name string, enabled bool) error {
	store, err := attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	user := currentUser()
	rs, err := loadRuleSet(store, user, name)
	if err != nil {
		return err
	}
	rs.Enabled = enabled
	if _, err := store.Save(user, rs); err != nil {
		return err
	}
	state := "Disabled"
	if enabled {
		state = "Enabled"
	}
	fmt.Printf("%s rule set %s\n", state, rs.Name)
	return nil
}

func init() {
	criteriaImportCmd.Flags().BoolVar(&flagImportActivate, "activate", false, "make the imported rule set active")
	criteriaExportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "write to file instead of stdout")

	criteriaCmd.AddCommand(criteriaListCmd)
	criteriaCmd.AddCommand(criteriaShowCmd)
	criteriaCmd.AddCommand(criteriaDeleteCmd)
	criteriaCmd.AddCommand(criteriaEnableCmd)
	criteriaCmd.AddCommand(criteriaDisableCmd)
	criteriaCmd.AddCommand(criteriaActivateCmd)
	criteriaCmd.AddCommand(criteriaImportCmd)
	criteriaCmd.AddCommand(criteriaExportCmd)
}
