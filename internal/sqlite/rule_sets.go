package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shelfwatch/shelfwatch/pkg/types"
)

// Save creates or updates a rule set for the user. An empty RuleSetID
// creates; criteria without IDs get one assigned. Returns the ID used.
// An ID owned by another user is refused with ErrNotFound.
func (b *Backend) Save(userID string, rs *types.RuleSet) (string, error) {
	db, err := b.handle()
	if err != nil {
		return "", err
	}
	if err := rs.Validate(); err != nil {
		return "", err
	}

	if rs.RuleSetID == "" {
		rs.RuleSetID = uuid.NewString()
	}
	for i := range rs.Criteria {
		if rs.Criteria[i].CriterionID == "" {
			rs.Criteria[i].CriterionID = uuid.NewString()
		}
	}

	criteria, err := json.Marshal(rs.Criteria)
	if err != nil {
		return "", fmt.Errorf("encoding criteria: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := db.Exec(
		`INSERT INTO rule_sets (rule_set_id, user_id, name, operator, enabled, criteria, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(rule_set_id) DO UPDATE SET
		     name = excluded.name,
		     operator = excluded.operator,
		     enabled = excluded.enabled,
		     criteria = excluded.criteria,
		     updated_at = excluded.updated_at
		 WHERE rule_sets.user_id = excluded.user_id`,
		rs.RuleSetID, userID, rs.Name, rs.Operator, boolInt(rs.Enabled), string(criteria), now, now,
	)
	if err != nil {
		return "", fmt.Errorf("saving rule set %s: %w", rs.RuleSetID, err)
	}
	// A conflicting ID owned by another user updates nothing; refuse it
	// rather than silently dropping the save.
	affected, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("saving rule set %s: %w", rs.RuleSetID, err)
	}
	if affected == 0 {
		return "", fmt.Errorf("rule set %s: %w", rs.RuleSetID, types.ErrNotFound)
	}
	return rs.RuleSetID, nil
}

// Get retrieves one rule set.
// Returns ErrNotFound if the user has no rule set with that ID.
func (b *Backend) Get(userID, ruleSetID string) (*types.RuleSet, error) {
	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		`SELECT rule_set_id, name, operator, enabled, criteria
		 FROM rule_sets WHERE user_id = ? AND rule_set_id = ?`,
		userID, ruleSetID,
	)
	rs, err := hydrateRuleSet(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting rule set %s: %w", ruleSetID, err)
	}
	return rs, nil
}

// List returns all of the user's rule sets ordered by name.
// Returns an empty slice (not nil) if the user has none.
func (b *Backend) List(userID string) ([]*types.RuleSet, error) {
	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(
		`SELECT rule_set_id, name, operator, enabled, criteria
		 FROM rule_sets WHERE user_id = ? ORDER BY name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing rule sets: %w", err)
	}
	defer rows.Close()

	out := make([]*types.RuleSet, 0)
	for rows.Next() {
		rs, err := hydrateRuleSet(rows)
		if err != nil {
			return nil, fmt.Errorf("listing rule sets: %w", err)
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

// Delete removes a rule set.
// Returns ErrNotFound if the user has no rule set with that ID.
func (b *Backend) Delete(userID, ruleSetID string) error {
	db, err := b.handle()
	if err != nil {
		return err
	}

	res, err := db.Exec(
		`DELETE FROM rule_sets WHERE user_id = ? AND rule_set_id = ?`,
		userID, ruleSetID,
	)
	if err != nil {
		return fmt.Errorf("deleting rule set %s: %w", ruleSetID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// SetActive marks one rule set as the user's active selection. The clear
// and the set happen in one transaction so at most one row per user is
// ever active.
// Returns ErrNotFound if the user has no rule set with that ID.
func (b *Backend) SetActive(userID, ruleSetID string) error {
	db, err := b.handle()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`UPDATE rule_sets SET active = 0 WHERE user_id = ?`, userID,
	); err != nil {
		return fmt.Errorf("clearing active rule set: %w", err)
	}

	res, err := tx.Exec(
		`UPDATE rule_sets SET active = 1 WHERE user_id = ? AND rule_set_id = ?`,
		userID, ruleSetID,
	)
	if err != nil {
		return fmt.Errorf("activating rule set %s: %w", ruleSetID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return tx.Commit()
}

// Active returns the user's active rule set.
// Returns ErrNoActiveRuleSet if none is marked active.
func (b *Backend) Active(userID string) (*types.RuleSet, error) {
	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		`SELECT rule_set_id, name, operator, enabled, criteria
		 FROM rule_sets WHERE user_id = ? AND active = 1`,
		userID,
	)
	rs, err := hydrateRuleSet(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNoActiveRuleSet
		}
		return nil, fmt.Errorf("getting active rule set: %w", err)
	}
	return rs, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// hydrateRuleSet builds a RuleSet from a row's columns.
func hydrateRuleSet(row scanner) (*types.RuleSet, error) {
	var rs types.RuleSet
	var enabled int
	var criteria string
	if err := row.Scan(&rs.RuleSetID, &rs.Name, &rs.Operator, &enabled, &criteria); err != nil {
		return nil, err
	}
	rs.Enabled = enabled != 0
	if err := json.Unmarshal([]byte(criteria), &rs.Criteria); err != nil {
		return nil, fmt.Errorf("decoding criteria: %w", err)
	}
	return &rs, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
