package types

import "errors"

// Combining operators for a rule set's criteria.
const (
	OperatorAND = "AND"
	OperatorOR  = "OR"
)

// Rule-set validation errors.
var (
	ErrInvalidOperator = errors.New("operator must be AND or OR")
)

// RuleSet is a named set of attention criteria combined under one
// operator. At most one rule set is active per user; evaluation only runs
// against enabled criteria of the active, enabled rule set.
type RuleSet struct {
	RuleSetID string      `json:"rule_set_id"` // UUID, generated on save.
	Name      string      `json:"name"`        // Unique per user (required, non-empty).
	Operator  string      `json:"operator"`    // OperatorAND or OperatorOR.
	Enabled   bool        `json:"enabled"`     // Disabled rule sets flag nothing.
	Criteria  []Criterion `json:"criteria"`
}

// Validate checks that the rule set is well-formed: a non-empty name, a
// known operator, and valid criteria.
// Returns ErrInvalidName, ErrInvalidOperator, or the first criterion
// validation error.
func (r *RuleSet) Validate() error {
	if r.Name == "" {
		return ErrInvalidName
	}
	if r.Operator != OperatorAND && r.Operator != OperatorOR {
		return ErrInvalidOperator
	}
	for i := range r.Criteria {
		if err := r.Criteria[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// EnabledCriteria returns the enabled criteria in input order.
// Returns an empty slice (not nil) if none are enabled.
func (r *RuleSet) EnabledCriteria() []Criterion {
	out := make([]Criterion, 0, len(r.Criteria))
	for _, c := range r.Criteria {
		if c.Enabled {
			out = append(out, c)
		}
	}
	return out
}
