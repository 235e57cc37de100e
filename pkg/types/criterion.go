package types

import "errors"

// Criterion conditions. The first six take an operand; empty, not_empty,
// is_true, and is_false do not.
const (
	ConditionEquals      = "equals"
	ConditionNotEquals   = "not_equals"
	ConditionContains    = "contains"
	ConditionNotContains = "not_contains"
	ConditionLessThan    = "less_than"
	ConditionGreaterThan = "greater_than"
	ConditionEmpty       = "empty"
	ConditionNotEmpty    = "not_empty"
	ConditionIsTrue      = "is_true"
	ConditionIsFalse     = "is_false"
)

// validConditions is the set of recognized conditions.
var validConditions = map[string]bool{
	ConditionEquals:      true,
	ConditionNotEquals:   true,
	ConditionContains:    true,
	ConditionNotContains: true,
	ConditionLessThan:    true,
	ConditionGreaterThan: true,
	ConditionEmpty:       true,
	ConditionNotEmpty:    true,
	ConditionIsTrue:      true,
	ConditionIsFalse:     true,
}

// operandConditions are the conditions that require a comparison value.
var operandConditions = map[string]bool{
	ConditionEquals:      true,
	ConditionNotEquals:   true,
	ConditionContains:    true,
	ConditionNotContains: true,
	ConditionLessThan:    true,
	ConditionGreaterThan: true,
}

// Criterion validation errors.
var (
	ErrInvalidCondition = errors.New("invalid condition")
	ErrMissingOperand   = errors.New("condition requires a comparison value")
	ErrTypeMismatch     = errors.New("comparison value does not match the field type")
	ErrInvalidName      = errors.New("invalid name")
)

// Criterion is one named predicate over a single field of a record.
type Criterion struct {
	CriterionID string `json:"criterion_id"`          // UUID, generated on save.
	FieldName   string `json:"field_name"`            // Field the criterion tests (required, non-empty).
	FieldType   string `json:"field_type,omitempty"`  // Field type tag, used to type-check Value.
	Condition   string `json:"condition"`             // One of the Condition constants.
	Value       any    `json:"value,omitempty"`       // Comparison operand; nil for operand-free conditions.
	Priority    int    `json:"priority"`              // Display order; lower first.
	Enabled     bool   `json:"enabled"`               // Disabled criteria are skipped by evaluation.
	Description string `json:"description,omitempty"` // Optional explanation of the criterion's purpose.
}

// RequiresOperand reports whether the condition takes a comparison value.
func RequiresOperand(condition string) bool {
	return operandConditions[condition]
}

// ValidCondition reports whether the given string is a recognized condition.
func ValidCondition(c string) bool {
	return validConditions[c]
}

// Validate checks that the criterion is well-formed: a non-empty field
// name, a recognized condition, an operand when its condition requires
// one, and an operand whose Go type is compatible with FieldType when a
// field type is declared.
// Returns ErrInvalidName, ErrInvalidCondition, ErrMissingOperand, or
// ErrTypeMismatch.
func (c *Criterion) Validate() error {
	if c.FieldName == "" {
		return ErrInvalidName
	}
	if !validConditions[c.Condition] {
		return ErrInvalidCondition
	}
	if !operandConditions[c.Condition] {
		return nil
	}
	if c.Value == nil {
		return ErrMissingOperand
	}
	return c.checkOperandType()
}

// checkOperandType type-checks Value against FieldType for the conditions
// that take an operand. An empty FieldType skips the check; evaluation is
// total over mismatched values anyway, this only catches authoring errors.
func (c *Criterion) checkOperandType() error {
	switch c.FieldType {
	case TypeNumber:
		switch c.Value.(type) {
		case float64, float32, int, int32, int64:
			return nil
		}
		return ErrTypeMismatch
	case TypeCheckbox:
		if _, ok := c.Value.(bool); !ok {
			return ErrTypeMismatch
		}
		return nil
	case TypeTitle, TypeRichText, TypeSelect, TypeStatus, TypeDate,
		TypeURL, TypeEmail, TypePhoneNumber:
		if _, ok := c.Value.(string); !ok {
			return ErrTypeMismatch
		}
		return nil
	default:
		return nil
	}
}
