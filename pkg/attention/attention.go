// Package attention evaluates rule sets over normalized records and
// selects the records needing attention.
//
// Evaluation is a stateless pure function of (rule set, records): it is
// re-run on demand whenever either changes, and there is no persisted
// evaluation result. It never returns an error; a criterion whose operand
// does not fit the field value simply does not match, so one bad rule
// cannot hide matches from the valid ones.
package attention

import (
	"reflect"
	"strings"

	"github.com/shelfwatch/shelfwatch/pkg/types"
)

// EvaluateCriterion reports whether the field value satisfies the
// criterion. Total over the ten conditions; unknown conditions match
// nothing.
func EvaluateCriterion(c types.Criterion, fieldValue any) bool {
	switch c.Condition {
	case types.ConditionEquals:
		return valuesEqual(fieldValue, c.Value)
	case types.ConditionNotEquals:
		return !valuesEqual(fieldValue, c.Value)
	case types.ConditionEmpty:
		return isEmpty(fieldValue)
	case types.ConditionNotEmpty:
		return !isEmpty(fieldValue)
	case types.ConditionContains:
		return containsFold(fieldValue, c.Value)
	case types.ConditionNotContains:
		return !containsFold(fieldValue, c.Value)
	case types.ConditionLessThan:
		a, b, ok := bothNumbers(fieldValue, c.Value)
		return ok && a < b
	case types.ConditionGreaterThan:
		a, b, ok := bothNumbers(fieldValue, c.Value)
		return ok && a > b
	case types.ConditionIsTrue:
		return types.Truthy(fieldValue)
	case types.ConditionIsFalse:
		return !types.Truthy(fieldValue)
	default:
		return false
	}
}

// Matches reports whether the record needs attention under the rule set:
// enabled criteria combined with AND (all must match) or OR (any must
// match). With zero enabled criteria the record does not need attention;
// the vacuous case is "match nothing", not "match everything".
func Matches(rs *types.RuleSet, record types.Record) bool {
	enabled := rs.EnabledCriteria()
	if len(enabled) == 0 {
		return false
	}
	if rs.Operator == types.OperatorOR {
		for _, c := range enabled {
			if EvaluateCriterion(c, record.Field(c.FieldName)) {
				return true
			}
		}
		return false
	}
	for _, c := range enabled {
		if !EvaluateCriterion(c, record.Field(c.FieldName)) {
			return false
		}
	}
	return true
}

// Select returns the records matching the rule set, preserving input
// order. A nil or disabled rule set selects nothing, without evaluating
// any record. Returns an empty slice (not nil) when nothing matches.
func Select(rs *types.RuleSet, records []types.Record) []types.Record {
	out := make([]types.Record, 0)
	if rs == nil || !rs.Enabled {
		return out
	}
	for _, r := range records {
		if Matches(rs, r) {
			out = append(out, r)
		}
	}
	return out
}

// isEmpty treats only nil and the empty string as empty. Zero, false, and
// empty sequences are present values; "empty" means "nothing entered",
// not "falsy".
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// valuesEqual is structural equality over normalized values, with numeric
// kinds unified first so a stored int operand equals a wire float64.
func valuesEqual(a, b any) bool {
	return reflect.DeepEqual(canonical(a), canonical(b))
}

func canonical(v any) any {
	if n, ok := asNumber(v); ok {
		return n
	}
	if items, ok := v.([]any); ok {
		out := make([]string, 0, len(items))
		for _, e := range items {
			s, ok := e.(string)
			if !ok {
				return v
			}
			out = append(out, s)
		}
		return out
	}
	return v
}

// containsFold is a case-insensitive substring test, defined only when
// both operands are strings. A type mismatch means "cannot contain" and
// never raises; not_contains inverts it to true.
func containsFold(fieldValue, operand any) bool {
	fs, ok := fieldValue.(string)
	if !ok {
		return false
	}
	os, ok := operand.(string)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(fs), strings.ToLower(os))
}

// bothNumbers extracts float64s from both operands; ordering conditions
// are defined only when both are numbers.
func bothNumbers(a, b any) (float64, float64, bool) {
	x, ok := asNumber(a)
	if !ok {
		return 0, 0, false
	}
	y, ok := asNumber(b)
	if !ok {
		return 0, 0, false
	}
	return x, y, true
}

func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}
