package attention

import (
	"testing"

	"github.com/shelfwatch/shelfwatch/pkg/types"
)

func TestEvaluateCriterion(t *testing.T) {
	tests := []struct {
		name  string
		c     types.Criterion
		value any
		want  bool
	}{
		{"equals match", types.Criterion{FieldName: "Condition", Condition: types.ConditionEquals, Value: "Poor"}, "Poor", true},
		{"equals mismatch", types.Criterion{FieldName: "Condition", Condition: types.ConditionEquals, Value: "Poor"}, "Good", false},
		{"equals numeric kinds unify", types.Criterion{Condition: types.ConditionEquals, Value: 5}, float64(5), true},
		{"equals string sequences", types.Criterion{Condition: types.ConditionEquals, Value: []string{"a", "b"}}, []string{"a", "b"}, true},
		{"not equals", types.Criterion{Condition: types.ConditionNotEquals, Value: "Poor"}, "Good", true},

		{"empty nil", types.Criterion{Condition: types.ConditionEmpty}, nil, true},
		{"empty string", types.Criterion{Condition: types.ConditionEmpty}, "", true},
		// 0, false, and empty sequences are present, not empty.
		{"zero is not empty", types.Criterion{Condition: types.ConditionEmpty}, float64(0), false},
		{"false is not empty", types.Criterion{Condition: types.ConditionEmpty}, false, false},
		{"empty sequence is not empty", types.Criterion{Condition: types.ConditionEmpty}, []string{}, false},
		{"not empty", types.Criterion{Condition: types.ConditionNotEmpty}, "x", true},
		{"not empty on nil", types.Criterion{Condition: types.ConditionNotEmpty}, nil, false},

		{"contains case-insensitive", types.Criterion{Condition: types.ConditionContains, Value: "LAP"}, "Dell Laptop", true},
		{"contains miss", types.Criterion{Condition: types.ConditionContains, Value: "desk"}, "Dell Laptop", false},
		{"contains on number is false not error", types.Criterion{Condition: types.ConditionContains, Value: "lap"}, float64(42), false},
		{"not contains", types.Criterion{Condition: types.ConditionNotContains, Value: "desk"}, "Dell Laptop", true},
		{"not contains on type mismatch is true", types.Criterion{Condition: types.ConditionNotContains, Value: "lap"}, float64(42), true},

		{"less than", types.Criterion{Condition: types.ConditionLessThan, Value: float64(5)}, float64(3), true},
		{"less than miss", types.Criterion{Condition: types.ConditionLessThan, Value: float64(5)}, float64(9), false},
		{"less than on string is false", types.Criterion{Condition: types.ConditionLessThan, Value: float64(5)}, "3", false},
		{"greater than", types.Criterion{Condition: types.ConditionGreaterThan, Value: 10}, float64(11), true},
		{"greater than nil is false", types.Criterion{Condition: types.ConditionGreaterThan, Value: 10}, nil, false},

		{"is true", types.Criterion{Condition: types.ConditionIsTrue}, true, true},
		{"is true on non-empty string", types.Criterion{Condition: types.ConditionIsTrue}, "x", true},
		{"is false match", types.Criterion{Condition: types.ConditionIsFalse}, false, true},
		{"is false miss", types.Criterion{Condition: types.ConditionIsFalse}, true, false},
		// An absent field boolean-coerces to false.
		{"is false on missing value", types.Criterion{Condition: types.ConditionIsFalse}, nil, true},

		{"unknown condition matches nothing", types.Criterion{Condition: "matches"}, "x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EvaluateCriterion(tt.c, tt.value); got != tt.want {
				t.Errorf("EvaluateCriterion(%+v, %v) = %v, want %v", tt.c, tt.value, got, tt.want)
			}
		})
	}
}

func record(fields map[string]any) types.Record {
	return types.Record{PageID: "p", Fields: fields}
}

func TestMatches(t *testing.T) {
	poor := types.Criterion{FieldName: "Condition", Condition: types.ConditionEquals, Value: "Poor", Enabled: true}
	low := types.Criterion{FieldName: "Qty", Condition: types.ConditionLessThan, Value: float64(5), Enabled: true}
	out := types.Criterion{FieldName: "Stock Available", Condition: types.ConditionIsFalse, Enabled: true}

	rec := record(map[string]any{"Condition": "Poor", "Qty": float64(9), "Stock Available": false})

	tests := []struct {
		name string
		rs   types.RuleSet
		want bool
	}{
		{"no criteria matches nothing", types.RuleSet{Operator: types.OperatorAND, Enabled: true}, false},
		{"all disabled matches nothing", types.RuleSet{Operator: types.OperatorOR, Enabled: true,
			Criteria: []types.Criterion{{FieldName: "Condition", Condition: types.ConditionEquals, Value: "Poor"}}}, false},
		{"AND all match", types.RuleSet{Operator: types.OperatorAND, Enabled: true,
			Criteria: []types.Criterion{poor, out}}, true},
		{"AND one misses", types.RuleSet{Operator: types.OperatorAND, Enabled: true,
			Criteria: []types.Criterion{poor, low, out}}, false},
		{"OR one matches", types.RuleSet{Operator: types.OperatorOR, Enabled: true,
			Criteria: []types.Criterion{low, poor}}, true},
		{"OR none match", types.RuleSet{Operator: types.OperatorOR, Enabled: true,
			Criteria: []types.Criterion{low}}, false},
		{"single criterion", types.RuleSet{Operator: types.OperatorAND, Enabled: true,
			Criteria: []types.Criterion{poor}}, true},
		{"disabled criterion skipped under AND", types.RuleSet{Operator: types.OperatorAND, Enabled: true,
			Criteria: []types.Criterion{poor, {FieldName: "Qty", Condition: types.ConditionLessThan, Value: float64(5)}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(&tt.rs, rec); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	rs := &types.RuleSet{
		Name: "restock", Operator: types.OperatorOR, Enabled: true,
		Criteria: []types.Criterion{
			{FieldName: "Qty", Condition: types.ConditionLessThan, Value: float64(5), Enabled: true},
		},
	}
	records := []types.Record{
		{PageID: "a", Fields: map[string]any{"Qty": float64(2)}},
		{PageID: "b", Fields: map[string]any{"Qty": float64(50)}},
		{PageID: "c", Fields: map[string]any{"Qty": float64(1)}},
	}

	got := Select(rs, records)
	if len(got) != 2 || got[0].PageID != "a" || got[1].PageID != "c" {
		t.Errorf("Select() = %v, want records a and c in order", got)
	}

	// A disabled rule set selects nothing, regardless of criteria.
	disabled := *rs
	disabled.Enabled = false
	if got := Select(&disabled, records); len(got) != 0 {
		t.Errorf("Select() with disabled rule set = %v, want empty", got)
	}
	if got := Select(&disabled, records); got == nil {
		t.Error("Select() must return an empty slice, not nil")
	}

	if got := Select(nil, records); len(got) != 0 {
		t.Errorf("Select(nil) = %v, want empty", got)
	}
}
