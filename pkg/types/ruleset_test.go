package types

import (
	"errors"
	"testing"
)

func TestRuleSetValidate(t *testing.T) {
	tests := []struct {
		name    string
		rs      RuleSet
		wantErr error
	}{
		{
			name:    "valid AND set",
			rs:      RuleSet{Name: "restock", Operator: OperatorAND},
			wantErr: nil,
		},
		{
			name:    "valid OR set with criteria",
			rs:      RuleSet{Name: "damaged", Operator: OperatorOR, Criteria: []Criterion{{FieldName: "Condition", Condition: ConditionEquals, Value: "Poor"}}},
			wantErr: nil,
		},
		{
			name:    "empty name",
			rs:      RuleSet{Operator: OperatorAND},
			wantErr: ErrInvalidName,
		},
		{
			name:    "bad operator",
			rs:      RuleSet{Name: "restock", Operator: "XOR"},
			wantErr: ErrInvalidOperator,
		},
		{
			name:    "invalid criterion surfaces",
			rs:      RuleSet{Name: "restock", Operator: OperatorAND, Criteria: []Criterion{{FieldName: "Qty", Condition: ConditionLessThan}}},
			wantErr: ErrMissingOperand,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.rs.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnabledCriteria(t *testing.T) {
	rs := RuleSet{
		Name:     "mixed",
		Operator: OperatorAND,
		Criteria: []Criterion{
			{FieldName: "a", Condition: ConditionEmpty, Enabled: true},
			{FieldName: "b", Condition: ConditionEmpty, Enabled: false},
			{FieldName: "c", Condition: ConditionEmpty, Enabled: true},
		},
	}
	got := rs.EnabledCriteria()
	if len(got) != 2 || got[0].FieldName != "a" || got[1].FieldName != "c" {
		t.Errorf("EnabledCriteria() = %v, want fields a and c in order", got)
	}

	none := RuleSet{Name: "none", Operator: OperatorOR}
	if got := none.EnabledCriteria(); got == nil || len(got) != 0 {
		t.Errorf("EnabledCriteria() with no criteria = %v, want empty non-nil slice", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"sqlite", Config{Backend: BackendSQLite, DataDir: "/tmp/x"}, nil},
		{"empty backend", Config{}, ErrBackendEmpty},
		{"unknown backend", Config{Backend: "postgres"}, ErrBackendUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
