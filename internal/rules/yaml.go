// Package rules reads and writes rule sets as YAML documents, the
// exchange format of the criteria import/export commands.
package rules

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/shelfwatch/shelfwatch/pkg/types"
)

// ruleSetDoc is the YAML shape of a rule set. IDs are omitted on export
// and ignored on import; the store assigns them.
type ruleSetDoc struct {
	Name     string         `yaml:"name"`
	Operator string         `yaml:"operator"`
	Enabled  bool           `yaml:"enabled"`
	Criteria []criterionDoc `yaml:"criteria"`
}

type criterionDoc struct {
	Field       string `yaml:"field"`
	FieldType   string `yaml:"field_type,omitempty"`
	Condition   string `yaml:"condition"`
	Value       any    `yaml:"value,omitempty"`
	Priority    int    `yaml:"priority,omitempty"`
	Enabled     bool   `yaml:"enabled"`
	Description string `yaml:"description,omitempty"`
}

// Encode writes the rule set as a YAML document.
func Encode(w io.Writer, rs *types.RuleSet) error {
	doc := ruleSetDoc{
		Name:     rs.Name,
		Operator: rs.Operator,
		Enabled:  rs.Enabled,
		Criteria: make([]criterionDoc, 0, len(rs.Criteria)),
	}
	for _, c := range rs.Criteria {
		doc.Criteria = append(doc.Criteria, criterionDoc{
			Field:       c.FieldName,
			FieldType:   c.FieldType,
			Condition:   c.Condition,
			Value:       c.Value,
			Priority:    c.Priority,
			Enabled:     c.Enabled,
			Description: c.Description,
		})
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(doc)
}

// Decode reads a YAML document into a validated rule set.
func Decode(r io.Reader) (*types.RuleSet, error) {
	var doc ruleSetDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing rule set: %w", err)
	}

	rs := &types.RuleSet{
		Name:     doc.Name,
		Operator: doc.Operator,
		Enabled:  doc.Enabled,
		Criteria: make([]types.Criterion, 0, len(doc.Criteria)),
	}
	for _, c := range doc.Criteria {
		rs.Criteria = append(rs.Criteria, types.Criterion{
			FieldName:   c.Field,
			FieldType:   c.FieldType,
			Condition:   c.Condition,
			Value:       normalizeYAMLValue(c.Value),
			Priority:    c.Priority,
			Enabled:     c.Enabled,
			Description: c.Description,
		})
	}

	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return rs, nil
}

// normalizeYAMLValue lines YAML scalar decoding up with the normalized
// value kinds: integers become float64 like every other number in the
// system.
func normalizeYAMLValue(v any) any {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return v
	}
}
