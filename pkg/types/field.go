package types

import "errors"

// Field types, named exactly as the Notion API tags them. The tag of a
// field is fixed for all records of one database; the payload shape is
// fully determined by the tag.
const (
	TypeTitle          = "title"
	TypeRichText       = "rich_text"
	TypeNumber         = "number"
	TypeSelect         = "select"
	TypeMultiSelect    = "multi_select"
	TypeDate           = "date"
	TypeCheckbox       = "checkbox"
	TypeURL            = "url"
	TypeEmail          = "email"
	TypePhoneNumber    = "phone_number"
	TypeRelation       = "relation"
	TypeRollup         = "rollup"
	TypeFormula        = "formula"
	TypePeople         = "people"
	TypeFiles          = "files"
	TypeCreatedTime    = "created_time"
	TypeCreatedBy      = "created_by"
	TypeLastEditedTime = "last_edited_time"
	TypeLastEditedBy   = "last_edited_by"
	TypeStatus         = "status"
)

// validFieldTypes is the set of recognized field types.
var validFieldTypes = map[string]bool{
	TypeTitle:          true,
	TypeRichText:       true,
	TypeNumber:         true,
	TypeSelect:         true,
	TypeMultiSelect:    true,
	TypeDate:           true,
	TypeCheckbox:       true,
	TypeURL:            true,
	TypeEmail:          true,
	TypePhoneNumber:    true,
	TypeRelation:       true,
	TypeRollup:         true,
	TypeFormula:        true,
	TypePeople:         true,
	TypeFiles:          true,
	TypeCreatedTime:    true,
	TypeCreatedBy:      true,
	TypeLastEditedTime: true,
	TypeLastEditedBy:   true,
	TypeStatus:         true,
}

// readOnlyFieldTypes are computed or assigned by the remote store and can
// never be written back through a record update.
var readOnlyFieldTypes = map[string]bool{
	TypeRollup:         true,
	TypeFormula:        true,
	TypePeople:         true,
	TypeCreatedTime:    true,
	TypeCreatedBy:      true,
	TypeLastEditedTime: true,
	TypeLastEditedBy:   true,
}

// Normalizer errors. Both directions surface these to the caller rather
// than substituting a default value; a silently-wrong field update is
// worse than a visible failure.
var (
	ErrTypeConversion  = errors.New("value cannot be converted to the field type")
	ErrReadOnlyField   = errors.New("field is read-only")
	ErrUnsupportedType = errors.New("unsupported field type")
	ErrUnknownField    = errors.New("field not present in schema")
)

// ValidFieldType reports whether the given string is a recognized field type.
func ValidFieldType(ft string) bool {
	return validFieldTypes[ft]
}

// ReadOnlyFieldType reports whether values of the given field type are
// computed/system-assigned and therefore rejected by denormalization.
func ReadOnlyFieldType(ft string) bool {
	return readOnlyFieldTypes[ft]
}

// Option is one permitted value of a select, multi_select, or status field.
type Option struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// RelationTarget is one resolved page of a relation field's target
// database, so relation ids can be displayed by name.
type RelationTarget struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FieldDef describes one field of a database: its remote ID, its type tag,
// the closed option set for select-like types, and the resolved targets
// for relation types.
type FieldDef struct {
	ID      string           `json:"id,omitempty"`
	Type    string           `json:"type"`
	Options []Option         `json:"options,omitempty"`
	Targets []RelationTarget `json:"targets,omitempty"`
}

// Schema maps field names to their definitions. It is fetched once per
// connection and consulted by the write direction of the normalizer to
// pick the tag to emit for a field name.
type Schema map[string]FieldDef

// FieldType returns the type tag for a field name.
// Returns ErrUnknownField if the schema has no field with that name.
func (s Schema) FieldType(name string) (string, error) {
	def, ok := s[name]
	if !ok {
		return "", ErrUnknownField
	}
	return def.Type, nil
}
