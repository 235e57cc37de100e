package types

import "time"

// Record is one row of the remote database in flat form: field values are
// already normalized (string, float64, bool, or []string). Normalized
// values are never persisted; they are recomputed from the wire form on
// every read.
type Record struct {
	PageID         string         // Opaque page id, assigned by the remote store, never reused.
	CreatedTime    time.Time      // Store-assigned, read-only.
	LastEditedTime time.Time      // Store-assigned, read-only.
	Fields         map[string]any // Normalized value per field name.
}

// Field returns the normalized value of the named field, or nil if the
// record has no such field. A nil result is indistinguishable from an
// absent field on purpose; the evaluator treats both as empty.
func (r Record) Field(name string) any {
	if r.Fields == nil {
		return nil
	}
	return r.Fields[name]
}
