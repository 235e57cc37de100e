package normalize

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/jomei/notionapi"

	"github.com/shelfwatch/shelfwatch/pkg/types"
)

// FileRef is a flat external-file reference accepted by the write
// direction of files fields.
type FileRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Property converts a flat value back into the wire property for the
// named field, consulting the schema to pick the tag.
// Returns ErrUnknownField if the schema has no such field,
// ErrReadOnlyField for computed/system tags, ErrTypeConversion when the
// value cannot be coerced to the tag's payload shape, and
// ErrUnsupportedType for tags outside the known nineteen. Errors are
// returned, never swallowed: silently dropping a field would produce a
// partial update the user did not request.
func Property(fieldName string, value any, schema types.Schema) (notionapi.Property, error) {
	def, ok := schema[fieldName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownField, fieldName)
	}
	p, err := propertyForType(def.Type, value)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", fieldName, err)
	}
	return p, nil
}

func propertyForType(fieldType string, value any) (notionapi.Property, error) {
	switch fieldType {
	case types.TypeCheckbox:
		return &notionapi.CheckboxProperty{
			Type:     notionapi.PropertyTypeCheckbox,
			Checkbox: types.Truthy(value),
		}, nil

	case types.TypeNumber:
		n, err := toNumber(value)
		if err != nil {
			return nil, err
		}
		return &notionapi.NumberProperty{
			Type:   notionapi.PropertyTypeNumber,
			Number: n,
		}, nil

	case types.TypeDate:
		start, err := toDate(value)
		if err != nil {
			return nil, err
		}
		return &DateProperty{
			Type: notionapi.PropertyTypeDate,
			Date: DateObject{Start: PlainDate(start)},
		}, nil

	case types.TypeSelect:
		return &notionapi.SelectProperty{
			Type:   notionapi.PropertyTypeSelect,
			Select: toOption(value),
		}, nil

	case types.TypeStatus:
		return &notionapi.StatusProperty{
			Type:   notionapi.PropertyTypeStatus,
			Status: notionapi.Status(toOption(value)),
		}, nil

	case types.TypeMultiSelect:
		items := toStringList(value)
		opts := make([]notionapi.Option, 0, len(items))
		for _, s := range items {
			opts = append(opts, notionapi.Option{Name: s})
		}
		return &notionapi.MultiSelectProperty{
			Type:        notionapi.PropertyTypeMultiSelect,
			MultiSelect: opts,
		}, nil

	case types.TypeRelation:
		return &notionapi.RelationProperty{
			Type:     notionapi.PropertyTypeRelation,
			Relation: toRelations(value),
		}, nil

	case types.TypeTitle:
		return &notionapi.TitleProperty{
			Type:  notionapi.PropertyTypeTitle,
			Title: textRuns(value),
		}, nil

	case types.TypeRichText:
		return &notionapi.RichTextProperty{
			Type:     notionapi.PropertyTypeRichText,
			RichText: textRuns(value),
		}, nil

	case types.TypeFiles:
		return &notionapi.FilesProperty{
			Type:  notionapi.PropertyTypeFiles,
			Files: toFiles(value),
		}, nil

	case types.TypeURL:
		return &notionapi.URLProperty{
			Type: notionapi.PropertyTypeURL,
			URL:  flatString(value),
		}, nil

	case types.TypeEmail:
		return &notionapi.EmailProperty{
			Type:  notionapi.PropertyTypeEmail,
			Email: flatString(value),
		}, nil

	case types.TypePhoneNumber:
		return &notionapi.PhoneNumberProperty{
			Type:        notionapi.PropertyTypePhoneNumber,
			PhoneNumber: flatString(value),
		}, nil

	default:
		if types.ReadOnlyFieldType(fieldType) {
			return nil, types.ErrReadOnlyField
		}
		return nil, fmt.Errorf("%w: %q", types.ErrUnsupportedType, fieldType)
	}
}

// toNumber coerces the value to a finite float64.
func toNumber(value any) (float64, error) {
	var n float64
	switch t := value.(type) {
	case float64:
		n = t
	case float32:
		n = float64(t)
	case int:
		n = float64(t)
	case int32:
		n = float64(t)
	case int64:
		n = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not numeric", types.ErrTypeConversion, t)
		}
		n = parsed
	default:
		return 0, fmt.Errorf("%w: %T is not numeric", types.ErrTypeConversion, value)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%w: number is not finite", types.ErrTypeConversion)
	}
	return n, nil
}

// DateProperty is the write form of a date field. The library's Date
// marshals as a full RFC3339 timestamp, which the remote store keeps as
// a date-time; a plain date must go over the wire as YYYY-MM-DD.
type DateProperty struct {
	Type notionapi.PropertyType `json:"type,omitempty"`
	Date DateObject             `json:"date"`
}

type DateObject struct {
	Start PlainDate  `json:"start"`
	End   *PlainDate `json:"end,omitempty"`
}

// PlainDate marshals as a date without a time component.
type PlainDate time.Time

func (d PlainDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(d).Format("2006-01-02") + `"`), nil
}

func (p *DateProperty) GetID() string { return "" }

func (p *DateProperty) GetType() notionapi.PropertyType { return p.Type }

// toDate accepts a time.Time or an ISO date/date-time string and returns
// the date-only start, truncated to midnight UTC.
func toDate(value any) (time.Time, error) {
	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v
	case notionapi.Date:
		t = time.Time(v)
	case string:
		parsed, err := parseISO(v)
		if err != nil {
			return time.Time{}, err
		}
		t = parsed
	default:
		return time.Time{}, fmt.Errorf("%w: %T is not a date", types.ErrTypeConversion, value)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

func parseISO(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q is not an ISO date", types.ErrTypeConversion, s)
}

// toOption wraps the value as a select/status option. A value that is
// already an option-shaped object passes through by name rather than
// being re-stringified, so an already-tagged selection is not corrupted.
func toOption(value any) notionapi.Option {
	switch v := value.(type) {
	case notionapi.Option:
		return v
	case types.Option:
		return notionapi.Option{ID: notionapi.PropertyID(v.ID), Name: v.Name}
	case map[string]any:
		if name, ok := v["name"].(string); ok {
			return notionapi.Option{Name: name}
		}
	}
	return notionapi.Option{Name: flatString(value)}
}

// toStringList coerces the value to an ordered string sequence, wrapping
// a scalar into a single-element sequence. Nil yields an empty sequence,
// which clears the field remotely.
func toStringList(value any) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			out = append(out, flatString(e))
		}
		return out
	default:
		return []string{flatString(value)}
	}
}

// toRelations accepts raw id strings or {id} objects, in a sequence or
// alone, and drops entries that resolve to neither.
func toRelations(value any) []notionapi.Relation {
	var entries []any
	switch v := value.(type) {
	case nil:
		return []notionapi.Relation{}
	case []any:
		entries = v
	case []string:
		entries = make([]any, len(v))
		for i, s := range v {
			entries[i] = s
		}
	default:
		entries = []any{value}
	}

	out := make([]notionapi.Relation, 0, len(entries))
	for _, e := range entries {
		switch t := e.(type) {
		case string:
			if t != "" {
				out = append(out, notionapi.Relation{ID: notionapi.PageID(t)})
			}
		case map[string]any:
			if id, ok := t["id"].(string); ok && id != "" {
				out = append(out, notionapi.Relation{ID: notionapi.PageID(id)})
			}
		}
	}
	return out
}

// textRuns wraps the stringified value as a single text run.
func textRuns(value any) []notionapi.RichText {
	s := flatString(value)
	return []notionapi.RichText{{
		Text:      &notionapi.Text{Content: s},
		PlainText: s,
	}}
}

// toFiles accepts a sequence of {name, url} references and emits one
// external-file reference per entry; entries without a url are dropped.
func toFiles(value any) []notionapi.File {
	var entries []any
	switch v := value.(type) {
	case nil:
		return []notionapi.File{}
	case []any:
		entries = v
	case []FileRef:
		entries = make([]any, len(v))
		for i, f := range v {
			entries[i] = f
		}
	case FileRef:
		entries = []any{v}
	case map[string]any:
		entries = []any{v}
	default:
		return []notionapi.File{}
	}

	out := make([]notionapi.File, 0, len(entries))
	for _, e := range entries {
		var name, url string
		switch t := e.(type) {
		case FileRef:
			name, url = t.Name, t.URL
		case map[string]any:
			name, _ = t["name"].(string)
			url, _ = t["url"].(string)
		}
		if url == "" {
			continue
		}
		if name == "" {
			name = url
		}
		out = append(out, notionapi.File{
			Name:     name,
			Type:     notionapi.FileTypeExternal,
			External: &notionapi.FileObject{URL: url},
		})
	}
	return out
}
