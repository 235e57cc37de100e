package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jomei/notionapi"

	"github.com/shelfwatch/shelfwatch/pkg/types"
)

// Value converts one wire property into its flat form. It is total over
// the nineteen known tags; remote schemas evolve independently of this
// system, so unknown tags get a best-effort stringification rather than a
// failure on read.
func Value(p notionapi.Property) (any, error) {
	switch v := p.(type) {
	case nil:
		return nil, types.ErrUnsupportedType
	case *notionapi.TitleProperty:
		return plainText(v.Title), nil
	case *notionapi.RichTextProperty:
		return plainText(v.RichText), nil
	case *notionapi.NumberProperty:
		return v.Number, nil
	case *notionapi.SelectProperty:
		return v.Select.Name, nil
	case *notionapi.StatusProperty:
		return v.Status.Name, nil
	case *notionapi.MultiSelectProperty:
		names := make([]string, 0, len(v.MultiSelect))
		for _, o := range v.MultiSelect {
			names = append(names, o.Name)
		}
		return names, nil
	case *notionapi.DateProperty:
		if v.Date == nil || v.Date.Start == nil {
			return "", nil
		}
		return isoTime(time.Time(*v.Date.Start)), nil
	case *notionapi.CheckboxProperty:
		return v.Checkbox, nil
	case *notionapi.URLProperty:
		return v.URL, nil
	case *notionapi.EmailProperty:
		return v.Email, nil
	case *notionapi.PhoneNumberProperty:
		return v.PhoneNumber, nil
	case *notionapi.RelationProperty:
		ids := make([]string, 0, len(v.Relation))
		for _, r := range v.Relation {
			ids = append(ids, string(r.ID))
		}
		return ids, nil
	case *notionapi.RollupProperty:
		return rollupValue(v.Rollup)
	case *notionapi.FormulaProperty:
		return formulaValue(v.Formula), nil
	case *notionapi.PeopleProperty:
		names := make([]string, 0, len(v.People))
		for _, u := range v.People {
			names = append(names, userName(u))
		}
		return names, nil
	case *notionapi.FilesProperty:
		names := make([]string, 0, len(v.Files))
		for _, f := range v.Files {
			names = append(names, fileName(f))
		}
		return names, nil
	case *notionapi.CreatedTimeProperty:
		return isoTime(v.CreatedTime), nil
	case *notionapi.LastEditedTimeProperty:
		return isoTime(v.LastEditedTime), nil
	case *notionapi.CreatedByProperty:
		return userName(v.CreatedBy), nil
	case *notionapi.LastEditedByProperty:
		return userName(v.LastEditedBy), nil
	case *notionapi.UniqueIDProperty:
		if v.UniqueID.Prefix != nil {
			return fmt.Sprintf("%s-%d", *v.UniqueID.Prefix, v.UniqueID.Number), nil
		}
		return strconv.Itoa(v.UniqueID.Number), nil
	default:
		raw, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %T", types.ErrUnsupportedType, p)
		}
		return string(raw), nil
	}
}

// Page converts a whole wire page into a Record with normalized fields.
// A field that fails to normalize aborts the record; partial records
// would silently misreport field values downstream.
func Page(page notionapi.Page) (types.Record, error) {
	rec := types.Record{
		PageID:         string(page.ID),
		CreatedTime:    page.CreatedTime,
		LastEditedTime: page.LastEditedTime,
		Fields:         make(map[string]any, len(page.Properties)),
	}
	for name, prop := range page.Properties {
		v, err := Value(prop)
		if err != nil {
			return types.Record{}, fmt.Errorf("field %q: %w", name, err)
		}
		rec.Fields[name] = v
	}
	return rec, nil
}

// plainText concatenates the plain text of every run in order.
func plainText(runs []notionapi.RichText) string {
	var s string
	for _, r := range runs {
		s += r.PlainText
	}
	return s
}

// rollupValue normalizes a rollup by its computed kind: scalar kinds pass
// through, array rollups recurse element-wise into a string sequence.
func rollupValue(r notionapi.Rollup) (any, error) {
	switch string(r.Type) {
	case "number":
		return r.Number, nil
	case "date":
		if r.Date == nil || r.Date.Start == nil {
			return "", nil
		}
		return isoTime(time.Time(*r.Date.Start)), nil
	case "array":
		out := make([]string, 0, len(r.Array))
		for _, elem := range r.Array {
			v, err := Value(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, flatString(v))
		}
		return out, nil
	default:
		return "", nil
	}
}

// formulaValue normalizes a formula's computed value, which itself
// carries a tag.
func formulaValue(f notionapi.Formula) any {
	switch string(f.Type) {
	case "string":
		return f.String
	case "number":
		return f.Number
	case "boolean":
		return f.Boolean
	case "date":
		if f.Date == nil || f.Date.Start == nil {
			return ""
		}
		return isoTime(time.Time(*f.Date.Start))
	default:
		return ""
	}
}

// userName returns the person's display name, falling back to the id.
func userName(u notionapi.User) string {
	if u.Name != "" {
		return u.Name
	}
	return string(u.ID)
}

// fileName returns the file's name, falling back to its external or
// hosted URL.
func fileName(f notionapi.File) string {
	if f.Name != "" {
		return f.Name
	}
	if f.External != nil {
		return f.External.URL
	}
	if f.File != nil {
		return f.File.URL
	}
	return ""
}

// isoTime renders a timestamp the way the wire format carries it.
func isoTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// flatString renders any normalized value as a single string, used when
// rollup elements of mixed kinds are collected into one sequence.
func flatString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []string:
		s := ""
		for i, e := range t {
			if i > 0 {
				s += ", "
			}
			s += e
		}
		return s
	default:
		return fmt.Sprintf("%v", t)
	}
}
