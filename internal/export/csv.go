// Package export renders normalized records to CSV and XLSX files.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/shelfwatch/shelfwatch/pkg/types"
)

// CSV writes records as comma-separated values: a header of "Page ID"
// plus the given field names, then one row per record in input order.
func CSV(w io.Writer, fields []string, records []types.Record) error {
	cw := csv.NewWriter(w)

	header := append([]string{"Page ID"}, fields...)
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for _, rec := range records {
		row[0] = rec.PageID
		for i, f := range fields {
			row[i+1] = Cell(rec.Field(f))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Cell renders one normalized value for a spreadsheet cell. Sequences
// join with ", "; nil renders empty.
func Cell(v any) string {
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
		return strings.Join(t, ", ")
	default:
		return ""
	}
}
