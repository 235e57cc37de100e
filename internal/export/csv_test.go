package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/shelfwatch/shelfwatch/pkg/types"
)

func exportRecords() []types.Record {
	return []types.Record{
		{PageID: "p1", Fields: map[string]any{
			"Name":            "Projector",
			"Qty":             float64(3),
			"Stock Available": true,
			"Tags":            []string{"AV", "Meeting"},
		}},
		{PageID: "p2", Fields: map[string]any{
			"Name": "Cable, HDMI",
			"Qty":  float64(40),
		}},
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	err := CSV(&buf, []string{"Name", "Qty", "Stock Available", "Tags"}, exportRecords())
	require.NoError(t, err)

	want := "Page ID,Name,Qty,Stock Available,Tags\n" +
		"p1,Projector,3,true,\"AV, Meeting\"\n" +
		"p2,\"Cable, HDMI\",40,,\n"
	assert.Equal(t, want, buf.String())
}

func TestCell(t *testing.T) {
	tests := []struct {
		v    any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{true, "true"},
		{float64(2.5), "2.5"},
		{float64(40), "40"},
		{[]string{"a", "b"}, "a, b"},
	}
	for _, tt := range tests {
		if got := Cell(tt.v); got != tt.want {
			t.Errorf("Cell(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.xlsx")
	err := XLSX(path, []string{"Name", "Qty"}, exportRecords())
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Inventory")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Page ID", "Name", "Qty"}, rows[0])
	assert.Equal(t, "Projector", rows[1][1])
	assert.Equal(t, "3", rows[1][2])
}
