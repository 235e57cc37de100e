// Package integration tests shelfwatch end to end: records come in over a
// fake Notion API, get normalized, are evaluated against a rule set loaded
// from the sqlite store, and go out through the exporters.
package integration

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwatch/shelfwatch/internal/export"
	"github.com/shelfwatch/shelfwatch/internal/notion"
	"github.com/shelfwatch/shelfwatch/pkg/attention"
	"github.com/shelfwatch/shelfwatch/pkg/types"
)

type fakeDatabase struct {
	database *notionapi.Database
	pages    map[notionapi.DatabaseID][]notionapi.Page
}

func (f *fakeDatabase) Get(_ context.Context, id notionapi.DatabaseID) (*notionapi.Database, error) {
	return f.database, nil
}

func (f *fakeDatabase) Query(_ context.Context, id notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	return &notionapi.DatabaseQueryResponse{Results: f.pages[id]}, nil
}

type fakePages struct {
	updates map[notionapi.PageID]*notionapi.PageUpdateRequest
}

func (f *fakePages) Update(_ context.Context, id notionapi.PageID, req *notionapi.PageUpdateRequest) (*notionapi.Page, error) {
	if f.updates == nil {
		f.updates = make(map[notionapi.PageID]*notionapi.PageUpdateRequest)
	}
	f.updates[id] = req
	return &notionapi.Page{ID: notionapi.ObjectID(id)}, nil
}

func titleProp(s string) *notionapi.TitleProperty {
	return &notionapi.TitleProperty{
		Type:  notionapi.PropertyTypeTitle,
		Title: []notionapi.RichText{{Text: &notionapi.Text{Content: s}, PlainText: s}},
	}
}

// inventoryDatabase is a small three-record inventory: one item out of
// stock, one in poor condition, one fine.
func inventoryDatabase() *fakeDatabase {
	return &fakeDatabase{
		database: &notionapi.Database{Properties: notionapi.PropertyConfigs{
			"Name": &notionapi.TitlePropertyConfig{Type: "title"},
			"Qty":  &notionapi.NumberPropertyConfig{Type: "number"},
			"Condition": &notionapi.SelectPropertyConfig{
				Type: "select",
				Select: notionapi.Select{Options: []notionapi.Option{
					{Name: "Good", Color: "green"},
					{Name: "Poor", Color: "red"},
				}},
			},
		}},
		pages: map[notionapi.DatabaseID][]notionapi.Page{
			"db-main": {
				{
					ID: "p1",
					Properties: notionapi.Properties{
						"Name":      titleProp("Projector"),
						"Qty":       &notionapi.NumberProperty{Type: notionapi.PropertyTypeNumber, Number: 0},
						"Condition": &notionapi.SelectProperty{Type: notionapi.PropertyTypeSelect, Select: notionapi.Option{Name: "Good"}},
					},
				},
				{
					ID: "p2",
					Properties: notionapi.Properties{
						"Name":      titleProp("Laptop"),
						"Qty":       &notionapi.NumberProperty{Type: notionapi.PropertyTypeNumber, Number: 12},
						"Condition": &notionapi.SelectProperty{Type: notionapi.PropertyTypeSelect, Select: notionapi.Option{Name: "Poor"}},
					},
				},
				{
					ID: "p3",
					Properties: notionapi.Properties{
						"Name":      titleProp("Cable"),
						"Qty":       &notionapi.NumberProperty{Type: notionapi.PropertyTypeNumber, Number: 40},
						"Condition": &notionapi.SelectProperty{Type: notionapi.PropertyTypeSelect, Select: notionapi.Option{Name: "Good"}},
					},
				},
			},
		},
	}
}

// restockRuleSet flags records that are out of stock or in poor condition.
func restockRuleSet() *types.RuleSet {
	return &types.RuleSet{
		Name:     "restock",
		Operator: types.OperatorOR,
		Enabled:  true,
		Criteria: []types.Criterion{
			{FieldName: "Qty", FieldType: types.TypeNumber, Condition: types.ConditionLessThan, Value: 1.0, Enabled: true},
			{FieldName: "Condition", FieldType: types.TypeSelect, Condition: types.ConditionEquals, Value: "Poor", Enabled: true},
		},
	}
}

func TestFetchEvaluateExport(t *testing.T) {
	client := notion.NewClientWithAPI(inventoryDatabase(), &fakePages{}, "db-main")
	ctx := context.Background()

	schema, err := client.Schema(ctx)
	require.NoError(t, err)
	require.Len(t, schema, 3)
	assert.Equal(t, types.TypeSelect, schema["Condition"].Type)

	records, err := client.FetchAllRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)

	store, user := newTestStore(t)
	id, err := store.Save(user, restockRuleSet())
	require.NoError(t, err)
	require.NoError(t, store.SetActive(user, id))

	active, err := store.Active(user)
	require.NoError(t, err)

	flagged := attention.Select(active, records)
	require.Len(t, flagged, 2)
	assert.Equal(t, "Projector", flagged[0].Field("Name"), "out of stock")
	assert.Equal(t, "Laptop", flagged[1].Field("Name"), "poor condition")

	var buf bytes.Buffer
	require.NoError(t, export.CSV(&buf, []string{"Name", "Qty", "Condition"}, flagged))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Page ID,Name,Qty,Condition", lines[0])
	assert.Contains(t, lines[1], "Projector,0,Good")
	assert.Contains(t, lines[2], "Laptop,12,Poor")
}

func TestUpdateFlowsThroughDenormalization(t *testing.T) {
	pages := &fakePages{}
	client := notion.NewClientWithAPI(inventoryDatabase(), pages, "db-main")
	ctx := context.Background()

	rec, err := client.SearchRecord(ctx, "Name", "Projector")
	require.NoError(t, err)
	require.NotNil(t, rec)

	err = client.UpdateRecord(ctx, rec.PageID, map[string]any{
		"Qty":       5.0,
		"Condition": "Poor",
	})
	require.NoError(t, err)

	req := pages.updates[notionapi.PageID(rec.PageID)]
	require.NotNil(t, req)
	num, ok := req.Properties["Qty"].(*notionapi.NumberProperty)
	require.True(t, ok)
	assert.Equal(t, float64(5), num.Number)
	sel, ok := req.Properties["Condition"].(*notionapi.SelectProperty)
	require.True(t, ok)
	assert.Equal(t, "Poor", sel.Select.Name)
}

func TestUpdateAbortsBeforeAnyWrite(t *testing.T) {
	pages := &fakePages{}
	client := notion.NewClientWithAPI(inventoryDatabase(), pages, "db-main")

	err := client.UpdateRecord(context.Background(), "p1", map[string]any{
		"Qty":  "not a number",
		"Name": "Beamer",
	})
	require.ErrorIs(t, err, types.ErrTypeConversion)
	assert.Empty(t, pages.updates, "nothing reaches the API when one value fails")
}
