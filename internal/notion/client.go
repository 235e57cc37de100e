// Package notion wraps the Notion API behind the four operations the
// rest of the system needs: schema fetch, bulk record fetch, single
// record search, and partial record update. Records leave this package
// already normalized; flat values entering it are denormalized against
// the cached schema before anything is sent.
package notion

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jomei/notionapi"

	"github.com/shelfwatch/shelfwatch/pkg/normalize"
	"github.com/shelfwatch/shelfwatch/pkg/types"
)

// pageSize is the Notion API's maximum query page size.
const pageSize = 100

// DatabaseAPI is the slice of the Notion database service the client uses.
type DatabaseAPI interface {
	Get(ctx context.Context, id notionapi.DatabaseID) (*notionapi.Database, error)
	Query(ctx context.Context, id notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
}

// PageAPI is the slice of the Notion page service the client uses.
type PageAPI interface {
	Update(ctx context.Context, id notionapi.PageID, req *notionapi.PageUpdateRequest) (*notionapi.Page, error)
}

// Client is a connection to one Notion database. The schema is fetched
// once per connection and cached; RefreshSchema discards the cache.
type Client struct {
	databaseID notionapi.DatabaseID
	db         DatabaseAPI
	pages      PageAPI

	mu     sync.Mutex
	schema types.Schema
}

// NewClient connects to the database using an integration token.
func NewClient(token, databaseID string) *Client {
	api := notionapi.NewClient(notionapi.Token(token))
	return NewClientWithAPI(api.Database, api.Page, databaseID)
}

// NewClientWithAPI connects using caller-provided services. Tests inject
// fakes here.
func NewClientWithAPI(db DatabaseAPI, pages PageAPI, databaseID string) *Client {
	return &Client{
		databaseID: notionapi.DatabaseID(databaseID),
		db:         db,
		pages:      pages,
	}
}

// Schema returns the cached schema, fetching it on first use.
func (c *Client) Schema(ctx context.Context) (types.Schema, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.schema != nil {
		return c.schema, nil
	}
	schema, err := c.fetchSchema(ctx)
	if err != nil {
		return nil, err
	}
	c.schema = schema
	return schema, nil
}

// RefreshSchema discards the cached schema so the next call fetches it
// again.
func (c *Client) RefreshSchema() {
	c.mu.Lock()
	c.schema = nil
	c.mu.Unlock()
}

// FetchAllRecords returns every record of the database, normalized, in
// the store's order. Pages through the query in batches of up to 100
// until the store reports no more.
func (c *Client) FetchAllRecords(ctx context.Context) ([]types.Record, error) {
	records := make([]types.Record, 0)
	var cursor notionapi.Cursor
	for {
		resp, err := c.db.Query(ctx, c.databaseID, &notionapi.DatabaseQueryRequest{
			StartCursor: cursor,
			PageSize:    pageSize,
		})
		if err != nil {
			return nil, fmt.Errorf("query database: %w", err)
		}
		for _, page := range resp.Results {
			rec, err := normalize.Page(page)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
		if !resp.HasMore {
			return records, nil
		}
		cursor = resp.NextCursor
	}
}

// SearchRecord returns the first record whose named field matches the
// query, or nil when nothing matches. Title and rich_text fields are
// filtered server-side; every other field type falls back to a scan of
// the normalized values, comparing strings case-insensitively.
func (c *Client) SearchRecord(ctx context.Context, fieldName, query string) (*types.Record, error) {
	schema, err := c.Schema(ctx)
	if err != nil {
		return nil, err
	}
	fieldType, err := schema.FieldType(fieldName)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", fieldName, err)
	}

	if filter := serverFilter(fieldName, fieldType, query); filter != nil {
		resp, err := c.db.Query(ctx, c.databaseID, &notionapi.DatabaseQueryRequest{
			Filter:   filter,
			PageSize: 1,
		})
		if err != nil {
			return nil, fmt.Errorf("query database: %w", err)
		}
		if len(resp.Results) == 0 {
			return nil, nil
		}
		rec, err := normalize.Page(resp.Results[0])
		if err != nil {
			return nil, err
		}
		return &rec, nil
	}

	records, err := c.FetchAllRecords(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if fieldMatches(records[i].Field(fieldName), query) {
			return &records[i], nil
		}
	}
	return nil, nil
}

// UpdateRecord sends a partial update carrying only the given fields.
// Every field is denormalized first; any conversion failure aborts the
// whole update before the API call, so a partial write the user did not
// request can never happen.
func (c *Client) UpdateRecord(ctx context.Context, pageID string, fields map[string]any) error {
	schema, err := c.Schema(ctx)
	if err != nil {
		return err
	}
	props := notionapi.Properties{}
	for name, value := range fields {
		p, err := normalize.Property(name, value, schema)
		if err != nil {
			return err
		}
		props[name] = p
	}
	if _, err := c.pages.Update(ctx, notionapi.PageID(pageID), &notionapi.PageUpdateRequest{
		Properties: props,
	}); err != nil {
		return fmt.Errorf("update page %s: %w", pageID, err)
	}
	return nil
}

// serverFilter builds a query filter for field types the API can match
// directly; nil means the caller must scan client-side.
func serverFilter(fieldName, fieldType, query string) notionapi.Filter {
	switch fieldType {
	case types.TypeTitle, types.TypeRichText:
		// The title condition is text-shaped on the wire; the filter
		// speaks rich_text for both tags.
		return notionapi.PropertyFilter{
			Property: fieldName,
			RichText: &notionapi.TextFilterCondition{Equals: query},
		}
	default:
		return nil
	}
}

// fieldMatches compares a normalized value against the query string:
// case-insensitive equality for strings, membership for sequences,
// rendered equality for everything else.
func fieldMatches(value any, query string) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return strings.EqualFold(v, query)
	case []string:
		for _, e := range v {
			if strings.EqualFold(e, query) {
				return true
			}
		}
		return false
	default:
		return fmt.Sprintf("%v", v) == query
	}
}
