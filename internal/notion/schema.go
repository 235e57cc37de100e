package notion

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jomei/notionapi"

	"github.com/shelfwatch/shelfwatch/pkg/normalize"
	"github.com/shelfwatch/shelfwatch/pkg/types"
)

// fetchSchema reads the database definition and builds the field-name to
// definition map, then resolves relation fields to {id, name} pairs by
// listing their target databases.
func (c *Client) fetchSchema(ctx context.Context) (types.Schema, error) {
	db, err := c.db.Get(ctx, c.databaseID)
	if err != nil {
		return nil, fmt.Errorf("get database: %w", err)
	}

	schema := make(types.Schema, len(db.Properties))
	relationTargets := make(map[string]notionapi.DatabaseID)

	for name, cfg := range db.Properties {
		def := types.FieldDef{
			ID:   configID(cfg),
			Type: string(cfg.GetType()),
		}
		switch v := cfg.(type) {
		case *notionapi.SelectPropertyConfig:
			def.Options = convertOptions(v.Select.Options)
		case *notionapi.MultiSelectPropertyConfig:
			def.Options = convertOptions(v.MultiSelect.Options)
		case *notionapi.StatusPropertyConfig:
			def.Options = convertOptions(v.Status.Options)
		case *notionapi.RelationPropertyConfig:
			relationTargets[name] = v.Relation.DatabaseID
		}
		schema[name] = def
	}

	for name, targetID := range relationTargets {
		targets, err := c.fetchRelationTargets(ctx, targetID)
		if err != nil {
			return nil, fmt.Errorf("resolve relation %q: %w", name, err)
		}
		def := schema[name]
		def.Targets = targets
		schema[name] = def
	}

	return schema, nil
}

// fetchRelationTargets lists the target database and pairs each page id
// with its title, so relation values can be shown by name.
func (c *Client) fetchRelationTargets(ctx context.Context, databaseID notionapi.DatabaseID) ([]types.RelationTarget, error) {
	targets := make([]types.RelationTarget, 0)
	var cursor notionapi.Cursor
	for {
		resp, err := c.db.Query(ctx, databaseID, &notionapi.DatabaseQueryRequest{
			StartCursor: cursor,
			PageSize:    pageSize,
		})
		if err != nil {
			return nil, err
		}
		for _, page := range resp.Results {
			targets = append(targets, types.RelationTarget{
				ID:   string(page.ID),
				Name: pageTitle(page),
			})
		}
		if !resp.HasMore {
			return targets, nil
		}
		cursor = resp.NextCursor
	}
}

// pageTitle extracts the normalized title of a page, or "" if it has no
// title field.
func pageTitle(page notionapi.Page) string {
	for _, prop := range page.Properties {
		if string(prop.GetType()) != types.TypeTitle {
			continue
		}
		v, err := normalize.Value(prop)
		if err != nil {
			return ""
		}
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// convertOptions maps wire options into the schema's option set.
func convertOptions(opts []notionapi.Option) []types.Option {
	out := make([]types.Option, 0, len(opts))
	for _, o := range opts {
		out = append(out, types.Option{
			ID:    string(o.ID),
			Name:  o.Name,
			Color: string(o.Color),
		})
	}
	return out
}

// configID pulls the remote property id out of any config variant via its
// wire form; the id is metadata shared by every variant but not exposed
// on the common interface.
func configID(cfg notionapi.PropertyConfig) string {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return ""
	}
	var meta struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return ""
	}
	return meta.ID
}
