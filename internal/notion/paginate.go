package notion

import (
	"context"
	"fmt"
)

// QueryAll pages through a database until has_more is false. Each page is
// awaited before the next is requested.
func QueryAll(ctx context.Context, src Source, databaseID string) ([]Record, error) {
	var (
		out    []Record
		cursor string
		seen   = make(map[string]struct{})
	)
	for {
		res, err := src.Query(ctx, databaseID, Query{StartCursor: cursor})
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", databaseID, err)
		}
		out = append(out, res.Results...)

		if !res.HasMore || res.NextCursor == "" {
			return out, nil
		}
		if _, dup := seen[res.NextCursor]; dup {
			return nil, fmt.Errorf("query %s: cursor %q repeated", databaseID, res.NextCursor)
		}
		seen[res.NextCursor] = struct{}{}
		cursor = res.NextCursor
	}
}
