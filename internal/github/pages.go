package github

import (
	"context"
	"iter"
)

type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

// Pages runs query once per page of a cursor connection. The query must
// declare a $cursor variable; pageInfo selects the connection's page info
// from a decoded page. Iteration stops after the last page, after the first
// error, or when the consumer breaks.
func Pages[T any](ctx context.Context, c *Client, token, query string, vars map[string]any, pageInfo func(*T) PageInfo) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		pageVars := make(map[string]any, len(vars)+1)
		for k, v := range vars {
			pageVars[k] = v
		}
		pageVars["cursor"] = nil

		for {
			page := new(T)
			if err := c.Query(ctx, token, query, pageVars, page); err != nil {
				yield(nil, err)
				return
			}
			if !yield(page, nil) {
				return
			}

			info := pageInfo(page)
			if !info.HasNextPage {
				return
			}
			pageVars["cursor"] = info.EndCursor
		}
	}
}
