package ptero

import (
	"context"
	"net/http"

	"github.com/spf13/cast"
)

// DefaultDataKey is the payload key that holds list items.
const DefaultDataKey = "data"

// PageFunc receives the items of one page. Returning an error stops the walk.
type PageFunc func(page int, items []any) error

// ForEachPage requests path with page=1, 2, ... one request at a time and
// hands each page's items to fn.
//
// The walk continues only while meta.pagination.current_page and total_pages
// are both positive and current_page < total_pages. It never requests more
// than total_pages pages, even when the panel keeps reporting the same page. A page whose body is not
// a JSON object yields no items and ends the walk, so a response without
// pagination metadata produces exactly one request.
func ForEachPage(ctx context.Context, requester Requester, path string, params Params, dataKey string, fn PageFunc) error {
	if dataKey == "" {
		dataKey = DefaultDataKey
	}

	for page := 1; ; page++ {
		resp := requester.Do(ctx, http.MethodGet, path, params.With("page", page).Values(), nil)
		items, current, total := pageOf(resp, dataKey)

		if err := fn(page, items); err != nil {
			return err
		}

		if current <= 0 || total <= 0 || current >= total || page >= total {
			return nil
		}
	}
}

// CollectPages merges the items of every page in request order. Items from
// pages fetched before a failure are kept.
func CollectPages(ctx context.Context, requester Requester, path string, params Params, dataKey string) []any {
	var items []any

	_ = ForEachPage(ctx, requester, path, params, dataKey, func(_ int, chunk []any) error {
		items = append(items, chunk...)

		return nil
	})

	return items
}

func pageOf(resp *Response, dataKey string) ([]any, int, int) {
	if resp == nil || resp.Payload == nil {
		return nil, 0, 0
	}

	items, _ := resp.Payload[dataKey].([]any)

	meta, _ := resp.Payload["meta"].(map[string]any)
	pagination, _ := meta["pagination"].(map[string]any)

	return items, cast.ToInt(pagination["current_page"]), cast.ToInt(pagination["total_pages"])
}
