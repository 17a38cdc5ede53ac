package ptero

import (
	"github.com/spf13/cast"
)

// ItemResponse is a Response for a single resource.
type ItemResponse struct {
	*Response

	// ID is data.id as an integer, nil when data has no usable id.
	ID *int `json:"id,omitempty" yaml:"id,omitempty"`
}

// NewItemResponse derives an ItemResponse from resp.
func NewItemResponse(resp *Response) *ItemResponse {
	item := &ItemResponse{Response: resp}

	if data := resp.DataMap(); data != nil {
		if raw, ok := data["id"]; ok && raw != nil {
			if id, err := cast.ToIntE(raw); err == nil {
				item.ID = &id
			}
		}
	}

	return item
}

// Attributes returns data.attributes when present, else data itself. Client
// API list entries wrap each object this way.
func (r *ItemResponse) Attributes() map[string]any {
	return attributesOf(r.Data)
}

// ListResponse is a Response for a collection.
type ListResponse struct {
	*Response

	// Pagination is meta.pagination, or an empty map.
	Pagination map[string]any `json:"pagination" yaml:"pagination"`
}

// NewListResponse derives a ListResponse from resp.
func NewListResponse(resp *Response) *ListResponse {
	list := &ListResponse{Response: resp, Pagination: map[string]any{}}

	if meta := resp.MetaMap(); meta != nil {
		if pagination, ok := meta["pagination"].(map[string]any); ok {
			list.Pagination = pagination
		}
	}

	return list
}

// Items returns Data as a slice, or nil.
func (r *ListResponse) Items() []any {
	items, _ := r.Data.([]any)

	return items
}

// ItemAttributes returns the attributes object of every item.
func (r *ListResponse) ItemAttributes() []map[string]any {
	items := r.Items()
	out := make([]map[string]any, 0, len(items))

	for _, item := range items {
		if attrs := attributesOf(item); attrs != nil {
			out = append(out, attrs)
		}
	}

	return out
}

// CurrentPage returns pagination.current_page, or 0.
func (r *ListResponse) CurrentPage() int {
	return cast.ToInt(r.Pagination["current_page"])
}

// TotalPages returns pagination.total_pages, or 0.
func (r *ListResponse) TotalPages() int {
	return cast.ToInt(r.Pagination["total_pages"])
}

// Total returns pagination.total, or 0.
func (r *ListResponse) Total() int {
	return cast.ToInt(r.Pagination["total"])
}

// ActionResponse is a Response for an endpoint that performs an action.
type ActionResponse struct {
	*Response

	// Message is the error, else data.message, else data.meta.message.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// NewActionResponse derives an ActionResponse from resp.
func NewActionResponse(resp *Response) *ActionResponse {
	action := &ActionResponse{Response: resp, Message: resp.Error}
	if action.Message != "" {
		return action
	}

	data := resp.DataMap()
	if data == nil {
		return action
	}

	if msg, ok := data["message"].(string); ok && msg != "" {
		action.Message = msg

		return action
	}

	if meta, ok := data["meta"].(map[string]any); ok {
		if msg, ok := meta["message"].(string); ok {
			action.Message = msg
		}
	}

	return action
}

func attributesOf(value any) map[string]any {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	if attrs, ok := obj["attributes"].(map[string]any); ok {
		return attrs
	}

	return obj
}
