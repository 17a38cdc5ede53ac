package ptero

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"reflect"
	"slices"
	"strings"

	"github.com/spf13/cast"
)

// Requester issues one request and normalizes the outcome. Implementations
// never fail: transport problems come back as a non-OK Response.
type Requester interface {
	Do(ctx context.Context, method, path string, query url.Values, body any) *Response
}

// Enum is implemented by the typed constants of this package. Params stores
// an Enum as its scalar value.
type Enum interface {
	Value() string
}

// Params is an immutable set of query parameters. Every method returns a new
// Params; the receiver is never changed.
type Params struct {
	values map[string]string
}

// NewParams returns an empty parameter set.
func NewParams() Params {
	return Params{}
}

// With sets key to value. A nil value removes the key.
func (p Params) With(key string, value any) Params {
	next := p.clone()
	if value == nil {
		delete(next.values, key)

		return next
	}

	next.values[key] = scalar(value)

	return next
}

// WithDefault sets key only when it is not already present.
func (p Params) WithDefault(key string, value any) Params {
	if p.Has(key) {
		return p
	}

	return p.With(key, value)
}

// Without removes key.
func (p Params) Without(key string) Params {
	return p.With(key, nil)
}

// Filter sets filter[field].
func (p Params) Filter(field string, value any) Params {
	return p.With("filter["+field+"]", value)
}

// Include appends relationships to the comma-separated include parameter.
// Values may be strings, Enums, or slices of either. Duplicates are dropped
// and first-seen order is kept.
func (p Params) Include(values ...any) Params {
	var merged []string

	if current, ok := p.values["include"]; ok && current != "" {
		merged = strings.Split(current, ",")
	}

	for _, value := range flatten(values) {
		if value == "" {
			continue
		}

		merged = append(merged, value)
	}

	seen := make(map[string]struct{}, len(merged))
	unique := make([]string, 0, len(merged))

	for _, value := range merged {
		if _, ok := seen[value]; ok {
			continue
		}

		seen[value] = struct{}{}
		unique = append(unique, value)
	}

	if len(unique) == 0 {
		return p
	}

	return p.With("include", strings.Join(unique, ","))
}

// Get returns the value for key or "".
func (p Params) Get(key string) string {
	return p.values[key]
}

// Has reports whether key is set.
func (p Params) Has(key string) bool {
	_, ok := p.values[key]

	return ok
}

// Len returns the number of parameters.
func (p Params) Len() int {
	return len(p.values)
}

// Values converts the parameters into url.Values.
func (p Params) Values() url.Values {
	values := make(url.Values, len(p.values))
	for key, value := range p.values {
		values.Set(key, value)
	}

	return values
}

func (p Params) clone() Params {
	next := make(map[string]string, len(p.values)+1)
	maps.Copy(next, p.values)

	return Params{values: next}
}

// ViewFunc turns an envelope into the view a builder returns.
type ViewFunc[V any] func(*Response) V

// Query builds a single GET request and derives a view from its response.
type Query[V any] struct {
	requester Requester
	path      string
	view      ViewFunc[V]
	params    Params
}

// NewQuery returns a builder for path whose result is produced by view.
func NewQuery[V any](requester Requester, path string, view ViewFunc[V]) Query[V] {
	return Query[V]{requester: requester, path: path, view: view}
}

// Param sets a query parameter.
func (q Query[V]) Param(key string, value any) Query[V] {
	q.params = q.params.With(key, value)

	return q
}

// Include appends relationships to include.
func (q Query[V]) Include(values ...any) Query[V] {
	q.params = q.params.Include(values...)

	return q
}

// Params returns the accumulated parameters.
func (q Query[V]) Params() Params {
	return q.params
}

// Path returns the request path.
func (q Query[V]) Path() string {
	return q.path
}

// Send issues the request.
func (q Query[V]) Send(ctx context.Context) V {
	resp := q.requester.Do(ctx, http.MethodGet, q.path, q.params.Values(), nil)

	return q.view(resp)
}

// ListQuery builds a paginated GET request.
type ListQuery struct {
	requester Requester
	path      string
	params    Params
	sortable  []string
	dataKey   string
	fetchAll  bool
}

// NewListQuery returns a list builder for path.
func NewListQuery(requester Requester, path string) ListQuery {
	return ListQuery{requester: requester, path: path}
}

// WithSortable limits Sort to fields. Without it any field is accepted.
func (q ListQuery) WithSortable(fields ...string) ListQuery {
	q.sortable = slices.Clone(fields)

	return q
}

// Param sets a query parameter.
func (q ListQuery) Param(key string, value any) ListQuery {
	q.params = q.params.With(key, value)

	return q
}

// Include appends relationships to include.
func (q ListQuery) Include(values ...any) ListQuery {
	q.params = q.params.Include(values...)

	return q
}

// Filter sets filter[field].
func (q ListQuery) Filter(field string, value any) ListQuery {
	q.params = q.params.Filter(field, value)

	return q
}

// Sort orders results by field, prefixed with "-" when descending. Fields
// outside the sortable set are ignored.
func (q ListQuery) Sort(field string, descending bool) ListQuery {
	if len(q.sortable) > 0 && !slices.Contains(q.sortable, field) {
		return q
	}

	if descending {
		field = "-" + field
	}

	q.params = q.params.With("sort", field)

	return q
}

// PerPage sets per_page, floored at 1.
func (q ListQuery) PerPage(n int) ListQuery {
	q.params = q.params.With("per_page", max(1, n))

	return q
}

// Page selects a single page.
func (q ListQuery) Page(n int) ListQuery {
	q.params = q.params.With("page", n)

	return q
}

// AllPages makes Send fetch and merge every page.
func (q ListQuery) AllPages() ListQuery {
	q.fetchAll = true

	return q
}

// DataKey changes the payload key holding items during aggregation.
func (q ListQuery) DataKey(key string) ListQuery {
	q.dataKey = key

	return q
}

// Params returns the accumulated parameters.
func (q ListQuery) Params() Params {
	return q.params
}

// Path returns the request path.
func (q ListQuery) Path() string {
	return q.path
}

// FetchesAll reports whether AllPages was set.
func (q ListQuery) FetchesAll() bool {
	return q.fetchAll
}

// Send issues the request. With AllPages it walks every page, then requests
// page 1 once more for a representative envelope whose Data is replaced by
// the merged items.
func (q ListQuery) Send(ctx context.Context) *ListResponse {
	if !q.fetchAll {
		return NewListResponse(q.requester.Do(ctx, http.MethodGet, q.path, q.params.Values(), nil))
	}

	items := CollectPages(ctx, q.requester, q.path, q.params, q.dataKey)
	first := q.requester.Do(ctx, http.MethodGet, q.path, q.params.WithDefault("page", 1).Values(), nil)

	if items == nil {
		items = []any{}
	}

	return NewListResponse(first.WithData(items))
}

// Includer is any builder that accepts relationships.
type Includer[B any] interface {
	Include(values ...any) B
}

// WithIncludes applies typed include constants to a Query or ListQuery.
func WithIncludes[B Includer[B], E Enum](builder B, includes ...E) B {
	values := make([]any, len(includes))
	for i, include := range includes {
		values[i] = include
	}

	return builder.Include(values...)
}

func scalar(value any) string {
	switch typed := value.(type) {
	case Enum:
		return typed.Value()
	case string:
		return typed
	case bool:
		if typed {
			return "1"
		}

		return "0"
	case fmt.Stringer:
		return typed.String()
	}

	if s, err := cast.ToStringE(value); err == nil {
		return s
	}

	return fmt.Sprint(value)
}

func flatten(values []any) []string {
	out := make([]string, 0, len(values))

	for _, value := range values {
		switch typed := value.(type) {
		case nil:
		case string:
			out = append(out, typed)
		case Enum:
			out = append(out, typed.Value())
		case []string:
			out = append(out, typed...)
		case []any:
			out = append(out, flatten(typed)...)
		default:
			rv := reflect.ValueOf(value)
			if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
				for i := range rv.Len() {
					out = append(out, flatten([]any{rv.Index(i).Interface()})...)
				}

				continue
			}

			out = append(out, scalar(value))
		}
	}

	return out
}
