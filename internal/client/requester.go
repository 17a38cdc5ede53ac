package client

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	nethttp "net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fivetwenty-io/ptero/internal/http"
	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

// transport is the part of *http.Client the requester needs.
type transport interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// requester implements ptero.Requester. It turns every outcome into an
// envelope and, when a cache is configured, serves repeated successful GETs
// from it.
type requester struct {
	transport transport
	cache     ptero.Cache
	ttl       time.Duration
	scope     string
	logger    ptero.Logger
	stats     *cacheStats
}

// Do implements ptero.Requester.
func (r *requester) Do(ctx context.Context, method, path string, query url.Values, body any) *ptero.Response {
	cacheable := r.cache != nil && method == nethttp.MethodGet
	key := ""

	if cacheable {
		key = r.scope + ":" + ptero.CacheKey(method, path, query)

		if entry, err := r.cache.Get(ctx, key); err == nil {
			r.stats.hits.Add(1)

			return ptero.NewResponse(entry.Status, entry.Header, entry.Data)
		}

		r.stats.misses.Add(1)
	}

	raw, err := r.transport.Do(ctx, &http.Request{
		Method: method,
		Path:   path,
		Query:  query,
		Body:   body,
	})
	if err != nil {
		return ptero.TransportFailure(err)
	}

	resp := ptero.NewResponse(raw.StatusCode, raw.Headers, raw.Body)

	if cacheable && resp.OK {
		entry := &ptero.CacheEntry{
			Status:    raw.StatusCode,
			Header:    raw.Headers,
			Data:      raw.Body,
			ExpiresAt: time.Now().Add(r.ttl),
			ETag:      raw.Headers.Get("ETag"),
		}

		if err := r.cache.Set(ctx, key, entry); err != nil {
			if r.logger != nil {
				r.logger.Warn("caching response failed", map[string]interface{}{"path": path, "error": err.Error()})
			}
		} else {
			r.stats.sets.Add(1)
		}
	}

	return resp
}

type cacheStats struct {
	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
}

func (s *cacheStats) snapshot() ptero.CacheStats {
	return ptero.CacheStats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
		Sets:   s.sets.Load(),
	}
}

// tokenScope derives a short, non-reversible cache namespace from a token.
func tokenScope(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:8])
}
