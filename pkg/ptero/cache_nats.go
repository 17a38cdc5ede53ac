package ptero

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fivetwenty-io/ptero/internal/constants"
	natsgo "github.com/nats-io/nats.go"
)

// NATSCacheConfig configures a NATS JetStream key-value cache.
type NATSCacheConfig struct {
	// URL of the NATS server. Ignored when Conn is set.
	URL string

	// Conn reuses an existing connection. NATSCache.Close leaves it open.
	Conn *natsgo.Conn

	// Bucket is the KV bucket name. Empty means "ptero-cache".
	Bucket string

	// TTL expires keys server-side. Zero keeps them until overwritten.
	TTL time.Duration
}

// NATSCache stores entries in a JetStream key-value bucket so several
// processes can share cached panel responses.
type NATSCache struct {
	conn     *natsgo.Conn
	ownsConn bool
	kv       natsgo.KeyValue
}

// NewNATSCache connects, creating the bucket if needed.
func NewNATSCache(config NATSCacheConfig) (*NATSCache, error) {
	conn := config.Conn
	ownsConn := false

	if conn == nil {
		var err error

		conn, err = natsgo.Connect(config.URL)
		if err != nil {
			return nil, fmt.Errorf("connecting to nats: %w", err)
		}

		ownsConn = true
	}

	bucket := config.Bucket
	if bucket == "" {
		bucket = constants.DefaultNATSBucket
	}

	kv, err := openBucket(conn, bucket, config.TTL)
	if err != nil {
		if ownsConn {
			conn.Close()
		}

		return nil, err
	}

	return &NATSCache{conn: conn, ownsConn: ownsConn, kv: kv}, nil
}

func openBucket(conn *natsgo.Conn, bucket string, ttl time.Duration) (natsgo.KeyValue, error) {
	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("opening jetstream: %w", err)
	}

	kv, err := js.KeyValue(bucket)
	if err == nil {
		return kv, nil
	}

	if !errors.Is(err, natsgo.ErrBucketNotFound) {
		return nil, fmt.Errorf("opening bucket %s: %w", bucket, err)
	}

	kv, err = js.CreateKeyValue(&natsgo.KeyValueConfig{Bucket: bucket, TTL: ttl})
	if err != nil {
		return nil, fmt.Errorf("creating bucket %s: %w", bucket, err)
	}

	return kv, nil
}

// Get returns the entry for key.
func (c *NATSCache) Get(_ context.Context, key string) (*CacheEntry, error) {
	stored, err := c.kv.Get(natsKey(key))
	if err != nil {
		if errors.Is(err, natsgo.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCacheKeyNotFound, key)
		}

		return nil, fmt.Errorf("reading %s: %w", key, err)
	}

	var entry CacheEntry
	if err := json.Unmarshal(stored.Value(), &entry); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", key, err)
	}

	if entry.Expired() {
		return nil, fmt.Errorf("%w: %s", ErrCacheEntryExpired, key)
	}

	return &entry, nil
}

// Set stores entry under key.
func (c *NATSCache) Set(_ context.Context, key string, entry *CacheEntry) error {
	encoded, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	if _, err := c.kv.Put(natsKey(key), encoded); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}

	return nil
}

// Delete removes key.
func (c *NATSCache) Delete(_ context.Context, key string) error {
	if err := c.kv.Delete(natsKey(key)); err != nil && !errors.Is(err, natsgo.ErrKeyNotFound) {
		return fmt.Errorf("deleting %s: %w", key, err)
	}

	return nil
}

// Clear removes every key in the bucket.
func (c *NATSCache) Clear(_ context.Context) error {
	keys, err := c.kv.Keys()
	if err != nil {
		if errors.Is(err, natsgo.ErrNoKeysFound) {
			return nil
		}

		return fmt.Errorf("listing keys: %w", err)
	}

	for _, key := range keys {
		if err := c.kv.Delete(key); err != nil && !errors.Is(err, natsgo.ErrKeyNotFound) {
			return fmt.Errorf("deleting %s: %w", key, err)
		}
	}

	return nil
}

// Has reports whether a live entry exists for key.
func (c *NATSCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Close drains the connection when the cache opened it.
func (c *NATSCache) Close() error {
	if !c.ownsConn {
		return nil
	}

	if err := c.conn.Drain(); err != nil {
		return fmt.Errorf("draining nats connection: %w", err)
	}

	return nil
}

// natsKey hashes key into the token alphabet KV keys allow.
func natsKey(key string) string {
	sum := sha256.Sum256([]byte(key))

	return hex.EncodeToString(sum[:])
}
