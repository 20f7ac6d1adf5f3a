package storage

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ContentIndex remembers which content identifier a digest was archived under.
type ContentIndex interface {
	Lookup(ctx context.Context, digest string) (string, bool, error)
	Remember(ctx context.Context, digest, id string) error
}

// dedupContentStore skips uploads of content the index has already seen,
// so retrying a partially archived submission does not duplicate files.
type dedupContentStore struct {
	inner  ContentStore
	index  ContentIndex
	logger *slog.Logger
}

// NewDedupContentStore wraps inner with a digest lookup in index. Index
// failures are logged and never fail an upload.
func NewDedupContentStore(inner ContentStore, index ContentIndex, logger *slog.Logger) ContentStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &dedupContentStore{inner: inner, index: index, logger: logger}
}

func (d *dedupContentStore) Store(ctx context.Context, filename string, content []byte, contentType string) (string, error) {
	digest := Digest(content)

	id, ok, err := d.index.Lookup(ctx, digest)
	if err != nil {
		d.logger.WarnContext(ctx, "content index lookup failed", "digest", digest, "error", err)
	} else if ok {
		return id, nil
	}

	id, err = d.inner.Store(ctx, filename, content, contentType)
	if err != nil {
		return "", err
	}
	if err := d.index.Remember(ctx, digest, id); err != nil {
		d.logger.WarnContext(ctx, "content index update failed", "digest", digest, "content_id", id, "error", err)
	}
	return id, nil
}

const contentIndexKeyPrefix = "kyc:cid:"

// RedisContentIndex is a ContentIndex shared by every instance of the service.
type RedisContentIndex struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisContentIndex returns an index whose entries expire after ttl
// (0 keeps them forever).
func NewRedisContentIndex(client *redis.Client, ttl time.Duration) *RedisContentIndex {
	return &RedisContentIndex{client: client, ttl: ttl}
}

func (r *RedisContentIndex) Lookup(ctx context.Context, digest string) (string, bool, error) {
	id, err := r.client.Get(ctx, contentIndexKeyPrefix+digest).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

func (r *RedisContentIndex) Remember(ctx context.Context, digest, id string) error {
	return r.client.Set(ctx, contentIndexKeyPrefix+digest, id, r.ttl).Err()
}

// MemoryContentIndex is a process-local ContentIndex.
type MemoryContentIndex struct {
	mu  sync.RWMutex
	ids map[string]string
}

func NewMemoryContentIndex() *MemoryContentIndex {
	return &MemoryContentIndex{ids: make(map[string]string)}
}

func (m *MemoryContentIndex) Lookup(_ context.Context, digest string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.ids[digest]
	return id, ok, nil
}

func (m *MemoryContentIndex) Remember(_ context.Context, digest, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids[digest] = id
	return nil
}
