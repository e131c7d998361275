package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mansoorceksport/liftlog/internal/domain"
	gocache "github.com/patrickmn/go-cache"
)

// ErrMemoryCacheFull is returned by Set when storing the value would take the
// cache over its byte budget. Nothing is evicted to make room.
var ErrMemoryCacheFull = errors.New("memory cache full")

// MemoryLocalCache implements domain.LocalCache in process. Used when no Redis is
// configured; the content is lost on restart. Entries never expire and are
// never evicted, a single collection may use the whole budget.
type MemoryLocalCache struct {
	mu       sync.Mutex
	items    *gocache.Cache
	used     int64
	maxBytes int64
}

// NewMemoryLocalCache creates a cache holding up to sizeMB megabytes of values
func NewMemoryLocalCache(sizeMB int) *MemoryLocalCache {
	megabyte := int64(1024 * 1024)
	return &MemoryLocalCache{
		items:    gocache.New(gocache.NoExpiration, 0),
		maxBytes: int64(sizeMB) * megabyte,
	}
}

func (m *MemoryLocalCache) Get(_ context.Context, key string) (string, error) {
	value, ok := m.items.Get(key)
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return value.(string), nil
}

// Set stores value without expiry. A value replacing an existing one only needs
// room for the difference.
func (m *MemoryLocalCache) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	used := m.used + entrySize(key, value)
	if old, ok := m.items.Get(key); ok {
		used -= entrySize(key, old.(string))
	}
	if used > m.maxBytes {
		return fmt.Errorf("%w: %s needs %d bytes, budget is %d", ErrMemoryCacheFull, key, len(value), m.maxBytes)
	}

	m.items.Set(key, value, gocache.NoExpiration)
	m.used = used
	return nil
}

func (m *MemoryLocalCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		if old, ok := m.items.Get(key); ok {
			m.used -= entrySize(key, old.(string))
			m.items.Delete(key)
		}
	}
	return nil
}

// Used reports how many bytes of the budget are taken
func (m *MemoryLocalCache) Used() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.used
}

func entrySize(key, value string) int64 {
	return int64(len(key) + len(value))
}
