package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/dmitrijs2005/goalbingo/internal/storage"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is an in-process BoardCache. Entries expire lazily on read.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache constructs an empty cache whose entries live for ttl.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), ttl: ttl, now: time.Now}
}

// Get returns ErrCacheMiss for absent or expired entries.
func (c *MemoryCache) Get(_ context.Context, userID string) ([]storage.StoredBoard, error) {
	c.mu.RLock()
	e, ok := c.entries[key(userID)]
	c.mu.RUnlock()

	if !ok || !c.now().Before(e.expiresAt) {
		return nil, ErrCacheMiss
	}

	// entries hold encoded bytes so callers never share slices
	var boards []storage.StoredBoard
	if err := json.Unmarshal(e.value, &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

// Set stores a copy of boards.
func (c *MemoryCache) Set(_ context.Context, userID string, boards []storage.StoredBoard) error {
	data, err := json.Marshal(boards)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key(userID)] = memoryEntry{value: data, expiresAt: c.now().Add(c.ttl)}
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key(userID))
	return nil
}
