package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryCache keeps at most size entries in process memory.
type MemoryCache struct {
	lru *expirable.LRU[string, Entry]
}

func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{lru: expirable.NewLRU[string, Entry](size, nil, ttl)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*Entry, bool, error) {
	entry, ok := c.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	return &entry, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, entry *Entry) error {
	c.lru.Add(key, *entry)
	return nil
}

func (c *MemoryCache) Clear(_ context.Context) error {
	c.lru.Purge()
	return nil
}

func (c *MemoryCache) Len() int {
	return c.lru.Len()
}
