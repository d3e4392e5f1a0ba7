// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

// Package cache maps a content fingerprint of a sanitized diff to a
// previously produced result. Entries live for a TTL and are purged
// opportunistically after each write; there is no background sweeper and
// nothing survives a restart.
package cache

import (
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/prashant-zo/IntelliCommit/internal/analyze"
	icerr "github.com/prashant-zo/IntelliCommit/pkg/errors"
)

// DefaultTTL bounds how long a cached response stays valid.
const DefaultTTL = 5 * time.Minute

// DefaultCapacity bounds the number of live entries.
const DefaultCapacity = 256

// Entry is one cached generation result.
type Entry struct {
	Response string
	Provider string
	Analysis analyze.Analysis
	StoredAt time.Time
}

// Cache is a TTL'd, capacity-bounded response cache. Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries *lru.Cache[string, Entry]
	ttl     time.Duration
	nowFunc func() time.Time // for testing
}

// Fingerprint returns the stable cache key for sanitized diff text.
func Fingerprint(text string) string {
	return strconv.FormatUint(xxhash.Sum64String(text), 16)
}

// New creates a Cache. Returns an error if capacity or ttl is not positive.
func New(capacity int, ttl time.Duration) (*Cache, error) {
	if capacity <= 0 {
		return nil, icerr.Errorf(icerr.CodeCacheInvalidValue, "cache capacity must be positive, got %d", capacity)
	}
	if ttl <= 0 {
		return nil, icerr.Errorf(icerr.CodeCacheInvalidValue, "cache ttl must be positive, got %s", ttl)
	}

	entries, err := lru.New[string, Entry](capacity)
	if err != nil {
		return nil, icerr.Wrapf(err, icerr.CodeCacheInvalidValue, "creating lru backing store")
	}

	return &Cache{
		entries: entries,
		ttl:     ttl,
		nowFunc: time.Now,
	}, nil
}

// Get returns the entry for key if it exists and has not expired. An
// expired entry is removed and reported as a miss.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries.Get(key)
	if !ok {
		return Entry{}, false
	}
	if c.expiredLocked(e) {
		c.entries.Remove(key)
		return Entry{}, false
	}
	return e, true
}

// Put stores an entry under key, stamping it with the current time, then
// sweeps expired entries as a lightweight garbage-collection step.
func (c *Cache) Put(key string, e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e.StoredAt = c.nowFunc()
	c.entries.Add(key, e)
	c.sweepExpiredLocked()
}

// Len returns the number of live (possibly expired but unswept) entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Purge()
}

// SetNowFunc overrides the time source (for testing).
func (c *Cache) SetNowFunc(fn func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nowFunc = fn
}

func (c *Cache) expiredLocked(e Entry) bool {
	return c.nowFunc().Sub(e.StoredAt) >= c.ttl
}

// sweepExpiredLocked removes every entry past its TTL. Peek avoids
// disturbing LRU recency order while scanning.
func (c *Cache) sweepExpiredLocked() {
	for _, key := range c.entries.Keys() {
		e, ok := c.entries.Peek(key)
		if !ok {
			continue
		}
		if c.expiredLocked(e) {
			c.entries.Remove(key)
		}
	}
}
