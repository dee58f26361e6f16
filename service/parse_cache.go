package service

import (
	"crypto/sha256"
	"sync"
	"sync/atomic"

	"github.com/ludo-technologies/podlock/domain"
	"golang.org/x/sync/singleflight"
)

// parseEntry is the memoized outcome of parsing one document
type parseEntry struct {
	lockfile *domain.Lockfile
	err      error
}

// ParseCache wraps a parser and memoizes results by content digest, so the
// copies CocoaPods keeps of a lock file (Pods/Manifest.lock) and identical
// lock files across a monorepo are parsed once per scan. Concurrent callers
// with the same content share one parse.
//
// Cached Lockfiles are shared between callers and must not be mutated.
type ParseCache struct {
	parser  domain.LockfileParser
	mu      sync.RWMutex
	results map[[sha256.Size]byte]parseEntry
	group   singleflight.Group
	hits    atomic.Int64
}

// NewParseCache creates an empty cache in front of parser
func NewParseCache(parser domain.LockfileParser) *ParseCache {
	return &ParseCache{
		parser:  parser,
		results: make(map[[sha256.Size]byte]parseEntry),
	}
}

// Parse implements domain.LockfileParser
func (c *ParseCache) Parse(source []byte) (*domain.Lockfile, error) {
	key := sha256.Sum256(source)

	c.mu.RLock()
	entry, ok := c.results[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return entry.lockfile, entry.err
	}

	v, _, shared := c.group.Do(string(key[:]), func() (interface{}, error) {
		lock, err := c.parser.Parse(source)
		e := parseEntry{lockfile: lock, err: err}

		c.mu.Lock()
		c.results[key] = e
		c.mu.Unlock()
		return e, nil
	})
	if shared {
		c.hits.Add(1)
	}
	entry = v.(parseEntry)
	return entry.lockfile, entry.err
}

// Len returns the number of distinct documents parsed
func (c *ParseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.results)
}

// Hits returns how many Parse calls were answered without parsing
func (c *ParseCache) Hits() int {
	return int(c.hits.Load())
}
