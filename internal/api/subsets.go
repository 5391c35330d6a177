package api

import (
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/roach88/cardsearch/internal/carddb"
)

// maxCachedSubsets bounds the subset cache. Reaching it empties the cache.
const maxCachedSubsets = 64

// subsetCache reuses subset databases across requests naming the same
// sets. Concurrent requests for one uncached subset share a single build.
type subsetCache struct {
	parent *carddb.Database

	mu      sync.Mutex
	entries map[string]*carddb.Database
	builds  singleflight.Group
}

func newSubsetCache(parent *carddb.Database) *subsetCache {
	return &subsetCache{parent: parent, entries: map[string]*carddb.Database{}}
}

// subsetKey is the canonical form of a set code list: lowercase, sorted,
// without duplicates.
func subsetKey(codes []string) string {
	norm := make([]string, len(codes))
	for i, code := range codes {
		norm[i] = strings.ToLower(strings.TrimSpace(code))
	}
	slices.Sort(norm)
	return strings.Join(slices.Compact(norm), ",")
}

func (s *subsetCache) get(codes []string) *carddb.Database {
	key := subsetKey(codes)

	s.mu.Lock()
	db, ok := s.entries[key]
	s.mu.Unlock()
	if ok {
		return db
	}

	v, _, _ := s.builds.Do(key, func() (any, error) {
		db := s.parent.Subset(strings.Split(key, ","))
		s.mu.Lock()
		if len(s.entries) >= maxCachedSubsets {
			clear(s.entries)
		}
		s.entries[key] = db
		s.mu.Unlock()
		return db, nil
	})
	return v.(*carddb.Database)
}

func (s *subsetCache) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
