// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package kvstore

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-tinylfu"
)

// Cached puts an admission-controlled cache in front of a Store.
//
// The database never changes, so both results of a lookup are safe to
// remember: a present value is recorded as its bytes, a known-absent key
// as a nil entry. maxEntries <= 0 means no cache at all.
func Cached(backing Store, maxEntries int) Store {
	if maxEntries <= 0 {
		return backing
	}
	return &cachedStore{
		backing: backing,
		lfu:     tinylfu.New[string, []byte](maxEntries, maxEntries*10, keyHash),
	}
}

type cachedStore struct {
	backing Store
	mu      sync.Mutex // the cache structure itself is single-threaded
	lfu     *tinylfu.T[string, []byte]
}

func (s *cachedStore) Get(key []byte) ([]byte, bool) {
	k := string(key)
	s.mu.Lock()
	cached, hit := s.lfu.Get(k)
	s.mu.Unlock()
	if hit {
		if cached == nil {
			return nil, false
		}
		return append([]byte(nil), cached...), true
	}

	value, ok := s.backing.Get(key)
	var record []byte // nil marks a known-absent key
	if ok {
		record = append(make([]byte, 0, len(value)), value...)
	}
	s.mu.Lock()
	s.lfu.Add(k, record)
	s.mu.Unlock()
	return value, ok
}

func keyHash(k string) uint64 { return xxhash.Sum64String(k) }
