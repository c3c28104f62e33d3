// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package kvstore

import (
	"fmt"

	mtbl "github.com/farsightsec/golang-mtbl"
)

// OpenMTBL opens a sorted-table file as a Store.
//
// Each underlying reader keeps per-lookup state, so poolSize independent
// readers are opened eagerly and multiplexed. A lookup blocks while all
// of them are checked out.
func OpenMTBL(path string, poolSize int) (Store, error) {
	readers, err := newPool(poolSize, func() (*mtbl.Reader, error) {
		return mtbl.ReaderInit(path, &mtbl.ReaderOptions{})
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &mtblStore{readers: readers}, nil
}

type mtblStore struct {
	readers *pool[*mtbl.Reader]
}

func (s *mtblStore) Get(key []byte) ([]byte, bool) {
	r := s.readers.acquire()
	defer s.readers.release(r)
	_, value, ok := r.Get(key).Next()
	if !ok {
		return nil, false
	}
	// the slice belongs to the reader, which is about to be released
	return append([]byte(nil), value...), true
}

// WalkMTBL visits every entry of a sorted-table file in key order,
// with a private reader so the serving pool is undisturbed.
func WalkMTBL(path string, visit func(key, value []byte) error) error {
	r, err := mtbl.ReaderInit(path, &mtbl.ReaderOptions{})
	if err != nil {
		return err
	}
	defer r.Destroy()
	it := mtbl.IterAll(r)
	for {
		key, value, ok := it.Next()
		if !ok {
			return nil
		}
		if err := visit(key, value); err != nil {
			return err
		}
	}
}
