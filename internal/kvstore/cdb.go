// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package kvstore

import (
	"log/slog"

	"github.com/colinmarc/cdb"
)

// OpenCDB opens a constant database file as a Store.
//
// The library reads through an io.ReaderAt, so the one handle serves
// every connection for the life of the process.
func OpenCDB(path string) (Store, error) {
	db, err := cdb.Open(path)
	if err != nil {
		return nil, err
	}
	return &cdbStore{db: db, path: path}, nil
}

type cdbStore struct {
	db   *cdb.CDB
	path string
}

func (s *cdbStore) Get(key []byte) ([]byte, bool) {
	value, err := s.db.Get(key)
	if err != nil {
		slog.Debug("cdbReadError", "path", s.path, "err", err)
		return nil, false
	}
	if value == nil {
		return nil, false
	}
	return value, true
}
