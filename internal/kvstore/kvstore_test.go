// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package kvstore

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/colinmarc/cdb"
	mtbl "github.com/farsightsec/golang-mtbl"
)

func writeCDBFixture(t *testing.T, pairs map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.cdb")
	w, err := cdb.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range pairs {
		if err := w.Put([]byte(k), []byte(v)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeMTBLFixture(t *testing.T, sortedKeys []string, value func(string) string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.mtbl")
	w, err := mtbl.WriterInit(path, &mtbl.WriterOptions{})
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range sortedKeys {
		if err := w.Add([]byte(k), []byte(value(k))); err != nil {
			t.Fatal(err)
		}
	}
	w.Destroy()
	return path
}

func TestCDBStore(t *testing.T) {
	path := writeCDBFixture(t, map[string]string{"k": "v", "k2": "v2"})
	s, err := OpenCDB(path)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := s.Get([]byte("k")); !ok || !bytes.Equal(v, []byte("v")) {
		t.Errorf("got %q %v, want \"v\" true", v, ok)
	}
	if v, ok := s.Get([]byte("k2")); !ok || !bytes.Equal(v, []byte("v2")) {
		t.Errorf("got %q %v, want \"v2\" true", v, ok)
	}
	if _, ok := s.Get([]byte("_")); ok {
		t.Error("absent key reported present")
	}
}

func TestCDBOpenFailure(t *testing.T) {
	if _, err := OpenCDB(filepath.Join(t.TempDir(), "nonexistent.cdb")); err == nil {
		t.Error("want an error opening a missing file")
	}
}

func TestMTBLStore(t *testing.T) {
	path := writeMTBLFixture(t, []string{"a", "k"}, func(k string) string { return "v-" + k })
	s, err := OpenMTBL(path, 4)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := s.Get([]byte("k")); !ok || !bytes.Equal(v, []byte("v-k")) {
		t.Errorf("got %q %v, want \"v-k\" true", v, ok)
	}
	if _, ok := s.Get([]byte("_")); ok {
		t.Error("absent key reported present")
	}
}

func TestMTBLOpenFailure(t *testing.T) {
	if _, err := OpenMTBL(filepath.Join(t.TempDir(), "nonexistent.mtbl"), 2); err == nil {
		t.Error("want an error opening a missing file")
	}
}

// Many goroutines hammering a small pool must all see right answers.
func TestMTBLStoreConcurrent(t *testing.T) {
	var keys []string
	for i := 0; i < 10; i++ {
		keys = append(keys, fmt.Sprintf("key%02d", i))
	}
	path := writeMTBLFixture(t, keys, func(k string) string { return "value of " + k })
	s, err := OpenMTBL(path, 3)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				for _, k := range keys {
					v, ok := s.Get([]byte(k))
					if !ok || string(v) != "value of "+k {
						t.Errorf("Get(%q) = %q %v", k, v, ok)
						return
					}
				}
				if _, ok := s.Get([]byte("absent")); ok {
					t.Error("absent key reported present")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestWalkMTBL(t *testing.T) {
	keys := []string{"alpha", "beta", "gamma"}
	path := writeMTBLFixture(t, keys, func(k string) string { return k + k })
	var got []string
	err := WalkMTBL(path, func(key, value []byte) error {
		if string(value) != string(key)+string(key) {
			t.Errorf("key %q carries value %q", key, value)
		}
		got = append(got, string(key))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if fmt.Sprint(got) != fmt.Sprint(keys) {
		t.Errorf("walked %v, want %v in order", got, keys)
	}
}
