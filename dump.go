// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/elliotnunn/cdbd/internal/kvstore"
)

// dumpTable prints the keys matching pattern, with value sizes, in
// table order. For poking at a database without a memcached client.
func dumpTable(path, pattern string) error {
	return kvstore.WalkMTBL(path, func(key, value []byte) error {
		match, err := doublestar.Match(pattern, string(key))
		if err != nil {
			return err
		}
		if match {
			fmt.Printf("%q size=%d\n", key, len(value))
		}
		return nil
	})
}
