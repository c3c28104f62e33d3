// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package text

import (
	"bufio"
	"fmt"
	"log/slog"

	"github.com/elliotnunn/cdbd/internal/kvstore"
)

// HandleClient services text-protocol requests against the store until
// the peer quits or hangs up. Everything except reads is refused.
func HandleClient(store kvstore.Store, rdr *bufio.Reader, wtr *bufio.Writer) error {
	slog.Debug("memcached_text:connect")
	for {
		switch req := Parse(rdr).(type) {
		case Quit, Closed:
			slog.Debug("memcached_text:disconnect")
			return nil
		case Error:
			slog.Debug("memcached_text:error")
			if err := WriteResponse(wtr, Error{}); err != nil {
				return err
			}
		case Get:
			slog.Debug("memcached_text:get", "keys", req.Keys)
			for _, key := range req.Keys {
				value, ok := store.Get([]byte(key))
				if !ok {
					continue // get has no not-found line
				}
				err := WriteResponse(wtr, KeyValue{
					Key:    key,
					Flags:  0,
					Value:  value,
					HasCas: req.Cas, // always token 0 in a read-only store
				})
				if err != nil {
					return err
				}
			}
			if err := WriteResponse(wtr, End{}); err != nil {
				return err
			}
		default:
			slog.Debug("memcached_text:unimplemented", "method", fmt.Sprintf("%T", req))
			if err := WriteResponse(wtr, ServerError{Msg: "Read-only; method not implemented"}); err != nil {
				return err
			}
		}
		if err := wtr.Flush(); err != nil {
			return err
		}
	}
}
