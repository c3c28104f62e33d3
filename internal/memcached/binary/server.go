// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package binary

import (
	"bufio"
	"errors"
	"io"
	"log/slog"

	"github.com/elliotnunn/cdbd/internal/kvstore"
)

var getFlags = []byte{0x00, 0x00, 0x00, 0x00}

// HandleClient services binary-protocol requests against the store until
// the peer quits or hangs up. Only the get family, no-op, version and
// quit have semantics; every other opcode is refused with NOT_SUPPORTED.
func HandleClient(store kvstore.Store, rdr *bufio.Reader, wtr *bufio.Writer) error {
	slog.Debug("memcached_binary:connect")
	for {
		req, err := ReadRequest(rdr)
		if errors.Is(err, io.EOF) {
			slog.Debug("memcached_binary:disconnect")
			return nil // clean hangup between requests
		}
		if err != nil {
			return err
		}

		switch opcode := req.Header.Opcode; opcode {
		case OpGet, OpGetQ, OpGetK, OpGetKQ:
			includeKey := opcode == OpGetK || opcode == OpGetKQ
			returnNotFound := opcode == OpGet || opcode == OpGetK
			if value, ok := store.Get(req.Key); ok {
				slog.Debug("memcached_binary:get", "key", req.Key, "bytes", len(value))
				if err := WriteResponse(wtr, MakeResponse(&req, getFlags, includeKey, value)); err != nil {
					return err
				}
			} else {
				slog.Debug("memcached_binary:get", "key", req.Key, "found", false)
				if returnNotFound {
					if err := WriteResponse(wtr, MakeError(&req, StatusKeyNotFound)); err != nil {
						return err
					}
				}
			}
		case OpQuit:
			slog.Debug("memcached_binary:quit")
			return nil
		case OpNoOp:
			slog.Debug("memcached_binary:noop")
			if err := WriteResponse(wtr, MakeResponse(&req, nil, false, nil)); err != nil {
				return err
			}
		case OpVersion:
			slog.Debug("memcached_binary:version")
			if err := WriteResponse(wtr, MakeResponse(&req, nil, false, []byte("0.0.0"))); err != nil {
				return err
			}
		default:
			slog.Debug("memcached_binary:unknownOpcode", "opcode", opcode)
			if err := WriteResponse(wtr, MakeError(&req, StatusNotSupported)); err != nil {
				return err
			}
		}
	}
}
