// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package memcached serves a read-only Store over both memcached wire
// protocols, choosing text or binary per connection.
package memcached

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net"

	"github.com/elliotnunn/cdbd/internal/kvstore"
	"github.com/elliotnunn/cdbd/internal/memcached/binary"
	"github.com/elliotnunn/cdbd/internal/memcached/text"
)

// Serve accepts connections until the listener closes, handling each on
// its own goroutine against the shared store.
func Serve(l net.Listener, store kvstore.Store) error {
	for {
		conn, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			slog.Debug("acceptError", "err", err)
			continue
		}
		go handleConn(store, conn)
	}
}

// The first byte of a connection tells the protocols apart: the binary
// request magic can never begin a text command.
func handleConn(store kvstore.Store, conn net.Conn) {
	defer conn.Close()
	var first [1]byte
	if _, err := io.ReadFull(conn, first[:]); err != nil {
		return
	}
	isBinary := first[0] == binary.RequestMagic
	protocol := "memcached_text"
	if isBinary {
		protocol = "memcached_binary"
	}
	peer := conn.RemoteAddr()
	slog.Info("connect", "protocol", protocol, "peer", peer)

	// the sniffed byte goes back on the front of the stream
	rdr := bufio.NewReader(io.MultiReader(bytes.NewReader(first[:]), conn))
	wtr := bufio.NewWriter(conn)
	var err error
	if isBinary {
		err = binary.HandleClient(store, rdr, wtr)
	} else {
		err = text.HandleClient(store, rdr, wtr)
	}
	if err != nil {
		slog.Info("disconnect", "protocol", protocol, "peer", peer, "err", err)
	} else {
		slog.Info("disconnect", "protocol", protocol, "peer", peer)
	}
}
