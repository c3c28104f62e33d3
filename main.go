// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// cdbd serves a pre-built constant database (CDB or MTBL) over the
// memcached wire protocol, read-only.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/elliotnunn/cdbd/internal/kvstore"
	"github.com/elliotnunn/cdbd/internal/memcached"
)

// countFlag makes -v repeatable, each occurrence raising the verbosity.
type countFlag int

func (c *countFlag) String() string   { return strconv.Itoa(int(*c)) }
func (c *countFlag) Set(string) error { *c++; return nil }
func (c *countFlag) IsBoolFlag() bool { return true }

func main() {
	var verbosity countFlag
	cdbPath := flag.String("cdb", "", "A CDB file to serve")
	mtblPath := flag.String("mtbl", "", "An MTBL file to serve")
	memcachedAddr := flag.String("memcached", "", "What port (and optional address) to bind a memcached service on (HOST:PORT)")
	dumpGlob := flag.String("dump", "", "Print the keys matching a glob instead of serving, then exit (MTBL only)")
	flag.Var(&verbosity, "v", "Print more logging information (may be used more than once for more detail)")
	flag.Parse()
	if len(os.Args) == 1 {
		flag.Usage()
		os.Exit(2)
	}
	if flag.NArg() != 0 {
		fatal("unexpected arguments")
	}
	setupLogger(int(verbosity))

	if *dumpGlob != "" {
		if *mtblPath == "" || *cdbPath != "" {
			fatal("-dump requires -mtbl and no -cdb")
		}
		if err := dumpTable(*mtblPath, *dumpGlob); err != nil {
			fatal(err.Error())
		}
		return
	}

	db, dbDesc := openStore(*cdbPath, *mtblPath)
	db = kvstore.Cached(db, cacheEntries())

	if *memcachedAddr == "" {
		fatal("no services to run!")
	}
	fmt.Printf("Serving from %s on %s\n", dbDesc, *memcachedAddr)
	listener, err := net.Listen("tcp", *memcachedAddr)
	if err != nil {
		fatal("Failed to open port: " + err.Error())
	}

	var services sync.WaitGroup
	services.Add(1)
	go func() {
		defer services.Done()
		if err := memcached.Serve(listener, db); err != nil {
			slog.Error("serverFailed", "err", err)
			os.Exit(1)
		}
	}()
	services.Wait()
}

// openStore opens exactly one backend. The CDB reader is shared as-is;
// the MTBL readers go behind a bounded pool.
func openStore(cdbPath, mtblPath string) (kvstore.Store, string) {
	switch {
	case cdbPath != "" && mtblPath == "":
		db, err := kvstore.OpenCDB(cdbPath)
		if err != nil {
			fatal(err.Error())
		}
		return db, "cdb " + cdbPath
	case mtblPath != "" && cdbPath == "":
		// Support a parallelism of 10 + 10 per CPU. Untuned.
		db, err := kvstore.OpenMTBL(mtblPath, 10+10*runtime.NumCPU())
		if err != nil {
			fatal(err.Error())
		}
		return db, "mtbl " + mtblPath
	default:
		fatal("Error: specify exactly one database file")
		panic("unreachable")
	}
}

func setupLogger(verbosity int) {
	level := slog.LevelWarn
	switch {
	case verbosity == 1:
		level = slog.LevelInfo
	case verbosity >= 2:
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
