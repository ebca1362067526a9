// SPDX-License-Identifier: MIT

// Command costgraph is the process entry point for the graph-iterator
// stack: one binary dispatching on its first argument to the algorithm
// drivers, the ingest/conversion utilities, and the diagnostic commands,
// mirroring the individual bin/*.rs programs of original_source.
package main

import (
	"fmt"
	"log"
	"os"
)

func main() {
	log.SetFlags(log.Lmicroseconds)

	if len(os.Args) < 2 {
		usage()
		os.Exit(0)
	}

	var err error
	switch os.Args[1] {
	case "union_find":
		err = runUnionFind(os.Args[2:])
	case "label_propagation":
		err = runLabelPropagation(os.Args[2:])
	case "pagerank":
		err = runPageRank(os.Args[2:])
	case "bfs":
		err = runBFS(os.Args[2:])
	case "stats":
		err = runStats(os.Args[2:])
	case "print":
		err = runPrint(os.Args[2:])
	case "to_vertex":
		err = runToVertex(os.Args[2:])
	case "to_hilbert":
		err = runToHilbert(os.Args[2:])
	case "compressed":
		err = runCompressed(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unrecognized command: %q\n", os.Args[1])
		usage()
		os.Exit(0)
	}

	if err != nil {
		if cerr, ok := err.(*usageError); ok {
			fmt.Fprintln(os.Stderr, cerr.Error())
			os.Exit(0)
		}
		log.Fatalf("costgraph: %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: costgraph <command> [args]

commands:
  union_find        (vertex|hilbert|compressed) <prefix> <nodes>
  label_propagation (vertex|hilbert|compressed) <prefix> <nodes>
  pagerank          (vertex|hilbert|compressed) <prefix> <nodes>
  bfs               (vertex|hilbert|compressed) <prefix> <nodes>
  stats             (vertex|hilbert|compressed) <prefix>
  print             (vertex|hilbert|compressed) <prefix>
  to_vertex         <source-edge-list> <prefix>
  to_hilbert        [--dense] <prefix>
  compressed        parse_to_hilbert <source-edge-list> <output>
  compressed        merge <output> <shard>...
  compressed        scan <source> <data-out> <offsets-out>`)
}

// usageError marks a ConfigError (spec.md §14): printed to stderr, exit
// code 0, not escalated to log.Fatal.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func newUsageError(format string, args ...any) *usageError {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}
