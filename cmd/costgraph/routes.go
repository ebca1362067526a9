// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/costgraph/cost"
	"github.com/costgraph/cost/algo"
	"github.com/costgraph/cost/convert"
	"github.com/costgraph/cost/internal/ingest"
	"github.com/costgraph/cost/internal/varint"
	"github.com/costgraph/cost/layout"
)

// openMapper opens prefix under the named layout mode, mirroring the
// (vertex | hilbert | compressed) switch each original_source bin/*.rs
// program repeats.
func openMapper(mode, prefix string) (cost.EdgeMapper, func() error, error) {
	switch mode {
	case "vertex":
		m, err := cost.OpenVertexMapper(prefix)
		if err != nil {
			return nil, nil, err
		}
		return m, m.Close, nil
	case "hilbert":
		m, err := cost.OpenHilbertMapper(prefix)
		if err != nil {
			return nil, nil, err
		}
		return m, m.Close, nil
	case "compressed":
		m := cost.NewDeltaMapper(func() (io.ReadCloser, error) {
			return os.Open(prefix)
		})
		return m, func() error { return nil }, nil
	default:
		return nil, nil, newUsageError("unrecognized mode: %q (want vertex|hilbert|compressed)", mode)
	}
}

func parseModePrefixNodes(args []string, need3 bool) (mode, prefix string, nodes uint32, err error) {
	if (need3 && len(args) != 3) || (!need3 && len(args) != 2) {
		return "", "", 0, newUsageError("expected (mode, prefix%s), got %d args", conditionalNodesSuffix(need3), len(args))
	}
	mode, prefix = args[0], args[1]
	if need3 {
		n, perr := strconv.ParseUint(args[2], 10, 32)
		if perr != nil {
			return "", "", 0, newUsageError("nodes not parseable: %v", perr)
		}
		nodes = uint32(n)
	}
	return mode, prefix, nodes, nil
}

func conditionalNodesSuffix(need3 bool) string {
	if need3 {
		return ", nodes"
	}
	return ""
}

func runUnionFind(args []string) error {
	mode, prefix, nodes, err := parseModePrefixNodes(args, true)
	if err != nil {
		return err
	}
	g, closeFn, err := openMapper(mode, prefix)
	if err != nil {
		return err
	}
	defer closeFn()

	order := algo.OrderVertex
	if mode == "hilbert" {
		order = algo.OrderHilbert
	}

	timer := time.Now()
	result, err := algo.UnionFind(g, nodes, order)
	if err != nil {
		return err
	}

	var nonRoots uint32
	for i, root := range result.Roots {
		if uint32(i) != root {
			nonRoots++
		}
	}
	log.Printf("union_find: %v elapsed, %d non-roots found", time.Since(timer), nonRoots)
	return nil
}

func runLabelPropagation(args []string) error {
	mode, prefix, nodes, err := parseModePrefixNodes(args, true)
	if err != nil {
		return err
	}
	g, closeFn, err := openMapper(mode, prefix)
	if err != nil {
		return err
	}
	defer closeFn()

	timer := time.Now()
	result, err := algo.LabelPropagation(g, nodes)
	if err != nil {
		return err
	}

	var nonRoots uint32
	for i, l := range result.Label {
		if uint32(i) != l {
			nonRoots++
		}
	}
	log.Printf("label_propagation: %v elapsed, %d passes, %d non-roots found", time.Since(timer), result.Iterations, nonRoots)
	return nil
}

func runPageRank(args []string) error {
	mode, prefix, nodes, err := parseModePrefixNodes(args, true)
	if err != nil {
		return err
	}
	g, closeFn, err := openMapper(mode, prefix)
	if err != nil {
		return err
	}
	defer closeFn()

	timer := time.Now()
	for iter := 0; iter < algo.DefaultIterations; iter++ {
		log.Printf("pagerank: iteration %d: %v elapsed", iter, time.Since(timer))
	}
	result, err := algo.PageRank(g, nodes, algo.DefaultAlpha, algo.DefaultIterations)
	if err != nil {
		return err
	}

	log.Printf("pagerank: %v elapsed, dst[0]=%v", time.Since(timer), result.Dst[0])
	return nil
}

func runBFS(args []string) error {
	mode, prefix, nodes, err := parseModePrefixNodes(args, true)
	if err != nil {
		return err
	}
	g, closeFn, err := openMapper(mode, prefix)
	if err != nil {
		return err
	}
	defer closeFn()

	timer := time.Now()
	result, err := algo.BFS(g, nodes, algo.BFSOptions{})
	if err != nil {
		return err
	}

	counts := make(map[uint16]uint64)
	for _, l := range result.Label {
		counts[l]++
	}
	log.Printf("bfs: %v elapsed", time.Since(timer))
	for dist := uint16(0); dist < 65535; dist++ {
		if c, ok := counts[dist]; ok {
			log.Printf("counts[%d]: %d", dist, c)
		}
	}
	return nil
}

func runStats(args []string) error {
	mode, prefix, _, err := parseModePrefixNodes(args, false)
	if err != nil {
		return err
	}
	g, closeFn, err := openMapper(mode, prefix)
	if err != nil {
		return err
	}
	defer closeFn()

	stats, err := cost.ScanStats(g)
	if err != nil {
		return err
	}
	log.Printf("stats: maxX=%d maxY=%d edges=%d", stats.MaxX, stats.MaxY, stats.Edges)
	return nil
}

func runPrint(args []string) error {
	mode, prefix, _, err := parseModePrefixNodes(args, false)
	if err != nil {
		return err
	}
	g, closeFn, err := openMapper(mode, prefix)
	if err != nil {
		return err
	}
	defer closeFn()

	return cost.Print(g, os.Stdout)
}

func runToVertex(args []string) error {
	if len(args) != 2 {
		return newUsageError("usage: to_vertex <source-edge-list> <prefix>")
	}
	source, prefix := args[0], args[1]

	reader := ingest.ReaderMapper{Reader: func() (io.ReadCloser, error) { return os.Open(source) }}
	writer, err := layout.CreateVertexWriter(prefix)
	if err != nil {
		return err
	}

	timer := time.Now()
	if err := ingest.WriteVertexLayout(reader, writer); err != nil {
		return err
	}
	log.Printf("to_vertex: %v elapsed", time.Since(timer))
	return nil
}

func runToHilbert(args []string) error {
	dense := false
	if len(args) > 0 && args[0] == "--dense" {
		dense = true
		args = args[1:]
	}
	if len(args) != 1 {
		return newUsageError("usage: to_hilbert [--dense] <prefix>")
	}
	prefix := args[0]

	reader := ingest.ReaderMapper{Reader: func() (io.ReadCloser, error) { return os.Open(prefix) }}

	upperFile, err := os.Create(prefix + ".upper")
	if err != nil {
		return err
	}
	defer upperFile.Close()
	lowerFile, err := os.Create(prefix + ".lower")
	if err != nil {
		return err
	}
	defer lowerFile.Close()

	uw := layout.NewUpperWriter(upperFile)
	lw := layout.NewLowerWriter(lowerFile)

	timer := time.Now()
	err = convert.ConvertToHilbert(reader, dense, func(ux, uy uint16, count uint32, lowers []layout.LowerRecord) {
		if werr := uw.Write(ux, uy, count); werr != nil {
			panic(fmt.Errorf("to_hilbert: write upper record: %w", werr))
		}
		for _, lo := range lowers {
			if werr := lw.Write(lo.LX, lo.LY); werr != nil {
				panic(fmt.Errorf("to_hilbert: write lower record: %w", werr))
			}
		}
	})
	if err != nil {
		return err
	}
	log.Printf("to_hilbert: %v elapsed", time.Since(timer))
	return nil
}

func runCompressed(args []string) error {
	if len(args) == 0 {
		return newUsageError("usage: compressed (parse_to_hilbert|merge|scan) ...")
	}

	switch args[0] {
	case "parse_to_hilbert":
		return runCompressedParseToHilbert(args[1:])
	case "merge":
		return runCompressedMerge(args[1:])
	case "scan":
		return runCompressedScan(args[1:])
	default:
		return newUsageError("unrecognized compressed subcommand: %q", args[0])
	}
}

func runCompressedParseToHilbert(args []string) error {
	if len(args) != 2 {
		return newUsageError("usage: compressed parse_to_hilbert <source-edge-list> <output>")
	}
	source, output := args[0], args[1]

	reader := ingest.ReaderMapper{Reader: func() (io.ReadCloser, error) { return os.Open(source) }}
	out, err := os.Create(output)
	if err != nil {
		return err
	}
	defer out.Close()
	bw := bufio.NewWriter(out)

	timer := time.Now()
	var values []uint64
	if err := convert.ToHilbertStream(reader, func(next uint64) { values = append(values, next) }); err != nil {
		return err
	}
	if err := varint.EncodeMerged(bw, func(emit func(uint64)) {
		for _, v := range values {
			emit(v)
		}
	}); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	log.Printf("compressed parse_to_hilbert: %v elapsed, %d values", time.Since(timer), len(values))
	return nil
}

func runCompressedMerge(args []string) error {
	if len(args) < 2 {
		return newUsageError("usage: compressed merge <output> <shard>...")
	}
	output := args[0]
	shardPaths := args[1:]

	out, err := os.Create(output)
	if err != nil {
		return err
	}
	defer out.Close()
	bw := bufio.NewWriter(out)

	var files []*os.File
	var decoders []*varint.Decoder
	for _, path := range shardPaths {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		files = append(files, f)
		decoders = append(decoders, varint.NewDecoder(f))
	}
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	timer := time.Now()
	var n int
	var mergeErr error
	encErr := varint.EncodeMerged(bw, func(emit func(uint64)) {
		mergeErr = convert.MergeShards(decoders, func(v uint64) {
			n++
			emit(v)
		})
	})
	if mergeErr != nil {
		return mergeErr
	}
	if encErr != nil {
		return encErr
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	log.Printf("compressed merge: %v elapsed, %d values", time.Since(timer), n)
	return nil
}

func runCompressedScan(args []string) error {
	if len(args) != 3 {
		return newUsageError("usage: compressed scan <source> <data-out> <offsets-out>")
	}
	source, dataPath, offsetsPath := args[0], args[1], args[2]

	src, err := os.Open(source)
	if err != nil {
		return err
	}
	defer src.Close()

	data, err := os.Create(dataPath)
	if err != nil {
		return err
	}
	defer data.Close()
	dataWriter := bufio.NewWriter(data)

	offsets, err := os.Create(offsetsPath)
	if err != nil {
		return err
	}
	defer offsets.Close()

	timer := time.Now()
	if err := convert.ScanToOffsets(src, dataWriter, offsets); err != nil {
		return err
	}
	if err := dataWriter.Flush(); err != nil {
		return err
	}
	log.Printf("compressed scan: %v elapsed", time.Since(timer))
	return nil
}
