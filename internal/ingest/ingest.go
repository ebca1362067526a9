// SPDX-License-Identifier: MIT

// Package ingest implements the generic text-edge reader described as an
// external collaborator in spec.md §6: it produces a lazy sequence of
// (src, dst) pairs from a whitespace-delimited, '#'-comment-skipping
// stream, and writes edges grouped by source out as a vertex layout.
//
// The domain-specific Twitter/Common-Crawl parser spec.md excludes by
// name is not implemented here; this is the generic reader it would sit
// on top of.
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReaderMapper is an edge mapper over a line-oriented text stream. Lines
// beginning with '#' are skipped; remaining lines are split on
// whitespace into (src, dst) uint32 fields.
type ReaderMapper struct {
	Reader func() (io.ReadCloser, error)
}

// Scan implements the EdgeMapper contract from the root package without
// importing it, to avoid a cyclic dependency; the root package's
// EdgeMapper interface is satisfied structurally.
func (rm ReaderMapper) Scan(handler func(src, dst uint32)) error {
	r, err := rm.Reader()
	if err != nil {
		return fmt.Errorf("ingest: open source: %w", err)
	}
	defer r.Close()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return fmt.Errorf("ingest: line %d: expected two fields, got %d", lineNo, len(fields))
		}

		src, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return fmt.Errorf("ingest: line %d: malformed src: %w", lineNo, err)
		}
		dst, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return fmt.Errorf("ingest: line %d: malformed dst: %w", lineNo, err)
		}

		handler(uint32(src), uint32(dst))
	}

	return scanner.Err()
}

// edgeMapper is the minimal structural shape WriteVertexLayout needs; it
// matches the root package's EdgeMapper interface without importing it.
type edgeMapper interface {
	Scan(handler func(src, dst uint32)) error
}

// VertexWriter is the pair of writers WriteVertexLayout needs; layout.go
// in the root-level layout package implements this shape via
// layout.NodesWriter/layout.EdgesWriter.
type VertexWriter interface {
	WriteNode(node, degree uint32) error
	WriteEdge(dst uint32) error
	Close() error
}

// WriteVertexLayout consumes g, which must yield edges already grouped by
// ascending source (as a sorted text ingest or an upstream Hilbert-order
// scan regrouped by source would), and writes the vertex layout described
// in spec.md §3: one .nodes record per distinct source, with its degree,
// followed by that many .edges destinations.
func WriteVertexLayout(g edgeMapper, nodes VertexWriter) error {
	var (
		cnt      uint32
		src      uint32
		any      bool
		writeErr error
	)

	err := g.Scan(func(x, y uint32) {
		if writeErr != nil {
			return
		}
		if !any || x != src {
			if any && cnt > 0 {
				if werr := nodes.WriteNode(src, cnt); werr != nil {
					writeErr = fmt.Errorf("ingest: write node record: %w", werr)
					return
				}
			}
			src = x
			cnt = 0
			any = true
		}
		if werr := nodes.WriteEdge(y); werr != nil {
			writeErr = fmt.Errorf("ingest: write edge record: %w", werr)
			return
		}
		cnt++
	})
	if err != nil {
		return err
	}
	if writeErr != nil {
		return writeErr
	}

	if any && cnt > 0 {
		if err := nodes.WriteNode(src, cnt); err != nil {
			return err
		}
	}

	return nodes.Close()
}
