// SPDX-License-Identifier: MIT

package cost

import (
	"fmt"

	"github.com/costgraph/cost/internal/mmap"
	"github.com/costgraph/cost/layout"
)

// VertexMapper scans the vertex layout (<prefix>.nodes + <prefix>.edges):
// edges appear grouped by source, in file order (spec.md §4.D).
type VertexMapper struct {
	nodes *mmap.TypedMap[layout.NodeRecord]
	edges *mmap.TypedMap[uint32]
}

// OpenVertexMapper memory-maps prefix.nodes and prefix.edges read-only.
func OpenVertexMapper(prefix string) (*VertexMapper, error) {
	nodes, err := mmap.Open[layout.NodeRecord](prefix + ".nodes")
	if err != nil {
		return nil, fmt.Errorf("cost: open vertex layout %q: %w", prefix, err)
	}

	edges, err := mmap.Open[uint32](prefix + ".edges")
	if err != nil {
		nodes.Close()
		return nil, fmt.Errorf("cost: open vertex layout %q: %w", prefix, err)
	}

	return &VertexMapper{nodes: nodes, edges: edges}, nil
}

// Scan implements EdgeMapper.
func (v *VertexMapper) Scan(handler func(src, dst uint32)) error {
	slice := v.edges.Slice()
	offset := 0

	for _, rec := range v.nodes.Slice() {
		degree := int(rec.Degree)
		if offset+degree > len(slice) {
			return fmt.Errorf("cost: vertex layout corrupt: node %d claims %d edges past end of .edges", rec.Node, degree)
		}
		for _, dst := range slice[offset : offset+degree] {
			handler(rec.Node, dst)
		}
		offset += degree
	}

	return nil
}

// Close releases the underlying mappings.
func (v *VertexMapper) Close() error {
	err1 := v.nodes.Close()
	err2 := v.edges.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
