// SPDX-License-Identifier: MIT

package algo

import (
	"github.com/bits-and-blooms/bitset"
)

// Unvisited is the BFS sentinel distance for a node never reached from
// root 0.
const Unvisited uint16 = 65535

// defaultResidualCapacity is the CC-2012 driver's hard-coded residual
// buffer size (spec.md §9 Open Question): exposed via BFSOptions but
// defaulted here to reproduce published numbers.
const defaultResidualCapacity = 1 << 30

// BFSOptions configures the BFS driver. ResidualCapacity, if zero, defaults
// to defaultResidualCapacity.
type BFSOptions struct {
	ResidualCapacity int
}

// BFSRootEdge records, for one newly-labeled node, the edge that labeled
// it: Node received its distance from From.
type BFSRootEdge struct {
	Node, From uint32
}

// BFSResult holds the final distance label per node and the trace of
// labeling edges.
type BFSResult struct {
	Label []uint16
	Roots []BFSRootEdge
}

// BFS computes the weakly-connected component of node 0 with per-node
// distance from 0, using the CC-2012 driver's exact convention: distance-1
// nodes are labeled in the union-find pre-pass, so the iterative drain
// loop begins testing against iteration+1 (spec.md §9 Open Question,
// preserved exactly, including its off-by-one-looking boundary).
func BFS(g edgeMapper, nodes uint32, opts BFSOptions) (BFSResult, error) {
	capacity := opts.ResidualCapacity
	if capacity <= 0 {
		capacity = defaultResidualCapacity
	}

	roots := make([]uint32, nodes)
	for i := range roots {
		roots[i] = uint32(i)
	}

	label := make([]uint16, nodes)
	for i := range label {
		label[i] = Unvisited
	}
	label[0] = 0

	err := g.Scan(func(x, y uint32) {
		if x == 0 {
			label[y] = 1
		}
		if y == 0 {
			label[x] = 1
		}

		rx := roots[x]
		ry := roots[y]
		for rx != roots[rx] {
			rx = roots[rx]
		}
		for ry != roots[ry] {
			ry = roots[ry]
		}

		min := rx
		if ry < min {
			min = ry
		}
		roots[rx] = min
		roots[ry] = min
	})
	if err != nil {
		return BFSResult{}, err
	}

	// Nodes outside 0's weakly-connected component are forced back to 0,
	// repurposing the sentinel slot to distinguish "not in component" from
	// "unvisited in component" — preserved exactly from the original.
	for i := uint32(1); i < nodes; i++ {
		node := i
		for node != roots[node] {
			node = roots[node]
		}
		if node != 0 {
			label[i] = 0
		}
	}

	var rootsTrace []BFSRootEdge
	// frontier tracks exactly the set of nodes whose label equals the
	// driver's current iteration counter. It duplicates information
	// already in label and is never the source of truth: both the edge
	// scans and the drain passes below test it ahead of the
	// label == iteration comparison when deciding whether an edge labels
	// its other endpoint.
	frontier := bitset.New(uint(nodes))
	for i := uint32(1); i < nodes; i++ {
		if label[i] == 1 {
			rootsTrace = append(rootsTrace, BFSRootEdge{Node: i, From: 0})
			frontier.Set(uint(i))
		}
	}

	var edges [][2]uint32
	iteration := uint16(1)

	for len(edges) == cap(edges) {
		if cap(edges) == 0 {
			edges = make([][2]uint32, 0, capacity)
		} else {
			edges = edges[:0]
		}

		nextFrontier := bitset.New(uint(nodes))

		err := g.Scan(func(src, dst uint32) {
			labelSrc := label[src]
			labelDst := label[dst]

			if len(edges) < cap(edges) {
				if (labelSrc > iteration && labelDst > iteration+1) ||
					(labelDst > iteration && labelSrc > iteration+1) {
					edges = append(edges, [2]uint32{src, dst})
				}
			}

			if frontier.Test(uint(src)) && labelSrc == iteration && labelDst > iteration+1 {
				label[dst] = iteration + 1
				rootsTrace = append(rootsTrace, BFSRootEdge{Node: dst, From: src})
				nextFrontier.Set(uint(dst))
			}
			if frontier.Test(uint(dst)) && labelDst == iteration && labelSrc > iteration+1 {
				label[src] = iteration + 1
				rootsTrace = append(rootsTrace, BFSRootEdge{Node: src, From: dst})
				nextFrontier.Set(uint(src))
			}
		})
		if err != nil {
			return BFSResult{}, err
		}

		frontier = nextFrontier
		iteration++
	}

	done := false
	for !done {
		done = true
		nextFrontier := bitset.New(uint(nodes))

		kept := edges[:0]
		for _, e := range edges {
			src, dst := e[0], e[1]

			if frontier.Test(uint(src)) && label[src] == iteration && label[dst] > iteration+1 {
				label[dst] = iteration + 1
				rootsTrace = append(rootsTrace, BFSRootEdge{Node: dst, From: src})
				nextFrontier.Set(uint(dst))
				done = false
			} else if frontier.Test(uint(dst)) && label[dst] == iteration && label[src] > iteration+1 {
				label[src] = iteration + 1
				rootsTrace = append(rootsTrace, BFSRootEdge{Node: src, From: dst})
				nextFrontier.Set(uint(src))
				done = false
			}

			if (label[src] > iteration && label[dst] > iteration+1) ||
				(label[dst] > iteration && label[src] > iteration+1) {
				kept = append(kept, e)
			}
		}
		edges = kept

		frontier = nextFrontier
		iteration++
	}

	return BFSResult{Label: label, Roots: rootsTrace}, nil
}
