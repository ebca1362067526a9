// SPDX-License-Identifier: MIT

package algo

import (
	"testing"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

type sliceGraph [][2]uint32

func (s sliceGraph) Scan(handler func(src, dst uint32)) error {
	for _, e := range s {
		handler(e[0], e[1])
	}
	return nil
}

func TestUnionFindSingleComponent(t *testing.T) {
	g := sliceGraph{{0, 1}, {0, 2}, {1, 3}, {2, 3}, {3, 4}, {4, 5}}

	result, err := UnionFind(g, 6, OrderVertex)
	if err != nil {
		t.Fatalf("UnionFind: %v", err)
	}

	find := func(n uint32) uint32 {
		for n != result.Roots[n] {
			n = result.Roots[n]
		}
		return n
	}

	root := find(0)
	for n := uint32(1); n < 6; n++ {
		if find(n) != root {
			t.Fatalf("node %d has a different root (%d) than node 0 (%d)", n, find(n), root)
		}
	}
}

func TestUnionFindMatchesGonumComponents(t *testing.T) {
	edges := [][2]uint32{{0, 1}, {0, 2}, {1, 3}, {2, 3}, {3, 4}, {4, 5}, {10, 11}}
	g := sliceGraph(edges)

	result, err := UnionFind(g, 12, OrderVertex)
	if err != nil {
		t.Fatalf("UnionFind: %v", err)
	}

	find := func(n uint32) uint32 {
		for n != result.Roots[n] {
			n = result.Roots[n]
		}
		return n
	}

	dg := simple.NewUndirectedGraph()
	for n := int64(0); n < 12; n++ {
		dg.AddNode(simple.Node(n))
	}
	for _, e := range edges {
		dg.SetEdge(dg.NewEdge(simple.Node(e[0]), simple.Node(e[1])))
	}

	components := topo.ConnectedComponents(dg)
	for _, comp := range components {
		var root uint32
		first := true
		for _, n := range comp {
			id := uint32(n.ID())
			if first {
				root = find(id)
				first = false
				continue
			}
			if find(id) != root {
				t.Fatalf("gonum component %v disagrees with UnionFind roots", comp)
			}
		}
	}
}

func TestUnionFindHilbertOrderMinRule(t *testing.T) {
	g := sliceGraph{{0, 1}, {0, 2}, {1, 3}, {2, 3}, {3, 4}, {4, 5}}

	result, err := UnionFind(g, 6, OrderHilbert)
	if err != nil {
		t.Fatalf("UnionFind: %v", err)
	}

	find := func(n uint32) uint32 {
		for n != result.Roots[n] {
			n = result.Roots[n]
		}
		return n
	}

	root := find(0)
	for n := uint32(1); n < 6; n++ {
		if find(n) != root {
			t.Fatalf("node %d has a different root (%d) than node 0 (%d)", n, find(n), root)
		}
	}
}
