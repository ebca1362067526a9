// SPDX-License-Identifier: MIT

// Package algo implements the classical single-threaded graph algorithms
// driven by an edge-mapper scan: Union-Find, Label-Propagation, PageRank,
// and the CC-2012 BFS driver.
package algo

// edgeMapper is the structural subset of the root package's EdgeMapper
// this package depends on; avoids an import cycle with the root package.
type edgeMapper interface {
	Scan(handler func(src, dst uint32)) error
}

// Order selects which union rule UnionFind applies. Only one rule ever
// executes for a given Order: rank-union for OrderVertex, min-union for
// OrderHilbert. The min-union rule is correct only when edges arrive in
// locality-preserving (Hilbert) order.
type Order int

const (
	OrderVertex Order = iota
	OrderHilbert
)

// UnionFindResult holds the final forest produced by UnionFind: roots is a
// parent pointer per node (a root points to itself), ranks is the
// rank-union tree-height bound per node (unused, and left at zero, under
// OrderHilbert).
type UnionFindResult struct {
	Roots []uint32
	Ranks []uint8
}

// UnionFind contracts every edge of g into a forest over nodes nodes, one
// pass, finding each endpoint's root by pointer-chase on every edge
// visited. The chased paths are not rewritten; only the two roots are
// updated when they are joined.
func UnionFind(g edgeMapper, nodes uint32, order Order) (UnionFindResult, error) {
	roots := make([]uint32, nodes)
	for i := range roots {
		roots[i] = uint32(i)
	}
	ranks := make([]uint8, nodes)

	err := g.Scan(func(x, y uint32) {
		x = roots[x]
		y = roots[y]
		for x != roots[x] {
			x = roots[x]
		}
		for y != roots[y] {
			y = roots[y]
		}

		if x == y {
			return
		}

		if order == OrderHilbert {
			min := x
			if y < min {
				min = y
			}
			roots[x] = min
			roots[y] = min
			return
		}

		switch {
		case ranks[x] < ranks[y]:
			roots[x] = y
		case ranks[x] > ranks[y]:
			roots[y] = x
		default:
			roots[y] = x
			ranks[x]++
		}
	})

	return UnionFindResult{Roots: roots, Ranks: ranks}, err
}
