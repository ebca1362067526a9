// SPDX-License-Identifier: MIT

package algo

// DefaultAlpha is the damping factor used when a caller has no reason to
// deviate from the published numbers (spec.md §4.F).
const DefaultAlpha float32 = 0.85

// DefaultIterations is the fixed pass count PageRank runs (spec.md §4.F);
// the algorithm does not converge-check, it always runs exactly this many.
const DefaultIterations = 20

// PageRankResult holds the final rank estimate per node.
type PageRankResult struct {
	Dst []float32
}

// PageRank computes PageRank over nodes nodes of g using the power
// iteration: a first scan computes out-degree, then each of iterations
// passes resets src/dst per node and accumulates dst[y] += src[x] for
// every edge (x, y).
func PageRank(g edgeMapper, nodes uint32, alpha float32, iterations int) (PageRankResult, error) {
	src := make([]float32, nodes)
	dst := make([]float32, nodes)
	deg := make([]float32, nodes)

	if err := g.Scan(func(x, _ uint32) { deg[x]++ }); err != nil {
		return PageRankResult{}, err
	}

	for iter := 0; iter < iterations; iter++ {
		for n := uint32(0); n < nodes; n++ {
			src[n] = alpha * dst[n] / deg[n]
			dst[n] = 1 - alpha
		}

		if err := g.Scan(func(x, y uint32) { dst[y] += src[x] }); err != nil {
			return PageRankResult{}, err
		}
	}

	return PageRankResult{Dst: dst}, nil
}
