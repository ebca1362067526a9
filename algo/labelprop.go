// SPDX-License-Identifier: MIT

package algo

// LabelPropResult holds the fixed-point label assignment and the number of
// passes LabelPropagation needed to reach it.
type LabelPropResult struct {
	Label      []uint32
	Iterations int
}

// LabelPropagation repeatedly pulls every node's label down to the minimum
// label among its edge endpoints until a full pass leaves the sum of
// labels unchanged (spec.md §4.F).
func LabelPropagation(g edgeMapper, nodes uint32) (LabelPropResult, error) {
	label := make([]uint32, nodes)
	for i := range label {
		label[i] = uint32(i)
	}

	sum := func() uint64 {
		var s uint64
		for _, l := range label {
			s += uint64(l)
		}
		return s
	}

	oldSum := sum() + 1
	newSum := sum()
	iterations := 0

	for newSum < oldSum {
		err := g.Scan(func(src, dst uint32) {
			switch {
			case label[src] < label[dst]:
				label[dst] = label[src]
			case label[src] > label[dst]:
				label[src] = label[dst]
			}
		})
		if err != nil {
			return LabelPropResult{}, err
		}

		oldSum = newSum
		newSum = sum()
		iterations++
	}

	return LabelPropResult{Label: label, Iterations: iterations}, nil
}
