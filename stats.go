// SPDX-License-Identifier: MIT

package cost

import (
	"fmt"
	"io"

	"github.com/costgraph/cost/internal/hilbert"
)

// Stats is the result of the stats driver: the maximum source/destination
// seen and the total edge count.
type Stats struct {
	MaxX, MaxY uint32
	Edges      uint64
}

// ScanStats walks g once, computing Stats.
func ScanStats(g EdgeMapper) (Stats, error) {
	var s Stats

	err := g.Scan(func(x, y uint32) {
		if x > s.MaxX {
			s.MaxX = x
		}
		if y > s.MaxY {
			s.MaxY = y
		}
		s.Edges++
	})

	return s, err
}

// Print dumps every edge of g as "src\tdst -> hilbert_index" to w. This is
// the `print` command from original_source's main.rs (see SPEC_FULL.md
// §13); it is not named in spec.md's distilled CLI surface but is not
// excluded by any Non-goal either.
func Print(g EdgeMapper, w io.Writer) error {
	bw := hilbert.NewBytewise()

	var writeErr error
	err := g.Scan(func(x, y uint32) {
		if writeErr != nil {
			return
		}
		_, writeErr = fmt.Fprintf(w, "%d\t%d -> %d\n", x, y, bw.Entangle(x, y))
	})
	if err != nil {
		return err
	}
	return writeErr
}
