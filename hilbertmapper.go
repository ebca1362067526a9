// SPDX-License-Identifier: MIT

package cost

import (
	"fmt"

	"github.com/costgraph/cost/internal/mmap"
	"github.com/costgraph/cost/layout"
)

// HilbertMapper scans the Hilbert upper/lower layout (<prefix>.upper +
// <prefix>.lower): edges appear in Hilbert order (spec.md §4.D).
type HilbertMapper struct {
	upper *mmap.TypedMap[layout.UpperRecord]
	lower *mmap.TypedMap[layout.LowerRecord]
}

// OpenHilbertMapper memory-maps prefix.upper and prefix.lower read-only.
func OpenHilbertMapper(prefix string) (*HilbertMapper, error) {
	upper, err := mmap.Open[layout.UpperRecord](prefix + ".upper")
	if err != nil {
		return nil, fmt.Errorf("cost: open hilbert layout %q: %w", prefix, err)
	}

	lower, err := mmap.Open[layout.LowerRecord](prefix + ".lower")
	if err != nil {
		upper.Close()
		return nil, fmt.Errorf("cost: open hilbert layout %q: %w", prefix, err)
	}

	return &HilbertMapper{upper: upper, lower: lower}, nil
}

// Scan implements EdgeMapper.
func (h *HilbertMapper) Scan(handler func(src, dst uint32)) error {
	slice := h.lower.Slice()
	offset := 0

	for _, rec := range h.upper.Slice() {
		count := int(rec.Count)
		if offset+count > len(slice) {
			return fmt.Errorf("cost: hilbert layout corrupt: upper block (%d,%d) claims %d lowers past end of .lower", rec.UX, rec.UY, count)
		}

		ux := uint32(rec.UX) << 16
		uy := uint32(rec.UY) << 16

		for _, lo := range slice[offset : offset+count] {
			handler(ux|uint32(lo.LX), uy|uint32(lo.LY))
		}
		offset += count
	}

	return nil
}

// Close releases the underlying mappings.
func (h *HilbertMapper) Close() error {
	err1 := h.upper.Close()
	err2 := h.lower.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
