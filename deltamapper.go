// SPDX-License-Identifier: MIT

package cost

import (
	"fmt"
	"io"

	"github.com/costgraph/cost/internal/hilbert"
)

// deltaWindowSize is the fixed, reused read buffer for the delta-
// compressed scan (spec.md §5): a single 64 KiB window, never grown.
const deltaWindowSize = 1 << 16

// DeltaMapper scans a delta-compressed byte stream (spec.md §3, §4.D):
// edges appear in Hilbert order, equal to the Hilbert layout flattened.
// The reader it wraps is assumed already stripped of any external
// compression envelope (spec.md §6).
type DeltaMapper struct {
	open func() (io.ReadCloser, error)
}

// NewDeltaMapper wraps a reader factory so Scan is restartable: each call
// opens a fresh reader over the same underlying stream.
func NewDeltaMapper(open func() (io.ReadCloser, error)) *DeltaMapper {
	return &DeltaMapper{open: open}
}

// Scan implements EdgeMapper, decoding the stream byte-by-byte into
// (diff, depth) pairs per spec.md §4.D and emitting the detangled edge
// each time a full varint reassembles.
func (d *DeltaMapper) Scan(handler func(src, dst uint32)) error {
	r, err := d.open()
	if err != nil {
		return fmt.Errorf("cost: open delta stream: %w", err)
	}
	defer r.Close()

	cache := hilbert.NewCachedDetangle(hilbert.NewBytewise())

	var current uint64
	var delta uint64
	var depth uint8

	buffer := make([]byte, deltaWindowSize)

	for {
		n, readErr := r.Read(buffer)
		if n == 0 {
			if readErr == io.EOF {
				break
			}
			if readErr != nil {
				return fmt.Errorf("cost: read delta stream: %w", readErr)
			}
			continue
		}

		for _, b := range buffer[:n] {
			if b == 0 && delta == 0 {
				depth++
				continue
			}

			delta = (delta << 8) + uint64(b)
			if depth == 0 {
				current += delta
				delta = 0
				x, y := cache.Detangle(current)
				handler(x, y)
			} else {
				depth--
			}
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fmt.Errorf("cost: read delta stream: %w", readErr)
		}
	}

	return nil
}

// SliceMapper scans a delta-compressed stream already fully resident in
// memory: the merged-shard and test-fixture case noted in spec.md §4.D.
type SliceMapper struct {
	data []byte
}

// NewSliceMapper wraps an in-memory delta-compressed byte slice.
func NewSliceMapper(data []byte) *SliceMapper {
	return &SliceMapper{data: data}
}

// Scan implements EdgeMapper.
func (s *SliceMapper) Scan(handler func(src, dst uint32)) error {
	cache := hilbert.NewCachedDetangle(hilbert.NewBytewise())

	var current uint64
	cursor := 0
	n := len(s.data)

	for cursor < n {
		b := s.data[cursor]
		cursor++

		if b > 0 {
			current += uint64(b)
			x, y := cache.Detangle(current)
			handler(x, y)
			continue
		}

		depth := 2
		for cursor < n && s.data[cursor] == 0 {
			cursor++
			depth++
		}

		var delta uint64
		for ; depth > 0; depth-- {
			if cursor >= n {
				return fmt.Errorf("cost: delta slice truncated mid-varint")
			}
			delta = (delta << 8) + uint64(s.data[cursor])
			cursor++
		}

		current += delta
		x, y := cache.Detangle(current)
		handler(x, y)
	}

	return nil
}
