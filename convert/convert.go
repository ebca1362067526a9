// SPDX-License-Identifier: MIT

// Package convert implements the Hilbert conversion pipeline: dense vertex
// renumbering, upper/lower block emission, buffer-sort-encode to a
// delta-compressed stream, k-way shard merging, and the compressed-scan
// per-node offset format.
package convert

import (
	"fmt"
	"io"
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/costgraph/cost/internal/hilbert"
	"github.com/costgraph/cost/internal/varint"
	"github.com/costgraph/cost/layout"
)

// edgeMapper is the structural subset of the root package's EdgeMapper this
// package depends on; avoids an import cycle with the root package.
type edgeMapper interface {
	Scan(handler func(src, dst uint32)) error
}

// denseRenumber assigns each first-seen node id a dense id in order of
// first appearance, using a bitset to test presence so the assigned-id
// slice can grow lazily. seen.Test(id) == (assigned[id] != -1) is a
// maintained invariant.
type denseRenumber struct {
	seen     *bitset.BitSet
	assigned []int32
	next     uint32
}

func newDenseRenumber() *denseRenumber {
	return &denseRenumber{seen: bitset.New(0), assigned: nil}
}

func (d *denseRenumber) grow(id uint32) {
	if uint(id) >= uint(len(d.assigned)) {
		grown := make([]int32, id+1)
		for i := range grown {
			grown[i] = -1
		}
		copy(grown, d.assigned)
		d.assigned = grown
	}
}

func (d *denseRenumber) id(original uint32) uint32 {
	d.grow(original)
	if d.seen.Test(uint(original)) {
		return uint32(d.assigned[original])
	}
	d.seen.Set(uint(original))
	id := d.next
	d.assigned[original] = int32(id)
	d.next++
	return id
}

// ToHilbertStream buffers every edge's Hilbert index in memory, sorts them
// ascending, and emits them in order (spec.md §4.E). Duplicates are not
// collapsed; the caller's diff-encoder drops zero diffs.
func ToHilbertStream(g edgeMapper, emit func(next uint64)) error {
	var values []uint64

	err := g.Scan(func(x, y uint32) {
		values = append(values, hilbert.Entangle(x, y))
	})
	if err != nil {
		return fmt.Errorf("convert: scan source graph: %w", err)
	}

	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	for _, v := range values {
		emit(v)
	}
	return nil
}

// ConvertToHilbert walks g (optionally renumbering vertices densely in
// first-appearance order), entangles every edge, sorts the resulting
// indices ascending, groups them by their upper 32 bits, and calls emit
// once per upper block with its lower-block records.
func ConvertToHilbert(g edgeMapper, dense bool, emit func(ux, uy uint16, count uint32, lowers []layout.LowerRecord)) error {
	var renumber *denseRenumber
	if dense {
		renumber = newDenseRenumber()
	}

	var values []uint64
	err := g.Scan(func(x, y uint32) {
		if renumber != nil {
			x = renumber.id(x)
			y = renumber.id(y)
		}
		values = append(values, hilbert.Entangle(x, y))
	})
	if err != nil {
		return fmt.Errorf("convert: scan source graph: %w", err)
	}

	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	i := 0
	for i < len(values) {
		upper := values[i] >> 32
		j := i
		lowers := make([]layout.LowerRecord, 0, 8)
		for j < len(values) && values[j]>>32 == upper {
			lx, ly := hilbert.Detangle(values[j])
			lowers = append(lowers, layout.LowerRecord{
				LX: uint16(lx),
				LY: uint16(ly),
			})
			j++
		}

		ux, uy := hilbert.Detangle(upper << 32)
		emit(uint16(ux>>16), uint16(uy>>16), uint32(len(lowers)), lowers)

		i = j
	}

	return nil
}

// MergeShards performs a k-way merge of already-sorted delta-compressed
// shards, emitting the combined non-decreasing absolute-value stream. Thin
// wrapper over varint.Merge for the "too large to hold in a buffer" case
// (spec.md §4.E).
func MergeShards(shards []*varint.Decoder, emit func(uint64)) error {
	return varint.Merge(shards, emit)
}

// ScanToOffsets implements the `compressed scan` utility (spec.md §6,
// worked out from original_source's compressed.rs scan arm): it reads a
// Hilbert-ordered absolute-value stream from src, regroups the values by
// their upper 32 bits (the node id in this format), and writes:
//   - to data: a base-128 LEB128-style delta stream of the lower 32 bits
//     (compressed.rs's own continuation-bit loop, not internal/varint's
//     scheme), restarting the running delta base at 0 for every node.
//     Every value writes at least one byte, including a zero diff.
//   - to offsets: one uint64 little-endian byte offset per node id, into
//     data, forward-filled across node ids with no edges of their own.
func ScanToOffsets(src io.Reader, data io.Writer, offsets io.Writer) error {
	dec := varint.NewDecoder(src)

	dataWriter, ok := data.(io.ByteWriter)
	if !ok {
		return fmt.Errorf("convert: offsets data writer must implement io.ByteWriter")
	}

	var (
		curNode      uint32
		haveNode     bool
		nodeBase     uint64
		bytesWritten uint64
		nextOffset   uint32 // next node id not yet given an offsets entry
	)

	for {
		next, ok, err := dec.Next()
		if err != nil {
			return fmt.Errorf("convert: decode offsets source stream: %w", err)
		}
		if !ok {
			break
		}

		node := uint32(next >> 32)
		low := next & 0xFFFFFFFF

		if !haveNode || node != curNode {
			// Forward-fill: every node id strictly between the last one
			// seen and this one gets the same start offset this node
			// does, since none of them own any bytes in data.
			for nextOffset <= node {
				if err := writeUint64(offsets, bytesWritten); err != nil {
					return fmt.Errorf("convert: write offsets entry: %w", err)
				}
				nextOffset++
			}
			curNode = node
			haveNode = true
			nodeBase = 0
		}

		diff := low - nodeBase
		written, err := encodeOffsetDelta(dataWriter, diff)
		if err != nil {
			return fmt.Errorf("convert: encode offsets data: %w", err)
		}
		bytesWritten += written
		nodeBase = low
	}

	return nil
}

func writeUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	_, err := w.Write(buf[:])
	return err
}

// encodeOffsetDelta writes diff as compressed.rs's scan arm does: seven
// payload bits per byte, continuation signaled by the high bit, low-order
// group first. Unlike internal/varint's Encode, diff==0 is a valid input
// and still writes exactly one (zero) byte — the offsets data stream
// needs one record per value seen, never a dropped one.
func encodeOffsetDelta(w io.ByteWriter, diff uint64) (uint64, error) {
	var n uint64
	for diff > 127 {
		if err := w.WriteByte(byte(diff&127) + 128); err != nil {
			return n, err
		}
		diff >>= 7
		n++
	}
	if err := w.WriteByte(byte(diff)); err != nil {
		return n, err
	}
	n++
	return n, nil
}
