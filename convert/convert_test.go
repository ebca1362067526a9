// SPDX-License-Identifier: MIT

package convert

import (
	"bytes"
	"sort"
	"testing"

	"github.com/costgraph/cost/internal/hilbert"
	"github.com/costgraph/cost/internal/varint"
	"github.com/costgraph/cost/layout"
)

type sliceGraph [][2]uint32

func (s sliceGraph) Scan(handler func(src, dst uint32)) error {
	for _, e := range s {
		handler(e[0], e[1])
	}
	return nil
}

func TestDenseRenumberFirstAppearanceOrder(t *testing.T) {
	g := sliceGraph{{10, 20}, {20, 30}}

	var got [][2]uint32
	err := ConvertToHilbert(g, true, func(ux, uy uint16, count uint32, lowers []layout.LowerRecord) {
		for _, lo := range lowers {
			got = append(got, [2]uint32{uint32(lo.LX) | uint32(ux)<<16, uint32(lo.LY) | uint32(uy)<<16})
		}
	})
	if err != nil {
		t.Fatalf("ConvertToHilbert: %v", err)
	}

	want := map[[2]uint32]bool{{0, 1}: true, {1, 2}: true}
	if len(got) != 2 {
		t.Fatalf("got %d edges, want 2: %v", len(got), got)
	}
	for _, e := range got {
		if !want[e] {
			t.Fatalf("unexpected edge %v after dense renumbering, want one of %v", e, want)
		}
	}
}

func TestConvertToHilbertSortedAscending(t *testing.T) {
	g := sliceGraph{{0, 1}, {0, 2}, {1, 3}, {2, 3}, {3, 4}, {4, 5}}

	var prevUpper uint32
	haveUpper := false
	err := ConvertToHilbert(g, false, func(ux, uy uint16, count uint32, lowers []layout.LowerRecord) {
		upper := uint32(hilbert.Entangle(uint32(ux)<<16, uint32(uy)<<16) >> 32)
		if haveUpper && upper < prevUpper {
			t.Fatalf("upper blocks not ascending: %d after %d", upper, prevUpper)
		}
		prevUpper, haveUpper = upper, true
		if int(count) != len(lowers) {
			t.Fatalf("count %d != len(lowers) %d", count, len(lowers))
		}
	})
	if err != nil {
		t.Fatalf("ConvertToHilbert: %v", err)
	}
}

func TestToHilbertStreamMatchesEntangle(t *testing.T) {
	g := sliceGraph{{0, 1}, {0, 2}, {1, 3}, {2, 3}, {3, 4}, {4, 5}}

	var want []uint64
	for _, e := range g {
		want = append(want, hilbert.Entangle(e[0], e[1]))
	}
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })

	var got []uint64
	if err := ToHilbertStream(g, func(next uint64) { got = append(got, next) }); err != nil {
		t.Fatalf("ToHilbertStream: %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("got %d values, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("value %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestMergeShardsUnion(t *testing.T) {
	var bufA, bufB bytes.Buffer
	writeAbsolutes(t, &bufA, []uint64{1, 3, 5})
	writeAbsolutes(t, &bufB, []uint64{2, 3, 4})

	decA := varint.NewDecoder(&bufA)
	decB := varint.NewDecoder(&bufB)

	var got []uint64
	if err := MergeShards([]*varint.Decoder{decA, decB}, func(v uint64) { got = append(got, v) }); err != nil {
		t.Fatalf("MergeShards: %v", err)
	}

	want := []uint64{1, 2, 3, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestScanToOffsets(t *testing.T) {
	// Two nodes: node 0 owns lows {5, 9}, node 2 owns low {1} (node 1 empty).
	values := []uint64{
		0<<32 | 5,
		0<<32 | 9,
		2<<32 | 1,
	}

	var src bytes.Buffer
	writeAbsolutes(t, &src, values)

	var data, offsets bytes.Buffer
	if err := ScanToOffsets(&src, &data, &offsets); err != nil {
		t.Fatalf("ScanToOffsets: %v", err)
	}

	if offsets.Len()%8 != 0 {
		t.Fatalf("offsets length %d not a multiple of 8", offsets.Len())
	}
	entries := offsets.Len() / 8
	if entries != 3 {
		t.Fatalf("got %d offsets entries, want 3 (nodes 0,1,2)", entries)
	}

	offBytes := offsets.Bytes()
	off0 := readUint64(offBytes[0:8])
	off1 := readUint64(offBytes[8:16])
	off2 := readUint64(offBytes[16:24])

	if off0 != 0 {
		t.Fatalf("offset for node 0 = %d, want 0", off0)
	}
	if off1 != off2 {
		t.Fatalf("offset for empty node 1 = %d, want forward-filled to node 2's offset %d", off1, off2)
	}
	if off2 == 0 {
		t.Fatalf("offset for node 2 should be past node 0's encoded bytes, got 0")
	}
}

func writeAbsolutes(t *testing.T, w *bytes.Buffer, values []uint64) {
	t.Helper()
	var prev uint64
	for _, v := range values {
		if err := varint.Encode(w, v-prev); err != nil {
			t.Fatal(err)
		}
		prev = v
	}
}

func readUint64(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = (v << 8) | uint64(b[i])
	}
	return v
}
