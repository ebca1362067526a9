// SPDX-License-Identifier: MIT

package varint

import (
	"bytes"
	"testing"
)

// TestEncodeDecodeRoundTrip is the "Varint round-trip" property from
// spec.md §8.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	input := []uint64{1, 2, 1 << 20, 1 << 60}

	var buf bytes.Buffer
	for _, v := range input {
		if err := Encode(&buf, v); err != nil {
			t.Fatalf("Encode(%d): %v", v, err)
		}
	}

	var got []uint64
	r := bytes.NewReader(buf.Bytes())
	for {
		v, ok, err := Decode(r)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !ok {
			break
		}
		got = append(got, v)
	}

	if len(got) != len(input) {
		t.Fatalf("got %v, want %v", got, input)
	}
	for i := range input {
		if got[i] != input[i] {
			t.Fatalf("got %v, want %v", got, input)
		}
	}
}

func TestEncodeRejectsNonPositive(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Encode(&buf, 0); err != ErrNonPositiveDiff {
		t.Fatalf("Encode(0) = %v, want ErrNonPositiveDiff", err)
	}
}

// TestDecoderMonotonicity is the "Delta stream monotonicity" property.
func TestDecoderMonotonicity(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	values := []uint64{5, 10, 10_000, 1 << 40}
	prev := uint64(0)
	for _, v := range values {
		if err := Encode(&buf, v-prev); err != nil {
			t.Fatal(err)
		}
		prev = v
	}

	dec := NewDecoder(&buf)
	last := uint64(0)
	count := 0
	for {
		v, ok, err := dec.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			break
		}
		if v <= last {
			t.Fatalf("decoded sequence not strictly increasing: %d after %d", v, last)
		}
		last = v
		count++
	}
	if count != len(values) {
		t.Fatalf("decoded %d values, want %d", count, len(values))
	}
}

func encodeDiffs(t *testing.T, values []uint64) *Decoder {
	t.Helper()

	var buf bytes.Buffer
	prev := uint64(0)
	for _, v := range values {
		if err := Encode(&buf, v-prev); err != nil {
			t.Fatal(err)
		}
		prev = v
	}
	return NewDecoder(&buf)
}

// TestMergeCorrectness is the "Merge correctness" property: streams
// [1,3,5], [2,3,6], [4] merge (with duplicate 3 collapsed by the encoder)
// to the sorted set union [1,2,3,4,5,6].
func TestMergeCorrectness(t *testing.T) {
	t.Parallel()

	decoders := []*Decoder{
		encodeDiffs(t, []uint64{1, 3, 5}),
		encodeDiffs(t, []uint64{2, 3, 6}),
		encodeDiffs(t, []uint64{4}),
	}

	var merged []uint64
	if err := Merge(decoders, func(v uint64) { merged = append(merged, v) }); err != nil {
		t.Fatalf("Merge: %v", err)
	}

	wantMerged := []uint64{1, 2, 3, 3, 4, 5, 6}
	if len(merged) != len(wantMerged) {
		t.Fatalf("merged = %v, want %v", merged, wantMerged)
	}
	for i := range wantMerged {
		if merged[i] != wantMerged[i] {
			t.Fatalf("merged = %v, want %v", merged, wantMerged)
		}
	}

	var out bytes.Buffer
	if err := EncodeMerged(&out, func(emit func(uint64)) {
		for _, v := range merged {
			emit(v)
		}
	}); err != nil {
		t.Fatalf("EncodeMerged: %v", err)
	}

	dec := NewDecoder(&out)
	var final []uint64
	for {
		v, ok, err := dec.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			break
		}
		final = append(final, v)
	}

	wantFinal := []uint64{1, 2, 3, 4, 5, 6}
	if len(final) != len(wantFinal) {
		t.Fatalf("final = %v, want %v", final, wantFinal)
	}
	for i := range wantFinal {
		if final[i] != wantFinal[i] {
			t.Fatalf("final = %v, want %v", final, wantFinal)
		}
	}
}
