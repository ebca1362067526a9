// SPDX-License-Identifier: MIT

// Package varint implements the delta/varint byte-stream codec for a
// strictly increasing uint64 sequence: each value is emitted as the
// difference from the previous value (initial previous is 0), encoded as
// a leading run of zero bytes whose count discloses the length of the
// significant big-endian byte run that follows.
package varint

import (
	"bufio"
	"errors"
	"io"
)

// ErrNonPositiveDiff is returned by Encode when diff is not strictly
// positive; the format requires a strictly increasing input sequence.
var ErrNonPositiveDiff = errors.New("varint: diff must be > 0")

// ErrNotMonotone is returned by Decoder.Next when a decoded diff would not
// strictly advance the running total, which indicates either overflow or
// a corrupt stream.
var ErrNotMonotone = errors.New("varint: decoded stream is not monotone")

// Encode writes diff to w as length-prefixed big-endian significant bytes.
func Encode(w io.ByteWriter, diff uint64) error {
	if diff == 0 {
		return ErrNonPositiveDiff
	}

	shifts := [7]uint{56, 48, 40, 32, 24, 16, 8}

	for _, shift := range shifts {
		if diff>>shift != 0 {
			if err := w.WriteByte(0); err != nil {
				return err
			}
		}
	}

	for _, shift := range shifts {
		if diff>>shift != 0 {
			if err := w.WriteByte(byte(diff >> shift)); err != nil {
				return err
			}
		}
	}

	return w.WriteByte(byte(diff))
}

// Decode reads one encoded diff from r. ok is false on a clean EOF with no
// bytes consumed (the well-formed end of a stream); any other error is
// returned as err.
func Decode(r io.ByteReader) (diff uint64, ok bool, err error) {
	b, err := r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return 0, false, nil
		}
		return 0, false, err
	}

	count := uint64(0)
	for b == 0 {
		count++
		if count > 7 {
			panic("varint: encoded diff needs more than 8 significant bytes")
		}
		b, err = r.ReadByte()
		if err != nil {
			return 0, false, err
		}
	}

	diff = uint64(b)
	for i := uint64(0); i < count; i++ {
		b, err = r.ReadByte()
		if err != nil {
			return 0, false, err
		}
		diff = (diff << 8) | uint64(b)
	}

	return diff, true, nil
}

// Decoder accumulates decoded diffs into a strictly increasing absolute
// value stream.
type Decoder struct {
	r       io.ByteReader
	current uint64
}

// NewDecoder wraps r, buffering it if it does not already implement
// io.ByteReader.
func NewDecoder(r io.Reader) *Decoder {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Decoder{r: br}
}

// Next returns the next absolute value in the stream. ok is false once the
// stream is exhausted.
func (d *Decoder) Next() (value uint64, ok bool, err error) {
	diff, ok, err := Decode(d.r)
	if err != nil || !ok {
		return 0, false, err
	}

	next := d.current + diff
	if next <= d.current {
		return 0, false, ErrNotMonotone
	}

	d.current = next
	return d.current, true, nil
}

// Merge performs a k-way merge of decoders, each producing a strictly
// increasing stream, into a single non-decreasing stream passed to emit.
// Duplicate values across decoders are passed through unchanged; callers
// that want the sorted *set* union should drop repeats of emit's previous
// argument themselves (see EncodeMerged).
func Merge(decoders []*Decoder, emit func(uint64)) error {
	heads := make([]uint64, len(decoders))
	present := make([]bool, len(decoders))

	for i, d := range decoders {
		v, ok, err := d.Next()
		if err != nil {
			return err
		}
		heads[i], present[i] = v, ok
	}

	var prev uint64
	havePrev := false

	for {
		argMin := -1
		var valMin uint64

		for i, ok := range present {
			if !ok {
				continue
			}
			if argMin == -1 || heads[i] < valMin {
				argMin, valMin = i, heads[i]
			}
		}

		if argMin == -1 {
			return nil
		}

		if havePrev && valMin < prev {
			return ErrNotMonotone
		}
		prev, havePrev = valMin, true

		emit(valMin)

		v, ok, err := decoders[argMin].Next()
		if err != nil {
			return err
		}
		if ok && v <= valMin {
			return ErrNotMonotone
		}
		heads[argMin], present[argMin] = v, ok
	}
}

// EncodeMerged re-encodes a non-decreasing stream (as produced by Merge)
// as a strictly increasing delta stream, dropping any value equal to the
// previously emitted one. The result is the sorted set union of the
// merged decoders' values.
func EncodeMerged(w io.ByteWriter, values func(emit func(uint64))) error {
	var prev uint64
	havePrev := false
	var encErr error

	values(func(next uint64) {
		if encErr != nil {
			return
		}
		if havePrev && next == prev {
			return // tie: collapses into a dropped zero diff
		}
		encErr = Encode(w, next-prev)
		prev = next
		havePrev = true
	})

	return encErr
}
