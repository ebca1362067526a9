// SPDX-License-Identifier: MIT

// Package hilbert implements the bijection between a 2-D point on a
// 2^32 x 2^32 grid and a 64-bit Hilbert-curve index.
//
// Entangle and Detangle are mutual inverses. BitEntangle/BitDetangle are
// the bit-serial reference used as the correctness oracle in tests;
// Entangle/Detangle are the bytewise, table-driven fast path used on the
// hot edge-scan path.
package hilbert

// shared holds the package-level lookup tables used by the Entangle and
// Detangle convenience functions below. Building them is pure and cheap
// enough (65536 iterations) to do at init rather than lazily.
var shared = NewBytewise()

// Entangle maps (x, y) to its 64-bit Hilbert index using the shared
// bytewise table set. Callers on a hot per-edge path that also need
// streaming locality should use CachedDetangle directly instead of the
// package-level Detangle below.
func Entangle(x, y uint32) uint64 {
	return shared.Entangle(x, y)
}

// Detangle is the inverse of Entangle.
func Detangle(t uint64) (x, y uint32) {
	return shared.Detangle(t)
}

// BitEntangle is the bit-serial reference implementation: the correctness
// oracle for the bytewise fast path below, and the function NewBytewise
// builds its lookup tables from.
func BitEntangle(x, y uint32) uint64 {
	pair := [2]uint32{x, y}
	var result uint64

	for logSRev := uint(0); logSRev < 32; logSRev++ {
		logS := 31 - logSRev
		rx := (pair[0] >> logS) & 1
		ry := (pair[1] >> logS) & 1
		result += uint64((3*rx)^ry) << (2 * logS)
		pair = bitRotate(logS, pair, rx, ry)
	}

	return result
}

// BitDetangle is the inverse of BitEntangle.
func BitDetangle(tangle uint64) (x, y uint32) {
	var result [2]uint32

	for logS := uint(0); logS < 32; logS++ {
		shifted := uint32((tangle >> (2 * logS)) & 3)
		rx := (shifted >> 1) & 1
		ry := (shifted ^ rx) & 1
		result = bitRotate(logS, result, rx, ry)
		result[0] += rx << logS
		result[1] += ry << logS
	}

	return result[0], result[1]
}

func bitRotate(logN uint, pair [2]uint32, rx, ry uint32) [2]uint32 {
	if ry == 0 {
		if rx != 0 {
			return [2]uint32{(uint32(1) << logN) - pair[1] - 1, (uint32(1) << logN) - pair[0] - 1}
		}
		return [2]uint32{pair[1], pair[0]}
	}
	return pair
}

// Bytewise holds the three 65536-entry lookup tables that drive the
// four-byte-pair fast entangle/detangle implementation.
type Bytewise struct {
	entangle []uint16    // entangle[x_byte<<8 | y_byte] -> tangle16
	detangle [][2]uint8  // detangle[tangle16] -> (x_byte, y_byte)
	rotation []uint8     // rotation[x_byte<<8 | y_byte] -> cumulative rotation state
}

// NewBytewise builds the lookup tables once; callers are expected to share
// a single instance (it is read-only after construction).
func NewBytewise() *Bytewise {
	entangle := make([]uint16, 65536)
	detangle := make([][2]uint8, 65536)
	rotation := make([]uint8, 65536)

	for x := uint32(0); x < 256; x++ {
		for y := uint32(0); y < 256; y++ {
			entangled := BitEntangle(x<<24, (y<<24)+(1<<23))
			key := (x << 8) | y
			tangle16 := uint16(entangled >> 48)

			entangle[key] = tangle16
			detangle[tangle16] = [2]uint8{uint8(x), uint8(y)}
			rotation[key] = uint8((entangled >> 44) & 0x0F)
		}
	}

	return &Bytewise{entangle: entangle, detangle: detangle, rotation: rotation}
}

// Entangle maps (x, y) to its 64-bit Hilbert index, processing four
// byte-pairs MSB-first and propagating the rotation/mirror state table
// encodes between pairs.
func (b *Bytewise) Entangle(x, y uint32) uint64 {
	var result uint64

	for i := 0; i < 4; i++ {
		shift := uint(24 - 8*i)
		xByte := uint16(x >> shift & 0xFF)
		yByte := uint16(y >> shift & 0xFF)
		key := xByte<<8 | yByte

		result = (result << 16) + uint64(b.entangle[key])

		rot := b.rotation[key]
		if rot&0x2 > 0 {
			x, y = y, x
		}
		if rot == 12 || rot == 6 {
			x = 0xFFFFFFFF - x
			y = 0xFFFFFFFF - y
		}
	}

	return result
}

// Detangle is the inverse of Entangle, processed LSB-first.
func (b *Bytewise) Detangle(tangle uint64) (x, y uint32) {
	var rx, ry uint32

	for logS := uint(0); logS < 4; logS++ {
		shifted := uint16(tangle >> (16 * logS))
		pair := b.detangle[shifted]
		xByte, yByte := uint32(pair[0]), uint32(pair[1])

		rot := b.rotation[uint16(xByte)<<8|uint16(yByte)]
		if rot == 12 || rot == 6 {
			rx = (1 << (8 * logS)) - rx - 1
			ry = (1 << (8 * logS)) - ry - 1
		}
		if rot&0x2 > 0 {
			rx, ry = ry, rx
		}

		rx += xByte << (8 * logS)
		ry += yByte << (8 * logS)
	}

	return rx, ry
}

// the four rotation states a detangled low byte can land in once the
// high 48 bits of the tangle are held fixed and bit 0 of the low 16 is set
// (probe value 255 below). See CachedDetangle.
var rotationProbe = [4]struct {
	x, y uint8
	swap, flip bool
}{
	{0x0F, 0x00, false, false},
	{0x00, 0x0F, true, false},
	{0xF0, 0xFF, false, true},
	{0xFF, 0xF0, true, true},
}

// CachedDetangle amortizes Detangle to O(1) per call for a stream of
// tangles that mostly share the same upper 48 bits, which is the access
// pattern produced by Hilbert-ordered edge scans.
type CachedDetangle struct {
	bw      *Bytewise
	prevHi  uint64
	prevOutX, prevOutY uint32
	swap, flip bool
}

// NewCachedDetangle constructs a cache over a shared Bytewise table set.
func NewCachedDetangle(bw *Bytewise) *CachedDetangle {
	c := &CachedDetangle{bw: bw, prevHi: ^uint64(0)}
	c.Detangle(0) // seed the cache deterministically
	return c
}

// Detangle decodes tangle, reusing the cached high-48-bit rotation state
// when tangle shares its upper 48 bits with the previous call.
func (c *CachedDetangle) Detangle(tangle uint64) (x, y uint32) {
	pair := c.bw.detangle[uint16(tangle)]
	xByte, yByte := pair[0], pair[1]

	hi := tangle >> 16
	if c.prevHi != hi {
		c.prevHi = hi

		const probeLow = 255
		px, py := c.bw.Detangle((hi << 16) + probeLow)
		value := [2]uint8{uint8(px), uint8(py)}

		matched := false
		for _, rp := range rotationProbe {
			if value[0] == rp.x && value[1] == rp.y {
				c.swap, c.flip = rp.swap, rp.flip
				matched = true
				break
			}
		}
		if !matched {
			panic("hilbert: cache probe produced an unrecognized rotation pattern")
		}

		c.prevOutX, c.prevOutY = px&0xFFFFFF00, py&0xFFFFFF00
	}

	xb, yb := xByte, yByte
	if c.flip {
		xb, yb = 255-xb, 255-yb
	}
	if c.swap {
		xb, yb = yb, xb
	}

	return c.prevOutX + uint32(xb), c.prevOutY + uint32(yb)
}
