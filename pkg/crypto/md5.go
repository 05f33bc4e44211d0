package crypto

import (
	"encoding/binary"
	"math"
	"math/bits"
)

// From-scratch MD5 (RFC 1321): four 32-bit state words, 512-bit blocks,
// little-endian length padding, 64 steps in four rounds with per-step sine
// constants and rotations.

// md5Shift holds the left-rotation amount for each of the 64 steps.
var md5Shift = [64]int{
	7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22,
	5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20,
	4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23,
	6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21,
}

// md5Sine holds the additive constants K[i] = floor(|sin(i+1)| * 2^32),
// built once at process start and read-only afterwards.
var md5Sine [64]uint32

func init() {
	for i := range md5Sine {
		md5Sine[i] = uint32(math.Floor(math.Abs(math.Sin(float64(i+1))) * 4294967296.0))
	}
}

// MD5Sum computes the MD5 digest of msg without allocating. msg may point
// into lane-private scratch or a shared input buffer; the routine only
// reads it. An empty msg still hashes one full padding block.
func MD5Sum(msg []byte) [DigestSize]byte {
	a0 := uint32(0x67452301)
	b0 := uint32(0xefcdab89)
	c0 := uint32(0x98badcfe)
	d0 := uint32(0x10325476)

	i := 0
	for ; i+64 <= len(msg); i += 64 {
		a0, b0, c0, d0 = md5Block(msg[i:i+64], a0, b0, c0, d0)
	}

	// Tail: 0x80 marker, zero fill, 64-bit little-endian bit length. If the
	// marker plus length does not fit, padding spills into a second block.
	var tail [128]byte
	n := copy(tail[:], msg[i:])
	tail[n] = 0x80
	padded := 64
	if n+9 > 64 {
		padded = 128
	}
	binary.LittleEndian.PutUint64(tail[padded-8:], uint64(len(msg))*8)

	a0, b0, c0, d0 = md5Block(tail[:64], a0, b0, c0, d0)
	if padded == 128 {
		a0, b0, c0, d0 = md5Block(tail[64:], a0, b0, c0, d0)
	}

	var digest [DigestSize]byte
	binary.LittleEndian.PutUint32(digest[0:], a0)
	binary.LittleEndian.PutUint32(digest[4:], b0)
	binary.LittleEndian.PutUint32(digest[8:], c0)
	binary.LittleEndian.PutUint32(digest[12:], d0)
	return digest
}

// md5Block runs the 64-step compression over one 64-byte block.
func md5Block(block []byte, a0, b0, c0, d0 uint32) (uint32, uint32, uint32, uint32) {
	var m [16]uint32
	for j := range m {
		m[j] = binary.LittleEndian.Uint32(block[j*4:])
	}

	a, b, c, d := a0, b0, c0, d0
	for j := 0; j < 64; j++ {
		var f uint32
		var g int
		switch {
		case j < 16:
			f = (b & c) | (^b & d)
			g = j
		case j < 32:
			f = (d & b) | (^d & c)
			g = (5*j + 1) % 16
		case j < 48:
			f = b ^ c ^ d
			g = (3*j + 5) % 16
		default:
			f = c ^ (b | ^d)
			g = (7 * j) % 16
		}
		f += a + md5Sine[j] + m[g]
		a, d, c = d, c, b
		b += bits.RotateLeft32(f, md5Shift[j])
	}

	return a0 + a, b0 + b, c0 + c, d0 + d
}
