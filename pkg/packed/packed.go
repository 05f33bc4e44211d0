package packed

import (
	"encoding/binary"
	"fmt"
)

// Wire format limits. MaxPasswordLen + MaxSaltLen is the combined scratch
// capacity every lane reserves, so the dispatcher rejects anything larger
// before a batch launches.
const (
	WordSize       = 4
	MaxPasswordLen = 256
	MaxSaltLen     = 16

	PasswordWords = MaxPasswordLen / WordSize
	SaltWords     = MaxSaltLen / WordSize

	// RecordWords is the fixed size of one output record.
	RecordWords = 17
)

// Record word offsets.
const (
	recMatch = 0
	recBlock = 1
	recKey1  = 5
	recKey2  = 9
	recIV    = 13
)

// Password is one candidate password packed for dispatch.
type Password struct {
	Len   uint32
	Words [PasswordWords]uint32
}

// Salt is the batch salt packed identically to passwords, just shorter.
type Salt struct {
	Len   uint32
	Words [SaltWords]uint32
}

// Record is the 17-word per-lane result. It is written exactly once per
// lane, match or not, so every slot of a batch result array is meaningful.
type Record [RecordWords]uint32

// PackPassword packs b into a Password. b longer than MaxPasswordLen is a
// dispatch-time configuration error.
func PackPassword(b []byte) (Password, error) {
	var p Password
	if len(b) > MaxPasswordLen {
		return p, fmt.Errorf("password length %d exceeds maximum %d", len(b), MaxPasswordLen)
	}
	p.Len = uint32(len(b))
	packWords(p.Words[:], b)
	return p, nil
}

// PackSalt packs b into a Salt.
func PackSalt(b []byte) (Salt, error) {
	var s Salt
	if len(b) > MaxSaltLen {
		return s, fmt.Errorf("salt length %d exceeds maximum %d", len(b), MaxSaltLen)
	}
	s.Len = uint32(len(b))
	packWords(s.Words[:], b)
	return s, nil
}

// Bytes unpacks the password into dst and returns the filled prefix.
// dst must have capacity for Len bytes; lanes pass a fixed scratch array.
func (p *Password) Bytes(dst []byte) []byte {
	return unpackWords(dst, p.Words[:], int(p.Len))
}

// Bytes unpacks the salt into dst and returns the filled prefix.
func (s *Salt) Bytes(dst []byte) []byte {
	return unpackWords(dst, s.Words[:], int(s.Len))
}

// packWords stores byte i of b in words[i/4] at bit offset 8*(i%4).
func packWords(words []uint32, b []byte) {
	for i, c := range b {
		words[i/WordSize] |= uint32(c) << (8 * (i % WordSize))
	}
}

// unpackWords is the inverse walk over the declared length.
func unpackWords(dst []byte, words []uint32, n int) []byte {
	dst = dst[:n]
	for i := 0; i < n; i++ {
		dst[i] = byte(words[i/WordSize] >> (8 * (i % WordSize)))
	}
	return dst
}

// SetMatch stores the heuristic verdict in word 0.
func (r *Record) SetMatch(match bool) {
	r[recMatch] = 0
	if match {
		r[recMatch] = 1
	}
}

// Match reports the stored verdict.
func (r *Record) Match() bool { return r[recMatch] != 0 }

// SetBlock stores the decrypted block in words 1-4.
func (r *Record) SetBlock(b *[16]byte) { put16(r[recBlock:recBlock+4], b) }

// Block returns the decrypted block from words 1-4.
func (r *Record) Block() [16]byte { return get16(r[recBlock : recBlock+4]) }

// SetKey1 stores key1 in words 5-8.
func (r *Record) SetKey1(b *[16]byte) { put16(r[recKey1:recKey1+4], b) }

// Key1 returns key1 from words 5-8.
func (r *Record) Key1() [16]byte { return get16(r[recKey1 : recKey1+4]) }

// SetKey2 stores key2 in words 9-12.
func (r *Record) SetKey2(b *[16]byte) { put16(r[recKey2:recKey2+4], b) }

// Key2 returns key2 from words 9-12.
func (r *Record) Key2() [16]byte { return get16(r[recKey2 : recKey2+4]) }

// SetIV stores the iv in words 13-16.
func (r *Record) SetIV(b *[16]byte) { put16(r[recIV:recIV+4], b) }

// IV returns the iv from words 13-16.
func (r *Record) IV() [16]byte { return get16(r[recIV : recIV+4]) }

func put16(words []uint32, b *[16]byte) {
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*WordSize:])
	}
}

func get16(words []uint32) [16]byte {
	var b [16]byte
	for i, w := range words {
		binary.LittleEndian.PutUint32(b[i*WordSize:], w)
	}
	return b
}
