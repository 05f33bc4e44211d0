package crypto

// From-scratch AES-256, decryption direction only. The engine only ever
// inverts a single 16-byte block per candidate, so there is no encryption
// side, no cipher.Block plumbing, and no mode machinery beyond the IV XOR
// that single-block CBC reduces to.
//
// State is a flat 16-byte array in FIPS-197 column order: byte i holds
// row i%4 of column i/4.

const (
	aesRounds         = 14
	roundKeyBytes     = (aesRounds + 1) * BlockSize // 240
	keySchedulePeriod = KeySize                     // 32-byte expansion period
)

// S-box, inverse S-box and round constants. Built once at process start from
// the GF(2^8) inverse and the affine transform instead of 512 typed-in hex
// values; read-only afterwards and shared by every lane.
var (
	sbox    [256]byte
	invSbox [256]byte
	rcon    [8]byte
)

func init() {
	// Exp/log tables over the generator 0x03.
	var exp, log [256]byte
	x := byte(1)
	for i := 0; i < 255; i++ {
		exp[i] = x
		log[x] = byte(i)
		x = gmul(x, 0x03)
	}

	for i := 0; i < 256; i++ {
		var inv byte
		if i != 0 {
			inv = exp[(255-int(log[i]))%255]
		}
		s := inv ^ rotl8(inv, 1) ^ rotl8(inv, 2) ^ rotl8(inv, 3) ^ rotl8(inv, 4) ^ 0x63
		sbox[i] = s
		invSbox[s] = byte(i)
	}

	rc := byte(1)
	for i := 1; i < len(rcon); i++ {
		rcon[i] = rc
		rc = xtime(rc)
	}
}

// KeySchedule holds the 240 bytes of expanded round-key material for one
// candidate key. Lanes keep one on the stack and re-expand per candidate.
type KeySchedule struct {
	rk [roundKeyBytes]byte
}

// Expand fills the schedule from a 32-byte cipher key. The first 32 bytes
// are the key itself; each later 4-byte word is the word 32 bytes back XOR a
// temporary: every 8th word is rotated, substituted and Rcon-folded, the
// word at offset 16 within the period is substituted only, the rest pass
// through unchanged.
func (ks *KeySchedule) Expand(key *[KeySize]byte) {
	copy(ks.rk[:KeySize], key[:])

	var t [4]byte
	for i := KeySize; i < roundKeyBytes; i += 4 {
		copy(t[:], ks.rk[i-4:i])
		switch i % keySchedulePeriod {
		case 0:
			t[0], t[1], t[2], t[3] = sbox[t[1]]^rcon[i/keySchedulePeriod], sbox[t[2]], sbox[t[3]], sbox[t[0]]
		case 16:
			t[0], t[1], t[2], t[3] = sbox[t[0]], sbox[t[1]], sbox[t[2]], sbox[t[3]]
		}
		for j := 0; j < 4; j++ {
			ks.rk[i+j] = ks.rk[i-keySchedulePeriod+j] ^ t[j]
		}
	}
}

// DecryptBlock inverts one 16-byte block in place.
func (ks *KeySchedule) DecryptBlock(state *[BlockSize]byte) {
	ks.addRoundKey(state, aesRounds)
	for round := aesRounds - 1; round >= 1; round-- {
		invShiftRows(state)
		invSubBytes(state)
		ks.addRoundKey(state, round)
		invMixColumns(state)
	}
	invShiftRows(state)
	invSubBytes(state)
	ks.addRoundKey(state, 0)
}

// DecryptBlockCBC recovers the plaintext of a single CBC ciphertext block:
// block decryption followed by an XOR with the IV. With no preceding
// ciphertext block that IV XOR is the whole of CBC.
func DecryptBlockCBC(dst, src *[BlockSize]byte, key *[KeySize]byte, iv *[IVSize]byte) {
	var ks KeySchedule
	ks.Expand(key)
	*dst = *src
	ks.DecryptBlock(dst)
	for i := range dst {
		dst[i] ^= iv[i]
	}
}

func (ks *KeySchedule) addRoundKey(s *[BlockSize]byte, round int) {
	off := round * BlockSize
	for i := range s {
		s[i] ^= ks.rk[off+i]
	}
}

// invShiftRows cyclically shifts rows 1-3 right by 1, 2 and 3 columns.
func invShiftRows(s *[BlockSize]byte) {
	s[1], s[5], s[9], s[13] = s[13], s[1], s[5], s[9]
	s[2], s[6], s[10], s[14] = s[10], s[14], s[2], s[6]
	s[3], s[7], s[11], s[15] = s[7], s[11], s[15], s[3]
}

func invSubBytes(s *[BlockSize]byte) {
	for i, b := range s {
		s[i] = invSbox[b]
	}
}

// invMixColumns combines each column with the fixed inverse coefficients
// {0e, 0b, 0d, 09} cycling down the rows.
func invMixColumns(s *[BlockSize]byte) {
	for c := 0; c < BlockSize; c += 4 {
		a0, a1, a2, a3 := s[c], s[c+1], s[c+2], s[c+3]
		s[c] = gmul(a0, 0x0e) ^ gmul(a1, 0x0b) ^ gmul(a2, 0x0d) ^ gmul(a3, 0x09)
		s[c+1] = gmul(a0, 0x09) ^ gmul(a1, 0x0e) ^ gmul(a2, 0x0b) ^ gmul(a3, 0x0d)
		s[c+2] = gmul(a0, 0x0d) ^ gmul(a1, 0x09) ^ gmul(a2, 0x0e) ^ gmul(a3, 0x0b)
		s[c+3] = gmul(a0, 0x0b) ^ gmul(a1, 0x0d) ^ gmul(a2, 0x09) ^ gmul(a3, 0x0e)
	}
}

// gmul multiplies in GF(2^8) by repeated doubling with conditional XOR of
// the AES reduction polynomial.
func gmul(a, b byte) byte {
	var p byte
	for b != 0 {
		if b&1 != 0 {
			p ^= a
		}
		a = xtime(a)
		b >>= 1
	}
	return p
}

// rotl8 rotates a byte left by k bits, for the S-box affine transform.
func rotl8(b byte, k int) byte {
	return b<<k | b>>(8-k)
}

// xtime doubles in GF(2^8), reducing by 0x1B on overflow.
func xtime(a byte) byte {
	if a&0x80 != 0 {
		return a<<1 ^ 0x1b
	}
	return a << 1
}
