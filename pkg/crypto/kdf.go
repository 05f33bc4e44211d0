package crypto

import "fmt"

// DerivedKeys is the full key material for one candidate. It is returned
// even when the candidate misses so callers can re-verify offline.
type DerivedKeys struct {
	Key1 [DigestSize]byte
	Key2 [DigestSize]byte
	IV   [IVSize]byte
}

// CipherKey composes the 32-byte AES key, key1 || key2.
func (dk *DerivedKeys) CipherKey() [KeySize]byte {
	var key [KeySize]byte
	copy(key[:DigestSize], dk.Key1[:])
	copy(key[DigestSize:], dk.Key2[:])
	return key
}

// Derive runs the legacy three-round MD5 chain:
//
//	key1 = MD5(password || salt)
//	key2 = MD5(key1 || password || salt)
//	iv   = MD5(key2 || password || salt)
//
// Inputs must fit the fixed scratch (MaxPasswordLen, MaxSaltLen); the
// dispatcher bounds-checks once before a batch launches, so the lane path
// carries no error return, and Derive panics rather than silently deriving
// from a truncated input if that contract is ever broken. Deterministic:
// the same inputs yield the same material regardless of batch size or lane
// order.
func (dk *DerivedKeys) Derive(password, salt []byte) {
	if len(password) > MaxPasswordLen || len(salt) > MaxSaltLen {
		panic("crypto: Derive input exceeds scratch capacity")
	}

	// One fixed scratch holds digest || password || salt; the first 16
	// bytes are rewritten between rounds to chain the previous digest.
	var scratch [maxMessageLen]byte
	n := copy(scratch[DigestSize:], password)
	n += copy(scratch[DigestSize+n:], salt)

	dk.Key1 = MD5Sum(scratch[DigestSize : DigestSize+n])

	copy(scratch[:DigestSize], dk.Key1[:])
	dk.Key2 = MD5Sum(scratch[:DigestSize+n])

	copy(scratch[:DigestSize], dk.Key2[:])
	dk.IV = MD5Sum(scratch[:DigestSize+n])
}

// DeriveKeyIV is the bounds-checked one-shot wrapper used outside the lane
// path.
func DeriveKeyIV(password, salt []byte) (DerivedKeys, error) {
	var dk DerivedKeys
	if len(password) > MaxPasswordLen {
		return dk, fmt.Errorf("password length %d exceeds maximum %d", len(password), MaxPasswordLen)
	}
	if len(salt) > MaxSaltLen {
		return dk, fmt.Errorf("salt length %d exceeds maximum %d", len(salt), MaxSaltLen)
	}
	dk.Derive(password, salt)
	return dk, nil
}
