package crypto

import (
	"crypto/md5"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// refDerive is an independent reference for the chain, written over the
// standard library the way host-side tools derive the same material.
func refDerive(password, salt []byte) (key1, key2, iv [16]byte) {
	h := md5.New()
	h.Write(password)
	h.Write(salt)
	h.Sum(key1[:0])

	h.Reset()
	h.Write(key1[:])
	h.Write(password)
	h.Write(salt)
	h.Sum(key2[:0])

	h.Reset()
	h.Write(key2[:])
	h.Write(password)
	h.Write(salt)
	h.Sum(iv[:0])
	return
}

func TestDerive_MatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 100; i++ {
		password := make([]byte, rng.Intn(MaxPasswordLen+1))
		salt := make([]byte, rng.Intn(MaxSaltLen+1))
		rng.Read(password)
		rng.Read(salt)

		key1, key2, iv := refDerive(password, salt)

		var dk DerivedKeys
		dk.Derive(password, salt)
		require.Equal(t, key1, dk.Key1, "iteration %d", i)
		require.Equal(t, key2, dk.Key2, "iteration %d", i)
		require.Equal(t, iv, dk.IV, "iteration %d", i)

		key := dk.CipherKey()
		require.Equal(t, append(key1[:], key2[:]...), key[:])
	}
}

// Identical inputs yield identical material on every invocation.
func TestDerive_Deterministic(t *testing.T) {
	password := []byte("correct horse battery staple")
	salt := []byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03, 0x04}

	var first DerivedKeys
	first.Derive(password, salt)
	for i := 0; i < 50; i++ {
		var dk DerivedKeys
		dk.Derive(password, salt)
		require.Equal(t, first, dk)
	}
}

func TestDerive_EmptyInputs(t *testing.T) {
	key1, key2, iv := refDerive(nil, nil)
	var dk DerivedKeys
	dk.Derive(nil, nil)
	assert.Equal(t, key1, dk.Key1)
	assert.Equal(t, key2, dk.Key2)
	assert.Equal(t, iv, dk.IV)
}

// A violated bounds contract must fail loudly, never derive from a
// truncated input.
func TestDerive_OversizePanics(t *testing.T) {
	var dk DerivedKeys
	assert.Panics(t, func() { dk.Derive(make([]byte, MaxPasswordLen+1), nil) })
	assert.Panics(t, func() { dk.Derive(nil, make([]byte, MaxSaltLen+1)) })
	assert.NotPanics(t, func() { dk.Derive(make([]byte, MaxPasswordLen), make([]byte, MaxSaltLen)) })
}

func TestDeriveKeyIV_Bounds(t *testing.T) {
	_, err := DeriveKeyIV(make([]byte, MaxPasswordLen+1), nil)
	assert.Error(t, err)

	_, err = DeriveKeyIV(nil, make([]byte, MaxSaltLen+1))
	assert.Error(t, err)

	_, err = DeriveKeyIV(make([]byte, MaxPasswordLen), make([]byte, MaxSaltLen))
	assert.NoError(t, err)
}

func BenchmarkDerive(b *testing.B) {
	password := []byte("hunter2hunter2")
	salt := []byte("saltsalt")
	var dk DerivedKeys
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		dk.Derive(password, salt)
	}
}
