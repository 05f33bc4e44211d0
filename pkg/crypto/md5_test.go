package crypto

import (
	"crypto/md5"
	"encoding/hex"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RFC 1321 appendix vectors.
func TestMD5Sum_Vectors(t *testing.T) {
	vectors := []struct {
		in   string
		want string
	}{
		{"", "d41d8cd98f00b204e9800998ecf8427e"},
		{"a", "0cc175b9c0f1b6a831c399e269772661"},
		{"abc", "900150983cd24fb0d6963f7d28e17f72"},
		{"message digest", "f96b697d7cb7938d525a2f31aaf161d0"},
		{"abcdefghijklmnopqrstuvwxyz", "c3fcd3d76192e4007dfb496cca67e13b"},
		{
			"ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789",
			"d174ab98d277d9f5a5611c2c9f419d9f",
		},
		{
			"12345678901234567890123456789012345678901234567890123456789012345678901234567890",
			"57edf4a22be3c955ac49da2e2107b67a",
		},
	}

	for _, v := range vectors {
		got := MD5Sum([]byte(v.in))
		assert.Equal(t, v.want, hex.EncodeToString(got[:]), "input %q", v.in)
	}
}

// Padding boundaries: 55 bytes is the last length whose marker and length
// field fit in one block, 56+ spills into a second.
func TestMD5Sum_PaddingBoundaries(t *testing.T) {
	for _, n := range []int{54, 55, 56, 57, 63, 64, 65, 119, 120, 128} {
		msg := make([]byte, n)
		for i := range msg {
			msg[i] = byte(i)
		}
		want := md5.Sum(msg)
		require.Equal(t, want, MD5Sum(msg), "length %d", n)
	}
}

// Cross-check against the standard library over arbitrary content and every
// length up to a few blocks past the scratch maximum.
func TestMD5Sum_MatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for n := 0; n <= maxMessageLen+64; n++ {
		msg := make([]byte, n)
		rng.Read(msg)
		require.Equal(t, md5.Sum(msg), MD5Sum(msg), "length %d", n)
	}
}

func BenchmarkMD5Sum(b *testing.B) {
	msg := make([]byte, maxMessageLen)
	b.SetBytes(int64(len(msg)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		MD5Sum(msg)
	}
}
