package vault

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keygrinder/keygrinder/pkg/crypto"
)

// encode builds a Salted__ record the way openssl enc does: PKCS#7 pad,
// CBC encrypt under the derived key/iv, prepend magic and salt, base64.
func encode(t *testing.T, password, salt, plain []byte) string {
	t.Helper()
	require.Len(t, salt, SaltLen)

	pad := crypto.BlockSize - len(plain)%crypto.BlockSize
	padded := append(append([]byte(nil), plain...), bytes.Repeat([]byte{byte(pad)}, pad)...)

	dk, err := crypto.DeriveKeyIV(password, salt)
	require.NoError(t, err)
	key := dk.CipherKey()

	block, err := aes.NewCipher(key[:])
	require.NoError(t, err)
	ct := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, dk.IV[:]).CryptBlocks(ct, padded)

	raw := append(append([]byte("Salted__"), salt...), ct...)
	return base64.StdEncoding.EncodeToString(raw)
}

var (
	testPassword = []byte("tr0ub4dor&3")
	testSalt     = []byte{0xa1, 0xb2, 0xc3, 0xd4, 0xe5, 0xf6, 0x07, 0x18}
	testPlain    = []byte("# KEEP YOUR PRIVATE KEYS PRIVATE\nL1aW4aubDFB7yfras2S1mN3bqg9nwySY8nkoLmJebSLD5BWv3ENZ\n")
)

func TestParse(t *testing.T) {
	line := encode(t, testPassword, testSalt, testPlain)
	rec, err := Parse(line)
	require.NoError(t, err)

	assert.Equal(t, testSalt, rec.Salt[:])
	assert.Equal(t, 0, len(rec.Ciphertext)%crypto.BlockSize)

	first := rec.FirstBlock()
	assert.Equal(t, rec.Ciphertext[:crypto.BlockSize], first[:])
}

func TestParse_Rejects(t *testing.T) {
	_, err := Parse("not base64 at all!")
	assert.Error(t, err)

	// Valid base64, wrong magic.
	_, err = Parse(base64.StdEncoding.EncodeToString(make([]byte, 48)))
	assert.Error(t, err)

	// Magic but truncated payload.
	_, err = Parse(base64.StdEncoding.EncodeToString([]byte("Salted__12345678short")))
	assert.Error(t, err)
}

func TestRead_SkipsNoise(t *testing.T) {
	line := encode(t, testPassword, testSalt, testPlain)
	input := strings.Join([]string{
		"# exported backup",
		"",
		line,
		"trailing garbage",
	}, "\n")

	records, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, testSalt, records[0].Salt[:])
}

func TestVerify(t *testing.T) {
	line := encode(t, testPassword, testSalt, testPlain)
	rec, err := Parse(line)
	require.NoError(t, err)

	plain, ok := rec.Verify(testPassword)
	require.True(t, ok)
	assert.Equal(t, testPlain, plain)

	_, ok = rec.Verify([]byte("wrong password"))
	assert.False(t, ok)
}

func TestStripPadding(t *testing.T) {
	got, ok := stripPadding([]byte{'a', 'b', 3, 3, 3})
	require.True(t, ok)
	assert.Equal(t, []byte("ab"), got)

	_, ok = stripPadding([]byte{'a', 'b', 0})
	assert.False(t, ok)

	_, ok = stripPadding([]byte{'a', 'b', 2, 3})
	assert.False(t, ok)

	_, ok = stripPadding([]byte{17})
	assert.False(t, ok)

	_, ok = stripPadding(nil)
	assert.False(t, ok)
}

func TestPrintable(t *testing.T) {
	assert.True(t, printable([]byte("L1aW4aub\n# comment\r\n\tdone")))
	assert.False(t, printable([]byte{0x00, 'a'}))
	assert.False(t, printable([]byte{'a', 0x9c}))
	assert.True(t, printable(nil))
}
