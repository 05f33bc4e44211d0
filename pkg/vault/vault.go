package vault

import (
	"bufio"
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/keygrinder/keygrinder/pkg/crypto"
)

// SaltLen is the fixed salt length of the OpenSSL container.
const SaltLen = 8

// recordPrefix is base64("Salted__"), the start of every encoded record.
const recordPrefix = "U2FsdGVkX1"

var magic = []byte("Salted__")

// Record is one parsed backup: the 8-byte salt and the full ciphertext.
type Record struct {
	Salt       [SaltLen]byte
	Ciphertext []byte
}

// Parse decodes one base64 record line.
func Parse(line string) (*Record, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(line))
	if err != nil {
		return nil, fmt.Errorf("invalid base64 record: %w", err)
	}
	if len(raw) < len(magic)+SaltLen+crypto.BlockSize {
		return nil, fmt.Errorf("record too short: %d bytes", len(raw))
	}
	if !bytes.Equal(raw[:len(magic)], magic) {
		return nil, fmt.Errorf("missing Salted__ magic")
	}

	ct := raw[len(magic)+SaltLen:]
	if len(ct)%crypto.BlockSize != 0 {
		return nil, fmt.Errorf("ciphertext length %d is not a multiple of the block size", len(ct))
	}

	r := &Record{Ciphertext: ct}
	copy(r.Salt[:], raw[len(magic):])
	return r, nil
}

// Read scans r line by line and parses every record it finds. Lines that do
// not start with the base64 Salted__ prefix are skipped, so a file can mix
// records with comments or other noise.
func Read(r io.Reader) ([]*Record, error) {
	var records []*Record
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, recordPrefix) {
			continue
		}
		rec, err := Parse(line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// FirstBlock returns the single ciphertext block the engine decrypts.
func (r *Record) FirstBlock() [crypto.BlockSize]byte {
	var b [crypto.BlockSize]byte
	copy(b[:], r.Ciphertext)
	return b
}

// Verify is the exact check behind the engine's heuristic: derive the key
// material for password, decrypt the whole payload, validate the PKCS#7
// padding and require printable plaintext. It returns the plaintext on
// success. This path deliberately uses the standard library cipher rather
// than the engine's own inverse pipeline.
func (r *Record) Verify(password []byte) ([]byte, bool) {
	dk, err := crypto.DeriveKeyIV(password, r.Salt[:])
	if err != nil {
		return nil, false
	}
	key := dk.CipherKey()

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, false
	}
	plain := make([]byte, len(r.Ciphertext))
	cipher.NewCBCDecrypter(block, dk.IV[:]).CryptBlocks(plain, r.Ciphertext)

	plain, ok := stripPadding(plain)
	if !ok {
		return nil, false
	}
	return plain, printable(plain)
}

// stripPadding validates and removes PKCS#7 padding.
func stripPadding(b []byte) ([]byte, bool) {
	if len(b) == 0 {
		return nil, false
	}
	n := int(b[len(b)-1])
	if n == 0 || n > crypto.BlockSize || n > len(b) {
		return nil, false
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, false
		}
	}
	return b[:len(b)-n], true
}

// printable reports whether b is entirely printable ASCII or line breaks,
// which is what a decrypted key export looks like.
func printable(b []byte) bool {
	for _, c := range b {
		if c == '\n' || c == '\r' || c == '\t' {
			continue
		}
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}
