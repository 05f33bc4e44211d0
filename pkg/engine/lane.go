package engine

import (
	"github.com/keygrinder/keygrinder/pkg/crypto"
	"github.com/keygrinder/keygrinder/pkg/packed"
)

// acceptedFirst is the fixed acceptance set for the first decrypted byte:
// 'L' and 'K' (compressed WIF), '5' (uncompressed WIF), 'Q' (older export
// variants) and the '#' comment marker that key backup files start with.
// Do not tighten this set; it is a coarse pre-filter by contract and every
// hit is re-verified exactly downstream.
var acceptedFirst = [...]byte{'L', 'K', '5', 'Q', '#'}

var accepted [256]bool

func init() {
	for _, b := range acceptedFirst {
		accepted[b] = true
	}
}

// lane state lives on the worker stack; nothing here allocates.
type lane struct {
	pwBuf [packed.MaxPasswordLen]byte
	dk    crypto.DerivedKeys
}

// run executes the full pipeline for one candidate and writes its record.
// salt and ct are batch-shared and read-only; rec is the lane's private
// output slot.
func (l *lane) run(rec *packed.Record, pw *packed.Password, salt []byte, ct *[crypto.BlockSize]byte) {
	password := pw.Bytes(l.pwBuf[:])

	l.dk.Derive(password, salt)
	key := l.dk.CipherKey()

	var plain [crypto.BlockSize]byte
	crypto.DecryptBlockCBC(&plain, ct, &key, &l.dk.IV)

	rec.SetMatch(accepted[plain[0]])
	rec.SetBlock(&plain)
	rec.SetKey1(&l.dk.Key1)
	rec.SetKey2(&l.dk.Key2)
	rec.SetIV(&l.dk.IV)
}
