package engine

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/keygrinder/keygrinder/pkg/crypto"
	"github.com/keygrinder/keygrinder/pkg/packed"
)

// Batch is one dispatch unit: a shared salt, a shared ciphertext block, and
// any number of packed candidates. Construction is where all length
// validation happens; by the time Run launches, no lane can fail.
type Batch struct {
	salt       packed.Salt
	ciphertext [crypto.BlockSize]byte
	passwords  []packed.Password
}

// NewBatch validates and packs the batch-shared inputs. Oversized salt or a
// ciphertext that is not exactly one block is a configuration defect, never
// a per-lane runtime fault.
func NewBatch(salt, ciphertext []byte) (*Batch, error) {
	if len(ciphertext) != crypto.BlockSize {
		return nil, fmt.Errorf("ciphertext must be exactly %d bytes, got %d", crypto.BlockSize, len(ciphertext))
	}

	s, err := packed.PackSalt(salt)
	if err != nil {
		return nil, err
	}

	b := &Batch{salt: s}
	copy(b.ciphertext[:], ciphertext)
	return b, nil
}

// Add packs one candidate password into the batch. The lane index of the
// candidate is its insertion order.
func (b *Batch) Add(password []byte) error {
	p, err := packed.PackPassword(password)
	if err != nil {
		return err
	}
	b.passwords = append(b.passwords, p)
	return nil
}

// Len reports the number of lanes the batch will dispatch.
func (b *Batch) Len() int { return len(b.passwords) }

// Password unpacks the candidate at lane index i, typically to hand a
// matched lane's password to exact verification.
func (b *Batch) Password(i int) []byte {
	buf := make([]byte, crypto.MaxPasswordLen)
	return b.passwords[i].Bytes(buf)
}

// Reset drops the candidates but keeps the shared salt and ciphertext, so a
// caller can stream wordlist chunks through one Batch without repacking the
// broadcast inputs.
func (b *Batch) Reset() { b.passwords = b.passwords[:0] }

// Run dispatches every lane across the given number of workers and returns
// one record per lane, indexed by lane id. workers < 1 means one worker per
// CPU. The grid runs to completion; the unit of cancellation is the whole
// batch (launch it or don't), not an in-flight lane.
func (b *Batch) Run(workers int) []packed.Record {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(b.passwords) {
		workers = len(b.passwords)
	}

	records := make([]packed.Record, len(b.passwords))
	if len(b.passwords) == 0 {
		return records
	}

	// Broadcast read: decode the shared salt once, before any lane starts.
	var saltBuf [crypto.MaxSaltLen]byte
	salt := b.salt.Bytes(saltBuf[:])

	start := time.Now()
	var next atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var l lane
			for {
				i := int(next.Add(1)) - 1
				if i >= len(b.passwords) {
					return
				}
				l.run(&records[i], &b.passwords[i], salt, &b.ciphertext)
			}
		}()
	}
	wg.Wait()

	log.WithFields(log.Fields{
		"lanes":   len(b.passwords),
		"workers": workers,
		"elapsed": time.Since(start),
	}).Debug("batch complete")

	return records
}

// Matches returns the lane ids whose records carry match=1.
func Matches(records []packed.Record) []int {
	var ids []int
	for i := range records {
		if records[i].Match() {
			ids = append(ids, i)
		}
	}
	return ids
}
