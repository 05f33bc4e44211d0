package wordlist

import (
	"bufio"
	"io"

	"github.com/keygrinder/keygrinder/pkg/crypto"
)

// bufferSize is sized for wordlists with very long lines.
const bufferSize = 16 * 1024 * 1024

// Scanner yields candidate passwords one line at a time.
type Scanner struct {
	s       *bufio.Scanner
	skipped int
}

// New wraps r in a candidate scanner.
func New(r io.Reader) *Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, bufferSize), bufferSize)
	return &Scanner{s: s}
}

// Next returns the next candidate, or false at end of input. Candidates
// longer than the engine's password capacity are counted and skipped; they
// could never be dispatched (see Skipped). The returned slice is only valid
// until the next call.
func (s *Scanner) Next() ([]byte, bool) {
	for s.s.Scan() {
		line := trimEOL(s.s.Bytes())
		if len(line) > crypto.MaxPasswordLen {
			s.skipped++
			continue
		}
		return line, true
	}
	return nil, false
}

// Skipped reports how many oversized candidates were dropped.
func (s *Scanner) Skipped() int { return s.skipped }

// Err reports any underlying read error.
func (s *Scanner) Err() error { return s.s.Err() }

func trimEOL(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}
