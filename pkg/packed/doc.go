// Package packed implements the fixed-layout buffer protocol shared with
// external batch harnesses.
//
// # Overview
//
// Candidate passwords and the batch salt cross the dispatch boundary as a
// declared byte length plus a fixed array of 32-bit words. Byte i of the
// string lives in word i/4 at bit offset 8*(i%4), i.e. little-endian packing
// within each word. Results come back as a fixed 17-word record:
//
//	word 0      match flag (0 or 1)
//	words 1-4   decrypted 16-byte block
//	words 5-8   key1
//	words 9-12  key2
//	words 13-16 iv
//
// The layout is bit-exact. Any harness that packs inputs and unpacks records
// this way interoperates with the engine regardless of how lanes are
// scheduled, so none of the offsets here may change.
package packed
