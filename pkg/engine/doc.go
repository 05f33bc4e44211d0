// Package engine drives candidate passwords through the derive-and-decrypt
// pipeline in independent parallel lanes.
//
// # Overview
//
// A Batch owns one read-only salt, one read-only 16-byte ciphertext block,
// and a set of packed candidate passwords. Run executes one lane per
// candidate: unpack the password, derive key1/key2/iv, decrypt the block
// with AES-256-CBC, classify the first plaintext byte, and write a fixed
// 17-word record at the lane's index. Lanes share nothing mutable, so the
// work is embarrassingly parallel and record arrays are byte-identical
// across reruns and worker counts.
//
// # The Match Flag Is a Filter
//
// A lane reports match=1 when the first decrypted byte looks like the start
// of a legacy private-key export line. That is a deliberately cheap oracle
// with an expected false-positive rate of len(acceptedFirst)/256; every
// match must go through exact re-verification (pkg/vault) before anyone
// celebrates. Misses are not errors, and neither are false positives.
package engine
