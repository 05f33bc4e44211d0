// Package crypto implements the primitives of the password-testing pipeline.
//
// # Overview
//
// Legacy OpenSSL-era wallet backups encrypt their payload with AES-256-CBC
// under a key and IV derived from the password by EVP_BytesToKey with MD5 and
// no iteration count:
//
//	key1 = MD5(password || salt)
//	key2 = MD5(key1 || password || salt)
//	iv   = MD5(key2 || password || salt)
//	key  = key1 || key2
//
// # Why From Scratch
//
// Both MD5 and the AES-256 inverse cipher are implemented here rather than
// taken from the standard library. The engine runs one derivation and one
// block decryption per candidate across very wide batches, and the compute
// path must be allocation-free with fixed scratch buffers so a lane's cost is
// a bounded, synchronous sequence of arithmetic. hash.Hash and cipher.Block
// force per-candidate allocations and interface calls; they serve instead as
// the independent references in this package's tests.
//
// The derivation is bit-exact by contract. A wrong byte anywhere produces
// plausible-looking garbage plaintext and silently zero matches, so every
// primitive is pinned to its published test vectors.
package crypto
