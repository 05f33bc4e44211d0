// Package vault handles OpenSSL-style encrypted key backups on the host
// side of the engine.
//
// # Format
//
// A backup record is base64 of:
//
//	"Salted__" || salt(8) || ciphertext(n*16)
//
// which is the classic `openssl enc` container. The engine only ever sees
// the 8-byte salt and the first ciphertext block; this package extracts
// them, and exactly re-verifies candidates the engine flags.
//
// # Exact Verification
//
// The engine's match flag is a heuristic on one decrypted byte and lies
// about 5 times in 256 for wrong keys. Verify decrypts the whole payload
// with the standard library cipher, checks the PKCS#7 padding, and requires
// printable content. Only a candidate that survives that is a real hit.
package vault
