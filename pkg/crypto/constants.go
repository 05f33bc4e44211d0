package crypto

// Fixed sizes of the pipeline. Scratch buffers are sized from these at
// compile time; nothing in the compute path allocates.
const (
	// DigestSize is the MD5 output length.
	DigestSize = 16

	// KeySize is the AES-256 cipher key length (key1 || key2).
	KeySize = 32

	// IVSize is the CBC initialization vector length.
	IVSize = 16

	// BlockSize is the AES block length.
	BlockSize = 16

	// MaxPasswordLen and MaxSaltLen bound candidate and salt inputs.
	// Their sum is the lane scratch capacity; the dispatcher must reject
	// longer inputs before a batch launches.
	MaxPasswordLen = 256
	MaxSaltLen     = 16

	// maxMessageLen is the largest input a single derivation hash sees:
	// a 16-byte chained digest plus password plus salt.
	maxMessageLen = DigestSize + MaxPasswordLen + MaxSaltLen
)
