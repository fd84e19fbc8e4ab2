// Package poc implements the Signum/Burst Proof-of-Capacity nonce generator
// and deadline search, built on the M-lane Shabal-256 kernel in package
// shabal. The package is single-threaded and synchronous end to end: every
// exported function runs to completion on the calling goroutine and touches
// only caller-provided buffers plus a thread-local Shabal context clone.
package poc

const (
	// HashSize is the size, in bytes, of one Shabal-256 digest.
	HashSize = 32
	// NonceSize is the size, in bytes, of one plotted nonce.
	NonceSize = 262144
	// HashCap is the byte size of the sliding window used once the nonce's
	// hash chain saturates the early growing-window phase.
	HashCap = 4096
	// ScoopSize is the byte size of one scoop (two adjacent hashes).
	ScoopSize = 64
	// ScoopsPerNonce is the number of scoops in one nonce.
	ScoopsPerNonce = 4096

	hashesPerNonce = NonceSize / HashSize   // 8192
	capHashes      = HashCap / HashSize     // 128
	wordsPerHash   = HashSize / 4           // 8
	wordsPerNonce  = NonceSize / 4          // 65536
)

// Width identifies a supported SIMD lane count: Width4, Width8 and Width16,
// for 128/256/512-bit vector widths.
type Width int

const (
	Width4  Width = 4
	Width8  Width = 8
	Width16 Width = 16
)

// Lanes returns the number of parallel lanes for w.
func (w Width) Lanes() int { return int(w) }

// BatchCacheSize returns the number of bytes a single batch's interleaved
// cache slab must have for this width.
func (w Width) BatchCacheSize() int { return NonceSize * int(w) }
