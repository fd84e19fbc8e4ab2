// Package poc128 exposes the 128-bit (4-lane) vector-width entry points for
// nonce generation and deadline search, the historical SSE4.1 width for
// Signum/Burst plotters and miners.
package poc128

import "github.com/signum-network/poc-core/poc"

const Width = poc.Width4

// InitShabal returns a fresh Engine bound to the 4-lane width for numericID.
func InitShabal(numericID uint64) *poc.Engine {
	return poc.NewEngine(Width, numericID)
}

// NonceGen plots count nonces starting at startNonce into dst.
func NonceGen(numericID uint64, dst []byte, startNonce uint64, count int) {
	InitShabal(numericID).Generate(dst, startNonce, count)
}

// FindBestDeadline evaluates the given scoop across count nonces already
// plotted in nonces and returns the lowest deadline seen and the nonce
// number, index, that produced it.
func FindBestDeadline(gensig poc.Hash, scoop int, nonces []byte, startNonce uint64, count int) (deadline uint64, nonce uint64) {
	de := poc.NewDeadlineEngine(Width)
	lanes := Width.Lanes()
	var best poc.Best
	for off := 0; off < count; off += lanes {
		n := lanes
		if off+n > count {
			n = count - off
		}
		buf := make([][]byte, n)
		for i := 0; i < n; i++ {
			buf[i] = nonces[(off+i)*poc.NonceSize : (off+i+1)*poc.NonceSize]
		}
		best.Reduce(de.ComputeBatch(gensig, scoop, buf), off)
	}
	return best.Deadline, startNonce + uint64(best.Index)
}
