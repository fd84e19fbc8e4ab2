package poc

import (
	"fmt"

	"github.com/signum-network/poc-core/shabal"
)

// Engine plots batches of Width nonces at a time for one numeric account
// identity. It is not safe for concurrent use; callers running multiple
// goroutines should construct one Engine per goroutine (Engines hold no
// state that cannot be cheaply recreated).
type Engine struct {
	Width     int
	NumericID uint64

	cache *batchCache
	work  *shabal.Context
	out   []uint32 // scratch, wordsPerHash*width
}

// NewEngine constructs an Engine for the given lane width and account
// numeric identifier. width must be one of Width4, Width8, Width16.
func NewEngine(width Width, numericID uint64) *Engine {
	w := width.Lanes()
	return &Engine{
		Width:     w,
		NumericID: numericID,
		cache:     newBatchCache(w),
		work:      shabal.NewContext(w),
		out:       make([]uint32, wordsPerHash*w),
	}
}

// GenerateBatch plots exactly Width nonces, numbered startNonce..
// startNonce+Width-1, into dst (len must be Width*NonceSize bytes), already
// laid out in PoC2 order. It implements the full seven-step fill described
// for the nonce-generation engine: build templates, seed hash, growing
// early-phase window, capped saturated-phase window, whole-nonce final
// digest, XOR whitening, and the PoC1->PoC2 scoop-mirror swap.
func (e *Engine) GenerateBatch(dst []byte, startNonce uint64) {
	if len(dst) != e.Width*NonceSize {
		panic(fmt.Sprintf("poc: GenerateBatch: dst has %d bytes, want %d", len(dst), e.Width*NonceSize))
	}

	fs := newFrameSet(e.Width, e.NumericID, startNonce)
	c := e.cache

	// Step 3: seed hash, hash index hashesPerNonce-1.
	shabal.FastClone(e.work, bootstrap(e.Width))
	shabal.FinalizeInto(e.work, fs.t1, c.hashWords(hashesPerNonce-1), 1)
	fs.refreshT2Prefix(c.hashWords(hashesPerNonce - 1))

	// Step 4: early phase, growing window, hash indices hashesPerNonce-2
	// down to hashesPerNonce-capHashes. The window always runs from h+1 up
	// to the seed hash (hashesPerNonce-1) inclusive, so it grows by one
	// hash every step. Its closer alternates between the full T1 block
	// (seedTerm||zero, whenever the window's own byte length is already
	// block-aligned) and just T2's second half (seedTerm alone, whenever it
	// isn't -- the window in that case already ends in the seed hash, which
	// is exactly what T2's cached first half would otherwise supply).
	for h := hashesPerNonce - 2; h >= hashesPerNonce-capHashes; h-- {
		windowMsg := c.windowWords(h+1, hashesPerNonce-1-h)
		var tail []uint32
		if (h+1)*HashSize%shabal.BlockSize == 0 {
			tail = fs.t1
		} else {
			tail = fs.t2[wordsPerHash*e.Width:]
		}
		full := make([]uint32, len(windowMsg)+len(tail))
		copy(full, windowMsg)
		copy(full[len(windowMsg):], tail)

		shabal.FastClone(e.work, bootstrap(e.Width))
		shabal.FinalizeInto(e.work, full, c.hashWords(h), blockCount(len(full), e.Width))
	}

	// Step 5: saturated phase, fixed HASH_CAP-byte sliding window, hash
	// indices hashesPerNonce-capHashes-1 down to 0.
	for h := hashesPerNonce - capHashes - 1; h >= 0; h-- {
		windowMsg := c.windowWords(h+1, capHashes)
		full := make([]uint32, len(windowMsg)+len(fs.t3))
		copy(full, windowMsg)
		copy(full[len(windowMsg):], fs.t3)

		shabal.FastClone(e.work, bootstrap(e.Width))
		shabal.FinalizeInto(e.work, full, c.hashWords(h), blockCount(len(full), e.Width))
	}

	// Step 6: whole-nonce final digest, closed with the same T1 block used
	// to open the chain (seedTerm||zero).
	final := make([]uint32, len(c.words)+shabal.WordsPerBlock*e.Width)
	copy(final, c.words)
	copy(final[len(c.words):], fs.t1)
	shabal.FastClone(e.work, bootstrap(e.Width))
	shabal.FinalizeInto(e.work, final, e.out, blockCount(len(final), e.Width))

	// Step 7: XOR-whiten every hash with the final digest, per lane.
	for h := 0; h < hashesPerNonce; h++ {
		row := c.hashWords(h)
		for w := 0; w < wordsPerHash; w++ {
			base := w * e.Width
			for lane := 0; lane < e.Width; lane++ {
				row[base+lane] ^= e.out[base+lane]
			}
		}
	}

	mirrorToPoC2(c)
	c.copyOut(dst)
}

// blockCount returns the number of Shabal blocks a Width-lane-interleaved
// word slice of the given length spans.
func blockCount(words, width int) int {
	return words / (shabal.WordsPerBlock * width)
}

// Generate plots count nonces starting at startNonce into dst (len must be
// count*NonceSize bytes), driving GenerateBatch across as many full batches
// of e.Width as fit and a final short batch (its own scratch cache, spilled
// into dst) for any remainder.
func (e *Engine) Generate(dst []byte, startNonce uint64, count int) {
	if len(dst) != count*NonceSize {
		panic(fmt.Sprintf("poc: Generate: dst has %d bytes, want %d", len(dst), count*NonceSize))
	}

	full := count / e.Width
	for b := 0; b < full; b++ {
		off := b * e.Width * NonceSize
		e.GenerateBatch(dst[off:off+e.Width*NonceSize], startNonce+uint64(b*e.Width))
	}

	remainder := count - full*e.Width
	if remainder == 0 {
		return
	}

	tail := NewEngine(Width(e.Width), e.NumericID)
	scratch := make([]byte, e.Width*NonceSize)
	tail.GenerateBatch(scratch, startNonce+uint64(full*e.Width))
	copy(dst[full*e.Width*NonceSize:], scratch[:remainder*NonceSize])
}
