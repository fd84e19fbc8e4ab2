package poc

import (
	"fmt"

	"github.com/signum-network/poc-core/shabal"
)

// DeadlineEngine evaluates the mining deadline for one scoop across Width
// nonces at a time. Not safe for concurrent use.
type DeadlineEngine struct {
	Width int
	work  *shabal.Context
	out   []uint32 // wordsPerHash * width
}

// NewDeadlineEngine constructs a DeadlineEngine for the given lane width.
func NewDeadlineEngine(width Width) *DeadlineEngine {
	w := width.Lanes()
	return &DeadlineEngine{
		Width: w,
		work:  shabal.NewContext(w),
		out:   make([]uint32, wordsPerHash*w),
	}
}

// scoopHalves returns u1 (first hash of scoop) and u2 (second hash of the
// scoop's PoC2 mirror, which is where the true second hash of scoop lives
// once the nonce has been through the PoC1->PoC2 transform).
func scoopHalves(nonce []byte, scoop int) (u1, u2 []byte) {
	mirror := ScoopsPerNonce - 1 - scoop
	u1 = nonce[scoop*ScoopSize : scoop*ScoopSize+HashSize]
	u2 = nonce[mirror*ScoopSize+HashSize : mirror*ScoopSize+2*HashSize]
	return
}

// ComputeBatch evaluates the deadline seed for one scoop across up to
// e.Width nonces (nonces may hold fewer than e.Width entries; the batch is
// zero-padded and the padding lanes are hashed but not returned: the result
// holds one deadline per entry of nonces). Each nonce must be NonceSize
// bytes in PoC2 order.
func (e *DeadlineEngine) ComputeBatch(gensig Hash, scoop int, nonces [][]byte) []uint64 {
	if len(nonces) > e.Width {
		panic(fmt.Sprintf("poc: ComputeBatch: %d nonces exceeds width %d", len(nonces), e.Width))
	}

	msg := make([]uint32, shabal.WordsPerBlock*2*e.Width)
	for lane, nonce := range nonces {
		if len(nonce) != NonceSize {
			panic("poc: ComputeBatch: wrong nonce size")
		}
		u1, u2 := scoopHalves(nonce, scoop)
		writeLaneBE(msg, 0, e.Width, lane, gensig[:])
		writeLaneBE(msg, wordsPerHash, e.Width, lane, u1)
		writeLaneBE(msg, 2*wordsPerHash, e.Width, lane, u2)
	}
	// Termination block: 0x80 followed by zeros, per lane.
	termOff := 3 * wordsPerHash * e.Width
	for lane := range nonces {
		msg[termOff+lane] = 0x80000000
	}

	shabal.FastClone(e.work, bootstrap(e.Width))
	shabal.FinalizeInto(e.work, msg, e.out, 2)

	deadlines := make([]uint64, len(nonces))
	for lane := range nonces {
		var digest Hash
		for w := 0; w < wordsPerHash; w++ {
			be32(digest[w*4:], e.out[w*e.Width+lane])
		}
		deadlines[lane] = digest.DeadlineUint64()
	}
	return deadlines
}

// writeLaneBE splits a big-endian byte block into words and writes them
// into the wordOffset..wordOffset+len(block)/4 rows of msg's interleaved
// layout, at the given lane.
func writeLaneBE(msg []uint32, wordOffset, width, lane int, block []byte) {
	for w := 0; w*4 < len(block); w++ {
		var v uint32
		v = uint32(block[w*4])<<24 | uint32(block[w*4+1])<<16 | uint32(block[w*4+2])<<8 | uint32(block[w*4+3])
		msg[(wordOffset+w)*width+lane] = v
	}
}

// Best tracks the lowest deadline seen so far and the index of the nonce
// that produced it. The zero value has no candidate yet: unlike a naive
// "0 beats everything" reduction, Best only accepts its first candidate
// unconditionally and compares every later one strictly, so a genuine
// deadline of 0 is never silently displaced by an uninitialized zero.
type Best struct {
	hasBest  bool
	Deadline uint64
	Index    int
}

// Offer considers deadline (produced by nonce index idx) against the
// current best, replacing it only if b has not yet recorded a candidate
// or deadline is strictly lower. Lane order matters only through call
// order: ties keep whichever candidate was offered first.
func (b *Best) Offer(deadline uint64, idx int) {
	if !b.hasBest || deadline < b.Deadline {
		b.hasBest = true
		b.Deadline = deadline
		b.Index = idx
	}
}

// Reduce folds a batch of per-lane deadlines (as produced by ComputeBatch,
// indices into startIdx-based nonce numbering) into b, scanning lane 0
// first so that equal deadlines resolve to the lowest nonce index.
func (b *Best) Reduce(deadlines []uint64, startIdx int) {
	for lane, d := range deadlines {
		b.Offer(d, startIdx+lane)
	}
}

// HasCandidate reports whether Offer has ever been called successfully.
func (b *Best) HasCandidate() bool {
	return b.hasBest
}

// Merge folds other into b as if every candidate other ever saw had been
// offered to b directly, keeping b's own candidate on ties.
func (b *Best) Merge(other Best) {
	if other.hasBest {
		b.Offer(other.Deadline, other.Index)
	}
}
