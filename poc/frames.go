package poc

import (
	"encoding/binary"

	"github.com/signum-network/poc-core/shabal"
)

// frameSet holds the three fixed 64-byte (16-word), Width-lane-interleaved
// templates used while filling a nonce's hash chain. The account/nonce
// identity ("seed") is itself only 16 bytes (8-byte numeric ID + 8-byte
// nonce number); Shabal's single termination bit is baked directly into the
// 17th byte of that identity, exactly as the reference's own seed buffer
// comment describes it ("64bit numeric account ID, 64bit nonce, 1bit
// termination, 127 bits zero") -- there is no termination byte appended
// anywhere else:
//
//	T1 = seedTerm || zero    -- seedTerm is id||nonce||0x80||zero, 32 bytes.
//	                            Used to produce the seed hash, as the
//	                            growing-window closer when the window's byte
//	                            length is block-aligned,
//	                            and as the closer for the whole-nonce final
//	                            digest.
//	T2 = seedHash || seedTerm -- same role as T1's first half, used on the
//	                            odd alignment; the first half is refreshed
//	                            once the seed hash (hash index
//	                            hashesPerNonce-1) is known. Only its second
//	                            half is ever used standalone as a 32-byte
//	                            closer (the growing window already supplies
//	                            the seed hash itself in that case).
//	T3 = term || zero        -- appended after the saturated-phase window
type frameSet struct {
	width int
	t1    []uint32 // WordsPerBlock * width
	t2    []uint32
	t3    []uint32
}

// newFrameSet builds the per-lane seed blocks for a batch of width nonces
// starting at startNonce (lane b plots numeric nonce startNonce+b).
func newFrameSet(width int, numericID uint64, startNonce uint64) *frameSet {
	fs := &frameSet{
		width: width,
		t1:    make([]uint32, shabal.WordsPerBlock*width),
		t2:    make([]uint32, shabal.WordsPerBlock*width),
		t3:    make([]uint32, shabal.WordsPerBlock*width),
	}

	var idBuf, nonceBuf [8]byte
	binary.BigEndian.PutUint64(idBuf[:], numericID)

	for lane := 0; lane < width; lane++ {
		binary.BigEndian.PutUint64(nonceBuf[:], startNonce+uint64(lane))

		var seedTerm [HashSize]byte
		copy(seedTerm[0:8], idBuf[:])
		copy(seedTerm[8:16], nonceBuf[:])
		seedTerm[16] = 0x80

		for w := 0; w < wordsPerHash; w++ {
			word := binary.BigEndian.Uint32(seedTerm[w*4 : w*4+4])
			fs.t1[w*width+lane] = word          // seedTerm half of T1
			fs.t2[8*width+w*width+lane] = word // seedTerm half of T2 (second block half)
		}
		// t1's second half and t2's first half start zeroed; t3's halves
		// start zeroed except the single termination bit below.
	}

	// Termination marker: 0x80 as the first byte of T3's first half, in
	// every lane.
	termWord := binary.BigEndian.Uint32([]byte{0x80, 0, 0, 0})
	for lane := 0; lane < width; lane++ {
		fs.t3[0*width+lane] = termWord
	}

	return fs
}

// refreshT2Prefix copies the freshly computed seed hash (hash index
// hashesPerNonce-1) into T2's first half, per lane.
func (fs *frameSet) refreshT2Prefix(seedHash []uint32) {
	for w := 0; w < wordsPerHash; w++ {
		copy(fs.t2[w*fs.width:w*fs.width+fs.width], seedHash[w*fs.width:w*fs.width+fs.width])
	}
}
