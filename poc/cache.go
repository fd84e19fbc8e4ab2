package poc

// batchCache is the Width-lane interleaved working buffer for one batch of
// plotted nonces, reinterpreted as words. Logical word w of hash index h,
// lane b, lives at slot (h*wordsPerHash+w)*width+b -- the same
// word-at-4-byte-granularity interleaving the kernel itself uses for its
// message blocks, so a hash's storage location can be handed directly to
// shabal.Compress/FinalizeInto without any repacking.
type batchCache struct {
	width int
	words []uint32
}

func newBatchCache(width int) *batchCache {
	return &batchCache{width: width, words: make([]uint32, wordsPerNonce*width)}
}

// hashWords returns the width-lane-interleaved word slice for hash index h
// (0..hashesPerNonce-1), a full 32-byte (wordsPerHash-word) row.
func (c *batchCache) hashWords(h int) []uint32 {
	off := h * wordsPerHash * c.width
	return c.words[off : off+wordsPerHash*c.width]
}

// windowWords returns the contiguous interleaved word slice spanning
// hashCount hashes starting at hash index h, used to read the saturated
// growing/sliding window directly out of the cache.
func (c *batchCache) windowWords(h, hashCount int) []uint32 {
	off := h * wordsPerHash * c.width
	n := hashCount * wordsPerHash * c.width
	return c.words[off : off+n]
}

// copyOut deinterleaves the whole cache into dst as a flat, lane-major byte
// buffer of caller-visible plotted nonces: nonce b's bytes occupy
// dst[b*NonceSize : (b+1)*NonceSize].
func (c *batchCache) copyOut(dst []byte) {
	for lane := 0; lane < c.width; lane++ {
		out := dst[lane*NonceSize : (lane+1)*NonceSize]
		for h := 0; h < hashesPerNonce; h++ {
			row := c.hashWords(h)
			for w := 0; w < wordsPerHash; w++ {
				be32(out[(h*wordsPerHash+w)*4:], row[w*c.width+lane])
			}
		}
	}
}

func be32(dst []byte, v uint32) {
	dst[0] = byte(v >> 24)
	dst[1] = byte(v >> 16)
	dst[2] = byte(v >> 8)
	dst[3] = byte(v)
}
