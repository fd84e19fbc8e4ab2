package poc

// mirrorToPoC2 applies the PoC1->PoC2 in-place transform to a freshly
// filled batch cache: for every scoop pair (i, mirror), where mirror =
// ScoopsPerNonce-1-i, the second hash of scoop i is swapped with the second
// hash of its mirror scoop. Applied once per lane, since every lane shares
// the same scoop indices.
func mirrorToPoC2(c *batchCache) {
	for scoop := 0; scoop < ScoopsPerNonce/2; scoop++ {
		mirror := ScoopsPerNonce - 1 - scoop
		a := c.hashWords(2*scoop + 1)
		b := c.hashWords(2*mirror + 1)
		for i := range a {
			a[i], b[i] = b[i], a[i]
		}
	}
}

// ConvertToPoC2 rewrites a plotted nonce already in the original PoC1
// scoop layout (dst, exactly NonceSize bytes) into PoC2 order in place, by
// swapping the second hash of scoop i with the second hash of scoop
// ScoopsPerNonce-1-i for every i below the midpoint. Nonces produced by
// Engine.Generate/GenerateBatch are already in PoC2 order; this helper
// exists for ingesting nonce data plotted by tooling that still emits the
// legacy PoC1 layout.
func ConvertToPoC2(nonce []byte) {
	if len(nonce) != NonceSize {
		panic("poc: ConvertToPoC2: wrong nonce size")
	}
	var tmp [HashSize]byte
	for scoop := 0; scoop < ScoopsPerNonce/2; scoop++ {
		mirror := ScoopsPerNonce - 1 - scoop
		a := nonce[scoop*ScoopSize+HashSize : scoop*ScoopSize+2*HashSize]
		b := nonce[mirror*ScoopSize+HashSize : mirror*ScoopSize+2*HashSize]
		copy(tmp[:], a)
		copy(a, b)
		copy(b, tmp[:])
	}
}
