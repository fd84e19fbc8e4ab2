package shabal

import (
	"testing"
)

// oneShot hashes one message of blocks*BlockSize bytes per lane at the given
// lane width, taking each lane's message words from fill, and returns the
// lane-interleaved 32-byte digests of every lane.
func oneShot(t *testing.T, width, blocks int, fill func(lane, word int) uint32) []uint32 {
	t.Helper()

	ctx := NewContext(width)
	Init(ctx, 256)

	in := make([]uint32, WordsPerBlock*blocks*width)
	for k := 0; k < blocks; k++ {
		for word := 0; word < WordsPerBlock; word++ {
			for lane := 0; lane < width; lane++ {
				in[(k*WordsPerBlock+word)*width+lane] = fill(lane, k*WordsPerBlock+word)
			}
		}
	}

	out := make([]uint32, OutWords256*width)
	FinalizeInto(ctx, in, out, blocks)
	return out
}

func laneDigest(out []uint32, width, lane int) [OutWords256]uint32 {
	var d [OutWords256]uint32
	for w := 0; w < OutWords256; w++ {
		d[w] = out[w*width+lane]
	}
	return d
}

func TestDeterminism(t *testing.T) {
	fill := func(lane, word int) uint32 { return uint32(word*7 + 1) }

	out1 := oneShot(t, 8, 2, fill)
	out2 := oneShot(t, 8, 2, fill)

	for i := range out1 {
		if out1[i] != out2[i] {
			t.Fatalf("non-deterministic output at word %d: %#x vs %#x", i, out1[i], out2[i])
		}
	}
}

// TestLaneIndependence checks the property required by spec: de-interleaving
// any single lane out of an M-lane run must equal a scalar (Width=1) run fed
// the same per-lane message.
func TestLaneIndependence(t *testing.T) {
	widths := []int{1, 4, 8, 16}

	msg := func(word int) uint32 { return uint32(word*2654435761 + 12345) }

	scalar := oneShot(t, 1, 3, func(lane, word int) uint32 { return msg(word) })
	want := laneDigest(scalar, 1, 0)

	for _, width := range widths {
		out := oneShot(t, width, 3, func(lane, word int) uint32 { return msg(word) })
		for lane := 0; lane < width; lane++ {
			got := laneDigest(out, width, lane)
			if got != want {
				t.Fatalf("width=%d lane=%d: got %v want %v", width, lane, got, want)
			}
		}
	}
}

// TestLanesAreIndependentAcrossDistinctMessages verifies lanes really are
// isolated streams: changing lane b's message must not perturb lane b' != b.
func TestLanesAreIndependentAcrossDistinctMessages(t *testing.T) {
	const width = 4
	base := func(lane, word int) uint32 { return uint32(word + lane*1000) }
	perturbed := func(lane, word int) uint32 {
		if lane == 2 {
			return uint32(word+lane*1000) ^ 0xdeadbeef
		}
		return base(lane, word)
	}

	outBase := oneShot(t, width, 2, base)
	outPerturbed := oneShot(t, width, 2, perturbed)

	for lane := 0; lane < width; lane++ {
		gotBase := laneDigest(outBase, width, lane)
		gotPerturbed := laneDigest(outPerturbed, width, lane)
		if lane == 2 {
			if gotBase == gotPerturbed {
				t.Fatalf("perturbing lane 2's message did not change lane 2's digest")
			}
			continue
		}
		if gotBase != gotPerturbed {
			t.Fatalf("perturbing lane 2's message changed lane %d's digest", lane)
		}
	}
}

func TestFastCloneReproducesState(t *testing.T) {
	src := NewContext(8)
	Init(src, 256)

	dst := NewContext(8)
	FastClone(dst, src)

	if dst.Whigh != src.Whigh || dst.Wlow != src.Wlow {
		t.Fatalf("counters not cloned")
	}
	for i := range src.A {
		if dst.A[i] != src.A[i] {
			t.Fatalf("A[%d] not cloned", i)
		}
	}

	// Mutating the clone must not affect the source.
	srcA := append([]uint32(nil), src.A...)
	in := make([]uint32, WordsPerBlock*8)
	Compress(dst, in, 1)
	if dst.Wlow == src.Wlow {
		t.Fatalf("clone shares backing state with source")
	}
	for i := range srcA {
		if src.A[i] != srcA[i] {
			t.Fatalf("compressing the clone changed source A[%d]", i)
		}
	}
}
