// Package shabal implements the Shabal-256 compression function recast into
// M independent, lane-interleaved streams so that a single pass over the
// permutation core advances all M nonces at once.
//
// The state layout follows the reference construction: registers A (12
// words), B and C (16 words each), plus the 64-bit block counter split into
// Whigh/Wlow. For a context of lane width W, every register array is stored
// W-way interleaved at 32-bit granularity: logical word i of lane b lives at
// slot i*W+b. Message and output buffers use the same convention.
package shabal

import (
	"math/bits"
)

const (
	// WordsPerBlock is the number of 32-bit words in one Shabal message block.
	WordsPerBlock = 16
	// BlockSize is the byte size of one Shabal message block.
	BlockSize = WordsPerBlock * 4
	// OutWords256 is the number of 32-bit words emitted for a 256-bit digest.
	OutWords256 = 8
	// OutSize256 is the digest size, in bytes, for Shabal-256.
	OutSize256 = OutWords256 * 4

	aWords = 12
	bWords = 16
	cWords = 16
)

// Context holds the Shabal working state for Width independent lanes. Zero
// value is not usable; allocate with NewContext, then Init it or populate it
// via FastClone.
type Context struct {
	Width   int
	OutSize int
	Whigh   uint32
	Wlow    uint32
	A       []uint32 // aWords * Width
	B       []uint32 // bWords * Width
	C       []uint32 // cWords * Width
}

// Accelerated reports whether this build's elementwise absorb passes are
// backed by native vector instructions instead of the portable scalar loop.
func Accelerated() bool {
	return hasVectorElementwise
}

// NewContext allocates an uninitialized context for the given lane width.
func NewContext(width int) *Context {
	return &Context{
		Width: width,
		A:     make([]uint32, aWords*width),
		B:     make([]uint32, bWords*width),
		C:     make([]uint32, cWords*width),
	}
}

// Init resets ctx to the canonical Shabal-256 starting state (identical for
// every lane) and absorbs the 16-word IV block that depends on outSizeBits.
// After Init, Whigh and Wlow are both 0xFFFFFFFF, matching reference Shabal.
func Init(ctx *Context, outSizeBits int) {
	ctx.OutSize = outSizeBits
	for i := range ctx.A {
		ctx.A[i] = 0
	}
	for i := range ctx.B {
		ctx.B[i] = 0
	}
	for i := range ctx.C {
		ctx.C[i] = 0
	}
	ctx.Whigh, ctx.Wlow = 0, 0

	iv := make([]uint32, WordsPerBlock*ctx.Width)
	for lane := 0; lane < ctx.Width; lane++ {
		iv[lane] = uint32(outSizeBits)
	}
	absorbBlock(ctx, iv, true)

	ctx.Whigh = 0xFFFFFFFF
	ctx.Wlow = 0xFFFFFFFF
}

// FastClone copies src's entire state into dst. dst must already be sized
// for the same Width as src (typically produced by NewContext(src.Width)).
func FastClone(dst, src *Context) {
	dst.Width = src.Width
	dst.OutSize = src.OutSize
	dst.Whigh = src.Whigh
	dst.Wlow = src.Wlow
	copy(dst.A, src.A)
	copy(dst.B, src.B)
	copy(dst.C, src.C)
}

// Compress absorbs blocks 64-byte blocks (per lane) from the Width-lane
// interleaved in buffer, advancing (Whigh, Wlow) once per block.
func Compress(ctx *Context, in []uint32, blocks int) {
	stride := WordsPerBlock * ctx.Width
	for k := 0; k < blocks; k++ {
		absorbBlock(ctx, in[k*stride:(k+1)*stride], true)
	}
}

// FinalizeInto compresses blocks 64-byte blocks from in, runs the 3 extra
// permutation rounds (with the block counter decremented instead of
// incremented) required to whiten the final state, and writes the 32-byte
// digest for every lane, still lane-interleaved, into out (len == OutWords256*Width).
func FinalizeInto(ctx *Context, in []uint32, out []uint32, blocks int) {
	Compress(ctx, in, blocks)

	zero := make([]uint32, WordsPerBlock*ctx.Width)
	for i := 0; i < 3; i++ {
		absorbBlock(ctx, zero, false)
	}

	for w := 0; w < OutWords256; w++ {
		srcRow := (cWords - OutWords256 + w) * ctx.Width
		dstRow := w * ctx.Width
		copy(out[dstRow:dstRow+ctx.Width], ctx.C[srcRow:srcRow+ctx.Width])
	}
}

// absorbBlock runs one full compression step (B+=M, permute, C-=M, swap
// B/C) over a single Width-lane-interleaved 16-word block, then advances the
// block counter forward (increment) or backward (decrement, used by the
// finalization whitening rounds).
func absorbBlock(ctx *Context, m []uint32, increment bool) {
	w := ctx.Width

	addInto(ctx.B, m)

	for lane := 0; lane < w; lane++ {
		ctx.A[0*w+lane] ^= ctx.Wlow
		ctx.A[1*w+lane] ^= ctx.Whigh
	}

	permute(ctx, m)

	subInto(ctx.C, m)

	ctx.B, ctx.C = ctx.C, ctx.B

	if increment {
		ctx.Wlow++
		if ctx.Wlow == 0 {
			ctx.Whigh++
		}
	} else {
		if ctx.Wlow == 0 {
			ctx.Whigh--
		}
		ctx.Wlow--
	}
}

// permute runs the three 16-step Shabal rounds that diffuse the message
// block m into A, reading the current B and C registers at each step, then
// folds C back into A once the 48 steps are done.
//
// The A index runs continuously across all 48 steps (mod aWords), not reset
// per round: round 2 picks up at A4, round 3 at A8, matching the reference
// PERM_STEP_1/PERM_STEP_2 schedules. The C index counts down from C8 within
// each round (C8, C7, C6, ..., C0, C15, C14, ...), the mirror image of the B
// schedule's upward count.
func permute(ctx *Context, m []uint32) {
	w := ctx.Width
	A, B, C := ctx.A, ctx.B, ctx.C

	rotl17Into(B)

	k := 0
	for round := 0; round < 3; round++ {
		for j := 0; j < 16; j++ {
			ia0 := (k % aWords) * w
			ia1 := ((k + aWords - 1) % aWords) * w
			ib0 := (j % bWords) * w
			ib1 := ((j + 13) % bWords) * w
			ib2 := ((j + 9) % bWords) * w
			ib3 := ((j + 6) % bWords) * w
			ic := ((cWords + 8 - j) % cWords) * w
			im := (j % WordsPerBlock) * w

			for lane := 0; lane < w; lane++ {
				a0 := A[ia0+lane]
				a1 := A[ia1+lane]
				b0 := B[ib0+lane]
				b1 := B[ib1+lane]
				b2 := B[ib2+lane]
				b3 := B[ib3+lane]
				c := C[ic+lane]
				mv := m[im+lane]

				na0 := (a0 ^ (bits.RotateLeft32(a1, 15) * 5)) ^ c
				na0 = na0 * 3
				na0 = na0 ^ b1 ^ (b2 &^ b3) ^ mv
				nb0 := ^(bits.RotateLeft32(b0, 1) ^ na0)

				A[ia0+lane] = na0
				B[ib0+lane] = nb0
			}
			k++
		}
	}

	for i := 0; i < aWords; i++ {
		arow := i * w
		crow := ((i + 11) % cWords) * w
		for lane := 0; lane < w; lane++ {
			A[arow+lane] += C[crow+lane]
		}
	}
}
