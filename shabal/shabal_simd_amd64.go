//go:build amd64 && !purego && goexperiment.simd

package shabal

import (
	"math/bits"
	"simd/archsimd"
	"unsafe"
)

// addInto, subInto and rotl17Into replace the elementwise B+=M, C-=M and
// B<<<17 passes in absorbBlock/permute with native-width vector operations
// when the experimental SIMD package is available. The vector width is
// chosen from the slice length (16 words, else 8); a slice whose length is
// a multiple of neither falls back to the scalar loop inline below.

func addInto(dst, src []uint32) {
	switch {
	case len(dst)%16 == 0:
		addInto16(dst, src)
	case len(dst)%8 == 0:
		addInto8(dst, src)
	default:
		for i := range dst {
			dst[i] += src[i]
		}
	}
}

func subInto(dst, src []uint32) {
	switch {
	case len(dst)%16 == 0:
		subInto16(dst, src)
	case len(dst)%8 == 0:
		subInto8(dst, src)
	default:
		for i := range dst {
			dst[i] -= src[i]
		}
	}
}

func rotl17Into(b []uint32) {
	switch {
	case len(b)%16 == 0:
		rotl17Into16(b)
	case len(b)%8 == 0:
		rotl17Into8(b)
	default:
		for i := range b {
			b[i] = bits.RotateLeft32(b[i], 17)
		}
	}
}

//go:nosplit
func addInto8(dst, src []uint32) {
	for i := 0; i < len(dst); i += 8 {
		// #nosec G103
		d := archsimd.LoadUint32x8((*[8]uint32)(unsafe.Pointer(&dst[i])))
		// #nosec G103
		s := archsimd.LoadUint32x8((*[8]uint32)(unsafe.Pointer(&src[i])))
		d = d.Add(s)
		d.Store((*[8]uint32)(unsafe.Pointer(&dst[i])))
	}
}

//go:nosplit
func subInto8(dst, src []uint32) {
	for i := 0; i < len(dst); i += 8 {
		// #nosec G103
		d := archsimd.LoadUint32x8((*[8]uint32)(unsafe.Pointer(&dst[i])))
		// #nosec G103
		s := archsimd.LoadUint32x8((*[8]uint32)(unsafe.Pointer(&src[i])))
		d = d.Sub(s)
		d.Store((*[8]uint32)(unsafe.Pointer(&dst[i])))
	}
}

//go:nosplit
func rotl17Into8(b []uint32) {
	for i := 0; i < len(b); i += 8 {
		// #nosec G103
		v := archsimd.LoadUint32x8((*[8]uint32)(unsafe.Pointer(&b[i])))
		v = v.RotateLeft(17)
		v.Store((*[8]uint32)(unsafe.Pointer(&b[i])))
	}
}

//go:nosplit
func addInto16(dst, src []uint32) {
	for i := 0; i < len(dst); i += 16 {
		// #nosec G103
		d := archsimd.LoadUint32x16((*[16]uint32)(unsafe.Pointer(&dst[i])))
		// #nosec G103
		s := archsimd.LoadUint32x16((*[16]uint32)(unsafe.Pointer(&src[i])))
		d = d.Add(s)
		d.Store((*[16]uint32)(unsafe.Pointer(&dst[i])))
	}
}

//go:nosplit
func subInto16(dst, src []uint32) {
	for i := 0; i < len(dst); i += 16 {
		// #nosec G103
		d := archsimd.LoadUint32x16((*[16]uint32)(unsafe.Pointer(&dst[i])))
		// #nosec G103
		s := archsimd.LoadUint32x16((*[16]uint32)(unsafe.Pointer(&src[i])))
		d = d.Sub(s)
		d.Store((*[16]uint32)(unsafe.Pointer(&dst[i])))
	}
}

//go:nosplit
func rotl17Into16(b []uint32) {
	for i := 0; i < len(b); i += 16 {
		// #nosec G103
		v := archsimd.LoadUint32x16((*[16]uint32)(unsafe.Pointer(&b[i])))
		v = v.RotateLeft(17)
		v.Store((*[16]uint32)(unsafe.Pointer(&b[i])))
	}
}

const hasVectorElementwise = true
