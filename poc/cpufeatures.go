package poc

import "golang.org/x/sys/cpu"

// RecommendedWidth inspects the running CPU's vector extensions and returns
// the widest lane count this package's kernel can plausibly exploit. It is
// only a hint: every width the type system exposes (Width4/8/16) remains
// usable regardless of what the hardware actually accelerates, since the
// portable Shabal path (shabal_generic.go) runs correctly, if more slowly,
// on any lane count.
func RecommendedWidth() Width {
	switch {
	case cpu.X86.HasAVX512F:
		return Width16
	case cpu.X86.HasAVX2:
		return Width8
	case cpu.X86.HasSSE41:
		return Width4
	default:
		return Width4
	}
}
