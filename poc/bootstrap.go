package poc

import (
	"sync"

	"github.com/signum-network/poc-core/shabal"
)

// bootstrapFor lazily builds, once per process and per lane width, the
// canonical Shabal-256 context obtained by absorbing the IV block. Every
// per-hash computation starts from a fresh FastClone of this context rather
// than re-deriving the IV, matching the "fast" hashing convention the
// original plotter relies on for throughput.
var bootstrapFor = sync.OnceValue(func() map[int]*shabal.Context {
	m := make(map[int]*shabal.Context, 3)
	for _, w := range []int{int(Width4), int(Width8), int(Width16)} {
		ctx := shabal.NewContext(w)
		shabal.Init(ctx, 256)
		m[w] = ctx
	}
	return m
})

// bootstrap returns the canonical, read-only Shabal context for width. It
// must never be mutated directly; callers clone it with shabal.FastClone.
func bootstrap(width int) *shabal.Context {
	ctx, ok := bootstrapFor()[width]
	if !ok {
		panic("poc: unsupported lane width")
	}
	return ctx
}
