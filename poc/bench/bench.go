// Package bench drives Engine and DeadlineEngine across a worker pool,
// partitioning nonce ranges the way the rest of the ambient stack splits
// work: utils.SplitWork's per-routine init plus atomic work-index cursor,
// logging progress through the same leveled logger as the rest of utils.
package bench

import (
	"encoding/binary"
	"runtime"
	"sync"
	"time"

	"github.com/dolthub/swiss"
	"github.com/floatdrop/lru"
	"lukechampine.com/uint128"

	"github.com/signum-network/poc-core/poc"
	"github.com/signum-network/poc-core/utils"
)

// PlotRange partitions [startNonce, startNonce+count) into per-worker
// batches of poc.Width lanes and plots them concurrently into dst, which
// must be count*poc.NonceSize bytes. routines <= 0 uses runtime.NumCPU().
// When guard is non-nil, every nonce number of the range is recorded in it
// before plotting starts, and PlotRange panics on the calling goroutine if
// one was already recorded, so a caller bug that hands overlapping ranges to
// PlotRange calls sharing the same guard is caught before anything is plotted.
func PlotRange(routines int, width poc.Width, numericID uint64, dst []byte, startNonce uint64, count int, guard *SeenOffsets) error {
	if routines <= 0 {
		routines = max(runtime.NumCPU(), 1)
	}
	lanes := width.Lanes()
	batches := (count + lanes - 1) / lanes
	if batches < routines {
		routines = max(batches, 1)
	}

	if guard != nil {
		for i := 0; i < count; i++ {
			guard.markOrPanic(startNonce + uint64(i))
		}
	}

	engines := make([]*poc.Engine, routines)

	err := utils.SplitWork(routines, uint64(batches),
		func(workIndex uint64, routineIndex int) error {
			engine := engines[routineIndex]
			b := int(workIndex)
			batchStart := startNonce + uint64(b*lanes)
			remaining := count - b*lanes
			if remaining >= lanes {
				off := b * lanes * poc.NonceSize
				engine.GenerateBatch(dst[off:off+lanes*poc.NonceSize], batchStart)
				return nil
			}
			scratch := make([]byte, lanes*poc.NonceSize)
			engine.GenerateBatch(scratch, batchStart)
			off := b * lanes * poc.NonceSize
			copy(dst[off:off+remaining*poc.NonceSize], scratch[:remaining*poc.NonceSize])
			return nil
		},
		func(_, routineIndex int) error {
			engines[routineIndex] = poc.NewEngine(width, numericID)
			return nil
		},
	)
	if err != nil {
		utils.Errorf("bench", "plot range starting at %d failed: %s", startNonce, err)
		return err
	}
	utils.Debugf("bench", "plotted %s nonces starting at %d across %d routines", utils.NonceUnits(uint64(count), 2), startNonce, routines)
	return nil
}

// SearchResult is the winning deadline found across an entire scan, plus
// the accumulated throughput of the run.
type SearchResult struct {
	Deadline        uint64
	Nonce           uint64
	HashesPerSecond float64
}

// String reports the run's throughput (not its deadline or nonce) in the
// same "%.2f M/G/T"-style units the rest of the ambient stack uses for
// throughput figures.
func (r SearchResult) String() string {
	return utils.SiUnits(r.HashesPerSecond, 2) + "H/s"
}

// SearchRange evaluates the deadline for a single scoop across count
// consecutive nonces already plotted in nonces (PoC2 order, count*NonceSize
// bytes), returning the lowest deadline and the nonce number that produced
// it. Ties resolve to the lowest nonce number, matching poc.Best. Results
// are memoized in cache (may be nil to skip memoization) under a 64-bit key
// folded from gensig, scoop and nonce, so repeating a search with the same
// gensig and scoop over an unchanged plot skips re-hashing.
func SearchRange(routines int, width poc.Width, gensig poc.Hash, scoop int, nonces []byte, startNonce uint64, count int, cache *ScoopCache) SearchResult {
	if routines <= 0 {
		routines = max(runtime.NumCPU(), 1)
	}
	lanes := width.Lanes()
	batches := (count + lanes - 1) / lanes
	if batches < routines {
		routines = max(batches, 1)
	}

	engines := make([]*poc.DeadlineEngine, routines)
	results := make([]poc.Best, routines)
	telemetries := make([]telemetry, routines)

	_ = utils.SplitWork(routines, uint64(batches),
		func(workIndex uint64, routineIndex int) error {
			de := engines[routineIndex]
			b := int(workIndex)
			batchLanes := lanes
			if remaining := count - b*lanes; remaining < lanes {
				batchLanes = remaining
			}
			batchStart := b * lanes

			start := time.Now()
			deadlines := make([]uint64, batchLanes)
			var uncached []int
			var buf [][]byte
			for lane := 0; lane < batchLanes; lane++ {
				nonce := startNonce + uint64(batchStart+lane)
				if cache != nil {
					if h, ok := cache.get(scoopCacheKey(gensig, nonce, scoop)); ok {
						deadlines[lane] = h.DeadlineUint64()
						continue
					}
				}
				uncached = append(uncached, lane)
				off := (batchStart + lane) * poc.NonceSize
				buf = append(buf, nonces[off:off+poc.NonceSize])
			}
			if len(buf) > 0 {
				fresh := de.ComputeBatch(gensig, scoop, buf)
				for i, lane := range uncached {
					deadlines[lane] = fresh[i]
					if cache != nil {
						var h poc.Hash
						binary.LittleEndian.PutUint64(h[:8], fresh[i])
						cache.put(scoopCacheKey(gensig, startNonce+uint64(batchStart+lane), scoop), h)
					}
				}
			}
			telemetries[routineIndex].add(uint64(batchLanes), uint64(time.Since(start)))
			results[routineIndex].Reduce(deadlines, batchStart)
			return nil
		},
		func(_, routineIndex int) error {
			engines[routineIndex] = poc.NewDeadlineEngine(width)
			return nil
		},
	)

	var best poc.Best
	var total telemetry
	for r := range results {
		// Routines pull batches in no fixed order, so ties across routines
		// are broken by the lower index rather than by routine order.
		if results[r].HasCandidate() && best.HasCandidate() &&
			results[r].Deadline == best.Deadline && results[r].Index < best.Index {
			best = results[r]
		} else {
			best.Merge(results[r])
		}
		total.merge(telemetries[r])
	}
	result := SearchResult{
		Deadline:        best.Deadline,
		Nonce:           startNonce + uint64(best.Index),
		HashesPerSecond: total.HashesPerSecond(),
	}
	utils.Debugf("bench", "search over %d nonces starting at %d done: %s", count, startNonce, result.String())
	return result
}

func scoopCacheKey(gensig poc.Hash, nonce uint64, scoop int) uint64 {
	// A cheap 64-bit fold of the first 8 bytes of gensig, the nonce and the
	// scoop. The cache stores only this key, so two (gensig, nonce, scoop)
	// triples that fold to the same key are not told apart: a lookup for one
	// returns the deadline cached for the other.
	return gensig.DeadlineUint64() ^ nonce ^ uint64(scoop)*0x9e3779b97f4a7c15
}

// telemetry accumulates hash counts and elapsed nanoseconds across an
// entire search run using a 128-bit counter, since a long-running miner can
// process far more scoops than fit in a uint64 nanosecond-hash product.
type telemetry struct {
	hashes  uint128.Uint128
	elapsed uint128.Uint128
}

func (t *telemetry) add(hashes uint64, elapsedNanos uint64) {
	t.hashes = t.hashes.Add64(hashes)
	t.elapsed = t.elapsed.Add64(elapsedNanos)
}

func (t *telemetry) merge(other telemetry) {
	t.hashes = t.hashes.Add(other.hashes)
	t.elapsed = t.elapsed.Add(other.elapsed)
}

// HashesPerSecond returns the accumulated throughput, or 0 if no time has
// elapsed yet.
func (t *telemetry) HashesPerSecond() float64 {
	if t.elapsed.IsZero() {
		return 0
	}
	seconds := float64(t.elapsed.Big().Int64()) / 1e9
	if seconds <= 0 {
		return 0
	}
	return float64(t.hashes.Big().Int64()) / seconds
}

// SeenOffsets records the nonce numbers handed to the PlotRange calls that
// share it, so that plotting the same nonce number twice is caught. Safe for
// concurrent use by several PlotRange calls.
type SeenOffsets struct {
	mu  sync.Mutex
	set *swiss.Map[uint64, struct{}]
}

// NewSeenOffsets allocates a guard sized for expected nonce insertions.
func NewSeenOffsets(expected int) *SeenOffsets {
	return &SeenOffsets{set: swiss.NewMap[uint64, struct{}](uint32(expected))}
}

func (s *SeenOffsets) markOrPanic(nonce uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.set.Get(nonce); ok {
		panic("poc/bench: nonce plotted twice")
	}
	s.set.Put(nonce, struct{}{})
}

// ScoopCache memoizes recently computed deadline seeds keyed by
// (gensig,nonce,scoop), sized for the working set a single search pass
// touches; callers repeating a search with the same gensig and scoop over
// the same plot file benefit from not re-hashing unchanged scoops. Safe for
// concurrent use by SearchRange's worker goroutines.
type ScoopCache struct {
	mu    sync.Mutex
	cache *lru.LRU[uint64, poc.Hash]
}

// NewScoopCache allocates a cache holding up to size recent entries.
func NewScoopCache(size int) *ScoopCache {
	return &ScoopCache{cache: lru.New[uint64, poc.Hash](size)}
}

func (c *ScoopCache) get(key uint64) (poc.Hash, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.cache.Get(key)
	if v == nil {
		return poc.ZeroHash, false
	}
	return *v, true
}

func (c *ScoopCache) put(key uint64, h poc.Hash) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Set(key, h)
}
