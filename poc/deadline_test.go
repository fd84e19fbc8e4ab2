package poc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeBatchIsDeterministic(t *testing.T) {
	e := NewEngine(Width4, 1)
	dst := make([]byte, Width4.Lanes()*NonceSize)
	e.GenerateBatch(dst, 0)

	gensig := Hash{1, 2, 3}
	de := NewDeadlineEngine(Width4)

	nonces := [][]byte{dst[0:NonceSize], dst[NonceSize : 2*NonceSize]}
	a := de.ComputeBatch(gensig, 17, nonces)
	b := de.ComputeBatch(gensig, 17, nonces)
	require.Equal(t, a, b)
}

func TestComputeBatchVariesWithScoop(t *testing.T) {
	e := NewEngine(Width4, 1)
	dst := make([]byte, Width4.Lanes()*NonceSize)
	e.GenerateBatch(dst, 0)

	gensig := Hash{9, 9, 9}
	de := NewDeadlineEngine(Width4)

	nonces := [][]byte{dst[0:NonceSize]}
	a := de.ComputeBatch(gensig, 0, nonces)
	b := de.ComputeBatch(gensig, 1, nonces)
	require.NotEqual(t, a[0], b[0])
}

func TestBestOfferAcceptsFirstCandidateUnconditionally(t *testing.T) {
	var b Best
	require.False(t, b.HasCandidate())

	b.Offer(0, 5)
	require.True(t, b.HasCandidate())
	require.Equal(t, uint64(0), b.Deadline)
	require.Equal(t, 5, b.Index)

	// A later, larger deadline must never displace an existing zero.
	b.Offer(100, 6)
	require.Equal(t, uint64(0), b.Deadline)
	require.Equal(t, 5, b.Index)
}

func TestBestOfferBreaksTiesByFirstOffer(t *testing.T) {
	var b Best
	b.Offer(42, 3)
	b.Offer(42, 1)
	require.Equal(t, 3, b.Index)
}

func TestBestReduceScansLaneZeroFirst(t *testing.T) {
	var b Best
	b.Reduce([]uint64{10, 10, 5}, 100)
	require.Equal(t, uint64(5), b.Deadline)
	require.Equal(t, 102, b.Index)

	var tie Best
	tie.Reduce([]uint64{5, 5, 5}, 200)
	require.Equal(t, 200, tie.Index)
}

func TestBestMergeKeepsLowerAndIgnoresEmptyOther(t *testing.T) {
	var a Best
	a.Offer(50, 1)

	var empty Best
	a.Merge(empty)
	require.Equal(t, uint64(50), a.Deadline)

	var lower Best
	lower.Offer(10, 2)
	a.Merge(lower)
	require.Equal(t, uint64(10), a.Deadline)
	require.Equal(t, 2, a.Index)
}
