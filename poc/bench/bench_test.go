package bench

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/signum-network/poc-core/poc"
)

func TestPlotRangeMatchesSingleEngine(t *testing.T) {
	const numericID = 3141592
	const count = 6

	got := make([]byte, count*poc.NonceSize)
	guard := NewSeenOffsets(count)
	require.NoError(t, PlotRange(2, poc.Width4, numericID, got, 0, count, guard))

	e := poc.NewEngine(poc.Width4, numericID)
	want := make([]byte, count*poc.NonceSize)
	e.Generate(want, 0, count)

	require.Equal(t, want, got)
}

func TestPlotRangeDetectsDoublePlot(t *testing.T) {
	guard := NewSeenOffsets(4)
	dst := make([]byte, poc.Width4.Lanes()*poc.NonceSize)

	require.NoError(t, PlotRange(1, poc.Width4, 1, dst, 0, poc.Width4.Lanes(), guard))
	require.Panics(t, func() {
		_ = PlotRange(1, poc.Width4, 1, dst, 0, poc.Width4.Lanes(), guard)
	})
}

func TestSearchRangeFindsSameBestAsDirectEngine(t *testing.T) {
	const numericID = 2718281
	const count = 5

	plotted := make([]byte, count*poc.NonceSize)
	poc.NewEngine(poc.Width4, numericID).Generate(plotted, 0, count)

	gensig := poc.Hash{7, 7, 7}

	var want poc.Best
	de := poc.NewDeadlineEngine(poc.Width4)
	for i := 0; i < count; i++ {
		d := de.ComputeBatch(gensig, 3, [][]byte{plotted[i*poc.NonceSize : (i+1)*poc.NonceSize]})
		want.Offer(d[0], i)
	}

	got := SearchRange(2, poc.Width4, gensig, 3, plotted, 0, count, nil)
	require.Equal(t, want.Deadline, got.Deadline)
	require.Equal(t, uint64(want.Index), got.Nonce)
}

func TestSearchRangeCacheReturnsSameResult(t *testing.T) {
	const numericID = 161803
	const count = 4

	plotted := make([]byte, count*poc.NonceSize)
	poc.NewEngine(poc.Width4, numericID).Generate(plotted, 0, count)

	gensig := poc.Hash{2, 4, 6}
	cache := NewScoopCache(16)

	first := SearchRange(1, poc.Width4, gensig, 10, plotted, 0, count, cache)
	second := SearchRange(1, poc.Width4, gensig, 10, plotted, 0, count, cache)

	require.Equal(t, first.Deadline, second.Deadline)
	require.Equal(t, first.Nonce, second.Nonce)
}
