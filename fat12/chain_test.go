package fat12

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fatfsckerrors "github.com/fat12fsck/fat12fsck/fat12/errors"
	"github.com/fat12fsck/fat12fsck/fat12/report"
	"github.com/fat12fsck/fat12fsck/fat12/testfixture"
)

func newTestImage(t *testing.T, b *testfixture.Builder) *Image {
	t.Helper()
	img, err := NewImage(b.Bytes())
	require.NoError(t, err)
	return img
}

func TestWalkChainFollowsToEndOfChain(t *testing.T) {
	b := testfixture.NewDefault()
	b.SetFATEntry(2, 3)
	b.SetFATEntry(3, 4)
	b.SetFATEntry(4, endOfChain)
	img := newTestImage(t, b)

	rep := report.New()
	chain := img.WalkChain(2, "FILE.TXT", rep)

	assert.Equal(t, []ClusterID{2, 3, 4}, chain)
	assert.True(t, rep.Empty())
}

func TestWalkChainSplicesOutBadCluster(t *testing.T) {
	b := testfixture.NewDefault()
	b.SetFATEntry(2, 3)
	b.SetFATEntry(3, badCluster)
	img := newTestImage(t, b)

	rep := report.New()
	chain := img.WalkChain(2, "FILE.TXT", rep)

	assert.Equal(t, []ClusterID{2}, chain)
	assert.Equal(t, uint16(4), img.GetEntry(2))

	entries := rep.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, fatfsckerrors.BadClusterInChain, entries[0].Kind)
}

func TestWalkChainTruncatesOutOfRangeLink(t *testing.T) {
	b := testfixture.NewDefault()
	b.SetFATEntry(2, 3)
	b.SetFATEntry(3, 5000)
	img := newTestImage(t, b)

	rep := report.New()
	chain := img.WalkChain(2, "FILE.TXT", rep)

	assert.Equal(t, []ClusterID{2, 3}, chain)
	assert.Equal(t, uint16(endOfChain), img.GetEntry(3))

	entries := rep.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, fatfsckerrors.OutOfRangeCluster, entries[0].Kind)
}

func TestWalkChainBreaksCycle(t *testing.T) {
	b := testfixture.NewDefault()
	b.SetFATEntry(2, 3)
	b.SetFATEntry(3, 2)
	img := newTestImage(t, b)

	rep := report.New()
	chain := img.WalkChain(2, "FILE.TXT", rep)

	assert.NotEmpty(t, chain)
	assert.LessOrEqual(t, len(chain), int(img.geom.TotalClusters))

	entries := rep.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, fatfsckerrors.CycleDetected, entries[0].Kind)
}

func TestWalkChainFreeEntryEndsChain(t *testing.T) {
	b := testfixture.NewDefault()
	b.SetFATEntry(2, 0x000)
	img := newTestImage(t, b)

	rep := report.New()
	chain := img.WalkChain(2, "FILE.TXT", rep)

	assert.Empty(t, chain)
	assert.True(t, rep.Empty())
}
