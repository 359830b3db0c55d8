package fat12

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fatfsckerrors "github.com/fat12fsck/fat12fsck/fat12/errors"
	"github.com/fat12fsck/fat12fsck/fat12/report"
	"github.com/fat12fsck/fat12fsck/fat12/testfixture"
)

func TestReconcileAgreesDoesNothing(t *testing.T) {
	b := testfixture.NewDefault()
	img := newTestImage(t, b)

	entry := DirEntry{FileSize: 512}
	rep := report.New()
	img.Reconcile(&entry, []ClusterID{2}, "FILE.TXT", rep)

	assert.True(t, rep.Empty())
	assert.EqualValues(t, 512, entry.FileSize)
}

func TestReconcileTruncatesChainTooLong(t *testing.T) {
	b := testfixture.NewDefault()
	b.SetFATEntry(2, 3)
	b.SetFATEntry(3, 4)
	b.SetFATEntry(4, endOfChain)
	img := newTestImage(t, b)

	entry := DirEntry{FileSize: 512} // 1 cluster's worth, chain has 3
	rep := report.New()
	img.Reconcile(&entry, []ClusterID{2, 3, 4}, "FILE.TXT", rep)

	assert.Equal(t, uint16(endOfChain), img.GetEntry(2))
	assert.Equal(t, ClassFree, img.Classify(3))
	assert.Equal(t, ClassFree, img.Classify(4))

	entries := rep.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, fatfsckerrors.ChainTooLong, entries[0].Kind)
}

func TestReconcileShrinksMetadataSizeTooLarge(t *testing.T) {
	b := testfixture.NewDefault()
	img := newTestImage(t, b)

	entry := DirEntry{FileSize: 5000, offset: int(img.geom.RootDirBase)}
	rep := report.New()
	img.Reconcile(&entry, []ClusterID{2}, "FILE.TXT", rep)

	assert.EqualValues(t, img.geom.ClusterSize, entry.FileSize)

	entries := rep.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, fatfsckerrors.MetadataSizeTooLarge, entries[0].Kind)
}

func TestReconcileHandlesZeroLengthAllocatedFile(t *testing.T) {
	b := testfixture.NewDefault()
	img := newTestImage(t, b)

	entry := DirEntry{FileSize: 0, offset: int(img.geom.RootDirBase)}
	rep := report.New()
	img.Reconcile(&entry, []ClusterID{2}, "FILE.TXT", rep)

	assert.EqualValues(t, img.geom.ClusterSize, entry.FileSize)

	entries := rep.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, fatfsckerrors.MetadataSizeTooLarge, entries[0].Kind)
}
