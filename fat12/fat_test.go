package fat12

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fat12fsck/fat12fsck/fat12/testfixture"
)

func TestFATEntryRoundTrip(t *testing.T) {
	b := testfixture.NewDefault()
	b.SetFATEntry(2, 0x123)
	b.SetFATEntry(3, endOfChain)

	img, err := NewImage(b.Bytes())
	require.NoError(t, err)

	assert.Equal(t, uint16(0x123), img.GetEntry(2))
	assert.Equal(t, uint16(endOfChain), img.GetEntry(3))
	assert.Equal(t, ClassInUse, img.Classify(2))
	assert.Equal(t, ClassEnd, img.Classify(3))
}

func TestFATEntryOddEvenPackingDoesNotClobberNeighbor(t *testing.T) {
	b := testfixture.NewDefault()
	b.SetFATEntry(4, 0xABC)
	b.SetFATEntry(5, 0xDEF)

	img, err := NewImage(b.Bytes())
	require.NoError(t, err)

	assert.Equal(t, uint16(0xABC), img.GetEntry(4))
	assert.Equal(t, uint16(0xDEF), img.GetEntry(5))

	img.SetEntry(4, 0x000)
	assert.Equal(t, uint16(0x000), img.GetEntry(4))
	assert.Equal(t, uint16(0xDEF), img.GetEntry(5), "clearing cluster 4 must not disturb cluster 5's nibble")
}

func TestClassify(t *testing.T) {
	assert.Equal(t, ClassFree, classify(0x000))
	assert.Equal(t, ClassReserved, classify(0x001))
	assert.Equal(t, ClassInUse, classify(0x002))
	assert.Equal(t, ClassInUse, classify(0xFEF))
	assert.Equal(t, ClassReserved, classify(0xFF0))
	assert.Equal(t, ClassBad, classify(badCluster))
	assert.Equal(t, ClassEnd, classify(endOfChain))
	assert.Equal(t, ClassEnd, classify(0xFF8))
}

func TestInRangeRejectsClustersPastImageCapacity(t *testing.T) {
	b := testfixture.NewDefault()
	img, err := NewImage(b.Bytes())
	require.NoError(t, err)

	assert.True(t, img.InRange(2))
	assert.False(t, img.InRange(0))
	assert.False(t, img.InRange(1))
	assert.False(t, img.InRange(ClusterID(img.geom.TotalClusters)))
}
