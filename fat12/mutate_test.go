package fat12

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fat12fsck/fat12fsck/fat12/testfixture"
)

func TestWriteRecoveredEntryUsesFirstEmptySlot(t *testing.T) {
	b := testfixture.NewDefault()
	img := newTestImage(t, b)

	err := img.WriteRecoveredEntry("FOUND1.DAT", 5, 512)
	require.NoError(t, err)

	slots := img.rootDirSlots()
	entry, status := decodeDirEntry(img.buf, slots[0])
	require.Equal(t, slotLive, status)
	assert.Equal(t, "FOUND1.DAT", entry.Name)
	assert.EqualValues(t, 5, entry.StartCluster)
	assert.EqualValues(t, 512, entry.FileSize)
	assert.Equal(t, AttrArchive, entry.Attributes)

	_, nextStatus := decodeDirEntry(img.buf, slots[1])
	assert.Equal(t, slotEnd, nextStatus)
}

func TestWriteRecoveredEntryReusesDeletedSlot(t *testing.T) {
	b := testfixture.NewDefault()
	b.SetRootDirEntry(0, "OLD.TXT", AttrArchive, 2, 512)
	img := newTestImage(t, b)

	slots := img.rootDirSlots()
	img.buf[slots[0]] = nameSlotDeleted

	err := img.WriteRecoveredEntry("FOUND1.DAT", 7, 1024)
	require.NoError(t, err)

	entry, status := decodeDirEntry(img.buf, slots[0])
	require.Equal(t, slotLive, status)
	assert.Equal(t, "FOUND1.DAT", entry.Name)
	assert.EqualValues(t, 7, entry.StartCluster)
}

func TestWriteRecoveredEntryReportsFullDirectory(t *testing.T) {
	b := testfixture.NewDefault()
	b.RootDirEntries = 1
	b.Reset()
	b.SetRootDirEntry(0, "ONE.TXT", AttrArchive, 2, 512)
	img := newTestImage(t, b)

	err := img.WriteRecoveredEntry("FOUND1.DAT", 5, 512)
	assert.Error(t, err)
}
