package fat12

import (
	"encoding/binary"
	"fmt"

	"github.com/noxer/bytewriter"

	fatfsckerrors "github.com/fat12fsck/fat12fsck/fat12/errors"
)

// WriteRecoveredEntry allocates a new root-directory entry for a recovered
// orphan chain (C9). It scans for the first slot whose first name byte is
// 0x00 (never used) or 0xE5 (deleted); on 0x00 it also re-terminates the
// directory by zeroing the following slot, if one exists. Attribute byte is
// ARCHIVE only. Returns RootDirectoryFull if every slot is occupied.
func (img *Image) WriteRecoveredEntry(name string, startCluster ClusterID, size uint32) error {
	slots := img.rootDirSlots()

	for i, off := range slots {
		nameByte := img.buf[off+direntOffName]

		switch nameByte {
		case nameSlotEmpty:
			img.writeDirEntryRecord(off, name, startCluster, size)
			if i+1 < len(slots) {
				img.zeroAndTerminate(slots[i+1])
			}
			return nil

		case nameSlotDeleted:
			img.writeDirEntryRecord(off, name, startCluster, size)
			return nil
		}
	}

	return fatfsckerrors.RootDirectoryFull.WithMessage(
		fmt.Sprintf("no free slot for recovered file %q", name))
}

func (img *Image) zeroAndTerminate(off int) {
	for i := 0; i < dirEntrySize; i++ {
		img.buf[off+i] = 0
	}
	img.buf[off+direntOffName] = nameSlotEmpty
}

// writeDirEntryRecord writes a clean 32-byte directory entry record:
// formatted 8.3 name, ARCHIVE attribute, zeroed timestamps, start cluster,
// and file size. The bytewriter-wrapped slice bounds every write to exactly
// this slot.
func (img *Image) writeDirEntryRecord(off int, name string, startCluster ClusterID, size uint32) {
	rawName := formatShortName(name)
	w := bytewriter.New(img.buf[off : off+dirEntrySize])

	binary.Write(w, binary.LittleEndian, rawName[0:8])  // Name
	binary.Write(w, binary.LittleEndian, rawName[8:11]) // Extension
	binary.Write(w, binary.LittleEndian, AttrArchive)   // AttributeFlags
	binary.Write(w, binary.LittleEndian, uint8(0))      // NTReserved
	binary.Write(w, binary.LittleEndian, uint8(0))      // CreatedTimeMillis
	binary.Write(w, binary.LittleEndian, uint16(0))     // CreatedTime
	binary.Write(w, binary.LittleEndian, uint16(0))     // CreatedDate
	binary.Write(w, binary.LittleEndian, uint16(0))     // LastAccessedDate
	binary.Write(w, binary.LittleEndian, uint16(0))     // FirstClusterHigh (unused on FAT12)
	binary.Write(w, binary.LittleEndian, uint16(0))     // LastModifiedTime
	binary.Write(w, binary.LittleEndian, uint16(0))     // LastModifiedDate
	binary.Write(w, binary.LittleEndian, uint16(startCluster))
	binary.Write(w, binary.LittleEndian, size)
}
