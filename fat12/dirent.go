package fat12

import (
	"fmt"
	"strings"
)

// dirEntrySize is the size of a single raw directory entry, in bytes.
const dirEntrySize = 32

// Directory entry attribute bits (spec.md §3).
const (
	AttrReadOnly    uint8 = 0x01
	AttrHidden      uint8 = 0x02
	AttrSystem      uint8 = 0x04
	AttrVolumeLabel uint8 = 0x08
	AttrDirectory   uint8 = 0x10
	AttrArchive     uint8 = 0x20

	// attrLongFileName is the composite pattern (all four of ReadOnly,
	// Hidden, System, VolumeLabel simultaneously) marking a long-filename
	// entry, which this design does not interpret (Non-goal: long
	// filenames).
	attrLongFileName = AttrReadOnly | AttrHidden | AttrSystem | AttrVolumeLabel
)

// First-name-byte sentinels.
const (
	nameSlotEmpty   = 0x00
	nameSlotDeleted = 0xE5
	nameSlotDot     = 0x2E
)

// Byte offsets of the fields within a 32-byte directory entry. Only the
// fields this design's invariants touch (name, extension, attributes, start
// cluster, file size) are named; the rest of the record (timestamps, NT
// reserved byte) is preserved verbatim on every write.
const (
	direntOffName             = 0
	direntOffExtension        = 8
	direntOffAttributes       = 11
	direntOffFirstClusterLow  = 26
	direntOffFileSize         = 28
)

// slotStatus classifies a raw directory entry slot before it is handed to
// the walker as live data.
type slotStatus int

const (
	slotLive slotStatus = iota
	slotEnd
	slotDeleted
	slotDotEntry
	slotLongName
)

// DirEntry is a directory entry's data in processed form.
type DirEntry struct {
	Name         string
	Attributes   uint8
	StartCluster ClusterID
	FileSize     uint32

	// offset is the absolute byte offset of this entry's 32-byte record in
	// the image buffer, used by the size reconciler to write corrections
	// back through the same path the entry was read from.
	offset int
}

// IsDir reports whether this entry is a subdirectory.
func (d DirEntry) IsDir() bool {
	return d.Attributes&AttrDirectory != 0
}

// IsHidden reports whether this entry carries the HIDDEN attribute.
func (d DirEntry) IsHidden() bool {
	return d.Attributes&AttrHidden != 0
}

// IsVolumeLabel reports whether this entry is the volume label.
func (d DirEntry) IsVolumeLabel() bool {
	return d.Attributes&AttrVolumeLabel != 0
}

// IsReadOnly, IsSystem, IsArchive report the remaining attribute bits the
// original tool's listing surfaces (spec.md §9 supplemented feature).
func (d DirEntry) IsReadOnly() bool { return d.Attributes&AttrReadOnly != 0 }
func (d DirEntry) IsSystem() bool   { return d.Attributes&AttrSystem != 0 }
func (d DirEntry) IsArchive() bool  { return d.Attributes&AttrArchive != 0 }

// decodeDirEntry reads the 32-byte record at offset in buf and classifies
// it. For everything but slotLive the returned DirEntry is meaningless.
func decodeDirEntry(buf []byte, offset int) (DirEntry, slotStatus) {
	nameByte := buf[offset+direntOffName]

	switch nameByte {
	case nameSlotEmpty:
		return DirEntry{}, slotEnd
	case nameSlotDeleted:
		return DirEntry{}, slotDeleted
	case nameSlotDot:
		return DirEntry{}, slotDotEntry
	}

	attr := buf[offset+direntOffAttributes]
	if attr&attrLongFileName == attrLongFileName {
		return DirEntry{}, slotLongName
	}

	name := strings.TrimRight(string(buf[offset+direntOffName:offset+direntOffExtension]), " ")
	ext := strings.TrimRight(string(buf[offset+direntOffExtension:offset+direntOffAttributes]), " ")
	fullName := name
	if ext != "" {
		fullName = name + "." + ext
	}

	entry := DirEntry{
		Name:         fullName,
		Attributes:   attr,
		StartCluster: ClusterID(getUint16(buf, offset+direntOffFirstClusterLow)),
		FileSize:     getUint32(buf, offset+direntOffFileSize),
		offset:       offset,
	}
	return entry, slotLive
}

// setFileSize is the only path through which an existing entry's file size
// is modified (spec.md §9). It writes at the same offset decodeDirEntry
// reads from, keeping read and write symmetric. Brand-new recovery entries
// are written whole by writeDirEntryRecord instead.

func (img *Image) setFileSize(d *DirEntry, size uint32) {
	putUint32(img.buf, d.offset+direntOffFileSize, size)
	d.FileSize = size
}

// formatShortName renders a recovered file's synthetic name into the 8.3
// space-padded uppercase on-disk form, defaulting the extension to "___"
// when the name has no dot.
func formatShortName(name string) [11]byte {
	var raw [11]byte
	for i := range raw {
		raw[i] = ' '
	}

	stem := name
	ext := "___"
	if dot := strings.LastIndex(name, "."); dot >= 0 {
		stem = name[:dot]
		ext = name[dot+1:]
	}

	stem = strings.ToUpper(stem)
	ext = strings.ToUpper(ext)
	if len(stem) > 8 {
		stem = stem[:8]
	}
	if len(ext) > 3 {
		ext = ext[:3]
	}

	copy(raw[0:8], stem)
	copy(raw[8:11], ext)
	return raw
}

func (d DirEntry) String() string {
	return fmt.Sprintf("%s (cluster %d, %d bytes)", d.Name, d.StartCluster, d.FileSize)
}
