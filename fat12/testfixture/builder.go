// Package testfixture builds synthetic FAT12 images byte-by-byte for unit
// tests, the way the teacher's own testing package builds disk images for
// its tests -- except here there's no compressed binary fixture to ship,
// since every scenario in spec.md §8 is small enough to construct directly.
package testfixture

import (
	"encoding/binary"
	"io"
	"strings"

	"github.com/xaionaro-go/bytesextra"
)

// Builder assembles a minimal, valid FAT12 image in memory.
type Builder struct {
	BytesPerSector    uint16
	SectorsPerCluster uint8
	ReservedSectors   uint16
	NumFATs           uint8
	RootDirEntries    uint16
	TotalSectors      uint32
	SectorsPerFAT     uint16

	buf         []byte
	fatBase     uint32
	rootDirBase uint32
	dataBase    uint32
}

// NewDefault returns a Builder for a small FAT12 image (512 bytes/sector,
// 1 sector/cluster, one 9-sector FAT, 16 root entries, 640 sectors) --
// small enough to keep test images tiny while still exercising real
// geometry math.
func NewDefault() *Builder {
	b := &Builder{
		BytesPerSector:    512,
		SectorsPerCluster: 1,
		ReservedSectors:   1,
		NumFATs:           1,
		RootDirEntries:    16,
		SectorsPerFAT:     9,
		TotalSectors:      640,
	}
	b.Reset()
	return b
}

// Reset re-derives geometry and reallocates the buffer from the Builder's
// current fields. Call it after changing any of the exported geometry
// fields directly.
func (b *Builder) Reset() {
	size := int(b.TotalSectors) * int(b.BytesPerSector)
	b.buf = make([]byte, size)

	b.fatBase = uint32(b.ReservedSectors) * uint32(b.BytesPerSector)
	b.rootDirBase = b.fatBase + uint32(b.NumFATs)*uint32(b.SectorsPerFAT)*uint32(b.BytesPerSector)
	b.dataBase = b.rootDirBase + uint32(b.RootDirEntries)*32

	binary.LittleEndian.PutUint16(b.buf[0x0B:], b.BytesPerSector)
	b.buf[0x0D] = b.SectorsPerCluster
	binary.LittleEndian.PutUint16(b.buf[0x0E:], b.ReservedSectors)
	b.buf[0x10] = b.NumFATs
	binary.LittleEndian.PutUint16(b.buf[0x11:], b.RootDirEntries)
	binary.LittleEndian.PutUint16(b.buf[0x13:], uint16(b.TotalSectors))
	binary.LittleEndian.PutUint16(b.buf[0x16:], b.SectorsPerFAT)
}

// ClusterSize is bytesPerSector * sectorsPerCluster.
func (b *Builder) ClusterSize() uint32 {
	return uint32(b.BytesPerSector) * uint32(b.SectorsPerCluster)
}

// ClusterOffset returns the byte offset of cluster n in the data region.
func (b *Builder) ClusterOffset(n uint32) int {
	return int(b.dataBase) + int(n-2)*int(b.ClusterSize())
}

// SetFATEntry packs a 12-bit value into cluster index n of every FAT copy,
// mirroring the packed-nibble layout spec.md §3 describes.
func (b *Builder) SetFATEntry(n uint32, v uint16) {
	v &= 0x0FFF
	fatSize := uint32(b.SectorsPerFAT) * uint32(b.BytesPerSector)

	for copyIdx := uint32(0); copyIdx < uint32(b.NumFATs); copyIdx++ {
		base := b.fatBase + copyIdx*fatSize
		offset := int(base) + int(n)*3/2
		word := binary.LittleEndian.Uint16(b.buf[offset : offset+2])
		if n%2 == 0 {
			word = (word & 0xF000) | v
		} else {
			word = (word & 0x000F) | (v << 4)
		}
		binary.LittleEndian.PutUint16(b.buf[offset:offset+2], word)
	}
}

// SetRootDirEntry writes a full 32-byte directory entry into slot index
// (0-based) of the fixed-size root directory table.
func (b *Builder) SetRootDirEntry(slot int, name string, attr uint8, startCluster uint16, size uint32) {
	off := int(b.rootDirBase) + slot*32
	writeDirEntry(b.buf[off:off+32], name, attr, startCluster, size)
}

// SetClusterDirEntry writes a full 32-byte directory entry into the
// slotIndex-th slot of the cluster n (used to build subdirectory streams).
func (b *Builder) SetClusterDirEntry(n uint32, slotIndex int, name string, attr uint8, startCluster uint16, size uint32) {
	off := b.ClusterOffset(n) + slotIndex*32
	writeDirEntry(b.buf[off:off+32], name, attr, startCluster, size)
}

func writeDirEntry(slot []byte, name string, attr uint8, startCluster uint16, size uint32) {
	for i := range slot {
		slot[i] = 0
	}

	stem := name
	ext := ""
	if dot := strings.LastIndex(name, "."); dot >= 0 {
		stem = name[:dot]
		ext = name[dot+1:]
	}

	for i := 0; i < 8; i++ {
		slot[i] = ' '
	}
	for i := 0; i < 3; i++ {
		slot[8+i] = ' '
	}
	copy(slot[0:8], strings.ToUpper(stem))
	copy(slot[8:11], strings.ToUpper(ext))

	slot[11] = attr
	binary.LittleEndian.PutUint16(slot[26:28], startCluster)
	binary.LittleEndian.PutUint32(slot[28:32], size)
}

// ClearRootDirEntry zeroes slot, marking it terminator-empty (0x00) -- use
// this to simulate a directory shorter than its allocated entry count.
func (b *Builder) ClearRootDirEntry(slot int) {
	off := int(b.rootDirBase) + slot*32
	for i := 0; i < 32; i++ {
		b.buf[off+i] = 0
	}
}

// WriteClusterBytes fills a cluster's data region with raw bytes, for
// building subdirectory cluster contents or plain file payload.
func (b *Builder) WriteClusterBytes(n uint32, data []byte) {
	off := b.ClusterOffset(n)
	copy(b.buf[off:off+int(b.ClusterSize())], data)
}

// Bytes returns the assembled image buffer.
func (b *Builder) Bytes() []byte {
	return b.buf
}

// Stream presents the assembled image as a seekable read/write stream, the
// way a mapped image is handed to higher layers once opened.
func (b *Builder) Stream() io.ReadWriteSeeker {
	return bytesextra.NewReadWriteSeeker(b.buf)
}
