package fat12

import "encoding/binary"

// Byte codec: little-endian 16/32-bit field access at byte offsets into the
// image buffer. Every multi-byte field read or rewritten in place goes
// through here; the one exception is writeDirEntryRecord, which serializes
// a whole new directory record sequentially.

func getUint16(buf []byte, offset int) uint16 {
	return binary.LittleEndian.Uint16(buf[offset : offset+2])
}

func putUint16(buf []byte, offset int, value uint16) {
	binary.LittleEndian.PutUint16(buf[offset:offset+2], value)
}

func getUint32(buf []byte, offset int) uint32 {
	return binary.LittleEndian.Uint32(buf[offset : offset+4])
}

func putUint32(buf []byte, offset int, value uint32) {
	binary.LittleEndian.PutUint32(buf[offset:offset+4], value)
}
