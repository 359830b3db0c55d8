package fat12

import (
	"fmt"

	fatfsckerrors "github.com/fat12fsck/fat12fsck/fat12/errors"
	"github.com/fat12fsck/fat12fsck/fat12/geometry"
)

// BPB is the decoded Boot Parameter Block: the fixed-offset header at the
// start of the image, legacy DOS 3.3 layout at offset 0x0B of sector 0. All
// multi-byte fields are little-endian.
type BPB struct {
	BytesPerSector    uint16
	SectorsPerCluster uint8
	ReservedSectors   uint16
	NumFATs           uint8
	RootDirEntries    uint16
	TotalSectors      uint32
	SectorsPerFAT     uint16
}

// Offsets of the BPB fields within sector 0, per the legacy DOS 3.3 layout.
const (
	offBytesPerSector    = 0x0B
	offSectorsPerCluster = 0x0D
	offReservedSectors   = 0x0E
	offNumFATs           = 0x10
	offRootDirEntries    = 0x11
	offTotalSectors16    = 0x13
	offSectorsPerFAT     = 0x16
	offTotalSectors32    = 0x20
	bpbMinLength         = 0x24
)

// DecodeBPB reads the boot parameter block out of the first sector of buf
// and runs the basic plausibility checks spec.md §7 requires before any
// other component may touch the image.
func DecodeBPB(buf []byte) (BPB, error) {
	if len(buf) < bpbMinLength {
		return BPB{}, fatfsckerrors.BadBootSector.WithMessage(
			fmt.Sprintf("image is only %d bytes, too small to hold a BPB", len(buf)))
	}

	bpb := BPB{
		BytesPerSector:    getUint16(buf, offBytesPerSector),
		SectorsPerCluster: buf[offSectorsPerCluster],
		ReservedSectors:   getUint16(buf, offReservedSectors),
		NumFATs:           buf[offNumFATs],
		RootDirEntries:    getUint16(buf, offRootDirEntries),
		SectorsPerFAT:     getUint16(buf, offSectorsPerFAT),
	}

	totalSectors16 := getUint16(buf, offTotalSectors16)
	if totalSectors16 != 0 {
		bpb.TotalSectors = uint32(totalSectors16)
	} else {
		bpb.TotalSectors = getUint32(buf, offTotalSectors32)
	}

	if err := bpb.validate(); err != nil {
		return BPB{}, err
	}
	return bpb, nil
}

func (bpb BPB) validate() error {
	if bpb.BytesPerSector == 0 {
		return fatfsckerrors.BadBootSector.WithMessage("bytes per sector is zero")
	}
	if bpb.SectorsPerCluster == 0 {
		return fatfsckerrors.BadBootSector.WithMessage("sectors per cluster is zero")
	}
	if bpb.NumFATs == 0 {
		return fatfsckerrors.BadBootSector.WithMessage("FAT copy count is zero")
	}
	if bpb.SectorsPerFAT == 0 {
		return fatfsckerrors.BadBootSector.WithMessage("sectors per FAT is zero")
	}
	if bpb.RootDirEntries == 0 {
		return fatfsckerrors.BadBootSector.WithMessage("root directory has no entries")
	}
	if bpb.TotalSectors == 0 {
		return fatfsckerrors.BadBootSector.WithMessage("total sector count is zero")
	}

	rootDirSectors := (uint32(bpb.RootDirEntries)*32 + uint32(bpb.BytesPerSector) - 1) /
		uint32(bpb.BytesPerSector)
	fatSectors := uint32(bpb.NumFATs) * uint32(bpb.SectorsPerFAT)
	nonDataSectors := uint32(bpb.ReservedSectors) + fatSectors + rootDirSectors
	if nonDataSectors >= bpb.TotalSectors {
		msg := fmt.Sprintf(
			"reserved+FAT+root directory sectors (%d) leave no room for a data region in %d total sectors",
			nonDataSectors, bpb.TotalSectors)
		if hint := geometry.DescribeMismatch(uint(bpb.BytesPerSector)); hint != "" {
			msg = msg + "; " + hint
		}
		return fatfsckerrors.BadBootSector.WithMessage(msg)
	}

	return nil
}
