package fat12

import (
	"fmt"

	fatfsckerrors "github.com/fat12fsck/fat12fsck/fat12/errors"
)

// Image is the mapped image buffer: a contiguous byte array mutated in
// place by the FAT accessor, the size reconciler, and the directory
// mutator. Exactly one logical owner (the Scanner) holds write access for
// the duration of a scan; Image itself enforces no locking because the
// concurrency model (spec.md §5) is strictly single-threaded.
type Image struct {
	buf  []byte
	bpb  BPB
	geom Geom
}

// NewImage decodes the BPB at the start of buf, derives its geometry, and
// returns an Image ready for scanning. buf is held, not copied: every
// mutation the scanner makes is visible to the caller through the same
// slice.
func NewImage(buf []byte) (*Image, error) {
	bpb, err := DecodeBPB(buf)
	if err != nil {
		return nil, err
	}

	geom := NewGeom(bpb)
	img := &Image{buf: buf, bpb: bpb, geom: geom}

	fatSize := uint32(bpb.NumFATs) * uint32(bpb.SectorsPerFAT) * uint32(bpb.BytesPerSector)
	if int(geom.FATBase+fatSize) > len(buf) {
		return nil, fatfsckerrors.BadBootSector.WithMessage(
			fmt.Sprintf("FAT region (%d bytes starting at %d) runs past end of image (%d bytes)",
				fatSize, geom.FATBase, len(buf)))
	}
	if int(geom.DataBase) > len(buf) {
		return nil, fatfsckerrors.BadBootSector.WithMessage(
			fmt.Sprintf("data region starts at %d, past end of image (%d bytes)",
				geom.DataBase, len(buf)))
	}

	return img, nil
}

// BPB returns the decoded boot parameter block.
func (img *Image) BPB() BPB {
	return img.bpb
}

// Geom returns the derived geometry.
func (img *Image) Geom() Geom {
	return img.geom
}

// Bytes returns the underlying buffer. Callers must not retain it past the
// lifetime of the scan if they intend to release the mapping.
func (img *Image) Bytes() []byte {
	return img.buf
}
