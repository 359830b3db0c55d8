// Package imagefile maps a FAT12 image file on disk into memory for the
// core scanner, standing in for the memory-mapping this design's scope
// explicitly excludes (spec.md §1's "not mmap/munmap themselves" non-goal).
package imagefile

import (
	"fmt"
	"os"

	"github.com/fat12fsck/fat12fsck/fat12"
)

// Open reads path into memory in full, decodes its BPB, and returns a
// ready-to-scan Image along with a Close function that writes the (possibly
// repaired) buffer back to path. The returned Image's buffer aliases no
// open file descriptor; Close is the only point at which repairs reach
// disk.
func Open(path string) (*fat12.Image, func() error, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading image file %q: %w", path, err)
	}

	img, err := fat12.NewImage(buf)
	if err != nil {
		return nil, nil, err
	}

	closer := func() error {
		return os.WriteFile(path, img.Bytes(), 0o644)
	}
	return img, closer, nil
}
