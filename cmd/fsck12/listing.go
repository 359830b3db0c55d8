package main

import (
	"fmt"
	"io"

	"github.com/fat12fsck/fat12fsck/fat12"
)

// printListing reproduces the inline directory listing the original tool
// prints while it scans (spec.md §9 supplemented feature): one line per
// entry with its attribute letters, size, and starting cluster, plus a
// separate "Volume:" line for the volume label. Purely informational --
// nothing here feeds back into the scan itself.
func printListing(w io.Writer, img *fat12.Image) {
	for _, e := range img.ListEntries() {
		if e.IsVolumeLabel {
			fmt.Fprintf(w, "Volume: %s\n", e.Name)
			continue
		}
		fmt.Fprintf(w, "%s  %s  %8d bytes  cluster %d\n",
			attrLetters(e.DirEntry), e.Path, e.FileSize, e.StartCluster)
	}
}

// attrLetters renders the four attribute bits the original prints:
// read-only, hidden, system, archive -- a dash in place of each one not set.
// A directory shows 'D' in the archive position whatever its archive bit.
func attrLetters(d fat12.DirEntry) string {
	letters := []byte("----")
	if d.IsReadOnly() {
		letters[0] = 'R'
	}
	if d.IsHidden() {
		letters[1] = 'H'
	}
	if d.IsSystem() {
		letters[2] = 'S'
	}
	if d.IsArchive() {
		letters[3] = 'A'
	}
	if d.IsDir() {
		letters[3] = 'D'
	}
	return string(letters)
}
