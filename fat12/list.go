package fat12

// ListedEntry pairs a DirEntry with its full path from the root, for
// informational listings. Building this list never mutates the image; it
// exists purely so a front end can print what scan-time walks already
// decode (spec.md §9 supplemented "directory listing" feature). The core
// scanner never consults ListEntries' output for a repair decision.
type ListedEntry struct {
	Path string
	DirEntry
	IsVolumeLabel bool
}

// ListEntries walks the directory tree read-only and returns every live
// entry it finds, depth first, in on-disk order. Subdirectory chains are
// followed with the same read-only walker the orphan detector uses, so a
// corrupt chain simply ends the listing for that branch rather than
// mutating anything.
func (img *Image) ListEntries() []ListedEntry {
	var out []ListedEntry
	img.listStream(img.rootDirSlots(), "", &out)
	return out
}

func (img *Image) listStream(slots []int, pathPrefix string, out *[]ListedEntry) {
	for _, off := range slots {
		entry, status := decodeDirEntry(img.buf, off)

		switch status {
		case slotEnd:
			return
		case slotDeleted, slotDotEntry, slotLongName:
			continue
		}

		path := pathPrefix + entry.Name

		if entry.IsVolumeLabel() {
			*out = append(*out, ListedEntry{Path: path, DirEntry: entry, IsVolumeLabel: true})
			continue
		}

		*out = append(*out, ListedEntry{Path: path, DirEntry: entry})

		if entry.IsDir() {
			if entry.StartCluster < 2 {
				continue
			}
			chain := img.followReadOnly(entry.StartCluster, img.geom.TotalClusters)
			img.listStream(img.direntSlotsForChain(chain), path+"/", out)
		}
	}
}
