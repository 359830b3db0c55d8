package fat12

import (
	bitmap "github.com/boljen/go-bitmap"

	fatfsckerrors "github.com/fat12fsck/fat12fsck/fat12/errors"
	"github.com/fat12fsck/fat12fsck/fat12/report"
)

// visitMode selects which of the two walks a walker performs over the same
// directory-iteration primitive (spec.md §9's replacement for the source's
// integer mode parameter).
type visitMode int

const (
	// modeReconcile compares each live file's recorded size against its
	// actual chain length and repairs whichever side disagrees (C7).
	modeReconcile visitMode = iota
	// modeSweep clears the visited-cluster bitmap for every cluster
	// reachable from a live directory entry, in preparation for the orphan
	// sweep (C8).
	modeSweep
)

// walker carries the state shared by every directory-iteration step of a
// single pass: which mode it's running in, the report anomalies accumulate
// into, and (in sweep mode) the bitmap being cleared.
type walker struct {
	img   *Image
	rep   *report.Report
	mode  visitMode
	sweep bitmap.Bitmap
}

// Walk performs one depth-first visitation of every non-deleted, non-dot,
// non-long-filename directory entry starting from the root, in the given
// mode (spec.md §4.4).
func (img *Image) Walk(mode visitMode, sweep bitmap.Bitmap, rep *report.Report) {
	w := &walker{img: img, rep: rep, mode: mode, sweep: sweep}
	w.visitStream(img.rootDirSlots(), "")
}

// direntsPerCluster is the number of 32-byte directory entry slots that fit
// in one cluster.
func (img *Image) direntsPerCluster() int {
	return int(img.geom.ClusterSize) / dirEntrySize
}

// rootDirSlots returns the byte offsets of every slot in the fixed-size
// root directory table.
func (img *Image) rootDirSlots() []int {
	n := int(img.bpb.RootDirEntries)
	slots := make([]int, n)
	for i := 0; i < n; i++ {
		slots[i] = int(img.geom.RootDirBase) + i*dirEntrySize
	}
	return slots
}

// direntSlotsForChain lays out every directory-entry slot across a
// cluster-backed stream (a subdirectory), in chain order.
func (img *Image) direntSlotsForChain(chain []ClusterID) []int {
	perCluster := img.direntsPerCluster()
	slots := make([]int, 0, len(chain)*perCluster)
	for _, c := range chain {
		base := int(img.geom.ClusterToAddr(c))
		for i := 0; i < perCluster; i++ {
			slots = append(slots, base+i*dirEntrySize)
		}
	}
	return slots
}

func (w *walker) visitStream(slots []int, pathPrefix string) {
	img := w.img

	for _, off := range slots {
		entry, status := decodeDirEntry(img.buf, off)

		switch status {
		case slotEnd:
			// A 0x00 name byte terminates the current stream entirely.
			return
		case slotDeleted, slotDotEntry, slotLongName:
			continue
		}

		if entry.IsVolumeLabel() {
			continue
		}

		path := pathPrefix + entry.Name

		if entry.IsDir() {
			if entry.IsHidden() {
				continue
			}

			// A directory entry below cluster 2 simply doesn't form a
			// valid chain; WalkChain returns an empty chain and there's
			// nothing to recurse into. The original tool behaves the same
			// way (it gates recursion on is_valid_cluster, not an explicit
			// check), so no StartClusterBelowTwo is reported here.
			chain := img.WalkChain(entry.StartCluster, path, w.rep)
			if w.mode == modeSweep {
				for _, c := range chain {
					w.sweep.Set(int(c), false)
				}
			}
			w.visitStream(img.direntSlotsForChain(chain), path+"/")
			continue
		}

		// Regular file.
		if entry.StartCluster < 2 {
			w.rep.Add(fatfsckerrors.StartClusterBelowTwo, path,
				"starting cluster number smaller than 2")
			continue
		}

		chain := img.WalkChain(entry.StartCluster, path, w.rep)
		switch w.mode {
		case modeReconcile:
			img.Reconcile(&entry, chain, path, w.rep)
		case modeSweep:
			for _, c := range chain {
				w.sweep.Set(int(c), false)
			}
		}
	}
}
