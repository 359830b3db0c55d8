package fat12

import (
	"fmt"

	bitmap "github.com/boljen/go-bitmap"

	fatfsckerrors "github.com/fat12fsck/fat12fsck/fat12/errors"
	"github.com/fat12fsck/fat12fsck/fat12/report"
)

// Scan runs one full consistency-check-and-repair pass over buf in place
// and returns a report of everything it found. Only a BadBootSector
// failure returns a non-nil error; every other anomaly is repaired,
// downgraded, or skipped locally and folded into the returned report
// (spec.md §7 propagation policy).
//
// Ordering follows spec.md §5: the reconcile walk runs to completion before
// the orphan sweep, because truncations performed during reconciliation
// free clusters whose orphan status then becomes FREE rather than
// spuriously recovered.
func Scan(buf []byte) (*report.Report, error) {
	img, err := NewImage(buf)
	if err != nil {
		return nil, err
	}

	rep := report.New()

	img.Walk(modeReconcile, nil, rep)

	sweep := bitmap.New(int(img.geom.TotalClusters))
	for n := uint32(2); n < img.geom.TotalClusters; n++ {
		cluster := ClusterID(n)
		class := img.Classify(cluster)
		if class != ClassFree && class != ClassBad {
			sweep.Set(int(n), true)
		}
	}
	img.Walk(modeSweep, sweep, rep)

	orphans := img.DetectOrphans(sweep, rep)
	img.recoverOrphans(orphans, rep)

	return rep, nil
}

// recoverOrphans writes one FOUNDk.DAT root-directory entry per orphan
// chain found, in order. Once the root directory is full, the remaining
// chains are reported but left unlinked rather than attempted one slot at
// a time against a directory known to have no free slots.
func (img *Image) recoverOrphans(orphans []OrphanChain, rep *report.Report) {
	rootFull := false
	counter := 1

	for _, chain := range orphans {
		size := uint32(len(chain.Clusters)) * img.geom.ClusterSize

		if rootFull {
			rep.Add(fatfsckerrors.RootDirectoryFull,
				fmt.Sprintf("cluster %d", chain.Root),
				"root directory has no free slot; this recovered chain was not linked")
			continue
		}

		name := fmt.Sprintf("FOUND%d.DAT", counter)
		if err := img.WriteRecoveredEntry(name, chain.Root, size); err != nil {
			rootFull = true
			rep.Add(fatfsckerrors.RootDirectoryFull, name, err.Error())
			continue
		}

		rep.Add(fatfsckerrors.OrphanRecovered,
			fmt.Sprintf("cluster %d", chain.Root),
			fmt.Sprintf("cluster is unassigned but not freed; now in directory as %s", name),
			fmt.Sprintf("chain: %v (%d bytes)", chain.Clusters, size))
		counter++
	}
}
