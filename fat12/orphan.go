package fat12

import (
	"fmt"

	bitmap "github.com/boljen/go-bitmap"

	fatfsckerrors "github.com/fat12fsck/fat12fsck/fat12/errors"
	"github.com/fat12fsck/fat12fsck/fat12/report"
)

// OrphanChain is one maximal run of clusters the FAT marks allocated but no
// directory entry reaches.
type OrphanChain struct {
	Root     ClusterID
	Clusters []ClusterID
}

// followReadOnly walks a FAT chain without mutating anything. Orphan
// grouping must treat the FAT as read-only until every synthetic directory
// entry has been written (spec.md §5 ordering guarantee 3), so it cannot
// reuse WalkChain, which repairs bad links and cycles as it goes.
func (img *Image) followReadOnly(start ClusterID, limit uint32) []ClusterID {
	chain := make([]ClusterID, 0, 8)
	current := start
	steps := uint32(0)

	for img.InRange(current) && steps < limit {
		class := img.Classify(current)
		if class != ClassInUse && class != ClassEnd {
			break
		}
		chain = append(chain, current)
		steps++
		if class == ClassEnd {
			break
		}
		current = ClusterID(img.GetEntry(current))
	}
	return chain
}

// DetectOrphans computes the orphan clusters left in sweep after the
// directory walk's sweep pass has cleared every cluster it reached, groups
// them into maximal chains, and returns one OrphanChain per chain root
// (spec.md §4.7). sweep is consumed, not mutated further.
func (img *Image) DetectOrphans(sweep bitmap.Bitmap, rep *report.Report) []OrphanChain {
	total := img.geom.TotalClusters

	incoming := make([]bool, total)
	for n := uint32(2); n < total; n++ {
		cluster := ClusterID(n)
		if img.Classify(cluster) != ClassInUse {
			continue
		}
		next := ClusterID(img.GetEntry(cluster))
		if img.InRange(next) {
			incoming[next] = true
		}
	}

	consumed := make([]bool, total)
	var chains []OrphanChain

	for n := uint32(2); n < total; n++ {
		cluster := ClusterID(n)
		if !sweep.Get(int(n)) || incoming[n] || consumed[n] {
			continue
		}

		raw := img.followReadOnly(cluster, total)
		owned := make([]ClusterID, 0, len(raw))
		for _, c := range raw {
			if !sweep.Get(int(c)) {
				rep.Add(fatfsckerrors.DoubleOwnership,
					fmt.Sprintf("cluster %d", c),
					fmt.Sprintf(
						"orphan chain rooted at cluster %d links into cluster %d, which is already owned",
						cluster, c))
				break
			}
			owned = append(owned, c)
			consumed[c] = true
		}

		if len(owned) > 0 {
			chains = append(chains, OrphanChain{Root: cluster, Clusters: owned})
		}
	}

	// Any orphan cluster left unconsumed has no unambiguous chain root --
	// every cluster in its group has an incoming pointer from within the
	// same orphan group, i.e. a cycle with no clear start. Fall back to
	// recovering each as its own single-cluster file.
	var leftover []ClusterID
	for n := uint32(2); n < total; n++ {
		if sweep.Get(int(n)) && !consumed[n] {
			leftover = append(leftover, ClusterID(n))
		}
	}

	if len(leftover) > 0 {
		rep.Add(fatfsckerrors.AmbiguousOrphanRoot, "",
			fmt.Sprintf("%d orphan cluster(s) have no unambiguous chain root; recovering individually", len(leftover)))
		for _, c := range leftover {
			chains = append(chains, OrphanChain{Root: c, Clusters: []ClusterID{c}})
			consumed[c] = true
		}
	}

	return chains
}
