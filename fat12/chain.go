package fat12

import (
	"fmt"

	fatfsckerrors "github.com/fat12fsck/fat12fsck/fat12/errors"
	"github.com/fat12fsck/fat12fsck/fat12/report"
)

// WalkChain follows the FAT chain starting at start, returning the ordered
// list of clusters that make up the chain. A cluster whose FAT entry is
// END-OF-CHAIN is the last one included; a cluster whose entry is FREE (or
// any other non-IN-USE class) is not included and also ends a (possibly
// truncated) chain (spec.md §8 boundary behaviors).
//
// Two anomalies are repaired inline as they're found, rather than deferred:
// a BAD cluster spliced out of the chain (spec.md §4.5), and a cycle or
// out-of-range link truncated where it occurs (a cycle at the link that
// closes the loop). The returned chain always matches the FAT as left after
// these repairs. ownerPath identifies the directory entry this chain
// belongs to, for the report.
func (img *Image) WalkChain(start ClusterID, ownerPath string, rep *report.Report) []ClusterID {
	chain := make([]ClusterID, 0, 8)
	current := start
	steps := uint32(0)

	for img.InRange(current) {
		class := img.Classify(current)
		if class != ClassInUse && class != ClassEnd {
			break
		}
		if steps >= img.geom.TotalClusters {
			seen := map[ClusterID]bool{chain[0]: true}
			last := 0
			for last+1 < len(chain) && !seen[chain[last+1]] {
				last++
				seen[chain[last]] = true
			}
			chain = chain[:last+1]
			img.SetEntry(chain[last], endOfChain)
			rep.Add(fatfsckerrors.CycleDetected, ownerPath, fmt.Sprintf(
				"chain walk exceeded %d clusters without reaching end-of-chain; truncated at cluster %d",
				img.geom.TotalClusters, chain[last]))
			break
		}
		chain = append(chain, current)
		steps++
		if class == ClassEnd {
			break
		}

		next := ClusterID(img.GetEntry(current))

		if classify(uint16(next)) == ClassInUse && !img.InRange(next) {
			img.SetEntry(current, endOfChain)
			rep.Add(fatfsckerrors.OutOfRangeCluster, ownerPath, fmt.Sprintf(
				"cluster %d links to out-of-range cluster %d (image has %d clusters); chain ends here",
				current, next, img.geom.TotalClusters))
			break
		}

		if img.InRange(next) && img.Classify(next) == ClassBad {
			spliced := uint16(next) + 1
			img.SetEntry(current, spliced)
			rep.Add(fatfsckerrors.BadClusterInChain, ownerPath, fmt.Sprintf(
				"cluster %d is marked bad and was removed from the chain; link now points to cluster %d",
				next, spliced))
			current = ClusterID(spliced)
			continue
		}

		current = next
	}

	return chain
}
