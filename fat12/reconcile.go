package fat12

import (
	"fmt"

	fatfsckerrors "github.com/fat12fsck/fat12fsck/fat12/errors"
	"github.com/fat12fsck/fat12fsck/fat12/report"
)

// ceilDivClusters returns ceil(size / clusterSize).
func ceilDivClusters(size, clusterSize uint32) uint32 {
	return (size + clusterSize - 1) / clusterSize
}

// Reconcile compares entry's recorded file size against the actual length
// of chain and repairs whichever side disagrees, per spec.md §4.6. The
// chain itself must already reflect any bad-cluster splicing or truncation
// WalkChain performed; Reconcile only ever shortens the FAT side further
// (never re-walks) or rewrites the recorded size to match the chain.
func (img *Image) Reconcile(entry *DirEntry, chain []ClusterID, ownerPath string, rep *report.Report) {
	clusterSize := img.geom.ClusterSize
	metaClusters := ceilDivClusters(entry.FileSize, clusterSize)
	fatClusters := uint32(len(chain))

	if fatClusters == metaClusters {
		return
	}

	// An allocated-but-zero-length file (fileSize == 0, but startCluster
	// names a real IN-USE cluster) has metaClusters == 0 while fatClusters
	// is at least 1. There is no cluster at which to "truncate to zero", so
	// this is handled as a metadata-too-small correction, not a too-long
	// chain (spec.md §8 boundary behaviors).
	if metaClusters == 0 && fatClusters > 0 {
		img.growMetadataSize(entry, fatClusters, clusterSize, ownerPath, rep)
		return
	}

	if fatClusters > metaClusters {
		img.truncateChain(chain, metaClusters, ownerPath, rep)
		return
	}

	img.growMetadataSize(entry, fatClusters, clusterSize, ownerPath, rep)
}

// truncateChain implements spec.md §4.6 case (2): chain too long. The
// cluster at index metaClusters-1 (1-indexed: the metaClusters-th cluster)
// becomes the new end-of-chain; every cluster after it is freed. Next
// pointers are read before being overwritten so the walk isn't
// desynchronized by its own writes.
func (img *Image) truncateChain(chain []ClusterID, metaClusters uint32, ownerPath string, rep *report.Report) {
	lastKept := chain[metaClusters-1]
	nextAfterKept := img.GetEntry(lastKept)
	img.SetEntry(lastKept, endOfChain)

	freed := make([]ClusterID, 0, len(chain)-int(metaClusters))
	cur := ClusterID(nextAfterKept)
	for i := metaClusters; i < uint32(len(chain)); i++ {
		next := img.GetEntry(cur)
		img.SetEntry(cur, 0x000)
		freed = append(freed, cur)
		cur = ClusterID(next)
	}

	rep.Add(fatfsckerrors.ChainTooLong, ownerPath,
		"file size in the metadata is smaller than the cluster chain length for the file would suggest",
		fmt.Sprintf("cluster %d changed to end-of-chain", lastKept),
		fmt.Sprintf("clusters freed: %v", freed))
}

// growMetadataSize implements spec.md §4.6 case (3): metadata too large (or
// the zero-length-but-allocated boundary case). fileSize is rewritten in
// full as a 32-bit little-endian field through the directory entry's
// symmetric accessor.
func (img *Image) growMetadataSize(entry *DirEntry, fatClusters, clusterSize uint32, ownerPath string, rep *report.Report) {
	oldSize := entry.FileSize
	newSize := fatClusters * clusterSize
	img.setFileSize(entry, newSize)

	rep.Add(fatfsckerrors.MetadataSizeTooLarge, ownerPath,
		"file size in the metadata is larger than the cluster chain for the file would suggest",
		fmt.Sprintf("file size changed from %d to %d (%d clusters)", oldSize, newSize, fatClusters))
}
