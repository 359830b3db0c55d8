package fat12

// ClusterID identifies a cluster in the data region. Valid data clusters
// start at 2; 0 and 1 are reserved and never hold file data.
type ClusterID uint32

// Geom holds the values C2 derives from the BPB as pure functions of it:
// cluster size, FAT location, root-directory location, and data region
// start. Read-only for the life of a scan.
type Geom struct {
	ClusterSize   uint32
	FATBase       uint32
	RootDirBase   uint32
	DataBase      uint32
	TotalClusters uint32
}

// NewGeom derives the geometry of an image from its decoded BPB.
func NewGeom(bpb BPB) Geom {
	clusterSize := uint32(bpb.BytesPerSector) * uint32(bpb.SectorsPerCluster)
	fatBase := uint32(bpb.ReservedSectors) * uint32(bpb.BytesPerSector)
	rootDirBase := fatBase + uint32(bpb.NumFATs)*uint32(bpb.SectorsPerFAT)*uint32(bpb.BytesPerSector)
	dataBase := rootDirBase + uint32(bpb.RootDirEntries)*dirEntrySize
	totalClusters := bpb.TotalSectors / uint32(bpb.SectorsPerCluster)

	return Geom{
		ClusterSize:   clusterSize,
		FATBase:       fatBase,
		RootDirBase:   rootDirBase,
		DataBase:      dataBase,
		TotalClusters: totalClusters,
	}
}

// ClusterToAddr returns the byte offset of the start of cluster n. n == 0 is
// a convention used only to obtain the root-directory entry stream; it is
// not a valid data cluster.
func (g Geom) ClusterToAddr(n ClusterID) uint32 {
	if n == 0 {
		return g.RootDirBase
	}
	return g.DataBase + (uint32(n)-2)*g.ClusterSize
}
