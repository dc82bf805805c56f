package stats

// DiskUsage describes space consumption of the filesystem holding a path.
type DiskUsage struct {
	TotalBytes uint64
	UsedBytes  uint64
	AvailBytes uint64
	Percent    float64
}

type Collector interface {
	GetDiskUsage(path string) (usage DiskUsage, err error)
}
