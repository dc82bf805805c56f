package stats

import (
	sigar "github.com/cloudfoundry/gosigar"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
)

type sigarStatsCollector struct{}

func NewSigarStatsCollector() Collector {
	return sigarStatsCollector{}
}

func (c sigarStatsCollector) GetDiskUsage(path string) (DiskUsage, error) {
	fsUsage := sigar.FileSystemUsage{}

	err := fsUsage.Get(path)
	if err != nil {
		return DiskUsage{}, bosherr.WrapErrorf(err, "Getting filesystem usage of '%s'", path)
	}

	return DiskUsage{
		TotalBytes: fsUsage.Total * 1024,
		UsedBytes:  fsUsage.Used * 1024,
		AvailBytes: fsUsage.Avail * 1024,
		Percent:    fsUsage.UsePercent(),
	}, nil
}
