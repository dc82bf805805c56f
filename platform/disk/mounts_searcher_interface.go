package disk

import "strings"

type Mount struct {
	PartitionPath string
	MountPoint    string
	Type          string
	Options       string
}

func (m Mount) IsDeviceBacked() bool {
	return strings.HasPrefix(m.PartitionPath, "/dev/")
}

type MountsSearcher interface {
	SearchMounts() ([]Mount, error)
}
