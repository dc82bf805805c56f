package disk

import (
	"fmt"
	"strings"
)

// PercentPartition describes one GPT partition as a percent range of the
// whole device, the granularity parted accepts without knowing the device
// size up front.
type PercentPartition struct {
	Label        string
	StartPercent uint
	EndPercent   uint
}

func (p PercentPartition) String() string {
	return fmt.Sprintf("[Label: %s, Range: %d%%-%d%%]", p.Label, p.StartPercent, p.EndPercent)
}

type Partitioner interface {
	ClearPartitionTable(devicePath string) (err error)
	PartitionByPercent(devicePath string, partitions []PercentPartition) (err error)
	GetDeviceSizeInBytes(devicePath string) (size uint64, err error)
}

// PartitionPath returns the device node of the Nth partition (1-based).
// Devices whose name ends in a digit (nvme0n1, mmcblk0, loop0) get a "p"
// separator, plain sd/vd devices do not.
func PartitionPath(devicePath string, index int) string {
	if strings.ContainsAny(devicePath[len(devicePath)-1:], "0123456789") {
		return fmt.Sprintf("%sp%d", devicePath, index)
	}
	return fmt.Sprintf("%s%d", devicePath, index)
}
