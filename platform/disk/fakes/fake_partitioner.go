package fakes

import (
	boshdisk "github.com/disktools/disk-migrator/platform/disk"
)

type FakePartitioner struct {
	ClearPartitionTableCalled     bool
	ClearPartitionTableDevicePath string
	ClearPartitionTableErr        error

	PartitionByPercentCalled     bool
	PartitionByPercentDevicePath string
	PartitionByPercentPartitions []boshdisk.PercentPartition
	PartitionByPercentErr        error

	GetDeviceSizeInBytesDevicePath string
	GetDeviceSizeInBytesSizes      map[string]uint64
	GetDeviceSizeInBytesErr        error
}

func NewFakePartitioner() *FakePartitioner {
	return &FakePartitioner{
		GetDeviceSizeInBytesSizes: make(map[string]uint64),
	}
}

func (p *FakePartitioner) ClearPartitionTable(devicePath string) error {
	p.ClearPartitionTableCalled = true
	p.ClearPartitionTableDevicePath = devicePath
	return p.ClearPartitionTableErr
}

func (p *FakePartitioner) PartitionByPercent(devicePath string, partitions []boshdisk.PercentPartition) error {
	p.PartitionByPercentCalled = true
	p.PartitionByPercentDevicePath = devicePath
	p.PartitionByPercentPartitions = partitions
	return p.PartitionByPercentErr
}

func (p *FakePartitioner) GetDeviceSizeInBytes(devicePath string) (uint64, error) {
	p.GetDeviceSizeInBytesDevicePath = devicePath
	return p.GetDeviceSizeInBytesSizes[devicePath], p.GetDeviceSizeInBytesErr
}
