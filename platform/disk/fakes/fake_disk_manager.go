package fakes

import (
	boshdisk "github.com/disktools/disk-migrator/platform/disk"
)

type FakeDiskManager struct {
	FakePartitioner    *FakePartitioner
	FakeFormatter      *FakeFormatter
	FakeMounter        *FakeMounter
	FakeMountsSearcher *FakeMountsSearcher
	FakeUUIDResolver   *FakeUUIDResolver
}

func NewFakeDiskManager() *FakeDiskManager {
	return &FakeDiskManager{
		FakePartitioner:    NewFakePartitioner(),
		FakeFormatter:      NewFakeFormatter(),
		FakeMounter:        NewFakeMounter(),
		FakeMountsSearcher: &FakeMountsSearcher{},
		FakeUUIDResolver:   NewFakeUUIDResolver(),
	}
}

func (m *FakeDiskManager) GetPartitioner() boshdisk.Partitioner       { return m.FakePartitioner }
func (m *FakeDiskManager) GetFormatter() boshdisk.Formatter           { return m.FakeFormatter }
func (m *FakeDiskManager) GetMounter() boshdisk.Mounter               { return m.FakeMounter }
func (m *FakeDiskManager) GetMountsSearcher() boshdisk.MountsSearcher { return m.FakeMountsSearcher }
func (m *FakeDiskManager) GetUUIDResolver() boshdisk.UUIDResolver     { return m.FakeUUIDResolver }
