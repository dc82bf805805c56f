package fakes

import (
	boshdisk "github.com/disktools/disk-migrator/platform/disk"
)

type FakeFormatter struct {
	GetFileSystemType map[string]boshdisk.FileSystemType

	FormatCalled         bool
	FormatPartitionPaths []string
	FormatFsTypes        []boshdisk.FileSystemType
	FormatOpts           []boshdisk.FormatOptions
	FormatError          error
}

func NewFakeFormatter() *FakeFormatter {
	return &FakeFormatter{
		GetFileSystemType: make(map[string]boshdisk.FileSystemType),
	}
}

func (f *FakeFormatter) Format(partitionPath string, fsType boshdisk.FileSystemType, opts boshdisk.FormatOptions) error {
	f.FormatCalled = true
	f.FormatPartitionPaths = append(f.FormatPartitionPaths, partitionPath)
	f.FormatFsTypes = append(f.FormatFsTypes, fsType)
	f.FormatOpts = append(f.FormatOpts, opts)
	return f.FormatError
}

func (f *FakeFormatter) GetPartitionFormatType(partitionPath string) (boshdisk.FileSystemType, error) {
	return f.GetFileSystemType[partitionPath], nil
}
