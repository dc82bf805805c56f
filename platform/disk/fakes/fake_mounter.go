package fakes

import (
	boshdisk "github.com/disktools/disk-migrator/platform/disk"
)

type FakeMounter struct {
	MountCalled         bool
	MountPartitionPaths []string
	MountMountPoints    []string
	MountMountOptions   [][]string
	MountErr            error

	MountAllCalled bool
	MountAllErr    error

	UnmountPartitionPathsOrMountPoints []string
	UnmountModes                       []boshdisk.UnmountMode
	UnmountDidUnmount                  bool
	UnmountErrsByPath                  map[string]error

	IsMountPointPartitionPaths map[string]string
	IsMountPointErr            error

	IsMountedResults map[string]bool
	IsMountedErr     error
}

func NewFakeMounter() *FakeMounter {
	return &FakeMounter{
		UnmountDidUnmount:          true,
		UnmountErrsByPath:          make(map[string]error),
		IsMountPointPartitionPaths: make(map[string]string),
		IsMountedResults:           make(map[string]bool),
	}
}

func (m *FakeMounter) Mount(partitionPath, mountPoint string, mountOptions ...string) error {
	m.MountCalled = true
	m.MountPartitionPaths = append(m.MountPartitionPaths, partitionPath)
	m.MountMountPoints = append(m.MountMountPoints, mountPoint)
	m.MountMountOptions = append(m.MountMountOptions, mountOptions)
	return m.MountErr
}

func (m *FakeMounter) MountAll() error {
	m.MountAllCalled = true
	return m.MountAllErr
}

func (m *FakeMounter) Unmount(partitionOrMountPoint string, mode boshdisk.UnmountMode) (bool, error) {
	m.UnmountPartitionPathsOrMountPoints = append(m.UnmountPartitionPathsOrMountPoints, partitionOrMountPoint)
	m.UnmountModes = append(m.UnmountModes, mode)
	if err, found := m.UnmountErrsByPath[partitionOrMountPoint]; found {
		return false, err
	}
	return m.UnmountDidUnmount, nil
}

func (m *FakeMounter) IsMountPoint(path string) (string, bool, error) {
	partitionPath, found := m.IsMountPointPartitionPaths[path]
	return partitionPath, found, m.IsMountPointErr
}

func (m *FakeMounter) IsMounted(devicePathOrMountPoint string) (bool, error) {
	return m.IsMountedResults[devicePathOrMountPoint], m.IsMountedErr
}
