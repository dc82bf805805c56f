package fakes

import (
	boshstats "github.com/disktools/disk-migrator/platform/stats"
)

type FakeCollector struct {
	DiskUsages       map[string]boshstats.DiskUsage
	GetDiskUsageErr  error
	GetDiskUsagePath []string
}

func NewFakeCollector() *FakeCollector {
	return &FakeCollector{DiskUsages: make(map[string]boshstats.DiskUsage)}
}

func (c *FakeCollector) GetDiskUsage(path string) (boshstats.DiskUsage, error) {
	c.GetDiskUsagePath = append(c.GetDiskUsagePath, path)
	return c.DiskUsages[path], c.GetDiskUsageErr
}
