package migrator

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	boshdisk "github.com/disktools/disk-migrator/platform/disk"
	boshstats "github.com/disktools/disk-migrator/platform/stats"
)

// collectUsage snapshots disk usage per mount point before the run so the
// final report can show the before/after picture. Best-effort: a mount
// point that cannot be measured is simply missing from the report.
func (m Migrator) collectUsage(plan Plan) map[string]boshstats.DiskUsage {
	usage := map[string]boshstats.DiskUsage{}

	for _, target := range plan.Targets {
		u, err := m.statsCollector.GetDiskUsage(target.MountPoint)
		if err != nil {
			m.logger.Warn(migratorLogTag, "Failed to collect disk usage for %s: %s", target.MountPoint, err)
			continue
		}
		usage[target.MountPoint] = u
	}

	return usage
}

func (m Migrator) report(plan Plan, beforeUsage map[string]boshstats.DiskUsage) {
	fmt.Fprintf(m.out, "\nMigration `%s' to %s complete.\n\n", plan.Name, plan.DevicePath)

	for i, target := range plan.Targets {
		partitionPath := m.partitionPath(plan, i)
		fmt.Fprintf(m.out, "%s on %s", target.MountPoint, partitionPath)

		_, mounted, err := m.diskManager.GetMounter().IsMountPoint(target.MountPoint)
		if err != nil {
			m.logger.Warn(migratorLogTag, "Failed to check mount state of %s: %s", target.MountPoint, err)
			fmt.Fprintf(m.out, " (mount state unknown)\n")
		} else if mounted {
			fmt.Fprintf(m.out, " (mounted)\n")
		} else {
			fmt.Fprintf(m.out, " (NOT MOUNTED)\n")
		}

		if before, found := beforeUsage[target.MountPoint]; found {
			fmt.Fprintf(m.out, "  before: %s used of %s (%.1f%%)\n",
				humanize.IBytes(before.UsedBytes), humanize.IBytes(before.TotalBytes), before.Percent)
		}

		after, err := m.statsCollector.GetDiskUsage(target.MountPoint)
		if err != nil {
			m.logger.Warn(migratorLogTag, "Failed to collect disk usage for %s: %s", target.MountPoint, err)
		} else {
			fmt.Fprintf(m.out, "  after:  %s used of %s (%.1f%%), %s free\n",
				humanize.IBytes(after.UsedBytes), humanize.IBytes(after.TotalBytes), after.Percent,
				humanize.IBytes(after.AvailBytes))
		}
	}

	fmt.Fprintf(m.out, "\nServices:\n")
	for _, name := range plan.Services {
		active, err := m.serviceManager.IsActive(name)
		if err != nil {
			continue
		}
		state := "inactive"
		if active {
			state = "active"
		}
		fmt.Fprintf(m.out, "  %-20s %s\n", name, state)
	}

	m.reportFstabEntries(plan)
	m.reportMounts(plan)
}

func (m Migrator) reportFstabEntries(plan Plan) {
	entries, err := m.fstabEditor.ActiveEntries()
	if err != nil {
		m.logger.Warn(migratorLogTag, "Failed to read mount configuration for report: %s", err)
		return
	}

	migrated := map[string]bool{}
	for _, target := range plan.Targets {
		migrated[target.MountPoint] = true
	}

	printedHeader := false
	for _, entry := range entries {
		if !migrated[entry.MountPoint] {
			continue
		}
		if !printedHeader {
			fmt.Fprintf(m.out, "\nMount configuration:\n")
			printedHeader = true
		}
		fmt.Fprintf(m.out, "  %s\n", entry.String())
	}
}

func (m Migrator) reportMounts(plan Plan) {
	mounts, err := m.diskManager.GetMountsSearcher().SearchMounts()
	if err != nil {
		m.logger.Warn(migratorLogTag, "Failed to list mounts for report: %s", err)
		return
	}

	var deviceMounts []boshdisk.Mount
	for _, mount := range mounts {
		if mount.IsDeviceBacked() && strings.HasPrefix(mount.PartitionPath, plan.DevicePath) {
			deviceMounts = append(deviceMounts, mount)
		}
	}
	if len(deviceMounts) == 0 {
		return
	}

	fmt.Fprintf(m.out, "\nDevice mounts:\n")
	for _, mount := range deviceMounts {
		fmt.Fprintf(m.out, "  %s %s %s %s\n", mount.PartitionPath, mount.MountPoint, mount.Type, mount.Options)
	}
}
