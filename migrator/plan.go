package migrator

import (
	"os"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"

	boshdisk "github.com/disktools/disk-migrator/platform/disk"
)

const (
	DefaultDevicePath = "/dev/sdb"
	DefaultStageDir   = "/mnt/disk-migrator"
	DefaultLockPath   = "/var/run/disk-migrator.lock"
	DefaultFstabPath  = "/etc/fstab"
)

// PartitionTarget binds one mount point to one partition of the new device.
type PartitionTarget struct {
	MountPoint   string
	Label        string
	StartPercent uint
	EndPercent   uint

	// Directories recreated empty on the destination, relative to the
	// mount point, with fixed modes. Covers paths the copy excludes but
	// consumers expect to exist (package manager skeleton, tmp, run).
	SkeletonDirs map[string]os.FileMode
}

// Plan is the immutable description of one migration run.
type Plan struct {
	Name       string
	DevicePath string

	FsType        boshdisk.FileSystemType
	FormatOptions boshdisk.FormatOptions

	// Copy exclusion patterns, relative to each source mount point.
	Excludes []string

	Targets []PartitionTarget

	// Service stop order; the container runtime is always quiesced first.
	Services []string

	StageDir  string
	LockPath  string
	FstabPath string
}

// stop order: the container runtime goes down first so its workloads release
// the mount before the databases and web servers are touched.
var defaultServices = []string{
	"docker",
	"postgresql",
	"mysql",
	"mariadb",
	"redis-server",
	"rabbitmq-server",
	"nginx",
	"apache2",
}

var varSkeletonDirs = map[string]os.FileMode{
	"lib/dpkg/updates":           0755,
	"lib/apt/lists/partial":      0755,
	"cache/apt/archives/partial": 0755,
	"tmp":                        os.FileMode(0777) | os.ModeSticky,
	"run":                        0755,
	"lock":                       os.FileMode(0777) | os.ModeSticky,
}

func builtinPlans() map[string]Plan {
	return map[string]Plan{
		"root": {
			Name:       "root",
			DevicePath: DefaultDevicePath,
			FsType:     boshdisk.FileSystemExt4,
			FormatOptions: boshdisk.FormatOptions{
				BytesPerInode:        16384,
				ReservedBlockPercent: 1,
			},
			Excludes: []string{"lost+found", ".cache/*"},
			Targets: []PartitionTarget{
				{MountPoint: "/root", Label: "root", StartPercent: 0, EndPercent: 100},
			},
			Services:  defaultServices,
			StageDir:  DefaultStageDir,
			LockPath:  DefaultLockPath,
			FstabPath: DefaultFstabPath,
		},
		"home": {
			Name:       "home",
			DevicePath: DefaultDevicePath,
			FsType:     boshdisk.FileSystemExt4,
			FormatOptions: boshdisk.FormatOptions{
				BytesPerInode:        16384,
				ReservedBlockPercent: 1,
			},
			Excludes: []string{"lost+found", "*/.cache/*"},
			Targets: []PartitionTarget{
				{MountPoint: "/home", Label: "home", StartPercent: 0, EndPercent: 100},
			},
			Services:  defaultServices,
			StageDir:  DefaultStageDir,
			LockPath:  DefaultLockPath,
			FstabPath: DefaultFstabPath,
		},
		"var": {
			Name:       "var",
			DevicePath: DefaultDevicePath,
			FsType:     boshdisk.FileSystemExt4,
			FormatOptions: boshdisk.FormatOptions{
				BytesPerInode:        8192,
				ReservedBlockPercent: 2,
			},
			Excludes: []string{"lost+found", "run/*", "lock/*", "tmp/*", "cache/apt/archives/*"},
			Targets: []PartitionTarget{
				{MountPoint: "/var", Label: "var", StartPercent: 0, EndPercent: 100, SkeletonDirs: varSkeletonDirs},
			},
			Services:  defaultServices,
			StageDir:  DefaultStageDir,
			LockPath:  DefaultLockPath,
			FstabPath: DefaultFstabPath,
		},
		"root-var": {
			Name:       "root-var",
			DevicePath: DefaultDevicePath,
			FsType:     boshdisk.FileSystemExt4,
			FormatOptions: boshdisk.FormatOptions{
				BytesPerInode:        8192,
				ReservedBlockPercent: 2,
			},
			Excludes: []string{"lost+found", "run/*", "lock/*", "tmp/*", "cache/apt/archives/*", ".cache/*"},
			Targets: []PartitionTarget{
				{MountPoint: "/root", Label: "root", StartPercent: 0, EndPercent: 50},
				{MountPoint: "/var", Label: "var", StartPercent: 50, EndPercent: 100, SkeletonDirs: varSkeletonDirs},
			},
			Services:  defaultServices,
			StageDir:  DefaultStageDir,
			LockPath:  DefaultLockPath,
			FstabPath: DefaultFstabPath,
		},
	}
}

// PlanNames lists the builtin migration targets in CLI order.
func PlanNames() []string {
	return []string{"root", "home", "var", "root-var"}
}

// PlanFor resolves a builtin plan by target name.
func PlanFor(name string) (Plan, error) {
	plan, found := builtinPlans()[name]
	if !found {
		return Plan{}, bosherr.Errorf("Unknown migration target `%s'", name)
	}
	return plan, nil
}
