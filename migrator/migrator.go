package migrator

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"code.cloudfoundry.org/clock"
	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	"github.com/dustin/go-humanize"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"

	boshcmds "github.com/disktools/disk-migrator/platform/commands"
	boshdisk "github.com/disktools/disk-migrator/platform/disk"
	boshfstab "github.com/disktools/disk-migrator/platform/fstab"
	boshstats "github.com/disktools/disk-migrator/platform/stats"
	boshsvc "github.com/disktools/disk-migrator/servicemanager"
)

const (
	migratorLogTag = "Migrator"

	// the runtime is special-cased in quiesce/restart ordering
	runtimeServiceName = "docker"

	fstabOptions  = "defaults"
	fstabPassNum  = 2
	backupSuffix  = ".premigration-"
	timeLayout    = "20060102-150405"
	mountPointDir = 0755
)

type MigratorOpts struct {
	// Answer yes to every confirmation prompt.
	AssumeYes bool
}

type Migrator struct {
	fs             boshsys.FileSystem
	cmdRunner      boshsys.CmdRunner
	diskManager    boshdisk.Manager
	treeSyncer     boshcmds.TreeSyncer
	serviceManager boshsvc.ServiceManager
	runtimeManager boshsvc.RuntimeManager
	statsCollector boshstats.Collector
	fstabEditor    boshfstab.Editor
	locker         Locker
	fileCounter    FileCounter
	prompter       Prompter
	timeService    clock.Clock
	out            io.Writer
	opts           MigratorOpts
	logger         boshlog.Logger
}

func New(
	fs boshsys.FileSystem,
	cmdRunner boshsys.CmdRunner,
	diskManager boshdisk.Manager,
	treeSyncer boshcmds.TreeSyncer,
	serviceManager boshsvc.ServiceManager,
	runtimeManager boshsvc.RuntimeManager,
	statsCollector boshstats.Collector,
	fstabEditor boshfstab.Editor,
	locker Locker,
	fileCounter FileCounter,
	prompter Prompter,
	timeService clock.Clock,
	out io.Writer,
	opts MigratorOpts,
	logger boshlog.Logger,
) Migrator {
	return Migrator{
		fs:             fs,
		cmdRunner:      cmdRunner,
		diskManager:    diskManager,
		treeSyncer:     treeSyncer,
		serviceManager: serviceManager,
		runtimeManager: runtimeManager,
		statsCollector: statsCollector,
		fstabEditor:    fstabEditor,
		locker:         locker,
		fileCounter:    fileCounter,
		prompter:       prompter,
		timeService:    timeService,
		out:            out,
		opts:           opts,
		logger:         logger,
	}
}

// runState carries what the quiesce phase learned forward to the restart
// phase: only what was stopped gets started again.
type runState struct {
	stoppedServices []string
	containerIDs    []string
}

// Migrate runs the phases in strict order. Phases are individually
// idempotent-ish but the pipeline is not transactional: once partitioning
// begins there is no automatic rollback, only the backup directory and the
// fstab backup for manual recovery.
func (m Migrator) Migrate(plan Plan) error {
	m.logger.Info(migratorLogTag, "Migrating %s to %s", strings.Join(m.mountPoints(plan), ", "), plan.DevicePath)

	beforeUsage := m.collectUsage(plan)

	err := m.preflight(plan, beforeUsage)
	if err != nil {
		return err
	}

	err = m.locker.Acquire(plan.DevicePath)
	if err != nil {
		return err
	}
	defer m.locker.Release()

	state := &runState{}
	m.quiesceServices(plan, state)

	err = m.unmountDevice(plan)
	if err != nil {
		return err
	}

	err = m.partitionAndFormat(plan)
	if err != nil {
		return NewError(KindPartitionOrFormatFailure, err)
	}

	stagePaths, err := m.stageCopy(plan)
	if err != nil {
		return err
	}

	err = m.verifyCopy(plan, stagePaths)
	if err != nil {
		return err
	}

	timestamp := m.timeService.Now().UTC().Format(timeLayout)

	err = m.mountSwap(plan, stagePaths, timestamp)
	if err != nil {
		return err
	}

	err = m.updateMountConfig(plan, timestamp)
	if err != nil {
		return err
	}

	m.restartServices(plan, state)
	m.report(plan, beforeUsage)

	return nil
}

func (m Migrator) preflight(plan Plan, beforeUsage map[string]boshstats.DiskUsage) error {
	stdout, _, _, err := m.cmdRunner.RunCommand("id", "-u")
	if err != nil {
		return bosherr.WrapError(err, "Checking effective user")
	}
	if strings.TrimSpace(stdout) != "0" {
		return NewError(KindPermissionDenied, bosherr.Error("Migration must run as root"))
	}

	if !m.fs.FileExists(plan.DevicePath) {
		return NewError(KindDeviceNotFound, bosherr.Errorf("Device `%s' not found", plan.DevicePath))
	}

	err = m.checkCapacity(plan, beforeUsage)
	if err != nil {
		return err
	}

	mounted, err := m.devicePartitionsMounted(plan)
	if err != nil {
		return err
	}
	if len(mounted) > 0 {
		m.logger.Warn(migratorLogTag, "Device %s has mounted partitions: %s", plan.DevicePath, strings.Join(mounted, ", "))

		confirmed, err := m.confirm(fmt.Sprintf("Device %s is mounted and will be wiped. Continue?", plan.DevicePath))
		if err != nil {
			return err
		}
		if !confirmed {
			return bosherr.Error("Aborted by operator at preflight")
		}
	}

	return nil
}

func (m Migrator) checkCapacity(plan Plan, beforeUsage map[string]boshstats.DiskUsage) error {
	size, err := m.diskManager.GetPartitioner().GetDeviceSizeInBytes(plan.DevicePath)
	if err != nil {
		m.logger.Warn(migratorLogTag, "Failed to determine size of %s: %s", plan.DevicePath, err)
		return nil
	}

	var required uint64
	for _, usage := range beforeUsage {
		required += usage.UsedBytes
	}

	m.logger.Info(migratorLogTag, "Device %s holds %s, data to copy is %s",
		plan.DevicePath, humanize.IBytes(size), humanize.IBytes(required))

	if size >= required {
		return nil
	}

	confirmed, err := m.confirm(fmt.Sprintf(
		"Device %s (%s) is smaller than the %s to copy. Continue?",
		plan.DevicePath, humanize.IBytes(size), humanize.IBytes(required)))
	if err != nil {
		return err
	}
	if !confirmed {
		return bosherr.Error("Aborted by operator at preflight")
	}

	return nil
}

func (m Migrator) devicePartitionsMounted(plan Plan) ([]string, error) {
	mounts, err := m.diskManager.GetMountsSearcher().SearchMounts()
	if err != nil {
		return nil, bosherr.WrapError(err, "Searching mounts")
	}

	var mounted []string
	for _, mount := range mounts {
		if mount.IsDeviceBacked() && strings.HasPrefix(mount.PartitionPath, plan.DevicePath) {
			mounted = append(mounted, mount.MountPoint)
		}
	}

	return mounted, nil
}

// quiesceServices stops every active service in plan order, the container
// runtime first so its workloads release the source mount before anything
// else is touched. Stop failures are warnings, never fatal.
func (m Migrator) quiesceServices(plan Plan, state *runState) {
	for _, name := range plan.Services {
		active, err := m.serviceManager.IsActive(name)
		if err != nil {
			m.logger.Warn(migratorLogTag, "Failed to query %s: %s", name, err)
			continue
		}
		if !active {
			continue
		}

		if name == runtimeServiceName {
			ids, err := m.runtimeManager.RunningContainers()
			if err != nil {
				m.logger.Warn(migratorLogTag, "Failed to list containers: %s", err)
			} else {
				state.containerIDs = ids
			}

			err = m.runtimeManager.StopAll()
			if err != nil {
				m.logger.Warn(migratorLogTag, "Failed to stop containers: %s", err)
			}
		}

		m.logger.Info(migratorLogTag, "Stopping service %s", name)

		err = m.serviceManager.Stop(name)
		if err != nil {
			m.logger.Warn(migratorLogTag, "Failed to stop %s: %s", name, err)
		}

		if name == runtimeServiceName {
			stillActive, err := m.serviceManager.IsActive(name)
			if err == nil && stillActive {
				m.logger.Warn(migratorLogTag, "%s still active after stop, force-killing", name)

				err = m.serviceManager.Kill(name)
				if err != nil {
					m.logger.Warn(migratorLogTag, "Failed to kill %s: %s", name, err)
				}
			}
		}

		state.stoppedServices = append(state.stoppedServices, name)
	}
}

// unmountDevice detaches anything backed by the target device plus stale
// staging mounts from an earlier run. Not-mounted is success; a stuck
// mount escalates to a lazy unmount before failing the run.
func (m Migrator) unmountDevice(plan Plan) error {
	mounts, err := m.diskManager.GetMountsSearcher().SearchMounts()
	if err != nil {
		return bosherr.WrapError(err, "Searching mounts")
	}

	mounter := m.diskManager.GetMounter()
	for _, mount := range mounts {
		backedByDevice := mount.IsDeviceBacked() && strings.HasPrefix(mount.PartitionPath, plan.DevicePath)
		staleStage := strings.HasPrefix(mount.MountPoint, plan.StageDir)
		if !backedByDevice && !staleStage {
			continue
		}

		m.logger.Info(migratorLogTag, "Unmounting %s from %s", mount.PartitionPath, mount.MountPoint)

		_, err = mounter.Unmount(mount.MountPoint, boshdisk.UnmountLazy)
		if err != nil {
			return bosherr.WrapErrorf(err, "Unmounting `%s'", mount.MountPoint)
		}
	}

	return nil
}

func (m Migrator) partitionAndFormat(plan Plan) error {
	partitioner := m.diskManager.GetPartitioner()

	err := partitioner.ClearPartitionTable(plan.DevicePath)
	if err != nil {
		return err
	}

	var partitions []boshdisk.PercentPartition
	for _, target := range plan.Targets {
		partitions = append(partitions, boshdisk.PercentPartition{
			Label:        target.Label,
			StartPercent: target.StartPercent,
			EndPercent:   target.EndPercent,
		})
	}

	err = partitioner.PartitionByPercent(plan.DevicePath, partitions)
	if err != nil {
		return err
	}

	formatter := m.diskManager.GetFormatter()
	for i := range plan.Targets {
		partitionPath := m.partitionPath(plan, i)

		err = formatter.Format(partitionPath, plan.FsType, plan.FormatOptions)
		if err != nil {
			return err
		}

		formatted, err := formatter.GetPartitionFormatType(partitionPath)
		if err != nil {
			m.logger.Warn(migratorLogTag, "Failed to verify filesystem on %s: %s", partitionPath, err)
		} else if formatted != plan.FsType {
			m.logger.Warn(migratorLogTag, "Expected %s on %s, probe reports %q", plan.FsType, partitionPath, formatted)
		}
	}

	return nil
}

func (m Migrator) stageCopy(plan Plan) ([]string, error) {
	mounter := m.diskManager.GetMounter()

	stagePaths := make([]string, 0, len(plan.Targets))
	for i, target := range plan.Targets {
		stagePath := filepath.Join(plan.StageDir, target.Label)
		stagePaths = append(stagePaths, stagePath)

		err := m.fs.MkdirAll(stagePath, mountPointDir)
		if err != nil {
			return nil, NewError(KindCopyFailure, bosherr.WrapErrorf(err, "Creating staging dir `%s'", stagePath))
		}

		err = mounter.Mount(m.partitionPath(plan, i), stagePath)
		if err != nil {
			return nil, NewError(KindCopyFailure, bosherr.WrapError(err, "Mounting staging partition"))
		}

		m.logger.Info(migratorLogTag, "Copying %s to %s", target.MountPoint, stagePath)

		err = m.treeSyncer.SyncTree(target.MountPoint, stagePath, plan.Excludes)
		if err != nil {
			return nil, NewError(KindCopyFailure, err)
		}

		err = m.recreateSkeleton(target, stagePath)
		if err != nil {
			return nil, NewError(KindCopyFailure, err)
		}
	}

	return stagePaths, nil
}

func (m Migrator) recreateSkeleton(target PartitionTarget, stagePath string) error {
	relPaths := make([]string, 0, len(target.SkeletonDirs))
	for relPath := range target.SkeletonDirs {
		relPaths = append(relPaths, relPath)
	}
	sort.Strings(relPaths)

	for _, relPath := range relPaths {
		mode := target.SkeletonDirs[relPath]
		path := filepath.Join(stagePath, relPath)

		err := m.fs.MkdirAll(path, mode)
		if err != nil {
			return bosherr.WrapErrorf(err, "Recreating `%s'", path)
		}

		// MkdirAll honors the umask; Chmod pins sticky/permission bits
		err = m.fs.Chmod(path, mode)
		if err != nil {
			m.logger.Warn(migratorLogTag, "Failed to chmod %s: %s", path, err)
		}
	}

	return nil
}

// verifyCopy is the 90% threshold check: a destination count of exactly
// 90% of the source passes, anything below prompts the operator.
func (m Migrator) verifyCopy(plan Plan, stagePaths []string) error {
	for i, target := range plan.Targets {
		srcCount, err := m.fileCounter.CountRegularFiles(target.MountPoint)
		if err != nil {
			return bosherr.WrapError(err, "Counting source files")
		}

		dstCount, err := m.fileCounter.CountRegularFiles(stagePaths[i])
		if err != nil {
			return bosherr.WrapError(err, "Counting destination files")
		}

		m.logger.Info(migratorLogTag, "Integrity check for %s: %d of %d files copied", target.MountPoint, dstCount, srcCount)

		if dstCount*10 >= srcCount*9 {
			continue
		}

		m.logger.Warn(migratorLogTag, "Destination %s has %d files, below 90%% of the %d source files", stagePaths[i], dstCount, srcCount)

		confirmed, err := m.confirm(fmt.Sprintf(
			"Copy of %s looks incomplete (%d of %d files). Proceed with the mount swap anyway?",
			target.MountPoint, dstCount, srcCount))
		if err != nil {
			return err
		}
		if !confirmed {
			return NewError(KindIntegrityMismatch, bosherr.Errorf(
				"Destination file count %d below 90%% of source count %d; data left on `%s' for inspection",
				dstCount, srcCount, stagePaths[i]))
		}
	}

	return nil
}

// mountSwap is the point of no return: after the rename-aside the original
// data is only reachable through the backup directory.
func (m Migrator) mountSwap(plan Plan, stagePaths []string, timestamp string) error {
	mounter := m.diskManager.GetMounter()

	for i, target := range plan.Targets {
		backupPath := target.MountPoint + backupSuffix + timestamp

		m.logger.Info(migratorLogTag, "Moving %s aside to %s", target.MountPoint, backupPath)

		err := m.fs.Rename(target.MountPoint, backupPath)
		if err != nil {
			return NewError(KindMountSwapFailure, bosherr.WrapErrorf(err, "Renaming `%s' to `%s'", target.MountPoint, backupPath))
		}

		err = m.fs.MkdirAll(target.MountPoint, mountPointDir)
		if err != nil {
			return NewError(KindMountSwapFailure, bosherr.WrapErrorf(err, "Recreating mount point `%s'", target.MountPoint))
		}

		_, err = mounter.Unmount(stagePaths[i], boshdisk.UnmountLazy)
		if err != nil {
			return NewError(KindMountSwapFailure, bosherr.WrapErrorf(err, "Unmounting staging path `%s'", stagePaths[i]))
		}

		err = mounter.Mount(m.partitionPath(plan, i), target.MountPoint)
		if err != nil {
			return NewError(KindMountSwapFailure, bosherr.WrapErrorf(err, "Mounting new partition at `%s'", target.MountPoint))
		}

		err = m.fs.RemoveAll(stagePaths[i])
		if err != nil {
			m.logger.Warn(migratorLogTag, "Failed to remove staging dir %s: %s", stagePaths[i], err)
		}
	}

	return nil
}

func (m Migrator) updateMountConfig(plan Plan, timestamp string) error {
	resolver := m.diskManager.GetUUIDResolver()

	var entries []boshfstab.Entry
	for i, target := range plan.Targets {
		uuid, err := resolver.ResolveUUID(m.partitionPath(plan, i))
		if err != nil {
			return NewError(KindUUIDResolutionFailure, err)
		}

		entries = append(entries, boshfstab.Entry{
			UUID:       uuid,
			MountPoint: target.MountPoint,
			Type:       string(plan.FsType),
			Options:    fstabOptions,
			Dump:       0,
			Pass:       fstabPassNum,
		})
	}

	backupPath, err := m.fstabEditor.Backup(timestamp)
	if err != nil {
		return NewError(KindConfigUpdateFailure, err)
	}
	m.logger.Info(migratorLogTag, "Backed up mount configuration to %s", backupPath)

	err = m.fstabEditor.Set(entries)
	if err != nil {
		return NewError(KindConfigUpdateFailure, err)
	}

	return nil
}

// restartServices brings back what quiesce stopped, runtime first so its
// workloads can be revived individually. Every failure here is a warning:
// the migration itself already succeeded.
func (m Migrator) restartServices(plan Plan, state *runState) {
	err := m.diskManager.GetMounter().MountAll()
	if err != nil {
		m.logger.Warn(migratorLogTag, "Failed to mount all configured filesystems: %s", err)
	}

	stopped := map[string]bool{}
	for _, name := range state.stoppedServices {
		stopped[name] = true
	}

	if stopped[runtimeServiceName] {
		err = m.serviceManager.Start(runtimeServiceName)
		if err != nil {
			m.logger.Warn(migratorLogTag, "Failed to start %s: %s", runtimeServiceName, err)
		}

		if len(state.containerIDs) > 0 {
			err = m.runtimeManager.StartContainers(state.containerIDs)
			if err != nil {
				m.logger.Warn(migratorLogTag, "Failed to start containers: %s", err)
			}
		}
	}

	for i := len(state.stoppedServices) - 1; i >= 0; i-- {
		name := state.stoppedServices[i]
		if name == runtimeServiceName {
			continue
		}

		m.logger.Info(migratorLogTag, "Starting service %s", name)

		err = m.serviceManager.Start(name)
		if err != nil {
			m.logger.Warn(migratorLogTag, "Failed to start %s: %s", name, err)
		}
	}
}

func (m Migrator) confirm(question string) (bool, error) {
	if m.opts.AssumeYes {
		return true, nil
	}
	return m.prompter.Confirm(question)
}

func (m Migrator) partitionPath(plan Plan, targetIndex int) string {
	return boshdisk.PartitionPath(plan.DevicePath, targetIndex+1)
}

func (m Migrator) mountPoints(plan Plan) []string {
	points := make([]string, 0, len(plan.Targets))
	for _, target := range plan.Targets {
		points = append(points, target.MountPoint)
	}
	return points
}
