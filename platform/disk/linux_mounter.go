package disk

import (
	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

const linuxMounterLogTag = "LinuxMounter"

type linuxMounter struct {
	runner         boshsys.CmdRunner
	mountsSearcher MountsSearcher
	logger         boshlog.Logger
}

func NewLinuxMounter(runner boshsys.CmdRunner, mountsSearcher MountsSearcher, logger boshlog.Logger) Mounter {
	return linuxMounter{
		runner:         runner,
		mountsSearcher: mountsSearcher,
		logger:         logger,
	}
}

func (m linuxMounter) Mount(partitionPath, mountPoint string, mountOptions ...string) error {
	isMounted, err := m.IsMounted(mountPoint)
	if err != nil {
		return bosherr.WrapErrorf(err, "Checking whether `%s' is mounted", mountPoint)
	}
	if isMounted {
		return bosherr.Errorf("Mount point `%s' is already in use", mountPoint)
	}

	mountArgs := []string{partitionPath, mountPoint}
	for _, option := range mountOptions {
		mountArgs = append(mountArgs, "-o", option)
	}

	_, _, _, err = m.runner.RunCommand("mount", mountArgs...)
	if err != nil {
		return bosherr.WrapError(err, "Shelling out to mount")
	}

	return nil
}

func (m linuxMounter) MountAll() error {
	_, _, _, err := m.runner.RunCommand("mount", "-a")
	if err != nil {
		return bosherr.WrapError(err, "Shelling out to mount -a")
	}

	return nil
}

// Unmount treats "not mounted" as success. In UnmountLazy mode a failed
// plain unmount escalates to a lazy one, which detaches the mount even
// while processes still hold files open.
func (m linuxMounter) Unmount(partitionOrMountPoint string, mode UnmountMode) (bool, error) {
	isMounted, err := m.IsMounted(partitionOrMountPoint)
	if err != nil {
		return false, bosherr.WrapErrorf(err, "Checking whether `%s' is mounted", partitionOrMountPoint)
	}
	if !isMounted {
		return false, nil
	}

	_, _, _, err = m.runner.RunCommand("umount", partitionOrMountPoint)
	if err == nil {
		return true, nil
	}

	if mode != UnmountLazy {
		return false, bosherr.WrapErrorf(err, "Unmounting `%s'", partitionOrMountPoint)
	}

	m.logger.Warn(linuxMounterLogTag, "Plain unmount of `%s' failed, retrying lazily: %s", partitionOrMountPoint, err)

	_, _, _, err = m.runner.RunCommand("umount", "-l", partitionOrMountPoint)
	if err != nil {
		return false, bosherr.WrapErrorf(err, "Lazily unmounting `%s'", partitionOrMountPoint)
	}

	return true, nil
}

func (m linuxMounter) IsMountPoint(path string) (string, bool, error) {
	mounts, err := m.mountsSearcher.SearchMounts()
	if err != nil {
		return "", false, bosherr.WrapError(err, "Searching mounts")
	}

	for _, mount := range mounts {
		if mount.MountPoint == path {
			return mount.PartitionPath, true, nil
		}
	}

	return "", false, nil
}

func (m linuxMounter) IsMounted(devicePathOrMountPoint string) (bool, error) {
	mounts, err := m.mountsSearcher.SearchMounts()
	if err != nil {
		return false, bosherr.WrapError(err, "Searching mounts")
	}

	for _, mount := range mounts {
		if mount.PartitionPath == devicePathOrMountPoint || mount.MountPoint == devicePathOrMountPoint {
			return true, nil
		}
	}

	return false, nil
}
