package disk

import (
	"fmt"
	"regexp"
	"strings"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

const ext4FormatterLogTag = "Ext4Formatter"

type ext4Formatter struct {
	runner boshsys.CmdRunner
	fs     boshsys.FileSystem
	logger boshlog.Logger
}

func NewExt4Formatter(runner boshsys.CmdRunner, fs boshsys.FileSystem, logger boshlog.Logger) Formatter {
	return ext4Formatter{runner: runner, fs: fs, logger: logger}
}

// Format always reformats: the migration workflow wipes the device first and
// a stale filesystem on a fresh partition is exactly what must be destroyed.
func (f ext4Formatter) Format(partitionPath string, fsType FileSystemType, opts FormatOptions) error {
	if fsType != FileSystemExt4 {
		return bosherr.Errorf("Unsupported filesystem type `%s'", fsType)
	}

	existingFsType, err := f.GetPartitionFormatType(partitionPath)
	if err != nil {
		return bosherr.WrapError(err, "Checking filesystem format of partition")
	}
	if existingFsType != "" {
		f.logger.Info(ext4FormatterLogTag, "Reformatting `%s' (was %s)", partitionPath, existingFsType)
	}

	err = f.makeFileSystemExt4(partitionPath, opts)
	if err != nil {
		if strings.Contains(err.Error(), "apparently in use by the system") {
			err = f.makeFileSystemExt4(partitionPath, opts)
		}
	}
	if err != nil {
		return bosherr.WrapError(err, "Shelling out to mkfs.ext4")
	}

	return nil
}

func (f ext4Formatter) makeFileSystemExt4(partitionPath string, opts FormatOptions) error {
	args := []string{"-F"}
	if opts.BytesPerInode > 0 {
		args = append(args, "-i", fmt.Sprintf("%d", opts.BytesPerInode))
	}
	if opts.ReservedBlockPercent > 0 {
		args = append(args, "-m", fmt.Sprintf("%d", opts.ReservedBlockPercent))
	}
	if f.fs.FileExists("/sys/fs/ext4/features/lazy_itable_init") {
		args = append(args, "-E", "lazy_itable_init=1")
	}
	args = append(args, partitionPath)

	_, _, _, err := f.runner.RunCommand("mkfs.ext4", args...)
	return err
}

func (f ext4Formatter) GetPartitionFormatType(partitionPath string) (FileSystemType, error) {
	stdout, stderr, exitStatus, err := f.runner.RunCommand("blkid", "-p", partitionPath)
	if err != nil {
		if exitStatus == 2 && stderr == "" {
			// no recognizable filesystem on the device
			return "", nil
		}
		return "", err
	}

	re := regexp.MustCompile(` TYPE="([^"]+)"`)
	match := re.FindStringSubmatch(stdout)
	if match == nil {
		return "", nil
	}

	return FileSystemType(match[1]), nil
}
