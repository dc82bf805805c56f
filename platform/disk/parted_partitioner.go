package disk

import (
	"fmt"
	"strconv"
	"strings"

	"code.cloudfoundry.org/clock"
	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshretry "github.com/cloudfoundry/bosh-utils/retrystrategy"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

type partedPartitioner struct {
	logger      boshlog.Logger
	cmdRunner   boshsys.CmdRunner
	logTag      string
	timeService clock.Clock
}

func NewPartedPartitioner(logger boshlog.Logger, cmdRunner boshsys.CmdRunner, timeService clock.Clock) Partitioner {
	return partedPartitioner{
		logger:      logger,
		cmdRunner:   cmdRunner,
		logTag:      "PartedPartitioner",
		timeService: timeService,
	}
}

// ClearPartitionTable destroys every filesystem and partition-table
// signature on the device. Retried because the kernel can hold the device
// busy for a short while after an unmount.
func (p partedPartitioner) ClearPartitionTable(devicePath string) error {
	wipeRetryable := boshretry.NewRetryable(func() (bool, error) {
		_, _, _, err := p.cmdRunner.RunCommand(
			"wipefs",
			"--force",
			"-a",
			devicePath,
		)
		if err != nil {
			return true, bosherr.WrapErrorf(err, "Wiping signatures on `%s'", devicePath)
		}

		p.logger.Info(p.logTag, "Successfully wiped signatures on `%s'", devicePath)
		return false, nil
	})

	return NewPartitionStrategy(wipeRetryable, p.timeService, p.logger).Try()
}

func (p partedPartitioner) PartitionByPercent(devicePath string, partitions []PercentPartition) error {
	_, _, _, err := p.cmdRunner.RunCommand("parted", "-s", devicePath, "mklabel", "gpt")
	if err != nil {
		return bosherr.WrapErrorf(err, "Creating GPT label on `%s'", devicePath)
	}

	if err = p.createEachPartition(devicePath, partitions); err != nil {
		return err
	}

	_, _, _, err = p.cmdRunner.RunCommand("partprobe", devicePath)
	if err != nil {
		p.logger.Error(p.logTag, "Failed to probe new partition table: %s", err)
		return bosherr.WrapErrorf(err, "Re-reading partition table for `%s'", devicePath)
	}

	_, _, _, err = p.cmdRunner.RunCommand("udevadm", "settle")
	if err != nil {
		p.logger.Error(p.logTag, "Failed to run udevadm settle: %s", err)
	}

	return nil
}

func (p partedPartitioner) GetDeviceSizeInBytes(devicePath string) (uint64, error) {
	stdout, _, _, err := p.cmdRunner.RunCommand("lsblk", "--nodeps", "-nb", "-o", "SIZE", devicePath)
	if err != nil {
		return 0, bosherr.WrapErrorf(err, "Getting block device size of '%s'", devicePath)
	}

	deviceSize, err := strconv.ParseUint(strings.TrimSpace(stdout), 10, 64)
	if err != nil {
		return 0, bosherr.WrapErrorf(err, "Converting block device size of '%s'", devicePath)
	}

	return deviceSize, nil
}

func (p partedPartitioner) createEachPartition(devicePath string, partitions []PercentPartition) error {
	for index, partition := range partitions {
		partition := partition
		index := index

		partitionRetryable := boshretry.NewRetryable(func() (bool, error) {
			_, _, _, err := p.cmdRunner.RunCommand(
				"parted",
				"-s",
				devicePath,
				"mkpart",
				partition.Label,
				fmt.Sprintf("%d%%", partition.StartPercent),
				fmt.Sprintf("%d%%", partition.EndPercent),
			)
			if err != nil {
				p.logger.Error(p.logTag, "Failed with an error: %s", err)
				return true, bosherr.WrapError(err, "Creating partition using parted")
			}

			p.logger.Info(p.logTag, "Successfully created partition %d on %s", index+1, devicePath)
			return false, nil
		})

		err := NewPartitionStrategy(partitionRetryable, p.timeService, p.logger).Try()
		if err != nil {
			return bosherr.WrapErrorf(err, "Partitioning disk `%s'", devicePath)
		}
	}

	return nil
}
