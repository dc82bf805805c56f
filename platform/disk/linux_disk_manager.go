package disk

import (
	"code.cloudfoundry.org/clock"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

type linuxDiskManager struct {
	partitioner    Partitioner
	formatter      Formatter
	mounter        Mounter
	mountsSearcher MountsSearcher
	uuidResolver   UUIDResolver
}

func NewLinuxDiskManager(
	logger boshlog.Logger,
	runner boshsys.CmdRunner,
	fs boshsys.FileSystem,
	timeService clock.Clock,
) Manager {
	mountsSearcher := NewProcMountsSearcher(fs)

	return linuxDiskManager{
		partitioner:    NewPartedPartitioner(logger, runner, timeService),
		formatter:      NewExt4Formatter(runner, fs, logger),
		mounter:        NewLinuxMounter(runner, mountsSearcher, logger),
		mountsSearcher: mountsSearcher,
		uuidResolver:   NewBlkidUUIDResolver(runner),
	}
}

func (m linuxDiskManager) GetPartitioner() Partitioner       { return m.partitioner }
func (m linuxDiskManager) GetFormatter() Formatter           { return m.formatter }
func (m linuxDiskManager) GetMounter() Mounter               { return m.mounter }
func (m linuxDiskManager) GetMountsSearcher() MountsSearcher { return m.mountsSearcher }
func (m linuxDiskManager) GetUUIDResolver() UUIDResolver     { return m.uuidResolver }
