package commands

import (
	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

const rsyncSyncerLogTag = "RsyncSyncer"

type rsyncSyncer struct {
	cmdRunner boshsys.CmdRunner
	logger    boshlog.Logger
}

func NewRsyncSyncer(cmdRunner boshsys.CmdRunner, logger boshlog.Logger) TreeSyncer {
	return rsyncSyncer{cmdRunner: cmdRunner, logger: logger}
}

func (s rsyncSyncer) SyncTree(srcDir, dstDir string, excludes []string) error {
	args := []string{"-aHAXS", "--numeric-ids"}
	for _, pattern := range excludes {
		args = append(args, "--exclude", pattern)
	}
	// trailing slash: copy the contents of srcDir, not srcDir itself
	args = append(args, srcDir+"/", dstDir+"/")

	s.logger.Info(rsyncSyncerLogTag, "Syncing %s to %s", srcDir, dstDir)

	_, _, _, err := s.cmdRunner.RunCommand("rsync", args...)
	if err != nil {
		return bosherr.WrapErrorf(err, "Syncing `%s' to `%s'", srcDir, dstDir)
	}

	return nil
}
