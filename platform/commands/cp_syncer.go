package commands

import (
	"path/filepath"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

const cpSyncerLogTag = "CpSyncer"

type cpSyncer struct {
	cmdRunner boshsys.CmdRunner
	fs        boshsys.FileSystem
	logger    boshlog.Logger
}

func NewCpSyncer(cmdRunner boshsys.CmdRunner, fs boshsys.FileSystem, logger boshlog.Logger) TreeSyncer {
	return cpSyncer{cmdRunner: cmdRunner, fs: fs, logger: logger}
}

// Golang does not have a way of copying files and preserving file info, so
// this shells out to cp. cp has no exclude support; excluded paths are
// copied and then pruned from the destination.
func (s cpSyncer) SyncTree(srcDir, dstDir string, excludes []string) error {
	s.logger.Info(cpSyncerLogTag, "Copying %s to %s", srcDir, dstDir)

	_, _, _, err := s.cmdRunner.RunCommand("cp", "-a", srcDir+"/.", dstDir)
	if err != nil {
		return bosherr.WrapErrorf(err, "Copying `%s' to `%s'", srcDir, dstDir)
	}

	for _, pattern := range excludes {
		matches, err := s.fs.Glob(filepath.Join(dstDir, pattern))
		if err != nil {
			return bosherr.WrapErrorf(err, "Globbing excluded pattern `%s'", pattern)
		}

		for _, match := range matches {
			err = s.fs.RemoveAll(match)
			if err != nil {
				s.logger.Warn(cpSyncerLogTag, "Failed to prune excluded path %s: %s", match, err)
			}
		}
	}

	return nil
}
