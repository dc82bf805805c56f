package commands

import (
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

// TreeSyncer copies a directory tree preserving permissions, ownership,
// timestamps, extended attributes and symlinks. Paths matching an exclude
// pattern are skipped.
type TreeSyncer interface {
	SyncTree(srcDir, dstDir string, excludes []string) (err error)
}

// NewTreeSyncer prefers rsync (incremental, resumable) and falls back to an
// archive-preserving recursive cp when rsync is not installed.
func NewTreeSyncer(runner boshsys.CmdRunner, fs boshsys.FileSystem, logger boshlog.Logger) TreeSyncer {
	if runner.CommandExists("rsync") {
		return NewRsyncSyncer(runner, logger)
	}

	logger.Warn("TreeSyncer", "rsync not found, falling back to cp")
	return NewCpSyncer(runner, fs, logger)
}
