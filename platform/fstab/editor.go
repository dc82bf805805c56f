package fstab

import (
	"strings"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

const (
	DefaultPath = "/etc/fstab"

	editorLogTag = "FstabEditor"
)

// Editor rewrites the persistent mount configuration. Comment lines and
// entries for unrelated mount points pass through untouched; after Set each
// affected mount point has exactly one active entry.
type Editor interface {
	Backup(suffix string) (backupPath string, err error)
	Set(entries []Entry) (err error)
	ActiveEntries() (entries []Entry, err error)
}

type editor struct {
	fs     boshsys.FileSystem
	path   string
	logger boshlog.Logger
}

func NewEditor(fs boshsys.FileSystem, path string, logger boshlog.Logger) Editor {
	return editor{fs: fs, path: path, logger: logger}
}

func (e editor) Backup(suffix string) (string, error) {
	backupPath := e.path + ".bak-" + suffix

	contents, err := e.fs.ReadFileString(e.path)
	if err != nil {
		return "", bosherr.WrapErrorf(err, "Reading `%s'", e.path)
	}

	err = e.fs.WriteFileString(backupPath, contents)
	if err != nil {
		return "", bosherr.WrapErrorf(err, "Writing backup `%s'", backupPath)
	}

	e.logger.Info(editorLogTag, "Backed up %s to %s", e.path, backupPath)
	return backupPath, nil
}

func (e editor) Set(entries []Entry) error {
	contents, err := e.fs.ReadFileString(e.path)
	if err != nil {
		return bosherr.WrapErrorf(err, "Reading `%s'", e.path)
	}

	replaced := map[string]bool{}
	for _, entry := range entries {
		replaced[entry.MountPoint] = true
	}

	var kept []string
	trimmed := strings.TrimRight(contents, "\n")
	if trimmed != "" {
		for _, line := range strings.Split(trimmed, "\n") {
			if isActiveLine(line) {
				fields := strings.Fields(line)
				if len(fields) > 1 && replaced[fields[1]] {
					e.logger.Debug(editorLogTag, "Dropping stale entry for %s", fields[1])
					continue
				}
			}
			kept = append(kept, line)
		}
	}

	for _, entry := range entries {
		kept = append(kept, entry.String())
	}

	err = e.fs.WriteFileString(e.path, strings.Join(kept, "\n")+"\n")
	if err != nil {
		return bosherr.WrapErrorf(err, "Writing `%s'", e.path)
	}

	return nil
}

func (e editor) ActiveEntries() ([]Entry, error) {
	contents, err := e.fs.ReadFileString(e.path)
	if err != nil {
		return nil, bosherr.WrapErrorf(err, "Reading `%s'", e.path)
	}

	var entries []Entry
	for _, line := range strings.Split(contents, "\n") {
		if !isActiveLine(line) {
			continue
		}

		entry, err := ParseEntry(line)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
