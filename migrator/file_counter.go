package migrator

import (
	"os"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

// FileCounter counts regular files under a directory tree, the measure the
// integrity check compares between source and destination.
type FileCounter interface {
	CountRegularFiles(root string) (count int, err error)
}

type fsFileCounter struct {
	fs boshsys.FileSystem
}

func NewFsFileCounter(fs boshsys.FileSystem) FileCounter {
	return fsFileCounter{fs: fs}
}

func (c fsFileCounter) CountRegularFiles(root string) (int, error) {
	count := 0

	err := c.fs.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, bosherr.WrapErrorf(err, "Counting files under `%s'", root)
	}

	return count, nil
}
