package migrator

import (
	"encoding/json"
	"os"
	"time"

	"code.cloudfoundry.org/clock"
	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
	boshuuid "github.com/cloudfoundry/bosh-utils/uuid"
)

const lockerLogTag = "Locker"

// LockRecord is the advisory marker preventing concurrent runs. A plain
// file existence check, not a kernel lock: simultaneous invocations can
// still race, which matches the tool's single-operator use.
type LockRecord struct {
	RunID      string    `json:"run_id"`
	Pid        int       `json:"pid"`
	StartedAt  time.Time `json:"started_at"`
	DevicePath string    `json:"device_path"`
}

type Locker interface {
	Acquire(devicePath string) (err error)
	Release()
}

type fileLocker struct {
	fs            boshsys.FileSystem
	path          string
	uuidGenerator boshuuid.Generator
	timeService   clock.Clock
	logger        boshlog.Logger
}

func NewFileLocker(
	fs boshsys.FileSystem,
	path string,
	uuidGenerator boshuuid.Generator,
	timeService clock.Clock,
	logger boshlog.Logger,
) Locker {
	return &fileLocker{
		fs:            fs,
		path:          path,
		uuidGenerator: uuidGenerator,
		timeService:   timeService,
		logger:        logger,
	}
}

func (l *fileLocker) Acquire(devicePath string) error {
	if l.fs.FileExists(l.path) {
		contents, _ := l.fs.ReadFileString(l.path)
		return NewError(KindConcurrentRunDetected,
			bosherr.Errorf("Lock file `%s' exists, another migration appears to be running: %s", l.path, contents))
	}

	runID, err := l.uuidGenerator.Generate()
	if err != nil {
		return bosherr.WrapError(err, "Generating run ID")
	}

	record := LockRecord{
		RunID:      runID,
		Pid:        os.Getpid(),
		StartedAt:  l.timeService.Now(),
		DevicePath: devicePath,
	}

	recordBytes, err := json.Marshal(record)
	if err != nil {
		return bosherr.WrapError(err, "Marshalling lock record")
	}

	err = l.fs.WriteFile(l.path, recordBytes)
	if err != nil {
		return bosherr.WrapErrorf(err, "Writing lock file `%s'", l.path)
	}

	l.logger.Debug(lockerLogTag, "Acquired lock %s (run %s)", l.path, runID)
	return nil
}

// Release is best-effort and safe on every exit path; a failure to remove
// the lock only warns since the process is already on its way out.
func (l *fileLocker) Release() {
	err := l.fs.RemoveAll(l.path)
	if err != nil {
		l.logger.Warn(lockerLogTag, "Failed to remove lock file %s: %s", l.path, err)
		return
	}

	l.logger.Debug(lockerLogTag, "Released lock %s", l.path)
}
