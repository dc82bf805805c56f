package migrator

import (
	"os"
	"os/signal"

	boshlog "github.com/cloudfoundry/bosh-utils/logger"
)

const interruptLogTag = "LockInterruptHandler"

// InterruptHandler covers the exit path deferred cleanup cannot: signal
// termination runs no defers, so without it an interrupt mid-copy strands
// the lock file and every later run fails with ConcurrentRunDetected.
type InterruptHandler interface {
	StartWatching()
	StopWatching()
}

type lockInterruptHandler struct {
	locker  Locker
	exit    func(code int)
	watched []os.Signal
	logger  boshlog.Logger

	signals chan os.Signal
}

func NewLockInterruptHandler(
	locker Locker,
	exit func(code int),
	watched []os.Signal,
	logger boshlog.Logger,
) InterruptHandler {
	return &lockInterruptHandler{
		locker:  locker,
		exit:    exit,
		watched: watched,
		logger:  logger,
	}
}

func (h *lockInterruptHandler) StartWatching() {
	h.signals = make(chan os.Signal, 1)
	signal.Notify(h.signals, h.watched...)
	go h.wait(h.signals)
}

// StopWatching restores default signal handling. Safe to call twice.
func (h *lockInterruptHandler) StopWatching() {
	if h.signals == nil {
		return
	}

	signal.Stop(h.signals)
	close(h.signals)
	h.signals = nil
}

func (h *lockInterruptHandler) wait(signals chan os.Signal) {
	sig, ok := <-signals
	if !ok {
		return
	}

	h.logger.Error(interruptLogTag, "Received %s, releasing lock and exiting", sig)
	h.locker.Release()
	h.exit(1)
}
