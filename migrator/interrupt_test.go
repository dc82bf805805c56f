package migrator_test

import (
	"os"
	"syscall"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	fakesys "github.com/cloudfoundry/bosh-utils/system/fakes"
	fakeuuid "github.com/cloudfoundry/bosh-utils/uuid/fakes"

	. "github.com/disktools/disk-migrator/migrator"
	"github.com/disktools/disk-migrator/migrator/fakes"
	fakedisk "github.com/disktools/disk-migrator/platform/disk/fakes"
)

var _ = Describe("LockInterruptHandler", func() {
	var (
		logger     boshlog.Logger
		fakeLocker *fakes.FakeLocker
		exitCodes  chan int
		handler    InterruptHandler
	)

	// the tests deliver a real signal to the process, so they watch one
	// the test runner itself leaves alone
	watched := []os.Signal{syscall.SIGUSR1}

	BeforeEach(func() {
		logger = boshlog.NewLogger(boshlog.LevelNone)
		fakeLocker = &fakes.FakeLocker{}
		exitCodes = make(chan int, 1)
		handler = NewLockInterruptHandler(fakeLocker, func(code int) { exitCodes <- code }, watched, logger)
	})

	AfterEach(func() {
		handler.StopWatching()
	})

	It("releases the lock and exits 1 on a watched signal", func() {
		handler.StartWatching()

		err := syscall.Kill(os.Getpid(), syscall.SIGUSR1)
		Expect(err).ToNot(HaveOccurred())

		Eventually(exitCodes).Should(Receive(Equal(1)))
		Expect(fakeLocker.ReleaseCalled).To(BeTrue())
	})

	It("stays quiet after watching stops", func() {
		handler.StartWatching()
		handler.StopWatching()

		Consistently(exitCodes, 100*time.Millisecond).ShouldNot(Receive())
		Expect(fakeLocker.ReleaseCalled).To(BeFalse())
	})

	It("unblocks the next run after an interrupted one", func() {
		fakeFs := fakesys.NewFakeFileSystem()
		fileLocker := NewFileLocker(fakeFs, "/var/run/disk-migrator.lock",
			&fakeuuid.FakeGenerator{GeneratedUUID: "run-1"}, &fakedisk.FakeClock{}, logger)
		Expect(fileLocker.Acquire("/dev/sdb")).To(Succeed())

		handler = NewLockInterruptHandler(fileLocker, func(code int) { exitCodes <- code }, watched, logger)
		handler.StartWatching()

		err := syscall.Kill(os.Getpid(), syscall.SIGUSR1)
		Expect(err).ToNot(HaveOccurred())
		Eventually(exitCodes).Should(Receive(Equal(1)))

		Expect(fakeFs.FileExists("/var/run/disk-migrator.lock")).To(BeFalse())
		Expect(fileLocker.Acquire("/dev/sdb")).To(Succeed())
	})
})
