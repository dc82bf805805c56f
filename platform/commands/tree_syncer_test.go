package commands_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	fakesys "github.com/cloudfoundry/bosh-utils/system/fakes"

	. "github.com/disktools/disk-migrator/platform/commands"
)

var _ = Describe("RsyncSyncer", func() {
	var (
		fakeRunner *fakesys.FakeCmdRunner
		syncer     TreeSyncer
	)

	BeforeEach(func() {
		logger := boshlog.NewLogger(boshlog.LevelNone)
		fakeRunner = fakesys.NewFakeCmdRunner()
		syncer = NewRsyncSyncer(fakeRunner, logger)
	})

	It("invokes rsync in archive mode with trailing slashes", func() {
		err := syncer.SyncTree("/home", "/mnt/disk-migrator/home", nil)
		Expect(err).ToNot(HaveOccurred())

		Expect(fakeRunner.RunCommands).To(Equal([][]string{
			{"rsync", "-aHAXS", "--numeric-ids", "/home/", "/mnt/disk-migrator/home/"},
		}))
	})

	It("passes one --exclude per pattern", func() {
		err := syncer.SyncTree("/var", "/mnt/disk-migrator/var", []string{"run/*", "tmp/*"})
		Expect(err).ToNot(HaveOccurred())

		Expect(fakeRunner.RunCommands).To(Equal([][]string{
			{"rsync", "-aHAXS", "--numeric-ids", "--exclude", "run/*", "--exclude", "tmp/*", "/var/", "/mnt/disk-migrator/var/"},
		}))
	})

	It("wraps rsync failures", func() {
		fakeRunner.AddCmdResult(
			"rsync -aHAXS --numeric-ids /home/ /mnt/disk-migrator/home/",
			fakesys.FakeCmdResult{ExitStatus: 23, Error: errors.New("fake-rsync-error")})

		err := syncer.SyncTree("/home", "/mnt/disk-migrator/home", nil)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("Syncing `/home'"))
	})
})

var _ = Describe("CpSyncer", func() {
	var (
		fakeRunner *fakesys.FakeCmdRunner
		fakeFs     *fakesys.FakeFileSystem
		syncer     TreeSyncer
	)

	BeforeEach(func() {
		logger := boshlog.NewLogger(boshlog.LevelNone)
		fakeRunner = fakesys.NewFakeCmdRunner()
		fakeFs = fakesys.NewFakeFileSystem()
		syncer = NewCpSyncer(fakeRunner, fakeFs, logger)
	})

	It("copies with cp -a", func() {
		err := syncer.SyncTree("/home", "/mnt/disk-migrator/home", nil)
		Expect(err).ToNot(HaveOccurred())

		Expect(fakeRunner.RunCommands).To(Equal([][]string{
			{"cp", "-a", "/home/.", "/mnt/disk-migrator/home"},
		}))
	})

	It("prunes excluded paths from the destination", func() {
		err := fakeFs.WriteFileString("/mnt/disk-migrator/var/tmp/leftover", "junk")
		Expect(err).ToNot(HaveOccurred())
		fakeFs.SetGlob("/mnt/disk-migrator/var/tmp/*", []string{"/mnt/disk-migrator/var/tmp/leftover"})

		err = syncer.SyncTree("/var", "/mnt/disk-migrator/var", []string{"tmp/*"})
		Expect(err).ToNot(HaveOccurred())

		Expect(fakeFs.FileExists("/mnt/disk-migrator/var/tmp/leftover")).To(BeFalse())
	})

	It("wraps cp failures", func() {
		fakeRunner.AddCmdResult(
			"cp -a /home/. /mnt/disk-migrator/home",
			fakesys.FakeCmdResult{ExitStatus: 1, Error: errors.New("fake-cp-error")})

		err := syncer.SyncTree("/home", "/mnt/disk-migrator/home", nil)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("Copying `/home'"))
	})
})

var _ = Describe("NewTreeSyncer", func() {
	It("prefers rsync when available", func() {
		logger := boshlog.NewLogger(boshlog.LevelNone)
		fakeRunner := fakesys.NewFakeCmdRunner()
		fakeRunner.CommandExistsValue = true

		syncer := NewTreeSyncer(fakeRunner, fakesys.NewFakeFileSystem(), logger)
		err := syncer.SyncTree("/home", "/mnt/disk-migrator/home", nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(fakeRunner.RunCommands[0][0]).To(Equal("rsync"))
	})

	It("falls back to cp when rsync is missing", func() {
		logger := boshlog.NewLogger(boshlog.LevelNone)
		fakeRunner := fakesys.NewFakeCmdRunner()

		syncer := NewTreeSyncer(fakeRunner, fakesys.NewFakeFileSystem(), logger)
		err := syncer.SyncTree("/home", "/mnt/disk-migrator/home", nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(fakeRunner.RunCommands[0][0]).To(Equal("cp"))
	})
})
