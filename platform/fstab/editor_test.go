package fstab_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	fakesys "github.com/cloudfoundry/bosh-utils/system/fakes"

	fstab "github.com/disktools/disk-migrator/platform/fstab"
)

var _ = Describe("Editor", func() {
	var (
		fakeFs *fakesys.FakeFileSystem
		editor fstab.Editor
	)

	const originalFstab = `# /etc/fstab: static file system information.
UUID=11111111-aaaa-bbbb-cccc-222222222222 / ext4 errors=remount-ro 0 1
UUID=33333333-dddd-eeee-ffff-444444444444 /home ext4 defaults 0 2
# swap was on /dev/sda5 during installation
UUID=55555555-0000-1111-2222-666666666666 none swap sw 0 0
`

	BeforeEach(func() {
		fakeFs = fakesys.NewFakeFileSystem()
		err := fakeFs.WriteFileString("/etc/fstab", originalFstab)
		Expect(err).ToNot(HaveOccurred())

		editor = fstab.NewEditor(fakeFs, "/etc/fstab", boshlog.NewLogger(boshlog.LevelNone))
	})

	Describe("Backup", func() {
		It("writes a timestamp-suffixed copy", func() {
			backupPath, err := editor.Backup("20260823T120000Z")
			Expect(err).ToNot(HaveOccurred())
			Expect(backupPath).To(Equal("/etc/fstab.bak-20260823T120000Z"))

			contents, err := fakeFs.ReadFileString(backupPath)
			Expect(err).ToNot(HaveOccurred())
			Expect(contents).To(Equal(originalFstab))
		})

		It("fails when fstab cannot be read", func() {
			err := fakeFs.RemoveAll("/etc/fstab")
			Expect(err).ToNot(HaveOccurred())

			_, err = editor.Backup("suffix")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Set", func() {
		It("replaces the active entry for the mount point and keeps everything else", func() {
			err := editor.Set([]fstab.Entry{
				{UUID: "99999999-aaaa-bbbb-cccc-000000000000", MountPoint: "/home", Type: "ext4", Options: "defaults", Dump: 0, Pass: 2},
			})
			Expect(err).ToNot(HaveOccurred())

			contents, err := fakeFs.ReadFileString("/etc/fstab")
			Expect(err).ToNot(HaveOccurred())
			Expect(contents).To(Equal(`# /etc/fstab: static file system information.
UUID=11111111-aaaa-bbbb-cccc-222222222222 / ext4 errors=remount-ro 0 1
# swap was on /dev/sda5 during installation
UUID=55555555-0000-1111-2222-666666666666 none swap sw 0 0
UUID=99999999-aaaa-bbbb-cccc-000000000000 /home ext4 defaults 0 2
`))
		})

		It("writes entries without a leading blank line when fstab is empty", func() {
			err := fakeFs.WriteFileString("/etc/fstab", "")
			Expect(err).ToNot(HaveOccurred())

			err = editor.Set([]fstab.Entry{
				{UUID: "99999999-aaaa-bbbb-cccc-000000000000", MountPoint: "/home", Type: "ext4", Options: "defaults", Dump: 0, Pass: 2},
			})
			Expect(err).ToNot(HaveOccurred())

			contents, err := fakeFs.ReadFileString("/etc/fstab")
			Expect(err).ToNot(HaveOccurred())
			Expect(contents).To(Equal("UUID=99999999-aaaa-bbbb-cccc-000000000000 /home ext4 defaults 0 2\n"))
		})

		It("results in exactly one active entry per mount point even when run twice", func() {
			entry := fstab.Entry{UUID: "99999999-aaaa-bbbb-cccc-000000000000", MountPoint: "/home", Type: "ext4", Options: "defaults", Pass: 2}

			Expect(editor.Set([]fstab.Entry{entry})).To(Succeed())
			entry.UUID = "aaaaaaaa-1111-2222-3333-bbbbbbbbbbbb"
			Expect(editor.Set([]fstab.Entry{entry})).To(Succeed())

			entries, err := editor.ActiveEntries()
			Expect(err).ToNot(HaveOccurred())

			var homeEntries []fstab.Entry
			for _, e := range entries {
				if e.MountPoint == "/home" {
					homeEntries = append(homeEntries, e)
				}
			}
			Expect(homeEntries).To(HaveLen(1))
			Expect(homeEntries[0].UUID).To(Equal("aaaaaaaa-1111-2222-3333-bbbbbbbbbbbb"))
		})

		It("updates several mount points in one pass", func() {
			err := editor.Set([]fstab.Entry{
				{UUID: "uuid-root", MountPoint: "/root", Type: "ext4", Options: "defaults", Pass: 2},
				{UUID: "uuid-var", MountPoint: "/var", Type: "ext4", Options: "defaults", Pass: 2},
			})
			Expect(err).ToNot(HaveOccurred())

			entries, err := editor.ActiveEntries()
			Expect(err).ToNot(HaveOccurred())

			mountPoints := []string{}
			for _, e := range entries {
				mountPoints = append(mountPoints, e.MountPoint)
			}
			Expect(mountPoints).To(ContainElements("/root", "/var", "/home", "/"))
		})
	})

	Describe("ActiveEntries", func() {
		It("skips comments and blank lines", func() {
			entries, err := editor.ActiveEntries()
			Expect(err).ToNot(HaveOccurred())
			Expect(entries).To(HaveLen(3))
			Expect(entries[1]).To(Equal(fstab.Entry{
				UUID:       "33333333-dddd-eeee-ffff-444444444444",
				MountPoint: "/home",
				Type:       "ext4",
				Options:    "defaults",
				Dump:       0,
				Pass:       2,
			}))
		})
	})
})

var _ = Describe("ParseEntry", func() {
	It("parses device specs without a UUID prefix", func() {
		entry, err := fstab.ParseEntry("/dev/sr0 /media/cdrom iso9660 ro,user,noauto 0 0")
		Expect(err).ToNot(HaveOccurred())
		Expect(entry.UUID).To(Equal("/dev/sr0"))
		Expect(entry.MountPoint).To(Equal("/media/cdrom"))
	})

	It("rejects lines with too few fields", func() {
		_, err := fstab.ParseEntry("UUID=x /home")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("Malformed fstab line"))
	})
})
