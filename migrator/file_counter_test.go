package migrator_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	fakesys "github.com/cloudfoundry/bosh-utils/system/fakes"

	. "github.com/disktools/disk-migrator/migrator"
)

var _ = Describe("FsFileCounter", func() {
	var (
		fakeFs  *fakesys.FakeFileSystem
		counter FileCounter
	)

	BeforeEach(func() {
		fakeFs = fakesys.NewFakeFileSystem()
		counter = NewFsFileCounter(fakeFs)
	})

	It("counts regular files under the root", func() {
		Expect(fakeFs.WriteFileString("/var/lib/app/data.db", "x")).To(Succeed())
		Expect(fakeFs.WriteFileString("/var/log/app.log", "y")).To(Succeed())
		Expect(fakeFs.WriteFileString("/var/cache/item", "z")).To(Succeed())

		count, err := counter.CountRegularFiles("/var")
		Expect(err).ToNot(HaveOccurred())
		Expect(count).To(Equal(3))
	})

	It("ignores files outside the root", func() {
		Expect(fakeFs.WriteFileString("/var/log/app.log", "y")).To(Succeed())
		Expect(fakeFs.WriteFileString("/home/user/notes.txt", "n")).To(Succeed())

		count, err := counter.CountRegularFiles("/var")
		Expect(err).ToNot(HaveOccurred())
		Expect(count).To(Equal(1))
	})

	It("returns zero for an empty tree", func() {
		Expect(fakeFs.MkdirAll("/var", 0755)).To(Succeed())

		count, err := counter.CountRegularFiles("/var")
		Expect(err).ToNot(HaveOccurred())
		Expect(count).To(BeZero())
	})
})
