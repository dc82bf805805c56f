package app_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	fakesys "github.com/cloudfoundry/bosh-utils/system/fakes"

	. "github.com/disktools/disk-migrator/app"
	boshmigrator "github.com/disktools/disk-migrator/migrator"
)

var _ = Describe("LoadConfigFromPath", func() {
	var fakeFs *fakesys.FakeFileSystem

	BeforeEach(func() {
		fakeFs = fakesys.NewFakeFileSystem()
	})

	It("returns an empty config for an empty path", func() {
		config, err := LoadConfigFromPath(fakeFs, "")
		Expect(err).ToNot(HaveOccurred())
		Expect(config).To(Equal(Config{}))
	})

	It("loads overrides from a JSON file", func() {
		err := fakeFs.WriteFileString("/etc/disk-migrator.json", `{
			"device_path": "/dev/nvme0n1",
			"excludes": ["lost+found"],
			"bytes_per_inode": 4096
		}`)
		Expect(err).ToNot(HaveOccurred())

		config, err := LoadConfigFromPath(fakeFs, "/etc/disk-migrator.json")
		Expect(err).ToNot(HaveOccurred())
		Expect(config.DevicePath).To(Equal("/dev/nvme0n1"))
		Expect(config.Excludes).To(Equal([]string{"lost+found"}))
		Expect(config.BytesPerInode).To(Equal(uint(4096)))
	})

	It("errors on a missing file", func() {
		_, err := LoadConfigFromPath(fakeFs, "/nonexistent.json")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("Reading config file"))
	})

	It("errors on malformed JSON", func() {
		err := fakeFs.WriteFileString("/etc/disk-migrator.json", "{")
		Expect(err).ToNot(HaveOccurred())

		_, err = LoadConfigFromPath(fakeFs, "/etc/disk-migrator.json")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("Parsing config file"))
	})
})

var _ = Describe("Config", func() {
	Describe("ApplyTo", func() {
		var plan boshmigrator.Plan

		BeforeEach(func() {
			var err error
			plan, err = boshmigrator.PlanFor("var")
			Expect(err).ToNot(HaveOccurred())
		})

		It("leaves the plan untouched when empty", func() {
			Expect(Config{}.ApplyTo(plan)).To(Equal(plan))
		})

		It("overrides only the fields that are set", func() {
			config := Config{
				DevicePath:    "/dev/vdb",
				BytesPerInode: 4096,
			}

			updated := config.ApplyTo(plan)
			Expect(updated.DevicePath).To(Equal("/dev/vdb"))
			Expect(updated.FormatOptions.BytesPerInode).To(Equal(uint(4096)))
			Expect(updated.FormatOptions.ReservedBlockPercent).To(Equal(plan.FormatOptions.ReservedBlockPercent))
			Expect(updated.Excludes).To(Equal(plan.Excludes))
			Expect(updated.Services).To(Equal(plan.Services))
		})

		It("replaces list fields wholesale", func() {
			config := Config{Services: []string{"docker"}}

			updated := config.ApplyTo(plan)
			Expect(updated.Services).To(Equal([]string{"docker"}))
		})
	})
})
