package migrator_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/disktools/disk-migrator/migrator"
)

var _ = Describe("PlanFor", func() {
	It("errors on an unknown target name", func() {
		_, err := PlanFor("swap")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("Unknown migration target `swap'"))
	})

	It("lists every builtin plan", func() {
		for _, name := range PlanNames() {
			plan, err := PlanFor(name)
			Expect(err).ToNot(HaveOccurred())
			Expect(plan.Name).To(Equal(name))
			Expect(plan.DevicePath).To(Equal("/dev/sdb"))
			Expect(plan.Targets).ToNot(BeEmpty())
		}
	})

	It("dedicates the whole device to single mount point plans", func() {
		for _, name := range []string{"root", "home", "var"} {
			plan, err := PlanFor(name)
			Expect(err).ToNot(HaveOccurred())
			Expect(plan.Targets).To(HaveLen(1))
			Expect(plan.Targets[0].StartPercent).To(Equal(uint(0)))
			Expect(plan.Targets[0].EndPercent).To(Equal(uint(100)))
		}
	})

	It("splits the device evenly for the root-var plan", func() {
		plan, err := PlanFor("root-var")
		Expect(err).ToNot(HaveOccurred())

		Expect(plan.Targets).To(HaveLen(2))
		Expect(plan.Targets[0].MountPoint).To(Equal("/root"))
		Expect(plan.Targets[0].StartPercent).To(Equal(uint(0)))
		Expect(plan.Targets[0].EndPercent).To(Equal(uint(50)))
		Expect(plan.Targets[1].MountPoint).To(Equal("/var"))
		Expect(plan.Targets[1].StartPercent).To(Equal(uint(50)))
		Expect(plan.Targets[1].EndPercent).To(Equal(uint(100)))
	})

	It("recreates the runtime skeleton for var targets", func() {
		plan, err := PlanFor("var")
		Expect(err).ToNot(HaveOccurred())

		skeleton := plan.Targets[0].SkeletonDirs
		Expect(skeleton).To(HaveKey("tmp"))
		Expect(skeleton).To(HaveKey("run"))
		Expect(skeleton).To(HaveKey("lib/dpkg/updates"))
	})

	It("quiesces the container runtime before everything else", func() {
		plan, err := PlanFor("var")
		Expect(err).ToNot(HaveOccurred())
		Expect(plan.Services[0]).To(Equal("docker"))
	})

	It("excludes transient state from var copies", func() {
		plan, err := PlanFor("var")
		Expect(err).ToNot(HaveOccurred())
		Expect(plan.Excludes).To(ContainElement("run/*"))
		Expect(plan.Excludes).To(ContainElement("tmp/*"))
	})
})
