package disk

// UnmountMode selects how hard Unmount tries. Plain unmount is attempted
// first in every mode; Lazy adds a `umount -l' fallback when that fails.
type UnmountMode int

const (
	UnmountPlain UnmountMode = iota
	UnmountLazy
)

type Mounter interface {
	Mount(partitionPath, mountPoint string, mountOptions ...string) (err error)
	MountAll() (err error)
	Unmount(partitionOrMountPoint string, mode UnmountMode) (didUnmount bool, err error)

	IsMountPoint(path string) (partitionPath string, result bool, err error)
	IsMounted(devicePathOrMountPoint string) (result bool, err error)
}
