package disk

type FileSystemType string

const (
	FileSystemExt4 FileSystemType = "ext4"
)

// FormatOptions carries mkfs-time tuning. Zero values mean "use the tool's
// defaults".
type FormatOptions struct {
	// Bytes of disk per inode (mke2fs -i).
	BytesPerInode uint
	// Percentage of blocks reserved for root (mke2fs -m).
	ReservedBlockPercent uint
}

type Formatter interface {
	Format(partitionPath string, fsType FileSystemType, opts FormatOptions) (err error)
	GetPartitionFormatType(partitionPath string) (fsType FileSystemType, err error)
}
