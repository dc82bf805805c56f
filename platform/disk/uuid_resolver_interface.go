package disk

type UUIDResolver interface {
	ResolveUUID(partitionPath string) (uuid string, err error)
}
