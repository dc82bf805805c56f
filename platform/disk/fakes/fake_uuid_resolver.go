package fakes

type FakeUUIDResolver struct {
	ResolveUUIDPartitionPaths []string
	UUIDs                     map[string]string
	ResolveUUIDErr            error
}

func NewFakeUUIDResolver() *FakeUUIDResolver {
	return &FakeUUIDResolver{UUIDs: make(map[string]string)}
}

func (r *FakeUUIDResolver) ResolveUUID(partitionPath string) (string, error) {
	r.ResolveUUIDPartitionPaths = append(r.ResolveUUIDPartitionPaths, partitionPath)
	return r.UUIDs[partitionPath], r.ResolveUUIDErr
}
