package disk

import (
	"strings"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

type blkidUUIDResolver struct {
	runner boshsys.CmdRunner
}

func NewBlkidUUIDResolver(runner boshsys.CmdRunner) UUIDResolver {
	return blkidUUIDResolver{runner: runner}
}

func (r blkidUUIDResolver) ResolveUUID(partitionPath string) (string, error) {
	stdout, _, _, err := r.runner.RunCommand("blkid", "-s", "UUID", "-o", "value", partitionPath)
	if err != nil {
		return "", bosherr.WrapErrorf(err, "Resolving filesystem UUID of `%s'", partitionPath)
	}

	uuid := strings.TrimSpace(stdout)
	if uuid == "" {
		return "", bosherr.Errorf("No filesystem UUID found on `%s'", partitionPath)
	}

	return uuid, nil
}
