package servicemanager

import (
	"strings"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

const dockerRuntimeManagerLogTag = "DockerRuntimeManager"

type dockerRuntimeManager struct {
	runner boshsys.CmdRunner
	logger boshlog.Logger
}

func NewDockerRuntimeManager(runner boshsys.CmdRunner, logger boshlog.Logger) RuntimeManager {
	return dockerRuntimeManager{runner: runner, logger: logger}
}

func (m dockerRuntimeManager) RunningContainers() ([]string, error) {
	stdout, _, _, err := m.runner.RunCommand("docker", "ps", "-q")
	if err != nil {
		return nil, bosherr.WrapError(err, "Listing running containers")
	}

	trimmed := strings.TrimSpace(stdout)
	if trimmed == "" {
		return nil, nil
	}

	return strings.Fields(trimmed), nil
}

// StopAll stops every running container gracefully and force-kills whatever
// is still up afterwards. A container that ignores SIGTERM would otherwise
// keep files open on the mount being migrated.
func (m dockerRuntimeManager) StopAll() error {
	ids, err := m.RunningContainers()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	_, _, _, err = m.runner.RunCommand("docker", append([]string{"stop"}, ids...)...)
	if err != nil {
		m.logger.Warn(dockerRuntimeManagerLogTag, "Graceful stop failed: %s", err)
	}

	leftover, err := m.RunningContainers()
	if err != nil {
		return err
	}
	if len(leftover) == 0 {
		return nil
	}

	m.logger.Warn(dockerRuntimeManagerLogTag, "Force-killing %d containers still running", len(leftover))

	_, _, _, err = m.runner.RunCommand("docker", append([]string{"kill"}, leftover...)...)
	if err != nil {
		return bosherr.WrapError(err, "Force-killing containers")
	}

	return nil
}

func (m dockerRuntimeManager) StartContainers(ids []string) error {
	for _, id := range ids {
		_, _, _, err := m.runner.RunCommand("docker", "start", id)
		if err != nil {
			m.logger.Warn(dockerRuntimeManagerLogTag, "Failed to start container %s: %s", id, err)
		}
	}

	return nil
}
