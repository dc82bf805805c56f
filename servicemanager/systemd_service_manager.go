package servicemanager

import (
	"strings"

	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

type systemdServiceManager struct {
	runner boshsys.CmdRunner
}

func NewSystemdServiceManager(runner boshsys.CmdRunner) ServiceManager {
	return &systemdServiceManager{
		runner: runner,
	}
}

// IsActive maps `systemctl is-active' semantics: exit 0 with "active" means
// running, any non-zero exit ("inactive", "failed", unknown unit) means not.
func (serviceManager systemdServiceManager) IsActive(serviceName string) (bool, error) {
	stdout, _, _, err := serviceManager.runner.RunCommand("systemctl", "is-active", serviceName)
	if err != nil {
		return false, nil
	}

	return strings.TrimSpace(stdout) == "active", nil
}

func (serviceManager systemdServiceManager) Start(serviceName string) error {
	_, _, _, err := serviceManager.runner.RunCommand("systemctl", "start", serviceName)
	return err
}

func (serviceManager systemdServiceManager) Stop(serviceName string) error {
	_, _, _, err := serviceManager.runner.RunCommand("systemctl", "stop", serviceName)
	return err
}

func (serviceManager systemdServiceManager) Kill(serviceName string) error {
	_, _, _, err := serviceManager.runner.RunCommand("systemctl", "kill", serviceName)
	return err
}
