package fakes

type FakeServiceManager struct {
	ActiveServices map[string]bool
	IsActiveErr    error

	StartedServices []string
	StartErrs       map[string]error

	StoppedServices []string
	StopErrs        map[string]error

	KilledServices []string
	KillErr        error
}

func NewFakeServiceManager() *FakeServiceManager {
	return &FakeServiceManager{
		ActiveServices: make(map[string]bool),
		StartErrs:      make(map[string]error),
		StopErrs:       make(map[string]error),
	}
}

func (m *FakeServiceManager) IsActive(serviceName string) (bool, error) {
	return m.ActiveServices[serviceName], m.IsActiveErr
}

func (m *FakeServiceManager) Start(serviceName string) error {
	m.StartedServices = append(m.StartedServices, serviceName)
	return m.StartErrs[serviceName]
}

func (m *FakeServiceManager) Stop(serviceName string) error {
	m.StoppedServices = append(m.StoppedServices, serviceName)
	return m.StopErrs[serviceName]
}

func (m *FakeServiceManager) Kill(serviceName string) error {
	m.KilledServices = append(m.KilledServices, serviceName)
	return m.KillErr
}
