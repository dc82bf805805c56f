package fakes

type FakeRuntimeManager struct {
	RunningContainersIDs []string
	RunningContainersErr error

	StopAllCalled bool
	StopAllErr    error

	StartContainersIDs []string
	StartContainersErr error
}

func (m *FakeRuntimeManager) RunningContainers() ([]string, error) {
	return m.RunningContainersIDs, m.RunningContainersErr
}

func (m *FakeRuntimeManager) StopAll() error {
	m.StopAllCalled = true
	return m.StopAllErr
}

func (m *FakeRuntimeManager) StartContainers(ids []string) error {
	m.StartContainersIDs = append(m.StartContainersIDs, ids...)
	return m.StartContainersErr
}
