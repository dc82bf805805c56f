package fakes

type FakeLocker struct {
	AcquireDevicePath string
	AcquireCalled     bool
	AcquireErr        error

	ReleaseCalled bool
}

func (l *FakeLocker) Acquire(devicePath string) error {
	l.AcquireCalled = true
	l.AcquireDevicePath = devicePath
	return l.AcquireErr
}

func (l *FakeLocker) Release() {
	l.ReleaseCalled = true
}
