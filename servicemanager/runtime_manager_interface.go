package servicemanager

// RuntimeManager controls the container runtime's workloads. The runtime
// daemon itself is started and stopped through the ServiceManager; this
// interface covers the containers it runs, which must be quiesced before
// the daemon goes down and revived after it comes back.
type RuntimeManager interface {
	RunningContainers() (ids []string, err error)
	StopAll() error
	StartContainers(ids []string) error
}
