package servicemanager

type ServiceManager interface {
	IsActive(serviceName string) (active bool, err error)
	Start(serviceName string) error
	Stop(serviceName string) error
	Kill(serviceName string) error
}
