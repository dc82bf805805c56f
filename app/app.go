package app

import (
	"io"
	"os"
	"syscall"

	"code.cloudfoundry.org/clock"
	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
	boshuuid "github.com/cloudfoundry/bosh-utils/uuid"

	boshmigrator "github.com/disktools/disk-migrator/migrator"
	boshcmds "github.com/disktools/disk-migrator/platform/commands"
	boshdisk "github.com/disktools/disk-migrator/platform/disk"
	boshfstab "github.com/disktools/disk-migrator/platform/fstab"
	boshstats "github.com/disktools/disk-migrator/platform/stats"
	boshsvc "github.com/disktools/disk-migrator/servicemanager"
)

type Options struct {
	PlanName   string
	ConfigPath string
	DevicePath string
	AssumeYes  bool
}

type App interface {
	Setup(opts Options) error
	Run() error
}

type app struct {
	logger boshlog.Logger
	fs     boshsys.FileSystem
	in     io.Reader
	out    io.Writer
	logTag string

	plan     boshmigrator.Plan
	locker   boshmigrator.Locker
	migrator boshmigrator.Migrator
}

func New(logger boshlog.Logger, fs boshsys.FileSystem, in io.Reader, out io.Writer) App {
	return &app{
		logger: logger,
		fs:     fs,
		in:     in,
		out:    out,
		logTag: "App",
	}
}

// Setup resolves the plan, layers config file and flag overrides on top
// and wires the migrator against the real platform.
func (app *app) Setup(opts Options) error {
	plan, err := boshmigrator.PlanFor(opts.PlanName)
	if err != nil {
		return err
	}

	config, err := LoadConfigFromPath(app.fs, opts.ConfigPath)
	if err != nil {
		return bosherr.WrapError(err, "Loading config")
	}

	plan = config.ApplyTo(plan)
	if opts.DevicePath != "" {
		plan.DevicePath = opts.DevicePath
	}

	cmdRunner := boshsys.NewExecCmdRunner(app.logger)
	timeService := clock.NewClock()
	locker := boshmigrator.NewFileLocker(app.fs, plan.LockPath, boshuuid.NewGenerator(), timeService, app.logger)

	app.plan = plan
	app.locker = locker
	app.migrator = boshmigrator.New(
		app.fs,
		cmdRunner,
		boshdisk.NewLinuxDiskManager(app.logger, cmdRunner, app.fs, timeService),
		boshcmds.NewTreeSyncer(cmdRunner, app.fs, app.logger),
		boshsvc.NewSystemdServiceManager(cmdRunner),
		boshsvc.NewDockerRuntimeManager(cmdRunner, app.logger),
		boshstats.NewSigarStatsCollector(),
		boshfstab.NewEditor(app.fs, plan.FstabPath, app.logger),
		locker,
		boshmigrator.NewFsFileCounter(app.fs),
		boshmigrator.NewConsolePrompter(app.in, app.out),
		timeService,
		app.out,
		boshmigrator.MigratorOpts{AssumeYes: opts.AssumeYes},
		app.logger,
	)

	app.logger.Debug(app.logTag, "Prepared plan %s for device %s", plan.Name, plan.DevicePath)
	return nil
}

// Run watches for interrupts while the migration is in flight so the
// advisory lock is released even when the process is killed mid-phase.
func (app *app) Run() error {
	interruptHandler := boshmigrator.NewLockInterruptHandler(
		app.locker,
		os.Exit,
		[]os.Signal{os.Interrupt, syscall.SIGTERM},
		app.logger,
	)
	interruptHandler.StartWatching()
	defer interruptHandler.StopWatching()

	return app.migrator.Migrate(app.plan)
}
