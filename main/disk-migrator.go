package main

import (
	"fmt"
	"os"

	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
	"github.com/spf13/cobra"

	boshapp "github.com/disktools/disk-migrator/app"
	boshmigrator "github.com/disktools/disk-migrator/migrator"
)

const mainLogTag = "main"

var (
	cfgFile    string
	devicePath string
	assumeYes  bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "disk-migrator",
	Short: "Move system mount points onto a secondary disk",
	Long: `disk-migrator repartitions a secondary block device and moves one or
more system mount points (/root, /home, /var) onto it: services are
quiesced, data is copied to a staging mount, verified, swapped into
place and /etc/fstab is rewritten to the new partition UUIDs.

The target device is wiped. Original data is kept next to each mount
point in a timestamped .premigration directory for manual cleanup.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "JSON config file overriding plan defaults")
	rootCmd.PersistentFlags().StringVarP(&devicePath, "device", "d", "", fmt.Sprintf("target block device (default %s)", boshmigrator.DefaultDevicePath))
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "assume-yes", "y", false, "answer yes to every confirmation prompt")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")

	for _, name := range boshmigrator.PlanNames() {
		rootCmd.AddCommand(migrateCmd(name))
	}
}

func migrateCmd(planName string) *cobra.Command {
	plan, _ := boshmigrator.PlanFor(planName)

	mountPoints := make([]string, 0, len(plan.Targets))
	for _, target := range plan.Targets {
		mountPoints = append(mountPoints, target.MountPoint)
	}

	return &cobra.Command{
		Use:   planName,
		Short: fmt.Sprintf("Migrate %v to the target device", mountPoints),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(planName)
		},
	}
}

func runMigration(planName string) error {
	logLevel := boshlog.LevelError
	if verbose {
		logLevel = boshlog.LevelDebug
	}

	logger := boshlog.NewLogger(logLevel)
	defer logger.HandlePanic("Main")

	fs := boshsys.NewOsFileSystem(logger)
	app := boshapp.New(logger, fs, os.Stdin, os.Stdout)

	err := app.Setup(boshapp.Options{
		PlanName:   planName,
		ConfigPath: cfgFile,
		DevicePath: devicePath,
		AssumeYes:  assumeYes,
	})
	if err != nil {
		logger.Error(mainLogTag, "App setup %s", err.Error())
		return err
	}

	err = app.Run()
	if err != nil {
		logger.Error(mainLogTag, "App run %s", err.Error())
		return err
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
