package app

import (
	"encoding/json"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshsys "github.com/cloudfoundry/bosh-utils/system"

	boshmigrator "github.com/disktools/disk-migrator/migrator"
)

// Config overrides the compiled-in defaults of a migration plan. Zero
// values leave the plan untouched, so a partial config file is fine.
type Config struct {
	DevicePath string `json:"device_path"`
	StageDir   string `json:"stage_dir"`
	LockPath   string `json:"lock_path"`
	FstabPath  string `json:"fstab_path"`

	Excludes []string `json:"excludes"`
	Services []string `json:"services"`

	BytesPerInode        uint `json:"bytes_per_inode"`
	ReservedBlockPercent uint `json:"reserved_block_percent"`
}

func LoadConfigFromPath(fs boshsys.FileSystem, path string) (Config, error) {
	var config Config

	if path == "" {
		return config, nil
	}

	bytes, err := fs.ReadFile(path)
	if err != nil {
		return config, bosherr.WrapError(err, "Reading config file")
	}

	err = json.Unmarshal(bytes, &config)
	if err != nil {
		return config, bosherr.WrapError(err, "Parsing config file")
	}

	return config, nil
}

// ApplyTo layers the config over a builtin plan.
func (c Config) ApplyTo(plan boshmigrator.Plan) boshmigrator.Plan {
	if c.DevicePath != "" {
		plan.DevicePath = c.DevicePath
	}
	if c.StageDir != "" {
		plan.StageDir = c.StageDir
	}
	if c.LockPath != "" {
		plan.LockPath = c.LockPath
	}
	if c.FstabPath != "" {
		plan.FstabPath = c.FstabPath
	}
	if c.Excludes != nil {
		plan.Excludes = c.Excludes
	}
	if c.Services != nil {
		plan.Services = c.Services
	}
	if c.BytesPerInode != 0 {
		plan.FormatOptions.BytesPerInode = c.BytesPerInode
	}
	if c.ReservedBlockPercent != 0 {
		plan.FormatOptions.ReservedBlockPercent = c.ReservedBlockPercent
	}

	return plan
}
