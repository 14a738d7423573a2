// Package machine models the HPC machines that tests run on. A Machine
// bundles the resolved per-machine settings together with the job launcher
// used to start commands there. Settings resolve with a fixed precedence:
// explicit caller value, then the defaults registry, then empty.
package machine

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/esmtest/esmtest/launcher"
)

// Machine is a resolved machine. It is built once per run by Create and not
// modified afterwards.
type Machine struct {
	Name        string
	Account     string
	ScratchDir  string
	BaselineDir string
	JobLauncher launcher.Launcher
}

// Options carries caller overrides for Create. Zero-value fields fall back to
// the registry entry for the machine.
type Options struct {
	// ScratchDir overrides the machine's scratch directory.
	ScratchDir string

	// Account overrides the account used for job submission. When empty,
	// the PROJECT environment variable is consulted before the machine's
	// requirement is enforced.
	Account string

	// JobLauncherQueue, JobLauncherWalltime and JobLauncherExtraArgs
	// override the corresponding launcher settings.
	JobLauncherQueue     string
	JobLauncherWalltime  string
	JobLauncherExtraArgs string

	// DryRun is passed through to the launcher; a dry-run launcher logs
	// commands instead of starting them.
	DryRun bool

	// AllowMissing relaxes resolution so that a Machine can always be
	// built, for example to render default values in help text. Missing
	// account codes are tolerated and unknown machines are not warned
	// about.
	AllowMissing bool
}

// Create resolves name against the registry and the given overrides and
// returns the machine with its job launcher ready to use.
//
// A machine absent from the registry is still usable: it gets the no-batch
// launcher and no default directories, so the caller must supply whatever
// settings the run needs.
func Create(logger zerolog.Logger, name string, registry Registry, opts Options) (*Machine, error) {
	defaults, known := registry[name]
	if !known && !opts.AllowMissing {
		logger.Warn().
			Str("machine", name).
			Msg("Machine not in defaults registry; assuming no batch system and no default directories")
	}

	account := opts.Account
	if account == "" {
		account = os.Getenv("PROJECT")
	}
	if account == "" && defaults.AccountRequired && !opts.AllowMissing {
		return nil, fmt.Errorf("machine %s requires an account and none was found; pass one explicitly or set $PROJECT", name)
	}

	scratchDir := opts.ScratchDir
	if scratchDir == "" {
		scratchDir = os.ExpandEnv(defaults.ScratchDir)
	}

	launcherType := defaults.Launcher
	if launcherType == "" {
		launcherType = launcher.TypeNoBatch
	}

	queue := opts.JobLauncherQueue
	if queue == "" {
		queue = defaults.LauncherQueue
	}
	walltime := opts.JobLauncherWalltime
	if walltime == "" {
		walltime = defaults.LauncherWalltime
	}
	extraArgs := opts.JobLauncherExtraArgs
	if extraArgs == "" {
		extraArgs = defaults.LauncherExtraArgs
	}

	jobLauncher, err := launcher.New(logger, launcherType, launcher.Options{
		Queue:     queue,
		Walltime:  walltime,
		Account:   account,
		ExtraArgs: extraArgs,
		DryRun:    opts.DryRun,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create job launcher for machine %s: %w", name, err)
	}

	return &Machine{
		Name:        name,
		Account:     account,
		ScratchDir:  scratchDir,
		BaselineDir: defaults.BaselineDir,
		JobLauncher: jobLauncher,
	}, nil
}
