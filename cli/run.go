package cli

// This file contains the run command: resolving flags into a machine and a
// test selection, then dispatching the run.

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/esmtest/esmtest/machine"
	"github.com/esmtest/esmtest/model"
	"github.com/esmtest/esmtest/systest"
	"github.com/esmtest/esmtest/testlist"
)

func (a *App) run(ctx *cli.Context) error {
	startTime := time.Now()

	compareName := ctx.String("compare")
	if err := validateBaselineFlags(compareName, ctx.Bool("skip-compare"), "--compare", "--skip-compare"); err != nil {
		return err
	}
	generateName := ctx.String("generate")
	if err := validateBaselineFlags(generateName, ctx.Bool("skip-generate"), "--generate", "--skip-generate"); err != nil {
		return err
	}

	suiteName := ctx.String("suite-name")
	selection, err := systest.NewSelection(suiteName, ctx.String("testfile"), ctx.StringSlice("testname"))
	if err != nil {
		return err
	}

	cimePath := ctx.String("cime-path")
	if cimePath == "" {
		return fmt.Errorf("--cime-path is required (or set $CIME_PATH)")
	}

	registry := machine.DefaultRegistry()
	if configPath := ctx.String("machine-config"); configPath != "" {
		if err := registry.MergeFile(configPath); err != nil {
			return err
		}
	}

	machineName := ctx.String("machine-name")
	a.logger.Info().Str("machine", machineName).Msg("Running on machine")

	mach, err := machine.Create(a.logger, machineName, registry, machine.Options{
		ScratchDir:           ctx.String("testroot-base"),
		Account:              ctx.String("account"),
		JobLauncherQueue:     ctx.String("job-launcher-queue"),
		JobLauncherWalltime:  ctx.String("job-launcher-walltime"),
		JobLauncherExtraArgs: ctx.String("job-launcher-extra-args"),
		DryRun:               ctx.Bool("dry-run"),
	})
	if err != nil {
		return err
	}

	a.logger.Debug().
		Str("name", mach.Name).
		Str("account", mach.Account).
		Str("scratch_dir", mach.ScratchDir).
		Str("baseline_dir", mach.BaselineDir).
		Str("launcher", string(mach.JobLauncher.Type())).
		Msg("Machine resolved")

	// The test-list file only has to exist for suite runs.
	var suites systest.SuiteExpander
	if suiteName != "" {
		testlists, err := testlist.LoadFile(ctx.String("testlist-file"))
		if err != nil {
			return err
		}
		suites = testlists
	}

	// Prepare submission recording
	sub := &model.Submission{
		Timestamp: startTime,
		Args:      os.Args,
		Machine:   mach.Name,
		Selection: selection.String(),
		DryRun:    ctx.Bool("dry-run"),
	}

	// Capture working directory
	if cwd, err := os.Getwd(); err == nil {
		sub.WorkDir = cwd
	}

	// Capture git info (non-fatal if it fails)
	if commit, branch, describe, err := a.getGitInfo(); err == nil {
		sub.Git = &model.Git{
			Commit:   commit,
			Branch:   branch,
			Describe: describe,
		}
	}

	var finalErr error
	defer func() {
		sub.Duration = time.Since(startTime)
		if finalErr != nil {
			sub.ExitCode = 1
		} else {
			sub.ExitCode = 0
		}

		// Record the submission (non-fatal if it fails)
		if err := a.recordSubmission(sub); err != nil {
			a.logger.Warn().Err(err).Msg("Failed to record submission")
		}
	}()

	res, err := systest.Run(a.logger, systest.RunOptions{
		Machine:              mach,
		CimePath:             cimePath,
		Selection:            selection,
		Suites:               suites,
		TestIDBase:           ctx.String("testid-base"),
		TestrootBase:         ctx.String("testroot-base"),
		SkipTestrootCreation: ctx.Bool("skip-testroot-creation"),
		DryRun:               ctx.Bool("dry-run"),
		CompareName:          compareName,
		GenerateName:         generateName,
		BaselineRoot:         ctx.String("baseline-root"),
		Walltime:             ctx.String("walltime"),
		Queue:                ctx.String("queue"),
		ExtraCreateTestArgs:  ctx.String("extra-create-test-args"),
	})
	sub.ID = res.TestID
	sub.Testroot = res.Testroot
	sub.TestIDs = res.TestIDs
	finalErr = err
	return err
}

// validateBaselineFlags enforces that exactly one of a baseline name and its
// skip flag is given.
func validateBaselineFlags(name string, skip bool, nameFlag, skipFlag string) error {
	if name != "" && skip {
		return fmt.Errorf("%s and %s are mutually exclusive", nameFlag, skipFlag)
	}
	if name == "" && !skip {
		return fmt.Errorf("either %s or %s must be provided", nameFlag, skipFlag)
	}
	return nil
}
