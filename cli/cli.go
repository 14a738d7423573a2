package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/esmtest/esmtest/machine"
)

const AppName = "esmtest"

const defaultTestlistFile = "cime_config/testdefs/testlist.yaml"

type App struct {
	logger zerolog.Logger
	cli    *cli.App
}

func New() *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger :=
		log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
			NoColor:    !term.IsTerminal(int(os.Stderr.Fd())),
		})

	machineName, err := machine.DetectName()
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to detect machine name")
	}

	// A relaxed-mode machine for the current host, used only to render
	// per-machine default values in the flag help.
	defaultMachine, err := machine.Create(logger, machineName, machine.DefaultRegistry(), machine.Options{
		AllowMissing: true,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to resolve machine defaults for help text")
	}
	var defaultAccount, defaultScratchDir, defaultQueue, defaultWalltime, defaultExtraArgs string
	if defaultMachine != nil {
		defaultAccount = defaultMachine.Account
		defaultScratchDir = defaultMachine.ScratchDir
		defaultQueue = defaultMachine.JobLauncher.Queue()
		defaultWalltime = defaultMachine.JobLauncher.Walltime()
		defaultExtraArgs = defaultMachine.JobLauncher.ExtraArgs()
	}

	app := &App{
		logger: logger,
		cli: &cli.App{
			Name:           AppName,
			Usage:          "Driver for running earth system model system tests",
			DefaultCommand: "run",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "verbose",
					Usage: "Enable verbose (debug) logging",
				},
			},
			Before: func(ctx *cli.Context) error {
				if ctx.Bool("verbose") {
					zerolog.SetGlobalLevel(zerolog.DebugLevel)
				}
				return nil
			},
		},
	}
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "run",
		Usage:  "Run a test suite, a file of tests, or individual tests",
		Action: app.run,
		Description: `Run system tests through create_test.

Typical usage:

  esmtest run -s aux_clm -c COMPARE_NAME -g GENERATE_NAME

This detects the current machine, expands the named suite across the
compilers it is defined for there, and launches one create_test invocation
per compiler, all under a fresh testroot directory. Tests can also be given
as a file of test names (-f) or directly on the command line (-t, which can
be repeated).

The -c/--compare and -g/--generate arguments are required unless
--skip-compare and/or --skip-generate are given.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "suite-name",
				Aliases: []string{"s"},
				Usage:   "Name of test suite to run",
			},
			&cli.StringFlag{
				Name:    "testfile",
				Aliases: []string{"f"},
				Usage:   "Path to file listing tests to run",
			},
			&cli.StringSliceFlag{
				Name:    "testname",
				Aliases: []string{"t"},
				Usage:   "One or more test names to run (flag can be repeated)",
			},
			&cli.StringFlag{
				Name:    "compare",
				Aliases: []string{"c"},
				Usage:   "Baseline name (often tag) to compare against (required unless --skip-compare is given)",
			},
			&cli.BoolFlag{
				Name:  "skip-compare",
				Usage: "Do not compare against baselines",
			},
			&cli.StringFlag{
				Name:    "generate",
				Aliases: []string{"g"},
				Usage:   "Baseline name (often tag) to generate (required unless --skip-generate is given)",
			},
			&cli.BoolFlag{
				Name:  "skip-generate",
				Usage: "Do not generate baselines",
			},
			&cli.StringFlag{
				Name: "account",
				Usage: "Account number to use for job submission; needed on some machines\n" +
					"(default for this machine: " + defaultAccount + ")",
			},
			&cli.StringFlag{
				Name:  "testid-base",
				Usage: "Base string used for the test id (default: auto-generated from date, time and machine)",
			},
			&cli.StringFlag{
				Name: "testroot-base",
				Usage: "Path in which the testroot should be put; must be provided for unknown machines\n" +
					"(default for this machine: " + defaultScratchDir + ")",
			},
			&cli.StringFlag{
				Name:  "baseline-root",
				Usage: "Path in which baselines should be compared and generated (default: the create_test default for this machine)",
			},
			&cli.StringFlag{
				Name:  "walltime",
				Usage: "Walltime for each test; test suites generally define their own",
			},
			&cli.StringFlag{
				Name:  "queue",
				Usage: "Queue to which tests are submitted (default: the create_test default for this machine)",
			},
			&cli.StringFlag{
				Name:  "extra-create-test-args",
				Usage: "String giving extra arguments to pass to create_test",
			},
			&cli.StringFlag{
				Name: "job-launcher-queue",
				Usage: "Queue to which the create_test command itself is submitted; only applies on machines\n" +
					"where create_test runs as a batch job (default for this machine: " + defaultQueue + ")",
			},
			&cli.StringFlag{
				Name: "job-launcher-walltime",
				Usage: "Walltime for the create_test command itself; only applies on machines\n" +
					"where create_test runs as a batch job (default for this machine: " + defaultWalltime + ")",
			},
			&cli.StringFlag{
				Name: "job-launcher-extra-args",
				Usage: "Extra arguments for the command that launches create_test\n" +
					"(default for this machine: " + defaultExtraArgs + ")",
			},
			&cli.BoolFlag{
				Name:  "skip-testroot-creation",
				Usage: "Do not create the testroot directory; use when it already exists",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Print what would happen, but do not run any commands (most useful with --verbose)",
			},
			&cli.StringFlag{
				Name:  "machine-name",
				Usage: "Name of the machine to run create_test for; useful for testing this tool",
				Value: machineName,
			},
			&cli.StringFlag{
				Name:    "cime-path",
				Usage:   "Path to the CIME tree whose scripts/create_test is run",
				EnvVars: []string{"CIME_PATH"},
			},
			&cli.StringFlag{
				Name:    "testlist-file",
				Usage:   "Path to the test-list file defining the test suites",
				Value:   defaultTestlistFile,
				EnvVars: []string{"ESMTEST_TESTLIST"},
			},
			machineConfigFlag(),
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "machines",
		Usage:  "List the known machines and their defaults",
		Action: app.machines,
		Flags: []cli.Flag{
			machineConfigFlag(),
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "list",
		Usage:  "List previous submissions",
		Action: app.list,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "machine",
				Aliases: []string{"m"},
				Usage:   "Filter by machine name (e.g., cheyenne)",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Limit number of results (default: 20)",
				Value:   20,
			},
		},
	})
	return app
}

func machineConfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "machine-config",
		Usage:   "Path to a YAML file adding to or overriding the builtin machine defaults",
		EnvVars: []string{"ESMTEST_MACHINES"},
	}
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && commit != "" {
		shortCommit := commit
		if len(shortCommit) > 8 {
			shortCommit = shortCommit[:8]
		}
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, shortCommit, date)
	}
}
