// Package systest implements the test-run orchestration. It turns one test
// selection into the create_test invocations realizing it on a machine, sets
// up the directory the run lives in, and submits each invocation through the
// machine's job launcher.
//
// A run is synchronous and fail-fast: invocations dispatch one at a time and
// the first failure aborts the run. Parallelism across the tests themselves
// is the batch system's business, not this package's.
package systest

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/esmtest/esmtest/machine"
	"github.com/esmtest/esmtest/testlist"
)

// SuiteExpander expands a test-suite name into the compilers it runs with on
// a machine. *testlist.Registry implements it.
type SuiteExpander interface {
	Compilers(suite, machineName string) ([]string, error)
}

// RunOptions configures one test run.
type RunOptions struct {
	// Machine is the machine tests run on. Required.
	Machine *machine.Machine

	// CimePath is the root of the CIME tree providing scripts/create_test.
	CimePath string

	// Selection identifies the tests to run. Build it with NewSelection.
	Selection Selection

	// Suites expands suite selections. Only consulted for suite runs.
	Suites SuiteExpander

	// TestIDBase overrides the generated test id.
	TestIDBase string

	// TestrootBase overrides the machine's scratch directory as the
	// parent of the testroot. Required when the machine has no scratch
	// directory.
	TestrootBase string

	// SkipTestrootCreation uses the testroot without creating it, for
	// when the directory has been prepared already.
	SkipTestrootCreation bool

	// DryRun reports what the run would do without creating directories.
	// The machine's launcher must be built with the same setting for the
	// whole run to be side-effect free.
	DryRun bool

	// Baseline handling and pass-through settings for create_test. Empty
	// values are omitted from the built commands.
	CompareName         string
	GenerateName        string
	BaselineRoot        string
	Walltime            string
	Queue               string
	ExtraCreateTestArgs string
}

// Result reports what a run resolved and dispatched.
type Result struct {
	// TestID is the base test id of the run.
	TestID string

	// Testroot is the directory the run lives in.
	Testroot string

	// TestIDs lists the per-compiler test ids a suite run dispatched.
	// Empty for the other selection modes, whose single invocation uses
	// TestID directly.
	TestIDs []string
}

// Run executes one test run: validate the selection, establish the run
// identity and testroot, then dispatch one create_test invocation per unit
// of work. Suite selections fan out into one invocation per compiler; the
// other selection modes dispatch exactly once. The first error aborts the
// run and is returned as-is, alongside whatever the run resolved before
// failing.
func Run(logger zerolog.Logger, opts RunOptions) (Result, error) {
	var res Result
	if err := opts.Selection.validate(); err != nil {
		return res, err
	}
	if opts.Machine == nil {
		return res, fmt.Errorf("no machine provided")
	}

	testIDBase := opts.TestIDBase
	if testIDBase == "" {
		testIDBase = newTestIDBase(opts.Machine.Name)
	}
	testrootBase := opts.TestrootBase
	if testrootBase == "" {
		testrootBase = opts.Machine.ScratchDir
	}
	// Without a base the testroot would silently come out relative to the
	// current directory.
	if testrootBase == "" {
		return res, fmt.Errorf("no testroot base: machine %s has no scratch directory, so testroot-base must be provided", opts.Machine.Name)
	}
	testroot := testrootPath(testrootBase, testIDBase)
	res.TestID = testIDBase
	res.Testroot = testroot

	logger.Info().
		Stringer("selection", opts.Selection).
		Str("test_id", testIDBase).
		Str("testroot", testroot).
		Msg("Starting test run")

	if !opts.SkipTestrootCreation {
		if err := makeTestroot(logger, testroot, testIDBase, opts.DryRun); err != nil {
			return res, err
		}
	}

	sharedArgs := createTestArgs(createTestOptions{
		compareName:  opts.CompareName,
		generateName: opts.GenerateName,
		baselineRoot: opts.BaselineRoot,
		account:      opts.Machine.Account,
		walltime:     opts.Walltime,
		queue:        opts.Queue,
		extraArgs:    opts.ExtraCreateTestArgs,
	})

	if opts.Selection.suite != "" {
		ids, err := runTestSuite(logger, opts, testIDBase, testroot, sharedArgs)
		res.TestIDs = ids
		return res, err
	}

	var testArgs []string
	switch {
	case opts.Selection.testfile != "":
		testArgs = []string{"--testfile", opts.Selection.testfile}
	default:
		testArgs = opts.Selection.tests
	}
	return res, runCreateTest(logger, opts, testArgs, testIDBase, testroot, sharedArgs)
}

// runTestSuite dispatches one create_test invocation per compiler the suite
// runs with on this machine, each scoped to the suite's tests for that
// compiler and carrying a compiler-suffixed test id. It returns the ids it
// dispatched.
func runTestSuite(logger zerolog.Logger, opts RunOptions, testIDBase, testroot string, sharedArgs []string) ([]string, error) {
	suite := opts.Selection.suite
	if opts.Suites == nil {
		return nil, fmt.Errorf("no suite expander available to expand suite %s", suite)
	}
	compilers, err := opts.Suites.Compilers(suite, opts.Machine.Name)
	if err != nil {
		return nil, err
	}
	// An empty expansion wraps ErrNoCompilers no matter which expander
	// produced it.
	if len(compilers) == 0 {
		return nil, fmt.Errorf("suite %s expanded to no compilers for machine %s: %w", suite, opts.Machine.Name, testlist.ErrNoCompilers)
	}

	logger.Info().
		Str("suite", suite).
		Strs("compilers", compilers).
		Msg("Running test suite")

	ids := make([]string, 0, len(compilers))
	for _, compiler := range compilers {
		testArgs := []string{
			"--xml-category", suite,
			"--xml-machine", opts.Machine.Name,
			"--xml-compiler", compiler,
		}
		testID := compilerTestID(testIDBase, compiler)
		if err := runCreateTest(logger, opts, testArgs, testID, testroot, sharedArgs); err != nil {
			return ids, err
		}
		ids = append(ids, testID)
	}
	return ids, nil
}

// runCreateTest builds and launches a single create_test invocation, with
// its output captured under the testroot.
func runCreateTest(logger zerolog.Logger, opts RunOptions, testArgs []string, testID, testroot string, sharedArgs []string) error {
	command := buildCreateTestCommand(opts.CimePath, testArgs, testID, testroot, sharedArgs)
	stdoutPath := filepath.Join(testroot, "STDOUT."+testID)
	stderrPath := filepath.Join(testroot, "STDERR."+testID)

	logger.Info().Str("test_id", testID).Msg("Launching create_test")
	if err := opts.Machine.JobLauncher.Run(command, stdoutPath, stderrPath); err != nil {
		return fmt.Errorf("failed to launch create_test for test id %s: %w", testID, err)
	}
	return nil
}
