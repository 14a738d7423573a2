package systest

import (
	"path/filepath"
	"strings"
)

// createTestOptions holds the option values shared by every create_test
// invocation within one run.
type createTestOptions struct {
	compareName  string
	generateName string
	baselineRoot string
	account      string
	walltime     string
	queue        string
	extraArgs    string
}

// createTestArgs renders opts as create_test arguments. Unset options are
// omitted entirely so create_test applies its own defaults. The account maps
// to create_test's --project flag. Extra args are appended whitespace-split
// and unvalidated.
func createTestArgs(opts createTestOptions) []string {
	var args []string
	if opts.compareName != "" {
		args = append(args, "--compare", opts.compareName)
	}
	if opts.generateName != "" {
		args = append(args, "--generate", opts.generateName)
	}
	if opts.baselineRoot != "" {
		args = append(args, "--baseline-root", opts.baselineRoot)
	}
	if opts.account != "" {
		args = append(args, "--project", opts.account)
	}
	if opts.walltime != "" {
		args = append(args, "--walltime", opts.walltime)
	}
	if opts.queue != "" {
		args = append(args, "--queue", opts.queue)
	}
	return append(args, strings.Fields(opts.extraArgs)...)
}

// buildCreateTestCommand assembles the argument vector for one create_test
// invocation: the tool path, the run identity, the selection-specific args
// and the shared args, in that order.
func buildCreateTestCommand(cimePath string, testArgs []string, testID, testroot string, sharedArgs []string) []string {
	command := []string{
		filepath.Join(cimePath, "scripts", "create_test"),
		"--test-id", testID,
		"--test-root", testroot,
	}
	command = append(command, testArgs...)
	return append(command, sharedArgs...)
}
