package launcher

// nobatch.go implements direct command execution for machines without a
// batch system. The command runs in the foreground on the current host.

import (
	"fmt"
	"os"
	"os/exec"

	"al.essio.dev/pkg/shellescape"
	"github.com/rs/zerolog"
)

// NoBatch runs commands directly on the local machine.
type NoBatch struct {
	logger zerolog.Logger
	dryRun bool
}

func newNoBatch(logger zerolog.Logger, opts Options) (*NoBatch, error) {
	return &NoBatch{logger: logger, dryRun: opts.DryRun}, nil
}

// Run executes argv on the local host, writing its output to stdoutPath and
// stderrPath. Empty paths inherit the calling process's streams.
func (n *NoBatch) Run(argv []string, stdoutPath, stderrPath string) error {
	if len(argv) == 0 {
		return fmt.Errorf("no command to run")
	}

	if n.dryRun {
		n.logger.Info().
			Str("command", shellescape.QuoteCommand(argv)).
			Msg("Dry run: skipping command execution")
		return nil
	}

	n.logger.Debug().
		Str("command", shellescape.QuoteCommand(argv)).
		Msg("Running command")

	cmd := exec.Command(argv[0], argv[1:]...)

	if stdoutPath != "" {
		stdout, err := os.Create(stdoutPath)
		if err != nil {
			return fmt.Errorf("failed to create stdout file: %w", err)
		}
		defer stdout.Close()
		cmd.Stdout = stdout
	} else {
		cmd.Stdout = os.Stdout
	}

	if stderrPath != "" {
		stderr, err := os.Create(stderrPath)
		if err != nil {
			return fmt.Errorf("failed to create stderr file: %w", err)
		}
		defer stderr.Close()
		cmd.Stderr = stderr
	} else {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run %s: %w", argv[0], err)
	}
	return nil
}

// Type returns TypeNoBatch.
func (n *NoBatch) Type() Type { return TypeNoBatch }

// Queue returns the empty string; direct execution has no queue.
func (n *NoBatch) Queue() string { return "" }

// Walltime returns the empty string; direct execution has no walltime.
func (n *NoBatch) Walltime() string { return "" }

// ExtraArgs returns the empty string; direct execution takes no extra args.
func (n *NoBatch) ExtraArgs() string { return "" }
