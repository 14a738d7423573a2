package launcher

// qsub.go implements command submission through a PBS batch system. The
// command is rendered as a one-line shell script and piped to qsub on stdin,
// so the launched process runs inside a batch job rather than on the login
// node.

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/rs/zerolog"
)

// Qsub submits commands to a PBS queue.
type Qsub struct {
	logger    zerolog.Logger
	queue     string
	walltime  string
	account   string
	extraArgs string
	dryRun    bool
}

func newQsub(logger zerolog.Logger, opts Options) (*Qsub, error) {
	if opts.Queue == "" {
		return nil, fmt.Errorf("qsub launcher requires a queue")
	}
	if opts.Walltime == "" {
		return nil, fmt.Errorf("qsub launcher requires a walltime")
	}
	return &Qsub{
		logger:    logger,
		queue:     opts.Queue,
		walltime:  opts.Walltime,
		account:   opts.Account,
		extraArgs: opts.ExtraArgs,
		dryRun:    opts.DryRun,
	}, nil
}

// Run submits argv as a batch job. The job script is the shell-quoted command
// line, so argv reaches the compute node argument-for-argument intact.
func (q *Qsub) Run(argv []string, stdoutPath, stderrPath string) error {
	script := shellescape.QuoteCommand(argv)
	args := q.submitArgs(stdoutPath, stderrPath)

	if q.dryRun {
		q.logger.Info().
			Str("command", "qsub "+shellescape.QuoteCommand(args)).
			Str("script", script).
			Msg("Dry run: skipping job submission")
		return nil
	}

	q.logger.Debug().
		Strs("args", args).
		Str("script", script).
		Msg("Submitting job via qsub")

	cmd := exec.Command("qsub", args...)
	cmd.Stdin = strings.NewReader(script + "\n")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to submit job via qsub: %w (stderr: %s)", err, stderr.String())
	}

	q.logger.Info().
		Str("job", strings.TrimSpace(stdout.String())).
		Msg("Job submitted")
	return nil
}

// submitArgs builds the qsub argument vector for one submission.
func (q *Qsub) submitArgs(stdoutPath, stderrPath string) []string {
	args := []string{"-q", q.queue, "-l", "walltime=" + q.walltime}
	if q.account != "" {
		args = append(args, "-A", q.account)
	}
	if stdoutPath != "" {
		args = append(args, "-o", stdoutPath)
	}
	if stderrPath != "" {
		args = append(args, "-e", stderrPath)
	}
	args = append(args, strings.Fields(q.extraArgs)...)
	return args
}

// Type returns TypeQsub.
func (q *Qsub) Type() Type { return TypeQsub }

// Queue returns the submission queue.
func (q *Qsub) Queue() string { return q.queue }

// Walltime returns the walltime requested for submitted jobs.
func (q *Qsub) Walltime() string { return q.walltime }

// ExtraArgs returns extra arguments passed to qsub.
func (q *Qsub) ExtraArgs() string { return q.extraArgs }
