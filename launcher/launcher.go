// Package launcher provides the job launchers used to run the create_test
// command on a machine: directly on the current host, or submitted through a
// batch queuing system. It manages launcher configuration (queue, walltime,
// extra submission arguments) and command execution.
package launcher

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Type identifies a job-launcher implementation.
type Type string

const (
	// TypeQsub submits commands to a PBS batch system via qsub.
	TypeQsub Type = "qsub"
	// TypeNoBatch runs commands directly on the current host.
	TypeNoBatch Type = "no_batch"
)

// Launcher launches a command on a machine. Implementations either execute
// the command synchronously or hand it to a queuing system; callers get an
// error only for the launch itself, never for the eventual result of the
// launched command.
type Launcher interface {
	// Run launches the given argument vector. When stdoutPath or stderrPath
	// is non-empty, the corresponding output stream of the command is
	// directed there.
	Run(argv []string, stdoutPath, stderrPath string) error

	// Type returns the launcher type.
	Type() Type
	// Queue returns the queue commands are submitted to, if any.
	Queue() string
	// Walltime returns the walltime requested for commands, if any.
	Walltime() string
	// ExtraArgs returns extra arguments given to the submission command.
	ExtraArgs() string
}

// Options configures a launcher created by New. Fields that do not apply to
// the launcher type are ignored.
type Options struct {
	Queue     string // submission queue (qsub)
	Walltime  string // requested walltime (qsub)
	Account   string // account the job is billed to (qsub)
	ExtraArgs string // extra whitespace-separated submission arguments
	// DryRun makes Run log the exact invocation without launching anything.
	DryRun bool
}

// New creates a launcher of the given type.
func New(logger zerolog.Logger, typ Type, opts Options) (Launcher, error) {
	switch typ {
	case TypeQsub:
		return newQsub(logger, opts)
	case TypeNoBatch:
		return newNoBatch(logger, opts)
	default:
		return nil, fmt.Errorf("unknown job launcher type %q", typ)
	}
}
