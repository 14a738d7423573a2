package model

import "time"

// Submission represents a single run of the run command: one test selection
// handed to create_test on one machine.
type Submission struct {
	// Test id shared by every create_test invocation of this submission
	ID string `json:"id"`
	// Timestamp when the submission started
	Timestamp time.Time `json:"timestamp"`
	// Command-line arguments (including command name)
	Args []string `json:"args"`
	// Working directory the command was run from (relative to repo root)
	WorkDir string `json:"workdir"`
	// Machine the tests were submitted on
	Machine string `json:"machine"`
	// Human-readable description of the test selection
	Selection string `json:"selection,omitempty"`
	// Directory the tests were created in
	Testroot string `json:"testroot,omitempty"`
	// Per-compiler test ids of a suite submission
	TestIDs []string `json:"test_ids,omitempty"`
	// True when nothing was actually submitted
	DryRun bool `json:"dry_run,omitempty"`
	// Exit code of the submission
	ExitCode int `json:"exit_code"`
	// Duration of the submission
	Duration time.Duration `json:"duration"`
	// Git information of the model checkout
	Git *Git `json:"git,omitempty"`
}

// Git contains git repository information
type Git struct {
	// Git commit hash at time of submission
	Commit string `json:"commit,omitempty"`
	// Git branch at time of submission
	Branch string `json:"branch,omitempty"`
	// Git describe output, the usual way model checkouts are identified
	Describe string `json:"describe,omitempty"`
	// Repository name
	Repo string `json:"repo,omitempty"`
}
