package cli

// This file contains Git integration utilities for retrieving
// information about the model checkout tests are submitted from.

import (
	"fmt"
	"os/exec"
	"strings"
)

func (a *App) getGitInfo() (commit, branch, describe string, err error) {
	// Get current commit hash
	cmd := exec.Command("git", "rev-parse", "HEAD")
	output, err := cmd.Output()
	if err != nil {
		return "", "", "", fmt.Errorf("failed to get git commit: %w", err)
	}
	commit = strings.TrimSpace(string(output))

	// Get current branch
	cmd = exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD")
	output, err = cmd.Output()
	if err != nil {
		return "", "", "", fmt.Errorf("failed to get git branch: %w", err)
	}
	branch = strings.TrimSpace(string(output))

	// Model checkouts are usually identified by release tag, so also pick
	// up the describe output. Not every checkout has a tag to describe.
	cmd = exec.Command("git", "describe", "--tags", "--always")
	if output, err := cmd.Output(); err == nil {
		describe = strings.TrimSpace(string(output))
	}

	return commit, branch, describe, nil
}
