package history

// This file contains shared history utilities for loading and parsing
// recorded submissions.

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/esmtest/esmtest/model"
)

type Entry struct {
	Submission model.Submission
	FullPath   string
}

// RepoRoot returns the root of the enclosing git repository.
func RepoRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// Root returns the .esmtest directory path from the git repository root.
func Root() (string, error) {
	repoRoot, err := RepoRoot()
	if err != nil {
		return "", err
	}
	root := filepath.Join(repoRoot, ".esmtest")

	// Check if .esmtest directory exists
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return "", fmt.Errorf("no submissions found in %s", root)
	}

	return root, nil
}

// LoadEntries loads all submission entries from the .esmtest directory.
func LoadEntries(logger zerolog.Logger, root string) ([]Entry, error) {
	var entries []Entry

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			subPath := filepath.Join(path, "submission.json")
			if _, err := os.Stat(subPath); err == nil {
				sub, err := parseSubmissionJSON(subPath)
				if err != nil {
					logger.Warn().Err(err).Str("path", subPath).Msg("Failed to parse submission.json")
					return nil
				}

				entries = append(entries, Entry{
					Submission: sub,
					FullPath:   path,
				})
			}
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk .esmtest directory: %w", err)
	}

	return entries, nil
}

// parseSubmissionJSON parses a submission.json file.
func parseSubmissionJSON(path string) (model.Submission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Submission{}, err
	}

	var sub model.Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return model.Submission{}, err
	}

	return sub, nil
}
