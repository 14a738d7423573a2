package cli

// This file contains submission recording functionality for saving
// run metadata to the history directory.

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/esmtest/esmtest/history"
	"github.com/esmtest/esmtest/model"
)

func (a *App) recordSubmission(sub *model.Submission) error {
	// Get repository root
	repoRoot, err := history.RepoRoot()
	if err != nil {
		return err
	}

	// Store repo name in the submission
	if sub.Git == nil {
		sub.Git = &model.Git{}
	}
	sub.Git.Repo = filepath.Base(repoRoot)

	// Get relative path from repo root
	relPath := "."
	if sub.WorkDir != "" {
		if rel, err := filepath.Rel(repoRoot, sub.WorkDir); err == nil {
			relPath = rel
		}
	}

	// Update WorkDir to be relative to repo root
	sub.WorkDir = relPath

	// Create directory in .esmtest/history/<timestamp>-<machine>-<id>
	runName := sub.Timestamp.Format("20060102-150405")
	if sub.Machine != "" {
		runName += "-" + sub.Machine
	}
	if sub.ID != "" {
		runName += "-" + sub.ID
	}
	runDir := filepath.Join(repoRoot, ".esmtest", "history", runName)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}

	// Write submission metadata
	metadataPath := filepath.Join(runDir, "submission.json")
	metadataJSON, err := json.MarshalIndent(sub, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal submission: %w", err)
	}

	if err := os.WriteFile(metadataPath, metadataJSON, 0644); err != nil {
		return fmt.Errorf("failed to write submission metadata: %w", err)
	}

	a.logger.Debug().Str("dir", runDir).Str("id", sub.ID).Msg("Recorded submission")
	return nil
}
