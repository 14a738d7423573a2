package cli

// This file contains the list command for displaying previous submissions.

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/esmtest/esmtest/history"
)

func (a *App) list(ctx *cli.Context) error {
	filterMachine := ctx.String("machine")
	limit := ctx.Int("limit")

	// Get esmtest root directory
	root, err := history.Root()
	if err != nil {
		return err
	}

	// Load all history entries
	entries, err := history.LoadEntries(a.logger, root)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	// Apply machine filter if specified
	var filtered []history.Entry
	for _, entry := range entries {
		if filterMachine == "" || entry.Submission.Machine == filterMachine {
			filtered = append(filtered, entry)
		}
	}

	if len(filtered) == 0 {
		if filterMachine != "" {
			fmt.Printf("No submissions found for machine: %s\n", filterMachine)
		} else {
			fmt.Println("No submissions found")
		}
		return nil
	}

	// Sort by timestamp (newest first)
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Submission.Timestamp.After(filtered[j].Submission.Timestamp)
	})

	// Apply limit
	display := filtered
	if limit > 0 && limit < len(display) {
		display = display[:limit]
	}

	fmt.Printf("\n=== Submissions (%d total) ===\n\n", len(filtered))

	for _, entry := range display {
		sub := entry.Submission
		timestamp := sub.Timestamp.Format("2006-01-02 15:04:05")

		// Format duration
		duration := sub.Duration.Round(time.Millisecond)

		// Determine status indicator
		status := "✓"
		if sub.ExitCode != 0 {
			status = "✗"
		}

		dryRun := ""
		if sub.DryRun {
			dryRun = "  [dry-run]"
		}

		// Format args (skip the program name)
		args := ""
		if len(sub.Args) > 1 {
			args = strings.Join(sub.Args[1:], " ")
		}

		fmt.Printf("%s  %s  [%s]  exit=%d  id=%s%s\n", status, timestamp, duration, sub.ExitCode, sub.ID, dryRun)
		if args != "" {
			fmt.Printf("   Args: %s\n", args)
		}
		if sub.Machine != "" {
			fmt.Printf("   Machine: %s\n", sub.Machine)
		}
		if sub.Testroot != "" {
			fmt.Printf("   Testroot: %s\n", sub.Testroot)
		}
		if len(sub.TestIDs) > 0 {
			fmt.Printf("   Test ids: %s\n", strings.Join(sub.TestIDs, " "))
		}
		if sub.Git != nil && sub.Git.Commit != "" {
			shortCommit := sub.Git.Commit
			if len(shortCommit) > 8 {
				shortCommit = shortCommit[:8]
			}
			fmt.Printf("   Commit: %s", shortCommit)
			if sub.Git.Describe != "" {
				fmt.Printf(" (%s)", sub.Git.Describe)
			} else if sub.Git.Branch != "" {
				fmt.Printf(" (%s)", sub.Git.Branch)
			}
			fmt.Println()
		}
		fmt.Printf("   %s\n", entry.FullPath)
		fmt.Println()
	}

	fmt.Println("\nView create_test output: cat <testroot>/STDOUT.<id>")

	return nil
}
