package systest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// ErrTestrootExists reports that the testroot directory is already present.
var ErrTestrootExists = errors.New("testroot already exists")

// testrootPath returns the testroot for a run: a directory named after the
// base test id, under base.
func testrootPath(base, testIDBase string) string {
	return filepath.Join(base, testDirName(testIDBase))
}

func testDirName(testIDBase string) string {
	return "tests_" + testIDBase
}

// makeTestroot creates the testroot directory plus a same-named symlink in
// the current directory pointing at it, so the run is easy to find from
// where it was started. The testroot must not already exist; reusing a
// previous run's directory would mix results. A dry run performs the same
// check and logs the intent without touching the filesystem.
func makeTestroot(logger zerolog.Logger, testroot, testIDBase string, dryRun bool) error {
	if _, err := os.Lstat(testroot); err == nil {
		return fmt.Errorf("%s: %w", testroot, ErrTestrootExists)
	}
	logger.Info().Str("testroot", testroot).Msg("Making testroot directory")
	if dryRun {
		return nil
	}
	if err := os.MkdirAll(testroot, 0o755); err != nil {
		return fmt.Errorf("failed to make testroot: %w", err)
	}
	if err := makeLink(testroot, testDirName(testIDBase)); err != nil {
		return fmt.Errorf("failed to link testroot into current directory: %w", err)
	}
	return nil
}

// makeLink points linkName at target. A symlink that already points at
// target is left alone and one pointing elsewhere is replaced; anything else
// occupying linkName is an error.
func makeLink(target, linkName string) error {
	info, err := os.Lstat(linkName)
	switch {
	case err == nil && info.Mode()&os.ModeSymlink == 0:
		return fmt.Errorf("%s exists and is not a symlink", linkName)
	case err == nil:
		existing, err := os.Readlink(linkName)
		if err != nil {
			return fmt.Errorf("failed to read existing link: %w", err)
		}
		if existing == target {
			return nil
		}
		if err := os.Remove(linkName); err != nil {
			return fmt.Errorf("failed to remove stale link: %w", err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("failed to stat %s: %w", linkName, err)
	}
	if err := os.Symlink(target, linkName); err != nil {
		return fmt.Errorf("failed to create link: %w", err)
	}
	return nil
}
