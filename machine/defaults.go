package machine

// defaults.go holds the builtin machine-defaults registry and the loading of
// YAML overlay files that replace or extend its entries.

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/esmtest/esmtest/launcher"
)

// Defaults describes the settings assumed for a machine when the caller does
// not override them. ScratchDir may reference environment variables ($USER);
// expansion happens at machine creation time.
type Defaults struct {
	Launcher          launcher.Type `yaml:"launcher"`
	ScratchDir        string        `yaml:"scratch_dir"`
	BaselineDir       string        `yaml:"baseline_dir"`
	AccountRequired   bool          `yaml:"account_required"`
	LauncherQueue     string        `yaml:"launcher_queue"`
	LauncherWalltime  string        `yaml:"launcher_walltime"`
	LauncherExtraArgs string        `yaml:"launcher_extra_args"`
}

// Registry maps machine names to their defaults.
type Registry map[string]Defaults

// DefaultRegistry returns the builtin registry of known machines.
func DefaultRegistry() Registry {
	return Registry{
		"cheyenne": {
			Launcher:          launcher.TypeQsub,
			ScratchDir:        "/glade/scratch/$USER",
			BaselineDir:       "/glade/p/cgd/tss/ctsm_baselines",
			AccountRequired:   true,
			LauncherQueue:     "regular",
			LauncherWalltime:  "06:00:00",
			LauncherExtraArgs: "-l select=1:ncpus=36:mpiprocs=36 -V",
		},
		"hobart": {
			Launcher:    launcher.TypeNoBatch,
			ScratchDir:  "/scratch/cluster/$USER",
			BaselineDir: "/fs/cgd/csm/ccsm_baselines",
		},
		"izumi": {
			Launcher:    launcher.TypeNoBatch,
			ScratchDir:  "/scratch/cluster/$USER",
			BaselineDir: "/fs/cgd/csm/ccsm_baselines",
		},
	}
}

// registryFile is the wire form of a machine-defaults overlay file.
type registryFile struct {
	Machines map[string]Defaults `yaml:"machines"`
}

// Merge reads a YAML overlay and adds its entries to the registry. An entry
// whose name is already present replaces the builtin entry wholesale.
func (r Registry) Merge(reader io.Reader) error {
	dec := yaml.NewDecoder(reader)
	dec.KnownFields(true)

	var file registryFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode machine config: %w", err)
	}
	for name, defaults := range file.Machines {
		r[name] = defaults
	}
	return nil
}

// MergeFile merges the overlay file at path into the registry.
func (r Registry) MergeFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open machine config: %w", err)
	}
	defer f.Close()

	if err := r.Merge(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
