// Package testlist reads test-list files, which define the tests making up
// each test suite and the machine/compiler combinations they run on. The
// orchestration layer uses it to expand a suite name into the compilers to
// fan out over.
package testlist

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNoCompilers reports a suite lookup that matched no test entries.
var ErrNoCompilers = errors.New("no compilers found")

// Entry is one test definition in a test-list file.
type Entry struct {
	Name     string `yaml:"name"`
	Suite    string `yaml:"suite"`
	Machine  string `yaml:"machine"`
	Compiler string `yaml:"compiler"`
}

// testlistFile is the wire form of a test-list file.
type testlistFile struct {
	Tests []Entry `yaml:"tests"`
}

// Registry holds the test definitions from one test-list file, in file order.
type Registry struct {
	entries []Entry
}

// Load reads a test-list from reader.
func Load(reader io.Reader) (*Registry, error) {
	dec := yaml.NewDecoder(reader)
	dec.KnownFields(true)

	var file testlistFile
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode test list: %w", err)
	}

	for i, entry := range file.Tests {
		if entry.Suite == "" || entry.Machine == "" || entry.Compiler == "" {
			return nil, fmt.Errorf("test entry %d (%q) must define suite, machine and compiler", i, entry.Name)
		}
	}
	return &Registry{entries: file.Tests}, nil
}

// LoadFile reads the test-list file at path.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open test list: %w", err)
	}
	defer f.Close()

	registry, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return registry, nil
}

// Compilers returns the compilers that suite runs with on machine, in file
// order with duplicates dropped. A lookup matching no entries is an error
// wrapping ErrNoCompilers: an empty expansion would silently run nothing.
func (r *Registry) Compilers(suite, machine string) ([]string, error) {
	var compilers []string
	seen := make(map[string]bool)
	for _, entry := range r.entries {
		if entry.Suite != suite || entry.Machine != machine {
			continue
		}
		if seen[entry.Compiler] {
			continue
		}
		seen[entry.Compiler] = true
		compilers = append(compilers, entry.Compiler)
	}
	if len(compilers) == 0 {
		return nil, fmt.Errorf("suite %s has no tests defined for machine %s: %w", suite, machine, ErrNoCompilers)
	}
	return compilers, nil
}
