package systest

import (
	"errors"
	"fmt"
)

// ErrSelection reports an invalid test selection.
var ErrSelection = errors.New("exactly one of suite-name, testfile or testname must be provided")

// Selection identifies the tests a run covers: a named suite, a file listing
// test names, or test names given directly. Exactly one mode is set;
// NewSelection is the only way to obtain a valid Selection and the zero value
// is invalid.
type Selection struct {
	suite    string
	testfile string
	tests    []string
}

// NewSelection builds a Selection from the raw inputs, enforcing that exactly
// one of them is provided.
func NewSelection(suite, testfile string, tests []string) (Selection, error) {
	s := Selection{suite: suite, testfile: testfile, tests: tests}
	if err := s.validate(); err != nil {
		return Selection{}, err
	}
	return s, nil
}

func (s Selection) validate() error {
	provided := 0
	if s.suite != "" {
		provided++
	}
	if s.testfile != "" {
		provided++
	}
	if len(s.tests) > 0 {
		provided++
	}
	if provided != 1 {
		return fmt.Errorf("%w (got %d)", ErrSelection, provided)
	}
	return nil
}

func (s Selection) String() string {
	switch {
	case s.suite != "":
		return fmt.Sprintf("suite %s", s.suite)
	case s.testfile != "":
		return fmt.Sprintf("testfile %s", s.testfile)
	case len(s.tests) > 0:
		return fmt.Sprintf("tests %v", s.tests)
	}
	return "no tests"
}
