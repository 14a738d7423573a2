package systest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCreateTestArgs(t *testing.T) {
	tests := []struct {
		name string
		opts createTestOptions
		want []string
	}{
		{
			name: "no options",
			opts: createTestOptions{},
			want: nil,
		},
		{
			name: "compare only",
			opts: createTestOptions{compareName: "ctsm1.0.0"},
			want: []string{"--compare", "ctsm1.0.0"},
		},
		{
			name: "generate only",
			opts: createTestOptions{generateName: "ctsm1.0.1"},
			want: []string{"--generate", "ctsm1.0.1"},
		},
		{
			name: "account maps to project",
			opts: createTestOptions{account: "P0001"},
			want: []string{"--project", "P0001"},
		},
		{
			name: "subset keeps fixed order",
			opts: createTestOptions{
				compareName:  "v1",
				baselineRoot: "/b",
				queue:        "q1",
				extraArgs:    "--foo bar",
			},
			want: []string{"--compare", "v1", "--baseline-root", "/b", "--queue", "q1", "--foo", "bar"},
		},
		{
			name: "all options in fixed order",
			opts: createTestOptions{
				compareName:  "base1",
				generateName: "base2",
				baselineRoot: "/glade/baselines",
				account:      "P0001",
				walltime:     "01:30:00",
				queue:        "regular",
				extraArgs:    "--retry 2",
			},
			want: []string{
				"--compare", "base1",
				"--generate", "base2",
				"--baseline-root", "/glade/baselines",
				"--project", "P0001",
				"--walltime", "01:30:00",
				"--queue", "regular",
				"--retry", "2",
			},
		},
		{
			name: "extra args tokenized on any whitespace",
			opts: createTestOptions{extraArgs: "  --foo   bar\tbaz "},
			want: []string{"--foo", "bar", "baz"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := createTestArgs(tt.opts)
			if diff := cmp.Diff(got, tt.want); diff != "" {
				t.Errorf("createTestArgs() mismatch (-got +want):\n%s", diff)
			}
			// Same inputs give the same answer; the merge has no hidden
			// state.
			if diff := cmp.Diff(got, createTestArgs(tt.opts)); diff != "" {
				t.Errorf("createTestArgs() second call differs (-first +second):\n%s", diff)
			}
		})
	}
}

func TestBuildCreateTestCommand(t *testing.T) {
	tests := []struct {
		name       string
		cimePath   string
		testArgs   []string
		testID     string
		testroot   string
		sharedArgs []string
		want       []string
	}{
		{
			name:       "test names with shared args",
			cimePath:   "/opt/cime",
			testArgs:   []string{"SMS.f19_g17.I2000Clm50BgcCrop"},
			testID:     "0102-123456ch",
			testroot:   "/scratch/tests_0102-123456ch",
			sharedArgs: []string{"--compare", "v1"},
			want: []string{
				"/opt/cime/scripts/create_test",
				"--test-id", "0102-123456ch",
				"--test-root", "/scratch/tests_0102-123456ch",
				"SMS.f19_g17.I2000Clm50BgcCrop",
				"--compare", "v1",
			},
		},
		{
			name:       "suite scoping args come before shared args",
			cimePath:   "/opt/cime",
			testArgs:   []string{"--xml-category", "aux_clm", "--xml-machine", "cheyenne", "--xml-compiler", "intel"},
			testID:     "0102-123456ch_in",
			testroot:   "/scratch/tests_0102-123456ch",
			sharedArgs: []string{"--project", "P0001"},
			want: []string{
				"/opt/cime/scripts/create_test",
				"--test-id", "0102-123456ch_in",
				"--test-root", "/scratch/tests_0102-123456ch",
				"--xml-category", "aux_clm",
				"--xml-machine", "cheyenne",
				"--xml-compiler", "intel",
				"--project", "P0001",
			},
		},
		{
			name:     "relative cime path",
			cimePath: "cime",
			testArgs: []string{"--testfile", "tests.txt"},
			testID:   "mytestid",
			testroot: "/tmp/tests_mytestid",
			want: []string{
				"cime/scripts/create_test",
				"--test-id", "mytestid",
				"--test-root", "/tmp/tests_mytestid",
				"--testfile", "tests.txt",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildCreateTestCommand(tt.cimePath, tt.testArgs, tt.testID, tt.testroot, tt.sharedArgs)
			if diff := cmp.Diff(got, tt.want); diff != "" {
				t.Errorf("buildCreateTestCommand() mismatch (-got +want):\n%s", diff)
			}
		})
	}
}
