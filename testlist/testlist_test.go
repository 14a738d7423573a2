package testlist

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const exampleTestlist = `tests:
  - name: ERP_D_Ld5.f10_f10.IHistClm50BgcCrop
    suite: aux_clm
    machine: cheyenne
    compiler: intel
  - name: SMS_Ld1.f19_g17.I2000Clm50BgcCrop
    suite: aux_clm
    machine: cheyenne
    compiler: gnu
  - name: ERS_Ld3.f10_f10.I2000Clm50Sp
    suite: aux_clm
    machine: cheyenne
    compiler: intel
  - name: SMS_D.f10_f10.I2000Clm50Sp
    suite: aux_clm
    machine: izumi
    compiler: nag
  - name: ERP_P36x2_D.f10_f10.IHistClm50Bgc
    suite: clm_short
    machine: cheyenne
    compiler: intel
`

func TestCompilers(t *testing.T) {
	registry, err := Load(strings.NewReader(exampleTestlist))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		name    string
		suite   string
		machine string
		want    []string
	}{
		{
			name:    "duplicates dropped, file order kept",
			suite:   "aux_clm",
			machine: "cheyenne",
			want:    []string{"intel", "gnu"},
		},
		{
			name:    "same suite on another machine",
			suite:   "aux_clm",
			machine: "izumi",
			want:    []string{"nag"},
		},
		{
			name:    "another suite",
			suite:   "clm_short",
			machine: "cheyenne",
			want:    []string{"intel"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := registry.Compilers(tt.suite, tt.machine)
			if err != nil {
				t.Fatalf("Compilers failed: %v", err)
			}
			if diff := cmp.Diff(got, tt.want); diff != "" {
				t.Errorf("Compilers() mismatch (-got +want):\n%s", diff)
			}
		})
	}
}

func TestCompilersNoMatch(t *testing.T) {
	registry, err := Load(strings.NewReader(exampleTestlist))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		name    string
		suite   string
		machine string
	}{
		{name: "unknown suite", suite: "aux_glc", machine: "cheyenne"},
		{name: "suite not defined for machine", suite: "clm_short", machine: "izumi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := registry.Compilers(tt.suite, tt.machine)
			if !errors.Is(err, ErrNoCompilers) {
				t.Errorf("Compilers() error = %v, want ErrNoCompilers", err)
			}
		})
	}
}

func TestLoadRejectsIncompleteEntries(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name: "missing compiler",
			input: `tests:
  - name: SMS.f10_f10.I2000Clm50Sp
    suite: aux_clm
    machine: cheyenne
`,
		},
		{
			name: "missing machine",
			input: `tests:
  - name: SMS.f10_f10.I2000Clm50Sp
    suite: aux_clm
    compiler: intel
`,
		},
		{
			name: "missing suite",
			input: `tests:
  - name: SMS.f10_f10.I2000Clm50Sp
    machine: cheyenne
    compiler: intel
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tt.input)); err == nil {
				t.Error("Load succeeded, want error")
			}
		})
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	input := `tests:
  - name: SMS.f10_f10.I2000Clm50Sp
    suite: aux_clm
    machine: cheyenne
    compilr: intel
`
	if _, err := Load(strings.NewReader(input)); err == nil {
		t.Error("Load with a misspelled field succeeded, want error")
	}
}

func TestLoadEmpty(t *testing.T) {
	registry, err := Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := registry.Compilers("aux_clm", "cheyenne"); !errors.Is(err, ErrNoCompilers) {
		t.Errorf("Compilers() on empty registry error = %v, want ErrNoCompilers", err)
	}
}

func TestLoadFile(t *testing.T) {
	registry, err := LoadFile(filepath.Join("testdata", "testlist.yaml"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	got, err := registry.Compilers("aux_clm", "cheyenne")
	if err != nil {
		t.Fatalf("Compilers failed: %v", err)
	}
	want := []string{"intel", "gnu"}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Compilers() mismatch (-got +want):\n%s", diff)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join("testdata", "does-not-exist.yaml")); err == nil {
		t.Error("LoadFile on a missing file succeeded, want error")
	}
}
