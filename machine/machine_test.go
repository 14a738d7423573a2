package machine

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/esmtest/esmtest/launcher"
)

func TestCreateKnownMachine(t *testing.T) {
	t.Setenv("USER", "alice")
	t.Setenv("PROJECT", "")

	mach, err := Create(zerolog.Nop(), "cheyenne", DefaultRegistry(), Options{
		Account: "P0001",
	})
	require.NoError(t, err)

	require.Equal(t, "cheyenne", mach.Name)
	require.Equal(t, "P0001", mach.Account)
	require.Equal(t, "/glade/scratch/alice", mach.ScratchDir)
	require.Equal(t, "/glade/p/cgd/tss/ctsm_baselines", mach.BaselineDir)
	require.Equal(t, launcher.TypeQsub, mach.JobLauncher.Type())
	require.Equal(t, "regular", mach.JobLauncher.Queue())
	require.Equal(t, "06:00:00", mach.JobLauncher.Walltime())
}

func TestCreateExplicitOverridesBeatDefaults(t *testing.T) {
	t.Setenv("PROJECT", "PENV01")

	mach, err := Create(zerolog.Nop(), "cheyenne", DefaultRegistry(), Options{
		ScratchDir:          "/my/scratch",
		Account:             "P0002",
		JobLauncherQueue:    "economy",
		JobLauncherWalltime: "11:50:00",
	})
	require.NoError(t, err)

	require.Equal(t, "/my/scratch", mach.ScratchDir)
	require.Equal(t, "P0002", mach.Account)
	require.Equal(t, "economy", mach.JobLauncher.Queue())
	require.Equal(t, "11:50:00", mach.JobLauncher.Walltime())
}

func TestCreateAccountFromEnv(t *testing.T) {
	t.Setenv("PROJECT", "PENV01")

	mach, err := Create(zerolog.Nop(), "cheyenne", DefaultRegistry(), Options{})
	require.NoError(t, err)
	require.Equal(t, "PENV01", mach.Account)
}

func TestCreateAccountRequired(t *testing.T) {
	t.Setenv("PROJECT", "")

	_, err := Create(zerolog.Nop(), "cheyenne", DefaultRegistry(), Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "account")

	// Relaxed mode tolerates the missing account.
	mach, err := Create(zerolog.Nop(), "cheyenne", DefaultRegistry(), Options{AllowMissing: true})
	require.NoError(t, err)
	require.Empty(t, mach.Account)
}

func TestCreateAccountNotRequiredElsewhere(t *testing.T) {
	t.Setenv("PROJECT", "")

	mach, err := Create(zerolog.Nop(), "izumi", DefaultRegistry(), Options{})
	require.NoError(t, err)
	require.Empty(t, mach.Account)
	require.Equal(t, launcher.TypeNoBatch, mach.JobLauncher.Type())
}

func TestCreateUnknownMachine(t *testing.T) {
	t.Setenv("PROJECT", "")

	mach, err := Create(zerolog.Nop(), "mysterymachine", DefaultRegistry(), Options{
		ScratchDir: "/tmp/scratch",
	})
	require.NoError(t, err)
	require.Equal(t, "mysterymachine", mach.Name)
	require.Equal(t, "/tmp/scratch", mach.ScratchDir)
	require.Empty(t, mach.BaselineDir)
	require.Equal(t, launcher.TypeNoBatch, mach.JobLauncher.Type())
}

func TestCreateQsubNeedsQueueAndWalltime(t *testing.T) {
	registry := Registry{
		"frontera": {Launcher: launcher.TypeQsub},
	}

	_, err := Create(zerolog.Nop(), "frontera", registry, Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "job launcher")

	// Overrides can complete a partial registry entry.
	mach, err := Create(zerolog.Nop(), "frontera", registry, Options{
		JobLauncherQueue:    "normal",
		JobLauncherWalltime: "02:00:00",
	})
	require.NoError(t, err)
	require.Equal(t, launcher.TypeQsub, mach.JobLauncher.Type())
}
