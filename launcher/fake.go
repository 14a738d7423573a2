package launcher

// fake.go provides a Launcher double for tests of code that dispatches
// commands without caring how they are executed.

// FakeCall records one Run invocation on a Fake launcher.
type FakeCall struct {
	Argv       []string
	StdoutPath string
	StderrPath string
}

// Fake is a Launcher that records the commands it is asked to run.
type Fake struct {
	Calls []FakeCall

	// Err, when set, is returned by every Run call.
	Err error

	// LauncherQueue and LauncherWalltime are reported by Queue and
	// Walltime so callers that echo launcher settings can be tested.
	LauncherQueue    string
	LauncherWalltime string
}

// NewFake returns an empty recording launcher.
func NewFake() *Fake {
	return &Fake{}
}

// Run records the call and returns the configured error, if any.
func (f *Fake) Run(argv []string, stdoutPath, stderrPath string) error {
	f.Calls = append(f.Calls, FakeCall{
		Argv:       append([]string(nil), argv...),
		StdoutPath: stdoutPath,
		StderrPath: stderrPath,
	})
	return f.Err
}

// Type returns TypeNoBatch; fakes masquerade as direct execution.
func (f *Fake) Type() Type { return TypeNoBatch }

// Queue returns the configured fake queue.
func (f *Fake) Queue() string { return f.LauncherQueue }

// Walltime returns the configured fake walltime.
func (f *Fake) Walltime() string { return f.LauncherWalltime }

// ExtraArgs returns the empty string.
func (f *Fake) ExtraArgs() string { return "" }
