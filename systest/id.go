package systest

import "time"

// newTestIDBase generates the base test id for a run from the current date
// and time plus the start of the machine name, e.g. 0822-153045ch. The
// timestamp keeps concurrent runs on one machine from colliding.
func newTestIDBase(machineName string) string {
	return time.Now().Format("0102-150405") + prefix(machineName, 2)
}

// compilerTestID derives the test id for one compiler of a suite run.
func compilerTestID(testIDBase, compiler string) string {
	return testIDBase + "_" + prefix(compiler, 2)
}

// prefix returns the first n characters of s, or all of s when shorter.
func prefix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
