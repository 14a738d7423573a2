package machine

import (
	"fmt"
	"os"
	"strings"
)

// DetectName returns the machine name for the host this process runs on.
func DetectName() (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("failed to determine hostname: %w", err)
	}
	return nameFromHostname(hostname), nil
}

// nameFromHostname reduces a hostname to a machine name: the part before the
// first dot, with trailing digits stripped so login nodes like cheyenne5 map
// to their machine.
func nameFromHostname(hostname string) string {
	name, _, _ := strings.Cut(hostname, ".")
	return strings.TrimRight(name, "0123456789")
}
