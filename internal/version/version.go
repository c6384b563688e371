package version

import "fmt"

const (
	// Version is the current version of Newsly
	Version = "0.3.1"
)

// GetVersion returns the current version string
func GetVersion() string {
	return fmt.Sprintf("Newsly %s", Version)
}
