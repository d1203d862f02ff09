package cmd

import (
	"fmt"

	"taxsync/version"
)

// VersionCmd prints build information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run() error {
	fmt.Println(version.Info())
	return nil
}
