package cmd

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver"
	"github.com/spf13/cobra"

	"github.com/therewillbecode/Fae-1/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print faectl's protocol version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printVersion()
	},
}

func printVersion() error {
	raw := build.Version.String()
	// semver.NewVersion rejects a bare-zero Build component the way
	// build.ProtocolVersion prints it (it drops a zero Build entirely), so
	// reparse through it only to confirm the string we report is itself
	// valid semver, not to change what's displayed.
	sv, err := semver.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("version: %s is not valid semver: %w", raw, err)
	}
	fmt.Printf("faectl %s (%s/%s, %s)\n", sv.String(), runtime.GOOS, runtime.GOARCH, runtime.Version())
	return nil
}
