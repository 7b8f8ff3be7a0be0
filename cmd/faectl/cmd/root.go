// Package cmd implements faectl's cobra command tree (grounded on
// cmd/rivinecg/cmd/root.go's Execute()/init() shape).
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "faectl",
	Short: "a command-line harness for the Fae transaction engine",
}

// Execute runs the command line logic driven by the arguments and flags
// passed by the user.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(
		runCmd,
		showCmd,
		versionCmd,
	)
}
