// Command faectl is a harness for exercising the Fae transaction engine
// against canned fixtures, grounded on cmd/rivinecg's thin main/cmd split.
package main

import "github.com/therewillbecode/Fae-1/cmd/faectl/cmd"

func main() {
	cmd.Execute()
}
