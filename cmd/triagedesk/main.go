package main

import (
	"fmt"
	"os"

	"github.com/triagedesk/triagedesk/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Operation failures were already rendered by the command's
		// formatter; everything else (flag misuse, unusable db path)
		// gets printed here.
		if !cli.Rendered(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
