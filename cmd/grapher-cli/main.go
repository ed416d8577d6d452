// Command grapher-cli is grapher without the desktop GUI, for headless
// machines and terminals.
package main

import (
	"fmt"
	"os"

	"grapher/internal/cli"
)

var version = "0.1.0"

func main() {
	if err := cli.NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
