// Command inkpanel drives an e-paper signage display.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/inkpanel/internal/adapters/driving/cli"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	cli.SetVersion(Version)
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
