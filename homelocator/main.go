// Command homelocator prints the directory where it has been installed, optionally with a
// relative path applied.
package main

import (
	"os"

	"github.com/lyraproj/homelocator/cli"
)

func main() {
	if err := cli.NewCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
