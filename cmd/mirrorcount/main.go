// Command mirrorcount checks that preview and thumbnail trees mirror an original image tree.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/idelchi/mirrorcount/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "unknown - unofficial & generated by unknown"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		if !errors.Is(err, cli.ErrDiscrepancies) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		os.Exit(1)
	}
}
