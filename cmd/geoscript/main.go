// Command geoscript is the CLI for the geoscript construction kernel.
package main

import (
	"os"

	"github.com/geoscript-lang/geoscript/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
