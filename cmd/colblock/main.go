// Command colblock builds, dumps and inspects columnar block files.
package main

import (
	"fmt"
	"os"

	"github.com/arloliu/bytecol/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
