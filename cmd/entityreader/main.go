// Command entityreader inspects entity declarations: it classifies their
// properties, exports descriptor snapshots, renders GraphQL SDL and
// generates static descriptor registration code.
package main

import (
	"fmt"
	"os"
)

// Exit codes.
const (
	exitUserError = 1
	exitSysError  = 2
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "entityreader:", err)
		os.Exit(exitCode(err))
	}
}
