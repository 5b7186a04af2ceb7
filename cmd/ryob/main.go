// Command ryob runs the ryob discussion forum.
//
// Configuration comes from the environment; see config.go. Without a
// subcommand the server is started.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
