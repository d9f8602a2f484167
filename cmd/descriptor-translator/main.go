// Package main provides the CLI entrypoint for descriptor-translator.
//
// descriptor-translator converts NFV service descriptors between the YANG
// NSD/VNFD model and TOSCA Simple Profile for NFV:
//   - translate converts a descriptor in either direction
//   - compare checks two descriptors for structural equality
//   - types lists the TOSCA types with a registered translator
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// exitError carries a non-zero exit code for a failure already reported to the user.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}

	fmt.Fprintln(stderr, "Error:", err)

	return 1
}
