// Package main implements the voxtrack CLI: it extracts the boundary of a
// digital shape as a surfel graph and walks it breadth-first.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// version information
var version = "dev"

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitSpace   = 2 // the cellular space could not be built
	exitNoBel   = 3 // the seed search found no boundary element
)

// exitError attaches a process exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "voxtrack: %v\n", err)
		return exitCode(err)
	}
	return exitOK
}

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitFailure
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "voxtrack",
		Short: "Track and traverse the boundary of digital shapes",
		Long: `voxtrack extracts the boundary of a 3-D digital shape as a graph of
oriented surfels and traverses it breadth-first, without building the
whole boundary up front.

Shapes come from .vol images (thresholded) or .zy shape scripts
(digitised solids).`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(newTrackCmd(stdout))
	return root
}
