package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ochairo/sbat/internal/domain/interfaces"
	"github.com/ochairo/sbat/internal/external-adapters/zaplog"
)

// Exit codes
const (
	exitAllowed = 0
	exitRevoked = 1
	exitError   = 2
)

// exitCodeError carries a specific process exit code out of a command
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit %d", e.code)
	}
	return e.err.Error()
}

func (e *exitCodeError) Unwrap() error { return e.err }

// app holds state shared by all subcommands
type app struct {
	stdout  io.Writer
	stderr  io.Writer
	verbose bool
	logger  interfaces.Logger
	sync    func() error
}

func (a *app) initLogger() error {
	l, err := zaplog.NewCLI(a.verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.logger = l
	a.sync = l.Sync
	return nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "sbat",
		Short: "Check boot images against SBAT revocation lists",
		Long: `sbat decides whether a boot image's SBAT components have been revoked.

A revocation list maps component names to the lowest generation still
allowed. An image declares its components in its .sbat section; if any of
them is older than the list allows, the image is revoked.

Any failure to read or parse the revocation list fails closed: the image is
never reported as allowed without a valid list.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.initLogger()
		},
	}

	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging on stderr")

	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newParseCmd(a))
	root.AddCommand(newInspectCmd(a))

	return root
}

// execute runs the CLI and returns the process exit code
func execute(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, logger: interfaces.NoOpLogger{}}
	root := newRootCmd(a)
	root.SetArgs(args)

	err := root.Execute()
	if a.sync != nil {
		_ = a.sync()
	}
	if err == nil {
		return exitAllowed
	}

	var exitErr *exitCodeError
	if errors.As(err, &exitErr) {
		if exitErr.err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", exitErr.err)
		}
		return exitErr.code
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitError
}
