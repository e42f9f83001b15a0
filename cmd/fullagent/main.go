// Command fullagent launches an autonomous coding agent against one stated
// objective and keeps its durable state in a resumable workspace.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Orchestrator exit codes. Child exit codes pass through on agent failure;
// everything else gets a code of its own so scripts can branch on the
// outcome without parsing output.
const (
	exitInputError    = 2
	exitNoResumable   = 3
	exitNotResumable  = 4
	exitTimedOut      = 124
	exitWorkspaceBusy = 125
	exitScaffoldError = 126
	exitLaunchError   = 127
	exitInterrupted   = 130
)

type exitError struct {
	Code int
	Err  error
}

func (e *exitError) Error() string {
	if e == nil || e.Err == nil {
		return "command failed"
	}
	return e.Err.Error()
}

func (e *exitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func main() {
	root := &cobra.Command{
		Use:           "fullagent",
		Short:         "fullagent — autonomous agent launcher with persistent workspace memory",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	root.AddCommand(
		newVersionCmd(),
		newLaunchCmd(),
		newResumeCmd(),
		newListCmd(),
	)

	if err := root.Execute(); err != nil {
		var coded *exitError
		if errors.As(err, &coded) {
			if coded.Err != nil {
				_, _ = fmt.Fprintln(os.Stderr, coded.Err)
			}
			os.Exit(coded.Code)
		}
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print fullagent version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "fullagent %s (%s, %s)\n", version, commit, date)
			return err
		},
	}
}
