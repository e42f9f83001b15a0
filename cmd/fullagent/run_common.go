package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/misty-step/fullagent/internal/claude"
	"github.com/misty-step/fullagent/internal/config"
	"github.com/misty-step/fullagent/internal/launcher"
	"github.com/misty-step/fullagent/internal/ledger"
	"github.com/misty-step/fullagent/internal/memory"
	"github.com/misty-step/fullagent/internal/prompt"
)

// runDeps isolates the effects shared by launch and resume so tests can
// fake the process invocation and the clock.
type runDeps struct {
	loadConfig func() (config.Config, error)
	runProcess func(ctx context.Context, spec launcher.Spec) launcher.Result
	now        func() time.Time
}

func defaultRunDeps() runDeps {
	return runDeps{
		loadConfig: config.Load,
		runProcess: func(ctx context.Context, spec launcher.Spec) launcher.Result {
			return launcher.New().Run(ctx, spec)
		},
		now: time.Now,
	}
}

// executeRun scaffolds, locks, launches, records, and classifies one agent
// run in dir. It owns everything after workspace resolution.
func executeRun(cmd *cobra.Command, deps runDeps, cfg config.Config, dir, objective string, resume bool, timeout time.Duration) error {
	if err := memory.Scaffold(dir, objective, deps.now()); err != nil {
		return &exitError{Code: exitScaffoldError, Err: err}
	}

	lock, err := ledger.Acquire(dir)
	if err != nil {
		return &exitError{Code: exitWorkspaceBusy, Err: err}
	}
	defer func() { _ = lock.Release() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "launching agent in %s\n", dir)
	_, _ = fmt.Fprintf(out, "objective: %s\n", summarize(objective))
	_, _ = fmt.Fprintf(out, "memory at: %s\n", memory.Path(dir, ""))
	if timeout > 0 {
		_, _ = fmt.Fprintf(out, "timeout: %s\n", timeout)
	}

	started := deps.now()
	result := deps.runProcess(cmd.Context(), launcher.Spec{
		Command:     cfg.AgentCommand,
		Args:        claude.Argv(prompt.Build(objective, resume)),
		Dir:         dir,
		Timeout:     timeout,
		GracePeriod: cfg.GracePeriod,
		Stdout:      cmd.OutOrStdout(),
		Stderr:      cmd.ErrOrStderr(),
	})

	rec := ledger.Record{
		StartedAt:  started,
		FinishedAt: deps.now(),
		Resume:     resume,
		Outcome:    string(result.Outcome),
		ExitCode:   result.ExitCode,
	}
	if result.Err != nil {
		rec.Error = result.Err.Error()
	}
	if err := ledger.Append(dir, rec); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}

	switch result.Outcome {
	case launcher.OutcomeCompleted:
		_, _ = fmt.Fprintln(out, "agent completed successfully")
		if report, ok := memory.ReadCompletion(dir); ok {
			_, _ = fmt.Fprintln(out, report)
		}
		return nil
	case launcher.OutcomeTimedOut, launcher.OutcomeInterrupted:
		_, _ = fmt.Fprintf(out, "state saved to %s — continue with: fullagent resume --workspace %s\n",
			memory.Path(dir, ""), dir)
	}
	return &exitError{Code: result.ProcessExitCode(), Err: result.Err}
}

// summarize keeps multi-page objectives out of the terminal.
func summarize(objective string) string {
	const max = 100
	runes := []rune(objective)
	if len(runes) <= max {
		return objective
	}
	return string(runes[:max]) + "..."
}
