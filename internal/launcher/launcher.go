// Package launcher invokes the external agent process and classifies its
// outcome. This is the only part of the system that blocks for longer than
// trivial I/O: Run waits for process exit, bounded by an optional timeout.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"
)

// DefaultGracePeriod is how long a terminated child gets between SIGTERM
// and SIGKILL.
const DefaultGracePeriod = 10 * time.Second

// Outcome classifies how an agent run ended.
type Outcome string

const (
	// OutcomeCompleted: the process exited 0.
	OutcomeCompleted Outcome = "completed"
	// OutcomeFailed: the process exited non-zero.
	OutcomeFailed Outcome = "failed"
	// OutcomeTimedOut: the configured timeout expired and the process was
	// terminated.
	OutcomeTimedOut Outcome = "timed_out"
	// OutcomeInterrupted: an operator signal (or context cancellation)
	// stopped the run; the termination was propagated to the child.
	OutcomeInterrupted Outcome = "interrupted"
	// OutcomeLaunchError: the process could not be started at all.
	OutcomeLaunchError Outcome = "launch_error"
)

// Result is the classified end of one run.
type Result struct {
	Outcome  Outcome
	ExitCode int // child's exit code, meaningful for OutcomeFailed
	Err      error
}

// ProcessExitCode maps a result to the orchestrator's own exit status.
// Every non-completed outcome is distinguishable by code alone.
func (r Result) ProcessExitCode() int {
	switch r.Outcome {
	case OutcomeCompleted:
		return 0
	case OutcomeFailed:
		if r.ExitCode > 0 {
			return r.ExitCode
		}
		return 1
	case OutcomeTimedOut:
		return 124
	case OutcomeInterrupted:
		return 130
	default:
		return 127
	}
}

// Spec describes one agent invocation.
type Spec struct {
	Command string
	Args    []string
	// Dir is the child's working directory: the workspace root, so the
	// relative .memory/ contract resolves.
	Dir string
	Env []string
	// Timeout bounds the run; zero means unbounded.
	Timeout time.Duration
	// GracePeriod is the SIGTERM→SIGKILL window on termination.
	GracePeriod time.Duration

	Stdout io.Writer
	Stderr io.Writer
}

// Launcher runs agent processes. The zero value is not usable; call New.
type Launcher struct {
	// signalCh overrides SIGINT/SIGTERM input, primarily for tests.
	signalCh <-chan os.Signal
}

// Option customizes launcher dependencies.
type Option func(*Launcher)

// WithSignalChannel overrides operator signal input.
func WithSignalChannel(ch <-chan os.Signal) Option {
	return func(l *Launcher) {
		if ch != nil {
			l.signalCh = ch
		}
	}
}

// New returns a Launcher.
func New(opts ...Option) *Launcher {
	l := &Launcher{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run starts the process described by spec and blocks until it exits, the
// timeout expires, or an operator signal arrives. The child runs in its own
// process group so that termination reaches everything it spawned; an
// exiting orchestrator never leaves the agent running unseen.
func (l *Launcher) Run(ctx context.Context, spec Spec) Result {
	if spec.Command == "" {
		return Result{Outcome: OutcomeLaunchError, Err: errors.New("launch: empty command")}
	}
	grace := spec.GracePeriod
	if grace <= 0 {
		grace = DefaultGracePeriod
	}

	cmd := exec.Command(spec.Command, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	if cmd.Env == nil {
		cmd.Env = os.Environ()
	}
	cmd.Stdout = spec.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = spec.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return Result{Outcome: OutcomeLaunchError, Err: fmt.Errorf("launching %s: %w", spec.Command, err)}
	}

	waitCh := make(chan error, 1)
	go func() { waitCh <- cmd.Wait() }()

	signalCh := l.signalCh
	if signalCh == nil {
		ch := make(chan os.Signal, 2)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(ch)
		signalCh = ch
	}

	var timeoutCh <-chan time.Time
	if spec.Timeout > 0 {
		timer := time.NewTimer(spec.Timeout)
		defer timer.Stop()
		timeoutCh = timer.C
	}

	select {
	case err := <-waitCh:
		return classifyExit(err)
	case <-timeoutCh:
		terminate(cmd, waitCh, grace)
		return Result{
			Outcome: OutcomeTimedOut,
			Err:     fmt.Errorf("agent timed out after %s", spec.Timeout),
		}
	case sig := <-signalCh:
		terminate(cmd, waitCh, grace)
		return Result{
			Outcome: OutcomeInterrupted,
			Err:     fmt.Errorf("agent interrupted by %v", sig),
		}
	case <-ctx.Done():
		terminate(cmd, waitCh, grace)
		return Result{Outcome: OutcomeInterrupted, Err: ctx.Err()}
	}
}

func classifyExit(err error) Result {
	if err == nil {
		return Result{Outcome: OutcomeCompleted}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{
			Outcome:  OutcomeFailed,
			ExitCode: exitErr.ExitCode(),
			Err:      fmt.Errorf("agent exited with code %d", exitErr.ExitCode()),
		}
	}
	return Result{Outcome: OutcomeFailed, ExitCode: 1, Err: err}
}

// terminate signals the child's process group, waits out the grace period,
// then kills. The direct-process signals back up the group signals in case
// the child moved itself to a different group.
func terminate(cmd *exec.Cmd, waitCh <-chan error, grace time.Duration) {
	if cmd.Process == nil {
		return
	}
	pid := cmd.Process.Pid
	_ = syscall.Kill(-pid, syscall.SIGTERM)
	_ = cmd.Process.Signal(syscall.SIGTERM)

	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case <-waitCh:
	case <-timer.C:
		_ = syscall.Kill(-pid, syscall.SIGKILL)
		_ = cmd.Process.Kill()
		<-waitCh
	}
}
