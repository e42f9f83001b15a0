// Package ledger keeps a durable per-workspace run history and the launch
// lock that serializes runs against one workspace.
//
// Both live under <workspace>/.fullagent/, outside the memory container:
// after scaffolding, .memory/ belongs to the agent alone.
package ledger

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const (
	dirName  = ".fullagent"
	runsFile = "runs.jsonl"
	lockFile = "launch.lock"
)

// ErrWorkspaceBusy means another orchestrator holds the workspace's launch
// lock — a run is already in flight.
var ErrWorkspaceBusy = errors.New("workspace is busy: another run holds the launch lock")

// Record is one line of the append-only run history.
type Record struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Resume     bool      `json:"resume"`
	Outcome    string    `json:"outcome"`
	ExitCode   int       `json:"exit_code,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// Lock is a held launch lock. Release it when the run ends.
type Lock struct {
	fl *flock.Flock
}

// Acquire takes the workspace's launch lock without blocking. Two
// simultaneous launches against one workspace would race the agent's own
// memory writes, so the second fails fast with ErrWorkspaceBusy.
func Acquire(workspace string) (*Lock, error) {
	dir := filepath.Join(workspace, dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("launch lock: create %s: %w", dir, err)
	}

	fl := flock.New(filepath.Join(dir, lockFile))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("launch lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w (%s)", ErrWorkspaceBusy, workspace)
	}
	return &Lock{fl: fl}, nil
}

// Release drops the launch lock.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}

// Append writes one record to the workspace's run history. A sibling flock
// guards the append so interleaved writers cannot shear a line.
func Append(workspace string, rec Record) error {
	dir := filepath.Join(workspace, dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("run ledger: create %s: %w", dir, err)
	}
	path := filepath.Join(dir, runsFile)

	fl := flock.New(path + ".lock")
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("run ledger: lock: %w", err)
	}
	defer func() { _ = fl.Unlock() }()

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("run ledger: encode: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("run ledger: open %s: %w", path, err)
	}
	_, writeErr := f.Write(append(payload, '\n'))
	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		return fmt.Errorf("run ledger: write %s: %w", path, writeErr)
	}
	return nil
}

// Last returns the most recent run record, if any. Unparseable lines are
// skipped rather than failing the whole read; the history is best-effort
// metadata, not a source of truth.
func Last(workspace string) (Record, bool, error) {
	path := filepath.Join(workspace, dirName, runsFile)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, false, nil
		}
		return Record{}, false, fmt.Errorf("run ledger: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var (
		last  Record
		found bool
	)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		last = rec
		found = true
	}
	if err := scanner.Err(); err != nil {
		return Record{}, false, fmt.Errorf("run ledger: read %s: %w", path, err)
	}
	return last, found, nil
}
