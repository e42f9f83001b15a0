// Package workspace resolves objective identifiers to durable workspace
// directories and enumerates the workspaces under a root.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/misty-step/fullagent/internal/memory"
	"github.com/misty-step/fullagent/internal/naming"
)

// ErrNoResumableWorkspace is returned when --resume finds nothing to resume.
var ErrNoResumableWorkspace = errors.New("no resumable workspace found")

// ErrNotResumable is returned when an explicit resume target exists but
// carries no memory container.
var ErrNotResumable = errors.New("workspace is not resumable")

// Resolver decides where a workspace lives under Root. It only computes
// paths; directory creation belongs to the memory scaffolder.
type Resolver struct {
	Root string

	// now feeds collision suffixes; tests pin it.
	now func() time.Time
}

// NewResolver returns a Resolver over root.
func NewResolver(root string) *Resolver {
	return &Resolver{Root: root, now: time.Now}
}

// ResolveFresh returns the directory for a brand-new workspace named name.
//
// An existing workspace with the same name is never reused or overwritten:
// a second-precision timestamp suffix is appended, bumped by a second at a
// time until the path is free.
func (r *Resolver) ResolveFresh(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("resolve: empty workspace name")
	}

	candidate := filepath.Join(r.Root, name)
	if !exists(candidate) {
		return candidate, nil
	}

	ts := r.now()
	for {
		suffixed := name + "-" + ts.Format(naming.TimestampLayout)
		candidate = filepath.Join(r.Root, suffixed)
		if !exists(candidate) {
			return candidate, nil
		}
		ts = ts.Add(time.Second)
	}
}

// ResolveResume validates an explicit resume target. target may be a bare
// workspace name under Root or a path to the workspace directory.
func (r *Resolver) ResolveResume(target string) (string, error) {
	dir := target
	if !strings.ContainsRune(target, os.PathSeparator) && !exists(target) {
		dir = filepath.Join(r.Root, target)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s does not exist", ErrNotResumable, dir)
	}
	if !memory.Exists(dir) {
		return "", fmt.Errorf("%w: %s has no %s", ErrNotResumable, dir, memory.ObjectiveFile)
	}
	return dir, nil
}

// ResolveLatest picks the most recently modified resumable workspace under
// Root, for --resume without an explicit target.
func (r *Resolver) ResolveLatest() (string, error) {
	entries, err := List(r.Root)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("%w under %s", ErrNoResumableWorkspace, r.Root)
	}
	return entries[0].Path, nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
