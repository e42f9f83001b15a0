package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/misty-step/fullagent/internal/memory"
)

// Status summarizes where an objective stands, derived from marker files in
// the memory container's current/ branch.
type Status string

const (
	StatusComplete   Status = "complete"
	StatusBlocked    Status = "blocked"
	StatusInProgress Status = "in progress"
)

// Entry describes one workspace under the root.
type Entry struct {
	Name       string
	Path       string
	Status     Status
	ModifiedAt time.Time
}

// List scans root for workspaces, newest first.
//
// A subdirectory counts as a workspace only if it carries core/objective.md;
// anything else under the root is somebody else's business and is skipped.
// A missing root is an empty listing, not an error.
func List(root string) ([]Entry, error) {
	dirents, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing workspaces under %s: %w", root, err)
	}

	var entries []Entry
	for _, d := range dirents {
		if !d.IsDir() {
			continue
		}
		dir := filepath.Join(root, d.Name())
		if !memory.Exists(dir) {
			continue
		}
		info, err := d.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Name:       d.Name(),
			Path:       dir,
			Status:     statusOf(dir),
			ModifiedAt: modTime(dir, info.ModTime()),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ModifiedAt.After(entries[j].ModifiedAt)
	})
	return entries, nil
}

func statusOf(dir string) Status {
	switch {
	case memory.IsComplete(dir):
		return StatusComplete
	case memory.IsBlocked(dir):
		return StatusBlocked
	default:
		return StatusInProgress
	}
}

// modTime prefers the current/ branch mtime over the workspace directory's:
// the agent writes there continuously, so it tracks actual activity.
func modTime(dir string, fallback time.Time) time.Time {
	info, err := os.Stat(filepath.Join(dir, memory.Dir, memory.BranchCurrent))
	if err != nil {
		return fallback
	}
	if info.ModTime().After(fallback) {
		return info.ModTime()
	}
	return fallback
}
