// Package memory is the single source of truth for the .memory/ directory
// contract. Every path an agent or the orchestrator touches is named here;
// scattering these strings across call sites is how marker-file mismatch
// bugs happen.
//
// The orchestrator creates and locates memory files but never interprets
// them — contents are opaque to everything in this package.
package memory

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Dir is the memory container's fixed relative path under a workspace.
const Dir = ".memory"

// The four memory branches.
const (
	BranchCore     = "core"     // facts fixed at creation
	BranchLearned  = "learned"  // accumulated knowledge
	BranchCurrent  = "current"  // mutable active state
	BranchHandoffs = "handoffs" // sub-agent communication files
)

// Well-known files, relative to Dir.
const (
	ObjectiveFile     = BranchCore + "/objective.md"
	ArchitectureFile  = BranchCore + "/architecture.md"
	PatternsFile      = BranchLearned + "/patterns.md"
	DependenciesFile  = BranchLearned + "/dependencies.md"
	DecisionsFile     = BranchLearned + "/decisions.md"
	WorkingOnFile     = BranchCurrent + "/working-on.md"
	ProgressFile      = BranchCurrent + "/progress.md"
	BlockedFile       = BranchCurrent + "/blocked.md"
	CompleteFile      = BranchCurrent + "/complete.md"
	SharedContextFile = BranchHandoffs + "/shared-context.md"
)

// Branches returns the four branch names in scaffold order.
func Branches() []string {
	return []string{BranchCore, BranchLearned, BranchCurrent, BranchHandoffs}
}

// Path joins a workspace directory with a Dir-relative memory path.
func Path(workspace, rel string) string {
	return filepath.Join(workspace, Dir, filepath.FromSlash(rel))
}

// HandoffTo returns the delegation file path for a named sub-agent.
func HandoffTo(workspace, agent string) string {
	return Path(workspace, BranchHandoffs+"/to-"+agent+".md")
}

// HandoffFrom returns the result file path for a named sub-agent.
func HandoffFrom(workspace, agent string) string {
	return Path(workspace, BranchHandoffs+"/from-"+agent+".md")
}

// Exists reports whether a workspace carries a memory container, judged by
// the presence of core/objective.md.
func Exists(workspace string) bool {
	info, err := os.Stat(Path(workspace, ObjectiveFile))
	return err == nil && info.Mode().IsRegular()
}

// IsComplete reports whether the agent has written its completion report.
func IsComplete(workspace string) bool {
	_, err := os.Stat(Path(workspace, CompleteFile))
	return err == nil
}

// IsBlocked reports whether the agent has documented a blocker.
func IsBlocked(workspace string) bool {
	_, err := os.Stat(Path(workspace, BlockedFile))
	return err == nil
}

// Scaffold ensures the memory container exists under workspace and, for a
// fresh workspace, seeds the initial files from the templates.
//
// The operation is purely additive: directories are created if absent and
// every seed file is written with O_EXCL, so re-running never truncates or
// rewrites anything the agent has touched. A scaffold interrupted midway is
// completed by the next call.
func Scaffold(workspace, objective string, now time.Time) error {
	for _, branch := range Branches() {
		dir := filepath.Join(workspace, Dir, branch)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("scaffold: create %s: %w", dir, err)
		}
	}

	seeds := []struct {
		rel     string
		content string
	}{
		{ObjectiveFile, objectiveTemplate(objective, now)},
		{ArchitectureFile, architectureTemplate()},
		{ProgressFile, progressTemplate()},
		{WorkingOnFile, workingOnTemplate()},
		{PatternsFile, patternsTemplate()},
		{DecisionsFile, decisionsTemplate()},
	}
	for _, seed := range seeds {
		if err := writeIfAbsent(Path(workspace, seed.rel), seed.content); err != nil {
			return err
		}
	}
	return nil
}

// writeIfAbsent creates path with content, leaving any existing file alone.
func writeIfAbsent(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return fmt.Errorf("scaffold: create %s: %w", path, err)
	}
	_, writeErr := f.WriteString(content)
	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		return fmt.Errorf("scaffold: write %s: %w", path, writeErr)
	}
	return nil
}

// ReadObjective returns the stored objective text for a workspace.
func ReadObjective(workspace string) (string, error) {
	raw, err := os.ReadFile(Path(workspace, ObjectiveFile))
	if err != nil {
		return "", fmt.Errorf("reading objective: %w", err)
	}
	return string(raw), nil
}

// ReadCompletion returns the agent's completion report, if one exists.
func ReadCompletion(workspace string) (string, bool) {
	raw, err := os.ReadFile(Path(workspace, CompleteFile))
	if err != nil {
		return "", false
	}
	return string(raw), true
}
