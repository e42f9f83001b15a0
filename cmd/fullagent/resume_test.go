package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/misty-step/fullagent/internal/memory"
)

func scaffoldWorkspace(t *testing.T, root, name, objective string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := memory.Scaffold(dir, objective, time.Now()); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestResume_NoWorkspaces(t *testing.T) {
	root := t.TempDir()
	fake := &fakeRun{}
	cmd := newResumeCmdWithDeps(testRunDeps(root, fake))
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	err := execute(t, cmd)
	if got := exitCodeOf(t, err); got != exitNoResumable {
		t.Fatalf("exit code = %d, want %d", got, exitNoResumable)
	}
	if len(fake.specs) != 0 {
		t.Fatal("agent launched with nothing to resume")
	}

	// A failed resume must not leave anything behind under the root.
	entries, readErr := os.ReadDir(root)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("failed resume wrote to the workspace root: %v", entries)
	}
}

func TestResume_ExplicitInvalidTarget(t *testing.T) {
	root := t.TempDir()
	// A directory without a memory container.
	if err := os.Mkdir(filepath.Join(root, "plain-dir"), 0o755); err != nil {
		t.Fatal(err)
	}

	fake := &fakeRun{}
	cmd := newResumeCmdWithDeps(testRunDeps(root, fake))
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	err := execute(t, cmd, "--workspace", "plain-dir")
	if got := exitCodeOf(t, err); got != exitNotResumable {
		t.Fatalf("exit code = %d, want %d", got, exitNotResumable)
	}
	if len(fake.specs) != 0 {
		t.Fatal("agent launched against a non-resumable target")
	}
}

func TestResume_ExplicitTarget(t *testing.T) {
	root := t.TempDir()
	dir := scaffoldWorkspace(t, root, "calculator-app", "Build a calculator web app")

	fake := &fakeRun{}
	cmd := newResumeCmdWithDeps(testRunDeps(root, fake))
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	if err := execute(t, cmd, "--workspace", "calculator-app"); err != nil {
		t.Fatalf("resume error = %v", err)
	}

	if len(fake.specs) != 1 {
		t.Fatalf("agent invoked %d times, want once", len(fake.specs))
	}
	if fake.specs[0].Dir != dir {
		t.Fatalf("agent cwd = %q, want %q", fake.specs[0].Dir, dir)
	}
	promptArg := fake.specs[0].Args[len(fake.specs[0].Args)-1]
	if !strings.Contains(promptArg, "resuming work") {
		t.Fatal("resume run did not get a resume prompt")
	}
	if !strings.Contains(promptArg, ".memory/current/progress.md") {
		t.Fatal("resume prompt does not point at progress.md")
	}
}

func TestResume_PicksLatestWorkspace(t *testing.T) {
	root := t.TempDir()
	older := scaffoldWorkspace(t, root, "older", "old objective")
	newer := scaffoldWorkspace(t, root, "newer", "new objective")

	past := time.Now().Add(-3 * time.Hour)
	for _, p := range []string{older, filepath.Join(older, memory.Dir, memory.BranchCurrent)} {
		if err := os.Chtimes(p, past, past); err != nil {
			t.Fatal(err)
		}
	}

	fake := &fakeRun{}
	cmd := newResumeCmdWithDeps(testRunDeps(root, fake))
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	if err := execute(t, cmd); err != nil {
		t.Fatalf("resume error = %v", err)
	}
	if fake.specs[0].Dir != newer {
		t.Fatalf("resumed %q, want most recent %q", fake.specs[0].Dir, newer)
	}
}

func TestResume_DoesNotRewriteObjective(t *testing.T) {
	root := t.TempDir()
	dir := scaffoldWorkspace(t, root, "ws", "the one true objective")
	before, err := os.ReadFile(memory.Path(dir, memory.ObjectiveFile))
	if err != nil {
		t.Fatal(err)
	}

	fake := &fakeRun{}
	cmd := newResumeCmdWithDeps(testRunDeps(root, fake))
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	if err := execute(t, cmd, "--workspace", dir); err != nil {
		t.Fatalf("resume error = %v", err)
	}

	after, err := os.ReadFile(memory.Path(dir, memory.ObjectiveFile))
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Fatal("resume rewrote core/objective.md")
	}
}
