package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func noEnv(string) string { return "" }

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), "config.yaml"), noEnv)
	if err != nil {
		t.Fatalf("load error = %v", err)
	}
	if cfg.AgentCommand != "claude" {
		t.Fatalf("AgentCommand = %q, want claude", cfg.AgentCommand)
	}
	if !strings.HasSuffix(cfg.WorkspaceRoot, DefaultRootDirName) {
		t.Fatalf("WorkspaceRoot = %q, want .../%s", cfg.WorkspaceRoot, DefaultRootDirName)
	}
	if cfg.DefaultTimeout != 0 {
		t.Fatalf("DefaultTimeout = %v, want unbounded", cfg.DefaultTimeout)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "workspace_root: /srv/agents\nagent_command: claude-next\ntimeout_seconds: 600\ngrace_seconds: 5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := load(path, noEnv)
	if err != nil {
		t.Fatalf("load error = %v", err)
	}
	if cfg.WorkspaceRoot != "/srv/agents" {
		t.Fatalf("WorkspaceRoot = %q", cfg.WorkspaceRoot)
	}
	if cfg.AgentCommand != "claude-next" {
		t.Fatalf("AgentCommand = %q", cfg.AgentCommand)
	}
	if cfg.DefaultTimeout != 10*time.Minute {
		t.Fatalf("DefaultTimeout = %v, want 10m", cfg.DefaultTimeout)
	}
	if cfg.GracePeriod != 5*time.Second {
		t.Fatalf("GracePeriod = %v, want 5s", cfg.GracePeriod)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("workspace_root: /srv/agents\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := load(path, func(key string) string {
		if key == EnvWorkspaceRoot {
			return "/data/agents"
		}
		return ""
	})
	if err != nil {
		t.Fatalf("load error = %v", err)
	}
	if cfg.WorkspaceRoot != "/data/agents" {
		t.Fatalf("WorkspaceRoot = %q, want env value", cfg.WorkspaceRoot)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(": not yaml ["), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := load(path, noEnv); err == nil {
		t.Fatal("load accepted malformed YAML")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/agents"); got != filepath.Join(home, "agents") {
		t.Fatalf("expandHome(~/agents) = %q", got)
	}
	if got := expandHome("/abs/path"); got != "/abs/path" {
		t.Fatalf("expandHome(/abs/path) = %q", got)
	}
}
