// Package config loads orchestrator settings. The result is an explicit
// value threaded into the resolver, scaffolder, and launcher — no ambient
// globals.
//
// Precedence, lowest to highest: built-in defaults, the YAML config file,
// the FULL_AGENT_WORKSPACE environment variable.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/misty-step/fullagent/internal/claude"
)

// EnvWorkspaceRoot overrides the workspace root directory.
const EnvWorkspaceRoot = "FULL_AGENT_WORKSPACE"

// DefaultRootDirName is the workspace root folder under the user's home.
const DefaultRootDirName = "full-agent-workspace"

// Config carries every setting the orchestrator needs.
type Config struct {
	// WorkspaceRoot holds all workspaces; it lives outside any source tree.
	WorkspaceRoot string
	// AgentCommand is the external agent executable.
	AgentCommand string
	// DefaultTimeout bounds runs when no --timeout flag is given; zero
	// means unbounded.
	DefaultTimeout time.Duration
	// GracePeriod is the SIGTERM→SIGKILL window on termination.
	GracePeriod time.Duration
}

// fileConfig is the YAML shape of the config file. Durations are plain
// seconds so the file stays trivially hand-editable.
type fileConfig struct {
	WorkspaceRoot  string `yaml:"workspace_root"`
	AgentCommand   string `yaml:"agent_command"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	GraceSeconds   int    `yaml:"grace_seconds"`
}

// Path returns the config file location under the XDG config home.
func Path() string {
	return filepath.Join(xdg.ConfigHome, "fullagent", "config.yaml")
}

// Default returns the built-in configuration.
func Default() Config {
	root := DefaultRootDirName
	if home, err := os.UserHomeDir(); err == nil {
		root = filepath.Join(home, DefaultRootDirName)
	}
	return Config{
		WorkspaceRoot: root,
		AgentCommand:  claude.DefaultCommand,
	}
}

// Load resolves the effective configuration from the default file location
// and the process environment.
func Load() (Config, error) {
	return load(Path(), os.Getenv)
}

// load is the injectable core of Load.
func load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// No config file is the common case.
	case err != nil:
		return Config{}, fmt.Errorf("reading config %q: %w", path, err)
	default:
		var fc fileConfig
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return Config{}, fmt.Errorf("parsing config %q: %w", path, err)
		}
		if fc.WorkspaceRoot != "" {
			cfg.WorkspaceRoot = expandHome(fc.WorkspaceRoot)
		}
		if fc.AgentCommand != "" {
			cfg.AgentCommand = fc.AgentCommand
		}
		if fc.TimeoutSeconds > 0 {
			cfg.DefaultTimeout = time.Duration(fc.TimeoutSeconds) * time.Second
		}
		if fc.GraceSeconds > 0 {
			cfg.GracePeriod = time.Duration(fc.GraceSeconds) * time.Second
		}
	}

	if root := strings.TrimSpace(getenv(EnvWorkspaceRoot)); root != "" {
		cfg.WorkspaceRoot = expandHome(root)
	}
	return cfg, nil
}

// expandHome resolves a leading ~/ so config files can stay portable.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/"))
		}
	}
	return path
}
