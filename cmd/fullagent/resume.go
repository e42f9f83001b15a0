package main

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/misty-step/fullagent/internal/memory"
	"github.com/misty-step/fullagent/internal/workspace"
)

func newResumeCmd() *cobra.Command {
	return newResumeCmdWithDeps(defaultRunDeps())
}

func newResumeCmdWithDeps(deps runDeps) *cobra.Command {
	var (
		target         string
		timeoutSeconds int
		workspaceRoot  string
	)

	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume the agent in an existing workspace",
		Long: `Resume re-attaches the agent to a previously scaffolded workspace. With
--workspace it targets that workspace by name or path; otherwise it picks the
most recently active workspace under the root. The resumed agent is told to
read its progress and working-state files before continuing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := deps.loadConfig()
			if err != nil {
				return &exitError{Code: exitInputError, Err: err}
			}
			if workspaceRoot != "" {
				cfg.WorkspaceRoot = workspaceRoot
			}

			resolver := workspace.NewResolver(cfg.WorkspaceRoot)
			var dir string
			if strings.TrimSpace(target) != "" {
				dir, err = resolver.ResolveResume(target)
				if err != nil {
					return &exitError{Code: exitNotResumable, Err: err}
				}
			} else {
				dir, err = resolver.ResolveLatest()
				if err != nil {
					code := exitNoResumable
					if !errors.Is(err, workspace.ErrNoResumableWorkspace) {
						code = exitInputError
					}
					return &exitError{Code: code, Err: err}
				}
			}

			objective, err := memory.ReadObjective(dir)
			if err != nil {
				return &exitError{Code: exitNotResumable, Err: err}
			}

			timeout := cfg.DefaultTimeout
			if cmd.Flags().Changed("timeout") {
				timeout = time.Duration(timeoutSeconds) * time.Second
			}
			return executeRun(cmd, deps, cfg, dir, objective, true, timeout)
		},
	}

	cmd.Flags().StringVar(&target, "workspace", "", "Workspace name or path to resume")
	cmd.Flags().IntVar(&timeoutSeconds, "timeout", 0, "Max run time in seconds (0 = unbounded)")
	cmd.Flags().StringVar(&workspaceRoot, "workspace-root", "", "Override the workspace root directory")

	return cmd
}
