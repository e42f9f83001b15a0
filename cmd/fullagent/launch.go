package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/misty-step/fullagent/internal/naming"
	"github.com/misty-step/fullagent/internal/workspace"
)

func newLaunchCmd() *cobra.Command {
	return newLaunchCmdWithDeps(defaultRunDeps())
}

func newLaunchCmdWithDeps(deps runDeps) *cobra.Command {
	var (
		timeoutSeconds int
		workspaceRoot  string
	)

	cmd := &cobra.Command{
		Use:   "launch <objective-text-or-file>",
		Short: "Start a fresh agent run against an objective",
		Long: `Launch creates a new workspace named after the objective, scaffolds its
.memory/ container, and runs the agent inside it. If the objective argument
names a readable file, the file's contents become the objective and its base
name seeds the workspace identifier.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := deps.loadConfig()
			if err != nil {
				return &exitError{Code: exitInputError, Err: err}
			}
			if workspaceRoot != "" {
				cfg.WorkspaceRoot = workspaceRoot
			}

			seed, objective, err := naming.SeedFromArg(args[0])
			if err != nil {
				return &exitError{Code: exitInputError, Err: err}
			}
			if strings.TrimSpace(objective) == "" {
				return &exitError{Code: exitInputError, Err: fmt.Errorf("objective is empty")}
			}

			resolver := workspace.NewResolver(cfg.WorkspaceRoot)
			dir, err := resolver.ResolveFresh(naming.Sanitize(seed))
			if err != nil {
				return &exitError{Code: exitInputError, Err: err}
			}

			timeout := cfg.DefaultTimeout
			if cmd.Flags().Changed("timeout") {
				timeout = time.Duration(timeoutSeconds) * time.Second
			}
			return executeRun(cmd, deps, cfg, dir, objective, false, timeout)
		},
	}

	cmd.Flags().IntVar(&timeoutSeconds, "timeout", 0, "Max run time in seconds (0 = unbounded)")
	cmd.Flags().StringVar(&workspaceRoot, "workspace-root", "", "Override the workspace root directory")

	return cmd
}
