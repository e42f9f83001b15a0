package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/misty-step/fullagent/internal/config"
	"github.com/misty-step/fullagent/internal/ledger"
	"github.com/misty-step/fullagent/internal/workspace"
)

type listDeps struct {
	loadConfig func() (config.Config, error)
	list       func(root string) ([]workspace.Entry, error)
	lastRun    func(dir string) (ledger.Record, bool, error)
}

func defaultListDeps() listDeps {
	return listDeps{
		loadConfig: config.Load,
		list:       workspace.List,
		lastRun:    ledger.Last,
	}
}

func newListCmd() *cobra.Command {
	return newListCmdWithDeps(defaultListDeps())
}

func newListCmdWithDeps(deps listDeps) *cobra.Command {
	var workspaceRoot string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workspaces under the workspace root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := deps.loadConfig()
			if err != nil {
				return &exitError{Code: exitInputError, Err: err}
			}
			if workspaceRoot != "" {
				cfg.WorkspaceRoot = workspaceRoot
			}

			entries, err := deps.list(cfg.WorkspaceRoot)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no workspaces under %s\n", cfg.WorkspaceRoot)
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "NAME\tSTATUS\tLAST RUN\tACTIVE")
			for _, e := range entries {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					e.Name, e.Status, lastRunLabel(deps, e.Path), e.ModifiedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&workspaceRoot, "workspace-root", "", "Override the workspace root directory")

	return cmd
}

func lastRunLabel(deps listDeps, dir string) string {
	rec, found, err := deps.lastRun(dir)
	if err != nil || !found {
		return "-"
	}
	if rec.FinishedAt.IsZero() {
		return rec.Outcome
	}
	return fmt.Sprintf("%s (%s)", rec.Outcome, rec.FinishedAt.Format(time.DateOnly))
}
