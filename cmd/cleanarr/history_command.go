package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"cleanarr/internal/config"
	"cleanarr/internal/history"
	"cleanarr/internal/logging"
)

const historyTimeFormat = "2006-01-02 15:04:05"

// recordHistory stores run and prunes old entries. Failures are logged and
// never change the outcome of the run.
func recordHistory(cfg *config.Config, logger *slog.Logger, run history.Run) {
	warn := func(msg string, err error) {
		logging.WarnWithContext(logger, msg, "history_write_failed",
			logging.String("run_id", run.RunID),
			logging.String("history_file", cfg.Paths.HistoryFile),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check paths.history_file permissions"),
			logging.String(logging.FieldImpact, "run not recorded in history"),
		)
	}

	store, err := history.Open(cfg.Paths.HistoryFile)
	if err != nil {
		warn("open history failed", err)
		return
	}
	defer store.Close()

	ctx := context.Background()
	if _, err := store.Record(ctx, run); err != nil {
		warn("record history failed", err)
		return
	}
	if _, err := store.Prune(ctx, cfg.History.Keep); err != nil {
		warn("prune history failed", err)
	}
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent cleanup runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderHistory(runs))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show (0 for all)")

	cmd.AddCommand(&cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the assets a run removed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if run == nil {
				return fmt.Errorf("no run matches %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRunDetail(*run))
			return nil
		},
	})
	return cmd
}

func openHistory(ctx *commandContext) (*history.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	return history.Open(cfg.Paths.HistoryFile)
}

func renderHistory(runs []history.Run) string {
	headers := []string{"Run", "Started", "Mode", "Status", "Assets", "Unmatched", "Removed"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortRunID(run.RunID),
			run.StartedAt.Local().Format(historyTimeFormat),
			runMode(run.DryRun),
			string(run.Status),
			strconv.Itoa(run.Assets),
			strconv.Itoa(run.Unmatched),
			strconv.Itoa(run.Removed),
		})
	}
	return renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight})
}

func renderRunDetail(run history.Run) string {
	out := fmt.Sprintf("Run:      %s\nStarted:  %s\nDuration: %s\nMode:     %s\nStatus:   %s\n",
		run.RunID,
		run.StartedAt.Local().Format(historyTimeFormat),
		run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond),
		runMode(run.DryRun),
		run.Status,
	)
	if run.Error != "" {
		out += "Error:    " + run.Error + "\n"
	}
	if len(run.Removals) == 0 {
		return out + "\nNo assets removed"
	}
	rows := make([][]string, 0, len(run.Removals))
	for _, removal := range run.Removals {
		rows = append(rows, []string{removal.Kind, removal.Title, removal.Path})
	}
	return out + "\n" + renderTable([]string{"Kind", "Title", "Path"}, rows, nil)
}

func runMode(dryRun bool) string {
	if dryRun {
		return "dry-run"
	}
	return "live"
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
