package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"cleanarr/internal/history"
	"cleanarr/internal/inventory"
	"cleanarr/internal/logging"
	"cleanarr/internal/notifications"
	"cleanarr/internal/reconcile"
	"cleanarr/internal/services"
)

const (
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"

	notifyTimeout = 30 * time.Second
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Remove assets that no longer match a media title or collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("dry-run") {
				dryRun = cfg.DryRun
			}

			opts, err := reconcileOptions(cfg, dryRun, logger)
			if err != nil {
				return err
			}
			src, err := newCatalogSource(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				printBanner(out, "DRY RUN: no assets will be removed")
			}

			notifier := notifications.NewService(cfg)
			started := time.Now()
			result, err := reconcile.Run(cmd.Context(), opts, src)
			if errors.Is(err, services.ErrConfigurationIncomplete) {
				fmt.Fprintln(out, "No catalog libraries configured (catalog.library_names); nothing to do.")
				return nil
			}
			recordHistory(cfg, logger, history.FromResult(result, dryRun, started, time.Now(), err))
			if err != nil {
				notify(logger, "error", func(nctx context.Context) error {
					return notifier.NotifyError(nctx, err, "run")
				})
				return err
			}
			notify(logger, "run_completed", func(nctx context.Context) error {
				return notifier.NotifyRunCompleted(nctx, notifications.RunSummary{
					Unmatched: result.Unmatched.Len(),
					Removed:   result.Report.Count(),
					DryRun:    result.Report.DryRun,
					Duration:  time.Since(started),
				})
			})

			for _, message := range result.Report.Messages() {
				fmt.Fprintln(out, message)
			}
			fmt.Fprintln(out, result.Report.Summary())
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderRunSummary(result))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be removed without deleting anything (defaults to dry_run from config)")
	return cmd
}

// notify delivers a notification without letting its failure affect the run.
// It uses a fresh context so an interrupted run can still report the error.
func notify(logger *slog.Logger, event string, send func(context.Context) error) {
	nctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := send(nctx); err != nil {
		logging.WarnWithContext(logger, "notification failed", "notification_failed",
			logging.String("notification", event),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check notifications.ntfy_topic"),
		)
	}
}

func renderRunSummary(result reconcile.Result) string {
	removedHeader := "Removed"
	if result.Report.DryRun {
		removedHeader = "Would remove"
	}
	headers := []string{"Kind", "Assets", "References", "Unmatched", removedHeader}
	references := map[inventory.Kind]int{
		inventory.KindMovie:      len(result.Media.Movies),
		inventory.KindSeries:     len(result.Media.Series),
		inventory.KindCollection: len(result.Catalog),
	}
	rows := make([][]string, 0, len(inventory.Kinds))
	for _, kind := range inventory.Kinds {
		rows = append(rows, []string{
			kind.String(),
			strconv.Itoa(len(result.Assets.ByKind(kind))),
			strconv.Itoa(references[kind]),
			strconv.Itoa(len(result.Unmatched.ByKind(kind))),
			strconv.Itoa(result.Report.CountKind(kind)),
		})
	}
	return renderTable(headers, rows, []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight})
}

func printBanner(out io.Writer, line string) {
	if shouldColorize(out) {
		line = ansiYellow + line + ansiReset
	}
	fmt.Fprintln(out, line)
}
