package history

import (
	"time"

	"cleanarr/internal/reconcile"
)

// FromResult converts a finished pass into a run record. runErr marks the run
// as failed; the counts reflect whatever the pass gathered before failing.
func FromResult(result reconcile.Result, dryRun bool, started, finished time.Time, runErr error) Run {
	run := Run{
		RunID:      result.RunID,
		StartedAt:  started,
		FinishedAt: finished,
		DryRun:     dryRun,
		Status:     StatusCompleted,
		Assets:     result.Assets.Len(),
		Unmatched:  result.Unmatched.Len(),
		Removed:    result.Report.Count(),
	}
	if runErr != nil {
		run.Status = StatusFailed
		run.Error = runErr.Error()
	}
	for _, action := range result.Report.Actions {
		for _, path := range action.Paths {
			run.Removals = append(run.Removals, Removal{
				Kind:  action.Kind.String(),
				Title: action.Title,
				Path:  path,
			})
		}
	}
	return run
}
