package remover

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cleanarr/internal/assetscan"
	"cleanarr/internal/fileutil"
	"cleanarr/internal/inventory"
	"cleanarr/internal/logging"
	"cleanarr/internal/services"
)

// Options configure a removal pass.
type Options struct {
	Root   string
	Layout assetscan.Layout
	DryRun bool
	Logger *slog.Logger
}

// Action records what happened (or would happen) to one asset entry.
type Action struct {
	Kind   inventory.Kind
	Title  string
	Paths  []string
	DryRun bool
	root   string
}

// Message renders the action as a single user-facing line.
func (a Action) Message() string {
	if a.DryRun {
		return fmt.Sprintf("Would have removed '%s' from '%s'", a.Title, a.root)
	}
	quoted := make([]string, len(a.Paths))
	for i, path := range a.Paths {
		quoted[i] = "'" + path + "'"
	}
	return "Removed " + strings.Join(quoted, ", ")
}

// Report lists one action per processed entry.
type Report struct {
	Actions []Action
	DryRun  bool
}

// Count is the number of entries removed, or that would have been removed.
func (r Report) Count() int { return len(r.Actions) }

// CountKind counts the actions for a single kind.
func (r Report) CountKind(kind inventory.Kind) int {
	n := 0
	for _, action := range r.Actions {
		if action.Kind == kind {
			n++
		}
	}
	return n
}

// Messages renders every action in order.
func (r Report) Messages() []string {
	out := make([]string, len(r.Actions))
	for i, action := range r.Actions {
		out[i] = action.Message()
	}
	return out
}

// Summary is the closing line printed after the messages.
func (r Report) Summary() string {
	return fmt.Sprintf("Total number of assets removed: %d", r.Count())
}

// Remove processes every unmatched entry in movie, series, collection order.
// The first failure aborts the pass; entries handled before it stay removed.
func Remove(unmatched inventory.Assets, opts Options) (Report, error) {
	logger := logging.NewComponentLogger(opts.Logger, "remover")
	root := strings.TrimSpace(opts.Root)
	if root == "" {
		return Report{}, services.Wrap(services.ErrValidation, "remover", "remove", "asset directory is not set", nil)
	}

	report := Report{DryRun: opts.DryRun, Actions: make([]Action, 0, unmatched.Len())}
	for _, entry := range unmatched.All() {
		paths, err := targets(root, opts.Layout, entry)
		if err != nil {
			return Report{}, err
		}
		action := Action{Kind: entry.Kind, Title: entry.Title, Paths: paths, DryRun: opts.DryRun, root: root}

		if !opts.DryRun {
			if err := removePaths(opts.Layout, paths); err != nil {
				logging.ErrorWithContext(logger, "asset removal failed", "asset_remove_failed",
					logging.String("title", entry.Title),
					logging.String("kind", entry.Kind.String()),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "check asset directory permissions"),
				)
				return Report{}, services.Wrap(services.ErrRemoval, "remover", "remove", entry.Title, err)
			}
		}

		logger.Debug(action.Message(),
			logging.String("title", entry.Title),
			logging.String("kind", entry.Kind.String()),
			logging.Bool("dry_run", opts.DryRun),
			logging.String(logging.FieldEventType, "asset_removed"),
		)
		report.Actions = append(report.Actions, action)
	}
	return report, nil
}

// targets resolves the paths an entry occupies and verifies they exist.
func targets(root string, layout assetscan.Layout, entry inventory.AssetEntry) ([]string, error) {
	var names []string
	if layout == assetscan.Nested {
		names = []string{entry.Title}
	} else {
		names = entry.Files
	}
	if len(names) == 0 {
		return nil, services.Wrap(services.ErrRemoval, "remover", "resolve", fmt.Sprintf("%q has no files", entry.Title), nil)
	}

	paths := make([]string, 0, len(names))
	for _, name := range names {
		path, err := fileutil.JoinWithin(root, name)
		if err != nil {
			return nil, services.Wrap(services.ErrRemoval, "remover", "resolve", entry.Title, err)
		}
		if _, err := os.Lstat(path); err != nil {
			return nil, services.Wrap(services.ErrRemoval, "remover", "resolve", entry.Title, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func removePaths(layout assetscan.Layout, paths []string) error {
	for _, path := range paths {
		var err error
		if layout == assetscan.Nested {
			err = fileutil.RemoveTree(path)
		} else {
			err = fileutil.RemoveFile(path)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
