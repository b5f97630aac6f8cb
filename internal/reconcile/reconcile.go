package reconcile

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"cleanarr/internal/assetscan"
	"cleanarr/internal/catalog"
	"cleanarr/internal/inventory"
	"cleanarr/internal/logging"
	"cleanarr/internal/match"
	"cleanarr/internal/mediascan"
	"cleanarr/internal/preflight"
	"cleanarr/internal/remover"
	"cleanarr/internal/services"
)

const (
	phaseValidate = "validate"
	phaseCatalog  = "catalog"
	phaseScan     = "scan"
	phaseMatch    = "match"
	phaseRemove   = "remove"
)

// Options are the immutable inputs of one pass, built from configuration by
// the caller.
type Options struct {
	AssetsDir      string
	Layout         assetscan.Layout
	MediaDirs      []string
	Libraries      []string
	Match          match.Options
	DryRun         bool
	LockFile       string
	CatalogTimeout time.Duration
	Logger         *slog.Logger
}

// Result carries everything a pass observed. On failure the fields gathered
// before the failing phase are still set; Report is only set on success.
type Result struct {
	RunID     string
	Catalog   []inventory.CatalogEntry
	Assets    inventory.Assets
	Media     inventory.Media
	Unmatched inventory.Assets
	Report    remover.Report
}

// Run executes a single pass. src may be nil when no libraries are configured.
//
// With no libraries and collections not ignored the pass is skipped and the
// returned error is marked services.ErrConfigurationIncomplete.
func Run(ctx context.Context, opts Options, src catalog.Source) (Result, error) {
	result := Result{RunID: uuid.NewString()}
	ctx = services.WithRunID(ctx, result.RunID)
	logger := logging.NewComponentLogger(opts.Logger, "reconcile")

	libraries := trimmed(opts.Libraries)
	if err := validate(opts, libraries, src); err != nil {
		if errors.Is(err, services.ErrConfigurationIncomplete) {
			logging.WithContext(ctx, logger).Info("no catalog libraries configured, skipping run",
				logging.String(logging.FieldEventType, "run_skipped"),
				logging.String(logging.FieldErrorHint, "set catalog.library_names or matching.ignore_collections"),
			)
		}
		return result, err
	}

	lock, err := acquireLock(opts.LockFile)
	if err != nil {
		return result, err
	}
	defer func() {
		if err := lock.release(); err != nil {
			logging.WarnWithContext(logger, "failed to release run lock", "lock_release_failed",
				logging.String("lock", lock.path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "next run may report a held lock"),
			)
		}
	}()

	started := time.Now()
	logging.WithContext(ctx, logger).Info("reconcile started",
		logging.String("assets_dir", opts.AssetsDir),
		logging.String("layout", opts.Layout.String()),
		logging.Int("media_dirs", len(opts.MediaDirs)),
		logging.Int("libraries", len(libraries)),
		logging.String("match_mode", opts.Match.Mode.String()),
		logging.Bool("dry_run", opts.DryRun),
	)

	checks := preflight.RunAll(ctx, preflight.Request{
		AssetsDir:   opts.AssetsDir,
		MediaDirs:   opts.MediaDirs,
		WriteAssets: !opts.DryRun,
	})
	if err := preflight.Failures(checks); err != nil {
		return result, err
	}

	if len(libraries) > 0 {
		phaseCtx := services.WithPhase(ctx, phaseCatalog)
		entries, err := gatherCatalog(phaseCtx, opts, src, libraries, logging.WithContext(phaseCtx, logger))
		if err != nil {
			return result, err
		}
		result.Catalog = entries
	}

	scanLogger := logging.WithContext(services.WithPhase(ctx, phaseScan), logger)
	assets, err := assetscan.Scan(opts.AssetsDir, opts.Layout)
	if err != nil {
		return result, services.Wrap(services.ErrValidation, "reconcile", "scan assets", opts.AssetsDir, err)
	}
	result.Assets = assets
	media, err := mediascan.Scan(opts.MediaDirs, scanLogger)
	if err != nil {
		return result, services.Wrap(services.ErrValidation, "reconcile", "scan media", "", err)
	}
	result.Media = media
	scanLogger.Info("scan complete",
		logging.Int("asset_movies", len(assets.Movies)),
		logging.Int("asset_series", len(assets.Series)),
		logging.Int("asset_collections", len(assets.Collections)),
		logging.Int("media_movies", len(media.Movies)),
		logging.Int("media_series", len(media.Series)),
	)

	result.Unmatched = match.Unmatched(assets, media, result.Catalog, opts.Match)
	logging.WithContext(services.WithPhase(ctx, phaseMatch), logger).Info("match complete",
		logging.Int("unmatched", result.Unmatched.Len()),
		logging.Int("assets", assets.Len()),
	)

	removeLogger := logging.WithContext(services.WithPhase(ctx, phaseRemove), opts.Logger)
	report, err := remover.Remove(result.Unmatched, remover.Options{
		Root:   opts.AssetsDir,
		Layout: opts.Layout,
		DryRun: opts.DryRun,
		Logger: removeLogger,
	})
	if err != nil {
		return result, err
	}
	result.Report = report

	logging.WithContext(ctx, logger).Info("reconcile finished",
		logging.Int("removed", report.Count()),
		logging.Bool("dry_run", opts.DryRun),
		logging.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}

func validate(opts Options, libraries []string, src catalog.Source) error {
	if strings.TrimSpace(opts.AssetsDir) == "" {
		return services.Wrap(services.ErrValidation, "reconcile", phaseValidate, "asset directory is not set", nil)
	}
	if len(trimmed(opts.MediaDirs)) == 0 {
		return services.Wrap(services.ErrValidation, "reconcile", phaseValidate, "no media directories configured", nil)
	}
	if len(libraries) == 0 {
		if opts.Match.IgnoreCollections {
			return nil
		}
		return services.Wrap(services.ErrConfigurationIncomplete, "reconcile", phaseValidate, "no catalog libraries configured", nil)
	}
	if src == nil {
		return services.Wrap(services.ErrConfiguration, "reconcile", phaseValidate, "catalog libraries configured without a catalog source", nil)
	}
	return nil
}

func gatherCatalog(ctx context.Context, opts Options, src catalog.Source, libraries []string, logger *slog.Logger) ([]inventory.CatalogEntry, error) {
	if opts.CatalogTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.CatalogTimeout)
		defer cancel()
	}
	if err := catalog.Ping(ctx, src); err != nil {
		if !errors.Is(err, services.ErrCatalogUnreachable) {
			err = services.Wrap(services.ErrCatalogUnreachable, "reconcile", "ping catalog", "", err)
		}
		logging.ErrorWithContext(logger, "catalog unreachable", "catalog_unreachable",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the media server url and token"),
		)
		return nil, err
	}
	return catalog.Collect(ctx, src, libraries, logging.WithContext(ctx, opts.Logger))
}

func trimmed(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, value)
		}
	}
	return out
}
