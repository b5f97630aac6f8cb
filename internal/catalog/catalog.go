package catalog

import (
	"context"
	"log/slog"
	"strings"

	"cleanarr/internal/inventory"
	"cleanarr/internal/logging"
	"cleanarr/internal/services"
	"cleanarr/internal/textutil"
)

// Collection is a collection as reported by the media server.
type Collection struct {
	Title string
	// Smart collections are rule-based and never carry artwork of their own.
	Smart bool
}

// Source lists the collections of a named library.
type Source interface {
	Collections(ctx context.Context, library string) ([]Collection, error)
}

// Pinger is implemented by sources that can verify connectivity up front.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks connectivity when src supports it.
func Ping(ctx context.Context, src Source) error {
	if pinger, ok := src.(Pinger); ok {
		return pinger.Ping(ctx)
	}
	return nil
}

// Collect queries each library in order and returns the sanitized titles of
// its non-smart collections.
func Collect(ctx context.Context, src Source, libraries []string, logger *slog.Logger) ([]inventory.CatalogEntry, error) {
	if src == nil {
		return nil, services.Wrap(services.ErrConfiguration, "catalog", "collect", "no catalog source configured", nil)
	}
	logger = logging.NewComponentLogger(logger, "catalog")

	var entries []inventory.CatalogEntry
	for _, library := range libraries {
		library = strings.TrimSpace(library)
		if library == "" {
			continue
		}
		collections, err := src.Collections(ctx, library)
		if err != nil {
			return nil, err
		}
		var smart int
		for _, collection := range collections {
			if collection.Smart {
				smart++
				continue
			}
			title := textutil.SanitizeCollectionTitle(collection.Title)
			if strings.TrimSpace(title) == "" {
				continue
			}
			entries = append(entries, inventory.CatalogEntry{Title: title})
		}
		logger.Debug("library collections gathered",
			logging.String("library", library),
			logging.Int("collections", len(collections)-smart),
			logging.Int("smart_skipped", smart),
			logging.String(logging.FieldEventType, "catalog_library_scanned"),
		)
	}
	logger.Info("catalog collections gathered",
		logging.Int("libraries", len(libraries)),
		logging.Int("collections", len(entries)),
	)
	return entries, nil
}
