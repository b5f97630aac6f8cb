package mediascan

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cleanarr/internal/inventory"
	"cleanarr/internal/logging"
)

const (
	seasonPrefix  = "Season "
	specialsLabel = "Specials"
)

// Scan reads every root and returns the discovered movies and series.
func Scan(roots []string, logger *slog.Logger) (inventory.Media, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	var movies []inventory.MovieEntry
	series := newSeriesIndex()

	for _, root := range roots {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		titles, err := subdirectories(root)
		if err != nil {
			return inventory.Media{}, fmt.Errorf("read media directory %q: %w", root, err)
		}
		for _, title := range titles {
			leaves, err := subdirectories(filepath.Join(root, title))
			if err != nil {
				return inventory.Media{}, fmt.Errorf("read media folder %q: %w", filepath.Join(root, title), err)
			}
			if len(leaves) == 0 {
				movies = append(movies, inventory.MovieEntry{Title: title})
				continue
			}
			for _, leaf := range leaves {
				if !isSeasonFolder(leaf) {
					logger.Debug("skipping non-season folder",
						logging.String("title", title),
						logging.String("folder", leaf),
						logging.String(logging.FieldEventType, "media_folder_skipped"),
					)
					continue
				}
				series.addSeason(title, leaf)
			}
		}
	}

	media := inventory.Media{Movies: movies, Series: series.entries()}
	logger.Debug("media scan complete",
		logging.Int("movies", len(media.Movies)),
		logging.Int("series", len(media.Series)),
	)
	return media, nil
}

func isSeasonFolder(name string) bool {
	return strings.HasPrefix(name, seasonPrefix) || name == specialsLabel
}

func subdirectories(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// seriesIndex accumulates seasons per series title. A title joins an
// existing series when that series title contains it.
type seriesIndex struct {
	order   []string
	seasons map[string]map[string]struct{}
}

func newSeriesIndex() *seriesIndex {
	return &seriesIndex{seasons: make(map[string]map[string]struct{})}
}

func (s *seriesIndex) addSeason(title, season string) {
	key := s.resolve(title)
	set, ok := s.seasons[key]
	if !ok {
		set = make(map[string]struct{})
		s.seasons[key] = set
		s.order = append(s.order, key)
	}
	set[season] = struct{}{}
}

func (s *seriesIndex) resolve(title string) string {
	if _, ok := s.seasons[title]; ok {
		return title
	}
	for _, existing := range s.order {
		if strings.Contains(existing, title) {
			return existing
		}
	}
	return title
}

func (s *seriesIndex) entries() []inventory.SeriesEntry {
	out := make([]inventory.SeriesEntry, 0, len(s.order))
	for _, title := range s.order {
		set := s.seasons[title]
		seasons := make([]string, 0, len(set))
		for season := range set {
			seasons = append(seasons, season)
		}
		sort.Strings(seasons)
		out = append(out, inventory.SeriesEntry{Title: title, Seasons: seasons})
	}
	return out
}
