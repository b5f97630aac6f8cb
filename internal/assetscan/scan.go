package assetscan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"cleanarr/internal/inventory"
)

// Layout selects the asset storage convention.
type Layout int

const (
	// Flat stores one file per asset in the store root.
	Flat Layout = iota
	// Nested stores one directory per asset.
	Nested
)

func (l Layout) String() string {
	if l == Nested {
		return "nested"
	}
	return "flat"
}

// LayoutFor maps the asset_folders setting onto a Layout.
func LayoutFor(assetFolders bool) Layout {
	if assetFolders {
		return Nested
	}
	return Flat
}

var yearPattern = regexp.MustCompile(`\(\d{4}\)`)

// nestedYearPattern requires whitespace before the year, so a folder named
// "Movie(1999)" is a collection.
var nestedYearPattern = regexp.MustCompile(`\s\(\d{4}\)`)

// seasonMarkers identify per-season images in the flat layout.
var seasonMarkers = []string{"_Season", " Season"}

// nestedSeasonMarker identifies per-season images inside an asset directory.
const nestedSeasonMarker = "Season"

// Scan reads root using the given layout and returns the classified assets.
func Scan(root string, layout Layout) (inventory.Assets, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return inventory.Assets{}, errors.New("asset directory is not set")
	}
	switch layout {
	case Nested:
		return scanNested(root)
	default:
		return scanFlat(root)
	}
}

func scanFlat(root string) (inventory.Assets, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return inventory.Assets{}, fmt.Errorf("read asset directory %q: %w", root, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sortFold(names)

	acc := newAccumulator()
	var order []string
	groups := make(map[string]*flatGroup)
	var seasonFiles []string

	for _, name := range names {
		base := trimExt(name)
		if !yearPattern.MatchString(base) {
			acc.add(base, inventory.KindCollection, name)
			continue
		}
		if isSeasonMarked(base) {
			seasonFiles = append(seasonFiles, name)
			continue
		}
		group, ok := groups[base]
		if !ok {
			group = &flatGroup{}
			groups[base] = group
			order = append(order, base)
		}
		group.files = append(group.files, name)
	}

	// Each season image belongs to exactly one entry: the longest
	// representative it extends, or its own series when none exists.
	var orphans []string
	for _, name := range seasonFiles {
		owner, ok := seasonOwner(name, order)
		if !ok {
			orphans = append(orphans, name)
			continue
		}
		groups[owner].seasons = append(groups[owner].seasons, name)
	}

	for _, base := range order {
		group := groups[base]
		if len(group.seasons) == 0 {
			acc.add(base, inventory.KindMovie, group.files...)
			continue
		}
		acc.add(base, inventory.KindSeries, append(group.seasons, group.files...)...)
	}
	for _, name := range orphans {
		acc.add(seasonTitle(trimExt(name)), inventory.KindSeries, name)
	}

	return acc.assets(), nil
}

// flatGroup collects the files of one flat-layout title.
type flatGroup struct {
	files   []string
	seasons []string
}

func scanNested(root string) (inventory.Assets, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return inventory.Assets{}, fmt.Errorf("read asset directory %q: %w", root, err)
	}

	dirs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		dirs = append(dirs, entry.Name())
	}
	sortFold(dirs)

	var assets inventory.Assets
	for _, title := range dirs {
		files, err := visibleFiles(filepath.Join(root, title))
		if err != nil {
			return inventory.Assets{}, err
		}
		if len(files) == 0 {
			continue
		}
		kind := inventory.KindMovie
		switch {
		case !nestedYearPattern.MatchString(title):
			kind = inventory.KindCollection
		case containsAny(files, nestedSeasonMarker):
			kind = inventory.KindSeries
		}
		assets.Add(inventory.AssetEntry{Title: title, Kind: kind, Files: files})
	}
	return assets, nil
}

func visibleFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read asset folder %q: %w", dir, err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

// isSeasonMarked reports whether a season marker follows the last year token.
func isSeasonMarked(base string) bool {
	_, ok := seasonMarkerIndex(base)
	return ok
}

// lastYearEnd returns the offset just past the last year token in base.
func lastYearEnd(base string) (int, bool) {
	matches := yearPattern.FindAllStringIndex(base, -1)
	if len(matches) == 0 {
		return 0, false
	}
	return matches[len(matches)-1][1], true
}

func seasonMarkerIndex(base string) (int, bool) {
	end, ok := lastYearEnd(base)
	if !ok {
		return 0, false
	}
	best := -1
	for _, marker := range seasonMarkers {
		if idx := strings.Index(base[end:], marker); idx >= 0 && (best < 0 || idx < best) {
			best = idx
		}
	}
	if best < 0 {
		return 0, false
	}
	return end + best, true
}

// seasonTitle returns a season-marked base name cut after its last year
// token, so "Show (2020) - Season 1" becomes "Show (2020)".
func seasonTitle(base string) string {
	if !isSeasonMarked(base) {
		return base
	}
	end, _ := lastYearEnd(base)
	return base[:end]
}

// seasonOwner picks the longest representative base that name extends with a
// season marker.
func seasonOwner(name string, bases []string) (string, bool) {
	owner := ""
	found := false
	for _, base := range bases {
		if !strings.HasPrefix(name, base) || !hasMarker(name[len(base):]) {
			continue
		}
		if !found || len(base) > len(owner) {
			owner = base
			found = true
		}
	}
	return owner, found
}

func hasMarker(value string) bool {
	for _, marker := range seasonMarkers {
		if strings.Contains(value, marker) {
			return true
		}
	}
	return false
}

func containsAny(names []string, substr string) bool {
	for _, name := range names {
		if strings.Contains(name, substr) {
			return true
		}
	}
	return false
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func sortFold(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		li, lj := strings.ToLower(names[i]), strings.ToLower(names[j])
		if li != lj {
			return li < lj
		}
		return names[i] < names[j]
	})
}

// accumulator merges files that resolve to the same (title, kind) so the
// same artwork saved in several formats stays a single entry.
type accumulator struct {
	order []entryKey
	files map[entryKey]map[string]struct{}
}

type entryKey struct {
	title string
	kind  inventory.Kind
}

func newAccumulator() *accumulator {
	return &accumulator{files: make(map[entryKey]map[string]struct{})}
}

func (a *accumulator) add(title string, kind inventory.Kind, files ...string) {
	key := entryKey{title: title, kind: kind}
	set, ok := a.files[key]
	if !ok {
		set = make(map[string]struct{}, len(files))
		a.files[key] = set
		a.order = append(a.order, key)
	}
	for _, file := range files {
		set[file] = struct{}{}
	}
}

func (a *accumulator) assets() inventory.Assets {
	var assets inventory.Assets
	for _, key := range a.order {
		set := a.files[key]
		files := make([]string, 0, len(set))
		for file := range set {
			files = append(files, file)
		}
		sort.Strings(files)
		assets.Add(inventory.AssetEntry{Title: key.title, Kind: key.kind, Files: files})
	}
	return assets
}
