package match

import (
	"fmt"
	"strings"

	"cleanarr/internal/inventory"
	"cleanarr/internal/textutil"
)

// Mode selects how an asset title is compared with reference titles.
type Mode int

const (
	// Substring treats an asset as matched when its title occurs anywhere in
	// a reference title of the same kind.
	Substring Mode = iota
	// Exact requires the titles to be equal.
	Exact
)

func (m Mode) String() string {
	if m == Exact {
		return "exact"
	}
	return "substring"
}

// ParseMode maps a configuration value onto a Mode.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "substring":
		return Substring, nil
	case "exact":
		return Exact, nil
	default:
		return Substring, fmt.Errorf("unknown match mode %q", value)
	}
}

// Options tune matching.
type Options struct {
	Mode Mode
	// IgnoreCollections keeps collection assets out of the unmatched set.
	IgnoreCollections bool
}

// Unmatched returns the asset entries that have no reference title of the
// same kind. Movies and series are compared with media entries, collections
// with catalog entries.
func Unmatched(assets inventory.Assets, media inventory.Media, catalog []inventory.CatalogEntry, opts Options) inventory.Assets {
	references := map[inventory.Kind][]string{
		inventory.KindMovie:      normalizeAll(media.Titles(inventory.KindMovie)),
		inventory.KindSeries:     normalizeAll(media.Titles(inventory.KindSeries)),
		inventory.KindCollection: normalizeAll(inventory.CatalogTitles(catalog)),
	}

	var unmatched inventory.Assets
	for _, kind := range inventory.Kinds {
		if kind == inventory.KindCollection && opts.IgnoreCollections {
			continue
		}
		for _, asset := range assets.ByKind(kind) {
			if !Matches(asset.Title, references[kind], opts.Mode) {
				unmatched.Add(asset)
			}
		}
	}
	return unmatched
}

// Matches reports whether title matches any of references under mode.
// References are expected to be normalized already.
func Matches(title string, references []string, mode Mode) bool {
	title = textutil.NormalizeTitle(title)
	for _, ref := range references {
		switch mode {
		case Exact:
			if title == ref {
				return true
			}
		default:
			if strings.Contains(ref, title) {
				return true
			}
		}
	}
	return false
}

func normalizeAll(titles []string) []string {
	out := make([]string, len(titles))
	for i, title := range titles {
		out[i] = textutil.NormalizeTitle(title)
	}
	return out
}
