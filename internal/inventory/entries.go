package inventory

import "fmt"

// Kind classifies an entry as a movie, series, or collection.
type Kind int

const (
	KindMovie Kind = iota
	KindSeries
	KindCollection
)

// Kinds lists every kind in reporting order.
var Kinds = []Kind{KindMovie, KindSeries, KindCollection}

func (k Kind) String() string {
	switch k {
	case KindMovie:
		return "movie"
	case KindSeries:
		return "series"
	case KindCollection:
		return "collection"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// AssetEntry is one logical piece of artwork in the asset store. Files holds
// a single name in the flat layout or every file of the asset directory in
// the nested layout.
type AssetEntry struct {
	Title string
	Kind  Kind
	Files []string
}

// Assets groups asset entries by kind.
type Assets struct {
	Movies      []AssetEntry
	Series      []AssetEntry
	Collections []AssetEntry
}

// ByKind returns the entries recorded for kind.
func (a Assets) ByKind(kind Kind) []AssetEntry {
	switch kind {
	case KindMovie:
		return a.Movies
	case KindSeries:
		return a.Series
	case KindCollection:
		return a.Collections
	default:
		return nil
	}
}

// Add appends entry to the slice matching its kind.
func (a *Assets) Add(entry AssetEntry) {
	switch entry.Kind {
	case KindMovie:
		a.Movies = append(a.Movies, entry)
	case KindSeries:
		a.Series = append(a.Series, entry)
	case KindCollection:
		a.Collections = append(a.Collections, entry)
	}
}

// Len reports the number of entries across all kinds.
func (a Assets) Len() int {
	return len(a.Movies) + len(a.Series) + len(a.Collections)
}

// All returns movies, then series, then collections.
func (a Assets) All() []AssetEntry {
	out := make([]AssetEntry, 0, a.Len())
	for _, kind := range Kinds {
		out = append(out, a.ByKind(kind)...)
	}
	return out
}

// MovieEntry is a media title without season folders.
type MovieEntry struct {
	Title string
}

// SeriesEntry is a media title with one or more season folders.
type SeriesEntry struct {
	Title   string
	Seasons []string
}

// Media groups the entries discovered in the media libraries.
type Media struct {
	Movies []MovieEntry
	Series []SeriesEntry
}

// Titles returns the reference titles for kind. Collections are not part of
// the media store and yield nil.
func (m Media) Titles(kind Kind) []string {
	switch kind {
	case KindMovie:
		titles := make([]string, 0, len(m.Movies))
		for _, movie := range m.Movies {
			titles = append(titles, movie.Title)
		}
		return titles
	case KindSeries:
		titles := make([]string, 0, len(m.Series))
		for _, series := range m.Series {
			titles = append(titles, series.Title)
		}
		return titles
	default:
		return nil
	}
}

// CatalogEntry is a sanitized, non-smart collection title from the remote
// catalog.
type CatalogEntry struct {
	Title string
}

// CatalogTitles flattens catalog entries into their titles.
func CatalogTitles(entries []CatalogEntry) []string {
	titles := make([]string, 0, len(entries))
	for _, entry := range entries {
		titles = append(titles, entry.Title)
	}
	return titles
}
